package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shafe/handcraft/cart/internal/cache"
	"github.com/shafe/handcraft/cart/internal/otel"
	"github.com/shafe/handcraft/cart/pkg/request"
	"github.com/shafe/handcraft/cart/pkg/response"
	catalogResponse "github.com/shafe/handcraft/catalog/pkg/response"
	commonErrors "github.com/shafe/handcraft/internal/errors"
	"github.com/shafe/handcraft/internal/log"
	"github.com/shafe/handcraft/internal/repository"
)

const cacheTTL = time.Minute

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewCartService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) CartService {
	return CartService{pool: pool, queries: queries, cache: cache}
}

func (svc CartService) FindCartByUserId(
	c context.Context,
	userID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCartByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartByUserId").
		Str(log.KeyUserID, userID.String()).
		Logger()

	cacheKey := cache.KeyCartByUser(userID)
	logger = logger.With().Str(log.KeyCacheKey, cacheKey).Logger()
	cached, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil {
		cart := response.Cart{}
		if err := json.Unmarshal([]byte(cached), &cart); err == nil {
			logger.Info().Msg("found cart in cache")
			return cart, nil
		}
		logger.Warn().Msg("found malformed cart in cache")
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn().Err(err).Msg("failed getting cart from cache")
	}

	cart, err := svc.buildCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart of userId=%s with error=%w", userID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	if data, err := json.Marshal(cart); err == nil {
		if err := svc.cache.Set(c, cacheKey, data, cacheTTL).Err(); err != nil {
			logger.Warn().Err(err).Msg("failed caching cart")
		}
	}
	logger.Info().Int(log.KeyCartItems, len(cart.CartItems)).Msg("found cart")
	return cart, nil
}

func (svc CartService) InsertCartItem(
	c context.Context,
	userID uuid.UUID,
	param request.InsertCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService InsertCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService InsertCartItem").
		Str(log.KeyUserID, userID.String()).
		Logger()

	if param.CustomDesign != nil {
		logger = logger.With().Str(log.KeyProcess, "validating custom design").Logger()
		if err := param.CustomDesign.Validate(); err != nil {
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg("rejected invalid custom design")
			return response.Cart{}, err
		}
		logger.Info().Msg("validated custom design")
	}

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Error().Err(err).Msg("failed rolling back transaction")
		}
	}()
	queries := svc.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "upserting cart").Logger()
	cart, err := queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed upserting cart of userId=%s with error=%w", userID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("upserted cart")

	if param.ProductId != nil {
		if err := svc.insertProductItem(c, queries, cart.ID, *param.ProductId, param); err != nil {
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
	} else {
		if err := svc.insertCustomItem(c, queries, cart.ID, param); err != nil {
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	if err := tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("committed transaction")

	svc.invalidateCart(c, userID)
	return svc.buildCart(c, userID)
}

// insertProductItem adds a catalog product to the cart, merging into an
// existing line when the product is already there.
func (svc CartService) insertProductItem(
	c context.Context,
	queries *repository.Queries,
	cartID uuid.UUID,
	productID uuid.UUID,
	param request.InsertCartItem,
) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "inserting product item").
		Str(log.KeyProductID, productID.String()).
		Logger()

	product, err := queries.FindProductById(c, productID)
	if err != nil {
		return fmt.Errorf("failed finding product by id=%s with error=%w", productID, err)
	}

	nullProductID := uuid.NullUUID{UUID: productID, Valid: true}
	existing, err := queries.FindCartItemByProduct(c, repository.FindCartItemByProductParams{
		CartID:    cartID,
		ProductID: nullProductID,
	})
	if err == nil {
		logger.Info().
			Int32(log.KeyQuantity, existing.Quantity+param.Quantity).
			Msg("merging duplicate product line")
		_, err = queries.UpdateCartItemQuantity(c, repository.UpdateCartItemQuantityParams{
			ID:       existing.ID,
			CartID:   cartID,
			Quantity: existing.Quantity + param.Quantity,
		})
		if err != nil {
			return fmt.Errorf("failed merging cart item with error=%w", err)
		}
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed finding cart item by productId=%s with error=%w", productID, err)
	}

	_, err = queries.InsertCartItem(c, repository.InsertCartItemParams{
		CartID:         cartID,
		ProductID:      nullProductID,
		Quantity:       param.Quantity,
		Price:          product.Price,
		SpecialRequest: param.SpecialRequest,
	})
	if err != nil {
		return fmt.Errorf("failed inserting cart item with error=%w", err)
	}
	logger.Info().Msg("inserted product item")
	return nil
}

// insertCustomItem adds a design-studio item. Custom designs are always
// their own line, the price comes from the design itself.
func (svc CartService) insertCustomItem(
	c context.Context,
	queries *repository.Queries,
	cartID uuid.UUID,
	param request.InsertCartItem,
) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "inserting custom item").
		Logger()

	if param.CustomDesign == nil {
		return commonErrors.ErrDesignNameBlank
	}
	design, err := json.Marshal(param.CustomDesign)
	if err != nil {
		return fmt.Errorf("failed encoding custom design with error=%w", err)
	}
	_, err = queries.InsertCartItem(c, repository.InsertCartItemParams{
		CartID:         cartID,
		Quantity:       param.Quantity,
		Price:          repository.DecimalToNumeric(param.CustomDesign.Price),
		SpecialRequest: param.SpecialRequest,
		CustomDesign:   design,
	})
	if err != nil {
		return fmt.Errorf("failed inserting cart item with error=%w", err)
	}
	logger.Info().Msg("inserted custom item")
	return nil
}

func (svc CartService) UpdateCartItemQuantity(
	c context.Context,
	userID uuid.UUID,
	cartItemID uuid.UUID,
	quantity int32,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateCartItemQuantity")
	defer span.End()

	// a non-positive quantity means the buyer removed the line
	if quantity <= 0 {
		return svc.RemoveCartItem(c, userID, cartItemID)
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateCartItemQuantity").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartItemID, cartItemID.String()).
		Int32(log.KeyQuantity, quantity).
		Logger()

	cart, err := svc.queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed upserting cart of userId=%s with error=%w", userID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	_, err = svc.queries.UpdateCartItemQuantity(c, repository.UpdateCartItemQuantityParams{
		ID:       cartItemID,
		CartID:   cart.ID,
		Quantity: quantity,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrCartItemNotFound
		} else {
			err = fmt.Errorf("failed updating cart item=%s with error=%w", cartItemID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("updated cart item quantity")

	svc.invalidateCart(c, userID)
	return svc.buildCart(c, userID)
}

func (svc CartService) RemoveCartItem(
	c context.Context,
	userID uuid.UUID,
	cartItemID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCartItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyCartItemID, cartItemID.String()).
		Logger()

	cart, err := svc.queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed upserting cart of userId=%s with error=%w", userID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	rows, err := svc.queries.DeleteCartItem(c, repository.DeleteCartItemParams{
		ID:     cartItemID,
		CartID: cart.ID,
	})
	if err != nil {
		err = fmt.Errorf("failed deleting cart item=%s with error=%w", cartItemID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if rows == 0 {
		err = commonErrors.ErrCartItemNotFound
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("removed cart item")

	svc.invalidateCart(c, userID)
	return svc.buildCart(c, userID)
}

// ClearCart empties the user's cart in one statement.
func (svc CartService) ClearCart(
	c context.Context,
	userID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyUserID, userID.String()).
		Logger()

	cart, err := svc.queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed upserting cart of userId=%s with error=%w", userID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	cleared, err := svc.queries.ClearCart(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed clearing cart=%s with error=%w", cart.ID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Int64(log.KeyCartItems, cleared).Msg("cleared cart")

	svc.invalidateCart(c, userID)
	return svc.buildCart(c, userID)
}

func (svc CartService) FindWishlistByUserId(
	c context.Context,
	userID uuid.UUID,
) (response.Wishlist, error) {
	c, span := otel.Tracer.Start(c, "CartService FindWishlistByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindWishlistByUserId").
		Str(log.KeyUserID, userID.String()).
		Logger()

	cacheKey := cache.KeyWishlistByUser(userID)
	logger = logger.With().Str(log.KeyCacheKey, cacheKey).Logger()
	cached, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil {
		wishlist := response.Wishlist{}
		if err := json.Unmarshal([]byte(cached), &wishlist); err == nil {
			logger.Info().Msg("found wishlist in cache")
			return wishlist, nil
		}
		logger.Warn().Msg("found malformed wishlist in cache")
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn().Err(err).Msg("failed getting wishlist from cache")
	}

	wishlist, err := svc.buildWishlist(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding wishlist of userId=%s with error=%w", userID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}

	if data, err := json.Marshal(wishlist); err == nil {
		if err := svc.cache.Set(c, cacheKey, data, cacheTTL).Err(); err != nil {
			logger.Warn().Err(err).Msg("failed caching wishlist")
		}
	}
	logger.Info().Msg("found wishlist")
	return wishlist, nil
}

func (svc CartService) InsertWishlistItem(
	c context.Context,
	userID uuid.UUID,
	productID uuid.UUID,
) (response.Wishlist, error) {
	c, span := otel.Tracer.Start(c, "CartService InsertWishlistItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService InsertWishlistItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, productID.String()).
		Logger()

	if _, err := svc.queries.FindProductById(c, productID); err != nil {
		err = fmt.Errorf("failed finding product by id=%s with error=%w", productID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}

	wishlist, err := svc.queries.UpsertWishlist(c, userID)
	if err != nil {
		err = fmt.Errorf("failed upserting wishlist of userId=%s with error=%w", userID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}

	// duplicates are silently ignored, the wishlist is a set
	_, err = svc.queries.InsertWishlistItem(c, repository.InsertWishlistItemParams{
		WishlistID: wishlist.ID,
		ProductID:  productID,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting wishlist item with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}
	logger.Info().Msg("inserted wishlist item")

	svc.invalidateWishlist(c, userID)
	return svc.buildWishlist(c, userID)
}

func (svc CartService) RemoveWishlistItem(
	c context.Context,
	userID uuid.UUID,
	productID uuid.UUID,
) (response.Wishlist, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveWishlistItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveWishlistItem").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, productID.String()).
		Logger()

	wishlist, err := svc.queries.UpsertWishlist(c, userID)
	if err != nil {
		err = fmt.Errorf("failed upserting wishlist of userId=%s with error=%w", userID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}

	if _, err := svc.queries.DeleteWishlistItem(c, repository.DeleteWishlistItemParams{
		WishlistID: wishlist.ID,
		ProductID:  productID,
	}); err != nil {
		err = fmt.Errorf("failed deleting wishlist item with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}
	logger.Info().Msg("removed wishlist item")

	svc.invalidateWishlist(c, userID)
	return svc.buildWishlist(c, userID)
}

func (svc CartService) buildCart(c context.Context, userID uuid.UUID) (response.Cart, error) {
	cart, err := svc.queries.UpsertCart(c, userID)
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed upserting cart of userId=%s with error=%w", userID, err)
	}
	rows, err := svc.queries.GetCartItems(c, cart.ID)
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed getting cart items of cartId=%s with error=%w", cart.ID, err)
	}
	items := make([]response.CartItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.Response()
		if err != nil {
			return response.Cart{}, err
		}
		items = append(items, item)
	}
	return response.Cart{
		ID:        cart.ID,
		UserID:    cart.UserID,
		CartItems: items,
		CreatedAt: cart.CreatedAt.Time,
		UpdatedAt: cart.UpdatedAt.Time,
	}, nil
}

func (svc CartService) buildWishlist(c context.Context, userID uuid.UUID) (response.Wishlist, error) {
	wishlist, err := svc.queries.UpsertWishlist(c, userID)
	if err != nil {
		return response.Wishlist{}, fmt.Errorf("failed upserting wishlist of userId=%s with error=%w", userID, err)
	}
	rows, err := svc.queries.GetWishlistProducts(c, wishlist.ID)
	if err != nil {
		return response.Wishlist{}, fmt.Errorf("failed getting wishlist products with error=%w", err)
	}
	products := make([]catalogResponse.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.Response())
	}
	return response.Wishlist{
		ID:       wishlist.ID,
		UserID:   wishlist.UserID,
		Products: products,
	}, nil
}

func (svc CartService) invalidateCart(c context.Context, userID uuid.UUID) {
	if err := svc.cache.Del(c, cache.KeyCartByUser(userID)).Err(); err != nil {
		zerolog.Ctx(c).Warn().Err(err).Msg("failed invalidating cart cache")
	}
}

func (svc CartService) invalidateWishlist(c context.Context, userID uuid.UUID) {
	if err := svc.cache.Del(c, cache.KeyWishlistByUser(userID)).Err(); err != nil {
		zerolog.Ctx(c).Warn().Err(err).Msg("failed invalidating wishlist cache")
	}
}
