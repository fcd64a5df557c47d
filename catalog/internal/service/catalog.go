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

	"github.com/shafe/handcraft/catalog/internal/cache"
	"github.com/shafe/handcraft/catalog/internal/otel"
	"github.com/shafe/handcraft/catalog/pkg/request"
	"github.com/shafe/handcraft/catalog/pkg/response"
	commonErrors "github.com/shafe/handcraft/internal/errors"
	"github.com/shafe/handcraft/internal/log"
	"github.com/shafe/handcraft/internal/repository"
)

const cacheTTL = 5 * time.Minute

var ErrProductNotFound = errors.New("product not found")

type CatalogService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewCatalogService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) CatalogService {
	return CatalogService{pool: pool, queries: queries, cache: cache}
}

func (svc CatalogService) GetProducts(
	c context.Context,
	param request.FindProducts,
) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService GetProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService GetProducts").
		Logger()

	categoryID := uuid.NullUUID{}
	if param.CategoryId != nil {
		categoryID = uuid.NullUUID{UUID: *param.CategoryId, Valid: true}
	}
	rows, err := svc.queries.GetProducts(c, repository.GetProductsParams{
		CategoryID: categoryID,
		Keyword:    param.Keyword,
	})
	if err != nil {
		err = fmt.Errorf("failed getting products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	products := make([]response.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.Response())
	}
	logger.Info().Int("products", len(products)).Msg("got products")
	return products, nil
}

func (svc CatalogService) FindProductById(
	c context.Context,
	productID uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindProductById").
		Str(log.KeyProductID, productID.String()).
		Logger()

	cacheKey := cache.KeyProductById(productID)
	logger = logger.With().Str(log.KeyCacheKey, cacheKey).Logger()
	cached, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil {
		product := response.Product{}
		if err := json.Unmarshal([]byte(cached), &product); err == nil {
			logger.Info().Msg("found product in cache")
			return product, nil
		}
		logger.Warn().Msg("found malformed product in cache")
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn().Err(err).Msg("failed getting product from cache")
	}

	row, err := svc.queries.FindProductById(c, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrProductNotFound
		} else {
			err = fmt.Errorf("failed finding product by id=%s with error=%w", productID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product := row.Response()

	if data, err := json.Marshal(product); err == nil {
		if err := svc.cache.Set(c, cacheKey, data, cacheTTL).Err(); err != nil {
			logger.Warn().Err(err).Msg("failed caching product")
		}
	}
	logger.Info().Msg("found product")
	return product, nil
}

func (svc CatalogService) InsertProduct(
	c context.Context,
	param request.Product,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService InsertProduct").
		Logger()

	categoryID, err := svc.resolveCategory(c, param.CategoryId)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	row, err := svc.queries.InsertProduct(c, repository.InsertProductParams{
		CategoryID:  categoryID,
		Name:        param.Name,
		Description: param.Description,
		Price:       repository.DecimalToNumeric(param.Price),
		Quantity:    param.Quantity,
		ImageUrl:    param.ImageUrl,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Str(log.KeyProductID, row.ID.String()).Msg("inserted product")
	return row.Response(), nil
}

func (svc CatalogService) UpdateProduct(
	c context.Context,
	productID uuid.UUID,
	param request.Product,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "CatalogService UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService UpdateProduct").
		Str(log.KeyProductID, productID.String()).
		Logger()

	categoryID, err := svc.resolveCategory(c, param.CategoryId)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	row, err := svc.queries.UpdateProduct(c, repository.UpdateProductParams{
		ID:          productID,
		CategoryID:  categoryID,
		Name:        param.Name,
		Description: param.Description,
		Price:       repository.DecimalToNumeric(param.Price),
		Quantity:    param.Quantity,
		ImageUrl:    param.ImageUrl,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrProductNotFound
		} else {
			err = fmt.Errorf("failed updating product=%s with error=%w", productID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	svc.invalidateProduct(c, productID)
	logger.Info().Msg("updated product")
	return row.Response(), nil
}

func (svc CatalogService) DeleteProduct(c context.Context, productID uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CatalogService DeleteProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService DeleteProduct").
		Str(log.KeyProductID, productID.String()).
		Logger()

	rows, err := svc.queries.DeleteProduct(c, productID)
	if err != nil {
		err = fmt.Errorf("failed deleting product=%s with error=%w", productID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if rows == 0 {
		err = ErrProductNotFound
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	svc.invalidateProduct(c, productID)
	logger.Info().Msg("deleted product")
	return nil
}

func (svc CatalogService) GetCategories(c context.Context) ([]response.Category, error) {
	c, span := otel.Tracer.Start(c, "CatalogService GetCategories")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService GetCategories").
		Logger()

	cached, err := svc.cache.Get(c, cache.KeyCategories).Result()
	if err == nil {
		categories := []response.Category{}
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			logger.Info().Msg("found categories in cache")
			return categories, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn().Err(err).Msg("failed getting categories from cache")
	}

	rows, err := svc.queries.GetCategories(c)
	if err != nil {
		err = fmt.Errorf("failed getting categories with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	categories := make([]response.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.Response())
	}

	if data, err := json.Marshal(categories); err == nil {
		if err := svc.cache.Set(c, cache.KeyCategories, data, cacheTTL).Err(); err != nil {
			logger.Warn().Err(err).Msg("failed caching categories")
		}
	}
	logger.Info().Int("categories", len(categories)).Msg("got categories")
	return categories, nil
}

func (svc CatalogService) InsertCategory(
	c context.Context,
	param request.Category,
) (response.Category, error) {
	c, span := otel.Tracer.Start(c, "CatalogService InsertCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService InsertCategory").
		Logger()

	row, err := svc.queries.InsertCategory(c, repository.InsertCategoryParams{
		Name:        param.Name,
		Description: param.Description,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting category with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Category{}, err
	}

	if err := svc.cache.Del(c, cache.KeyCategories).Err(); err != nil {
		logger.Warn().Err(err).Msg("failed invalidating categories cache")
	}
	logger.Info().Str(log.KeyCategoryID, row.ID.String()).Msg("inserted category")
	return row.Response(), nil
}

func (svc CatalogService) DeleteCategory(c context.Context, categoryID uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CatalogService DeleteCategory")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService DeleteCategory").
		Str(log.KeyCategoryID, categoryID.String()).
		Logger()

	rows, err := svc.queries.DeleteCategory(c, categoryID)
	if err != nil {
		err = fmt.Errorf("failed deleting category=%s with error=%w", categoryID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if rows == 0 {
		err = fmt.Errorf("category=%s not found", categoryID)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if err := svc.cache.Del(c, cache.KeyCategories).Err(); err != nil {
		logger.Warn().Err(err).Msg("failed invalidating categories cache")
	}
	logger.Info().Msg("deleted category")
	return nil
}

// resolveCategory checks that a referenced category exists before a
// product points at it.
func (svc CatalogService) resolveCategory(
	c context.Context,
	categoryId *uuid.UUID,
) (uuid.NullUUID, error) {
	if categoryId == nil {
		return uuid.NullUUID{}, nil
	}
	if _, err := svc.queries.FindCategoryById(c, *categoryId); err != nil {
		return uuid.NullUUID{}, fmt.Errorf("failed finding category by id=%s with error=%w", categoryId, err)
	}
	return uuid.NullUUID{UUID: *categoryId, Valid: true}, nil
}

func (svc CatalogService) invalidateProduct(c context.Context, productID uuid.UUID) {
	if err := svc.cache.Del(c, cache.KeyProductById(productID)).Err(); err != nil {
		zerolog.Ctx(c).Warn().Err(err).Msg("failed invalidating product cache")
	}
}
