package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	commonErrors "github.com/shafe/handcraft/internal/errors"
	"github.com/shafe/handcraft/internal/log"
	"github.com/shafe/handcraft/internal/repository"
	"github.com/shafe/handcraft/order/internal/gateway"
	"github.com/shafe/handcraft/order/internal/mail"
	"github.com/shafe/handcraft/order/internal/otel"
	"github.com/shafe/handcraft/order/pkg/request"
	"github.com/shafe/handcraft/order/pkg/response"
)

var ErrEmptyCart = errors.New("cart is empty")

type OrderService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	gateway *gateway.Client
	mailer  *mail.Mailer
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	gateway *gateway.Client,
	mailer *mail.Mailer,
) OrderService {
	return OrderService{pool: pool, queries: queries, gateway: gateway, mailer: mailer}
}

// Checkout turns the user's cart into a pending order and opens a
// payment session for the order total. The cart is left untouched
// until the gateway confirms the payment, so an abandoned or failed
// session costs the buyer nothing.
func (svc OrderService) Checkout(
	c context.Context,
	userID uuid.UUID,
	param request.Checkout,
) (response.Checkout, error) {
	c, span := otel.Tracer.Start(c, "OrderService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService Checkout").
		Str(log.KeyUserID, userID.String()).
		Logger()

	user, err := svc.queries.FindUserById(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding user by id=%s with error=%w", userID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Error().Err(err).Msg("failed rolling back transaction")
		}
	}()
	queries := svc.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "loading cart").Logger()
	cart, err := queries.UpsertCart(c, userID)
	if err != nil {
		err = fmt.Errorf("failed upserting cart of userId=%s with error=%w", userID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	cartItems, err := queries.GetCartItems(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed getting cart items of cartId=%s with error=%w", cart.ID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	if len(cartItems) == 0 {
		err = ErrEmptyCart
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	logger = logger.With().Int(log.KeyCartItems, len(cartItems)).Logger()
	logger.Info().Msg("loaded cart")

	total := decimal.Zero
	for _, item := range cartItems {
		price := repository.NumericToDecimal(item.Price)
		total = total.Add(price.Mul(decimal.NewFromInt32(item.Quantity)))
	}

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	order, err := queries.InsertOrder(c, repository.InsertOrderParams{
		UserID:          userID,
		Status:          repository.OrderStatusPending,
		Total:           repository.DecimalToNumeric(total),
		ShippingAddress: param.ShippingAddress,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msg("inserted order")

	orderItems := make([]repository.InsertOrderItemsParams, 0, len(cartItems))
	for _, item := range cartItems {
		orderItems = append(orderItems, repository.InsertOrderItemsParams{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			Price:          item.Price,
			SpecialRequest: item.SpecialRequest,
			CustomDesign:   item.CustomDesign,
		})
	}
	if _, err := queries.InsertOrderItems(c, orderItems); err != nil {
		err = fmt.Errorf("failed inserting order items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	logger.Info().Msg("inserted order items")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	if err := tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	logger.Info().Msg("committed transaction")

	logger = logger.With().Str(log.KeyProcess, "initiating payment session").Logger()
	session, err := svc.gateway.InitiateSession(c, gateway.InitiateParams{
		TransactionID: order.ID.String(),
		Amount:        total,
		CustomerName:  user.Username,
		CustomerEmail: user.Email,
		Address:       param.ShippingAddress,
	})
	if err != nil {
		err = fmt.Errorf("failed initiating payment session with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	logger.Info().Msg("initiated payment session")

	orderResponse, err := svc.buildOrder(c, order)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	return response.Checkout{Order: orderResponse, PaymentURL: session.GatewayPageURL}, nil
}

// HandlePaymentNotification processes the gateway's instant payment
// notification. The verdict is re-validated against the gateway before
// the order moves out of pending.
func (svc OrderService) HandlePaymentNotification(
	c context.Context,
	param request.PaymentNotification,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService HandlePaymentNotification")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService HandlePaymentNotification").
		Str(log.KeyOrderID, param.OrderID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating payment with gateway").Logger()
	validation, err := svc.gateway.ValidateTransaction(c, param.ValidationID)
	if err != nil {
		err = fmt.Errorf("failed validating payment with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if validation.TransactionID != param.OrderID.String() {
		err = fmt.Errorf("payment validation is for transaction=%s not order=%s", validation.TransactionID, param.OrderID)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("validated payment with gateway")

	order, err := svc.queries.FindOrderById(c, repository.FindOrderByIdParams{ID: param.OrderID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrOrderNotFound
		} else {
			err = fmt.Errorf("failed finding order by id=%s with error=%w", param.OrderID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	nextStatus := repository.OrderStatusFailed
	if validation.Paid() {
		nextStatus = repository.OrderStatusPaid
	}
	if !CanTransition(order.Status, nextStatus) {
		err = fmt.Errorf("%w: %s to %s", commonErrors.ErrBadTransition, order.Status, nextStatus)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().
		Str(log.KeyProcess, "updating order payment").
		Str(log.KeyOrderStatus, string(nextStatus)).
		Logger()
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Error().Err(err).Msg("failed rolling back transaction")
		}
	}()
	queries := svc.queries.WithTx(tx)

	order, err = queries.UpdateOrderPayment(c, repository.UpdateOrderPaymentParams{
		ID:         order.ID,
		Status:     nextStatus,
		PaymentRef: validation.ValidationID,
	})
	if err != nil {
		err = fmt.Errorf("failed updating order payment with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("updated order payment")

	// The buyer's cart settles together with the payment. It stays
	// intact through checkout so a failed or abandoned gateway session
	// leaves the cart as it was.
	if nextStatus == repository.OrderStatusPaid {
		logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
		cart, err := queries.UpsertCart(c, order.UserID)
		if err != nil {
			err = fmt.Errorf("failed upserting cart of userId=%s with error=%w", order.UserID, err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		cleared, err := queries.ClearCart(c, cart.ID)
		if err != nil {
			err = fmt.Errorf("failed clearing cart with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		logger.Info().Int64(log.KeyCartItems, cleared).Msg("cleared cart")
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	if err := tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("committed transaction")

	orderResponse, err := svc.buildOrder(c, order)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	// the confirmation mail must never fail the notification
	if nextStatus == repository.OrderStatusPaid {
		user, err := svc.queries.FindUserById(c, order.UserID)
		if err != nil {
			logger.Warn().Err(err).Msg("failed finding user for confirmation mail")
		} else if err := svc.mailer.SendOrderConfirmation(c, user.Email, orderResponse); err != nil {
			logger.Warn().Err(err).Msg("failed sending order confirmation")
		}
	}
	return orderResponse, nil
}

// UpdateOrderStatus applies a fulfilment transition requested by an
// admin.
func (svc OrderService) UpdateOrderStatus(
	c context.Context,
	orderID uuid.UUID,
	status repository.OrderStatus,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService UpdateOrderStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService UpdateOrderStatus").
		Str(log.KeyOrderID, orderID.String()).
		Str(log.KeyOrderStatus, string(status)).
		Logger()

	order, err := svc.queries.FindOrderById(c, repository.FindOrderByIdParams{ID: orderID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrOrderNotFound
		} else {
			err = fmt.Errorf("failed finding order by id=%s with error=%w", orderID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	if !CanTransition(order.Status, status) {
		err = fmt.Errorf("%w: %s to %s", commonErrors.ErrBadTransition, order.Status, status)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	order, err = svc.queries.UpdateOrderStatus(c, repository.UpdateOrderStatusParams{
		ID:     orderID,
		Status: status,
	})
	if err != nil {
		err = fmt.Errorf("failed updating order status with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("updated order status")

	return svc.buildOrder(c, order)
}

// CancelOrder lets the buyer abandon an order that has not been paid.
func (svc OrderService) CancelOrder(
	c context.Context,
	userID uuid.UUID,
	orderID uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService CancelOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService CancelOrder").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyOrderID, orderID.String()).
		Logger()

	order, err := svc.queries.FindOrderById(c, repository.FindOrderByIdParams{
		ID:     orderID,
		UserID: uuid.NullUUID{UUID: userID, Valid: true},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrOrderNotFound
		} else {
			err = fmt.Errorf("failed finding order by id=%s with error=%w", orderID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	if !CanTransition(order.Status, repository.OrderStatusCancelled) {
		err = fmt.Errorf("%w: %s to %s", commonErrors.ErrBadTransition, order.Status, repository.OrderStatusCancelled)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	order, err = svc.queries.UpdateOrderStatus(c, repository.UpdateOrderStatusParams{
		ID:     orderID,
		Status: repository.OrderStatusCancelled,
	})
	if err != nil {
		err = fmt.Errorf("failed cancelling order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("cancelled order")

	return svc.buildOrder(c, order)
}

func (svc OrderService) GetOrdersByUserId(
	c context.Context,
	userID uuid.UUID,
) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService GetOrdersByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService GetOrdersByUserId").
		Str(log.KeyUserID, userID.String()).
		Logger()

	rows, err := svc.queries.GetOrdersByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed getting orders of userId=%s with error=%w", userID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	orders := make([]response.Order, 0, len(rows))
	for _, row := range rows {
		order, err := svc.buildOrder(c, row)
		if err != nil {
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		orders = append(orders, order)
	}
	logger.Info().Int("orders", len(orders)).Msg("got orders")
	return orders, nil
}

func (svc OrderService) FindOrderById(
	c context.Context,
	userID uuid.UUID,
	orderID uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyOrderID, orderID.String()).
		Logger()

	order, err := svc.queries.FindOrderById(c, repository.FindOrderByIdParams{
		ID:     orderID,
		UserID: uuid.NullUUID{UUID: userID, Valid: true},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrOrderNotFound
		} else {
			err = fmt.Errorf("failed finding order by id=%s with error=%w", orderID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order")
	return svc.buildOrder(c, order)
}

func (svc OrderService) buildOrder(
	c context.Context,
	order repository.Order,
) (response.Order, error) {
	rows, err := svc.queries.GetOrderItems(c, order.ID)
	if err != nil {
		return response.Order{}, fmt.Errorf("failed getting order items of orderId=%s with error=%w", order.ID, err)
	}
	items := make([]response.OrderItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.Response()
		if err != nil {
			return response.Order{}, err
		}
		items = append(items, item)
	}
	return order.Response(items), nil
}
