package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/shafe/handcraft/admin/internal/otel"
	"github.com/shafe/handcraft/admin/pkg/request"
	"github.com/shafe/handcraft/admin/pkg/response"
	commonErrors "github.com/shafe/handcraft/internal/errors"
	"github.com/shafe/handcraft/internal/log"
	"github.com/shafe/handcraft/internal/repository"
	userResponse "github.com/shafe/handcraft/user/pkg/response"
)

var ErrExpenseNotFound = errors.New("expense not found")

type AdminService struct {
	queries *repository.Queries
}

func NewAdminService(queries *repository.Queries) AdminService {
	return AdminService{queries: queries}
}

// Dashboard aggregates the headline shop numbers.
func (svc AdminService) Dashboard(c context.Context) (response.Dashboard, error) {
	c, span := otel.Tracer.Start(c, "AdminService Dashboard")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService Dashboard").
		Logger()

	users, err := svc.queries.CountUsers(c)
	if err != nil {
		err = fmt.Errorf("failed counting users with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Dashboard{}, err
	}
	products, err := svc.queries.CountProducts(c)
	if err != nil {
		err = fmt.Errorf("failed counting products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Dashboard{}, err
	}
	orders, err := svc.queries.CountOrders(c)
	if err != nil {
		err = fmt.Errorf("failed counting orders with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Dashboard{}, err
	}
	revenue, err := svc.queries.SumRevenue(c)
	if err != nil {
		err = fmt.Errorf("failed summing revenue with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Dashboard{}, err
	}

	return response.Dashboard{
		Users:    users,
		Products: products,
		Orders:   orders,
		Revenue:  repository.NumericToDecimal(revenue),
	}, nil
}

func (svc AdminService) InsertExpense(
	c context.Context,
	createdBy uuid.UUID,
	param request.InsertExpense,
) (response.Expense, error) {
	c, span := otel.Tracer.Start(c, "AdminService InsertExpense")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService InsertExpense").
		Str(log.KeyUserID, createdBy.String()).
		Logger()

	expense, err := svc.queries.InsertExpense(c, repository.InsertExpenseParams{
		Label:      param.Label,
		Amount:     repository.DecimalToNumeric(param.Amount),
		IncurredAt: pgtype.Timestamp{Time: param.IncurredAt, Valid: true},
		CreatedBy:  createdBy,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting expense with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Expense{}, err
	}
	logger.Info().Msg("inserted expense")
	return expense.Response(), nil
}

func (svc AdminService) DeleteExpense(c context.Context, expenseID uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "AdminService DeleteExpense")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService DeleteExpense").
		Logger()

	deleted, err := svc.queries.DeleteExpense(c, expenseID)
	if err != nil {
		err = fmt.Errorf("failed deleting expense=%s with error=%w", expenseID, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if deleted == 0 {
		err = ErrExpenseNotFound
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted expense")
	return nil
}

// ExpenseReport lists expenses incurred in [from, to) with their sum.
func (svc AdminService) ExpenseReport(
	c context.Context,
	from, to time.Time,
) (response.ExpenseReport, error) {
	c, span := otel.Tracer.Start(c, "AdminService ExpenseReport")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService ExpenseReport").
		Logger()

	rows, err := svc.queries.GetExpensesBetween(c, repository.GetExpensesBetweenParams{
		IncurredAt:   pgtype.Timestamp{Time: from, Valid: true},
		IncurredAt_2: pgtype.Timestamp{Time: to, Valid: true},
	})
	if err != nil {
		err = fmt.Errorf("failed getting expenses with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ExpenseReport{}, err
	}
	total, err := svc.queries.SumExpensesBetween(c, repository.SumExpensesBetweenParams{
		IncurredAt:   pgtype.Timestamp{Time: from, Valid: true},
		IncurredAt_2: pgtype.Timestamp{Time: to, Valid: true},
	})
	if err != nil {
		err = fmt.Errorf("failed summing expenses with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ExpenseReport{}, err
	}
	revenue, err := svc.queries.SumRevenueBetween(c, repository.SumRevenueBetweenParams{
		CreatedAt:   pgtype.Timestamp{Time: from, Valid: true},
		CreatedAt_2: pgtype.Timestamp{Time: to, Valid: true},
	})
	if err != nil {
		err = fmt.Errorf("failed summing revenue with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ExpenseReport{}, err
	}

	expenses := make([]response.Expense, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, row.Response())
	}
	spent := repository.NumericToDecimal(total)
	earned := repository.NumericToDecimal(revenue)
	return response.ExpenseReport{
		From:     from,
		To:       to,
		Total:    spent,
		Revenue:  earned,
		Net:      earned.Sub(spent),
		Expenses: expenses,
	}, nil
}

func (svc AdminService) GetUsers(c context.Context) ([]userResponse.User, error) {
	c, span := otel.Tracer.Start(c, "AdminService GetUsers")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService GetUsers").
		Logger()

	rows, err := svc.queries.GetUsers(c)
	if err != nil {
		err = fmt.Errorf("failed getting users with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	users := make([]userResponse.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.Response())
	}
	return users, nil
}

func (svc AdminService) SetUserBlocked(
	c context.Context,
	userID uuid.UUID,
	param request.BlockUser,
) (userResponse.User, error) {
	c, span := otel.Tracer.Start(c, "AdminService SetUserBlocked")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService SetUserBlocked").
		Str(log.KeyUserID, userID.String()).
		Logger()

	user, err := svc.queries.SetUserBlocked(c, repository.SetUserBlockedParams{
		ID:        userID,
		IsBlocked: param.Blocked,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrUserNotFound
		} else {
			err = fmt.Errorf("failed blocking user=%s with error=%w", userID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return userResponse.User{}, err
	}
	logger.Info().Bool("blocked", user.IsBlocked).Msg("set user blocked")
	return user.Response(), nil
}

func (svc AdminService) InsertSubscription(
	c context.Context,
	userID uuid.UUID,
	param request.InsertSubscription,
) (response.Subscription, error) {
	c, span := otel.Tracer.Start(c, "AdminService InsertSubscription")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService InsertSubscription").
		Str(log.KeyUserID, userID.String()).
		Logger()

	if _, err := svc.queries.FindUserById(c, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrUserNotFound
		} else {
			err = fmt.Errorf("failed finding user by id=%s with error=%w", userID, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Subscription{}, err
	}

	subscription, err := svc.queries.InsertSubscription(c, repository.InsertSubscriptionParams{
		UserID:    userID,
		Plan:      param.Plan,
		Status:    "active",
		ExpiresAt: pgtype.Timestamp{Time: param.ExpiresAt, Valid: true},
	})
	if err != nil {
		err = fmt.Errorf("failed inserting subscription with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Subscription{}, err
	}
	logger.Info().Msg("inserted subscription")
	return subscription.Response(), nil
}

func (svc AdminService) GetSubscriptionsByUserId(
	c context.Context,
	userID uuid.UUID,
) ([]response.Subscription, error) {
	c, span := otel.Tracer.Start(c, "AdminService GetSubscriptionsByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService GetSubscriptionsByUserId").
		Str(log.KeyUserID, userID.String()).
		Logger()

	rows, err := svc.queries.GetSubscriptionsByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed getting subscriptions with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	subscriptions := make([]response.Subscription, 0, len(rows))
	for _, row := range rows {
		subscriptions = append(subscriptions, row.Response())
	}
	return subscriptions, nil
}

// ExpireLapsedSubscriptions flips active subscriptions whose expiry has
// passed to expired. Run by the daily sweeper.
func (svc AdminService) ExpireLapsedSubscriptions(c context.Context, now time.Time) (int64, error) {
	c, span := otel.Tracer.Start(c, "AdminService ExpireLapsedSubscriptions")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService ExpireLapsedSubscriptions").
		Logger()

	expired, err := svc.queries.ExpireLapsedSubscriptions(c, pgtype.Timestamp{Time: now, Valid: true})
	if err != nil {
		err = fmt.Errorf("failed expiring lapsed subscriptions with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return 0, err
	}
	logger.Info().Int64("expired", expired).Msg("expired lapsed subscriptions")
	return expired, nil
}
