package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/shafe/handcraft/internal/config"
	"github.com/shafe/handcraft/internal/repository"
	"github.com/shafe/handcraft/order/internal/gateway"
	"github.com/shafe/handcraft/order/internal/mail"
)

type testEnv struct {
	pool        *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	queries     *repository.Queries
	service     OrderService
}

func setup(t *testing.T, c context.Context, gatewayURL string) testEnv {
	t.Helper()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join("..", "..", "..", "migrations", "20250112090000_create_table_users.up.sql"),
			filepath.Join("..", "..", "..", "migrations", "20250112091000_create_table_catalog.up.sql"),
			filepath.Join("..", "..", "..", "migrations", "20250112092000_create_table_carts.up.sql"),
			filepath.Join("..", "..", "..", "migrations", "20250112093000_create_table_orders.up.sql"),
			filepath.Join("seed", "order.seed.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}

	pgConnStr, err := pgContainer.ConnectionString(c, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pool, err := pgxpool.New(c, pgConnStr)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}
	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	paymentGateway := gateway.NewClient(config.Gateway{
		BaseURL:       gatewayURL,
		StoreID:       "handcraft-test",
		StorePassword: "handcraft-test",
		SuccessURL:    "https://shop.example.com/payment/success",
		FailURL:       "https://shop.example.com/payment/fail",
	}, nil)
	// points at a closed port, the confirmation mail path is
	// best-effort and only logs the dial failure
	mailer := mail.NewMailer(config.Mail{Host: "127.0.0.1", Port: 2525, From: "orders@example.com"})

	queries := repository.New(pool)
	orderService := NewOrderService(pool, queries, paymentGateway, mailer)
	return testEnv{
		pool:        pool,
		pgContainer: pgContainer,
		queries:     queries,
		service:     orderService,
	}
}

func (env testEnv) teardown(t *testing.T) {
	t.Helper()

	env.pool.Close()
	if err := testcontainers.TerminateContainer(env.pgContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
}
