package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shafe/handcraft/internal/repository"
	"github.com/shafe/handcraft/order/pkg/request"
)

var (
	seedUserMina = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	seedCartMina = uuid.MustParse("66666666-6666-4666-8666-666666666666")
)

// gatewayStub plays the hosted payment gateway. It remembers the
// transaction id of the last opened session so the validator endpoint
// can echo it back the way the real gateway does.
type gatewayStub struct {
	mu            sync.Mutex
	lastTranID    string
	rejectSession bool
	verdict       string
}

func (g *gatewayStub) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/gwprocess/v4/api.php", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed parsing session form with error: %s", err)
		}
		g.mu.Lock()
		g.lastTranID = r.PostFormValue("tran_id")
		g.mu.Unlock()
		if g.rejectSession {
			json.NewEncoder(w).Encode(map[string]string{
				"status":       "FAILED",
				"failedreason": "store credential mismatch",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"status":         "SUCCESS",
			"sessionkey":     "A1B2C3",
			"GatewayPageURL": "https://sandbox.example.com/pay/A1B2C3",
		})
	})
	mux.HandleFunc("/validator/api/validationserverAPI.php", func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		tranID := g.lastTranID
		g.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{
			"status":  g.verdict,
			"tran_id": tranID,
			"val_id":  r.URL.Query().Get("val_id"),
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCheckoutGatewayFailureKeepsCart(t *testing.T) {
	c := context.Background()
	stub := &gatewayStub{rejectSession: true}
	env := setup(t, c, stub.server(t).URL)
	defer env.teardown(t)

	_, err := env.service.Checkout(c, seedUserMina, request.Checkout{
		ShippingAddress: "12 Lake Road, Dhaka",
	})
	require.Error(t, err)

	// the buyer keeps the cart when the session never opens
	cartItems, err := env.queries.GetCartItems(c, seedCartMina)
	require.NoError(t, err)
	assert.Len(t, cartItems, 2)
}

func TestCheckoutLeavesCartUntilPaid(t *testing.T) {
	c := context.Background()
	stub := &gatewayStub{verdict: "VALID"}
	env := setup(t, c, stub.server(t).URL)
	defer env.teardown(t)

	checkout, err := env.service.Checkout(c, seedUserMina, request.Checkout{
		ShippingAddress: "12 Lake Road, Dhaka",
	})
	require.NoError(t, err)
	assert.Equal(t, string(repository.OrderStatusPending), checkout.Order.Status)
	assert.NotEmpty(t, checkout.PaymentURL)
	assert.True(t, checkout.Order.Total.Equal(decimal.RequireFromString("3481.00")))

	cartItems, err := env.queries.GetCartItems(c, seedCartMina)
	require.NoError(t, err)
	require.Len(t, cartItems, 2)

	order, err := env.service.HandlePaymentNotification(c, request.PaymentNotification{
		OrderID:       checkout.Order.ID,
		TransactionID: checkout.Order.ID.String(),
		ValidationID:  "VAL-100",
		Status:        "VALID",
	})
	require.NoError(t, err)
	assert.Equal(t, string(repository.OrderStatusPaid), order.Status)
	assert.Equal(t, "VAL-100", order.PaymentRef)

	cartItems, err = env.queries.GetCartItems(c, seedCartMina)
	require.NoError(t, err)
	assert.Empty(t, cartItems)
}

func TestPaymentNotificationFailedKeepsCart(t *testing.T) {
	c := context.Background()
	stub := &gatewayStub{verdict: "FAILED"}
	env := setup(t, c, stub.server(t).URL)
	defer env.teardown(t)

	checkout, err := env.service.Checkout(c, seedUserMina, request.Checkout{
		ShippingAddress: "12 Lake Road, Dhaka",
	})
	require.NoError(t, err)

	order, err := env.service.HandlePaymentNotification(c, request.PaymentNotification{
		OrderID:       checkout.Order.ID,
		TransactionID: checkout.Order.ID.String(),
		ValidationID:  "VAL-200",
		Status:        "FAILED",
	})
	require.NoError(t, err)
	assert.Equal(t, string(repository.OrderStatusFailed), order.Status)

	// a failed payment must not cost the buyer the cart
	cartItems, err := env.queries.GetCartItems(c, seedCartMina)
	require.NoError(t, err)
	assert.Len(t, cartItems, 2)
}
