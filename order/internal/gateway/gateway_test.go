package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shafe/handcraft/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.Gateway{
		BaseURL:       server.URL,
		StoreID:       "shafe-test",
		StorePassword: "secret",
		SuccessURL:    "https://shop.example.com/payment/success",
		FailURL:       "https://shop.example.com/payment/fail",
	}, server.Client())
}

func TestInitiateSession(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "shafe-test", r.PostForm.Get("store_id"))
		assert.Equal(t, "order-1", r.PostForm.Get("tran_id"))
		assert.Equal(t, "150.00", r.PostForm.Get("total_amount"))
		assert.Equal(t, "BDT", r.PostForm.Get("currency"))

		err := json.NewEncoder(w).Encode(Session{
			Status:         "SUCCESS",
			SessionKey:     "session-key",
			GatewayPageURL: "https://gateway.example.com/pay/session-key",
		})
		require.NoError(t, err)
	}))

	session, err := client.InitiateSession(context.Background(), InitiateParams{
		TransactionID: "order-1",
		Amount:        decimal.NewFromInt(150),
		CustomerName:  "customer",
		CustomerEmail: "customer@example.com",
		Address:       "Dhaka",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.example.com/pay/session-key", session.GatewayPageURL)
}

func TestInitiateSessionRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewEncoder(w).Encode(Session{
			Status:       "FAILED",
			FailedReason: "store credential mismatch",
		})
		require.NoError(t, err)
	}))

	_, err := client.InitiateSession(context.Background(), InitiateParams{
		TransactionID: "order-1",
		Amount:        decimal.NewFromInt(150),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store credential mismatch")
}

func TestValidateTransaction(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "val-1", r.URL.Query().Get("val_id"))
		assert.Equal(t, "shafe-test", r.URL.Query().Get("store_id"))

		err := json.NewEncoder(w).Encode(Validation{
			Status:        StatusValid,
			TransactionID: "order-1",
			ValidationID:  "val-1",
			Amount:        "150.00",
		})
		require.NoError(t, err)
	}))

	validation, err := client.ValidateTransaction(context.Background(), "val-1")
	require.NoError(t, err)
	assert.True(t, validation.Paid())
	assert.Equal(t, "order-1", validation.TransactionID)
}

func TestValidationPaid(t *testing.T) {
	assert.True(t, Validation{Status: StatusValid}.Paid())
	assert.True(t, Validation{Status: StatusValidated}.Paid())
	assert.False(t, Validation{Status: "FAILED"}.Paid())
	assert.False(t, Validation{Status: "CANCELLED"}.Paid())
}
