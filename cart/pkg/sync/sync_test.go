package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shafe/handcraft/cart/pkg/request"
)

func validDesign() request.CustomDesign {
	return request.CustomDesign{
		Name:  "sunset mug",
		Price: decimal.NewFromInt(25),
		Image: "data:image/png;base64,iVBORw0KGgo=",
		Material: request.Selection{
			Name:       "ceramic",
			Multiplier: decimal.NewFromInt(1),
		},
		Size: request.Selection{
			Name:       "medium",
			Multiplier: decimal.NewFromInt(1),
		},
	}
}

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "cart.json"))
}

type fakeCart struct {
	addCalls   atomic.Int64
	failAdd    bool
	failFetch  bool
	failWishes bool
}

func (f *fakeCart) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /carts/items", func(w http.ResponseWriter, r *http.Request) {
		f.addCalls.Add(1)
		if f.failAdd {
			writeEnvelope(t, w, http.StatusInternalServerError, nil)
			return
		}
		writeEnvelope(t, w, http.StatusCreated, map[string]any{})
	})
	mux.HandleFunc("GET /carts", func(w http.ResponseWriter, r *http.Request) {
		if f.failFetch {
			writeEnvelope(t, w, http.StatusInternalServerError, nil)
			return
		}
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"cart": map[string]any{
				"id":      uuid.NewString(),
				"user_id": uuid.NewString(),
				"cart_items": []map[string]any{
					{
						"id":       uuid.NewString(),
						"cart_id":  uuid.NewString(),
						"quantity": 2,
						"price":    "25",
					},
				},
			},
		})
	})
	mux.HandleFunc("GET /wishlists", func(w http.ResponseWriter, r *http.Request) {
		if f.failWishes {
			writeEnvelope(t, w, http.StatusInternalServerError, nil)
			return
		}
		writeEnvelope(t, w, http.StatusOK, map[string]any{
			"wishlist": map[string]any{
				"id":      uuid.NewString(),
				"user_id": uuid.NewString(),
				"products": []map[string]any{
					{"id": uuid.NewString(), "name": "woven basket", "price": "40"},
				},
			},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, statusCode int, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(map[string]any{
		"status":     http.StatusText(statusCode),
		"statusCode": statusCode,
		"message":    http.StatusText(statusCode),
		"data":       data,
	})
	require.NoError(t, err)
}

func newSyncer(t *testing.T, baseURL string, store LocalStore) *Syncer {
	t.Helper()
	return NewSyncer(Config{
		BaseURL: baseURL,
		Store:   store,
		Logger:  zerolog.Nop(),
	})
}

func TestSyncSubmitsAllItemsAndClearsStore(t *testing.T) {
	fake := &fakeCart{}
	server := fake.server(t)
	store := newFileStore(t)
	syncer := newSyncer(t, server.URL, store)

	_, err := syncer.AddLocalItem(context.Background(), validDesign(), 1, "")
	require.NoError(t, err)
	_, err = syncer.AddLocalItem(context.Background(), validDesign(), 3, "gift wrap")
	require.NoError(t, err)

	report, err := syncer.Sync(context.Background(), "token")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 0, report.Failed())
	assert.Equal(t, int64(2), fake.addCalls.Load())

	locals, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, locals)

	require.Len(t, syncer.Items(), 1)
	assert.Len(t, syncer.Wishlist(), 1)
}

func TestSyncValidationFailureRetainsStoreAndSubmitsRest(t *testing.T) {
	fake := &fakeCart{}
	server := fake.server(t)
	store := newFileStore(t)
	syncer := newSyncer(t, server.URL, store)

	_, err := syncer.AddLocalItem(context.Background(), validDesign(), 1, "")
	require.NoError(t, err)
	bad := validDesign()
	bad.Name = "   "
	_, err = syncer.AddLocalItem(context.Background(), bad, 1, "")
	require.NoError(t, err)
	_, err = syncer.AddLocalItem(context.Background(), validDesign(), 1, "")
	require.NoError(t, err)

	report, err := syncer.Sync(context.Background(), "token")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.ValidationFailed)
	assert.Equal(t, int64(2), fake.addCalls.Load())

	locals, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, locals, 3)
}

func TestSyncBadPriceNeverHitsNetwork(t *testing.T) {
	fake := &fakeCart{}
	server := fake.server(t)
	store := newFileStore(t)
	syncer := newSyncer(t, server.URL, store)

	bad := validDesign()
	bad.Price = decimal.Zero
	_, err := syncer.AddLocalItem(context.Background(), bad, 1, "")
	require.NoError(t, err)

	report, err := syncer.Sync(context.Background(), "token")
	require.NoError(t, err)

	assert.Equal(t, 1, report.ValidationFailed)
	assert.Equal(t, int64(0), fake.addCalls.Load())
}

func TestSyncRejectsBadImagePayloads(t *testing.T) {
	tests := []struct {
		name  string
		image string
	}{
		{name: "NotADataURI", image: "https://cdn.example.com/mug.png"},
		{name: "NotBase64Encoded", image: "data:image/png,raw-bytes"},
		{name: "Oversized", image: "data:image/png;base64," + strings.Repeat("A", request.MaxDesignImageBytes)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fake := &fakeCart{}
			server := fake.server(t)
			store := newFileStore(t)
			syncer := newSyncer(t, server.URL, store)

			bad := validDesign()
			bad.Image = test.image
			_, err := syncer.AddLocalItem(context.Background(), bad, 1, "")
			require.NoError(t, err)

			report, err := syncer.Sync(context.Background(), "token")
			require.NoError(t, err)

			assert.Equal(t, 1, report.ValidationFailed)
			assert.Equal(t, int64(0), fake.addCalls.Load())
		})
	}
}

func TestSyncNetworkFailureRetainsStore(t *testing.T) {
	fake := &fakeCart{failAdd: true}
	server := fake.server(t)
	store := newFileStore(t)
	syncer := newSyncer(t, server.URL, store)

	_, err := syncer.AddLocalItem(context.Background(), validDesign(), 1, "")
	require.NoError(t, err)

	report, err := syncer.Sync(context.Background(), "token")
	require.NoError(t, err)

	assert.Equal(t, 1, report.NetworkFailed)
	require.Len(t, report.Results, 1)
	assert.Equal(t, OutcomeNetworkFailed, report.Results[0].Outcome)

	locals, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, locals, 1)
}

func TestSyncFetchFailurePreservesPriorState(t *testing.T) {
	fake := &fakeCart{}
	server := fake.server(t)
	store := newFileStore(t)
	syncer := newSyncer(t, server.URL, store)

	_, err := syncer.Sync(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, syncer.Items(), 1)

	fake.failFetch = true
	_, err = syncer.Sync(context.Background(), "token")
	require.Error(t, err)
	assert.Len(t, syncer.Items(), 1)
}

func TestSyncWishlistFailureIsSuppressed(t *testing.T) {
	fake := &fakeCart{failWishes: true}
	server := fake.server(t)
	store := newFileStore(t)
	syncer := newSyncer(t, server.URL, store)

	_, err := syncer.Sync(context.Background(), "token")
	require.NoError(t, err)
	assert.Len(t, syncer.Items(), 1)
	assert.Empty(t, syncer.Wishlist())
}

func TestObserveTokenTriggersOncePerLogin(t *testing.T) {
	fake := &fakeCart{}
	server := fake.server(t)
	store := newFileStore(t)
	syncer := newSyncer(t, server.URL, store)

	_, err := syncer.AddLocalItem(context.Background(), validDesign(), 1, "")
	require.NoError(t, err)

	_, synced, err := syncer.ObserveToken(context.Background(), "token")
	require.NoError(t, err)
	assert.True(t, synced)
	assert.Equal(t, int64(1), fake.addCalls.Load())

	_, synced, err = syncer.ObserveToken(context.Background(), "refreshed-token")
	require.NoError(t, err)
	assert.False(t, synced)
	assert.Equal(t, int64(1), fake.addCalls.Load())

	// logging out and back in arms the trigger again
	_, synced, err = syncer.ObserveToken(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, synced)

	_, err = syncer.AddLocalItem(context.Background(), validDesign(), 1, "")
	require.NoError(t, err)
	_, synced, err = syncer.ObserveToken(context.Background(), "second-login")
	require.NoError(t, err)
	assert.True(t, synced)
	assert.Equal(t, int64(2), fake.addCalls.Load())
}

func TestUpdateLocalQuantityRemovesAtZero(t *testing.T) {
	store := newFileStore(t)
	syncer := newSyncer(t, "http://127.0.0.1:0", store)

	item, err := syncer.AddLocalItem(context.Background(), validDesign(), 2, "")
	require.NoError(t, err)

	require.NoError(t, syncer.UpdateLocalQuantity(context.Background(), item.LocalID, 5))
	locals, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, locals, 1)
	assert.Equal(t, int32(5), locals[0].Quantity)

	require.NoError(t, syncer.UpdateLocalQuantity(context.Background(), item.LocalID, 0))
	locals, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, locals)
}
