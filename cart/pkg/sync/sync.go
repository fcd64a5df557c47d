package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	gosync "sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shafe/handcraft/cart/pkg/request"
	"github.com/shafe/handcraft/cart/pkg/response"
	catalogResponse "github.com/shafe/handcraft/catalog/pkg/response"
	"github.com/shafe/handcraft/internal/log"
)

// Outcome classifies what happened to a single local cart item during a
// reconciliation run.
type Outcome string

const (
	OutcomeOk               Outcome = "ok"
	OutcomeValidationFailed Outcome = "validation_failed"
	OutcomeNetworkFailed    Outcome = "network_failed"
)

// ItemResult pairs a local item with its reconciliation outcome so the
// caller can surface per-item feedback instead of a single error toast.
type ItemResult struct {
	LocalID string
	Outcome Outcome
	Err     error
}

// Report summarizes one reconciliation run.
type Report struct {
	Results          []ItemResult
	Succeeded        int
	ValidationFailed int
	NetworkFailed    int
}

// Failed reports how many items could not be submitted, for any reason.
func (r Report) Failed() int {
	return r.ValidationFailed + r.NetworkFailed
}

// LocalCartItem is a design-studio item that only exists on the device.
// It has no server identity until reconciliation submits it.
type LocalCartItem struct {
	LocalID        string               `json:"local_id"`
	Quantity       int32                `json:"quantity"`
	SpecialRequest string               `json:"special_request,omitempty"`
	Design         request.CustomDesign `json:"design"`
}

// Config wires a Syncer. BaseURL points at the cart service, e.g.
// "http://localhost:8082/api". Store must not be nil.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Store      LocalStore
	Logger     zerolog.Logger
}

// Syncer reconciles locally stored custom-design cart items with the
// server cart once a session token becomes available, and mirrors the
// authoritative server cart and wishlist in memory afterwards.
type Syncer struct {
	baseURL string
	client  *http.Client
	store   LocalStore
	logger  zerolog.Logger

	mu       gosync.Mutex
	token    string
	items    []response.CartItem
	wishlist []catalogResponse.Product
}

func NewSyncer(cfg Config) *Syncer {
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Syncer{
		baseURL: cfg.BaseURL,
		client:  client,
		store:   cfg.Store,
		logger:  cfg.Logger,
	}
}

// ObserveToken records the current session token. When the token goes
// from absent to present it triggers exactly one reconciliation run;
// every other transition only updates the stored token. The returned
// bool reports whether a run happened.
func (s *Syncer) ObserveToken(c context.Context, token string) (Report, bool, error) {
	s.mu.Lock()
	previous := s.token
	s.token = token
	s.mu.Unlock()

	if previous != "" || token == "" {
		return Report{}, false, nil
	}
	report, err := s.Sync(c, token)
	return report, true, err
}

// Sync runs one reconciliation pass: submit every stored local item to
// the server cart, then refresh the in-memory cart and wishlist from
// the server. The local store is cleared only when every submission
// succeeded; any failure leaves it untouched so a later run can retry.
func (s *Syncer) Sync(c context.Context, token string) (Report, error) {
	logger := s.logger.With().Str(log.KeyProcess, "Sync").Logger()

	locals, err := s.store.Load(c)
	if err != nil {
		err = fmt.Errorf("failed loading local cart items with error=%w", err)
		logger.Error().Err(err).Msg("failed loading local cart items")
		return Report{}, err
	}

	report := Report{}
	for _, item := range locals {
		result := ItemResult{LocalID: item.LocalID, Outcome: OutcomeOk}
		if err := item.Design.Validate(); err != nil {
			result.Outcome = OutcomeValidationFailed
			result.Err = err
			report.ValidationFailed++
			report.Results = append(report.Results, result)
			logger.Info().
				Err(err).
				Str(log.KeyCartItemID, item.LocalID).
				Msg("skipped invalid local cart item")
			continue
		}
		if err := s.submitItem(c, token, item); err != nil {
			result.Outcome = OutcomeNetworkFailed
			result.Err = err
			report.NetworkFailed++
			report.Results = append(report.Results, result)
			logger.Error().
				Err(err).
				Str(log.KeyCartItemID, item.LocalID).
				Msg("failed submitting local cart item")
			continue
		}
		report.Succeeded++
		report.Results = append(report.Results, result)
	}
	logger.Info().
		Int(log.KeySyncSucceeded, report.Succeeded).
		Int(log.KeySyncFailed, report.Failed()).
		Msg("submitted local cart items")

	if len(locals) > 0 && report.Failed() == 0 {
		if err := s.store.Clear(c); err != nil {
			err = fmt.Errorf("failed clearing local cart items with error=%w", err)
			logger.Error().Err(err).Msg("failed clearing local cart items")
			return report, err
		}
	}

	if err := s.fetchCart(c, token); err != nil {
		err = fmt.Errorf("failed fetching cart with error=%w", err)
		logger.Error().Err(err).Msg("failed fetching cart")
		return report, err
	}
	// a missing wishlist must never block the cart refresh
	if err := s.fetchWishlist(c, token); err != nil {
		logger.Warn().Err(err).Msg("failed fetching wishlist")
	}
	return report, nil
}

// AddLocalItem stores a design-studio item on the device. Validation is
// deferred until reconciliation so a half-finished design can be kept.
func (s *Syncer) AddLocalItem(c context.Context, design request.CustomDesign, quantity int32, specialRequest string) (LocalCartItem, error) {
	item := LocalCartItem{
		LocalID:        uuid.NewString(),
		Quantity:       quantity,
		SpecialRequest: specialRequest,
		Design:         design,
	}
	locals, err := s.store.Load(c)
	if err != nil {
		return LocalCartItem{}, fmt.Errorf("failed loading local cart items with error=%w", err)
	}
	locals = append(locals, item)
	if err := s.store.Save(c, locals); err != nil {
		return LocalCartItem{}, fmt.Errorf("failed saving local cart items with error=%w", err)
	}
	return item, nil
}

// UpdateLocalQuantity sets the quantity of a stored local item. A
// quantity of zero or less removes the item.
func (s *Syncer) UpdateLocalQuantity(c context.Context, localID string, quantity int32) error {
	if quantity <= 0 {
		return s.RemoveLocalItem(c, localID)
	}
	locals, err := s.store.Load(c)
	if err != nil {
		return fmt.Errorf("failed loading local cart items with error=%w", err)
	}
	for i := range locals {
		if locals[i].LocalID == localID {
			locals[i].Quantity = quantity
			return s.store.Save(c, locals)
		}
	}
	return nil
}

// RemoveLocalItem drops a stored local item. Removing an unknown id is
// a no-op.
func (s *Syncer) RemoveLocalItem(c context.Context, localID string) error {
	locals, err := s.store.Load(c)
	if err != nil {
		return fmt.Errorf("failed loading local cart items with error=%w", err)
	}
	kept := locals[:0]
	for _, item := range locals {
		if item.LocalID != localID {
			kept = append(kept, item)
		}
	}
	return s.store.Save(c, kept)
}

// UpdateServerQuantity sets the quantity of a server cart item and
// refreshes the in-memory cart. A quantity of zero or less removes the
// item instead.
func (s *Syncer) UpdateServerQuantity(c context.Context, token string, itemID uuid.UUID, quantity int32) error {
	if quantity <= 0 {
		return s.RemoveServerItem(c, token, itemID)
	}
	body := request.UpdateCartItem{Quantity: quantity}
	if err := s.do(c, token, http.MethodPut, "/carts/items/"+itemID.String(), body, nil); err != nil {
		return fmt.Errorf("failed updating cart item=%s with error=%w", itemID, err)
	}
	return s.fetchCart(c, token)
}

// RemoveServerItem deletes a server cart item and refreshes the
// in-memory cart.
func (s *Syncer) RemoveServerItem(c context.Context, token string, itemID uuid.UUID) error {
	if err := s.do(c, token, http.MethodDelete, "/carts/items/"+itemID.String(), nil, nil); err != nil {
		return fmt.Errorf("failed removing cart item=%s with error=%w", itemID, err)
	}
	return s.fetchCart(c, token)
}

// Items returns the last server cart snapshot.
func (s *Syncer) Items() []response.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]response.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Wishlist returns the last wishlist snapshot.
func (s *Syncer) Wishlist() []catalogResponse.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]catalogResponse.Product, len(s.wishlist))
	copy(products, s.wishlist)
	return products
}

// LocalItems returns the items currently persisted on the device.
func (s *Syncer) LocalItems(c context.Context) ([]LocalCartItem, error) {
	return s.store.Load(c)
}

func (s *Syncer) submitItem(c context.Context, token string, item LocalCartItem) error {
	design := item.Design
	body := request.InsertCartItem{
		Quantity:       item.Quantity,
		Price:          design.Price,
		SpecialRequest: item.SpecialRequest,
		CustomDesign:   &design,
	}
	return s.do(c, token, http.MethodPost, "/carts/items", body, nil)
}

func (s *Syncer) fetchCart(c context.Context, token string) error {
	data := struct {
		Cart response.Cart `json:"cart"`
	}{}
	if err := s.do(c, token, http.MethodGet, "/carts", nil, &data); err != nil {
		return err
	}
	s.mu.Lock()
	s.items = data.Cart.CartItems
	s.mu.Unlock()
	return nil
}

func (s *Syncer) fetchWishlist(c context.Context, token string) error {
	data := struct {
		Wishlist response.Wishlist `json:"wishlist"`
	}{}
	if err := s.do(c, token, http.MethodGet, "/wishlists", nil, &data); err != nil {
		return err
	}
	s.mu.Lock()
	s.wishlist = data.Wishlist.Products
	s.mu.Unlock()
	return nil
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func (s *Syncer) do(c context.Context, token, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload := &bytes.Buffer{}
		if err := json.NewEncoder(payload).Encode(body); err != nil {
			return fmt.Errorf("failed encoding request body with error=%w", err)
		}
		reader = payload
	}
	req, err := http.NewRequestWithContext(c, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed creating request with error=%w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed calling %s %s with error=%w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		env := envelope{}
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return fmt.Errorf("%s %s returned status=%d message=%s", method, path, resp.StatusCode, env.Message)
	}
	if out == nil {
		return nil
	}
	env := envelope{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed decoding response with error=%w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed decoding response data with error=%w", err)
	}
	return nil
}
