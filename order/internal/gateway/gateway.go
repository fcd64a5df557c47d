package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shafe/handcraft/internal/config"
	"github.com/shafe/handcraft/internal/log"
)

const (
	sessionPath    = "/gwprocess/v4/api.php"
	validationPath = "/validator/api/validationserverAPI.php"

	// StatusValid is the gateway verdict for a completed payment.
	StatusValid = "VALID"
	// StatusValidated marks a payment that was already validated once.
	StatusValidated = "VALIDATED"
)

// Client talks to the hosted payment gateway. Amounts are charged in
// BDT, the buyer is redirected to GatewayPageURL to pay.
type Client struct {
	baseURL       string
	storeID       string
	storePassword string
	successURL    string
	failURL       string
	httpClient    *http.Client
}

func NewClient(cfg config.Gateway, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		storeID:       cfg.StoreID,
		storePassword: cfg.StorePassword,
		successURL:    cfg.SuccessURL,
		failURL:       cfg.FailURL,
		httpClient:    httpClient,
	}
}

type InitiateParams struct {
	TransactionID string
	Amount        decimal.Decimal
	CustomerName  string
	CustomerEmail string
	Address       string
}

type Session struct {
	Status         string `json:"status"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
	FailedReason   string `json:"failedreason"`
}

// InitiateSession opens a payment session and returns the redirect the
// buyer must follow.
func (g *Client) InitiateSession(c context.Context, param InitiateParams) (Session, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "initiating payment session").
		Str(log.KeyOrderID, param.TransactionID).
		Logger()

	form := url.Values{}
	form.Set("store_id", g.storeID)
	form.Set("store_passwd", g.storePassword)
	form.Set("tran_id", param.TransactionID)
	form.Set("total_amount", param.Amount.StringFixed(2))
	form.Set("currency", "BDT")
	form.Set("success_url", g.successURL)
	form.Set("fail_url", g.failURL)
	form.Set("cancel_url", g.failURL)
	form.Set("cus_name", param.CustomerName)
	form.Set("cus_email", param.CustomerEmail)
	form.Set("cus_add1", param.Address)
	form.Set("shipping_method", "Courier")
	form.Set("product_category", "handcraft")
	form.Set("product_profile", "physical-goods")

	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		g.baseURL+sessionPath,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return Session{}, fmt.Errorf("failed creating session request with error=%w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("failed initiating payment session with error=%w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Session{}, fmt.Errorf("failed initiating payment session with status=%d", resp.StatusCode)
	}

	session := Session{}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return Session{}, fmt.Errorf("failed decoding payment session with error=%w", err)
	}
	if !strings.EqualFold(session.Status, "SUCCESS") {
		return Session{}, fmt.Errorf("payment session rejected with reason=%s", session.FailedReason)
	}
	logger.Info().Msg("initiated payment session")
	return session, nil
}

type Validation struct {
	Status        string `json:"status"`
	TransactionID string `json:"tran_id"`
	ValidationID  string `json:"val_id"`
	Amount        string `json:"amount"`
	CurrencyType  string `json:"currency_type"`
}

// ValidateTransaction confirms an instant payment notification against
// the gateway before the order is marked paid.
func (g *Client) ValidateTransaction(c context.Context, validationID string) (Validation, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "validating payment").
		Logger()

	query := url.Values{}
	query.Set("val_id", validationID)
	query.Set("store_id", g.storeID)
	query.Set("store_passwd", g.storePassword)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(
		c,
		http.MethodGet,
		g.baseURL+validationPath+"?"+query.Encode(),
		nil,
	)
	if err != nil {
		return Validation{}, fmt.Errorf("failed creating validation request with error=%w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Validation{}, fmt.Errorf("failed validating payment with error=%w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Validation{}, fmt.Errorf("failed validating payment with status=%d", resp.StatusCode)
	}

	validation := Validation{}
	if err := json.NewDecoder(resp.Body).Decode(&validation); err != nil {
		return Validation{}, fmt.Errorf("failed decoding payment validation with error=%w", err)
	}
	logger.Info().Msg("validated payment")
	return validation, nil
}

// Paid reports whether the gateway verdict means the money landed.
func (v Validation) Paid() bool {
	return v.Status == StatusValid || v.Status == StatusValidated
}
