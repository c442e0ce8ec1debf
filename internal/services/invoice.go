package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pay2post/pay2post/internal/models"
	"github.com/shopspring/decimal"
)

// SupportedPayCurrencies lists the settlement currencies the processor
// accepts for this account.
var SupportedPayCurrencies = []string{"btc", "eth", "sol", "trx", "usdt", "usdc", "xmr", "ton"}

var (
	errProcessorServer     = errors.New("payment processor internal error")
	errIncompleteInvoice   = errors.New("processor response misses invoice_url or invoice_id")
	errUnexpectedProcessor = errors.New("unexpected payment processor response")
)

// InvoiceService talks to the payment processor's invoice API. Every call
// carries a bounded timeout so one slow processor call cannot stall a whole
// reconciliation cycle.
type InvoiceService struct {
	endpoint    string
	apiKey      string
	payCurrency string
	callbackURL string
	client      *http.Client
}

const invoiceRequestTimeout = 10 * time.Second

func NewInvoiceService(endpoint, apiKey, payCurrency, callbackURL string) *InvoiceService {
	return &InvoiceService{
		endpoint:    endpoint,
		apiKey:      apiKey,
		payCurrency: payCurrency,
		callbackURL: callbackURL,
		client:      &http.Client{Timeout: invoiceRequestTimeout},
	}
}

type createInvoiceRequest struct {
	PriceAmount      float64 `json:"price_amount"`
	PriceCurrency    string  `json:"price_currency"`
	PayCurrency      string  `json:"pay_currency"`
	OrderID          string  `json:"order_id"`
	OrderDescription string  `json:"order_description"`
	IPNCallbackURL   string  `json:"ipn_callback_url"`
}

// Some processors return invoice_id as a JSON number, others as a string.
type createInvoiceResponse struct {
	InvoiceURL string      `json:"invoice_url"`
	InvoiceID  json.Number `json:"invoice_id"`
}

type invoiceStatusResponse struct {
	PaymentStatus string `json:"payment_status"`
}

// CreateInvoice requests a USD-denominated invoice payable in the configured
// settlement currency. The order_id it sends is correlation metadata for the
// processor's dashboard, not this service's key; the returned invoice
// identifier is.
func (is *InvoiceService) CreateInvoice(ctx context.Context, priceUSD decimal.Decimal, submitterID string) (*models.Invoice, error) {
	payload := createInvoiceRequest{
		PriceAmount:      priceUSD.InexactFloat64(),
		PriceCurrency:    "usd",
		PayCurrency:      is.payCurrency,
		OrderID:          fmt.Sprintf("%s_%d", submitterID, time.Now().Unix()),
		OrderDescription: fmt.Sprintf("Channel post for user %s", submitterID),
		IPNCallbackURL:   is.callbackURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/v1/invoice", is.endpoint), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", is.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := is.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send invoice request: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode >= http.StatusInternalServerError {
		return nil, errProcessorServer
	}

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: status %d", errUnexpectedProcessor, res.StatusCode)
	}

	var parsedData createInvoiceResponse
	var buf bytes.Buffer

	if _, err := buf.ReadFrom(res.Body); err != nil {
		return nil, fmt.Errorf("failed to read from response body: %w", err)
	}

	if err := json.Unmarshal(buf.Bytes(), &parsedData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invoice response: %w", err)
	}

	if parsedData.InvoiceURL == "" || parsedData.InvoiceID.String() == "" {
		return nil, errIncompleteInvoice
	}

	return &models.Invoice{
		ID:  parsedData.InvoiceID.String(),
		URL: parsedData.InvoiceURL,
	}, nil
}

// QueryStatus fetches the processor-reported payment status of an invoice.
// Callers must treat any error as "status unknown, retry later" — never as
// paid and never as a terminal order failure.
func (is *InvoiceService) QueryStatus(ctx context.Context, invoiceID string) (models.PaymentStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/invoice/%s", is.endpoint, invoiceID), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", is.apiKey)

	res, err := is.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send status request: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", errUnexpectedProcessor, res.StatusCode)
	}

	var parsedData invoiceStatusResponse
	var buf bytes.Buffer

	if _, err := buf.ReadFrom(res.Body); err != nil {
		return "", fmt.Errorf("failed to read from response body: %w", err)
	}

	if err := json.Unmarshal(buf.Bytes(), &parsedData); err != nil {
		return "", fmt.Errorf("failed to unmarshal status response: %w", err)
	}

	return models.PaymentStatus(parsedData.PaymentStatus), nil
}
