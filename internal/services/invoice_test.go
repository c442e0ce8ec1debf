package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pay2post/pay2post/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoice(t *testing.T) {
	testCases := []struct {
		testName        string
		handler         http.HandlerFunc
		expectedID      string
		expectedURL     string
		expectErr       bool
	}{
		{
			testName: "Should create an invoice",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/invoice", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

				var payload map[string]interface{}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				assert.Equal(t, "usd", payload["price_currency"])
				assert.Equal(t, "btc", payload["pay_currency"])
				assert.InDelta(t, 1.10, payload["price_amount"], 0.001)
				assert.Contains(t, payload["order_id"], "42_")

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"invoice_url": "https://pay.example/inv/abc", "invoice_id": "abc"}`))
			},
			expectedID:  "abc",
			expectedURL: "https://pay.example/inv/abc",
		},
		{
			testName: "Should accept a numeric invoice identifier",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"invoice_url": "https://pay.example/inv/5077125051", "invoice_id": 5077125051}`))
			},
			expectedID:  "5077125051",
			expectedURL: "https://pay.example/inv/5077125051",
		},
		{
			testName: "Should fail when invoice_url is missing",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"invoice_id": "abc"}`))
			},
			expectErr: true,
		},
		{
			testName: "Should fail when invoice_id is missing",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"invoice_url": "https://pay.example/inv/abc"}`))
			},
			expectErr: true,
		},
		{
			testName: "Should fail on a processor server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectErr: true,
		},
		{
			testName: "Should fail on a rejected request",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			expectErr: true,
		},
		{
			testName: "Should fail on a malformed response body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			testServer := httptest.NewServer(tc.handler)
			defer testServer.Close()

			invoiceService := NewInvoiceService(testServer.URL, "test-key", "btc", "https://example.com")

			invoice, err := invoiceService.CreateInvoice(context.Background(), decimal.NewFromFloat(1.10), "42")

			if tc.expectErr {
				assert.Error(t, err)
				assert.Nil(t, invoice)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, invoice.ID)
			assert.Equal(t, tc.expectedURL, invoice.URL)
		})
	}
}

func TestQueryStatus(t *testing.T) {
	testCases := []struct {
		testName       string
		handler        http.HandlerFunc
		expectedStatus models.PaymentStatus
		expectErr      bool
	}{
		{
			testName: "Should report a finished invoice",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/v1/invoice/abc", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

				w.Write([]byte(`{"payment_status": "finished"}`))
			},
			expectedStatus: models.PaymentStatusFinished,
		},
		{
			testName: "Should pass through a pending status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"payment_status": "waiting"}`))
			},
			expectedStatus: models.PaymentStatus("waiting"),
		},
		{
			testName: "Should fail on a processor error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectErr: true,
		},
		{
			testName: "Should fail on a malformed response body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			testServer := httptest.NewServer(tc.handler)
			defer testServer.Close()

			invoiceService := NewInvoiceService(testServer.URL, "test-key", "btc", "https://example.com")

			status, err := invoiceService.QueryStatus(context.Background(), "abc")

			if tc.expectErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, status)
		})
	}
}
