package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pay2post/pay2post/internal/middlewares"
	"github.com/pay2post/pay2post/internal/models"
	"github.com/pay2post/pay2post/internal/services"
)

type quoteResponse struct {
	PriceUSD string `json:"price_usd"`
}

type confirmResponse struct {
	InvoiceURL string `json:"invoice_url"`
}

// BeginSubmission quotes a price for the submitted content and opens a
// pending session for the submitter. Nothing is persisted yet; the order
// appears only after the anonymity confirmation.
func BeginSubmission(w http.ResponseWriter, r *http.Request) {
	submission := middlewares.GetParsedJSONData[models.Submission](w, r)

	sessionService := middlewares.GetServiceFromContext[models.SessionService](w, r, middlewares.SessionServiceKey)
	submitter := middlewares.GetSubmitterFromContext(w, r)

	price, err := (*sessionService).Begin(*submitter, submission)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedContent) {
			http.Error(w, "Unsupported message type", http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during pricing submission: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	middlewares.EncodeJSONResponse(w, quoteResponse{PriceUSD: price.StringFixed(2)})
}

// ConfirmSubmission consumes the pending session, creates the invoice and
// the waiting order, and returns the payment link.
func ConfirmSubmission(w http.ResponseWriter, r *http.Request) {
	confirmation := middlewares.GetParsedJSONData[models.Confirmation](w, r)

	var anon bool
	switch strings.ToLower(strings.TrimSpace(confirmation.Reply)) {
	case "yes":
		anon = true
	case "no":
		anon = false
	default:
		http.Error(w, "Reply with YES or NO", http.StatusUnprocessableEntity)
		return
	}

	sessionService := middlewares.GetServiceFromContext[models.SessionService](w, r, middlewares.SessionServiceKey)
	orderService := middlewares.GetServiceFromContext[models.OrderService](w, r, middlewares.OrderServiceKey)
	submitter := middlewares.GetSubmitterFromContext(w, r)

	pending, err := (*sessionService).Confirm(submitter.ID, anon)
	if err != nil {
		if errors.Is(err, services.ErrNoPendingSession) {
			http.Error(w, "Please send your message again", http.StatusConflict)
			return
		}

		http.Error(w, fmt.Sprintf("Error occurred during confirming submission: %s", err.Error()), http.StatusInternalServerError)
		return
	}

	invoiceURL, err := (*orderService).PlaceOrder(r.Context(), *pending)
	if err != nil {
		http.Error(w, "Error generating payment link", http.StatusBadGateway)
		return
	}

	middlewares.EncodeJSONResponse(w, confirmResponse{InvoiceURL: invoiceURL})
}
