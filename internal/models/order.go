package models

import (
	"github.com/pay2post/pay2post/internal/utils"
	"github.com/shopspring/decimal"
)

type ContentKind string

const (
	ContentKindText  ContentKind = "text"
	ContentKindImage ContentKind = "image"
	ContentKindVoice ContentKind = "voice"
)

type OrderStatus string

const (
	StatusWaiting OrderStatus = "waiting"
	StatusPaid    OrderStatus = "paid"
)

// Submission is what the chat front-end delivers: the content kind plus the
// payload relevant for that kind. For image and voice the payload is an
// opaque media file reference, not the bytes themselves.
type Submission struct {
	Kind            ContentKind `json:"content_kind"`
	Text            string      `json:"text,omitempty"`
	FileID          string      `json:"file_id,omitempty"`
	DurationSeconds int         `json:"duration_seconds,omitempty"`
}

// Content returns the payload that gets persisted with the order.
func (s Submission) Content() string {
	if s.Kind == ContentKindText {
		return s.Text
	}
	return s.FileID
}

// Confirmation is the submitter's freeform reply to the anonymity prompt,
// interpreted case-insensitively as yes or no.
type Confirmation struct {
	Reply string `json:"reply"`
}

// PendingPost is a priced submission waiting for the anonymity confirmation.
// It lives only in the session manager until an order is placed for it.
type PendingPost struct {
	SubmitterID string
	DisplayName string
	Kind        ContentKind
	Content     string
	PriceUSD    decimal.Decimal
	Anon        bool
}

type Order struct {
	SubmitterID string            `json:"-"`
	DisplayName string            `json:"-"`
	Kind        ContentKind       `json:"content_kind"`
	Content     string            `json:"-"`
	PriceUSD    decimal.Decimal   `json:"price_usd"`
	Anon        bool              `json:"anon"`
	InvoiceID   string            `json:"invoice_id"`
	Status      OrderStatus       `json:"status"`
	CreatedAt   utils.RFC3339Date `json:"created_at"`
}
