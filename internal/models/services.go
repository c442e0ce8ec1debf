package models

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_session.go . SessionService
type SessionService interface {
	Begin(submitter Submitter, submission Submission) (decimal.Decimal, error)

	Confirm(submitterID string, anon bool) (*PendingPost, error)
}

//go:generate mockgen -destination=mocks/mock_order.go . OrderService
type OrderService interface {
	PlaceOrder(ctx context.Context, pending PendingPost) (string, error)

	GetOrders(ctx context.Context, submitterID string) ([]Order, error)
}

//go:generate mockgen -destination=mocks/mock_invoice.go . InvoiceService
type InvoiceService interface {
	CreateInvoice(ctx context.Context, priceUSD decimal.Decimal, submitterID string) (*Invoice, error)

	QueryStatus(ctx context.Context, invoiceID string) (PaymentStatus, error)
}

//go:generate mockgen -destination=mocks/mock_publisher.go . PublisherService
type PublisherService interface {
	Publish(ctx context.Context, order Order) error
}

//go:generate mockgen -destination=mocks/mock_sink.go . Sink
type Sink interface {
	SendText(ctx context.Context, chatID, text string) error

	SendImage(ctx context.Context, chatID, fileID, caption string) error

	SendVoice(ctx context.Context, chatID, fileID, caption string) error
}

//go:generate mockgen -destination=mocks/mock_jwt.go . JWTService
type JWTService interface {
	GenerateJWT(subject, name string) (string, error)

	ValidateToken(token string) (*jwt.Token, error)
}
