package services

import (
	"context"
	"fmt"

	"github.com/pay2post/pay2post/internal/database"
	"github.com/pay2post/pay2post/internal/logger"
	"github.com/pay2post/pay2post/internal/models"
	"github.com/pay2post/pay2post/internal/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderService struct {
	storage orderStorage
	gateway models.InvoiceService
}

type orderStorage interface {
	CreateOrder(ctx context.Context, order database.OrderDB) error
	FindOrdersBySubmitter(ctx context.Context, submitterID string) (*[]database.OrderDB, error)
}

func NewOrderService(storage orderStorage, gateway models.InvoiceService) *OrderService {
	return &OrderService{storage: storage, gateway: gateway}
}

// PlaceOrder creates an invoice for the confirmed post and persists the
// order in waiting state. The invoice is created first: a row without an
// invoice could never be paid and would be rescanned forever, while an
// invoice without a row is inert on the money side. If persistence fails
// after the invoice was issued, the orphan invoice is logged for manual
// reconciliation — it is not auto-healed.
func (o *OrderService) PlaceOrder(ctx context.Context, pending models.PendingPost) (string, error) {
	invoice, err := o.gateway.CreateInvoice(ctx, pending.PriceUSD, pending.SubmitterID)
	if err != nil {
		return "", fmt.Errorf("failed to create invoice: %w", err)
	}

	err = o.storage.CreateOrder(ctx, database.OrderDB{
		SubmitterID: pending.SubmitterID,
		DisplayName: pending.DisplayName,
		ContentKind: string(pending.Kind),
		Content:     pending.Content,
		PriceUSD:    pending.PriceUSD.InexactFloat64(),
		Anon:        pending.Anon,
		InvoiceID:   invoice.ID,
		Status:      database.OrderStatusDB{OrderStatus: models.StatusWaiting},
	})
	if err != nil {
		logger.Log.Error("orphan invoice: order persistence failed after invoice creation",
			zap.String("invoiceID", invoice.ID),
			zap.String("submitterID", pending.SubmitterID),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to persist order for invoice %s: %w", invoice.ID, err)
	}

	return invoice.URL, nil
}

// GetOrders returns the submitter's orders, oldest first.
func (o *OrderService) GetOrders(ctx context.Context, submitterID string) ([]models.Order, error) {
	orders, err := o.storage.FindOrdersBySubmitter(ctx, submitterID)
	if err != nil {
		return []models.Order{}, err
	}

	if orders == nil {
		return []models.Order{}, nil
	}

	result := make([]models.Order, len(*orders))
	for i, order := range *orders {
		result[i] = models.Order{
			SubmitterID: order.SubmitterID,
			DisplayName: order.DisplayName,
			Kind:        models.ContentKind(order.ContentKind),
			Content:     order.Content,
			PriceUSD:    decimal.NewFromFloat(order.PriceUSD),
			Anon:        order.Anon,
			InvoiceID:   order.InvoiceID,
			Status:      order.Status.OrderStatus,
			CreatedAt:   utils.RFC3339Date{Time: order.CreatedAt},
		}
	}

	return result, nil
}
