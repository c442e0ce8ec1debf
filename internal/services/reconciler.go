package services

import (
	"context"
	"time"

	"github.com/pay2post/pay2post/internal/database"
	"github.com/pay2post/pay2post/internal/logger"
	"github.com/pay2post/pay2post/internal/models"
	"github.com/pay2post/pay2post/internal/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReconcilerService is the payment-confirmation loop. On every cycle it
// rescans all waiting orders, asks the processor for each invoice's status
// and, once an invoice is finished, publishes the content and moves the
// order to paid.
//
// The loop is level-triggered: there is no retry counter or backoff, the
// polling interval itself bounds the retry rate for both status queries and
// failed publishes.
type ReconcilerService struct {
	storage   reconcilerStorage
	gateway   models.InvoiceService
	publisher models.PublisherService
	interval  time.Duration
}

type reconcilerStorage interface {
	FindAllWaitingOrders(ctx context.Context) (*[]database.OrderDB, error)
	MarkOrderPaid(ctx context.Context, invoiceID string) (bool, error)
}

func NewReconcilerService(storage reconcilerStorage, gateway models.InvoiceService, publisher models.PublisherService, interval time.Duration) *ReconcilerService {
	return &ReconcilerService{
		storage:   storage,
		gateway:   gateway,
		publisher: publisher,
		interval:  interval,
	}
}

// Run executes cycles until the context is canceled. A cycle always
// completes before the next sleep starts, so iterations never overlap; this
// single-flight discipline is what keeps a finished-but-unpaid order from
// being published twice by racing cycles.
func (rs *ReconcilerService) Run(ctx context.Context) {
	logger.Log.Info("reconciliation loop started", zap.Duration("interval", rs.interval))

	for {
		rs.RunCycle(ctx)

		select {
		case <-ctx.Done():
			logger.Log.Info("reconciliation loop stopped")
			return
		case <-time.After(rs.interval):
		}
	}
}

// RunCycle performs one full pass over all waiting orders. Failures are
// contained per order: a gateway or publish error for one order never
// prevents processing of the rest and never escapes the cycle.
func (rs *ReconcilerService) RunCycle(ctx context.Context) {
	orders, err := rs.storage.FindAllWaitingOrders(ctx)
	if err != nil {
		logger.Log.Error("failed to scan waiting orders", zap.Error(err))
		return
	}

	if orders == nil {
		return
	}

	for _, order := range *orders {
		rs.reconcileOrder(ctx, order)
	}
}

func (rs *ReconcilerService) reconcileOrder(ctx context.Context, order database.OrderDB) {
	status, err := rs.gateway.QueryStatus(ctx, order.InvoiceID)
	if err != nil {
		// Status unknown; the order stays waiting for the next cycle.
		logger.Log.Debug("failed to query invoice status",
			zap.String("invoiceID", order.InvoiceID),
			zap.Error(err),
		)
		return
	}

	if status != models.PaymentStatusFinished {
		return
	}

	if err := rs.publisher.Publish(ctx, models.Order{
		SubmitterID: order.SubmitterID,
		DisplayName: order.DisplayName,
		Kind:        models.ContentKind(order.ContentKind),
		Content:     order.Content,
		PriceUSD:    decimal.NewFromFloat(order.PriceUSD),
		Anon:        order.Anon,
		InvoiceID:   order.InvoiceID,
		Status:      order.Status.OrderStatus,
		CreatedAt:   utils.RFC3339Date{Time: order.CreatedAt},
	}); err != nil {
		// Publish failed after payment was confirmed. Keep the order
		// waiting so the next cycle sees finished again and retries.
		logger.Log.Error("failed to publish paid order",
			zap.String("invoiceID", order.InvoiceID),
			zap.Error(err),
		)
		return
	}

	updated, err := rs.storage.MarkOrderPaid(ctx, order.InvoiceID)
	if err != nil {
		// The content is already in the channel; the next cycle will
		// re-publish when the conditional update keeps failing. This is the
		// at-least-once tradeoff the publish side effect accepts.
		logger.Log.Error("failed to update order status after publish",
			zap.String("invoiceID", order.InvoiceID),
			zap.Error(err),
		)
		return
	}

	if !updated {
		logger.Log.Warn("order was already marked as paid",
			zap.String("invoiceID", order.InvoiceID),
		)
		return
	}

	logger.Log.Info("order published and marked as paid",
		zap.String("invoiceID", order.InvoiceID),
		zap.String("contentKind", order.ContentKind),
		zap.Float64("priceUSD", order.PriceUSD),
	)
}
