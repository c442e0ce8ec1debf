package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pay2post/pay2post/internal/models"
)

var (
	ErrDuplicateInvoice = errors.New("order with this invoice already exists")
)

const (
	InsertOrderQuery = `
		INSERT INTO
			orders (submitter_id, display_name, content_kind, content, price_usd, anon, invoice_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	SelectWaitingOrdersQuery = `
		SELECT
			submitter_id,
			display_name,
			content_kind,
			content,
			price_usd,
			anon,
			invoice_id,
			status,
			created_at
		FROM
		    orders
		WHERE
		    status = 'waiting'
		ORDER BY
		    created_at
	`
	SelectOrdersBySubmitterQuery = `
		SELECT
			submitter_id,
			display_name,
			content_kind,
			content,
			price_usd,
			anon,
			invoice_id,
			status,
			created_at
		FROM
		    orders
		WHERE
		    submitter_id = $1
		ORDER BY
		    created_at
	`
	MarkOrderPaidQuery = `
		UPDATE
			orders
		SET
			status = 'paid'
		WHERE
		    invoice_id = $1 AND status = 'waiting'
	`
)

type OrderDB struct {
	SubmitterID string
	DisplayName string
	ContentKind string
	Content     string
	PriceUSD    float64
	Anon        bool
	InvoiceID   string
	Status      OrderStatusDB
	CreatedAt   time.Time
}

// OrderStatusDB wraps the domain status so it round-trips through the
// driver as plain text.
type OrderStatusDB struct {
	models.OrderStatus
}

func (s *OrderStatusDB) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		return fmt.Errorf("order status must be a string, got %T", value)
	}

	*s = OrderStatusDB{models.OrderStatus(strVal)}
	return nil
}

func (s OrderStatusDB) Value() (driver.Value, error) {
	return string(s.OrderStatus), nil
}

// CreateOrder inserts a new order row. Invoice identifiers are unique across
// all orders; a second row for the same invoice is rejected.
func (d *Database) CreateOrder(ctx context.Context, order OrderDB) error {
	_, err := d.db.Exec(ctx, InsertOrderQuery,
		order.SubmitterID,
		order.DisplayName,
		order.ContentKind,
		order.Content,
		order.PriceUSD,
		order.Anon,
		order.InvoiceID,
		order.Status,
	)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateInvoice
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// FindAllWaitingOrders returns every order still awaiting payment.
func (d *Database) FindAllWaitingOrders(ctx context.Context) (*[]OrderDB, error) {
	var result []OrderDB

	rows, err := d.db.Query(ctx, SelectWaitingOrdersQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query waiting orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderDB
		if err := rows.Scan(
			&item.SubmitterID,
			&item.DisplayName,
			&item.ContentKind,
			&item.Content,
			&item.PriceUSD,
			&item.Anon,
			&item.InvoiceID,
			&item.Status,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}

	return &result, nil
}

// FindOrdersBySubmitter returns the submitter's orders, oldest first.
func (d *Database) FindOrdersBySubmitter(ctx context.Context, submitterID string) (*[]OrderDB, error) {
	var result []OrderDB

	rows, err := d.db.Query(ctx, SelectOrdersBySubmitterQuery, submitterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by submitter: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderDB
		if err := rows.Scan(
			&item.SubmitterID,
			&item.DisplayName,
			&item.ContentKind,
			&item.Content,
			&item.PriceUSD,
			&item.Anon,
			&item.InvoiceID,
			&item.Status,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}

	return &result, nil
}

// MarkOrderPaid performs the conditional waiting → paid transition. It
// reports false when no row matched, which means a previous cycle already
// completed the transition.
func (d *Database) MarkOrderPaid(ctx context.Context, invoiceID string) (bool, error) {
	tag, err := d.db.Exec(ctx, MarkOrderPaidQuery, invoiceID)
	if err != nil {
		return false, fmt.Errorf("failed to mark order as paid: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
