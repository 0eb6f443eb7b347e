package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"timeless_backend/platform/apperr"
)

const orderNotFoundMessage = "order not found"

const orderColumns = `id, display_code, customer_name, phone, wilaya, commune,
	payment_method, subtotal_dzd, discount_dzd, total_dzd, status, created_at, updated_at`

// Repo implements the orders repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new orders repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts the order header and all items in a single transaction so a
// failed line insert never leaves a headless order behind.
func (r *Repo) Create(ctx context.Context, order Order, items []Item) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, display_code, customer_name, phone, wilaya, commune,
			payment_method, subtotal_dzd, discount_dzd, total_dzd, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		order.ID, order.DisplayCode, order.CustomerName, order.Phone, order.Wilaya,
		order.Commune, order.PaymentMethod, order.SubtotalDZD, order.DiscountDZD,
		order.TotalDZD, order.Status,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, name, price_dzd, quantity, selected_color)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, item.ProductID, item.Name, item.PriceDZD, item.Quantity, item.SelectedColor,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}
	return nil
}

// GetByID retrieves an order header by its durable id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFound(orderNotFoundMessage)
		}
		return Order{}, fmt.Errorf("get order by id: %w", err)
	}
	return order, nil
}

// GetByDisplayCode retrieves the most recent order carrying the display code.
// Display codes are decorative so a collision resolves to the newest order.
func (r *Repo) GetByDisplayCode(ctx context.Context, code string) (Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE display_code = $1 ORDER BY created_at DESC LIMIT 1`, orderColumns)

	order, err := scanOrder(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFound(orderNotFoundMessage)
		}
		return Order{}, fmt.Errorf("get order by display code: %w", err)
	}
	return order, nil
}

// GetItems retrieves the value-copied lines for an order.
func (r *Repo) GetItems(ctx context.Context, orderID uuid.UUID) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT product_id, name, price_dzd, quantity, selected_color
		FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ProductID, &item.Name, &item.PriceDZD, &item.Quantity, &item.SelectedColor); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order items rows: %w", err)
	}
	return items, nil
}

// List returns a page of orders with their items, newest first.
func (r *Repo) List(ctx context.Context, params ListOrdersParams) ([]OrderWithItems, int, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if params.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, whereClause, argIdx, argIdx+1)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]OrderWithItems, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, OrderWithItems{Order: order})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list orders rows: %w", err)
	}

	for i := range orders {
		items, err := r.GetItems(ctx, orders[i].Order.ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].Items = items
	}

	return orders, total, nil
}

// UpdateStatus sets the order's status. Transition rules live in the service.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(orderNotFoundMessage)
	}
	return nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var order Order
	var createdAt, updatedAt time.Time
	if err := row.Scan(
		&order.ID, &order.DisplayCode, &order.CustomerName, &order.Phone, &order.Wilaya,
		&order.Commune, &order.PaymentMethod, &order.SubtotalDZD, &order.DiscountDZD,
		&order.TotalDZD, &order.Status, &createdAt, &updatedAt,
	); err != nil {
		return Order{}, err
	}

	order.CreatedAt = createdAt.Format(time.RFC3339)
	order.UpdatedAt = updatedAt.Format(time.RFC3339)
	return order, nil
}
