package repository

import (
	"context"

	"github.com/google/uuid"
)

// Status is the order fulfillment status. Transitions only move forward
// through the pipeline; the rank ordering is enforced by the service.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

// statusRank orders the pipeline for forward-only transitions.
var statusRank = map[Status]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusShipped:   2,
	StatusDelivered: 3,
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s Status) bool {
	_, ok := statusRank[s]
	return ok
}

// Rank returns the pipeline position of the status, -1 for unknown values.
func Rank(s Status) int {
	r, ok := statusRank[s]
	if !ok {
		return -1
	}
	return r
}

// Statuses lists the pipeline in order. Used for the tracking timeline.
func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered}
}

// Order is a persisted order header. Customer and money fields are frozen at
// submission time; only Status changes afterwards.
type Order struct {
	ID            uuid.UUID
	DisplayCode   string
	CustomerName  string
	Phone         string
	Wilaya        string
	Commune       string
	PaymentMethod string
	SubtotalDZD   int64
	DiscountDZD   int64
	TotalDZD      int64
	Status        Status
	CreatedAt     string
	UpdatedAt     string
}

// Item is a value-copied order line. Product fields are snapshots taken at
// submission so later catalog edits never rewrite history.
type Item struct {
	ProductID     uuid.UUID
	Name          string
	PriceDZD      int64
	Quantity      int
	SelectedColor string
}

// OrderWithItems pairs a header with its lines for list/detail reads.
type OrderWithItems struct {
	Order Order
	Items []Item
}

// ListOrdersParams filters and paginates the admin order list.
type ListOrdersParams struct {
	Status   Status
	Page     int
	PageSize int
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Create inserts the order header and all items in one transaction.
	Create(ctx context.Context, order Order, items []Item) error
	// GetByID returns the order header for the durable id.
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	// GetByDisplayCode returns the most recent order carrying the display
	// code. Display codes are decorative and not assumed unique.
	GetByDisplayCode(ctx context.Context, code string) (Order, error)
	// GetItems returns the value-copied lines for an order.
	GetItems(ctx context.Context, orderID uuid.UUID) ([]Item, error)
	// List returns a page of orders with items plus the total count.
	List(ctx context.Context, params ListOrdersParams) ([]OrderWithItems, int, error)
	// UpdateStatus sets the order's status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
