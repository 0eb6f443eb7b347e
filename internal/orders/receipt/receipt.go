// Package receipt persists the shopper's last order receipt keyed by their
// cart token, so a confirmation page survives a reload or a returning visit.
// Receipts are value copies frozen at submission time.
package receipt

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Item is a frozen order line on the receipt.
type Item struct {
	ProductID     uuid.UUID `json:"productId"`
	Name          string    `json:"name"`
	PriceDZD      int64     `json:"priceDzd"`
	Quantity      int       `json:"quantity"`
	SelectedColor string    `json:"selectedColor,omitempty"`
}

// Receipt is the full confirmation record returned after checkout and
// replayed on reload. WhatsAppURL carries the prefilled hand-off message.
type Receipt struct {
	OrderID       uuid.UUID `json:"orderId"`
	DisplayCode   string    `json:"displayCode"`
	CustomerName  string    `json:"customerName"`
	Phone         string    `json:"phone"`
	Wilaya        string    `json:"wilaya"`
	Commune       string    `json:"commune"`
	PaymentMethod string    `json:"paymentMethod"`
	Items         []Item    `json:"items"`
	SubtotalDZD   int64     `json:"subtotalDzd"`
	DiscountDZD   int64     `json:"discountDzd"`
	TotalDZD      int64     `json:"totalDzd"`
	WhatsAppURL   string    `json:"whatsappUrl"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Store persists the latest receipt per cart token. Load reports found=false
// for a missing receipt; decode failures surface as errors so callers can
// degrade to "no receipt".
type Store interface {
	Load(ctx context.Context, token string) (Receipt, bool, error)
	Save(ctx context.Context, token string, r Receipt) error
}

// Memory is an in-process Store for tests and development without Redis.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory receipt store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

var _ Store = (*Memory)(nil)

// Load retrieves and decodes the receipt for the token.
func (m *Memory) Load(_ context.Context, token string) (Receipt, bool, error) {
	m.mu.RLock()
	raw, ok := m.data[token]
	m.mu.RUnlock()
	if !ok {
		return Receipt{}, false, nil
	}

	var r Receipt
	if err := json.Unmarshal(raw, &r); err != nil {
		return Receipt{}, false, err
	}
	return r, true, nil
}

// Save stores the receipt for the token, replacing any previous one.
func (m *Memory) Save(_ context.Context, token string, r Receipt) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data[token] = raw
	m.mu.Unlock()
	return nil
}
