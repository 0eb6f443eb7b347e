// Package service implements checkout: validation of the delivery form,
// transactional order persistence, receipt snapshots, the WhatsApp hand-off,
// tracking, and the admin status pipeline.
package service

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"timeless_backend/internal/cart/domain"
	"timeless_backend/internal/events"
	"timeless_backend/internal/orders/receipt"
	"timeless_backend/internal/orders/repository"
	"timeless_backend/internal/orders/transport"
	"timeless_backend/platform/apperr"
	"timeless_backend/platform/config"
	"timeless_backend/platform/logger"
	"timeless_backend/platform/phone"
)

// phonePattern is the storefront's delivery phone contract: Algerian numbers
// with the 213 country code, optional leading plus.
var phonePattern = regexp.MustCompile(`^\+?213[0-9]{9}$`)

const (
	minNameLen = 2
	maxNameLen = 100
)

// CartAccess is the slice of the cart module checkout needs. Implemented by
// the cart service adapter.
type CartAccess interface {
	Get(ctx context.Context, token string) (domain.Cart, error)
	Clear(ctx context.Context, token string) error
}

// Service provides order business logic.
type Service struct {
	repo     repository.Repository
	receipts receipt.Store
	carts    CartAccess
	bus      events.Bus
	log      *logger.Logger
	cfg      config.StorefrontConfig

	// inflight guards against double submission from the same cart token
	// while a request is pending. Single-process protection only.
	inflight sync.Map
}

// New creates a new orders service.
func New(repo repository.Repository, receipts receipt.Store, carts CartAccess, bus events.Bus, cfg config.StorefrontConfig, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		receipts: receipts,
		carts:    carts,
		bus:      bus,
		cfg:      cfg,
		log:      log,
	}
}

// Submit validates the delivery form, persists the order with value-copied
// cart lines in one transaction, clears the cart, stores the receipt, and
// publishes orders.created. Totals are recomputed from the live cart; client
// figures are never trusted.
func (s *Service) Submit(ctx context.Context, token string, req transport.SubmitOrderRequest) (transport.ReceiptResponse, error) {
	if _, loaded := s.inflight.LoadOrStore(token, struct{}{}); loaded {
		return transport.ReceiptResponse{}, apperr.Conflict("an order submission is already in progress")
	}
	defer s.inflight.Delete(token)

	if fields := validateSubmission(req); len(fields) > 0 {
		return transport.ReceiptResponse{}, apperr.Validation("validation failed").WithDetails(fields)
	}

	c, err := s.carts.Get(ctx, token)
	if err != nil {
		return transport.ReceiptResponse{}, err
	}
	if c.IsEmpty() {
		return transport.ReceiptResponse{}, apperr.BadRequest("cart is empty")
	}

	now := time.Now()
	order := repository.Order{
		ID:            uuid.New(),
		DisplayCode:   newDisplayCode(now),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Phone:         phone.NormalizeE164(req.Phone),
		Wilaya:        strings.TrimSpace(req.Wilaya),
		Commune:       strings.TrimSpace(req.Commune),
		PaymentMethod: req.PaymentMethod,
		SubtotalDZD:   c.Subtotal(),
		DiscountDZD:   c.Discount(),
		TotalDZD:      c.FinalTotal(),
		Status:        repository.StatusPending,
	}

	items := make([]repository.Item, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, repository.Item{
			ProductID:     line.ProductID,
			Name:          line.Name,
			PriceDZD:      line.PriceDZD,
			Quantity:      line.Quantity,
			SelectedColor: line.SelectedColor,
		})
	}

	if err := s.repo.Create(ctx, order, items); err != nil {
		// The cart stays untouched so the shopper can retry; network
		// failures and constraint violations look the same from here.
		s.log.DatabaseError("create_order", err)
		return transport.ReceiptResponse{}, apperr.Wrap(apperr.KindInternal, "failed to submit order, please try again", err)
	}

	if err := s.carts.Clear(ctx, token); err != nil {
		s.log.SnapshotError("clear_cart", token, err)
	}

	rec := s.buildReceipt(order, items, now)
	if err := s.receipts.Save(ctx, token, rec); err != nil {
		s.log.SnapshotError("save_receipt", token, err)
	}

	s.bus.Publish(ctx, events.OrderCreated{
		BaseEvent:    events.NewBaseEvent(),
		OrderID:      order.ID,
		DisplayCode:  order.DisplayCode,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		Wilaya:       order.Wilaya,
		Commune:      order.Commune,
		TotalDZD:     order.TotalDZD,
		ItemCount:    c.ItemCount(),
	})
	s.log.OrderEvent("order_created", order.ID.String(), string(order.Status))

	return toReceiptResponse(rec), nil
}

// Receipt replays the shopper's last receipt. Missing or unreadable receipts
// are a not-found, never a server failure.
func (s *Service) Receipt(ctx context.Context, token string) (transport.ReceiptResponse, error) {
	rec, found, err := s.receipts.Load(ctx, token)
	if err != nil {
		s.log.SnapshotError("load_receipt", token, err)
		return transport.ReceiptResponse{}, apperr.NotFound("no receipt found")
	}
	if !found {
		return transport.ReceiptResponse{}, apperr.NotFound("no receipt found")
	}
	return toReceiptResponse(rec), nil
}

// Track returns the public fulfillment timeline for a display code or a
// durable order id.
func (s *Service) Track(ctx context.Context, code string) (transport.TrackResponse, error) {
	order, err := s.findOrder(ctx, code)
	if err != nil {
		return transport.TrackResponse{}, err
	}

	rank := repository.Rank(order.Status)
	steps := make([]transport.TrackStep, 0, 4)
	for _, status := range repository.Statuses() {
		steps = append(steps, transport.TrackStep{
			Status:  string(status),
			Reached: repository.Rank(status) <= rank,
		})
	}

	return transport.TrackResponse{
		DisplayCode: order.DisplayCode,
		Status:      string(order.Status),
		Steps:       steps,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}, nil
}

// WhatsAppURL rebuilds the hand-off URL for an order, for the printable QR.
func (s *Service) WhatsAppURL(ctx context.Context, code string) (string, error) {
	order, err := s.findOrder(ctx, code)
	if err != nil {
		return "", err
	}

	items, err := s.repo.GetItems(ctx, order.ID)
	if err != nil {
		return "", err
	}
	return s.whatsAppURL(order, items), nil
}

// List returns a page of orders for the admin dashboard.
func (s *Service) List(ctx context.Context, req transport.ListOrdersRequest) (transport.OrderListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	orders, total, err := s.repo.List(ctx, repository.ListOrdersParams{
		Status:   repository.Status(req.Status),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return transport.OrderListResponse{}, err
	}

	out := make([]transport.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o.Order, o.Items))
	}

	totalPages := (total + pageSize - 1) / pageSize
	return transport.OrderListResponse{
		Orders:     out,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// GetOrder returns an order with items for the admin detail view. The order
// header and its lines are fetched concurrently.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (transport.OrderResponse, error) {
	var (
		order repository.Order
		items []repository.Item
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		order, err = s.repo.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.repo.GetItems(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.OrderResponse{}, err
	}

	return toOrderResponse(order, items), nil
}

// UpdateStatus advances an order through the pipeline. Moves backward or to
// the same stage are rejected.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string, changedBy uuid.UUID) (transport.OrderResponse, error) {
	next := repository.Status(status)
	if !repository.IsValidStatus(next) {
		return transport.OrderResponse{}, apperr.Validation("unknown order status")
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.OrderResponse{}, err
	}

	if repository.Rank(next) <= repository.Rank(order.Status) {
		return transport.OrderResponse{}, apperr.Conflict(
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return transport.OrderResponse{}, err
	}

	s.bus.Publish(ctx, events.OrderStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		OrderID:   id,
		OldStatus: string(order.Status),
		NewStatus: string(next),
		ChangedBy: changedBy,
	})
	s.log.OrderEvent("order_status_changed", id.String(), string(next))

	items, err := s.repo.GetItems(ctx, id)
	if err != nil {
		return transport.OrderResponse{}, err
	}
	order.Status = next
	return toOrderResponse(order, items), nil
}

// findOrder resolves a tracking reference: a uuid means the durable id,
// anything else is treated as a display code.
func (s *Service) findOrder(ctx context.Context, code string) (repository.Order, error) {
	code = strings.TrimSpace(code)
	if id, err := uuid.Parse(code); err == nil {
		return s.repo.GetByID(ctx, id)
	}
	if !strings.HasPrefix(code, "#") {
		code = "#" + code
	}
	return s.repo.GetByDisplayCode(ctx, code)
}

// validateSubmission checks the whole form and reports every failing field
// at once, mirroring the checkout form's inline errors.
func validateSubmission(req transport.SubmitOrderRequest) map[string]string {
	fields := make(map[string]string)

	// Lengths count characters, not bytes: Arabic names are two bytes per
	// letter in UTF-8.
	name := strings.TrimSpace(req.CustomerName)
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		fields["customerName"] = "name must be between 2 and 100 characters"
	}

	if !phonePattern.MatchString(strings.TrimSpace(req.Phone)) {
		fields["phone"] = "phone must be an Algerian number in the form +213XXXXXXXXX"
	}

	if strings.TrimSpace(req.Wilaya) == "" {
		fields["wilaya"] = "wilaya is required"
	} else if !IsValidWilaya(req.Wilaya) {
		fields["wilaya"] = "unknown wilaya"
	}

	commune := strings.TrimSpace(req.Commune)
	if n := utf8.RuneCountInString(commune); n < minNameLen || n > maxNameLen {
		fields["commune"] = "commune must be between 2 and 100 characters"
	}

	if req.PaymentMethod != "cod" && req.PaymentMethod != "card" {
		fields["paymentMethod"] = "payment method must be cod or card"
	}

	return fields
}

// newDisplayCode builds the human-facing order reference shown on receipts.
// It is decorative: uniqueness is not guaranteed and correlation always uses
// the durable id.
func newDisplayCode(now time.Time) string {
	return fmt.Sprintf("#ORD-%d-%04d", now.Year(), rand.Intn(10000))
}

func (s *Service) buildReceipt(order repository.Order, items []repository.Item, createdAt time.Time) receipt.Receipt {
	recItems := make([]receipt.Item, 0, len(items))
	for _, item := range items {
		recItems = append(recItems, receipt.Item{
			ProductID:     item.ProductID,
			Name:          item.Name,
			PriceDZD:      item.PriceDZD,
			Quantity:      item.Quantity,
			SelectedColor: item.SelectedColor,
		})
	}

	rec := receipt.Receipt{
		OrderID:       order.ID,
		DisplayCode:   order.DisplayCode,
		CustomerName:  order.CustomerName,
		Phone:         order.Phone,
		Wilaya:        order.Wilaya,
		Commune:       order.Commune,
		PaymentMethod: order.PaymentMethod,
		Items:         recItems,
		SubtotalDZD:   order.SubtotalDZD,
		DiscountDZD:   order.DiscountDZD,
		TotalDZD:      order.TotalDZD,
		CreatedAt:     createdAt,
	}
	rec.WhatsAppURL = s.whatsAppURL(order, items)
	return rec
}

// whatsAppURL composes the prefilled order summary handed to the shop's
// WhatsApp number.
func (s *Service) whatsAppURL(order repository.Order, items []repository.Item) string {
	var itemsList strings.Builder
	for i, item := range items {
		if i > 0 {
			itemsList.WriteString("\n")
		}
		fmt.Fprintf(&itemsList, "- %s (x%d)", item.Name, item.Quantity)
	}

	message := fmt.Sprintf(`Hello, I just placed order %s. Here are my details...

📦 Order Confirmation

Name: %s
Phone: %s
Address: %s, %s

----------------
Items:
%s
----------------

Total: %s DZD
Order ID: %s`,
		order.DisplayCode, order.CustomerName, order.Phone, order.Wilaya,
		order.Commune, itemsList.String(), formatDZD(order.TotalDZD), order.DisplayCode)

	return fmt.Sprintf("https://wa.me/%s?text=%s",
		s.cfg.GetShopWhatsAppNumber(), url.QueryEscape(message))
}

// formatDZD groups thousands for display, e.g. 1000000 -> "1,000,000".
func formatDZD(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var out strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out.WriteRune(',')
		}
		out.WriteRune(r)
	}
	if negative {
		return "-" + out.String()
	}
	return out.String()
}

func toReceiptResponse(rec receipt.Receipt) transport.ReceiptResponse {
	items := make([]transport.OrderItemResponse, 0, len(rec.Items))
	for _, item := range rec.Items {
		items = append(items, transport.OrderItemResponse{
			ProductID:     item.ProductID,
			Name:          item.Name,
			PriceDZD:      item.PriceDZD,
			Quantity:      item.Quantity,
			SelectedColor: item.SelectedColor,
		})
	}

	return transport.ReceiptResponse{
		OrderID:       rec.OrderID,
		DisplayCode:   rec.DisplayCode,
		CustomerName:  rec.CustomerName,
		Phone:         rec.Phone,
		Wilaya:        rec.Wilaya,
		Commune:       rec.Commune,
		PaymentMethod: rec.PaymentMethod,
		Items:         items,
		SubtotalDZD:   rec.SubtotalDZD,
		DiscountDZD:   rec.DiscountDZD,
		TotalDZD:      rec.TotalDZD,
		WhatsAppURL:   rec.WhatsAppURL,
		CreatedAt:     rec.CreatedAt,
	}
}

func toOrderResponse(order repository.Order, items []repository.Item) transport.OrderResponse {
	out := make([]transport.OrderItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, transport.OrderItemResponse{
			ProductID:     item.ProductID,
			Name:          item.Name,
			PriceDZD:      item.PriceDZD,
			Quantity:      item.Quantity,
			SelectedColor: item.SelectedColor,
		})
	}

	return transport.OrderResponse{
		ID:            order.ID,
		DisplayCode:   order.DisplayCode,
		CustomerName:  order.CustomerName,
		Phone:         order.Phone,
		Wilaya:        order.Wilaya,
		Commune:       order.Commune,
		PaymentMethod: order.PaymentMethod,
		Items:         out,
		SubtotalDZD:   order.SubtotalDZD,
		DiscountDZD:   order.DiscountDZD,
		TotalDZD:      order.TotalDZD,
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
