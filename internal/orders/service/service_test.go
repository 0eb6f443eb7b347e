package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"timeless_backend/internal/cart/domain"
	"timeless_backend/internal/events"
	"timeless_backend/internal/orders/receipt"
	"timeless_backend/internal/orders/repository"
	"timeless_backend/internal/orders/transport"
	"timeless_backend/platform/apperr"
	"timeless_backend/platform/logger"
)

type fakeRepo struct {
	orders      map[uuid.UUID]repository.Order
	items       map[uuid.UUID][]repository.Item
	createCalls atomic.Int32
	createErr   error
	blockCreate chan struct{}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders: make(map[uuid.UUID]repository.Order),
		items:  make(map[uuid.UUID][]repository.Item),
	}
}

func (f *fakeRepo) Create(_ context.Context, order repository.Order, items []repository.Item) error {
	f.createCalls.Add(1)
	if f.blockCreate != nil {
		<-f.blockCreate
	}
	if f.createErr != nil {
		return f.createErr
	}
	f.orders[order.ID] = order
	f.items[order.ID] = items
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return repository.Order{}, apperr.NotFound("order not found")
	}
	return order, nil
}

func (f *fakeRepo) GetByDisplayCode(_ context.Context, code string) (repository.Order, error) {
	for _, order := range f.orders {
		if order.DisplayCode == code {
			return order, nil
		}
	}
	return repository.Order{}, apperr.NotFound("order not found")
}

func (f *fakeRepo) GetItems(_ context.Context, orderID uuid.UUID) ([]repository.Item, error) {
	return f.items[orderID], nil
}

func (f *fakeRepo) List(_ context.Context, _ repository.ListOrdersParams) ([]repository.OrderWithItems, int, error) {
	out := make([]repository.OrderWithItems, 0, len(f.orders))
	for id, order := range f.orders {
		out = append(out, repository.OrderWithItems{Order: order, Items: f.items[id]})
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status repository.Status) error {
	order, ok := f.orders[id]
	if !ok {
		return apperr.NotFound("order not found")
	}
	order.Status = status
	f.orders[id] = order
	return nil
}

type fakeCarts struct {
	carts   map[string]domain.Cart
	cleared map[string]bool
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{carts: make(map[string]domain.Cart), cleared: make(map[string]bool)}
}

func (f *fakeCarts) Get(_ context.Context, token string) (domain.Cart, error) {
	return f.carts[token], nil
}

func (f *fakeCarts) Clear(_ context.Context, token string) error {
	delete(f.carts, token)
	f.cleared[token] = true
	return nil
}

type fakeBus struct {
	published []events.Event
}

func (f *fakeBus) Publish(_ context.Context, event events.Event) {
	f.published = append(f.published, event)
}

func (f *fakeBus) PublishSync(_ context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeBus) Subscribe(string, events.Handler) {}

type fakeStorefrontConfig struct{}

func (fakeStorefrontConfig) GetAppBaseURL() string         { return "http://localhost:5173" }
func (fakeStorefrontConfig) GetShopWhatsAppNumber() string { return "213562341417" }
func (fakeStorefrontConfig) GetReceiptTTL() time.Duration  { return 30 * 24 * time.Hour }

type fixture struct {
	svc      *Service
	repo     *fakeRepo
	carts    *fakeCarts
	receipts *receipt.Memory
	bus      *fakeBus
}

func newFixture() *fixture {
	repo := newFakeRepo()
	carts := newFakeCarts()
	receipts := receipt.NewMemory()
	bus := &fakeBus{}

	svc := New(repo, receipts, carts, bus, fakeStorefrontConfig{}, logger.New("development"))
	return &fixture{svc: svc, repo: repo, carts: carts, receipts: receipts, bus: bus}
}

func validRequest() transport.SubmitOrderRequest {
	return transport.SubmitOrderRequest{
		CustomerName:  "Amine Benali",
		Phone:         "+213555123456",
		Wilaya:        "Alger",
		Commune:       "Hydra",
		PaymentMethod: "cod",
	}
}

func cartWithWatch(price int64, quantity int) domain.Cart {
	var c domain.Cart
	line := domain.Line{
		ProductID: uuid.New(),
		Name:      "Seamaster",
		Brand:     "Omega",
		PriceDZD:  price,
	}
	c.Add(line)
	for i := 1; i < quantity; i++ {
		c.Add(line)
	}
	return c
}

func TestSubmitLocalPhoneFormatRejectedBeforeRepo(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(500000, 1)

	req := validRequest()
	req.Phone = "0555123456"

	_, err := f.svc.Submit(context.Background(), token, req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := err.(*apperr.Error).Details.(map[string]string)
	if !ok {
		t.Fatalf("expected field error map, got %T", err.(*apperr.Error).Details)
	}
	if _, ok := details["phone"]; !ok {
		t.Fatalf("expected a phone field error, got %v", details)
	}
	if calls := f.repo.createCalls.Load(); calls != 0 {
		t.Fatalf("expected no repository call, got %d", calls)
	}
}

func TestSubmitCollectsAllFieldErrors(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(500000, 1)

	_, err := f.svc.Submit(context.Background(), token, transport.SubmitOrderRequest{
		CustomerName:  "A",
		Phone:         "12345",
		Wilaya:        "Atlantis",
		Commune:       " ",
		PaymentMethod: "cheque",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	details := err.(*apperr.Error).Details.(map[string]string)
	for _, field := range []string{"customerName", "phone", "wilaya", "commune", "paymentMethod"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("expected error for field %s, got %v", field, details)
		}
	}
}

func TestSubmitCountsNameLengthInCharacters(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(500000, 1)

	req := validRequest()
	req.CustomerName = "م"

	_, err := f.svc.Submit(context.Background(), token, req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for one-letter name, got %v", err)
	}
	details := err.(*apperr.Error).Details.(map[string]string)
	if _, ok := details["customerName"]; !ok {
		t.Fatalf("expected a customerName field error, got %v", details)
	}

	// A 60-letter Arabic name is 120 bytes but well within the 100-character
	// limit; the same goes for the commune.
	req.CustomerName = strings.Repeat("م", 60)
	req.Commune = strings.Repeat("ح", 60)
	if _, err := f.svc.Submit(context.Background(), token, req); err != nil {
		t.Fatalf("expected Arabic name and commune to pass, got %v", err)
	}
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), uuid.NewString(), validRequest())
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for empty cart, got %v", err)
	}
}

func TestSubmitComputesTotalsServerSide(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	c := cartWithWatch(500000, 2)
	c.ApplyPromo("TIMELESS2025")
	f.carts.carts[token] = c

	resp, err := f.svc.Submit(context.Background(), token, validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if resp.SubtotalDZD != 1000000 {
		t.Fatalf("expected subtotal 1000000, got %d", resp.SubtotalDZD)
	}
	if resp.DiscountDZD != 100000 {
		t.Fatalf("expected discount 100000, got %d", resp.DiscountDZD)
	}
	if resp.TotalDZD != 900000 {
		t.Fatalf("expected total 900000, got %d", resp.TotalDZD)
	}

	stored := f.repo.orders[resp.OrderID]
	if stored.TotalDZD != 900000 || stored.Status != repository.StatusPending {
		t.Fatalf("unexpected stored order: %+v", stored)
	}
	if len(f.repo.items[resp.OrderID]) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(f.repo.items[resp.OrderID]))
	}
}

func TestSubmitDisplayCodeFormat(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(500000, 1)

	resp, err := f.svc.Submit(context.Background(), token, validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	pattern := regexp.MustCompile(`^#ORD-\d{4}-\d{4}$`)
	if !pattern.MatchString(resp.DisplayCode) {
		t.Fatalf("unexpected display code %q", resp.DisplayCode)
	}
	if resp.OrderID == uuid.Nil {
		t.Fatalf("expected a durable order id")
	}
}

func TestSubmitNormalizesPhone(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(500000, 1)

	req := validRequest()
	req.Phone = "213555123456"

	resp, err := f.svc.Submit(context.Background(), token, req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.Phone != "+213555123456" {
		t.Fatalf("expected normalized phone, got %q", resp.Phone)
	}
}

func TestSubmitRepoFailureKeepsCartAndReceipt(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(500000, 1)
	f.repo.createErr = errors.New("connection refused")

	_, err := f.svc.Submit(context.Background(), token, validRequest())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}

	if f.carts.cleared[token] {
		t.Fatalf("cart must stay intact after a repository failure")
	}
	if _, found, _ := f.receipts.Load(context.Background(), token); found {
		t.Fatalf("no receipt should exist after a repository failure")
	}
	if len(f.bus.published) != 0 {
		t.Fatalf("no event should be published after a repository failure")
	}
}

func TestSubmitSuccessClearsCartAndPersistsReceipt(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(500000, 2)

	resp, err := f.svc.Submit(context.Background(), token, validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !f.carts.cleared[token] {
		t.Fatalf("expected cart cleared after submission")
	}

	// A fresh service over the same receipt store simulates a page reload.
	reloaded := New(f.repo, f.receipts, f.carts, f.bus, fakeStorefrontConfig{}, logger.New("development"))
	replay, err := reloaded.Receipt(context.Background(), token)
	if err != nil {
		t.Fatalf("receipt after reload: %v", err)
	}
	if replay.OrderID != resp.OrderID || replay.TotalDZD != resp.TotalDZD {
		t.Fatalf("receipt drifted across reload: %+v vs %+v", replay, resp)
	}

	if len(f.bus.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(f.bus.published))
	}
	created, ok := f.bus.published[0].(events.OrderCreated)
	if !ok {
		t.Fatalf("expected OrderCreated, got %T", f.bus.published[0])
	}
	if created.OrderID != resp.OrderID || created.ItemCount != 2 {
		t.Fatalf("unexpected event payload: %+v", created)
	}
}

func TestSubmitWhatsAppURLCarriesOrderSummary(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(1000000, 1)

	resp, err := f.svc.Submit(context.Background(), token, validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/213562341417?text=") {
		t.Fatalf("unexpected whatsapp url %q", resp.WhatsAppURL)
	}
	for _, fragment := range []string{"Seamaster", "1%2C000%2C000", "Amine+Benali"} {
		if !strings.Contains(resp.WhatsAppURL, fragment) {
			t.Fatalf("whatsapp url missing %q: %s", fragment, resp.WhatsAppURL)
		}
	}
}

func TestSubmitInFlightGuardRejectsConcurrentSubmission(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(500000, 1)
	f.repo.blockCreate = make(chan struct{})

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(context.Background(), token, validRequest())
		firstDone <- err
	}()

	// Wait for the first submission to reach the repository.
	deadline := time.After(2 * time.Second)
	for f.repo.createCalls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("first submission never reached the repository")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	_, err := f.svc.Submit(context.Background(), token, validRequest())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict while a submission is in flight, got %v", err)
	}

	close(f.repo.blockCreate)
	if err := <-firstDone; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
}

func TestReceiptMissingIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Receipt(context.Background(), uuid.NewString())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTrackTimelineMarksReachedSteps(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(500000, 1)

	resp, err := f.svc.Submit(context.Background(), token, validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), resp.OrderID, "confirmed", uuid.New()); err != nil {
		t.Fatalf("update status: %v", err)
	}

	track, err := f.svc.Track(context.Background(), resp.OrderID.String())
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if track.Status != "confirmed" {
		t.Fatalf("expected status confirmed, got %s", track.Status)
	}

	want := map[string]bool{"pending": true, "confirmed": true, "shipped": false, "delivered": false}
	for _, step := range track.Steps {
		if want[step.Status] != step.Reached {
			t.Fatalf("step %s reached=%v, want %v", step.Status, step.Reached, want[step.Status])
		}
	}
}

func TestTrackByDisplayCodeWithoutHash(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(500000, 1)

	resp, err := f.svc.Submit(context.Background(), token, validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	track, err := f.svc.Track(context.Background(), strings.TrimPrefix(resp.DisplayCode, "#"))
	if err != nil {
		t.Fatalf("track by display code: %v", err)
	}
	if track.DisplayCode != resp.DisplayCode {
		t.Fatalf("expected display code %s, got %s", resp.DisplayCode, track.DisplayCode)
	}
}

func TestUpdateStatusRejectsBackwardMove(t *testing.T) {
	f := newFixture()
	token := uuid.NewString()
	f.carts.carts[token] = cartWithWatch(500000, 1)

	resp, err := f.svc.Submit(context.Background(), token, validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	admin := uuid.New()
	if _, err := f.svc.UpdateStatus(context.Background(), resp.OrderID, "shipped", admin); err != nil {
		t.Fatalf("advance to shipped: %v", err)
	}

	if _, err := f.svc.UpdateStatus(context.Background(), resp.OrderID, "confirmed", admin); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for backward move, got %v", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), resp.OrderID, "shipped", admin); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for same-stage move, got %v", err)
	}
	if _, err := f.svc.UpdateStatus(context.Background(), resp.OrderID, "lost", admin); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestIsValidWilaya(t *testing.T) {
	if len(Wilayas()) != 58 {
		t.Fatalf("expected 58 wilayas, got %d", len(Wilayas()))
	}
	if !IsValidWilaya("Alger") || !IsValidWilaya("  oran  ") {
		t.Fatalf("expected known wilayas to validate")
	}
	if IsValidWilaya("Atlantis") || IsValidWilaya("") {
		t.Fatalf("expected unknown wilayas to fail")
	}
}
