package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func watchLine(id uuid.UUID, price int64) Line {
	return Line{
		ProductID: id,
		Name:      "Royal Oak",
		Brand:     "Audemars Piguet",
		PriceDZD:  price,
		Image:     "https://cdn.example.com/royal-oak.jpg",
	}
}

func TestAddSameProductCollapsesIntoOneLine(t *testing.T) {
	id := uuid.New()

	var c Cart
	c.Add(watchLine(id, 500000))
	c.Add(watchLine(id, 500000))

	if len(c.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", c.Lines[0].Quantity)
	}
	if got := c.Subtotal(); got != 1000000 {
		t.Fatalf("expected subtotal 1000000, got %d", got)
	}
	if got := c.ItemCount(); got != 2 {
		t.Fatalf("expected item count 2, got %d", got)
	}
}

func TestAddKeepsFirstSelectedColor(t *testing.T) {
	id := uuid.New()

	var c Cart
	first := watchLine(id, 250000)
	first.SelectedColor = "black"
	c.Add(first)

	second := watchLine(id, 250000)
	second.SelectedColor = "silver"
	c.Add(second)

	if c.Lines[0].SelectedColor != "black" {
		t.Fatalf("expected first color to win, got %q", c.Lines[0].SelectedColor)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	id := uuid.New()

	var c Cart
	c.Add(watchLine(id, 300000))
	c.SetQuantity(id, 0)

	if !c.IsEmpty() {
		t.Fatalf("expected empty cart after quantity 0, got %d lines", len(c.Lines))
	}
}

func TestSetQuantityNegativeRemovesLine(t *testing.T) {
	id := uuid.New()

	var c Cart
	c.Add(watchLine(id, 300000))
	c.SetQuantity(id, -3)

	if !c.IsEmpty() {
		t.Fatalf("expected empty cart after negative quantity")
	}
}

func TestSetQuantityUnknownProductIsNoOp(t *testing.T) {
	id := uuid.New()

	var c Cart
	c.Add(watchLine(id, 300000))
	c.SetQuantity(uuid.New(), 5)

	if c.Lines[0].Quantity != 1 {
		t.Fatalf("expected untouched quantity 1, got %d", c.Lines[0].Quantity)
	}
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	id := uuid.New()

	var c Cart
	c.Add(watchLine(id, 300000))
	c.Remove(uuid.New())

	if len(c.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Lines))
	}
}

func TestTotalsRecomputedAfterEveryMutation(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	var c Cart
	c.Add(watchLine(a, 500000))
	c.Add(watchLine(a, 500000))
	c.Add(watchLine(b, 120000))

	if got := c.Subtotal(); got != 1120000 {
		t.Fatalf("expected subtotal 1120000, got %d", got)
	}

	c.SetQuantity(b, 3)
	if got := c.Subtotal(); got != 1360000 {
		t.Fatalf("expected subtotal 1360000 after quantity change, got %d", got)
	}

	c.Remove(a)
	if got := c.Subtotal(); got != 360000 {
		t.Fatalf("expected subtotal 360000 after removal, got %d", got)
	}
	if got := c.ItemCount(); got != 3 {
		t.Fatalf("expected item count 3, got %d", got)
	}
}

func TestApplyPromoTenPercent(t *testing.T) {
	id := uuid.New()

	var c Cart
	c.Add(watchLine(id, 500000))
	c.Add(watchLine(id, 500000))

	if !c.ApplyPromo("TIMELESS2025") {
		t.Fatalf("expected promo code to match")
	}
	if got := c.Discount(); got != 100000 {
		t.Fatalf("expected discount 100000, got %d", got)
	}
	if got := c.FinalTotal(); got != 900000 {
		t.Fatalf("expected final total 900000, got %d", got)
	}
}

func TestApplyPromoIsIdempotent(t *testing.T) {
	id := uuid.New()

	var c Cart
	c.Add(watchLine(id, 1000000))

	c.ApplyPromo("TIMELESS2025")
	c.ApplyPromo("TIMELESS2025")
	c.ApplyPromo("TIMELESS2025")

	if got := c.Discount(); got != 100000 {
		t.Fatalf("expected discount to stay at 10%%, got %d", got)
	}
}

func TestApplyPromoCaseInsensitiveAndTrimmed(t *testing.T) {
	var c Cart
	c.Add(watchLine(uuid.New(), 200000))

	for _, code := range []string{"timeless2025", "  TIMELESS2025  ", "TimeLess2025"} {
		c.RemovePromo()
		if !c.ApplyPromo(code) {
			t.Fatalf("expected %q to match the promo code", code)
		}
	}
}

func TestApplyInvalidPromoClearsAppliedPromo(t *testing.T) {
	var c Cart
	c.Add(watchLine(uuid.New(), 200000))

	c.ApplyPromo("TIMELESS2025")
	if c.ApplyPromo("SUMMER2024") {
		t.Fatalf("expected invalid code to be rejected")
	}
	if c.PromoApplied {
		t.Fatalf("expected invalid code to clear the applied promo")
	}
	if got := c.FinalTotal(); got != c.Subtotal() {
		t.Fatalf("expected full price after invalid code, got %d", got)
	}
}

func TestRemovePromoRestoresFullPrice(t *testing.T) {
	var c Cart
	c.Add(watchLine(uuid.New(), 500000))
	c.Add(watchLine(uuid.New(), 500000))

	c.ApplyPromo("TIMELESS2025")
	if got := c.FinalTotal(); got != 900000 {
		t.Fatalf("expected discounted total 900000, got %d", got)
	}

	c.RemovePromo()
	if got := c.FinalTotal(); got != 1000000 {
		t.Fatalf("expected full total 1000000 after promo removal, got %d", got)
	}
}

func TestClearDropsLinesAndPromo(t *testing.T) {
	var c Cart
	c.Add(watchLine(uuid.New(), 500000))
	c.ApplyPromo("TIMELESS2025")

	c.Clear()

	if !c.IsEmpty() || c.PromoApplied {
		t.Fatalf("expected empty cart with no promo, got %d lines promo=%v", len(c.Lines), c.PromoApplied)
	}
	if got := c.FinalTotal(); got != 0 {
		t.Fatalf("expected zero total, got %d", got)
	}
}

func TestCartJSONRoundTrip(t *testing.T) {
	id := uuid.New()

	var c Cart
	line := watchLine(id, 750000)
	line.SelectedColor = "gold"
	c.Add(line)
	c.Add(watchLine(id, 750000))
	c.ApplyPromo("TIMELESS2025")

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Cart
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.Subtotal() != c.Subtotal() {
		t.Fatalf("subtotal drifted: %d != %d", restored.Subtotal(), c.Subtotal())
	}
	if restored.FinalTotal() != c.FinalTotal() {
		t.Fatalf("final total drifted: %d != %d", restored.FinalTotal(), c.FinalTotal())
	}
	if !restored.PromoApplied {
		t.Fatalf("promo flag lost in round trip")
	}
	if restored.Lines[0].SelectedColor != "gold" {
		t.Fatalf("selected color lost in round trip")
	}
}
