package pool

import "testing"

func TestEmptyPool(t *testing.T) {
	p := New(0, func() int { return 0 })
	if h := p.Checkout(); h != nil {
		t.Fatalf("Checkout on empty pool = %v, want nil", h)
	}
}

func TestCheckoutInitialValue(t *testing.T) {
	p := New(1, func() uint32 { return 5 })
	h := p.Checkout()
	if h == nil {
		t.Fatal("Checkout returned nil")
	}
	if h.Value != 5 {
		t.Errorf("Value = %d, want 5", h.Value)
	}
}

func TestReleaseKeepsMutation(t *testing.T) {
	p := New(1, func() uint32 { return 5 })

	h := p.Checkout()
	h.Value = 10
	h.Release()

	h = p.Checkout()
	if h == nil {
		t.Fatal("Checkout after Release returned nil")
	}
	if h.Value != 10 {
		t.Errorf("Value = %d, want 10", h.Value)
	}
}

func TestExhaustion(t *testing.T) {
	const capacity = 4
	p := New(capacity, func() []int { return make([]int, 0, 8) })

	handles := make([]*Handle[[]int], 0, capacity)
	for i := 0; i < capacity; i++ {
		h := p.Checkout()
		if h == nil {
			t.Fatalf("Checkout %d returned nil", i)
		}
		handles = append(handles, h)
	}
	if h := p.Checkout(); h != nil {
		t.Fatal("Checkout past capacity should return nil")
	}

	handles[2].Release()
	if h := p.Checkout(); h == nil {
		t.Fatal("Checkout after one Release returned nil")
	}
	if h := p.Checkout(); h != nil {
		t.Fatal("only one slot should have been freed")
	}
}

func TestPoison(t *testing.T) {
	p := New(1, func() uint32 { return 5 })

	h := p.Checkout()
	h.Value = 10
	h.Poison()

	if got := p.Checkout(); got != nil {
		t.Fatal("poisoned slot was handed out")
	}
	if p.Available() != 0 {
		t.Errorf("Available = %d, want 0", p.Available())
	}

	p.CleanAll()
	got := p.Checkout()
	if got == nil {
		t.Fatal("CleanAll did not restore the slot")
	}
	if got.Value != 10 {
		t.Errorf("Value after CleanAll = %d, want 10", got.Value)
	}
}

func TestPoolPoisonForeignHandle(t *testing.T) {
	a := New(1, func() int { return 1 })
	b := New(1, func() int { return 2 })

	h := a.Checkout()
	b.Poison(h)
	if h.released {
		t.Fatal("Poison through a different pool must be ignored")
	}
	a.Poison(h)
	if a.Checkout() != nil {
		t.Fatal("slot should be poisoned")
	}
}

func TestCheckoutFallbacks(t *testing.T) {
	p := New(1, func() string { return "pooled" })
	first := p.Checkout()

	tests := []struct {
		name string
		get  func() *Handle[string]
	}{
		{"CheckoutOr", func() *Handle[string] { return p.CheckoutOr("fallback") }},
		{"CheckoutOrElse", func() *Handle[string] {
			return p.CheckoutOrElse(func() string { return "fallback" })
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.get()
			if h.Pooled() {
				t.Error("fallback handle should not be pooled")
			}
			if h.Value != "fallback" {
				t.Errorf("Value = %q, want fallback", h.Value)
			}
			h.Release()
			if p.Available() != 0 {
				t.Error("releasing a detached handle must not free a slot")
			}
		})
	}

	first.Release()
	h := p.CheckoutOr("fallback")
	if !h.Pooled() || h.Value != "pooled" {
		t.Errorf("got pooled=%v value=%q, want pooled value", h.Pooled(), h.Value)
	}
}

func TestDoubleRelease(t *testing.T) {
	p := New(2, func() int { return 0 })
	h := p.Checkout()
	h.Release()
	other := p.Checkout()
	h.Release()
	if other == nil {
		t.Fatal("Checkout returned nil")
	}
	if p.Available() != 1 {
		t.Errorf("Available = %d, want 1", p.Available())
	}
}

func TestReleaseKeepsSliceCapacity(t *testing.T) {
	p := New(1, func() []float32 { return nil })
	h := p.Checkout()
	h.Value = append(h.Value, 1, 2, 3, 4, 5)
	h.Release()

	h = p.Checkout()
	if cap(h.Value) < 5 {
		t.Errorf("cap = %d, want >= 5", cap(h.Value))
	}
}
