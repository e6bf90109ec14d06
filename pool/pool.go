// Package pool provides a fixed-size pool of reusable values.
//
// A Pool hands out Handles. A Handle owns its value until Release puts the
// value back into the slot it came from. A poisoned slot keeps its value but
// is skipped by Checkout until CleanAll is called.
//
// When every slot is busy, CheckoutOr and CheckoutOrElse return a detached
// handle around a freshly supplied value. Releasing a detached handle does
// nothing, so callers never have to care whether the pool had room.
//
// Pool is not safe for concurrent use.
package pool

type slot[T any] struct {
	inUse    bool
	poisoned bool
	value    T
}

// Pool is a fixed-capacity set of reusable values.
// Copying a *Pool shares the same slots.
type Pool[T any] struct {
	slots []slot[T]
}

// New creates a pool of capacity slots, each filled by calling init once.
func New[T any](capacity int, init func() T) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool[T]{slots: make([]slot[T], capacity)}
	for i := range p.slots {
		p.slots[i].value = init()
	}
	return p
}

// Cap returns the number of slots.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

// Available returns the number of slots that Checkout could hand out now.
func (p *Pool[T]) Available() int {
	n := 0
	for i := range p.slots {
		if !p.slots[i].inUse && !p.slots[i].poisoned {
			n++
		}
	}
	return n
}

// Checkout takes the first free slot.
// It returns nil when every slot is in use or poisoned.
func (p *Pool[T]) Checkout() *Handle[T] {
	for i := range p.slots {
		s := &p.slots[i]
		if s.inUse || s.poisoned {
			continue
		}
		s.inUse = true
		h := &Handle[T]{pool: p, index: i, Value: s.value}
		var zero T
		s.value = zero
		return h
	}
	return nil
}

// CheckoutOr is Checkout with a fallback value that never enters the pool.
func (p *Pool[T]) CheckoutOr(v T) *Handle[T] {
	if h := p.Checkout(); h != nil {
		return h
	}
	return Detached(v)
}

// CheckoutOrElse is CheckoutOr with a lazily built fallback.
func (p *Pool[T]) CheckoutOrElse(f func() T) *Handle[T] {
	if h := p.Checkout(); h != nil {
		return h
	}
	return Detached(f())
}

// Poison releases h and excludes its slot until CleanAll.
func (p *Pool[T]) Poison(h *Handle[T]) {
	if h == nil || h.pool != p {
		return
	}
	h.Poison()
}

// CleanAll removes poison from every slot.
// Values that were poisoned become available again as they were left.
func (p *Pool[T]) CleanAll() {
	for i := range p.slots {
		p.slots[i].poisoned = false
	}
}

func (p *Pool[T]) put(index int, v T, poisoned bool) {
	s := &p.slots[index]
	s.value = v
	s.inUse = false
	s.poisoned = poisoned
}

// Handle is a checked-out value.
// Mutate Value freely; Release writes the current Value back to the slot,
// so a grown slice keeps its capacity for the next checkout.
type Handle[T any] struct {
	Value T

	pool     *Pool[T]
	index    int
	released bool
}

// Detached wraps v in a handle that belongs to no pool.
func Detached[T any](v T) *Handle[T] {
	return &Handle[T]{Value: v, index: -1}
}

// Pooled reports whether releasing h returns a value to a pool.
func (h *Handle[T]) Pooled() bool {
	return h.pool != nil
}

// Release returns the value to its slot. Calling it twice is a no-op.
func (h *Handle[T]) Release() {
	h.finish(false)
}

// Poison returns the value to its slot and marks the slot unusable.
func (h *Handle[T]) Poison() {
	h.finish(true)
}

func (h *Handle[T]) finish(poisoned bool) {
	if h.released {
		return
	}
	h.released = true
	if h.pool == nil {
		return
	}
	h.pool.put(h.index, h.Value, poisoned)
	var zero T
	h.Value = zero
}
