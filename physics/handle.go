package physics

// Handle is a generation-checked reference to a shape owned by a World
// A handle resolves only while its shape is in the world; removal bumps the
// slot generation so every outstanding copy goes stale at once
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h was never issued
func (h Handle) IsZero() bool { return h.gen == 0 }

type slot struct {
	gen   uint32
	shape *Shape
}

// arena stores shapes by index with generation checking and slot reuse
type arena struct {
	slots []slot
	free  []uint32
}

func (a *arena) insert(s *Shape) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	sl := &a.slots[idx]
	sl.gen++
	sl.shape = s
	h := Handle{index: idx, gen: sl.gen}
	s.handle = h
	return h
}

func (a *arena) get(h Handle) (*Shape, bool) {
	if h.gen == 0 || int(h.index) >= len(a.slots) {
		return nil, false
	}
	sl := &a.slots[h.index]
	if sl.gen != h.gen || sl.shape == nil {
		return nil, false
	}
	return sl.shape, true
}

// release invalidates h and returns the shape it referenced
func (a *arena) release(h Handle) (*Shape, bool) {
	s, ok := a.get(h)
	if !ok {
		return nil, false
	}
	sl := &a.slots[h.index]
	sl.shape = nil
	sl.gen++
	a.free = append(a.free, h.index)
	return s, true
}

func (a *arena) each(fn func(*Shape)) {
	for i := range a.slots {
		if s := a.slots[i].shape; s != nil {
			fn(s)
		}
	}
}

func (a *arena) count() int {
	return len(a.slots) - len(a.free)
}

// Table associates values with shapes of one World
// Lookups go through the world's liveness check, so a value stored for a
// removed shape can never be read back through a stale or recycled handle
type Table[T any] struct {
	world   *World
	entries map[uint32]tableEntry[T]
}

type tableEntry[T any] struct {
	gen uint32
	val T
}

func NewTable[T any](w *World) *Table[T] {
	return &Table[T]{world: w, entries: make(map[uint32]tableEntry[T])}
}

// Set stores v for h; ignored if h is not live
func (t *Table[T]) Set(h Handle, v T) {
	if !t.world.Alive(h) {
		return
	}
	t.entries[h.index] = tableEntry[T]{gen: h.gen, val: v}
}

func (t *Table[T]) Get(h Handle) (T, bool) {
	var zero T
	e, ok := t.entries[h.index]
	if !ok || e.gen != h.gen {
		return zero, false
	}
	if !t.world.Alive(h) {
		delete(t.entries, h.index)
		return zero, false
	}
	return e.val, true
}

// Delete removes the entry for h, returning its value if the entry existed
// The value is returned even when the shape was already removed from the world,
// which lets a removal path read what it is discarding
func (t *Table[T]) Delete(h Handle) (T, bool) {
	var zero T
	e, ok := t.entries[h.index]
	if !ok || e.gen != h.gen {
		return zero, false
	}
	delete(t.entries, h.index)
	return e.val, true
}

// Handles returns the live handles with entries, pruning dead ones
func (t *Table[T]) Handles() []Handle {
	out := make([]Handle, 0, len(t.entries))
	for idx, e := range t.entries {
		h := Handle{index: idx, gen: e.gen}
		if !t.world.Alive(h) {
			delete(t.entries, idx)
			continue
		}
		out = append(out, h)
	}
	return out
}

// Len counts entries whose shapes are still live
func (t *Table[T]) Len() int {
	return len(t.Handles())
}
