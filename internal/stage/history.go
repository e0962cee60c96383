package stage

// History is a fixed-capacity ring of grid snapshots used for undo.
// Pushing beyond capacity silently evicts the oldest snapshot.
type History struct {
	slots []*Grid
	head  int // next write position
	count int
}

// NewHistory creates a history holding at most capacity snapshots.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{slots: make([]*Grid, capacity)}
}

// Cap returns the fixed capacity.
func (h *History) Cap() int {
	return len(h.slots)
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return h.count
}

// Push stores a clone of g. Slots are reused once the ring has wrapped.
func (h *History) Push(g *Grid) {
	if old := h.slots[h.head]; old != nil && old.W == g.W && old.H == g.H {
		old.CopyFrom(g)
	} else {
		h.slots[h.head] = g.Clone()
	}
	h.head = (h.head + 1) % len(h.slots)
	if h.count < len(h.slots) {
		h.count++
	}
}

// Pop returns the most recent snapshot, or nil when empty.
// The returned grid is owned by the history and is overwritten by the
// next Push; callers copy out of it.
func (h *History) Pop() *Grid {
	if h.count == 0 {
		return nil
	}
	h.count--
	h.head = (h.head - 1 + len(h.slots)) % len(h.slots)
	return h.slots[h.head]
}
