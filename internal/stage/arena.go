package stage

// Pool is a fixed-size arena of actors of one kind. Free slots are kept on
// a stack so Recreate and Kill are O(1); after KillAll the stack hands out
// slots in ascending order, which keeps slot identity stable across undo.
type Pool struct {
	kind  ActorKind
	slots []Actor
	free  []int
}

// NewPool allocates capacity slots and asks visuals for one handle per slot.
func NewPool(kind ActorKind, capacity int, visuals VisualFactory) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	if visuals == nil {
		visuals = nopVisuals{}
	}
	p := &Pool{
		kind:  kind,
		slots: make([]Actor, capacity),
		free:  make([]int, 0, capacity),
	}
	for i := range p.slots {
		p.slots[i] = Actor{Kind: kind, Slot: i, Visual: visuals.NewVisual(kind)}
	}
	p.KillAll()
	return p
}

// Kind returns the actor kind held by the pool.
func (p *Pool) Kind() ActorKind { return p.kind }

// Cap returns the number of slots.
func (p *Pool) Cap() int { return len(p.slots) }

// Live returns the number of existing actors.
func (p *Pool) Live() int { return len(p.slots) - len(p.free) }

// Recreate claims a free slot and spawns an actor at c.
// It returns false when the pool is exhausted.
func (p *Pool) Recreate(c Coord) (*Actor, bool) {
	n := len(p.free)
	if n == 0 {
		return nil, false
	}
	i := p.free[n-1]
	p.free = p.free[:n-1]
	a := &p.slots[i]
	a.spawn(c)
	return a, true
}

// Kill marks the actor in slot i as non-existent and frees the slot.
func (p *Pool) Kill(i int) {
	if i < 0 || i >= len(p.slots) || !p.slots[i].Exists {
		return
	}
	p.slots[i].Exists = false
	p.free = append(p.free, i)
}

// KillAll frees every slot.
func (p *Pool) KillAll() {
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		p.slots[i].Exists = false
		p.free = append(p.free, i)
	}
}

// At returns the actor in slot i, existing or not.
func (p *Pool) At(i int) *Actor {
	if i < 0 || i >= len(p.slots) {
		return nil
	}
	return &p.slots[i]
}

// Each calls fn for every existing actor in slot order.
func (p *Pool) Each(fn func(a *Actor)) {
	for i := range p.slots {
		if p.slots[i].Exists {
			fn(&p.slots[i])
		}
	}
}
