package cart

import "sync"

// OpKind names the mutating cart actions the overlay tracks.
type OpKind uint8

const (
	OpAdd OpKind = iota
	OpIncrement
	OpDecrement
	OpRemove
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpIncrement:
		return "increment"
	case OpDecrement:
		return "decrement"
	case OpRemove:
		return "remove"
	}
	return "unknown"
}

type stage uint8

const (
	stageIdle stage = iota
	stagePending
	stageFailed
)

// lineState is the tagged per-line overlay state. A line is Idle, Pending
// one operation, or Failed with the error of the last attempt; overlapping
// pending operations for one line are unrepresentable.
type lineState struct {
	stage        stage
	kind         OpKind
	err          error
	prevRevealed bool
}

// Overlay tracks in-flight mutations so the interface can show an
// anticipated quantity ahead of remote confirmation and roll it back on
// failure. It holds no remote state of its own; canonical quantities come
// from the reconciler's snapshot.
type Overlay struct {
	mu         sync.Mutex
	states     map[string]lineState
	optimistic map[string]int
	revealed   map[string]bool
}

func NewOverlay() *Overlay {
	return &Overlay{
		states:     make(map[string]lineState),
		optimistic: make(map[string]int),
		revealed:   make(map[string]bool),
	}
}

// Begin records a pending operation and the anticipated post-mutation
// quantity. It reports false, without recording anything, when another
// operation for the product is still in flight; the control stays disabled
// until that one resolves.
func (o *Overlay) Begin(productID string, kind OpKind, anticipated int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if st, ok := o.states[productID]; ok && st.stage == stagePending {
		return false
	}
	if anticipated < 0 {
		anticipated = 0
	}

	st := lineState{stage: stagePending, kind: kind, prevRevealed: o.revealed[productID]}
	o.states[productID] = st
	o.optimistic[productID] = anticipated

	switch {
	case kind == OpAdd:
		// Controls show up before the insert confirms.
		o.revealed[productID] = true
	case anticipated == 0:
		// The line is about to disappear; hide controls speculatively.
		delete(o.revealed, productID)
	}
	return true
}

// Succeed clears the provisional state; the freshly refreshed canonical
// snapshot now supersedes it.
func (o *Overlay) Succeed(productID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.states, productID)
	delete(o.optimistic, productID)
	delete(o.revealed, productID)
}

// Fail rolls the display back to the last canonical value, restores the
// manual-visibility flag as it was before the action, and keeps the error
// for inspection. Non-fatal; the user may retry.
func (o *Overlay) Fail(productID string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := o.states[productID]
	delete(o.optimistic, productID)
	if st.prevRevealed {
		o.revealed[productID] = true
	} else {
		delete(o.revealed, productID)
	}
	o.states[productID] = lineState{stage: stageFailed, kind: st.kind, err: err}
}

// Pending reports whether a mutation for the product is in flight.
func (o *Overlay) Pending(productID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	st, ok := o.states[productID]
	return ok && st.stage == stagePending
}

// LastFailure returns the operation kind and error of the most recent
// failed attempt for the product, if any.
func (o *Overlay) LastFailure(productID string) (OpKind, error, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	st, ok := o.states[productID]
	if !ok || st.stage != stageFailed {
		return 0, nil, false
	}
	return st.kind, st.err, true
}

// DisplayQuantity is the quantity the interface should show: the
// optimistic value while an operation is outstanding, otherwise the
// canonical one.
func (o *Overlay) DisplayQuantity(productID string, canonical int) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if q, ok := o.optimistic[productID]; ok {
		return q
	}
	return canonical
}

// Reveal marks the product's cart controls as manually shown, e.g. after
// the add-to-cart affordance was clicked.
func (o *Overlay) Reveal(productID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.revealed[productID] = true
}

// ControlsVisible reports whether the +/- controls should render: the
// displayed quantity is positive or the user toggled them open.
func (o *Overlay) ControlsVisible(productID string, canonical int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if q, ok := o.optimistic[productID]; ok {
		canonical = q
	}
	return canonical > 0 || o.revealed[productID]
}
