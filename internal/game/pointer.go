package game

// Pointer filters raw pointer events before they reach the engine.
// Touch-move and mouse-move streams report the same cell many times;
// while the pointer is held, an Enter for the cell last dispatched is dropped.
type Pointer struct {
	held bool
	last int
}

// Filter reports whether in should be dispatched.
func (p *Pointer) Filter(in Intent) bool {
	switch in.Kind {
	case IntentPress:
		p.held, p.last = true, in.Cell
	case IntentEnter:
		if p.held && in.Cell == p.last {
			return false
		}
		p.last = in.Cell
	case IntentRelease, IntentClear:
		p.held = false
	default:
		return false
	}
	return true
}
