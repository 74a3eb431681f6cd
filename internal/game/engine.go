// internal/game/engine.go
//
// Flow path engine: the single transition function of the game.
// Responsibilities:
//   - Dispatch pointer intents (press / enter / release / clear).
//   - Extend, truncate or restart the dragging color's path.
//   - Reject illegal steps (foreign endpoint, non-adjacent cell, completed path).
//   - Steal cells from another color when the active path crosses it.
//
// Notes:
//   - Apply never modifies its input; it returns either the same *State
//     (nothing changed) or a freshly built one.
//   - Illegal moves are not errors: they simply leave the path as it was
//     after the truncation steps.
package game

// Apply returns the snapshot that results from one intent.
// The returned pointer equals s exactly when the intent changed nothing.
func Apply(s *State, in Intent) *State {
	if s == nil {
		return nil
	}
	next := s.clone()

	switch in.Kind {
	case IntentPress:
		if !s.board.Contains(in.Cell) {
			return s
		}
		id, ok := s.ColorAt(in.Cell)
		if !ok {
			return s
		}
		wasDragging := s.paths[id].Dragging
		// Only one color may drag at a time.
		for cid, p := range next.paths {
			p.Dragging = cid == id
			next.paths[cid] = p
		}
		next.extend(id, in.Cell, wasDragging)

	case IntentEnter:
		if !s.board.Contains(in.Cell) {
			return s
		}
		id, ok := s.DraggingColor()
		if !ok {
			return s
		}
		next.extend(id, in.Cell, true)

	case IntentRelease:
		id, ok := s.DraggingColor()
		if !ok {
			return s
		}
		p := next.paths[id]
		p.Dragging = false
		next.paths[id] = p

	case IntentClear:
		for cid, p := range next.paths {
			p.Dragging = false
			next.paths[cid] = p
		}

	default:
		return s
	}

	if next.samePaths(s) {
		return s
	}
	return next
}

// extend applies one step of color id onto cell. It mutates s, which must be
// a private clone that has not been handed out yet.
func (s *State) extend(id ColorID, cell int, wasDragging bool) {
	p := s.paths[id]

	// Pressing one of the color's own endpoints starts the path over.
	// This check runs before the re-entry truncation below.
	if p.Endpoints.Has(cell) && !wasDragging {
		p.Filled = p.Filled[:0]
	}

	// Re-entering a cell already on the path erases everything after it.
	if i := indexOf(p.Filled, cell); i >= 0 {
		p.Filled = p.Filled[:i]
	}

	if s.canAppend(p, cell) {
		if n := len(p.Filled); n >= 2 && p.Filled[n-2] == cell {
			p.Filled = p.Filled[:n-1]
		} else {
			p.Filled = append(p.Filled, cell)
		}
		s.paths[id] = p
		s.steal(id, cell)
		return
	}
	s.paths[id] = p
}

// canAppend reports whether cell may be appended to p.
func (s *State) canAppend(p ColorPath, cell int) bool {
	for _, cid := range s.order {
		if cid != p.ID && s.paths[cid].Endpoints.Has(cell) {
			return false
		}
	}
	if n := len(p.Filled); n > 0 && !s.board.IsAdjacent(p.Filled[n-1], cell) {
		return false
	}
	return !p.Complete()
}

// steal truncates every other color whose path covers cell, so the victim
// keeps only the cells before the contested one.
func (s *State) steal(id ColorID, cell int) {
	for _, cid := range s.order {
		if cid == id {
			continue
		}
		v := s.paths[cid]
		if i := indexOf(v.Filled, cell); i >= 0 {
			v.Filled = v.Filled[:i]
			s.paths[cid] = v
		}
	}
}

func indexOf(cells []int, cell int) int {
	for i, c := range cells {
		if c == cell {
			return i
		}
	}
	return -1
}
