package game

// ColorAt returns the color whose endpoints or filled path contain cell.
func (s *State) ColorAt(cell int) (ColorID, bool) {
	for _, id := range s.order {
		p := s.paths[id]
		if p.Endpoints.Has(cell) || indexOf(p.Filled, cell) >= 0 {
			return id, true
		}
	}
	return "", false
}

// IsOccupied reports whether some color's filled path contains cell.
func (s *State) IsOccupied(cell int) bool {
	for _, id := range s.order {
		if indexOf(s.paths[id].Filled, cell) >= 0 {
			return true
		}
	}
	return false
}

// IsEndpoint reports whether cell is an endpoint of any color.
func (s *State) IsEndpoint(cell int) bool {
	for _, id := range s.order {
		if s.paths[id].Endpoints.Has(cell) {
			return true
		}
	}
	return false
}

// IsComplete reports whether color id connects its two endpoints.
// Unknown ids are never complete.
func (s *State) IsComplete(id ColorID) bool {
	p, ok := s.paths[id]
	return ok && p.Complete()
}

// DraggingColor returns the color currently being dragged, if any.
func (s *State) DraggingColor() (ColorID, bool) {
	for _, id := range s.order {
		if s.paths[id].Dragging {
			return id, true
		}
	}
	return "", false
}

// ProgressPercent is floor(100 * filled cells / total cells).
func (s *State) ProgressPercent() int {
	filled := 0
	for _, id := range s.order {
		filled += len(s.paths[id].Filled)
	}
	return filled * 100 / s.board.TilesCount()
}

// FlowCount is the number of complete colors.
func (s *State) FlowCount() int {
	n := 0
	for _, id := range s.order {
		if s.paths[id].Complete() {
			n++
		}
	}
	return n
}

// ColorCount is the number of colors in the puzzle.
func (s *State) ColorCount() int { return len(s.order) }

// Solved reports whether every color is connected and every cell covered.
func (s *State) Solved() bool {
	return s.FlowCount() == s.ColorCount() && s.ProgressPercent() == 100
}
