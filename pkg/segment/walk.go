package segment

// WalkFunc is called for every segment in depth-first order. parents holds
// the ancestors of seg from the root down; it is reused between calls and
// must be copied if retained. Returning false skips the children of seg.
type WalkFunc func(seg *Segment, parents []*Segment) bool

// Walk visits s and all of its descendants.
func (s *Segment) Walk(fn WalkFunc) {
	s.walk(fn, nil)
}

func (s *Segment) walk(fn WalkFunc, parents []*Segment) {
	if !fn(s, parents) {
		return
	}
	parents = append(parents, s)
	for _, c := range s.Children {
		c.walk(fn, parents)
	}
}

// Find returns every segment of the given type in depth-first order.
func (s *Segment) Find(typ string) []*Segment {
	var found []*Segment
	s.Walk(func(seg *Segment, _ []*Segment) bool {
		if seg.Type == typ {
			found = append(found, seg)
		}
		return true
	})
	return found
}

// PathTo returns the ancestors of target from s down to target's parent.
// The second result is false when target is not reachable from s.
func (s *Segment) PathTo(target *Segment) ([]*Segment, bool) {
	if s == target {
		return []*Segment{}, true
	}
	for _, c := range s.Children {
		if path, ok := c.PathTo(target); ok {
			return append([]*Segment{s}, path...), true
		}
	}
	return nil, false
}

// Stats counts the segments of each type under s, s included.
func (s *Segment) Stats() map[string]int {
	stats := make(map[string]int)
	s.Walk(func(seg *Segment, _ []*Segment) bool {
		stats[seg.Type]++
		return true
	})
	return stats
}
