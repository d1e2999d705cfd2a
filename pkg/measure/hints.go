package measure

import (
	"sort"

	"github.com/matzehuels/slidefit/pkg/deck"
)

// Hints is a hint store keyed by node identity. Hosts embed it to implement
// the hint half of [Port]. The zero value is not usable; use [NewHints].
type Hints struct {
	values map[*deck.Node]map[Hint]float64
}

// NewHints returns an empty store.
func NewHints() *Hints {
	return &Hints{values: make(map[*deck.Node]map[Hint]float64)}
}

// Hint returns the value stored for (n, h).
func (s *Hints) Hint(n *deck.Node, h Hint) (float64, bool) {
	v, ok := s.values[n][h]
	return v, ok
}

// SetHint stores v for (n, h).
func (s *Hints) SetHint(n *deck.Node, h Hint, v float64) {
	m, ok := s.values[n]
	if !ok {
		m = make(map[Hint]float64)
		s.values[n] = m
	}
	m[h] = v
}

// ClearHint removes (n, h).
func (s *Hints) ClearHint(n *deck.Node, h Hint) {
	m, ok := s.values[n]
	if !ok {
		return
	}
	delete(m, h)
	if len(m) == 0 {
		delete(s.values, n)
	}
}

// ClearAll removes the given hints from every node.
func (s *Hints) ClearAll(hints ...Hint) {
	for n := range s.values {
		for _, h := range hints {
			s.ClearHint(n, h)
		}
	}
}

// Of returns a copy of the hints set on n.
func (s *Hints) Of(n *deck.Node) map[Hint]float64 {
	m := s.values[n]
	if len(m) == 0 {
		return nil
	}
	out := make(map[Hint]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Len returns the number of nodes carrying at least one hint.
func (s *Hints) Len() int { return len(s.values) }

// Names returns the keys of m, sorted.
func Names(m map[Hint]float64) []Hint {
	out := make([]Hint, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
