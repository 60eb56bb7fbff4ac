// Package availability decides whether a venue can take a booking on a
// given date and maintains the set of dates a venue is blocked on.
package availability

import (
	"encoding/json"
	"sort"
)

// DateSet is a set of calendar dates. The zero value is an empty set ready
// for reads; use NewDateSet or Block before writing to a nil set.
type DateSet map[Date]struct{}

func NewDateSet(dates ...Date) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

func (s DateSet) Contains(d Date) bool {
	_, ok := s[d]
	return ok
}

// Block adds d and reports whether it was absent before.
func (s DateSet) Block(d Date) bool {
	if _, ok := s[d]; ok {
		return false
	}
	s[d] = struct{}{}
	return true
}

// Unblock removes d and reports whether it was present.
func (s DateSet) Unblock(d Date) bool {
	if _, ok := s[d]; !ok {
		return false
	}
	delete(s, d)
	return true
}

func (s DateSet) Len() int {
	return len(s)
}

func (s DateSet) Clone() DateSet {
	out := make(DateSet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

// Sorted returns the dates in ascending order.
func (s DateSet) Sorted() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (s DateSet) Equal(o DateSet) bool {
	if len(s) != len(o) {
		return false
	}
	for d := range s {
		if !o.Contains(d) {
			return false
		}
	}
	return true
}

func (s DateSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *DateSet) UnmarshalJSON(data []byte) error {
	var dates []Date
	if err := json.Unmarshal(data, &dates); err != nil {
		return err
	}
	*s = NewDateSet(dates...)
	return nil
}

// IsAvailable reports whether a venue accepts a new booking on d.
func IsAvailable(active bool, blocked DateSet, d Date) bool {
	return active && !blocked.Contains(d)
}

// Apply computes (current ∪ block) \ unblock without touching current. The
// unblock list is applied last, so a date present in both lists ends up
// unblocked.
func Apply(current DateSet, block, unblock []Date) DateSet {
	next := current.Clone()
	for _, d := range block {
		next.Block(d)
	}
	for _, d := range unblock {
		next.Unblock(d)
	}
	return next
}
