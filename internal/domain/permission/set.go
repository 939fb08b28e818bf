package permission

import "sort"

// Set is a resolved permission set: either every permission, or a finite
// collection of codenames. The zero value is the empty set.
type Set struct {
	all       bool
	codenames map[string]struct{}
}

// All returns the set granting every permission
func All() Set {
	return Set{all: true}
}

// NewSet returns the set holding exactly codenames
func NewSet(codenames ...string) Set {
	s := Set{codenames: make(map[string]struct{}, len(codenames))}
	for _, c := range codenames {
		s.codenames[c] = struct{}{}
	}
	return s
}

// IsAll reports whether the set grants everything
func (s Set) IsAll() bool {
	return s.all
}

// Has reports whether codename is granted
func (s Set) Has(codename string) bool {
	if s.all {
		return true
	}
	_, ok := s.codenames[codename]
	return ok
}

// HasAll reports whether every required codename is granted
func (s Set) HasAll(required ...string) bool {
	if s.all {
		return true
	}
	for _, r := range required {
		if _, ok := s.codenames[r]; !ok {
			return false
		}
	}
	return true
}

// Codenames returns the granted codenames in sorted order. It is nil for All.
func (s Set) Codenames() []string {
	if s.all {
		return nil
	}
	out := make([]string, 0, len(s.codenames))
	for c := range s.codenames {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of codenames, -1 for All
func (s Set) Len() int {
	if s.all {
		return -1
	}
	return len(s.codenames)
}

// Union returns the set granting what either set grants
func (s Set) Union(other Set) Set {
	if s.all || other.all {
		return All()
	}
	out := NewSet(s.Codenames()...)
	for c := range other.codenames {
		out.codenames[c] = struct{}{}
	}
	return out
}
