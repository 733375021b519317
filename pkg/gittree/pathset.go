package gittree

import "strings"

// PathSet is an insertion-ordered set of paths compared case-insensitively.
type PathSet struct {
	seen  map[string]struct{}
	paths []string
}

// NewPathSet returns an empty set.
func NewPathSet() *PathSet {
	return &PathSet{seen: make(map[string]struct{})}
}

// Add inserts p unless a path equal under case folding is already present.
// It reports whether p was added.
func (s *PathSet) Add(p string) bool {
	key := strings.ToLower(p)
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.paths = append(s.paths, p)
	return true
}

// Contains reports whether p, compared case-insensitively, is in the set.
func (s *PathSet) Contains(p string) bool {
	_, ok := s.seen[strings.ToLower(p)]
	return ok
}

// Len returns the number of paths.
func (s *PathSet) Len() int { return len(s.paths) }

// Paths returns the paths in insertion order.
func (s *PathSet) Paths() []string { return s.paths }
