// Package savedreply answers whether a post on a board was written by the
// local user. Parsed comments mark quotes of such posts with "(You)".
package savedreply

import (
	"sort"
	"strconv"
	"sync"
)

// Lookup is queried once per quote while comments are parsed and must not
// block.
type Lookup interface {
	IsSaved(board string, no int) bool
}

type none struct{}

func (none) IsSaved(string, int) bool { return false }

// None never reports a post as saved.
var None Lookup = none{}

type key struct {
	board string
	no    int
}

// Set is an in-memory Lookup safe for concurrent use.
type Set struct {
	mu      sync.RWMutex
	entries map[key]struct{}
}

func NewSet() *Set {
	return &Set{entries: make(map[key]struct{})}
}

func (s *Set) Add(board string, no int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key{board, no}] = struct{}{}
}

func (s *Set) Remove(board string, no int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key{board, no})
}

func (s *Set) IsSaved(board string, no int) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key{board, no}]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Strings lists entries as "/board/no" ordered by board then number.
func (s *Set) Strings() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	keys := make([]key, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].board != keys[j].board {
			return keys[i].board < keys[j].board
		}
		return keys[i].no < keys[j].no
	})
	res := make([]string, 0, len(keys))
	for _, k := range keys {
		res = append(res, "/"+k.board+"/"+strconv.Itoa(k.no))
	}
	return res
}
