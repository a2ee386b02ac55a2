package table

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// KeySet is an insertion-ordered set of row keys.
type KeySet struct {
	set *linkedhashset.Set
}

// NewKeySet builds a set holding keys in the given order, duplicates dropped.
func NewKeySet(keys ...string) *KeySet {
	s := &KeySet{set: linkedhashset.New()}
	for _, key := range keys {
		s.set.Add(key)
	}
	return s
}

// Add inserts key at the end. It reports false when key was already present.
func (s *KeySet) Add(key string) bool {
	if s.set.Contains(key) {
		return false
	}
	s.set.Add(key)
	return true
}

// Remove deletes key, keeping the order of the others.
func (s *KeySet) Remove(key string) bool {
	if !s.set.Contains(key) {
		return false
	}
	s.set.Remove(key)
	return true
}

// Has reports membership.
func (s *KeySet) Has(key string) bool {
	return s.set.Contains(key)
}

// Len returns the number of keys.
func (s *KeySet) Len() int {
	return s.set.Size()
}

// Clear removes every key.
func (s *KeySet) Clear() {
	s.set.Clear()
}

// Replace discards the current content and inserts keys.
func (s *KeySet) Replace(keys ...string) {
	s.set.Clear()
	for _, key := range keys {
		s.set.Add(key)
	}
}

// Keys returns the keys in insertion order.
func (s *KeySet) Keys() []string {
	values := s.set.Values()
	keys := make([]string, 0, len(values))
	for _, v := range values {
		keys = append(keys, v.(string))
	}
	return keys
}
