package nutrition

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// ExclusionSet is a snapshot of a user's excluded product and tag IDs.
// The zero value excludes nothing.
type ExclusionSet struct {
	products map[uuid.UUID]struct{}
	tags     map[uuid.UUID]struct{}
}

func NewExclusionSet(productIDs, tagIDs []uuid.UUID) ExclusionSet {
	s := ExclusionSet{
		products: make(map[uuid.UUID]struct{}, len(productIDs)),
		tags:     make(map[uuid.UUID]struct{}, len(tagIDs)),
	}
	for _, id := range productIDs {
		s.products[id] = struct{}{}
	}
	for _, id := range tagIDs {
		s.tags[id] = struct{}{}
	}
	return s
}

func (s ExclusionSet) ExcludesProduct(id uuid.UUID) bool {
	_, ok := s.products[id]
	return ok
}

func (s ExclusionSet) ExcludesTag(id uuid.UUID) bool {
	_, ok := s.tags[id]
	return ok
}

// Allows reports whether an item built from productIDs and carrying tagIDs
// survives the filter. Tag type plays no part.
func (s ExclusionSet) Allows(productIDs, tagIDs []uuid.UUID) bool {
	for _, id := range productIDs {
		if s.ExcludesProduct(id) {
			return false
		}
	}
	for _, id := range tagIDs {
		if s.ExcludesTag(id) {
			return false
		}
	}
	return true
}

func (s ExclusionSet) IsEmpty() bool {
	return len(s.products) == 0 && len(s.tags) == 0
}

func (s ExclusionSet) ProductIDs() []uuid.UUID {
	return sortedKeys(s.products)
}

func (s ExclusionSet) TagIDs() []uuid.UUID {
	return sortedKeys(s.tags)
}

func sortedKeys(m map[uuid.UUID]struct{}) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}
