// Package sparseset implements the paged sparse-to-dense index every typed
// storage in vigna builds on: O(1) insert/erase/lookup plus ordered
// iteration of the dense array. Containment is keyed purely by an entity's
// id field; the version bits are ignored here. Ordinary component pools
// don't need version checks because destroying an entity clears it from
// every pool before its id can be recycled — version-aware validity lives
// one layer up, in the entity-self storage.
package sparseset

import (
	"sort"

	"github.com/nerith-games/vigna/entity"
	"github.com/nerith-games/vigna/internal/vassert"
)

// DefaultPageSize is the number of slots per lazily-allocated sparse page.
const DefaultPageSize = 4096

const nullIndex = ^uint64(0)

// Set is a paged sparse set over entity handles of type E.
type Set[E entity.Constraint] struct {
	traits   entity.Traits[E]
	pageSize uint64
	pages    [][]uint64
	dense    []E
}

// New returns an empty Set using DefaultPageSize.
func New[E entity.Constraint]() *Set[E] {
	return NewWithPageSize[E](DefaultPageSize)
}

// NewWithPageSize returns an empty Set whose sparse array is paged in
// chunks of pageSize slots. pageSize must be a power of two.
func NewWithPageSize[E entity.Constraint](pageSize uint64) *Set[E] {
	return &Set[E]{
		traits:   entity.NewTraits[E](),
		pageSize: pageSize,
	}
}

// Traits exposes the id/version codec this set was built with.
func (s *Set[E]) Traits() entity.Traits[E] { return s.traits }

// Len returns the number of entries in the dense array.
func (s *Set[E]) Len() int { return len(s.dense) }

// Empty reports whether the set holds no entries.
func (s *Set[E]) Empty() bool { return len(s.dense) == 0 }

// Cap returns the dense array's current capacity.
func (s *Set[E]) Cap() int { return cap(s.dense) }

// Reserve grows the dense array's capacity to at least n.
func (s *Set[E]) Reserve(n int) {
	if cap(s.dense) >= n {
		return
	}
	grown := make([]E, len(s.dense), n)
	copy(grown, s.dense)
	s.dense = grown
}

// At returns the entity stored at dense index i. Panics if i is out of
// range.
func (s *Set[E]) At(i int) E {
	vassert.Truef(i >= 0 && i < len(s.dense), "sparseset: index out of range: %d", i)
	return s.dense[i]
}

// Dense returns the backing dense slice for read-only iteration. Callers
// must not retain it across a mutation of the set.
func (s *Set[E]) Dense() []E { return s.dense }

func (s *Set[E]) pageAndOffset(id uint64) (uint64, uint64) {
	return id / s.pageSize, id % s.pageSize
}

func (s *Set[E]) sparseGet(id uint64) (uint64, bool) {
	page, off := s.pageAndOffset(id)
	if page >= uint64(len(s.pages)) || s.pages[page] == nil {
		return 0, false
	}
	v := s.pages[page][off]
	return v, v != nullIndex
}

func (s *Set[E]) sparseSet(id uint64, index uint64) {
	page, off := s.pageAndOffset(id)
	for uint64(len(s.pages)) <= page {
		s.pages = append(s.pages, nil)
	}
	if s.pages[page] == nil {
		p := make([]uint64, s.pageSize)
		for i := range p {
			p[i] = nullIndex
		}
		s.pages[page] = p
	}
	s.pages[page][off] = index
}

func (s *Set[E]) isolate(id uint64) {
	page, off := s.pageAndOffset(id)
	if page < uint64(len(s.pages)) && s.pages[page] != nil {
		s.pages[page][off] = nullIndex
	}
}

// IndexByID returns the dense index currently occupied by id, ignoring the
// version field entirely.
func (s *Set[E]) IndexByID(id uint64) (int, bool) {
	idx, ok := s.sparseGet(id)
	if !ok {
		return 0, false
	}
	return int(idx), true
}

// IndexOf returns the dense index for the id of e.
func (s *Set[E]) IndexOf(e E) (int, bool) {
	return s.IndexByID(s.traits.ID(e))
}

// Contains reports whether e's id is present (version-blind).
func (s *Set[E]) Contains(e E) bool {
	_, ok := s.IndexOf(e)
	return ok
}

// Push appends e to the dense array if its id is not already present,
// reporting whether an insertion happened. Pushing an id already present is
// a no-op that returns the existing index.
func (s *Set[E]) Push(e E) (index int, inserted bool) {
	if idx, ok := s.IndexOf(e); ok {
		return idx, false
	}
	idx := len(s.dense)
	s.dense = append(s.dense, e)
	s.sparseSet(s.traits.ID(e), uint64(idx))
	return idx, true
}

// Emplace constructs a handle from id/version and pushes it.
func (s *Set[E]) Emplace(id, version uint64) (index int, inserted bool) {
	return s.Push(s.traits.Construct(id, version))
}

// SetAt overwrites the dense entry at index i in place, without touching
// the sparse slot (the id must be unchanged; used to re-stamp a version).
func (s *Set[E]) SetAt(i int, e E) { s.dense[i] = e }

// SwapElementsIndex swaps the dense entries at a and b and fixes up both
// sparse slots, preserving SS-1.
func (s *Set[E]) SwapElementsIndex(a, b int) {
	if a == b {
		return
	}
	ea, eb := s.dense[a], s.dense[b]
	s.sparseSet(s.traits.ID(ea), uint64(b))
	s.sparseSet(s.traits.ID(eb), uint64(a))
	s.dense[a], s.dense[b] = s.dense[b], s.dense[a]
}

// RemoveAt performs swap-and-pop at index: the sparse slot for the removed
// id is cleared, the last dense entry is moved into the freed slot (unless
// it was already last), and the dense array shrinks by one.
func (s *Set[E]) RemoveAt(index int) {
	last := len(s.dense) - 1
	removed := s.dense[index]
	s.isolate(s.traits.ID(removed))
	if index != last {
		moved := s.dense[last]
		s.dense[index] = moved
		s.sparseSet(s.traits.ID(moved), uint64(index))
	}
	s.dense = s.dense[:last]
}

// Pop removes e's id if present; it is a silent no-op otherwise.
func (s *Set[E]) Pop(e E) {
	if idx, ok := s.IndexOf(e); ok {
		s.RemoveAt(idx)
	}
}

// EraseRange removes the half-open index range [first, last), iterating
// back-to-front so earlier indices stay valid across the loop.
func (s *Set[E]) EraseRange(first, last int) {
	for last > first {
		last--
		s.RemoveAt(last)
	}
}

// Clear empties the set, nulling every sparse slot it touched.
func (s *Set[E]) Clear() {
	for _, e := range s.dense {
		s.isolate(s.traits.ID(e))
	}
	s.dense = s.dense[:0]
}

// Sort orders the dense array by cmp (a "less" comparator) and rebuilds the
// sparse slots to match. A nil cmp sorts by ascending id.
func (s *Set[E]) Sort(less func(a, b E) bool) {
	if less == nil {
		less = func(a, b E) bool { return s.traits.ID(a) < s.traits.ID(b) }
	}
	sort.Slice(s.dense, func(i, j int) bool { return less(s.dense[i], s.dense[j]) })
	s.rebuildSparse()
}

// Partition reorders the dense array so every entry satisfying pred comes
// first (unstable) and rebuilds the sparse slots to match.
func (s *Set[E]) Partition(pred func(e E) bool) {
	i, j := 0, len(s.dense)-1
	for i <= j {
		for i <= j && pred(s.dense[i]) {
			i++
		}
		for i <= j && !pred(s.dense[j]) {
			j--
		}
		if i < j {
			s.dense[i], s.dense[j] = s.dense[j], s.dense[i]
			i++
			j--
		}
	}
	s.rebuildSparse()
}

func (s *Set[E]) rebuildSparse() {
	for i, e := range s.dense {
		s.sparseSet(s.traits.ID(e), uint64(i))
	}
}

// IsSorted reports whether the dense array satisfies less (ascending id if
// less is nil).
func (s *Set[E]) IsSorted(less func(a, b E) bool) bool {
	if less == nil {
		less = func(a, b E) bool { return s.traits.ID(a) < s.traits.ID(b) }
	}
	for i := 1; i < len(s.dense); i++ {
		if less(s.dense[i], s.dense[i-1]) {
			return false
		}
	}
	return true
}
