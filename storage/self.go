package storage

import (
	"github.com/nerith-games/vigna/entity"
	"github.com/nerith-games/vigna/internal/vassert"
)

const selfNullIndex = ^uint64(0)

// Self is the registry's own entity pool: a paged sparse set whose dense
// array keeps a live prefix of length L followed by a cemetery of
// destroyed handles, retained so their id can be recycled with a bumped
// version. Unlike Pool and TagPool, erase never shrinks the dense array —
// it swaps the erased entry to the cemetery boundary and decrements L.
type Self[E entity.Constraint] struct {
	traits   entity.Traits[E]
	pageSize uint64
	pages    [][]uint64
	dense    []E
	length   int
}

// NewSelf returns an empty Self pool using sparseset.DefaultPageSize.
func NewSelf[E entity.Constraint]() *Self[E] {
	return NewSelfWithPageSize[E](4096)
}

// NewSelfWithPageSize returns an empty Self pool with the given sparse
// page size.
func NewSelfWithPageSize[E entity.Constraint](pageSize uint64) *Self[E] {
	return &Self[E]{traits: entity.NewTraits[E](), pageSize: pageSize}
}

// Len returns the number of live entities.
func (s *Self[E]) Len() int { return s.length }

// Cap returns the number of entries tracked, live and cemetery combined.
func (s *Self[E]) Cap() int { return len(s.dense) }

// Reserve grows the dense array's capacity to at least n.
func (s *Self[E]) Reserve(n int) {
	if cap(s.dense) >= n {
		return
	}
	grown := make([]E, len(s.dense), n)
	copy(grown, s.dense)
	s.dense = grown
}

// CemeteryLen returns the number of destroyed-but-recyclable entries.
func (s *Self[E]) CemeteryLen() int { return len(s.dense) - s.length }

// CemeteryEmpty reports whether there is no recyclable id.
func (s *Self[E]) CemeteryEmpty() bool { return len(s.dense) == s.length }

func (s *Self[E]) pageAndOffset(id uint64) (uint64, uint64) {
	return id / s.pageSize, id % s.pageSize
}

func (s *Self[E]) sparseGet(id uint64) (uint64, bool) {
	page, off := s.pageAndOffset(id)
	if page >= uint64(len(s.pages)) || s.pages[page] == nil {
		return 0, false
	}
	v := s.pages[page][off]
	return v, v != selfNullIndex
}

func (s *Self[E]) sparseSet(id uint64, index uint64) {
	page, off := s.pageAndOffset(id)
	for uint64(len(s.pages)) <= page {
		s.pages = append(s.pages, nil)
	}
	if s.pages[page] == nil {
		p := make([]uint64, s.pageSize)
		for i := range p {
			p[i] = selfNullIndex
		}
		s.pages[page] = p
	}
	s.pages[page][off] = index
}

func (s *Self[E]) indexByID(id uint64) (int, bool) {
	idx, ok := s.sparseGet(id)
	if !ok {
		return 0, false
	}
	return int(idx), true
}

// Valid reports whether e is a live entity: its id resolves to a dense
// slot within the live prefix and that slot still holds e's exact version.
func (s *Self[E]) Valid(e E) bool {
	idx, ok := s.indexByID(s.traits.ID(e))
	return ok && idx < s.length && s.dense[idx] == e
}

// Current returns the version currently associated with id, live or
// entombed, and whether id has ever been issued.
func (s *Self[E]) Current(id uint64) (uint64, bool) {
	idx, ok := s.indexByID(id)
	if !ok {
		return 0, false
	}
	return s.traits.Version(s.dense[idx]), true
}

func (s *Self[E]) swapElementsIndex(a, b int) {
	if a == b {
		return
	}
	ea, eb := s.dense[a], s.dense[b]
	s.sparseSet(s.traits.ID(ea), uint64(b))
	s.sparseSet(s.traits.ID(eb), uint64(a))
	s.dense[a], s.dense[b] = s.dense[b], s.dense[a]
}

// Create allocates a live entity: recycling the head of the cemetery if
// one exists, otherwise minting a brand new id with version 0.
func (s *Self[E]) Create() E {
	if s.CemeteryEmpty() {
		e := s.traits.Construct(uint64(len(s.dense)), 0)
		s.dense = append(s.dense, e)
		s.sparseSet(s.traits.ID(e), uint64(len(s.dense)-1))
	}
	e := s.dense[s.length]
	s.length++
	return e
}

// CreateWithHint allocates the id named by hint, ignoring hint's version:
// if the id is already live it is returned unchanged; if it sits in the
// cemetery it is revived with its recycled (bumped) version. Panics if
// hint is null or its id was never issued.
func (s *Self[E]) CreateWithHint(hint E) E {
	id := s.traits.ID(hint)
	idx, ok := s.indexByID(id)
	vassert.Truef(hint != s.traits.Null() && ok, "storage: create(hint) on unknown id: %v", hint)
	if idx < s.length {
		return s.dense[idx]
	}
	s.swapElementsIndex(s.length, idx)
	s.length++
	return s.dense[s.length-1]
}

// Destroy removes e from the live prefix, moving it to the head of the
// cemetery with its version bumped, and returns that new version. Panics
// if e is not live.
func (s *Self[E]) Destroy(e E) uint64 {
	idx, ok := s.indexByID(s.traits.ID(e))
	vassert.Truef(ok && idx < s.length, "storage: destroy on non-live entity: %v", e)
	last := s.length - 1
	s.swapElementsIndex(idx, last)
	bumped := s.traits.Construct(s.traits.ID(e), s.traits.NextVersion(s.dense[last]))
	s.dense[last] = bumped
	s.length--
	return s.traits.Version(bumped)
}

// Clear empties both the live prefix and the cemetery.
func (s *Self[E]) Clear() {
	s.pages = nil
	s.dense = s.dense[:0]
	s.length = 0
}

// Dense returns the live prefix of the dense array for read-only
// iteration. Callers must not retain it across a mutation of the pool.
func (s *Self[E]) Dense() []E { return s.dense[:s.length] }

// At returns the entity at live index i.
func (s *Self[E]) At(i int) E { return s.dense[i] }
