// Package vigna is a single-threaded, sparse-set entity-component-system
// runtime: a Registry owns entity lifecycle and per-type component pools,
// and View walks the smallest matching pool to iterate entities holding a
// given set of components.
package vigna

import (
	"github.com/nerith-games/vigna/densemap"
	"github.com/nerith-games/vigna/ecsconfig"
	"github.com/nerith-games/vigna/entity"
	"github.com/nerith-games/vigna/internal/typehash"
	"github.com/nerith-games/vigna/internal/vassert"
	"github.com/nerith-games/vigna/sparseset"
	"github.com/nerith-games/vigna/storage"
)

// commonPool is the subset of storage.Pool/storage.TagPool's API the
// registry needs to manage a component pool without knowing its payload
// type: membership, eager removal, wholesale clearing and size.
type commonPool[E entity.Constraint] interface {
	Contains(E) bool
	Pop(E) bool
	Clear()
	Len() int
}

// Registry owns an entity-self pool plus one component pool per type ever
// requested through Emplace/EmplaceTag. E fixes the handle width (id/version
// bit split) for the whole registry.
type Registry[E entity.Constraint] struct {
	traits   entity.Traits[E]
	entities *storage.Self[E]
	pools    *densemap.Map[uint64, commonPool[E]]
	tags     *densemap.Map[uint64, commonPool[E]]
	cfg      ecsconfig.Config
}

// New returns an empty registry for handle type E, built from cfg's sparse
// page size, initial pool capacity hint and signal toggle. These are
// build-time values: they are read once here and never change for the
// life of the registry.
func New[E entity.Constraint](cfg ecsconfig.Config) *Registry[E] {
	pageSize := cfg.SparsePageSize
	if pageSize == 0 {
		pageSize = sparseset.DefaultPageSize
	}
	entities := storage.NewSelfWithPageSize[E](pageSize)
	if cfg.InitialPoolCapacity > 0 {
		entities.Reserve(cfg.InitialPoolCapacity)
	}
	return &Registry[E]{
		traits:   entity.NewTraits[E](),
		entities: entities,
		pools:    densemap.New[uint64, commonPool[E]](),
		tags:     densemap.New[uint64, commonPool[E]](),
		cfg:      cfg,
	}
}

// DebugChecksEnabled reports whether this registry was built with the
// extra consistency verification cfg.EnableDebugChecks turns on.
func (r *Registry[E]) DebugChecksEnabled() bool { return r.cfg.EnableDebugChecks }

// CheckInvariants walks every live entity and panics if one fails the
// basic liveness invariant storage.Self documents: a live id's dense slot
// must round-trip back through Valid. It is never called on the hot path;
// callers opt in via cfg.EnableDebugChecks and Registry calls it after
// entity-lifecycle operations when enabled.
func (r *Registry[E]) CheckInvariants() {
	for _, e := range r.entities.Dense() {
		vassert.Truef(r.entities.Valid(e), "vigna: debug check failed, live entity %v not valid", e)
	}
}

func (r *Registry[E]) debugVerify() {
	if r.cfg.EnableDebugChecks {
		r.CheckInvariants()
	}
}

// Valid reports whether e is a live entity.
func (r *Registry[E]) Valid(e E) bool { return r.entities.Valid(e) }

// Current returns the version currently associated with id(e), live or
// destroyed.
func (r *Registry[E]) Current(e E) uint64 {
	v, _ := r.entities.Current(r.traits.ID(e))
	return v
}

// Create allocates a new entity, recycling a destroyed id's slot if one is
// available.
func (r *Registry[E]) Create() E {
	e := r.entities.Create()
	r.debugVerify()
	return e
}

// CreateWithHint allocates the id named by hint, which must already be a
// known id (live or entombed) in this registry.
func (r *Registry[E]) CreateWithHint(hint E) E {
	e := r.entities.CreateWithHint(hint)
	r.debugVerify()
	return e
}

// Destroy removes e from every pool that contains it and erases e itself,
// returning the new (bumped) version for id(e).
func (r *Registry[E]) Destroy(e E) uint64 {
	r.pools.Each(func(_ uint64, p commonPool[E]) { p.Pop(e) })
	r.tags.Each(func(_ uint64, p commonPool[E]) { p.Pop(e) })
	v := r.entities.Destroy(e)
	r.debugVerify()
	return v
}

// assure returns the value-component pool for T, creating it (bound to r)
// on first use.
func assure[T any, E entity.Constraint](r *Registry[E]) *storage.Pool[E, T, *Registry[E]] {
	hash := typehash.Of[T]()
	if v, ok := r.pools.Find(hash); ok {
		p, ok := v.(*storage.Pool[E, T, *Registry[E]])
		vassert.Truef(ok, "vigna: type hash collision for %T", *new(T))
		return p
	}
	p := storage.NewWithOptions[E, T, *Registry[E]](r, storage.Options{
		PageSize:        r.cfg.SparsePageSize,
		InitialCapacity: r.cfg.InitialPoolCapacity,
		EnableSignals:   r.cfg.EnableSignals,
	})
	r.pools.Set(hash, p)
	return p
}

// assureTag returns the tag-component pool for T, creating it on first use.
// Tag pools are a separate namespace from value pools: the same T can back
// either Emplace or EmplaceTag but the two APIs never share a pool.
func assureTag[T any, E entity.Constraint](r *Registry[E]) *storage.TagPool[E, T, *Registry[E]] {
	hash := typehash.Of[T]()
	if v, ok := r.tags.Find(hash); ok {
		p, ok := v.(*storage.TagPool[E, T, *Registry[E]])
		vassert.Truef(ok, "vigna: type hash collision for tag %T", *new(T))
		return p
	}
	p := storage.NewTagWithOptions[E, T, *Registry[E]](r, storage.Options{
		PageSize:        r.cfg.SparsePageSize,
		InitialCapacity: r.cfg.InitialPoolCapacity,
		EnableSignals:   r.cfg.EnableSignals,
	})
	r.tags.Set(hash, p)
	return p
}

// ElementCount returns how many distinct component types are attached to e.
func (r *Registry[E]) ElementCount(e E) int {
	count := 0
	r.pools.Each(func(_ uint64, p commonPool[E]) {
		if p.Contains(e) {
			count++
		}
	})
	r.tags.Each(func(_ uint64, p commonPool[E]) {
		if p.Contains(e) {
			count++
		}
	})
	return count
}

// Orphan reports whether e has no components attached at all.
func (r *Registry[E]) Orphan(e E) bool { return r.ElementCount(e) == 0 }
