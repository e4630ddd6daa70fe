package storage

import (
	"github.com/nerith-games/vigna/entity"
	"github.com/nerith-games/vigna/internal/vassert"
	"github.com/nerith-games/vigna/signal"
	"github.com/nerith-games/vigna/sparseset"
)

// TagPool is the empty/tag-component storage: a bare sparse set with no
// payload, for zero-sized marker types where only membership matters.
type TagPool[E entity.Constraint, T any, O any] struct {
	set           *sparseset.Set[E]
	owner         O
	enableSignals bool

	construction *signal.Signal[Event[O, E]]
	destruction  *signal.Signal[Event[O, E]]
}

// NewTag returns an empty TagPool bound to owner, auto-connecting any of
// ConstructObserver/DestroyObserver that T implements.
func NewTag[E entity.Constraint, T any, O any](owner O) *TagPool[E, T, O] {
	return NewTagWithOptions[E, T, O](owner, DefaultOptions())
}

// NewTagWithOptions is NewTag with an explicit sparse page size, initial
// capacity hint and signal toggle.
func NewTagWithOptions[E entity.Constraint, T any, O any](owner O, opts Options) *TagPool[E, T, O] {
	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = sparseset.DefaultPageSize
	}
	p := &TagPool[E, T, O]{
		set:           sparseset.NewWithPageSize[E](pageSize),
		owner:         owner,
		enableSignals: opts.EnableSignals,
		construction:  signal.New[Event[O, E]](),
		destruction:   signal.New[Event[O, E]](),
	}
	if opts.InitialCapacity > 0 {
		p.set.Reserve(opts.InitialCapacity)
	}
	var zero *T
	if obs, ok := any(zero).(ConstructObserver[O, E]); ok {
		p.construction.ConnectFunc(func(ev Event[O, E]) { obs.OnConstruct(ev.Owner, ev.Entity) })
	}
	if obs, ok := any(zero).(DestroyObserver[O, E]); ok {
		p.destruction.ConnectFunc(func(ev Event[O, E]) { obs.OnDestroy(ev.Owner, ev.Entity) })
	}
	return p
}

// Len returns the number of entities tagged.
func (p *TagPool[E, T, O]) Len() int { return p.set.Len() }

// Empty reports whether no entity is tagged.
func (p *TagPool[E, T, O]) Empty() bool { return p.set.Empty() }

// Contains reports whether e is tagged.
func (p *TagPool[E, T, O]) Contains(e E) bool { return p.set.Contains(e) }

// OnConstruct returns a sink for tagging notifications.
func (p *TagPool[E, T, O]) OnConstruct() signal.Sink[Event[O, E]] {
	return signal.NewSink(p.construction)
}

// OnDestroy returns a sink for untagging notifications.
func (p *TagPool[E, T, O]) OnDestroy() signal.Sink[Event[O, E]] { return signal.NewSink(p.destruction) }

// Emplace tags e, a no-op if it is already tagged.
func (p *TagPool[E, T, O]) Emplace(e E) bool {
	_, inserted := p.set.Push(e)
	if inserted && p.enableSignals {
		p.construction.Emit(Event[O, E]{Owner: p.owner, Entity: e})
	}
	return inserted
}

// Pop untags e if tagged, reporting whether it did.
func (p *TagPool[E, T, O]) Pop(e E) bool {
	idx, ok := p.set.IndexOf(e)
	if !ok {
		return false
	}
	if p.enableSignals {
		p.destruction.Emit(Event[O, E]{Owner: p.owner, Entity: e})
	}
	p.set.RemoveAt(idx)
	return true
}

// Erase untags e. Panics if e was not tagged.
func (p *TagPool[E, T, O]) Erase(e E) {
	vassert.Truef(p.Pop(e), "storage: erase on entity without tag: %v", e)
}

// Clear untags every entity.
func (p *TagPool[E, T, O]) Clear() {
	if p.enableSignals && !p.destruction.Empty() {
		for _, e := range p.set.Dense() {
			p.destruction.Emit(Event[O, E]{Owner: p.owner, Entity: e})
		}
	}
	p.set.Clear()
}

// Dense exposes the backing entity slice for driver selection in views.
func (p *TagPool[E, T, O]) Dense() []E { return p.set.Dense() }
