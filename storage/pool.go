package storage

import (
	"github.com/nerith-games/vigna/entity"
	"github.com/nerith-games/vigna/internal/vassert"
	"github.com/nerith-games/vigna/signal"
	"github.com/nerith-games/vigna/sparseset"
)

// Pool is the value-component storage: a sparse set of entities plus a
// payload slice kept aligned index-for-index with the dense array.
type Pool[E entity.Constraint, T any, O any] struct {
	set           *sparseset.Set[E]
	payload       []T
	owner         O
	enableSignals bool

	construction *signal.Signal[Event[O, E]]
	destruction  *signal.Signal[Event[O, E]]
	update       *signal.Signal[Event[O, E]]
}

// Options configures the sparse set backing a Pool and whether it emits
// signal notifications at all.
type Options struct {
	PageSize        uint64
	InitialCapacity int
	EnableSignals   bool
}

// DefaultOptions matches what New builds: default page size, no capacity
// hint, signals enabled.
func DefaultOptions() Options {
	return Options{PageSize: sparseset.DefaultPageSize, EnableSignals: true}
}

// New returns an empty Pool bound to owner, auto-connecting any of
// ConstructObserver/DestroyObserver/UpdateObserver that T implements.
func New[E entity.Constraint, T any, O any](owner O) *Pool[E, T, O] {
	return NewWithOptions[E, T, O](owner, DefaultOptions())
}

// NewWithOptions is New with an explicit sparse page size, initial capacity
// hint and signal toggle.
func NewWithOptions[E entity.Constraint, T any, O any](owner O, opts Options) *Pool[E, T, O] {
	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = sparseset.DefaultPageSize
	}
	p := &Pool[E, T, O]{
		set:           sparseset.NewWithPageSize[E](pageSize),
		owner:         owner,
		enableSignals: opts.EnableSignals,
		construction:  signal.New[Event[O, E]](),
		destruction:   signal.New[Event[O, E]](),
		update:        signal.New[Event[O, E]](),
	}
	if opts.InitialCapacity > 0 {
		p.set.Reserve(opts.InitialCapacity)
		p.payload = make([]T, 0, opts.InitialCapacity)
	}
	p.autoConnect()
	return p
}

func (p *Pool[E, T, O]) autoConnect() {
	var zero *T
	if obs, ok := any(zero).(ConstructObserver[O, E]); ok {
		p.construction.ConnectFunc(func(ev Event[O, E]) { obs.OnConstruct(ev.Owner, ev.Entity) })
	}
	if obs, ok := any(zero).(DestroyObserver[O, E]); ok {
		p.destruction.ConnectFunc(func(ev Event[O, E]) { obs.OnDestroy(ev.Owner, ev.Entity) })
	}
	if obs, ok := any(zero).(UpdateObserver[O, E]); ok {
		p.update.ConnectFunc(func(ev Event[O, E]) { obs.OnUpdate(ev.Owner, ev.Entity) })
	}
}

// Len returns the number of components stored.
func (p *Pool[E, T, O]) Len() int { return p.set.Len() }

// Empty reports whether the pool holds no components.
func (p *Pool[E, T, O]) Empty() bool { return p.set.Empty() }

// Contains reports whether e has a component in this pool.
func (p *Pool[E, T, O]) Contains(e E) bool { return p.set.Contains(e) }

// OnConstruct returns a sink for construction notifications.
func (p *Pool[E, T, O]) OnConstruct() signal.Sink[Event[O, E]] { return signal.NewSink(p.construction) }

// OnDestroy returns a sink for destruction notifications.
func (p *Pool[E, T, O]) OnDestroy() signal.Sink[Event[O, E]] { return signal.NewSink(p.destruction) }

// OnUpdate returns a sink for patch notifications.
func (p *Pool[E, T, O]) OnUpdate() signal.Sink[Event[O, E]] { return signal.NewSink(p.update) }

// Emplace constructs a component for e. Emplacing onto an entity that
// already has one is a no-op that returns the existing value's address.
func (p *Pool[E, T, O]) Emplace(e E, value T) (*T, bool) {
	idx, inserted := p.set.Push(e)
	if !inserted {
		return &p.payload[idx], false
	}
	p.payload = append(p.payload, value)
	if p.enableSignals {
		p.construction.Emit(Event[O, E]{Owner: p.owner, Entity: e})
	}
	return &p.payload[len(p.payload)-1], true
}

// Replace overwrites the component already attached to e. Panics if e has
// none.
func (p *Pool[E, T, O]) Replace(e E, value T) *T {
	idx, ok := p.set.IndexOf(e)
	vassert.Truef(ok, "storage: replace on entity without component: %v", e)
	p.payload[idx] = value
	if p.enableSignals {
		p.update.Emit(Event[O, E]{Owner: p.owner, Entity: e})
	}
	return &p.payload[idx]
}

// EmplaceOrReplace attaches value to e, replacing any existing component.
func (p *Pool[E, T, O]) EmplaceOrReplace(e E, value T) *T {
	if idx, ok := p.set.IndexOf(e); ok {
		p.payload[idx] = value
		if p.enableSignals {
			p.update.Emit(Event[O, E]{Owner: p.owner, Entity: e})
		}
		return &p.payload[idx]
	}
	ptr, _ := p.Emplace(e, value)
	return ptr
}

// Get returns the component attached to e. Panics if e has none.
func (p *Pool[E, T, O]) Get(e E) *T {
	idx, ok := p.set.IndexOf(e)
	vassert.Truef(ok, "storage: get on entity without component: %v", e)
	return &p.payload[idx]
}

// TryGet returns the component attached to e, or (nil, false) if absent.
func (p *Pool[E, T, O]) TryGet(e E) (*T, bool) {
	idx, ok := p.set.IndexOf(e)
	if !ok {
		return nil, false
	}
	return &p.payload[idx], true
}

// GetOrEmplace returns e's component, attaching dflt first if absent.
func (p *Pool[E, T, O]) GetOrEmplace(e E, dflt T) *T {
	if idx, ok := p.set.IndexOf(e); ok {
		return &p.payload[idx]
	}
	ptr, _ := p.Emplace(e, dflt)
	return ptr
}

// Patch applies each fn to e's component in turn and emits one update
// notification afterward. Panics if e has none.
func (p *Pool[E, T, O]) Patch(e E, fns ...func(*T)) *T {
	ptr := p.Get(e)
	for _, fn := range fns {
		fn(ptr)
	}
	if p.enableSignals {
		p.update.Emit(Event[O, E]{Owner: p.owner, Entity: e})
	}
	return ptr
}

// Pop removes e's component if present, reporting whether it did.
func (p *Pool[E, T, O]) Pop(e E) bool {
	idx, ok := p.set.IndexOf(e)
	if !ok {
		return false
	}
	if p.enableSignals {
		p.destruction.Emit(Event[O, E]{Owner: p.owner, Entity: e})
	}
	p.removeAt(idx)
	return true
}

// Erase removes e's component. Panics if e has none.
func (p *Pool[E, T, O]) Erase(e E) {
	vassert.Truef(p.Pop(e), "storage: erase on entity without component: %v", e)
}

func (p *Pool[E, T, O]) removeAt(idx int) {
	last := len(p.payload) - 1
	p.set.RemoveAt(idx)
	if idx != last {
		p.payload[idx] = p.payload[last]
	}
	var zero T
	p.payload[last] = zero
	p.payload = p.payload[:last]
}

// Clear removes every component, emitting a destruction notification for
// each in dense order first.
func (p *Pool[E, T, O]) Clear() {
	if p.enableSignals && !p.destruction.Empty() {
		for _, e := range p.set.Dense() {
			p.destruction.Emit(Event[O, E]{Owner: p.owner, Entity: e})
		}
	}
	p.set.Clear()
	p.payload = p.payload[:0]
}

// Each calls fn with every (entity, *component) pair in dense order.
func (p *Pool[E, T, O]) Each(fn func(E, *T)) {
	for i, e := range p.set.Dense() {
		fn(e, &p.payload[i])
	}
}

// Dense exposes the backing entity slice for driver selection in views.
func (p *Pool[E, T, O]) Dense() []E { return p.set.Dense() }
