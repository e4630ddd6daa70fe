package vigna

import (
	"github.com/nerith-games/vigna/entity"
	"github.com/nerith-games/vigna/signal"
	"github.com/nerith-games/vigna/storage"
)

// Go methods cannot introduce type parameters beyond their receiver's, so
// the registry's per-component-type operations (entt's emplace/get/patch
// templates) are free functions taking *Registry[E] explicitly instead of
// registry methods.

// Emplace attaches a T component to e, constructed from value. A no-op
// (returning the existing component) if e already has one.
func Emplace[T any, E entity.Constraint](r *Registry[E], e E, value T) *T {
	ptr, _ := assure[T](r).Emplace(e, value)
	return ptr
}

// Replace overwrites e's existing T component. Panics if e has none.
func Replace[T any, E entity.Constraint](r *Registry[E], e E, value T) *T {
	return assure[T](r).Replace(e, value)
}

// EmplaceOrReplace attaches or overwrites e's T component.
func EmplaceOrReplace[T any, E entity.Constraint](r *Registry[E], e E, value T) *T {
	return assure[T](r).EmplaceOrReplace(e, value)
}

// Patch applies each fn to e's T component in place and emits one update
// notification. Panics if e has none.
func Patch[T any, E entity.Constraint](r *Registry[E], e E, fns ...func(*T)) *T {
	return assure[T](r).Patch(e, fns...)
}

// Get returns e's T component. Panics if e has none.
func Get[T any, E entity.Constraint](r *Registry[E], e E) *T {
	return assure[T](r).Get(e)
}

// TryGet returns e's T component, or (nil, false) if absent.
func TryGet[T any, E entity.Constraint](r *Registry[E], e E) (*T, bool) {
	return assure[T](r).TryGet(e)
}

// GetOrEmplace returns e's T component, attaching dflt first if absent.
func GetOrEmplace[T any, E entity.Constraint](r *Registry[E], e E, dflt T) *T {
	return assure[T](r).GetOrEmplace(e, dflt)
}

// Remove pops e's T component if present, reporting whether it did.
func Remove[T any, E entity.Constraint](r *Registry[E], e E) bool {
	return assure[T](r).Pop(e)
}

// Remove2 pops e's T1 and T2 components, returning how many were present.
func Remove2[T1, T2 any, E entity.Constraint](r *Registry[E], e E) int {
	count := 0
	if assure[T1](r).Pop(e) {
		count++
	}
	if assure[T2](r).Pop(e) {
		count++
	}
	return count
}

// Erase removes e's T component. Panics if e has none.
func Erase[T any, E entity.Constraint](r *Registry[E], e E) {
	assure[T](r).Erase(e)
}

// AllOf1 reports whether e has a T component.
func AllOf1[T any, E entity.Constraint](r *Registry[E], e E) bool {
	return assure[T](r).Contains(e)
}

// AllOf2 reports whether e has both T1 and T2 components.
func AllOf2[T1, T2 any, E entity.Constraint](r *Registry[E], e E) bool {
	return assure[T1](r).Contains(e) && assure[T2](r).Contains(e)
}

// AllOf3 reports whether e has all of T1, T2 and T3.
func AllOf3[T1, T2, T3 any, E entity.Constraint](r *Registry[E], e E) bool {
	return assure[T1](r).Contains(e) && assure[T2](r).Contains(e) && assure[T3](r).Contains(e)
}

// AnyOf2 reports whether e has at least one of T1 or T2.
func AnyOf2[T1, T2 any, E entity.Constraint](r *Registry[E], e E) bool {
	return assure[T1](r).Contains(e) || assure[T2](r).Contains(e)
}

// AnyOf3 reports whether e has at least one of T1, T2 or T3.
func AnyOf3[T1, T2, T3 any, E entity.Constraint](r *Registry[E], e E) bool {
	return assure[T1](r).Contains(e) || assure[T2](r).Contains(e) || assure[T3](r).Contains(e)
}

// OnConstruct returns a sink notified whenever a T component is attached.
func OnConstruct[T any, E entity.Constraint](r *Registry[E]) signal.Sink[storage.Event[*Registry[E], E]] {
	return assure[T](r).OnConstruct()
}

// OnDestroy returns a sink notified whenever a T component is detached.
func OnDestroy[T any, E entity.Constraint](r *Registry[E]) signal.Sink[storage.Event[*Registry[E], E]] {
	return assure[T](r).OnDestroy()
}

// OnUpdate returns a sink notified whenever a T component is patched.
func OnUpdate[T any, E entity.Constraint](r *Registry[E]) signal.Sink[storage.Event[*Registry[E], E]] {
	return assure[T](r).OnUpdate()
}

// EmplaceTag marks e with the zero-sized tag type T. A no-op if already
// tagged.
func EmplaceTag[T any, E entity.Constraint](r *Registry[E], e E) bool {
	return assureTag[T](r).Emplace(e)
}

// RemoveTag unmarks e with T if tagged, reporting whether it did.
func RemoveTag[T any, E entity.Constraint](r *Registry[E], e E) bool {
	return assureTag[T](r).Pop(e)
}

// HasTag reports whether e carries the tag T.
func HasTag[T any, E entity.Constraint](r *Registry[E], e E) bool {
	return assureTag[T](r).Contains(e)
}

// ExcludeTag returns an Excluder matching entities tagged with T, for use
// as a View's exclude list.
func ExcludeTag[T any, E entity.Constraint](r *Registry[E]) Excluder[E] {
	return assureTag[T](r)
}

// Exclude returns an Excluder matching entities holding a value component
// of type T, for use as a View's exclude list.
func Exclude[T any, E entity.Constraint](r *Registry[E]) Excluder[E] {
	return assure[T](r)
}
