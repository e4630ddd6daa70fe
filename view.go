package vigna

import (
	"github.com/nerith-games/vigna/entity"
	"github.com/nerith-games/vigna/internal/vassert"
)

// Excluder is the minimal pool surface a View needs to filter out entities
// holding an excluded component: any storage.Pool or storage.TagPool
// satisfies it already.
type Excluder[E entity.Constraint] interface {
	Contains(E) bool
}

// View1 iterates every entity holding a T1 component.
type View1[E entity.Constraint, T1 any] struct {
	get1     getter[E, T1]
	excludes []Excluder[E]
}

type getter[E entity.Constraint, T any] interface {
	Contains(E) bool
	Get(E) *T
	Dense() []E
	Len() int
}

// NewView1 builds a view over T1, skipping any entity matched by excludes.
func NewView1[T1 any, E entity.Constraint](r *Registry[E], excludes ...Excluder[E]) *View1[E, T1] {
	return &View1[E, T1]{get1: assure[T1](r), excludes: excludes}
}

func (v *View1[E, T1]) excluded(e E) bool {
	for _, x := range v.excludes {
		if x.Contains(e) {
			return true
		}
	}
	return false
}

// Contains reports whether e matches this view's Get/Exclude criteria.
func (v *View1[E, T1]) Contains(e E) bool {
	return v.get1.Contains(e) && !v.excluded(e)
}

// Get returns e's T1 component. Panics if e does not match the view.
func (v *View1[E, T1]) Get(e E) *T1 { return v.get1.Get(e) }

// Each calls fn for every matching entity, in the driver pool's dense
// order.
func (v *View1[E, T1]) Each(fn func(E, *T1)) {
	for _, e := range v.get1.Dense() {
		if !v.excluded(e) {
			fn(e, v.get1.Get(e))
		}
	}
}

// ForEach is an alias of Each matching the original library's naming.
func (v *View1[E, T1]) ForEach(fn func(E, *T1)) { v.Each(fn) }

// View2 iterates every entity holding both a T1 and a T2 component,
// driving iteration from whichever of the two pools is smaller.
type View2[E entity.Constraint, T1, T2 any] struct {
	get1         getter[E, T1]
	get2         getter[E, T2]
	driveOnFirst bool
	excludes     []Excluder[E]
}

// NewView2 builds a view over (T1, T2), skipping any entity matched by
// excludes. The smaller of the two pools drives iteration.
func NewView2[T1, T2 any, E entity.Constraint](r *Registry[E], excludes ...Excluder[E]) *View2[E, T1, T2] {
	p1, p2 := assure[T1](r), assure[T2](r)
	return &View2[E, T1, T2]{
		get1: p1, get2: p2,
		driveOnFirst: p1.Len() <= p2.Len(),
		excludes:     excludes,
	}
}

func (v *View2[E, T1, T2]) excluded(e E) bool {
	for _, x := range v.excludes {
		if x.Contains(e) {
			return true
		}
	}
	return false
}

// Contains reports whether e matches this view's Get/Exclude criteria.
func (v *View2[E, T1, T2]) Contains(e E) bool {
	return v.get1.Contains(e) && v.get2.Contains(e) && !v.excluded(e)
}

// Get1 returns e's T1 component.
func (v *View2[E, T1, T2]) Get1(e E) *T1 { return v.get1.Get(e) }

// Get2 returns e's T2 component.
func (v *View2[E, T1, T2]) Get2(e E) *T2 { return v.get2.Get(e) }

// SortAsFirst forces iteration to drive from the T1 pool regardless of
// relative pool size.
func (v *View2[E, T1, T2]) SortAsFirst() { v.driveOnFirst = true }

// SortAsSecond forces iteration to drive from the T2 pool.
func (v *View2[E, T1, T2]) SortAsSecond() { v.driveOnFirst = false }

// Each calls fn for every entity holding both components, in the driver
// pool's dense order.
func (v *View2[E, T1, T2]) Each(fn func(E, *T1, *T2)) {
	if v.driveOnFirst {
		for _, e := range v.get1.Dense() {
			if v.get2.Contains(e) && !v.excluded(e) {
				fn(e, v.get1.Get(e), v.get2.Get(e))
			}
		}
		return
	}
	for _, e := range v.get2.Dense() {
		if v.get1.Contains(e) && !v.excluded(e) {
			fn(e, v.get1.Get(e), v.get2.Get(e))
		}
	}
}

// ForEach is an alias of Each.
func (v *View2[E, T1, T2]) ForEach(fn func(E, *T1, *T2)) { v.Each(fn) }

// View3 iterates every entity holding T1, T2 and T3 components, driving
// from whichever of the three pools is smallest.
type View3[E entity.Constraint, T1, T2, T3 any] struct {
	get1     getter[E, T1]
	get2     getter[E, T2]
	get3     getter[E, T3]
	drive    int
	excludes []Excluder[E]
}

// NewView3 builds a view over (T1, T2, T3), skipping any entity matched by
// excludes.
func NewView3[T1, T2, T3 any, E entity.Constraint](r *Registry[E], excludes ...Excluder[E]) *View3[E, T1, T2, T3] {
	p1, p2, p3 := assure[T1](r), assure[T2](r), assure[T3](r)
	v := &View3[E, T1, T2, T3]{get1: p1, get2: p2, get3: p3, excludes: excludes}
	v.drive = smallestOf(p1.Len(), p2.Len(), p3.Len())
	return v
}

func smallestOf(lens ...int) int {
	best := 0
	for i, l := range lens {
		if l < lens[best] {
			best = i
		}
	}
	return best
}

func (v *View3[E, T1, T2, T3]) excluded(e E) bool {
	for _, x := range v.excludes {
		if x.Contains(e) {
			return true
		}
	}
	return false
}

// Contains reports whether e matches this view's Get/Exclude criteria.
func (v *View3[E, T1, T2, T3]) Contains(e E) bool {
	return v.get1.Contains(e) && v.get2.Contains(e) && v.get3.Contains(e) && !v.excluded(e)
}

// Get1 returns e's T1 component.
func (v *View3[E, T1, T2, T3]) Get1(e E) *T1 { return v.get1.Get(e) }

// Get2 returns e's T2 component.
func (v *View3[E, T1, T2, T3]) Get2(e E) *T2 { return v.get2.Get(e) }

// Get3 returns e's T3 component.
func (v *View3[E, T1, T2, T3]) Get3(e E) *T3 { return v.get3.Get(e) }

// UseGet pins the driver pool by index (0, 1 or 2) instead of the smallest
// one computed at construction.
func (v *View3[E, T1, T2, T3]) UseGet(i int) {
	vassert.Truef(i >= 0 && i <= 2, "vigna: view driver index out of range: %d", i)
	v.drive = i
}

// Each calls fn for every entity holding all three components, in the
// driver pool's dense order.
func (v *View3[E, T1, T2, T3]) Each(fn func(E, *T1, *T2, *T3)) {
	match := func(e E) bool {
		return v.get1.Contains(e) && v.get2.Contains(e) && v.get3.Contains(e) && !v.excluded(e)
	}
	emit := func(e E) { fn(e, v.get1.Get(e), v.get2.Get(e), v.get3.Get(e)) }
	switch v.drive {
	case 0:
		for _, e := range v.get1.Dense() {
			if match(e) {
				emit(e)
			}
		}
	case 1:
		for _, e := range v.get2.Dense() {
			if match(e) {
				emit(e)
			}
		}
	default:
		for _, e := range v.get3.Dense() {
			if match(e) {
				emit(e)
			}
		}
	}
}

// ForEach is an alias of Each.
func (v *View3[E, T1, T2, T3]) ForEach(fn func(E, *T1, *T2, *T3)) { v.Each(fn) }

// View4 iterates every entity holding T1..T4 components, driving from
// whichever of the four pools is smallest.
type View4[E entity.Constraint, T1, T2, T3, T4 any] struct {
	get1     getter[E, T1]
	get2     getter[E, T2]
	get3     getter[E, T3]
	get4     getter[E, T4]
	drive    int
	excludes []Excluder[E]
}

// NewView4 builds a view over (T1, T2, T3, T4), skipping any entity
// matched by excludes.
func NewView4[T1, T2, T3, T4 any, E entity.Constraint](r *Registry[E], excludes ...Excluder[E]) *View4[E, T1, T2, T3, T4] {
	p1, p2, p3, p4 := assure[T1](r), assure[T2](r), assure[T3](r), assure[T4](r)
	v := &View4[E, T1, T2, T3, T4]{get1: p1, get2: p2, get3: p3, get4: p4, excludes: excludes}
	v.drive = smallestOf(p1.Len(), p2.Len(), p3.Len(), p4.Len())
	return v
}

func (v *View4[E, T1, T2, T3, T4]) excluded(e E) bool {
	for _, x := range v.excludes {
		if x.Contains(e) {
			return true
		}
	}
	return false
}

// Contains reports whether e matches this view's Get/Exclude criteria.
func (v *View4[E, T1, T2, T3, T4]) Contains(e E) bool {
	return v.get1.Contains(e) && v.get2.Contains(e) && v.get3.Contains(e) && v.get4.Contains(e) && !v.excluded(e)
}

// Each calls fn for every entity holding all four components, in the
// driver pool's dense order.
func (v *View4[E, T1, T2, T3, T4]) Each(fn func(E, *T1, *T2, *T3, *T4)) {
	match := func(e E) bool {
		return v.get1.Contains(e) && v.get2.Contains(e) && v.get3.Contains(e) && v.get4.Contains(e) && !v.excluded(e)
	}
	emit := func(e E) { fn(e, v.get1.Get(e), v.get2.Get(e), v.get3.Get(e), v.get4.Get(e)) }
	switch v.drive {
	case 0:
		for _, e := range v.get1.Dense() {
			if match(e) {
				emit(e)
			}
		}
	case 1:
		for _, e := range v.get2.Dense() {
			if match(e) {
				emit(e)
			}
		}
	case 2:
		for _, e := range v.get3.Dense() {
			if match(e) {
				emit(e)
			}
		}
	default:
		for _, e := range v.get4.Dense() {
			if match(e) {
				emit(e)
			}
		}
	}
}

// ForEach is an alias of Each.
func (v *View4[E, T1, T2, T3, T4]) ForEach(fn func(E, *T1, *T2, *T3, *T4)) { v.Each(fn) }
