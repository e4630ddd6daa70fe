// Package densemap implements an order-preserving hash map backed by a
// packed node array and separate hash buckets: lookups walk a bucket chain,
// erase swaps the removed node with the tail node and relinks both chains,
// and the table rehashes when the load factor would exceed ~0.707. Erased
// slots are kept at the tail of the packed array (not truncated) so UndoPop
// can resurrect the most recently erased entry in O(1).
package densemap

import "hash/maphash"

const (
	nullIndex  = ^uint64(0)
	loadFactor = 0.707
)

var seed = maphash.MakeSeed()

type node[K comparable, V any] struct {
	key  K
	val  V
	next uint64
}

// Map is a dense_map[K, V]: iteration order is insertion order, modified
// only by the swap Erase performs.
type Map[K comparable, V any] struct {
	buckets []uint64
	packed  []node[K, V]
	length  int
}

// New returns an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int { return m.length }

// Empty reports whether the map holds no live entries.
func (m *Map[K, V]) Empty() bool { return m.length == 0 }

// FreeLen returns the number of erased-but-retained tail slots.
func (m *Map[K, V]) FreeLen() int { return len(m.packed) - m.length }

func (m *Map[K, V]) bucketFor(k K) uint64 {
	return hashKey(k) % uint64(len(m.buckets))
}

func (m *Map[K, V]) findIndex(k K) int {
	if len(m.buckets) == 0 {
		return -1
	}
	i := m.buckets[m.bucketFor(k)]
	for i != nullIndex && m.packed[i].key != k {
		i = m.packed[i].next
	}
	if i == nullIndex {
		return -1
	}
	return int(i)
}

// Find returns the value for k and whether it was present.
func (m *Map[K, V]) Find(k K) (V, bool) {
	i := m.findIndex(k)
	if i < 0 {
		var zero V
		return zero, false
	}
	return m.packed[i].val, true
}

// Contains reports whether k is present.
func (m *Map[K, V]) Contains(k K) bool {
	return m.findIndex(k) >= 0
}

// At returns a pointer to the stored value for k, or nil if absent. The
// pointer is invalidated by any subsequent mutation of the map.
func (m *Map[K, V]) At(k K) *V {
	i := m.findIndex(k)
	if i < 0 {
		return nil
	}
	return &m.packed[i].val
}

func (m *Map[K, V]) rehash() {
	newBuckets := uint64(float64(m.length) * 2 / loadFactor)
	if newBuckets < 8 {
		newBuckets = 8
	}
	m.buckets = make([]uint64, newBuckets)
	for i := range m.buckets {
		m.buckets[i] = nullIndex
	}
	for i := 0; i < m.length; i++ {
		m.linkTail(i)
	}
}

func (m *Map[K, V]) linkTail(index int) {
	b := m.bucketFor(m.packed[index].key)
	m.packed[index].next = nullIndex
	if m.buckets[b] == nullIndex {
		m.buckets[b] = uint64(index)
		return
	}
	tail := m.buckets[b]
	for m.packed[tail].next != nullIndex {
		tail = m.packed[tail].next
	}
	m.packed[tail].next = uint64(index)
}

func (m *Map[K, V]) needsRehash() bool {
	return len(m.buckets) == 0 || float64(m.length) > float64(len(m.buckets))*loadFactor
}

// Set inserts or updates the value for k.
func (m *Map[K, V]) Set(k K, v V) {
	if i := m.findIndex(k); i >= 0 {
		m.packed[i].val = v
		return
	}
	index := m.length
	if m.FreeLen() == 0 {
		m.packed = append(m.packed, node[K, V]{key: k, val: v, next: nullIndex})
	} else {
		m.packed[index] = node[K, V]{key: k, val: v, next: nullIndex}
	}
	m.length++
	if m.needsRehash() {
		m.rehash()
	} else {
		m.linkTail(index)
	}
}

// GetOrInsert returns a pointer to the existing value for k, inserting the
// zero value first if k is absent (operator[] default-insert semantics).
func (m *Map[K, V]) GetOrInsert(k K) *V {
	if i := m.findIndex(k); i >= 0 {
		return &m.packed[i].val
	}
	var zero V
	m.Set(k, zero)
	i := m.findIndex(k)
	return &m.packed[i].val
}

func (m *Map[K, V]) unlink(index int) {
	b := m.bucketFor(m.packed[index].key)
	pre := m.buckets[b]
	if pre == uint64(index) {
		m.buckets[b] = m.packed[index].next
		return
	}
	for m.packed[pre].next != uint64(index) {
		pre = m.packed[pre].next
	}
	m.packed[pre].next = m.packed[index].next
}

// Erase removes k, swapping the tail live entry into its slot. It is a
// no-op if k is absent. The erased slot is retained (not truncated) so
// UndoPop can resurrect it.
func (m *Map[K, V]) Erase(k K) {
	index := m.findIndex(k)
	if index < 0 {
		return
	}
	m.unlink(index)
	last := m.length - 1
	m.length--
	if index != last {
		m.unlink(last)
		m.packed[index], m.packed[last] = m.packed[last], m.packed[index]
		m.linkTail(index)
	}
}

// UndoPop resurrects the most recently erased entry. Precondition:
// FreeLen() > 0.
func (m *Map[K, V]) UndoPop() (K, V) {
	m.linkTail(m.length)
	m.length++
	n := m.packed[m.length-1]
	return n.key, n.val
}

// FreeClear drops all erased-but-retained tail slots, shrinking the backing
// slice to exactly the live entries.
func (m *Map[K, V]) FreeClear() {
	m.packed = m.packed[:m.length]
}

// ShrinkToFit drops free slots and reallocates the backing slice at exact
// capacity.
func (m *Map[K, V]) ShrinkToFit() {
	m.FreeClear()
	tight := make([]node[K, V], len(m.packed))
	copy(tight, m.packed)
	m.packed = tight
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	m.buckets = nil
	m.packed = m.packed[:0]
	m.length = 0
}

// Each calls fn for every (key, value) pair in insertion order (modulo the
// move an Erase performs). fn must not mutate the map.
func (m *Map[K, V]) Each(fn func(K, V)) {
	for i := 0; i < m.length; i++ {
		fn(m.packed[i].key, m.packed[i].val)
	}
}

// Keys returns a snapshot of all live keys in iteration order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, m.length)
	for i := 0; i < m.length; i++ {
		out[i] = m.packed[i].key
	}
	return out
}

func hashKey[K comparable](k K) uint64 {
	return maphash.Comparable(seed, k)
}
