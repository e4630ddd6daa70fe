// Package typehash derives a stable per-type hash used to key heterogeneous
// component pools, built from a type's name as reflect.Type.String reports
// it (package name, not import path) run through FNV-1a.
package typehash

import (
	"hash/fnv"
	"reflect"
)

// Of returns a process-stable hash for T, derived from reflect.Type.String.
// Two types with the same package name and type name from different import
// paths get the same hash.
func Of[T any]() uint64 {
	name := reflect.TypeFor[T]().String()
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}
