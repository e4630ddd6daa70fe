package densemap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerith-games/vigna/densemap"
)

func TestSetAndFind(t *testing.T) {
	m := densemap.New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	v, ok := m.Find("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = m.Find("missing")
	assert.False(t, ok)
}

func TestEraseSwapsTailAndPreservesLookup(t *testing.T) {
	m := densemap.New[int, string]()
	for i := 0; i < 5; i++ {
		m.Set(i, string(rune('a'+i)))
	}
	m.Erase(1)
	assert.Equal(t, 4, m.Len())
	assert.False(t, m.Contains(1))
	for _, k := range []int{0, 2, 3, 4} {
		_, ok := m.Find(k)
		assert.True(t, ok, "key %d should remain", k)
	}
}

func TestIterationOrderIsInsertionOrderModuloErase(t *testing.T) {
	m := densemap.New[int, int]()
	for i := 0; i < 10; i++ {
		m.Set(i, i*i)
	}
	m.Erase(3)
	var seen []int
	m.Each(func(k, v int) { seen = append(seen, k) })
	assert.Equal(t, []int{0, 1, 2, 9, 4, 5, 6, 7, 8}, seen, "the tail entry moves into the erased slot")
}

func TestRehashPreservesAllEntries(t *testing.T) {
	m := densemap.New[int, int]()
	const n = 500
	for i := 0; i < n; i++ {
		m.Set(i, i)
	}
	require.Equal(t, n, m.Len())
	for i := 0; i < n; i++ {
		v, ok := m.Find(i)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestGetOrInsertDefaultInserts(t *testing.T) {
	m := densemap.New[string, int]()
	p := m.GetOrInsert("x")
	assert.Equal(t, 0, *p)
	*p = 99
	v, _ := m.Find("x")
	assert.Equal(t, 99, v)
}

func TestUndoPopResurrectsLastErased(t *testing.T) {
	m := densemap.New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Erase("b")
	assert.Equal(t, 1, m.Len())

	k, v := m.UndoPop()
	assert.Equal(t, "b", k)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, m.Len())
	found, ok := m.Find("b")
	assert.True(t, ok)
	assert.Equal(t, 2, found)
}

func TestClearEmptiesMap(t *testing.T) {
	m := densemap.New[int, int]()
	m.Set(1, 1)
	m.Clear()
	assert.True(t, m.Empty())
	assert.False(t, m.Contains(1))
}
