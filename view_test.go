package vigna_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vigna "github.com/nerith-games/vigna"
	"github.com/nerith-games/vigna/ecsconfig"
)

func TestView1IteratesEntitiesWithComponent(t *testing.T) {
	r := vigna.New[uint32](ecsconfig.Default())
	a := r.Create()
	b := r.Create()
	vigna.Emplace(r, a, position{X: 1})
	vigna.Emplace(r, b, position{X: 2})

	view := vigna.NewView1[position](r)
	var total float64
	view.Each(func(_ uint32, p *position) { total += p.X })
	assert.Equal(t, float64(3), total)
}

func TestView2OnlyVisitsEntitiesWithBothComponents(t *testing.T) {
	r := vigna.New[uint32](ecsconfig.Default())
	a := r.Create()
	b := r.Create()
	vigna.Emplace(r, a, position{X: 1})
	vigna.Emplace(r, a, velocity{DX: 1})
	vigna.Emplace(r, b, position{X: 2})

	view := vigna.NewView2[position, velocity](r)
	visited := 0
	view.Each(func(e uint32, p *position, v *velocity) {
		visited++
		assert.Equal(t, a, e)
	})
	assert.Equal(t, 1, visited)
}

func TestView2ExcludesMatchingEntities(t *testing.T) {
	r := vigna.New[uint32](ecsconfig.Default())
	a := r.Create()
	b := r.Create()
	vigna.Emplace(r, a, position{})
	vigna.Emplace(r, a, velocity{})
	vigna.Emplace(r, b, position{})
	vigna.Emplace(r, b, velocity{})
	vigna.EmplaceTag[frozen](r, b)

	view := vigna.NewView2[position, velocity](r, vigna.ExcludeTag[frozen](r))

	visited := 0
	view.Each(func(e uint32, _ *position, _ *velocity) {
		visited++
		assert.Equal(t, a, e)
	})
	assert.Equal(t, 1, visited)
}

func TestView3DrivesFromSmallestPool(t *testing.T) {
	r := vigna.New[uint32](ecsconfig.Default())
	for i := 0; i < 10; i++ {
		e := r.Create()
		vigna.Emplace(r, e, position{})
		vigna.Emplace(r, e, velocity{})
	}
	only := r.Create()
	vigna.Emplace(r, only, position{})
	vigna.Emplace(r, only, velocity{})
	type tiny struct{ N int }
	vigna.Emplace(r, only, tiny{N: 42})

	view := vigna.NewView3[position, velocity, tiny](r)
	visited := 0
	view.Each(func(e uint32, _ *position, _ *velocity, tn *tiny) {
		visited++
		assert.Equal(t, only, e)
		assert.Equal(t, 42, tn.N)
	})
	assert.Equal(t, 1, visited)
}

func TestViewContainsMatchesEach(t *testing.T) {
	r := vigna.New[uint32](ecsconfig.Default())
	a := r.Create()
	vigna.Emplace(r, a, position{})

	view := vigna.NewView1[position](r)
	assert.True(t, view.Contains(a))

	b := r.Create()
	assert.False(t, view.Contains(b))
}
