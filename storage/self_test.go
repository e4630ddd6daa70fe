package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerith-games/vigna/entity"
	"github.com/nerith-games/vigna/storage"
)

func TestCreateMintsFreshIDsWhenCemeteryEmpty(t *testing.T) {
	s := storage.NewSelf[uint32]()
	traits := entity.NewTraits[uint32]()

	a := s.Create()
	b := s.Create()

	assert.Equal(t, uint64(0), traits.ID(a))
	assert.Equal(t, uint64(1), traits.ID(b))
	assert.Equal(t, 2, s.Len())
}

func TestDestroyPanicsOnNonLiveEntity(t *testing.T) {
	s := storage.NewSelf[uint32]()
	e := s.Create()
	s.Destroy(e)
	assert.Panics(t, func() { s.Destroy(e) })
}

func TestCreateWithHintPanicsOnUnknownID(t *testing.T) {
	s := storage.NewSelf[uint32]()
	traits := entity.NewTraits[uint32]()
	unknown := traits.Construct(99, 0)
	assert.Panics(t, func() { s.CreateWithHint(unknown) })
}

func TestDestroyMovesEntityToCemeteryAndBumpsVersion(t *testing.T) {
	s := storage.NewSelf[uint32]()
	traits := entity.NewTraits[uint32]()
	e := s.Create()

	newVersion := s.Destroy(e)

	assert.Equal(t, traits.Version(e)+1, newVersion)
	assert.False(t, s.Valid(e))
	assert.Equal(t, 0, s.Len())
}

func TestCreateRecyclesCemeteryIDWithBumpedVersion(t *testing.T) {
	s := storage.NewSelf[uint32]()
	traits := entity.NewTraits[uint32]()

	first := s.Create()
	s.Destroy(first)
	second := s.Create()

	assert.Equal(t, traits.ID(first), traits.ID(second))
	assert.NotEqual(t, traits.Version(first), traits.Version(second))
	assert.True(t, s.Valid(second))
}

func TestCurrentTracksVersionAcrossDestruction(t *testing.T) {
	s := storage.NewSelf[uint32]()
	traits := entity.NewTraits[uint32]()
	e := s.Create()
	bumped := s.Destroy(e)

	got, ok := s.Current(traits.ID(e))
	require.True(t, ok)
	assert.Equal(t, bumped, got)
}

func TestCreateWithHintRevivesCemeteryEntry(t *testing.T) {
	s := storage.NewSelf[uint32]()
	e := s.Create()
	s.Destroy(e)

	revived := s.CreateWithHint(e)
	traits := entity.NewTraits[uint32]()
	assert.Equal(t, traits.ID(e), traits.ID(revived))
	assert.True(t, s.Valid(revived))
}

func TestCreateWithHintOnLiveEntityReturnsUnchanged(t *testing.T) {
	s := storage.NewSelf[uint32]()
	e := s.Create()
	got := s.CreateWithHint(e)
	assert.Equal(t, e, got)
}

func TestClearResetsLiveAndCemetery(t *testing.T) {
	s := storage.NewSelf[uint32]()
	e := s.Create()
	s.Destroy(e)
	s.Create()

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Cap())
}
