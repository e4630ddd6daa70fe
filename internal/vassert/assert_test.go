package vassert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerith-games/vigna/internal/vassert"
)

func TestTruefPanicsWithFormattedMessageWhenFalse(t *testing.T) {
	require.PanicsWithValue(t, "bad index: 3", func() {
		vassert.Truef(false, "bad index: %d", 3)
	})
}

func TestTruefIsANoOpWhenTrue(t *testing.T) {
	assert.NotPanics(t, func() {
		vassert.Truef(true, "never shown: %d", 1)
	})
}
