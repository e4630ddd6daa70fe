package signal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerith-games/vigna/signal"
)

func TestConnectFuncAlwaysKept(t *testing.T) {
	sig := signal.New[int]()
	var got []int
	sig.ConnectFunc(func(v int) { got = append(got, v) })

	sig.Emit(1)
	sig.Emit(2)

	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 1, sig.Len())
}

func TestConnectBoolErasesOnFalse(t *testing.T) {
	sig := signal.New[int]()
	calls := 0
	sig.ConnectBool(func(v int) bool {
		calls++
		return v < 2
	})

	sig.Emit(1)
	assert.Equal(t, 1, sig.Len())
	sig.Emit(2)
	assert.Equal(t, 0, sig.Len())
	assert.Equal(t, 2, calls)

	sig.Emit(3)
	assert.Equal(t, 2, calls, "erased listener must not run again")
}

func TestDisconnectRemovesListener(t *testing.T) {
	sig := signal.New[int]()
	ran := false
	conn := sig.ConnectFunc(func(int) { ran = true })

	sig.Disconnect(conn)
	sig.Emit(1)

	assert.False(t, ran)
	assert.True(t, sig.Empty())
}

func TestReleaseIsIdempotent(t *testing.T) {
	sig := signal.New[int]()
	conn := sig.ConnectFunc(func(int) {})

	conn.Release()
	require.NotPanics(t, func() { conn.Release() })
	assert.False(t, conn.Connected())
}

func TestSelfDisconnectDuringEmit(t *testing.T) {
	sig := signal.New[int]()
	var self signal.Connection
	self = sig.Connect(func(int) signal.Result {
		self.Release()
		return signal.Keep
	})
	_ = self

	sig.Emit(1)
	// The released entry is dropped by the next emission.
	sig.Emit(2)
	assert.Equal(t, 0, sig.Len())
}

func TestSinkConnectsWithoutExposingEmit(t *testing.T) {
	sig := signal.New[string]()
	sink := signal.NewSink(sig)

	var got string
	conn := sink.ConnectFunc(func(s string) { got = s })
	sig.Emit("hello")
	assert.Equal(t, "hello", got)

	sink.Disconnect(conn)
	sig.Emit("world")
	assert.Equal(t, "hello", got)
}

func TestClearDropsAllListenersWithoutRunningThem(t *testing.T) {
	sig := signal.New[int]()
	ran := false
	sig.ConnectFunc(func(int) { ran = true })
	sig.Clear()
	sig.Emit(1)
	assert.False(t, ran)
	assert.True(t, sig.Empty())
}

func TestSinkClearDropsAllListeners(t *testing.T) {
	sig := signal.New[int]()
	sink := signal.NewSink(sig)
	ran := false
	sink.ConnectFunc(func(int) { ran = true })
	assert.Equal(t, 1, sink.Size())
	assert.False(t, sink.Empty())

	sink.Clear()
	sig.Emit(1)

	assert.False(t, ran)
	assert.True(t, sink.Empty())
	assert.Equal(t, 0, sink.Size())
}
