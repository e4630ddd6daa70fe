// Package signal implements the observer primitives storages and the
// registry use to notify listeners on construction, destruction and
// update: a Signal holding an ordered set of listeners and a Connection
// wrapping a shared cancellation flag.
package signal

import "github.com/nerith-games/vigna/densemap"

// Result tells a Signal whether to keep a listener connected after it runs.
type Result int

const (
	Keep Result = iota
	Erase
)

// Connection is an opaque, idempotent cancellation handle. Two connections
// compare equal iff they share the same underlying flag.
type Connection struct {
	flag *bool
}

// Release disconnects the listener. Idempotent: calling it twice has the
// same effect as calling it once.
func (c Connection) Release() {
	if c.flag != nil {
		*c.flag = false
	}
}

// Connected reports whether the connection is still live.
func (c Connection) Connected() bool {
	return c.flag != nil && *c.flag
}

func newConnection() Connection {
	f := true
	return Connection{flag: &f}
}

type listener[Args any] func(Args) Result

// Signal[Args] holds an ordered collection of listeners, keyed by
// Connection, invoked with a single Args value on Emit.
type Signal[Args any] struct {
	listeners *densemap.Map[Connection, listener[Args]]
}

// New returns an empty signal.
func New[Args any]() *Signal[Args] {
	return &Signal[Args]{listeners: densemap.New[Connection, listener[Args]]()}
}

// Len returns the number of connected listeners.
func (s *Signal[Args]) Len() int { return s.listeners.Len() }

// Empty reports whether the signal has no listeners.
func (s *Signal[Args]) Empty() bool { return s.listeners.Empty() }

// Connect subscribes fn, returning its Connection. fn decides per call
// whether it wants to stay connected by returning Keep or Erase.
func (s *Signal[Args]) Connect(fn func(Args) Result) Connection {
	conn := newConnection()
	s.listeners.Set(conn, fn)
	return conn
}

// ConnectFunc adapts a void-returning callback, which always keeps itself
// connected until explicitly released.
func (s *Signal[Args]) ConnectFunc(fn func(Args)) Connection {
	return s.Connect(func(a Args) Result {
		fn(a)
		return Keep
	})
}

// ConnectBool adapts a bool-returning callback: true keeps the connection,
// false erases it after this call.
func (s *Signal[Args]) ConnectBool(fn func(Args) bool) Connection {
	return s.Connect(func(a Args) Result {
		if fn(a) {
			return Keep
		}
		return Erase
	})
}

// Disconnect releases and removes conn. It is a no-op if conn is not
// connected to this signal.
func (s *Signal[Args]) Disconnect(conn Connection) {
	if !s.listeners.Contains(conn) {
		return
	}
	conn.Release()
	s.listeners.Erase(conn)
}

// Clear removes every listener without running them.
func (s *Signal[Args]) Clear() {
	s.listeners.Clear()
}

// Emit invokes every still-connected listener with args, in connection
// order, removing any that report Erase or were already released by
// another listener mid-emission.
func (s *Signal[Args]) Emit(args Args) {
	if s.listeners.Empty() {
		return
	}
	var dead []Connection
	s.listeners.Each(func(conn Connection, fn listener[Args]) {
		if !conn.Connected() {
			dead = append(dead, conn)
			return
		}
		if fn(args) == Erase {
			dead = append(dead, conn)
		}
	})
	for _, conn := range dead {
		s.listeners.Erase(conn)
	}
}
