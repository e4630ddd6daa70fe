package signal

// Sink is a non-owning facade over a Signal, handed out by storages and the
// registry so callers can subscribe without being able to Emit the
// underlying signal themselves.
type Sink[Args any] struct {
	signal *Signal[Args]
}

// NewSink wraps sig for external subscription.
func NewSink[Args any](sig *Signal[Args]) Sink[Args] {
	return Sink[Args]{signal: sig}
}

// Connect subscribes fn to the wrapped signal.
func (s Sink[Args]) Connect(fn func(Args) Result) Connection {
	return s.signal.Connect(fn)
}

// ConnectFunc subscribes a void-returning callback.
func (s Sink[Args]) ConnectFunc(fn func(Args)) Connection {
	return s.signal.ConnectFunc(fn)
}

// ConnectBool subscribes a bool-returning callback.
func (s Sink[Args]) ConnectBool(fn func(Args) bool) Connection {
	return s.signal.ConnectBool(fn)
}

// Disconnect releases conn from the wrapped signal.
func (s Sink[Args]) Disconnect(conn Connection) {
	s.signal.Disconnect(conn)
}

// Clear removes every listener from the wrapped signal without running
// them. Their Connection values are not released.
func (s Sink[Args]) Clear() {
	s.signal.Clear()
}

// Size returns the number of listeners connected to the wrapped signal.
func (s Sink[Args]) Size() int { return s.signal.Len() }

// Empty reports whether the wrapped signal has no listeners.
func (s Sink[Args]) Empty() bool { return s.signal.Empty() }
