// Package sink contains EventSink implementations: the per-session delivery
// buffer feeding a transport, and permanent sinks fed on every send.
package sink

import (
	"context"

	"campus-board/domain/event"
	apperrors "campus-board/errors"
)

// SessionSink bridges the registry's broadcast loop to one connection's
// writer goroutine through a buffered channel.
type SessionSink struct {
	Events chan event.DomainEvent
}

func NewSessionSink(bufferSize int) *SessionSink {
	return &SessionSink{Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume is called by the broadcast loop. It must never block on a slow
// consumer: when the buffer is full the event is dropped for this session
// only, and the client recovers the gap from history on its next backfill.
// The drop is reported back so the broadcast loop logs which session lagged.
func (s *SessionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return apperrors.ErrSessionBufferFull
	}
}
