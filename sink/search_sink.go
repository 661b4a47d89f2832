package sink

import (
	"context"
	"fmt"
	"log/slog"

	"campus-board/domain/event"
	"campus-board/repositories"
)

// SearchSink feeds the full-text index on every broadcast message. It is a
// permanent sink: registered on the coordinator, not on a room.
type SearchSink struct {
	index repositories.IMessageIndex
	log   *slog.Logger
}

func NewSearchSink(index repositories.IMessageIndex, log *slog.Logger) SearchSink {
	return SearchSink{index: index, log: log}
}

func (s SearchSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageBroadcast:
		return s.index.Index(evt.Message)
	default:
		s.log.Debug(fmt.Sprintf("Not implemented event : %v", evt))
		return nil
	}
}
