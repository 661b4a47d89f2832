package sink

import (
	"context"
	"log/slog"
	"testing"

	"campus-board/domain"
	"campus-board/domain/event"
	"campus-board/domain/search"
	apperrors "campus-board/errors"
	"campus-board/repositories"

	"github.com/stretchr/testify/require"
)

func Test_SessionSink_Delivers_Buffered_Events(t *testing.T) {
	req := require.New(t)
	s := NewSessionSink(2)

	room, err := domain.NewRoom(domain.ScopeGroup, "621")
	req.NoError(err)
	evt := event.MessageBroadcast{Message: domain.Message{ID: 1, Room: room}}

	req.NoError(s.Consume(context.Background(), evt))
	req.Equal(evt, <-s.Events)
}

func Test_SessionSink_Drops_When_Buffer_Full(t *testing.T) {
	req := require.New(t)
	s := NewSessionSink(1)

	room, err := domain.NewRoom(domain.ScopeGroup, "621")
	req.NoError(err)
	first := event.MessageBroadcast{Message: domain.Message{ID: 1, Room: room}}
	second := event.MessageBroadcast{Message: domain.Message{ID: 2, Room: room}}

	req.NoError(s.Consume(context.Background(), first))
	// Buffer full: the second event is dropped without blocking, and the
	// caller is told so it can log the lagging session
	req.ErrorIs(s.Consume(context.Background(), second), apperrors.ErrSessionBufferFull)
	req.Equal(first, <-s.Events)
	req.Empty(s.Events)
}

func Test_SearchSink_Indexes_Broadcast_Messages(t *testing.T) {
	req := require.New(t)
	index, err := repositories.NewInMemoryMessageIndex()
	req.NoError(err)
	defer index.Close()

	s := NewSearchSink(index, slog.Default())

	room, err := domain.NewRoom(domain.ScopeGroup, "621")
	req.NoError(err)
	msg := domain.Message{ID: 7, Content: "algebra homework posted", Room: room}

	req.NoError(s.Consume(context.Background(), event.MessageBroadcast{Message: msg}))

	hits, err := index.Search(context.Background(), search.Query{Room: room, Terms: "algebra"})
	req.NoError(err)
	req.Len(hits, 1)
	req.Equal(uint64(7), hits[0].MessageID)
}
