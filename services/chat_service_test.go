package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"campus-board/domain"
	"campus-board/domain/search"
	"campus-board/repositories"
	"campus-board/runtime"
	"campus-board/sink"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newChatFixture(t *testing.T) (*ChatService, domain.Room) {
	t.Helper()
	req := require.New(t)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)

	log := logs.GetLoggerFromLevel(slog.LevelError)
	store, err := repositories.NewMessageStore(db, log)
	req.NoError(err)

	index, err := repositories.NewInMemoryMessageIndex()
	req.NoError(err)

	registry := runtime.NewRegistry(log, time.Second)
	coordinator := runtime.NewCoordinator(log, store, registry, nil,
		500, time.Second, time.Second)
	coordinator.Add(sink.NewSearchSink(index, log))

	t.Cleanup(func() {
		_ = index.Close()
		_ = store.Close()
		_ = db.Close()
	})

	room, err := domain.NewRoom(domain.ScopeGroup, "621")
	req.NoError(err)
	return NewChatService(coordinator, index, store), room
}

func Test_ChatService_Search_Resolves_Hits_Against_Store(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, room := newChatFixture(t)
	sender := domain.Sender{ID: "u1", Name: "Alice"}

	_, err := svc.PostMessage(ctx, sender, room, "algebra exam moved to friday")
	req.NoError(err)
	_, err = svc.PostMessage(ctx, sender, room, "bring the lab reports")
	req.NoError(err)

	found, err := svc.Search(ctx, search.Query{Room: room, Terms: "algebra"})
	req.NoError(err)
	req.Len(found, 1)
	req.Equal("algebra exam moved to friday", found[0].Content)
	req.Equal("Alice", found[0].SenderName)
}

func Test_ChatService_Search_Empty_For_No_Match(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, room := newChatFixture(t)

	_, err := svc.PostMessage(ctx, domain.Sender{ID: "u1", Name: "Alice"}, room, "hello there")
	req.NoError(err)

	found, err := svc.Search(ctx, search.Query{Room: room, Terms: "geometry"})
	req.NoError(err)
	req.Empty(found)
}
