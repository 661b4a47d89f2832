package repositories

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"campus-board/domain"
	apperrors "campus-board/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Append_Then_Read_Same_Room(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	store, err := NewMessageStore(db, slog.Default())
	req.NoError(err)
	defer store.Close()

	room, err := domain.NewRoom(domain.ScopeGroup, "621")
	req.NoError(err)
	ctx := context.Background()

	// When three messages are appended
	var appended []domain.Message
	for _, content := range []string{"hello", "anyone there?", "yes"} {
		msg, err := store.Append(ctx, room, domain.Sender{ID: "u1", Name: "Alice"}, content)
		req.NoError(err)
		appended = append(appended, msg)
	}

	// Then a read on the same store includes them all, oldest first
	fetched, err := store.Read(ctx, room, 0)
	req.NoError(err)
	req.Equal(appended, fetched)
}

func Test_Read_Limit_Keeps_Most_Recent_Ascending(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	store, err := NewMessageStore(db, slog.Default())
	req.NoError(err)
	defer store.Close()

	room, err := domain.NewRoom(domain.ScopeFaculty, "IM")
	req.NoError(err)
	ctx := context.Background()

	for _, content := range []string{"a", "b", "c", "d"} {
		_, err := store.Append(ctx, room, domain.Sender{ID: "u1", Name: "Alice"}, content)
		req.NoError(err)
	}

	fetched, err := store.Read(ctx, room, 2)
	req.NoError(err)
	req.Len(fetched, 2)
	req.Equal("c", fetched[0].Content)
	req.Equal("d", fetched[1].Content)
}

func Test_Read_Total_Order_Per_Room(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	store, err := NewMessageStore(db, slog.Default())
	req.NoError(err)
	defer store.Close()

	room, err := domain.NewRoom(domain.ScopeGroup, "621")
	req.NoError(err)
	ctx := context.Background()

	// When many senders append concurrently
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := store.Append(ctx, room, domain.Sender{ID: "u", Name: "U"}, "x")
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	// Then history is a strict total order: non-decreasing created_at,
	// strictly increasing id among equal timestamps
	fetched, err := store.Read(ctx, room, 0)
	req.NoError(err)
	req.Len(fetched, 200)
	for i := 1; i < len(fetched); i++ {
		prev, cur := fetched[i-1], fetched[i]
		req.False(cur.CreatedAt.Before(prev.CreatedAt))
		if cur.CreatedAt.Equal(prev.CreatedAt) {
			req.Greater(cur.ID, prev.ID)
		}
	}
}

func Test_Rooms_Are_Isolated(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	store, err := NewMessageStore(db, slog.Default())
	req.NoError(err)
	defer store.Close()

	ctx := context.Background()
	roomA, err := domain.NewRoom(domain.ScopeGroup, "621")
	req.NoError(err)
	roomB, err := domain.NewRoom(domain.ScopeGroup, "622")
	req.NoError(err)

	_, err = store.Append(ctx, roomA, domain.Sender{ID: "u1", Name: "Alice"}, "for A only")
	req.NoError(err)

	fetched, err := store.Read(ctx, roomB, 0)
	req.NoError(err)
	req.Empty(fetched)
}

func Test_Same_Target_Different_Scope_Is_A_Different_Room(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	store, err := NewMessageStore(db, slog.Default())
	req.NoError(err)
	defer store.Close()

	ctx := context.Background()
	group, err := domain.NewRoom(domain.ScopeGroup, "IM")
	req.NoError(err)
	faculty, err := domain.NewRoom(domain.ScopeFaculty, "IM")
	req.NoError(err)

	_, err = store.Append(ctx, group, domain.Sender{ID: "u1", Name: "Alice"}, "group only")
	req.NoError(err)

	fetched, err := store.Read(ctx, faculty, 0)
	req.NoError(err)
	req.Empty(fetched)
}

func Test_Append_With_Canceled_Context_Fails_As_Store_Error(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	store, err := NewMessageStore(db, slog.Default())
	req.NoError(err)
	defer store.Close()

	room, err := domain.NewRoom(domain.ScopeGroup, "621")
	req.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Append(ctx, room, domain.Sender{ID: "u1", Name: "Alice"}, "late")
	req.ErrorIs(err, apperrors.ErrStoreUnavailable)

	// And nothing was persisted
	fetched, err := store.Read(context.Background(), room, 0)
	req.NoError(err)
	req.Empty(fetched)
}

func Test_ReadByID(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	store, err := NewMessageStore(db, slog.Default())
	req.NoError(err)
	defer store.Close()

	room, err := domain.NewRoom(domain.ScopeGroup, "621")
	req.NoError(err)
	ctx := context.Background()

	msg, err := store.Append(ctx, room, domain.Sender{ID: "u1", Name: "Alice"}, "findable")
	req.NoError(err)

	found, err := store.ReadByID(ctx, room, msg.ID)
	req.NoError(err)
	req.Equal(msg, found)

	_, err = store.ReadByID(ctx, room, msg.ID+1000)
	req.ErrorIs(err, apperrors.ErrNotFound)
}

func Test_Append_Budget_Expiry_Surfaces_Store_Error(t *testing.T) {
	req := require.New(t)

	// Given a write that never confirms, as on stalled storage I/O
	stuck := make(chan error)
	defer close(stuck)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// When the budget elapses first
	start := time.Now()
	err := awaitCommit(ctx, stuck)

	// Then the caller gets a store error within the budget instead of hanging
	req.ErrorIs(err, apperrors.ErrStoreUnavailable)
	req.Less(time.Since(start), time.Second)
}

func Test_Append_Confirmed_Write_Beats_The_Budget(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	store, err := NewMessageStore(db, slog.Default())
	req.NoError(err)
	defer store.Close()

	room, err := domain.NewRoom(domain.ScopeGroup, "621")
	req.NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg, err := store.Append(ctx, room, domain.Sender{ID: "u1", Name: "Alice"}, "on time")
	req.NoError(err)

	fetched, err := store.Read(context.Background(), room, 0)
	req.NoError(err)
	req.Equal([]domain.Message{msg}, fetched)
}
