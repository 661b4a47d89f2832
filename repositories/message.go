package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"campus-board/domain"
	apperrors "campus-board/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

// idBandwidth controls how many sequence values badger leases at once.
const idBandwidth = 128

// MessageStore persists chat messages in BadgerDB, one append-only log per
// room. The key is formatted as "msg:{scope}:{target}:{timestamp_padded}:{id_padded}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Break ties deterministically with the store-assigned id if two messages
//     are stamped at the same nanosecond.
type MessageStore struct {
	db  *badger.DB
	seq *badger.Sequence
	log *slog.Logger

	// mu makes (created_at, id) assignment atomic so that key order,
	// timestamp order and id order never disagree within a room.
	mu       sync.Mutex
	lastNano int64
}

func NewMessageStore(db *badger.DB, log *slog.Logger) (*MessageStore, error) {
	seq, err := db.GetSequence([]byte("seq:message"), idBandwidth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return &MessageStore{db: db, seq: seq, log: log}, nil
}

// Close releases the leased id range back to badger.
func (m *MessageStore) Close() error {
	return m.seq.Release()
}

// diskMessage is the stored record layout.
type diskMessage struct {
	ID         uint64    `json:"id"`
	Scope      string    `json:"scope"`
	Target     string    `json:"target"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Append durably persists a new message, assigning its id and timestamp.
// The transaction has committed before Append returns: callers may only
// broadcast a message they got back from here.
func (m *MessageStore) Append(ctx context.Context, room domain.Room, sender domain.Sender, content string) (domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	m.mu.Lock()
	id, err := m.seq.Next()
	if err != nil {
		m.mu.Unlock()
		return domain.Message{}, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	nano := time.Now().UTC().UnixNano()
	if nano < m.lastNano {
		// Clock went backwards; reuse the last stamp, the id breaks the tie.
		nano = m.lastNano
	}
	m.lastNano = nano
	m.mu.Unlock()

	msg := domain.Message{
		ID:         id,
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Content:    content,
		Room:       room,
		CreatedAt:  time.Unix(0, nano).UTC(),
	}

	bytes, err := json.Marshal(fromMessage(msg))
	if err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	key := messageKey(room, nano, id)
	// The badger transaction cannot observe ctx, so it runs aside while we
	// watch the deadline. An overdue write surfaces as a failed send; if the
	// transaction commits later anyway it is an unconfirmed send, which the
	// caller must treat as not sent.
	commit := make(chan error, 1)
	go func() {
		commit <- m.db.Update(func(txn *badger.Txn) error {
			return txn.Set(key, bytes)
		})
	}()

	if err := awaitCommit(ctx, commit); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// awaitCommit waits for the write to confirm or the context budget to run
// out, whichever happens first.
func awaitCommit(ctx context.Context, commit <-chan error) error {
	select {
	case err := <-commit:
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, ctx.Err())
	}
}

// Read returns the room's messages in ascending (created_at, id) order.
// limit <= 0 returns the full history; otherwise the most recent limit
// messages are returned, still oldest first.
func (m *MessageStore) Read(ctx context.Context, room domain.Room, limit int) ([]domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	prefix := []byte(fmt.Sprintf("msg:%s:", room.Key()))
	reverse := limit > 0

	var raw [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = reverse
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := prefix
		if reverse {
			// Seek past the newest possible key, then walk backwards.
			seekKey = append(append([]byte{}, prefix...), 0xFF)
		}

		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if reverse && len(raw) == limit {
				break
			}
			err := it.Item().Value(func(value []byte) error {
				raw = append(raw, append([]byte{}, value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	if reverse {
		lo.Reverse(raw)
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, b := range raw {
		var record diskMessage
		if err = json.Unmarshal(b, &record); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
		}
		messages = append(messages, toMessage(record))
	}
	return messages, nil
}

// ReadByID resolves a single message; used by the search path.
func (m *MessageStore) ReadByID(ctx context.Context, room domain.Room, id uint64) (domain.Message, error) {
	messages, err := m.Read(ctx, room, 0)
	if err != nil {
		return domain.Message{}, err
	}
	for _, msg := range messages {
		if msg.ID == id {
			return msg, nil
		}
	}
	return domain.Message{}, apperrors.ErrNotFound
}

func messageKey(room domain.Room, nano int64, id uint64) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%019d", room.Key(), nano, id))
}

func fromMessage(msg domain.Message) diskMessage {
	return diskMessage{
		ID:         msg.ID,
		Scope:      string(msg.Room.Scope),
		Target:     msg.Room.Target,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
	}
}

func toMessage(record diskMessage) domain.Message {
	return domain.Message{
		ID:         record.ID,
		SenderID:   record.SenderID,
		SenderName: record.SenderName,
		Content:    record.Content,
		Room:       domain.Room{Scope: domain.Scope(record.Scope), Target: record.Target},
		CreatedAt:  record.CreatedAt,
	}
}
