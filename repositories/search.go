package repositories

import (
	"context"
	"fmt"
	"strconv"

	"campus-board/domain"
	"campus-board/domain/search"

	"github.com/blugelabs/bluge"
)

type IMessageIndex interface {
	Index(msg domain.Message) error
	Search(ctx context.Context, query search.Query) ([]search.Hit, error)
	Close() error
}

// MessageIndex is a bluge full-text index over message content, scoped by
// room key. It is a derived view: the message store stays the source of
// truth and hits are resolved against it.
type MessageIndex struct {
	writer *bluge.Writer
}

// NewMessageIndex opens (or creates) the index at path.
func NewMessageIndex(path string) (*MessageIndex, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(path))
	if err != nil {
		return nil, fmt.Errorf("opening message index: %w", err)
	}
	return &MessageIndex{writer: writer}, nil
}

// NewInMemoryMessageIndex is used by tests.
func NewInMemoryMessageIndex() (*MessageIndex, error) {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return nil, fmt.Errorf("opening message index: %w", err)
	}
	return &MessageIndex{writer: writer}, nil
}

func (i *MessageIndex) Close() error {
	return i.writer.Close()
}

// Index upserts one message document. Message immutability makes the update
// idempotent: re-indexing the same id rewrites an identical document.
func (i *MessageIndex) Index(msg domain.Message) error {
	docID := fmt.Sprintf("%s/%d", msg.Room.Key(), msg.ID)
	doc := bluge.NewDocument(docID).
		AddField(bluge.NewTextField("content", msg.Content)).
		AddField(bluge.NewKeywordField("room", msg.Room.Key())).
		AddField(bluge.NewKeywordField("message_id", strconv.FormatUint(msg.ID, 10)).StoreValue())
	return i.writer.Update(doc.ID(), doc)
}

// Search returns the best-scoring matches for the query's room.
func (i *MessageIndex) Search(ctx context.Context, query search.Query) ([]search.Hit, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = search.DefaultLimit
	}

	reader, err := i.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("message index reader: %w", err)
	}
	defer reader.Close()

	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(query.Terms).SetField("content")).
		AddMust(bluge.NewTermQuery(query.Room.Key()).SetField("room"))

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, q))
	if err != nil {
		return nil, fmt.Errorf("message index search: %w", err)
	}

	var hits []search.Hit
	match, err := iterator.Next()
	for err == nil && match != nil {
		hit := search.Hit{Score: match.Score}
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "message_id" {
				hit.MessageID, _ = strconv.ParseUint(string(value), 10, 64)
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		hits = append(hits, hit)
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, err
	}
	return hits, nil
}
