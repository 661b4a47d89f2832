package services

import (
	"context"

	"campus-board/contract"
	"campus-board/domain"
	"campus-board/domain/search"
	"campus-board/repositories"
	"campus-board/runtime"
)

type IChatService interface {
	PostMessage(ctx context.Context, sender domain.Sender, room domain.Room, content string) (domain.Message, error)
	History(ctx context.Context, room domain.Room, limit int) ([]domain.Message, error)
	Search(ctx context.Context, query search.Query) ([]domain.Message, error)
	JoinRoom(sessionID string, room domain.Room, sink contract.EventSink)
	Disconnect(sessionID string)
}

// messageResolver turns search hits back into full messages. Satisfied by
// repositories.MessageStore.
type messageResolver interface {
	ReadByID(ctx context.Context, room domain.Room, id uint64) (domain.Message, error)
}

type ChatService struct {
	coordinator *runtime.Coordinator
	index       repositories.IMessageIndex
	resolver    messageResolver
}

func NewChatService(coordinator *runtime.Coordinator, index repositories.IMessageIndex, resolver messageResolver) *ChatService {
	return &ChatService{coordinator: coordinator, index: index, resolver: resolver}
}

func (s *ChatService) PostMessage(ctx context.Context, sender domain.Sender, room domain.Room, content string) (domain.Message, error) {
	return s.coordinator.SendMessage(ctx, sender, room, content)
}

func (s *ChatService) History(ctx context.Context, room domain.Room, limit int) ([]domain.Message, error) {
	return s.coordinator.History(ctx, room, limit)
}

// Search queries the full-text index and resolves the hits against the store,
// which stays the source of truth. A hit whose message vanished from the store
// is silently skipped.
func (s *ChatService) Search(ctx context.Context, query search.Query) ([]domain.Message, error) {
	hits, err := s.index.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(hits))
	for _, hit := range hits {
		msg, err := s.resolver.ReadByID(ctx, query.Room, hit.MessageID)
		if err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (s *ChatService) JoinRoom(sessionID string, room domain.Room, sink contract.EventSink) {
	s.coordinator.JoinRoom(sessionID, room, sink)
}

func (s *ChatService) Disconnect(sessionID string) {
	s.coordinator.Disconnect(sessionID)
}
