package event

import (
	"campus-board/domain"
)

// DomainEvent is anything fanned out to room subscribers.
type DomainEvent interface {
	Room() domain.Room
}

// MessageBroadcast carries a durably stored message to every current
// subscriber of its room, including the sender.
type MessageBroadcast struct {
	Message domain.Message
}

func (m MessageBroadcast) Room() domain.Room {
	return m.Message.Room
}
