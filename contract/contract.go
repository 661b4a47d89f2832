//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"campus-board/domain"
	"campus-board/domain/event"
	"context"
	"reflect"
)

// MessageStore is the durable, ordered, room-partitioned log of messages.
// Append must be durable before it returns; Read returns ascending
// (created_at, id) order.
type MessageStore interface {
	Append(ctx context.Context, room domain.Room, sender domain.Sender, content string) (domain.Message, error)
	Read(ctx context.Context, room domain.Room, limit int) ([]domain.Message, error)
}

// EventSink receives fanned-out events for one consumer. Consume must be
// cheap or bounded: a slow sink must never stall the broadcast loop.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// Registry tracks which live sessions are subscribed to which room and
// delivers events to exactly that set.
type Registry interface {
	Join(sessionID string, room domain.Room, sink EventSink)
	Leave(sessionID string)
	Broadcast(room domain.Room, e event.DomainEvent)
	Stats() (rooms, sessions int)
}

// Worker doesn't protect itself.
// Can be silly, focused.
type Worker interface {
	Run(ctx context.Context) error
}

type Supervisor interface {
	Add(worker ...Worker) Supervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker lifecycle
// events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
