package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"campus-board/contract"
	"campus-board/domain"
	"campus-board/domain/event"
)

// roomEntry owns the member set of one room. Its mutex serializes
// membership changes and broadcasts for that room against each other while
// letting unrelated rooms make progress independently.
type roomEntry struct {
	mu      sync.Mutex
	members map[string]contract.EventSink // session id -> sink
}

// Registry tracks, per room, the live set of subscriber sinks.
// It performs a two-step bookkeeping:
//  1. rooms holds each room's member set.
//  2. sessions maps a session id to its current room key, enforcing the
//     single-room invariant: joining a new room leaves the previous one.
//
// Subscriptions are process-local and never persisted.
// Ensure *Registry implements the contract.Registry interface at compile time.
var _ contract.Registry = (*Registry)(nil)

type Registry struct {
	mu              sync.RWMutex
	rooms           map[string]*roomEntry
	sessions        map[string]string // session id -> room key
	log             *slog.Logger
	deliveryTimeout time.Duration
}

func NewRegistry(log *slog.Logger, deliveryTimeout time.Duration) *Registry {
	return &Registry{
		rooms:           make(map[string]*roomEntry),
		sessions:        make(map[string]string),
		log:             log,
		deliveryTimeout: deliveryTimeout,
	}
}

// Join subscribes the session to the room, atomically moving it out of any
// previous room first. Re-joining the current room is a no-op.
func (r *Registry) Join(sessionID string, room domain.Room, sink contract.EventSink) {
	key := room.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.sessions[sessionID]; ok {
		if current == key {
			return
		}
		r.removeLocked(sessionID, current)
	}

	entry, ok := r.rooms[key]
	if !ok {
		entry = &roomEntry{members: make(map[string]contract.EventSink)}
		r.rooms[key] = entry
	}
	entry.mu.Lock()
	entry.members[sessionID] = sink
	entry.mu.Unlock()

	r.sessions[sessionID] = key
}

// Leave removes the session from whichever room it currently occupies.
// Safe to call on a session with no subscription.
func (r *Registry) Leave(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	r.removeLocked(sessionID, key)
	delete(r.sessions, sessionID)
}

// removeLocked drops the session from a room's member set and prunes the
// room entry when it empties. Caller holds r.mu.
func (r *Registry) removeLocked(sessionID, key string) {
	entry, ok := r.rooms[key]
	if !ok {
		return
	}
	entry.mu.Lock()
	delete(entry.members, sessionID)
	empty := len(entry.members) == 0
	entry.mu.Unlock()

	if empty {
		delete(r.rooms, key)
	}
}

// Broadcast delivers the event to every current subscriber of the room,
// including the one that triggered it. The delivery loop runs under the
// room's own mutex: two broadcasts to the same room cannot interleave, so a
// subscriber's sink observes events in append-completion order. Delivery is
// best-effort per subscriber; one failing or slow sink is logged and never
// stalls the others or surfaces to the sender.
func (r *Registry) Broadcast(room domain.Room, e event.DomainEvent) {
	// r.mu is released before delivery so joins and leaves in unrelated
	// rooms never queue behind an in-flight broadcast. The entry pointer
	// stays valid after release: removeLocked only prunes an entry once it
	// is empty, so a stale pointer delivers to nobody, and a recreated room
	// is a different entry whose members joined after this broadcast.
	r.mu.RLock()
	entry, ok := r.rooms[room.Key()]
	r.mu.RUnlock()
	if !ok {
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), r.deliveryTimeout)
	defer cancel()
	for sessionID, sink := range entry.members {
		if err := sink.Consume(ctx, e); err != nil {
			r.log.Warn("delivery failed, skipping subscriber",
				"session_id", sessionID,
				"room", room.Key(),
				"error", err)
		}
	}
}

// Stats reports the current number of occupied rooms and live sessions.
func (r *Registry) Stats() (rooms, sessions int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms), len(r.sessions)
}
