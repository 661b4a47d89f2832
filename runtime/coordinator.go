// Package runtime drives the chat pipeline: membership, persist-then-broadcast,
// and the history/backfill contract. It contains no transport logic.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"campus-board/contract"
	"campus-board/domain"
	"campus-board/domain/event"
	apperrors "campus-board/errors"
	"campus-board/moderation"

	"github.com/abadojack/whatlanggo"
)

// Coordinator orchestrates the chat core. Safe for arbitrary concurrent use
// by many sessions, including several sessions targeting the same room.
type Coordinator struct {
	log              *slog.Logger
	store            contract.MessageStore
	registry         contract.Registry
	moderator        *moderation.Moderator
	permanentSinks   []contract.EventSink
	maxContentLength int
	appendTimeout    time.Duration
	sinkTimeout      time.Duration
}

func NewCoordinator(log *slog.Logger, store contract.MessageStore, registry contract.Registry,
	moderator *moderation.Moderator, maxContentLength int,
	appendTimeout, sinkTimeout time.Duration) *Coordinator {
	return &Coordinator{
		log:              log,
		store:            store,
		registry:         registry,
		moderator:        moderator,
		maxContentLength: maxContentLength,
		appendTimeout:    appendTimeout,
		sinkTimeout:      sinkTimeout,
	}
}

// Add registers permanent sinks consumed on every successful send,
// independent of room membership (e.g. the search index).
func (c *Coordinator) Add(sinks ...contract.EventSink) {
	c.permanentSinks = append(c.permanentSinks, sinks...)
}

// JoinRoom subscribes the session. No history is pushed here: catching up on
// the past goes through History, subscribing to the future goes through the
// registry, and append-before-broadcast keeps the seam gapless either way.
func (c *Coordinator) JoinRoom(sessionID string, room domain.Room, sink contract.EventSink) {
	c.registry.Join(sessionID, room, sink)
	c.log.Debug("session joined room", "session_id", sessionID, "room", room.Key())
}

// Disconnect tears down the session's subscription. Idempotent.
func (c *Coordinator) Disconnect(sessionID string) {
	c.registry.Leave(sessionID)
	c.log.Debug("session disconnected", "session_id", sessionID)
}

// SendMessage validates, durably appends, then broadcasts.
//
// The ordering here is the core correctness contract of the subsystem: the
// append has committed before any subscriber sees the message, so a history
// read issued after a live delivery always contains that message, and a
// message that failed to persist is never seen by anyone, sender included.
func (c *Coordinator) SendMessage(ctx context.Context, sender domain.Sender, room domain.Room, content string) (domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Message{}, apperrors.ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > c.maxContentLength {
		return domain.Message{}, apperrors.ErrContentTooLong
	}

	content = c.censor(sender, content)

	appendCtx, cancel := context.WithTimeout(ctx, c.appendTimeout)
	defer cancel()

	msg, err := c.store.Append(appendCtx, room, sender, content)
	if err != nil {
		// No broadcast on failure: an unstored message must never be seen.
		c.log.Error("append failed", "room", room.Key(), "sender_id", sender.ID, "error", err)
		return domain.Message{}, fmt.Errorf("%w: %v", apperrors.ErrSendFailed, err)
	}

	evt := event.MessageBroadcast{Message: msg}
	c.registry.Broadcast(room, evt)
	c.consumePermanent(evt)

	return msg, nil
}

// History returns the room's messages for initial entry or reconnect
// catch-up; limit <= 0 means full history.
func (c *Coordinator) History(ctx context.Context, room domain.Room, limit int) ([]domain.Message, error) {
	return c.store.Read(ctx, room, limit)
}

// censor runs the moderation pass before the append so that the stored
// record is the single immutable content every reader observes.
func (c *Coordinator) censor(sender domain.Sender, content string) string {
	if c.moderator == nil {
		return content
	}
	censored := c.moderator.Censor(content)
	if censored != content {
		info := whatlanggo.Detect(content)
		c.log.Warn("censored message content",
			"sender_id", sender.ID,
			"lang", info.Lang.Iso6391())
	}
	return censored
}

// consumePermanent feeds side-effect sinks. Best effort: a failure is logged
// and never propagated, the durable append already succeeded.
func (c *Coordinator) consumePermanent(evt event.DomainEvent) {
	if len(c.permanentSinks) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.sinkTimeout)
	defer cancel()
	for _, sink := range c.permanentSinks {
		if err := sink.Consume(ctx, evt); err != nil {
			c.log.Warn("permanent sink failed", "error", err)
		}
	}
}
