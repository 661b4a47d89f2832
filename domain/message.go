// Package domain contains core concepts of the campus board.
// This file defines Message events and related rules.
// Messages are immutable once appended to the store.
package domain

import (
	"time"
)

// Message represents an immutable chat event.
// ID and CreatedAt are assigned by the message store at append time,
// never by the client, so ordering is authoritative.
type Message struct {
	ID         uint64    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Room       Room      `json:"room"`
	CreatedAt  time.Time `json:"created_at"`
}

// Sender is the identity pair supplied by authentication and stamped
// verbatim on every message.
type Sender struct {
	ID   string
	Name string
}
