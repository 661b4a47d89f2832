// Package search defines the structured query handed to the message index.
// It decouples gateway input from the index engine requirements.
package search

import "campus-board/domain"

// Query describes one full-text lookup over a room's messages.
type Query struct {
	Room  domain.Room
	Terms string
	Limit int // number of hits; <= 0 falls back to DefaultLimit
}

// DefaultLimit caps result sets when the caller does not ask for a size.
const DefaultLimit = 20

// Hit is one index match, resolved against the message store by the caller.
type Hit struct {
	MessageID uint64
	Score     float64
}
