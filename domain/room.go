// Package domain contains core concepts of the campus board.
// This file defines room identity and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"fmt"
	"strings"

	apperrors "campus-board/errors"
)

// Scope is the granularity of a chat room.
type Scope string

const (
	ScopeGroup      Scope = "group"
	ScopeFaculty    Scope = "faculty"
	ScopeUniversity Scope = "university"
)

// UniversityTarget is the fixed target of the single university-wide room.
const UniversityTarget = "all"

// Room identifies one conversation partition.
// It is immutable and is the sole partition key for storage and fan-out:
// two messages belong to the same conversation iff their Room values are equal.
type Room struct {
	Scope  Scope
	Target string
}

// ParseScope validates a raw scope string coming from the outside world.
func ParseScope(raw string) (Scope, error) {
	switch Scope(raw) {
	case ScopeGroup, ScopeFaculty, ScopeUniversity:
		return Scope(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown scope %q", apperrors.ErrInvalidRoom, raw)
	}
}

// NewRoom builds a room identity from validated parts.
// The university scope always points at the single shared room.
// The target is lowercased so that "621A" and "621a" name the same
// conversation, matching the case-insensitive access check on User.
func NewRoom(scope Scope, target string) (Room, error) {
	if scope == ScopeUniversity {
		return Room{Scope: ScopeUniversity, Target: UniversityTarget}, nil
	}
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		return Room{}, fmt.Errorf("%w: scope %s requires a target", apperrors.ErrInvalidRoom, scope)
	}
	if strings.ContainsRune(target, ':') {
		// The colon separates key segments in storage.
		return Room{}, fmt.Errorf("%w: invalid target %q", apperrors.ErrInvalidRoom, target)
	}
	return Room{Scope: scope, Target: target}, nil
}

// Key returns the partition key, e.g. "group:621".
func (r Room) Key() string {
	return string(r.Scope) + ":" + r.Target
}

func (r Room) String() string {
	return r.Key()
}
