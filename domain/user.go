package domain

import (
	"strings"
	"time"
)

// User is a registered account on the board.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	Faculty      string
	StudyYear    int
	Series       string
	GroupName    string
	IsGroupAdmin bool
	Roles        []string
	CreatedAt    time.Time
}

// CanAccess reports whether the user may read and post in the room: their own
// group room, their own faculty room, or the university-wide room.
func (u User) CanAccess(room Room) bool {
	switch room.Scope {
	case ScopeGroup:
		return strings.EqualFold(room.Target, u.GroupName)
	case ScopeFaculty:
		return strings.EqualFold(room.Target, u.Faculty)
	case ScopeUniversity:
		return true
	default:
		return false
	}
}
