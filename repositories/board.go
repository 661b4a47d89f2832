//go:generate go run go.uber.org/mock/mockgen -source=board.go -destination=../mocks/mock_board_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"campus-board/domain"
	apperrors "campus-board/errors"

	"github.com/dgraph-io/badger/v4"
)

type IBoardRepository interface {
	CreateAnnouncement(a domain.Announcement) (domain.Announcement, error)
	ListAnnouncements(faculty string) ([]domain.Announcement, error)
	CreateScheduleEntry(e domain.ScheduleEntry) (domain.ScheduleEntry, error)
	ListSchedule(group string, week domain.WeekType) ([]domain.ScheduleEntry, error)
	CreateAssignment(a domain.Assignment) (domain.Assignment, error)
	ListUpcomingAssignments(group string, now time.Time) ([]domain.Assignment, error)
}

// BoardRepository stores the non-chat board records (announcements, class
// schedule, assignments) in the same BadgerDB instance, under their own
// prefixes. Writes share one sequence.
type BoardRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewBoardRepository(db *badger.DB) (*BoardRepository, error) {
	seq, err := db.GetSequence([]byte("seq:board"), idBandwidth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return &BoardRepository{db: db, seq: seq}, nil
}

func (b *BoardRepository) Close() error {
	return b.seq.Release()
}

func (b *BoardRepository) nextID() (uint64, error) {
	id, err := b.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return id, nil
}

func (b *BoardRepository) set(key []byte, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// scan collects every value under prefix; reverse yields newest-first for
// timestamp-padded keys.
func (b *BoardRepository) scan(prefix []byte, reverse bool, each func(val []byte) error) error {
	err := b.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = reverse
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := prefix
		if reverse {
			seekKey = append(append([]byte{}, prefix...), 0xFF)
		}
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(func(val []byte) error {
				return each(append([]byte{}, val...))
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// --- Announcements ---

func (b *BoardRepository) CreateAnnouncement(a domain.Announcement) (domain.Announcement, error) {
	id, err := b.nextID()
	if err != nil {
		return domain.Announcement{}, err
	}
	a.ID = id
	a.CreatedAt = time.Now().UTC()

	key := []byte(fmt.Sprintf("ann:%019d:%019d", a.CreatedAt.UnixNano(), a.ID))
	if err := b.set(key, a); err != nil {
		return domain.Announcement{}, err
	}
	return a, nil
}

// ListAnnouncements returns university-wide announcements plus the ones
// targeting the given faculty, newest first.
func (b *BoardRepository) ListAnnouncements(faculty string) ([]domain.Announcement, error) {
	var out []domain.Announcement
	err := b.scan([]byte("ann:"), true, func(val []byte) error {
		var a domain.Announcement
		if err := json.Unmarshal(val, &a); err != nil {
			return err
		}
		if a.TargetFaculty == "" || strings.EqualFold(a.TargetFaculty, faculty) {
			out = append(out, a)
		}
		return nil
	})
	return out, err
}

// --- Class schedule ---

func (b *BoardRepository) CreateScheduleEntry(e domain.ScheduleEntry) (domain.ScheduleEntry, error) {
	id, err := b.nextID()
	if err != nil {
		return domain.ScheduleEntry{}, err
	}
	e.ID = id

	key := []byte(fmt.Sprintf("sched:%s:%019d", strings.ToLower(e.TargetGroup), e.ID))
	if err := b.set(key, e); err != nil {
		return domain.ScheduleEntry{}, err
	}
	return e, nil
}

// ListSchedule returns the group's entries applying to the given week parity.
// One-off entries (SpecificDate set) always apply.
func (b *BoardRepository) ListSchedule(group string, week domain.WeekType) ([]domain.ScheduleEntry, error) {
	prefix := []byte(fmt.Sprintf("sched:%s:", strings.ToLower(group)))
	var out []domain.ScheduleEntry
	err := b.scan(prefix, false, func(val []byte) error {
		var e domain.ScheduleEntry
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.SpecificDate != nil || e.WeekType == domain.WeekAll || e.WeekType == week {
			out = append(out, e)
		}
		return nil
	})
	return out, err
}

// --- Assignments ---

func (b *BoardRepository) CreateAssignment(a domain.Assignment) (domain.Assignment, error) {
	id, err := b.nextID()
	if err != nil {
		return domain.Assignment{}, err
	}
	a.ID = id
	a.CreatedAt = time.Now().UTC()

	key := []byte(fmt.Sprintf("assign:%s:%019d:%019d",
		strings.ToLower(a.TargetGroup), a.DueDate.UTC().UnixNano(), a.ID))
	if err := b.set(key, a); err != nil {
		return domain.Assignment{}, err
	}
	return a, nil
}

// ListUpcomingAssignments returns the group's assignments not yet due,
// soonest deadline first (the key embeds the due date).
func (b *BoardRepository) ListUpcomingAssignments(group string, now time.Time) ([]domain.Assignment, error) {
	prefix := []byte(fmt.Sprintf("assign:%s:", strings.ToLower(group)))
	var out []domain.Assignment
	err := b.scan(prefix, false, func(val []byte) error {
		var a domain.Assignment
		if err := json.Unmarshal(val, &a); err != nil {
			return err
		}
		if !a.DueDate.Before(now) {
			out = append(out, a)
		}
		return nil
	})
	return out, err
}
