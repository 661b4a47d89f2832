package domain

import "time"

// WeekType tells which week parity a schedule entry applies to.
type WeekType string

const (
	WeekAll  WeekType = "all"
	WeekOdd  WeekType = "odd"
	WeekEven WeekType = "even"
)

// WeekParityOf maps a date to the odd/even week alternation used by the
// timetable, based on the ISO week number.
func WeekParityOf(t time.Time) WeekType {
	_, week := t.ISOWeek()
	if week%2 == 0 {
		return WeekEven
	}
	return WeekOdd
}

// Announcement is a board post targeting one faculty or everyone.
// An empty TargetFaculty means the announcement is university-wide.
type Announcement struct {
	ID            uint64
	Title         string
	Content       string
	PostedBy      string
	AuthorName    string
	TargetFaculty string
	CreatedAt     time.Time
}

// ScheduleEntry is one recurring or one-off class slot for a group.
type ScheduleEntry struct {
	ID           uint64
	CourseName   string
	DayOfWeek    time.Weekday
	StartTime    string
	EndTime      string
	Location     string
	WeekType     WeekType
	SpecificDate *time.Time
	Cancelled    bool
	TargetGroup  string
	CreatedBy    string
}

// Assignment is homework with a deadline, scoped to a group.
type Assignment struct {
	ID          uint64
	CourseName  string
	Title       string
	Description string
	DueDate     time.Time
	TargetGroup string
	CreatedBy   string
	CreatedAt   time.Time
}
