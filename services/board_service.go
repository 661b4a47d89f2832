package services

import (
	"strings"
	"time"

	"campus-board/domain"
	"campus-board/errors"
	"campus-board/repositories"

	"github.com/go-playground/validator/v10"
)

type IBoardService interface {
	PostAnnouncement(author domain.User, req AnnouncementRequest) (domain.Announcement, error)
	ListAnnouncements(faculty string) ([]domain.Announcement, error)
	AddScheduleEntry(author domain.User, req ScheduleEntryRequest) (domain.ScheduleEntry, error)
	GetSchedule(group string, at time.Time) ([]domain.ScheduleEntry, error)
	AddAssignment(author domain.User, req AssignmentRequest) (domain.Assignment, error)
	UpcomingDeadlines(group string, now time.Time) ([]domain.Assignment, error)
}

type AnnouncementRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Content       string `json:"content" validate:"required,max=5000"`
	TargetFaculty string `json:"target_faculty" validate:"max=64"`
}

type ScheduleEntryRequest struct {
	CourseName   string     `json:"course_name" validate:"required,max=128"`
	DayOfWeek    int        `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime    string     `json:"start_time" validate:"required"`
	EndTime      string     `json:"end_time" validate:"required"`
	Location     string     `json:"location" validate:"max=128"`
	WeekType     string     `json:"week_type" validate:"omitempty,oneof=all odd even"`
	SpecificDate *time.Time `json:"specific_date"`
	Cancelled    bool       `json:"cancelled"`
	TargetGroup  string     `json:"target_group" validate:"required,max=32"`
}

type AssignmentRequest struct {
	CourseName  string    `json:"course_name" validate:"required,max=128"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	TargetGroup string    `json:"target_group" validate:"required,max=32"`
}

type BoardService struct {
	boardRepository repositories.IBoardRepository
	validate        *validator.Validate
}

func NewBoardService(repo repositories.IBoardRepository) *BoardService {
	return &BoardService{boardRepository: repo, validate: validator.New()}
}

// PostAnnouncement stores a new announcement. Only group admins may post; an
// empty target faculty publishes university-wide.
func (s *BoardService) PostAnnouncement(author domain.User, req AnnouncementRequest) (domain.Announcement, error) {
	if !author.IsGroupAdmin {
		return domain.Announcement{}, errors.ErrForbidden
	}
	if err := s.validate.Struct(req); err != nil {
		return domain.Announcement{}, err
	}
	return s.boardRepository.CreateAnnouncement(domain.Announcement{
		Title:         req.Title,
		Content:       req.Content,
		PostedBy:      author.Username,
		AuthorName:    author.FullName,
		TargetFaculty: req.TargetFaculty,
	})
}

func (s *BoardService) ListAnnouncements(faculty string) ([]domain.Announcement, error) {
	return s.boardRepository.ListAnnouncements(faculty)
}

// AddScheduleEntry stores a timetable slot. Restricted to the admin of the
// target group.
func (s *BoardService) AddScheduleEntry(author domain.User, req ScheduleEntryRequest) (domain.ScheduleEntry, error) {
	if err := s.authorizeGroupWrite(author, req.TargetGroup); err != nil {
		return domain.ScheduleEntry{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return domain.ScheduleEntry{}, err
	}

	week := domain.WeekType(req.WeekType)
	if week == "" {
		week = domain.WeekAll
	}
	return s.boardRepository.CreateScheduleEntry(domain.ScheduleEntry{
		CourseName:   req.CourseName,
		DayOfWeek:    time.Weekday(req.DayOfWeek),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Location:     req.Location,
		WeekType:     week,
		SpecificDate: req.SpecificDate,
		Cancelled:    req.Cancelled,
		TargetGroup:  req.TargetGroup,
		CreatedBy:    author.Username,
	})
}

// GetSchedule returns the group's entries applying to the week containing at.
func (s *BoardService) GetSchedule(group string, at time.Time) ([]domain.ScheduleEntry, error) {
	return s.boardRepository.ListSchedule(group, domain.WeekParityOf(at))
}

func (s *BoardService) AddAssignment(author domain.User, req AssignmentRequest) (domain.Assignment, error) {
	if err := s.authorizeGroupWrite(author, req.TargetGroup); err != nil {
		return domain.Assignment{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return domain.Assignment{}, err
	}
	return s.boardRepository.CreateAssignment(domain.Assignment{
		CourseName:  req.CourseName,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate.UTC(),
		TargetGroup: req.TargetGroup,
		CreatedBy:   author.Username,
	})
}

func (s *BoardService) UpcomingDeadlines(group string, now time.Time) ([]domain.Assignment, error) {
	return s.boardRepository.ListUpcomingAssignments(group, now)
}

func (s *BoardService) authorizeGroupWrite(author domain.User, group string) error {
	if !author.IsGroupAdmin || !strings.EqualFold(author.GroupName, group) {
		return errors.ErrForbidden
	}
	return nil
}
