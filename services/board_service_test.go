package services

import (
	"testing"
	"time"

	"campus-board/domain"
	"campus-board/errors"
	"campus-board/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	groupAdmin = domain.User{
		Username: "alice42", FullName: "Alice Martin",
		Faculty: "IM", GroupName: "621", IsGroupAdmin: true,
	}
	plainStudent = domain.User{
		Username: "bob7", FullName: "Bob Ionescu",
		Faculty: "IM", GroupName: "621",
	}
)

func TestBoardService_PostAnnouncement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIBoardRepository(ctrl)
	svc := NewBoardService(mockRepo)

	t.Run("should store announcement with author identity", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			CreateAnnouncement(gomock.Any()).
			DoAndReturn(func(a domain.Announcement) (domain.Announcement, error) {
				require.Equal(t, "alice42", a.PostedBy)
				require.Equal(t, "Alice Martin", a.AuthorName)
				a.ID = 1
				return a, nil
			}).
			Times(1)

		created, err := svc.PostAnnouncement(groupAdmin, AnnouncementRequest{
			Title:   "Exam session",
			Content: "Schedule published on the board.",
		})

		req.NoError(err)
		req.Equal(uint64(1), created.ID)
	})

	t.Run("should reject a non-admin author", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().CreateAnnouncement(gomock.Any()).Times(0)

		_, err := svc.PostAnnouncement(plainStudent, AnnouncementRequest{
			Title:   "Exam session",
			Content: "Schedule published on the board.",
		})

		req.ErrorIs(err, errors.ErrForbidden)
	})

	t.Run("should reject an empty title", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().CreateAnnouncement(gomock.Any()).Times(0)

		_, err := svc.PostAnnouncement(groupAdmin, AnnouncementRequest{Content: "no title"})

		req.Error(err)
	})
}

func TestBoardService_Schedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIBoardRepository(ctrl)
	svc := NewBoardService(mockRepo)

	t.Run("should default the week type to all", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			CreateScheduleEntry(gomock.Any()).
			DoAndReturn(func(e domain.ScheduleEntry) (domain.ScheduleEntry, error) {
				require.Equal(t, domain.WeekAll, e.WeekType)
				return e, nil
			}).
			Times(1)

		_, err := svc.AddScheduleEntry(groupAdmin, ScheduleEntryRequest{
			CourseName:  "Algebra",
			DayOfWeek:   1,
			StartTime:   "08:00",
			EndTime:     "10:00",
			TargetGroup: "621",
		})

		req.NoError(err)
	})

	t.Run("should reject writes outside the admin's own group", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().CreateScheduleEntry(gomock.Any()).Times(0)

		_, err := svc.AddScheduleEntry(groupAdmin, ScheduleEntryRequest{
			CourseName:  "Algebra",
			DayOfWeek:   1,
			StartTime:   "08:00",
			EndTime:     "10:00",
			TargetGroup: "999",
		})

		req.ErrorIs(err, errors.ErrForbidden)
	})

	t.Run("should query the repository with the week parity of the date", func(t *testing.T) {
		req := require.New(t)

		// 2026-01-05 falls in ISO week 2 of 2026, an even week
		at := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
		req.Equal(domain.WeekEven, domain.WeekParityOf(at))

		mockRepo.EXPECT().
			ListSchedule("621", domain.WeekEven).
			Return(nil, nil).
			Times(1)

		_, err := svc.GetSchedule("621", at)
		req.NoError(err)
	})
}

func TestBoardService_Assignments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIBoardRepository(ctrl)
	svc := NewBoardService(mockRepo)

	t.Run("should store due date in UTC", func(t *testing.T) {
		req := require.New(t)
		due := time.Date(2026, 9, 15, 23, 59, 0, 0, time.FixedZone("EET", 2*3600))

		mockRepo.EXPECT().
			CreateAssignment(gomock.Any()).
			DoAndReturn(func(a domain.Assignment) (domain.Assignment, error) {
				require.Equal(t, time.UTC, a.DueDate.Location())
				return a, nil
			}).
			Times(1)

		_, err := svc.AddAssignment(groupAdmin, AssignmentRequest{
			CourseName:  "Algebra",
			Title:       "Problem set 3",
			DueDate:     due,
			TargetGroup: "621",
		})

		req.NoError(err)
	})

	t.Run("should list upcoming deadlines", func(t *testing.T) {
		req := require.New(t)
		now := time.Now().UTC()

		mockRepo.EXPECT().
			ListUpcomingAssignments("621", now).
			Return([]domain.Assignment{{ID: 1}}, nil).
			Times(1)

		out, err := svc.UpcomingDeadlines("621", now)
		req.NoError(err)
		req.Len(out, 1)
	})
}
