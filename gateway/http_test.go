package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campus-board/auth"
	"campus-board/contract"
	"campus-board/domain"
	"campus-board/domain/search"
	apperrors "campus-board/errors"
	"campus-board/services"

	"github.com/stretchr/testify/require"
)

// stubChatService records calls so handler wiring can be asserted without a
// running pipeline.
type stubChatService struct {
	history     []domain.Message
	historyRoom domain.Room
	historyErr  error
}

func (s *stubChatService) PostMessage(ctx context.Context, sender domain.Sender, room domain.Room, content string) (domain.Message, error) {
	return domain.Message{}, nil
}

func (s *stubChatService) History(ctx context.Context, room domain.Room, limit int) ([]domain.Message, error) {
	s.historyRoom = room
	return s.history, s.historyErr
}

func (s *stubChatService) Search(ctx context.Context, query search.Query) ([]domain.Message, error) {
	return nil, nil
}

func (s *stubChatService) JoinRoom(sessionID string, room domain.Room, sink contract.EventSink) {}

func (s *stubChatService) Disconnect(sessionID string) {}

type stubAuthService struct {
	users map[string]domain.User
}

func (s *stubAuthService) Register(req auth.RegisterRequest) (services.Token, domain.User, error) {
	if _, exists := s.users[req.Username]; exists {
		return "", domain.User{}, apperrors.ErrUserAlreadyExists
	}
	return "token", domain.User{Username: req.Username}, nil
}

func (s *stubAuthService) Login(username, password string) (services.Token, error) {
	return "", apperrors.ErrInvalidCredentials
}

func (s *stubAuthService) GetProfile(username string) (domain.User, error) {
	user, ok := s.users[username]
	if !ok {
		return domain.User{}, apperrors.ErrNotFound
	}
	return user, nil
}

type stubBoardService struct{}

func (s *stubBoardService) PostAnnouncement(author domain.User, req services.AnnouncementRequest) (domain.Announcement, error) {
	return domain.Announcement{}, apperrors.ErrForbidden
}

func (s *stubBoardService) ListAnnouncements(faculty string) ([]domain.Announcement, error) {
	return []domain.Announcement{{ID: 1, TargetFaculty: faculty}}, nil
}

func (s *stubBoardService) AddScheduleEntry(author domain.User, req services.ScheduleEntryRequest) (domain.ScheduleEntry, error) {
	return domain.ScheduleEntry{}, nil
}

func (s *stubBoardService) GetSchedule(group string, at time.Time) ([]domain.ScheduleEntry, error) {
	return nil, nil
}

func (s *stubBoardService) AddAssignment(author domain.User, req services.AssignmentRequest) (domain.Assignment, error) {
	return domain.Assignment{}, nil
}

func (s *stubBoardService) UpcomingDeadlines(group string, now time.Time) ([]domain.Assignment, error) {
	return nil, nil
}

func newTestServer(chat *stubChatService, users map[string]domain.User) *Server {
	return NewServer(slog.Default(), chat, &stubAuthService{users: users}, &stubBoardService{})
}

func bearerFor(t *testing.T, user domain.User) string {
	t.Helper()
	token, err := auth.GenerateToken(user.ID, user.Username, user.Roles, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func Test_History_Requires_Authentication(t *testing.T) {
	req := require.New(t)
	server := newTestServer(&stubChatService{}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/messages?scope=group&target=621", nil)
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, r)

	req.Equal(http.StatusUnauthorized, w.Code)
}

func Test_History_Returns_Room_Messages(t *testing.T) {
	req := require.New(t)
	alice := domain.User{ID: "u1", Username: "alice42", FullName: "Alice Martin", Faculty: "IM", GroupName: "621"}
	chat := &stubChatService{history: []domain.Message{{ID: 1, Content: "hello"}}}
	server := newTestServer(chat, map[string]domain.User{"alice42": alice})

	r := httptest.NewRequest(http.MethodGet, "/api/messages?scope=group&target=621&limit=50", nil)
	r.Header.Set("Authorization", bearerFor(t, alice))
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
	req.Equal("group:621", chat.historyRoom.Key())

	var messages []domain.Message
	req.NoError(json.Unmarshal(w.Body.Bytes(), &messages))
	req.Len(messages, 1)
	req.Equal("hello", messages[0].Content)
}

func Test_History_Rejects_Foreign_Group_Room(t *testing.T) {
	req := require.New(t)
	alice := domain.User{ID: "u1", Username: "alice42", Faculty: "IM", GroupName: "621"}
	server := newTestServer(&stubChatService{}, map[string]domain.User{"alice42": alice})

	r := httptest.NewRequest(http.MethodGet, "/api/messages?scope=group&target=999", nil)
	r.Header.Set("Authorization", bearerFor(t, alice))
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, r)

	req.Equal(http.StatusForbidden, w.Code)
}

func Test_History_Rejects_Unknown_Scope(t *testing.T) {
	req := require.New(t)
	alice := domain.User{ID: "u1", Username: "alice42", Faculty: "IM", GroupName: "621"}
	server := newTestServer(&stubChatService{}, map[string]domain.User{"alice42": alice})

	r := httptest.NewRequest(http.MethodGet, "/api/messages?scope=planet&target=earth", nil)
	r.Header.Set("Authorization", bearerFor(t, alice))
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, r)

	req.Equal(http.StatusBadRequest, w.Code)
}

func Test_Register_Conflict_On_Taken_Username(t *testing.T) {
	req := require.New(t)
	server := newTestServer(&stubChatService{}, map[string]domain.User{"alice42": {Username: "alice42"}})

	body := strings.NewReader(`{"username":"alice42","password":"ComplexPass123!"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/register", body)
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, r)

	req.Equal(http.StatusConflict, w.Code)
}

func Test_Login_Failure_Maps_To_Unauthorized(t *testing.T) {
	req := require.New(t)
	server := newTestServer(&stubChatService{}, nil)

	body := strings.NewReader(`{"username":"alice42","password":"wrong"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/login", body)
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, r)

	req.Equal(http.StatusUnauthorized, w.Code)
}

func Test_Announcements_Post_Forbidden_For_Plain_Student(t *testing.T) {
	req := require.New(t)
	alice := domain.User{ID: "u1", Username: "alice42", Faculty: "IM", GroupName: "621"}
	server := newTestServer(&stubChatService{}, map[string]domain.User{"alice42": alice})

	body := strings.NewReader(`{"title":"t","content":"c"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/announcements", body)
	r.Header.Set("Authorization", bearerFor(t, alice))
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, r)

	req.Equal(http.StatusForbidden, w.Code)
}

func Test_Store_Failure_Maps_To_Service_Unavailable(t *testing.T) {
	req := require.New(t)
	alice := domain.User{ID: "u1", Username: "alice42", Faculty: "IM", GroupName: "621"}
	chat := &stubChatService{historyErr: apperrors.ErrStoreUnavailable}
	server := newTestServer(chat, map[string]domain.User{"alice42": alice})

	r := httptest.NewRequest(http.MethodGet, "/api/messages?scope=university", nil)
	r.Header.Set("Authorization", bearerFor(t, alice))
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, r)

	req.Equal(http.StatusServiceUnavailable, w.Code)
}
