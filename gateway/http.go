// Package gateway exposes the REST and WebSocket surface of the board.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"campus-board/auth"
	"campus-board/domain"
	"campus-board/domain/search"
	apperrors "campus-board/errors"
	"campus-board/services"
)

type contextKey string

const userKey contextKey = "user"

// Server wires the application services to HTTP routes.
type Server struct {
	log          *slog.Logger
	chatService  services.IChatService
	authService  services.IAuthService
	boardService services.IBoardService
}

func NewServer(log *slog.Logger, chat services.IChatService,
	authSvc services.IAuthService, board services.IBoardService) *Server {
	return &Server{
		log:          log,
		chatService:  chat,
		authService:  authSvc,
		boardService: board,
	}
}

// Routes builds the full route table. Register and login are public,
// everything else sits behind the JWT middleware.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)

	mux.Handle("GET /api/messages", s.authenticated(s.handleHistory))
	mux.Handle("GET /api/messages/search", s.authenticated(s.handleSearch))
	mux.Handle("GET /api/announcements", s.authenticated(s.handleListAnnouncements))
	mux.Handle("POST /api/announcements", s.authenticated(s.handlePostAnnouncement))
	mux.Handle("GET /api/schedule", s.authenticated(s.handleGetSchedule))
	mux.Handle("POST /api/schedule", s.authenticated(s.handleAddSchedule))
	mux.Handle("GET /api/deadlines", s.authenticated(s.handleDeadlines))
	mux.Handle("POST /api/assignments", s.authenticated(s.handleAddAssignment))
	mux.Handle("GET /ws", s.authenticated(s.handleWebSocket))

	return mux
}

// authenticated validates the bearer token and resolves the caller's account,
// so handlers can scope room access by faculty and group.
func (s *Server) authenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			// Query param fallback, standard for WebSocket clients.
			tokenString = r.URL.Query().Get("token")
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		if tokenString == "" {
			s.writeError(w, apperrors.ErrInvalidCredentials)
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			s.writeError(w, apperrors.ErrInvalidCredentials)
			return
		}

		user, err := s.authService.GetProfile(claims.Username)
		if err != nil {
			s.writeError(w, apperrors.ErrInvalidCredentials)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

func callerFrom(r *http.Request) domain.User {
	user, _ := r.Context().Value(userKey).(domain.User)
	return user
}

// --- Accounts ---

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	token, user, err := s.authService.Register(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"token":          token.String(),
		"username":       user.Username,
		"is_group_admin": user.IsGroupAdmin,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if err := auth.ValidateLogin(req); err != nil {
		s.writeError(w, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := s.authService.Login(req.Username, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"token": token.String()})
}

// --- Chat ---

// roomFromQuery derives the room from scope/target params and checks that the
// caller may access it.
func (s *Server) roomFromQuery(r *http.Request) (domain.Room, error) {
	scope, err := domain.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		return domain.Room{}, err
	}
	room, err := domain.NewRoom(scope, r.URL.Query().Get("target"))
	if err != nil {
		return domain.Room{}, err
	}
	if !callerFrom(r).CanAccess(room) {
		return domain.Room{}, apperrors.ErrForbidden
	}
	return room, nil
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	room, err := s.roomFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	messages, err := s.chatService.History(r.Context(), room, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	room, err := s.roomFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	terms := strings.TrimSpace(r.URL.Query().Get("q"))
	if terms == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}

	messages, err := s.chatService.Search(r.Context(), search.Query{Room: room, Terms: terms})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messages)
}

// --- Board ---

func (s *Server) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	out, err := s.boardService.ListAnnouncements(callerFrom(r).Faculty)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePostAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req services.AnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	created, err := s.boardService.PostAnnouncement(callerFrom(r), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	out, err := s.boardService.GetSchedule(callerFrom(r).GroupName, time.Now().UTC())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddSchedule(w http.ResponseWriter, r *http.Request) {
	var req services.ScheduleEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	created, err := s.boardService.AddScheduleEntry(callerFrom(r), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeadlines(w http.ResponseWriter, r *http.Request) {
	out, err := s.boardService.UpcomingDeadlines(callerFrom(r).GroupName, time.Now().UTC())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddAssignment(w http.ResponseWriter, r *http.Request) {
	var req services.AssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	created, err := s.boardService.AddAssignment(callerFrom(r), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

// --- Helpers ---

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encoding response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := apperrors.MapToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
