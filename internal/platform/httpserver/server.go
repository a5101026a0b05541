package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	account "noteboard/contexts/identity-access/account-service"
	accounterrors "noteboard/contexts/identity-access/account-service/domain/errors"
	accountports "noteboard/contexts/identity-access/account-service/ports"
	post "noteboard/contexts/notes/post-service"
	posterrors "noteboard/contexts/notes/post-service/domain/errors"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "noteboard/internal/platform/httpserver/docs"
)

// envelope is the uniform response wrapper shared by every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	accounts account.Module
	posts    post.Module
}

func New(
	accounts account.Module,
	posts post.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":3000"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		accounts: accounts,
		posts:    posts,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api", s.handleAPIInfo)

	s.mux.HandleFunc("POST /auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /auth/me", s.handleMe)
	s.mux.HandleFunc("GET /auth/users", s.handleListUsers)

	s.mux.HandleFunc("GET /posts", s.handleListPosts)
	s.mux.HandleFunc("GET /posts/{id}", s.handleGetPost)
	s.mux.HandleFunc("POST /posts", s.handleCreatePost)
	s.mux.HandleFunc("PUT /posts/{id}", s.handleUpdatePost)
	s.mux.HandleFunc("DELETE /posts/{id}", s.handleDeletePost)
}

func (s *Server) handleAPIInfo(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]any{
		"message": "Noteboard API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"auth":    "/auth",
			"posts":   "/posts",
			"swagger": "/swagger/",
		},
	})
}

// authenticate is the fail-closed authentication gate: every protected route
// calls it before any business logic runs.
func (s *Server) authenticate(r *http.Request) (accountports.Identity, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return accountports.Identity{}, accounterrors.ErrTokenMissing
	}
	return s.accounts.Tokens.Verify(strings.TrimPrefix(header, "Bearer "))
}

func (s *Server) writeAccountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounterrors.ErrInvalidRequest),
		errors.Is(err, accounterrors.ErrInvalidRole),
		errors.Is(err, accounterrors.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, accounterrors.ErrInvalidCredentials),
		errors.Is(err, accounterrors.ErrTokenMissing),
		errors.Is(err, accounterrors.ErrTokenExpired),
		errors.Is(err, accounterrors.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, accounterrors.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("account request failed",
			"event", "account_http_internal_error",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) writePostError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, posterrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, accounterrors.ErrTokenMissing),
		errors.Is(err, accounterrors.ErrTokenExpired),
		errors.Is(err, accounterrors.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, posterrors.ErrRoleForbidden),
		errors.Is(err, posterrors.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, posterrors.ErrPostNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("post request failed",
			"event", "post_http_internal_error",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeSuccessMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
