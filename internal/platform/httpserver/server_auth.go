package httpserver

import (
	"encoding/json"
	"net/http"

	"noteboard/contexts/identity-access/account-service/domain/entities"
	accounttransport "noteboard/contexts/identity-access/account-service/transport/http"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req accounttransport.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	user, err := s.accounts.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "user registered successfully",
		Data:    user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req accounttransport.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	result, err := s.accounts.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}

	user, err := s.accounts.Handler.MeHandler(r.Context(), identity.UserID)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, user)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authenticate(r)
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	if identity.Role != entities.RoleAdmin {
		writeError(w, http.StatusForbidden, "insufficient access rights")
		return
	}

	users, err := s.accounts.Handler.ListUsersHandler(r.Context())
	if err != nil {
		s.writeAccountError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, users)
}
