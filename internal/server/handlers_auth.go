// ABOUTME: HTTP handlers for login, logout, and token verification
// ABOUTME: Login is the only operation that mints tokens; logout is client-side

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shuvo-dev/portfolio-server/internal/auth"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse carries the token at the top level alongside the envelope
// fields, matching the shape the admin frontend expects.
type loginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    userInfo `json:"user"`
}

type userInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// handleLogin checks the single configured credential pair and issues a token
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := s.gate.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.Error("issuing token", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := loginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    userInfo{Username: req.Username, Role: "admin"},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("encoding login response", "error", err)
	}
}

// handleLogout acknowledges logout. Tokens are not revocable server-side;
// the client discards its copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, "Logout successful")
}

// handleVerify confirms the presented token is still valid
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Token is valid",
		Data:    map[string]string{"username": identity, "role": "admin"},
	})
}
