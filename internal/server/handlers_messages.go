// ABOUTME: HTTP handlers for contact-form messages and their stats
// ABOUTME: Creation is public; listing and mutation are admin-only

package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shuvo-dev/portfolio-server/internal/store"
)

type messageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// handleCreateMessage accepts an anonymous contact-form submission.
// ID, timestamp, and the unread flag are assigned server-side.
func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "All fields are required and email must be valid")
		return
	}

	m := &store.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	}
	if err := s.store.CreateMessage(r.Context(), m); err != nil {
		writeStoreError(w, err, "Message not found")
		return
	}
	writeCreated(w, "Message sent successfully", map[string]int64{"id": m.ID})
}

// paginationInfo mirrors the pagination block of the list response
type paginationInfo struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

type messageListResponse struct {
	Messages   []*store.Message `json:"messages"`
	Pagination paginationInfo   `json:"pagination"`
}

// handleListMessages returns one page of messages, newest first
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	messages, total, err := s.store.ListMessages(r.Context(), page, limit, unreadOnly)
	if err != nil {
		writeStoreError(w, err, "Messages not found")
		return
	}

	totalPages := (total + limit - 1) / limit
	writeData(w, messageListResponse{
		Messages: messages,
		Pagination: paginationInfo{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	})
}

// handleGetMessage returns a single message by ID
func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := s.store.GetMessage(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Message not found")
		return
	}
	writeData(w, m)
}

func (s *Server) handleMarkMessageRead(w http.ResponseWriter, r *http.Request) {
	s.setMessageRead(w, r, true, "Message marked as read")
}

func (s *Server) handleMarkMessageUnread(w http.ResponseWriter, r *http.Request) {
	s.setMessageRead(w, r, false, "Message marked as unread")
}

func (s *Server) setMessageRead(w http.ResponseWriter, r *http.Request, read bool, okMsg string) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.SetMessageRead(r.Context(), id, read); err != nil {
		writeStoreError(w, err, "Message not found")
		return
	}
	writeMessage(w, okMsg)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteMessage(r.Context(), id); err != nil {
		writeStoreError(w, err, "Message not found")
		return
	}
	writeMessage(w, "Message deleted successfully")
}

// handleMessageStats returns total, unread, and today's counts
func (s *Server) handleMessageStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.MessageStats(r.Context())
	if err != nil {
		writeStoreError(w, err, "Stats not found")
		return
	}
	writeData(w, stats)
}

// queryInt parses a positive integer query parameter with a fallback
func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
