// ABOUTME: HTTP handlers for config sections, projects, skills, and social links
// ABOUTME: Reads are public; every mutation sits behind the auth middleware

package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shuvo-dev/portfolio-server/internal/portfolio"
	"github.com/shuvo-dev/portfolio-server/internal/store"
)

// handleGetConfig returns every recognized config section, filling missing
// sections with their documented defaults so callers never see an absent key.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.GetConfig(r.Context())
	if err != nil {
		writeStoreError(w, err, "Config not found")
		return
	}
	writeData(w, portfolio.FillDefaults(cfg))
}

type configUpdateRequest struct {
	Configs map[string]json.RawMessage `json:"configs"`
}

// handleUpdateConfig replaces each provided section wholesale. Partial nested
// updates are a client-side concern: the value sent is the value stored.
func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req configUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Configs == nil {
		writeError(w, http.StatusBadRequest, "Invalid configuration data")
		return
	}

	for name := range req.Configs {
		if !portfolio.IsSection(name) {
			writeError(w, http.StatusBadRequest, "Unknown config section: "+name)
			return
		}
	}

	if err := s.store.SetConfigSections(r.Context(), req.Configs); err != nil {
		writeStoreError(w, err, "Config not found")
		return
	}
	writeMessage(w, "Configuration updated successfully")
}

type projectRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	ImageURL     string   `json:"imageUrl"`
	LiveURL      string   `json:"liveUrl"`
	GithubURL    string   `json:"githubUrl"`
	Technologies []string `json:"technologies"`
	DisplayOrder int      `json:"displayOrder"`
}

func (pr *projectRequest) toProject() *store.Project {
	return &store.Project{
		Title:        pr.Title,
		Description:  pr.Description,
		ImageURL:     pr.ImageURL,
		LiveURL:      pr.LiveURL,
		GithubURL:    pr.GithubURL,
		Technologies: pr.Technologies,
		DisplayOrder: pr.DisplayOrder,
	}
}

// handleListProjects returns all projects in display order
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		writeStoreError(w, err, "Projects not found")
		return
	}
	writeData(w, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	p := req.toProject()
	if err := s.store.CreateProject(r.Context(), p); err != nil {
		writeStoreError(w, err, "Project not found")
		return
	}
	writeCreated(w, "Project created successfully", p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	p := req.toProject()
	p.ID = id
	if err := s.store.UpdateProject(r.Context(), p); err != nil {
		writeStoreError(w, err, "Project not found")
		return
	}
	writeMessage(w, "Project updated successfully")
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteProject(r.Context(), id); err != nil {
		writeStoreError(w, err, "Project not found")
		return
	}
	writeMessage(w, "Project deleted successfully")
}

type skillRequest struct {
	Category     string `json:"category" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Level        int    `json:"level"`
	DisplayOrder int    `json:"displayOrder"`
}

// clampLevel bounds a skill level to [0,100]. Out-of-range input is
// clamped rather than rejected.
func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// handleListSkills returns all skills in display order
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.store.ListSkills(r.Context())
	if err != nil {
		writeStoreError(w, err, "Skills not found")
		return
	}
	writeData(w, skills)
}

func (s *Server) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	var req skillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Name and category are required")
		return
	}

	sk := &store.Skill{
		Category:     req.Category,
		Name:         req.Name,
		Level:        clampLevel(req.Level),
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.store.CreateSkill(r.Context(), sk); err != nil {
		writeStoreError(w, err, "Skill not found")
		return
	}
	writeCreated(w, "Skill created successfully", sk)
}

func (s *Server) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req skillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Name and category are required")
		return
	}

	sk := &store.Skill{
		ID:           id,
		Category:     req.Category,
		Name:         req.Name,
		Level:        clampLevel(req.Level),
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.store.UpdateSkill(r.Context(), sk); err != nil {
		writeStoreError(w, err, "Skill not found")
		return
	}
	writeMessage(w, "Skill updated successfully")
}

func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteSkill(r.Context(), id); err != nil {
		writeStoreError(w, err, "Skill not found")
		return
	}
	writeMessage(w, "Skill deleted successfully")
}

// handleListSocialLinks returns all configured social links
func (s *Server) handleListSocialLinks(w http.ResponseWriter, r *http.Request) {
	links, err := s.store.ListSocialLinks(r.Context())
	if err != nil {
		writeStoreError(w, err, "Social links not found")
		return
	}
	writeData(w, links)
}

type socialLinksRequest struct {
	SocialLinks []store.SocialLink `json:"socialLinks"`
}

// handleUpdateSocialLinks replaces the full set of links atomically
func (s *Server) handleUpdateSocialLinks(w http.ResponseWriter, r *http.Request) {
	var req socialLinksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SocialLinks == nil {
		writeError(w, http.StatusBadRequest, "Social links must be an array")
		return
	}

	if err := s.store.ReplaceSocialLinks(r.Context(), req.SocialLinks); err != nil {
		writeStoreError(w, err, "Social links not found")
		return
	}
	writeMessage(w, "Social links updated successfully")
}

// pathID parses the {id} URL parameter, writing a 400 on failure
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
