// ABOUTME: API operations for auth, config, projects, skills, links, messages
// ABOUTME: One method per endpoint, mirroring the server's route surface

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shuvo-dev/portfolio-server/internal/store"
)

// loginResponse mirrors the server's login reply
type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Login authenticates with the configured credential pair. On success the
// returned token is stored for subsequent requests.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending login request: %w", err)
	}
	defer resp.Body.Close()

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("decoding login response: %w", err)
	}
	if resp.StatusCode >= 400 || !lr.Success {
		return &APIError{Status: resp.StatusCode, Message: lr.Message}
	}

	c.SetToken(lr.Token)
	return nil
}

// Verify checks the stored token against the server
func (c *Client) Verify(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/auth/verify", nil, nil)
}

// Logout notifies the server and discards the stored token. The server
// cannot revoke tokens; discarding the local copy is what ends the session.
func (c *Client) Logout(ctx context.Context) {
	_ = c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.ClearToken()
}

// GetConfig fetches all config sections
func (c *Client) GetConfig(ctx context.Context) (map[string]json.RawMessage, error) {
	var cfg map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/portfolio/config", nil, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateConfig replaces the provided sections wholesale
func (c *Client) UpdateConfig(ctx context.Context, sections map[string]json.RawMessage) error {
	body := map[string]any{"configs": sections}
	return c.do(ctx, http.MethodPut, "/api/portfolio/config", body, nil)
}

// ListProjects fetches all projects
func (c *Client) ListProjects(ctx context.Context) ([]*store.Project, error) {
	var projects []*store.Project
	if err := c.do(ctx, http.MethodGet, "/api/portfolio/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project and returns the server-assigned record
func (c *Client) CreateProject(ctx context.Context, p *store.Project) (*store.Project, error) {
	var created store.Project
	if err := c.do(ctx, http.MethodPost, "/api/portfolio/projects", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject replaces an existing project's fields
func (c *Client) UpdateProject(ctx context.Context, id int64, p *store.Project) error {
	return c.do(ctx, http.MethodPut, idPath("/api/portfolio/projects", id), p, nil)
}

// DeleteProject removes a project
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/portfolio/projects", id), nil, nil)
}

// ListSkills fetches all skills
func (c *Client) ListSkills(ctx context.Context) ([]*store.Skill, error) {
	var skills []*store.Skill
	if err := c.do(ctx, http.MethodGet, "/api/portfolio/skills", nil, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// CreateSkill creates a skill and returns the server-assigned record
func (c *Client) CreateSkill(ctx context.Context, sk *store.Skill) (*store.Skill, error) {
	var created store.Skill
	if err := c.do(ctx, http.MethodPost, "/api/portfolio/skills", sk, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSkill replaces an existing skill's fields
func (c *Client) UpdateSkill(ctx context.Context, id int64, sk *store.Skill) error {
	return c.do(ctx, http.MethodPut, idPath("/api/portfolio/skills", id), sk, nil)
}

// DeleteSkill removes a skill
func (c *Client) DeleteSkill(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/portfolio/skills", id), nil, nil)
}

// ListSocialLinks fetches all social links
func (c *Client) ListSocialLinks(ctx context.Context) ([]store.SocialLink, error) {
	var links []store.SocialLink
	if err := c.do(ctx, http.MethodGet, "/api/portfolio/social-links", nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// UpdateSocialLinks replaces the full set of links
func (c *Client) UpdateSocialLinks(ctx context.Context, links []store.SocialLink) error {
	body := map[string]any{"socialLinks": links}
	return c.do(ctx, http.MethodPut, "/api/portfolio/social-links", body, nil)
}

// CreateMessage submits a contact-form message. No token required.
func (c *Client) CreateMessage(ctx context.Context, name, email, subject, message string) error {
	body := map[string]string{
		"name":    name,
		"email":   email,
		"subject": subject,
		"message": message,
	}
	return c.do(ctx, http.MethodPost, "/api/messages", body, nil)
}

// MessagePage is one page of messages plus pagination info
type MessagePage struct {
	Messages   []*store.Message `json:"messages"`
	Pagination struct {
		CurrentPage  int `json:"currentPage"`
		TotalPages   int `json:"totalPages"`
		TotalItems   int `json:"totalItems"`
		ItemsPerPage int `json:"itemsPerPage"`
	} `json:"pagination"`
}

// ListMessages fetches one page of messages, newest first
func (c *Client) ListMessages(ctx context.Context, page, limit int, unreadOnly bool) (*MessagePage, error) {
	path := fmt.Sprintf("/api/messages?page=%d&limit=%d", page, limit)
	if unreadOnly {
		path += "&unread_only=true"
	}

	var mp MessagePage
	if err := c.do(ctx, http.MethodGet, path, nil, &mp); err != nil {
		return nil, err
	}
	return &mp, nil
}

// GetMessage fetches a single message
func (c *Client) GetMessage(ctx context.Context, id int64) (*store.Message, error) {
	var m store.Message
	if err := c.do(ctx, http.MethodGet, idPath("/api/messages", id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkMessageRead flags a message as read
func (c *Client) MarkMessageRead(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, idPath("/api/messages", id)+"/read", nil, nil)
}

// MarkMessageUnread flags a message as unread
func (c *Client) MarkMessageUnread(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, idPath("/api/messages", id)+"/unread", nil, nil)
}

// DeleteMessage removes a message
func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/messages", id), nil, nil)
}

// MessageStats fetches message totals
func (c *Client) MessageStats(ctx context.Context) (*store.MessageStats, error) {
	var stats store.MessageStats
	if err := c.do(ctx, http.MethodGet, "/api/messages/stats/summary", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
