// ABOUTME: Store interface and data types for portfolio-server persistence
// ABOUTME: Defines Project, Skill, SocialLink, Message structs and the Store interface

package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// Project represents a single portfolio project entry
type Project struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	LiveURL      string    `json:"liveUrl"`
	GithubURL    string    `json:"githubUrl"`
	Technologies []string  `json:"technologies"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Skill represents a single skill with a proficiency level in [0,100]
type Skill struct {
	ID           int64     `json:"id"`
	Category     string    `json:"category"`
	Name         string    `json:"name"`
	Level        int       `json:"level"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SocialLink represents one configured social platform link.
// Platform is unique; the full set is replaced atomically on update.
type SocialLink struct {
	Platform     string `json:"platform"`
	URL          string `json:"url"`
	DisplayOrder int    `json:"displayOrder"`
}

// Message represents a contact-form submission
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"timestamp"`
}

// MessageStats summarizes the messages collection
type MessageStats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
	Today  int `json:"today"`
}

// Store defines the interface for portfolio content persistence.
// Config sections are stored as opaque JSON values keyed by section name;
// unknown keys inside a section pass through untouched.
type Store interface {
	// Site configuration
	GetConfig(ctx context.Context) (map[string]json.RawMessage, error)
	SetConfigSections(ctx context.Context, sections map[string]json.RawMessage) error

	// Projects
	ListProjects(ctx context.Context) ([]*Project, error)
	CreateProject(ctx context.Context, p *Project) error
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, id int64) error

	// Skills
	ListSkills(ctx context.Context) ([]*Skill, error)
	CreateSkill(ctx context.Context, s *Skill) error
	UpdateSkill(ctx context.Context, s *Skill) error
	DeleteSkill(ctx context.Context, id int64) error

	// Social links
	ListSocialLinks(ctx context.Context) ([]SocialLink, error)
	ReplaceSocialLinks(ctx context.Context, links []SocialLink) error

	// Contact messages
	CreateMessage(ctx context.Context, m *Message) error
	GetMessage(ctx context.Context, id int64) (*Message, error)
	ListMessages(ctx context.Context, page, perPage int, unreadOnly bool) ([]*Message, int, error)
	SetMessageRead(ctx context.Context, id int64, read bool) error
	DeleteMessage(ctx context.Context, id int64) error
	MessageStats(ctx context.Context) (*MessageStats, error)

	// Close releases any resources held by the store
	Close() error
}
