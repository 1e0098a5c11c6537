// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides portfolio content persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS site_config (
			config_key   TEXT PRIMARY KEY,
			config_value TEXT NOT NULL,
			updated_at   TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS projects (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			title         TEXT NOT NULL,
			description   TEXT NOT NULL,
			image_url     TEXT NOT NULL DEFAULT '',
			live_url      TEXT NOT NULL DEFAULT '',
			github_url    TEXT NOT NULL DEFAULT '',
			technologies  TEXT NOT NULL DEFAULT '[]',
			display_order INTEGER NOT NULL DEFAULT 0,
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_projects_order ON projects(display_order);

		CREATE TABLE IF NOT EXISTS skills (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			category      TEXT NOT NULL,
			name          TEXT NOT NULL,
			level         INTEGER NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 0,
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL,

			CHECK (level >= 0 AND level <= 100)
		);

		CREATE INDEX IF NOT EXISTS idx_skills_order ON skills(display_order);

		CREATE TABLE IF NOT EXISTS social_links (
			platform      TEXT PRIMARY KEY,
			url           TEXT NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS messages (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			subject    TEXT NOT NULL DEFAULT '',
			message    TEXT NOT NULL,
			read       INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_messages_read ON messages(read);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	return nil
}

// Close releases the underlying database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetConfig returns all stored config sections keyed by section name.
// Section values are returned as raw JSON.
func (s *SQLiteStore) GetConfig(ctx context.Context) (map[string]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT config_key, config_value FROM site_config`)
	if err != nil {
		return nil, fmt.Errorf("querying config: %w", err)
	}
	defer rows.Close()

	config := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning config row: %w", err)
		}
		config[key] = json.RawMessage(value)
	}

	return config, rows.Err()
}

// SetConfigSections replaces each provided section's stored value wholesale.
// No deep merge happens here; callers merge client-side before writing.
func (s *SQLiteStore) SetConfigSections(ctx context.Context, sections map[string]json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for key, value := range sections {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO site_config (config_key, config_value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(config_key) DO UPDATE SET config_value = excluded.config_value, updated_at = excluded.updated_at`,
			key, string(value), now)
		if err != nil {
			return fmt.Errorf("writing config section %q: %w", key, err)
		}
	}

	return tx.Commit()
}

// ListProjects returns all projects ordered by display order
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]*Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, image_url, live_url, github_url, technologies, display_order, created_at, updated_at
		FROM projects
		ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	projects := []*Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func scanProject(rows *sql.Rows) (*Project, error) {
	var p Project
	var techJSON, createdAtStr, updatedAtStr string

	if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.LiveURL,
		&p.GithubURL, &techJSON, &p.DisplayOrder, &createdAtStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	if err := json.Unmarshal([]byte(techJSON), &p.Technologies); err != nil {
		return nil, fmt.Errorf("parsing technologies for project %d: %w", p.ID, err)
	}

	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &p, nil
}

// CreateProject inserts a new project and assigns its ID and timestamps
func (s *SQLiteStore) CreateProject(ctx context.Context, p *Project) error {
	now := time.Now().UTC().Truncate(time.Second)
	techJSON, err := marshalStrings(p.Technologies)
	if err != nil {
		return fmt.Errorf("encoding technologies: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (title, description, image_url, live_url, github_url, technologies, display_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.ImageURL, p.LiveURL, p.GithubURL,
		techJSON, p.DisplayOrder, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted project id: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// UpdateProject replaces an existing project's fields.
// Returns ErrNotFound if the ID does not exist.
func (s *SQLiteStore) UpdateProject(ctx context.Context, p *Project) error {
	now := time.Now().UTC().Truncate(time.Second)
	techJSON, err := marshalStrings(p.Technologies)
	if err != nil {
		return fmt.Errorf("encoding technologies: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET title = ?, description = ?, image_url = ?, live_url = ?, github_url = ?, technologies = ?, display_order = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Description, p.ImageURL, p.LiveURL, p.GithubURL,
		techJSON, p.DisplayOrder, now.Format(time.RFC3339), p.ID)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	p.UpdatedAt = now
	return nil
}

// DeleteProject removes a project by ID.
// Returns ErrNotFound if the ID does not exist.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "projects", id)
}

// ListSkills returns all skills ordered by display order
func (s *SQLiteStore) ListSkills(ctx context.Context) ([]*Skill, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, name, level, display_order, created_at, updated_at
		FROM skills
		ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying skills: %w", err)
	}
	defer rows.Close()

	skills := []*Skill{}
	for rows.Next() {
		var sk Skill
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&sk.ID, &sk.Category, &sk.Name, &sk.Level, &sk.DisplayOrder, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning skill: %w", err)
		}
		sk.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		sk.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		skills = append(skills, &sk)
	}

	return skills, rows.Err()
}

// CreateSkill inserts a new skill and assigns its ID and timestamps
func (s *SQLiteStore) CreateSkill(ctx context.Context, sk *Skill) error {
	now := time.Now().UTC().Truncate(time.Second)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO skills (category, name, level, display_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sk.Category, sk.Name, sk.Level, sk.DisplayOrder,
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting skill: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted skill id: %w", err)
	}

	sk.ID = id
	sk.CreatedAt = now
	sk.UpdatedAt = now
	return nil
}

// UpdateSkill replaces an existing skill's fields.
// Returns ErrNotFound if the ID does not exist.
func (s *SQLiteStore) UpdateSkill(ctx context.Context, sk *Skill) error {
	now := time.Now().UTC().Truncate(time.Second)

	result, err := s.db.ExecContext(ctx, `
		UPDATE skills
		SET category = ?, name = ?, level = ?, display_order = ?, updated_at = ?
		WHERE id = ?`,
		sk.Category, sk.Name, sk.Level, sk.DisplayOrder, now.Format(time.RFC3339), sk.ID)
	if err != nil {
		return fmt.Errorf("updating skill: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	sk.UpdatedAt = now
	return nil
}

// DeleteSkill removes a skill by ID.
// Returns ErrNotFound if the ID does not exist.
func (s *SQLiteStore) DeleteSkill(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "skills", id)
}

// ListSocialLinks returns all social links ordered by display order
func (s *SQLiteStore) ListSocialLinks(ctx context.Context) ([]SocialLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT platform, url, display_order
		FROM social_links
		ORDER BY display_order ASC, platform ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying social links: %w", err)
	}
	defer rows.Close()

	links := []SocialLink{}
	for rows.Next() {
		var l SocialLink
		if err := rows.Scan(&l.Platform, &l.URL, &l.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scanning social link: %w", err)
		}
		links = append(links, l)
	}

	return links, rows.Err()
}

// ReplaceSocialLinks swaps the full set of social links in one transaction
func (s *SQLiteStore) ReplaceSocialLinks(ctx context.Context, links []SocialLink) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM social_links`); err != nil {
		return fmt.Errorf("clearing social links: %w", err)
	}

	for _, l := range links {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO social_links (platform, url, display_order)
			VALUES (?, ?, ?)`,
			l.Platform, l.URL, l.DisplayOrder)
		if err != nil {
			return fmt.Errorf("inserting social link %q: %w", l.Platform, err)
		}
	}

	return tx.Commit()
}

// CreateMessage inserts a contact-form message.
// ID, timestamp, and read state are assigned here, never by the caller.
func (s *SQLiteStore) CreateMessage(ctx context.Context, m *Message) error {
	now := time.Now().UTC().Truncate(time.Second)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (name, email, subject, message, read, created_at)
		VALUES (?, ?, ?, ?, 0, ?)`,
		m.Name, m.Email, m.Subject, m.Body, now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted message id: %w", err)
	}

	m.ID = id
	m.Read = false
	m.CreatedAt = now
	return nil
}

// GetMessage returns a single message by ID
func (s *SQLiteStore) GetMessage(ctx context.Context, id int64) (*Message, error) {
	var m Message
	var read int
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, subject, message, read, created_at
		FROM messages WHERE id = ?`, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &read, &createdAtStr)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying message: %w", err)
	}

	m.Read = read != 0
	m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &m, nil
}

// ListMessages returns one page of messages, newest first, plus the total
// count matching the filter.
func (s *SQLiteStore) ListMessages(ctx context.Context, page, perPage int, unreadOnly bool) ([]*Message, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	offset := (page - 1) * perPage

	where := ""
	if unreadOnly {
		where = " WHERE read = 0"
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting messages: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, subject, message, read, created_at
		FROM messages`+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	messages := []*Message{}
	for rows.Next() {
		var m Message
		var read int
		var createdAtStr string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &read, &createdAtStr); err != nil {
			return nil, 0, fmt.Errorf("scanning message: %w", err)
		}
		m.Read = read != 0
		m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, 0, fmt.Errorf("parsing created_at: %w", err)
		}
		messages = append(messages, &m)
	}

	return messages, total, rows.Err()
}

// SetMessageRead toggles a message's read flag.
// Returns ErrNotFound if the ID does not exist.
func (s *SQLiteStore) SetMessageRead(ctx context.Context, id int64, read bool) error {
	readVal := 0
	if read {
		readVal = 1
	}

	result, err := s.db.ExecContext(ctx, `UPDATE messages SET read = ? WHERE id = ?`, readVal, id)
	if err != nil {
		return fmt.Errorf("updating message read flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteMessage removes a message by ID.
// Returns ErrNotFound if the ID does not exist.
func (s *SQLiteStore) DeleteMessage(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "messages", id)
}

// MessageStats returns total, unread, and today's message counts
func (s *SQLiteStore) MessageStats(ctx context.Context) (*MessageStats, error) {
	var stats MessageStats

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("counting messages: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE read = 0`).Scan(&stats.Unread); err != nil {
		return nil, fmt.Errorf("counting unread messages: %w", err)
	}

	todayStart := time.Now().UTC().Truncate(24 * time.Hour).Format(time.RFC3339)
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE created_at >= ?`, todayStart).Scan(&stats.Today); err != nil {
		return nil, fmt.Errorf("counting today's messages: %w", err)
	}

	return &stats, nil
}

// deleteByID deletes one row by integer primary key from the named table
func (s *SQLiteStore) deleteByID(ctx context.Context, table string, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// marshalStrings encodes a string slice as JSON, treating nil as empty
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
