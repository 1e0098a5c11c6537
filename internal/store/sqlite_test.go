// ABOUTME: Tests for SQLite store implementation
// ABOUTME: Covers config section semantics, CRUD for all collections, and message stats

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	return s
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestConfig_EmptyOnFreshStore(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	cfg, err := store.GetConfig(context.Background())
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if len(cfg) != 0 {
		t.Errorf("expected empty config, got %d sections", len(cfg))
	}
}

func TestConfig_SectionReplaceLeavesOthersUntouched(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	initial := map[string]json.RawMessage{
		"hero":  json.RawMessage(`{"name":"Alice","greeting":"Hello"}`),
		"about": json.RawMessage(`{"title":"About Me"}`),
	}
	if err := store.SetConfigSections(ctx, initial); err != nil {
		t.Fatalf("SetConfigSections failed: %v", err)
	}

	// Replace only hero; about must come back byte-identical
	update := map[string]json.RawMessage{
		"hero": json.RawMessage(`{"name":"Bob"}`),
	}
	if err := store.SetConfigSections(ctx, update); err != nil {
		t.Fatalf("SetConfigSections failed: %v", err)
	}

	cfg, err := store.GetConfig(ctx)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}

	if string(cfg["hero"]) != `{"name":"Bob"}` {
		t.Errorf("hero not replaced wholesale: got %s", cfg["hero"])
	}
	if string(cfg["about"]) != `{"title":"About Me"}` {
		t.Errorf("about was modified: got %s", cfg["about"])
	}
}

func TestConfig_UnknownKeysPassThrough(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	value := `{"name":"Alice","futureField":{"nested":[1,2,3]}}`
	if err := store.SetConfigSections(ctx, map[string]json.RawMessage{"hero": json.RawMessage(value)}); err != nil {
		t.Fatalf("SetConfigSections failed: %v", err)
	}

	cfg, err := store.GetConfig(ctx)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if string(cfg["hero"]) != value {
		t.Errorf("unknown keys not preserved: got %s, want %s", cfg["hero"], value)
	}
}

func TestProjectCRUD(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	p := &Project{
		Title:        "E-Commerce Platform",
		Description:  "Modern storefront",
		Technologies: []string{"Figma", "React"},
	}

	if err := store.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if p.ID == 0 {
		t.Error("CreateProject did not assign an ID")
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("CreateProject did not assign timestamps")
	}

	projects, err := store.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if projects[0].Title != "E-Commerce Platform" {
		t.Errorf("Title mismatch: got %q", projects[0].Title)
	}
	if len(projects[0].Technologies) != 2 || projects[0].Technologies[0] != "Figma" {
		t.Errorf("Technologies mismatch: got %v", projects[0].Technologies)
	}

	p.Title = "Updated Title"
	if err := store.UpdateProject(ctx, p); err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}

	projects, _ = store.ListProjects(ctx)
	if projects[0].Title != "Updated Title" {
		t.Errorf("update not persisted: got %q", projects[0].Title)
	}

	if err := store.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	projects, _ = store.ListProjects(ctx)
	if len(projects) != 0 {
		t.Errorf("expected 0 projects after delete, got %d", len(projects))
	}
}

func TestProject_NotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	if err := store.UpdateProject(ctx, &Project{ID: 999, Title: "x", Description: "y"}); err != ErrNotFound {
		t.Errorf("UpdateProject: expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteProject(ctx, 999); err != ErrNotFound {
		t.Errorf("DeleteProject: expected ErrNotFound, got %v", err)
	}
}

func TestProject_NilTechnologies(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	p := &Project{Title: "t", Description: "d"}
	if err := store.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	projects, err := store.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if projects[0].Technologies == nil {
		t.Error("Technologies should round-trip as an empty slice, not nil")
	}
}

func TestProjects_OrderedByDisplayOrder(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	for i, order := range []int{2, 0, 1} {
		p := &Project{Title: "p", Description: "d", DisplayOrder: order}
		if err := store.CreateProject(ctx, p); err != nil {
			t.Fatalf("CreateProject %d failed: %v", i, err)
		}
	}

	projects, err := store.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	for i := 1; i < len(projects); i++ {
		if projects[i-1].DisplayOrder > projects[i].DisplayOrder {
			t.Errorf("projects out of order: %d before %d", projects[i-1].DisplayOrder, projects[i].DisplayOrder)
		}
	}
}

func TestSkillCRUD(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	sk := &Skill{Category: "Design Tools", Name: "Figma", Level: 92}

	if err := store.CreateSkill(ctx, sk); err != nil {
		t.Fatalf("CreateSkill failed: %v", err)
	}
	if sk.ID == 0 {
		t.Error("CreateSkill did not assign an ID")
	}

	sk.Level = 95
	if err := store.UpdateSkill(ctx, sk); err != nil {
		t.Fatalf("UpdateSkill failed: %v", err)
	}

	skills, err := store.ListSkills(ctx)
	if err != nil {
		t.Fatalf("ListSkills failed: %v", err)
	}
	if len(skills) != 1 || skills[0].Level != 95 {
		t.Errorf("unexpected skills: %+v", skills)
	}

	if err := store.DeleteSkill(ctx, sk.ID); err != nil {
		t.Fatalf("DeleteSkill failed: %v", err)
	}
	if err := store.DeleteSkill(ctx, sk.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestReplaceSocialLinks(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	first := []SocialLink{
		{Platform: "github", URL: "https://github.com/shuvo", DisplayOrder: 0},
		{Platform: "twitter", URL: "https://twitter.com/shuvo", DisplayOrder: 1},
	}
	if err := store.ReplaceSocialLinks(ctx, first); err != nil {
		t.Fatalf("ReplaceSocialLinks failed: %v", err)
	}

	second := []SocialLink{
		{Platform: "linkedin", URL: "https://linkedin.com/in/shuvo", DisplayOrder: 0},
	}
	if err := store.ReplaceSocialLinks(ctx, second); err != nil {
		t.Fatalf("ReplaceSocialLinks failed: %v", err)
	}

	links, err := store.ListSocialLinks(ctx)
	if err != nil {
		t.Fatalf("ListSocialLinks failed: %v", err)
	}
	if len(links) != 1 || links[0].Platform != "linkedin" {
		t.Errorf("replace was not atomic: got %+v", links)
	}
}

func TestMessageLifecycle(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	m := &Message{Name: "Visitor", Email: "v@example.com", Subject: "Hi", Body: "Nice site"}

	if err := store.CreateMessage(ctx, m); err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}
	if m.ID == 0 {
		t.Error("CreateMessage did not assign an ID")
	}
	if m.Read {
		t.Error("new messages must start unread")
	}
	if m.CreatedAt.IsZero() {
		t.Error("CreateMessage did not assign a timestamp")
	}

	got, err := store.GetMessage(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMessage failed: %v", err)
	}
	if got.Body != "Nice site" {
		t.Errorf("Body mismatch: got %q", got.Body)
	}

	stats, err := store.MessageStats(ctx)
	if err != nil {
		t.Fatalf("MessageStats failed: %v", err)
	}
	if stats.Total != 1 || stats.Unread != 1 {
		t.Errorf("stats mismatch: %+v", stats)
	}

	if err := store.SetMessageRead(ctx, m.ID, true); err != nil {
		t.Fatalf("SetMessageRead failed: %v", err)
	}
	stats, _ = store.MessageStats(ctx)
	if stats.Unread != 0 {
		t.Errorf("unread should drop by exactly 1: %+v", stats)
	}

	if err := store.DeleteMessage(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMessage failed: %v", err)
	}
	stats, _ = store.MessageStats(ctx)
	if stats.Total != 0 {
		t.Errorf("total should drop by exactly 1: %+v", stats)
	}
}

func TestMessage_NotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	if _, err := store.GetMessage(ctx, 42); err != ErrNotFound {
		t.Errorf("GetMessage: expected ErrNotFound, got %v", err)
	}
	if err := store.SetMessageRead(ctx, 42, true); err != ErrNotFound {
		t.Errorf("SetMessageRead: expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteMessage(ctx, 42); err != ErrNotFound {
		t.Errorf("DeleteMessage: expected ErrNotFound, got %v", err)
	}
}

func TestListMessages_PaginationAndFilter(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 5; i++ {
		m := &Message{Name: "n", Email: "e@example.com", Subject: "s", Body: "b"}
		if err := store.CreateMessage(ctx, m); err != nil {
			t.Fatalf("CreateMessage %d failed: %v", i, err)
		}
		ids = append(ids, m.ID)
	}

	page1, total, err := store.ListMessages(ctx, 1, 2, false)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(page1) != 2 {
		t.Fatalf("page size = %d, want 2", len(page1))
	}
	// Newest first: the last created message leads the first page
	if page1[0].ID != ids[len(ids)-1] {
		t.Errorf("expected newest message first, got id %d", page1[0].ID)
	}

	page3, _, err := store.ListMessages(ctx, 3, 2, false)
	if err != nil {
		t.Fatalf("ListMessages page 3 failed: %v", err)
	}
	if len(page3) != 1 {
		t.Errorf("last page size = %d, want 1", len(page3))
	}

	if err := store.SetMessageRead(ctx, ids[0], true); err != nil {
		t.Fatalf("SetMessageRead failed: %v", err)
	}
	unread, unreadTotal, err := store.ListMessages(ctx, 1, 10, true)
	if err != nil {
		t.Fatalf("ListMessages unread failed: %v", err)
	}
	if unreadTotal != 4 || len(unread) != 4 {
		t.Errorf("unread filter: total=%d len=%d, want 4/4", unreadTotal, len(unread))
	}
}
