// ABOUTME: Tests for the client-side cache against a real in-process server
// ABOUTME: Verifies refetch-after-write, failure isolation, and auth flag handling

package cache

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuvo-dev/portfolio-server/internal/auth"
	"github.com/shuvo-dev/portfolio-server/internal/client"
	"github.com/shuvo-dev/portfolio-server/internal/config"
	"github.com/shuvo-dev/portfolio-server/internal/portfolio"
	"github.com/shuvo-dev/portfolio-server/internal/server"
	"github.com/shuvo-dev/portfolio-server/internal/store"
)

const (
	testUsername = "admin"
	testPassword = "test-password"
)

type testBackend struct {
	store   store.Store
	client  *client.Client
	cache   *Cache
	notices []Notice
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()

	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	require.NoError(t, portfolio.EnsureSeeded(context.Background(), st, ""))

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	verifier := auth.NewJWTVerifier([]byte("test-secret"))
	gate := auth.NewGate(testUsername, []byte(hash), verifier, time.Hour)

	cfg := &config.Config{
		Server:    config.ServerConfig{Environment: "test"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{Window: time.Minute, MaxRequests: 1000},
	}

	srv := server.New(st, gate, verifier, cfg)
	t.Cleanup(srv.Close)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	b := &testBackend{store: st, client: client.New(ts.URL)}
	b.cache = New(b.client, func(n Notice) { b.notices = append(b.notices, n) })
	return b
}

func (b *testBackend) login(t *testing.T) {
	t.Helper()
	require.NoError(t, b.cache.Login(context.Background(), testUsername, testPassword))
	require.True(t, b.cache.IsAuthenticated())
}

func TestRefreshAll(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.store.CreateProject(ctx, &store.Project{Title: "P1", Description: "d"}))
	require.NoError(t, b.store.CreateSkill(ctx, &store.Skill{Category: "Design", Name: "Figma", Level: 90}))
	require.NoError(t, b.store.ReplaceSocialLinks(ctx, []store.SocialLink{{Platform: "github", URL: "https://github.com/x"}}))
	require.NoError(t, b.store.CreateMessage(ctx, &store.Message{Name: "n", Email: "e@x.com", Subject: "s", Body: "b"}))

	b.login(t)
	b.cache.RefreshAll(ctx)

	assert.Len(t, b.cache.Projects(), 1)
	assert.Len(t, b.cache.Skills(), 1)
	assert.Len(t, b.cache.SocialLinks(), 1)
	assert.Len(t, b.cache.Messages(), 1)
	require.NotNil(t, b.cache.MessageStats())
	assert.Equal(t, 1, b.cache.MessageStats().Total)

	cfg := b.cache.Config()
	for _, name := range portfolio.Sections() {
		assert.Contains(t, cfg, name)
	}

	cfgLoading, projLoading, skillLoading, msgLoading := b.cache.Loading()
	assert.False(t, cfgLoading || projLoading || skillLoading || msgLoading)
}

func TestMutationRefetchesOwningCollection(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	b.login(t)

	require.NoError(t, b.cache.CreateProject(ctx, &store.Project{Title: "New", Description: "d"}))

	// No explicit refresh: the mutation itself re-fetched the snapshot
	projects := b.cache.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "New", projects[0].Title)
	assert.NotZero(t, projects[0].ID, "snapshot holds server-assigned fields, not the local input")

	require.NoError(t, b.cache.DeleteProject(ctx, projects[0].ID))
	assert.Empty(t, b.cache.Projects())
}

func TestFailedMutationLeavesSnapshotIntact(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	b.login(t)

	require.NoError(t, b.cache.CreateProject(ctx, &store.Project{Title: "Keep", Description: "d"}))
	before := b.cache.Projects()
	require.Len(t, before, 1)

	// Missing title fails server-side validation
	err := b.cache.CreateProject(ctx, &store.Project{Description: "no title"})
	require.Error(t, err)

	after := b.cache.Projects()
	require.Len(t, after, 1)
	assert.Equal(t, "Keep", after[0].Title)
	require.NotEmpty(t, b.notices)
	assert.Equal(t, "create project", b.notices[len(b.notices)-1].Op)
}

func TestAuthFailureDropsAuthenticatedFlag(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	b.login(t)

	// Simulate an expired session: the token disappears out from under the cache
	b.client.ClearToken()

	err := b.cache.CreateProject(ctx, &store.Project{Title: "t", Description: "d"})
	require.Error(t, err)
	assert.True(t, client.IsAuthFailure(err))
	assert.False(t, b.cache.IsAuthenticated())
}

func TestLogin_BadCredentials(t *testing.T) {
	b := newTestBackend(t)

	err := b.cache.Login(context.Background(), testUsername, "wrong")
	require.Error(t, err)
	assert.False(t, b.cache.IsAuthenticated())
}

func TestLogoutClearsSnapshots(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	b.login(t)

	require.NoError(t, b.cache.CreateProject(ctx, &store.Project{Title: "P", Description: "d"}))
	require.Len(t, b.cache.Projects(), 1)

	b.cache.Logout(ctx)

	assert.False(t, b.cache.IsAuthenticated())
	assert.Empty(t, b.cache.Projects())
	assert.Empty(t, b.cache.Skills())
	assert.Empty(t, b.cache.Messages())
	assert.Nil(t, b.cache.MessageStats())

	// Config still reads as fully populated defaults after the clear
	cfg := b.cache.Config()
	assert.Len(t, cfg, len(portfolio.Sections()))
}

func TestUpdateConfigRefetches(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	b.login(t)

	update := map[string]json.RawMessage{
		"hero": json.RawMessage(`{"name":"Edited"}`),
	}
	require.NoError(t, b.cache.UpdateConfig(ctx, update))

	var hero map[string]any
	require.NoError(t, json.Unmarshal(b.cache.Config()["hero"], &hero))
	assert.Equal(t, "Edited", hero["name"])
}

func TestCreateMessage_NoRefetch(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	// Anonymous sender: no login, no snapshot to maintain
	require.NoError(t, b.cache.CreateMessage(ctx, "Visitor", "v@example.com", "Hi", "Hello there"))
	assert.Empty(t, b.cache.Messages())

	b.login(t)
	b.cache.RefreshMessages(ctx)
	require.Len(t, b.cache.Messages(), 1)
	assert.Equal(t, "Visitor", b.cache.Messages()[0].Name)
}

func TestMessageReadToggleRefetches(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	b.login(t)

	require.NoError(t, b.store.CreateMessage(ctx, &store.Message{Name: "n", Email: "e@x.com", Subject: "s", Body: "b"}))
	b.cache.RefreshMessages(ctx)
	require.Len(t, b.cache.Messages(), 1)
	id := b.cache.Messages()[0].ID

	require.NoError(t, b.cache.MarkMessageRead(ctx, id))
	assert.True(t, b.cache.Messages()[0].Read)
	assert.Equal(t, 0, b.cache.MessageStats().Unread)

	require.NoError(t, b.cache.MarkMessageUnread(ctx, id))
	assert.False(t, b.cache.Messages()[0].Read)
	assert.Equal(t, 1, b.cache.MessageStats().Unread)
}

func TestVerifyAuth(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	assert.False(t, b.cache.VerifyAuth(ctx))

	b.login(t)
	assert.True(t, b.cache.VerifyAuth(ctx))

	b.client.ClearToken()
	assert.False(t, b.cache.VerifyAuth(ctx))
	assert.False(t, b.cache.IsAuthenticated())
}
