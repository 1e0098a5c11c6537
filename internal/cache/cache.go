// ABOUTME: Client-side data cache holding last-fetched snapshots of server state
// ABOUTME: Every successful mutation re-fetches its owning collection, never patches locally

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/shuvo-dev/portfolio-server/internal/client"
	"github.com/shuvo-dev/portfolio-server/internal/portfolio"
	"github.com/shuvo-dev/portfolio-server/internal/store"
)

// messagePageSize is how many messages the snapshot holds
const messagePageSize = 10

// Notice is a non-fatal problem surfaced to the UI boundary. Prior
// snapshot state is always left intact when a Notice is emitted.
type Notice struct {
	Op  string
	Err error
}

// NoticeFunc receives notices. May be nil.
type NoticeFunc func(Notice)

// Cache is the single ownership point for client-side server state.
// All snapshot access goes through its methods; there are no ambient globals.
type Cache struct {
	client *client.Client
	logger *slog.Logger
	notify NoticeFunc

	mu            sync.RWMutex
	config        map[string]json.RawMessage
	projects      []*store.Project
	skills        []*store.Skill
	socialLinks   []store.SocialLink
	messages      []*store.Message
	messageStats  *store.MessageStats
	authenticated bool

	loadingMu       sync.Mutex
	loadingConfig   bool
	loadingProjects bool
	loadingSkills   bool
	loadingMessages bool
}

// New creates a cache backed by the given API client. notify may be nil.
func New(c *client.Client, notify NoticeFunc) *Cache {
	return &Cache{
		client: c,
		logger: slog.Default().With("component", "cache"),
		notify: notify,
	}
}

// Config returns the last-fetched config snapshot with defaults filled
func (c *Cache) Config() map[string]json.RawMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return portfolio.FillDefaults(c.config)
}

// Projects returns the last-fetched projects snapshot
func (c *Cache) Projects() []*store.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projects
}

// Skills returns the last-fetched skills snapshot
func (c *Cache) Skills() []*store.Skill {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.skills
}

// SocialLinks returns the last-fetched social links snapshot
func (c *Cache) SocialLinks() []store.SocialLink {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.socialLinks
}

// Messages returns the last-fetched messages snapshot
func (c *Cache) Messages() []*store.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.messages
}

// MessageStats returns the last-fetched message stats, or nil before any fetch
func (c *Cache) MessageStats() *store.MessageStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.messageStats
}

// IsAuthenticated reports whether the last auth interaction succeeded
func (c *Cache) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

// Loading reports the per-collection loading flags
func (c *Cache) Loading() (config, projects, skills, messages bool) {
	c.loadingMu.Lock()
	defer c.loadingMu.Unlock()
	return c.loadingConfig, c.loadingProjects, c.loadingSkills, c.loadingMessages
}

// fail records a failed operation. Auth failures additionally drop the
// authenticated flag so the UI can prompt for re-login.
func (c *Cache) fail(op string, err error) {
	if client.IsAuthFailure(err) {
		c.mu.Lock()
		c.authenticated = false
		c.mu.Unlock()
	}
	c.logger.Warn("operation failed", "op", op, "error", err)
	if c.notify != nil {
		c.notify(Notice{Op: op, Err: err})
	}
}

// RefreshAll fires the four collection fetches concurrently. Each fetch
// replaces only its own snapshot slot; one failure never rolls back the
// others.
func (c *Cache) RefreshAll(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); c.RefreshConfig(ctx) }()
	go func() { defer wg.Done(); c.RefreshProjects(ctx) }()
	go func() { defer wg.Done(); c.RefreshSkills(ctx) }()
	go func() { defer wg.Done(); c.RefreshMessages(ctx) }()
	wg.Wait()
}

// RefreshConfig re-fetches the config sections and social links
func (c *Cache) RefreshConfig(ctx context.Context) {
	c.setLoading(&c.loadingConfig, true)
	defer c.setLoading(&c.loadingConfig, false)

	cfg, err := c.client.GetConfig(ctx)
	if err != nil {
		c.fail("refresh config", err)
	} else {
		c.mu.Lock()
		c.config = cfg
		c.mu.Unlock()
	}

	links, err := c.client.ListSocialLinks(ctx)
	if err != nil {
		c.fail("refresh social links", err)
		return
	}
	c.mu.Lock()
	c.socialLinks = links
	c.mu.Unlock()
}

// RefreshProjects re-fetches the projects snapshot
func (c *Cache) RefreshProjects(ctx context.Context) {
	c.setLoading(&c.loadingProjects, true)
	defer c.setLoading(&c.loadingProjects, false)

	projects, err := c.client.ListProjects(ctx)
	if err != nil {
		c.fail("refresh projects", err)
		return
	}
	c.mu.Lock()
	c.projects = projects
	c.mu.Unlock()
}

// RefreshSkills re-fetches the skills snapshot
func (c *Cache) RefreshSkills(ctx context.Context) {
	c.setLoading(&c.loadingSkills, true)
	defer c.setLoading(&c.loadingSkills, false)

	skills, err := c.client.ListSkills(ctx)
	if err != nil {
		c.fail("refresh skills", err)
		return
	}
	c.mu.Lock()
	c.skills = skills
	c.mu.Unlock()
}

// RefreshMessages re-fetches the messages snapshot and stats
func (c *Cache) RefreshMessages(ctx context.Context) {
	c.setLoading(&c.loadingMessages, true)
	defer c.setLoading(&c.loadingMessages, false)

	page, err := c.client.ListMessages(ctx, 1, messagePageSize, false)
	if err != nil {
		c.fail("refresh messages", err)
		return
	}
	stats, err := c.client.MessageStats(ctx)
	if err != nil {
		c.fail("refresh message stats", err)
		return
	}

	c.mu.Lock()
	c.messages = page.Messages
	c.messageStats = stats
	c.mu.Unlock()
}

func (c *Cache) setLoading(flag *bool, v bool) {
	c.loadingMu.Lock()
	*flag = v
	c.loadingMu.Unlock()
}
