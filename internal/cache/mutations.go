// ABOUTME: Cache mutation operations: remote call, then re-fetch owning collection
// ABOUTME: No optimistic local updates; failed calls leave snapshots untouched

package cache

import (
	"context"
	"encoding/json"

	"github.com/shuvo-dev/portfolio-server/internal/store"
)

// Login authenticates and flips the authenticated flag on success
func (c *Cache) Login(ctx context.Context, username, password string) error {
	if err := c.client.Login(ctx, username, password); err != nil {
		c.fail("login", err)
		return err
	}
	c.mu.Lock()
	c.authenticated = true
	c.mu.Unlock()
	return nil
}

// Logout discards the token and clears every snapshot so the next
// authenticated view starts from a clean re-fetch.
func (c *Cache) Logout(ctx context.Context) {
	c.client.Logout(ctx)

	c.mu.Lock()
	c.authenticated = false
	c.config = nil
	c.projects = nil
	c.skills = nil
	c.socialLinks = nil
	c.messages = nil
	c.messageStats = nil
	c.mu.Unlock()
}

// VerifyAuth re-checks the stored token and updates the authenticated flag
func (c *Cache) VerifyAuth(ctx context.Context) bool {
	err := c.client.Verify(ctx)

	c.mu.Lock()
	c.authenticated = err == nil
	c.mu.Unlock()
	return err == nil
}

// UpdateConfig writes the provided sections and re-fetches the config
func (c *Cache) UpdateConfig(ctx context.Context, sections map[string]json.RawMessage) error {
	if err := c.client.UpdateConfig(ctx, sections); err != nil {
		c.fail("update config", err)
		return err
	}
	c.RefreshConfig(ctx)
	return nil
}

// CreateProject creates a project and re-fetches the projects snapshot
func (c *Cache) CreateProject(ctx context.Context, p *store.Project) error {
	if _, err := c.client.CreateProject(ctx, p); err != nil {
		c.fail("create project", err)
		return err
	}
	c.RefreshProjects(ctx)
	return nil
}

// UpdateProject updates a project and re-fetches the projects snapshot
func (c *Cache) UpdateProject(ctx context.Context, id int64, p *store.Project) error {
	if err := c.client.UpdateProject(ctx, id, p); err != nil {
		c.fail("update project", err)
		return err
	}
	c.RefreshProjects(ctx)
	return nil
}

// DeleteProject deletes a project and re-fetches the projects snapshot
func (c *Cache) DeleteProject(ctx context.Context, id int64) error {
	if err := c.client.DeleteProject(ctx, id); err != nil {
		c.fail("delete project", err)
		return err
	}
	c.RefreshProjects(ctx)
	return nil
}

// CreateSkill creates a skill and re-fetches the skills snapshot
func (c *Cache) CreateSkill(ctx context.Context, sk *store.Skill) error {
	if _, err := c.client.CreateSkill(ctx, sk); err != nil {
		c.fail("create skill", err)
		return err
	}
	c.RefreshSkills(ctx)
	return nil
}

// UpdateSkill updates a skill and re-fetches the skills snapshot
func (c *Cache) UpdateSkill(ctx context.Context, id int64, sk *store.Skill) error {
	if err := c.client.UpdateSkill(ctx, id, sk); err != nil {
		c.fail("update skill", err)
		return err
	}
	c.RefreshSkills(ctx)
	return nil
}

// DeleteSkill deletes a skill and re-fetches the skills snapshot
func (c *Cache) DeleteSkill(ctx context.Context, id int64) error {
	if err := c.client.DeleteSkill(ctx, id); err != nil {
		c.fail("delete skill", err)
		return err
	}
	c.RefreshSkills(ctx)
	return nil
}

// UpdateSocialLinks replaces the link set and re-fetches config and links
func (c *Cache) UpdateSocialLinks(ctx context.Context, links []store.SocialLink) error {
	if err := c.client.UpdateSocialLinks(ctx, links); err != nil {
		c.fail("update social links", err)
		return err
	}
	c.RefreshConfig(ctx)
	return nil
}

// CreateMessage submits a contact-form message. Anonymous senders cannot
// list messages, so no snapshot re-fetch happens here.
func (c *Cache) CreateMessage(ctx context.Context, name, email, subject, message string) error {
	if err := c.client.CreateMessage(ctx, name, email, subject, message); err != nil {
		c.fail("send message", err)
		return err
	}
	return nil
}

// MarkMessageRead flags a message read and re-fetches the messages snapshot
func (c *Cache) MarkMessageRead(ctx context.Context, id int64) error {
	if err := c.client.MarkMessageRead(ctx, id); err != nil {
		c.fail("mark message read", err)
		return err
	}
	c.RefreshMessages(ctx)
	return nil
}

// MarkMessageUnread flags a message unread and re-fetches the messages snapshot
func (c *Cache) MarkMessageUnread(ctx context.Context, id int64) error {
	if err := c.client.MarkMessageUnread(ctx, id); err != nil {
		c.fail("mark message unread", err)
		return err
	}
	c.RefreshMessages(ctx)
	return nil
}

// DeleteMessage deletes a message and re-fetches the messages snapshot
func (c *Cache) DeleteMessage(ctx context.Context, id int64) error {
	if err := c.client.DeleteMessage(ctx, id); err != nil {
		c.fail("delete message", err)
		return err
	}
	c.RefreshMessages(ctx)
	return nil
}
