// ABOUTME: Presentation-layer helpers: visible social links and markdown rendering
// ABOUTME: Stateless; consumes cache snapshots through their public contracts only

package render

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/yuin/goldmark"

	"github.com/shuvo-dev/portfolio-server/internal/store"
)

// socialMediaSection is the subset of the socialMedia config section the
// renderer cares about. Platform URL keys are free-form and read separately.
type socialMediaSection struct {
	FollowMePlatforms []string `json:"followMePlatforms"`
}

// VisibleSocialLinks computes the publicly rendered social links.
// SocialLink records take precedence; the socialMedia config section is the
// fallback. A platform is visible only when it appears in followMePlatforms
// AND has a non-empty URL, in followMePlatforms order.
func VisibleSocialLinks(links []store.SocialLink, socialMedia json.RawMessage) []store.SocialLink {
	var section socialMediaSection
	if len(socialMedia) > 0 {
		// Malformed config renders nothing rather than failing the page
		_ = json.Unmarshal(socialMedia, &section)
	}

	urls := make(map[string]string)
	if len(links) > 0 {
		for _, l := range links {
			urls[l.Platform] = l.URL
		}
	} else if len(socialMedia) > 0 {
		var raw map[string]any
		if err := json.Unmarshal(socialMedia, &raw); err == nil {
			for key, value := range raw {
				if url, ok := value.(string); ok {
					urls[key] = url
				}
			}
		}
	}

	visible := []store.SocialLink{}
	for i, platform := range section.FollowMePlatforms {
		url := urls[platform]
		if url == "" {
			continue
		}
		visible = append(visible, store.SocialLink{
			Platform:     platform,
			URL:          url,
			DisplayOrder: i,
		})
	}

	return visible
}

// Markdown converts long-form content (about paragraphs, project
// descriptions) to HTML for the public page.
func Markdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
