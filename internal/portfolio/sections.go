// ABOUTME: Closed set of site configuration sections and their documented defaults
// ABOUTME: Guarantees GetConfig output always contains every recognized section

package portfolio

import (
	"encoding/json"
	"fmt"
)

// sectionNames is the closed set of recognized config sections.
// Unknown section names are rejected on write; unknown keys inside a
// section pass through the store untouched.
var sectionNames = []string{
	"hero",
	"header",
	"urls",
	"about",
	"projects",
	"skills",
	"contact",
	"socialMedia",
}

// Sections returns the recognized section names in canonical order
func Sections() []string {
	out := make([]string, len(sectionNames))
	copy(out, sectionNames)
	return out
}

// IsSection reports whether name is a recognized config section
func IsSection(name string) bool {
	for _, s := range sectionNames {
		if s == name {
			return true
		}
	}
	return false
}

// defaultsJSON holds the shipped default value for every section.
// Section contents are free-form; these are the values a fresh install renders.
const defaultsJSON = `{
	"hero": {
		"greeting": "Hi there, I'm",
		"name": "Sohanur Islam",
		"surname": "Shuvo",
		"tagline": "A passionate designer creating beautiful digital experiences that blend creativity with functionality",
		"ctaButtons": {"primary": "Explore My Work", "secondary": "Get In Touch"}
	},
	"header": {
		"logo": "S",
		"logoText": "Sohanur Islam Shuvo",
		"navItems": [
			{"name": "Home", "href": "#home"},
			{"name": "About", "href": "#about"},
			{"name": "Projects", "href": "#projects"},
			{"name": "Skills", "href": "#skills"},
			{"name": "Contact", "href": "#contact"}
		]
	},
	"urls": {
		"home": "/",
		"about": "/about",
		"projects": "/projects",
		"skills": "/skills",
		"contact": "/contact",
		"admin": "/hey-admin"
	},
	"about": {
		"title": "About Me",
		"subtitle": "Passionate about creating meaningful digital experiences through innovative design",
		"name": "Sohanur Islam Shuvo",
		"role": "UI/UX Designer & Creative Director",
		"profilePicture": "",
		"story": {
			"paragraph1": "I'm a passionate designer with over 5 years of experience in creating beautiful, functional digital experiences.",
			"paragraph2": "I specialize in UI/UX design, branding, and digital product development."
		},
		"stats": [
			{"label": "Years Experience", "value": "5+"},
			{"label": "Projects Completed", "value": "50+"},
			{"label": "Happy Clients", "value": "30+"},
			{"label": "Based in", "value": "Bangladesh"}
		],
		"tools": ["Adobe Photoshop", "Adobe Illustrator", "Figma", "Sketch"]
	},
	"projects": {
		"title": "My Projects",
		"subtitle": "A showcase of my design work across various industries and platforms"
	},
	"skills": {
		"title": "My Skills",
		"subtitle": "A comprehensive overview of my technical abilities and creative expertise",
		"offerTitle": "What I Offer",
		"serviceCards": [
			{"title": "Web Design", "description": "Creating stunning, responsive websites that captivate and convert visitors."},
			{"title": "Mobile Design", "description": "Designing intuitive mobile apps with seamless user experiences."},
			{"title": "Brand Identity", "description": "Developing comprehensive brand identities that tell your story."},
			{"title": "UI/UX Design", "description": "Crafting user-centered designs that balance beauty with functionality."}
		]
	},
	"contact": {
		"title": "Get In Touch",
		"subtitle": "Let's work together to bring your vision to life",
		"email": "hello@sohanur.dev",
		"phone": "+880 123 456 789",
		"location": "Dhaka, Bangladesh"
	},
	"socialMedia": {
		"github": "",
		"linkedin": "",
		"twitter": "",
		"email": "",
		"customLinks": [],
		"followMePlatforms": ["github", "linkedin", "twitter", "email"]
	}
}`

var defaultSections map[string]json.RawMessage

func init() {
	if err := json.Unmarshal([]byte(defaultsJSON), &defaultSections); err != nil {
		panic(fmt.Sprintf("portfolio: invalid default config: %v", err))
	}
	for _, name := range sectionNames {
		if _, ok := defaultSections[name]; !ok {
			panic(fmt.Sprintf("portfolio: missing default for section %q", name))
		}
	}
}

// Defaults returns a fresh copy of the default section values
func Defaults() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(defaultSections))
	for k, v := range defaultSections {
		out[k] = v
	}
	return out
}

// FillDefaults returns cfg with every missing recognized section filled in
// from the defaults. Stored sections are never modified, only absent ones
// are added, so readers never see an undefined section.
func FillDefaults(cfg map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(sectionNames))
	for _, name := range sectionNames {
		if v, ok := cfg[name]; ok {
			out[name] = v
		} else {
			out[name] = defaultSections[name]
		}
	}
	return out
}
