// ABOUTME: Tests for the closed config section set and defaults filling
// ABOUTME: Verifies every recognized section always has a value after FillDefaults

package portfolio

import (
	"encoding/json"
	"testing"
)

func TestIsSection(t *testing.T) {
	for _, name := range Sections() {
		if !IsSection(name) {
			t.Errorf("IsSection(%q) = false", name)
		}
	}
	for _, name := range []string{"", "Hero", "socialmedia", "footer", "admin"} {
		if IsSection(name) {
			t.Errorf("IsSection(%q) = true", name)
		}
	}
}

func TestDefaults_CoverAllSections(t *testing.T) {
	defaults := Defaults()
	for _, name := range Sections() {
		v, ok := defaults[name]
		if !ok {
			t.Errorf("no default for section %q", name)
			continue
		}
		if !json.Valid(v) {
			t.Errorf("default for %q is not valid JSON", name)
		}
	}
}

func TestFillDefaults_EmptyConfig(t *testing.T) {
	filled := FillDefaults(nil)
	if len(filled) != len(Sections()) {
		t.Errorf("filled has %d sections, want %d", len(filled), len(Sections()))
	}
	for _, name := range Sections() {
		if _, ok := filled[name]; !ok {
			t.Errorf("section %q missing after FillDefaults", name)
		}
	}
}

func TestFillDefaults_StoredSectionsWin(t *testing.T) {
	stored := map[string]json.RawMessage{
		"hero": json.RawMessage(`{"name":"Custom"}`),
	}
	filled := FillDefaults(stored)

	if string(filled["hero"]) != `{"name":"Custom"}` {
		t.Errorf("stored hero was overwritten: %s", filled["hero"])
	}

	var about map[string]any
	if err := json.Unmarshal(filled["about"], &about); err != nil {
		t.Fatalf("about default invalid: %v", err)
	}
	if about["title"] != "About Me" {
		t.Errorf("about default not filled: %v", about["title"])
	}
}

func TestFillDefaults_DoesNotMutateInput(t *testing.T) {
	stored := map[string]json.RawMessage{}
	FillDefaults(stored)
	if len(stored) != 0 {
		t.Errorf("input map was mutated: %d entries", len(stored))
	}
}
