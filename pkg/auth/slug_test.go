package auth

import (
	"regexp"
	"strings"
	"testing"
)

var slugShape = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*-[0-9a-f]{4}$`)

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		name       string
		company    string
		wantPrefix string
	}{
		{"simple", "Acme", "acme-"},
		{"spaces become hyphens", "Blue Cafe", "blue-cafe-"},
		{"special chars stripped", "Joe's Diner & Grill", "joes-diner-grill-"},
		{"already lowercase", "ratebridge", "ratebridge-"},
		{"unusable name falls back", "!!!", "company-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug := MakeSlug(tt.company)
			if !strings.HasPrefix(slug, tt.wantPrefix) {
				t.Errorf("MakeSlug(%q) = %q, want prefix %q", tt.company, slug, tt.wantPrefix)
			}
			if !slugShape.MatchString(slug) {
				t.Errorf("MakeSlug(%q) = %q, does not match expected shape", tt.company, slug)
			}
		})
	}
}

func TestMakeSlug_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		slug := MakeSlug("Same Name")
		if seen[slug] {
			t.Fatalf("duplicate slug %q after %d iterations", slug, i)
		}
		seen[slug] = true
	}
}
