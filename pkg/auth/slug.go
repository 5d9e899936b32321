package auth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9-]+`)
var slugDashes = regexp.MustCompile(`-{2,}`)

// MakeSlug derives a company slug from its display name: lowercased, spaces
// become hyphens, everything else non-alphanumeric is stripped, and a random
// 4-character suffix guarantees global uniqueness without a retry loop.
// Example: "Blue Cafe" -> "blue-cafe-9f3a"
func MakeSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugDashes.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		slug = "company"
	}
	if len(slug) > 50 {
		slug = slug[:50]
	}

	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:4]
	return fmt.Sprintf("%s-%s", slug, suffix)
}
