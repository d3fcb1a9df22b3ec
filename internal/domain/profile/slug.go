package profile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugStrip = regexp.MustCompile(`[^a-z0-9]`)
	slugShape = regexp.MustCompile(`^[a-z0-9]+$`)
)

// SlugBase derives the slug candidate from a display name: lowercase, every
// character outside [a-z0-9] stripped. May return "" for names with no
// usable characters; callers fall back to FallbackSlug.
func SlugBase(name string) string {
	return slugStrip.ReplaceAllString(strings.ToLower(name), "")
}

// FallbackSlug builds a deterministic slug from the user id for names that
// strip down to nothing.
func FallbackSlug(id uuid.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("user%s", hex[:8])
}

// ValidSlug reports whether s has the canonical slug shape.
func ValidSlug(s string) bool {
	return slugShape.MatchString(s)
}
