package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"techmart/internal/common"

	"github.com/google/uuid"
)

// maxSlugAttempts bounds the collision loop so a pathological slug space
// cannot spin forever.
const maxSlugAttempts = 10000

// SlugSource answers slug-existence checks within one entity kind's
// namespace. Every catalog repository with a slug column implements it.
type SlugSource interface {
	ExistsSlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

// Slugify normalizes a display name into its base slug: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens trimmed. Names that normalize to nothing are invalid.
func Slugify(name string) (string, error) {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}

	slug := b.String()
	if slug == "" {
		return "", fmt.Errorf("name %q: %w", name, common.ErrInvalidName)
	}
	return slug, nil
}

// AllocateSlug derives a slug for name that is unique within src's
// namespace, excluding excludeID from the collision check so a rename never
// collides with the entity's own current slug. Collisions resolve to the
// lowest free numeric suffix: base, base-1, base-2, ...
//
// The check is a pure read; the caller persists the result and retries on a
// storage-level unique violation if a concurrent writer won the slug.
func AllocateSlug(ctx context.Context, src SlugSource, name string, excludeID uuid.UUID) (string, error) {
	base, err := Slugify(name)
	if err != nil {
		return "", err
	}

	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		exists, err := src.ExistsSlug(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("slug %q: %w", base, common.ErrAllocationExhausted)
}
