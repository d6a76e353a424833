// Package id mints the identifiers attached to reader annotations.
// Highlights use the "hl" prefix, bookmarks "bm"; the prefix makes a key's
// kind readable in store dumps and logs.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate returns a new ID of the form "<prefix>-<nanoid>", e.g.
// "hl-V1StGXR8_Z5jdHi6B-myT". The random part is a 21-character URL-safe
// NanoID. Fails only when the OS entropy source does.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is Generate for callers with no error path, such as building
// a highlight inside a state mutation. Panics if entropy is unavailable.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
