package parser

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slug normalizes a player name into a stable id. Sheets spell the same
// player inconsistently ("Hollywood!" / "Hollywood", "J- Mac" / "J-Mac"),
// so punctuation is dropped and separators collapse to single dashes.
func Slug(name string) string {
	return slug.Make(strings.TrimSpace(name))
}
