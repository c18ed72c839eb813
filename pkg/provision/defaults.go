package provision

import (
	"hash/fnv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// accentPalette holds the fallback brand colors a fresh store can launch
// with before the owner picks their own.
var accentPalette = []string{
	"#1a73e8",
	"#e8711a",
	"#0f9d58",
	"#a142f4",
	"#d93025",
	"#f9ab00",
	"#00796b",
	"#5f6368",
}

// accentColorFor picks a deterministic palette color for a slug, so the
// same shop always starts with the same accent and re-provisioning in
// test environments stays reproducible.
func accentColorFor(slug string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(slug))
	return accentPalette[h.Sum32()%uint32(len(accentPalette))]
}

var titleCaser = cases.Title(language.English)

// defaultTitle derives the initial store title from the display name, or
// from the slug ("coffee-roasters" becomes "Coffee Roasters") when no name
// was given.
func defaultTitle(name, slug string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return titleCaser.String(strings.ReplaceAll(slug, "-", " "))
}
