package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength caps slugs at the DNS label limit since slugs become subdomains.
const MaxLength = 63

// validPattern matches the strict slug format accepted at provisioning time:
// lowercase alphanumeric runs separated by single hyphens, no leading or
// trailing hyphen.
var validPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// stripDiacritics decomposes characters and drops combining marks (é → e).
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make derives a URL- and DNS-safe slug from a display name.
// Diacritics are folded to their ASCII base, everything that is not a letter
// or digit becomes a hyphen, and consecutive hyphens collapse into one.
// The result may still fail IsValid (e.g. an all-symbol input yields ""),
// so callers must validate before using it as a tenant slug.
func Make(s string) string {
	if folded, _, err := transform.String(stripDiacritics, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > MaxLength {
		out = strings.TrimRight(out[:MaxLength], "-")
	}
	return out
}

// IsValid reports whether s satisfies the strict slug format required for
// tenant provisioning: lowercase letters, digits and single inner hyphens,
// at most MaxLength bytes.
func IsValid(s string) bool {
	if s == "" || len(s) > MaxLength {
		return false
	}
	return validPattern.MatchString(s)
}
