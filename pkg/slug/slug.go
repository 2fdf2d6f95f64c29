package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	invalidChars  = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)
	separatorRuns = regexp.MustCompile(`[-\s]+`)
)

// Make turns a string into a filesystem-safe token: lowercase, spaces
// collapsed to single hyphens, everything but letters, digits, underscores
// and hyphens removed. With allowUnicode the input is NFKC-normalized and
// non-ASCII letters survive; otherwise it is decomposed and stripped down
// to ASCII (so "résumé" becomes "resume").
func Make(value string, allowUnicode bool) string {
	if allowUnicode {
		value = norm.NFKC.String(value)
	} else {
		t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
		if stripped, _, err := transform.String(t, value); err == nil {
			value = stripped
		}
		value = strings.Map(func(r rune) rune {
			if r > unicode.MaxASCII {
				return -1
			}
			return r
		}, value)
	}

	value = invalidChars.ReplaceAllString(value, "")
	value = strings.ToLower(strings.TrimSpace(value))
	return separatorRuns.ReplaceAllString(value, "-")
}
