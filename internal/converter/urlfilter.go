package converter

import (
	"fmt"
	"strings"

	"github.com/AdguardTeam/safariconverter/internal/safari"
)

// URL-filter building blocks.  These are part of the stable serialization
// contract: the same pattern must always translate to the same filter text.
const (
	// urlFilterStartURL anchors a "||" pattern at the start of a URL of any
	// recognized scheme, allowing any subdomain.
	urlFilterStartURL = `^[htpsw]+:\/\/([a-z0-9-]+\.)?`

	// urlFilterSeparator is the translation of the "^" separator character.
	urlFilterSeparator = `[/:&?]?`
)

// regexEscaped is the set of characters that must be escaped in the
// translated filter so that they match literally.
const regexEscaped = `.+?$()[]{}/\`

// urlFilterFromPattern translates a network rule pattern into the trigger's
// URL filter.  Regular-expression patterns pass through unchanged, without
// their slashes.
func urlFilterFromPattern(p string) (f string, err error) {
	if isWildcardPattern(p) {
		return safari.URLFilterAny, nil
	}

	if len(p) > 1 && strings.HasPrefix(p, "/") && strings.HasSuffix(p, "/") {
		return p[1 : len(p)-1], nil
	}

	var sb strings.Builder
	i := 0
	if strings.HasPrefix(p, "||") {
		sb.WriteString(urlFilterStartURL)
		i = 2
	} else if strings.HasPrefix(p, "|") {
		sb.WriteByte('^')
		i = 1
	}

	for ; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '*':
			sb.WriteString(".*")
		case c == '^':
			sb.WriteString(urlFilterSeparator)
		case c == '|':
			if i != len(p)-1 {
				return "", fmt.Errorf("pattern %q: pipe at index %d", p, i)
			}

			sb.WriteByte('$')
		case strings.IndexByte(regexEscaped, c) >= 0:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), nil
}
