package rules

import (
	"fmt"
	"strings"

	"github.com/AdguardTeam/golibs/container"
)

// Domain-list syntax characters.
const (
	// domainNegation routes a domain token to the restricted set.
	domainNegation = '~'

	// domainWildcard as the entire list means "no domain restriction".
	domainWildcard = "*"
)

// parseDomainList splits a separator-delimited domain list and fills the
// permitted and restricted domain sets of b.  A domain may not appear in both
// sets, and no token may be empty after trimming.  The returned error, if
// any, describes the first bad token and should be wrapped into a
// [*SyntaxError] by the caller.
func (b *base) parseDomainList(list string, sep byte) (err error) {
	if list == domainWildcard {
		// A lone wildcard is a placeholder for a generic rule and adds
		// nothing to either set.
		return nil
	}

	seen := container.NewMapSet[string]()
	for tok := range strings.SplitSeq(list, string(sep)) {
		tok = strings.TrimSpace(tok)

		restricted := false
		if len(tok) > 0 && tok[0] == domainNegation {
			restricted = true
			tok = tok[1:]
		}

		if tok == "" {
			return fmt.Errorf("empty domain in list %q", list)
		}

		tok = strings.ToLower(tok)
		if seen.Has(tok) {
			return fmt.Errorf("domain %q is listed more than once", tok)
		}

		seen.Add(tok)
		if restricted {
			b.restricted = append(b.restricted, tok)
		} else {
			b.permitted = append(b.permitted, tok)
		}
	}

	return nil
}
