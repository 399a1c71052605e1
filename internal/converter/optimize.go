package converter

import (
	"github.com/AdguardTeam/safariconverter/internal/safari"
	"github.com/goccy/go-json"
)

// optimizeEntries drops exact-duplicate entries and merges the selectors of
// css-display-none entries whose triggers are identical.  Entries with
// different domain constraints or different action types serialize to
// different keys and are never merged.  Best effort: an entry that fails to
// serialize is kept as is.
func (c *Converter) optimizeEntries(entries []*safari.Entry) (out []*safari.Entry) {
	out = make([]*safari.Entry, 0, len(entries))

	seen := make(map[string]struct{}, len(entries))
	displayNone := make(map[string]int, len(entries))
	for _, e := range entries {
		key, err := marshalEntry(e)
		if err != nil {
			out = append(out, e)

			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}

		if e.Action.Type != safari.ActionTypeCSSDisplayNone {
			out = append(out, e)

			continue
		}

		tkey, err := json.Marshal(e.Trigger)
		if err != nil {
			out = append(out, e)

			continue
		}

		if i, ok := displayNone[string(tkey)]; ok {
			out[i].Action.Selector += ", " + e.Action.Selector

			continue
		}

		displayNone[string(tkey)] = len(out)
		out = append(out, e)
	}

	return out
}
