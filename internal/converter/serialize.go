package converter

import (
	"strings"

	"github.com/AdguardTeam/safariconverter/internal/safari"
	"github.com/goccy/go-json"
)

// marshalEntry returns the canonical serialization of a single declarative
// entry.  The encoding is compact and keeps the struct field order, so the
// fragment of a rule converted in isolation is byte-identical to its slice of
// a full conversion.  The clipper depends on this.
func marshalEntry(e *safari.Entry) (frag string, err error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// serializeEntries emits the well-formed array text of entries,
// [EmptyConverted] when there are none.
func serializeEntries(entries []*safari.Entry) (s string, err error) {
	if len(entries) == 0 {
		return EmptyConverted, nil
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte(',')
		}

		frag, err := marshalEntry(e)
		if err != nil {
			return "", err
		}

		sb.WriteString(frag)
	}

	sb.WriteByte(']')

	return sb.String(), nil
}
