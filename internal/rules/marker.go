package rules

// CosmeticMarker is the marker token that separates a cosmetic rule's domain
// prefix from its content and encodes its kind and whitelist status.
type CosmeticMarker string

// Recognized cosmetic markers.
const (
	// MarkerElementHiding is the standard element-hiding marker.
	MarkerElementHiding CosmeticMarker = "##"

	// MarkerElementHidingException is the exception form of
	// [MarkerElementHiding].
	MarkerElementHidingException CosmeticMarker = "#@#"

	// MarkerElementHidingExtCSS is the element-hiding marker that forces the
	// extended-CSS engine.
	MarkerElementHidingExtCSS CosmeticMarker = "#?#"

	// MarkerElementHidingExtCSSException is the exception form of
	// [MarkerElementHidingExtCSS].
	MarkerElementHidingExtCSSException CosmeticMarker = "#@?#"

	// MarkerCSS is the CSS-injection marker.
	MarkerCSS CosmeticMarker = "#$#"

	// MarkerCSSException is the exception form of [MarkerCSS].
	MarkerCSSException CosmeticMarker = "#@$#"

	// MarkerCSSExtCSS is the CSS-injection marker that forces the
	// extended-CSS engine.
	MarkerCSSExtCSS CosmeticMarker = "#$?#"

	// MarkerCSSExtCSSException is the exception form of [MarkerCSSExtCSS].
	MarkerCSSExtCSSException CosmeticMarker = "#@$?#"

	// MarkerJS is the script and scriptlet marker.
	MarkerJS CosmeticMarker = "#%#"

	// MarkerJSException is the exception form of [MarkerJS].
	MarkerJSException CosmeticMarker = "#@%#"

	// MarkerHTML is the HTML-filtering marker.  It is recognized but not
	// mapped to any supported rule kind.
	MarkerHTML CosmeticMarker = "$$"

	// MarkerHTMLException is the exception form of [MarkerHTML].
	MarkerHTMLException CosmeticMarker = "$@$"
)

// markers is the fixed, ordered marker table.  Where one token is a prefix of
// another, the longer one must come first, so that exception and extended
// markers win over the base marker at the same position.  The scan below
// breaks ties at the same index by this declaration order.
var markers = []CosmeticMarker{
	MarkerCSSExtCSSException,
	MarkerCSSException,
	MarkerElementHidingExtCSSException,
	MarkerElementHidingException,
	MarkerJSException,
	MarkerCSSExtCSS,
	MarkerCSS,
	MarkerElementHidingExtCSS,
	MarkerJS,
	MarkerElementHiding,
	MarkerHTMLException,
	MarkerHTML,
}

// FindCosmeticMarker scans line left to right for the earliest occurrence of
// any recognized cosmetic marker.  If there is none, idx is -1 and m is
// empty, and the caller should classify the line as a network rule.
func FindCosmeticMarker(line string) (idx int, m CosmeticMarker) {
	for i := range len(line) {
		c := line[i]

		// All markers start with either a number sign or a dollar sign, so
		// don't bother matching at other characters.
		if c != '#' && c != '$' {
			continue
		}

		rest := line[i:]
		for _, cand := range markers {
			if hasMarkerPrefix(rest, cand) {
				return i, cand
			}
		}
	}

	return -1, ""
}

// hasMarkerPrefix returns true if s starts with the marker m.  It is an
// allocation-free [strings.HasPrefix] over the marker type.
func hasMarkerPrefix(s string, m CosmeticMarker) (ok bool) {
	return len(s) >= len(m) && s[:len(m)] == string(m)
}

// IsException returns true if m is one of the exception markers.
func (m CosmeticMarker) IsException() (ok bool) {
	switch m {
	case
		MarkerCSSExtCSSException,
		MarkerCSSException,
		MarkerElementHidingExtCSSException,
		MarkerElementHidingException,
		MarkerJSException,
		MarkerHTMLException:
		return true
	default:
		return false
	}
}

// IsExtCSS returns true if m itself denotes the extended-CSS syntax.
func (m CosmeticMarker) IsExtCSS() (ok bool) {
	switch m {
	case
		MarkerElementHidingExtCSS,
		MarkerElementHidingExtCSSException,
		MarkerCSSExtCSS,
		MarkerCSSExtCSSException:
		return true
	default:
		return false
	}
}
