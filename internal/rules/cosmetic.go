package rules

import (
	"strings"
)

// CosmeticRule is a classified cosmetic rule: element hiding, CSS injection,
// or script injection, possibly in exception form.  Construct with
// [NewCosmeticRule]; a constructed rule is immutable.
type CosmeticRule struct {
	base

	marker          CosmeticMarker
	content         string
	scriptletName   string
	scriptletParams string

	elementHiding bool
	cssInject     bool
	script        bool
	scriptlet     bool
	extendedCSS   bool
}

// type check
var _ Rule = (*CosmeticRule)(nil)

// domainListSep is the separator of cosmetic-rule domain lists.
const domainListSep = ','

// NewCosmeticRule classifies text as a cosmetic rule.  The returned error is
// always a [*SyntaxError].
func NewCosmeticRule(text string) (r *CosmeticRule, err error) {
	idx, m := FindCosmeticMarker(text)
	if idx < 0 {
		return nil, &SyntaxError{RuleText: text, Message: "no cosmetic marker"}
	}

	r = &CosmeticRule{
		base:   base{text: text, whitelist: m.IsException()},
		marker: m,
	}

	r.content = strings.TrimSpace(text[idx+len(m):])
	if r.content == "" {
		return nil, &SyntaxError{RuleText: text, Message: "empty content"}
	}

	switch m {
	case MarkerElementHiding, MarkerElementHidingException,
		MarkerElementHidingExtCSS, MarkerElementHidingExtCSSException:
		r.elementHiding = true
	case MarkerCSS, MarkerCSSException, MarkerCSSExtCSS, MarkerCSSExtCSSException:
		r.cssInject = true
	case MarkerJS, MarkerJSException:
		r.script = true
	default:
		// HTML-filtering markers are detected but have no supported rule
		// kind.
		return nil, &SyntaxError{RuleText: text, Message: "unsupported rule kind"}
	}

	if r.script && strings.HasPrefix(r.content, ScriptletPrefix) {
		err = r.parseScriptletContent()
		if err != nil {
			return nil, &SyntaxError{Err: err, RuleText: text, Message: "bad scriptlet"}
		}
	}

	if idx > 0 {
		err = r.parseDomainList(text[:idx], domainListSep)
		if err != nil {
			return nil, &SyntaxError{Err: err, RuleText: text, Message: "bad domain list"}
		}
	}

	r.extendedCSS = m.IsExtCSS() || hasExtCSSIndicator(r.content)

	return r, nil
}

// parseScriptletContent fills the scriptlet fields of r from its content.
func (r *CosmeticRule) parseScriptletContent() (err error) {
	s, err := ParseScriptlet(r.content)
	if err != nil {
		return err
	}

	params, err := s.ParamsJSON()
	if err != nil {
		return err
	}

	r.scriptlet = true
	r.scriptletName = s.Name
	r.scriptletParams = params

	return nil
}

// Marker returns the cosmetic marker of the rule.
func (r *CosmeticRule) Marker() (m CosmeticMarker) { return r.marker }

// Content returns the rule text following the marker.  It is never empty.
func (r *CosmeticRule) Content() (s string) { return r.content }

// IsElementHiding returns true if the rule hides elements by CSS selector.
func (r *CosmeticRule) IsElementHiding() (ok bool) { return r.elementHiding }

// IsCSSInject returns true if the rule injects a CSS style.
func (r *CosmeticRule) IsCSSInject() (ok bool) { return r.cssInject }

// IsScript returns true if the rule injects a script or a scriptlet.
func (r *CosmeticRule) IsScript() (ok bool) { return r.script }

// IsScriptlet returns true if the rule is a scriptlet call.  It implies
// [CosmeticRule.IsScript].
func (r *CosmeticRule) IsScriptlet() (ok bool) { return r.scriptlet }

// ScriptletName returns the scriptlet name, if the rule is a scriptlet call.
func (r *CosmeticRule) ScriptletName() (name string) { return r.scriptletName }

// ScriptletParams returns the JSON payload of the scriptlet parameters, if
// the rule is a scriptlet call.
func (r *CosmeticRule) ScriptletParams() (params string) { return r.scriptletParams }

// IsExtendedCSS returns true if the rule requires the extended-CSS engine,
// either because of its marker or because its content uses an extended-CSS
// pseudo-class or attribute.
func (r *CosmeticRule) IsExtendedCSS() (ok bool) { return r.extendedCSS }

// minExtCSSIndicatorLen is the length of the shortest content that can
// contain an extended-CSS indicator.
const minExtCSSIndicatorLen = 6

// extCSSIndicators is the fixed, priority-ordered set of extended-CSS
// indicators: the -ext- attribute prefix and the pseudo-classes that the
// native selector engine cannot match.
var extCSSIndicators = []string{
	"[-ext-",
	":contains(",
	":has(",
	":has-text(",
	":if(",
	":if-not(",
	":is(",
	":matches-attr(",
	":matches-css(",
	":matches-property(",
	":nth-ancestor(",
	":remove(",
	":upward(",
	":xpath(",
}

// hasExtCSSIndicator reports whether content contains any extended-CSS
// indicator.  It is a single left-to-right scan that attempts a prefix match
// of every candidate at each '[' or ':' and short-circuits on the first hit.
func hasExtCSSIndicator(content string) (ok bool) {
	if len(content) < minExtCSSIndicatorLen {
		return false
	}

	for i := range len(content) {
		c := content[i]
		if c != '[' && c != ':' {
			continue
		}

		rest := content[i:]
		for _, ind := range extCSSIndicators {
			if strings.HasPrefix(rest, ind) {
				return true
			}
		}
	}

	return false
}
