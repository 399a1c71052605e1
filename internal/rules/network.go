package rules

import (
	"fmt"
	"strings"
)

// ContentType is a content-type constraint of a network rule, named after the
// corresponding rule modifier.
type ContentType string

// Recognized content-type modifiers.
const (
	ContentTypeDocument       ContentType = "document"
	ContentTypeFont           ContentType = "font"
	ContentTypeImage          ContentType = "image"
	ContentTypeMedia          ContentType = "media"
	ContentTypeOther          ContentType = "other"
	ContentTypePopup          ContentType = "popup"
	ContentTypeScript         ContentType = "script"
	ContentTypeStylesheet     ContentType = "stylesheet"
	ContentTypeSubdocument    ContentType = "subdocument"
	ContentTypeWebsocket      ContentType = "websocket"
	ContentTypeXMLHTTPRequest ContentType = "xmlhttprequest"
)

// NetworkRule is a classified network-blocking rule or its exception form.
// Construct with [NewNetworkRule]; a constructed rule is immutable.
type NetworkRule struct {
	base

	pattern string

	permittedTypes  []ContentType
	restrictedTypes []ContentType

	document   bool
	important  bool
	matchCase  bool
	firstParty bool
	thirdParty bool
}

// type check
var _ Rule = (*NetworkRule)(nil)

// Network-rule syntax tokens.
const (
	// exceptionPrefix marks a network exception rule.
	exceptionPrefix = "@@"

	// optionsSep separates the pattern from the modifier list.
	optionsSep = '$'

	// networkDomainSep is the separator of the domain= modifier value.
	networkDomainSep = '|'
)

// NewNetworkRule classifies text as a network rule.  The returned error is
// always a [*SyntaxError].
func NewNetworkRule(text string) (r *NetworkRule, err error) {
	r = &NetworkRule{
		base: base{text: text},
	}

	p := text
	if strings.HasPrefix(p, exceptionPrefix) {
		r.whitelist = true
		p = p[len(exceptionPrefix):]
	}

	p, opts := splitOptions(p)
	r.pattern = p

	if opts != "" {
		err = r.parseOptions(opts)
		if err != nil {
			return nil, &SyntaxError{Err: err, RuleText: text, Message: "bad modifiers"}
		}
	}

	if r.pattern == "" && opts == "" {
		return nil, &SyntaxError{RuleText: text, Message: "empty rule"}
	}

	return r, nil
}

// splitOptions splits a network rule into its pattern and its modifier list
// at the last dollar sign that is neither escaped nor part of a regex
// pattern.
func splitOptions(p string) (pattern, opts string) {
	if isRegexPattern(p) {
		return p, ""
	}

	for i := len(p) - 1; i > 0; i-- {
		if p[i] != byte(optionsSep) || p[i-1] == '\\' {
			continue
		}

		return p[:i], p[i+1:]
	}

	return p, ""
}

// isRegexPattern returns true if p is a regular-expression pattern rule.
func isRegexPattern(p string) (ok bool) {
	return len(p) > 1 && strings.HasPrefix(p, "/") && strings.HasSuffix(p, "/")
}

// parseOptions parses the comma-separated modifier list of a network rule.
// An unknown modifier is an error, so that unsupported rules are counted and
// skipped instead of silently producing wrong declarative entries.
func (r *NetworkRule) parseOptions(opts string) (err error) {
	for _, o := range splitEscaped(opts, ',') {
		name, value, _ := strings.Cut(o, "=")
		switch name {
		case "domain":
			if value == "" {
				return fmt.Errorf("modifier %q has no domains", o)
			}

			err = r.parseDomainList(value, networkDomainSep)
			if err != nil {
				return err
			}
		case "document", "doc":
			r.document = true
		case "important":
			r.important = true
		case "match-case":
			r.matchCase = true
		case "third-party", "3p":
			r.thirdParty = true
		case "~third-party", "first-party", "1p":
			r.firstParty = true
		default:
			ct, restricted := parseContentType(name)
			if ct == "" {
				return fmt.Errorf("unsupported modifier %q", o)
			}

			if restricted {
				r.restrictedTypes = append(r.restrictedTypes, ct)
			} else {
				r.permittedTypes = append(r.permittedTypes, ct)
			}
		}
	}

	return nil
}

// parseContentType parses a content-type modifier name, which may carry a
// leading tilde.  ct is empty if name is not a content-type modifier.
func parseContentType(name string) (ct ContentType, restricted bool) {
	if strings.HasPrefix(name, "~") {
		restricted = true
		name = name[1:]
	}

	switch c := ContentType(name); c {
	case
		ContentTypeDocument,
		ContentTypeFont,
		ContentTypeImage,
		ContentTypeMedia,
		ContentTypeOther,
		ContentTypePopup,
		ContentTypeScript,
		ContentTypeStylesheet,
		ContentTypeSubdocument,
		ContentTypeWebsocket,
		ContentTypeXMLHTTPRequest:
		return c, restricted
	default:
		return "", false
	}
}

// splitEscaped splits s at every sep that is not preceded by a backslash.
func splitEscaped(s string, sep byte) (parts []string) {
	start := 0
	for i := range len(s) {
		if s[i] == sep && (i == 0 || s[i-1] != '\\') {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}

	return append(parts, s[start:])
}

// Pattern returns the URL pattern of the rule.
func (r *NetworkRule) Pattern() (p string) { return r.pattern }

// IsRegex returns true if the pattern is a regular expression.
func (r *NetworkRule) IsRegex() (ok bool) { return isRegexPattern(r.pattern) }

// IsDocument returns true if the rule carries the document modifier.
func (r *NetworkRule) IsDocument() (ok bool) { return r.document }

// IsImportant returns true if the rule carries the important modifier.
func (r *NetworkRule) IsImportant() (ok bool) { return r.important }

// IsMatchCase returns true if the pattern must match case-sensitively.
func (r *NetworkRule) IsMatchCase() (ok bool) { return r.matchCase }

// IsFirstParty returns true if the rule only applies to first-party
// requests.
func (r *NetworkRule) IsFirstParty() (ok bool) { return r.firstParty }

// IsThirdParty returns true if the rule only applies to third-party
// requests.
func (r *NetworkRule) IsThirdParty() (ok bool) { return r.thirdParty }

// PermittedContentTypes returns the content types the rule is limited to.
func (r *NetworkRule) PermittedContentTypes() (types []ContentType) { return r.permittedTypes }

// RestrictedContentTypes returns the content types excluded from the rule.
func (r *NetworkRule) RestrictedContentTypes() (types []ContentType) { return r.restrictedTypes }
