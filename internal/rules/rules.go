// Package rules contains the text model of AdGuard filtering rules: the
// classification of raw rule lines into typed network and cosmetic rules, the
// cosmetic-marker detector, the domain-list parser, and the scriptlet
// micro-parser.
package rules

import (
	"fmt"
	"strings"
)

// Rule is the common interface of classified filtering rules.  The only two
// implementations are [*NetworkRule] and [*CosmeticRule]; consumers
// distinguish them with a type switch.
type Rule interface {
	// Text returns the original rule text.
	Text() (s string)

	// IsWhitelist returns true if the rule is an exception rule rather than a
	// blocking one.
	IsWhitelist() (ok bool)

	// PermittedDomains returns the domains the rule is limited to, in the
	// order they appear in the rule text.
	PermittedDomains() (domains []string)

	// RestrictedDomains returns the domains the rule must not apply to, in
	// the order they appear in the rule text.
	RestrictedDomains() (domains []string)

	// isRule is a marker method keeping the set of implementations closed.
	isRule()
}

// base contains the fields and validation shared by all rule kinds.
type base struct {
	text       string
	permitted  []string
	restricted []string
	whitelist  bool
}

// Text implements the [Rule] interface for *base.
func (b *base) Text() (s string) { return b.text }

// IsWhitelist implements the [Rule] interface for *base.
func (b *base) IsWhitelist() (ok bool) { return b.whitelist }

// PermittedDomains implements the [Rule] interface for *base.
func (b *base) PermittedDomains() (domains []string) { return b.permitted }

// RestrictedDomains implements the [Rule] interface for *base.
func (b *base) RestrictedDomains() (domains []string) { return b.restricted }

// isRule implements the [Rule] interface for *base.
func (b *base) isRule() {}

// SyntaxError is returned when a rule's text cannot be classified.  It is
// always scoped to a single rule and never aborts a multi-rule conversion.
type SyntaxError struct {
	// Err is the underlying error, if any.
	Err error

	// RuleText is the original text of the malformed rule.
	RuleText string

	// Message describes what exactly is malformed.
	Message string
}

// Error implements the error interface for *SyntaxError.
func (err *SyntaxError) Error() (msg string) {
	if err.Err != nil {
		return fmt.Sprintf("syntax error in rule %q: %s: %s", err.RuleText, err.Message, err.Err)
	}

	return fmt.Sprintf("syntax error in rule %q: %s", err.RuleText, err.Message)
}

// Unwrap implements the [errors.Wrapper] interface for *SyntaxError.
func (err *SyntaxError) Unwrap() (unwrapped error) { return err.Err }

// IsComment returns true if line is a filter-list comment and should be
// skipped without classification.
func IsComment(line string) (ok bool) {
	return strings.HasPrefix(line, "!")
}

// Classify parses a single trimmed rule line into its typed variant.  Lines
// containing a cosmetic marker become cosmetic rules; everything else goes
// down the network-rule path.  The returned error is always a [*SyntaxError].
func Classify(line string) (r Rule, err error) {
	if line == "" {
		return nil, &SyntaxError{RuleText: line, Message: "empty rule"}
	}

	if i, _ := FindCosmeticMarker(line); i >= 0 {
		return NewCosmeticRule(line)
	}

	return NewNetworkRule(line)
}
