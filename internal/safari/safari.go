package safari

import (
	"fmt"
)

// Version is a major Safari version recognized by the converter.
type Version int

// Recognized Safari versions.
const (
	Version13 Version = 13
	Version14 Version = 14
	Version15 Version = 15
	Version16 Version = 16
	Version17 Version = 17
	Version18 Version = 18
)

// DefaultVersion is the version assumed when none is configured.
const DefaultVersion = Version13

// NewVersion converts a number into a Version and makes sure that it's a
// recognized one.  This should be preferred to a simple type conversion.
func NewVersion(n int) (v Version, err error) {
	v = Version(n)
	switch v {
	case Version13, Version14, Version15, Version16, Version17, Version18:
		return v, nil
	default:
		return 0, fmt.Errorf("unrecognized safari version %d", n)
	}
}

// Declarative rule-count limits enforced by Safari.
const (
	// RuleLimit is the entry limit of Safari versions before 15.
	RuleLimit = 50_000

	// ExtendedRuleLimit is the entry limit of Safari 15 and later.
	ExtendedRuleLimit = 150_000
)

// RuleLimit returns the maximum number of declarative entries the version
// accepts.
func (v Version) RuleLimit() (n int) {
	if v >= Version15 {
		return ExtendedRuleLimit
	}

	return RuleLimit
}

// AdvancedFormat is the output format of the advanced-blocking stream.
type AdvancedFormat string

// Recognized advanced-blocking formats.
const (
	// FormatJSON emits an entry array in the same serialization as the
	// primary output.
	FormatJSON AdvancedFormat = "json"

	// FormatTxt emits the source rule lines, one per line.
	FormatTxt AdvancedFormat = "txt"
)

// NewAdvancedFormat converts a simple string into an AdvancedFormat and makes
// sure that it's a recognized one.
func NewAdvancedFormat(s string) (f AdvancedFormat, err error) {
	f = AdvancedFormat(s)
	switch f {
	case FormatJSON, FormatTxt:
		return f, nil
	default:
		return "", fmt.Errorf("unrecognized advanced-blocking format %q", s)
	}
}
