// Package safari defines the declarative content-blocker schema consumed by
// Safari's content-blocking engine, along with the closed sets of platform
// versions and advanced-blocking output formats.
//
// The JSON field names and their order are a stable external contract: the
// converter's single-rule fragment text must match what a full conversion
// would have produced for that rule, byte for byte.
package safari

// Entry is a single declarative content-blocker rule.
type Entry struct {
	// Trigger defines when the entry activates.
	Trigger Trigger `json:"trigger"`

	// Action defines what happens when the trigger matches.
	Action Action `json:"action"`
}

// Trigger defines when a declarative entry activates.
type Trigger struct {
	// URLFilter is a regular expression matched against the request URL.  It
	// is never empty; [URLFilterAny] matches everything.
	URLFilter string `json:"url-filter"`

	// IfDomain limits the entry to the listed domains.  Mutually exclusive
	// with UnlessDomain.
	IfDomain []string `json:"if-domain,omitempty"`

	// UnlessDomain excludes the listed domains from the entry.
	UnlessDomain []string `json:"unless-domain,omitempty"`

	// ResourceType limits the entry to the listed resource types.
	ResourceType []string `json:"resource-type,omitempty"`

	// LoadType limits the entry to first-party or third-party loads.
	LoadType []string `json:"load-type,omitempty"`

	// URLFilterIsCaseSensitive makes URLFilter matching case-sensitive.
	URLFilterIsCaseSensitive bool `json:"url-filter-is-case-sensitive,omitempty"`
}

// Action defines the effect of a matched declarative entry.
type Action struct {
	// Type is one of the ActionType values.
	Type string `json:"type"`

	// Selector is the CSS selector of ActionTypeCSSDisplayNone and
	// ActionTypeCSSExtended entries.
	Selector string `json:"selector,omitempty"`

	// CSS is the injected style of ActionTypeCSSInject entries.
	CSS string `json:"css,omitempty"`

	// Script is the script source of ActionTypeScript entries.
	Script string `json:"script,omitempty"`

	// Scriptlet is the scriptlet name of ActionTypeScriptlet entries.
	Scriptlet string `json:"scriptlet,omitempty"`

	// ScriptletParam is the JSON parameter payload of ActionTypeScriptlet
	// entries.
	ScriptletParam string `json:"scriptletParam,omitempty"`
}

// URLFilterAny is the URL filter matching every URL.
const URLFilterAny = ".*"

// Action types of the primary output.
const (
	ActionTypeBlock               = "block"
	ActionTypeCSSDisplayNone      = "css-display-none"
	ActionTypeIgnorePreviousRules = "ignore-previous-rules"
)

// Action types of the advanced-blocking output.
const (
	ActionTypeCSSExtended = "css-extended"
	ActionTypeCSSInject   = "css-inject"
	ActionTypeScript      = "script"
	ActionTypeScriptlet   = "scriptlet"
)

// Resource types of [Trigger.ResourceType].
const (
	ResourceTypeDocument    = "document"
	ResourceTypeFont        = "font"
	ResourceTypeImage       = "image"
	ResourceTypeMedia       = "media"
	ResourceTypePopup       = "popup"
	ResourceTypeRaw         = "raw"
	ResourceTypeScript      = "script"
	ResourceTypeStyleSheet  = "style-sheet"
	ResourceTypeSVGDocument = "svg-document"
)

// Load types of [Trigger.LoadType].
const (
	LoadTypeFirstParty = "first-party"
	LoadTypeThirdParty = "third-party"
)
