package converter

import (
	"fmt"
	"strings"

	"github.com/AdguardTeam/safariconverter/internal/rules"
	"github.com/AdguardTeam/safariconverter/internal/safari"
)

// compile translates one classified rule into a declarative entry.  adv is
// true if the entry belongs to the advanced-blocking stream.  A rule that
// cannot be expressed declaratively returns an error and is counted by the
// caller.
func (c *Converter) compile(r rules.Rule) (e *safari.Entry, adv bool, err error) {
	switch r := r.(type) {
	case *rules.NetworkRule:
		e, err = compileNetwork(r)

		return e, false, err
	case *rules.CosmeticRule:
		return compileCosmetic(r)
	default:
		// Cannot happen, the rule kind set is closed.
		return nil, false, fmt.Errorf("unexpected rule type %T", r)
	}
}

// compileCosmetic translates a cosmetic rule.
func compileCosmetic(r *rules.CosmeticRule) (e *safari.Entry, adv bool, err error) {
	trigger := safari.Trigger{
		URLFilter:    safari.URLFilterAny,
		IfDomain:     domainsWithSubdomains(r.PermittedDomains()),
		UnlessDomain: domainsWithSubdomains(r.RestrictedDomains()),
	}

	if r.IsWhitelist() {
		// The exception disarms previously matched entries for the rule's
		// domains; the selector itself cannot be unmatched declaratively.
		// Exceptions with advanced markers also land here: the primary
		// stream is the only one ignore-previous-rules applies to, so they
		// never reach the advanced stream.
		return &safari.Entry{
			Trigger: trigger,
			Action:  safari.Action{Type: safari.ActionTypeIgnorePreviousRules},
		}, false, nil
	}

	var action safari.Action
	switch {
	case r.IsScriptlet():
		action = safari.Action{
			Type:           safari.ActionTypeScriptlet,
			Scriptlet:      r.ScriptletName(),
			ScriptletParam: r.ScriptletParams(),
		}
	case r.IsScript():
		action = safari.Action{
			Type:   safari.ActionTypeScript,
			Script: r.Content(),
		}
	case r.IsCSSInject():
		action = safari.Action{
			Type: safari.ActionTypeCSSInject,
			CSS:  r.Content(),
		}
	case r.IsExtendedCSS():
		action = safari.Action{
			Type:     safari.ActionTypeCSSExtended,
			Selector: r.Content(),
		}
	default:
		return &safari.Entry{
			Trigger: trigger,
			Action: safari.Action{
				Type:     safari.ActionTypeCSSDisplayNone,
				Selector: r.Content(),
			},
		}, false, nil
	}

	return &safari.Entry{Trigger: trigger, Action: action}, true, nil
}

// compileNetwork translates a network rule.
func compileNetwork(r *rules.NetworkRule) (e *safari.Entry, err error) {
	if r.IsWhitelist() && r.IsDocument() {
		return compileAllowlist(r)
	}

	trigger, err := networkTrigger(r)
	if err != nil {
		return nil, err
	}

	actionType := safari.ActionTypeBlock
	if r.IsWhitelist() {
		actionType = safari.ActionTypeIgnorePreviousRules
	}

	return &safari.Entry{
		Trigger: trigger,
		Action:  safari.Action{Type: actionType},
	}, nil
}

// compileAllowlist translates a document-level exception rule into the
// canonical allowlist entry.  A pattern of the form "||host" scopes the entry
// to the host; a wildcard pattern scopes it by the rule's domain lists,
// producing the inverted allowlist form.
func compileAllowlist(r *rules.NetworkRule) (e *safari.Entry, err error) {
	trigger := safari.Trigger{
		URLFilter: safari.URLFilterAny,
	}

	if host := allowlistHost(r.Pattern()); host != "" {
		trigger.IfDomain = domainsWithSubdomains([]string{host})
	} else if isWildcardPattern(r.Pattern()) {
		trigger.IfDomain = domainsWithSubdomains(r.PermittedDomains())
		trigger.UnlessDomain = domainsWithSubdomains(r.RestrictedDomains())
	} else {
		return nil, fmt.Errorf("document exception pattern %q is not a host", r.Pattern())
	}

	return &safari.Entry{
		Trigger: trigger,
		Action:  safari.Action{Type: safari.ActionTypeIgnorePreviousRules},
	}, nil
}

// networkTrigger builds the trigger of a network rule entry.
func networkTrigger(r *rules.NetworkRule) (trigger safari.Trigger, err error) {
	urlFilter, err := urlFilterFromPattern(r.Pattern())
	if err != nil {
		return safari.Trigger{}, err
	}

	resourceTypes, err := resourceTypes(r)
	if err != nil {
		return safari.Trigger{}, err
	}

	trigger = safari.Trigger{
		URLFilter:                urlFilter,
		IfDomain:                 domainsWithSubdomains(r.PermittedDomains()),
		UnlessDomain:             domainsWithSubdomains(r.RestrictedDomains()),
		ResourceType:             resourceTypes,
		URLFilterIsCaseSensitive: r.IsMatchCase(),
	}

	if r.IsThirdParty() {
		trigger.LoadType = []string{safari.LoadTypeThirdParty}
	} else if r.IsFirstParty() {
		trigger.LoadType = []string{safari.LoadTypeFirstParty}
	}

	return trigger, nil
}

// allResourceTypes is the ordered set of declarative resource types used to
// build the complement of restricted content types.
var allResourceTypes = []string{
	safari.ResourceTypeDocument,
	safari.ResourceTypeImage,
	safari.ResourceTypeStyleSheet,
	safari.ResourceTypeScript,
	safari.ResourceTypeFont,
	safari.ResourceTypeRaw,
	safari.ResourceTypeSVGDocument,
	safari.ResourceTypeMedia,
	safari.ResourceTypePopup,
}

// contentTypeToResource maps content-type modifiers to declarative resource
// types.
var contentTypeToResource = map[rules.ContentType]string{
	rules.ContentTypeDocument:       safari.ResourceTypeDocument,
	rules.ContentTypeSubdocument:    safari.ResourceTypeDocument,
	rules.ContentTypeFont:           safari.ResourceTypeFont,
	rules.ContentTypeImage:          safari.ResourceTypeImage,
	rules.ContentTypeMedia:          safari.ResourceTypeMedia,
	rules.ContentTypePopup:          safari.ResourceTypePopup,
	rules.ContentTypeScript:         safari.ResourceTypeScript,
	rules.ContentTypeStylesheet:     safari.ResourceTypeStyleSheet,
	rules.ContentTypeOther:          safari.ResourceTypeRaw,
	rules.ContentTypeWebsocket:      safari.ResourceTypeRaw,
	rules.ContentTypeXMLHTTPRequest: safari.ResourceTypeRaw,
}

// resourceTypes builds the resource-type list of a network rule's trigger.
// Restricted content types translate into the complement of the full set.
func resourceTypes(r *rules.NetworkRule) (types []string, err error) {
	permitted, restricted := r.PermittedContentTypes(), r.RestrictedContentTypes()
	if len(permitted) > 0 && len(restricted) > 0 {
		return nil, fmt.Errorf("rule %q mixes permitted and restricted content types", r.Text())
	}

	if len(permitted) > 0 {
		for _, ct := range permitted {
			types = appendUnique(types, contentTypeToResource[ct])
		}

		return types, nil
	}

	if len(restricted) == 0 {
		return nil, nil
	}

	excluded := map[string]bool{}
	for _, ct := range restricted {
		excluded[contentTypeToResource[ct]] = true
	}

	for _, rt := range allResourceTypes {
		if !excluded[rt] {
			types = append(types, rt)
		}
	}

	return types, nil
}

// appendUnique appends s to types unless it is already present.
func appendUnique(types []string, s string) (res []string) {
	for _, t := range types {
		if t == s {
			return types
		}
	}

	return append(types, s)
}

// domainsWithSubdomains converts parsed rule domains into trigger domain
// entries.  Safari matches the listed domain literally, so each one gets the
// leading wildcard covering its subdomains.
func domainsWithSubdomains(domains []string) (res []string) {
	if len(domains) == 0 {
		return nil
	}

	res = make([]string, 0, len(domains))
	for _, d := range domains {
		res = append(res, "*"+d)
	}

	return res
}

// allowlistHost extracts the plain host of a "||host" or "||host^" pattern.
// It is empty if the pattern has any other shape.
func allowlistHost(p string) (host string) {
	rest, ok := strings.CutPrefix(p, "||")
	if !ok {
		return ""
	}

	host = strings.TrimSuffix(rest, "^")
	if host == "" || strings.ContainsAny(host, "*|/^$") {
		return ""
	}

	return strings.ToLower(host)
}

// isWildcardPattern returns true if p matches every URL.
func isWildcardPattern(p string) (ok bool) {
	return p == "" || p == "*" || p == "||*"
}
