// Package clipper implements quick, single-rule edits of an existing
// conversion result: it inserts, locates, and removes one serialized entry
// directly in the result's array text, in constant time relative to the
// corpus size, without re-running the pipeline over the whole corpus.
package clipper

import (
	"context"
	"log/slog"
	"strings"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/safariconverter/internal/convcache"
	"github.com/AdguardTeam/safariconverter/internal/converter"
)

// Clipper errors.
const (
	// ErrNoFragment is returned when the single-rule conversion of the edited
	// rule yields no declarative entry.
	ErrNoFragment errors.Error = "conversion produced no fragment"

	// ErrRuleNotPresent is returned by removal when the rule's fragment is
	// not a literal substring of the serialized result.
	ErrRuleNotPresent errors.Error = "rule not present"
)

// Config is the clipper configuration.
type Config struct {
	// Logger is used to log the operation of the clipper.  It must not be
	// nil.
	Logger *slog.Logger

	// Converter derives the canonical fragment of a single rule.  It must
	// not be nil and must be configured identically to the converter that
	// produced the results being edited, or the fragments will not match.
	Converter *converter.Converter

	// CacheSize is the size of the rule-text to fragment cache.  Zero
	// disables caching.
	CacheSize int
}

// Clipper performs single-rule textual surgery on conversion results.  Its
// methods take a result by value and return a new value; an input result is
// never mutated, so callers only need a single-writer discipline per shared
// result.
type Clipper struct {
	logger *slog.Logger
	conv   *converter.Converter
	cache  convcache.Interface[string, string]
}

// New returns a new clipper.  c must not be nil.
func New(c *Config) (cl *Clipper) {
	var cache convcache.Interface[string, string] = convcache.Empty[string, string]{}
	if c.CacheSize > 0 {
		cache = convcache.NewLRU[string, string](&convcache.LRUConfig{
			Size: c.CacheSize,
		})
	}

	return &Clipper{
		logger: c.Logger,
		conv:   c.Converter,
		cache:  cache,
	}
}

// RuleFragment converts ruleText in isolation and returns the serialized
// text of the single resulting declarative entry, without the enclosing
// array brackets.
func (cl *Clipper) RuleFragment(ctx context.Context, ruleText string) (frag string, err error) {
	defer func() { err = errors.Annotate(err, "fragment of rule %q: %w", ruleText) }()

	if frag, ok := cl.cache.Get(ruleText); ok {
		return frag, nil
	}

	res, err := cl.conv.Convert(ctx, []string{ruleText})
	if err != nil {
		return "", err
	}

	if res.ConvertedCount == 0 {
		return "", ErrNoFragment
	}

	// Strip the enclosing brackets of the one-entry array.
	frag = res.Converted[1 : len(res.Converted)-1]
	cl.cache.Set(ruleText, frag)

	return frag, nil
}

// Add appends the declarative entry of ruleText as a new array element of
// res and returns the new result.  res itself is left unmodified.
func (cl *Clipper) Add(ctx context.Context, res converter.Result, ruleText string) (newRes converter.Result, err error) {
	frag, err := cl.RuleFragment(ctx, ruleText)
	if err != nil {
		return res, errors.Annotate(err, "adding rule: %w")
	}

	newRes = res
	if res.Converted == "" || res.Converted == converter.EmptyConverted {
		newRes.Converted = "[" + frag + "]"
	} else {
		newRes.Converted = strings.TrimSuffix(res.Converted, "]") + "," + frag + "]"
	}

	newRes.ConvertedCount++
	newRes.TotalConvertedCount++

	return newRes, nil
}

// Remove deletes the first occurrence of the declarative entry of ruleText
// from res and returns the new result.  It fails with [ErrRuleNotPresent] if
// the entry is not a literal substring of the serialized text.  Removing the
// last remaining entry yields the canonical empty result.
func (cl *Clipper) Remove(ctx context.Context, res converter.Result, ruleText string) (newRes converter.Result, err error) {
	frag, err := cl.RuleFragment(ctx, ruleText)
	if err != nil {
		return res, errors.Annotate(err, "removing rule: %w")
	}

	idx := strings.Index(res.Converted, frag)
	if idx < 0 {
		return res, errors.Annotate(ErrRuleNotPresent, "removing rule %q: %w", ruleText)
	}

	s := res.Converted[:idx] + res.Converted[idx+len(frag):]
	if s == converter.EmptyConverted {
		return converter.EmptyResult(), nil
	}

	// Removing one element from a well-formed array leaves at most one
	// malformed spot, at the removal site itself, so a single anchored
	// repair suffices.  The same delimiter sequences may occur inside a
	// surviving entry's own strings and must not be touched.
	switch {
	case strings.HasPrefix(s, "[,"):
		s = "[" + s[2:]
	case strings.HasSuffix(s, ",]"):
		s = s[:len(s)-2] + "]"
	case idx > 0 && idx < len(s) && s[idx-1] == ',' && s[idx] == ',':
		s = s[:idx] + s[idx+1:]
	}

	newRes = res
	newRes.Converted = s
	newRes.ConvertedCount--
	newRes.TotalConvertedCount--

	return newRes, nil
}

// Replace removes oldRule from res and adds newRule in its stead.  It is
// atomic: on any failure the original res is returned unchanged.
func (cl *Clipper) Replace(
	ctx context.Context,
	res converter.Result,
	oldRule string,
	newRule string,
) (newRes converter.Result, err error) {
	removed, err := cl.Remove(ctx, res, oldRule)
	if err != nil {
		return res, err
	}

	added, err := cl.Add(ctx, removed, newRule)
	if err != nil {
		return res, err
	}

	return added, nil
}

// AllowlistRuleText synthesizes the canonical allow-rule text unblocking
// domain.
func AllowlistRuleText(domain string) (text string) {
	return "@@||" + domain + "$document"
}

// InvertedAllowlistRuleText synthesizes the canonical allow-rule text
// unblocking everything except domain.
func InvertedAllowlistRuleText(domain string) (text string) {
	return "@@||*$document,domain=~" + domain
}

// AddAllowlistRule adds the canonical allow rule for domain to res.
func (cl *Clipper) AddAllowlistRule(ctx context.Context, res converter.Result, domain string) (newRes converter.Result, err error) {
	return cl.Add(ctx, res, AllowlistRuleText(domain))
}

// RemoveAllowlistRule removes the canonical allow rule for domain from res.
func (cl *Clipper) RemoveAllowlistRule(ctx context.Context, res converter.Result, domain string) (newRes converter.Result, err error) {
	return cl.Remove(ctx, res, AllowlistRuleText(domain))
}

// AddInvertedAllowlistRule adds the canonical inverted allow rule for domain
// to res.
func (cl *Clipper) AddInvertedAllowlistRule(
	ctx context.Context,
	res converter.Result,
	domain string,
) (newRes converter.Result, err error) {
	return cl.Add(ctx, res, InvertedAllowlistRuleText(domain))
}

// RemoveInvertedAllowlistRule removes the canonical inverted allow rule for
// domain from res.
func (cl *Clipper) RemoveInvertedAllowlistRule(
	ctx context.Context,
	res converter.Result,
	domain string,
) (newRes converter.Result, err error) {
	return cl.Remove(ctx, res, InvertedAllowlistRuleText(domain))
}
