// Package converter contains the conversion pipeline that turns classified
// filtering rules into the declarative content-blocker output.
package converter

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/safariconverter/internal/rules"
	"github.com/AdguardTeam/safariconverter/internal/safari"
	"golang.org/x/sync/errgroup"
)

// Config is the conversion pipeline configuration.
type Config struct {
	// Logger is used to log the operation of the converter.  It must not be
	// nil.
	Logger *slog.Logger

	// Version is the target Safari version.  It must be a recognized value.
	Version safari.Version

	// AdvancedFormat is the output format of the advanced-blocking stream.
	// It must be a recognized value if AdvancedBlocking is true.
	AdvancedFormat safari.AdvancedFormat

	// RuleLimit overrides the version's declarative entry limit if positive.
	RuleLimit int

	// AdvancedBlocking routes script, scriptlet, CSS-injection, and
	// extended-CSS rules to the secondary output stream.  When it is false,
	// such rules are unsupported and counted as errors.
	AdvancedBlocking bool

	// Optimize enables the best-effort merging and dropping of provably
	// redundant entries before serialization.
	Optimize bool
}

// Converter is the conversion pipeline.  Use [New] to construct it.
type Converter struct {
	logger    *slog.Logger
	advFormat safari.AdvancedFormat
	ruleLimit int
	advanced  bool
	optimize  bool
}

// New returns a new converter.  c must not be nil.  A configuration error is
// reported before any rule is processed.
func New(c *Config) (conv *Converter, err error) {
	defer func() { err = errors.Annotate(err, "converter config: %w") }()

	if c.Logger == nil {
		return nil, errors.Error("no logger")
	}

	_, err = safari.NewVersion(int(c.Version))
	if err != nil {
		return nil, err
	}

	advFormat := c.AdvancedFormat
	if c.AdvancedBlocking {
		advFormat, err = safari.NewAdvancedFormat(string(c.AdvancedFormat))
		if err != nil {
			return nil, err
		}
	}

	limit := c.RuleLimit
	if limit <= 0 {
		limit = c.Version.RuleLimit()
	}

	return &Converter{
		logger:    c.Logger,
		advFormat: advFormat,
		ruleLimit: limit,
		advanced:  c.AdvancedBlocking,
		optimize:  c.Optimize,
	}, nil
}

// lineResult is the classification outcome of a single input line.
type lineResult struct {
	rule rules.Rule
	err  error
	skip bool
}

// Convert runs the pipeline over the ordered input lines and returns the
// conversion result.  A line that fails classification is counted and
// skipped, never aborting the run.  The result is deterministic for
// identical input: entries keep the input order, except that entries of
// important rules are placed after the rest.
func (c *Converter) Convert(ctx context.Context, lines []string) (res Result, err error) {
	classified := c.classify(ctx, lines)

	res = EmptyResult()

	var primary, important, advanced []*safari.Entry
	var advSources []string
	for _, lr := range classified {
		if lr.skip {
			continue
		}

		if lr.err != nil {
			res.ErrorsCount++
			c.logger.DebugContext(ctx, "skipping rule", slogutil.KeyError, lr.err)

			continue
		}

		ent, adv, compErr := c.compile(lr.rule)
		if compErr != nil {
			res.ErrorsCount++
			c.logger.DebugContext(ctx, "skipping rule", slogutil.KeyError, compErr)

			continue
		}

		if adv {
			if !c.advanced {
				res.ErrorsCount++

				continue
			}

			advanced = append(advanced, ent)
			advSources = append(advSources, lr.rule.Text())

			continue
		}

		if nr, ok := lr.rule.(*rules.NetworkRule); ok && nr.IsImportant() {
			important = append(important, ent)

			continue
		}

		primary = append(primary, ent)
	}

	// Entries of important rules go after the rest, in their own input
	// order, so that they override preceding exception entries.
	primary = append(primary, important...)

	res.TotalConvertedCount = len(primary)

	if c.optimize {
		primary = c.optimizeEntries(primary)
	}

	if len(primary) > c.ruleLimit {
		primary = primary[:c.ruleLimit]
		res.OverLimit = true
	}

	res.Converted, err = serializeEntries(primary)
	if err != nil {
		return EmptyResult(), errors.Annotate(err, "serializing entries: %w")
	}

	res.ConvertedCount = len(primary)

	res.Advanced, err = c.serializeAdvanced(advanced, advSources)
	if err != nil {
		return EmptyResult(), errors.Annotate(err, "serializing advanced entries: %w")
	}

	c.logger.InfoContext(
		ctx,
		"conversion done",
		"converted", res.ConvertedCount,
		"total", res.TotalConvertedCount,
		"advanced", len(advanced),
		"errors", res.ErrorsCount,
		"over_limit", res.OverLimit,
	)

	return res, nil
}

// classify fans the per-line classification out over a bounded group and
// joins the results in input order.  Lines share no state, so only the
// index-aligned slice is written to.
func (c *Converter) classify(ctx context.Context, lines []string) (out []lineResult) {
	out = make([]lineResult, len(lines))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, line := range lines {
		g.Go(func() (err error) {
			line = strings.TrimSpace(line)
			if line == "" || rules.IsComment(line) {
				out[i].skip = true

				return nil
			}

			out[i].rule, out[i].err = rules.Classify(line)

			return nil
		})
	}

	// Per-line failures are recorded in out, so the group itself never
	// returns an error.
	_ = g.Wait()

	return out
}

// serializeAdvanced serializes the advanced-blocking stream in the configured
// format.
func (c *Converter) serializeAdvanced(
	entries []*safari.Entry,
	sources []string,
) (s string, err error) {
	if !c.advanced || len(entries) == 0 {
		return "", nil
	}

	switch c.advFormat {
	case safari.FormatJSON:
		return serializeEntries(entries)
	default:
		return strings.Join(sources, "\n"), nil
	}
}
