// Package cmd is the Safari converter entry point.  It contains the
// environment and on-disk configuration utilities and the conversion run
// itself.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/osutil"
	"github.com/AdguardTeam/safariconverter/internal/converter"
	"github.com/AdguardTeam/safariconverter/internal/errcoll"
	"github.com/AdguardTeam/safariconverter/internal/version"
)

// Main is the entry point of the converter.
func Main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	envs := errors.Must(parseEnvironment())
	errors.Check(envs.Validate())

	lvl := errors.Must(slogutil.VerbosityToLevel(envs.Verbosity))
	baseLogger := slogutil.New(&slogutil.Config{
		// Don't use [slogutil.NewFormat] here, because the value is validated.
		Format:       slogutil.Format(envs.LogFormat),
		AddTimestamp: bool(envs.LogTimestamp),
		Level:        lvl,
	})

	mainLogger := baseLogger.With(slogutil.KeyPrefix, "main")
	defer slogutil.RecoverAndExit(ctx, mainLogger, osutil.ExitCodeFailure)

	mainLogger.InfoContext(
		ctx,
		"converter starting",
		"version", version.Version(),
		"revision", version.Revision(),
		"branch", version.Branch(),
		"commit_time", version.CommitTime(),
	)

	errColl := errors.Must(envs.buildErrColl())

	// Fail on a bad configuration before any rule is read.
	conf := errors.Must(parseConfig(envs.ConfPath))
	errors.Check(conf.Validate())

	conv := errors.Must(converter.New(conf.toConverter(
		baseLogger.With(slogutil.KeyPrefix, "converter"),
	)))

	lines := errors.Must(readInput(envs))

	res, err := conv.Convert(ctx, lines)
	if err != nil {
		errcoll.Collect(ctx, errColl, mainLogger, "converting rules", err)
	}
	errors.Check(err)

	errors.Check(writeOutput(envs, res))

	if c, ok := errColl.(*errcoll.SentryErrorCollector); ok {
		c.Flush()
	}

	mainLogger.InfoContext(
		ctx,
		"converter done",
		"converted", res.ConvertedCount,
		"total", res.TotalConvertedCount,
		"errors", res.ErrorsCount,
		"over_limit", res.OverLimit,
	)
}
