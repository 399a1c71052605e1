package cmd

import (
	"fmt"
	"os"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/validate"
	"github.com/AdguardTeam/safariconverter/internal/errcoll"
	"github.com/AdguardTeam/safariconverter/internal/version"
	"github.com/c2h5oh/datasize"
	"github.com/caarlos0/env/v7"
	"github.com/getsentry/sentry-go"
)

// environment represents the configuration that is kept in the environment.
type environment struct {
	ConfPath   string `env:"CONFIG_PATH" envDefault:"./safariconverter.yaml"`
	InputPath  string `env:"INPUT_PATH"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
	OutputPath string `env:"OUTPUT_PATH"`
	SentryDSN  string `env:"SENTRY_DSN"`

	MaxInputSize datasize.ByteSize `env:"MAX_INPUT_SIZE" envDefault:"256MB"`

	Verbosity uint8 `env:"VERBOSE" envDefault:"0"`

	LogTimestamp strictBool `env:"LOG_TIMESTAMP" envDefault:"1"`
}

// parseEnvironment reads the configuration.
func parseEnvironment() (envs *environment, err error) {
	envs = &environment{}
	err = env.Parse(envs)
	if err != nil {
		return nil, fmt.Errorf("parsing environments: %w", err)
	}

	return envs, nil
}

// type check
var _ validate.Interface = (*environment)(nil)

// Validate implements the [validate.Interface] interface for *environment.
func (envs *environment) Validate() (err error) {
	var errs []error

	_, err = slogutil.NewFormat(envs.LogFormat)
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_FORMAT: %w", err))
	}

	_, err = slogutil.VerbosityToLevel(envs.Verbosity)
	if err != nil {
		errs = append(errs, fmt.Errorf("VERBOSE: %w", err))
	}

	err = validate.Positive("MAX_INPUT_SIZE", envs.MaxInputSize.Bytes())
	if err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// buildErrColl builds the error collector: Sentry when a DSN is set, the
// stderr writer otherwise.
func (envs *environment) buildErrColl() (errColl errcoll.Interface, err error) {
	if envs.SentryDSN == "" {
		return errcoll.NewWriterErrorCollector(os.Stderr), nil
	}

	cli, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              envs.SentryDSN,
		AttachStacktrace: true,
		Release:          version.Version(),
	})
	if err != nil {
		return nil, fmt.Errorf("sentry client: %w", err)
	}

	return errcoll.NewSentryErrorCollector(cli), nil
}

// strictBool is a type for booleans that are parsed from the environment
// strictly.
type strictBool bool

// UnmarshalText implements the encoding.TextUnmarshaler interface for
// *strictBool.
func (sb *strictBool) UnmarshalText(b []byte) (err error) {
	if len(b) == 1 {
		switch b[0] {
		case '0':
			*sb = false

			return nil
		case '1':
			*sb = true

			return nil
		default:
			// Go on and return an error.
		}
	}

	return fmt.Errorf("invalid value %q, supported: %q, %q", b, "0", "1")
}
