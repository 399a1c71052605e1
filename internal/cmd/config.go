package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/validate"
	"github.com/AdguardTeam/safariconverter/internal/converter"
	"github.com/AdguardTeam/safariconverter/internal/safari"
	"gopkg.in/yaml.v2"
)

// configuration represents the on-disk configuration of the converter.
type configuration struct {
	// SafariVersion is the target Safari major version.
	SafariVersion int `yaml:"safari_version"`

	// AdvancedBlockingFormat is the output format of the advanced-blocking
	// stream.
	AdvancedBlockingFormat string `yaml:"advanced_blocking_format"`

	// RuleLimit overrides the version's declarative entry limit if positive.
	RuleLimit int `yaml:"rule_limit"`

	// AdvancedBlocking enables the secondary output stream for rules the
	// declarative model cannot express.
	AdvancedBlocking bool `yaml:"advanced_blocking"`

	// Optimize enables the merging and dropping of redundant entries.
	Optimize bool `yaml:"optimize"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() (conf *configuration) {
	return &configuration{
		SafariVersion:          int(safari.DefaultVersion),
		AdvancedBlockingFormat: string(safari.FormatJSON),
	}
}

// parseConfig reads the configuration file.  A missing file is not an error:
// the defaults are used.
func parseConfig(confPath string) (conf *configuration, err error) {
	defer func() { err = errors.Annotate(err, "config %q: %w", confPath) }()

	data, err := os.ReadFile(confPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}

		return nil, err
	}

	conf = defaultConfig()
	err = yaml.UnmarshalStrict(data, conf)
	if err != nil {
		return nil, err
	}

	if conf.SafariVersion == 0 {
		conf.SafariVersion = int(safari.DefaultVersion)
	}

	if conf.AdvancedBlockingFormat == "" {
		conf.AdvancedBlockingFormat = string(safari.FormatJSON)
	}

	return conf, nil
}

// type check
var _ validate.Interface = (*configuration)(nil)

// Validate implements the [validate.Interface] interface for *configuration.
func (c *configuration) Validate() (err error) {
	if c == nil {
		return errors.ErrNoValue
	}

	var errs []error

	_, err = safari.NewVersion(c.SafariVersion)
	if err != nil {
		errs = append(errs, fmt.Errorf("safari_version: %w", err))
	}

	_, err = safari.NewAdvancedFormat(c.AdvancedBlockingFormat)
	if err != nil {
		errs = append(errs, fmt.Errorf("advanced_blocking_format: %w", err))
	}

	err = validate.NotNegative("rule_limit", c.RuleLimit)
	if err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// toConverter converts c into the converter configuration.  c must be valid.
func (c *configuration) toConverter(logger *slog.Logger) (conv *converter.Config) {
	return &converter.Config{
		Logger:           logger,
		Version:          safari.Version(c.SafariVersion),
		AdvancedFormat:   safari.AdvancedFormat(c.AdvancedBlockingFormat),
		RuleLimit:        c.RuleLimit,
		AdvancedBlocking: c.AdvancedBlocking,
		Optimize:         c.Optimize,
	}
}
