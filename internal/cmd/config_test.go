package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/safariconverter/internal/safari"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	confPath := filepath.Join(t.TempDir(), "safariconverter.yaml")
	data := []byte("safari_version: 15\nadvanced_blocking: true\noptimize: true\n")
	require.NoError(t, os.WriteFile(confPath, data, 0o644))

	conf, err := parseConfig(confPath)
	require.NoError(t, err)
	require.NoError(t, conf.Validate())

	assert.Equal(t, 15, conf.SafariVersion)
	assert.True(t, conf.AdvancedBlocking)
	assert.True(t, conf.Optimize)

	// Unset fields get their defaults.
	assert.Equal(t, string(safari.FormatJSON), conf.AdvancedBlockingFormat)
	assert.Equal(t, 0, conf.RuleLimit)
}

func TestParseConfig_missing(t *testing.T) {
	t.Parallel()

	conf, err := parseConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), conf)
	assert.NoError(t, conf.Validate())
}

func TestParseConfig_bad(t *testing.T) {
	t.Parallel()

	confPath := filepath.Join(t.TempDir(), "safariconverter.yaml")
	require.NoError(t, os.WriteFile(confPath, []byte("unknown_field: 1\n"), 0o644))

	_, err := parseConfig(confPath)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "config ")
}

func TestConfiguration_Validate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		conf       *configuration
		name       string
		wantErrMsg string
	}{{
		conf:       defaultConfig(),
		name:       "default",
		wantErrMsg: "",
	}, {
		conf:       nil,
		name:       "nil",
		wantErrMsg: "no value",
	}, {
		conf: &configuration{
			SafariVersion:          12,
			AdvancedBlockingFormat: string(safari.FormatJSON),
		},
		name:       "bad_version",
		wantErrMsg: "safari_version: unrecognized safari version 12",
	}, {
		conf: &configuration{
			SafariVersion:          int(safari.DefaultVersion),
			AdvancedBlockingFormat: "xml",
		},
		name:       "bad_format",
		wantErrMsg: `advanced_blocking_format: unrecognized advanced-blocking format "xml"`,
	}, {
		conf: &configuration{
			SafariVersion:          int(safari.DefaultVersion),
			AdvancedBlockingFormat: string(safari.FormatJSON),
			RuleLimit:              -1,
		},
		name:       "bad_limit",
		wantErrMsg: "rule_limit: out of range: must be no less than 0, got -1",
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			testutil.AssertErrorMsg(t, tc.wantErrMsg, tc.conf.Validate())
		})
	}
}
