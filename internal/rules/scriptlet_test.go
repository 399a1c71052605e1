package rules_test

import (
	"testing"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/safariconverter/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScriptlet(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		in         string
		wantName   string
		wantErrMsg string
		wantArgs   []string
	}{{
		name:     "no_args",
		in:       "//scriptlet('noeval')",
		wantName: "noeval",
	}, {
		name:     "args",
		in:       "//scriptlet('set-constant', 'ads', 'false')",
		wantName: "set-constant",
		wantArgs: []string{"ads", "false"},
	}, {
		name:     "double_quotes",
		in:       `//scriptlet("noeval")`,
		wantName: "noeval",
	}, {
		name:     "escaped_quote",
		in:       `//scriptlet('log', 'it\'s')`,
		wantName: "log",
		wantArgs: []string{"it's"},
	}, {
		name:       "no_name",
		in:         "//scriptlet()",
		wantErrMsg: `scriptlet call "//scriptlet()" has no name`,
	}, {
		name:       "unbalanced",
		in:         "//scriptlet('x)",
		wantErrMsg: `scriptlet call "//scriptlet('x)": unbalanced quote '\''`,
	}, {
		name:       "unquoted",
		in:         "//scriptlet(x)",
		wantErrMsg: `scriptlet call "//scriptlet(x)": unquoted argument at index 0`,
	}, {
		name:       "not_closed",
		in:         "//scriptlet('x'",
		wantErrMsg: `scriptlet call "//scriptlet('x'" is not closed`,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, err := rules.ParseScriptlet(tc.in)
			testutil.AssertErrorMsg(t, tc.wantErrMsg, err)
			if tc.wantErrMsg != "" {
				return
			}

			require.NotNil(t, s)

			assert.Equal(t, tc.wantName, s.Name)
			assert.Equal(t, tc.wantArgs, s.Args)
		})
	}
}
