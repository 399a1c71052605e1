package converter

import (
	"testing"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/stretchr/testify/assert"
)

func TestURLFilterFromPattern(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		in         string
		want       string
		wantErrMsg string
	}{{
		name: "subdomain_anchor",
		in:   "||ads.example.com^",
		want: `^[htpsw]+:\/\/([a-z0-9-]+\.)?ads\.example\.com[/:&?]?`,
	}, {
		name: "start_and_end_anchor",
		in:   "|https://example.org|",
		want: `^https:\/\/example\.org$`,
	}, {
		name: "wildcard_in_path",
		in:   "example.org/ads/*",
		want: `example\.org\/ads\/.*`,
	}, {
		name: "match_all",
		in:   "*",
		want: ".*",
	}, {
		name: "empty",
		in:   "",
		want: ".*",
	}, {
		name: "regex_passthrough",
		in:   "/[0-9]+banner/",
		want: "[0-9]+banner",
	}, {
		name:       "mid_pipe",
		in:         "a|b",
		wantErrMsg: `pattern "a|b": pipe at index 1`,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f, err := urlFilterFromPattern(tc.in)
			testutil.AssertErrorMsg(t, tc.wantErrMsg, err)
			assert.Equal(t, tc.want, f)
		})
	}
}
