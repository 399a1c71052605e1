package rules_test

import (
	"testing"

	"github.com/AdguardTeam/safariconverter/internal/rules"
	"github.com/stretchr/testify/assert"
)

func TestFindCosmeticMarker(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		in         string
		wantMarker rules.CosmeticMarker
		wantIdx    int
	}{{
		name:       "domain_prefix",
		in:         "example.com##.ad",
		wantMarker: rules.MarkerElementHiding,
		wantIdx:    11,
	}, {
		name:       "no_prefix",
		in:         "##.ad",
		wantMarker: rules.MarkerElementHiding,
		wantIdx:    0,
	}, {
		name:       "exception",
		in:         "example.com#@#.ad",
		wantMarker: rules.MarkerElementHidingException,
		wantIdx:    11,
	}, {
		name:       "ext_css",
		in:         "example.com#?#.ad:has(img)",
		wantMarker: rules.MarkerElementHidingExtCSS,
		wantIdx:    11,
	}, {
		name:       "css_inject",
		in:         "example.com#$#.ad { display: none!important; }",
		wantMarker: rules.MarkerCSS,
		wantIdx:    11,
	}, {
		name:       "css_inject_ext_exception",
		in:         "example.com#@$?#.ad { display: none!important; }",
		wantMarker: rules.MarkerCSSExtCSSException,
		wantIdx:    11,
	}, {
		name:       "script",
		in:         "example.com#%#window.x = 1;",
		wantMarker: rules.MarkerJS,
		wantIdx:    11,
	}, {
		name:       "html",
		in:         "example.com$$div[id=\"ad\"]",
		wantMarker: rules.MarkerHTML,
		wantIdx:    11,
	}, {
		name:       "earliest_wins",
		in:         "a##b#@#c",
		wantMarker: rules.MarkerElementHiding,
		wantIdx:    1,
	}, {
		name:       "network",
		in:         "||ads.example.com^",
		wantMarker: "",
		wantIdx:    -1,
	}, {
		name:       "empty",
		in:         "",
		wantMarker: "",
		wantIdx:    -1,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			idx, m := rules.FindCosmeticMarker(tc.in)
			assert.Equal(t, tc.wantIdx, idx)
			assert.Equal(t, tc.wantMarker, m)
		})
	}
}
