package clipper_test

import (
	"testing"
	"time"

	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/safariconverter/internal/clipper"
	"github.com/AdguardTeam/safariconverter/internal/converter"
	"github.com/AdguardTeam/safariconverter/internal/safari"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTimeout is the common timeout of the clipper tests.
const testTimeout = 1 * time.Second

// Common rule texts for tests.
const (
	testRuleBlock  = "||ads.example.com^"
	testRuleHide   = "example.com##.banner"
	testRuleHide2  = "example.com##.popup"
	testRuleBroken = `example.com$$div[id="ad"]`
)

// newTestClipper is a helper that returns a clipper and its underlying
// converter with the default configuration.
func newTestClipper(t *testing.T) (cl *clipper.Clipper, conv *converter.Converter) {
	t.Helper()

	conv, err := converter.New(&converter.Config{
		Logger:  slogutil.NewDiscardLogger(),
		Version: safari.DefaultVersion,
	})
	require.NoError(t, err)

	cl = clipper.New(&clipper.Config{
		Logger:    slogutil.NewDiscardLogger(),
		Converter: conv,
		CacheSize: 100,
	})

	return cl, conv
}

func TestClipper_RuleFragment(t *testing.T) {
	t.Parallel()

	cl, conv := newTestClipper(t)
	ctx := testutil.ContextWithTimeout(t, testTimeout)

	frag, err := cl.RuleFragment(ctx, testRuleBlock)
	require.NoError(t, err)

	// The fragment must be byte-identical to the entry a full conversion
	// produces for the same rule.
	single, err := conv.Convert(ctx, []string{testRuleBlock})
	require.NoError(t, err)

	assert.Equal(t, "["+frag+"]", single.Converted)

	fragHide, err := cl.RuleFragment(ctx, testRuleHide)
	require.NoError(t, err)

	both, err := conv.Convert(ctx, []string{testRuleBlock, testRuleHide})
	require.NoError(t, err)

	assert.Equal(t, "["+frag+","+fragHide+"]", both.Converted)

	_, err = cl.RuleFragment(ctx, "! comment")
	testutil.AssertErrorMsg(
		t,
		`fragment of rule "! comment": conversion produced no fragment`,
		err,
	)
}

func TestClipper_Add(t *testing.T) {
	t.Parallel()

	cl, conv := newTestClipper(t)
	ctx := testutil.ContextWithTimeout(t, testTimeout)

	res, err := cl.Add(ctx, converter.EmptyResult(), testRuleBlock)
	require.NoError(t, err)

	assert.Equal(t, 1, res.ConvertedCount)
	assert.Equal(t, 1, res.TotalConvertedCount)

	// Adding to the empty result equals converting the rule directly.
	single, err := conv.Convert(ctx, []string{testRuleBlock})
	require.NoError(t, err)

	assert.Equal(t, single, res)

	res, err = cl.Add(ctx, res, testRuleHide)
	require.NoError(t, err)

	assert.Equal(t, 2, res.ConvertedCount)

	both, err := conv.Convert(ctx, []string{testRuleBlock, testRuleHide})
	require.NoError(t, err)

	assert.Equal(t, both.Converted, res.Converted)
}

func TestClipper_Remove(t *testing.T) {
	t.Parallel()

	cl, conv := newTestClipper(t)
	ctx := testutil.ContextWithTimeout(t, testTimeout)

	orig, err := conv.Convert(ctx, []string{testRuleBlock, testRuleHide})
	require.NoError(t, err)

	// Add followed by remove restores the original, including the counts.
	added, err := cl.Add(ctx, orig, testRuleHide2)
	require.NoError(t, err)

	restored, err := cl.Remove(ctx, added, testRuleHide2)
	require.NoError(t, err)

	assert.Equal(t, orig, restored)

	// Removing a rule that is not present fails and leaves the input as is.
	_, err = cl.Remove(ctx, orig, "||absent.example^")
	testutil.AssertErrorMsg(t, `removing rule "||absent.example^": rule not present`, err)

	// Removing the first element repairs the leading comma.
	withoutFirst, err := cl.Remove(ctx, orig, testRuleBlock)
	require.NoError(t, err)

	assert.Equal(t, 1, withoutFirst.ConvertedCount)

	onlyHide, err := conv.Convert(ctx, []string{testRuleHide})
	require.NoError(t, err)

	assert.Equal(t, onlyHide.Converted, withoutFirst.Converted)

	// Removing the last remaining rule yields the canonical empty result.
	empty, err := cl.Remove(ctx, withoutFirst, testRuleHide)
	require.NoError(t, err)

	assert.Equal(t, converter.EmptyResult(), empty)
	assert.Equal(t, converter.EmptyConverted, empty.Converted)
	assert.Equal(t, 0, empty.ConvertedCount)
}

func TestClipper_Remove_middle(t *testing.T) {
	t.Parallel()

	cl, conv := newTestClipper(t)
	ctx := testutil.ContextWithTimeout(t, testTimeout)

	orig, err := conv.Convert(ctx, []string{testRuleBlock, testRuleHide, testRuleHide2})
	require.NoError(t, err)

	res, err := cl.Remove(ctx, orig, testRuleHide)
	require.NoError(t, err)

	assert.Equal(t, 2, res.ConvertedCount)

	want, err := conv.Convert(ctx, []string{testRuleBlock, testRuleHide2})
	require.NoError(t, err)

	assert.Equal(t, want.Converted, res.Converted)
}

func TestClipper_Remove_selectorDelimiters(t *testing.T) {
	t.Parallel()

	cl, conv := newTestClipper(t)
	ctx := testutil.ContextWithTimeout(t, testTimeout)

	// Selectors containing the same delimiter sequences the removal repair
	// looks for.  The repair must fix the removal site only and leave these
	// selectors intact.
	oddRules := []string{
		"example.com##x[,y",
		"example.com##x,]y",
		"example.com##a,,b",
	}

	for _, odd := range oddRules {
		t.Run(odd, func(t *testing.T) {
			t.Parallel()

			orig, err := conv.Convert(ctx, []string{odd, testRuleHide, testRuleHide2})
			require.NoError(t, err)

			res, err := cl.Remove(ctx, orig, testRuleHide)
			require.NoError(t, err)

			want, err := conv.Convert(ctx, []string{odd, testRuleHide2})
			require.NoError(t, err)

			assert.Equal(t, want.Converted, res.Converted)

			res, err = cl.Remove(ctx, orig, testRuleHide2)
			require.NoError(t, err)

			want, err = conv.Convert(ctx, []string{odd, testRuleHide})
			require.NoError(t, err)

			assert.Equal(t, want.Converted, res.Converted)

			res, err = cl.Remove(ctx, orig, odd)
			require.NoError(t, err)

			want, err = conv.Convert(ctx, []string{testRuleHide, testRuleHide2})
			require.NoError(t, err)

			assert.Equal(t, want.Converted, res.Converted)
		})
	}
}

func TestClipper_Replace(t *testing.T) {
	t.Parallel()

	cl, conv := newTestClipper(t)
	ctx := testutil.ContextWithTimeout(t, testTimeout)

	orig, err := conv.Convert(ctx, []string{testRuleBlock, testRuleHide})
	require.NoError(t, err)

	res, err := cl.Replace(ctx, orig, testRuleHide, testRuleHide2)
	require.NoError(t, err)

	want, err := conv.Convert(ctx, []string{testRuleBlock, testRuleHide2})
	require.NoError(t, err)

	assert.Equal(t, want.Converted, res.Converted)
	assert.Equal(t, orig.ConvertedCount, res.ConvertedCount)

	// A failing add leaves the original untouched.
	res, err = cl.Replace(ctx, orig, testRuleHide, testRuleBroken)
	require.Error(t, err)

	assert.Equal(t, orig, res)
}

func TestClipper_allowlist(t *testing.T) {
	t.Parallel()

	cl, _ := newTestClipper(t)
	ctx := testutil.ContextWithTimeout(t, testTimeout)

	res, err := cl.AddAllowlistRule(ctx, converter.EmptyResult(), "example.org")
	require.NoError(t, err)

	assert.Equal(t, 1, res.ConvertedCount)
	assert.Contains(t, res.Converted, `"if-domain":["*example.org"]`)
	assert.Contains(t, res.Converted, safari.ActionTypeIgnorePreviousRules)

	res, err = cl.RemoveAllowlistRule(ctx, res, "example.org")
	require.NoError(t, err)

	assert.Equal(t, converter.EmptyResult(), res)

	res, err = cl.AddInvertedAllowlistRule(ctx, converter.EmptyResult(), "example.org")
	require.NoError(t, err)

	assert.Contains(t, res.Converted, `"unless-domain":["*example.org"]`)

	res, err = cl.RemoveInvertedAllowlistRule(ctx, res, "example.org")
	require.NoError(t, err)

	assert.Equal(t, converter.EmptyResult(), res)
}
