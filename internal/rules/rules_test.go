package rules_test

import (
	"testing"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/safariconverter/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	r, err := rules.Classify("example.com##.banner")
	require.NoError(t, err)

	cr, ok := r.(*rules.CosmeticRule)
	require.True(t, ok)

	assert.Equal(t, ".banner", cr.Content())

	r, err = rules.Classify("||ads.example.com^")
	require.NoError(t, err)

	nr, ok := r.(*rules.NetworkRule)
	require.True(t, ok)

	assert.Equal(t, "||ads.example.com^", nr.Pattern())

	_, err = rules.Classify("")
	testutil.AssertErrorMsg(t, `syntax error in rule "": empty rule`, err)
}

func TestIsComment(t *testing.T) {
	t.Parallel()

	assert.True(t, rules.IsComment("! AdGuard Base filter"))
	assert.False(t, rules.IsComment("##.ad"))
	assert.False(t, rules.IsComment("||example.com^"))
}
