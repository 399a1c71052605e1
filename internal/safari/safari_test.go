package safari_test

import (
	"testing"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/safariconverter/internal/safari"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersion(t *testing.T) {
	t.Parallel()

	v, err := safari.NewVersion(13)
	require.NoError(t, err)

	assert.Equal(t, safari.Version13, v)
	assert.Equal(t, safari.RuleLimit, v.RuleLimit())

	v, err = safari.NewVersion(15)
	require.NoError(t, err)

	assert.Equal(t, safari.ExtendedRuleLimit, v.RuleLimit())

	_, err = safari.NewVersion(12)
	testutil.AssertErrorMsg(t, "unrecognized safari version 12", err)
}

func TestNewAdvancedFormat(t *testing.T) {
	t.Parallel()

	f, err := safari.NewAdvancedFormat("json")
	require.NoError(t, err)

	assert.Equal(t, safari.FormatJSON, f)

	_, err = safari.NewAdvancedFormat("xml")
	testutil.AssertErrorMsg(t, `unrecognized advanced-blocking format "xml"`, err)
}

func TestEntry_serialization(t *testing.T) {
	t.Parallel()

	e := &safari.Entry{
		Trigger: safari.Trigger{
			URLFilter: safari.URLFilterAny,
			IfDomain:  []string{"*example.org"},
		},
		Action: safari.Action{
			Type: safari.ActionTypeIgnorePreviousRules,
		},
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	assert.Equal(
		t,
		`{"trigger":{"url-filter":".*","if-domain":["*example.org"]},`+
			`"action":{"type":"ignore-previous-rules"}}`,
		string(data),
	)
}
