package errcoll_test

import (
	"strings"
	"testing"
	"time"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/safariconverter/internal/errcoll"
	"github.com/stretchr/testify/assert"
)

// testTimeout is the common timeout of the errcoll tests.
const testTimeout = 1 * time.Second

func TestWriterErrorCollector(t *testing.T) {
	t.Parallel()

	b := &strings.Builder{}
	c := errcoll.NewWriterErrorCollector(b)

	ctx := testutil.ContextWithTimeout(t, testTimeout)
	c.Collect(ctx, errors.Error("test error"))

	got := b.String()
	assert.Contains(t, got, "caught error: test error")
	assert.True(t, strings.HasSuffix(got, "\n"))
}
