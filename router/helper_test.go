package router_test

import (
	"bytes"
	"context"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heetch/relay/handler"
	"github.com/heetch/relay/message"
)

// testHandler implements the handler.Handler interface for testing
// purposes. It records its calls and replies with whatever it was
// told to, regardless of its own state, so tests can tell whether the
// router itself refused to call it.
type testHandler struct {
	handler.Lifecycle
	ID        int
	Calls     []string
	Replies   []message.Message
	Err       error
	Unhandled bool
}

func (h *testHandler) Process(ctx context.Context, payload string) ([]message.Message, bool, error) {
	h.Calls = append(h.Calls, payload)
	if h.Err != nil {
		return nil, false, h.Err
	}
	if h.Unhandled {
		return nil, false, nil
	}
	return h.Replies, true, nil
}

// TestLogger grabs logs in a buffer so we can later make assertions about them.
type TestLogger struct {
	buf    bytes.Buffer
	Logger *log.Logger
	t      *testing.T
}

// NewTestLogger constructs a test logger we can make assertions against
func NewTestLogger(t *testing.T) *TestLogger {
	tl := &TestLogger{
		t: t,
	}
	tl.Logger = log.New(&tl.buf, "[Relay] ", log.LstdFlags)
	return tl
}

const (
	logRegexPrefix = "\\[Relay\\] [0-9]*/[0-1][0-9]/[0-3][0-9] [0-2][0-9]:[0-5][0-9]:[0-5][0-9] "
)

// LogLineMatches reads the next log line and checks it against match.
func (tl *TestLogger) LogLineMatches(match string) {
	content, err := tl.buf.ReadString('\n')
	require.NoError(tl.t, err)
	require.Regexp(tl.t, regexp.MustCompile(logRegexPrefix+match), content)
}

// Empty checks there is nothing left to read.
func (tl *TestLogger) Empty() {
	require.Zero(tl.t, tl.buf.Len(), "unexpected log output: %s", tl.buf.String())
}
