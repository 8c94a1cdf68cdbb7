package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	logcontext "github.com/smartuae/agent/context"
)

func TestFormatReportsCallSite(t *testing.T) {
	var buf bytes.Buffer
	Init()
	orig := Logger.Out
	SetOutput(&buf)
	defer SetOutput(orig)

	ctx := logcontext.WithRequestID(context.Background(), "rid-1")
	Infof(ctx, "turn started")

	out := buf.String()
	// the caller field must name this file, not the wrapper
	assert.Contains(t, out, "[log_test.go:")
	assert.NotContains(t, out, "[log.go:")
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "turn started")
	assert.Contains(t, out, "[req:rid-1]")
}

func TestFormatWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init()
	orig := Logger.Out
	SetOutput(&buf)
	defer SetOutput(orig)

	Warnf(context.Background(), "no correlation id")

	out := buf.String()
	assert.Contains(t, out, "[WARNING]")
	assert.Contains(t, out, "no correlation id")
	assert.NotContains(t, out, "[req:")
}
