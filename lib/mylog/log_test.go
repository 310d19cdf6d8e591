package mylog

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := standardLogger{componentName: "cart", out: buf}

	logger.Log(context.TODO(), "cart-123", SeverityWarn, "sync failed: %s", "boom")

	got := buf.String()
	assert.Contains(t, got, "WARN")
	assert.Contains(t, got, "cart [cart-123] sync failed: boom")
}

func TestSeverityFilter(t *testing.T) {
	assert.Equal(t, SeverityDebug, parseSeverity("debug"))
	assert.Equal(t, SeverityWarn, parseSeverity(" warning "))
	assert.Equal(t, SeverityError, parseSeverity("ERROR"))
	assert.Equal(t, SeverityInfo, parseSeverity("whatever"))

	assert.True(t, enabled(SeverityError))
	assert.False(t, enabled(SeverityDebug))
}

func TestEntryString(t *testing.T) {
	e := entry{Component: "catalog", Severity: "INFO", Message: "catalog: hello"}
	assert.Equal(t, `{"component":"catalog","severity":"INFO","message":"catalog: hello"}`, e.String())
}
