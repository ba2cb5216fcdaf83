package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, int(slog.LevelInfo))

	l.Debug("hidden")
	l.Info("Store: state rehydrated", "cart_items", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "Store: state rehydrated")
	assert.Contains(t, out, "cart_items=2")
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, 0).With("component", "checkout")

	l.Info("order placed")
	assert.Contains(t, buf.String(), "component=checkout")
}
