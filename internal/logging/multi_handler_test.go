package logging

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	records int
	fail    bool
}

func (r *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (r *recordingHandler) Handle(context.Context, slog.Record) error {
	r.records++
	if r.fail {
		return fmt.Errorf("sink unavailable")
	}
	return nil
}

func (r *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recordingHandler) WithGroup(string) slog.Handler      { return r }

func TestMultiHandlerDeliversToAllSinks(t *testing.T) {
	first := &recordingHandler{fail: true}
	second := &recordingHandler{}
	m := NewMultiHandler(first, second)

	record := slog.NewRecord(time.Now(), slog.LevelError, "pool exhausted", 0)
	err := m.Handle(context.Background(), record)

	// The failing sink's error surfaces, but the healthy sink still ran.
	require.Error(t, err)
	assert.Equal(t, 1, first.records)
	assert.Equal(t, 1, second.records)
}
