package config

import (
	"testing"

	"github.com/retroenv/fixasm/internal/diagnostics"
	"github.com/retroenv/fixasm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestCreateSink(t *testing.T) {
	logger := log.NewTestLogger(t)

	tests := []struct {
		name string
		opts options.Program
	}{
		{"no prompt", options.Program{Flags: options.Flags{NoPrompt: true}}},
		{"quiet", options.Program{Flags: options.Flags{Quiet: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := CreateSink(logger, tt.opts)
			multi, ok := sink.(diagnostics.Multi)
			assert.True(t, ok)
			assert.Len(t, multi, 1)

			// must not block
			sink.Observe(diagnostics.Diagnostic{Kind: diagnostics.BadBranch, Line: 1})
		})
	}
}
