package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunContextRoundTrip(t *testing.T) {
	run := &Run{Interactive: true, LogFile: "/tmp/lawlens.log", Ephemeral: true}
	ctx := IntoContext(context.Background(), run)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, run, got)
	assert.Same(t, run, RunFrom(ctx))
}

func TestFromContextMissing(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{name: "background", ctx: context.Background()},
		{name: "nil run", ctx: IntoContext(context.Background(), nil)},
		{name: "nil context", ctx: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromContext(tt.ctx)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestRunFromDefaults(t *testing.T) {
	run := RunFrom(context.Background())
	require.NotNil(t, run)
	assert.Equal(t, "text", run.OutputFormat)
	assert.False(t, run.Interactive)
	assert.False(t, run.Ephemeral)
}

func TestNestedContextKeepsInnermostRun(t *testing.T) {
	outer := &Run{OutputFormat: "json"}
	inner := &Run{OutputFormat: "yaml"}
	ctx := IntoContext(IntoContext(context.Background(), outer), inner)
	assert.Equal(t, "yaml", RunFrom(ctx).OutputFormat)
}
