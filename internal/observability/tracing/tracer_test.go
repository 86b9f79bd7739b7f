package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Disabled(t *testing.T) {
	tr, err := New(context.Background(), Config{Enabled: false, ServiceName: "rentrack"})
	require.NoError(t, err)

	ctx, span := tr.Start(context.Background(), "dashboard.Summary")
	span.End()

	assert.NotNil(t, ctx)
	assert.NotNil(t, tr.GetTracer())
	assert.NoError(t, tr.Shutdown(context.Background()))
}
