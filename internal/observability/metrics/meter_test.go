package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstruments_Disabled(t *testing.T) {
	m, err := New(context.Background(), Config{Enabled: false}, "rentrack")
	require.NoError(t, err)
	require.NotNil(t, m.GetMeter())

	inst, err := NewInstruments(m)
	require.NoError(t, err)
	assert.NotNil(t, inst.PaymentsRecorded)
	assert.NotNil(t, inst.StatusComputed)
	assert.NotNil(t, inst.RequestDuration)

	// Recording on the global noop provider must not panic.
	inst.PaymentsRecorded.Add(context.Background(), 1)
	inst.RequestDuration.Record(context.Background(), 12.5)
}
