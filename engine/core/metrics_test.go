package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsAverageFrameTime(t *testing.T) {
	require.NoError(t, MetricsInitialize())

	// 60 fps frames, more than the averaging window.
	for i := 0; i < 64; i++ {
		MetricsUpdate(1.0 / 60.0)
	}

	fps, frameTime := MetricsFrame()
	assert.InDelta(t, 60.0, fps, 1.0)
	assert.InDelta(t, 1000.0/60.0, frameTime, 0.5)
	assert.Equal(t, fps, MetricsFPS())
	assert.Equal(t, frameTime, MetricsFrameTime())
}
