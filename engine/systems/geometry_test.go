package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/hexwave/engine/math"
	"github.com/spaghettifunk/hexwave/engine/renderer"
	"github.com/spaghettifunk/hexwave/engine/renderer/metadata"
)

func quadConfig(name string) *metadata.GeometryConfig {
	return &metadata.GeometryConfig{
		VertexCount: 4,
		Vertices: []math.Vertex3D{
			{Position: math.NewVec3(0, 0, 0)},
			{Position: math.NewVec3(1, 0, 0)},
			{Position: math.NewVec3(1, 1, 0)},
			{Position: math.NewVec3(0, 1, 0)},
		},
		IndexCount: 6,
		Indices:    []uint32{0, 1, 2, 0, 2, 3},
		Name:       name,
	}
}

func TestGeometrySystemRejectsZeroCapacity(t *testing.T) {
	r := renderer.New(&fakeBackend{})
	_, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 0}, r)
	assert.Error(t, err)
}

func TestAcquireAssignsSlotAndUploads(t *testing.T) {
	backend := &fakeBackend{}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 4}, renderer.New(backend))
	require.NoError(t, err)

	geometry, err := gs.AcquireFromConfig(quadConfig("surface"), true)
	require.NoError(t, err)

	assert.Equal(t, "surface", geometry.Name)
	assert.NotEqual(t, metadata.InvalidID, geometry.ID)
	assert.Equal(t, uint16(0), geometry.Generation)
	assert.Equal(t, 1, backend.created)
}

func TestAcquireGeneratesNameForDefaultConfig(t *testing.T) {
	backend := &fakeBackend{}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 4}, renderer.New(backend))
	require.NoError(t, err)

	geometry, err := gs.AcquireFromConfig(quadConfig(metadata.DefaultGeometryName), true)
	require.NoError(t, err)

	assert.NotEqual(t, metadata.DefaultGeometryName, geometry.Name)
	assert.Contains(t, geometry.Name, "geometry-")
}

func TestAcquireFailsWhenFull(t *testing.T) {
	backend := &fakeBackend{}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 1}, renderer.New(backend))
	require.NoError(t, err)

	_, err = gs.AcquireFromConfig(quadConfig("first"), true)
	require.NoError(t, err)

	_, err = gs.AcquireFromConfig(quadConfig("second"), true)
	assert.Error(t, err)
}

func TestAcquireFailsWhenUploadFails(t *testing.T) {
	backend := &fakeBackend{failCreate: true}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 2}, renderer.New(backend))
	require.NoError(t, err)

	_, err = gs.AcquireFromConfig(quadConfig("doomed"), true)
	assert.Error(t, err)

	// The slot is handed back after the failed upload.
	backend.failCreate = false
	_, err = gs.AcquireFromConfig(quadConfig("retry"), true)
	assert.NoError(t, err)
}

func TestReleaseFreesAutoReleaseSlot(t *testing.T) {
	backend := &fakeBackend{}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 1}, renderer.New(backend))
	require.NoError(t, err)

	geometry, err := gs.AcquireFromConfig(quadConfig("transient"), true)
	require.NoError(t, err)

	gs.Release(geometry)
	assert.Equal(t, 1, backend.destroyed)

	// The slot can be acquired again.
	_, err = gs.AcquireFromConfig(quadConfig("reuse"), true)
	assert.NoError(t, err)
}

func TestConfigDisposeDropsBuffers(t *testing.T) {
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 1}, renderer.New(&fakeBackend{}))
	require.NoError(t, err)

	config := quadConfig("surface")
	gs.ConfigDispose(config)
	assert.Nil(t, config.Vertices)
	assert.Nil(t, config.Indices)
}
