package tuning

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/hexwave/engine/wave"
)

const validDoc = `
[[wave.layers]]
noise_frequency = 3.0
noise_amplitude = 0.5
speed_modifier = 1.0

[[wave.layers]]
noise_frequency = 5.0
noise_amplitude = 0.25
speed_modifier = 2.0
`

func TestParseParamsReadsBothLayers(t *testing.T) {
	params, err := ParseParams([]byte(validDoc))
	require.NoError(t, err)

	assert.Equal(t, float32(3.0), params.Layers[0].NoiseFrequency)
	assert.Equal(t, float32(0.5), params.Layers[0].NoiseAmplitude)
	assert.Equal(t, float32(5.0), params.Layers[1].NoiseFrequency)
	assert.Equal(t, float32(2.0), params.Layers[1].SpeedModifier)
}

func TestParseParamsPartialDocumentKeepsDefaults(t *testing.T) {
	doc := `
[[wave.layers]]
noise_frequency = 9.0
noise_amplitude = 1.0
speed_modifier = 0.1
`
	params, err := ParseParams([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, float32(9.0), params.Layers[0].NoiseFrequency)
	assert.Equal(t, wave.DefaultParams().Layers[1], params.Layers[1])
}

func TestParseParamsEmptyDocumentIsAllDefaults(t *testing.T) {
	params, err := ParseParams([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, wave.DefaultParams(), params)
}

func TestParseParamsRejectsNonPositiveFrequency(t *testing.T) {
	doc := `
[[wave.layers]]
noise_frequency = 0.0
noise_amplitude = 0.5
speed_modifier = 1.0
`
	_, err := ParseParams([]byte(doc))
	assert.Error(t, err)
}

func TestParseParamsRejectsNegativeAmplitude(t *testing.T) {
	doc := `
[[wave.layers]]
noise_frequency = 1.0
noise_amplitude = -0.5
speed_modifier = 1.0
`
	_, err := ParseParams([]byte(doc))
	assert.Error(t, err)
}

func TestParseParamsRejectsMalformedTOML(t *testing.T) {
	_, err := ParseParams([]byte("[[wave.layers]\nnope"))
	assert.Error(t, err)
}

func TestWatcherAppliesInitialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexwave.toml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	store := wave.NewParamStore(wave.DefaultParams())
	watcher, err := NewWatcher(path, store)
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, watcher.Start())
	assert.Equal(t, float32(3.0), store.Snapshot().Layers[0].NoiseFrequency)
}

func TestWatcherPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexwave.toml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	store := wave.NewParamStore(wave.DefaultParams())
	watcher, err := NewWatcher(path, store)
	require.NoError(t, err)
	defer watcher.Close()
	require.NoError(t, watcher.Start())

	edited := `
[[wave.layers]]
noise_frequency = 7.5
noise_amplitude = 0.1
speed_modifier = 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	assert.Eventually(t, func() bool {
		return store.Snapshot().Layers[0].NoiseFrequency == 7.5
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcherKeepsPreviousParamsOnBadEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexwave.toml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	store := wave.NewParamStore(wave.DefaultParams())
	watcher, err := NewWatcher(path, store)
	require.NoError(t, err)
	defer watcher.Close()
	require.NoError(t, watcher.Start())

	require.NoError(t, os.WriteFile(path, []byte("noise_frequency = }{"), 0o644))

	// Give the watcher a moment to see the bad write; the previous
	// parameters must survive it.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, float32(3.0), store.Snapshot().Layers[0].NoiseFrequency)
}

func TestStartAfterCloseFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexwave.toml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	watcher, err := NewWatcher(path, wave.NewParamStore(wave.DefaultParams()))
	require.NoError(t, err)
	require.NoError(t, watcher.Close())
	assert.Error(t, watcher.Start())
}
