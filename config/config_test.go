package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/viewfinder-go/domain/geometry"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.json"), nil)
	require.NoError(t, err)
	d := DefaultConfig()
	assert.Equal(t, d.WindowWidth, cfg.WindowWidth)
	assert.Equal(t, d.WindowHeight, cfg.WindowHeight)
	assert.Equal(t, d.AspectRatios, cfg.AspectRatios)
	assert.Equal(t, AccessAsk, cfg.CameraAccess)
	assert.Equal(t, []geometry.AspectRatio{{X: 9, Y: 16}, {X: 3, Y: 4}}, cfg.Ratios())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.WindowWidth = 412
	cfg.AspectRatios = []string{"3:4"}
	cfg.CameraAccess = AccessGranted
	cfg.MockSeed = 42
	require.NoError(t, cfg.Save(path))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 412, got.WindowWidth)
	assert.Equal(t, []string{"3:4"}, got.AspectRatios)
	assert.Equal(t, AccessGranted, got.CameraAccess)
	assert.Equal(t, uint64(42), got.MockSeed)
}

func TestSave_RejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.AspectRatios = []string{"wide"}
	err := cfg.Save(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: not saved")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid config must not be written")
}

func TestSave_ReportsCreateError(t *testing.T) {
	dir := t.TempDir()
	err := DefaultConfig().Save(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: create")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"window_width": 500}`), 0o644))
	t.Setenv("VIEWFINDER_WINDOW_WIDTH", "640")
	t.Setenv("VIEWFINDER_DEBUG", "true")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.WindowWidth)
	assert.True(t, cfg.Debug)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	t.Setenv("VIEWFINDER_WINDOW_HEIGHT", "700")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--height=900", "--aspect=1:1,3:4", "--camera-access=denied"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.WindowHeight)
	assert.Equal(t, []string{"1:1", "3:4"}, cfg.AspectRatios)
	assert.Equal(t, AccessDenied, cfg.CameraAccess)
}

func TestLoad_UnsetFlagsKeepEnv(t *testing.T) {
	t.Setenv("VIEWFINDER_WINDOW_HEIGHT", "700")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, 700, cfg.WindowHeight)
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))
	cfg, err := Load(path, nil)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig().WindowWidth, cfg.WindowWidth)
}

func TestValidate_Clamps(t *testing.T) {
	cfg := &Config{
		WindowWidth:  10,
		JPEGQuality:  500,
		RecordFPS:    -1,
		MockLatitude: 200,
		CameraAccess: " GRANTED ",
		AspectRatios: []string{"bogus", "4:3"},
	}
	err := cfg.Validate()
	assert.Error(t, err, "bogus ratio is reported")
	d := DefaultConfig()
	assert.Equal(t, d.WindowWidth, cfg.WindowWidth)
	assert.Equal(t, d.JPEGQuality, cfg.JPEGQuality)
	assert.Equal(t, d.RecordFPS, cfg.RecordFPS)
	assert.Equal(t, d.MockLatitude, cfg.MockLatitude)
	assert.Equal(t, AccessGranted, cfg.CameraAccess)
	assert.Equal(t, []string{"4:3"}, cfg.AspectRatios)
	assert.NotEmpty(t, cfg.OutputDir)
}

func TestValidate_EmptyRatiosFallBackToDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AspectRatios = nil
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultConfig().AspectRatios, cfg.AspectRatios)
}
