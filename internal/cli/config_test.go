package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("", nil)
	require.NoError(t, err)

	require.Equal(t, "airports.csv", cfg.Airports)
	require.Equal(t, "routes.csv", cfg.Routes)
	require.Zero(t, cfg.Workers)
	require.Equal(t, 1000.0, cfg.Analyze.MinDistanceKm)
	require.Zero(t, cfg.Analyze.MaxDistanceKm)
	require.Equal(t, 3, cfg.Analyze.MaxStops)
	require.Equal(t, "table", cfg.Analyze.Format)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flightgrid.yaml")
	body := "airports: data/br_airports.csv\nanalyze:\n  min_distance_km: 500\n  format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := loadConfig(path, nil)
	require.NoError(t, err)

	require.Equal(t, "data/br_airports.csv", cfg.Airports)
	require.Equal(t, 500.0, cfg.Analyze.MinDistanceKm)
	require.Equal(t, "json", cfg.Analyze.Format)
	// Untouched keys keep their defaults.
	require.Equal(t, "routes.csv", cfg.Routes)
	require.Equal(t, 3, cfg.Analyze.MaxStops)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flightgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0o644))

	t.Setenv("FLIGHTGRID_WORKERS", "8")
	t.Setenv("FLIGHTGRID_ANALYZE_MAX_STOPS", "1")

	cfg, err := loadConfig(path, nil)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Workers)
	require.Equal(t, 1, cfg.Analyze.MaxStops)
}

func TestLoadConfig_FlagsWinOverEnv(t *testing.T) {
	t.Setenv("FLIGHTGRID_WORKERS", "8")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("workers", 0, "")
	require.NoError(t, flags.Parse([]string{"--workers", "3"}))

	cfg, err := loadConfig("", flags)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Workers)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}

func TestFindConfigFile(t *testing.T) {
	require.Equal(t, "custom.yaml", findConfigFile("custom.yaml"))
	// No conventional file in a scratch working directory.
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(t.TempDir()))
	require.Empty(t, findConfigFile(""))
}
