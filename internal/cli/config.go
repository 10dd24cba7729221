package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config is the merged CLI configuration. Precedence, lowest to highest:
// built-in defaults, flightgrid.yaml (or --config), FLIGHTGRID_* env vars,
// command-line flags.
type Config struct {
	Airports string `koanf:"airports"`
	Routes   string `koanf:"routes"`
	Workers  int    `koanf:"workers"`
	Verbose  bool   `koanf:"verbose"`

	Analyze AnalyzeConfig `koanf:"analyze"`
}

// AnalyzeConfig bounds the opportunity scan. Defaults follow the original
// study: 1000 km minimum, at most 3 stops.
type AnalyzeConfig struct {
	MinDistanceKm          float64 `koanf:"min_distance_km"`
	MaxDistanceKm          float64 `koanf:"max_distance_km"`
	MaxStops               int     `koanf:"max_stops"`
	SuppressSingleOperator bool    `koanf:"suppress_single_operator"`
	Format                 string  `koanf:"format"`
}

// defaults is the confmap base layer.
var defaults = map[string]interface{}{
	"airports":                "airports.csv",
	"routes":                  "routes.csv",
	"workers":                 0, // 0 = one per CPU
	"analyze.min_distance_km": 1000.0,
	"analyze.max_distance_km": 0.0,
	"analyze.max_stops":       3,
	"analyze.format":          "table",
}

// findConfigFile resolves the config path: explicit flag first, then the
// conventional names in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"flightgrid.yaml", "flightgrid.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	return ""
}

// loadConfig builds the merged Config from all layers.
func loadConfig(configPath string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Config{}, fmt.Errorf("cli: defaults: %w", err)
	}

	if path := findConfigFile(configPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("cli: config file %s: %w", path, err)
		}
	}

	// FLIGHTGRID_ANALYZE_MIN_DISTANCE_KM → analyze.min_distance_km.
	// Underscore-separated key segments survive because section names
	// contain no underscores.
	if err := k.Load(env.Provider("FLIGHTGRID_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "FLIGHTGRID_")
		s = strings.ToLower(s)
		if i := strings.Index(s, "_"); i > 0 && (s[:i] == "analyze") {
			return s[:i] + "." + s[i+1:]
		}

		return s
	}), nil); err != nil {
		return Config{}, fmt.Errorf("cli: environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("cli: flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("cli: unmarshal: %w", err)
	}

	return cfg, nil
}
