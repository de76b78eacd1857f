package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	boxannotator "github.com/menta2k/box-annotator"
	"github.com/menta2k/box-annotator/pkg/render"
	"github.com/menta2k/box-annotator/pkg/types"
)

// Config holds the application configuration
type Config struct {
	Label       string            `yaml:"label" json:"label"`
	ShowLabels  bool              `yaml:"show_labels" json:"show_labels"`
	Calibration CalibrationConfig `yaml:"calibration" json:"calibration"`
	Styles      StylesConfig      `yaml:"styles" json:"styles"`
	Surface     SurfaceConfig     `yaml:"surface" json:"surface"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// CalibrationConfig is the offset added to client pointer coordinates
type CalibrationConfig struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// StylesConfig maps a box state name (idle, creating, moving) to its
// style. A state given in the file replaces the default style for that
// state as a whole.
type StylesConfig map[string]types.Style

// SurfaceConfig is the size of the drawing surface. Zero means the
// natural image size.
type SurfaceConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// OutputConfig holds configuration for rendered frames and crops
type OutputConfig struct {
	Format   string `yaml:"format" json:"format"`
	Quality  int    `yaml:"quality" json:"quality"`
	Lossless bool   `yaml:"lossless" json:"lossless"`
	Dir      string `yaml:"dir" json:"dir"`
}

var outputFormats = []string{"png", "jpg", "jpeg", "webp"}

// Default returns a configuration with default values
func Default() *Config {
	styles := StylesConfig{}
	for state, st := range types.DefaultStyles() {
		styles[state.String()] = st
	}
	return &Config{
		Calibration: CalibrationConfig{X: -10, Y: -10},
		Styles:      styles,
		Output: OutputConfig{
			Format:  "png",
			Quality: 90,
			Dir:     "./out",
		},
	}
}

// LoadFromFile loads configuration from a YAML (or JSON) file. Fields
// missing from the file keep their defaults.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	set, err := c.Styles.StyleSet()
	if err != nil {
		return err
	}
	for state, st := range set {
		if err := render.ValidateStyle(st); err != nil {
			return fmt.Errorf("styles.%s: %w", state, err)
		}
	}

	if c.Surface.Width < 0 || c.Surface.Height < 0 {
		return fmt.Errorf("surface size must not be negative")
	}
	if (c.Surface.Width == 0) != (c.Surface.Height == 0) {
		return fmt.Errorf("surface.width and surface.height must be set together")
	}

	if !lo.Contains(outputFormats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("output.format must be one of %s", strings.Join(outputFormats, ", "))
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	return nil
}

// StyleSet resolves the state names. Unknown names and two names for the
// same state are errors.
func (s StylesConfig) StyleSet() (types.StyleSet, error) {
	set := make(types.StyleSet, len(s))
	seen := make(map[types.BoxState]string, len(s))
	for name, st := range s {
		state, err := types.ParseBoxState(name)
		if err != nil {
			return nil, fmt.Errorf("styles: %w", err)
		}
		if prev, ok := seen[state]; ok {
			return nil, fmt.Errorf("styles: %q and %q both set the %s style", prev, name, state)
		}
		seen[state] = name
		set[state] = st.Clone()
	}
	return set.WithDefaults(), nil
}

// Annotator converts the file configuration to annotator settings.
// Call Validate first: unresolvable style names fall back to defaults.
func (c *Config) Annotator() boxannotator.Config {
	styles, err := c.Styles.StyleSet()
	if err != nil {
		styles = types.DefaultStyles()
	}
	return boxannotator.Config{
		Label:       c.Label,
		Styles:      styles,
		Calibration: types.Point{X: c.Calibration.X, Y: c.Calibration.Y},
		ShowLabels:  c.ShowLabels,
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}
	return filepath.Join(home, ".config", "box-annotator", "config.yaml")
}
