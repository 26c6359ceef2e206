// Package config loads the TOML run configuration and its environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/logging"
	"pcb-ringroute/internal/preview"
	"pcb-ringroute/internal/route"
	"pcb-ringroute/internal/rules"
	"pcb-ringroute/internal/slot"
)

// ErrInvalid is returned for a configuration that cannot be run.
var ErrInvalid = errors.New("invalid configuration")

// Environment variables that override the file.
const (
	EnvPanel     = "RINGROUTE_PANEL"
	EnvDesign    = "RINGROUTE_DESIGN"
	EnvLogLevel  = "RINGROUTE_LOG_LEVEL"
	EnvOutputDir = "RINGROUTE_OUTPUT_DIR"
)

// Config is one generation run.
type Config struct {
	Rules   rules.DesignRules `toml:"rules"`
	Layout  Layout            `toml:"layout"`
	Output  Output            `toml:"output"`
	Logging logging.Config    `toml:"logging"`
}

// Layout fixes where the copper goes.
type Layout struct {
	Panel  string `toml:"panel"`
	Design string `toml:"design"`
	// OuterRadius of zero takes the design's radius.
	OuterRadius float64 `toml:"outer_ring_radius"`
	// EraseRadius of zero takes the design's erase ring.
	EraseRadius float64 `toml:"erase_radius"`
	// ErasePolicy is "both" or "either"; empty takes the design's.
	ErasePolicy string `toml:"erase_policy"`
}

// Output names the files a run writes. Empty paths are skipped; relative
// paths are resolved against Dir.
type Output struct {
	Dir           string  `toml:"dir"`
	Document      string  `toml:"document"`
	KiCad         string  `toml:"kicad"`
	Preview       string  `toml:"preview"`
	PreviewScale  float64 `toml:"preview_scale"`
	PreviewColors string  `toml:"preview_colors"`
	Report        string  `toml:"report"`
	Metrics       string  `toml:"metrics"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Rules: rules.Default(),
		Layout: Layout{
			Panel:  "single",
			Design: route.Pair.Name,
		},
		Output: Output{
			Dir:           ".",
			Document:      "clock.json",
			KiCad:         "clock.kicad_pcb",
			PreviewScale:  0.2,
			PreviewColors: "layer",
			Report:        "report.yaml",
		},
		Logging: logging.Config{Level: "info"},
	}
}

// Load reads path over the defaults, applies the environment and validates.
// Keys the file sets that no field takes are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v", ErrInvalid, undecoded)
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads the named env files into the process environment. A
// missing file is not an error.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPanel); ok && v != "" {
		c.Layout.Panel = v
	}
	if v, ok := lookup(EnvDesign); ok && v != "" {
		c.Layout.Design = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvOutputDir); ok && v != "" {
		c.Output.Dir = v
	}
}

// Validate checks the configuration can be run.
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, ok := board.GetPanel(c.Layout.Panel); !ok {
		return fmt.Errorf("%w: unknown panel %q (have %v)", ErrInvalid, c.Layout.Panel, board.ListPanels())
	}
	d, ok := route.LookupDesign(c.Layout.Design)
	if !ok {
		return fmt.Errorf("%w: unknown design %q (have %v)", ErrInvalid, c.Layout.Design, route.DesignNames())
	}
	if c.Layout.OuterRadius < 0 {
		return fmt.Errorf("%w: outer ring radius %v", ErrInvalid, c.Layout.OuterRadius)
	}
	if c.Layout.EraseRadius < 0 {
		return fmt.Errorf("%w: erase radius %v", ErrInvalid, c.Layout.EraseRadius)
	}
	if _, err := route.ParseErasePolicy(c.Layout.ErasePolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	derived := rules.Derive(c.Rules)
	layout := slot.Layout{OuterRadius: c.OuterRadius(), Spacing: derived.RingSpacing}
	if err := route.CheckFit(layout, derived, d.Hands(c.Panel()).InnermostRing()); err != nil {
		return fmt.Errorf("%w: design %s: %w", ErrInvalid, d.Name, err)
	}
	if _, err := preview.ParseColorMode(c.Output.PreviewColors); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Output.Preview != "" && c.Output.PreviewScale <= 0 {
		return fmt.Errorf("%w: preview scale %v", ErrInvalid, c.Output.PreviewScale)
	}
	return nil
}

// Panel returns the configured panel.
func (c *Config) Panel() *board.Panel {
	p, _ := board.GetPanel(c.Layout.Panel)
	return p
}

// Design returns the configured design.
func (c *Config) Design() route.Design {
	d, _ := route.LookupDesign(c.Layout.Design)
	return d
}

// OuterRadius returns the configured radius of ring 0, or the design's.
func (c *Config) OuterRadius() float64 {
	if c.Layout.OuterRadius > 0 {
		return c.Layout.OuterRadius
	}
	return c.Design().OuterRadius
}

// ErasePolicy returns the configured erase policy. ok is false when the
// design's policy applies.
func (c *Config) ErasePolicy() (p route.ErasePolicy, ok bool) {
	if c.Layout.ErasePolicy == "" {
		return c.Design().ErasePolicy, false
	}
	p, _ = route.ParseErasePolicy(c.Layout.ErasePolicy)
	return p, true
}

// Path resolves an output path against Dir. Empty stays empty.
func (o Output) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.Dir, name)
}
