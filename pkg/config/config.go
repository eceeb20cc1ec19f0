// Package config loads user defaults for layout and rendering.
//
// The file is optional TOML, read from $XDG_CONFIG_HOME/forcegraph/config.toml
// (falling back to ~/.config/forcegraph/config.toml) or from an explicit
// path:
//
//	[layout]
//	trials = 4
//	init = "groups"
//
//	[render]
//	formats = ["svg", "visjs"]
//	style = "dark"
//
// Values only fill options the caller left unset, so explicit flags always
// win over the file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// AppName names the configuration directory.
const AppName = "forcegraph"

// FileName is the configuration file inside the application directory.
const FileName = "config.toml"

// Config is the decoded configuration file.
type Config struct {
	Layout Layout `toml:"layout"`
	Render Render `toml:"render"`
}

// Layout holds defaults for region and engine options.
type Layout struct {
	Dims        int      `toml:"dims,omitempty"`
	Width       float64  `toml:"width,omitempty"`
	Height      float64  `toml:"height,omitempty"`
	Depth       float64  `toml:"depth,omitempty"`
	Margin      *float64 `toml:"margin,omitempty"`
	Iterations  int      `toml:"iterations,omitempty"`
	Temperature float64  `toml:"temperature,omitempty"`
	Cooling     float64  `toml:"cooling,omitempty"`
	Repulsion   float64  `toml:"repulsion,omitempty"`
	Attraction  float64  `toml:"attraction,omitempty"`
	Seed        uint64   `toml:"seed,omitempty"`
	Trials      int      `toml:"trials,omitempty"`
	Init        string   `toml:"init,omitempty"`
	GroupBy     string   `toml:"group_by,omitempty"`
}

// Render holds defaults for output generation.
type Render struct {
	Formats  []string `toml:"formats,omitempty"`
	Style    string   `toml:"style,omitempty"`
	Rotation float64  `toml:"rotation,omitempty"`
	Scale    float64  `toml:"scale,omitempty"`
	Detailed bool     `toml:"detailed,omitempty"`
}

// DefaultPath returns the XDG location of the configuration file.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, FileName), nil
}

// Load reads the configuration at path. An empty path selects
// [DefaultPath], where a missing file yields an empty Config. A missing
// explicit path is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes configuration TOML. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func Parse(data []byte) (Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Apply copies configured values into every unset field of opts.
func (c Config) Apply(opts *pipeline.Options) {
	l := c.Layout
	setInt(&opts.Dims, l.Dims)
	setFloat(&opts.Width, l.Width)
	setFloat(&opts.Height, l.Height)
	setFloat(&opts.Depth, l.Depth)
	if opts.Margin == nil && l.Margin != nil {
		m := *l.Margin
		opts.Margin = &m
	}
	setInt(&opts.Iterations, l.Iterations)
	setFloat(&opts.Temperature, l.Temperature)
	setFloat(&opts.Cooling, l.Cooling)
	setFloat(&opts.Repulsion, l.Repulsion)
	setFloat(&opts.Attraction, l.Attraction)
	if opts.Seed == 0 {
		opts.Seed = l.Seed
	}
	setInt(&opts.Trials, l.Trials)
	setString(&opts.Init, l.Init)
	setString(&opts.GroupBy, l.GroupBy)

	r := c.Render
	if len(opts.Formats) == 0 && len(r.Formats) > 0 {
		opts.Formats = append([]string(nil), r.Formats...)
	}
	setString(&opts.Style, r.Style)
	setFloat(&opts.Rotation, r.Rotation)
	setFloat(&opts.Scale, r.Scale)
	opts.Detailed = opts.Detailed || r.Detailed
}

func setInt(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if *dst == 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
