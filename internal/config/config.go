// Package config loads framekit's settings: built-in defaults, then the user's config file, then an explicit file, then FRAMEKIT_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/codalotl/framekit/internal/effects"
	"github.com/codalotl/framekit/internal/q/termformat"
	"github.com/codalotl/framekit/internal/q/uni"
	"github.com/codalotl/framekit/internal/renderpolicy"
	"github.com/codalotl/framekit/internal/validation"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	EnvPrefix = "FRAMEKIT_"
	appDir    = "framekit"
)

var ErrUnsupportedFormat = errors.New("config: unsupported format")

// Config is the complete configuration.
type Config struct {
	Policy    PolicyConfig            `koanf:"policy" yaml:"policy" toml:"policy"`
	Frame     FrameConfig             `koanf:"frame" yaml:"frame" toml:"frame"`
	Animation AnimationConfig         `koanf:"animation" yaml:"animation" toml:"animation"`
	Presets   map[string]effects.Spec `koanf:"presets" yaml:"presets,omitempty" toml:"presets,omitempty" validate:"dive"`
	Palettes  map[string][]string     `koanf:"palettes" yaml:"palettes,omitempty" toml:"palettes,omitempty" validate:"dive,min=2,dive,color"`
}

// PolicyConfig adjusts the detected render policy. Unset fields keep the detected value.
type PolicyConfig struct {
	// Preset is "auto" (detect from the environment) or a renderpolicy preset name.
	Preset     string `koanf:"preset" yaml:"preset" toml:"preset" validate:"omitempty,oneof=auto full minimal ci nocolor"`
	Color      *bool  `koanf:"color" yaml:"color,omitempty" toml:"color,omitempty"`
	Unicode    *bool  `koanf:"unicode" yaml:"unicode,omitempty" toml:"unicode,omitempty"`
	Emoji      *bool  `koanf:"emoji" yaml:"emoji,omitempty" toml:"emoji,omitempty"`
	ColorDepth string `koanf:"color_depth" yaml:"color_depth,omitempty" toml:"color_depth,omitempty" validate:"omitempty,color_depth"`
	WidthMode  string `koanf:"width_mode" yaml:"width_mode,omitempty" toml:"width_mode,omitempty" validate:"omitempty,width_mode"`

	// BorderFallback replaces every border style when Unicode is off.
	BorderFallback string `koanf:"border_fallback" yaml:"border_fallback,omitempty" toml:"border_fallback,omitempty" validate:"omitempty,border"`
}

// FrameConfig holds defaults for frames drawn by the CLI.
type FrameConfig struct {
	Border     string `koanf:"border" yaml:"border" toml:"border" validate:"omitempty,border"`
	Padding    int    `koanf:"padding" yaml:"padding" toml:"padding" validate:"gte=0,lte=32"`
	Align      string `koanf:"align" yaml:"align" toml:"align" validate:"omitempty,oneof=left center right"`
	TitleAlign string `koanf:"title_align" yaml:"title_align" toml:"title_align" validate:"omitempty,oneof=left center right"`
	Effect     string `koanf:"effect" yaml:"effect,omitempty" toml:"effect,omitempty"`
}

// AnimationConfig holds defaults for the animate command.
type AnimationConfig struct {
	FPS      int           `koanf:"fps" yaml:"fps" toml:"fps" validate:"gte=1,lte=120"`
	Duration time.Duration `koanf:"duration" yaml:"duration" toml:"duration" validate:"gte=0"`
	Step     float64       `koanf:"step" yaml:"step" toml:"step" validate:"gt=0,lt=1"`
}

func defaults() map[string]any {
	return map[string]any{
		"policy.preset":      "auto",
		"frame.border":       "rounded",
		"frame.padding":      1,
		"frame.align":        "left",
		"frame.title_align":  "center",
		"animation.fps":      10,
		"animation.duration": "9s",
		"animation.step":     0.05,
	}
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, err := Load(LoadOptions{SkipUserConfig: true, SkipEnv: true})
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadOptions configure Load.
type LoadOptions struct {
	Path           string // explicit config file, loaded after the user config; must exist
	SkipUserConfig bool   // don't search XDG config dirs
	SkipEnv        bool   // ignore FRAMEKIT_* variables
}

// UserConfigPath returns the first framekit config file in the XDG config dirs ($XDG_CONFIG_HOME/framekit/config.yaml, .yml or .toml), or "" if there is none.
func UserConfigPath() string {
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		if p, err := xdg.SearchConfigFile(filepath.Join(appDir, name)); err == nil {
			return p
		}
	}
	return ""
}

// Load builds the configuration from its layers and validates it.
func Load(opts LoadOptions) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}

	var files []string
	if !opts.SkipUserConfig {
		if p := UserConfigPath(); p != "" {
			files = append(files, p)
		}
	}
	if opts.Path != "" {
		if _, err := os.Stat(opts.Path); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		files = append(files, opts.Path)
	}
	for _, path := range files {
		parser, err := parserFor(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
		if err != nil {
			return Config{}, fmt.Errorf("config: load env: %w", err)
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps FRAMEKIT_FRAME_TITLE_ALIGN to "frame.title_align": the first underscore separates the section.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		// JSON is a subset of YAML.
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Validate checks field constraints and that every preset and palette is usable.
func (c Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	reg, err := c.Registry()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Frame.Effect != "" {
		if _, err := reg.Resolve(c.Frame.Effect); err != nil {
			return fmt.Errorf("config: frame.effect: %w", err)
		}
	}
	return nil
}

// Registry returns the built-in effects extended with the configured presets and palettes.
func (c Config) Registry() (*effects.Registry, error) {
	return effects.Default().With(c.Presets, c.Palettes)
}

// RenderPolicy applies the policy section to detected, the policy found in the environment.
func (c Config) RenderPolicy(detected renderpolicy.Policy) renderpolicy.Policy {
	p := detected
	if fn, ok := renderpolicy.Presets[c.Policy.Preset]; ok {
		p = fn()
	}

	o := renderpolicy.Override{Color: c.Policy.Color, Unicode: c.Policy.Unicode, Emoji: c.Policy.Emoji}
	if c.Policy.BorderFallback != "" {
		o.BorderFallback = &c.Policy.BorderFallback
	}
	if d, ok := termformat.ParseColorDepth(c.Policy.ColorDepth); ok && c.Policy.ColorDepth != "" {
		o.Depth = &d
	}
	if m, ok := uni.ParseWidthMode(c.Policy.WidthMode); ok && c.Policy.WidthMode != "" {
		modern := m == uni.ModeModern
		o.ModernWidth = &modern
	}
	return p.WithOverride(o)
}

// Marshal encodes c as "yaml" or "toml".
func (c Config) Marshal(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		var buf bytes.Buffer
		enc := yamlv3.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("config: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "toml":
		b, err := gotoml.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("config: encode toml: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
