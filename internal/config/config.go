// Package config holds the viewer settings. Values come from the built-in
// defaults, then an optional TOML file, then MODELVIEWER_* environment
// variables (optionally loaded from a .env file), then command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "MODELVIEWER_"

type Config struct {
	Window Window `toml:"window"`
	Scene  Scene  `toml:"scene"`
	Assets Assets `toml:"assets"`
	Log    Log    `toml:"log"`
}

// Window describes the native window and its OpenGL context.
type Window struct {
	Title string `toml:"title"`

	// Width and Height are in screen coordinates.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	X      int `toml:"x"`
	Y      int `toml:"y"`

	GLMajor int `toml:"gl_major"`
	GLMinor int `toml:"gl_minor"`

	// Debug requests a debug context and routes GL debug output to the log.
	Debug bool `toml:"debug"`
}

// Scene holds the initial values of the settings the overlay can edit.
type Scene struct {
	Background [4]float32 `toml:"background"`
	Camera     [3]float32 `toml:"camera"`
	LookAt     [3]float32 `toml:"look_at"`
	RenderMode string     `toml:"render_mode"`
	TimeScale  float64    `toml:"time_scale"`
	Axis       bool       `toml:"axis"`
	Grid       bool       `toml:"grid"`
	GridSize   int        `toml:"grid_size"`
}

type Assets struct {
	Model        string `toml:"model"`
	Texture      string `toml:"texture"`
	Vertex       string `toml:"vertex"`
	Fragment     string `toml:"fragment"`
	WatchShaders bool   `toml:"watch_shaders"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Window: Window{
			Title:   "ModelViewer",
			Width:   800,
			Height:  600,
			X:       100,
			Y:       100,
			GLMajor: 4,
			GLMinor: 3,
		},
		Scene: Scene{
			Background: [4]float32{0.2, 0.3, 0.3, 1},
			Camera:     [3]float32{8, 8, 8},
			RenderMode: "fill",
			TimeScale:  1,
			GridSize:   10,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the TOML file at path over the defaults. Unknown keys are an
// error so that typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode decodes TOML data into cfg, keeping fields the data does not set.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Save writes cfg as TOML to path.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with MODELVIEWER_* variables looked up through
// lookup, which is usually os.LookupEnv.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	flag := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	str("TITLE", &cfg.Window.Title)
	num("WIDTH", &cfg.Window.Width)
	num("HEIGHT", &cfg.Window.Height)
	num("X", &cfg.Window.X)
	num("Y", &cfg.Window.Y)
	num("GL_MAJOR", &cfg.Window.GLMajor)
	num("GL_MINOR", &cfg.Window.GLMinor)
	flag("GL_DEBUG", &cfg.Window.Debug)

	str("RENDER_MODE", &cfg.Scene.RenderMode)
	flag("AXIS", &cfg.Scene.Axis)
	flag("GRID", &cfg.Scene.Grid)

	str("MODEL", &cfg.Assets.Model)
	str("TEXTURE", &cfg.Assets.Texture)
	str("VERTEX", &cfg.Assets.Vertex)
	str("FRAGMENT", &cfg.Assets.Fragment)
	flag("WATCH_SHADERS", &cfg.Assets.WatchShaders)

	str("LOG_LEVEL", &cfg.Log.Level)

	return errors.Join(errs...)
}

// Validate checks the settings that would otherwise fail later and less
// clearly, when the window or the assets are created.
func (cfg *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	w := cfg.Window
	if w.Width <= 0 || w.Height <= 0 {
		bad("window size %dx%d", w.Width, w.Height)
	}
	if w.GLMajor < 4 || (w.GLMajor == 4 && w.GLMinor < 3) {
		bad("OpenGL %d.%d is older than 4.3", w.GLMajor, w.GLMinor)
	}
	switch strings.ToLower(cfg.Scene.RenderMode) {
	case "fill", "line":
	default:
		bad("render mode %q", cfg.Scene.RenderMode)
	}
	if cfg.Scene.TimeScale < 0 {
		bad("negative time scale %v", cfg.Scene.TimeScale)
	}
	if cfg.Scene.GridSize < 0 {
		bad("negative grid size %d", cfg.Scene.GridSize)
	}
	if cfg.Assets.Model == "" {
		bad("no model")
	}
	if cfg.Assets.Vertex == "" || cfg.Assets.Fragment == "" {
		bad("both vertex and fragment shaders are required")
	}
	return errors.Join(errs...)
}

// ParsePair parses "A,B" or "AxB" into two integers, as used by the size
// and position flags.
func ParsePair(s string) (a, b int, err error) {
	sep := ","
	if !strings.Contains(s, sep) {
		sep = "x"
	}
	left, right, ok := strings.Cut(strings.ToLower(s), sep)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q is not a pair", ErrInvalid, s)
	}
	if a, err = strconv.Atoi(strings.TrimSpace(left)); err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
	}
	if b, err = strconv.Atoi(strings.TrimSpace(right)); err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
	}
	return a, b, nil
}
