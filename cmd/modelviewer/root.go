package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/3Ution-BK/ModelViewer/internal/config"
	"github.com/3Ution-BK/ModelViewer/internal/gfx"
	"github.com/3Ution-BK/ModelViewer/internal/logx"
	"github.com/3Ution-BK/ModelViewer/internal/platform"
	"github.com/3Ution-BK/ModelViewer/internal/viewer"
)

// newRootCmd returns the modelviewer command. The positional arguments
// take the place of the [assets] section of the config file.
func newRootCmd() *cobra.Command {
	def := config.Default()
	cmd := &cobra.Command{
		Use:   "modelviewer [model] [texture] [vertex shader] [fragment shader]",
		Short: "View an OBJ or glTF model with OpenGL.",
		Long: `modelviewer opens a window showing a model drawn with the given ` +
			`vertex and fragment shaders and an optional texture. A settings ` +
			`panel edits the camera, background, render mode and time scale.

Settings are read from the defaults, then the --config file, then ` +
			config.EnvPrefix + `* environment variables (also read from .env), ` +
			`then the flags and arguments.`,
		Args:          cobra.MaximumNArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			cfg, err := resolveConfig(cmd, args, os.LookupEnv)
			if err != nil {
				return err
			}
			if err := logx.Setup(cfg.Log.Level, cmd.ErrOrStderr()); err != nil {
				return err
			}
			if path, _ := cmd.Flags().GetString("save-config"); path != "" {
				if err := config.Save(path, cfg); err != nil {
					return err
				}
				slog.Info("config saved", "path", path)
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.String("config", "", "TOML config file")
	f.String("save-config", "", "write the resolved config to this file before starting")
	f.String("title", def.Window.Title, "window title")
	f.String("size", fmt.Sprintf("%dx%d", def.Window.Width, def.Window.Height), "window size as WIDTHxHEIGHT")
	f.String("position", fmt.Sprintf("%d,%d", def.Window.X, def.Window.Y), "window position as X,Y")
	f.String("gl-version", fmt.Sprintf("%d.%d", def.Window.GLMajor, def.Window.GLMinor), "OpenGL core profile version, 4.3 or newer")
	f.Bool("gl-debug", def.Window.Debug, "request a debug context and log OpenGL debug output")
	f.String("render-mode", def.Scene.RenderMode, "initial render mode, fill or line")
	f.Bool("axis", def.Scene.Axis, "draw the world axes")
	f.Bool("grid", def.Scene.Grid, "draw the scene grid")
	f.Bool("watch-shaders", def.Assets.WatchShaders, "reload shaders when their files change")
	f.String("log-level", def.Log.Level, "log level: debug, info, warn or error")
	return cmd
}

// resolveConfig layers the config file, the environment, the positional
// arguments and the flags the user set over the defaults, and validates
// the result.
func resolveConfig(cmd *cobra.Command, args []string, lookup func(string) (string, bool)) (config.Config, error) {
	f := cmd.Flags()
	cfg := config.Default()
	if path, _ := f.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	assets := []*string{&cfg.Assets.Model, &cfg.Assets.Texture, &cfg.Assets.Vertex, &cfg.Assets.Fragment}
	for i, a := range args {
		*assets[i] = a
	}

	var err error
	str := func(name string, dst *string) {
		if err == nil && f.Changed(name) {
			*dst, err = f.GetString(name)
		}
	}
	flag := func(name string, dst *bool) {
		if err == nil && f.Changed(name) {
			*dst, err = f.GetBool(name)
		}
	}
	pair := func(name string, a, b *int) {
		if err != nil || !f.Changed(name) {
			return
		}
		var s string
		if s, err = f.GetString(name); err == nil {
			*a, *b, err = config.ParsePair(s)
		}
	}
	str("title", &cfg.Window.Title)
	pair("size", &cfg.Window.Width, &cfg.Window.Height)
	pair("position", &cfg.Window.X, &cfg.Window.Y)
	flag("gl-debug", &cfg.Window.Debug)
	str("render-mode", &cfg.Scene.RenderMode)
	flag("axis", &cfg.Scene.Axis)
	flag("grid", &cfg.Scene.Grid)
	flag("watch-shaders", &cfg.Assets.WatchShaders)
	str("log-level", &cfg.Log.Level)
	if err == nil && f.Changed("gl-version") {
		var s string
		if s, err = f.GetString("gl-version"); err == nil {
			cfg.Window.GLMajor, cfg.Window.GLMinor, err = parseVersion(s)
		}
	}
	if err != nil {
		return cfg, err
	}

	if _, err := logx.ParseLevel(cfg.Log.Level); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// parseVersion parses "MAJOR.MINOR".
func parseVersion(s string) (major, minor int, err error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return 0, 0, fmt.Errorf("invalid OpenGL version %q, want MAJOR.MINOR", s)
	}
	if major, err = strconv.Atoi(left); err != nil {
		return 0, 0, fmt.Errorf("invalid OpenGL version %q: %w", s, err)
	}
	if minor, err = strconv.Atoi(right); err != nil {
		return 0, 0, fmt.Errorf("invalid OpenGL version %q: %w", s, err)
	}
	return major, minor, nil
}

// run opens the window, loads the shader and the model, and runs the
// frame loop until the window is closed or ctx is cancelled.
func run(ctx context.Context, cfg config.Config) error {
	slog.Info("starting",
		"model", cfg.Assets.Model,
		"texture", cfg.Assets.Texture,
		"vertex", cfg.Assets.Vertex,
		"fragment", cfg.Assets.Fragment)

	w, err := viewer.NewBuilder().Configure(cfg).Build()
	if err != nil {
		return err
	}
	defer w.Close()

	program, err := w.AddShader(gfx.Sources{Vertex: cfg.Assets.Vertex, Fragment: cfg.Assets.Fragment})
	if err != nil {
		return fmt.Errorf("failed to compile shader: %w", err)
	}
	if err := w.AddModel(cfg.Assets.Model, cfg.Assets.Texture, program); err != nil {
		return fmt.Errorf("failed to add model: %w", err)
	}
	if cfg.Assets.WatchShaders {
		if err := w.WatchShaders(platform.PostEmptyEvent); err != nil {
			slog.Warn("shader files are not watched", "err", err)
		}
	}
	return w.Run(ctx)
}
