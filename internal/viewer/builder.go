package viewer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/3Ution-BK/ModelViewer/internal/config"
	"github.com/3Ution-BK/ModelViewer/internal/gfx"
	"github.com/3Ution-BK/ModelViewer/internal/model"
	"github.com/3Ution-BK/ModelViewer/internal/overlay"
	"github.com/3Ution-BK/ModelViewer/internal/platform"
)

// ErrVersion is returned by Build for an OpenGL version below 4.3.
var ErrVersion = errors.New("viewer: OpenGL 4.3 or newer is required")

// Version is an OpenGL context version.
type Version struct {
	Major, Minor int
}

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Less reports whether v is older than o.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	return v.Minor < o.Minor
}

// MinVersion is the oldest context Build accepts.
var MinVersion = Version{4, 3}

// Builder collects window parameters. Setters return the builder so calls
// can be chained; Build creates the window and resets the builder.
type Builder struct {
	version  Version
	position image.Point
	size     image.Point
	title    string
	debug    bool
	scene    config.Scene
}

// NewBuilder returns a builder holding the default parameters.
func NewBuilder() *Builder {
	b := &Builder{}
	b.Reset()
	return b
}

// Reset restores the default parameters: OpenGL 4.3, an 800x600 window at
// the origin with no title, no debug output and the default scene.
func (b *Builder) Reset() {
	*b = Builder{
		version: MinVersion,
		size:    image.Pt(800, 600),
		scene:   config.Default().Scene,
	}
}

func (b *Builder) SetVersion(major, minor int) *Builder { b.version = Version{major, minor}; return b }
func (b *Builder) SetPosition(p image.Point) *Builder   { b.position = p; return b }
func (b *Builder) SetSize(s image.Point) *Builder       { b.size = s; return b }
func (b *Builder) SetTitle(title string) *Builder       { b.title = title; return b }
func (b *Builder) SetDebug(debug bool) *Builder         { b.debug = debug; return b }
func (b *Builder) SetScene(s config.Scene) *Builder     { b.scene = s; return b }

// Configure copies the window and scene sections of cfg.
func (b *Builder) Configure(cfg config.Config) *Builder {
	return b.SetVersion(cfg.Window.GLMajor, cfg.Window.GLMinor).
		SetPosition(image.Pt(cfg.Window.X, cfg.Window.Y)).
		SetSize(image.Pt(cfg.Window.Width, cfg.Window.Height)).
		SetTitle(cfg.Window.Title).
		SetDebug(cfg.Window.Debug).
		SetScene(cfg.Scene)
}

func (b *Builder) ProductVersion() Version      { return b.version }
func (b *Builder) ProductPosition() image.Point { return b.position }
func (b *Builder) ProductSize() image.Point     { return b.size }
func (b *Builder) ProductTitle() string         { return b.title }
func (b *Builder) ProductDebug() bool           { return b.debug }
func (b *Builder) ProductScene() config.Scene   { return b.scene }

// settings converts the scene section into the values the overlay edits.
func settings(s config.Scene) (overlay.Settings, error) {
	mode, err := gfx.ParseRenderMode(s.RenderMode)
	if err != nil {
		return overlay.Settings{}, err
	}
	return overlay.Settings{
		Background: mgl32.Vec4(s.Background),
		Camera:     mgl32.Vec3(s.Camera),
		LookAt:     mgl32.Vec3(s.LookAt),
		RenderMode: mode,
		TimeScale:  float32(max(s.TimeScale, 0)),
		Axis:       s.Axis,
		Grid:       s.Grid,
	}, nil
}

// check validates the parameters before any native resource is created.
func (b *Builder) check() (overlay.Settings, error) {
	if b.version.Less(MinVersion) {
		return overlay.Settings{}, fmt.Errorf("%w: %v requested", ErrVersion, b.version)
	}
	if b.size.X <= 0 || b.size.Y <= 0 {
		return overlay.Settings{}, fmt.Errorf("viewer: invalid window size %v", b.size)
	}
	return settings(b.scene)
}

// Build initializes the windowing library, opens the window with a
// current OpenGL context, and sets up the overlay and line models. The
// builder is reset whether or not Build succeeds.
func (b *Builder) Build() (*Window, error) {
	defer b.Reset()

	s, err := b.check()
	if err != nil {
		return nil, err
	}

	if err := platform.Init(); err != nil {
		return nil, err
	}
	native, err := platform.NewWindow(platform.Options{
		Title:    b.title,
		Size:     b.size,
		Position: b.position,
		Major:    b.version.Major,
		Minor:    b.version.Minor,
		Debug:    b.debug,
	})
	if err != nil {
		platform.Terminate()
		return nil, err
	}

	ctx, err := gfx.Init()
	if err != nil {
		native.Destroy()
		platform.Terminate()
		return nil, err
	}
	slog.Info("window created", "title", b.title, "size", b.size, "gl", ctx.Version())

	w := newWindow(native, ctx, s)
	w.terminate = platform.Terminate
	windows.Add(native.ID(), w)
	native.SetCallbacks(callbacks{})

	if b.debug {
		if ctx.EnableDebugOutput() {
			w.onClose = append(w.onClose, ctx.DisableDebugOutput)
		} else {
			slog.Warn("OpenGL debug output is not available")
		}
	}

	ov, err := overlay.New()
	if err != nil {
		w.Close()
		return nil, err
	}
	w.SetOverlay(ov)

	if err := w.addLines(float32(max(b.scene.GridSize, 1))); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// addLines builds the world axes and the scene grid. They are drawn when
// enabled in the settings.
func (w *Window) addLines(size float32) error {
	program, err := w.load.program(model.LineSources())
	if err != nil {
		return fmt.Errorf("viewer: line shader: %w", err)
	}
	w.addProgram(program)
	w.setLines(model.NewAxis(program, size), model.NewSceneGrid(program, size, size))
	return nil
}
