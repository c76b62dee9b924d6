// Package viewer runs the model viewer window: it turns native callbacks
// into queued events, dispatches them to the window's handlers once per
// frame, draws the loaded models and the settings overlay, and owns every
// GPU resource it loads.
//
// Everything here runs on the main thread, which the caller must lock with
// runtime.LockOSThread before building a window.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/3Ution-BK/ModelViewer/internal/event"
	"github.com/3Ution-BK/ModelViewer/internal/gfx"
	"github.com/3Ution-BK/ModelViewer/internal/logx"
	"github.com/3Ution-BK/ModelViewer/internal/model"
	"github.com/3Ution-BK/ModelViewer/internal/overlay"
	"github.com/3Ution-BK/ModelViewer/internal/shaderwatch"
	"github.com/3Ution-BK/ModelViewer/internal/timeframe"
)

// Surface is the native window a Window draws into.
type Surface interface {
	ID() event.WindowID
	ShouldClose() bool
	SetShouldClose(v bool)
	SwapBuffers()
	PollEvents()
	TimerValue() uint64
	TimerFrequency() uint64
	SetPos(p image.Point)
	SetSize(s image.Point)
	Pos() image.Point
	Size() image.Point
	FramebufferSize() image.Point
	CursorPos() mgl64.Vec2
	Destroy()
}

// Graphics issues the global state calls of the GL context.
type Graphics interface {
	Viewport(size image.Point)
	Clear(color mgl32.Vec4)
	PolygonMode(m gfx.RenderMode)
}

// Drawable is anything the render pass can draw with a
// model-view-projection matrix.
type Drawable interface {
	Draw(mvp mgl32.Mat4)
	Delete()
}

// Overlay is the settings panel drawn over the scene.
type Overlay interface {
	MouseButton(button event.MouseButton, action event.Action)
	CursorPos(p mgl64.Vec2)
	CursorEnter(entered bool)
	Key(key event.Key, action event.Action)
	Char(r rune)
	Scroll(offset mgl64.Vec2)
	WantCaptureMouse() bool
	WantCaptureKeyboard() bool
	Frame(display, framebuffer image.Point, delta float64, s *overlay.Settings, stats overlay.Stats) bool
	Destroy()
}

// Watcher reports shader files changed on disk.
type Watcher interface {
	Pending() []string
	Close() error
}

// ErrNoProgram is returned when a model is added without a shader program.
var ErrNoProgram = errors.New("viewer: no shader program")

// loader creates GPU resources. Tests replace it to run without a GL
// context.
type loader struct {
	program func(gfx.Sources) (*gfx.Program, error)
	texture func(path string) (*gfx.Texture, error)
	mesh    func(path string, program *gfx.Program, texture *gfx.Texture) (Drawable, model.Warnings, error)
}

var glLoader = loader{
	program: gfx.BuildProgram,
	texture: model.LoadTexture,
	mesh: func(path string, program *gfx.Program, texture *gfx.Texture) (Drawable, model.Warnings, error) {
		m, warnings, err := model.LoadMesh(path, program, texture)
		if err != nil {
			return nil, warnings, err
		}
		return m, warnings, nil
	},
}

// shader is a program together with the sources it was built from, so it
// can be rebuilt when a source file changes.
type shader struct {
	program *gfx.Program
	sources gfx.Sources
}

func (s shader) uses(path string) bool {
	if s.sources.Inline {
		return false
	}
	return path == s.sources.Vertex || path == s.sources.Fragment || path == s.sources.Geometry
}

// Window is an open viewer window with its scene, overlay and frame clock.
type Window struct {
	surface  Surface
	graphics Graphics
	overlay  Overlay
	watcher  Watcher
	load     loader

	clock    *timeframe.TimeFrame
	queue    event.Queue
	handlers event.Handlers

	position    image.Point
	size        image.Point
	framebuffer image.Point
	cursor      mgl64.Vec2

	settings overlay.Settings
	initial  overlay.Settings
	resume   float32

	shaders   []shader
	textures  []*gfx.Texture
	drawables []Drawable
	axis      Drawable
	grid      Drawable

	// onClose runs after the scene is freed and before the surface is
	// destroyed, newest first.
	onClose   []func()
	terminate func()
	closed    bool
}

// newWindow wraps an already created surface and GL context. The overlay
// and native callbacks are attached by the caller.
func newWindow(surface Surface, graphics Graphics, settings overlay.Settings) *Window {
	w := &Window{
		surface:     surface,
		graphics:    graphics,
		load:        glLoader,
		position:    surface.Pos(),
		size:        surface.Size(),
		framebuffer: surface.FramebufferSize(),
		cursor:      surface.CursorPos(),
		settings:    settings,
		initial:     settings,
		resume:      1,
	}
	w.registerHandlers()
	graphics.Viewport(w.framebuffer)
	graphics.PolygonMode(settings.RenderMode)
	return w
}

func (w *Window) ID() event.WindowID           { return w.surface.ID() }
func (w *Window) Position() image.Point        { return w.position }
func (w *Window) Size() image.Point            { return w.size }
func (w *Window) FramebufferSize() image.Point { return w.framebuffer }
func (w *Window) Cursor() mgl64.Vec2           { return w.cursor }
func (w *Window) Settings() overlay.Settings   { return w.settings }
func (w *Window) Clock() *timeframe.TimeFrame  { return w.clock }
func (w *Window) PendingEvents() int           { return w.queue.Len() }
func (w *Window) Handlers() *event.Handlers    { return &w.handlers }
func (w *Window) Push(ev event.Event)          { w.queue.Push(ev) }
func (w *Window) SetPosition(p image.Point)    { w.surface.SetPos(p) }
func (w *Window) SetSize(s image.Point)        { w.surface.SetSize(s) }
func (w *Window) SetShouldClose(v bool)        { w.surface.SetShouldClose(v) }
func (w *Window) ShouldClose() bool            { return w.surface.ShouldClose() }
func (w *Window) SetOverlay(o Overlay)         { w.overlay = o }
func (w *Window) AddDrawable(d Drawable)       { w.drawables = append(w.drawables, d) }
func (w *Window) setLines(axis, grid Drawable) { w.axis, w.grid = axis, grid }
func (w *Window) addProgram(p *gfx.Program)    { w.shaders = append(w.shaders, shader{program: p}) }

// AddShader builds a program from src and keeps it until the window is
// closed. File based programs are rebuilt when WatchShaders reports a
// change to one of their files.
func (w *Window) AddShader(src gfx.Sources) (*gfx.Program, error) {
	p, err := w.load.program(src)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	w.shaders = append(w.shaders, shader{program: p, sources: src})
	return p, nil
}

// AddModel loads the model at path and draws it with program. A texture
// that cannot be loaded is logged and the model is drawn untextured; an
// empty texture path means no texture.
func (w *Window) AddModel(path, texturePath string, program *gfx.Program) error {
	if program == nil {
		return ErrNoProgram
	}

	var texture *gfx.Texture
	if texturePath != "" {
		t, err := w.load.texture(texturePath)
		if err != nil {
			slog.Warn("texture not loaded, drawing untextured", "path", texturePath, "err", err)
		} else {
			texture = t
			w.textures = append(w.textures, t)
		}
	}

	mesh, warnings, err := w.load.mesh(path, program, texture)
	logx.Warnings(path, warnings)
	if err != nil {
		return fmt.Errorf("viewer: load model: %w", err)
	}
	w.AddDrawable(mesh)
	slog.Info("model loaded", "path", path, "texture", texture != nil)
	return nil
}

// WatchShaders starts reloading file based programs when their sources
// change. wake is called from the watcher goroutine after each change.
func (w *Window) WatchShaders(wake func()) error {
	var paths []string
	for _, s := range w.shaders {
		if s.sources.Inline {
			continue
		}
		for _, p := range []string{s.sources.Vertex, s.sources.Fragment, s.sources.Geometry} {
			if p != "" {
				paths = append(paths, p)
			}
		}
	}
	if len(paths) == 0 {
		return nil
	}
	watcher, err := shaderwatch.New(paths, wake)
	if err != nil {
		return err
	}
	w.watcher = watcher
	return nil
}

// Close frees the scene, then the overlay, then the native window, and
// finally the windowing library. It is safe to call more than once.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true

	for _, d := range w.drawables {
		d.Delete()
	}
	w.drawables = nil
	for _, d := range []Drawable{w.axis, w.grid} {
		if d != nil {
			d.Delete()
		}
	}
	w.axis, w.grid = nil, nil
	for _, t := range w.textures {
		t.Delete()
	}
	w.textures = nil
	for _, s := range w.shaders {
		s.program.Delete()
	}
	w.shaders = nil

	if w.watcher != nil {
		logx.Log(w.watcher.Close())
		w.watcher = nil
	}
	if w.overlay != nil {
		w.overlay.Destroy()
		w.overlay = nil
	}
	for i := len(w.onClose) - 1; i >= 0; i-- {
		w.onClose[i]()
	}

	windows.Remove(w.surface.ID())
	w.surface.Destroy()
	w.queue.Clear()
	if w.terminate != nil {
		w.terminate()
	}
}
