package viewer

//go:generate mockgen -destination mock_viewer_test.go -package $GOPACKAGE -write_package_comment=false github.com/3Ution-BK/ModelViewer/internal/viewer Drawable

import (
	"errors"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/3Ution-BK/ModelViewer/internal/event"
	"github.com/3Ution-BK/ModelViewer/internal/gfx"
	"github.com/3Ution-BK/ModelViewer/internal/model"
	"github.com/3Ution-BK/ModelViewer/internal/overlay"
	"github.com/3Ution-BK/ModelViewer/internal/platform"
)

const testFrequency = 100

// fakeSurface is a window whose timer advances by step ticks on every
// poll. It asks to close after closeAfter swaps when closeAfter > 0.
type fakeSurface struct {
	id          event.WindowID
	shouldClose bool
	closeAfter  int
	swaps       int
	polls       int
	timer       uint64
	step        uint64
	pos         image.Point
	size        image.Point
	framebuffer image.Point
	cursor      mgl64.Vec2
	onPoll      func()
	log         *[]string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		id:          platform.NextID(),
		step:        10,
		pos:         image.Pt(100, 100),
		size:        image.Pt(800, 600),
		framebuffer: image.Pt(800, 600),
	}
}

func (s *fakeSurface) ID() event.WindowID           { return s.id }
func (s *fakeSurface) ShouldClose() bool            { return s.shouldClose }
func (s *fakeSurface) SetShouldClose(v bool)        { s.shouldClose = v }
func (s *fakeSurface) TimerValue() uint64           { return s.timer }
func (s *fakeSurface) TimerFrequency() uint64       { return testFrequency }
func (s *fakeSurface) SetPos(p image.Point)         { s.pos = p }
func (s *fakeSurface) SetSize(size image.Point)     { s.size = size }
func (s *fakeSurface) Pos() image.Point             { return s.pos }
func (s *fakeSurface) Size() image.Point            { return s.size }
func (s *fakeSurface) FramebufferSize() image.Point { return s.framebuffer }
func (s *fakeSurface) CursorPos() mgl64.Vec2        { return s.cursor }

func (s *fakeSurface) SwapBuffers() {
	s.swaps++
	if s.closeAfter > 0 && s.swaps >= s.closeAfter {
		s.shouldClose = true
	}
}

func (s *fakeSurface) PollEvents() {
	s.polls++
	s.timer += s.step
	if s.onPoll != nil {
		s.onPoll()
	}
}

func (s *fakeSurface) Destroy() {
	if s.log != nil {
		*s.log = append(*s.log, "surface")
	}
}

type fakeGraphics struct {
	viewports []image.Point
	modes     []gfx.RenderMode
	clears    []mgl32.Vec4
}

func (g *fakeGraphics) Viewport(size image.Point)    { g.viewports = append(g.viewports, size) }
func (g *fakeGraphics) Clear(color mgl32.Vec4)       { g.clears = append(g.clears, color) }
func (g *fakeGraphics) PolygonMode(m gfx.RenderMode) { g.modes = append(g.modes, m) }

// fakeOverlay records input and applies edit to the settings each frame.
type fakeOverlay struct {
	buttons []event.MouseButton
	cursor  mgl64.Vec2
	outside bool
	keys    []event.Key
	text    []rune
	wheel   mgl64.Vec2
	typing  bool
	frames  int
	delta   float64
	stats   overlay.Stats
	edit    func(s *overlay.Settings) bool
	log     *[]string
}

func (o *fakeOverlay) MouseButton(b event.MouseButton, _ event.Action) { o.buttons = append(o.buttons, b) }
func (o *fakeOverlay) CursorPos(p mgl64.Vec2)                          { o.cursor = p }
func (o *fakeOverlay) CursorEnter(entered bool)                        { o.outside = !entered }
func (o *fakeOverlay) Key(k event.Key, _ event.Action)                 { o.keys = append(o.keys, k) }
func (o *fakeOverlay) Char(r rune)                                     { o.text = append(o.text, r) }
func (o *fakeOverlay) Scroll(offset mgl64.Vec2)                        { o.wheel = o.wheel.Add(offset) }
func (o *fakeOverlay) WantCaptureMouse() bool                          { return false }
func (o *fakeOverlay) WantCaptureKeyboard() bool                       { return o.typing }

func (o *fakeOverlay) Frame(_, _ image.Point, delta float64, s *overlay.Settings, stats overlay.Stats) bool {
	o.frames++
	o.delta = delta
	o.stats = stats
	if o.edit != nil {
		return o.edit(s)
	}
	return false
}

func (o *fakeOverlay) Destroy() {
	if o.log != nil {
		*o.log = append(*o.log, "overlay")
	}
}

type fakeWatcher struct {
	pending []string
	closed  bool
	log     *[]string
}

func (f *fakeWatcher) Pending() []string {
	p := f.pending
	f.pending = nil
	return p
}

func (f *fakeWatcher) Close() error {
	f.closed = true
	if f.log != nil {
		*f.log = append(*f.log, "watcher")
	}
	return nil
}

var errBuild = errors.New("build failed")

// stubLoader builds empty GPU objects, so nothing touches OpenGL.
type stubLoader struct {
	builds      []gfx.Sources
	failProgram bool
	failTexture bool
	failMesh    bool
	textures    []*gfx.Texture
	drawable    Drawable
}

func (l *stubLoader) loader() loader {
	return loader{
		program: func(src gfx.Sources) (*gfx.Program, error) {
			l.builds = append(l.builds, src)
			if l.failProgram {
				return nil, errBuild
			}
			return new(gfx.Program), nil
		},
		texture: func(string) (*gfx.Texture, error) {
			if l.failTexture {
				return nil, errBuild
			}
			return new(gfx.Texture), nil
		},
		mesh: func(path string, _ *gfx.Program, tex *gfx.Texture) (Drawable, model.Warnings, error) {
			l.textures = append(l.textures, tex)
			if l.failMesh {
				return nil, model.Warnings{"bad face"}, errBuild
			}
			return l.drawable, nil, nil
		},
	}
}

func defaultSettings() overlay.Settings {
	return overlay.Settings{
		Background: mgl32.Vec4{0.2, 0.3, 0.3, 1},
		Camera:     mgl32.Vec3{8, 8, 8},
		RenderMode: gfx.Fill,
		TimeScale:  1,
	}
}

// newTestWindow returns a registered window over fakes. It is closed when
// the test ends.
func newTestWindow(t *testing.T) (*Window, *fakeSurface, *fakeGraphics) {
	t.Helper()
	s := newFakeSurface()
	g := &fakeGraphics{}
	w := newWindow(s, g, defaultSettings())
	w.load = (&stubLoader{}).loader()
	windows.Add(s.id, w)
	t.Cleanup(w.Close)
	return w, s, g
}
