package viewer

import (
	"context"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/3Ution-BK/ModelViewer/internal/event"
	"github.com/3Ution-BK/ModelViewer/internal/gfx"
	"github.com/3Ution-BK/ModelViewer/internal/overlay"
	"github.com/3Ution-BK/ModelViewer/internal/timeframe"
)

func TestNewWindowAppliesInitialState(t *testing.T) {
	w, s, g := newTestWindow(t)
	assert.Equal(t, []image.Point{s.framebuffer}, g.viewports)
	assert.Equal(t, []gfx.RenderMode{gfx.Fill}, g.modes)
	assert.Equal(t, s.pos, w.Position())
	assert.Equal(t, s.size, w.Size())
	assert.Equal(t, s.framebuffer, w.FramebufferSize())
	assert.Equal(t, s.id, w.ID())
}

func TestRunStopsClockOnClose(t *testing.T) {
	w, s, g := newTestWindow(t)
	s.closeAfter = 3

	require.NoError(t, w.Run(context.Background()))
	assert.Equal(t, uint64(3), w.Clock().FrameCount())
	assert.False(t, w.Clock().Running())
	assert.Equal(t, 3, s.polls)
	assert.Len(t, g.clears, 3)
	assert.Equal(t, defaultSettings().Background, g.clears[0])
	// The timer advances 10 ticks per poll at 100 ticks per second.
	assert.InDelta(t, 0.2, w.Clock().Time(), 1e-9)
	assert.InDelta(t, 0.1, w.Clock().DeltaTime(), 1e-9)
}

func TestRunHonorsCancellation(t *testing.T) {
	w, s, _ := newTestWindow(t)
	ctx, cancel := context.WithCancel(context.Background())
	s.onPoll = func() {
		if s.polls == 2 {
			cancel()
		}
	}

	require.NoError(t, w.Run(ctx))
	assert.True(t, s.shouldClose)
	assert.Equal(t, uint64(2), w.Clock().FrameCount())
}

func TestRunWithClosedWindowRunsNoFrame(t *testing.T) {
	w, s, _ := newTestWindow(t)
	s.shouldClose = true
	require.NoError(t, w.Run(context.Background()))
	assert.Zero(t, w.Clock().FrameCount())
	assert.Zero(t, s.swaps)
}

func TestEventsPushedWhilePollingAreHandledNextFrame(t *testing.T) {
	w, s, g := newTestWindow(t)
	s.closeAfter = 2
	s.onPoll = func() {
		if s.polls == 1 {
			callbacks{}.FramebufferSize(s.id, 400, 300)
			assert.Equal(t, 1, w.PendingEvents())
			assert.Equal(t, image.Pt(800, 600), w.FramebufferSize(), "not handled during the poll")
		}
	}

	require.NoError(t, w.Run(context.Background()))
	assert.Equal(t, image.Pt(400, 300), w.FramebufferSize())
	assert.Equal(t, image.Pt(400, 300), g.viewports[len(g.viewports)-1])
	assert.Zero(t, w.PendingEvents())
}

func TestEscapeClosesWindow(t *testing.T) {
	w, s, _ := newTestWindow(t)
	w.Push(event.NewKeyboard(event.KeyEscape, event.Press, 9, 0, 0, s.id))

	require.NoError(t, w.Run(context.Background()))
	assert.True(t, s.shouldClose)
	assert.Equal(t, uint64(1), w.Clock().FrameCount())
}

func TestEscapeReleaseIsIgnored(t *testing.T) {
	w, s, _ := newTestWindow(t)
	w.keyboard(event.NewKeyboard(event.KeyEscape, event.Release, 9, 0, 0, s.id))
	assert.False(t, s.shouldClose)
}

func TestRenderModeKey(t *testing.T) {
	w, s, g := newTestWindow(t)
	w.keyboard(event.NewKeyboard(event.KeyF, event.Press, 0, 0, 0, s.id))
	assert.Equal(t, gfx.Line, w.Settings().RenderMode)
	w.keyboard(event.NewKeyboard(event.KeyF, event.Press, 0, 0, 0, s.id))
	assert.Equal(t, gfx.Fill, w.Settings().RenderMode)
	assert.Equal(t, []gfx.RenderMode{gfx.Fill, gfx.Line, gfx.Fill}, g.modes)
}

func TestResetCameraKey(t *testing.T) {
	w, s, _ := newTestWindow(t)
	w.settings.Camera = mgl32.Vec3{1, 2, 3}
	w.settings.LookAt = mgl32.Vec3{4, 5, 6}
	w.keyboard(event.NewKeyboard(event.KeyR, event.Press, 0, 0, 0, s.id))
	assert.Equal(t, defaultSettings().Camera, w.Settings().Camera)
	assert.Equal(t, mgl32.Vec3{}, w.Settings().LookAt)
}

func TestPauseKey(t *testing.T) {
	w, s, _ := newTestWindow(t)
	w.clock = timeframe.New(testFrequency)
	w.settings.TimeScale = 2
	w.clock.SetTimeScale(2)

	space := func() { w.keyboard(event.NewKeyboard(event.KeySpace, event.Press, 0, 0, 0, s.id)) }
	space()
	assert.Zero(t, w.Settings().TimeScale)
	assert.Zero(t, w.Clock().TimeScale())
	space()
	assert.Equal(t, float32(2), w.Settings().TimeScale)
	assert.Equal(t, 2.0, w.Clock().TimeScale())
}

func TestResumeAfterPausedStart(t *testing.T) {
	w, s, _ := newTestWindow(t)
	w.settings.TimeScale = 0
	w.keyboard(event.NewKeyboard(event.KeySpace, event.Press, 0, 0, 0, s.id))
	assert.Equal(t, float32(1), w.Settings().TimeScale)
}

func TestMoveAndResizeHandlers(t *testing.T) {
	w, s, g := newTestWindow(t)
	w.handlers.Dispatch(event.NewMove(image.Pt(5, 6), w.Position(), 0, s.id))
	w.handlers.Dispatch(event.NewWindowResize(image.Pt(640, 480), w.Size(), 0, s.id))
	assert.Equal(t, image.Pt(5, 6), w.Position())
	assert.Equal(t, image.Pt(640, 480), w.Size())
	assert.Equal(t, image.Pt(800, 600), w.FramebufferSize(), "window and framebuffer sizes are independent")
	assert.Len(t, g.viewports, 1)
}

func TestSetPositionAndSizeForwardToSurface(t *testing.T) {
	w, s, _ := newTestWindow(t)
	w.SetPosition(image.Pt(1, 2))
	w.SetSize(image.Pt(3, 4))
	assert.Equal(t, image.Pt(1, 2), s.pos)
	assert.Equal(t, image.Pt(3, 4), s.size)
	assert.Equal(t, image.Pt(100, 100), w.Position(), "updated by the move event, not the setter")
}

func TestMouseAndCursorGoToOverlay(t *testing.T) {
	w, s, _ := newTestWindow(t)
	o := &fakeOverlay{}
	w.SetOverlay(o)

	w.handlers.Dispatch(event.NewMouse(event.ButtonRight, event.Press, mgl64.Vec2{}, 0, 0, s.id))
	w.handlers.Dispatch(event.NewCursorMove(mgl64.Vec2{3, 4}, w.Cursor(), 0, s.id))
	assert.Equal(t, []event.MouseButton{event.ButtonRight}, o.buttons)
	assert.Equal(t, mgl64.Vec2{3, 4}, o.cursor)
	assert.Equal(t, mgl64.Vec2{3, 4}, w.Cursor())
}

func TestTextScrollAndLeaveGoToOverlay(t *testing.T) {
	w, s, _ := newTestWindow(t)
	o := &fakeOverlay{}
	w.SetOverlay(o)

	w.handlers.Dispatch(event.NewKeyboard(event.KeyBackspace, event.Press, 0, 0, 0, s.id))
	w.handlers.Dispatch(event.NewChar('é', 0, s.id))
	w.handlers.Dispatch(event.NewScroll(mgl64.Vec2{0, -1}, 0, s.id))
	w.handlers.Dispatch(event.NewScroll(mgl64.Vec2{0.5, -1}, 0, s.id))
	w.handlers.Dispatch(event.NewCursorEnter(false, 0, s.id))

	assert.Equal(t, []event.Key{event.KeyBackspace}, o.keys)
	assert.Equal(t, []rune{'é'}, o.text)
	assert.Equal(t, mgl64.Vec2{0.5, -2}, o.wheel)
	assert.True(t, o.outside)

	w.handlers.Dispatch(event.NewCursorEnter(true, 0, s.id))
	assert.False(t, o.outside)
}

func TestShortcutsAreSkippedWhileOverlayHasKeyboard(t *testing.T) {
	w, s, _ := newTestWindow(t)
	o := &fakeOverlay{typing: true}
	w.SetOverlay(o)
	mode := w.Settings().RenderMode

	for _, k := range []event.Key{event.KeyF, event.KeyR, event.KeySpace, event.KeyEscape} {
		w.handlers.Dispatch(event.NewKeyboard(k, event.Press, 0, 0, 0, s.id))
	}
	assert.Equal(t, []event.Key{event.KeyF, event.KeyR, event.KeySpace, event.KeyEscape}, o.keys)
	assert.Equal(t, mode, w.Settings().RenderMode)
	assert.False(t, s.shouldClose)

	o.typing = false
	w.handlers.Dispatch(event.NewKeyboard(event.KeyEscape, event.Press, 0, 0, 0, s.id))
	assert.True(t, s.shouldClose)
}

func TestCustomHandlerTakesPriority(t *testing.T) {
	w, s, _ := newTestWindow(t)
	var seen int
	w.Handlers().Register(event.Bind(func(*event.Keyboard) { seen++ }))

	w.handlers.Dispatch(event.NewKeyboard(event.KeyEscape, event.Press, 0, 0, 0, s.id))
	assert.Equal(t, 1, seen)
	assert.False(t, s.shouldClose)
}

func TestRenderPassDrawsWithViewProjection(t *testing.T) {
	ctrl := gomock.NewController(t)
	w, s, _ := newTestWindow(t)
	s.closeAfter = 2

	d := NewMockDrawable(ctrl)
	d.EXPECT().Draw(w.ViewProjection()).Times(2)
	d.EXPECT().Delete()
	w.AddDrawable(d)

	require.NoError(t, w.Run(context.Background()))
}

func TestRenderPassSkipsEmptyFramebuffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	w, s, g := newTestWindow(t)
	s.closeAfter = 1

	d := NewMockDrawable(ctrl)
	d.EXPECT().Draw(gomock.Any()).Times(0)
	d.EXPECT().Delete()
	w.AddDrawable(d)
	w.framebufferResized(event.NewFramebufferResize(image.Pt(0, 0), w.FramebufferSize(), 0, s.id))

	require.NoError(t, w.Run(context.Background()))
	assert.Len(t, g.clears, 1, "the frame still clears and swaps")
	assert.Equal(t, 1, s.swaps)
}

func TestLinesFollowSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	w, _, _ := newTestWindow(t)
	axis := NewMockDrawable(ctrl)
	grid := NewMockDrawable(ctrl)
	w.setLines(axis, grid)

	mvp := w.ViewProjection()
	gomock.InOrder(
		grid.EXPECT().Draw(mvp),
		axis.EXPECT().Draw(mvp),
	)
	axis.EXPECT().Delete()
	grid.EXPECT().Delete()

	w.render()
	w.settings.Axis, w.settings.Grid = true, true
	w.render()
}

func TestViewProjection(t *testing.T) {
	w, _, _ := newTestWindow(t)
	want := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100).
		Mul4(mgl32.LookAtV(mgl32.Vec3{8, 8, 8}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	assert.True(t, want.ApproxEqual(w.ViewProjection()))
}

func TestOverlayEditsAreApplied(t *testing.T) {
	w, s, g := newTestWindow(t)
	s.closeAfter = 2
	o := &fakeOverlay{edit: func(st *overlay.Settings) bool {
		if st.RenderMode == gfx.Line {
			return false
		}
		st.RenderMode = gfx.Line
		st.TimeScale = 2.5
		st.Background = mgl32.Vec4{1, 0, 0, 1}
		return true
	}}
	w.SetOverlay(o)

	require.NoError(t, w.Run(context.Background()))
	assert.Equal(t, 2, o.frames)
	assert.Equal(t, []gfx.RenderMode{gfx.Fill, gfx.Line}, g.modes)
	assert.Equal(t, 2.5, w.Clock().TimeScale())
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, g.clears[1])
	assert.InDelta(t, 0.1, o.delta, 1e-9)
	assert.InDelta(t, 0.1, o.stats.UnscaledDelta, 1e-9)
}

func TestAddShader(t *testing.T) {
	w, _, _ := newTestWindow(t)
	l := &stubLoader{}
	w.load = l.loader()

	src := gfx.Sources{Vertex: "a.vert", Fragment: "a.frag"}
	p, err := w.AddShader(src)
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.Equal(t, []gfx.Sources{src}, l.builds)

	l.failProgram = true
	p, err = w.AddShader(src)
	assert.ErrorIs(t, err, errBuild)
	assert.Nil(t, p)
	assert.Len(t, w.shaders, 1)
}

func TestAddModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	w, _, _ := newTestWindow(t)
	d := NewMockDrawable(ctrl)
	d.EXPECT().Delete()
	l := &stubLoader{drawable: d}
	w.load = l.loader()

	require.NoError(t, w.AddModel("cube.obj", "cube.png", new(gfx.Program)))
	assert.Equal(t, []Drawable{d}, w.drawables)
	require.Len(t, l.textures, 1)
	assert.NotNil(t, l.textures[0])
	assert.Len(t, w.textures, 1)
}

func TestAddModelWithoutTexture(t *testing.T) {
	ctrl := gomock.NewController(t)
	w, _, _ := newTestWindow(t)
	d := NewMockDrawable(ctrl)
	d.EXPECT().Delete().Times(2)
	l := &stubLoader{drawable: d, failTexture: true}
	w.load = l.loader()

	require.NoError(t, w.AddModel("cube.obj", "missing.png", new(gfx.Program)))
	require.NoError(t, w.AddModel("cube.obj", "", new(gfx.Program)))
	assert.Equal(t, []*gfx.Texture{nil, nil}, l.textures)
	assert.Empty(t, w.textures)
}

func TestAddModelFailure(t *testing.T) {
	w, _, _ := newTestWindow(t)
	w.load = (&stubLoader{failMesh: true}).loader()

	assert.ErrorIs(t, w.AddModel("bad.obj", "", new(gfx.Program)), errBuild)
	assert.ErrorIs(t, w.AddModel("bad.obj", "", nil), ErrNoProgram)
	assert.Empty(t, w.drawables)
}

func TestShaderReload(t *testing.T) {
	w, _, _ := newTestWindow(t)
	l := &stubLoader{}
	w.load = l.loader()

	fileSrc := gfx.Sources{Vertex: "model.vert", Fragment: "model.frag"}
	program, err := w.AddShader(fileSrc)
	require.NoError(t, err)
	_, err = w.AddShader(gfx.Sources{Vertex: "model.vert", Fragment: "x", Inline: true})
	require.NoError(t, err)
	l.builds = nil

	w.handlers.Dispatch(event.NewShaderChanged("other.frag", 0))
	assert.Empty(t, l.builds)

	w.handlers.Dispatch(event.NewShaderChanged("model.frag", 0))
	assert.Equal(t, []gfx.Sources{fileSrc}, l.builds, "inline programs are never rebuilt")
	assert.Same(t, program, w.shaders[0].program, "holders keep their pointer")

	l.failProgram = true
	w.handlers.Dispatch(event.NewShaderChanged("model.vert", 0))
	assert.Same(t, program, w.shaders[0].program)
}

func TestShaderChangesAreForwarded(t *testing.T) {
	w, s, _ := newTestWindow(t)
	l := &stubLoader{}
	w.load = l.loader()
	_, err := w.AddShader(gfx.Sources{Vertex: "model.vert", Fragment: "model.frag"})
	require.NoError(t, err)
	l.builds = nil

	watcher := &fakeWatcher{}
	w.watcher = watcher
	s.closeAfter = 2
	s.onPoll = func() {
		if s.polls == 1 {
			watcher.pending = []string{"model.vert"}
		}
	}

	require.NoError(t, w.Run(context.Background()))
	assert.Len(t, l.builds, 1)
}

func TestWatchShadersWithoutFiles(t *testing.T) {
	w, _, _ := newTestWindow(t)
	require.NoError(t, w.WatchShaders(nil))
	assert.Nil(t, w.watcher)
}

func TestCloseOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	var log []string
	s := newFakeSurface()
	s.log = &log
	w := newWindow(s, &fakeGraphics{}, defaultSettings())
	windows.Add(s.id, w)

	d := NewMockDrawable(ctrl)
	d.EXPECT().Delete().Do(func() { log = append(log, "model") })
	w.AddDrawable(d)
	w.SetOverlay(&fakeOverlay{log: &log})
	w.watcher = &fakeWatcher{log: &log}
	w.onClose = append(w.onClose, func() { log = append(log, "debug") })
	w.terminate = func() { log = append(log, "terminate") }
	w.Push(event.NewShaderChanged("x", 0))

	w.Close()
	w.Close()
	assert.Equal(t, []string{"model", "watcher", "overlay", "debug", "surface", "terminate"}, log)
	_, ok := windows.Lookup(s.id)
	assert.False(t, ok)
	assert.Zero(t, w.PendingEvents())
}

func TestFrameNeedsRunningClock(t *testing.T) {
	w, _, _ := newTestWindow(t)
	w.clock = timeframe.New(testFrequency)
	assert.ErrorIs(t, w.frame(), timeframe.ErrStopped)
}
