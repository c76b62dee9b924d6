package viewer

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/3Ution-BK/ModelViewer/internal/event"
	"github.com/3Ution-BK/ModelViewer/internal/overlay"
	"github.com/3Ution-BK/ModelViewer/internal/timeframe"
)

// Projection parameters of the scene camera.
const (
	FieldOfView = 45
	Near        = 0.1
	Far         = 100
)

var up = mgl32.Vec3{0, 1, 0}

// Run starts the frame clock and runs frames until the window should
// close or ctx is cancelled. Cancellation is noticed at the start of the
// next frame. The clock is stopped when Run returns.
func (w *Window) Run(ctx context.Context) error {
	w.clock = timeframe.New(w.surface.TimerFrequency())
	w.clock.SetTimeScale(float64(w.settings.TimeScale))
	if err := w.clock.Start(w.surface.TimerValue()); err != nil {
		return err
	}

	for !w.surface.ShouldClose() {
		if ctx.Err() != nil {
			w.surface.SetShouldClose(true)
			break
		}
		if err := w.frame(); err != nil {
			w.clock.Stop()
			return err
		}
	}
	return w.clock.Stop()
}

// frame runs one iteration of the loop. Events that callbacks push while
// polling are handled at the start of the next frame.
func (w *Window) frame() error {
	if err := w.clock.Update(w.surface.TimerValue()); err != nil {
		return err
	}
	w.queue.Drain(w.handlers.Dispatch)

	w.graphics.Clear(w.settings.Background)
	w.render()
	w.drawOverlay()
	w.surface.SwapBuffers()

	w.surface.PollEvents()
	w.forwardShaderChanges()
	return nil
}

// render draws the scene. Nothing is drawn while the framebuffer has no
// area, for example when the window is minimized.
func (w *Window) render() {
	if w.framebuffer.X <= 0 || w.framebuffer.Y <= 0 {
		return
	}
	mvp := w.ViewProjection()
	if w.settings.Grid && w.grid != nil {
		w.grid.Draw(mvp)
	}
	if w.settings.Axis && w.axis != nil {
		w.axis.Draw(mvp)
	}
	for _, d := range w.drawables {
		d.Draw(mvp)
	}
}

// ViewProjection returns the projection times view matrix of the current
// camera. Models use the identity model matrix.
func (w *Window) ViewProjection() mgl32.Mat4 {
	view := mgl32.LookAtV(w.settings.Camera, w.settings.LookAt, up)
	aspect := float32(1)
	if w.framebuffer.Y > 0 {
		aspect = float32(w.framebuffer.X) / float32(w.framebuffer.Y)
	}
	projection := mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, Near, Far)
	return projection.Mul4(view)
}

func (w *Window) drawOverlay() {
	if w.overlay == nil {
		return
	}
	before := w.settings
	if w.overlay.Frame(w.size, w.framebuffer, w.clock.UnscaledDeltaTime(), &w.settings, w.stats()) {
		w.apply(before)
	}
}

func (w *Window) stats() overlay.Stats {
	return overlay.Stats{
		Delta:         w.clock.DeltaTime(),
		UnscaledDelta: w.clock.UnscaledDeltaTime(),
		Time:          w.clock.Time(),
		UnscaledTime:  w.clock.UnscaledTime(),
		FPS:           w.clock.FPS(),
	}
}

// apply pushes settings edited by the overlay to the GL context and the
// clock.
func (w *Window) apply(before overlay.Settings) {
	if w.settings.RenderMode != before.RenderMode {
		w.graphics.PolygonMode(w.settings.RenderMode)
	}
	if w.settings.TimeScale != before.TimeScale {
		w.setTimeScale(w.settings.TimeScale)
	}
}

func (w *Window) setTimeScale(t float32) {
	w.settings.TimeScale = max(t, 0)
	if w.clock != nil {
		w.clock.SetTimeScale(float64(w.settings.TimeScale))
	}
}

func (w *Window) forwardShaderChanges() {
	if w.watcher == nil {
		return
	}
	for _, path := range w.watcher.Pending() {
		w.queue.Push(event.NewShaderChanged(path, w.surface.TimerValue()))
	}
}
