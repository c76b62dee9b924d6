package overlay

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/3Ution-BK/ModelViewer/internal/gfx"
)

// Slider ranges of the settings panel.
const (
	PositionRange = 20
	MaxTimeScale  = 3
)

const settingsWindow = "Setting"

// Settings are the scene parameters the panel edits in place.
type Settings struct {
	Background mgl32.Vec4
	Camera     mgl32.Vec3
	LookAt     mgl32.Vec3
	RenderMode gfx.RenderMode
	TimeScale  float32
	Axis       bool
	Grid       bool
}

// Stats are the clock readings shown below the settings.
type Stats struct {
	Delta, UnscaledDelta float64
	Time, UnscaledTime   float64
	FPS                  float64
}

// Lines formats s as the panel shows it, scaled value first.
func (s Stats) Lines() []string {
	return []string{
		fmt.Sprintf("DeltaTime: [%f, %f]", s.Delta, s.UnscaledDelta),
		fmt.Sprintf("Time: [%f, %f]", s.Time, s.UnscaledTime),
		fmt.Sprintf("FPS: %f", s.FPS),
	}
}

// drawPanel builds the settings window and reports whether any value
// changed.
func drawPanel(s *Settings, stats Stats) bool {
	changed := false
	imgui.Begin(settingsWindow)
	defer imgui.End()

	changed = imgui.ColorEdit4("Background color", (*[4]float32)(&s.Background)) || changed
	changed = imgui.SliderFloat3("Camera Position", (*[3]float32)(&s.Camera), -PositionRange, PositionRange) || changed
	changed = imgui.SliderFloat3("Look At", (*[3]float32)(&s.LookAt), -PositionRange, PositionRange) || changed

	if imgui.BeginCombo("Render mode", s.RenderMode.String()) {
		for _, m := range gfx.RenderModes {
			if imgui.SelectableV(m.String(), m == s.RenderMode, 0, imgui.Vec2{}) && m != s.RenderMode {
				s.RenderMode = m
				changed = true
			}
		}
		imgui.EndCombo()
	}

	changed = imgui.SliderFloat("Time scale", &s.TimeScale, 0, MaxTimeScale) || changed
	changed = imgui.Checkbox("Axis", &s.Axis) || changed
	changed = imgui.Checkbox("Grid", &s.Grid) || changed

	imgui.Separator()
	for _, line := range stats.Lines() {
		imgui.Text(line)
	}
	return changed
}
