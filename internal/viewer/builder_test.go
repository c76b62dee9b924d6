package viewer

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3Ution-BK/ModelViewer/internal/config"
	"github.com/3Ution-BK/ModelViewer/internal/gfx"
)

func TestBuilderDefaults(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, Version{4, 3}, b.ProductVersion())
	assert.Equal(t, image.Point{}, b.ProductPosition())
	assert.Equal(t, image.Pt(800, 600), b.ProductSize())
	assert.Empty(t, b.ProductTitle())
	assert.False(t, b.ProductDebug())
	assert.Equal(t, config.Default().Scene, b.ProductScene())
}

func TestBuilderChainingAndReset(t *testing.T) {
	b := NewBuilder()
	same := b.SetVersion(4, 6).
		SetTitle("LearnOpenGL").
		SetPosition(image.Pt(100, 100)).
		SetSize(image.Pt(1024, 768)).
		SetDebug(true)
	assert.Same(t, b, same)
	assert.Equal(t, Version{4, 6}, b.ProductVersion())
	assert.Equal(t, "LearnOpenGL", b.ProductTitle())
	assert.Equal(t, image.Pt(100, 100), b.ProductPosition())
	assert.Equal(t, image.Pt(1024, 768), b.ProductSize())
	assert.True(t, b.ProductDebug())

	b.Reset()
	assert.Equal(t, NewBuilder(), b)
}

func TestBuilderConfigure(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Title = "viewer"
	cfg.Window.X, cfg.Window.Y = 10, 20
	cfg.Window.Debug = true
	cfg.Scene.Axis = true

	b := NewBuilder().Configure(cfg)
	assert.Equal(t, "viewer", b.ProductTitle())
	assert.Equal(t, image.Pt(10, 20), b.ProductPosition())
	assert.Equal(t, image.Pt(800, 600), b.ProductSize())
	assert.True(t, b.ProductDebug())
	assert.True(t, b.ProductScene().Axis)
}

func TestBuildRejectsBadParametersAndResets(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Builder)
		want  error
	}{
		{"old version", func(b *Builder) { b.SetVersion(3, 3) }, ErrVersion},
		{"old minor", func(b *Builder) { b.SetVersion(4, 2) }, ErrVersion},
		{"empty size", func(b *Builder) { b.SetSize(image.Pt(0, 600)) }, nil},
		{"bad render mode", func(b *Builder) {
			s := config.Default().Scene
			s.RenderMode = "points"
			b.SetScene(s)
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder().SetTitle("x")
			tt.setup(b)
			w, err := b.Build()
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.Nil(t, w)
			assert.Equal(t, NewBuilder(), b, "builder is reset after Build")
		})
	}
}

func TestVersionLess(t *testing.T) {
	assert.True(t, Version{3, 3}.Less(MinVersion))
	assert.True(t, Version{4, 2}.Less(MinVersion))
	assert.False(t, Version{4, 3}.Less(MinVersion))
	assert.False(t, Version{4, 6}.Less(MinVersion))
	assert.False(t, Version{5, 0}.Less(MinVersion))
	assert.Equal(t, "4.3", MinVersion.String())
}

func TestSettingsFromScene(t *testing.T) {
	scene := config.Default().Scene
	scene.RenderMode = "line"
	scene.TimeScale = -1
	scene.Grid = true

	s, err := settings(scene)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{0.2, 0.3, 0.3, 1}, s.Background)
	assert.Equal(t, mgl32.Vec3{8, 8, 8}, s.Camera)
	assert.Equal(t, gfx.Line, s.RenderMode)
	assert.Zero(t, s.TimeScale)
	assert.True(t, s.Grid)
	assert.False(t, s.Axis)
}
