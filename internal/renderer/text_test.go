package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterizeDrawsGlyphs(t *testing.T) {
	r, err := NewRasterizer()
	require.NoError(t, err)

	img := r.Rasterize("Gaming Chair", 18, mgl32.Vec3{0.216, 0.255, 0.318})
	require.NotNil(t, img)

	size := img.Rect.Size()
	assert.Greater(t, size.X, size.Y, "a line of text is wider than tall")
	assert.GreaterOrEqual(t, size.Y, 18)

	var inked, clear int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0 {
			clear++
		} else {
			inked++
		}
	}
	assert.NotZero(t, inked)
	assert.NotZero(t, clear, "background stays transparent")
}

func TestRasterizeScales(t *testing.T) {
	r, err := NewRasterizer()
	require.NoError(t, err)

	small := r.Rasterize("fox", 18, mgl32.Vec3{})
	large := r.Rasterize("fox", 36, mgl32.Vec3{})
	longer := r.Rasterize("fox fox", 18, mgl32.Vec3{})

	require.NotNil(t, small)
	assert.Greater(t, large.Rect.Dy(), small.Rect.Dy())
	assert.Greater(t, longer.Rect.Dx(), small.Rect.Dx())
}

func TestRasterizeNothing(t *testing.T) {
	r, err := NewRasterizer()
	require.NoError(t, err)

	assert.Nil(t, r.Rasterize("", 18, mgl32.Vec3{}))
	assert.Nil(t, r.Rasterize("Table", 0, mgl32.Vec3{}))
}

func TestCenterIn(t *testing.T) {
	x, y := centerIn(100, 50, 400, 32, 120, 20)
	assert.Equal(t, int32(240), x)
	assert.Equal(t, int32(56), y)

	x, _ = centerIn(0, 0, 100, 32, 140, 20)
	assert.Equal(t, int32(-20), x, "text wider than its box overflows both sides")
}
