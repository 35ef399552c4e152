package renderer

import (
	"fmt"
	"image"

	"github.com/g3n/engine/math32"
	"github.com/g3n/engine/text"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/gofont/gobold"
)

// TextStyle describes a line of page text. Size is the font size in logical
// pixels at page zoom 1 already multiplied by the zoom.
type TextStyle struct {
	Size  float32
	Color mgl32.Vec3
}

// Rasterizer draws strings into tightly fitting RGBA images with the Go Bold
// face. It has no GL state and can be used without a context.
type Rasterizer struct {
	font *text.Font
}

func NewRasterizer() (*Rasterizer, error) {
	f, err := text.NewFontFromData(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Rasterizer{font: f}, nil
}

// Rasterize renders s with a pixel size of size. The font is set up at 72
// DPI so points and pixels are the same unit. The image is premultiplied
// over a transparent background; nil means there is nothing to draw.
func (r *Rasterizer) Rasterize(s string, size float32, color mgl32.Vec3) *image.RGBA {
	if s == "" || size <= 0 {
		return nil
	}
	r.font.SetPointSize(float64(size))
	r.font.SetColor(&math32.Color4{R: color[0], G: color[1], B: color[2], A: 1})

	img := r.font.DrawText(s)
	if img.Bounds().Empty() {
		return nil
	}
	return img
}

// centerIn places a w by h rectangle in the middle of the framebuffer
// rectangle (x, y, rw, rh). The result may spill outside, callers scissor.
func centerIn(x, y, rw, rh, w, h int32) (int32, int32) {
	return x + (rw-w)/2, y + (rh-h)/2
}
