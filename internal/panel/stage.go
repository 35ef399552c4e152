package panel

import (
	"ModelPreview/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// stage wraps model in a group that moves its bounds center to the origin
// and scales it so the bounding sphere has the given radius. The camera is
// left where it is.
func stage(model *scene.Node, radius float32) *scene.Node {
	group := scene.NewGroup("stage")
	group.Add(model)

	min, max, ok := model.Bounds()
	if !ok || radius <= 0 {
		return group
	}
	center := min.Add(max).Mul(0.5)
	extent := max.Sub(min).Len() / 2
	scale := float32(1)
	if extent > 0 {
		scale = radius / extent
	}
	group.Local = mgl32.Scale3D(scale, scale, scale).Mul4(mgl32.Translate3D(-center.X(), -center.Y(), -center.Z()))
	return group
}
