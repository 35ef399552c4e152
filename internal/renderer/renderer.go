package renderer

import (
	"ModelPreview/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLightsPerKind is how many directional, point and spot lights the
// shader evaluates. Further lights of a kind are ignored while shading.
const MaxLightsPerKind = 8

// Render is what a preview needs from a GPU backend. Calls happen on the
// goroutine that owns the GL context.
type Render interface {
	// Upload creates GPU buffers for every mesh under root.
	Upload(root *scene.Node) error
	// Release frees the buffers Upload created for root.
	Release(root *scene.Node)
	// Clear fills vp with a solid color.
	Clear(vp Viewport, color mgl32.Vec3)
	// Draw renders root into vp as seen by camera.
	Draw(vp Viewport, camera *Camera, lights []*scene.Light, root *scene.Node)
	// DrawText draws one line of text centered in vp.
	DrawText(vp Viewport, s string, style TextStyle)
}
