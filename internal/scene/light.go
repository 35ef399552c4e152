package scene

import "github.com/go-gl/mathgl/mgl32"

type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
	LightSpot
)

func (k LightKind) String() string {
	switch k {
	case LightAmbient:
		return "ambient"
	case LightDirectional:
		return "directional"
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	}
	return "unknown"
}

// Light is a renderer-side light model. Directional and spot lights aim at
// Target. Angle and Penumbra only apply to spot lights.
type Light struct {
	Kind      LightKind
	Position  mgl32.Vec3
	Target    mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Angle     float32 // cone half-width in radians
	Penumbra  float32 // fraction of the cone that fades, nominally [0,1]
}
