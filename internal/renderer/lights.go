package renderer

import (
	"math"

	"ModelPreview/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

type directionalUniform struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
}

type pointUniform struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

type spotUniform struct {
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	Color       mgl32.Vec3
	ConeCos     float32
	PenumbraCos float32
}

// lightUniforms is the shader-side form of a light rig.
type lightUniforms struct {
	Ambient     mgl32.Vec3
	Directional []directionalUniform
	Point       []pointUniform
	Spot        []spotUniform
	Dropped     int // lights beyond MaxLightsPerKind
}

func packLights(lights []*scene.Light) lightUniforms {
	var u lightUniforms
	for _, l := range lights {
		radiance := l.Color.Mul(l.Intensity)
		switch l.Kind {
		case scene.LightAmbient:
			u.Ambient = u.Ambient.Add(radiance)
		case scene.LightDirectional:
			if len(u.Directional) == MaxLightsPerKind {
				u.Dropped++
				continue
			}
			u.Directional = append(u.Directional, directionalUniform{
				Direction: direction(l.Target, l.Position),
				Color:     radiance,
			})
		case scene.LightPoint:
			if len(u.Point) == MaxLightsPerKind {
				u.Dropped++
				continue
			}
			u.Point = append(u.Point, pointUniform{Position: l.Position, Color: radiance})
		case scene.LightSpot:
			if len(u.Spot) == MaxLightsPerKind {
				u.Dropped++
				continue
			}
			u.Spot = append(u.Spot, spotUniform{
				Position:    l.Position,
				Direction:   direction(l.Position, l.Target),
				Color:       radiance,
				ConeCos:     float32(math.Cos(float64(l.Angle))),
				PenumbraCos: float32(math.Cos(float64(l.Angle * (1 - l.Penumbra)))),
			})
		}
	}
	return u
}

// direction is the unit vector from a to b, straight down when they coincide.
func direction(from, to mgl32.Vec3) mgl32.Vec3 {
	d := to.Sub(from)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}
