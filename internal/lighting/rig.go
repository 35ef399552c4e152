// Package lighting turns declarative light settings into scene light nodes.
package lighting

import (
	"ModelPreview/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

type AmbientLight struct {
	Intensity float32
}

type DirectionalLight struct {
	Position  mgl32.Vec3
	Intensity float32
}

type PointLight struct {
	Position  mgl32.Vec3
	Intensity float32
}

type SpotLight struct {
	Position  mgl32.Vec3
	Angle     float32
	Penumbra  float32
	Intensity float32
}

// LightingConfig fully determines a rig. Any of the slices may be empty.
type LightingConfig struct {
	Ambient     AmbientLight
	Directional []DirectionalLight
	Point       []PointLight
	Spot        []SpotLight
}

var white = mgl32.Vec3{1, 1, 1}

// Count is the number of nodes Instantiate produces for cfg.
func Count(cfg LightingConfig) int {
	return 1 + len(cfg.Directional) + len(cfg.Point) + len(cfg.Spot)
}

// Instantiate builds one light node per configured light: the ambient
// light first, then directional, point and spot lights in slice order.
// Values are copied through as given.
func Instantiate(cfg LightingConfig) []*scene.Node {
	nodes := make([]*scene.Node, 0, Count(cfg))

	nodes = append(nodes, scene.NewLightNode(&scene.Light{
		Kind:      scene.LightAmbient,
		Color:     white,
		Intensity: cfg.Ambient.Intensity,
	}))

	for _, l := range cfg.Directional {
		nodes = append(nodes, scene.NewLightNode(&scene.Light{
			Kind:      scene.LightDirectional,
			Position:  l.Position,
			Color:     white,
			Intensity: l.Intensity,
		}))
	}

	for _, l := range cfg.Point {
		nodes = append(nodes, scene.NewLightNode(&scene.Light{
			Kind:      scene.LightPoint,
			Position:  l.Position,
			Color:     white,
			Intensity: l.Intensity,
		}))
	}

	for _, l := range cfg.Spot {
		nodes = append(nodes, scene.NewLightNode(&scene.Light{
			Kind:      scene.LightSpot,
			Position:  l.Position,
			Color:     white,
			Intensity: l.Intensity,
			Angle:     l.Angle,
			Penumbra:  l.Penumbra,
		}))
	}

	return nodes
}
