package gallery

import (
	"ModelPreview/internal/lighting"

	"github.com/go-gl/mathgl/mgl32"
)

// ModelEntry is one gallery card. Paths are relative to the asset directory.
type ModelEntry struct {
	Path     string
	Name     string
	Lighting lighting.LightingConfig
}

// DefaultEntries is the gallery content in display order.
func DefaultEntries() []ModelEntry {
	return []ModelEntry{
		{
			Path: "/table.glb",
			Name: "Table",
			Lighting: lighting.LightingConfig{
				Ambient: lighting.AmbientLight{Intensity: 2},
				Directional: []lighting.DirectionalLight{
					{Position: mgl32.Vec3{10, 10, 5}, Intensity: 4},
					{Position: mgl32.Vec3{-10, -10, -5}, Intensity: 4},
				},
				Point: []lighting.PointLight{{Position: mgl32.Vec3{0, 10, 0}, Intensity: 2}},
				Spot:  []lighting.SpotLight{{Position: mgl32.Vec3{0, 20, 10}, Angle: 0.15, Penumbra: 1, Intensity: 6}},
			},
		},
		{
			Path: "/samsung.glb",
			Name: "Samsung",
			Lighting: lighting.LightingConfig{
				Ambient:     lighting.AmbientLight{Intensity: 3},
				Directional: []lighting.DirectionalLight{{Position: mgl32.Vec3{15, 10, 18}, Intensity: 19}},
				Point:       []lighting.PointLight{{Position: mgl32.Vec3{0, 15, 5}, Intensity: 0}},
				Spot:        []lighting.SpotLight{{Position: mgl32.Vec3{0, 25, 15}, Angle: 0.1, Penumbra: 0.5, Intensity: 1}},
			},
		},
		{
			Path:     "/base_basic_shaded.glb",
			Name:     "fox",
			Lighting: productRig(),
		},
		{
			Path:     "/iphone_16_plus_green.glb",
			Name:     "Iphone 16 Plus Green",
			Lighting: productRig(),
		},
		{
			Path:     "/base.glb",
			Name:     "Gaming Chair",
			Lighting: productRig(),
		},
		{
			Path: "/asusrog.glb",
			Name: "Asus ROG",
			Lighting: lighting.LightingConfig{
				Ambient:     lighting.AmbientLight{Intensity: 1.5},
				Directional: []lighting.DirectionalLight{{Position: mgl32.Vec3{15, 20, 19}, Intensity: 19}},
				Point:       []lighting.PointLight{{Position: mgl32.Vec3{0, 5, 5}, Intensity: 2}},
				Spot:        []lighting.SpotLight{{Position: mgl32.Vec3{0, 30, 15}, Angle: 0.2, Penumbra: 0.8, Intensity: 10}},
			},
		},
	}
}

// productRig is shared by three entries. Each call returns fresh slices so
// no two panels alias the same config.
func productRig() lighting.LightingConfig {
	return lighting.LightingConfig{
		Ambient:     lighting.AmbientLight{Intensity: 3},
		Directional: []lighting.DirectionalLight{{Position: mgl32.Vec3{5, 10, 3}, Intensity: 5}},
		Point:       []lighting.PointLight{{Position: mgl32.Vec3{0, 15, 5}, Intensity: 0}},
		Spot:        []lighting.SpotLight{{Position: mgl32.Vec3{0, 25, 5}, Angle: 0.1, Penumbra: 0.5, Intensity: 1}},
	}
}
