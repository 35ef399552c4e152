package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// polarEpsilon keeps the camera off the exact poles where LookAt degenerates.
const polarEpsilon = 1e-6

type OrbitOptions struct {
	EnableRotate  bool
	EnablePan     bool
	EnableZoom    bool
	RotateSpeed   float32
	ZoomSpeed     float32
	PanSpeed      float32
	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32 // radians from the up axis
	MaxPolarAngle float32
}

func DefaultOrbitOptions() OrbitOptions {
	return OrbitOptions{
		EnableRotate:  true,
		EnablePan:     true,
		EnableZoom:    true,
		RotateSpeed:   0.4,
		ZoomSpeed:     0.4,
		PanSpeed:      1,
		MinDistance:   0,
		MaxDistance:   float32(math.Inf(1)),
		MinPolarAngle: 0,
		MaxPolarAngle: math.Pi,
	}
}

// OrbitControls owns a camera and moves it on a sphere around Target.
// Once a camera is handed over nothing else should write its position.
type OrbitControls struct {
	camera  *Camera
	target  mgl32.Vec3
	radius  float32
	theta   float32 // azimuth around +Y, measured from +Z
	phi     float32 // polar angle from +Y
	options OrbitOptions
}

func NewOrbitControls(camera *Camera, options OrbitOptions) *OrbitControls {
	oc := &OrbitControls{
		camera:  camera,
		target:  camera.Target,
		options: options,
	}
	oc.syncFromCamera()
	oc.apply()
	return oc
}

func (oc *OrbitControls) syncFromCamera() {
	offset := oc.camera.Position.Sub(oc.target)
	oc.radius = offset.Len()
	if oc.radius == 0 {
		oc.phi = math.Pi / 2
		return
	}
	oc.theta = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	oc.phi = float32(math.Acos(float64(mgl32.Clamp(offset.Y()/oc.radius, -1, 1))))
}

// apply clamps the spherical state and writes it to the camera.
func (oc *OrbitControls) apply() {
	oc.phi = mgl32.Clamp(oc.phi, oc.options.MinPolarAngle, oc.options.MaxPolarAngle)
	oc.phi = mgl32.Clamp(oc.phi, polarEpsilon, math.Pi-polarEpsilon)
	oc.radius = mgl32.Clamp(oc.radius, oc.options.MinDistance, oc.options.MaxDistance)

	sinPhi := float32(math.Sin(float64(oc.phi)))
	offset := mgl32.Vec3{
		oc.radius * sinPhi * float32(math.Sin(float64(oc.theta))),
		oc.radius * float32(math.Cos(float64(oc.phi))),
		oc.radius * sinPhi * float32(math.Cos(float64(oc.theta))),
	}
	oc.camera.Position = oc.target.Add(offset)
	oc.camera.Target = oc.target
	oc.camera.Up = mgl32.Vec3{0, 1, 0}
}

// Rotate orbits by a pointer delta in pixels over a viewport of the given height.
func (oc *OrbitControls) Rotate(dx, dy, viewportHeight float32) bool {
	if !oc.options.EnableRotate || viewportHeight <= 0 {
		return false
	}
	oc.theta -= 2 * math.Pi * dx / viewportHeight * oc.options.RotateSpeed
	oc.phi -= 2 * math.Pi * dy / viewportHeight * oc.options.RotateSpeed
	oc.apply()
	return true
}

// Pan slides target and camera in the view plane so the point under the
// pointer follows it.
func (oc *OrbitControls) Pan(dx, dy, viewportHeight float32) bool {
	if !oc.options.EnablePan || viewportHeight <= 0 {
		return false
	}
	targetDistance := oc.radius * float32(math.Tan(float64(mgl32.DegToRad(oc.camera.Fov)/2)))
	scale := 2 * targetDistance / viewportHeight * oc.options.PanSpeed

	front := oc.camera.Front()
	right := front.Cross(oc.camera.Up).Normalize()
	up := right.Cross(front).Normalize()

	move := right.Mul(-dx * scale).Add(up.Mul(dy * scale))
	oc.target = oc.target.Add(move)
	oc.apply()
	return true
}

// Zoom dollies for a wheel delta. Negative deltas move closer.
func (oc *OrbitControls) Zoom(deltaY float32) bool {
	if !oc.options.EnableZoom {
		return false
	}
	if deltaY == 0 {
		return true
	}
	scale := float32(math.Pow(0.95, float64(oc.options.ZoomSpeed)))
	if deltaY < 0 {
		oc.radius *= scale
	} else {
		oc.radius /= scale
	}
	oc.apply()
	return true
}

// SetAspectRatio only touches the projection, never position or orientation.
func (oc *OrbitControls) SetAspectRatio(aspect float32) {
	oc.camera.SetAspectRatio(aspect)
}

func (oc *OrbitControls) Options() OrbitOptions {
	return oc.options
}

func (oc *OrbitControls) Target() mgl32.Vec3 {
	return oc.target
}

// PolarAngle is the current angle between the view offset and +Y.
func (oc *OrbitControls) PolarAngle() float32 {
	return oc.phi
}

func (oc *OrbitControls) Distance() float32 {
	return oc.radius
}

// Camera returns a copy of the controlled camera.
func (oc *OrbitControls) Camera() Camera {
	return *oc.camera
}
