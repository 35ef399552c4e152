// Package panel renders one model preview: its asset, its lighting rig and
// an orbit camera inside a fixed height viewport.
package panel

import (
	"context"
	"errors"
	"fmt"

	"ModelPreview/internal/input"
	"ModelPreview/internal/lighting"
	"ModelPreview/internal/loader"
	"ModelPreview/internal/logger"
	"ModelPreview/internal/renderer"
	"ModelPreview/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type State int

const (
	StateUnmounted State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// AssetLoader starts an asynchronous asset load.
type AssetLoader interface {
	Load(ctx context.Context, assetPath string) *loader.Pending
}

type Deps struct {
	Loader   AssetLoader
	Renderer renderer.Render
	Surface  *input.Surface
}

type Options struct {
	Orbit          renderer.OrbitOptions
	Fov            float32 // degrees
	CameraPosition mgl32.Vec3
	StageRadius    float32
	Background     mgl32.Vec3
	Placeholder    mgl32.Vec3
}

func DefaultOptions() Options {
	return Options{
		Orbit:          renderer.DefaultOrbitOptions(),
		Fov:            60,
		CameraPosition: mgl32.Vec3{0, 2, 10},
		StageRadius:    4,
		Background:     mgl32.Vec3{1, 1, 1},
		Placeholder:    mgl32.Vec3{0.898, 0.906, 0.922},
	}
}

type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
)

type Panel struct {
	id        uuid.UUID
	modelPath string
	lighting  lighting.LightingConfig
	deps      Deps
	options   Options

	state    State
	err      error
	viewport renderer.Viewport
	controls *renderer.OrbitControls

	cancel       context.CancelFunc
	pending      *loader.Pending
	registration *input.Registration
	graph        *scene.Graph
	model        *scene.Node

	drag         dragMode
	lastX, lastY float32
}

func New(modelPath string, cfg lighting.LightingConfig, deps Deps, options Options) *Panel {
	camera := renderer.NewPerspectiveCamera(options.Fov, 1, options.CameraPosition)
	return &Panel{
		id:        uuid.New(),
		modelPath: modelPath,
		lighting:  cfg,
		deps:      deps,
		options:   options,
		controls:  renderer.NewOrbitControls(camera, options.Orbit),
	}
}

func (p *Panel) ID() uuid.UUID {
	return p.id
}

func (p *Panel) ModelPath() string {
	return p.modelPath
}

func (p *Panel) State() State {
	return p.state
}

// Err is the load or upload error behind StateFailed.
func (p *Panel) Err() error {
	return p.err
}

// Mount starts the asset load and installs the gesture suppressor.
func (p *Panel) Mount(ctx context.Context) {
	if p.state != StateUnmounted {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.pending = p.deps.Loader.Load(ctx, p.modelPath)
	p.registration = p.deps.Surface.Acquire(p.suppress, input.KindWheel, input.KindGestureStart)
	p.state = StateLoading
	p.err = nil

	logger.Log.Debug("Panel mounted", zap.String("panel", p.id.String()), zap.String("path", p.modelPath))
}

// Update applies a finished load. It must run on the render goroutine.
func (p *Panel) Update() {
	if p.state != StateLoading {
		return
	}
	handle, err := p.pending.Result()
	if errors.Is(err, loader.ErrPending) {
		return
	}
	p.pending = nil
	if err != nil {
		p.fail(err)
		return
	}

	model := stage(handle.Root, p.options.StageRadius)
	if err := p.deps.Renderer.Upload(model); err != nil {
		p.deps.Renderer.Release(model)
		p.fail(fmt.Errorf("upload %s: %w", p.modelPath, err))
		return
	}

	// Lights and model go in together so no frame sees half a scene.
	graph := scene.NewGraph(p.id)
	graph.Add(lighting.Instantiate(p.lighting)...)
	graph.Add(model)
	p.graph = graph
	p.model = model
	p.state = StateReady

	logger.Log.Info("Model ready",
		zap.String("path", p.modelPath),
		zap.Int("lights", lighting.Count(p.lighting)),
		zap.Int("meshes", len(model.Meshes())))
}

func (p *Panel) fail(err error) {
	p.err = err
	p.state = StateFailed
	logger.Log.Error("Model failed to load", zap.String("path", p.modelPath), zap.Error(err))
}

// Unmount cancels a pending load, removes the gesture suppressor and frees
// the scene. Safe to call more than once.
func (p *Panel) Unmount() {
	if p.state == StateUnmounted {
		return
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.pending = nil
	if p.registration != nil {
		p.registration.Release()
		p.registration = nil
	}
	if p.graph != nil {
		p.graph.Release(func(n *scene.Node) {
			if n.Kind != scene.KindLight {
				p.deps.Renderer.Release(n)
			}
		})
		p.graph = nil
	}
	p.model = nil
	p.drag = dragNone
	p.state = StateUnmounted

	logger.Log.Debug("Panel unmounted", zap.String("panel", p.id.String()))
}

// SetViewport places the panel in window coordinates. Only the projection
// follows the new aspect, the camera pose is untouched.
func (p *Panel) SetViewport(vp renderer.Viewport) {
	p.viewport = vp
	if !vp.Empty() {
		p.controls.SetAspectRatio(vp.Aspect())
	}
}

func (p *Panel) Viewport() renderer.Viewport {
	return p.viewport
}

func (p *Panel) Contains(x, y float32) bool {
	return p.viewport.Contains(x, y)
}

// Render draws the scene once ready, the placeholder otherwise.
func (p *Panel) Render() renderer.Viewport {
	vp := p.viewport
	if vp.Empty() {
		return vp
	}
	rend := p.deps.Renderer
	if p.state != StateReady {
		rend.Clear(vp, p.options.Placeholder)
		return vp
	}
	rend.Clear(vp, p.options.Background)
	camera := p.controls.Camera()
	rend.Draw(vp, &camera, p.graph.Lights(), p.model)
	return vp
}

// Camera returns a copy of the panel camera.
func (p *Panel) Camera() renderer.Camera {
	return p.controls.Camera()
}

func (p *Panel) Controls() *renderer.OrbitControls {
	return p.controls
}

// Graph is nil until the panel is ready.
func (p *Panel) Graph() *scene.Graph {
	return p.graph
}
