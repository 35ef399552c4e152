package renderer

import (
	"errors"
	"fmt"

	"ModelPreview/internal/logger"
	"ModelPreview/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var _ Render = (*OpenGLRenderer)(nil)

// OpenGLRenderer draws every preview into its own scissored region of one
// shared window framebuffer.
type OpenGLRenderer struct {
	defaultShader        Shader
	textShader           Shader
	currentShaderProgram uint32
	windowHeight         float32 // logical pixels
	scale                float32 // framebuffer pixels per logical pixel
	uploaded             int

	rasterizer *Rasterizer
	quadVAO    uint32
	labels     map[labelKey]label
}

// maxLabels bounds the label texture cache. Zooming creates a new entry per
// size, the cache is dropped as a whole when it fills up.
const maxLabels = 64

type labelKey struct {
	text  string
	size  float32 // framebuffer pixels
	color mgl32.Vec3
}

type label struct {
	texture       uint32
	width, height int32
}

func (rend *OpenGLRenderer) Init(windowHeight, scale float32) error {
	if err := gl.Init(); err != nil {
		logger.Log.Error("OpenGL initialization failed", zap.Error(err))
		return err
	}
	rend.UpdateViewport(windowHeight, scale)

	rend.defaultShader = InitShader()
	if err := rend.defaultShader.Compile(); err != nil {
		return err
	}
	rend.textShader = InitTextShader()
	if err := rend.textShader.Compile(); err != nil {
		return err
	}

	rasterizer, err := NewRasterizer()
	if err != nil {
		return err
	}
	rend.rasterizer = rasterizer
	rend.labels = make(map[labelKey]label)
	gl.GenVertexArrays(1, &rend.quadVAO)

	gl.Enable(gl.SCISSOR_TEST)
	logger.Log.Info("OpenGL render initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))
	return nil
}

// UpdateViewport records the window geometry used to place viewports.
func (rend *OpenGLRenderer) UpdateViewport(windowHeight, scale float32) {
	rend.windowHeight = windowHeight
	if scale <= 0 {
		scale = 1
	}
	rend.scale = scale
}

// ClearWindow fills the whole framebuffer.
func (rend *OpenGLRenderer) ClearWindow(width float32, color mgl32.Vec3) {
	rend.Clear(Viewport{W: width, H: rend.windowHeight}, color)
}

func (rend *OpenGLRenderer) Upload(root *scene.Node) error {
	var errs []error
	root.Traverse(func(n *scene.Node) {
		if n.Mesh == nil || n.Mesh.GPU.Uploaded {
			return
		}
		if err := rend.uploadMesh(n.Mesh); err != nil {
			errs = append(errs, fmt.Errorf("mesh %q: %w", n.Name, err))
		}
	})
	return errors.Join(errs...)
}

// validateMesh rejects meshes the draw call would read past the end of.
func validateMesh(mesh *scene.Mesh) error {
	count := mesh.VertexCount()
	if count == 0 || len(mesh.Indices) == 0 {
		return errors.New("empty mesh")
	}
	if len(mesh.Normals) != len(mesh.Positions) {
		return errors.New("normals do not match positions")
	}
	for i, idx := range mesh.Indices {
		if int(idx) >= count {
			return fmt.Errorf("index %d at %d out of range for %d vertices", idx, i, count)
		}
	}
	return nil
}

func (rend *OpenGLRenderer) uploadMesh(mesh *scene.Mesh) error {
	if err := validateMesh(mesh); err != nil {
		return err
	}
	count := mesh.VertexCount()

	interleaved := make([]float32, 0, count*6)
	for i := 0; i < count; i++ {
		interleaved = append(interleaved, mesh.Positions[i*3:i*3+3]...)
		interleaved = append(interleaved, mesh.Normals[i*3:i*3+3]...)
	}

	var vao, vbo, ebo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(interleaved)*4, gl.Ptr(interleaved), gl.STATIC_DRAW)

	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	mesh.GPU = scene.GPUMesh{VAO: vao, VBO: vbo, EBO: ebo, Count: int32(len(mesh.Indices)), Uploaded: true}
	rend.uploaded++
	return nil
}

func (rend *OpenGLRenderer) Release(root *scene.Node) {
	root.Traverse(func(n *scene.Node) {
		if n.Mesh == nil || !n.Mesh.GPU.Uploaded {
			return
		}
		g := &n.Mesh.GPU
		gl.DeleteBuffers(1, &g.EBO)
		gl.DeleteBuffers(1, &g.VBO)
		gl.DeleteVertexArrays(1, &g.VAO)
		*g = scene.GPUMesh{}
		rend.uploaded--
	})
}

func (rend *OpenGLRenderer) setRegion(vp Viewport) {
	x, y, w, h := vp.FramebufferRect(rend.windowHeight, rend.scale)
	gl.Viewport(x, y, w, h)
	gl.Scissor(x, y, w, h)
}

func (rend *OpenGLRenderer) Clear(vp Viewport, color mgl32.Vec3) {
	if vp.Empty() {
		return
	}
	rend.setRegion(vp)
	gl.ClearColor(color[0], color[1], color[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (rend *OpenGLRenderer) Draw(vp Viewport, camera *Camera, lights []*scene.Light, root *scene.Node) {
	if vp.Empty() || root == nil {
		return
	}
	rend.setRegion(vp)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)

	shader := &rend.defaultShader
	if rend.currentShaderProgram != shader.program {
		shader.Use()
		rend.currentShaderProgram = shader.program
	}
	u := shader.Uniforms()

	u.SetMat4("viewProjection", camera.GetViewProjection())
	rend.setLightUniforms(u, packLights(lights))

	root.TraverseWorld(mgl32.Ident4(), func(n *scene.Node, world mgl32.Mat4) {
		if n.Mesh == nil || !n.Mesh.GPU.Uploaded {
			return
		}
		u.SetMat4("model", world)
		normal := world.Mat3().Inv().Transpose()
		if loc := u.GetLocation("normalMatrix"); loc != -1 {
			gl.UniformMatrix3fv(loc, 1, false, &normal[0])
		}
		u.SetVec3("diffuseColor", n.Mesh.Color)

		gl.BindVertexArray(n.Mesh.GPU.VAO)
		gl.DrawElements(gl.TRIANGLES, n.Mesh.GPU.Count, gl.UNSIGNED_INT, nil)
	})
	gl.BindVertexArray(0)
	gl.Disable(gl.DEPTH_TEST)
}

// DrawText draws s centered in vp and clipped to it.
func (rend *OpenGLRenderer) DrawText(vp Viewport, s string, style TextStyle) {
	if vp.Empty() || s == "" || style.Size <= 0 {
		return
	}
	lbl, ok := rend.label(s, style)
	if !ok {
		return
	}

	x, y, w, h := vp.FramebufferRect(rend.windowHeight, rend.scale)
	qx, qy := centerIn(x, y, w, h, lbl.width, lbl.height)
	gl.Scissor(x, y, w, h)
	gl.Viewport(qx, qy, lbl.width, lbl.height)

	shader := &rend.textShader
	if rend.currentShaderProgram != shader.program {
		shader.Use()
		rend.currentShaderProgram = shader.program
	}
	shader.Uniforms().SetInt("glyphs", 0)

	// Glyph images are premultiplied.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, lbl.texture)
	gl.BindVertexArray(rend.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.BLEND)
}

func (rend *OpenGLRenderer) label(s string, style TextStyle) (label, bool) {
	key := labelKey{text: s, size: style.Size * rend.scale, color: style.Color}
	if lbl, ok := rend.labels[key]; ok {
		return lbl, true
	}
	if len(rend.labels) >= maxLabels {
		rend.releaseLabels()
	}

	img := rend.rasterizer.Rasterize(s, key.size, style.Color)
	if img == nil {
		return label{}, false
	}
	size := img.Rect.Size()
	lbl := label{width: int32(size.X), height: int32(size.Y)}

	gl.GenTextures(1, &lbl.texture)
	gl.BindTexture(gl.TEXTURE_2D, lbl.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, lbl.width, lbl.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	rend.labels[key] = lbl
	return lbl, true
}

func (rend *OpenGLRenderer) releaseLabels() {
	for key, lbl := range rend.labels {
		gl.DeleteTextures(1, &lbl.texture)
		delete(rend.labels, key)
	}
}

func (rend *OpenGLRenderer) setLightUniforms(u *UniformCache, l lightUniforms) {
	if l.Dropped > 0 {
		logger.Log.Debug("Lights beyond shader limit ignored", zap.Int("dropped", l.Dropped))
	}

	u.SetVec3("ambientColor", l.Ambient)

	u.SetInt("directionalCount", int32(len(l.Directional)))
	for i, d := range l.Directional {
		prefix := fmt.Sprintf("directionalLights[%d].", i)
		u.SetVec3(prefix+"direction", d.Direction)
		u.SetVec3(prefix+"color", d.Color)
	}

	u.SetInt("pointCount", int32(len(l.Point)))
	for i, p := range l.Point {
		prefix := fmt.Sprintf("pointLights[%d].", i)
		u.SetVec3(prefix+"position", p.Position)
		u.SetVec3(prefix+"color", p.Color)
	}

	u.SetInt("spotCount", int32(len(l.Spot)))
	for i, s := range l.Spot {
		prefix := fmt.Sprintf("spotLights[%d].", i)
		u.SetVec3(prefix+"position", s.Position)
		u.SetVec3(prefix+"direction", s.Direction)
		u.SetVec3(prefix+"color", s.Color)
		u.SetFloat(prefix+"coneCos", s.ConeCos)
		u.SetFloat(prefix+"penumbraCos", s.PenumbraCos)
	}
}

func (rend *OpenGLRenderer) Cleanup() {
	if rend.uploaded > 0 {
		logger.Log.Warn("Renderer cleanup with meshes still uploaded", zap.Int("meshes", rend.uploaded))
	}
	rend.releaseLabels()
	if rend.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &rend.quadVAO)
		rend.quadVAO = 0
	}
	rend.textShader.Delete()
	rend.defaultShader.Delete()
}
