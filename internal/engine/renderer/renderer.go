// Package renderer provides OpenGL rendering of mesh buffers.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/engine/lighting"
	"github.com/Faultbox/glscene/internal/engine/renderer/shaders"
	"github.com/Faultbox/glscene/internal/engine/shader"
	"github.com/Faultbox/glscene/internal/logger"
	smath "github.com/Faultbox/glscene/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
}

// Frame carries the per-frame uniforms shared by every draw.
type Frame struct {
	View      smath.Mat4
	Proj      smath.Mat4
	CameraPos smath.Vec3
	SunDir    smath.Vec3
	SunColor  [3]float32
	Ambient   [3]float32
	Lights    lighting.GPUArrays
}

// Material is the per-draw surface setup.
type Material struct {
	Emissive  float32 // 0 is fully lit, 1 shows vertex color unshaded
	Shininess float32
}

// DefaultMaterial is a matte surface.
var DefaultMaterial = Material{Shininess: 16}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
	draws   int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// No face culling: sphere cells wind clockwise seen from outside while the
	// terrain winds counter-clockwise from above.
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)

	program, err := shader.CompileProgram(shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("scene shader: %w", err)
	}
	r.program = program

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin clears the framebuffer and uploads the frame uniforms.
func (r *Renderer) Begin(f *Frame) {
	r.draws = 0
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := r.program
	p.Use()
	p.SetMat4("uViewProj", f.Proj.Mul(f.View))
	p.SetVec3("uCameraPos", f.CameraPos)
	p.SetVec3("uSunDir", f.SunDir)
	p.SetColor("uSunColor", f.SunColor)
	p.SetColor("uAmbient", f.Ambient)

	l := f.Lights
	p.SetInt("uPointLightCount", int32(l.Count))
	if l.Count == 0 {
		return
	}
	p.SetVec3Array("uPointLightPositions", l.Positions)
	p.SetVec3Array("uPointLightAmbient", l.Ambient)
	p.SetVec3Array("uPointLightDiffuse", l.Diffuse)
	p.SetVec3Array("uPointLightSpecular", l.Specular)
	p.SetFloatArray("uPointLightConstant", l.Constant)
	p.SetFloatArray("uPointLightLinear", l.Linear)
	p.SetFloatArray("uPointLightQuadratic", l.Quadratic)
}

// End finishes the current frame and returns the number of draw calls issued.
func (r *Renderer) End() int {
	gl.BindVertexArray(0)
	return r.draws
}

func (r *Renderer) applyMaterial(m *Mesh, mat Material) {
	hasNormal := int32(0)
	if m.hasNormal {
		hasNormal = 1
	}
	r.program.SetInt("uHasNormal", hasNormal)
	r.program.SetFloat("uEmissive", mat.Emissive)
	r.program.SetFloat("uShininess", mat.Shininess)
}

// Draw renders one mesh with a model matrix.
func (r *Renderer) Draw(m *Mesh, model smath.Mat4, mat Material) {
	if m == nil || m.vao == 0 {
		return
	}
	r.applyMaterial(m, mat)
	r.program.SetInt("uInstanced", 0)
	r.program.SetMat4("uModel", model)

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	r.draws++
}

// DrawInstanced renders one mesh once per model matrix in a single call.
func (r *Renderer) DrawInstanced(m *Mesh, models []smath.Mat4, mat Material) {
	if m == nil || m.vao == 0 || len(models) == 0 {
		return
	}
	m.uploadInstances(models)

	r.applyMaterial(m, mat)
	r.program.SetInt("uInstanced", 1)

	gl.BindVertexArray(m.vao)
	gl.DrawElementsInstanced(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil, int32(len(models)))
	r.draws++
	r.program.SetInt("uInstanced", 0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
