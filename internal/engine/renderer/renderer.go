// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/engine/gfx"
	"github.com/Faultbox/objscene/internal/engine/model"
	"github.com/Faultbox/objscene/internal/engine/renderer/shaders"
	"github.com/Faultbox/objscene/internal/engine/shader"
	"github.com/Faultbox/objscene/internal/engine/texture"
	"github.com/Faultbox/objscene/internal/logger"
	"github.com/Faultbox/objscene/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
}

// meshBuffers holds the GPU copy of one mesh: a VAO with one VBO per stream.
type meshBuffers struct {
	vao  uint32
	vbos [5]uint32
}

// Renderer draws model meshes with the built-in model shader. It implements
// scene.PassRenderer.
type Renderer struct {
	config  Config
	program *shader.Program

	// Substituted for unset texture slots
	whiteTex  uint32
	normalTex uint32

	meshes map[*model.Mesh]*meshBuffers

	LightDir    math.Vec3
	LightColor  math.Vec3
	CameraPos   math.Vec3
	AlphaCutoff float32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:      cfg,
		meshes:      make(map[*model.Mesh]*meshBuffers),
		LightDir:    math.Vec3{X: -0.4, Y: -1, Z: -0.6},
		LightColor:  math.Vec3{X: 1, Y: 1, Z: 1},
		AlphaCutoff: 0.5,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewProgram(shaders.ModelVertexShader, shaders.ModelFragmentShader, gfx.DefaultAttributeBindings())
	if err != nil {
		return nil, fmt.Errorf("model shader: %w", err)
	}

	r.program.Use()
	for unit := gfx.TextureUnit(0); unit < gfx.UnitCount; unit++ {
		r.program.SetSampler(unit.SamplerName(), unit)
	}

	r.whiteTex = solidTexture([4]uint8{255, 255, 255, 255})
	r.normalTex = solidTexture([4]uint8{128, 128, 255, 255})

	logger.Debug("renderer created", zap.Uint32("program", r.program.ID))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for mesh := range r.meshes {
		r.Release(mesh)
	}
	if r.whiteTex != 0 {
		gl.DeleteTextures(1, &r.whiteTex)
	}
	if r.normalTex != 0 {
		gl.DeleteTextures(1, &r.normalTex)
	}
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

// Begin starts a new frame and uploads the per-frame lighting uniforms.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
	r.program.Set("light_direction", gfx.Vec3(r.LightDir))
	r.program.Set("light_color", gfx.Vec3(r.LightColor))
	r.program.Set("camera_position", gfx.Vec3(r.CameraPos))
	r.program.Set("alpha_cutoff", gfx.Scalar(r.AlphaCutoff))
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	r.SetBlend(false)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// SetBlend switches alpha blending. Blended draws do not write depth.
func (r *Renderer) SetBlend(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
		return
	}
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
}

// BindTexture binds h to unit, or the unit's default texture when h is unset.
func (r *Renderer) BindTexture(unit gfx.TextureUnit, h texture.Handle) {
	id := uint32(h)
	if !h.Valid() {
		id = r.whiteTex
		if unit == gfx.UnitNormal {
			id = r.normalTex
		}
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// SetUniform uploads a value to the model shader.
func (r *Renderer) SetUniform(name string, u gfx.Uniform) {
	r.program.Set(name, u)
}

// DrawTriangles draws count vertices of mesh from offset. The mesh is
// uploaded on first use.
func (r *Renderer) DrawTriangles(mesh *model.Mesh, offset, count int32) {
	if count <= 0 {
		return
	}
	buf := r.meshes[mesh]
	if buf == nil {
		buf = uploadMesh(mesh)
		r.meshes[mesh] = buf
	}
	gl.BindVertexArray(buf.vao)
	gl.DrawArrays(gl.TRIANGLES, offset, count)
}

// Release frees the GPU buffers of a mesh. It is uploaded again if drawn.
func (r *Renderer) Release(mesh *model.Mesh) {
	buf, ok := r.meshes[mesh]
	if !ok {
		return
	}
	gl.DeleteBuffers(int32(len(buf.vbos)), &buf.vbos[0])
	gl.DeleteVertexArrays(1, &buf.vao)
	delete(r.meshes, mesh)
}

func uploadMesh(mesh *model.Mesh) *meshBuffers {
	buf := &meshBuffers{}
	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)
	gl.GenBuffers(int32(len(buf.vbos)), &buf.vbos[0])

	n := mesh.VertexCount()
	attrib3 := func(slot gfx.AttribSlot, data [][3]float32) {
		gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbos[slot])
		gl.BufferData(gl.ARRAY_BUFFER, n*3*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
		gl.VertexAttribPointerWithOffset(uint32(slot), 3, gl.FLOAT, false, 3*4, 0)
		gl.EnableVertexAttribArray(uint32(slot))
	}

	attrib3(gfx.AttribPosition, mesh.Positions)
	attrib3(gfx.AttribNormal, mesh.Normals)

	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbos[gfx.AttribTexCoord])
	gl.BufferData(gl.ARRAY_BUFFER, n*2*4, unsafe.Pointer(&mesh.TexCoords[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(uint32(gfx.AttribTexCoord), 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(uint32(gfx.AttribTexCoord))

	attrib3(gfx.AttribTangent, mesh.Tangents)
	attrib3(gfx.AttribBitangent, mesh.Bitangents)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", buf.vao),
		zap.Int("vertices", n),
	)
	return buf
}

// solidTexture creates a 1x1 RGBA texture.
func solidTexture(rgba [4]uint8) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return id
}
