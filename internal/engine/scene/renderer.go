package scene

import (
	"github.com/Faultbox/objscene/internal/engine/gfx"
	"github.com/Faultbox/objscene/internal/engine/model"
	"github.com/Faultbox/objscene/internal/engine/texture"
)

// Renderer receives the draw calls a node emits. Implementations own the GL
// state; nodes only describe what to bind and draw.
type Renderer interface {
	// BindTexture binds h to unit. A zero handle binds the unit's default
	// 1x1 texture.
	BindTexture(unit gfx.TextureUnit, h texture.Handle)
	// SetUniform uploads a value to the current program.
	SetUniform(name string, u gfx.Uniform)
	// DrawTriangles draws count vertices of mesh starting at offset.
	DrawTriangles(mesh *model.Mesh, offset, count int32)
}

// PassRenderer is a Renderer that can also switch alpha blending between
// passes.
type PassRenderer interface {
	Renderer
	SetBlend(enabled bool)
}

// Uniform names set by Render.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
	UniformNormalMat  = "normalMat"

	UniformAmbient   = "material_ambient_color"
	UniformDiffuse   = "material_diffuse_color"
	UniformSpecular  = "material_specular_color"
	UniformEmissive  = "material_emissive_color"
	UniformShininess = "material.shininess"
	UniformAlpha     = "material.alpha"
)
