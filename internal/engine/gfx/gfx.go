// Package gfx defines the GL-independent vocabulary shared by scene code and
// the OpenGL renderer: vertex attribute slots, texture units and a closed
// uniform value type.
package gfx

// AttribSlot is a vertex attribute location. Shaders that draw model meshes
// must declare their inputs at these locations.
type AttribSlot uint32

const (
	AttribPosition  AttribSlot = 0
	AttribNormal    AttribSlot = 1
	AttribTexCoord  AttribSlot = 2
	AttribTangent   AttribSlot = 3
	AttribBitangent AttribSlot = 4
)

// DefaultAttributeBindings returns the attribute name to slot contract, for
// binding attribute locations in custom shaders (e.g. a shadow pass).
func DefaultAttributeBindings() map[string]AttribSlot {
	return map[string]AttribSlot{
		"position":  AttribPosition,
		"normal":    AttribNormal,
		"texCoord":  AttribTexCoord,
		"tangent":   AttribTangent,
		"bitangent": AttribBitangent,
	}
}

// TextureUnit is the sampler unit a material texture is bound to.
type TextureUnit int

const (
	UnitDiffuse TextureUnit = iota
	UnitOpacity
	UnitSpecular
	UnitNormal
	UnitCount
)

// SamplerName returns the shader sampler uniform bound to the unit.
func (u TextureUnit) SamplerName() string {
	switch u {
	case UnitDiffuse:
		return "diffuse_texture"
	case UnitOpacity:
		return "opacity_texture"
	case UnitSpecular:
		return "specular_texture"
	case UnitNormal:
		return "normal_texture"
	default:
		return ""
	}
}
