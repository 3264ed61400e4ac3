// Package shader provides OpenGL shader compilation and uniform upload.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/objscene/internal/engine/gfx"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Attribute locations in bindings are fixed before linking; pass nil to keep
// the locations declared in the source.
func CompileProgram(vertexSrc, fragmentSrc string, bindings map[string]gfx.AttribSlot) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	for name, slot := range bindings {
		gl.BindAttribLocation(program, uint32(slot), gl.Str(name+"\x00"))
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, max(logLen, 1))
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, max(logLen, 1))
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name, or -1 if the
// uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Program is a linked shader program with cached uniform locations.
type Program struct {
	ID        uint32
	locations map[string]int32
}

// NewProgram compiles and links a program.
func NewProgram(vertexSrc, fragmentSrc string, bindings map[string]gfx.AttribSlot) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc, bindings)
	if err != nil {
		return nil, err
	}
	return &Program{ID: id, locations: make(map[string]int32)}, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Location returns the cached location of a uniform. Missing uniforms are
// cached as -1, which GL ignores on upload.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := GetUniform(p.ID, name)
	p.locations[name] = loc
	return loc
}

// Set uploads u to the named uniform of the current program.
func (p *Program) Set(name string, u gfx.Uniform) {
	Upload(p.Location(name), u)
}

// SetSampler assigns a texture unit to a sampler uniform.
func (p *Program) SetSampler(name string, unit gfx.TextureUnit) {
	gl.Uniform1i(p.Location(name), int32(unit))
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Upload sends u to location loc of the current program, one GL entry point
// per kind.
func Upload(loc int32, u gfx.Uniform) {
	if loc < 0 {
		return
	}
	f := u.Floats()
	switch u.Kind() {
	case gfx.KindScalar:
		uploadScalar(loc, f)
	case gfx.KindVec2:
		uploadVec2(loc, f)
	case gfx.KindVec3:
		uploadVec3(loc, f)
	case gfx.KindVec4:
		uploadVec4(loc, f)
	case gfx.KindMat3:
		uploadMat3(loc, f)
	case gfx.KindMat4:
		uploadMat4(loc, f)
	}
}

func uploadScalar(loc int32, f []float32) { gl.Uniform1f(loc, f[0]) }
func uploadVec2(loc int32, f []float32)   { gl.Uniform2fv(loc, 1, &f[0]) }
func uploadVec3(loc int32, f []float32)   { gl.Uniform3fv(loc, 1, &f[0]) }
func uploadVec4(loc int32, f []float32)   { gl.Uniform4fv(loc, 1, &f[0]) }
func uploadMat3(loc int32, f []float32)   { gl.UniformMatrix3fv(loc, 1, false, &f[0]) }
func uploadMat4(loc int32, f []float32)   { gl.UniformMatrix4fv(loc, 1, false, &f[0]) }
