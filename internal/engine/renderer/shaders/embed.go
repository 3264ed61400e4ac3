// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ModelVertexShader is the vertex shader for OBJ meshes. Its inputs sit at
// the default attribute slots.
//
//go:embed model.vert
var ModelVertexShader string

// ModelFragmentShader is the fragment shader for OBJ meshes.
//
//go:embed model.frag
var ModelFragmentShader string
