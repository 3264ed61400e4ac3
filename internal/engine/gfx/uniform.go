package gfx

import (
	"fmt"

	"github.com/Faultbox/objscene/pkg/math"
)

// UniformKind tags the value held by a Uniform.
type UniformKind uint8

const (
	KindScalar UniformKind = iota + 1
	KindVec2
	KindVec3
	KindVec4
	KindMat3
	KindMat4
)

// String returns the GLSL type name of the kind.
func (k UniformKind) String() string {
	switch k {
	case KindScalar:
		return "float"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	case KindMat3:
		return "mat3"
	case KindMat4:
		return "mat4"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Size returns the number of float components.
func (k UniformKind) Size() int {
	switch k {
	case KindScalar:
		return 1
	case KindVec2:
		return 2
	case KindVec3:
		return 3
	case KindVec4:
		return 4
	case KindMat3:
		return 9
	case KindMat4:
		return 16
	default:
		return 0
	}
}

// Uniform is a shader parameter value. The zero value is invalid; build one
// with the constructors below.
type Uniform struct {
	kind UniformKind
	data [16]float32
}

// Scalar wraps a float.
func Scalar(f float32) Uniform {
	u := Uniform{kind: KindScalar}
	u.data[0] = f
	return u
}

// Vec2 wraps a 2-vector.
func Vec2(v math.Vec2) Uniform {
	u := Uniform{kind: KindVec2}
	u.data[0], u.data[1] = v.X, v.Y
	return u
}

// Vec3 wraps a 3-vector.
func Vec3(v math.Vec3) Uniform {
	u := Uniform{kind: KindVec3}
	u.data[0], u.data[1], u.data[2] = v.X, v.Y, v.Z
	return u
}

// Color wraps an RGB triple as stored on materials.
func Color(c [3]float32) Uniform {
	u := Uniform{kind: KindVec3}
	copy(u.data[:3], c[:])
	return u
}

// Vec4 wraps a 4-vector.
func Vec4(v math.Vec4) Uniform {
	u := Uniform{kind: KindVec4}
	copy(u.data[:4], v[:])
	return u
}

// Mat3 wraps a column-major 3x3 matrix.
func Mat3(m math.Mat3) Uniform {
	u := Uniform{kind: KindMat3}
	copy(u.data[:9], m[:])
	return u
}

// Mat4 wraps a column-major 4x4 matrix.
func Mat4(m math.Mat4) Uniform {
	return Uniform{kind: KindMat4, data: m}
}

// Kind returns the value's tag.
func (u Uniform) Kind() UniformKind {
	return u.kind
}

// Floats returns the Kind().Size() components of the value.
func (u Uniform) Floats() []float32 {
	return u.data[:u.kind.Size()]
}
