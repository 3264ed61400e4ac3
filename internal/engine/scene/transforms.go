package scene

import "github.com/Faultbox/objscene/pkg/math"

// Transforms is the matrix context passed down a render traversal. It is a
// value: each child receives its own copy and nothing is shared between
// siblings.
type Transforms struct {
	Parent     math.Mat4
	View       math.Mat4
	Projection math.Mat4
}

// NewTransforms returns a root context with an identity parent transform.
func NewTransforms(view, projection math.Mat4) Transforms {
	return Transforms{
		Parent:     math.Identity(),
		View:       view,
		Projection: projection,
	}
}

// WithParent returns a copy of t with the parent transform replaced.
func (t Transforms) WithParent(m math.Mat4) Transforms {
	t.Parent = m
	return t
}
