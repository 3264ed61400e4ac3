package scene

import (
	"github.com/Faultbox/objscene/internal/engine/model"
	"github.com/Faultbox/objscene/internal/engine/texture"
	"github.com/Faultbox/objscene/pkg/math"
)

// LoadOptions controls how a model file becomes a node.
type LoadOptions struct {
	Scale math.Vec3 // Zero means unit scale
}

// UniformScale returns options scaling all axes by s.
func UniformScale(s float32) LoadOptions {
	return LoadOptions{Scale: math.Vec3{X: s, Y: s, Z: s}}
}

// Load reads an OBJ model and its materials into a new node. Any error aborts
// the load and no node is returned.
func Load(path string, cache *texture.Cache, opts LoadOptions) (*Node, error) {
	m, err := model.Load(path, cache)
	if err != nil {
		return nil, err
	}

	scale := opts.Scale
	if scale == (math.Vec3{}) {
		scale = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	return NewNode(m, scale), nil
}
