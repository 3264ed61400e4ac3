// Package scene holds the node hierarchy that places loaded models and emits
// their draw calls.
package scene

import (
	"github.com/Faultbox/objscene/internal/engine/model"
	"github.com/Faultbox/objscene/pkg/math"
)

// Pass is one traversal of the scene with a render mask and blend state.
type Pass struct {
	Mask  model.RenderFlags
	Blend bool
}

// DefaultPasses draws opaque and alpha-tested chunks first, then transparent
// chunks with blending. Transparent chunks are not depth sorted.
func DefaultPasses() []Pass {
	return []Pass{
		{Mask: model.FlagOpaque | model.FlagAlphaTested, Blend: false},
		{Mask: model.FlagTransparent, Blend: true},
	}
}

// Scene is a list of root nodes drawn with a fixed sequence of passes.
type Scene struct {
	Roots  []*Node
	Passes []Pass
}

// New creates an empty scene using DefaultPasses.
func New() *Scene {
	return &Scene{Passes: DefaultPasses()}
}

// Add appends a root node.
func (s *Scene) Add(n *Node) {
	s.Roots = append(s.Roots, n)
}

// Render runs every pass over every root in order.
func (s *Scene) Render(r PassRenderer, t Transforms) {
	for _, p := range s.Passes {
		r.SetBlend(p.Blend)
		for _, n := range s.Roots {
			n.Render(r, p.Mask, t)
		}
	}
}

// SetOverrideDiffuse sets OverrideDiffuse on every node.
func (s *Scene) SetOverrideDiffuse(on bool) {
	for _, root := range s.Roots {
		root.Walk(func(n *Node) { n.OverrideDiffuse = on })
	}
}

// Bounds returns the world-space box around every node with geometry, and
// false when there is none. Nodes carry no rotation, so transforming the two
// corners of each mesh box is enough.
func (s *Scene) Bounds() (model.Bounds, bool) {
	var out model.Bounds
	found := false

	var visit func(n *Node, parent math.Mat4)
	visit = func(n *Node, parent math.Mat4) {
		local := n.Transform(parent)
		for _, c := range n.children {
			visit(c, local)
		}
		if n.Mesh == nil || n.Mesh.VertexCount() == 0 {
			return
		}
		lo := local.TransformPoint(math.V3(n.Mesh.Bounds.Min)).Array()
		hi := local.TransformPoint(math.V3(n.Mesh.Bounds.Max)).Array()
		for k := 0; k < 3; k++ {
			lo[k], hi[k] = min(lo[k], hi[k]), max(lo[k], hi[k])
		}
		if !found {
			out, found = model.Bounds{Min: lo, Max: hi}, true
			return
		}
		for k := 0; k < 3; k++ {
			out.Min[k] = min(out.Min[k], lo[k])
			out.Max[k] = max(out.Max[k], hi[k])
		}
	}

	for _, root := range s.Roots {
		visit(root, math.Identity())
	}
	return out, found
}
