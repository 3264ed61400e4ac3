package scene

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/engine/gfx"
	"github.com/Faultbox/objscene/internal/engine/model"
	"github.com/Faultbox/objscene/internal/logger"
	"github.com/Faultbox/objscene/pkg/math"
)

// Node is a model placed in a hierarchy. It owns its mesh and materials;
// children are drawn with this node's transform as their parent.
type Node struct {
	Name      string
	Mesh      *model.Mesh
	Materials map[string]*model.Material

	Position math.Vec3 // Pivot, initially the mesh bounds centre
	Scale    math.Vec3
	Height   float32 // Bounds max Y, rounded to one decimal

	// OverrideDiffuse draws every chunk with the default diffuse texture.
	OverrideDiffuse bool

	children []*Node
}

// NewNode wraps a loaded model. scale is applied after the pivot translation.
func NewNode(m *model.Model, scale math.Vec3) *Node {
	b := m.Mesh.Bounds
	return &Node{
		Name:      m.Name,
		Mesh:      m.Mesh,
		Materials: m.Materials,
		Position:  math.V3(b.Center()),
		Scale:     scale,
		Height:    float32(gomath.Round(float64(b.Max[1])*10) / 10),
	}
}

// Attach appends child and offsets its position by this node's current
// position. The offset is applied once; moving the parent later does not move
// the child's pivot.
func (n *Node) Attach(child *Node) {
	child.Position = child.Position.Add(n.Position)
	n.children = append(n.children, child)

	pos := child.Position.Array()
	logger.Named("scene").Debug("node attached",
		zap.String("parent", n.Name),
		zap.String("child", child.Name),
		zap.Float32s("position", pos[:]),
	)
}

// Children returns the attached nodes in attach order.
func (n *Node) Children() []*Node {
	return n.children
}

// Transform returns parent x translate(Position) x scale(Scale).
func (n *Node) Transform(parent math.Mat4) math.Mat4 {
	return parent.Mul(math.TranslateVec(n.Position)).Mul(math.ScaleVec(n.Scale))
}

// Render draws the subtree. Children go first, then each chunk of this node
// whose flags intersect mask, in chunk order. Textures and material uniforms
// are not re-sent while consecutive chunks share a material.
func (n *Node) Render(r Renderer, mask model.RenderFlags, t Transforms) {
	local := n.Transform(t.Parent)

	for _, child := range n.children {
		child.Render(r, mask, t.WithParent(local))
	}

	if n.Mesh == nil {
		return
	}

	r.SetUniform(UniformModel, gfx.Mat4(local))
	r.SetUniform(UniformView, gfx.Mat4(t.View))
	r.SetUniform(UniformProjection, gfx.Mat4(t.Projection))
	r.SetUniform(UniformNormalMat, gfx.Mat3(math.NormalMatrix(local)))

	var last *model.Material
	for i := range n.Mesh.Chunks {
		c := &n.Mesh.Chunks[i]
		if c.Flags&mask == 0 {
			continue
		}
		if c.Material != last {
			n.bindMaterial(r, c.Material)
			last = c.Material
		}
		r.DrawTriangles(n.Mesh, c.Offset, c.Count)
	}
}

func (n *Node) bindMaterial(r Renderer, m *model.Material) {
	for unit := gfx.TextureUnit(0); unit < gfx.UnitCount; unit++ {
		h := m.Textures[unit]
		if unit == gfx.UnitDiffuse && n.OverrideDiffuse {
			h = 0
		}
		r.BindTexture(unit, h)
	}

	r.SetUniform(UniformAmbient, gfx.Color(m.Ambient))
	r.SetUniform(UniformDiffuse, gfx.Color(m.Diffuse))
	r.SetUniform(UniformSpecular, gfx.Color(m.Specular))
	r.SetUniform(UniformEmissive, gfx.Color(m.Emissive))
	r.SetUniform(UniformShininess, gfx.Scalar(m.SpecularExponent))
	r.SetUniform(UniformAlpha, gfx.Scalar(m.Alpha))
}

// UpdateMaterials recomputes chunk flags after material fields were changed
// directly. It does not touch children.
func (n *Node) UpdateMaterials() {
	if n.Mesh != nil {
		n.Mesh.Reclassify()
	}
}

// Walk calls fn for n and every descendant, depth first, parents before
// children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}
