// Package model turns parsed OBJ/MTL data into render-ready meshes: flat,
// non-indexed vertex streams split into material chunks.
package model

// Placeholder tangent frame written to every vertex. Tangents are not
// computed from geometry.
var (
	DefaultTangent   = [3]float32{0, 1, 0}
	DefaultBitangent = [3]float32{1, 0, 0}
)

// Mesh holds five parallel vertex streams of equal length, three entries per
// triangle with no sharing between corners, plus the chunks drawing them.
type Mesh struct {
	Positions  [][3]float32
	Normals    [][3]float32
	TexCoords  [][2]float32
	Tangents   [][3]float32
	Bitangents [][3]float32
	Chunks     []Chunk
	Bounds     Bounds // Over the source positions, not the expanded stream
}

// VertexCount returns the number of vertices in each stream.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Positions) / 3
}

// Chunk is a contiguous vertex range drawn with one material.
type Chunk struct {
	MaterialName string
	Material     *Material
	Offset       int32 // First vertex
	Count        int32 // Vertex count, a multiple of 3
	Flags        RenderFlags
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) * 0.5,
		(b.Min[1] + b.Max[1]) * 0.5,
		(b.Min[2] + b.Max[2]) * 0.5,
	}
}

// Size returns the box extent along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}
