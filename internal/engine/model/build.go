package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/objscene/pkg/formats"
)

// Mesh build errors.
var (
	ErrEmptyMesh       = errors.New("mesh has no positions")
	ErrUnknownMaterial = errors.New("unknown material")
	ErrIndexOutOfRange = errors.New("attribute index out of range")
	ErrMissingNormal   = errors.New("face vertex has no normal index")
)

// BuildMesh expands obj's triangulated groups into flat vertex streams. Each
// triangle corner gets its own vertex; nothing is shared or deduplicated.
// Every group becomes one chunk, classified from its material.
func BuildMesh(obj *formats.OBJ, materials map[string]*Material) (*Mesh, error) {
	if len(obj.Positions) == 0 {
		return nil, ErrEmptyMesh
	}

	// Resolve materials and size the streams before writing anything
	chunks := make([]Chunk, len(obj.Groups))
	var offset int32
	for i := range obj.Groups {
		g := &obj.Groups[i]
		mat, ok := materials[g.Material]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, g.Material)
		}
		count := int32(len(g.Corners))
		chunks[i] = Chunk{
			MaterialName: g.Material,
			Material:     mat,
			Offset:       offset,
			Count:        count,
			Flags:        Classify(mat),
		}
		offset += count
	}

	n := int(offset)
	mesh := &Mesh{
		Positions:  make([][3]float32, n),
		Normals:    make([][3]float32, n),
		TexCoords:  make([][2]float32, n),
		Tangents:   make([][3]float32, n),
		Bitangents: make([][3]float32, n),
		Chunks:     chunks,
		Bounds:     computeBounds(obj.Positions),
	}
	for i := 0; i < n; i++ {
		mesh.Tangents[i] = DefaultTangent
		mesh.Bitangents[i] = DefaultBitangent
	}

	for i := range obj.Groups {
		g := &obj.Groups[i]
		base := int(chunks[i].Offset)
		for j, c := range g.Corners {
			if err := mesh.writeCorner(obj, base+j, c); err != nil {
				return nil, fmt.Errorf("material %q corner %d: %w", g.Material, j, err)
			}
		}
	}

	return mesh, nil
}

// writeCorner resolves one corner's indices into output slot o.
func (m *Mesh) writeCorner(obj *formats.OBJ, o int, c formats.FaceVertex) error {
	if !inRange(c.Position, len(obj.Positions)) {
		return fmt.Errorf("%w: position %d of %d", ErrIndexOutOfRange, c.Position, len(obj.Positions))
	}
	m.Positions[o] = obj.Positions[c.Position]

	if c.Normal == formats.NoIndex {
		return ErrMissingNormal
	}
	if !inRange(c.Normal, len(obj.Normals)) {
		return fmt.Errorf("%w: normal %d of %d", ErrIndexOutOfRange, c.Normal, len(obj.Normals))
	}
	m.Normals[o] = obj.Normals[c.Normal]

	if c.TexCoord != formats.NoIndex {
		if !inRange(c.TexCoord, len(obj.TexCoords)) {
			return fmt.Errorf("%w: texcoord %d of %d", ErrIndexOutOfRange, c.TexCoord, len(obj.TexCoords))
		}
		m.TexCoords[o] = obj.TexCoords[c.TexCoord]
	}
	return nil
}

func inRange(idx int32, n int) bool {
	return idx >= 0 && int(idx) < n
}

// computeBounds returns the box around positions, which must be non-empty.
func computeBounds(positions [][3]float32) Bounds {
	b := Bounds{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		for k := 0; k < 3; k++ {
			b.Min[k] = min(b.Min[k], p[k])
			b.Max[k] = max(b.Max[k], p[k])
		}
	}
	return b
}
