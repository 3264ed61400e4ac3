// OBJ (Wavefront object) geometry parser.

package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrMalformedDirective = errors.New("malformed directive")
	ErrNoActiveMaterial   = errors.New("no active material")
	ErrInvalidFace        = errors.New("invalid face")
	ErrInvalidIndex       = errors.New("invalid index")
)

// NoIndex marks an absent face-vertex component (e.g. the uv slot of "5//2").
const NoIndex int32 = -1

// FaceVertex is one corner of a face with zero-based attribute indices.
type FaceVertex struct {
	Position int32 // Index into OBJ.Positions
	TexCoord int32 // Index into OBJ.TexCoords, or NoIndex
	Normal   int32 // Index into OBJ.Normals, or NoIndex
}

// OBJGroup is a run of faces sharing one material, in file order.
type OBJGroup struct {
	Material string       // Name given to usemtl
	Corners  []FaceVertex // Fan-triangulated corners, three per triangle
	Faces    int          // Number of source polygons
}

// Triangles returns the number of triangles in the group.
func (g *OBJGroup) Triangles() int {
	return len(g.Corners) / 3
}

// OBJ holds the raw attribute arrays and material groups of a mesh file.
type OBJ struct {
	Positions   [][3]float32
	Normals     [][3]float32
	TexCoords   [][2]float32
	MaterialLib string // Last mtllib seen; empty if none
	Groups      []OBJGroup
}

// CornerCount returns the total number of triangle corners across all groups.
func (o *OBJ) CornerCount() int {
	n := 0
	for i := range o.Groups {
		n += len(o.Groups[i].Corners)
	}
	return n
}

// ParseOBJ parses Wavefront OBJ text.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := obj.parseLine(fields); err != nil {
			return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}

	return obj, nil
}

func (o *OBJ) parseLine(fields []string) error {
	args := fields[1:]

	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[0], args, 3)
		if err != nil {
			return err
		}
		o.Positions = append(o.Positions, [3]float32{v[0], v[1], v[2]})

	case "vn":
		v, err := parseFloats(fields[0], args, 3)
		if err != nil {
			return err
		}
		o.Normals = append(o.Normals, [3]float32{v[0], v[1], v[2]})

	case "vt":
		v, err := parseFloats(fields[0], args, 2)
		if err != nil {
			return err
		}
		o.TexCoords = append(o.TexCoords, [2]float32{v[0], v[1]})

	case "mtllib":
		if len(args) == 0 {
			return fmt.Errorf("%w: mtllib without file name", ErrMalformedDirective)
		}
		o.MaterialLib = strings.Join(args, " ")

	case "usemtl":
		if len(args) == 0 {
			return fmt.Errorf("%w: usemtl without material name", ErrMalformedDirective)
		}
		name := strings.Join(args, " ")
		// Same material as the previous group continues it; anything else
		// (including a return to an earlier material) opens a new group.
		if n := len(o.Groups); n == 0 || o.Groups[n-1].Material != name {
			o.Groups = append(o.Groups, OBJGroup{Material: name})
		}

	case "f":
		if len(o.Groups) == 0 {
			return fmt.Errorf("%w: face before usemtl", ErrNoActiveMaterial)
		}
		verts := make([]FaceVertex, len(args))
		for i, tok := range args {
			fv, err := ParseFaceVertex(tok, len(o.Positions), len(o.TexCoords), len(o.Normals))
			if err != nil {
				return err
			}
			verts[i] = fv
		}
		tris, err := TriangulateFan(verts)
		if err != nil {
			return err
		}
		g := &o.Groups[len(o.Groups)-1]
		g.Corners = append(g.Corners, tris...)
		g.Faces++
	}

	return nil
}

// ParseFaceVertex parses a face token of the form a, a/b, a//c or a/b/c.
// Indices are 1-based in the file; negative values count back from the
// number of elements declared so far. The result is zero-based.
func ParseFaceVertex(token string, numPositions, numTexCoords, numNormals int) (FaceVertex, error) {
	parts := strings.Split(token, "/")
	if len(parts) > 3 {
		return FaceVertex{}, fmt.Errorf("%w: %q has %d components", ErrInvalidFace, token, len(parts))
	}

	fv := FaceVertex{TexCoord: NoIndex, Normal: NoIndex}

	var err error
	if parts[0] == "" {
		return FaceVertex{}, fmt.Errorf("%w: %q has no position index", ErrInvalidFace, token)
	}
	if fv.Position, err = resolveIndex(parts[0], numPositions); err != nil {
		return FaceVertex{}, fmt.Errorf("%q: %w", token, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if fv.TexCoord, err = resolveIndex(parts[1], numTexCoords); err != nil {
			return FaceVertex{}, fmt.Errorf("%q: %w", token, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if fv.Normal, err = resolveIndex(parts[2], numNormals); err != nil {
			return FaceVertex{}, fmt.Errorf("%q: %w", token, err)
		}
	}

	return fv, nil
}

// resolveIndex converts a 1-based or negative relative index to zero-based.
// Range checking against the final arrays happens when the mesh is built.
func resolveIndex(s string, count int) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return NoIndex, fmt.Errorf("%w: %q", ErrInvalidIndex, s)
	}
	switch {
	case v > 0:
		return int32(v - 1), nil
	case v < 0:
		idx := int64(count) + v
		if idx < 0 {
			return NoIndex, fmt.Errorf("%w: relative %d with %d declared", ErrInvalidIndex, v, count)
		}
		return int32(idx), nil
	default:
		return NoIndex, fmt.Errorf("%w: zero", ErrInvalidIndex)
	}
}

// TriangulateFan splits a polygon into triangles anchored at its first vertex:
// (v0,v1,v2), (v0,v2,v3), ... An n-gon yields n-2 triangles. The result is
// only correct for convex planar polygons.
func TriangulateFan(verts []FaceVertex) ([]FaceVertex, error) {
	if len(verts) < 3 {
		return nil, fmt.Errorf("%w: %d vertices, need at least 3", ErrInvalidFace, len(verts))
	}

	out := make([]FaceVertex, 0, (len(verts)-2)*3)
	for i := 2; i < len(verts); i++ {
		out = append(out, verts[0], verts[i-1], verts[i])
	}
	return out, nil
}

// parseFloats parses the first n tokens as floats.
func parseFloats(directive string, tokens []string, n int) ([]float32, error) {
	if len(tokens) < n {
		return nil, fmt.Errorf("%w: %s needs %d values, got %d", ErrMalformedDirective, directive, n, len(tokens))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(tokens[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %s value %q", ErrMalformedDirective, directive, tokens[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}
