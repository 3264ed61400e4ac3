// MTL (material template library) parser.

package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// MTL material defaults applied at newmtl.
var (
	DefaultMTLColor            = [3]float32{0.5, 0.5, 0.5}
	DefaultMTLEmissive         = [3]float32{0, 0, 0}
	DefaultMTLAlpha            = float32(1.0)
	DefaultMTLSpecularExponent = float32(22.0)
)

// MTLMap identifies a texture map slot of a material.
type MTLMap int

const (
	MapDiffuse  MTLMap = iota // map_Kd
	MapOpacity                // map_d
	MapSpecular               // map_Ks
	MapNormal                 // map_bump / bump
	MapCount
)

// String returns the directive-independent slot name.
func (m MTLMap) String() string {
	switch m {
	case MapDiffuse:
		return "diffuse"
	case MapOpacity:
		return "opacity"
	case MapSpecular:
		return "specular"
	case MapNormal:
		return "normal"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// IsColor reports whether the map holds colour data (sRGB decoded) rather
// than linear data such as normals or opacity.
func (m MTLMap) IsColor() bool {
	return m == MapDiffuse || m == MapSpecular
}

// MTLMaterial is one newmtl block.
type MTLMaterial struct {
	Name             string
	Ambient          [3]float32 // Ka
	Diffuse          [3]float32 // Kd
	Specular         [3]float32 // Ks
	Emissive         [3]float32 // Ke
	Alpha            float32    // d
	SpecularExponent float32    // Ns
	Maps             [MapCount]string
}

// NewMTLMaterial returns a material with default values.
func NewMTLMaterial(name string) MTLMaterial {
	return MTLMaterial{
		Name:             name,
		Ambient:          DefaultMTLColor,
		Diffuse:          DefaultMTLColor,
		Specular:         DefaultMTLColor,
		Emissive:         DefaultMTLEmissive,
		Alpha:            DefaultMTLAlpha,
		SpecularExponent: DefaultMTLSpecularExponent,
	}
}

// MTL holds the materials of a library in file order.
type MTL struct {
	Materials []MTLMaterial
	byName    map[string]int
}

// Lookup returns the material with the given name.
func (m *MTL) Lookup(name string) (*MTLMaterial, bool) {
	i, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return &m.Materials[i], true
}

// ParseMTL parses Wavefront MTL text. Unknown directives are ignored.
func ParseMTL(data []byte) (*MTL, error) {
	lib := &MTL{byName: make(map[string]int)}
	var cur *MTLMaterial

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		directive, args := fields[0], fields[1:]

		if directive == "newmtl" {
			if len(args) == 0 {
				return nil, fmt.Errorf("mtl line %d: %w: newmtl without name", lineNo, ErrMalformedDirective)
			}
			cur = lib.open(strings.Join(args, " "))
			continue
		}

		if !isMTLDirective(directive) {
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("mtl line %d: %w: %s before newmtl", lineNo, ErrNoActiveMaterial, directive)
		}
		if err := cur.apply(directive, args); err != nil {
			return nil, fmt.Errorf("mtl line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mtl: %w", err)
	}

	return lib, nil
}

// open starts a material record, replacing any earlier one with the same name.
func (m *MTL) open(name string) *MTLMaterial {
	if i, ok := m.byName[name]; ok {
		m.Materials[i] = NewMTLMaterial(name)
		return &m.Materials[i]
	}
	m.Materials = append(m.Materials, NewMTLMaterial(name))
	m.byName[name] = len(m.Materials) - 1
	return &m.Materials[len(m.Materials)-1]
}

func isMTLDirective(d string) bool {
	switch d {
	case "Ka", "Kd", "Ks", "Ke", "Ns", "d", "map_Kd", "map_Ks", "map_bump", "bump", "map_d":
		return true
	}
	return false
}

func (mat *MTLMaterial) apply(directive string, args []string) error {
	switch directive {
	case "Ka", "Kd", "Ks", "Ke":
		v, err := parseFloats(directive, args, 3)
		if err != nil {
			return err
		}
		c := [3]float32{v[0], v[1], v[2]}
		switch directive {
		case "Ka":
			mat.Ambient = c
		case "Kd":
			mat.Diffuse = c
		case "Ks":
			mat.Specular = c
		case "Ke":
			mat.Emissive = c
		}

	case "Ns", "d":
		v, err := parseFloats(directive, args, 1)
		if err != nil {
			return err
		}
		if directive == "Ns" {
			mat.SpecularExponent = v[0]
		} else {
			mat.Alpha = v[0]
		}

	// Texture names may contain spaces. A map without a file name leaves
	// the slot unset.
	case "map_Kd":
		mat.Maps[MapDiffuse] = strings.Join(args, " ")
	case "map_Ks":
		mat.Maps[MapSpecular] = strings.Join(args, " ")
	case "map_bump", "bump":
		mat.Maps[MapNormal] = strings.Join(args, " ")
	case "map_d":
		mat.Maps[MapOpacity] = strings.Join(args, " ")
	}
	return nil
}
