package model

import (
	"strings"

	"github.com/Faultbox/objscene/internal/engine/gfx"
)

// RenderFlags classifies chunks for pass selection. Each chunk carries
// exactly one of the classification bits.
type RenderFlags uint8

const (
	FlagTransparent RenderFlags = 1 << iota
	FlagAlphaTested
	FlagOpaque

	FlagAll = FlagOpaque | FlagAlphaTested | FlagTransparent
)

// String returns the flag names joined by '|'.
func (f RenderFlags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	if f&FlagOpaque != 0 {
		parts = append(parts, "Opaque")
	}
	if f&FlagAlphaTested != 0 {
		parts = append(parts, "AlphaTested")
	}
	if f&FlagTransparent != 0 {
		parts = append(parts, "Transparent")
	}
	return strings.Join(parts, "|")
}

// Classify returns the render class of a material: any alpha other than 1 is
// Transparent, else an opacity texture makes it AlphaTested, else Opaque.
func Classify(m *Material) RenderFlags {
	switch {
	case m.Alpha != 1.0:
		return FlagTransparent
	case m.Textures[gfx.UnitOpacity].Valid():
		return FlagAlphaTested
	default:
		return FlagOpaque
	}
}

// Reclassify recomputes every chunk's flags from its current material. Call
// it after changing a material's alpha or textures; offsets, counts and
// material references are left alone.
func (m *Mesh) Reclassify() {
	for i := range m.Chunks {
		m.Chunks[i].Flags = Classify(m.Chunks[i].Material)
	}
}
