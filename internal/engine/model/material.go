package model

import (
	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/engine/gfx"
	"github.com/Faultbox/objscene/internal/engine/texture"
	"github.com/Faultbox/objscene/internal/logger"
	"github.com/Faultbox/objscene/pkg/formats"
)

// Material is a resolved MTL material with texture handles. A zero handle
// means the slot is unset and renders with a default texture.
type Material struct {
	Name             string
	Ambient          [3]float32
	Diffuse          [3]float32
	Specular         [3]float32
	Emissive         [3]float32
	Alpha            float32
	SpecularExponent float32
	Textures         [gfx.UnitCount]texture.Handle
}

// mapUnits maps MTL map slots to the texture units they are bound to.
var mapUnits = [formats.MapCount]gfx.TextureUnit{
	formats.MapDiffuse:  gfx.UnitDiffuse,
	formats.MapOpacity:  gfx.UnitOpacity,
	formats.MapSpecular: gfx.UnitSpecular,
	formats.MapNormal:   gfx.UnitNormal,
}

// NewMaterial resolves src's texture maps through cache, relative to baseDir.
// A texture that fails to load is logged and left unset; it never fails the
// material. With a nil cache no textures are loaded.
func NewMaterial(src *formats.MTLMaterial, baseDir string, cache *texture.Cache) *Material {
	m := &Material{
		Name:             src.Name,
		Ambient:          src.Ambient,
		Diffuse:          src.Diffuse,
		Specular:         src.Specular,
		Emissive:         src.Emissive,
		Alpha:            src.Alpha,
		SpecularExponent: src.SpecularExponent,
	}

	if cache != nil {
		log := logger.Named("model")
		for slot := formats.MTLMap(0); slot < formats.MapCount; slot++ {
			name := src.Maps[slot]
			if name == "" {
				continue
			}
			space := texture.Linear
			if slot.IsColor() {
				space = texture.SRGB
			}
			h, err := cache.GetOrLoad(name, baseDir, space)
			if err != nil {
				log.Warn("texture load failed",
					zap.String("material", src.Name),
					zap.Stringer("slot", slot),
					zap.String("file", name),
					zap.Error(err),
				)
				continue
			}
			m.Textures[mapUnits[slot]] = h
		}
	}

	m.correctTexturedColors()
	return m
}

// correctTexturedColors sets a textured diffuse or specular colour of exactly
// zero to white.
func (m *Material) correctTexturedColors() {
	fix := func(c *[3]float32, unit gfx.TextureUnit) {
		if m.Textures[unit].Valid() && c[0]+c[1]+c[2] == 0 {
			*c = [3]float32{1, 1, 1}
		}
	}
	fix(&m.Diffuse, gfx.UnitDiffuse)
	fix(&m.Specular, gfx.UnitSpecular)
}

// NewMaterials resolves every material of a library.
func NewMaterials(lib *formats.MTL, baseDir string, cache *texture.Cache) map[string]*Material {
	out := make(map[string]*Material, len(lib.Materials))
	for i := range lib.Materials {
		src := &lib.Materials[i]
		out[src.Name] = NewMaterial(src, baseDir, cache)
	}
	return out
}
