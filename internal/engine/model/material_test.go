package model

import (
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/objscene/internal/engine/gfx"
	"github.com/Faultbox/objscene/internal/engine/texture"
	"github.com/Faultbox/objscene/internal/logger"
	"github.com/Faultbox/objscene/pkg/formats"
)

// fakeLoader hands out sequential handles and records what it was asked for.
type fakeLoader struct {
	next   texture.Handle
	paths  []string
	spaces []texture.ColorSpace
	fail   map[string]bool // base names that fail
}

func (f *fakeLoader) Load(path string, space texture.ColorSpace) (texture.Handle, error) {
	f.paths = append(f.paths, path)
	f.spaces = append(f.spaces, space)
	if f.fail[filepath.Base(path)] {
		return 0, errors.New("decode failed")
	}
	f.next++
	return f.next, nil
}

func TestNewMaterial_CopiesScalars(t *testing.T) {
	src := formats.NewMTLMaterial("Stone")
	src.Diffuse = [3]float32{0.2, 0.3, 0.4}
	src.Alpha = 0.75
	src.SpecularExponent = 64

	m := NewMaterial(&src, "", nil)
	if m.Name != "Stone" || m.Diffuse != src.Diffuse || m.Alpha != 0.75 || m.SpecularExponent != 64 {
		t.Errorf("NewMaterial() = %+v", m)
	}
	if m.Ambient != formats.DefaultMTLColor || m.Emissive != formats.DefaultMTLEmissive {
		t.Errorf("defaults not carried: ambient %v emissive %v", m.Ambient, m.Emissive)
	}
	for u, h := range m.Textures {
		if h.Valid() {
			t.Errorf("unit %d has handle %d without a cache", u, h)
		}
	}
}

func TestNewMaterial_TextureSlots(t *testing.T) {
	loader := &fakeLoader{}
	cache := texture.NewCache(loader)

	src := formats.NewMTLMaterial("Leaf")
	src.Maps[formats.MapDiffuse] = "leaf.png"
	src.Maps[formats.MapOpacity] = "leaf_mask.png"
	src.Maps[formats.MapNormal] = "textures/leaf_n.png"

	m := NewMaterial(&src, "assets", cache)

	if !m.Textures[gfx.UnitDiffuse].Valid() || !m.Textures[gfx.UnitOpacity].Valid() || !m.Textures[gfx.UnitNormal].Valid() {
		t.Fatalf("textures = %v, want diffuse, opacity and normal set", m.Textures)
	}
	if m.Textures[gfx.UnitSpecular].Valid() {
		t.Error("specular unit should be unset")
	}
	if Classify(m) != FlagAlphaTested {
		t.Errorf("Classify() = %v, want AlphaTested", Classify(m))
	}

	wantPath := filepath.Join("assets", "textures", "leaf_n.png")
	if loader.paths[2] != wantPath {
		t.Errorf("normal map path = %q, want %q", loader.paths[2], wantPath)
	}
	wantSpaces := []texture.ColorSpace{texture.SRGB, texture.Linear, texture.Linear}
	for i, s := range wantSpaces {
		if loader.spaces[i] != s {
			t.Errorf("load %d colour space = %v, want %v", i, loader.spaces[i], s)
		}
	}
}

func TestNewMaterial_ZeroColorWithTexture(t *testing.T) {
	tests := []struct {
		name         string
		diffuse      [3]float32
		diffuseMap   string
		specular     [3]float32
		specularMap  string
		wantDiffuse  [3]float32
		wantSpecular [3]float32
	}{
		{
			name:         "black diffuse with map",
			diffuse:      [3]float32{0, 0, 0},
			diffuseMap:   "wood.png",
			specular:     [3]float32{0.1, 0.1, 0.1},
			wantDiffuse:  [3]float32{1, 1, 1},
			wantSpecular: [3]float32{0.1, 0.1, 0.1},
		},
		{
			name:         "black specular with map",
			specular:     [3]float32{0, 0, 0},
			specularMap:  "spec.png",
			diffuse:      [3]float32{0.4, 0, 0},
			wantDiffuse:  [3]float32{0.4, 0, 0},
			wantSpecular: [3]float32{1, 1, 1},
		},
		{
			name:         "black diffuse without map",
			diffuse:      [3]float32{0, 0, 0},
			wantDiffuse:  [3]float32{0, 0, 0},
			wantSpecular: [3]float32{0, 0, 0},
		},
		{
			name:         "non-zero colour is kept",
			diffuse:      [3]float32{0.5, 0.25, 0},
			diffuseMap:   "wood.png",
			wantDiffuse:  [3]float32{0.5, 0.25, 0},
			wantSpecular: [3]float32{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := texture.NewCache(&fakeLoader{})
			src := formats.NewMTLMaterial("M")
			src.Diffuse = tt.diffuse
			src.Specular = tt.specular
			src.Maps[formats.MapDiffuse] = tt.diffuseMap
			src.Maps[formats.MapSpecular] = tt.specularMap

			m := NewMaterial(&src, "", cache)
			if m.Diffuse != tt.wantDiffuse {
				t.Errorf("diffuse = %v, want %v", m.Diffuse, tt.wantDiffuse)
			}
			if m.Specular != tt.wantSpecular {
				t.Errorf("specular = %v, want %v", m.Specular, tt.wantSpecular)
			}
		})
	}
}

func TestNewMaterial_TextureFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(nil) })

	cache := texture.NewCache(&fakeLoader{fail: map[string]bool{"missing.png": true}})
	src := formats.NewMTLMaterial("Broken")
	src.Diffuse = [3]float32{0, 0, 0}
	src.Maps[formats.MapDiffuse] = "missing.png"

	m := NewMaterial(&src, "", cache)

	if m.Textures[gfx.UnitDiffuse].Valid() {
		t.Error("failed texture should leave the slot unset")
	}
	// No texture, so the black colour stays
	if m.Diffuse != [3]float32{0, 0, 0} {
		t.Errorf("diffuse = %v, want black", m.Diffuse)
	}

	entries := logs.FilterMessage("texture load failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["material"] != "Broken" || fields["file"] != "missing.png" || fields["slot"] != "diffuse" {
		t.Errorf("warning fields = %v", fields)
	}
}

func TestNewMaterials_SharedTextures(t *testing.T) {
	loader := &fakeLoader{}
	cache := texture.NewCache(loader)

	lib, err := formats.ParseMTL([]byte(`newmtl A
map_Kd Bark.PNG
newmtl B
map_Kd bark.png
map_Ks bark.png
`))
	if err != nil {
		t.Fatalf("ParseMTL() error = %v", err)
	}

	mats := NewMaterials(lib, "", cache)
	if len(mats) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(mats))
	}
	a, b := mats["A"], mats["B"]
	if a.Textures[gfx.UnitDiffuse] != b.Textures[gfx.UnitDiffuse] || b.Textures[gfx.UnitDiffuse] != b.Textures[gfx.UnitSpecular] {
		t.Errorf("handles = %v / %v, want one shared handle", a.Textures, b.Textures)
	}
	if len(loader.paths) != 1 {
		t.Errorf("loader called %d times, want 1", len(loader.paths))
	}
}
