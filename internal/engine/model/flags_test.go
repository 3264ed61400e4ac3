package model

import (
	"testing"

	"github.com/Faultbox/objscene/internal/engine/gfx"
	"github.com/Faultbox/objscene/internal/engine/texture"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		alpha   float32
		opacity texture.Handle
		want    RenderFlags
	}{
		{"opaque", 1.0, 0, FlagOpaque},
		{"alpha tested", 1.0, 7, FlagAlphaTested},
		{"transparent", 0.5, 0, FlagTransparent},
		{"transparent wins over opacity map", 0.5, 7, FlagTransparent},
		{"alpha above one is not opaque", 1.5, 0, FlagTransparent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Material{Alpha: tt.alpha}
			m.Textures[gfx.UnitOpacity] = tt.opacity
			if got := Classify(m); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReclassify_OnlyTouchesFlags(t *testing.T) {
	obj := parseOBJ(t, `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
usemtl Glass
f 1//1 2//1 3//1
usemtl Stone
f 1//1 2//1 3//1
`)
	mats := plainMaterials("Glass", "Stone")
	mesh, err := BuildMesh(obj, mats)
	if err != nil {
		t.Fatalf("BuildMesh() error = %v", err)
	}
	before := append([]Chunk(nil), mesh.Chunks...)

	mats["Glass"].Alpha = 0.5
	mesh.Reclassify()

	if mesh.Chunks[0].Flags != FlagTransparent {
		t.Errorf("Glass flags = %v, want Transparent", mesh.Chunks[0].Flags)
	}
	if mesh.Chunks[1].Flags != FlagOpaque {
		t.Errorf("Stone flags = %v, want Opaque", mesh.Chunks[1].Flags)
	}
	for i, c := range mesh.Chunks {
		b := before[i]
		if c.Offset != b.Offset || c.Count != b.Count || c.MaterialName != b.MaterialName || c.Material != b.Material {
			t.Errorf("chunk %d changed beyond flags: %+v -> %+v", i, b, c)
		}
	}

	// Idempotent
	snapshot := append([]Chunk(nil), mesh.Chunks...)
	mesh.Reclassify()
	for i := range mesh.Chunks {
		if mesh.Chunks[i] != snapshot[i] {
			t.Errorf("second Reclassify changed chunk %d", i)
		}
	}
}

func TestRenderFlagsString(t *testing.T) {
	tests := map[RenderFlags]string{
		0:                                "None",
		FlagOpaque:                       "Opaque",
		FlagTransparent:                  "Transparent",
		FlagOpaque | FlagAlphaTested:     "Opaque|AlphaTested",
		FlagAll:                          "Opaque|AlphaTested|Transparent",
	}
	for f, want := range tests {
		if got := f.String(); got != want {
			t.Errorf("RenderFlags(%d).String() = %q, want %q", f, got, want)
		}
	}
}
