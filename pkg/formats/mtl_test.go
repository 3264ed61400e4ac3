package formats

import (
	"errors"
	"testing"
)

func TestParseMTL_Defaults(t *testing.T) {
	lib, err := ParseMTL([]byte("newmtl Plain\n"))
	if err != nil {
		t.Fatalf("ParseMTL() error = %v", err)
	}

	m, ok := lib.Lookup("Plain")
	if !ok {
		t.Fatal("material Plain not found")
	}
	if m.Diffuse != [3]float32{0.5, 0.5, 0.5} || m.Ambient != m.Diffuse || m.Specular != m.Diffuse {
		t.Errorf("colour defaults = %v/%v/%v, want mid-gray", m.Ambient, m.Diffuse, m.Specular)
	}
	if m.Emissive != [3]float32{} {
		t.Errorf("Emissive = %v, want black", m.Emissive)
	}
	if m.Alpha != 1.0 {
		t.Errorf("Alpha = %v, want 1.0", m.Alpha)
	}
	if m.SpecularExponent != 22.0 {
		t.Errorf("SpecularExponent = %v, want 22.0", m.SpecularExponent)
	}
	for slot := MTLMap(0); slot < MapCount; slot++ {
		if m.Maps[slot] != "" {
			t.Errorf("%s map = %q, want unset", slot, m.Maps[slot])
		}
	}
}

func TestParseMTL_Directives(t *testing.T) {
	src := `# exported
newmtl Glass Pane
Ka 0.1 0.2 0.3
Kd 0 0 0
Ks 1 1 1
Ke 0.5 0 0
Ns 96.5
d 0.25
illum 2
map_Kd textures/glass diffuse.png
map_Ks spec.png
bump normal.png
map_d mask.png

newmtl Rough
map_bump rough_n.png
`
	lib, err := ParseMTL([]byte(src))
	if err != nil {
		t.Fatalf("ParseMTL() error = %v", err)
	}
	if len(lib.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(lib.Materials))
	}
	if lib.Materials[0].Name != "Glass Pane" || lib.Materials[1].Name != "Rough" {
		t.Errorf("material order = %q, %q", lib.Materials[0].Name, lib.Materials[1].Name)
	}

	m, _ := lib.Lookup("Glass Pane")
	if m.Ambient != [3]float32{0.1, 0.2, 0.3} {
		t.Errorf("Ambient = %v", m.Ambient)
	}
	if m.Diffuse != [3]float32{0, 0, 0} {
		t.Errorf("Diffuse = %v, parser must not apply texture colour correction", m.Diffuse)
	}
	if m.Emissive != [3]float32{0.5, 0, 0} {
		t.Errorf("Emissive = %v", m.Emissive)
	}
	if m.SpecularExponent != 96.5 || m.Alpha != 0.25 {
		t.Errorf("Ns/d = %v/%v, want 96.5/0.25", m.SpecularExponent, m.Alpha)
	}

	wantMaps := map[MTLMap]string{
		MapDiffuse:  "textures/glass diffuse.png",
		MapSpecular: "spec.png",
		MapNormal:   "normal.png",
		MapOpacity:  "mask.png",
	}
	for slot, want := range wantMaps {
		if m.Maps[slot] != want {
			t.Errorf("%s map = %q, want %q", slot, m.Maps[slot], want)
		}
	}

	rough, _ := lib.Lookup("Rough")
	if rough.Maps[MapNormal] != "rough_n.png" {
		t.Errorf("map_bump = %q, want rough_n.png", rough.Maps[MapNormal])
	}
}

func TestParseMTL_RedefinitionOverwrites(t *testing.T) {
	src := "newmtl A\nKd 1 0 0\nnewmtl B\nnewmtl A\nd 0.5\n"
	lib, err := ParseMTL([]byte(src))
	if err != nil {
		t.Fatalf("ParseMTL() error = %v", err)
	}
	if len(lib.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(lib.Materials))
	}
	a, _ := lib.Lookup("A")
	if a.Diffuse != DefaultMTLColor || a.Alpha != 0.5 {
		t.Errorf("redefined A = Kd %v d %v, want defaults with d 0.5", a.Diffuse, a.Alpha)
	}
}

func TestParseMTL_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"directive before newmtl", "Kd 1 1 1\n", ErrNoActiveMaterial},
		{"map before newmtl", "map_Kd a.png\n", ErrNoActiveMaterial},
		{"short colour", "newmtl A\nKd 1 1\n", ErrMalformedDirective},
		{"non-numeric colour", "newmtl A\nKs 1 x 1\n", ErrMalformedDirective},
		{"missing alpha", "newmtl A\nd\n", ErrMalformedDirective},
		{"missing exponent", "newmtl A\nNs\n", ErrMalformedDirective},
		{"newmtl without name", "newmtl\n", ErrMalformedDirective},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMTL([]byte(tt.src))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseMTL() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseMTL_UnknownDirectivesBeforeNewmtl(t *testing.T) {
	lib, err := ParseMTL([]byte("illum 2\nNi 1.45\nnewmtl A\n"))
	if err != nil {
		t.Fatalf("ParseMTL() error = %v", err)
	}
	if len(lib.Materials) != 1 {
		t.Errorf("expected 1 material, got %d", len(lib.Materials))
	}
}
