package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/engine/texture"
	"github.com/Faultbox/objscene/internal/logger"
	"github.com/Faultbox/objscene/pkg/formats"
)

// Model is a loaded mesh together with the materials its chunks reference.
type Model struct {
	Name      string // File name without extension
	Path      string
	Mesh      *Mesh
	Materials map[string]*Material
}

// Load reads an OBJ file and the material library it names, and builds its
// mesh. Textures are resolved through cache; their failures are logged and
// skipped. Any other problem fails the whole load.
func Load(path string, cache *texture.Cache) (*Model, error) {
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	baseDir := filepath.Dir(path)
	materials := map[string]*Material{}
	if obj.MaterialLib != "" {
		materials, err = LoadMaterials(filepath.Join(baseDir, filepath.FromSlash(obj.MaterialLib)), baseDir, cache)
		if err != nil {
			return nil, err
		}
	}

	mesh, err := BuildMesh(obj, materials)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", path, err)
	}

	logger.Named("model").Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("chunks", len(mesh.Chunks)),
		zap.Int("materials", len(materials)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Model{
		Name:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:      path,
		Mesh:      mesh,
		Materials: materials,
	}, nil
}

// LoadMaterials reads and resolves an MTL file. Texture paths are relative to
// baseDir.
func LoadMaterials(path, baseDir string, cache *texture.Cache) (map[string]*Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading material library: %w", err)
	}
	lib, err := formats.ParseMTL(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return NewMaterials(lib, baseDir, cache), nil
}
