// Package texture provides the texture cache shared by model loads and the
// image decoding behind it.
package texture

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Handle is an opaque texture reference issued by a Loader. Zero means unset;
// renderers substitute a default 1x1 texture for it.
type Handle uint32

// Valid reports whether the handle refers to a loaded texture.
func (h Handle) Valid() bool {
	return h != 0
}

// ColorSpace tells the loader how texel values are to be interpreted.
type ColorSpace int

const (
	Linear ColorSpace = iota // Data maps: normals, opacity
	SRGB                     // Colour maps: diffuse, specular
)

// String returns the colour space name.
func (c ColorSpace) String() string {
	switch c {
	case Linear:
		return "linear"
	case SRGB:
		return "srgb"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Loader turns an image file into a texture handle.
type Loader interface {
	Load(path string, space ColorSpace) (Handle, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string, space ColorSpace) (Handle, error)

// Load calls f.
func (f LoaderFunc) Load(path string, space ColorSpace) (Handle, error) {
	return f(path, space)
}

// Cache maps texture names to handles so each file is loaded once per
// process. Entries are never evicted. Failed loads are not cached.
type Cache struct {
	mu     sync.Mutex
	loader Loader
	byName map[string]Handle
	byID   map[Handle]string
}

// NewCache creates a cache backed by the given loader.
func NewCache(loader Loader) *Cache {
	return &Cache{
		loader: loader,
		byName: make(map[string]Handle),
		byID:   make(map[Handle]string),
	}
}

// GetOrLoad returns the handle for name, loading baseDir/name on first use.
// The cache key is the lowercased name as written in the material file, so
// the same name under two directories resolves to the first one loaded.
func (c *Cache) GetOrLoad(name, baseDir string, space ColorSpace) (Handle, error) {
	key := strings.ToLower(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.byName[key]; ok {
		return h, nil
	}

	h, err := c.loader.Load(filepath.Join(baseDir, filepath.FromSlash(name)), space)
	if err != nil {
		return 0, fmt.Errorf("loading texture %q: %w", name, err)
	}
	if !h.Valid() {
		return 0, fmt.Errorf("loading texture %q: loader returned no handle", name)
	}

	c.byName[key] = h
	c.byID[h] = key
	return h, nil
}

// Name returns the cache key a handle was stored under.
func (c *Cache) Name(h Handle) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name, ok := c.byID[h]
	return name, ok
}

// Len returns the number of cached textures.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.byName)
}

// Handles returns every cached handle in ascending order.
func (c *Cache) Handles() []Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Handle, 0, len(c.byID))
	for h := range c.byID {
		out = append(out, h)
	}
	slices.Sort(out)
	return out
}
