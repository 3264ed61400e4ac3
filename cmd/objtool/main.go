// objtool is a CLI utility for inspecting Wavefront OBJ models.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"github.com/Faultbox/objscene/internal/engine/gfx"
	"github.com/Faultbox/objscene/internal/engine/model"
	"github.com/Faultbox/objscene/internal/engine/scene"
	"github.com/Faultbox/objscene/internal/engine/texture"
	"github.com/Faultbox/objscene/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Missing textures are reported as warnings
	if err := logger.Init("warn", ""); err != nil {
		fail(err)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "chunks":
		cmdChunks(args)
	case "materials", "mtl":
		cmdMaterials(args)
	case "textures", "tex":
		cmdTextures(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ model utility

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>                       Show counts, bounds, pivot and height
  chunks <file.obj>                     List draw chunks with render flags
  materials <file.obj>                  Show the material table
  textures [-v] <file.obj> <outdir> [size]  Write WebP previews of every texture

Examples:
  objtool info models/house.obj
  objtool chunks models/house.obj
  objtool textures models/house.obj ./previews 256`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// loadNode loads path with textures decoded into memory by loader. A nil
// loader skips textures.
func loadNode(path string, loader texture.Loader) (*scene.Node, *texture.Cache) {
	var cache *texture.Cache
	if loader != nil {
		cache = texture.NewCache(loader)
	}
	n, err := scene.Load(path, cache, scene.LoadOptions{})
	if err != nil {
		fail(err)
	}
	return n, cache
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>")
		os.Exit(1)
	}

	n, _ := loadNode(args[0], nil)
	m := n.Mesh
	b := m.Bounds

	counts := make(map[model.RenderFlags]int)
	for _, c := range m.Chunks {
		counts[c.Flags]++
	}

	fmt.Printf("Model:     %s\n", args[0])
	fmt.Printf("Vertices:  %d\n", m.VertexCount())
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Printf("Chunks:    %d (opaque %d, alpha-tested %d, transparent %d)\n",
		len(m.Chunks), counts[model.FlagOpaque], counts[model.FlagAlphaTested], counts[model.FlagTransparent])
	fmt.Printf("Materials: %d\n", len(n.Materials))
	fmt.Printf("Bounds:    min (%.3f, %.3f, %.3f) max (%.3f, %.3f, %.3f)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	fmt.Printf("Pivot:     (%.3f, %.3f, %.3f)\n", n.Position.X, n.Position.Y, n.Position.Z)
	fmt.Printf("Height:    %.1f\n", n.Height)
}

func cmdChunks(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool chunks <file.obj>")
		os.Exit(1)
	}

	n, _ := loadNode(args[0], nil)

	fmt.Printf("%-4s %-24s %10s %10s  %s\n", "#", "MATERIAL", "OFFSET", "COUNT", "FLAGS")
	for i, c := range n.Mesh.Chunks {
		fmt.Printf("%-4d %-24s %10d %10d  %s\n", i, c.MaterialName, c.Offset, c.Count, c.Flags)
	}
}

func cmdMaterials(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool materials <file.obj>")
		os.Exit(1)
	}

	// Only resolve paths; a missing file still shows up as an unset slot
	paths := make(map[texture.Handle]string)
	loader := texture.LoaderFunc(func(path string, _ texture.ColorSpace) (texture.Handle, error) {
		if _, err := os.Stat(path); err != nil {
			return 0, err
		}
		h := texture.Handle(len(paths) + 1)
		paths[h] = path
		return h, nil
	})
	n, _ := loadNode(args[0], loader)

	names := make([]string, 0, len(n.Materials))
	for name := range n.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := n.Materials[name]
		fmt.Printf("%s [%s]\n", name, model.Classify(m))
		fmt.Printf("  Ka %v  Kd %v  Ks %v  Ke %v\n", m.Ambient, m.Diffuse, m.Specular, m.Emissive)
		fmt.Printf("  d %.3f  Ns %.1f\n", m.Alpha, m.SpecularExponent)
		for unit := gfx.TextureUnit(0); unit < gfx.UnitCount; unit++ {
			h := m.Textures[unit]
			if !h.Valid() {
				continue
			}
			fmt.Printf("  %-17s %s\n", unit.SamplerName(), paths[h])
		}
	}
}

func cmdTextures(args []string) {
	fs := flag.NewFlagSet("textures", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Log texture loading")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: objtool textures [-v] <file.obj> <outdir> [size]")
		os.Exit(1)
	}

	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			fail(err)
		}
	}

	size := 256
	if fs.NArg() > 2 {
		v, err := strconv.Atoi(fs.Arg(2))
		if err != nil || v <= 0 {
			fail(fmt.Errorf("invalid size %q", fs.Arg(2)))
		}
		size = v
	}

	loader := texture.NewMemoryLoader(texture.DecodeOptions{MaxSize: size})
	_, cache := loadNode(fs.Arg(0), loader)

	outDir := fs.Arg(1)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fail(err)
	}

	written := 0
	for _, h := range cache.Handles() {
		img, space, ok := loader.Image(h)
		if !ok {
			continue
		}
		src := loader.Path(h)
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		out := filepath.Join(outDir, base+".webp")

		if err := writeWebP(out, img); err != nil {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", src, err)
			continue
		}
		fmt.Printf("  %-40s -> %s (%dx%d, %s)\n", src, out, img.Bounds().Dx(), img.Bounds().Dy(), space)
		written++
	}
	fmt.Printf("Wrote %d of %d textures\n", written, cache.Len())
}

func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
