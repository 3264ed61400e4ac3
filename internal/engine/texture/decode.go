package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for image extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// decoders maps lowercased file extensions to image decoders. Dispatch is by
// extension because TGA has no magic number to sniff.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// DecodeOptions controls how image files are prepared for upload.
type DecodeOptions struct {
	// FlipY stores rows bottom-up, matching OpenGL's texture origin.
	FlipY bool
	// MaxSize downscales images whose larger side exceeds it. Zero disables.
	MaxSize int
}

// Decode reads and decodes an image file into RGBA.
func Decode(path string, opts DecodeOptions) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data, filepath.Ext(path), opts)
}

// DecodeBytes decodes image data using the decoder registered for ext.
func DecodeBytes(data []byte, ext string, opts DecodeOptions) (*image.RGBA, error) {
	decode, ok := decoders[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decode: empty image")
	}

	if opts.MaxSize > 0 && (b.Dx() > opts.MaxSize || b.Dy() > opts.MaxSize) {
		img = resize.Thumbnail(uint(opts.MaxSize), uint(opts.MaxSize), img, resize.Lanczos3)
	}

	rgba := ToRGBA(img)
	if opts.FlipY {
		FlipVertical(rgba)
	}
	return rgba, nil
}

// ToRGBA converts any image to *image.RGBA with its origin at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FlipVertical reverses the row order of img in place.
func FlipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	rowLen := img.Bounds().Dx() * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		bot := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+rowLen]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}

// MemoryLoader is a Loader that keeps decoded images in memory instead of
// uploading them. Headless tools use it.
type MemoryLoader struct {
	opts   DecodeOptions
	images []*image.RGBA
	spaces []ColorSpace
	paths  []string
}

// NewMemoryLoader creates a loader that decodes with opts.
func NewMemoryLoader(opts DecodeOptions) *MemoryLoader {
	return &MemoryLoader{opts: opts}
}

// Load decodes path and returns a handle to the stored image.
func (m *MemoryLoader) Load(path string, space ColorSpace) (Handle, error) {
	img, err := Decode(path, m.opts)
	if err != nil {
		return 0, err
	}
	m.images = append(m.images, img)
	m.spaces = append(m.spaces, space)
	m.paths = append(m.paths, path)
	return Handle(len(m.images)), nil
}

// Image returns the decoded image behind h.
func (m *MemoryLoader) Image(h Handle) (*image.RGBA, ColorSpace, bool) {
	i := int(h) - 1
	if i < 0 || i >= len(m.images) {
		return nil, Linear, false
	}
	return m.images[i], m.spaces[i], true
}

// Path returns the file path h was loaded from.
func (m *MemoryLoader) Path(h Handle) string {
	i := int(h) - 1
	if i < 0 || i >= len(m.paths) {
		return ""
	}
	return m.paths[i]
}

// Handles returns every handle issued so far, in load order.
func (m *MemoryLoader) Handles() []Handle {
	out := make([]Handle, len(m.images))
	for i := range out {
		out[i] = Handle(i + 1)
	}
	return out
}
