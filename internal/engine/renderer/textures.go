package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objscene/internal/engine/texture"
	"github.com/Faultbox/objscene/internal/logger"
)

// TextureLoader decodes image files and uploads them as GL textures. The
// handle it returns is the GL texture name. Colour maps are stored as sRGB so
// sampling returns linear values.
type TextureLoader struct {
	Decode          texture.DecodeOptions
	GenerateMipmaps bool
}

// NewTextureLoader returns a loader decoding with opts. GL expects the first
// row at the bottom, so opts.FlipY is normally set.
func NewTextureLoader(opts texture.DecodeOptions, mipmaps bool) *TextureLoader {
	return &TextureLoader{Decode: opts, GenerateMipmaps: mipmaps}
}

// Load implements texture.Loader.
func (l *TextureLoader) Load(path string, space texture.ColorSpace) (texture.Handle, error) {
	img, err := texture.Decode(path, l.Decode)
	if err != nil {
		return 0, err
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("texture %s: empty image", path)
	}

	internal := int32(gl.RGBA8)
	if space == texture.SRGB {
		internal = gl.SRGB8_ALPHA8
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	minFilter := int32(gl.LINEAR)
	if l.GenerateMipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	logger.Debug("texture uploaded",
		zap.String("path", path),
		zap.Stringer("space", space),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Uint32("id", id),
	)
	return texture.Handle(id), nil
}

// DeleteTextures releases every texture in the cache.
func DeleteTextures(c *texture.Cache) {
	for _, h := range c.Handles() {
		id := uint32(h)
		gl.DeleteTextures(1, &id)
	}
}
