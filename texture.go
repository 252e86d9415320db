package neonpack

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/neonpack/palette"
	"github.com/disintegration/imaging"
)

const textureExtension = ".png"

// Texture is a decoded source texture.
type Texture struct {
	Name  string
	Path  string
	SHA1  string
	Image *image.NRGBA
}

// LoadTexture decodes the image at path and normalises it to NRGBA.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: texture file not found: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	h := sha1.New()
	m, err := imaging.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open image file %s: %v", ErrIO, path, err)
	}
	// Hash any trailing bytes the decoder did not consume
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	return &Texture{
		Name:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:  path,
		SHA1:  fmt.Sprintf("%X", h.Sum(nil)),
		Image: imaging.Clone(m),
	}, nil
}

// TexturePath returns the path of the named texture within dir.
func TexturePath(dir, name string) string {
	return filepath.Join(dir, name+textureExtension)
}

// pngPath replaces any extension other than .png.
func pngPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), textureExtension) {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + textureExtension
}

// SaveTexture writes m as a PNG, creating parent directories as needed. A
// path without a .png extension has it replaced, and the path actually
// written is returned. If colors is non-zero the image is first reduced to
// that many palette entries.
func SaveTexture(m image.Image, path string, colors int) (string, error) {
	path = pngPath(path)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("%w: cannot create directory %s: %v", ErrIO, dir, err)
		}
	}

	if err := encodeFile(m, path, colors); err != nil {
		return "", fmt.Errorf("%w: cannot save image to %s: %v", ErrIO, path, err)
	}

	return path, nil
}

// encodeFile removes the file again if it cannot be written in full.
func encodeFile(m image.Image, path string, colors int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if colors > 0 {
		return palette.Encode(f, m, colors)
	}
	return imaging.Encode(f, m, imaging.PNG)
}
