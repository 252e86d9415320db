/*
Package mcmeta implements the animation sidecar written next to each
generated texture.

Minecraft treats a texture taller than it is wide as a vertical strip of
animation frames when a file named after the texture with an additional
".mcmeta" extension declares an animation section. The sidecars written here
declare an empty animation section so the game falls back to its default
frame timing.
*/
package mcmeta

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Extension is appended to the texture filename, so stone.png becomes
	// stone.png.mcmeta.
	Extension = ".mcmeta"

	textureExtension = ".png"
)

// Content is the literal sidecar body.
var Content = []byte("{\n  \"animation\": {}\n}")

// Filename returns the sidecar filename for the texture at path.
func Filename(texture string) string {
	return texture + Extension
}

// Texture returns the texture name a sidecar filename refers to and whether
// the filename was a texture sidecar at all.
func Texture(sidecar string) (string, bool) {
	base := filepath.Base(sidecar)
	if !strings.HasSuffix(base, textureExtension+Extension) {
		return "", false
	}
	return strings.TrimSuffix(base, textureExtension+Extension), true
}

// Exists reports whether the texture at path already has a sidecar.
func Exists(texture string) (bool, error) {
	info, err := os.Stat(Filename(texture))
	switch {
	case err == nil:
		return info.Mode().IsRegular(), nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Write creates or replaces the sidecar for the texture at path and returns
// the sidecar filename.
func Write(texture string) (string, error) {
	file := Filename(texture)
	if err := os.WriteFile(file, Content, 0644); err != nil {
		return "", err
	}
	return file, nil
}
