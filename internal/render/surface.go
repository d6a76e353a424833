// Package render drives page rendering for the document view: an in-memory
// pixel surface, a cache-backed page loader that survives rapid page and
// zoom changes, and the page-layout view modes.
package render

import (
	"image"

	"github.com/codexreader/codex-core/internal/errors"
)

// ImageSurface backs a render with a standard RGBA image.
type ImageSurface struct {
	img *image.RGBA
}

// NewImageSurface creates an unsized surface. SetBounds is called by the
// engine before pixels arrive.
func NewImageSurface() *ImageSurface {
	return &ImageSurface{}
}

// SetBounds sizes the backing image.
func (s *ImageSurface) SetBounds(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// WriteRGBA copies rendered pixels into the backing image.
func (s *ImageSurface) WriteRGBA(pix []byte) error {
	if s.img == nil {
		return errors.Internal("surface written before SetBounds")
	}
	if len(pix) != len(s.img.Pix) {
		return errors.Internalf("pixel buffer size %d does not match surface %d", len(pix), len(s.img.Pix))
	}
	copy(s.img.Pix, pix)
	return nil
}

// Image returns the rendered image, or nil before any render.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}
