// Package covers turns first-page renders into library cover art: a bounded
// thumbnail plus a blurhash placeholder string for instant display.
package covers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding
	"image/png"
	"log/slog"

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
)

// blurhash component counts. 4x3 matches the typical portrait page aspect.
const (
	blurhashXComponents = 4
	blurhashYComponents = 3
)

// Cover is a processed cover image.
type Cover struct {
	Thumbnail []byte // PNG-encoded, bounded to MaxDimension
	Width     int
	Height    int
	Blurhash  string
}

// Processor converts page render bytes into covers.
type Processor struct {
	logger *slog.Logger

	// MaxDimension bounds the longer thumbnail edge.
	MaxDimension int
}

// NewProcessor creates a Processor with the default thumbnail bound.
func NewProcessor(logger *slog.Logger) *Processor {
	return &Processor{
		logger:       logger,
		MaxDimension: 480,
	}
}

// Process decodes imageData (PNG or JPEG), scales it down to the configured
// bound and computes its blurhash.
func (p *Processor) Process(imageData []byte) (*Cover, error) {
	src, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("decode cover image: %w", err)
	}

	thumb := p.scale(src)
	bounds := thumb.Bounds()

	hash, err := blurhash.Encode(blurhashXComponents, blurhashYComponents, thumb)
	if err != nil {
		return nil, fmt.Errorf("encode blurhash: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	if p.logger != nil {
		p.logger.Debug("processed cover image",
			"format", format,
			"width", bounds.Dx(),
			"height", bounds.Dy(),
			"thumbnail_bytes", buf.Len())
	}

	return &Cover{
		Thumbnail: buf.Bytes(),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Blurhash:  hash,
	}, nil
}

// scale shrinks src so its longer edge fits MaxDimension. Images already
// within bounds are converted but not resampled.
func (p *Processor) scale(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	maxDim := p.MaxDimension
	if w <= maxDim && h <= maxDim {
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
		return out
	}

	if w > h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), src, b, draw.Over, nil)
	return out
}
