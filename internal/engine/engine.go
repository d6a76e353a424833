// Package engine defines the document engine contract: the external
// collaborator that decodes document bytes into pages, text and outline data.
// The reader core consumes these interfaces and never implements decoding
// itself.
package engine

import (
	"context"

	"github.com/codexreader/codex-core/internal/domain"
)

// Viewport is a page's rendered size at a given scale.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextRun is a positioned run of text extracted from a page.
type TextRun struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Surface is the drawing target for page rendering. The engine writes RGBA
// pixels; the presentation layer decides what backs it.
type Surface interface {
	// SetBounds sizes the surface before rendering begins.
	SetBounds(width, height int)
	// WriteRGBA delivers the rendered pixels, 4 bytes per pixel, row-major.
	WriteRGBA(pix []byte) error
}

// OutlineNode is one entry in the document's outline tree, with its
// destination already resolved to a 1-indexed page number.
type OutlineNode struct {
	Title      string
	PageNumber int
	Children   []OutlineNode
}

// Engine opens documents from raw bytes.
type Engine interface {
	// Open decodes a document. Malformed input yields a load error and the
	// reader surfaces a failure state instead of opening.
	Open(ctx context.Context, data []byte) (Document, error)
}

// Document is an open document handle.
type Document interface {
	PageCount() int
	// Page returns the 1-indexed page n.
	Page(n int) (Page, error)
	Outline(ctx context.Context) ([]OutlineNode, error)
	Close() error
}

// Page is a single page of an open document.
type Page interface {
	Number() int
	Viewport(scale float64) Viewport
	// Render draws the page onto the surface. Canceling the context aborts
	// the render; the surface contents are then undefined.
	Render(ctx context.Context, surface Surface, viewport Viewport) error
	TextContent(ctx context.Context) ([]TextRun, error)
}

// FlattenOutline walks an outline tree depth-first into the flat chapter
// list the navigation panel consumes.
func FlattenOutline(nodes []OutlineNode) []domain.Chapter {
	var chapters []domain.Chapter
	var walk func(nodes []OutlineNode, level int)
	walk = func(nodes []OutlineNode, level int) {
		for _, n := range nodes {
			chapters = append(chapters, domain.Chapter{
				Title:      n.Title,
				PageNumber: n.PageNumber,
				Level:      level,
			})
			walk(n.Children, level+1)
		}
	}
	walk(nodes, 0)
	return chapters
}
