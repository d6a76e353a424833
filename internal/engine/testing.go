package engine

import (
	"context"
	"strings"

	"github.com/codexreader/codex-core/internal/errors"
)

// Fake is an in-memory Engine for tests. Each element of PageTexts becomes
// one page whose text content is that string split on whitespace.
type Fake struct {
	PageTexts []string
	OutlineFn func() []OutlineNode
	// FailOpen makes Open return a load error, simulating malformed bytes.
	FailOpen bool
	// RenderDelayCtx makes Render block until the context is done, for
	// exercising cancellation paths.
	RenderDelayCtx bool
}

// Open implements Engine.
func (f *Fake) Open(_ context.Context, data []byte) (Document, error) {
	if f.FailOpen || len(data) == 0 {
		return nil, errors.Load("malformed document bytes")
	}
	return &fakeDocument{fake: f}, nil
}

type fakeDocument struct {
	fake   *Fake
	closed bool
}

func (d *fakeDocument) PageCount() int { return len(d.fake.PageTexts) }

func (d *fakeDocument) Page(n int) (Page, error) {
	if n < 1 || n > len(d.fake.PageTexts) {
		return nil, errors.NotFoundf("page %d out of range", n)
	}
	return &fakePage{fake: d.fake, number: n}, nil
}

func (d *fakeDocument) Outline(_ context.Context) ([]OutlineNode, error) {
	if d.fake.OutlineFn != nil {
		return d.fake.OutlineFn(), nil
	}
	return nil, nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

type fakePage struct {
	fake   *Fake
	number int
}

func (p *fakePage) Number() int { return p.number }

func (p *fakePage) Viewport(scale float64) Viewport {
	// Letter-ish aspect ratio at 100 points per unit scale.
	return Viewport{Width: 612 * scale, Height: 792 * scale}
}

func (p *fakePage) Render(ctx context.Context, surface Surface, viewport Viewport) error {
	if p.fake.RenderDelayCtx {
		<-ctx.Done()
		return errors.Canceled("render superseded")
	}
	if err := ctx.Err(); err != nil {
		return errors.Canceled("render superseded")
	}
	w, h := int(viewport.Width), int(viewport.Height)
	surface.SetBounds(w, h)
	return surface.WriteRGBA(make([]byte, w*h*4))
}

func (p *fakePage) TextContent(ctx context.Context) ([]TextRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Canceled("text extraction superseded")
	}
	var runs []TextRun
	y := 0.0
	for _, word := range strings.Fields(p.fake.PageTexts[p.number-1]) {
		runs = append(runs, TextRun{Text: word, X: 0, Y: y})
		y += 12
	}
	return runs, nil
}
