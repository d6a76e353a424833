package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexreader/codex-core/internal/engine"
	"github.com/codexreader/codex-core/internal/errors"
	"github.com/codexreader/codex-core/internal/logger"
)

func openFake(t *testing.T, fake *engine.Fake) engine.Document {
	t.Helper()
	doc, err := fake.Open(context.Background(), []byte("x"))
	require.NoError(t, err)
	return doc
}

func newLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := NewLoader(logger.Discard().Logger)
	require.NoError(t, err)
	return l
}

func TestImageSurface(t *testing.T) {
	s := NewImageSurface()

	assert.Error(t, s.WriteRGBA([]byte{0, 0, 0, 0}), "write before SetBounds")

	s.SetBounds(2, 2)
	assert.Error(t, s.WriteRGBA(make([]byte, 3)), "wrong buffer size")

	require.NoError(t, s.WriteRGBA(make([]byte, 2*2*4)))
	img := s.Image()
	require.NotNil(t, img)
	assert.Equal(t, 2, img.Bounds().Dx())
}

func TestLoader_RendersAndCaches(t *testing.T) {
	l := newLoader(t)
	l.Reset(openFake(t, &engine.Fake{PageTexts: []string{"a", "b"}}))

	rendered, err := l.Load(context.Background(), 1, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 1, rendered.Page)
	assert.Equal(t, 612, rendered.Image.Bounds().Dx())

	assert.True(t, l.Contains(1, 1.0))
	assert.False(t, l.Contains(2, 1.0))

	again, err := l.Load(context.Background(), 1, 1.0)
	require.NoError(t, err)
	assert.Same(t, rendered, again, "second load must hit the cache")
}

func TestLoader_ScaleBucketsAreDistinct(t *testing.T) {
	l := newLoader(t)
	l.Reset(openFake(t, &engine.Fake{PageTexts: []string{"a"}}))

	_, err := l.Load(context.Background(), 1, 1.0)
	require.NoError(t, err)

	assert.False(t, l.Contains(1, 1.5))
	zoomed, err := l.Load(context.Background(), 1, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 918, zoomed.Image.Bounds().Dx())
}

func TestLoader_NoDocument(t *testing.T) {
	l := newLoader(t)

	_, err := l.Load(context.Background(), 1, 1.0)
	assert.ErrorIs(t, err, errors.ErrLoad)
}

func TestLoader_ResetClearsCache(t *testing.T) {
	l := newLoader(t)
	l.Reset(openFake(t, &engine.Fake{PageTexts: []string{"a"}}))

	_, err := l.Load(context.Background(), 1, 1.0)
	require.NoError(t, err)

	l.Reset(openFake(t, &engine.Fake{PageTexts: []string{"b"}}))
	assert.False(t, l.Contains(1, 1.0))
}

func TestLoader_StaleGenerationDropped(t *testing.T) {
	l := newLoader(t)

	fake := &engine.Fake{PageTexts: []string{"slow"}, RenderDelayCtx: true}
	l.Reset(openFake(t, fake))

	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	result := make(chan error, 1)
	go func() {
		close(started)
		_, err := l.Load(ctx, 1, 1.0)
		result <- err
	}()

	<-started
	// The document is switched while the render is still in flight; the
	// in-flight render must not land in the fresh cache.
	l.Reset(openFake(t, &engine.Fake{PageTexts: []string{"new"}}))
	cancel()

	err := <-result
	assert.ErrorIs(t, err, errors.ErrCanceled)
	assert.False(t, l.Contains(1, 1.0))
}

func TestViewMode(t *testing.T) {
	assert.True(t, ViewSingle.Valid())
	assert.True(t, ViewDouble.Valid())
	assert.True(t, ViewContinuous.Valid())
	assert.False(t, ViewMode("grid").Valid())

	assert.Equal(t, 1, ViewSingle.Step())
	assert.Equal(t, 2, ViewDouble.Step())
	assert.Equal(t, 1, ViewContinuous.Step())
}

func TestViewMode_Paging(t *testing.T) {
	assert.Equal(t, 6, ViewSingle.NextPage(5, 100))
	assert.Equal(t, 7, ViewDouble.NextPage(5, 100))

	// Clamped at the end.
	assert.Equal(t, 100, ViewDouble.NextPage(99, 100))

	// Unknown total: no upper clamp.
	assert.Equal(t, 7, ViewDouble.NextPage(5, 0))

	assert.Equal(t, 4, ViewSingle.PrevPage(5))
	assert.Equal(t, 3, ViewDouble.PrevPage(5))
	assert.Equal(t, 1, ViewDouble.PrevPage(2))
	assert.Equal(t, 1, ViewSingle.PrevPage(1))
}
