package shader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSources() Sources {
	srcs := make(Sources)
	for _, v := range Variants() {
		srcs[v.String()] = testSource
	}
	return srcs
}

func TestManagerSharesPrograms(t *testing.T) {
	ctx := newFakeContext()
	m := NewManager(ctx, StaticSources(testSources()))

	a, err := m.Acquire(Icon)
	require.NoError(t, err)
	b, err := m.Acquire(Icon)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 2, m.RefCount(Icon))
	assert.Same(t, a, m.Get(Icon))

	stats := m.GetStats()
	assert.Equal(t, 1, stats.ProgramsBuilt)
	assert.Equal(t, 1, stats.CacheHits)
	assert.Equal(t, 1, stats.CacheMisses)
	assert.Equal(t, 1, stats.ActivePrograms)
}

func TestManagerDestroysOnLastRelease(t *testing.T) {
	ctx := newFakeContext()
	m := NewManager(ctx, StaticSources(testSources()))

	p, err := m.Acquire(Line)
	require.NoError(t, err)
	_, err = m.Acquire(Line)
	require.NoError(t, err)

	m.Release(Line)
	assert.Empty(t, ctx.destroyed)
	m.Release(Line)
	assert.Equal(t, []ProgramHandle{p.Handle()}, ctx.destroyed)
	assert.Nil(t, m.Get(Line))
	assert.Equal(t, 0, m.GetStats().ActivePrograms)

	// Releasing an unknown program is logged, not fatal
	m.Release(Line)
	assert.Len(t, ctx.destroyed, 1)
}

func TestManagerBuildFailure(t *testing.T) {
	ctx := newFakeContext()
	ctx.failLink = true
	m := NewManager(ctx, StaticSources(testSources()))

	p, err := m.Acquire(SDF)
	assert.Nil(t, p)
	var buildErr *BuildError
	assert.True(t, errors.As(err, &buildErr))
	assert.Equal(t, 1, m.GetStats().BuildFailures)
	assert.Equal(t, 0, m.RefCount(SDF))
}

func TestManagerMissingSource(t *testing.T) {
	m := NewManager(newFakeContext(), StaticSources(Sources{}))

	_, err := m.Acquire(Raster)
	assert.ErrorIs(t, err, ErrMissingSource)
}

func TestManagerReloadsQueuedPrograms(t *testing.T) {
	ctx := newFakeContext()
	srcs := testSources()
	m := NewManager(ctx, func() (Sources, error) { return srcs, nil })

	p, err := m.Acquire(Icon)
	require.NoError(t, err)
	old := p.Handle()

	m.QueueReload("icon")
	m.QueueReload("icon")
	m.QueueReload("circle") // not live, ignored
	m.QueueReload("terrain")
	require.NoError(t, m.ProcessReloads())

	assert.Same(t, p, m.Get(Icon), "drawables keep the same program")
	assert.NotEqual(t, old, p.Handle())
	assert.Equal(t, 1, m.GetStats().Reloads)

	// Nothing queued
	require.NoError(t, m.ProcessReloads())
	assert.Equal(t, 1, m.GetStats().Reloads)
}

func TestManagerFailedReloadKeepsProgram(t *testing.T) {
	ctx := newFakeContext()
	srcs := testSources()
	m := NewManager(ctx, func() (Sources, error) { return srcs, nil })

	p, err := m.Acquire(Circle)
	require.NoError(t, err)
	old := p.Handle()

	srcs["circle"] = Source{Vertex: "syntax error", Fragment: "void main() {}"}
	m.QueueReload("circle")
	err = m.ProcessReloads()

	var buildErr *BuildError
	assert.True(t, errors.As(err, &buildErr))
	assert.Equal(t, old, p.Handle())
	assert.NoError(t, p.Activate(0))
}

func TestManagerClear(t *testing.T) {
	ctx := newFakeContext()
	m := NewManager(ctx, StaticSources(testSources()))
	for _, v := range []Variant{Plain, Outline, Pattern} {
		_, err := m.Acquire(v)
		require.NoError(t, err)
	}

	m.LogStats()
	m.Clear()

	assert.Len(t, ctx.destroyed, 3)
	assert.Empty(t, ctx.live)
	assert.Equal(t, 0, m.GetStats().ActivePrograms)
}
