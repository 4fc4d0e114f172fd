package shader

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"GopherMap/internal/logger"

	"go.uber.org/zap"
)

// ManagerStats provides debugging and profiling information
type ManagerStats struct {
	ProgramsBuilt  int
	BuildFailures  int
	CacheHits      int
	CacheMisses    int
	Reloads        int
	ActivePrograms int
}

// SourceLoader returns the current source set; it is called again before
// every reload so edited files are picked up.
type SourceLoader func() (Sources, error)

type managedProgram struct {
	program  *Program
	refCount int
}

// Manager shares one Program per variant between drawables and destroys it
// when the last reference is released. Everything except QueueReload must
// run on the thread owning the graphics context.
type Manager struct {
	ctx      Context
	load     SourceLoader
	programs map[Variant]*managedProgram
	stats    ManagerStats

	mu      sync.Mutex // guards pending, which QueueReload fills from other goroutines
	pending map[string]bool
}

// NewManager creates a program manager drawing sources from load
func NewManager(ctx Context, load SourceLoader) *Manager {
	return &Manager{
		ctx:      ctx,
		load:     load,
		programs: make(map[Variant]*managedProgram),
		pending:  make(map[string]bool),
	}
}

// StaticSources is a SourceLoader that always returns srcs
func StaticSources(srcs Sources) SourceLoader {
	return func() (Sources, error) { return srcs, nil }
}

// Acquire returns the shared program for v, building it on first use.
// Every successful Acquire must be paired with a Release.
func (m *Manager) Acquire(v Variant) (*Program, error) {
	if mp, ok := m.programs[v]; ok {
		mp.refCount++
		m.stats.CacheHits++

		logger.Log.Debug("Program cache hit",
			zap.String("program", v.String()),
			zap.Int("refCount", mp.refCount))

		return mp.program, nil
	}

	m.stats.CacheMisses++
	p, err := m.build(v)
	if err != nil {
		m.stats.BuildFailures++
		return nil, err
	}

	m.programs[v] = &managedProgram{program: p, refCount: 1}
	m.stats.ProgramsBuilt++
	m.stats.ActivePrograms++
	return p, nil
}

func (m *Manager) build(v Variant) (*Program, error) {
	srcs, err := m.load()
	if err != nil {
		return nil, &BuildError{Program: v.String(), Err: err}
	}
	src, err := srcs.Lookup(v)
	if err != nil {
		return nil, &BuildError{Program: v.String(), Err: err}
	}
	return NewVariantProgram(m.ctx, v, src)
}

// Get returns the live program for v without taking a reference, or nil
func (m *Manager) Get(v Variant) *Program {
	if mp, ok := m.programs[v]; ok {
		return mp.program
	}
	return nil
}

// RefCount returns the number of outstanding references to v's program
func (m *Manager) RefCount(v Variant) int {
	if mp, ok := m.programs[v]; ok {
		return mp.refCount
	}
	return 0
}

// Release drops one reference and destroys the program when none are left
func (m *Manager) Release(v Variant) {
	mp, ok := m.programs[v]
	if !ok {
		logger.Log.Warn("Attempted to release unknown program",
			zap.String("program", v.String()))
		return
	}

	mp.refCount--
	logger.Log.Debug("Program reference released",
		zap.String("program", v.String()),
		zap.Int("refCount", mp.refCount))

	if mp.refCount <= 0 {
		mp.program.Destroy()
		delete(m.programs, v)
		m.stats.ActivePrograms--

		logger.Log.Info("Program freed", zap.String("program", v.String()))
	}
}

// QueueReload marks a program for rebuilding on the next ProcessReloads.
// It is safe to call from any goroutine.
func (m *Manager) QueueReload(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[name] = true
}

// ProcessReloads rebuilds every queued program that is currently live.
// A program whose new sources fail to build keeps running its previous build.
// The returned error joins every build failure.
func (m *Manager) ProcessReloads() error {
	m.mu.Lock()
	names := make([]string, 0, len(m.pending))
	for name := range m.pending {
		names = append(names, name)
	}
	m.pending = make(map[string]bool)
	m.mu.Unlock()

	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	srcs, err := m.load()
	if err != nil {
		logger.Log.Error("Failed to load shader sources", zap.Error(err))
		return err
	}

	var errs []error
	for _, name := range names {
		v, err := ParseVariant(name)
		if err != nil {
			logger.Log.Warn("Ignoring reload of unknown program", zap.String("program", name))
			continue
		}
		mp, ok := m.programs[v]
		if !ok {
			continue
		}
		src, err := srcs.Lookup(v)
		if err == nil {
			err = mp.program.Rebuild(src)
		}
		if err != nil {
			m.stats.BuildFailures++
			errs = append(errs, fmt.Errorf("reload %s: %w", name, err))
			continue
		}
		m.stats.Reloads++
	}
	return errors.Join(errs...)
}

// GetStats returns current manager statistics
func (m *Manager) GetStats() ManagerStats {
	stats := m.stats
	stats.ActivePrograms = len(m.programs)
	return stats
}

// LogStats logs current program statistics
func (m *Manager) LogStats() {
	stats := m.GetStats()
	logger.Log.Info("Program Manager Stats",
		zap.Int("programsBuilt", stats.ProgramsBuilt),
		zap.Int("activePrograms", stats.ActivePrograms),
		zap.Int("buildFailures", stats.BuildFailures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses),
		zap.Int("reloads", stats.Reloads))

	for v, mp := range m.programs {
		ps := mp.program.Stats()
		logger.Log.Debug("Program stats",
			zap.String("program", v.String()),
			zap.Int("activations", ps.Activations),
			zap.Int("binds", ps.Binds),
			zap.Int("uniformUploads", ps.UniformUploads),
			zap.Int("attributeConfigs", ps.AttributeConfigs))
	}
}

// Clear destroys every program regardless of references (for shutdown)
func (m *Manager) Clear() {
	for _, mp := range m.programs {
		mp.program.Destroy()
	}
	m.programs = make(map[Variant]*managedProgram)
	m.stats.ActivePrograms = 0

	logger.Log.Info("Program manager cleared")
}
