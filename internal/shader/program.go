package shader

import (
	"GopherMap/internal/logger"

	"go.uber.org/zap"
)

// Shape is the fixed declaration of a program: the uniforms it takes and
// the vertex layout it reads.
type Shape struct {
	Name     string
	Uniforms []UniformDecl
	Layout   Layout
}

// ProgramStats counts the GPU work issued by one program
type ProgramStats struct {
	Activations      int
	Binds            int
	UniformUploads   int
	AttributeConfigs int
}

// =============================================================
//
//	Program
//
// =============================================================

// Program is a linked GPU program together with its uniforms and
// attribute locations. Locations are resolved on the first activation and
// stay fixed until the program is rebuilt.
type Program struct {
	ctx       Context
	shape     Shape
	handle    ProgramHandle
	uniforms  *Registry
	attribs   []Location
	resolved  bool
	destroyed bool
	stats     ProgramStats
}

// NewProgram compiles and links src for the given shape. Any compile, link or
// layout problem is returned as a *BuildError and no program is created.
func NewProgram(ctx Context, shape Shape, src Source) (*Program, error) {
	if err := shape.Layout.Validate(); err != nil {
		return nil, &BuildError{Program: shape.Name, Err: err}
	}

	handle, err := ctx.CompileAndLink(src.Vertex, src.Fragment)
	if err != nil {
		logger.Log.Error("Failed to build shader program", zap.String("program", shape.Name), zap.Error(err))
		return nil, &BuildError{Program: shape.Name, Err: err}
	}

	logger.Log.Info("Shader program built",
		zap.String("program", shape.Name),
		zap.Uint32("handle", uint32(handle)),
		zap.Int("uniforms", len(shape.Uniforms)),
		zap.Int("attributes", len(shape.Layout)))

	return &Program{
		ctx:      ctx,
		shape:    shape,
		handle:   handle,
		uniforms: NewRegistry(shape.Uniforms),
		attribs:  make([]Location, len(shape.Layout)),
	}, nil
}

func (p *Program) Name() string {
	return p.shape.Name
}

func (p *Program) Handle() ProgramHandle {
	return p.handle
}

func (p *Program) Shape() Shape {
	return p.shape
}

// Uniforms returns the program's uniform registry
func (p *Program) Uniforms() *Registry {
	return p.uniforms
}

// AttributeLocations returns the attribute locations in layout order
func (p *Program) AttributeLocations() []Location {
	locs := make([]Location, len(p.attribs))
	copy(locs, p.attribs)
	return locs
}

func (p *Program) Stats() ProgramStats {
	return p.stats
}

// Activate prepares the program for one draw call reading vertices at
// baseOffset in the bound vertex buffer. The program is bound unless the
// context already has it current, attribute pointers are configured and
// changed uniforms are uploaded.
func (p *Program) Activate(baseOffset uintptr) error {
	if p.destroyed {
		return ErrProgramDestroyed
	}
	p.stats.Activations++

	// Another program may have been bound since our last activation
	if p.ctx.CurrentProgram() != p.handle {
		p.ctx.UseProgram(p.handle)
		p.stats.Binds++
	}

	if !p.resolved {
		p.resolve()
	}

	for i, attr := range p.shape.Layout {
		loc, ok := p.attribs[i].Index()
		if !ok {
			continue
		}
		p.ctx.EnableAttribute(uint32(loc), attr, baseOffset+attr.Offset)
		p.stats.AttributeConfigs++
	}

	p.stats.UniformUploads += p.uniforms.UploadAll(p.ctx, p.handle)
	return nil
}

func (p *Program) resolve() {
	for i, attr := range p.shape.Layout {
		p.attribs[i] = LocationFrom(p.ctx.AttribLocation(p.handle, attr.Name))
		if _, ok := p.attribs[i].Index(); !ok {
			logger.Log.Debug("Attribute not used by program",
				zap.String("program", p.shape.Name),
				zap.String("attribute", attr.Name))
		}
	}
	p.uniforms.ResolveAll(p.ctx, p.handle)
	p.resolved = true
}

// Rebuild relinks the program from new sources in place. On failure the
// current program keeps working. On success the old GPU program is destroyed
// and every location is resolved again on the next activation.
func (p *Program) Rebuild(src Source) error {
	if p.destroyed {
		return ErrProgramDestroyed
	}

	handle, err := p.ctx.CompileAndLink(src.Vertex, src.Fragment)
	if err != nil {
		logger.Log.Error("Failed to rebuild shader program, keeping previous build",
			zap.String("program", p.shape.Name), zap.Error(err))
		return &BuildError{Program: p.shape.Name, Err: err}
	}

	p.ctx.Destroy(p.handle)
	p.handle = handle
	p.resolved = false
	for i := range p.attribs {
		p.attribs[i] = Unresolved
	}
	p.uniforms.Reset()

	logger.Log.Info("Shader program rebuilt",
		zap.String("program", p.shape.Name),
		zap.Uint32("handle", uint32(handle)))
	return nil
}

// Destroy releases the GPU program. Further activations fail.
func (p *Program) Destroy() {
	if p.destroyed {
		return
	}
	p.ctx.Destroy(p.handle)
	p.destroyed = true
}
