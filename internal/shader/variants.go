package shader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Typed views over the fixed variants. Each wraps a *Program built from the
// variant's shape and exposes one handle per uniform; activation is the
// shared Program.Activate.

func expectVariant(p *Program, v Variant) error {
	if p.Name() != v.String() {
		return fmt.Errorf("%w: %s program used as %s", ErrWrongVariant, p.Name(), v)
	}
	return nil
}

type PlainProgram struct {
	*Program
	Matrix Uniform[mgl32.Mat4]
	Color  Uniform[mgl32.Vec4]
}

func NewPlainProgram(ctx Context, src Source) (*PlainProgram, error) {
	p, err := NewVariantProgram(ctx, Plain, src)
	if err != nil {
		return nil, err
	}
	return AsPlain(p)
}

func AsPlain(p *Program) (*PlainProgram, error) {
	if err := expectVariant(p, Plain); err != nil {
		return nil, err
	}
	r := p.Uniforms()
	return &PlainProgram{
		Program: p,
		Matrix:  mustUniform[mgl32.Mat4](r, "u_matrix"),
		Color:   mustUniform[mgl32.Vec4](r, "u_color"),
	}, nil
}

type OutlineProgram struct {
	*Program
	Matrix Uniform[mgl32.Mat4]
	Color  Uniform[mgl32.Vec4]
	// World is the framebuffer size, used to antialias outlines in pixels
	World Uniform[mgl32.Vec2]
}

func NewOutlineProgram(ctx Context, src Source) (*OutlineProgram, error) {
	p, err := NewVariantProgram(ctx, Outline, src)
	if err != nil {
		return nil, err
	}
	return AsOutline(p)
}

func AsOutline(p *Program) (*OutlineProgram, error) {
	if err := expectVariant(p, Outline); err != nil {
		return nil, err
	}
	r := p.Uniforms()
	return &OutlineProgram{
		Program: p,
		Matrix:  mustUniform[mgl32.Mat4](r, "u_matrix"),
		Color:   mustUniform[mgl32.Vec4](r, "u_color"),
		World:   mustUniform[mgl32.Vec2](r, "u_world"),
	}, nil
}

// PatternProgram fills polygons with a sprite pattern, cross-fading
// between pattern a and pattern b during zoom transitions.
type PatternProgram struct {
	*Program
	Matrix        Uniform[mgl32.Mat4]
	PatternTLA    Uniform[mgl32.Vec2]
	PatternBRA    Uniform[mgl32.Vec2]
	PatternTLB    Uniform[mgl32.Vec2]
	PatternBRB    Uniform[mgl32.Vec2]
	Opacity       Uniform[float32]
	Mix           Uniform[float32]
	PatternScaleA Uniform[mgl32.Vec2]
	PatternScaleB Uniform[mgl32.Vec2]
	OffsetA       Uniform[mgl32.Vec2]
	OffsetB       Uniform[mgl32.Vec2]
	Image         Uniform[int32]
}

func NewPatternProgram(ctx Context, src Source) (*PatternProgram, error) {
	p, err := NewVariantProgram(ctx, Pattern, src)
	if err != nil {
		return nil, err
	}
	return AsPattern(p)
}

func AsPattern(p *Program) (*PatternProgram, error) {
	if err := expectVariant(p, Pattern); err != nil {
		return nil, err
	}
	r := p.Uniforms()
	return &PatternProgram{
		Program:       p,
		Matrix:        mustUniform[mgl32.Mat4](r, "u_matrix"),
		PatternTLA:    mustUniform[mgl32.Vec2](r, "u_pattern_tl_a"),
		PatternBRA:    mustUniform[mgl32.Vec2](r, "u_pattern_br_a"),
		PatternTLB:    mustUniform[mgl32.Vec2](r, "u_pattern_tl_b"),
		PatternBRB:    mustUniform[mgl32.Vec2](r, "u_pattern_br_b"),
		Opacity:       mustUniform[float32](r, "u_opacity"),
		Mix:           mustUniform[float32](r, "u_mix"),
		PatternScaleA: mustUniform[mgl32.Vec2](r, "u_patternscale_a"),
		PatternScaleB: mustUniform[mgl32.Vec2](r, "u_patternscale_b"),
		OffsetA:       mustUniform[mgl32.Vec2](r, "u_offset_a"),
		OffsetB:       mustUniform[mgl32.Vec2](r, "u_offset_b"),
		Image:         mustUniform[int32](r, "u_image"),
	}, nil
}

type LineProgram struct {
	*Program
	Matrix   Uniform[mgl32.Mat4]
	ExMatrix Uniform[mgl32.Mat4]
	// LineWidth holds the outset and inset half widths
	LineWidth          Uniform[mgl32.Vec2]
	Color              Uniform[mgl32.Vec4]
	Ratio              Uniform[float32]
	Blur               Uniform[float32]
	Extra              Uniform[float32]
	AntialiasingMatrix Uniform[mgl32.Mat2]
	Offset             Uniform[float32]
}

func NewLineProgram(ctx Context, src Source) (*LineProgram, error) {
	p, err := NewVariantProgram(ctx, Line, src)
	if err != nil {
		return nil, err
	}
	return AsLine(p)
}

func AsLine(p *Program) (*LineProgram, error) {
	if err := expectVariant(p, Line); err != nil {
		return nil, err
	}
	r := p.Uniforms()
	return &LineProgram{
		Program:            p,
		Matrix:             mustUniform[mgl32.Mat4](r, "u_matrix"),
		ExMatrix:           mustUniform[mgl32.Mat4](r, "u_exmatrix"),
		LineWidth:          mustUniform[mgl32.Vec2](r, "u_linewidth"),
		Color:              mustUniform[mgl32.Vec4](r, "u_color"),
		Ratio:              mustUniform[float32](r, "u_ratio"),
		Blur:               mustUniform[float32](r, "u_blur"),
		Extra:              mustUniform[float32](r, "u_extra"),
		AntialiasingMatrix: mustUniform[mgl32.Mat2](r, "u_antialiasingmatrix"),
		Offset:             mustUniform[float32](r, "u_offset"),
	}, nil
}

// IconProgram draws sprite icons. Texture and FadeTexture are the texture
// units of the current and the cross-fade sprite atlas.
type IconProgram struct {
	*Program
	Matrix       Uniform[mgl32.Mat4]
	ExtrudeScale Uniform[mgl32.Vec2]
	Zoom         Uniform[float32]
	Opacity      Uniform[float32]
	TexSize      Uniform[mgl32.Vec2]
	Skewed       Uniform[int32]
	Texture      Uniform[int32]
	FadeTexture  Uniform[int32]
}

func NewIconProgram(ctx Context, src Source) (*IconProgram, error) {
	p, err := NewVariantProgram(ctx, Icon, src)
	if err != nil {
		return nil, err
	}
	return AsIcon(p)
}

func AsIcon(p *Program) (*IconProgram, error) {
	if err := expectVariant(p, Icon); err != nil {
		return nil, err
	}
	r := p.Uniforms()
	return &IconProgram{
		Program:      p,
		Matrix:       mustUniform[mgl32.Mat4](r, "u_matrix"),
		ExtrudeScale: mustUniform[mgl32.Vec2](r, "u_extrude_scale"),
		Zoom:         mustUniform[float32](r, "u_zoom"),
		Opacity:      mustUniform[float32](r, "u_opacity"),
		TexSize:      mustUniform[mgl32.Vec2](r, "u_texsize"),
		Skewed:       mustUniform[int32](r, "u_skewed"),
		Texture:      mustUniform[int32](r, "u_texture"),
		FadeTexture:  mustUniform[int32](r, "u_fadetexture"),
	}, nil
}

// SDFProgram draws signed-distance-field glyphs and icons
type SDFProgram struct {
	*Program
	Matrix       Uniform[mgl32.Mat4]
	ExtrudeScale Uniform[mgl32.Vec2]
	TexSize      Uniform[mgl32.Vec2]
	Color        Uniform[mgl32.Vec4]
	Buffer       Uniform[float32]
	Gamma        Uniform[float32]
	Zoom         Uniform[float32]
	Skewed       Uniform[int32]
	Texture      Uniform[int32]
	FadeTexture  Uniform[int32]
}

func NewSDFProgram(ctx Context, src Source) (*SDFProgram, error) {
	p, err := NewVariantProgram(ctx, SDF, src)
	if err != nil {
		return nil, err
	}
	return AsSDF(p)
}

func AsSDF(p *Program) (*SDFProgram, error) {
	if err := expectVariant(p, SDF); err != nil {
		return nil, err
	}
	r := p.Uniforms()
	return &SDFProgram{
		Program:      p,
		Matrix:       mustUniform[mgl32.Mat4](r, "u_matrix"),
		ExtrudeScale: mustUniform[mgl32.Vec2](r, "u_extrude_scale"),
		TexSize:      mustUniform[mgl32.Vec2](r, "u_texsize"),
		Color:        mustUniform[mgl32.Vec4](r, "u_color"),
		Buffer:       mustUniform[float32](r, "u_buffer"),
		Gamma:        mustUniform[float32](r, "u_gamma"),
		Zoom:         mustUniform[float32](r, "u_zoom"),
		Skewed:       mustUniform[int32](r, "u_skewed"),
		Texture:      mustUniform[int32](r, "u_texture"),
		FadeTexture:  mustUniform[int32](r, "u_fadetexture"),
	}, nil
}

type CircleProgram struct {
	*Program
	Matrix   Uniform[mgl32.Mat4]
	ExMatrix Uniform[mgl32.Mat4]
	Color    Uniform[mgl32.Vec4]
	Blur     Uniform[float32]
	Size     Uniform[float32]
}

func NewCircleProgram(ctx Context, src Source) (*CircleProgram, error) {
	p, err := NewVariantProgram(ctx, Circle, src)
	if err != nil {
		return nil, err
	}
	return AsCircle(p)
}

func AsCircle(p *Program) (*CircleProgram, error) {
	if err := expectVariant(p, Circle); err != nil {
		return nil, err
	}
	r := p.Uniforms()
	return &CircleProgram{
		Program:  p,
		Matrix:   mustUniform[mgl32.Mat4](r, "u_matrix"),
		ExMatrix: mustUniform[mgl32.Mat4](r, "u_exmatrix"),
		Color:    mustUniform[mgl32.Vec4](r, "u_color"),
		Blur:     mustUniform[float32](r, "u_blur"),
		Size:     mustUniform[float32](r, "u_size"),
	}, nil
}

// RasterProgram blends a raster tile with its parent tile while it fades in
type RasterProgram struct {
	*Program
	Matrix           Uniform[mgl32.Mat4]
	Image0           Uniform[int32]
	Image1           Uniform[int32]
	Opacity0         Uniform[float32]
	Opacity1         Uniform[float32]
	BufferScale      Uniform[float32]
	BrightnessLow    Uniform[float32]
	BrightnessHigh   Uniform[float32]
	SaturationFactor Uniform[float32]
	ContrastFactor   Uniform[float32]
	SpinWeights      Uniform[mgl32.Vec3]
	TLParent         Uniform[mgl32.Vec2]
	ScaleParent      Uniform[float32]
}

func NewRasterProgram(ctx Context, src Source) (*RasterProgram, error) {
	p, err := NewVariantProgram(ctx, Raster, src)
	if err != nil {
		return nil, err
	}
	return AsRaster(p)
}

func AsRaster(p *Program) (*RasterProgram, error) {
	if err := expectVariant(p, Raster); err != nil {
		return nil, err
	}
	r := p.Uniforms()
	return &RasterProgram{
		Program:          p,
		Matrix:           mustUniform[mgl32.Mat4](r, "u_matrix"),
		Image0:           mustUniform[int32](r, "u_image0"),
		Image1:           mustUniform[int32](r, "u_image1"),
		Opacity0:         mustUniform[float32](r, "u_opacity0"),
		Opacity1:         mustUniform[float32](r, "u_opacity1"),
		BufferScale:      mustUniform[float32](r, "u_buffer_scale"),
		BrightnessLow:    mustUniform[float32](r, "u_brightness_low"),
		BrightnessHigh:   mustUniform[float32](r, "u_brightness_high"),
		SaturationFactor: mustUniform[float32](r, "u_saturation_factor"),
		ContrastFactor:   mustUniform[float32](r, "u_contrast_factor"),
		SpinWeights:      mustUniform[mgl32.Vec3](r, "u_spin_weights"),
		TLParent:         mustUniform[mgl32.Vec2](r, "u_tl_parent"),
		ScaleParent:      mustUniform[float32](r, "u_scale_parent"),
	}, nil
}

// CollisionBoxProgram draws label collision boxes for debugging
type CollisionBoxProgram struct {
	*Program
	Matrix  Uniform[mgl32.Mat4]
	Scale   Uniform[float32]
	Zoom    Uniform[float32]
	MaxZoom Uniform[float32]
}

func NewCollisionBoxProgram(ctx Context, src Source) (*CollisionBoxProgram, error) {
	p, err := NewVariantProgram(ctx, CollisionBox, src)
	if err != nil {
		return nil, err
	}
	return AsCollisionBox(p)
}

func AsCollisionBox(p *Program) (*CollisionBoxProgram, error) {
	if err := expectVariant(p, CollisionBox); err != nil {
		return nil, err
	}
	r := p.Uniforms()
	return &CollisionBoxProgram{
		Program: p,
		Matrix:  mustUniform[mgl32.Mat4](r, "u_matrix"),
		Scale:   mustUniform[float32](r, "u_scale"),
		Zoom:    mustUniform[float32](r, "u_zoom"),
		MaxZoom: mustUniform[float32](r, "u_maxzoom"),
	}, nil
}
