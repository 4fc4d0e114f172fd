package shader

import (
	"fmt"
	"strings"
)

// Variant is one of the fixed program shapes used by the map renderer
type Variant int

const (
	Plain Variant = iota
	Outline
	Pattern
	Line
	Icon
	SDF
	Circle
	Raster
	CollisionBox
)

// Variants returns every variant in declaration order
func Variants() []Variant {
	vs := make([]Variant, len(shapes))
	for i := range shapes {
		vs[i] = Variant(i)
	}
	return vs
}

func (v Variant) valid() bool {
	return v >= 0 && int(v) < len(shapes)
}

// String returns the variant name, which is also the stem of its source files
func (v Variant) String() string {
	if !v.valid() {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return shapes[v].Name
}

// Shape returns the variant's descriptor table
func (v Variant) Shape() Shape {
	if !v.valid() {
		panic(fmt.Sprintf("shader: unknown variant %d", int(v)))
	}
	return shapes[v]
}

// ParseVariant maps a variant name back to the variant
func ParseVariant(name string) (Variant, error) {
	for i := range shapes {
		if shapes[i].Name == strings.ToLower(name) {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// NewVariantProgram builds the program for one of the fixed variants
func NewVariantProgram(ctx Context, v Variant, src Source) (*Program, error) {
	if !v.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
	return NewProgram(ctx, shapes[v], src)
}

// Vertex formats. Positions are packed as two shorts in tile units.
var (
	fillLayout = packed(4,
		AttributeSlot{Name: "a_pos", Components: 2, Type: Short},
	)
	lineLayout = packed(8,
		AttributeSlot{Name: "a_pos", Components: 2, Type: Short},
		AttributeSlot{Name: "a_data", Components: 4, Type: UnsignedByte, Offset: 4},
	)
	symbolLayout = packed(16,
		AttributeSlot{Name: "a_pos", Components: 2, Type: Short},
		AttributeSlot{Name: "a_offset", Components: 2, Type: Short, Offset: 4},
		AttributeSlot{Name: "a_data1", Components: 4, Type: UnsignedByte, Offset: 8},
		AttributeSlot{Name: "a_data2", Components: 4, Type: UnsignedByte, Offset: 12},
	)
	rasterLayout = packed(8,
		AttributeSlot{Name: "a_pos", Components: 2, Type: Short},
		AttributeSlot{Name: "a_texture_pos", Components: 2, Type: Short, Offset: 4},
	)
	collisionBoxLayout = packed(12,
		AttributeSlot{Name: "a_pos", Components: 2, Type: Short},
		AttributeSlot{Name: "a_extrude", Components: 2, Type: Short, Offset: 4},
		AttributeSlot{Name: "a_data", Components: 2, Type: UnsignedByte, Offset: 8},
	)
)

var shapes = [...]Shape{
	Plain: {
		Name: "plain",
		Uniforms: []UniformDecl{
			{"u_matrix", Mat4},
			{"u_color", Vec4},
		},
		Layout: fillLayout,
	},
	Outline: {
		Name: "outline",
		Uniforms: []UniformDecl{
			{"u_matrix", Mat4},
			{"u_color", Vec4},
			{"u_world", Vec2},
		},
		Layout: fillLayout,
	},
	Pattern: {
		Name: "pattern",
		Uniforms: []UniformDecl{
			{"u_matrix", Mat4},
			{"u_pattern_tl_a", Vec2},
			{"u_pattern_br_a", Vec2},
			{"u_pattern_tl_b", Vec2},
			{"u_pattern_br_b", Vec2},
			{"u_opacity", Float},
			{"u_mix", Float},
			{"u_patternscale_a", Vec2},
			{"u_patternscale_b", Vec2},
			{"u_offset_a", Vec2},
			{"u_offset_b", Vec2},
			{"u_image", Int},
		},
		Layout: fillLayout,
	},
	Line: {
		Name: "line",
		Uniforms: []UniformDecl{
			{"u_matrix", Mat4},
			{"u_exmatrix", Mat4},
			{"u_linewidth", Vec2},
			{"u_color", Vec4},
			{"u_ratio", Float},
			{"u_blur", Float},
			{"u_extra", Float},
			{"u_antialiasingmatrix", Mat2},
			{"u_offset", Float},
		},
		Layout: lineLayout,
	},
	Icon: {
		Name: "icon",
		Uniforms: []UniformDecl{
			{"u_matrix", Mat4},
			{"u_extrude_scale", Vec2},
			{"u_zoom", Float},
			{"u_opacity", Float},
			{"u_texsize", Vec2},
			{"u_skewed", Int},
			{"u_texture", Int},
			{"u_fadetexture", Int},
		},
		Layout: symbolLayout,
	},
	SDF: {
		Name: "sdf",
		Uniforms: []UniformDecl{
			{"u_matrix", Mat4},
			{"u_extrude_scale", Vec2},
			{"u_texsize", Vec2},
			{"u_color", Vec4},
			{"u_buffer", Float},
			{"u_gamma", Float},
			{"u_zoom", Float},
			{"u_skewed", Int},
			{"u_texture", Int},
			{"u_fadetexture", Int},
		},
		Layout: symbolLayout,
	},
	Circle: {
		Name: "circle",
		Uniforms: []UniformDecl{
			{"u_matrix", Mat4},
			{"u_exmatrix", Mat4},
			{"u_color", Vec4},
			{"u_blur", Float},
			{"u_size", Float},
		},
		Layout: fillLayout,
	},
	Raster: {
		Name: "raster",
		Uniforms: []UniformDecl{
			{"u_matrix", Mat4},
			{"u_image0", Int},
			{"u_image1", Int},
			{"u_opacity0", Float},
			{"u_opacity1", Float},
			{"u_buffer_scale", Float},
			{"u_brightness_low", Float},
			{"u_brightness_high", Float},
			{"u_saturation_factor", Float},
			{"u_contrast_factor", Float},
			{"u_spin_weights", Vec3},
			{"u_tl_parent", Vec2},
			{"u_scale_parent", Float},
		},
		Layout: rasterLayout,
	},
	CollisionBox: {
		Name: "collisionbox",
		Uniforms: []UniformDecl{
			{"u_matrix", Mat4},
			{"u_scale", Float},
			{"u_zoom", Float},
			{"u_maxzoom", Float},
		},
		Layout: collisionBoxLayout,
	},
}
