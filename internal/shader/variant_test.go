package shader

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wrappers = map[Variant]func(*Program) error{
	Plain:        func(p *Program) error { _, err := AsPlain(p); return err },
	Outline:      func(p *Program) error { _, err := AsOutline(p); return err },
	Pattern:      func(p *Program) error { _, err := AsPattern(p); return err },
	Line:         func(p *Program) error { _, err := AsLine(p); return err },
	Icon:         func(p *Program) error { _, err := AsIcon(p); return err },
	SDF:          func(p *Program) error { _, err := AsSDF(p); return err },
	Circle:       func(p *Program) error { _, err := AsCircle(p); return err },
	Raster:       func(p *Program) error { _, err := AsRaster(p); return err },
	CollisionBox: func(p *Program) error { _, err := AsCollisionBox(p); return err },
}

func TestEveryVariantBuildsAndWraps(t *testing.T) {
	require.Len(t, wrappers, len(Variants()))

	for _, v := range Variants() {
		t.Run(v.String(), func(t *testing.T) {
			ctx := newFakeContext()
			p, err := NewVariantProgram(ctx, v, testSource)
			require.NoError(t, err)
			assert.NoError(t, v.Shape().Layout.Validate())
			assert.NotPanics(t, func() { assert.NoError(t, wrappers[v](p)) })

			require.NoError(t, p.Activate(0))
			assert.Len(t, ctx.attributeCalls, len(v.Shape().Layout))
		})
	}
}

func TestWrapperRejectsOtherVariant(t *testing.T) {
	p, err := NewVariantProgram(newFakeContext(), Line, testSource)
	require.NoError(t, err)

	_, err = AsIcon(p)
	assert.ErrorIs(t, err, ErrWrongVariant)
}

func TestIconLayout(t *testing.T) {
	layout := Icon.Shape().Layout
	require.Len(t, layout, 4)

	want := []struct {
		name       string
		components int32
		typ        DataType
		offset     uintptr
	}{
		{"a_pos", 2, Short, 0},
		{"a_offset", 2, Short, 4},
		{"a_data1", 4, UnsignedByte, 8},
		{"a_data2", 4, UnsignedByte, 12},
	}
	for i, w := range want {
		assert.Equal(t, w.name, layout[i].Name)
		assert.Equal(t, w.components, layout[i].Components)
		assert.Equal(t, w.typ, layout[i].Type)
		assert.Equal(t, w.offset, layout[i].Offset)
		assert.Equal(t, int32(16), layout[i].Stride)
		assert.False(t, layout[i].Normalized)
	}
}

func TestIconUniformShape(t *testing.T) {
	r := NewRegistry(Icon.Shape().Uniforms)
	assert.Equal(t, []string{
		"u_matrix", "u_extrude_scale", "u_zoom", "u_opacity",
		"u_texsize", "u_skewed", "u_texture", "u_fadetexture",
	}, r.Names())

	for name, want := range map[string]UniformType{
		"u_matrix":        Mat4,
		"u_extrude_scale": Vec2,
		"u_texsize":       Vec2,
		"u_skewed":        Int,
		"u_texture":       Int,
		"u_fadetexture":   Int,
	} {
		got, ok := r.Type(name)
		assert.True(t, ok)
		assert.Equal(t, want, got, name)
	}
}

func TestIconDrawSequence(t *testing.T) {
	ctx := newFakeContext()
	icon, err := NewIconProgram(ctx, testSource)
	require.NoError(t, err)

	icon.Matrix.Set(mgl32.Ident4())
	icon.ExtrudeScale.Set(mgl32.Vec2{0.002, 0.002})
	icon.Zoom.Set(14)
	icon.Opacity.Set(1)
	icon.TexSize.Set(mgl32.Vec2{256, 128})
	icon.Skewed.Set(0)
	icon.Texture.Set(0)
	icon.FadeTexture.Set(1)

	require.NoError(t, icon.Activate(0))
	assert.Len(t, ctx.uniformCalls, 8)

	// Next tile: only the matrix and zoom change
	ctx.resetCalls()
	m := mgl32.Translate3D(512, 0, 0)
	icon.Matrix.Set(m)
	icon.Zoom.Set(14.5)
	icon.Opacity.Set(1)
	require.NoError(t, icon.Activate(64))

	require.Len(t, ctx.uniformCalls, 2)
	assert.Equal(t, m, ctx.uniformCalls[0].value)
	assert.Equal(t, float32(14.5), ctx.uniformCalls[1].value)
	assert.Equal(t, uintptr(64+12), ctx.attributeCalls[3].offset)
}

func TestParseVariant(t *testing.T) {
	for _, v := range Variants() {
		got, err := ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := ParseVariant("hillshade")
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = NewVariantProgram(newFakeContext(), Variant(42), testSource)
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.Equal(t, "Variant(42)", Variant(42).String())
}
