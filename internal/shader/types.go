package shader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformType is the declared GLSL type of a uniform
type UniformType int

const (
	Float UniformType = iota
	Vec2
	Vec3
	Vec4
	Int
	Mat2
	Mat3
	Mat4
)

var uniformTypeNames = [...]string{
	Float: "float",
	Vec2:  "vec2",
	Vec3:  "vec3",
	Vec4:  "vec4",
	Int:   "int",
	Mat2:  "mat2",
	Mat3:  "mat3",
	Mat4:  "mat4",
}

func (t UniformType) String() string {
	if t < 0 || int(t) >= len(uniformTypeNames) {
		return fmt.Sprintf("UniformType(%d)", int(t))
	}
	return uniformTypeNames[t]
}

// UniformValue lists the Go types a uniform can hold.
// Booleans and texture units are carried as int32, the way GLSL sees them.
type UniformValue interface {
	float32 | int32 | mgl32.Vec2 | mgl32.Vec3 | mgl32.Vec4 | mgl32.Mat2 | mgl32.Mat3 | mgl32.Mat4
}

// TypeOf returns the uniform type that holds v
func TypeOf(v any) (UniformType, bool) {
	switch v.(type) {
	case float32:
		return Float, true
	case int32:
		return Int, true
	case mgl32.Vec2:
		return Vec2, true
	case mgl32.Vec3:
		return Vec3, true
	case mgl32.Vec4:
		return Vec4, true
	case mgl32.Mat2:
		return Mat2, true
	case mgl32.Mat3:
		return Mat3, true
	case mgl32.Mat4:
		return Mat4, true
	default:
		return 0, false
	}
}

func typeFor[T UniformValue]() UniformType {
	var zero T
	t, _ := TypeOf(zero)
	return t
}

// DataType is the numeric type of one attribute component in a vertex buffer
type DataType int

const (
	Byte DataType = iota
	UnsignedByte
	Short
	UnsignedShort
	Int32
	UnsignedInt32
	Float32
)

// Size returns the component size in bytes
func (d DataType) Size() int {
	switch d {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	default:
		return 4
	}
}

func (d DataType) String() string {
	switch d {
	case Byte:
		return "byte"
	case UnsignedByte:
		return "ubyte"
	case Short:
		return "short"
	case UnsignedShort:
		return "ushort"
	case Int32:
		return "int"
	case UnsignedInt32:
		return "uint"
	case Float32:
		return "float"
	default:
		return fmt.Sprintf("DataType(%d)", int(d))
	}
}
