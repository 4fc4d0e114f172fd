package glbackend

import (
	"fmt"
	"strings"

	"GopherMap/internal/logger"
	"GopherMap/internal/shader"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Context implements shader.Context on the OpenGL 4.1 core profile.
// gl.Init must have been called on the current thread.
type Context struct{}

var _ shader.Context = (*Context)(nil)

func New() *Context {
	return &Context{}
}

// CompileAndLink compiles both stages and links them into a program. The
// stage objects are deleted once linking is done.
func (c *Context) CompileAndLink(vertex, fragment string) (shader.ProgramHandle, error) {
	vs, err := compileShader(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := compileShader(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DeleteShader(vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("link: %s", strings.TrimRight(log, "\x00"))
	}

	logger.Log.Debug("Program linked", zap.Uint32("program", program))
	return shader.ProgramHandle(program), nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, cSources, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(sh, logLength, nil, gl.Str(log))
		gl.DeleteShader(sh)

		return 0, fmt.Errorf("compile: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func (c *Context) Destroy(program shader.ProgramHandle) {
	gl.DeleteProgram(uint32(program))
}

func (c *Context) CurrentProgram() shader.ProgramHandle {
	var current int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &current)
	return shader.ProgramHandle(current)
}

func (c *Context) UseProgram(program shader.ProgramHandle) {
	gl.UseProgram(uint32(program))
}

func (c *Context) UniformLocation(program shader.ProgramHandle, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (c *Context) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (c *Context) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (c *Context) Uniform2f(location int32, v mgl32.Vec2) {
	gl.Uniform2f(location, v[0], v[1])
}

func (c *Context) Uniform3f(location int32, v mgl32.Vec3) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (c *Context) Uniform4f(location int32, v mgl32.Vec4) {
	gl.Uniform4f(location, v[0], v[1], v[2], v[3])
}

func (c *Context) UniformMatrix2f(location int32, m mgl32.Mat2) {
	gl.UniformMatrix2fv(location, 1, false, &m[0])
}

func (c *Context) UniformMatrix3f(location int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (c *Context) UniformMatrix4f(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (c *Context) AttribLocation(program shader.ProgramHandle, name string) int32 {
	return gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
}

func (c *Context) EnableAttribute(location uint32, slot shader.AttributeSlot, offset uintptr) {
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointer(location, slot.Components, DataType(slot.Type), slot.Normalized, slot.Stride, gl.PtrOffset(int(offset)))
}

// DataType maps an attribute component type to its GL enum
func DataType(t shader.DataType) uint32 {
	switch t {
	case shader.Byte:
		return gl.BYTE
	case shader.UnsignedByte:
		return gl.UNSIGNED_BYTE
	case shader.Short:
		return gl.SHORT
	case shader.UnsignedShort:
		return gl.UNSIGNED_SHORT
	case shader.Int32:
		return gl.INT
	case shader.UnsignedInt32:
		return gl.UNSIGNED_INT
	default:
		return gl.FLOAT
	}
}
