package shader

import "github.com/go-gl/mathgl/mgl32"

// ProgramHandle is an opaque GPU program name. Zero means "no program".
type ProgramHandle uint32

// HandleStore owns the raw GPU program objects
type HandleStore interface {
	// CompileAndLink compiles both stages and links them. Compile and link
	// failures are returned as errors carrying the driver's info log.
	CompileAndLink(vertex, fragment string) (ProgramHandle, error)
	Destroy(program ProgramHandle)
	// CurrentProgram queries the context's currently bound program
	CurrentProgram() ProgramHandle
	UseProgram(program ProgramHandle)
}

// UniformSetter uploads values to the currently bound program
type UniformSetter interface {
	// UniformLocation returns -1 for names the linked program does not use
	UniformLocation(program ProgramHandle, name string) int32
	Uniform1f(location int32, v float32)
	Uniform1i(location int32, v int32)
	Uniform2f(location int32, v mgl32.Vec2)
	Uniform3f(location int32, v mgl32.Vec3)
	Uniform4f(location int32, v mgl32.Vec4)
	UniformMatrix2f(location int32, m mgl32.Mat2)
	UniformMatrix3f(location int32, m mgl32.Mat3)
	UniformMatrix4f(location int32, m mgl32.Mat4)
}

// AttributeSetter configures vertex attribute pointers into the bound vertex buffer
type AttributeSetter interface {
	// AttribLocation returns -1 for names the linked program does not use
	AttribLocation(program ProgramHandle, name string) int32
	// EnableAttribute enables the attribute array and points it at offset,
	// using the slot's component count, type, normalization and stride.
	EnableAttribute(location uint32, slot AttributeSlot, offset uintptr)
}

// Context is everything the binding layer needs from the graphics context.
// All calls happen on the thread that owns the context.
type Context interface {
	HandleStore
	UniformSetter
	AttributeSetter
}
