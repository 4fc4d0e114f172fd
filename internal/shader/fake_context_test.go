package shader

import (
	"errors"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type uniformCall struct {
	location int32
	value    any
}

type attributeCall struct {
	location uint32
	slot     AttributeSlot
	offset   uintptr
}

// fakeContext records every GPU call and simulates the current-program
// state. Names listed in missing resolve to -1.
type fakeContext struct {
	next      ProgramHandle
	current   ProgramHandle
	live      map[ProgramHandle]bool
	missing   map[string]bool
	failLink  bool
	locations map[string]int32

	binds          int
	uniformCalls   []uniformCall
	attributeCalls []attributeCall
	locationCalls  int
	destroyed      []ProgramHandle
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		live:      make(map[ProgramHandle]bool),
		missing:   make(map[string]bool),
		locations: make(map[string]int32),
	}
}

func (f *fakeContext) CompileAndLink(vertex, fragment string) (ProgramHandle, error) {
	if f.failLink || strings.Contains(vertex, "syntax error") {
		return 0, errors.New("0:1(1): error: syntax error")
	}
	f.next++
	f.live[f.next] = true
	return f.next, nil
}

func (f *fakeContext) Destroy(program ProgramHandle) {
	delete(f.live, program)
	f.destroyed = append(f.destroyed, program)
}

func (f *fakeContext) CurrentProgram() ProgramHandle { return f.current }

func (f *fakeContext) UseProgram(program ProgramHandle) {
	f.current = program
	f.binds++
}

func (f *fakeContext) location(name string) int32 {
	f.locationCalls++
	if f.missing[name] {
		return -1
	}
	if loc, ok := f.locations[name]; ok {
		return loc
	}
	loc := int32(len(f.locations))
	f.locations[name] = loc
	return loc
}

func (f *fakeContext) UniformLocation(_ ProgramHandle, name string) int32 { return f.location(name) }
func (f *fakeContext) AttribLocation(_ ProgramHandle, name string) int32  { return f.location(name) }

func (f *fakeContext) record(loc int32, v any) {
	f.uniformCalls = append(f.uniformCalls, uniformCall{location: loc, value: v})
}

func (f *fakeContext) Uniform1f(loc int32, v float32)          { f.record(loc, v) }
func (f *fakeContext) Uniform1i(loc int32, v int32)            { f.record(loc, v) }
func (f *fakeContext) Uniform2f(loc int32, v mgl32.Vec2)       { f.record(loc, v) }
func (f *fakeContext) Uniform3f(loc int32, v mgl32.Vec3)       { f.record(loc, v) }
func (f *fakeContext) Uniform4f(loc int32, v mgl32.Vec4)       { f.record(loc, v) }
func (f *fakeContext) UniformMatrix2f(loc int32, m mgl32.Mat2) { f.record(loc, m) }
func (f *fakeContext) UniformMatrix3f(loc int32, m mgl32.Mat3) { f.record(loc, m) }
func (f *fakeContext) UniformMatrix4f(loc int32, m mgl32.Mat4) { f.record(loc, m) }

func (f *fakeContext) EnableAttribute(loc uint32, slot AttributeSlot, offset uintptr) {
	f.attributeCalls = append(f.attributeCalls, attributeCall{location: loc, slot: slot, offset: offset})
}

func (f *fakeContext) resetCalls() {
	f.binds = 0
	f.uniformCalls = nil
	f.attributeCalls = nil
}

var testSource = Source{Vertex: "void main() {}", Fragment: "void main() {}"}
