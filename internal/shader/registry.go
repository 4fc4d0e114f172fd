package shader

import (
	"fmt"

	"GopherMap/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type slot struct {
	decl     UniformDecl
	location Location
	pending  rawValue
	last     rawValue
	set      bool
	uploaded bool
}

// Registry is the ordered set of uniforms owned by one program
type Registry struct {
	slots []slot
	index map[string]int
}

// NewRegistry builds one slot per declaration, in declaration order.
// Duplicate names panic.
func NewRegistry(decls []UniformDecl) *Registry {
	r := &Registry{
		slots: make([]slot, len(decls)),
		index: make(map[string]int, len(decls)),
	}
	for i, d := range decls {
		if _, dup := r.index[d.Name]; dup {
			panic(fmt.Sprintf("shader: duplicate uniform %q", d.Name))
		}
		r.slots[i] = slot{decl: d}
		r.index[d.Name] = i
	}
	return r
}

func (r *Registry) Len() int {
	return len(r.slots)
}

// Names returns the uniform names in declaration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.slots))
	for i := range r.slots {
		names[i] = r.slots[i].decl.Name
	}
	return names
}

// Locations returns the current location of every uniform, in declaration order
func (r *Registry) Locations() []Location {
	locs := make([]Location, len(r.slots))
	for i := range r.slots {
		locs[i] = r.slots[i].location
	}
	return locs
}

// Type returns the declared type of name
func (r *Registry) Type(name string) (UniformType, bool) {
	i, ok := r.index[name]
	if !ok {
		return 0, false
	}
	return r.slots[i].decl.Type, true
}

// Set stores a dynamically typed value. Values of a different type than the
// declaration are rejected with a *TypeMismatchError, never coerced.
func (r *Registry) Set(name string, v any) error {
	i, ok := r.index[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUniform, name)
	}
	decl := r.slots[i].decl
	t, ok := TypeOf(v)
	if !ok || t != decl.Type {
		return &TypeMismatchError{Name: name, Declared: decl.Type, Got: fmt.Sprintf("%T", v)}
	}
	r.store(i, encode(v))
	return nil
}

func (r *Registry) store(i int, v rawValue) {
	s := &r.slots[i]
	s.pending = v
	s.set = true
}

// ResolveAll queries the location of every uniform not queried yet.
// Calling it again is a no-op.
func (r *Registry) ResolveAll(ctx UniformSetter, program ProgramHandle) {
	for i := range r.slots {
		s := &r.slots[i]
		if !s.location.Resolved() {
			s.location = LocationFrom(ctx.UniformLocation(program, s.decl.Name))
		}
	}
}

// UploadAll uploads every changed uniform in declaration order and returns
// the number of GPU calls made. The program must already be bound.
func (r *Registry) UploadAll(ctx UniformSetter, program ProgramHandle) int {
	n := 0
	for i := range r.slots {
		if r.upload(i, ctx, program) {
			n++
		}
	}
	return n
}

// Reset forgets resolved locations and uploaded values. Pending values are
// kept and go out again on the next upload.
func (r *Registry) Reset() {
	for i := range r.slots {
		s := &r.slots[i]
		s.location = Unresolved
		s.uploaded = false
	}
}

func (r *Registry) upload(i int, ctx UniformSetter, program ProgramHandle) bool {
	s := &r.slots[i]
	if !s.set {
		return false
	}
	if !s.location.Resolved() {
		s.location = LocationFrom(ctx.UniformLocation(program, s.decl.Name))
	}
	loc, ok := s.location.Index()
	if !ok {
		return false
	}
	if s.uploaded && s.last == s.pending {
		return false
	}

	v := s.pending
	switch s.decl.Type {
	case Float:
		ctx.Uniform1f(loc, v.f[0])
	case Int:
		ctx.Uniform1i(loc, v.i)
	case Vec2:
		ctx.Uniform2f(loc, mgl32.Vec2{v.f[0], v.f[1]})
	case Vec3:
		ctx.Uniform3f(loc, mgl32.Vec3{v.f[0], v.f[1], v.f[2]})
	case Vec4:
		ctx.Uniform4f(loc, mgl32.Vec4{v.f[0], v.f[1], v.f[2], v.f[3]})
	case Mat2:
		ctx.UniformMatrix2f(loc, mgl32.Mat2{v.f[0], v.f[1], v.f[2], v.f[3]})
	case Mat3:
		var m mgl32.Mat3
		copy(m[:], v.f[:9])
		ctx.UniformMatrix3f(loc, m)
	case Mat4:
		ctx.UniformMatrix4f(loc, v.f)
	}
	s.last = v
	s.uploaded = true

	if ce := logger.Log.Check(zapcore.DebugLevel, "Uniform uploaded"); ce != nil {
		ce.Write(zap.String("name", s.decl.Name), zap.Int32("location", loc))
	}
	return true
}
