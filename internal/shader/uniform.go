package shader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformDecl declares one uniform of a program shape
type UniformDecl struct {
	Name string
	Type UniformType
}

// rawValue is the storage for every uniform type. It is comparable, so
// change detection is a plain == (element-wise for vectors and matrices).
type rawValue struct {
	f [16]float32
	i int32
}

func encode(v any) rawValue {
	var r rawValue
	switch x := v.(type) {
	case float32:
		r.f[0] = x
	case int32:
		r.i = x
	case mgl32.Vec2:
		copy(r.f[:], x[:])
	case mgl32.Vec3:
		copy(r.f[:], x[:])
	case mgl32.Vec4:
		copy(r.f[:], x[:])
	case mgl32.Mat2:
		copy(r.f[:], x[:])
	case mgl32.Mat3:
		copy(r.f[:], x[:])
	case mgl32.Mat4:
		r.f = x
	}
	return r
}

func decode[T UniformValue](r rawValue) T {
	var out T
	switch p := any(&out).(type) {
	case *float32:
		*p = r.f[0]
	case *int32:
		*p = r.i
	case *mgl32.Vec2:
		copy(p[:], r.f[:])
	case *mgl32.Vec3:
		copy(p[:], r.f[:])
	case *mgl32.Vec4:
		copy(p[:], r.f[:])
	case *mgl32.Mat2:
		copy(p[:], r.f[:])
	case *mgl32.Mat3:
		copy(p[:], r.f[:])
	case *mgl32.Mat4:
		*p = r.f
	}
	return out
}

// Uniform is a typed handle to one slot of a Registry
type Uniform[T UniformValue] struct {
	reg   *Registry
	index int
}

// Lookup returns a typed handle for a declared uniform. It fails with
// ErrUnknownUniform for undeclared names and a *TypeMismatchError when T
// is not the declared type.
func Lookup[T UniformValue](r *Registry, name string) (Uniform[T], error) {
	i, ok := r.index[name]
	if !ok {
		return Uniform[T]{}, fmt.Errorf("%w: %s", ErrUnknownUniform, name)
	}
	decl := r.slots[i].decl
	if want := typeFor[T](); decl.Type != want {
		return Uniform[T]{}, &TypeMismatchError{Name: name, Declared: decl.Type, Got: want.String()}
	}
	return Uniform[T]{reg: r, index: i}, nil
}

func mustUniform[T UniformValue](r *Registry, name string) Uniform[T] {
	u, err := Lookup[T](r, name)
	if err != nil {
		panic(err)
	}
	return u
}

// Set stores v; it is uploaded on the next activation if it differs from the last upload.
func (u Uniform[T]) Set(v T) {
	u.reg.store(u.index, encode(v))
}

// Get returns the pending value and whether one was ever set
func (u Uniform[T]) Get() (T, bool) {
	s := &u.reg.slots[u.index]
	return decode[T](s.pending), s.set
}

func (u Uniform[T]) Name() string {
	return u.reg.slots[u.index].decl.Name
}

func (u Uniform[T]) Location() Location {
	return u.reg.slots[u.index].location
}

// Upload pushes this uniform alone to the bound program. It returns true
// if a GPU call was made.
func (u Uniform[T]) Upload(ctx UniformSetter, program ProgramHandle) bool {
	return u.reg.upload(u.index, ctx, program)
}
