package shader

import (
	"errors"
	"fmt"
)

var (
	ErrTypeMismatch     = errors.New("uniform type mismatch")
	ErrUnknownUniform   = errors.New("unknown uniform")
	ErrProgramDestroyed = errors.New("program destroyed")
	ErrMissingSource    = errors.New("missing shader source")
	ErrUnknownVariant   = errors.New("unknown shader variant")
	ErrWrongVariant     = errors.New("program built for another variant")
)

// BuildError is returned when a program fails to compile or link.
// The program is unusable and is never activated.
type BuildError struct {
	Program string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s program: %v", e.Program, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// TypeMismatchError reports a value of the wrong type for a declared uniform
type TypeMismatchError struct {
	Name     string
	Declared UniformType
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("uniform %s is declared %s, got %s", e.Name, e.Declared, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
