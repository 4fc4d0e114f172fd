package shader

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Source is the vertex and fragment source pair of one program
type Source struct {
	Vertex   string
	Fragment string
}

const (
	vertexSuffix   = ".vertex.glsl"
	fragmentSuffix = ".fragment.glsl"
)

//go:embed glsl/*.glsl
var embeddedSources embed.FS

// Sources maps a program name to its source pair
type Sources map[string]Source

// DefaultSources returns the sources compiled into the binary
func DefaultSources() Sources {
	sub, err := fs.Sub(embeddedSources, "glsl")
	if err != nil {
		panic(err)
	}
	srcs, err := LoadSources(sub)
	if err != nil {
		panic(err)
	}
	return srcs
}

// LoadSources reads every "<name>.vertex.glsl" / "<name>.fragment.glsl" pair
// at the root of fsys. A stage without its partner is an error.
func LoadSources(fsys fs.FS) (Sources, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	vertex := make(map[string]string)
	fragment := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, stage, ok := splitSourceName(e.Name())
		if !ok {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		if stage == vertexSuffix {
			vertex[name] = string(data)
		} else {
			fragment[name] = string(data)
		}
	}

	srcs := make(Sources, len(vertex))
	for name, v := range vertex {
		f, ok := fragment[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s%s", ErrMissingSource, name, fragmentSuffix)
		}
		srcs[name] = Source{Vertex: v, Fragment: f}
	}
	for name := range fragment {
		if _, ok := vertex[name]; !ok {
			return nil, fmt.Errorf("%w: %s%s", ErrMissingSource, name, vertexSuffix)
		}
	}
	return srcs, nil
}

// SourceName returns the program name a source file belongs to, or false if
// the file is not a shader stage.
func SourceName(file string) (string, bool) {
	name, _, ok := splitSourceName(path.Base(file))
	return name, ok
}

func splitSourceName(file string) (name, stage string, ok bool) {
	for _, suffix := range []string{vertexSuffix, fragmentSuffix} {
		if strings.HasSuffix(file, suffix) && len(file) > len(suffix) {
			return strings.TrimSuffix(file, suffix), suffix, true
		}
	}
	return "", "", false
}

// Lookup returns the source pair for a variant
func (s Sources) Lookup(v Variant) (Source, error) {
	src, ok := s[v.String()]
	if !ok {
		return Source{}, fmt.Errorf("%w: %s", ErrMissingSource, v)
	}
	return src, nil
}

// Merge returns a copy of s with every pair of other laid over it
func (s Sources) Merge(other Sources) Sources {
	out := make(Sources, len(s)+len(other))
	for name, src := range s {
		out[name] = src
	}
	for name, src := range other {
		out[name] = src
	}
	return out
}
