package glbackend

import (
	"testing"

	"GopherMap/internal/shader"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func TestDataTypeMapping(t *testing.T) {
	cases := map[shader.DataType]uint32{
		shader.Byte:          gl.BYTE,
		shader.UnsignedByte:  gl.UNSIGNED_BYTE,
		shader.Short:         gl.SHORT,
		shader.UnsignedShort: gl.UNSIGNED_SHORT,
		shader.Int32:         gl.INT,
		shader.UnsignedInt32: gl.UNSIGNED_INT,
		shader.Float32:       gl.FLOAT,
	}

	for dt, want := range cases {
		if got := DataType(dt); got != want {
			t.Errorf("DataType(%v) = %#x, want %#x", dt, got, want)
		}
	}
}
