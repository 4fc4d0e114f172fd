package main

import (
	"image"
	"image/color"
	"math"
	"unsafe"

	"GopherMap/internal/logger"
	"GopherMap/internal/shader"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

const spriteSize = 32

// iconVertex matches the 16 byte symbol vertex format
type iconVertex struct {
	x, y         int16
	ox, oy       int16
	tx, ty       uint8
	labelMinZoom uint8
	_            uint8
	minZoom      uint8
	maxZoom      uint8
	_, _         uint8
}

type iconBatch struct {
	vertexOffset uintptr
	quads        int32
}

// iconScene holds two batches of icons packed into one vertex buffer. Each
// batch is drawn by activating the program at the batch's byte offset.
type iconScene struct {
	vao, vbo, ebo uint32
	sprite, fade  uint32
	batches       []iconBatch
}

func newIconScene() *iconScene {
	s := &iconScene{}

	var vertices []iconVertex
	var indices []uint16
	for b := 0; b < 2; b++ {
		batch := iconBatch{vertexOffset: uintptr(len(vertices)) * unsafe.Sizeof(iconVertex{})}
		for i := 0; i < 8; i++ {
			angle := float64(i)/8*2*math.Pi + float64(b)*math.Pi/8
			radius := 1500.0 + float64(b)*1500.0
			x := int16(4096 + radius*math.Cos(angle))
			y := int16(4096 + radius*math.Sin(angle))
			minZoom := uint8(i % 4)

			base := uint16(i * 4)
			for _, corner := range [4][2]int16{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
				vertices = append(vertices, iconVertex{
					x: x, y: y,
					ox: corner[0] * spriteSize / 2 * 64, oy: corner[1] * spriteSize / 2 * 64,
					tx: uint8((corner[0] + 1) / 2 * spriteSize), ty: uint8((corner[1] + 1) / 2 * spriteSize),
					minZoom: minZoom,
					maxZoom: 255,
				})
			}
			if b == 0 {
				indices = append(indices, base, base+1, base+2, base, base+2, base+3)
			}
			batch.quads++
		}
		s.batches = append(s.batches, batch)
	}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(unsafe.Sizeof(iconVertex{})), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Both batches share one index list; the base offset selects the batch
	gl.GenBuffers(1, &s.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)

	s.sprite = uploadTexture(spriteImage())
	s.fade = uploadTexture(fadeImage())

	logger.Log.Info("Icon scene created",
		zap.Int("vertices", len(vertices)),
		zap.Int("batches", len(s.batches)))
	return s
}

func (s *iconScene) Draw(icon *shader.IconProgram) {
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.sprite)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, s.fade)

	for _, batch := range s.batches {
		if err := icon.Activate(batch.vertexOffset); err != nil {
			logger.Log.Error("Icon activation failed", zap.Error(err))
			return
		}
		gl.DrawElements(gl.TRIANGLES, batch.quads*6, gl.UNSIGNED_SHORT, nil)
	}
	gl.BindVertexArray(0)
}

func (s *iconScene) Delete() {
	gl.DeleteTextures(1, &s.sprite)
	gl.DeleteTextures(1, &s.fade)
	gl.DeleteBuffers(1, &s.vbo)
	gl.DeleteBuffers(1, &s.ebo)
	gl.DeleteVertexArrays(1, &s.vao)
}

// spriteImage draws a round marker
func spriteImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, spriteSize, spriteSize))
	c := float64(spriteSize-1) / 2
	for y := 0; y < spriteSize; y++ {
		for x := 0; x < spriteSize; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c)
			switch {
			case d < c*0.6:
				img.SetRGBA(x, y, color.RGBA{220, 60, 40, 255})
			case d < c:
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

// fadeImage is the cross-fade lookup indexed by label min zoom; fully opaque here
func fadeImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 256, 1))
	for x := 0; x < 256; x++ {
		img.SetRGBA(x, 0, color.RGBA{255, 255, 255, 255})
	}
	return img
}

func uploadTexture(rgba *image.RGBA) uint32 {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return textureID
}
