package display

import (
	"image/color"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"golang.org/x/image/colornames"
)

func TestPlotSpriteCollision(t *testing.T) {
	s := New()
	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}

	assert.False(t, s.PlotSprite(5, 5, sprite))
	assert.True(t, s.Pixel(5, 5))
	assert.False(t, s.Pixel(6, 6))

	assert.True(t, s.PlotSprite(5, 5, sprite))
	frame, _ := s.Snapshot()
	assert.Equal(t, Frame{}, frame)
}

func TestPlotSpriteWithoutOverlap(t *testing.T) {
	s := New()
	assert.False(t, s.PlotSprite(0, 0, []byte{0xF0}))
	assert.False(t, s.PlotSprite(4, 0, []byte{0xF0}), "adjacent pixels do not collide")
}

func TestPlotSpriteClips(t *testing.T) {
	s := New()

	assert.False(t, s.PlotSprite(60, 30, []byte{0xFF, 0xFF, 0xFF}))
	frame, _ := s.Snapshot()

	lit := 0
	for _, row := range frame {
		for _, pixel := range row {
			if pixel {
				lit++
			}
		}
	}
	assert.Equal(t, 8, lit)
	assert.False(t, s.Pixel(0, 30), "no horizontal wrap")
	assert.False(t, s.Pixel(60, 0), "no vertical wrap")
}

func TestClearAndVersion(t *testing.T) {
	s := New()
	_, v0 := s.Snapshot()

	s.PlotSprite(1, 1, []byte{0x80})
	_, v1 := s.Snapshot()
	assert.True(t, v0 != v1)

	s.Clear()
	assert.False(t, s.Pixel(1, 1))
	_, v2 := s.Snapshot()
	assert.True(t, v1 != v2)
}

func TestPixelOutOfRange(t *testing.T) {
	s := New()
	assert.False(t, s.Pixel(-1, 0))
	assert.False(t, s.Pixel(Width, 0))
	assert.False(t, s.Pixel(0, Height))
}

func TestRGBA(t *testing.T) {
	s := New()
	s.PlotSprite(0, 0, []byte{0x80})

	dst := make([]byte, Width*Height*4)
	s.RGBA(dst, colornames.White, color.Black)

	assert.Equal(t, byte(0xFF), dst[0])
	assert.Equal(t, byte(0xFF), dst[3])
	assert.Equal(t, byte(0x00), dst[4])
	assert.Equal(t, byte(0xFF), dst[7])
}
