// Package display provides the monochrome CHIP-8 pixel surface.
package display

import (
	"image/color"
	"sync"
)

// Surface dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Frame is a copy of all pixels, indexed by row and column.
type Frame [Height][Width]bool

// Surface is the authoritative 64x32 pixel buffer. It is safe for concurrent use,
// the machine plots sprites while a frontend reads frames.
type Surface struct {
	mu      sync.RWMutex
	pixels  Frame
	version uint64
}

// New returns a cleared surface.
func New() *Surface {
	return &Surface{}
}

// Clear turns all pixels off.
func (s *Surface) Clear() {
	s.mu.Lock()
	s.pixels = Frame{}
	s.version++
	s.mu.Unlock()
}

// PlotSprite XORs 8 pixel wide sprite rows onto the surface starting at x and y.
// Pixels that fall outside of the surface are clipped. It returns whether any
// pixel was turned off.
func (s *Surface) PlotSprite(x, y uint8, rows []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	collided := false
	for row, data := range rows {
		py := int(y) + row
		if py >= Height {
			break
		}
		for bit := range 8 {
			px := int(x) + bit
			if px >= Width {
				break
			}
			if data&(0x80>>bit) == 0 {
				continue
			}
			if s.pixels[py][px] {
				collided = true
			}
			s.pixels[py][px] = !s.pixels[py][px]
		}
	}
	s.version++
	return collided
}

// Pixel returns whether the pixel at x and y is set.
func (s *Surface) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pixels[y][x]
}

// Snapshot returns a copy of all pixels and a version that changes with every
// modification of the surface.
func (s *Surface) Snapshot() (Frame, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pixels, s.version
}

// RGBA renders the surface into dst as 8-bit RGBA pixels, using fg for set
// pixels and bg for cleared ones. dst must hold Width*Height*4 bytes.
func (s *Surface) RGBA(dst []byte, fg, bg color.Color) {
	frame, _ := s.Snapshot()
	on := toRGBA(fg)
	off := toRGBA(bg)

	i := 0
	for y := range Height {
		for x := range Width {
			c := off
			if frame[y][x] {
				c = on
			}
			dst[i] = c.R
			dst[i+1] = c.G
			dst[i+2] = c.B
			dst[i+3] = c.A
			i += 4
		}
	}
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
