// Package rgb565 implements a minimal [image.Image]/[image/draw.Image] over
// a 16-bit RGB565 pixel buffer, the panel's native upload format. Trimmed
// to exactly what the diagnostic test-pattern builder needs: fill it with
// image/draw and read back the raw bytes for DisplayBitmapRGB565.
package rgb565

import (
	"image"
	"image/color"
)

// Image is an RGB565 pixel buffer satisfying draw.Image, so image/draw
// can fill it directly instead of hand-packing bytes per pixel.
type Image struct {
	Pix    []Color
	Stride int
	Rect   image.Rectangle
}

// Color is one RGB565 pixel, little-endian (Color[0] is the low byte).
type Color [2]byte

func New(r image.Rectangle) *Image {
	return &Image{
		Pix:    make([]Color, r.Dx()*r.Dy()),
		Stride: r.Dx(),
		Rect:   r,
	}
}

func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Image) ColorModel() color.Model {
	return color.RGBAModel
}

func (p *Image) PixOffset(x, y int) int {
	off := image.Pt(x, y).Sub(p.Rect.Min)
	return off.Y*p.Stride + off.X
}

func (p *Image) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(p.Rect) {
		return color.RGBA{}
	}
	r, g, b := RGB565ToRGB888(p.Pix[p.PixOffset(x, y)])
	return color.RGBA{A: 0xff, R: r, G: g, B: b}
}

func (p *Image) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}
	r, g, b, _ := c.RGBA()
	p.Pix[p.PixOffset(x, y)] = RGB888ToRGB565(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func RGB888ToRGB565(r, g, b uint8) Color {
	u16 := uint16(b)>>3 | uint16(g&0xFC)<<3 | uint16(r&0xF8)<<8
	return Color{byte(u16), byte(u16 >> 8)}
}

func RGB565ToRGB888(rgb Color) (r, g, b uint8) {
	c := uint16(rgb[1])<<8 | uint16(rgb[0])
	r = uint8(c>>8) & 0xf8
	r |= r >> 5
	g = uint8(c>>3) & 0xfc
	g |= g >> 6
	b = uint8(c << 3)
	b |= b | b>>5
	return
}
