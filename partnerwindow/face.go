package partnerwindow

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// faceFrames is the idle/wake face animation: a closed mouth at rest,
// progressively opening as the user resumes typing. Index is the face
// stage in {0,1,2,3,4}.
var faceFrames = [5]string{
	0: "(-_-)",
	1: "(-o-)",
	2: "(-O-)",
	3: "(^O^)",
	4: "(^_^)",
}

// logoX, logoY place the 32x32 logo at the bottom-right of the panel,
// matching the reference layout.
const (
	logoX = 444
	logoY = 92
	logoSize = 32
)

// mouthStage maps cumulative post-idle keystrokes to a monotonically
// advancing animation frame; stage 4 marks the end of the transition.
func mouthStage(updates int) int {
	if updates > 4 {
		return 4
	}
	return updates
}

// logoSourceSize is the resolution the placeholder logo is rendered at
// before being resampled down to the panel's 32x32 L8 upload size. The
// driver has no bundled art asset, so the source is a synthesized
// radial gradient rather than a decoded file; the resampling step is
// real and exercises the same path a decoded PNG would take.
const logoSourceSize = 128

// logoL8 renders the placeholder idle-face logo and resamples it to the
// 32x32 L8 (one byte per pixel) bitmap uploaded to RAM_G on first
// successful init.
func logoL8() []byte {
	src := image.NewGray(image.Rect(0, 0, logoSourceSize, logoSourceSize))
	cx, cy := float64(logoSourceSize-1)/2, float64(logoSourceSize-1)/2
	r := float64(logoSourceSize) / 2
	for y := 0; y < logoSourceSize; y++ {
		for x := 0; x < logoSourceSize; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			d := dx*dx + dy*dy
			v := byte(0)
			if d < r*r {
				v = byte(255 - 255*d/(r*r))
			}
			src.SetGray(x, y, color.Gray{Y: v})
		}
	}

	dst := image.NewGray(image.Rect(0, 0, logoSize, logoSize))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst.Pix[:logoSize*logoSize]
}
