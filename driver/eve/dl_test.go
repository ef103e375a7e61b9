package eve

import "testing"

func TestClearColorRGB(t *testing.T) {
	got := clearColorRGB(0x11, 0x22, 0x33)
	want := uint32(0x02000000) | 0x11<<16 | 0x22<<8 | 0x33
	if got != want {
		t.Errorf("clearColorRGB: got 0x%08x, want 0x%08x", got, want)
	}
}

func TestColorRGBWhite(t *testing.T) {
	if got, want := colorRGB(255, 255, 255), uint32(0x04FFFFFF); got != want {
		t.Errorf("colorRGB(255,255,255): got 0x%08x, want 0x%08x", got, want)
	}
}

func TestDLClearAll(t *testing.T) {
	if got, want := dlClear(true, true, true), uint32(0x26000007); got != want {
		t.Errorf("dlClear(true,true,true): got 0x%08x, want 0x%08x", got, want)
	}
}

func TestDLDisplay(t *testing.T) {
	if got, want := dlDisplay(), uint32(0); got != want {
		t.Errorf("dlDisplay: got 0x%08x, want 0x%08x", got, want)
	}
}

func TestVertex2II(t *testing.T) {
	got := vertex2ii(0, 0, 0, 0)
	want := uint32(2) << 30
	if got != want {
		t.Errorf("vertex2ii(0,0,0,0): got 0x%08x, want 0x%08x", got, want)
	}
}

func TestBitmapHandleMasksField(t *testing.T) {
	if got, want := bitmapHandle(0xFF), uint32(0x0500001F); got != want {
		t.Errorf("bitmapHandle(0xFF): got 0x%08x, want 0x%08x (5-bit field masked)", got, want)
	}
}

func TestLineWidthMasksField(t *testing.T) {
	if got, want := lineWidth(0xFFFF), uint32(0x0E000FFF); got != want {
		t.Errorf("lineWidth(0xFFFF): got 0x%08x, want 0x%08x (12-bit field masked)", got, want)
	}
}

func TestColorA(t *testing.T) {
	if got, want := colorA(0x7F), uint32(0x1000007F); got != want {
		t.Errorf("colorA(0x7F): got 0x%08x, want 0x%08x", got, want)
	}
}

func TestDLBeginMasksField(t *testing.T) {
	if got, want := dlBegin(0xFF), uint32(0x1F00000F); got != want {
		t.Errorf("dlBegin(0xFF): got 0x%08x, want 0x%08x (4-bit field masked)", got, want)
	}
}

func TestDLEnd(t *testing.T) {
	if got, want := dlEnd(), uint32(0x21000000); got != want {
		t.Errorf("dlEnd: got 0x%08x, want 0x%08x", got, want)
	}
}

func TestVertex2F(t *testing.T) {
	got := vertex2f(-1, 100)
	// -1 masked to the 15-bit field is 0x7FFF.
	want := uint32(1)<<30 | uint32(0x7FFF)<<15 | uint32(100)&0x7FFF
	if got != want {
		t.Errorf("vertex2f(-1,100): got 0x%08x, want 0x%08x", got, want)
	}
}

func TestBitmapSourceMasksField(t *testing.T) {
	if got, want := bitmapSource(0xFFFFFFFF), uint32(0x010FFFFF); got != want {
		t.Errorf("bitmapSource(0xFFFFFFFF): got 0x%08x, want 0x%08x (20-bit field masked)", got, want)
	}
}

func TestBitmapLayout(t *testing.T) {
	got := bitmapLayout(formatRGB565, 960, 128)
	want := uint32(0x07000000) | uint32(formatRGB565&0x1F)<<19 | (uint32(960)&0x3FF)<<9 | uint32(128)&0x1FF
	if got != want {
		t.Errorf("bitmapLayout: got 0x%08x, want 0x%08x", got, want)
	}
}

func TestBitmapLayoutHMasksFields(t *testing.T) {
	if got, want := bitmapLayoutH(0xFF, 0xFF), uint32(0x2800000F); got != want {
		t.Errorf("bitmapLayoutH(0xFF,0xFF): got 0x%08x, want 0x%08x (2-bit fields masked)", got, want)
	}
}

func TestBitmapSizeFlagsAndFields(t *testing.T) {
	got := bitmapSize(true, true, false, 480, 128)
	want := uint32(0x08000000) | 1<<20 | 1<<19 | (uint32(480)&0x1FF)<<9 | uint32(128)&0x1FF
	if got != want {
		t.Errorf("bitmapSize: got 0x%08x, want 0x%08x", got, want)
	}
}

func TestBitmapSizeHMasksFields(t *testing.T) {
	if got, want := bitmapSizeH(0xFF, 0xFF), uint32(0x2900000F); got != want {
		t.Errorf("bitmapSizeH(0xFF,0xFF): got 0x%08x, want 0x%08x (2-bit fields masked)", got, want)
	}
}

func TestPointSizeMasksField(t *testing.T) {
	if got, want := pointSize(0xFFFF), uint32(0x0D001FFF); got != want {
		t.Errorf("pointSize(0xFFFF): got 0x%08x, want 0x%08x (13-bit field masked)", got, want)
	}
}

func TestScissorXYMasksFields(t *testing.T) {
	if got, want := scissorXY(0xFFFF, 0xFFFF), uint32(0x1B3FFFFF); got != want {
		t.Errorf("scissorXY(0xFFFF,0xFFFF): got 0x%08x, want 0x%08x (11-bit fields masked)", got, want)
	}
}

func TestScissorSizeMasksFields(t *testing.T) {
	if got, want := scissorSize(0xFFFF, 0xFFFF), uint32(0x1CFFFFFF); got != want {
		t.Errorf("scissorSize(0xFFFF,0xFFFF): got 0x%08x, want 0x%08x (12-bit fields masked)", got, want)
	}
}
