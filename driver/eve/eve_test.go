package eve

import (
	"bytes"
	"compress/zlib"
	"testing"
)

func newTestDriver(ft *fakeTransport) *Driver {
	d := &Driver{t: ft, state: Claimed}
	d.c = codec{t: ft}
	d.p = coproc{c: &d.c}
	return d
}

func TestInitSucceedsWhenChipResponds(t *testing.T) {
	// Init ends by waiting for the coprocessor to drain CMD_SETROTATE.
	ft := &fakeTransport{autoDrain: true}
	ft.mem[regID] = 0x7C
	d := newTestDriver(ft)
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if d.State() != Initialised {
		t.Errorf("state = %v, want Initialised", d.State())
	}
	if ft.pdLow {
		t.Errorf("PD# left low after successful init")
	}
}

func TestInitFailsWhenIDNeverMatches(t *testing.T) {
	ft := &fakeTransport{}
	// regID stays zero.
	d := newTestDriver(ft)
	if err := d.Init(); err == nil {
		t.Fatal("expected ChipNotRespondingError, got nil")
	} else if _, ok := err.(*ChipNotRespondingError); !ok {
		t.Fatalf("expected *ChipNotRespondingError, got %T: %v", err, err)
	}
	if d.State() != Failed {
		t.Errorf("state = %v, want Failed", d.State())
	}
}

// TestShutdownOrder checks the state Shutdown leaves behind (REG_PCLK 0,
// backlight bit clear, PD# low); the fake transport does not record the
// order of the individual writes.
func TestShutdownOrder(t *testing.T) {
	ft := &fakeTransport{autoDrain: true}
	ft.mem[regID] = 0x7C
	d := newTestDriver(ft)
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := d.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if ft.mem[regPCLK] != 0 {
		t.Errorf("REG_PCLK = %d after shutdown, want 0", ft.mem[regPCLK])
	}
	if ft.mem[regGPIO]&0x80 != 0 {
		t.Errorf("REG_GPIO backlight bit still set after shutdown")
	}
	if !ft.pdLow {
		t.Errorf("PD# not driven low after shutdown")
	}
}

func TestIsZlibDetection(t *testing.T) {
	rawLen := 480 * 128 * 2
	// Short payload with an RFC1950-valid header (0x7801 = 30721, a
	// multiple of 31) is treated as zlib.
	zlibLike := []byte{0x78, 0x01, 0, 0, 0, 0}
	if !isZlib(zlibLike, rawLen) {
		t.Error("expected zlib-like short payload to be detected as zlib")
	}
	raw := make([]byte, rawLen)
	if isZlib(raw, rawLen) {
		t.Error("full-length raw payload misdetected as zlib")
	}
}

// TestDisplayTextLiteralWordSequence checks DisplayText("Hi", nil, nil, ...)
// against the exact coprocessor word sequence a centred two-character
// render must produce: CMD_DLSTART, clear, colour, CMD_TEXT, packed
// position/options, the string word, DISPLAY, CMD_SWAP.
func TestDisplayTextLiteralWordSequence(t *testing.T) {
	ft := &fakeTransport{autoDrain: true}
	d := newTestDriver(ft)
	if err := d.DisplayText("Hi", nil, nil, 31, 255, 255, 255); err != nil {
		t.Fatalf("DisplayText: %v", err)
	}
	want := []uint32{
		cmdDLStart,
		0x02000000,
		0x26000007,
		0x04FFFFFF,
		cmdText,
		pack16(240, 64),
		pack16(31, 0x0600),
		uint32('H') | uint32('i')<<8,
		0x00000000,
		cmdSwap,
	}
	for i, w := range want {
		got, err := d.c.rd32(ramCmd + uint32(i*4))
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Errorf("word %d = 0x%08x, want 0x%08x", i, got, w)
		}
	}
}

// TestDisplayBitmapRGB565UsesInflateAndDrains exercises the pattern +
// INFLATE path (the ring back-pressure protocol) end to end against an
// auto-draining fake, checking the coprocessor ring ends fully drained.
func TestDisplayBitmapRGB565UsesInflateAndDrains(t *testing.T) {
	ft := &fakeTransport{autoDrain: true}
	d := newTestDriver(ft)

	w, h := 480, 128
	raw := make([]byte, w*h*2) // all-zero: highly compressible.
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if !isZlib(buf.Bytes(), w*h*2) {
		t.Fatal("compressed fixture not detected as zlib; test fixture is wrong")
	}
	if err := d.DisplayBitmapRGB565(buf.Bytes(), w, h, ramG); err != nil {
		t.Fatalf("DisplayBitmapRGB565: %v", err)
	}
	rd, wr, err := d.p.readPtrs()
	if err != nil {
		t.Fatal(err)
	}
	if rd != wr {
		t.Errorf("ring not drained after bitmap upload: rd=%d wr=%d", rd, wr)
	}
}

func TestTextPositionCentring(t *testing.T) {
	if x, y, opts := textPosition(nil, nil); x != panelWidth/2 || y != panelHeight/2 || opts != optCenter {
		t.Errorf("textPosition(nil,nil) = (%d,%d,0x%x), want (%d,%d,0x%x)", x, y, opts, panelWidth/2, panelHeight/2, optCenter)
	}
	ya := 10
	if _, y, opts := textPosition(nil, &ya); y != ya || opts != optCenterX {
		t.Errorf("textPosition(nil,&y) did not centre only x axis: y=%d opts=0x%x", y, opts)
	}
}
