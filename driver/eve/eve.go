// package eve implements a driver for the Bridgetek EVE (FT81x/BT81x)
// graphics coprocessor, attached over an FTDI FT232H MPSSE SPI bridge.
// It owns the chip's register space, display list, and coprocessor
// command ring, and exposes text/number/bitmap primitives on top.
package eve

import (
	"fmt"
	"time"
)

// State is the driver's presence state. Only Initialised implies the
// panel is actually displaying content.
type State int

const (
	Absent State = iota
	Claimed
	Initialised
	Failed
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Claimed:
		return "claimed"
	case Initialised:
		return "initialised"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Driver is a claimed EVE handle. It is not safe for concurrent use; the
// caller (the partnerwindow worker) is the only thread allowed to touch
// it, per the single-owner model this chip's SPI bus requires.
type Driver struct {
	t     transport
	c     codec
	p     coproc
	state State
}

// Open claims the FT232H and returns a handle in state Claimed. Init must
// be called before any high-level operation.
func Open() (*Driver, error) {
	t, err := openFTDI()
	if err != nil {
		return nil, err
	}
	d := &Driver{t: t, state: Claimed}
	d.c = codec{t: t}
	d.p = coproc{c: &d.c}
	return d, nil
}

// Close releases the FT232H without touching the panel. Callers that
// want an orderly power-down should call Shutdown first.
func (d *Driver) Close() error {
	d.state = Absent
	if c, ok := d.t.(*ftdiTransport); ok {
		return c.Close()
	}
	return nil
}

func (d *Driver) State() State { return d.state }

// fail marks the driver Failed; the caller (the worker loop) is expected
// to drop the handle on any error from a high-level operation.
func (d *Driver) fail() { d.state = Failed }

// Init runs the fixed power-on/reset/clock/timing/backlight sequence.
// Deviating from this order bricks the panel until it is power-cycled.
func (d *Driver) Init() error {
	// 1. Power on.
	if err := d.t.PowerDown(false); err != nil {
		d.fail()
		return err
	}
	time.Sleep(50 * time.Millisecond)

	// 2. CPU reset, ring pointers zeroed while the coprocessor is held.
	if err := d.c.wr8(regCPUReset, 1); err != nil {
		d.fail()
		return err
	}
	if err := d.c.wr32(regCmdRead, 0); err != nil {
		d.fail()
		return err
	}
	if err := d.c.wr32(regCmdWrite, 0); err != nil {
		d.fail()
		return err
	}
	if err := d.c.wr8(regCPUReset, 0); err != nil {
		d.fail()
		return err
	}
	time.Sleep(20 * time.Millisecond)

	// 3. Clock + wake.
	if err := d.p.hostCmd(hostClkExt); err != nil {
		d.fail()
		return err
	}
	if err := d.p.hostCmd(hostActive); err != nil {
		d.fail()
		return err
	}
	time.Sleep(300 * time.Millisecond)

	// 4. Liveness.
	id, err := d.pollRegID(2 * time.Second)
	if err != nil {
		d.fail()
		return err
	}
	if id != 0x7C {
		d.fail()
		return &ChipNotRespondingError{ObservedID: id}
	}

	// 5. Program timings, in the exact order the chip expects.
	if err := d.programTimings(); err != nil {
		d.fail()
		return err
	}

	// 6. Initial DL.
	if err := d.writeInitialDL(); err != nil {
		d.fail()
		return err
	}
	if err := d.c.wr32(regDLSwap, 2); err != nil {
		d.fail()
		return err
	}

	// 7. Enable pipeline: backlight and pixel clock.
	dir, err := d.c.rd8(regGPIODir)
	if err != nil {
		d.fail()
		return err
	}
	if err := d.c.wr8(regGPIODir, dir|0x80); err != nil {
		d.fail()
		return err
	}
	if err := d.c.wr8(regPCLK, panelPCLKDiv); err != nil {
		d.fail()
		return err
	}
	gp, err := d.c.rd8(regGPIO)
	if err != nil {
		d.fail()
		return err
	}
	if err := d.c.wr8(regGPIO, gp|0x80); err != nil {
		d.fail()
		return err
	}

	// 8. Tell the coprocessor about the panel rotation.
	if err := d.p.begin(); err != nil {
		d.fail()
		return err
	}
	if err := d.p.word(cmdSetRotate); err != nil {
		d.fail()
		return err
	}
	if err := d.p.word(panelRotate); err != nil {
		d.fail()
		return err
	}
	if err := d.p.end(); err != nil {
		d.fail()
		return err
	}
	if err := d.p.wait(2 * time.Second); err != nil {
		d.fail()
		return err
	}

	d.state = Initialised
	return nil
}

func (d *Driver) pollRegID(deadline time.Duration) (byte, error) {
	end := time.Now().Add(deadline)
	var last byte
	for {
		id, err := d.c.rd8(regID)
		if err != nil {
			return 0, err
		}
		last = id
		if id == 0x7C {
			return id, nil
		}
		if time.Now().After(end) {
			return last, nil
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (d *Driver) programTimings() error {
	type reg struct {
		addr uint32
		v    uint32
	}
	for _, r := range []reg{
		{regHCycle, panelHCycle},
		{regHOffset, panelHOffset},
		{regHSync0, panelHSync0},
		{regHSync1, panelHSync1},
		{regVCycle, panelVCycle},
		{regVOffset, panelVOffset},
		{regVSync0, panelVSync0},
		{regVSync1, panelVSync1},
		{regSwizzle, panelSwizzle},
		{regPCLKPol, panelPCLKPol},
		{regHSize, panelWidth},
		{regVSize, panelHeight},
		{regCSpread, panelCSpread},
		{regDither, panelDither},
		{regRotate, panelRotate},
	} {
		if err := d.c.wr32(r.addr, r.v); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) writeInitialDL() error {
	words := []uint32{
		clearColorRGB(0, 0, 0),
		dlClear(true, true, true),
		dlDisplay(),
	}
	for i, w := range words {
		if err := d.c.wr32(ramDL+uint32(i*4), w); err != nil {
			return err
		}
	}
	return nil
}

// ClearScreen clears the panel to a solid colour via the direct display
// list, without going through the coprocessor.
func (d *Driver) ClearScreen(r, g, b byte) error {
	words := []uint32{clearColorRGB(r, g, b), dlClear(true, true, true), dlDisplay()}
	for i, w := range words {
		if err := d.c.wr32(ramDL+uint32(i*4), w); err != nil {
			d.fail()
			return err
		}
	}
	if err := d.c.wr32(regDLSwap, 2); err != nil {
		d.fail()
		return err
	}
	return nil
}

func pack16(lo, hi uint16) uint32 {
	return uint32(lo) | uint32(hi)<<16
}

// DisplayText renders text through the coprocessor, clearing the screen
// to black first. x and y may be nil to request centring on that axis;
// when both are nil the text is centred on both axes at the panel
// midpoint.
func (d *Driver) DisplayText(text string, x, y *int, font byte, r, g, b byte) error {
	px, py, opts := textPosition(x, y)
	if err := d.p.begin(); err != nil {
		d.fail()
		return err
	}
	for _, w := range []uint32{
		cmdDLStart,
		clearColorRGB(0, 0, 0),
		dlClear(true, true, true),
		colorRGB(r, g, b),
		cmdText,
		pack16(uint16(int16(px)), uint16(int16(py))),
		pack16(uint16(font), uint16(opts)),
	} {
		if err := d.p.word(w); err != nil {
			d.fail()
			return err
		}
	}
	if err := d.p.str(text); err != nil {
		d.fail()
		return err
	}
	for _, w := range []uint32{dlDisplay(), cmdSwap} {
		if err := d.p.word(w); err != nil {
			d.fail()
			return err
		}
	}
	if err := d.p.end(); err != nil {
		d.fail()
		return err
	}
	return d.p.wait(2 * time.Second)
}

// faceLogoHandle is the bitmap handle reserved for the idle-face logo,
// distinct from handle 0 used by DisplayBitmapRGB565's test-pattern path.
const faceLogoHandle = 1

// DisplayFace renders the face animation text and, when withLogo is
// set, the previously uploaded L8 logo from logoDest at (logoX, logoY) in the
// same frame. The logo bytes themselves are not re-uploaded here; call
// UploadL8 once per init.
func (d *Driver) DisplayFace(text string, font byte, withLogo bool, logoDest uint32, logoX, logoY int) error {
	px, py, opts := textPosition(nil, nil)
	if err := d.p.begin(); err != nil {
		d.fail()
		return err
	}
	for _, w := range []uint32{
		cmdDLStart,
		clearColorRGB(0, 0, 0),
		dlClear(true, true, true),
		colorRGB(255, 255, 255),
		cmdText,
		pack16(uint16(int16(px)), uint16(int16(py))),
		pack16(uint16(font), uint16(opts)),
	} {
		if err := d.p.word(w); err != nil {
			d.fail()
			return err
		}
	}
	if err := d.p.str(text); err != nil {
		d.fail()
		return err
	}
	if withLogo {
		for _, w := range []uint32{
			bitmapHandle(faceLogoHandle),
			bitmapSource(logoDest),
			bitmapLayout(formatL8, logoSize, logoSize),
			bitmapLayoutH(0, 0),
			bitmapSize(false, false, false, logoSize, logoSize),
			bitmapSizeH(0, 0),
			dlBegin(primBitmaps),
			vertex2ii(uint32(logoX), uint32(logoY), faceLogoHandle, 0),
			dlEnd(),
		} {
			if err := d.p.word(w); err != nil {
				d.fail()
				return err
			}
		}
	}
	for _, w := range []uint32{dlDisplay(), cmdSwap} {
		if err := d.p.word(w); err != nil {
			d.fail()
			return err
		}
	}
	if err := d.p.end(); err != nil {
		d.fail()
		return err
	}
	return d.p.wait(2 * time.Second)
}

// textPosition resolves the (x, y, options) triple for DisplayText /
// DisplayNumber per the centring rules: both absent centres on both
// axes at the panel midpoint; one absent centres only that axis, using
// the panel midpoint on the missing axis and the given coordinate on
// the other.
func textPosition(x, y *int) (px, py int, opts uint16) {
	switch {
	case x == nil && y == nil:
		return panelWidth / 2, panelHeight / 2, optCenter
	case x == nil:
		return panelWidth / 2, *y, optCenterX
	case y == nil:
		return *x, panelHeight / 2, optCenterY
	default:
		return *x, *y, 0
	}
}

// DisplayNumber renders a signed integer through CMD_NUMBER, using the
// same positional framing as DisplayText.
func (d *Driver) DisplayNumber(n int32, x, y *int, font byte, r, g, b byte) error {
	px, py, opts := textPosition(x, y)
	if err := d.p.begin(); err != nil {
		d.fail()
		return err
	}
	for _, w := range []uint32{
		cmdDLStart,
		clearColorRGB(0, 0, 0),
		dlClear(true, true, true),
		colorRGB(r, g, b),
		cmdNumber,
		pack16(uint16(int16(px)), uint16(int16(py))),
		pack16(uint16(font), uint16(opts)),
		uint32(n),
		dlDisplay(),
		cmdSwap,
	} {
		if err := d.p.word(w); err != nil {
			d.fail()
			return err
		}
	}
	if err := d.p.end(); err != nil {
		d.fail()
		return err
	}
	return d.p.wait(2 * time.Second)
}

// isZlib applies the RFC 1950-checksum heuristic from the reference
// driver: a payload shorter than the declared raw size whose first two
// bytes (big-endian) are a multiple of 31 is treated as a zlib stream.
func isZlib(data []byte, rawLen int) bool {
	if len(data) >= rawLen || len(data) < 2 {
		return false
	}
	hdr := uint16(data[0])<<8 | uint16(data[1])
	return hdr%31 == 0
}

// DisplayBitmapRGB565 uploads data (either zlib-compressed or raw RGB565
// pixels) to dest in RAM_G and renders it full-screen-positioned at
// (0, 0) via BITMAPS.
func (d *Driver) DisplayBitmapRGB565(data []byte, w, h int, dest uint32) error {
	rawLen := w * h * 2
	if isZlib(data, rawLen) {
		if err := d.p.inflate(dest, data); err != nil {
			d.fail()
			return err
		}
	} else {
		if len(data) > rawLen {
			data = data[:rawLen]
		}
		if err := d.c.wrBulk(dest, data); err != nil {
			d.fail()
			return err
		}
	}
	stride := uint32(w * 2)
	if err := d.p.begin(); err != nil {
		d.fail()
		return err
	}
	for _, word := range []uint32{
		cmdDLStart,
		bitmapHandle(0),
		bitmapSource(dest),
		bitmapLayout(formatRGB565, stride&0x3FF, uint32(h)&0x1FF),
		bitmapLayoutH(byte(stride>>10)&3, byte(h>>9)&3),
		bitmapSize(false, false, false, uint32(w)&0x1FF, uint32(h)&0x1FF),
		bitmapSizeH(byte(w>>9)&3, byte(h>>9)&3),
		dlBegin(primBitmaps),
		vertex2ii(0, 0, 0, 0),
		dlEnd(),
		dlDisplay(),
		cmdSwap,
	} {
		if err := d.p.word(word); err != nil {
			d.fail()
			return err
		}
	}
	if err := d.p.end(); err != nil {
		d.fail()
		return err
	}
	return d.p.wait(5 * time.Second)
}

// UploadL8 copies a raw L8 (one byte per pixel) bitmap directly to RAM_G,
// used once per init to place the idle-face logo.
func (d *Driver) UploadL8(dest uint32, data []byte) error {
	if err := d.c.wrBulk(dest, data); err != nil {
		d.fail()
		return err
	}
	return nil
}

// Shutdown clears the panel to black, waits for it to settle, then
// powers the pipeline down in the required order: backlight, pixel
// clock, and finally the PD# line, so the panel is never left driven
// with the power rail collapsing underneath it.
func (d *Driver) Shutdown() error {
	if err := d.ClearScreen(0, 0, 0); err != nil {
		return err
	}
	time.Sleep(50 * time.Millisecond)

	gp, err := d.c.rd8(regGPIO)
	if err != nil {
		d.fail()
		return err
	}
	if err := d.c.wr8(regGPIO, gp&^0x80); err != nil {
		d.fail()
		return err
	}
	if err := d.c.wr8(regPCLK, 0); err != nil {
		d.fail()
		return err
	}
	if err := d.t.PowerDown(true); err != nil {
		d.fail()
		return err
	}
	time.Sleep(20 * time.Millisecond)
	return nil
}

// SystemClock reads back REG_FREQUENCY, in MHz, for a diagnostic log
// line after init; not required by any invariant.
func (d *Driver) SystemClock() (float64, error) {
	freq, err := d.c.rd32(regFrequency)
	if err != nil {
		return 0, fmt.Errorf("eve: read clock: %w", err)
	}
	return float64(freq) / 1e6, nil
}

// DrawDL writes words directly at RAM_DL offset 0 and swaps. It exists
// for diagnostics and geometry exercises that need DL opcodes
// (SCISSOR/LINE_WIDTH/POINT_SIZE/etc.) the high-level operations above
// don't compose; callers assemble words with the dl.go encoders.
func (d *Driver) DrawDL(words []uint32) error {
	if len(words)*4 > ramDLSize {
		words = words[:ramDLSize/4]
	}
	for i, w := range words {
		if err := d.c.wr32(ramDL+uint32(i*4), w); err != nil {
			d.fail()
			return err
		}
	}
	if err := d.c.wr32(regDLSwap, 2); err != nil {
		d.fail()
		return err
	}
	return nil
}

// DrawGeometry renders a fixed diagnostic scene — a scissored region,
// a thick line, a point, and a filled rectangle — directly through the
// display list, exercising the primitives the text/number/bitmap paths
// above never touch.
func (d *Driver) DrawGeometry() error {
	words := []uint32{
		clearColorRGB(0, 0, 0),
		dlClear(true, true, true),
		scissorXY(40, 20),
		scissorSize(400, 88),
		colorRGB(0, 200, 255),
		lineWidth(4 << 4),
		dlBegin(primLines),
		vertex2f(int32(60)<<4, int32(40)<<4),
		vertex2f(int32(420)<<4, int32(40)<<4),
		dlEnd(),
		pointSize(12 << 4),
		dlBegin(primPoints),
		vertex2f(int32(240)<<4, int32(90)<<4),
		dlEnd(),
		colorRGB(255, 120, 0),
		dlBegin(primRects),
		vertex2f(int32(100)<<4, int32(60)<<4),
		vertex2f(int32(160)<<4, int32(100)<<4),
		dlEnd(),
		scissorXY(0, 0),
		scissorSize(panelWidth, panelHeight),
		dlDisplay(),
	}
	return d.DrawDL(words)
}
