package eve

// Display-list opcode encoders. Each is a pure function returning the
// 32-bit word written at RAM_DL; arguments that overflow their field are
// masked, never rejected, mirroring the reference driver.

func clearColorRGB(r, g, b byte) uint32 {
	return 0x02000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func colorRGB(r, g, b byte) uint32 {
	return 0x04000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func colorA(a byte) uint32 {
	return 0x10000000 | uint32(a)
}

func dlClear(c, s, t bool) uint32 {
	var v uint32
	if c {
		v |= 1 << 2
	}
	if s {
		v |= 1 << 1
	}
	if t {
		v |= 1
	}
	return 0x26000000 | v
}

func dlBegin(prim uint32) uint32 {
	return 0x1F000000 | prim&0xF
}

func dlEnd() uint32 {
	return 0x21000000
}

func vertex2ii(x, y uint32, handle, cell byte) uint32 {
	return 2<<30 | (x&0x1FF)<<21 | (y&0x1FF)<<12 | uint32(handle&0x1F)<<7 | uint32(cell&0x7F)
}

func vertex2f(x, y int32) uint32 {
	return 1<<30 | (uint32(x)&0x7FFF)<<15 | uint32(y)&0x7FFF
}

func lineWidth(w uint32) uint32 {
	return 0x0E000000 | w&0xFFF
}

func pointSize(r uint32) uint32 {
	return 0x0D000000 | r&0x1FFF
}

func bitmapHandle(h byte) uint32 {
	return 0x05000000 | uint32(h&0x1F)
}

func bitmapSource(addr uint32) uint32 {
	return 0x01000000 | addr&0xFFFFF
}

func bitmapLayout(format byte, stride, height uint32) uint32 {
	return 0x07000000 | uint32(format&0x1F)<<19 | (stride&0x3FF)<<9 | height&0x1FF
}

func bitmapLayoutH(strideH, heightH byte) uint32 {
	return 0x28000000 | uint32(strideH&3)<<2 | uint32(heightH&3)
}

func bitmapSize(filter, wrapX, wrapY bool, w, h uint32) uint32 {
	var v uint32
	if filter {
		v |= 1 << 20
	}
	if wrapX {
		v |= 1 << 19
	}
	if wrapY {
		v |= 1 << 18
	}
	return 0x08000000 | v | (w&0x1FF)<<9 | h&0x1FF
}

func bitmapSizeH(wH, hH byte) uint32 {
	return 0x29000000 | uint32(wH&3)<<2 | uint32(hH&3)
}

func scissorXY(x, y uint32) uint32 {
	return 0x1B000000 | (x&0x7FF)<<11 | y&0x7FF
}

func scissorSize(w, h uint32) uint32 {
	return 0x1C000000 | (w&0xFFF)<<12 | h&0xFFF
}

func dlDisplay() uint32 {
	return 0x00000000
}
