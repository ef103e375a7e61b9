package eve

// codec implements EVE's register/memory framing on top of a transport:
// a write is a 3-byte address header with its top bit set followed by a
// little-endian payload; a read is the same header with the top bit
// clear, a dummy byte, then the read data.
type codec struct {
	t transport
}

func addrHeader(addr uint32, write bool) [3]byte {
	top := byte(addr>>16) & 0x3F
	if write {
		top |= 0x80
	}
	return [3]byte{top, byte(addr >> 8), byte(addr)}
}

func (c *codec) wr8(addr uint32, v byte) error {
	h := addrHeader(addr, true)
	return c.t.Write([]byte{h[0], h[1], h[2], v})
}

func (c *codec) wr16(addr uint32, v uint16) error {
	h := addrHeader(addr, true)
	return c.t.Write([]byte{h[0], h[1], h[2], byte(v), byte(v >> 8)})
}

func (c *codec) wr32(addr uint32, v uint32) error {
	h := addrHeader(addr, true)
	return c.t.Write([]byte{h[0], h[1], h[2], byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// wrBulk copies a contiguous payload to addr, unchanged, splitting it into
// MaxTxSize-sized writes so a large raw bitmap never exceeds one MPSSE
// transfer.
func (c *codec) wrBulk(addr uint32, data []byte) error {
	limit := c.t.MaxTxSize()
	if limit <= 3 {
		limit = 4096
	}
	chunk := limit - 3
	for off := 0; off < len(data); off += chunk {
		end := off + chunk
		if end > len(data) {
			end = len(data)
		}
		h := addrHeader(addr+uint32(off), true)
		buf := make([]byte, 3+(end-off))
		copy(buf, h[:])
		copy(buf[3:], data[off:end])
		if err := c.t.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func (c *codec) rd8(addr uint32) (byte, error) {
	h := addrHeader(addr, false)
	r := make([]byte, 1)
	if err := c.t.Transfer([]byte{h[0], h[1], h[2], 0x00}, r); err != nil {
		return 0, err
	}
	return r[0], nil
}

func (c *codec) rd16(addr uint32) (uint16, error) {
	h := addrHeader(addr, false)
	r := make([]byte, 2)
	if err := c.t.Transfer([]byte{h[0], h[1], h[2], 0x00}, r); err != nil {
		return 0, err
	}
	return uint16(r[0]) | uint16(r[1])<<8, nil
}

func (c *codec) rd32(addr uint32) (uint32, error) {
	h := addrHeader(addr, false)
	r := make([]byte, 4)
	if err := c.t.Transfer([]byte{h[0], h[1], h[2], 0x00}, r); err != nil {
		return 0, err
	}
	return uint32(r[0]) | uint32(r[1])<<8 | uint32(r[2])<<16 | uint32(r[3])<<24, nil
}
