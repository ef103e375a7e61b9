package eve

import (
	"time"
)

// coproc drives the 4 KiB circular command ring at RAM_CMD. w mirrors
// REG_CMD_WRITE between begin() and end(); it is always a multiple of 4
// and within [0, ramCmdSize).
type coproc struct {
	c *codec
	w uint16
}

func (p *coproc) begin() error {
	v, err := p.c.rd32(regCmdWrite)
	if err != nil {
		return err
	}
	p.w = uint16(v) % ramCmdSize
	return nil
}

func (p *coproc) word(x uint32) error {
	if err := p.c.wr32(ramCmd+uint32(p.w), x); err != nil {
		return err
	}
	p.w = (p.w + 4) % ramCmdSize
	return nil
}

// str writes s NUL-terminated and zero-padded to a multiple of 4, one
// little-endian word at a time.
func (p *coproc) str(s string) error {
	b := make([]byte, len(s)+1)
	copy(b, s)
	if pad := (4 - len(b)%4) % 4; pad != 0 {
		b = append(b, make([]byte, pad)...)
	}
	for i := 0; i < len(b); i += 4 {
		word := uint32(b[i]) | uint32(b[i+1])<<8 | uint32(b[i+2])<<16 | uint32(b[i+3])<<24
		if err := p.word(word); err != nil {
			return err
		}
	}
	return nil
}

func (p *coproc) end() error {
	return p.c.wr32(regCmdWrite, uint32(p.w))
}

// readPtrs reads the current ring head/tail.
func (p *coproc) readPtrs() (rd, wr uint16, err error) {
	rv, err := p.c.rd32(regCmdRead)
	if err != nil {
		return 0, 0, err
	}
	wv, err := p.c.rd32(regCmdWrite)
	if err != nil {
		return 0, 0, err
	}
	return uint16(rv), uint16(wv), nil
}

// free computes the bytes available for writing without overrunning the
// coprocessor's read pointer. This exact wrap-around arithmetic (unsigned
// subtraction modulo the ring size) must not be "simplified" into a
// branchy comparison; see the reference driver.
func free(rd, wr uint16) int {
	return int((rd - wr - 4) % ramCmdSize)
}

// wait blocks until the coprocessor has consumed everything written so
// far (REG_CMD_READ == REG_CMD_WRITE), or returns CoprocTimeoutError.
func (p *coproc) wait(deadline time.Duration) error {
	end := time.Now().Add(deadline)
	for {
		rd, wr, err := p.readPtrs()
		if err != nil {
			return err
		}
		if rd == wr {
			return nil
		}
		if time.Now().After(end) {
			return &CoprocTimeoutError{Read: rd, Write: wr}
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// waitSpace blocks until at least n bytes of ring space are free, or
// returns CmdBufferFullError.
func (p *coproc) waitSpace(n int, deadline time.Duration) error {
	end := time.Now().Add(deadline)
	for {
		rd, wr, err := p.readPtrs()
		if err != nil {
			return err
		}
		if avail := free(rd, wr); avail >= n {
			return nil
		} else if time.Now().After(end) {
			return &CmdBufferFullError{Needed: n, Available: avail}
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// hostCmd sends a 3-byte host command frame: cmd, 0x00, 0x00. Host
// commands have no address and move the chip between clock/power states.
func (p *coproc) hostCmd(cmd byte) error {
	return p.c.t.Write([]byte{cmd, 0x00, 0x00})
}

// inflateChunk is the maximum slice of a zlib payload streamed per
// coprocessor batch before the ring must be given a chance to drain.
const inflateChunk = 2048

// inflate streams payload (already zlib-compressed) into dest through
// CMD_INFLATE, alternating write + publish + wait for room so large
// payloads never deadlock against a 4 KiB ring.
func (p *coproc) inflate(dest uint32, payload []byte) error {
	if pad := (4 - len(payload)%4) % 4; pad != 0 {
		payload = append(payload[:len(payload):len(payload)], make([]byte, pad)...)
	}
	if err := p.begin(); err != nil {
		return err
	}
	if err := p.word(cmdInflate); err != nil {
		return err
	}
	if err := p.word(dest); err != nil {
		return err
	}
	for off := 0; off < len(payload); {
		n := inflateChunk
		if rem := len(payload) - off; rem < n {
			n = rem
		}
		if err := p.waitSpace(n+8, 2*time.Second); err != nil {
			return err
		}
		chunk := payload[off : off+n]
		for i := 0; i < len(chunk); i += 4 {
			word := uint32(chunk[i]) | uint32(chunk[i+1])<<8 | uint32(chunk[i+2])<<16 | uint32(chunk[i+3])<<24
			if err := p.word(word); err != nil {
				return err
			}
		}
		if err := p.end(); err != nil {
			return err
		}
		time.Sleep(time.Millisecond)
		// Resync the local write offset with REG_CMD_WRITE as the chip
		// now reports it.
		if _, wr, err := p.readPtrs(); err == nil {
			p.w = wr
		}
		off += n
	}
	if err := p.end(); err != nil {
		return err
	}
	return p.wait(5 * time.Second)
}
