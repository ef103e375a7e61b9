package eve

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// spiSpeed is the fixed bus speed the reference panel is driven at.
// Faster clocks were not validated against the ribbon cable length used
// in the field.
const spiSpeed = 15 * physic.MegaHertz

// ftdiTransport implements transport over an FTDI FT232H MPSSE bridge,
// discovered through the periph.io SPI port registry the way lcd.Open
// discovers the Raspberry Pi's native SPI controller.
type ftdiTransport struct {
	port spi.PortCloser
	conn spi.Conn
	pd   gpio.PinOut
}

// pdPinName is the MPSSE GPIOL/GPIOH pin carrying the EVE power-down
// line: ADBUS6, exposed by periph.io/x/host/v3/ftdi as "D6".
const pdPinName = "D6"

// openFTDI opens the first SPI port in periph.io's registry
// (spireg.Open("")) and configures it as an SPI master at spiSpeed,
// mode 0, 8 bits, MSB-first. It does not check the USB VID/PID itself;
// which port comes first is up to the registry. CS lives on D3 and is driven by the spi.Conn itself;
// PD# lives on D6 and is exposed separately since it toggles outside of
// any SPI transaction.
func openFTDI() (*ftdiTransport, error) {
	if _, err := host.Init(); err != nil {
		return nil, &SpiError{Detail: "host init", Err: err}
	}
	p, err := spireg.Open("")
	if err != nil {
		return nil, &SpiError{Detail: "open FT232H SPI port", Err: err}
	}
	c, err := p.Connect(spiSpeed, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, &SpiError{Detail: "configure MPSSE", Err: err}
	}
	pd := gpioreg.ByName(pdPinName)
	if pd == nil {
		p.Close()
		return nil, &GpioError{Detail: "D6 not found on FT232H", Err: fmt.Errorf("pin %q unavailable", pdPinName)}
	}
	if err := pd.Out(gpio.Low); err != nil {
		p.Close()
		return nil, &GpioError{Detail: "drive D6", Err: err}
	}
	return &ftdiTransport{port: p, conn: c, pd: pd}, nil
}

func (t *ftdiTransport) Write(w []byte) error {
	if err := t.conn.Tx(w, nil); err != nil {
		return &SpiError{Detail: "write", Err: err}
	}
	return nil
}

func (t *ftdiTransport) Transfer(w []byte, r []byte) error {
	if err := t.conn.Tx(w, r); err != nil {
		return &SpiError{Detail: "transfer", Err: err}
	}
	return nil
}

func (t *ftdiTransport) PowerDown(down bool) error {
	level := gpio.High
	if down {
		level = gpio.Low
	}
	if err := t.pd.Out(level); err != nil {
		return &GpioError{Detail: "PD#", Err: err}
	}
	return nil
}

func (t *ftdiTransport) Close() error {
	return t.port.Close()
}

// MaxTxSize mirrors lcd.go's MaxTxSize probe, used to size bulk transfers
// (INFLATE chunking already caps at 2 KiB well under any MPSSE limit, but
// wrBulk's raw RGB565 path can exceed it on a large panel).
func (t *ftdiTransport) MaxTxSize() int {
	if lim, ok := t.conn.(conn.Limits); ok {
		if n := lim.MaxTxSize(); n > 0 {
			return n
		}
	}
	return 4096
}
