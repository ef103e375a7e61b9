// Command partnerwindowctl is a standalone diagnostic tool for the
// partner window panel. It talks to the EVE driver directly, without
// going through the worker/bridge that a GUI would use.
package main

import (
	"bytes"
	"compress/zlib"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"os/signal"
	"syscall"
	"time"

	"partnerwindow.dev/driver/eve"
	"partnerwindow.dev/image/rgb565"
)

var (
	textFlags = flag.NewFlagSet("text", flag.ExitOnError)
	textFont  = textFlags.Int("font", 31, "font size (28, 30, or 31)")
)

// holdDuration is how long every subcommand except discover/init/off
// keeps the rendered content on screen before shutting the panel down.
const holdDuration = 3 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("missing subcommand (discover, init, text, color, pattern, geometry, animate, all, off)")
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "discover":
		return discover()
	case "init":
		return runInit()
	case "text":
		if err := textFlags.Parse(args); err != nil {
			return err
		}
		if textFlags.NArg() < 1 {
			return errors.New("text: specify a message")
		}
		return runText(textFlags.Arg(0), clampDiagFont(*textFont))
	case "color":
		if len(args) != 3 {
			return errors.New("color: specify R G B")
		}
		r, g, b, err := parseRGB(args)
		if err != nil {
			return err
		}
		return runColor(r, g, b)
	case "pattern":
		return runPattern()
	case "geometry":
		return runGeometry()
	case "animate":
		return runAnimate()
	case "all":
		return runAll()
	case "off":
		return runOff()
	default:
		return fmt.Errorf("unknown subcommand: %q", cmd)
	}
}

// clampDiagFont restricts the diagnostic tool's font flag to the three
// ROM font sizes it supports, defaulting to 31 for anything else.
func clampDiagFont(font int) int {
	switch font {
	case 28, 30, 31:
		return font
	default:
		return 31
	}
}

func parseRGB(args []string) (r, g, b byte, err error) {
	vals := make([]byte, 3)
	for i, a := range args {
		var v int
		if _, err := fmt.Sscanf(a, "%d", &v); err != nil || v < 0 || v > 255 {
			return 0, 0, 0, fmt.Errorf("color: invalid channel %q", a)
		}
		vals[i] = byte(v)
	}
	return vals[0], vals[1], vals[2], nil
}

func discover() error {
	d, err := eve.Open()
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}
	d.Close()
	return nil
}

// withDevice opens and initialises a handle, runs body, then holds for
// holdDuration (unless hold is false) and always shuts the panel down
// before returning.
func withDevice(hold bool, body func(*eve.Driver) error) error {
	d, err := eve.Open()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer d.Close()
	if err := d.Init(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if body != nil {
		if err := body(d); err != nil {
			return err
		}
	}
	if hold {
		time.Sleep(holdDuration)
	}
	return d.Shutdown()
}

func runInit() error {
	d, err := eve.Open()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer d.Close()
	if err := d.Init(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	return d.Shutdown()
}

func runText(msg string, font int) error {
	return withDevice(true, func(d *eve.Driver) error {
		return d.DisplayText(msg, nil, nil, byte(font), 255, 255, 255)
	})
}

func runColor(r, g, b byte) error {
	return withDevice(true, func(d *eve.Driver) error {
		return d.ClearScreen(r, g, b)
	})
}

// patternColors are the 8 vertical test bars, in host RGB order; rgb565.Image
// quantizes them to the panel's native 16-bit format on fill.
var patternColors = [8]color.RGBA{
	{R: 0xff, A: 0xff},                   // red
	{G: 0xff, A: 0xff},                   // green
	{B: 0xff, A: 0xff},                   // blue
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // white
	{R: 0xff, G: 0xff, A: 0xff},          // yellow
	{R: 0xff, B: 0xff, A: 0xff},          // magenta
	{G: 0xff, B: 0xff, A: 0xff},          // cyan
	{A: 0xff},                            // black
}

// buildPattern fills an rgb565.Image with vertical test bars and returns
// its raw panel-native pixel bytes, ready for eve.Driver.DisplayBitmapRGB565.
func buildPattern(w, h int) []byte {
	img := rgb565.New(image.Rect(0, 0, w, h))
	barWidth := w / len(patternColors)
	for i, c := range patternColors {
		x0 := i * barWidth
		x1 := x0 + barWidth
		if i == len(patternColors)-1 {
			x1 = w
		}
		bar := image.Rect(x0, 0, x1, h)
		draw.Draw(img, bar, image.NewUniform(c), image.Point{}, draw.Src)
	}
	raw := make([]byte, w*h*2)
	for i, px := range img.Pix {
		raw[2*i] = px[0]
		raw[2*i+1] = px[1]
	}
	return raw
}

func runPattern() error {
	return withDevice(true, func(d *eve.Driver) error {
		raw := buildPattern(480, 128)
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
		return d.DisplayBitmapRGB565(buf.Bytes(), 480, 128, 0)
	})
}

func runGeometry() error {
	return withDevice(true, func(d *eve.Driver) error {
		return d.DrawGeometry()
	})
}

func runAnimate() error {
	return withDevice(true, func(d *eve.Driver) error {
		x := 480
		const step = 4
		const period = 30 * time.Millisecond
		y := 64
		for x > -200 {
			if err := d.DisplayText("partner window", &x, &y, 31, 255, 255, 255); err != nil {
				return err
			}
			x -= step
			time.Sleep(period)
		}
		return nil
	})
}

func runAll() error {
	for _, step := range []func() error{
		discover,
		func() error { return withDevice(false, nil) },
		func() error { return runColor(255, 0, 0) },
		runPattern,
		runGeometry,
		runAnimate,
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return runOff()
}

func runOff() error {
	d, err := eve.Open()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer d.Close()
	return d.Shutdown()
}
