package partnerwindow

import (
	"log"
	"time"

	"partnerwindow.dev/driver/eve"
)

// tick is the fixed worker period. It doubles as the debounce window for
// keystroke-rate text updates; a fancier scheduler would only add
// latency here.
const tick = 50 * time.Millisecond

// idleAfter is how long the panel waits without a text update before it
// switches to the idle face.
const idleAfter = 10 * time.Second

// probeEvery bounds how often the worker may attempt to claim the
// device while it holds no handle.
const probeEvery = 3 * time.Second

// logoDest is the RAM_G offset the idle-face logo is uploaded to.
const logoDest = 0

// worker owns the EVE handle exclusively and is the only goroutine that
// ever touches the SPI bus.
type worker struct {
	cmds <-chan command
	snap *snapshot

	driver *eve.Driver

	enabled     bool
	font        int
	idleEnabled bool

	lastText     string
	lastTextTime time.Time

	showingIdle       bool
	faceTransition    bool
	faceStage         int
	transitionUpdates int

	logoUploaded bool
	logo         []byte

	lastProbe time.Time
}

func newWorker(cfg Config, cmds <-chan command, snap *snapshot) *worker {
	return &worker{
		cmds:        cmds,
		snap:        snap,
		enabled:     cfg.Enabled,
		font:        clampFont(cfg.Font),
		idleEnabled: cfg.IdleEnabled,
		logo:        logoL8(),
	}
}

// run is the worker's main loop; it returns when a Shutdown command is
// observed or the command channel is closed.
func (w *worker) run() {
	for {
		if !w.drainCommands() {
			w.teardown()
			return
		}
		w.renderPendingFace()
		w.connectivityTick()
		w.renderText()
		w.idleTick()
		time.Sleep(tick)
	}
}

// drainCommands processes every command currently queued without
// blocking. It reports false when the worker should exit.
func (w *worker) drainCommands() bool {
	for {
		select {
		case cmd, ok := <-w.cmds:
			if !ok {
				return false
			}
			if !w.apply(cmd) {
				return false
			}
		default:
			return true
		}
	}
}

// apply processes a single command. It reports false when the worker
// should exit.
func (w *worker) apply(cmd command) bool {
	switch c := cmd.(type) {
	case updateTextCmd:
		w.onUpdateText(c.text)
	case setEnabledCmd:
		w.enabled = c.enabled
		if !c.enabled {
			w.teardown()
		}
	case setFontCmd:
		w.font = clampFont(c.font)
	case setIdleEnabledCmd:
		w.idleEnabled = c.enabled
		if !c.enabled {
			w.showingIdle = false
			w.faceTransition = false
			if w.driver != nil {
				if err := w.driver.ClearScreen(0, 0, 0); err != nil {
					w.dropDriver(err)
				}
			}
		}
	case clearCmd:
		if w.driver != nil {
			if err := w.driver.ClearScreen(0, 0, 0); err != nil {
				w.dropDriver(err)
			}
		}
	case shutdownCmd:
		return false
	}
	return true
}

func (w *worker) onUpdateText(s string) {
	text := stripBracketed(s)
	if text == "" {
		return
	}
	w.lastTextTime = time.Now()
	if w.showingIdle || w.faceTransition {
		w.faceTransition = true
		w.transitionUpdates++
		w.faceStage = mouthStage(w.transitionUpdates)
		if w.faceStage < 4 {
			// Still transitioning: eat the keystroke, no text render.
			w.lastText = ""
			return
		}
		w.faceTransition = false
		w.showingIdle = false
		w.transitionUpdates = 0
	}
	w.lastText = text
}

// renderPendingFace draws the current face stage when a transition is
// pending.
func (w *worker) renderPendingFace() {
	if w.driver == nil || !w.faceTransition {
		return
	}
	if err := w.driver.DisplayFace(faceFrames[w.faceStage], byte(w.font), w.logoUploaded, logoDest, logoX, logoY); err != nil {
		w.dropDriver(err)
	}
}

// connectivityTick probes for the device every probeEvery, but only
// while no handle is held: probing claims the USB device, which would
// conflict with an already-open handle. If the device physically
// disappears, the next SPI write fails instead and drops the handle.
func (w *worker) connectivityTick() {
	if w.driver != nil {
		return
	}
	if time.Since(w.lastProbe) < probeEvery {
		return
	}
	w.lastProbe = time.Now()
	if !w.enabled {
		w.snap.set(false, false)
		return
	}
	d, err := eve.Open()
	if err != nil {
		w.snap.set(false, false)
		return
	}
	if err := d.Init(); err != nil {
		log.Printf("partnerwindow: init failed: %v", err)
		d.Close()
		w.snap.set(true, false)
		return
	}
	w.driver = d
	w.logoUploaded = false
	if err := d.UploadL8(logoDest, w.logo); err == nil {
		w.logoUploaded = true
	}
	w.snap.set(true, true)
	if clock, err := d.SystemClock(); err == nil {
		log.Printf("partnerwindow: connected, system clock %.1f MHz", clock)
	}
}

// renderText draws the most recently collapsed text update, if any,
// when a driver is present.
func (w *worker) renderText() {
	if w.driver == nil || w.lastText == "" {
		return
	}
	text := w.lastText
	if err := w.driver.DisplayText(text, nil, nil, byte(w.font), 255, 255, 255); err != nil {
		w.dropDriver(err)
		return
	}
	w.lastText = ""
}

// idleTick switches to the idle face after idleAfter of silence.
func (w *worker) idleTick() {
	if !w.idleEnabled || w.driver == nil || w.showingIdle {
		return
	}
	if w.lastTextTime.IsZero() {
		w.lastTextTime = time.Now()
		return
	}
	if time.Since(w.lastTextTime) < idleAfter {
		return
	}
	w.faceStage = 0
	w.faceTransition = false
	if err := w.driver.DisplayFace(faceFrames[0], byte(w.font), w.logoUploaded, logoDest, logoX, logoY); err != nil {
		w.dropDriver(err)
		return
	}
	w.showingIdle = true
}

func (w *worker) dropDriver(err error) {
	log.Printf("partnerwindow: driver error, dropping handle: %v", err)
	if w.driver != nil {
		w.driver.Close()
		w.driver = nil
	}
	w.snap.set(true, false)
}

func (w *worker) teardown() {
	if w.driver == nil {
		return
	}
	if err := w.driver.Shutdown(); err != nil {
		log.Printf("partnerwindow: shutdown error: %v", err)
	}
	w.driver.Close()
	w.driver = nil
	w.snap.set(false, false)
}
