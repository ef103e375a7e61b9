package partnerwindow

import (
	"sync"
	"time"
)

// shutdownSink holds the most recently started Bridge's command sender
// so that an OS-signal handler can force a Shutdown even when normal
// destruction (deferred Close/finalizer) is bypassed by os.Exit or a
// crash handler.
var shutdownSink struct {
	mu   sync.Mutex
	send func(command)
}

// RequestGlobalShutdown enqueues Shutdown on whichever Bridge last
// started, if any. Safe to call from a signal handler.
func RequestGlobalShutdown() {
	shutdownSink.mu.Lock()
	send := shutdownSink.send
	shutdownSink.mu.Unlock()
	if send != nil {
		send(shutdownCmd{})
	}
}

// Bridge is the thread-safe, non-blocking surface the GUI talks to.
// Every method enqueues a command and returns immediately; no SPI call
// ever runs on the calling goroutine.
type Bridge struct {
	cmds chan command
	snap *snapshot

	// Cached property values, mutated only by the goroutine that calls
	// Bridge's methods (normally the GUI thread); Connected/Active are
	// refreshed from snap in PollState.
	Enabled     bool
	DeviceConnected bool
	Active      bool
	FontSize    int
	IdleEnabled bool
}

// New starts the background worker and returns a Bridge bound to it.
func New(cfg Config) *Bridge {
	cmds := make(chan command, 16)
	snap := &snapshot{}
	w := newWorker(cfg, cmds, snap)
	go w.run()

	b := &Bridge{
		cmds:        cmds,
		snap:        snap,
		Enabled:     cfg.Enabled,
		FontSize:    clampFont(cfg.Font),
		IdleEnabled: cfg.IdleEnabled,
	}
	shutdownSink.mu.Lock()
	shutdownSink.send = b.send
	shutdownSink.mu.Unlock()
	return b
}

func (b *Bridge) send(c command) {
	select {
	case b.cmds <- c:
	default:
		// The queue is deep enough that a full buffer means the worker
		// has wedged; drop rather than block the GUI thread.
	}
}

func (b *Bridge) UpdateText(text string) {
	b.send(updateTextCmd{text: text})
}

func (b *Bridge) SetEnabled(enabled bool) {
	b.Enabled = enabled
	b.send(setEnabledCmd{enabled: enabled})
}

func (b *Bridge) SetFontSize(font int) {
	b.FontSize = clampFont(font)
	b.send(setFontCmd{font: font})
}

func (b *Bridge) SetIdleEnabled(enabled bool) {
	b.IdleEnabled = enabled
	b.send(setIdleEnabledCmd{enabled: enabled})
}

func (b *Bridge) Clear() {
	b.send(clearCmd{})
}

// Shutdown tears the worker down and blocks for 500ms to give it
// time to power the panel down before the caller tears down the USB
// handle itself (e.g. process exit).
func (b *Bridge) Shutdown() {
	b.send(shutdownCmd{})
	time.Sleep(500 * time.Millisecond)
}

// PollState copies the latest published {deviceConnected, active} into
// the observable properties, returning whether anything changed.
func (b *Bridge) PollState() (changed bool) {
	connected, active := b.snap.get()
	if connected != b.DeviceConnected {
		b.DeviceConnected = connected
		changed = true
	}
	if active != b.Active {
		b.Active = active
		changed = true
	}
	return changed
}
