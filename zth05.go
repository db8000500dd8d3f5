package zth05

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/zth05/segment"
)

// DefaultAddr is the 7-bit I²C address of the display controller.
const DefaultAddr = 0x3E

var (
	// ErrBusTimeout is returned when the bus stays busy longer than
	// Opts.BusyTimeout.
	ErrBusTimeout = errors.New("zth05: bus busy timeout")
	// ErrHalted is returned by operations on a halted device.
	ErrHalted = errors.New("zth05: halted")
)

var (
	initCmd  = frameOf(segment.AllOnPattern)
	clearCmd = frameOf([segment.DigitCount]byte{})
)

func frameOf(d [segment.DigitCount]byte) segment.Frame {
	f := segment.NewFrame()
	f.SetDigits(d)
	return f
}

// Opts is the configuration for the display.
type Opts struct {
	Addr        uint16           // I²C address (default: DefaultAddr)
	Speed       physic.Frequency // Bus speed restored after the clock was gated (default: 400kHz)
	SettleDelay time.Duration    // Wait between init and clear sequences (default: 1ms)
	BusyTimeout time.Duration    // Longest wait for a busy bus (default: 10ms)

	// Optional bus pins; pull-ups are enabled on them when the bus clock is
	// brought back up.
	SCL gpio.PinIO
	SDA gpio.PinIO

	Clock BusClock // Optional gateable bus clock
	IRQ   IRQ      // Optional interrupt mask, default is a process-local lock

	Logger logrus.FieldLogger // Optional, discards by default
	Dump   bool               // Log every transmitted frame as ASCII art

	Time clockwork.Clock // Optional, real clock by default
}

func (o *Opts) withDefaults() (Opts, error) {
	var r Opts
	if o != nil {
		r = *o
	}
	if r.Addr == 0 {
		r.Addr = DefaultAddr
	}
	if r.Addr > 0x7F {
		return r, fmt.Errorf("zth05: address 0x%X is not a 7-bit address", r.Addr)
	}
	if r.Speed == 0 {
		r.Speed = 400 * physic.KiloHertz
	}
	if r.SettleDelay < 0 || r.BusyTimeout < 0 {
		return r, errors.New("zth05: delays must not be negative")
	}
	if r.SettleDelay == 0 {
		r.SettleDelay = time.Millisecond
	}
	if r.BusyTimeout == 0 {
		r.BusyTimeout = 10 * time.Millisecond
	}
	if r.IRQ == nil {
		r.IRQ = &lockIRQ{}
	}
	if r.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		r.Logger = l
	}
	if r.Time == nil {
		r.Time = clockwork.NewRealClock()
	}
	return r, nil
}

// Stats counts bus activity.
type Stats struct {
	Transmissions uint64 // Frames written to the bus
	Bytes         uint64 // Bytes written to the bus
	Skipped       uint64 // Updates without changes
	Suppressed    uint64 // Updates dropped while suppressed
	Errors        uint64 // Failed writes
}

// Dev is the device handle for the display.
type Dev struct {
	bus  i2c.Bus
	opts Opts
	log  logrus.FieldLogger

	// 0 when no display answered the probe.
	addr uint16

	frame  segment.Frame // Composed content
	shadow segment.Frame // Last transmitted frame

	suppressed bool
	halted     bool

	mu    sync.Mutex
	stats Stats
}

// New probes the bus for the display and initializes it.
//
// A missing display is not an error: the returned Dev reports Present() ==
// false and every operation is a no-op. opts can be nil to use defaults.
func New(b i2c.Bus, opts *Opts) (*Dev, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	d := &Dev{
		bus:  b,
		opts: o,
		log:  o.Logger.WithField("dev", "zth05"),
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Init probes for the display and sends the initialization sequence.
// The probe is not retried.
func (d *Dev) Init() error {
	d.addr = 0
	d.halted = false
	d.frame = segment.NewFrame()
	d.shadow = d.frame

	if !d.probe(d.opts.Addr) {
		d.log.WithField("addr", fmt.Sprintf("0x%02X", d.opts.Addr)).Warn("display not found")
		return nil
	}
	d.addr = d.opts.Addr

	if err := d.send(initCmd.Bytes()); err != nil {
		return fmt.Errorf("zth05: init: %w", err)
	}
	d.opts.Time.Sleep(d.opts.SettleDelay)
	if err := d.send(clearCmd.Bytes()); err != nil {
		return fmt.Errorf("zth05: clear: %w", err)
	}
	d.log.WithField("addr", fmt.Sprintf("0x%02X", d.addr)).Info("display initialized")
	return nil
}

// probe reports whether a device acknowledges a one byte read at addr.
func (d *Dev) probe(addr uint16) bool {
	var b [1]byte
	return d.bus.Tx(addr, nil, b[:]) == nil
}

// Present reports whether the display answered the probe.
func (d *Dev) Present() bool {
	return d.addr != 0
}

// Addr returns the bus address in use, or 0 when no display was found.
func (d *Dev) Addr() uint16 {
	return d.addr
}

// SetSuppressed turns updates off or back on without touching the
// composed frame.
func (d *Dev) SetSuppressed(off bool) {
	d.suppressed = off
}

// Frame returns a copy of the composed frame.
func (d *Dev) Frame() segment.Frame {
	return d.frame
}

// SetBigNumber shows tenths/10 with a unit symbol on the large digits.
func (d *Dev) SetBigNumber(tenths int16, unit segment.Unit) {
	d.frame.SetBigNumber(tenths, unit)
}

// SetSmallNumber shows n on the small digits, with or without percent sign.
func (d *Dev) SetSmallNumber(n int16, percent bool) {
	d.frame.SetSmallNumber(n, percent)
}

// SetConnected shows or hides the connectivity symbol.
func (d *Dev) SetConnected(on bool) {
	d.frame.SetConnected(on)
}

// SetBattery shows or hides the battery symbol.
func (d *Dev) SetBattery(on bool) {
	d.frame.SetBattery(on)
}

// SetSmiley sets the mood symbol.
func (d *Dev) SetSmiley(s segment.Smiley) {
	d.frame.SetSmiley(s)
}

// Update writes the composed frame if it differs from the last one written.
func (d *Dev) Update() error {
	if d.halted {
		return ErrHalted
	}
	if d.suppressed {
		d.count(func(s *Stats) { s.Suppressed++ })
		return nil
	}
	if d.frame.DigitsEqual(&d.shadow) {
		d.count(func(s *Stats) { s.Skipped++ })
		return nil
	}
	if err := d.send(d.frame.Bytes()); err != nil {
		d.count(func(s *Stats) { s.Errors++ })
		return err
	}
	d.shadow = d.frame
	return nil
}

// ShowOTA shows the firmware update screen immediately.
func (d *Dev) ShowOTA() error {
	return d.show(segment.OTAPattern)
}

// ShowReboot lights every segment immediately.
func (d *Dev) ShowReboot() error {
	return d.show(segment.RebootPattern)
}

// ShowBlink shows the identify screen immediately.
func (d *Dev) ShowBlink() error {
	return d.show(segment.BlinkPattern)
}

func (d *Dev) show(p [segment.DigitCount]byte) error {
	if d.halted {
		return ErrHalted
	}
	d.frame.SetDigits(p)
	return d.Update()
}

// Halt blanks the display. Further updates fail with ErrHalted until Init
// is called again.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.frame.ClearDigits()
	err := d.Update()
	d.halted = true
	return err
}

// Stats returns a snapshot of the bus counters.
func (d *Dev) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

func (d *Dev) count(f func(*Stats)) {
	d.mu.Lock()
	f(&d.stats)
	d.mu.Unlock()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	if d.addr == 0 {
		return fmt.Sprintf("zth05.Dev{%s, absent}", d.bus)
	}
	return fmt.Sprintf("zth05.Dev{%s, 0x%02X}", d.bus, d.addr)
}
