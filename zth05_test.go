package zth05

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/zth05/segment"
)

// fakeBus acknowledges a single address and records writes.
type fakeBus struct {
	addr     uint16
	writes   [][]byte
	failNext error
	speed    physic.Frequency
}

func (b *fakeBus) String() string { return "fake" }

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	if addr != b.addr {
		return errors.New("fake: nack")
	}
	if len(r) != 0 {
		return nil
	}
	if err := b.failNext; err != nil {
		b.failNext = nil
		return err
	}
	b.writes = append(b.writes, append([]byte(nil), w...))
	return nil
}

func (b *fakeBus) SetSpeed(f physic.Frequency) error {
	b.speed = f
	return nil
}

// stuckBus never leaves the busy state; every poll moves time forward.
type stuckBus struct {
	fakeBus
	clock clockwork.FakeClock
	polls int
}

func (b *stuckBus) Busy() bool {
	b.polls++
	b.clock.Advance(time.Millisecond)
	return true
}

type countingIRQ struct {
	depth    int
	disabled int
	restored []uint32
}

func (c *countingIRQ) Disable() uint32 {
	c.depth++
	c.disabled++
	return uint32(c.disabled)
}

func (c *countingIRQ) Restore(s uint32) {
	c.depth--
	c.restored = append(c.restored, s)
}

type gatedClock struct {
	on      bool
	enables int
}

func (g *gatedClock) Enabled() bool { return g.on }

func (g *gatedClock) Enable() error {
	g.on = true
	g.enables++
	return nil
}

// newPresent runs New against bus with a fake clock, releasing the settle
// delay.
func newPresent(t *testing.T, bus *fakeBus, opts *Opts) *Dev {
	t.Helper()
	if opts == nil {
		opts = &Opts{}
	}
	fc := clockwork.NewFakeClock()
	opts.Time = fc

	type result struct {
		d   *Dev
		err error
	}
	done := make(chan result, 1)
	go func() {
		d, err := New(bus, opts)
		done <- result{d, err}
	}()
	fc.BlockUntil(1)
	fc.Advance(time.Millisecond)
	r := <-done
	assert.NilError(t, r.err)
	assert.Assert(t, r.d.Present())
	return r.d
}

func TestNewInitSequence(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultAddr, R: []byte{0}},
			{Addr: DefaultAddr, W: []byte{0xB6, 0xFC, 0xC8, 0xE8, 0x08, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
			{Addr: DefaultAddr, W: []byte{0xB6, 0xFC, 0xC8, 0xE8, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		},
	}
	fc := clockwork.NewFakeClock()
	done := make(chan error, 1)
	go func() {
		_, err := New(bus, &Opts{Time: fc, SettleDelay: 5 * time.Millisecond})
		done <- err
	}()
	fc.BlockUntil(1)
	fc.Advance(5 * time.Millisecond)
	assert.NilError(t, <-done)
	assert.NilError(t, bus.Close())
}

func TestNewAbsent(t *testing.T) {
	bus := &fakeBus{addr: 0x10}
	d, err := New(bus, nil)
	assert.NilError(t, err)
	assert.Assert(t, !d.Present())
	assert.Equal(t, d.Addr(), uint16(0))

	d.SetBigNumber(215, segment.UnitCelsius)
	assert.NilError(t, d.Update())
	assert.NilError(t, d.ShowReboot())
	assert.Equal(t, len(bus.writes), 0)
	assert.Equal(t, d.Stats().Transmissions, uint64(0))
	assert.Equal(t, d.String(), "zth05.Dev{fake, absent}")
}

func TestNewInvalidOpts(t *testing.T) {
	tests := []struct {
		name string
		opts *Opts
	}{
		{"10-bit address", &Opts{Addr: 0x80}},
		{"negative settle delay", &Opts{SettleDelay: -time.Millisecond}},
		{"negative busy timeout", &Opts{BusyTimeout: -time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&fakeBus{}, tt.opts)
			assert.ErrorContains(t, err, "zth05:")
		})
	}
}

func TestUpdateTransmitsOnlyChanges(t *testing.T) {
	bus := &fakeBus{addr: DefaultAddr}
	d := newPresent(t, bus, nil)
	assert.Equal(t, len(bus.writes), 2)

	d.SetBigNumber(-50, segment.UnitCelsius)
	d.SetSmallNumber(42, true)
	d.SetConnected(true)
	assert.NilError(t, d.Update())
	assert.NilError(t, d.Update())
	assert.Equal(t, len(bus.writes), 3)

	want := d.Frame()
	assert.DeepEqual(t, bus.writes[2], want.Bytes())

	// Same content composed again is not sent.
	d.SetBigNumber(-50, segment.UnitCelsius)
	assert.NilError(t, d.Update())
	assert.Equal(t, len(bus.writes), 3)

	d.SetBattery(true)
	assert.NilError(t, d.Update())
	assert.Equal(t, len(bus.writes), 4)

	s := d.Stats()
	assert.Equal(t, s.Transmissions, uint64(4))
	assert.Equal(t, s.Bytes, uint64(4*segment.FrameSize))
	assert.Equal(t, s.Skipped, uint64(2))
}

func TestUpdateFailureKeepsFrameDirty(t *testing.T) {
	bus := &fakeBus{addr: DefaultAddr}
	d := newPresent(t, bus, nil)

	d.SetSmiley(segment.SmileyHappy)
	bus.failNext = errors.New("nack")
	err := d.Update()
	assert.ErrorContains(t, err, "zth05: write: nack")
	assert.Equal(t, d.Stats().Errors, uint64(1))

	assert.NilError(t, d.Update())
	assert.Equal(t, len(bus.writes), 3)
}

func TestSuppressed(t *testing.T) {
	bus := &fakeBus{addr: DefaultAddr}
	d := newPresent(t, bus, nil)

	d.SetSuppressed(true)
	d.SetSmallNumber(7, false)
	assert.NilError(t, d.Update())
	assert.NilError(t, d.ShowBlink())
	assert.Equal(t, len(bus.writes), 2)
	assert.Equal(t, d.Stats().Suppressed, uint64(2))

	d.SetSuppressed(false)
	assert.NilError(t, d.Update())
	assert.Equal(t, len(bus.writes), 3)
	last := bus.writes[2]
	assert.DeepEqual(t, last[segment.PrefixSize:], segment.BlinkPattern[:])
}

func TestPresetScreens(t *testing.T) {
	tests := []struct {
		name string
		show func(*Dev) error
		want [segment.DigitCount]byte
	}{
		{"ota", (*Dev).ShowOTA, segment.OTAPattern},
		{"reboot", (*Dev).ShowReboot, segment.RebootPattern},
		{"blink", (*Dev).ShowBlink, segment.BlinkPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &fakeBus{addr: DefaultAddr}
			d := newPresent(t, bus, nil)
			d.SetBigNumber(123, segment.UnitFahrenheit)

			assert.NilError(t, tt.show(d))
			assert.Equal(t, len(bus.writes), 3)
			w := bus.writes[2]
			assert.DeepEqual(t, w[:segment.PrefixSize], segment.Prefix[:])
			assert.DeepEqual(t, w[segment.PrefixSize:], tt.want[:])
		})
	}
}

func TestHalt(t *testing.T) {
	bus := &fakeBus{addr: DefaultAddr}
	d := newPresent(t, bus, nil)
	d.SetBigNumber(215, segment.UnitCelsius)
	assert.NilError(t, d.Update())

	assert.NilError(t, d.Halt())
	assert.Equal(t, len(bus.writes), 4)
	assert.DeepEqual(t, bus.writes[3], clearCmd.Bytes())

	assert.Assert(t, errors.Is(d.Update(), ErrHalted))
	assert.Assert(t, errors.Is(d.ShowOTA(), ErrHalted))
	assert.NilError(t, d.Halt())
}

func TestTransmitRestoresIRQ(t *testing.T) {
	irq := &countingIRQ{}
	bus := &fakeBus{addr: DefaultAddr}
	d := newPresent(t, bus, &Opts{IRQ: irq})
	assert.Equal(t, irq.disabled, 2)

	d.SetBattery(true)
	bus.failNext = errors.New("nack")
	assert.Assert(t, d.Update() != nil)
	assert.Equal(t, irq.depth, 0)
	assert.DeepEqual(t, irq.restored, []uint32{1, 2, 3})
}

func TestBusyTimeout(t *testing.T) {
	fc := clockwork.NewFakeClock()
	bus := &stuckBus{fakeBus: fakeBus{addr: DefaultAddr}, clock: fc}
	irq := &countingIRQ{}

	// The settle delay is never reached: the init write already times out.
	_, err := New(bus, &Opts{Time: fc, IRQ: irq, BusyTimeout: 10 * time.Millisecond})
	assert.Assert(t, errors.Is(err, ErrBusTimeout))
	assert.Equal(t, bus.polls, 11)
	assert.Equal(t, len(bus.writes), 0)
	assert.Equal(t, irq.depth, 0)
}

func TestWakeGatedClock(t *testing.T) {
	clk := &gatedClock{}
	scl := &gpiotest.Pin{N: "SCL"}
	sda := &gpiotest.Pin{N: "SDA"}
	bus := &fakeBus{addr: DefaultAddr}
	d := newPresent(t, bus, &Opts{Clock: clk, SCL: scl, SDA: sda, Speed: 100 * physic.KiloHertz})

	assert.Equal(t, clk.enables, 1)
	assert.Equal(t, bus.speed, 100*physic.KiloHertz)
	assert.Equal(t, scl.P, gpio.PullUp)
	assert.Equal(t, sda.P, gpio.PullUp)

	d.SetConnected(true)
	assert.NilError(t, d.Update())
	assert.Equal(t, clk.enables, 1)

	clk.on = false
	d.SetConnected(false)
	assert.NilError(t, d.Update())
	assert.Equal(t, clk.enables, 2)
}

func TestReInit(t *testing.T) {
	bus := &fakeBus{addr: DefaultAddr}
	d := newPresent(t, bus, nil)
	assert.NilError(t, d.Halt())

	bus.addr = 0x01
	assert.NilError(t, d.Init())
	assert.Assert(t, !d.Present())
	assert.NilError(t, d.Update())
	assert.Equal(t, d.Frame(), segment.NewFrame())
}

func TestDevString(t *testing.T) {
	d := newPresent(t, &fakeBus{addr: DefaultAddr}, nil)
	assert.Equal(t, d.String(), "zth05.Dev{fake, 0x3E}")
}
