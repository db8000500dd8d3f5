package zth05

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/zth05/segment"
)

// IRQ masks interrupt delivery while a frame is on the bus.
//
// Disable returns the previous state, which Restore puts back exactly.
type IRQ interface {
	Disable() (state uint32)
	Restore(state uint32)
}

// BusClock reports and restores the clock of the bus peripheral, for hosts
// that gate it while idle.
type BusClock interface {
	Enabled() bool
	Enable() error
}

// busyBus is implemented by buses exposing their busy flag.
type busyBus interface {
	Busy() bool
}

// lockIRQ serializes transmissions within the process.
type lockIRQ struct {
	mu sync.Mutex
}

func (l *lockIRQ) Disable() uint32 {
	l.mu.Lock()
	return 0
}

func (l *lockIRQ) Restore(uint32) {
	l.mu.Unlock()
}

// exclusive masks interrupts and returns the function restoring them.
func (d *Dev) exclusive() (restore func()) {
	s := d.opts.IRQ.Disable()
	return func() { d.opts.IRQ.Restore(s) }
}

// send writes b as one addressed transaction. It does nothing when no
// display was found.
func (d *Dev) send(b []byte) error {
	if d.addr == 0 {
		return nil
	}
	defer d.exclusive()()

	if err := d.wake(); err != nil {
		return err
	}
	if err := d.waitIdle(); err != nil {
		return err
	}
	if err := d.bus.Tx(d.addr, b, nil); err != nil {
		return fmt.Errorf("zth05: write: %w", err)
	}

	d.count(func(s *Stats) {
		s.Transmissions++
		s.Bytes += uint64(len(b))
	})
	if d.opts.Dump && len(b) == segment.FrameSize {
		f := segment.Frame(b)
		d.log.Debugf("sent %v\n%s", f, f.Render())
	}
	return nil
}

// wake brings a gated bus clock back up, once per gating.
func (d *Dev) wake() error {
	c := d.opts.Clock
	if c == nil || c.Enabled() {
		return nil
	}
	if err := c.Enable(); err != nil {
		return fmt.Errorf("zth05: bus clock: %w", err)
	}
	if err := d.bus.SetSpeed(d.opts.Speed); err != nil {
		return fmt.Errorf("zth05: bus speed: %w", err)
	}
	for _, p := range []gpio.PinIO{d.opts.SCL, d.opts.SDA} {
		if p == nil {
			continue
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return fmt.Errorf("zth05: pull-up on %s: %w", p, err)
		}
	}
	d.log.Debug("bus clock restored")
	return nil
}

// waitIdle spins until the bus reports idle, for at most Opts.BusyTimeout.
func (d *Dev) waitIdle() error {
	b, ok := d.bus.(busyBus)
	if !ok {
		return nil
	}
	deadline := d.opts.Time.Now().Add(d.opts.BusyTimeout)
	for b.Busy() {
		if d.opts.Time.Now().After(deadline) {
			return ErrBusTimeout
		}
	}
	return nil
}
