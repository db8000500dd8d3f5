// Package zth05 controls the segment LCD of the ZTH05 temperature and humidity
// sensor via I²C.
//
// The display has three large digits with a leading "1", a decimal point and a
// °C/°F unit, two small digits with a percent sign, and battery, connectivity
// and smiley symbols. The controller takes a fixed 11-byte frame: a 5-byte
// command prefix followed by 6 bytes with one bit per segment. See package
// segment for the bit layout.
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C Clock
//	SDA         → I²C Data
//
// The controller answers at address 0x3E.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"log"
//
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/devices/v3/zth05"
//		"periph.io/x/devices/v3/zth05/segment"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//		bus, err := i2creg.Open("")
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer bus.Close()
//
//		dev, err := zth05.New(bus, nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Halt()
//
//		dev.SetBigNumber(215, segment.UnitCelsius) // 21.5°C
//		dev.SetSmallNumber(48, true)               // 48%
//		dev.SetSmiley(segment.SmileyHappy)
//		if err := dev.Update(); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Updates
//
// The Set* methods only change the frame held in memory. Update compares it
// with the last frame written and performs a single bus write when they
// differ, so calling Update after every measurement costs nothing while the
// readings are stable. ShowOTA, ShowReboot and ShowBlink replace the whole
// content and write it right away.
//
// SetSuppressed(true) stops all writes without losing the composed content,
// for devices configured with the display off.
//
// # Missing Display
//
// New probes the address once. When nothing answers, the returned Dev reports
// Present() == false and all operations succeed without touching the bus.
//
// # Bus Access
//
// Each frame is written inside an IRQ critical section. Firmware targets pass
// an IRQ implementation masking interrupts; by default a lock serializes
// writes within the process. Buses exposing a Busy() bool method are polled
// before each write for at most Opts.BusyTimeout, after which ErrBusTimeout is
// returned. When Opts.Clock reports the bus clock as gated, it is enabled
// again, the bus speed restored and pull-ups set on Opts.SCL and Opts.SDA.
package zth05
