// This file is part of Dotmatrix.
//
// Dotmatrix is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dotmatrix is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dotmatrix.  If not, see <https://www.gnu.org/licenses/>.

package memory_test

import (
	"strings"
	"testing"

	"github.com/sevenholm/dotmatrix/hardware/interrupts"
	"github.com/sevenholm/dotmatrix/hardware/memory"
	"github.com/sevenholm/dotmatrix/hardware/memory/addresses"
	"github.com/sevenholm/dotmatrix/hardware/timer"
)

func newBus() *memory.Bus {
	irq := interrupts.NewInterrupts()
	return memory.NewBus(irq, timer.NewTimer(irq))
}

func TestEchoRAM(t *testing.T) {
	bus := newBus()

	// a write to work RAM is visible through the echo window and vice versa
	bus.Write(0xc123, 0x56)
	if v := bus.Read(0xe123); v != 0x56 {
		t.Errorf("echo window did not mirror WRAM write: %#02x", v)
	}

	bus.Write(0xfd00, 0x78)
	if v := bus.Read(0xdd00); v != 0x78 {
		t.Errorf("WRAM did not mirror echo write: %#02x", v)
	}
}

func TestUnmapped(t *testing.T) {
	bus := newBus()

	// no cartridge attached
	if v := bus.Read(0x0000); v != 0xff {
		t.Errorf("ROM window without cartridge should read 0xff, got %#02x", v)
	}
	if v := bus.Read(0xa000); v != 0xff {
		t.Errorf("RAM window without cartridge should read 0xff, got %#02x", v)
	}

	// the unusable region reads 0xff and drops writes
	bus.Write(0xfea0, 0x12)
	if v := bus.Read(0xfea0); v != 0xff {
		t.Errorf("unusable region should read 0xff, got %#02x", v)
	}
}

func TestInterruptRegisters(t *testing.T) {
	bus := newBus()

	// software can poll and acknowledge through the IF register. unused bits
	// read high
	bus.Write(addresses.IF, 0x01)
	if v := bus.Read(addresses.IF); v != 0xe1 {
		t.Errorf("unexpected IF read: %#02x", v)
	}

	bus.Write(addresses.IE, 0x1f)
	if v := bus.Read(addresses.IE); v != 0x1f {
		t.Errorf("unexpected IE read: %#02x", v)
	}
}

func TestTimerRegisters(t *testing.T) {
	irq := interrupts.NewInterrupts()
	tmr := timer.NewTimer(irq)
	bus := memory.NewBus(irq, tmr)

	tmr.DIV = 0xab
	if v := bus.Read(addresses.DIV); v != 0xab {
		t.Errorf("DIV not visible through the bus: %#02x", v)
	}

	// any write resets the divider
	bus.Write(addresses.DIV, 0x12)
	if tmr.DIV != 0 {
		t.Errorf("write to DIV should reset it, got %#02x", tmr.DIV)
	}

	bus.Write(addresses.TMA, 0x42)
	if tmr.TMA != 0x42 {
		t.Errorf("TMA write not routed to timer: %#02x", tmr.TMA)
	}
}

func TestSerialSink(t *testing.T) {
	bus := newBus()

	s := &strings.Builder{}
	bus.Serial = s

	for _, b := range []byte("ok") {
		bus.Write(addresses.SB, b)
		bus.Write(addresses.SC, 0x81)
	}

	if s.String() != "ok" {
		t.Errorf("serial sink received %q", s.String())
	}
}

func TestOAMDMA(t *testing.T) {
	bus := newBus()

	for i := 0; i < 0xa0; i++ {
		bus.Write(uint16(0xc000+i), uint8(i))
	}

	// DMA from the 0xc0 page
	bus.Write(addresses.DMA, 0xc0)

	// the copy happens after the delay has elapsed, not before
	bus.Step(156)
	if v := bus.Read(0xfe10); v != 0x00 {
		t.Errorf("OAM written before DMA delay elapsed: %#02x", v)
	}

	bus.Step(4)
	for i := 0; i < 0xa0; i++ {
		if v := bus.Read(uint16(0xfe00 + i)); v != uint8(i) {
			t.Fatalf("OAM byte %#02x wrong after DMA: %#02x", i, v)
		}
	}
}

func TestBootROMOverlay(t *testing.T) {
	bus := newBus()

	boot := make([]uint8, 0x100)
	for i := range boot {
		boot[i] = 0xaa
	}
	bus.MountBootROM(boot)

	if v := bus.Read(0x0000); v != 0xaa {
		t.Errorf("boot ROM not visible: %#02x", v)
	}

	// unmounting makes the cartridge region (unmapped here) visible again
	bus.Write(addresses.BOOT, 0x01)
	if v := bus.Read(0x0000); v != 0xff {
		t.Errorf("boot ROM still visible after unmount: %#02x", v)
	}
}
