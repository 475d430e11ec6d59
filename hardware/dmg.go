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

// Package hardware assembles the emulated components of the DMG, the
// original Game Boy, and steps them in lockstep.
package hardware

import (
	"io"

	"github.com/sevenholm/dotmatrix/hardware/cpu"
	"github.com/sevenholm/dotmatrix/hardware/interrupts"
	"github.com/sevenholm/dotmatrix/hardware/memory"
	"github.com/sevenholm/dotmatrix/hardware/memory/addresses"
	"github.com/sevenholm/dotmatrix/hardware/memory/cartridge"
	"github.com/sevenholm/dotmatrix/hardware/peripherals"
	"github.com/sevenholm/dotmatrix/hardware/ppu"
	"github.com/sevenholm/dotmatrix/hardware/timer"
)

// DMG is the main container for the emulated components of the Game Boy.
type DMG struct {
	CPU    *cpu.CPU
	Mem    *memory.Bus
	PPU    *ppu.PPU
	Timer  *timer.Timer
	IRQ    *interrupts.Interrupts
	Joypad *peripherals.Joypad
}

// NewDMG creates a new DMG and everything associated with the hardware.
func NewDMG() *DMG {
	dmg := &DMG{}

	dmg.IRQ = interrupts.NewInterrupts()
	dmg.Timer = timer.NewTimer(dmg.IRQ)
	dmg.Mem = memory.NewBus(dmg.IRQ, dmg.Timer)
	dmg.CPU = cpu.NewCPU(dmg.Mem, dmg.IRQ)
	dmg.PPU = ppu.NewPPU(dmg.Mem, dmg.IRQ)
	dmg.Joypad = peripherals.NewJoypad(dmg.IRQ)
	dmg.Mem.Joypad = dmg.Joypad

	return dmg
}

// AttachCartridge loads a cartridge image into the machine and resets it.
func (dmg *DMG) AttachCartridge(data []byte) error {
	cart, err := cartridge.NewCartridge(data)
	if err != nil {
		return err
	}

	dmg.Mem.AttachCartridge(cart)
	dmg.Reset()
	return nil
}

// MountBootROM installs a bootstrap image. With one mounted, Reset starts
// execution inside the bootstrap rather than at the cartridge entry point.
func (dmg *DMG) MountBootROM(data []uint8) {
	dmg.Mem.MountBootROM(data)
}

// AttachSerial attaches a sink for bytes sent through the serial registers.
func (dmg *DMG) AttachSerial(w io.Writer) {
	dmg.Mem.Serial = w
}

// Reset emulates a power cycle.
func (dmg *DMG) Reset() {
	dmg.Mem.Reset()
	dmg.Timer.Reset()
	dmg.PPU.Reset()
	dmg.IRQ.Enable = 0x00
	dmg.IRQ.Request = 0x00
	dmg.CPU.Reset()

	if dmg.Mem.BootMounted() {
		// the bootstrap itself establishes the documented register state
		dmg.CPU.A = 0x00
		dmg.CPU.Status.Load(0x00)
		dmg.CPU.SetBC(0x0000)
		dmg.CPU.SetDE(0x0000)
		dmg.CPU.SetHL(0x0000)
		dmg.CPU.SP = 0x0000
		dmg.CPU.PC = 0x0000
		return
	}

	// without a bootstrap, registers the bootstrap would have initialised
	// are set directly
	dmg.Mem.Write(addresses.LCDC, 0x91)
	dmg.Mem.Write(addresses.BGP, 0xfc)
	dmg.Mem.Write(addresses.OBP0, 0xff)
	dmg.Mem.Write(addresses.OBP1, 0xff)
}

// Step advances the machine by one CPU instruction (or one interrupt
// dispatch). Every other component catches up with the cycles the CPU
// consumed.
func (dmg *DMG) Step() error {
	cycles, err := dmg.CPU.Step()
	if err != nil {
		return err
	}

	dmg.Timer.Step(cycles)
	if err := dmg.PPU.Step(cycles); err != nil {
		return err
	}
	dmg.Mem.Step(cycles)

	return nil
}
