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

// Package memory implements the memory bus of the DMG. The bus is the single
// source of truth for addressable storage and the only path by which the CPU
// and PPU observe or mutate it.
//
// The Read() and Write() functions dispatch on the address ranges named in
// the addresses package. Reads from unmapped regions return 0xff rather than
// failing, matching the behaviour of the unmapped bus in hardware.
package memory

import (
	"io"

	"github.com/sevenholm/dotmatrix/hardware/interrupts"
	"github.com/sevenholm/dotmatrix/hardware/memory/addresses"
	"github.com/sevenholm/dotmatrix/hardware/memory/cartridge"
	"github.com/sevenholm/dotmatrix/hardware/timer"
)

// the value returned by reads of unmapped or disabled regions
const unmappedValue = 0xff

// the number of cycles between a DMA register write and the OAM copy
const dmaDelay = 160

// PortDevice is any device mapped to a single I/O register. The joypad is
// the only PortDevice in this emulation.
type PortDevice interface {
	ReadRegister() uint8
	WriteRegister(data uint8)
}

// Bus is the memory map of the DMG.
type Bus struct {
	irq *interrupts.Interrupts
	tmr *timer.Timer

	// Cart is nil until a cartridge has been attached. reads of the cartridge
	// windows return the unmapped value until then
	Cart *cartridge.Cartridge

	VRAM [0x2000]uint8
	WRAM [0x2000]uint8
	OAM  [0xa0]uint8
	IO   [0x80]uint8
	HRAM [0x7f]uint8

	// the boot ROM overlay. visible at the bottom of the address space until
	// a write to the BOOT register unmounts it
	boot        []uint8
	bootMounted bool

	// Joypad is optional. without one the joypad register reads as unmapped
	Joypad PortDevice

	// Serial receives bytes written through the serial registers. this is the
	// channel test ROMs report through. nil means discard
	Serial io.Writer

	// state of an OAM DMA transfer started by a write to the DMA register
	dmaSource  uint8
	dmaPending bool
	dmaCycles  int
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus(irq *interrupts.Interrupts, tmr *timer.Timer) *Bus {
	return &Bus{
		irq: irq,
		tmr: tmr,
	}
}

// AttachCartridge makes a loaded cartridge visible in the two ROM windows
// and the external RAM window.
func (bus *Bus) AttachCartridge(cart *cartridge.Cartridge) {
	bus.Cart = cart
}

// MountBootROM installs a boot ROM overlay over the bottom 256 addresses. The
// overlay stays visible until software writes a non-zero value to the BOOT
// register.
func (bus *Bus) MountBootROM(data []uint8) {
	bus.boot = make([]uint8, addresses.BootROMSize)
	copy(bus.boot, data)
	bus.bootMounted = true
}

// BootMounted reports whether the boot ROM overlay is currently visible.
func (bus *Bus) BootMounted() bool {
	return bus.bootMounted
}

// Reset zeroes all RAM regions and I/O registers. The cartridge and any
// mounted boot ROM are unaffected.
func (bus *Bus) Reset() {
	bus.VRAM = [0x2000]uint8{}
	bus.WRAM = [0x2000]uint8{}
	bus.OAM = [0xa0]uint8{}
	bus.IO = [0x80]uint8{}
	bus.HRAM = [0x7f]uint8{}
	bus.dmaPending = false
	bus.bootMounted = bus.boot != nil
}

// Read the byte at the specified address. The mapping is total: addresses
// with no backing storage return 0xff.
func (bus *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= addresses.ROMBankEnd:
		if bus.bootMounted && addr < addresses.BootROMSize {
			return bus.boot[addr]
		}
		if bus.Cart == nil {
			return unmappedValue
		}
		return bus.Cart.Read(addr)

	case addr <= addresses.VRAMEnd:
		return bus.VRAM[addr-addresses.VRAMStart]

	case addr <= addresses.RAMBankEnd:
		if bus.Cart == nil {
			return unmappedValue
		}
		return bus.Cart.Read(addr)

	case addr <= addresses.WRAMEnd:
		return bus.WRAM[addr-addresses.WRAMStart]

	case addr <= addresses.EchoEnd:
		return bus.WRAM[addr-addresses.EchoStart]

	case addr <= addresses.OAMEnd:
		return bus.OAM[addr-addresses.OAMStart]

	case addr <= addresses.UnusableEnd:
		return unmappedValue

	case addr <= addresses.IOEnd:
		return bus.readIO(addr)

	case addr <= addresses.HRAMEnd:
		return bus.HRAM[addr-addresses.HRAMStart]
	}

	// only the interrupt enable register remains
	return bus.irq.Enable
}

// Write the byte to the specified address. Writes into the ROM windows are
// bank-controller commands. Writes to unmapped addresses are dropped.
func (bus *Bus) Write(addr uint16, data uint8) {
	switch {
	case addr <= addresses.ROMBankEnd:
		if bus.bootMounted && addr < addresses.BootROMSize {
			// the overlay is not writable
			return
		}
		if bus.Cart != nil {
			bus.Cart.Write(addr, data)
		}

	case addr <= addresses.VRAMEnd:
		bus.VRAM[addr-addresses.VRAMStart] = data

	case addr <= addresses.RAMBankEnd:
		if bus.Cart != nil {
			bus.Cart.Write(addr, data)
		}

	case addr <= addresses.WRAMEnd:
		bus.WRAM[addr-addresses.WRAMStart] = data

	case addr <= addresses.EchoEnd:
		bus.WRAM[addr-addresses.EchoStart] = data

	case addr <= addresses.OAMEnd:
		bus.OAM[addr-addresses.OAMStart] = data

	case addr <= addresses.UnusableEnd:
		// dropped

	case addr <= addresses.IOEnd:
		bus.writeIO(addr, data)

	case addr <= addresses.HRAMEnd:
		bus.HRAM[addr-addresses.HRAMStart] = data

	default:
		bus.irq.Enable = data & 0x1f
	}
}

// Step advances any in-flight OAM DMA transfer. Called by the step loop with
// the cycle count of the most recent CPU step.
func (bus *Bus) Step(cycles int) {
	if !bus.dmaPending {
		return
	}

	bus.dmaCycles -= cycles
	if bus.dmaCycles > 0 {
		return
	}
	bus.dmaPending = false

	src := uint16(bus.dmaSource) << 8
	for i := uint16(0); i < uint16(len(bus.OAM)); i++ {
		bus.OAM[i] = bus.Read(src + i)
	}
}

func (bus *Bus) readIO(addr uint16) uint8 {
	switch addr {
	case addresses.JOYP:
		if bus.Joypad == nil {
			return unmappedValue
		}
		return bus.Joypad.ReadRegister()
	case addresses.DIV:
		return bus.tmr.DIV
	case addresses.TIMA:
		return bus.tmr.TIMA
	case addresses.TMA:
		return bus.tmr.TMA
	case addresses.TAC:
		return bus.tmr.TAC
	case addresses.IF:
		// unused bits of the request register read high
		return bus.irq.Request | 0xe0
	}
	return bus.IO[addr-addresses.IOStart]
}

func (bus *Bus) writeIO(addr uint16, data uint8) {
	switch addr {
	case addresses.JOYP:
		if bus.Joypad != nil {
			bus.Joypad.WriteRegister(data)
		}
		return
	case addresses.DIV:
		// any write resets the divider
		bus.tmr.ResetDIV()
		return
	case addresses.TIMA:
		bus.tmr.TIMA = data
		return
	case addresses.TMA:
		bus.tmr.TMA = data
		return
	case addresses.TAC:
		bus.tmr.TAC = data
		return
	case addresses.IF:
		bus.irq.Request = data & 0x1f
		return
	case addresses.SC:
		// the serial sink sees a byte whenever software requests a transfer.
		// the transfer completes immediately so the start bit never reads
		// back high
		if data == 0x81 && bus.Serial != nil {
			bus.Serial.Write([]byte{bus.IO[addresses.SB-addresses.IOStart]})
		}
		data &= 0x7f
	case addresses.DMA:
		bus.dmaSource = data
		bus.dmaPending = true
		bus.dmaCycles = dmaDelay
	case addresses.BOOT:
		if data != 0 {
			bus.bootMounted = false
		}
	}

	bus.IO[addr-addresses.IOStart] = data
}
