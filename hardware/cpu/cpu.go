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

// Package cpu implements the SM83 core of the Game Boy. The only operation
// of note is Step(), which processes the next instruction (or services a
// pending interrupt) and reports how many clock cycles it consumed. The
// instruction definitions themselves live in the instructions package.
package cpu

import (
	"github.com/sevenholm/dotmatrix/curated"
	"github.com/sevenholm/dotmatrix/hardware/cpu/instructions"
	"github.com/sevenholm/dotmatrix/hardware/interrupts"
)

// sentinel error returned by Step() when an unmapped opcode is fetched
const InvalidOpcode = "invalid opcode (%#02x) at %#04x"

// interrupt servicing takes five machine cycles
const interruptCycles = 20

// cost of one idle step while the core is halted
const haltCycles = 4

// Memory defines the operations of the address space the CPU executes
// against.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
}

// State records whether the core is executing instructions or waiting.
type State int

// List of valid State values.
const (
	Running State = iota
	Halted
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// CPU is the SM83 core.
type CPU struct {
	A uint8
	B uint8
	C uint8
	D uint8
	E uint8
	H uint8
	L uint8

	Status Status

	PC uint16
	SP uint16

	// interrupt master enable. gates interrupt servicing but not the
	// wake-from-halt condition
	IME bool

	State State

	mem Memory
	irq *interrupts.Interrupts

	// LastDefn is the definition of the most recently executed instruction.
	// nil if no instruction has been executed since the last Reset
	LastDefn *instructions.Definition
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem Memory, irq *interrupts.Interrupts) *CPU {
	mc := &CPU{mem: mem, irq: irq}
	mc.Reset()
	return mc
}

// Reset the CPU to the state it has immediately after the boot ROM has
// handed over control.
func (mc *CPU) Reset() {
	mc.A = 0x01
	mc.Status.Load(0xb0)
	mc.B = 0x00
	mc.C = 0x13
	mc.D = 0x00
	mc.E = 0xd8
	mc.H = 0x01
	mc.L = 0x4d
	mc.SP = 0xfffe
	mc.PC = 0x0100
	mc.IME = false
	mc.State = Running
	mc.LastDefn = nil
}

// Step services a pending interrupt or executes the instruction at PC. It
// returns the number of clock cycles consumed, which the caller uses to
// advance the rest of the machine.
func (mc *CPU) Step() (int, error) {
	// a stopped core resumes on the next step. button handling is not
	// modelled at this level
	if mc.State == Stopped {
		mc.State = Running
	}

	if src, ok := mc.irq.Pending(); ok {
		// a pending-and-enabled interrupt always wakes a halted core,
		// even when the master enable is clear
		if mc.State == Halted {
			mc.State = Running
		}

		if mc.IME {
			mc.IME = false
			mc.irq.Acknowledge(src)
			mc.push16(mc.PC)
			mc.PC = src.Vector()
			return interruptCycles, nil
		}
	}

	if mc.State == Halted {
		return haltCycles, nil
	}

	return mc.execute()
}

// fetch8 reads the byte at PC and advances PC.
func (mc *CPU) fetch8() uint8 {
	v := mc.mem.Read(mc.PC)
	mc.PC++
	return v
}

// fetch16 reads the little-endian word at PC and advances PC twice.
func (mc *CPU) fetch16() uint16 {
	lo := mc.fetch8()
	hi := mc.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (mc *CPU) push16(v uint16) {
	mc.SP--
	mc.mem.Write(mc.SP, uint8(v>>8))
	mc.SP--
	mc.mem.Write(mc.SP, uint8(v))
}

func (mc *CPU) pop16() uint16 {
	lo := mc.mem.Read(mc.SP)
	mc.SP++
	hi := mc.mem.Read(mc.SP)
	mc.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// loadReg8 reads the 8-bit register (or memory through HL) selected by the
// low three bits of most opcodes.
func (mc *CPU) loadReg8(idx uint8) uint8 {
	switch idx & 0x07 {
	case 0:
		return mc.B
	case 1:
		return mc.C
	case 2:
		return mc.D
	case 3:
		return mc.E
	case 4:
		return mc.H
	case 5:
		return mc.L
	case 6:
		return mc.mem.Read(mc.HL())
	}
	return mc.A
}

func (mc *CPU) storeReg8(idx uint8, v uint8) {
	switch idx & 0x07 {
	case 0:
		mc.B = v
	case 1:
		mc.C = v
	case 2:
		mc.D = v
	case 3:
		mc.E = v
	case 4:
		mc.H = v
	case 5:
		mc.L = v
	case 6:
		mc.mem.Write(mc.HL(), v)
	default:
		mc.A = v
	}
}

func (mc *CPU) invalidOpcode(opcode uint8) (int, error) {
	// PC has already moved past the offending byte
	return 0, curated.Errorf(InvalidOpcode, opcode, mc.PC-1)
}
