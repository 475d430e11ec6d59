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

package cpu

import (
	"github.com/sevenholm/dotmatrix/hardware/cpu/instructions"
)

// condition decodes the branch condition in bits 3 and 4 of the conditional
// jump/call/return opcodes.
func (mc *CPU) condition(opcode uint8) bool {
	switch (opcode >> 3) & 0x03 {
	case 0: // NZ
		return !mc.Status.Zero
	case 1: // Z
		return mc.Status.Zero
	case 2: // NC
		return !mc.Status.Carry
	}
	// C
	return mc.Status.Carry
}

// execute fetches, decodes and executes the instruction at PC. cycle costs
// come from the definition tables rather than being restated here.
func (mc *CPU) execute() (int, error) {
	opcode := mc.fetch8()

	defn := instructions.Primary[opcode]
	if defn == nil {
		return mc.invalidOpcode(opcode)
	}
	mc.LastDefn = defn

	// the two regular blocks of the opcode map are decoded by bit pattern

	if opcode >= 0x40 && opcode <= 0x7f {
		if opcode == 0x76 { // HALT
			mc.State = Halted
			return defn.Cycles, nil
		}
		mc.storeReg8(opcode>>3, mc.loadReg8(opcode))
		return defn.Cycles, nil
	}

	if opcode >= 0x80 && opcode <= 0xbf {
		mc.accumulatorOp(opcode>>3, mc.loadReg8(opcode))
		return defn.Cycles, nil
	}

	if opcode == instructions.Escape {
		return mc.executePrefixed()
	}

	switch opcode {
	case 0x00: // NOP

	case 0x01: // LD BC,d16
		mc.SetBC(mc.fetch16())
	case 0x11: // LD DE,d16
		mc.SetDE(mc.fetch16())
	case 0x21: // LD HL,d16
		mc.SetHL(mc.fetch16())
	case 0x31: // LD SP,d16
		mc.SP = mc.fetch16()

	case 0x02: // LD (BC),A
		mc.mem.Write(mc.BC(), mc.A)
	case 0x12: // LD (DE),A
		mc.mem.Write(mc.DE(), mc.A)
	case 0x0a: // LD A,(BC)
		mc.A = mc.mem.Read(mc.BC())
	case 0x1a: // LD A,(DE)
		mc.A = mc.mem.Read(mc.DE())

	case 0x22: // LD (HL+),A
		mc.mem.Write(mc.HL(), mc.A)
		mc.SetHL(mc.HL() + 1)
	case 0x32: // LD (HL-),A
		mc.mem.Write(mc.HL(), mc.A)
		mc.SetHL(mc.HL() - 1)
	case 0x2a: // LD A,(HL+)
		mc.A = mc.mem.Read(mc.HL())
		mc.SetHL(mc.HL() + 1)
	case 0x3a: // LD A,(HL-)
		mc.A = mc.mem.Read(mc.HL())
		mc.SetHL(mc.HL() - 1)

	case 0x03: // INC BC
		mc.SetBC(mc.BC() + 1)
	case 0x13: // INC DE
		mc.SetDE(mc.DE() + 1)
	case 0x23: // INC HL
		mc.SetHL(mc.HL() + 1)
	case 0x33: // INC SP
		mc.SP++
	case 0x0b: // DEC BC
		mc.SetBC(mc.BC() - 1)
	case 0x1b: // DEC DE
		mc.SetDE(mc.DE() - 1)
	case 0x2b: // DEC HL
		mc.SetHL(mc.HL() - 1)
	case 0x3b: // DEC SP
		mc.SP--

	case 0x04, 0x0c, 0x14, 0x1c, 0x24, 0x2c, 0x34, 0x3c: // INC r
		idx := opcode >> 3
		mc.storeReg8(idx, mc.inc8(mc.loadReg8(idx)))
	case 0x05, 0x0d, 0x15, 0x1d, 0x25, 0x2d, 0x35, 0x3d: // DEC r
		idx := opcode >> 3
		mc.storeReg8(idx, mc.dec8(mc.loadReg8(idx)))

	case 0x06, 0x0e, 0x16, 0x1e, 0x26, 0x2e, 0x36, 0x3e: // LD r,d8
		mc.storeReg8(opcode>>3, mc.fetch8())

	case 0x07: // RLCA
		mc.A = mc.rlc(mc.A, false)
	case 0x0f: // RRCA
		mc.A = mc.rrc(mc.A, false)
	case 0x17: // RLA
		mc.A = mc.rl(mc.A, false)
	case 0x1f: // RRA
		mc.A = mc.rr(mc.A, false)

	case 0x08: // LD (a16),SP
		addr := mc.fetch16()
		mc.mem.Write(addr, uint8(mc.SP))
		mc.mem.Write(addr+1, uint8(mc.SP>>8))

	case 0x09: // ADD HL,BC
		mc.addHL(mc.BC())
	case 0x19: // ADD HL,DE
		mc.addHL(mc.DE())
	case 0x29: // ADD HL,HL
		mc.addHL(mc.HL())
	case 0x39: // ADD HL,SP
		mc.addHL(mc.SP)

	case 0x10: // STOP
		_ = mc.fetch8() // padding byte
		mc.State = Stopped

	case 0x18: // JR r8
		offset := int8(mc.fetch8())
		mc.PC += uint16(offset)

	case 0x20, 0x28, 0x30, 0x38: // JR cc,r8
		offset := int8(mc.fetch8())
		if mc.condition(opcode) {
			mc.PC += uint16(offset)
			return defn.CyclesTaken, nil
		}

	case 0x27: // DAA
		mc.daa()

	case 0x2f: // CPL
		mc.A = ^mc.A
		mc.Status.Subtract = true
		mc.Status.HalfCarry = true

	case 0x37: // SCF
		mc.Status.Subtract = false
		mc.Status.HalfCarry = false
		mc.Status.Carry = true

	case 0x3f: // CCF
		mc.Status.Subtract = false
		mc.Status.HalfCarry = false
		mc.Status.Carry = !mc.Status.Carry

	case 0xc0, 0xc8, 0xd0, 0xd8: // RET cc
		if mc.condition(opcode) {
			mc.PC = mc.pop16()
			return defn.CyclesTaken, nil
		}

	case 0xc9: // RET
		mc.PC = mc.pop16()

	case 0xd9: // RETI
		mc.PC = mc.pop16()
		mc.IME = true

	case 0xc1: // POP BC
		mc.SetBC(mc.pop16())
	case 0xd1: // POP DE
		mc.SetDE(mc.pop16())
	case 0xe1: // POP HL
		mc.SetHL(mc.pop16())
	case 0xf1: // POP AF
		mc.SetAF(mc.pop16())

	case 0xc5: // PUSH BC
		mc.push16(mc.BC())
	case 0xd5: // PUSH DE
		mc.push16(mc.DE())
	case 0xe5: // PUSH HL
		mc.push16(mc.HL())
	case 0xf5: // PUSH AF
		mc.push16(mc.AF())

	case 0xc3: // JP a16
		mc.PC = mc.fetch16()

	case 0xc2, 0xca, 0xd2, 0xda: // JP cc,a16
		addr := mc.fetch16()
		if mc.condition(opcode) {
			mc.PC = addr
			return defn.CyclesTaken, nil
		}

	case 0xe9: // JP (HL)
		mc.PC = mc.HL()

	case 0xcd: // CALL a16
		addr := mc.fetch16()
		mc.push16(mc.PC)
		mc.PC = addr

	case 0xc4, 0xcc, 0xd4, 0xdc: // CALL cc,a16
		addr := mc.fetch16()
		if mc.condition(opcode) {
			mc.push16(mc.PC)
			mc.PC = addr
			return defn.CyclesTaken, nil
		}

	case 0xc7, 0xcf, 0xd7, 0xdf, 0xe7, 0xef, 0xf7, 0xff: // RST
		mc.push16(mc.PC)
		mc.PC = uint16(opcode & 0x38)

	case 0xc6: // ADD A,d8
		mc.add8(mc.fetch8(), false)
	case 0xce: // ADC A,d8
		mc.add8(mc.fetch8(), true)
	case 0xd6: // SUB d8
		mc.sub8(mc.fetch8(), false, true)
	case 0xde: // SBC A,d8
		mc.sub8(mc.fetch8(), true, true)
	case 0xe6: // AND d8
		mc.and8(mc.fetch8())
	case 0xee: // XOR d8
		mc.xor8(mc.fetch8())
	case 0xf6: // OR d8
		mc.or8(mc.fetch8())
	case 0xfe: // CP d8
		mc.sub8(mc.fetch8(), false, false)

	case 0xe0: // LDH (a8),A
		mc.mem.Write(0xff00+uint16(mc.fetch8()), mc.A)
	case 0xf0: // LDH A,(a8)
		mc.A = mc.mem.Read(0xff00 + uint16(mc.fetch8()))
	case 0xe2: // LD (C),A
		mc.mem.Write(0xff00+uint16(mc.C), mc.A)
	case 0xf2: // LD A,(C)
		mc.A = mc.mem.Read(0xff00 + uint16(mc.C))

	case 0xea: // LD (a16),A
		mc.mem.Write(mc.fetch16(), mc.A)
	case 0xfa: // LD A,(a16)
		mc.A = mc.mem.Read(mc.fetch16())

	case 0xe8: // ADD SP,r8
		mc.SP = mc.addSP(mc.fetch8())
	case 0xf8: // LD HL,SP+r8
		mc.SetHL(mc.addSP(mc.fetch8()))
	case 0xf9: // LD SP,HL
		mc.SP = mc.HL()

	case 0xf3: // DI
		mc.IME = false
	case 0xfb: // EI
		mc.IME = true

	default:
		return mc.invalidOpcode(opcode)
	}

	return defn.Cycles, nil
}

// accumulatorOp dispatches the eight arithmetic/logic operations selected
// by bits 3 to 5 of the 0x80 to 0xbf block (and the immediate forms).
func (mc *CPU) accumulatorOp(op uint8, v uint8) {
	switch op & 0x07 {
	case 0: // ADD
		mc.add8(v, false)
	case 1: // ADC
		mc.add8(v, true)
	case 2: // SUB
		mc.sub8(v, false, true)
	case 3: // SBC
		mc.sub8(v, true, true)
	case 4: // AND
		mc.and8(v)
	case 5: // XOR
		mc.xor8(v)
	case 6: // OR
		mc.or8(v)
	case 7: // CP
		mc.sub8(v, false, false)
	}
}

// executePrefixed handles the CB-prefixed page of rotate, shift and bit
// instructions. the page is completely regular.
func (mc *CPU) executePrefixed() (int, error) {
	opcode := mc.fetch8()
	defn := &instructions.Prefixed[opcode]
	mc.LastDefn = defn

	idx := opcode & 0x07
	n := (opcode >> 3) & 0x07

	switch opcode >> 6 {
	case 0: // rotates and shifts
		v := mc.loadReg8(idx)
		switch n {
		case 0:
			v = mc.rlc(v, true)
		case 1:
			v = mc.rrc(v, true)
		case 2:
			v = mc.rl(v, true)
		case 3:
			v = mc.rr(v, true)
		case 4:
			v = mc.sla(v)
		case 5:
			v = mc.sra(v)
		case 6:
			v = mc.swap(v)
		case 7:
			v = mc.srl(v)
		}
		mc.storeReg8(idx, v)
	case 1: // BIT n,r
		mc.bit(n, mc.loadReg8(idx))
	case 2: // RES n,r
		mc.storeReg8(idx, mc.loadReg8(idx)&^(1<<n))
	case 3: // SET n,r
		mc.storeReg8(idx, mc.loadReg8(idx)|1<<n)
	}

	return defn.Cycles, nil
}
