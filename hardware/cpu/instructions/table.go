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

package instructions

import "fmt"

// Primary is the primary instruction table, indexed by opcode. A nil entry
// means the opcode does not decode to any instruction; executing one is fatal.
//
// The two regular blocks of the table (the LD r,r' block and the
// arithmetic/logic block, 0x40 to 0xbf) are filled at init time. The
// irregular remainder is written out longhand.
var Primary = [256]*Definition{
	0x00: {0x00, "NOP", 1, 4, 0},
	0x01: {0x01, "LD BC,d16", 3, 12, 0},
	0x02: {0x02, "LD (BC),A", 1, 8, 0},
	0x03: {0x03, "INC BC", 1, 8, 0},
	0x04: {0x04, "INC B", 1, 4, 0},
	0x05: {0x05, "DEC B", 1, 4, 0},
	0x06: {0x06, "LD B,d8", 2, 8, 0},
	0x07: {0x07, "RLCA", 1, 4, 0},
	0x08: {0x08, "LD (a16),SP", 3, 20, 0},
	0x09: {0x09, "ADD HL,BC", 1, 8, 0},
	0x0a: {0x0a, "LD A,(BC)", 1, 8, 0},
	0x0b: {0x0b, "DEC BC", 1, 8, 0},
	0x0c: {0x0c, "INC C", 1, 4, 0},
	0x0d: {0x0d, "DEC C", 1, 4, 0},
	0x0e: {0x0e, "LD C,d8", 2, 8, 0},
	0x0f: {0x0f, "RRCA", 1, 4, 0},

	0x10: {0x10, "STOP", 2, 4, 0},
	0x11: {0x11, "LD DE,d16", 3, 12, 0},
	0x12: {0x12, "LD (DE),A", 1, 8, 0},
	0x13: {0x13, "INC DE", 1, 8, 0},
	0x14: {0x14, "INC D", 1, 4, 0},
	0x15: {0x15, "DEC D", 1, 4, 0},
	0x16: {0x16, "LD D,d8", 2, 8, 0},
	0x17: {0x17, "RLA", 1, 4, 0},
	0x18: {0x18, "JR r8", 2, 12, 0},
	0x19: {0x19, "ADD HL,DE", 1, 8, 0},
	0x1a: {0x1a, "LD A,(DE)", 1, 8, 0},
	0x1b: {0x1b, "DEC DE", 1, 8, 0},
	0x1c: {0x1c, "INC E", 1, 4, 0},
	0x1d: {0x1d, "DEC E", 1, 4, 0},
	0x1e: {0x1e, "LD E,d8", 2, 8, 0},
	0x1f: {0x1f, "RRA", 1, 4, 0},

	0x20: {0x20, "JR NZ,r8", 2, 8, 12},
	0x21: {0x21, "LD HL,d16", 3, 12, 0},
	0x22: {0x22, "LD (HL+),A", 1, 8, 0},
	0x23: {0x23, "INC HL", 1, 8, 0},
	0x24: {0x24, "INC H", 1, 4, 0},
	0x25: {0x25, "DEC H", 1, 4, 0},
	0x26: {0x26, "LD H,d8", 2, 8, 0},
	0x27: {0x27, "DAA", 1, 4, 0},
	0x28: {0x28, "JR Z,r8", 2, 8, 12},
	0x29: {0x29, "ADD HL,HL", 1, 8, 0},
	0x2a: {0x2a, "LD A,(HL+)", 1, 8, 0},
	0x2b: {0x2b, "DEC HL", 1, 8, 0},
	0x2c: {0x2c, "INC L", 1, 4, 0},
	0x2d: {0x2d, "DEC L", 1, 4, 0},
	0x2e: {0x2e, "LD L,d8", 2, 8, 0},
	0x2f: {0x2f, "CPL", 1, 4, 0},

	0x30: {0x30, "JR NC,r8", 2, 8, 12},
	0x31: {0x31, "LD SP,d16", 3, 12, 0},
	0x32: {0x32, "LD (HL-),A", 1, 8, 0},
	0x33: {0x33, "INC SP", 1, 8, 0},
	0x34: {0x34, "INC (HL)", 1, 12, 0},
	0x35: {0x35, "DEC (HL)", 1, 12, 0},
	0x36: {0x36, "LD (HL),d8", 2, 12, 0},
	0x37: {0x37, "SCF", 1, 4, 0},
	0x38: {0x38, "JR C,r8", 2, 8, 12},
	0x39: {0x39, "ADD HL,SP", 1, 8, 0},
	0x3a: {0x3a, "LD A,(HL-)", 1, 8, 0},
	0x3b: {0x3b, "DEC SP", 1, 8, 0},
	0x3c: {0x3c, "INC A", 1, 4, 0},
	0x3d: {0x3d, "DEC A", 1, 4, 0},
	0x3e: {0x3e, "LD A,d8", 2, 8, 0},
	0x3f: {0x3f, "CCF", 1, 4, 0},

	0xc0: {0xc0, "RET NZ", 1, 8, 20},
	0xc1: {0xc1, "POP BC", 1, 12, 0},
	0xc2: {0xc2, "JP NZ,a16", 3, 12, 16},
	0xc3: {0xc3, "JP a16", 3, 16, 0},
	0xc4: {0xc4, "CALL NZ,a16", 3, 12, 24},
	0xc5: {0xc5, "PUSH BC", 1, 16, 0},
	0xc6: {0xc6, "ADD A,d8", 2, 8, 0},
	0xc7: {0xc7, "RST 00H", 1, 16, 0},
	0xc8: {0xc8, "RET Z", 1, 8, 20},
	0xc9: {0xc9, "RET", 1, 16, 0},
	0xca: {0xca, "JP Z,a16", 3, 12, 16},
	0xcb: {0xcb, "PREFIX", 1, 4, 0},
	0xcc: {0xcc, "CALL Z,a16", 3, 12, 24},
	0xcd: {0xcd, "CALL a16", 3, 24, 0},
	0xce: {0xce, "ADC A,d8", 2, 8, 0},
	0xcf: {0xcf, "RST 08H", 1, 16, 0},

	0xd0: {0xd0, "RET NC", 1, 8, 20},
	0xd1: {0xd1, "POP DE", 1, 12, 0},
	0xd2: {0xd2, "JP NC,a16", 3, 12, 16},
	0xd4: {0xd4, "CALL NC,a16", 3, 12, 24},
	0xd5: {0xd5, "PUSH DE", 1, 16, 0},
	0xd6: {0xd6, "SUB d8", 2, 8, 0},
	0xd7: {0xd7, "RST 10H", 1, 16, 0},
	0xd8: {0xd8, "RET C", 1, 8, 20},
	0xd9: {0xd9, "RETI", 1, 16, 0},
	0xda: {0xda, "JP C,a16", 3, 12, 16},
	0xdc: {0xdc, "CALL C,a16", 3, 12, 24},
	0xde: {0xde, "SBC A,d8", 2, 8, 0},
	0xdf: {0xdf, "RST 18H", 1, 16, 0},

	0xe0: {0xe0, "LDH (a8),A", 2, 12, 0},
	0xe1: {0xe1, "POP HL", 1, 12, 0},
	0xe2: {0xe2, "LD (C),A", 1, 8, 0},
	0xe5: {0xe5, "PUSH HL", 1, 16, 0},
	0xe6: {0xe6, "AND d8", 2, 8, 0},
	0xe7: {0xe7, "RST 20H", 1, 16, 0},
	0xe8: {0xe8, "ADD SP,r8", 2, 16, 0},
	0xe9: {0xe9, "JP (HL)", 1, 4, 0},
	0xea: {0xea, "LD (a16),A", 3, 16, 0},
	0xee: {0xee, "XOR d8", 2, 8, 0},
	0xef: {0xef, "RST 28H", 1, 16, 0},

	0xf0: {0xf0, "LDH A,(a8)", 2, 12, 0},
	0xf1: {0xf1, "POP AF", 1, 12, 0},
	0xf2: {0xf2, "LD A,(C)", 1, 8, 0},
	0xf3: {0xf3, "DI", 1, 4, 0},
	0xf5: {0xf5, "PUSH AF", 1, 16, 0},
	0xf6: {0xf6, "OR d8", 2, 8, 0},
	0xf7: {0xf7, "RST 30H", 1, 16, 0},
	0xf8: {0xf8, "LD HL,SP+r8", 2, 12, 0},
	0xf9: {0xf9, "LD SP,HL", 1, 8, 0},
	0xfa: {0xfa, "LD A,(a16)", 3, 16, 0},
	0xfb: {0xfb, "EI", 1, 4, 0},
	0xfe: {0xfe, "CP d8", 2, 8, 0},
	0xff: {0xff, "RST 38H", 1, 16, 0},
}

// mnemonic roots of the arithmetic/logic block, in opcode order.
var aluOps = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

func init() {
	// the LD r,r' block. 0x76 would be LD (HL),(HL) and is HALT instead
	for op := 0x40; op < 0x80; op++ {
		if op == 0x76 {
			Primary[op] = &Definition{OpCode: 0x76, Mnemonic: "HALT", Bytes: 1, Cycles: 4}
			continue
		}

		src := op & 0x07
		dst := (op >> 3) & 0x07

		cycles := 4
		if src == 6 || dst == 6 {
			cycles = 8
		}

		Primary[op] = &Definition{
			OpCode:   uint8(op),
			Mnemonic: fmt.Sprintf("LD %s,%s", prefixTargets[dst], prefixTargets[src]),
			Bytes:    1,
			Cycles:   cycles,
		}
	}

	// the arithmetic/logic block
	for op := 0x80; op < 0xc0; op++ {
		src := op & 0x07

		cycles := 4
		if src == 6 {
			cycles = 8
		}

		Primary[op] = &Definition{
			OpCode:   uint8(op),
			Mnemonic: fmt.Sprintf("%s%s", aluOps[(op>>3)&0x07], prefixTargets[src]),
			Bytes:    1,
			Cycles:   cycles,
		}
	}
}
