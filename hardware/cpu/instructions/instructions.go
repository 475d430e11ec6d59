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

// Package instructions defines every instruction in the SM83 instruction set
// as data. There are two tables: the primary table and the table reached
// through the 0xcb escape opcode. Execution logic lives in the cpu package;
// this package only describes shape and cost, keeping the full tables open to
// exhaustive checking in tests.
package instructions

import "fmt"

// Definition defines one instruction in the instruction set.
type Definition struct {
	OpCode   uint8
	Mnemonic string

	// total length of the instruction in bytes, including the opcode itself
	// (and the escape byte for the prefixed table)
	Bytes int

	// cycle cost of the instruction. for conditional instructions this is
	// the cost when the condition fails
	Cycles int

	// cycle cost when a conditional instruction's condition passes. zero for
	// unconditional instructions
	CyclesTaken int
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.CyclesTaken > 0 {
		return fmt.Sprintf("%02x %s +%dbytes (%d/%d cycles)", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles, defn.CyclesTaken)
	}
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles)", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles)
}

// IsConditional returns true if the cycle cost of the instruction depends on
// the flags.
func (defn Definition) IsConditional() bool {
	return defn.CyclesTaken > 0
}

// Escape is the opcode that selects the prefixed table.
const Escape = 0xcb

// register targets in the order used by the bit fields of the prefixed table
// (and the LD/ALU blocks of the primary table). index 6 is the (HL) indirect.
var prefixTargets = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// operation groups of the prefixed table, in opcode order.
var prefixOps = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// Prefixed is the table reached through the escape opcode. Every entry is
// valid. The table is filled at init time: the prefixed table is completely
// regular so there is nothing to gain from writing it out longhand.
var Prefixed [256]Definition

func init() {
	for op := 0; op < 256; op++ {
		defn := Definition{
			OpCode: uint8(op),
			Bytes:  2,
		}

		target := op & 0x07
		indirect := target == 6

		switch {
		case op < 0x40:
			defn.Mnemonic = fmt.Sprintf("%s %s", prefixOps[op>>3], prefixTargets[target])
			defn.Cycles = 8
			if indirect {
				defn.Cycles = 16
			}
		case op < 0x80:
			defn.Mnemonic = fmt.Sprintf("BIT %d,%s", (op>>3)&0x07, prefixTargets[target])
			defn.Cycles = 8
			if indirect {
				defn.Cycles = 12
			}
		case op < 0xc0:
			defn.Mnemonic = fmt.Sprintf("RES %d,%s", (op>>3)&0x07, prefixTargets[target])
			defn.Cycles = 8
			if indirect {
				defn.Cycles = 16
			}
		default:
			defn.Mnemonic = fmt.Sprintf("SET %d,%s", (op>>3)&0x07, prefixTargets[target])
			defn.Cycles = 8
			if indirect {
				defn.Cycles = 16
			}
		}

		Prefixed[op] = defn
	}
}
