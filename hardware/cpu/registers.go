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

import "fmt"

// Status is the flags register. The flag bits are only meaningful as the
// side effect of the most recent operation.
type Status struct {
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
}

// Value returns the flags as they appear in the low register of the AF pair.
// The low four bits are always zero.
func (sr Status) Value() uint8 {
	v := uint8(0)
	if sr.Zero {
		v |= 0x80
	}
	if sr.Subtract {
		v |= 0x40
	}
	if sr.HalfCarry {
		v |= 0x20
	}
	if sr.Carry {
		v |= 0x10
	}
	return v
}

// Load the flags from a register value. The low four bits are discarded.
func (sr *Status) Load(v uint8) {
	sr.Zero = v&0x80 == 0x80
	sr.Subtract = v&0x40 == 0x40
	sr.HalfCarry = v&0x20 == 0x20
	sr.Carry = v&0x10 == 0x10
}

func (sr Status) String() string {
	s := [4]rune{'z', 'n', 'h', 'c'}
	if sr.Zero {
		s[0] = 'Z'
	}
	if sr.Subtract {
		s[1] = 'N'
	}
	if sr.HalfCarry {
		s[2] = 'H'
	}
	if sr.Carry {
		s[3] = 'C'
	}
	return string(s[:])
}

// The eight 8-bit registers pair up into four 16-bit registers. The pair
// functions below are the only way the pairs are accessed; there is no
// separate backing storage to fall out of sync.

// AF returns the accumulator and flags as a 16-bit pair.
func (mc *CPU) AF() uint16 {
	return uint16(mc.A)<<8 | uint16(mc.Status.Value())
}

// SetAF sets the accumulator and flags from a 16-bit pair.
func (mc *CPU) SetAF(v uint16) {
	mc.A = uint8(v >> 8)
	mc.Status.Load(uint8(v))
}

// BC returns the B and C registers as a 16-bit pair.
func (mc *CPU) BC() uint16 {
	return uint16(mc.B)<<8 | uint16(mc.C)
}

// SetBC sets the B and C registers from a 16-bit pair.
func (mc *CPU) SetBC(v uint16) {
	mc.B = uint8(v >> 8)
	mc.C = uint8(v)
}

// DE returns the D and E registers as a 16-bit pair.
func (mc *CPU) DE() uint16 {
	return uint16(mc.D)<<8 | uint16(mc.E)
}

// SetDE sets the D and E registers from a 16-bit pair.
func (mc *CPU) SetDE(v uint16) {
	mc.D = uint8(v >> 8)
	mc.E = uint8(v)
}

// HL returns the H and L registers as a 16-bit pair.
func (mc *CPU) HL() uint16 {
	return uint16(mc.H)<<8 | uint16(mc.L)
}

// SetHL sets the H and L registers from a 16-bit pair.
func (mc *CPU) SetHL(v uint16) {
	mc.H = uint8(v >> 8)
	mc.L = uint8(v)
}

func (mc *CPU) String() string {
	return fmt.Sprintf("AF=%04x BC=%04x DE=%04x HL=%04x SP=%04x PC=%04x [%s]",
		mc.AF(), mc.BC(), mc.DE(), mc.HL(), mc.SP, mc.PC, mc.Status)
}
