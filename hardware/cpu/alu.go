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

// the arithmetic/logic helpers below operate on the accumulator and the
// status register. half-carry is out of bit 3 for 8-bit operations and out
// of bit 11 for the 16-bit adds.

func (mc *CPU) add8(v uint8, withCarry bool) {
	c := uint16(0)
	if withCarry && mc.Status.Carry {
		c = 1
	}
	r := uint16(mc.A) + uint16(v) + c
	mc.Status.Zero = uint8(r) == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = (mc.A&0x0f)+(v&0x0f)+uint8(c) > 0x0f
	mc.Status.Carry = r > 0xff
	mc.A = uint8(r)
}

// sub8 implements SUB/SBC and, when apply is false, CP.
func (mc *CPU) sub8(v uint8, withCarry bool, apply bool) {
	c := uint16(0)
	if withCarry && mc.Status.Carry {
		c = 1
	}
	r := uint16(mc.A) - uint16(v) - c
	mc.Status.Zero = uint8(r) == 0
	mc.Status.Subtract = true
	mc.Status.HalfCarry = uint16(mc.A&0x0f) < uint16(v&0x0f)+c
	mc.Status.Carry = uint16(mc.A) < uint16(v)+c
	if apply {
		mc.A = uint8(r)
	}
}

func (mc *CPU) and8(v uint8) {
	mc.A &= v
	mc.Status.Zero = mc.A == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = true
	mc.Status.Carry = false
}

func (mc *CPU) or8(v uint8) {
	mc.A |= v
	mc.Status.Zero = mc.A == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = false
	mc.Status.Carry = false
}

func (mc *CPU) xor8(v uint8) {
	mc.A ^= v
	mc.Status.Zero = mc.A == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = false
	mc.Status.Carry = false
}

// inc8 and dec8 leave the carry flag untouched.
func (mc *CPU) inc8(v uint8) uint8 {
	r := v + 1
	mc.Status.Zero = r == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = v&0x0f == 0x0f
	return r
}

func (mc *CPU) dec8(v uint8) uint8 {
	r := v - 1
	mc.Status.Zero = r == 0
	mc.Status.Subtract = true
	mc.Status.HalfCarry = v&0x0f == 0x00
	return r
}

// addHL leaves the zero flag untouched.
func (mc *CPU) addHL(v uint16) {
	hl := mc.HL()
	r := uint32(hl) + uint32(v)
	mc.Status.Subtract = false
	mc.Status.HalfCarry = (hl&0x0fff)+(v&0x0fff) > 0x0fff
	mc.Status.Carry = r > 0xffff
	mc.SetHL(uint16(r))
}

// addSP implements the signed-offset addition shared by ADD SP,r8 and
// LD HL,SP+r8. carry and half-carry come from the low byte of the addition.
func (mc *CPU) addSP(offset uint8) uint16 {
	r := mc.SP + uint16(int8(offset))
	mc.Status.Zero = false
	mc.Status.Subtract = false
	mc.Status.HalfCarry = (mc.SP&0x0f)+uint16(offset&0x0f) > 0x0f
	mc.Status.Carry = (mc.SP&0xff)+uint16(offset) > 0xff
	return r
}

// daa adjusts the accumulator to valid BCD after an addition or subtraction.
func (mc *CPU) daa() {
	a := mc.A
	if mc.Status.Subtract {
		if mc.Status.HalfCarry {
			a -= 0x06
		}
		if mc.Status.Carry {
			a -= 0x60
		}
	} else {
		if mc.Status.HalfCarry || a&0x0f > 0x09 {
			a += 0x06
		}
		if mc.Status.Carry || mc.A > 0x99 {
			a += 0x60
			mc.Status.Carry = true
		}
	}
	mc.A = a
	mc.Status.Zero = a == 0
	mc.Status.HalfCarry = false
}

// rotate/shift helpers. the accumulator-only forms (RLCA et al) always
// clear the zero flag; the CB-prefixed forms set it from the result.

func (mc *CPU) rlc(v uint8, setZero bool) uint8 {
	r := v<<1 | v>>7
	mc.setShiftFlags(r, v&0x80 == 0x80, setZero)
	return r
}

func (mc *CPU) rrc(v uint8, setZero bool) uint8 {
	r := v>>1 | v<<7
	mc.setShiftFlags(r, v&0x01 == 0x01, setZero)
	return r
}

func (mc *CPU) rl(v uint8, setZero bool) uint8 {
	r := v << 1
	if mc.Status.Carry {
		r |= 0x01
	}
	mc.setShiftFlags(r, v&0x80 == 0x80, setZero)
	return r
}

func (mc *CPU) rr(v uint8, setZero bool) uint8 {
	r := v >> 1
	if mc.Status.Carry {
		r |= 0x80
	}
	mc.setShiftFlags(r, v&0x01 == 0x01, setZero)
	return r
}

func (mc *CPU) sla(v uint8) uint8 {
	r := v << 1
	mc.setShiftFlags(r, v&0x80 == 0x80, true)
	return r
}

func (mc *CPU) sra(v uint8) uint8 {
	r := v>>1 | v&0x80
	mc.setShiftFlags(r, v&0x01 == 0x01, true)
	return r
}

func (mc *CPU) srl(v uint8) uint8 {
	r := v >> 1
	mc.setShiftFlags(r, v&0x01 == 0x01, true)
	return r
}

func (mc *CPU) swap(v uint8) uint8 {
	r := v<<4 | v>>4
	mc.setShiftFlags(r, false, true)
	return r
}

func (mc *CPU) setShiftFlags(result uint8, carry bool, setZero bool) {
	mc.Status.Zero = setZero && result == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = false
	mc.Status.Carry = carry
}

// bit tests the numbered bit. the carry flag is untouched.
func (mc *CPU) bit(n uint8, v uint8) {
	mc.Status.Zero = v&(1<<n) == 0
	mc.Status.Subtract = false
	mc.Status.HalfCarry = true
}
