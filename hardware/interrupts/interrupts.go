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

// Package interrupts implements the enable and request registers shared by
// every interrupt source in the DMG, along with the fixed priority order used
// when more than one source is pending.
package interrupts

import "fmt"

// Source identifies one of the five interrupt sources. The order of the
// declarations is the priority order, highest first.
type Source int

// List of interrupt sources.
const (
	VBlank Source = iota
	LCDStat
	Timer
	Serial
	Joypad
	NumSources
)

func (src Source) String() string {
	switch src {
	case VBlank:
		return "VBLANK"
	case LCDStat:
		return "LCDSTAT"
	case Timer:
		return "TIMER"
	case Serial:
		return "SERIAL"
	case Joypad:
		return "JOYPAD"
	}
	panic("unknown interrupt source")
}

// Mask returns the bit for the source as it appears in the enable and request
// registers.
func (src Source) Mask() uint8 {
	return 1 << uint(src)
}

// Vector returns the address execution jumps to when the source is serviced.
func (src Source) Vector() uint16 {
	return 0x0040 + uint16(src)*0x0008
}

// Interrupts is the single instance of the enable/request state, shared by
// the CPU, PPU, timer and joypad. Only the low five bits of each register are
// meaningful.
type Interrupts struct {
	// enable is the IE register (0xffff). request is the IF register (0xff0f)
	Enable  uint8
	Request uint8
}

// NewInterrupts is the preferred method of initialisation for the Interrupts
// type.
func NewInterrupts() *Interrupts {
	return &Interrupts{}
}

func (irq *Interrupts) String() string {
	return fmt.Sprintf("IE=%#02x IF=%#02x", irq.Enable, irq.Request)
}

// Raise sets the request bit for the source. Hardware and software (through
// the IF register) use the same path.
func (irq *Interrupts) Raise(src Source) {
	irq.Request |= src.Mask()
}

// Acknowledge clears the request bit for the source.
func (irq *Interrupts) Acknowledge(src Source) {
	irq.Request &^= src.Mask()
}

// Pending returns the highest priority source that is both requested and
// enabled. The second return value is false if there is no such source.
func (irq *Interrupts) Pending() (Source, bool) {
	p := irq.Request & irq.Enable & 0x1f
	if p == 0 {
		return 0, false
	}

	for src := VBlank; src < NumSources; src++ {
		if p&src.Mask() != 0 {
			return src, true
		}
	}

	// can't happen. the loop above covers every bit in the mask
	panic("pending interrupt bits exhausted")
}
