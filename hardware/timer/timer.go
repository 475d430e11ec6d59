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

// Package timer implements the DIV/TIMA timer unit of the DMG. The timer is
// advanced by the cycle count of the most recent CPU step, never on its own
// clock.
package timer

import (
	"fmt"

	"github.com/sevenholm/dotmatrix/hardware/interrupts"
)

// Interval indicates how often (in CPU cycles) the TIMA counter increases.
// Which interval is in use is selected by the low two bits of the TAC
// register.
type Interval int

// List of valid Interval values.
const (
	TIM1024 Interval = 1024
	TIM16   Interval = 16
	TIM64   Interval = 64
	TIM256  Interval = 256
)

func (in Interval) String() string {
	return fmt.Sprintf("1/%d", int(in))
}

// the divider register always counts at 1/256th of the CPU clock
const divInterval = 256

// TAC register bits.
const (
	tacRateMask = 0x03
	tacEnable   = 0x04
)

// Timer implements the divider and configurable counter registers.
type Timer struct {
	irq *interrupts.Interrupts

	// DIV is the free-running divider register. writing any value through the
	// bus resets it to zero
	DIV uint8

	// TIMA is the configurable-rate counter. on overflow it reloads from TMA
	// and requests the timer interrupt
	TIMA uint8

	// TMA is the modulus register
	TMA uint8

	// TAC is the control register. bit 2 enables TIMA, bits 0-1 select the
	// rate
	TAC uint8

	// cycles accumulated towards the next DIV/TIMA increment
	divCycles  int
	timaCycles int
}

// NewTimer is the preferred method of initialisation for the Timer type.
func NewTimer(irq *interrupts.Interrupts) *Timer {
	return &Timer{irq: irq}
}

func (tmr *Timer) String() string {
	return fmt.Sprintf("DIV=%#02x TIMA=%#02x TMA=%#02x TAC=%#02x",
		tmr.DIV, tmr.TIMA, tmr.TMA, tmr.TAC)
}

// Reset the timer to its power-on state.
func (tmr *Timer) Reset() {
	tmr.DIV = 0
	tmr.TIMA = 0
	tmr.TMA = 0
	tmr.TAC = 0
	tmr.divCycles = 0
	tmr.timaCycles = 0
}

// ResetDIV is called on any bus write to the DIV register.
func (tmr *Timer) ResetDIV() {
	tmr.DIV = 0
	tmr.divCycles = 0
}

// Enabled returns true if the TIMA counter is running.
func (tmr *Timer) Enabled() bool {
	return tmr.TAC&tacEnable == tacEnable
}

// CurrentInterval returns the Interval selected by the TAC register.
func (tmr *Timer) CurrentInterval() Interval {
	switch tmr.TAC & tacRateMask {
	case 0x00:
		return TIM1024
	case 0x01:
		return TIM16
	case 0x02:
		return TIM64
	}
	return TIM256
}

// Step the timer forward by the number of cycles consumed by the most recent
// CPU instruction.
func (tmr *Timer) Step(cycles int) {
	// the divider increments unconditionally
	tmr.divCycles += cycles
	for tmr.divCycles >= divInterval {
		tmr.DIV++
		tmr.divCycles -= divInterval
	}

	if !tmr.Enabled() {
		tmr.TIMA = 0
		tmr.timaCycles = 0
		return
	}

	interval := int(tmr.CurrentInterval())

	tmr.timaCycles += cycles
	for tmr.timaCycles >= interval {
		tmr.timaCycles -= interval

		// overflow reloads from the modulus register and requests the
		// interrupt in the same step. the intermediate zero value is never
		// observable
		if tmr.TIMA == 0xff {
			tmr.TIMA = tmr.TMA
			tmr.irq.Raise(interrupts.Timer)
		} else {
			tmr.TIMA++
		}
	}
}
