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

// Package peripherals holds the devices the player touches. For the DMG
// that is just the joypad. Host input (keyboard, gamepad) is translated to
// SetButton calls by the frontend.
package peripherals

import (
	"github.com/sevenholm/dotmatrix/hardware/interrupts"
)

// Button identifies one of the eight inputs of the joypad.
type Button int

// List of valid Button values.
const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
	NumButtons
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonSelect:
		return "select"
	case ButtonStart:
		return "start"
	case ButtonRight:
		return "right"
	case ButtonLeft:
		return "left"
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	}
	return "unknown"
}

// register select bits. active low, like the button bits
const (
	selectActions    = 0x20
	selectDirections = 0x10
)

// Joypad is the button matrix behind the JOYP register. The register is
// active low throughout: a selected, pressed button reads as 0.
type Joypad struct {
	irq *interrupts.Interrupts

	// the select bits as most recently written
	selects uint8

	pressed [NumButtons]bool
}

// NewJoypad is the preferred method of initialisation for the Joypad type.
func NewJoypad(irq *interrupts.Interrupts) *Joypad {
	return &Joypad{
		irq:     irq,
		selects: selectActions | selectDirections,
	}
}

// SetButton records a button state change. A press requests the joypad
// interrupt.
func (j *Joypad) SetButton(b Button, pressed bool) {
	if b < 0 || b >= NumButtons {
		return
	}

	if pressed && !j.pressed[b] {
		j.irq.Raise(interrupts.Joypad)
	}
	j.pressed[b] = pressed
}

// WriteRegister implements the memory.PortDevice interface. Only the select
// bits are writable.
func (j *Joypad) WriteRegister(data uint8) {
	j.selects = data & (selectActions | selectDirections)
}

// ReadRegister implements the memory.PortDevice interface.
func (j *Joypad) ReadRegister() uint8 {
	// unused bits read high, buttons float high until selected
	v := uint8(0xc0) | j.selects | 0x0f

	if j.selects&selectDirections == 0 {
		v &= ^j.matrixRow(ButtonRight)
	}
	if j.selects&selectActions == 0 {
		v &= ^j.matrixRow(ButtonA)
	}

	return v
}

// matrixRow builds the active-low nibble for the four buttons starting at
// the given one.
func (j *Joypad) matrixRow(first Button) uint8 {
	row := uint8(0)
	for i := 0; i < 4; i++ {
		if j.pressed[first+Button(i)] {
			row |= 1 << i
		}
	}
	return row
}
