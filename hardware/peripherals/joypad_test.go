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

package peripherals_test

import (
	"testing"

	"github.com/sevenholm/dotmatrix/hardware/interrupts"
	"github.com/sevenholm/dotmatrix/hardware/peripherals"
)

func TestJoypadMatrix(t *testing.T) {
	irq := interrupts.NewInterrupts()
	joy := peripherals.NewJoypad(irq)

	// nothing selected, nothing pressed
	if v := joy.ReadRegister(); v != 0xff {
		t.Errorf("register=%#02x, expected 0xff", v)
	}

	joy.SetButton(peripherals.ButtonStart, true)
	joy.SetButton(peripherals.ButtonLeft, true)

	// buttons only read low on their selected row
	joy.WriteRegister(0x10) // select the action row
	if v := joy.ReadRegister(); v != 0xd7 {
		t.Errorf("register=%#02x, expected start (bit 3) low", v)
	}

	joy.WriteRegister(0x20) // select the direction row
	if v := joy.ReadRegister(); v != 0xed {
		t.Errorf("register=%#02x, expected left (bit 1) low", v)
	}

	joy.SetButton(peripherals.ButtonStart, false)
	joy.WriteRegister(0x10)
	if v := joy.ReadRegister(); v != 0xdf {
		t.Errorf("register=%#02x, expected no action buttons low", v)
	}
}

func TestJoypadInterrupt(t *testing.T) {
	irq := interrupts.NewInterrupts()
	joy := peripherals.NewJoypad(irq)

	joy.SetButton(peripherals.ButtonA, true)
	if irq.Request&0x10 == 0 {
		t.Errorf("joypad interrupt not requested on press")
	}

	// holding and releasing do not request again
	irq.Request = 0
	joy.SetButton(peripherals.ButtonA, true)
	joy.SetButton(peripherals.ButtonA, false)
	if irq.Request != 0 {
		t.Errorf("joypad interrupt requested without a new press")
	}
}
