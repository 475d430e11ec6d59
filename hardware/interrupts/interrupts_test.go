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

package interrupts_test

import (
	"testing"

	"github.com/sevenholm/dotmatrix/hardware/interrupts"
)

func TestVectors(t *testing.T) {
	expected := map[interrupts.Source]uint16{
		interrupts.VBlank:  0x0040,
		interrupts.LCDStat: 0x0048,
		interrupts.Timer:   0x0050,
		interrupts.Serial:  0x0058,
		interrupts.Joypad:  0x0060,
	}
	for src, addr := range expected {
		if src.Vector() != addr {
			t.Errorf("wrong vector for %s: %#04x", src, src.Vector())
		}
	}
}

func TestPending(t *testing.T) {
	irq := interrupts.NewInterrupts()

	if _, ok := irq.Pending(); ok {
		t.Errorf("no interrupt should be pending on a fresh instance")
	}

	// requested but not enabled
	irq.Raise(interrupts.Timer)
	if _, ok := irq.Pending(); ok {
		t.Errorf("interrupt pending despite not being enabled")
	}

	irq.Enable = interrupts.Timer.Mask()
	src, ok := irq.Pending()
	if !ok || src != interrupts.Timer {
		t.Errorf("expected pending timer interrupt, got %v (%t)", src, ok)
	}

	irq.Acknowledge(interrupts.Timer)
	if _, ok := irq.Pending(); ok {
		t.Errorf("interrupt still pending after acknowledge")
	}
}

func TestPriority(t *testing.T) {
	irq := interrupts.NewInterrupts()
	irq.Enable = 0x1f

	// timer and vblank pending simultaneously. vblank has priority
	irq.Raise(interrupts.Timer)
	irq.Raise(interrupts.VBlank)

	src, ok := irq.Pending()
	if !ok || src != interrupts.VBlank {
		t.Errorf("expected vblank to win priority, got %v", src)
	}

	irq.Acknowledge(interrupts.VBlank)
	src, ok = irq.Pending()
	if !ok || src != interrupts.Timer {
		t.Errorf("expected timer after vblank acknowledged, got %v", src)
	}
}
