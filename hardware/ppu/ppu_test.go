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

package ppu_test

import (
	"testing"

	"github.com/sevenholm/dotmatrix/display"
	"github.com/sevenholm/dotmatrix/hardware/interrupts"
	"github.com/sevenholm/dotmatrix/hardware/memory/addresses"
	"github.com/sevenholm/dotmatrix/hardware/ppu"
)

const frameCycles = 456 * 154

type mockMem struct {
	internal []uint8
}

func newMockMem() *mockMem {
	return &mockMem{internal: make([]uint8, 0x10000)}
}

func (mem mockMem) Read(addr uint16) uint8 {
	return mem.internal[addr]
}

func (mem *mockMem) Write(addr uint16, data uint8) {
	mem.internal[addr] = data
}

// capture keeps a copy of the most recent completed frame.
type capture struct {
	frames int
	last   display.Frame
}

func (c *capture) NewFrame(_ int, frame *display.Frame) error {
	c.frames++
	c.last = *frame
	return nil
}

// solidTile fills tile 1 with colour index 3 so that anything drawn with it
// is visible against the zeroed tile 0.
func solidTile(mem *mockMem) {
	for i := 0x8010; i < 0x8020; i++ {
		mem.internal[i] = 0xff
	}
}

func step(t *testing.T, p *ppu.PPU, cycles int) {
	t.Helper()
	if err := p.Step(cycles); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFrameTiming(t *testing.T) {
	mem := newMockMem()
	irq := interrupts.NewInterrupts()
	p := ppu.NewPPU(mem, irq)

	scr := &capture{}
	p.AddRenderer(scr)

	// one dot short of a full frame
	step(t, p, frameCycles-1)
	if scr.frames != 0 {
		t.Errorf("frame completed too early")
	}

	step(t, p, 1)
	if scr.frames != 1 {
		t.Errorf("frames=%d, expected exactly 1 after %d cycles", scr.frames, frameCycles)
	}
	if p.Scanline() != 0 {
		t.Errorf("scanline=%d, expected 0 at the top of a frame", p.Scanline())
	}

	step(t, p, frameCycles)
	if scr.frames != 2 {
		t.Errorf("frames=%d, expected 2", scr.frames)
	}
}

func TestScanlineAdvance(t *testing.T) {
	mem := newMockMem()
	p := ppu.NewPPU(mem, interrupts.NewInterrupts())

	step(t, p, 456)
	if p.Scanline() != 1 {
		t.Errorf("scanline=%d, expected 1 after 456 cycles", p.Scanline())
	}
	if mem.Read(addresses.LY) != 1 {
		t.Errorf("LY=%d, expected 1", mem.Read(addresses.LY))
	}
}

func TestModeSequence(t *testing.T) {
	mem := newMockMem()
	p := ppu.NewPPU(mem, interrupts.NewInterrupts())

	if p.CurrentMode() != ppu.ModeOAMSearch {
		t.Errorf("mode=%d, expected OAM search at the start of a line", p.CurrentMode())
	}

	step(t, p, 100)
	if p.CurrentMode() != ppu.ModeTransfer {
		t.Errorf("mode=%d, expected pixel transfer at dot 100", p.CurrentMode())
	}

	step(t, p, 200)
	if p.CurrentMode() != ppu.ModeHBlank {
		t.Errorf("mode=%d, expected h-blank at dot 300", p.CurrentMode())
	}

	step(t, p, 456*144-300)
	if p.CurrentMode() != ppu.ModeVBlank {
		t.Errorf("mode=%d, expected v-blank at line 144", p.CurrentMode())
	}
}

func TestVBlankInterrupt(t *testing.T) {
	mem := newMockMem()
	irq := interrupts.NewInterrupts()
	p := ppu.NewPPU(mem, irq)

	step(t, p, 456*144)
	if irq.Request&0x01 != 0 {
		t.Errorf("v-blank requested before line 144 completed its first dot")
	}

	step(t, p, 1)
	if irq.Request&0x01 == 0 {
		t.Errorf("v-blank interrupt not requested at line 144")
	}
}

func TestLYCInterrupt(t *testing.T) {
	mem := newMockMem()
	irq := interrupts.NewInterrupts()
	p := ppu.NewPPU(mem, irq)

	mem.Write(addresses.LYC, 10)
	mem.Write(addresses.STAT, 0x40)

	step(t, p, 456*10)
	if irq.Request&0x02 != 0 {
		t.Errorf("LYC interrupt requested before the coincidence")
	}

	step(t, p, 1)
	if irq.Request&0x02 == 0 {
		t.Errorf("LYC interrupt not requested on the coincidence")
	}

	// the interrupt is edge triggered. holding the condition does not
	// request again
	irq.Request = 0
	step(t, p, 100)
	if irq.Request&0x02 != 0 {
		t.Errorf("LYC interrupt requested while the condition held")
	}
}

func TestSTATVBlankInterrupt(t *testing.T) {
	mem := newMockMem()
	irq := interrupts.NewInterrupts()
	p := ppu.NewPPU(mem, irq)

	// select the mode 1 condition
	mem.Write(addresses.STAT, 0x10)

	step(t, p, 456*144)
	if irq.Request&0x02 != 0 {
		t.Errorf("STAT interrupt requested before v-blank was entered")
	}

	step(t, p, 1)
	if irq.Request&0x02 == 0 {
		t.Errorf("STAT interrupt not requested on v-blank entry")
	}

	// the condition holds for the whole of v-blank without re-requesting
	irq.Request = 0
	step(t, p, 456*9)
	if irq.Request&0x02 != 0 {
		t.Errorf("STAT interrupt requested while v-blank held")
	}
}

func TestSTATOAMSearchInterrupt(t *testing.T) {
	mem := newMockMem()
	irq := interrupts.NewInterrupts()
	p := ppu.NewPPU(mem, irq)

	// select the mode 2 condition. the first dot of the frame is already in
	// OAM search so the edge is immediate
	mem.Write(addresses.STAT, 0x20)

	step(t, p, 1)
	if irq.Request&0x02 == 0 {
		t.Errorf("STAT interrupt not requested on OAM search entry")
	}

	// no re-request while the search phase holds
	irq.Request = 0
	step(t, p, 455)
	if irq.Request&0x02 != 0 {
		t.Errorf("STAT interrupt requested again within the scanline")
	}

	// the condition re-arms for the next scanline's search phase
	step(t, p, 1)
	if irq.Request&0x02 == 0 {
		t.Errorf("STAT interrupt not requested on the next OAM search entry")
	}
}

func TestBackground(t *testing.T) {
	mem := newMockMem()
	p := ppu.NewPPU(mem, interrupts.NewInterrupts())

	scr := &capture{}
	p.AddRenderer(scr)

	solidTile(mem)
	mem.Write(0x9800, 0x01) // top-left map entry uses the solid tile
	mem.Write(addresses.LCDC, 0x91)
	mem.Write(addresses.BGP, 0xe4) // identity palette

	step(t, p, frameCycles)

	if scr.last[0][0] != 3 {
		t.Errorf("pixel (0,0)=%d, expected the solid tile", scr.last[0][0])
	}
	if scr.last[0][8] != 0 {
		t.Errorf("pixel (8,0)=%d, expected the empty tile", scr.last[0][8])
	}
	if scr.last[8][0] != 0 {
		t.Errorf("pixel (0,8)=%d, expected the empty tile", scr.last[8][0])
	}
}

func TestBackgroundScroll(t *testing.T) {
	mem := newMockMem()
	p := ppu.NewPPU(mem, interrupts.NewInterrupts())

	scr := &capture{}
	p.AddRenderer(scr)

	solidTile(mem)
	mem.Write(0x9800, 0x01)
	mem.Write(addresses.LCDC, 0x91)
	mem.Write(addresses.BGP, 0xe4)
	mem.Write(addresses.SCX, 4)

	step(t, p, frameCycles)

	// scrolling right by 4 moves the tile boundary left by 4
	if scr.last[0][3] != 3 {
		t.Errorf("pixel (3,0)=%d, expected the solid tile", scr.last[0][3])
	}
	if scr.last[0][4] != 0 {
		t.Errorf("pixel (4,0)=%d, expected the empty tile", scr.last[0][4])
	}
}

func TestSprites(t *testing.T) {
	mem := newMockMem()
	p := ppu.NewPPU(mem, interrupts.NewInterrupts())

	scr := &capture{}
	p.AddRenderer(scr)

	solidTile(mem)

	// one sprite at the top-left corner
	mem.Write(addresses.OAMStart, 16)   // y
	mem.Write(addresses.OAMStart+1, 8)  // x
	mem.Write(addresses.OAMStart+2, 1)  // tile
	mem.Write(addresses.OAMStart+3, 0)  // flags

	mem.Write(addresses.LCDC, 0x93) // sprites on, background on
	mem.Write(addresses.BGP, 0xe4)
	mem.Write(addresses.OBP0, 0xe4)

	step(t, p, frameCycles)

	if scr.last[0][0] != 3 {
		t.Errorf("pixel (0,0)=%d, expected the sprite", scr.last[0][0])
	}
	if scr.last[0][8] != 0 {
		t.Errorf("pixel (8,0)=%d, expected no sprite", scr.last[0][8])
	}
	if scr.last[8][0] != 0 {
		t.Errorf("pixel (0,8)=%d, expected no sprite", scr.last[8][0])
	}
}

func TestSpriteLimit(t *testing.T) {
	mem := newMockMem()
	p := ppu.NewPPU(mem, interrupts.NewInterrupts())

	scr := &capture{}
	p.AddRenderer(scr)

	solidTile(mem)

	// twelve sprites on the one line. only the first ten appear
	for i := 0; i < 12; i++ {
		addr := addresses.OAMStart + uint16(i)*4
		mem.Write(addr, 16)
		mem.Write(addr+1, uint8(8+i*8))
		mem.Write(addr+2, 1)
		mem.Write(addr+3, 0)
	}

	mem.Write(addresses.LCDC, 0x93)
	mem.Write(addresses.OBP0, 0xe4)

	step(t, p, frameCycles)

	if scr.last[0][9*8] != 3 {
		t.Errorf("tenth sprite missing")
	}
	if scr.last[0][10*8] != 0 {
		t.Errorf("eleventh sprite drawn past the ten sprite limit")
	}
}

func TestWindow(t *testing.T) {
	mem := newMockMem()
	p := ppu.NewPPU(mem, interrupts.NewInterrupts())

	scr := &capture{}
	p.AddRenderer(scr)

	solidTile(mem)

	// window map uses the solid tile everywhere
	for addr := 0x9c00; addr < 0x9c00+32*32; addr++ {
		mem.internal[addr] = 0x01
	}

	mem.Write(addresses.LCDC, 0xf1) // window on, alternate window map
	mem.Write(addresses.BGP, 0xe4)
	mem.Write(addresses.WY, 72)
	mem.Write(addresses.WX, 87) // left edge at x=80

	step(t, p, frameCycles)

	if scr.last[71][100] != 0 {
		t.Errorf("window drawn above WY")
	}
	if scr.last[72][79] != 0 {
		t.Errorf("window drawn left of WX")
	}
	if scr.last[72][80] != 3 {
		t.Errorf("window not drawn at its top-left corner")
	}
	if scr.last[143][159] != 3 {
		t.Errorf("window not drawn at the bottom-right corner")
	}
}
