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

// Package ppu implements the picture processor. The processor is stepped one
// dot at a time: a scanline is 456 dots, a frame is 154 scanlines (144
// visible plus 10 of vertical blank), for 70224 dots per frame.
//
// Completed frames are handed to registered display.Renderer instances on
// the scanline wrap from 153 back to 0.
package ppu

import (
	"github.com/sevenholm/dotmatrix/display"
	"github.com/sevenholm/dotmatrix/hardware/interrupts"
	"github.com/sevenholm/dotmatrix/hardware/memory/addresses"
)

// frame geometry
const (
	dotsPerLine  = 456
	numScanlines = 154

	// dots at which the phases of a visible scanline begin
	transferInitDot = 80
	transferDot     = 81
	postTransferDot = 241
	hblankInitDot   = 252
)

// LCD control register bits.
const (
	LCDCDisplayEnable  = 0x80
	LCDCWindowTileMap  = 0x40
	LCDCWindowEnable   = 0x20
	LCDCTileData       = 0x10
	LCDCBGTileMap      = 0x08
	LCDCSpriteSize     = 0x04
	LCDCSpriteEnable   = 0x02
	LCDCBGWindowEnable = 0x01
)

// Mode is the public LCD mode, as reported in the low two bits of STAT.
type Mode uint8

// List of valid Mode values.
const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMSearch
	ModeTransfer
)

// STAT interrupt select bits.
const (
	statLYCInterrupt   = 0x40
	statMode2Interrupt = 0x20
	statMode1Interrupt = 0x10
	statMode0Interrupt = 0x08
	statLYCFlag        = 0x04
)

// Memory is the address space the processor fetches tile and sprite data
// from and publishes its registers to.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
}

// PPU is the picture processor.
type PPU struct {
	mem Memory
	irq *interrupts.Interrupts

	scanline int
	dot      int

	// the STAT interrupt fires on the rising edge of the composite
	// condition, not while it holds
	statCondMet bool

	fifo    pixelFIFO
	fetcher fetcher

	// sprites selected for the current scanline, at most 10
	sprites []sprite

	// window state. the window keeps its own scanline counter which only
	// advances on lines the window was actually drawn on
	windowLine int
	inWindow   bool
	drewWindow bool

	frame    display.Frame
	frameNum int

	renderers []display.Renderer
}

// NewPPU is the preferred method of initialisation for the PPU type.
func NewPPU(mem Memory, irq *interrupts.Interrupts) *PPU {
	return &PPU{
		mem: mem,
		irq: irq,
	}
}

// AddRenderer registers a sink for completed frames.
func (p *PPU) AddRenderer(r display.Renderer) {
	p.renderers = append(p.renderers, r)
}

// Reset the processor to the state it has at the top-left of a frame.
func (p *PPU) Reset() {
	p.scanline = 0
	p.dot = 0
	p.statCondMet = false
	p.fifo.clear()
	p.sprites = nil
	p.windowLine = 0
	p.inWindow = false
	p.drewWindow = false
	p.frame = display.Frame{}
}

// Scanline returns the line currently being processed, as reported by LY.
func (p *PPU) Scanline() int {
	return p.scanline
}

// FrameNum returns the number of completed frames.
func (p *PPU) FrameNum() int {
	return p.frameNum
}

// CurrentMode returns the mode for the current dot.
func (p *PPU) CurrentMode() Mode {
	if p.scanline >= display.Height {
		return ModeVBlank
	}
	switch {
	case p.dot < transferInitDot:
		return ModeOAMSearch
	case p.dot < hblankInitDot:
		return ModeTransfer
	}
	return ModeHBlank
}

// Step advances the processor by the given number of clock cycles. One
// clock cycle is one dot.
func (p *PPU) Step(cycles int) error {
	for i := 0; i < cycles; i++ {
		if err := p.cycle(); err != nil {
			return err
		}
	}
	return nil
}

func (p *PPU) cycle() error {
	p.updateRegisters()
	p.checkSTATInterrupt()

	if p.scanline < display.Height {
		switch {
		case p.dot == transferInitDot:
			p.beginLine()

		case p.dot >= transferDot && p.dot < postTransferDot:
			p.drawPixel(p.dot - transferDot)

		case p.dot == hblankInitDot:
			p.endLine()
		}
	} else if p.scanline == display.Height && p.dot == 0 {
		p.irq.Raise(interrupts.VBlank)
	}

	return p.nextDot()
}

// updateRegisters publishes LY and the read-only parts of STAT.
func (p *PPU) updateRegisters() {
	coincidence := uint8(0)
	if uint8(p.scanline) == p.mem.Read(addresses.LYC) {
		coincidence = statLYCFlag
	}

	stat := p.mem.Read(addresses.STAT)
	p.mem.Write(addresses.STAT, stat&0xf8|coincidence|uint8(p.CurrentMode()))

	p.mem.Write(addresses.LY, uint8(p.scanline))
}

// checkSTATInterrupt requests the LCD status interrupt when the composite
// of the four selectable conditions goes from false to true.
func (p *PPU) checkSTATInterrupt() {
	stat := p.mem.Read(addresses.STAT)
	mode := Mode(stat & 0x03)

	met := stat&statLYCInterrupt != 0 && stat&statLYCFlag != 0
	met = met || (stat&statMode2Interrupt != 0 && mode == ModeOAMSearch)
	met = met || (stat&statMode1Interrupt != 0 && mode == ModeVBlank)
	met = met || (stat&statMode0Interrupt != 0 && mode == ModeHBlank)

	if met && !p.statCondMet {
		p.irq.Raise(interrupts.LCDStat)
	}
	p.statCondMet = met
}

// beginLine prepares the background fetcher and the sprite list for the
// pixel transfer phase of the current scanline.
func (p *PPU) beginLine() {
	lcdc := p.mem.Read(addresses.LCDC)

	p.selectSprites(lcdc)

	p.fifo.clear()
	p.inWindow = false

	mapAddr := uint16(0x9800)
	if lcdc&LCDCBGTileMap != 0 {
		mapAddr = 0x9c00
	}

	scrollX := p.mem.Read(addresses.SCX)
	scrollY := p.mem.Read(addresses.SCY)
	p.fetcher.beginBackground(mapAddr, lcdc&LCDCTileData != 0, scrollX, scrollY, uint8(p.scanline))

	// drop the sub-tile part of the horizontal scroll
	p.fifo.fill(&p.fetcher, p.mem)
	p.fifo.discard(int(scrollX % 8))
}

// drawPixel produces the pixel at the given x position of the current
// scanline.
func (p *PPU) drawPixel(x int) {
	lcdc := p.mem.Read(addresses.LCDC)

	// the window replaces the background fetcher from its left edge
	if !p.inWindow && p.windowAt(lcdc, x) {
		p.inWindow = true
		p.drewWindow = true

		mapAddr := uint16(0x9800)
		if lcdc&LCDCWindowTileMap != 0 {
			mapAddr = 0x9c00
		}

		p.fifo.clear()
		p.fetcher.beginWindow(mapAddr, lcdc&LCDCTileData != 0, uint8(p.windowLine))
	}

	p.fifo.fill(&p.fetcher, p.mem)
	bg := p.fifo.pop()

	if lcdc&LCDCBGWindowEnable == 0 {
		bg = 0
	}

	color, palette := p.choosePixel(lcdc, x, bg)
	shade := (p.mem.Read(palette) >> (color * 2)) & 0x03

	p.frame[p.scanline][x] = shade
}

// choosePixel arbitrates between the background pixel and any sprite pixel
// at the given x position. It returns the winning colour index and the
// address of the palette register it is translated through.
func (p *PPU) choosePixel(lcdc uint8, x int, bg uint8) (uint8, uint16) {
	if lcdc&LCDCSpriteEnable == 0 {
		return bg, addresses.BGP
	}

	sp, ok := p.spriteAt(x)
	if !ok || sp.color == 0 {
		return bg, addresses.BGP
	}
	if sp.behindBG && bg != 0 {
		return bg, addresses.BGP
	}

	if sp.palette == 1 {
		return sp.color, addresses.OBP1
	}
	return sp.color, addresses.OBP0
}

// windowAt reports whether the window covers the given x position on the
// current scanline.
func (p *PPU) windowAt(lcdc uint8, x int) bool {
	if lcdc&LCDCWindowEnable == 0 {
		return false
	}
	if p.scanline < int(p.mem.Read(addresses.WY)) {
		return false
	}
	return x >= int(p.mem.Read(addresses.WX))-7
}

func (p *PPU) endLine() {
	p.fifo.clear()
	p.sprites = nil

	if p.drewWindow {
		p.windowLine++
		p.drewWindow = false
	}
}

// nextDot advances the dot clock, wrapping into new scanlines and frames.
func (p *PPU) nextDot() error {
	p.dot++
	if p.dot < dotsPerLine {
		return nil
	}

	p.dot = 0
	p.scanline++
	if p.scanline < numScanlines {
		return nil
	}

	// frame complete
	p.scanline = 0
	p.windowLine = 0
	if err := p.publishFrame(); err != nil {
		return err
	}
	p.frame = display.Frame{}

	return nil
}

func (p *PPU) publishFrame() error {
	p.frameNum++
	for _, r := range p.renderers {
		if err := r.NewFrame(p.frameNum, &p.frame); err != nil {
			return err
		}
	}
	return nil
}
