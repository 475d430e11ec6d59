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

// Package addresses names every address in the DMG memory map that other
// packages need to refer to. Region boundaries are inclusive.
package addresses

// Region boundaries.
const (
	// fixed ROM bank, including the boot ROM overlay at the bottom
	ROM0Start uint16 = 0x0000
	ROM0End   uint16 = 0x3fff

	// switchable ROM bank window
	ROMBankStart uint16 = 0x4000
	ROMBankEnd   uint16 = 0x7fff

	VRAMStart uint16 = 0x8000
	VRAMEnd   uint16 = 0x9fff

	// switchable external RAM window (cartridge owned)
	RAMBankStart uint16 = 0xa000
	RAMBankEnd   uint16 = 0xbfff

	WRAMStart uint16 = 0xc000
	WRAMEnd   uint16 = 0xdfff

	// echo RAM mirrors WRAM
	EchoStart uint16 = 0xe000
	EchoEnd   uint16 = 0xfdff

	OAMStart uint16 = 0xfe00
	OAMEnd   uint16 = 0xfe9f

	// reads of the unusable area return 255. writes are ignored
	UnusableStart uint16 = 0xfea0
	UnusableEnd   uint16 = 0xfeff

	IOStart uint16 = 0xff00
	IOEnd   uint16 = 0xff7f

	HRAMStart uint16 = 0xff80
	HRAMEnd   uint16 = 0xfffe
)

// The size of the boot ROM overlay. While mounted it occupies addresses
// 0x0000 to 0x00ff.
const BootROMSize = 0x100

// I/O registers.
const (
	// joypad
	JOYP uint16 = 0xff00

	// serial
	SB uint16 = 0xff01
	SC uint16 = 0xff02

	// timer
	DIV  uint16 = 0xff04
	TIMA uint16 = 0xff05
	TMA  uint16 = 0xff06
	TAC  uint16 = 0xff07

	// interrupt request ("flag") and enable registers
	IF uint16 = 0xff0f
	IE uint16 = 0xffff

	// PPU
	LCDC uint16 = 0xff40
	STAT uint16 = 0xff41
	SCY  uint16 = 0xff42
	SCX  uint16 = 0xff43
	LY   uint16 = 0xff44
	LYC  uint16 = 0xff45
	DMA  uint16 = 0xff46
	BGP  uint16 = 0xff47
	OBP0 uint16 = 0xff48
	OBP1 uint16 = 0xff49
	WY   uint16 = 0xff4a
	WX   uint16 = 0xff4b

	// writing a non-zero value unmounts the boot ROM overlay
	BOOT uint16 = 0xff50
)

// Cartridge header offsets, inside the first ROM bank.
const (
	CartTitle   = 0x0134
	CartType    = 0x0147
	CartROMSize = 0x0148
	CartRAMSize = 0x0149
)

// Entry point after the boot ROM has run.
const EntryPoint uint16 = 0x0100
