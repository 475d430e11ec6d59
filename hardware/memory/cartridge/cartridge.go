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

// Package cartridge represents the cartridge-side of the memory map: the ROM
// image itself plus the bank controller that remaps the two ROM windows and
// the external RAM window onto the larger backing storage.
//
// Loading a cartridge selects the mapper implementation from the
// cartridge-type byte in the header. Only the "ROM only" type and the first
// bank-controller family (in its mode 0) are supported; anything else is
// rejected with InvalidROM.
package cartridge

import (
	"fmt"
	"strings"

	"github.com/sevenholm/dotmatrix/curated"
	"github.com/sevenholm/dotmatrix/hardware/memory/addresses"
)

// InvalidROM is the error pattern returned when a cartridge image cannot be
// used: the image is shorter than its header declares, or the cartridge-type
// byte is not one we emulate.
const InvalidROM = "invalid ROM: %v"

// the size of one ROM bank. the fixed window and the switchable window are
// each this size
const bankSize = 0x4000

// mapper is the cartridge-side address logic. addresses given to a mapper are
// bus addresses, not offsets.
type mapper interface {
	fmt.Stringer
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
}

// Cartridge is the loaded ROM image and its bank controller.
type Cartridge struct {
	Title string

	mapper mapper
}

// NewCartridge loads a cartridge image. The cartridge-type, ROM-size and
// RAM-size bytes in the header select and size the mapper. Returns an
// InvalidROM error if the image is unusable.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data) < bankSize {
		return nil, curated.Errorf(InvalidROM, fmt.Sprintf("image too short for header (%d bytes)", len(data)))
	}

	cart := &Cartridge{
		Title: readTitle(data),
	}

	// the ROM-size byte is a shift count. values above 0x08 (8MB) do not
	// appear on any real cartridge
	if data[addresses.CartROMSize] > 0x08 {
		return nil, curated.Errorf(InvalidROM,
			fmt.Sprintf("unrecognised ROM size byte (%#02x)", data[addresses.CartROMSize]))
	}

	// the declared ROM size must not exceed the actual length of the image
	romSize := bankSize * 2 << data[addresses.CartROMSize]
	if romSize > len(data) {
		return nil, curated.Errorf(InvalidROM,
			fmt.Sprintf("declared ROM size (%d) exceeds image length (%d)", romSize, len(data)))
	}

	ramSize, err := ramSize(data[addresses.CartRAMSize])
	if err != nil {
		return nil, err
	}

	switch data[addresses.CartType] {
	case 0x00:
		cart.mapper = newROM(data[:romSize])
	case 0x01, 0x02, 0x03:
		cart.mapper = newMBC1(data[:romSize], ramSize)
	default:
		return nil, curated.Errorf(InvalidROM,
			fmt.Sprintf("unrecognised cartridge type (%#02x)", data[addresses.CartType]))
	}

	return cart, nil
}

func (cart *Cartridge) String() string {
	return fmt.Sprintf("%s [%s]", cart.Title, cart.mapper.String())
}

// Read a byte through the bank controller. Covers both ROM windows and the
// external RAM window.
func (cart *Cartridge) Read(addr uint16) uint8 {
	return cart.mapper.Read(addr)
}

// Write a byte through the bank controller. Writes into the ROM windows are
// interpreted as bank-controller commands; no data store occurs.
func (cart *Cartridge) Write(addr uint16, data uint8) {
	cart.mapper.Write(addr, data)
}

func readTitle(data []byte) string {
	title := strings.Builder{}
	for _, b := range data[addresses.CartTitle : addresses.CartTitle+16] {
		if b == 0x00 {
			break
		}
		title.WriteByte(b)
	}
	return title.String()
}

func ramSize(code uint8) (int, error) {
	switch code {
	case 0x00:
		return 0, nil
	case 0x01:
		return 1 << 11, nil
	case 0x02:
		return 1 << 13, nil
	case 0x03:
		return 1 << 15, nil
	case 0x04:
		return 1 << 17, nil
	case 0x05:
		return 1 << 16, nil
	}
	return 0, curated.Errorf(InvalidROM, fmt.Sprintf("unrecognised RAM size code (%#02x)", code))
}
