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

package ppu

// fetcher walks a tile map and produces background or window pixels eight
// at a time. tileX wraps at 32 so the background scrolls around the map.
type fetcher struct {
	mapAddr  uint16
	unsigned bool
	tileX    uint8
	tileY    uint8
	subY     uint8
}

// beginBackground positions the fetcher for one scanline of the background
// layer.
func (f *fetcher) beginBackground(mapAddr uint16, unsigned bool, scrollX uint8, scrollY uint8, scanline uint8) {
	f.mapAddr = mapAddr
	f.unsigned = unsigned
	f.tileX = scrollX / 8
	f.tileY = (scanline + scrollY) / 8
	f.subY = (scanline + scrollY) % 8
}

// beginWindow positions the fetcher for one scanline of the window layer.
// The window has its own line counter and always starts at its left edge.
func (f *fetcher) beginWindow(mapAddr uint16, unsigned bool, windowLine uint8) {
	f.mapAddr = mapAddr
	f.unsigned = unsigned
	f.tileX = 0
	f.tileY = windowLine / 8
	f.subY = windowLine % 8
}

// fetchPixels decodes the next tile row into eight colour indices and
// advances to the next tile.
func (f *fetcher) fetchPixels(mem Memory) [8]uint8 {
	tileID := mem.Read(f.mapAddr + uint16(f.tileY)*32 + uint16(f.tileX))

	// the unsigned addressing mode bases tiles at 0x8000; the signed mode
	// treats the tile number as an offset from 0x9000
	var tileAddr uint16
	if f.unsigned {
		tileAddr = 0x8000 + uint16(tileID)*16
	} else {
		tileAddr = uint16(0x9000 + int(int8(tileID))*16)
	}

	rowAddr := tileAddr + uint16(f.subY)*2
	pixels := decodeTileRow(mem.Read(rowAddr), mem.Read(rowAddr+1))

	f.tileX = (f.tileX + 1) % 32
	return pixels
}

// decodeTileRow combines the two planes of a tile row. The low plane holds
// bit 0 of each colour index, the high plane bit 1, leftmost pixel in the
// most significant bit.
func decodeTileRow(low uint8, high uint8) [8]uint8 {
	var pixels [8]uint8
	for i := 0; i < 8; i++ {
		bit := uint(7 - i)
		pixels[i] = ((high>>bit)&0x01)<<1 | (low>>bit)&0x01
	}
	return pixels
}
