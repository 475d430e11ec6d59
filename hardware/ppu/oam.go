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

import (
	"sort"

	"github.com/sevenholm/dotmatrix/hardware/memory/addresses"
)

// sprite attribute flags
const (
	spriteBehindBG = 0x80
	spriteYFlip    = 0x40
	spriteXFlip    = 0x20
	spritePalette  = 0x10
)

const numSprites = 40

// no more than ten sprites appear on any one scanline. further sprites are
// dropped in attribute-table order
const maxSpritesPerLine = 10

// sprite is one entry of the object attribute table. the stored positions
// are offset by 16 and 8 so that sprites can hang off the top and left
// edges of the screen.
type sprite struct {
	y     uint8
	x     uint8
	tile  uint8
	flags uint8
}

// spritePixel is a decoded sprite pixel competing for a screen position.
type spritePixel struct {
	color    uint8
	palette  uint8
	behindBG bool
}

// covers reports whether the sprite spans the given screen x position.
func (s sprite) covers(x int) bool {
	sx := int(s.x) - 8
	return x >= sx && x < sx+8
}

// pixelAt decodes the sprite's colour index at the given screen position.
func (s sprite) pixelAt(mem Memory, x int, scanline int, height int) spritePixel {
	row := scanline + 16 - int(s.y)
	if s.flags&spriteYFlip != 0 {
		row = height - 1 - row
	}

	col := x - (int(s.x) - 8)
	if s.flags&spriteXFlip != 0 {
		col = 7 - col
	}

	// tall sprites use an even/odd tile pair. the row index walks into the
	// second tile naturally
	tile := s.tile
	if height == 16 {
		tile &^= 0x01
	}

	rowAddr := 0x8000 + uint16(tile)*16 + uint16(row)*2
	pixels := decodeTileRow(mem.Read(rowAddr), mem.Read(rowAddr+1))

	px := spritePixel{color: pixels[col]}
	if s.flags&spritePalette != 0 {
		px.palette = 1
	}
	px.behindBG = s.flags&spriteBehindBG != 0
	return px
}

func spriteHeight(lcdc uint8) int {
	if lcdc&LCDCSpriteSize != 0 {
		return 16
	}
	return 8
}

// selectSprites gathers the sprites visible on the current scanline, in
// drawing priority order: leftmost first, attribute-table order breaking
// ties.
func (p *PPU) selectSprites(lcdc uint8) {
	height := spriteHeight(lcdc)

	p.sprites = p.sprites[:0]
	for i := 0; i < numSprites; i++ {
		addr := addresses.OAMStart + uint16(i)*4
		s := sprite{
			y:     p.mem.Read(addr),
			x:     p.mem.Read(addr + 1),
			tile:  p.mem.Read(addr + 2),
			flags: p.mem.Read(addr + 3),
		}

		row := p.scanline + 16 - int(s.y)
		if row < 0 || row >= height {
			continue
		}

		p.sprites = append(p.sprites, s)
		if len(p.sprites) == maxSpritesPerLine {
			break
		}
	}

	sort.SliceStable(p.sprites, func(i, j int) bool {
		return p.sprites[i].x < p.sprites[j].x
	})
}

// spriteAt returns the winning sprite pixel for the given screen position.
// A transparent pixel from a higher priority sprite lets lower priority
// sprites show through.
func (p *PPU) spriteAt(x int) (spritePixel, bool) {
	height := spriteHeight(p.mem.Read(addresses.LCDC))

	for _, s := range p.sprites {
		if !s.covers(x) {
			continue
		}
		px := s.pixelAt(p.mem, x, p.scanline, height)
		if px.color != 0 {
			return px, true
		}
	}
	return spritePixel{}, false
}
