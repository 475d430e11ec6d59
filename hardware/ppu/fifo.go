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

// pixelFIFO queues decoded background/window colour indices between the
// fetcher and the screen. A fixed ring is plenty: the queue never holds
// more than two tiles worth of pixels.
type pixelFIFO struct {
	pixels [16]uint8
	head   int
	used   int
}

func (f *pixelFIFO) clear() {
	f.head = 0
	f.used = 0
}

// fill tops the queue up from the fetcher whenever it holds less than a
// full tile row.
func (f *pixelFIFO) fill(fch *fetcher, mem Memory) {
	if f.used >= 8 {
		return
	}
	for _, px := range fch.fetchPixels(mem) {
		f.pixels[(f.head+f.used)%len(f.pixels)] = px
		f.used++
	}
}

func (f *pixelFIFO) pop() uint8 {
	if f.used == 0 {
		return 0
	}
	px := f.pixels[f.head]
	f.head = (f.head + 1) % len(f.pixels)
	f.used--
	return px
}

func (f *pixelFIFO) discard(n int) {
	for i := 0; i < n; i++ {
		f.pop()
	}
}
