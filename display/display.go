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

// Package display defines the contract between the picture processor and
// anything that wants to show (or fingerprint) the emulated screen.
package display

// Dimensions of the visible screen.
const (
	Width  = 160
	Height = 144
)

// NumShades is the number of distinct values a Frame pixel can take.
const NumShades = 4

// Frame is one complete screen of pixels. Each pixel is a shade index from
// 0 (lightest) to 3 (darkest), after palette translation.
type Frame [Height][Width]uint8

// Renderer implementations are handed every completed frame. The frame
// pointer is only valid for the duration of the call; implementations that
// keep the data must copy it.
type Renderer interface {
	NewFrame(frameNum int, frame *Frame) error
}
