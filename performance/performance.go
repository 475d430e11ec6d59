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

// Package performance measures how fast the emulation runs on the host. The
// DMG refreshes at 4194304 cycles per 70224 dot frame, just under 59.73
// frames per second; Check() reports the achieved rate as a percentage of
// that.
package performance

// FramesPerSecond is the refresh rate of the emulated machine.
const FramesPerSecond = 4194304.0 / 70224.0

// CalcFPS takes a number of frames and a duration in seconds and returns
// the frame rate and its accuracy against the real machine as a percentage.
func CalcFPS(numFrames int, duration float64) (fps float64, accuracy float64) {
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / FramesPerSecond
	return fps, accuracy
}
