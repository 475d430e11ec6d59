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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/sevenholm/dotmatrix/display"
)

// Video is a display.Renderer that hashes every frame it is handed instead
// of showing it anywhere. SHA-1 is fine for this application because this
// is not a cryptographic task.
type Video struct {
	digest   [sha1.Size]byte
	pixels   []byte
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	dig := &Video{}

	// the head of the buffer holds the previous frame's fingerprint
	dig.pixels = make([]byte, sha1.Size+display.Width*display.Height)

	return dig
}

// Hash implements the digest.Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Video) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// FrameNum returns the number of the most recently hashed frame.
func (dig *Video) FrameNum() int {
	return dig.frameNum
}

// NewFrame implements the display.Renderer interface.
func (dig *Video) NewFrame(frameNum int, frame *display.Frame) error {
	copy(dig.pixels, dig.digest[:])

	o := len(dig.digest)
	for y := 0; y < display.Height; y++ {
		copy(dig.pixels[o:], frame[y][:])
		o += display.Width
	}

	dig.digest = sha1.Sum(dig.pixels)
	dig.frameNum = frameNum
	return nil
}
