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

package digest_test

import (
	"testing"

	"github.com/sevenholm/dotmatrix/digest"
	"github.com/sevenholm/dotmatrix/display"
)

func TestVideoChaining(t *testing.T) {
	dig := digest.NewVideo()

	frame := display.Frame{}
	if err := dig.NewFrame(0, &frame); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := dig.Hash()

	// hashing an identical frame must produce a different fingerprint
	// because the previous fingerprint is part of the input
	if err := dig.NewFrame(1, &frame); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dig.Hash() == first {
		t.Errorf("fingerprints are not chained")
	}

	// replaying the sequence from a reset digest reproduces it
	dig.ResetDigest()
	if err := dig.NewFrame(0, &frame); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dig.Hash() != first {
		t.Errorf("fingerprint not reproducible after reset")
	}
}

func TestVideoContent(t *testing.T) {
	a := digest.NewVideo()
	b := digest.NewVideo()

	frame := display.Frame{}
	_ = a.NewFrame(0, &frame)

	frame[72][80] = 3
	_ = b.NewFrame(0, &frame)

	if a.Hash() == b.Hash() {
		t.Errorf("differing frames produced the same fingerprint")
	}
}
