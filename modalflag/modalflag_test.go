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

package modalflag_test

import (
	"testing"

	"github.com/sevenholm/dotmatrix/modalflag"
)

func parse(t *testing.T, md *modalflag.Modes) {
	t.Helper()
	p, err := md.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != modalflag.ParseContinue {
		t.Fatalf("parse result %d, expected ParseContinue", p)
	}
}

func TestNoModes(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"rom.gb"})

	parse(t, md)
	if md.Mode() != "" {
		t.Errorf("mode=%q, expected no mode", md.Mode())
	}
	if len(md.RemainingArgs()) != 1 || md.GetArg(0) != "rom.gb" {
		t.Errorf("remaining args %v", md.RemainingArgs())
	}
}

func TestSubModeSelection(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"disasm", "rom.gb"})
	md.AddSubModes("RUN", "DISASM")

	parse(t, md)
	if md.Mode() != "DISASM" {
		t.Errorf("mode=%q, expected DISASM", md.Mode())
	}

	// the selector has been consumed
	md.NewMode()
	parse(t, md)
	if md.GetArg(0) != "rom.gb" {
		t.Errorf("arg=%q, expected the ROM name", md.GetArg(0))
	}
}

func TestDefaultSubMode(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"rom.gb"})
	md.AddSubModes("RUN", "DISASM")

	parse(t, md)
	if md.Mode() != "RUN" {
		t.Errorf("mode=%q, expected the default sub-mode", md.Mode())
	}

	// an argument that is not a sub-mode is left in place
	md.NewMode()
	parse(t, md)
	if md.GetArg(0) != "rom.gb" {
		t.Errorf("arg=%q, expected the ROM name", md.GetArg(0))
	}
}

func TestModeFlags(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"run", "-scale", "4", "rom.gb"})
	md.AddSubModes("RUN", "DISASM")
	parse(t, md)

	md.NewMode()
	scale := md.AddFloat64("scale", 2.0, "window scale")
	parse(t, md)

	if *scale != 4.0 {
		t.Errorf("scale=%v, expected 4.0", *scale)
	}
	if md.GetArg(0) != "rom.gb" {
		t.Errorf("arg=%q, expected the ROM name", md.GetArg(0))
	}
	if md.Path() != "RUN" {
		t.Errorf("path=%q, expected RUN", md.Path())
	}
}
