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

package disassembly_test

import (
	"testing"

	"github.com/sevenholm/dotmatrix/disassembly"
)

func TestDisassemble(t *testing.T) {
	entries := disassembly.Disassemble([]byte{
		0x00,             // NOP
		0x01, 0x34, 0x12, // LD BC,$1234
		0x3e, 0x6f, // LD A,$6f
		0x18, 0xfe, // JR $0106
		0xcb, 0x37, // SWAP A
		0xd3, // unmapped
	}, 0x0100)

	expected := []string{
		"NOP",
		"LD BC,$1234",
		"LD A,$6f",
		"JR $0106",
		"SWAP A",
		"DB $d3",
	}

	if len(entries) != len(expected) {
		t.Fatalf("decoded %d entries, expected %d", len(entries), len(expected))
	}
	for i, e := range entries {
		if e.Operator != expected[i] {
			t.Errorf("entry %d: %q, expected %q", i, e.Operator, expected[i])
		}
	}

	if entries[1].Address != 0x0101 {
		t.Errorf("entry 1 at %#04x, expected 0x0101", entries[1].Address)
	}
	if entries[5].Address != 0x010a {
		t.Errorf("entry 5 at %#04x, expected 0x010a", entries[5].Address)
	}
}

func TestEntryFormat(t *testing.T) {
	entries := disassembly.Disassemble([]byte{0xc3, 0x00, 0x02}, 0x0150)

	s := entries[0].String()
	if s != "0150  c3 00 02  JP $0200" {
		t.Errorf("unexpected format: %q", s)
	}
}

func TestTruncated(t *testing.T) {
	// the operand of the final instruction is missing
	entries := disassembly.Disassemble([]byte{0x00, 0x3e}, 0x0000)

	if len(entries) != 2 {
		t.Fatalf("decoded %d entries, expected 2", len(entries))
	}
	if entries[1].Operator != "DB $3e" {
		t.Errorf("truncated instruction decoded as %q", entries[1].Operator)
	}
}
