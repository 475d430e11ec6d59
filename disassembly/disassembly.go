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

// Package disassembly produces a linear disassembly of SM83 machine code.
// Linear means the decoder walks straight through the bytes without
// following the flow of execution, so data embedded in code will decode to
// nonsense. It is good enough for eyeballing a ROM.
package disassembly

import (
	"fmt"
	"io"
	"strings"

	"github.com/sevenholm/dotmatrix/hardware/cpu/instructions"
)

// Entry is one decoded instruction.
type Entry struct {
	Address uint16
	Bytes   []uint8

	// the operator with operand values substituted in. undecodable bytes
	// render as a DB directive
	Operator string
}

func (e Entry) String() string {
	b := make([]string, len(e.Bytes))
	for i, v := range e.Bytes {
		b[i] = fmt.Sprintf("%02x", v)
	}
	return fmt.Sprintf("%04x  %-9s %s", e.Address, strings.Join(b, " "), e.Operator)
}

// Disassembly is the decoded form of a block of machine code.
type Disassembly struct {
	Entries []Entry
}

// FromCartridge disassembles the fixed and switchable ROM areas of a
// cartridge image as they appear with the power-on bank selection.
func FromCartridge(data []byte) *Disassembly {
	l := len(data)
	if l > 0x8000 {
		l = 0x8000
	}
	return &Disassembly{Entries: Disassemble(data[:l], 0)}
}

// Write prints every entry on its own line.
func (dsm *Disassembly) Write(w io.Writer) error {
	for _, e := range dsm.Entries {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}
	return nil
}

// Disassemble decodes the block of machine code, labelling entries as
// though the block were loaded at origin.
func Disassemble(data []byte, origin uint16) []Entry {
	entries := make([]Entry, 0, len(data)/2)

	for i := 0; i < len(data); {
		e, length := decode(data, i, origin)
		entries = append(entries, e)
		i += length
	}

	return entries
}

func decode(data []byte, i int, origin uint16) (Entry, int) {
	addr := origin + uint16(i)
	opcode := data[i]

	defn := instructions.Primary[opcode]
	if opcode == instructions.Escape && i+1 < len(data) {
		defn = &instructions.Prefixed[data[i+1]]
	}

	// unmapped opcode, or an instruction truncated by the end of the data
	if defn == nil || i+defn.Bytes > len(data) {
		return Entry{
			Address:  addr,
			Bytes:    []uint8{opcode},
			Operator: fmt.Sprintf("DB $%02x", opcode),
		}, 1
	}

	raw := data[i : i+defn.Bytes]

	return Entry{
		Address:  addr,
		Bytes:    raw,
		Operator: substitute(defn, raw, addr),
	}, defn.Bytes
}

// substitute replaces the operand markers of the operator template with the
// values that follow the opcode.
func substitute(defn *instructions.Definition, raw []uint8, addr uint16) string {
	op := defn.Mnemonic

	switch {
	case strings.Contains(op, "d16") || strings.Contains(op, "a16"):
		v := uint16(raw[2])<<8 | uint16(raw[1])
		op = strings.Replace(op, "d16", fmt.Sprintf("$%04x", v), 1)
		op = strings.Replace(op, "a16", fmt.Sprintf("$%04x", v), 1)

	case strings.Contains(op, "d8") || strings.Contains(op, "a8"):
		op = strings.Replace(op, "d8", fmt.Sprintf("$%02x", raw[1]), 1)
		op = strings.Replace(op, "a8", fmt.Sprintf("$%02x", raw[1]), 1)

	case strings.Contains(op, "r8"):
		offset := int8(raw[1])
		switch {
		case strings.HasPrefix(op, "JR"):
			// relative jumps read better as their absolute target
			target := addr + uint16(defn.Bytes) + uint16(offset)
			op = strings.Replace(op, "r8", fmt.Sprintf("$%04x", target), 1)
		case strings.Contains(op, "SP+r8"):
			op = strings.Replace(op, "SP+r8", fmt.Sprintf("SP%+d", offset), 1)
		default:
			op = strings.Replace(op, "r8", fmt.Sprintf("%+d", offset), 1)
		}
	}

	return op
}
