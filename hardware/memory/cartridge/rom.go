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

package cartridge

import (
	"github.com/sevenholm/dotmatrix/hardware/memory/addresses"
	"github.com/sevenholm/dotmatrix/logger"
)

// rom is the mapper for cartridges with no bank controller at all. at most
// two banks of ROM, no external RAM.
type rom struct {
	data []uint8
}

func newROM(data []uint8) *rom {
	return &rom{data: data}
}

func (m *rom) String() string {
	return "ROM"
}

func (m *rom) Read(addr uint16) uint8 {
	if addr <= addresses.ROMBankEnd && int(addr) < len(m.data) {
		return m.data[addr]
	}

	// external RAM window and out-of-image reads return the unmapped value
	return 0xff
}

func (m *rom) Write(addr uint16, data uint8) {
	logger.Logf("cartridge", "write to ROM-only cartridge ignored (%#04x=%#02x)", addr, data)
}
