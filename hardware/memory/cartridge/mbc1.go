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
	"fmt"

	"github.com/sevenholm/dotmatrix/hardware/memory/addresses"
	"github.com/sevenholm/dotmatrix/logger"
)

// command windows in the ROM address space. a write into a window is a
// command to the controller, not a data store.
const (
	ramEnableEnd  = 0x1fff
	romSelectEnd  = 0x3fff
	bankSelectEnd = 0x5fff
	modeSelectEnd = 0x7fff
)

// mbc1 is the mapper for the first bank-controller family. Only banking mode
// 0 is implemented: the secondary select bits extend the ROM bank index and
// the RAM bank is fixed at 0. Mode 1 is accepted as a stored flag but
// behaviour continues as mode 0, with a logged warning.
type mbc1 struct {
	data []uint8
	ram  []uint8

	// number of banks in the image. the effective bank index is always
	// reduced modulo this
	numBanks int

	// low five bits of the ROM bank index. never zero: writing zero selects
	// bank one
	romSelect uint8

	// secondary select bits. in mode 0 these are bits 5-6 of the ROM bank
	// index
	bankSelect uint8

	ramEnabled  bool
	bankingMode uint8

	// mode 1 warning is only logged on the first occurrence
	modeWarned bool
}

func newMBC1(data []uint8, ramSize int) *mbc1 {
	return &mbc1{
		data:      data,
		ram:       make([]uint8, ramSize),
		numBanks:  len(data) / bankSize,
		romSelect: 1,
	}
}

func (m *mbc1) String() string {
	return fmt.Sprintf("MBC1 bank=%d ram=%v", m.effectiveBank(), m.ramEnabled)
}

// the effective ROM bank index, combining both select registers.
func (m *mbc1) effectiveBank() int {
	bank := int(m.bankSelect)<<5 | int(m.romSelect)
	return bank % m.numBanks
}

func (m *mbc1) Read(addr uint16) uint8 {
	switch {
	case addr <= addresses.ROM0End:
		return m.data[addr]

	case addr <= addresses.ROMBankEnd:
		return m.data[m.effectiveBank()*bankSize+int(addr-addresses.ROMBankStart)]

	case addr >= addresses.RAMBankStart && addr <= addresses.RAMBankEnd:
		if !m.ramEnabled {
			return 0xff
		}
		idx := int(addr - addresses.RAMBankStart)
		if idx >= len(m.ram) {
			return 0xff
		}
		return m.ram[idx]
	}

	return 0xff
}

func (m *mbc1) Write(addr uint16, data uint8) {
	switch {
	case addr <= ramEnableEnd:
		m.ramEnabled = data&0x0f == 0x0a

	case addr <= romSelectEnd:
		m.romSelect = data & 0x1f
		if m.romSelect == 0 {
			// the controller cannot select bank zero through this window
			m.romSelect = 1
		}

	case addr <= bankSelectEnd:
		m.bankSelect = data & 0x03

	case addr <= modeSelectEnd:
		m.bankingMode = data & 0x01
		if m.bankingMode == 1 && !m.modeWarned {
			logger.Log("cartridge", "banking mode 1 selected but not implemented; continuing with mode 0")
			m.modeWarned = true
		}

	case addr >= addresses.RAMBankStart && addr <= addresses.RAMBankEnd:
		if !m.ramEnabled {
			return
		}
		idx := int(addr - addresses.RAMBankStart)
		if idx < len(m.ram) {
			m.ram[idx] = data
		}
	}
}
