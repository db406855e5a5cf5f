// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package cartridge

import (
	"github.com/blastcore-emu/genesiscore/errors"
	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
)

// coleco implements cartMapper for the ColecoVision: a fixed address map
// with no bank switching at all. Grounded directly on the map[] literal in
// original_source/coleco.c's init function - BIOS at $0000-$2000, cart RAM
// at $7000-$8000, and ROM filling $8000-$10000.
type coleco struct {
	bios []byte
	ram  []byte
	rom  []byte
}

func newColecoMapper(bios, rom []byte) *coleco {
	m := &coleco{bios: bios, rom: rom, ram: make([]byte, 0x1000)}
	m.initialise()
	return m
}

func (m *coleco) String() string { return "coleco" }

func (m *coleco) initialise() {
	for i := range m.ram {
		m.ram[i] = 0
	}
}

func (m *coleco) Pointer(idx int) []byte { return nil }

func (m *coleco) chunks() []*memorymap.MemChunk {
	return []*memorymap.MemChunk{
		{
			Start: 0x0000, End: 0x2000,
			Mask:   uint32(len(m.bios)) - 1,
			Flags:  memorymap.Read,
			Buffer: m.bios,
		},
		{
			Start: 0x7000, End: 0x8000,
			Mask:   uint32(len(m.ram)) - 1,
			Flags:  memorymap.Read | memorymap.Write | memorymap.IsCode,
			Buffer: m.ram,
		},
		{
			Start: 0x8000, End: 0x10000,
			Mask:   nearestPow2(uint32(len(m.rom))) - 1,
			Flags:  memorymap.Read,
			Buffer: m.rom,
		},
	}
}

func nearestPow2(n uint32) uint32 {
	p := uint32(1)
	for p < n {
		p <<= 1
	}
	return p
}

func (m *coleco) numBanks() int { return 1 }

func (m *coleco) getBank(addr uint32) int { return 0 }

func (m *coleco) saveState() interface{} {
	return append([]byte(nil), m.ram...)
}

func (m *coleco) restoreState(state interface{}) error {
	ram, ok := state.([]byte)
	if !ok {
		return errors.Errorf(errors.MapperStateError, "coleco mapper")
	}
	copy(m.ram, ram)
	return nil
}

func (m *coleco) poke(addr uint32, data uint8) error {
	switch {
	case addr < 0x2000:
		m.bios[addr] = data
	case addr >= 0x7000 && addr < 0x8000:
		m.ram[addr-0x7000] = data
	case addr >= 0x8000:
		off := addr - 0x8000
		if int(off) >= len(m.rom) {
			return errors.Errorf(errors.CartridgeUnpokable, addr)
		}
		m.rom[off] = data
	default:
		return errors.Errorf(errors.CartridgeUnpokable, addr)
	}
	return nil
}

func (m *coleco) patch(offset uint32, data uint8) error {
	if int(offset) >= len(m.rom) {
		return errors.Errorf(errors.CartridgeUnpokable, offset)
	}
	m.rom[offset] = data
	return nil
}

func (m *coleco) getRAMinfo() []RAMinfo {
	return []RAMinfo{{
		Label:       "RAM",
		Active:      true,
		ReadOrigin:  0x7000,
		ReadMemtop:  0x7fff,
		WriteOrigin: 0x7000,
		WriteMemtop: 0x7fff,
	}}
}
