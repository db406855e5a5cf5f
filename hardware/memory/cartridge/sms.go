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

// smsPageSize is the bank granularity of the classic "Sega mapper" page
// registers at $FFFD-$FFFF: a 16KB ROM window.
const smsPageSize = 0x4000

// sms implements cartMapper for the Master System's three-register paging
// scheme. Carts no bigger than 0xC000 bytes need no paging at all and are
// mapped directly; grounded on original_source/sms.c's
// alloc_configure_sms, which picks between a 2-chunk direct map and a
// 6-chunk paged map depending on orig_size, and mapper_write, which backs
// the three page registers shadowed in the last 4 bytes of work RAM.
type sms struct {
	rom    []byte
	paged  bool
	pages  [3]uint8
	romTop uint32
}

func newSMSMapper(rom []byte) *sms {
	m := &sms{rom: rom}
	m.romTop = uint32(len(rom)) - 1
	m.paged = len(rom) > 0xc000
	m.initialise()
	return m
}

func (m *sms) String() string { return "sms" }

func (m *sms) initialise() {
	m.pages = [3]uint8{0, 1, 2}
}

// window returns the 16KB slice selected by page register n, masked
// against rom_size-1 the way mapper_write's `value << 14 & (rom_size-1)`
// does.
func (m *sms) window(n int) []byte {
	base := (uint32(m.pages[n]) << 14) & m.romTop
	end := base + smsPageSize
	if end > uint32(len(m.rom)) {
		end = uint32(len(m.rom))
	}
	return m.rom[base:end]
}

func (m *sms) Pointer(idx int) []byte {
	if !m.paged {
		return nil
	}
	switch idx {
	case 0:
		return m.rom[0x400:smsPageSize]
	case 1:
		return m.window(1)
	case 2:
		return m.window(2)
	}
	return nil
}

func (m *sms) chunks() []*memorymap.MemChunk {
	if !m.paged {
		return []*memorymap.MemChunk{{
			Start: 0x0000, End: 0xc000,
			Mask:   uint32(len(m.rom)) - 1,
			Flags:  memorymap.Read | memorymap.IsCode,
			Buffer: m.rom,
		}}
	}

	return []*memorymap.MemChunk{
		{
			Start: 0x0000, End: 0x0400,
			Mask:   0xffff,
			Flags:  memorymap.Read,
			Buffer: m.rom,
		},
		{
			Start: 0x0400, End: 0x4000,
			Mask:     0xffff,
			Flags:    memorymap.Read | memorymap.PtrIdx,
			PtrIndex: 0,
		},
		{
			Start: 0x4000, End: 0x8000,
			Mask:     smsPageSize - 1,
			Flags:    memorymap.Read | memorymap.PtrIdx,
			PtrIndex: 1,
		},
		{
			Start: 0x8000, End: 0xc000,
			Mask:     smsPageSize - 1,
			Flags:    memorymap.Read | memorymap.PtrIdx,
			PtrIndex: 2,
		},
		{
			// page register file, shadowed into the last 4 bytes of RAM by
			// the caller's RAM chunk; here only the write side is modelled.
			Start: 0xfffc, End: 0x10000,
			Mask:   0xffff,
			Flags:  memorymap.Read | memorymap.Write | memorymap.FuncNull,
			Write8: m.writePageRegister,
		},
	}
}

func (m *sms) writePageRegister(addr uint32, v uint8) {
	switch addr & 3 {
	case 0:
		// RAM-bank-select for the 8KB cart RAM variant; not modelled.
	case 1:
		m.pages[0] = v
	case 2:
		m.pages[1] = v
	case 3:
		m.pages[2] = v
	}
}

func (m *sms) numBanks() int {
	return len(m.rom) / smsPageSize
}

func (m *sms) getBank(addr uint32) int {
	if !m.paged {
		return 0
	}
	switch {
	case addr < 0x4000:
		return int(m.pages[0])
	case addr < 0x8000:
		return int(m.pages[1])
	default:
		return int(m.pages[2])
	}
}

type smsState struct {
	Pages [3]uint8
}

func (m *sms) saveState() interface{} {
	return smsState{Pages: m.pages}
}

func (m *sms) restoreState(state interface{}) error {
	s, ok := state.(smsState)
	if !ok {
		return errors.Errorf(errors.MapperStateError, "sms mapper")
	}
	m.pages = s.Pages
	return nil
}

func (m *sms) poke(addr uint32, data uint8) error {
	if int(addr) >= len(m.rom) {
		return errors.Errorf(errors.CartridgeUnpokable, addr)
	}
	m.rom[addr] = data
	return nil
}

func (m *sms) patch(offset uint32, data uint8) error {
	return m.poke(offset, data)
}

func (m *sms) getRAMinfo() []RAMinfo {
	return nil
}
