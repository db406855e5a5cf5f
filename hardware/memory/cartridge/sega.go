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

// segaBankSize is the granularity of one Sega mapper bank register: 512KB,
// matching the eight bank_regs[] entries of original_source/sega_mapper.c
// covering the 4MB cartridge window at $000000-$3FFFFF.
const segaBankSize = 0x80000

// segaBankCount is the number of indirectable 512KB windows; games needing
// more than 4MB (bank_regs[4..7]) share the same register file.
const segaBankCount = 8

// segaSaveRAMMask is the save-RAM address mask for carts whose save type
// doesn't need a larger window; grounds on save_ram_mask in sega_mapper.c.
const segaSaveRAMMask = 0xffff

// segaSaveType mirrors gen->save_type: whether SRAM occupies every byte of
// its window, only even bytes, or only odd bytes of a 16-bit bus.
type segaSaveType int

const (
	saveRAMBoth segaSaveType = iota
	saveRAMEven
	saveRAMOdd
)

// sega implements cartMapper for the standard Genesis/Mega Drive cartridge:
// an 8-register bank file mapping 512KB windows of ROM into the low 4MB of
// the 68000 address space, plus an optional battery-backed SRAM window
// whose presence and write-protect state is controlled by bank_regs[0].
//
// Grounded on original_source/sega_mapper.c (write_bank_reg_w/_b,
// read_sram_w/_b, write_sram_area_w/_b). Every ROM size is mapped through
// the eight PtrIdx windows; there is no separate single-register variant.
type sega struct {
	rom  []byte
	sram []byte

	bankRegs [8]uint16
	saveType segaSaveType

	sramEnabled  bool
	sramProtect  bool
	hasSRAM      bool
	sramBaseAddr uint32
	sramMask     uint32
}

func newSegaMapper(rom []byte, sramSize uint32, saveType segaSaveType) *sega {
	m := &sega{rom: rom, saveType: saveType}
	if sramSize > 0 {
		m.hasSRAM = true
		m.sram = make([]byte, sramSize)
		m.sramBaseAddr = 0x200000
		m.sramMask = sramSize - 1
		if m.sramMask == 0 {
			m.sramMask = segaSaveRAMMask
		}
	}
	m.initialise()
	return m
}

func (m *sega) String() string { return "sega" }

func (m *sega) initialise() {
	for i := range m.bankRegs {
		m.bankRegs[i] = uint16(i)
	}
	m.sramEnabled = false
	m.sramProtect = false
}

// romWindow returns the bytes visible through 512KB window n, wrapping
// the bank's start offset modulo the ROM length.
func (m *sega) romWindow(n int) []byte {
	base := (int(m.bankRegs[n]) * segaBankSize) % len(m.rom)
	end := base + segaBankSize
	if end > len(m.rom) {
		end = len(m.rom)
	}
	return m.rom[base:end]
}

func (m *sega) Pointer(idx int) []byte {
	if idx < 0 || idx >= segaBankCount {
		return nil
	}
	return m.romWindow(idx)
}

func (m *sega) chunks() []*memorymap.MemChunk {
	chunks := make([]*memorymap.MemChunk, 0, segaBankCount+1)
	for i := 0; i < segaBankCount; i++ {
		chunks = append(chunks, &memorymap.MemChunk{
			Start: uint32(i) * segaBankSize, End: uint32(i+1) * segaBankSize,
			Mask:     segaBankSize - 1,
			Flags:    memorymap.Read | memorymap.IsCode | memorymap.PtrIdx,
			PtrIndex: i,
		})
	}

	// the SRAM window overlaps ROM window 4 at $200000; it goes first so
	// that FindChunk picks it over the ROM window
	if m.hasSRAM {
		chunks = append([]*memorymap.MemChunk{{
			Start: m.sramBaseAddr, End: m.sramBaseAddr + m.sramMask + 1,
			Mask:  m.sramMask,
			Flags: memorymap.Read | memorymap.Write | memorymap.AuxBuffer,
			Read8: func(addr uint32) uint8 {
				return m.readSRAMByte(addr)
			},
			Write8: func(addr uint32, v uint8) {
				m.writeSRAMByte(addr, v)
			},
		}}, chunks...)
	}

	// bank register file at $A130F0-$A130FF, word-addressed every 2 bytes
	chunks = append(chunks, &memorymap.MemChunk{
		Start: 0xa130f0, End: 0xa13100,
		Mask:   0xf,
		Flags:  memorymap.Read | memorymap.Write | memorymap.FuncNull,
		Write8: func(addr uint32, v uint8) { m.writeBankReg(addr, uint16(v)) },
	})

	return chunks
}

func (m *sega) writeBankReg(addr uint32, value uint16) {
	reg := (addr & 0xe) >> 1
	if reg == 0 {
		m.sramEnabled = value&1 != 0
		m.sramProtect = value&2 != 0
	}
	m.bankRegs[reg] = value
}

func (m *sega) readSRAMByte(addr uint32) uint8 {
	if !m.sramEnabled {
		return 0xff
	}
	off := (addr - m.sramBaseAddr) & m.sramMask
	switch m.saveType {
	case saveRAMBoth:
		return m.sram[off]
	case saveRAMEven:
		if addr&1 != 0 {
			return 0xff
		}
		return m.sram[off>>1]
	case saveRAMOdd:
		if addr&1 == 0 {
			return 0xff
		}
		return m.sram[off>>1]
	}
	return 0xff
}

func (m *sega) writeSRAMByte(addr uint32, v uint8) {
	if !m.sramEnabled || m.sramProtect {
		return
	}
	off := (addr - m.sramBaseAddr) & m.sramMask
	switch m.saveType {
	case saveRAMBoth:
		m.sram[off] = v
	case saveRAMEven:
		if addr&1 == 0 {
			m.sram[off>>1] = v
		}
	case saveRAMOdd:
		if addr&1 != 0 {
			m.sram[off>>1] = v
		}
	}
}

func (m *sega) numBanks() int { return segaBankCount }

func (m *sega) getBank(addr uint32) int {
	return int(addr / segaBankSize)
}

type segaState struct {
	BankRegs    [8]uint16
	SRAMEnabled bool
	SRAMProtect bool
	SRAM        []byte
}

func (m *sega) saveState() interface{} {
	s := segaState{BankRegs: m.bankRegs, SRAMEnabled: m.sramEnabled, SRAMProtect: m.sramProtect}
	if m.hasSRAM {
		s.SRAM = append([]byte(nil), m.sram...)
	}
	return s
}

func (m *sega) restoreState(state interface{}) error {
	s, ok := state.(segaState)
	if !ok {
		return errors.Errorf(errors.MapperStateError, "sega mapper")
	}
	m.bankRegs = s.BankRegs
	m.sramEnabled = s.SRAMEnabled
	m.sramProtect = s.SRAMProtect
	if m.hasSRAM && s.SRAM != nil {
		copy(m.sram, s.SRAM)
	}
	return nil
}

func (m *sega) poke(addr uint32, data uint8) error {
	bank := int(addr / segaBankSize)
	if bank >= segaBankCount {
		return errors.Errorf(errors.CartridgeUnpokable, addr)
	}
	win := m.romWindow(bank)
	off := addr % segaBankSize
	if int(off) >= len(win) {
		return errors.Errorf(errors.CartridgeUnpokable, addr)
	}
	win[off] = data
	return nil
}

func (m *sega) patch(offset uint32, data uint8) error {
	if int(offset) >= len(m.rom) {
		return errors.Errorf(errors.CartridgeUnpokable, offset)
	}
	m.rom[offset] = data
	return nil
}

func (m *sega) getRAMinfo() []RAMinfo {
	if !m.hasSRAM {
		return nil
	}
	return []RAMinfo{{
		Label:       "SRAM",
		Active:      m.sramEnabled,
		ReadOrigin:  m.sramBaseAddr,
		ReadMemtop:  m.sramBaseAddr + m.sramMask,
		WriteOrigin: m.sramBaseAddr,
		WriteMemtop: m.sramBaseAddr + m.sramMask,
	}}
}
