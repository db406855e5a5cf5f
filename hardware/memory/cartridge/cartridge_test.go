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
	"testing"

	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
	"github.com/blastcore-emu/genesiscore/test"
)

func makeROM(size int, fill func(i int) byte) []byte {
	rom := make([]byte, size)
	for i := range rom {
		rom[i] = fill(i)
	}
	return rom
}

func TestEjectedRejectsPokeAndPatch(t *testing.T) {
	cart := newEjected()
	test.ExpectFailure(t, cart.poke(0, 0))
	test.ExpectFailure(t, cart.patch(0, 0))
	test.ExpectEquality(t, len(cart.chunks()), 0)
}

func TestSegaBankSwitching(t *testing.T) {
	rom := makeROM(segaBankSize*3, func(i int) byte { return byte(i / segaBankSize) })
	m := newSegaMapper(rom, 0, saveRAMBoth)
	bus := memorymap.NewMemoryMap(m.chunks()...)

	v, err := bus.ReadByte(0, m)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0))

	m.writeBankReg(0xa130f2, 2) // select bank register 1 -> window 2
	v, err = bus.ReadByte(segaBankSize, m)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(2))
}

func TestSegaSRAMEnableAndProtect(t *testing.T) {
	rom := makeROM(segaBankSize, func(i int) byte { return 0 })
	m := newSegaMapper(rom, 0x10000, saveRAMBoth)
	bus := memorymap.NewMemoryMap(m.chunks()...)

	// disabled by default
	v, err := bus.ReadByte(m.sramBaseAddr, m)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xff))

	m.writeBankReg(0xa130f0, 1) // enable, not protected
	err = bus.WriteByte(m.sramBaseAddr, 0x42, m)
	test.ExpectSuccess(t, err)
	v, err = bus.ReadByte(m.sramBaseAddr, m)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x42))

	m.writeBankReg(0xa130f0, 3) // enable + protect
	err = bus.WriteByte(m.sramBaseAddr, 0x99, m)
	test.ExpectSuccess(t, err)
	v, err = bus.ReadByte(m.sramBaseAddr, m)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x42)) // write ignored, old value retained
}

func TestSegaSaveStateRoundTrip(t *testing.T) {
	rom := makeROM(segaBankSize*2, func(i int) byte { return byte(i) })
	m := newSegaMapper(rom, 0x10000, saveRAMBoth)
	m.writeBankReg(0xa130f2, 1)
	m.sram[0] = 0x7

	state := m.saveState()

	n := newSegaMapper(rom, 0x10000, saveRAMBoth)
	err := n.restoreState(state)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n.bankRegs[1], m.bankRegs[1])
	test.ExpectEquality(t, n.sram[0], uint8(0x7))
}

func TestSMSDirectMapForSmallROM(t *testing.T) {
	rom := makeROM(0x4000, func(i int) byte { return byte(i) })
	m := newSMSMapper(rom)
	test.ExpectEquality(t, m.paged, false)

	bus := memorymap.NewMemoryMap(m.chunks()...)
	v, err := bus.ReadByte(0x10, m)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x10))
}

func TestSMSPagedMapperSwitchesWindows(t *testing.T) {
	rom := makeROM(smsPageSize*4, func(i int) byte { return byte(i / smsPageSize) })
	m := newSMSMapper(rom)
	test.ExpectEquality(t, m.paged, true)

	bus := memorymap.NewMemoryMap(m.chunks()...)

	v, err := bus.ReadByte(0x4000, m)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(1))

	m.writePageRegister(2, 3) // page register for the $4000-$8000 window
	v, err = bus.ReadByte(0x4000, m)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(3))
}

func TestColecoFixedMap(t *testing.T) {
	bios := makeROM(0x2000, func(i int) byte { return 1 })
	rom := makeROM(0x4000, func(i int) byte { return 2 })
	m := newColecoMapper(bios, rom)
	bus := memorymap.NewMemoryMap(m.chunks()...)

	v, err := bus.ReadByte(0x0000, m)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(1))

	v, err = bus.ReadByte(0x8000, m)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(2))

	err = bus.WriteByte(0x7000, 0x55, m)
	test.ExpectSuccess(t, err)
	v, err = bus.ReadByte(0x7000, m)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x55))
}

func TestColecoNumBanksIsOne(t *testing.T) {
	m := newColecoMapper(makeROM(0x2000, func(i int) byte { return 0 }), makeROM(0x4000, func(i int) byte { return 0 }))
	test.ExpectEquality(t, m.numBanks(), 1)
}
