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

package memorymap_test

import (
	"testing"

	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
	"github.com/blastcore-emu/genesiscore/test"
)

func TestDirectBuffer(t *testing.T) {
	ram := make([]byte, 0x10000)
	ram[0x100] = 0xab
	ram[0x101] = 0xcd

	m := memorymap.NewMemoryMap(&memorymap.MemChunk{
		Start: 0xff0000, End: 0xff0000 + 0x10000,
		Mask:  0xffff,
		Flags: memorymap.Read | memorymap.Write,
		Buffer: ram,
	})

	v, err := m.ReadByte(0xff0100, nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xab))

	w, err := m.ReadWord(0xff0100, nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, uint16(0xabcd))

	err = m.WriteByte(0xff0100, 0xff, nil)
	test.ExpectSuccess(t, err)
	v, _ = m.ReadByte(0xff0100, nil)
	test.ExpectEquality(t, v, uint8(0xff))
}

func TestUnmappedAddress(t *testing.T) {
	m := memorymap.NewMemoryMap()
	_, err := m.ReadByte(0x1234, nil)
	test.ExpectFailure(t, err)
}

func TestOnlyOddEven(t *testing.T) {
	buf := make([]byte, 0x10000)
	buf[0x10] = 0x42

	m := memorymap.NewMemoryMap(&memorymap.MemChunk{
		Start: 0xa00000, End: 0xa00000 + 0x10000,
		Mask:  0xffff,
		Flags: memorymap.Read | memorymap.Write | memorymap.OnlyEven,
		Buffer: buf,
	})

	// even address is visible
	v, err := m.ReadByte(0xa00010, nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x42))

	// odd address reads as all-ones
	v, err = m.ReadByte(0xa00011, nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xff))

	// word read returns the even half in the high byte, low byte all-ones
	w, err := m.ReadWord(0xa00010, nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, uint16(0x42ff))
}

func TestByteSwap(t *testing.T) {
	buf := []byte{0x11, 0x22, 0x33, 0x44}

	m := memorymap.NewMemoryMap(&memorymap.MemChunk{
		Start: 0, End: 4,
		Mask:  0xff,
		Flags: memorymap.Read | memorymap.ByteSwap,
		Buffer: buf,
	})

	v, err := m.ReadByte(0, nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x22))

	v, err = m.ReadByte(1, nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x11))
}

type pointerTable struct {
	slots [][]byte
}

func (p pointerTable) Pointer(idx int) []byte {
	if idx < 0 || idx >= len(p.slots) {
		return nil
	}
	return p.slots[idx]
}

func TestPtrIdx(t *testing.T) {
	bank := make([]byte, 0x4000)
	bank[0] = 0x99

	pt := pointerTable{slots: [][]byte{bank}}

	m := memorymap.NewMemoryMap(&memorymap.MemChunk{
		Start: 0x8000, End: 0xc000,
		Mask:     0x3fff,
		Flags:    memorymap.Read | memorymap.PtrIdx,
		PtrIndex: 0,
	})

	v, err := m.ReadByte(0x8000, pt)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x99))

	buf, off, ok := m.GetNativePointer(0x8000, pt)
	test.Equate(t, ok, true)
	test.ExpectEquality(t, off, uint32(0))
	test.ExpectEquality(t, buf[0], uint8(0x99))
}

func TestPtrIdxFuncNullFallback(t *testing.T) {
	called := false
	m := memorymap.NewMemoryMap(&memorymap.MemChunk{
		Start: 0x8000, End: 0xc000,
		Mask:     0x3fff,
		Flags:    memorymap.Read | memorymap.PtrIdx | memorymap.FuncNull,
		PtrIndex: 0,
		Read8: func(addr uint32) uint8 {
			called = true
			return 0x55
		},
	})

	v, err := m.ReadByte(0x8000, pointerTable{slots: [][]byte{nil}})
	test.ExpectSuccess(t, err)
	test.Equate(t, called, true)
	test.ExpectEquality(t, v, uint8(0x55))
}

func TestSpecializeDirect(t *testing.T) {
	buf := make([]byte, 0x10000)

	m := memorymap.NewMemoryMap(&memorymap.MemChunk{
		Start: 0, End: 0x10000,
		Mask:  0xffff,
		Flags: memorymap.Read,
		Buffer: buf,
	})

	r := memorymap.SpecializeInterpRead(m, 0x100, 0x200)
	test.ExpectEquality(t, r.Kind, memorymap.Direct)
}

func TestSpecializeMap(t *testing.T) {
	a := &memorymap.MemChunk{Start: 0, End: 0x100, Mask: 0xff, Flags: memorymap.Read, Buffer: make([]byte, 0x100)}
	b := &memorymap.MemChunk{Start: 0x100, End: 0x200, Mask: 0xff, Flags: memorymap.Read, Buffer: make([]byte, 0x100)}
	m := memorymap.NewMemoryMap(a, b)

	r := memorymap.SpecializeInterpRead(m, 0xf0, 0x110)
	test.ExpectEquality(t, r.Kind, memorymap.Map)
}

func TestSpecializeIgnoredOnShift(t *testing.T) {
	buf := make([]byte, 0x10000)
	m := memorymap.NewMemoryMap(&memorymap.MemChunk{
		Start: 0, End: 0x10000,
		Mask:  0xffff,
		Shift: -1,
		Flags: memorymap.Read,
		Buffer: buf,
	})

	r := memorymap.SpecializeInterpRead(m, 0x100, 0x200)
	test.ExpectEquality(t, r.Kind, memorymap.Ignored)
}
