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

package m68k_test

import (
	"testing"

	"github.com/blastcore-emu/genesiscore/hardware/cpu/m68k"
	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
)

// newFlatMap builds a single RAM chunk covering the whole 24-bit address
// space (64KB mirrored), enough to host a test program and its reset vectors.
func newFlatMap(t *testing.T) (*memorymap.MemoryMap, []byte) {
	t.Helper()
	ram := make([]byte, 0x10000)
	chunk := &memorymap.MemChunk{
		Start:  0,
		End:    0x1000000,
		Mask:   uint32(len(ram)) - 1,
		Flags:  memorymap.Read | memorymap.Write,
		Buffer: ram,
	}
	mm := memorymap.NewMemoryMap(chunk)
	return mm, ram
}

func putLong(ram []byte, addr uint32, v uint32) {
	ram[addr] = byte(v >> 24)
	ram[addr+1] = byte(v >> 16)
	ram[addr+2] = byte(v >> 8)
	ram[addr+3] = byte(v)
}

func putWord(ram []byte, addr uint32, v uint16) {
	ram[addr] = byte(v >> 8)
	ram[addr+1] = byte(v)
}

func TestResetVector(t *testing.T) {
	mm, ram := newFlatMap(t)
	putLong(ram, 0, 0x00FFFFFE) // initial SSP
	putLong(ram, 4, 0x00001000) // initial PC

	c := m68k.NewContext(mm, nil)
	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if c.PC != 0x1000 {
		t.Fatalf("PC = %#x, want 0x1000", c.PC)
	}
	if c.A[7] != 0x00FFFFFE {
		t.Fatalf("A7 = %#x, want 0xFFFFFE", c.A[7])
	}
	if !c.Supervisor() {
		t.Fatal("expected supervisor mode after reset")
	}
}

func TestMOVEQAndADD(t *testing.T) {
	mm, ram := newFlatMap(t)
	putLong(ram, 0, 0x00FFFFFE)
	putLong(ram, 4, 0x00001000)

	putWord(ram, 0x1000, 0x7005) // MOVEQ #5,D0
	putWord(ram, 0x1002, 0x7103) // bit 8 set: not a MOVEQ encoding, decodes as ILLEGAL
	putWord(ram, 0x1004, 0x7203) // MOVEQ #3,D1
	putWord(ram, 0x1006, 0xD041) // ADD.W D1,D0
	putWord(ram, 0x1008, 0x4e71) // NOP

	c := m68k.NewContext(mm, nil)
	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	for i := 0; i < 4; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if c.D[0]&0xffff != 8 {
		t.Fatalf("D0 = %#x, want 8", c.D[0])
	}
}

func TestBranchAlwaysTaken(t *testing.T) {
	mm, ram := newFlatMap(t)
	putLong(ram, 0, 0x00FFFFFE)
	putLong(ram, 4, 0x00001000)

	putWord(ram, 0x1000, 0x6002) // BRA +2 -> skip to 0x1004

	c := m68k.NewContext(mm, nil)
	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	res, err := c.Step()
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !res.BranchSuccess {
		t.Fatal("expected branch to be taken")
	}
	if c.PC != 0x1004 {
		t.Fatalf("PC = %#x, want 0x1004", c.PC)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	mm, ram := newFlatMap(t)
	putLong(ram, 0, 0x00FFFFFE)
	putLong(ram, 4, 0x00001000)

	putWord(ram, 0x1000, 0x4eb9)  // JSR abs.long
	putLong(ram, 0x1002, 0x00002000)
	putWord(ram, 0x1006, 0x4e71) // NOP (return lands here)

	putWord(ram, 0x2000, 0x4e75) // RTS

	c := m68k.NewContext(mm, nil)
	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, err := c.Step(); err != nil { // JSR
		t.Fatalf("jsr: %v", err)
	}
	if c.PC != 0x2000 {
		t.Fatalf("PC after JSR = %#x, want 0x2000", c.PC)
	}

	if _, err := c.Step(); err != nil { // RTS
		t.Fatalf("rts: %v", err)
	}
	if c.PC != 0x1006 {
		t.Fatalf("PC after RTS = %#x, want 0x1006", c.PC)
	}
}

func TestBreakpointHit(t *testing.T) {
	mm, ram := newFlatMap(t)
	putLong(ram, 0, 0x00FFFFFE)
	putLong(ram, 4, 0x00001000)
	putWord(ram, 0x1000, 0x4e71)

	c := m68k.NewContext(mm, nil)
	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	c.Breakpoints = append(c.Breakpoints, 0x1000)

	if _, err := c.Step(); err == nil {
		t.Fatal("expected breakpoint error")
	}
}

func TestIllegalOpcodeIsFinal(t *testing.T) {
	mm, ram := newFlatMap(t)
	putLong(ram, 0, 0x00FFFFFE)
	putLong(ram, 4, 0x00001000)
	putWord(ram, 0x1000, 0xFFFF) // not in the table

	c := m68k.NewContext(mm, nil)
	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	res, err := c.Step()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Mnemonic != "ILLEGAL" || !res.Final {
		t.Fatalf("got %+v, want an ILLEGAL/Final result", res)
	}
}
