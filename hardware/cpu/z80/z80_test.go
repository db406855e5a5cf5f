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

package z80_test

import (
	"testing"

	"github.com/blastcore-emu/genesiscore/hardware/cpu/z80"
	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
)

func newFlatMap(t *testing.T) (*memorymap.MemoryMap, []byte) {
	t.Helper()
	ram := make([]byte, 0x2000)
	chunk := &memorymap.MemChunk{
		Start:  0,
		End:    uint32(len(ram)),
		Mask:   uint32(len(ram)) - 1,
		Flags:  memorymap.Read | memorymap.Write,
		Buffer: ram,
	}
	return memorymap.NewMemoryMap(chunk), ram
}

func TestLDAndAdd(t *testing.T) {
	mm, ram := newFlatMap(t)

	ram[0] = 0x06 // LD B,5
	ram[1] = 0x05
	ram[2] = 0x0e // LD C,3
	ram[3] = 0x03
	ram[4] = 0x78 // LD A,B
	ram[5] = 0x81 // ADD A,C
	ram[6] = 0x00 // NOP

	c := z80.NewContext(mm, nil)
	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	for i := 0; i < 4; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if c.A != 8 {
		t.Fatalf("A = %d, want 8", c.A)
	}
}

func TestCallRet(t *testing.T) {
	mm, ram := newFlatMap(t)

	ram[0] = 0xcd // CALL 0x0010
	ram[1] = 0x10
	ram[2] = 0x00
	ram[3] = 0x00 // NOP (return address)

	ram[0x10] = 0xc9 // RET

	c := z80.NewContext(mm, nil)
	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	c.SP = 0x1ffe

	if _, err := c.Step(); err != nil { // CALL
		t.Fatalf("call: %v", err)
	}
	if c.PC != 0x10 {
		t.Fatalf("PC after CALL = %#x, want 0x10", c.PC)
	}

	if _, err := c.Step(); err != nil { // RET
		t.Fatalf("ret: %v", err)
	}
	if c.PC != 3 {
		t.Fatalf("PC after RET = %#x, want 3", c.PC)
	}
}

func TestIncDecFlags(t *testing.T) {
	mm, ram := newFlatMap(t)
	ram[0] = 0x3c // INC A (A starts at 0 -> 1)
	ram[1] = 0x3d // DEC A (1 -> 0, sets Z)

	c := z80.NewContext(mm, nil)
	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, err := c.Step(); err != nil {
		t.Fatalf("inc: %v", err)
	}
	if c.A != 1 {
		t.Fatalf("A = %d, want 1", c.A)
	}

	if _, err := c.Step(); err != nil {
		t.Fatalf("dec: %v", err)
	}
	if c.A != 0 {
		t.Fatalf("A = %d, want 0", c.A)
	}
}

func TestJRConditional(t *testing.T) {
	mm, ram := newFlatMap(t)
	ram[0] = 0x3d // DEC A (0 -> 0xff, Z clear)
	ram[1] = 0x28 // JR Z,+5 (not taken)
	ram[2] = 0x05
	ram[3] = 0x00 // NOP lands here when not taken

	c := z80.NewContext(mm, nil)
	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if _, err := c.Step(); err != nil {
		t.Fatalf("dec: %v", err)
	}
	res, err := c.Step()
	if err != nil {
		t.Fatalf("jr: %v", err)
	}
	if res.BranchSuccess {
		t.Fatal("expected JR Z to not be taken")
	}
	if c.PC != 3 {
		t.Fatalf("PC = %#x, want 3", c.PC)
	}
}

func TestBreakpoint(t *testing.T) {
	mm, ram := newFlatMap(t)
	ram[0] = 0x00

	c := z80.NewContext(mm, nil)
	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	c.Breakpoints = append(c.Breakpoints, 0)

	if _, err := c.Step(); err == nil {
		t.Fatal("expected breakpoint error")
	}
}
