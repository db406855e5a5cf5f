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

package m68k

import (
	"github.com/blastcore-emu/genesiscore/errors"
	"github.com/blastcore-emu/genesiscore/hardware/cpu/execution"
	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
)

// Watchpoint is a guest address range that should interrupt emulation on
// write, matching the teacher's watchpoint table carried on the CPU
// context rather than bolted on externally.
type Watchpoint struct {
	Start, End uint32
}

// Context is one 68000 CPU instance: its registers, the memory map it
// fetches and accesses through, and the debugger bookkeeping (breakpoints,
// watchpoints, should-return) the teacher's cpu.go carries directly on the
// CPU rather than in a separate debugger-owned table.
type Context struct {
	Registers

	Bus      *memorymap.MemoryMap
	Pointers memorymap.PointerTable

	cycle uint32

	Breakpoints []uint32
	Watchpoints []Watchpoint

	// shouldReturn is polled at instruction boundaries by RunUntil,
	// mirroring should_return on the teacher's CPU context.
	shouldReturn bool

	Result execution.Result
}

// NewContext creates a 68000 context wired to bus, resolving PtrIdx chunks
// through pointers (may be nil if the map has none).
func NewContext(bus *memorymap.MemoryMap, pointers memorymap.PointerTable) *Context {
	return &Context{Bus: bus, Pointers: pointers}
}

// Reset loads the initial SSP and PC from the reset vector at address 0,
// matching the 68000's power-on sequence, and enters supervisor mode.
func (c *Context) Reset() error {
	ssp, err := c.readLong(0)
	if err != nil {
		return err
	}
	pc, err := c.readLong(4)
	if err != nil {
		return err
	}
	c.SSP = ssp
	c.A[7] = ssp
	c.PC = pc
	c.SR = srS
	return nil
}

// Cycle implements scheduler.Device.
func (c *Context) Cycle() uint32 { return c.cycle }

// AdjustCycle implements scheduler.Device.
func (c *Context) AdjustCycle(delta uint32) {
	if delta > c.cycle {
		c.cycle = 0
	} else {
		c.cycle -= delta
	}
}

// RequestExit implements scheduler.Suspendable.
func (c *Context) RequestExit() { c.shouldReturn = true }

// RunUntil implements scheduler.Device: steps instructions until the cycle
// counter reaches target or RequestExit was called.
func (c *Context) RunUntil(target uint32) {
	c.shouldReturn = false
	for c.cycle < target && !c.shouldReturn {
		if _, err := c.Step(); err != nil {
			c.shouldReturn = true
		}
	}
}

func (c *Context) readByte(addr uint32) (uint8, error) {
	return c.Bus.ReadByte(addr, c.Pointers)
}

func (c *Context) readWord(addr uint32) (uint16, error) {
	return c.Bus.ReadWord(addr, c.Pointers)
}

func (c *Context) readLong(addr uint32) (uint32, error) {
	hi, err := c.Bus.ReadWord(addr, c.Pointers)
	if err != nil {
		return 0, err
	}
	lo, err := c.Bus.ReadWord(addr+2, c.Pointers)
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

func (c *Context) writeWord(addr uint32, v uint16) error {
	return c.Bus.WriteWord(addr, v, c.Pointers)
}

func (c *Context) writeLong(addr uint32, v uint32) error {
	if err := c.Bus.WriteWord(addr, uint16(v>>16), c.Pointers); err != nil {
		return err
	}
	return c.Bus.WriteWord(addr+2, uint16(v), c.Pointers)
}

// fetchWord reads the word at PC and advances PC past it.
func (c *Context) fetchWord() (uint16, error) {
	w, err := c.readWord(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC += 2
	return w, nil
}

func (c *Context) push32(v uint32) error {
	c.A[7] -= 4
	return c.writeLong(c.A[7], v)
}

func (c *Context) pop32() (uint32, error) {
	v, err := c.readLong(c.A[7])
	if err != nil {
		return 0, err
	}
	c.A[7] += 4
	return v, nil
}

// IsWatched reports whether addr falls within any registered watchpoint.
func (c *Context) IsWatched(addr uint32) bool {
	for _, w := range c.Watchpoints {
		if addr >= w.Start && addr < w.End {
			return true
		}
	}
	return false
}

// Step decodes and executes exactly one instruction at PC, returning the
// completed execution.Result. Breakpoints are checked before the fetch: a
// breakpoint on the instruction's start address returns a WatchpointHit
// error and leaves PC at that address.
func (c *Context) Step() (execution.Result, error) {
	c.Result.Reset()
	start := c.PC
	c.Result.Address = start

	for _, bp := range c.Breakpoints {
		if bp == start {
			c.Result.Error = errors.Errorf(errors.WatchpointHit, start).Error()
			return c.Result, errors.Errorf(errors.WatchpointHit, start)
		}
	}

	opcode, err := c.fetchWord()
	if err != nil {
		c.Result.Error = err.Error()
		return c.Result, err
	}
	c.Result.ByteCount = 2

	entry := decode(opcode)
	if entry == nil {
		c.Result.Mnemonic = "ILLEGAL"
		c.Result.Final = true
		c.cycle += 4
		c.Result.Cycles = 4
		return c.Result, nil
	}

	c.Result.Mnemonic = entry.name
	cycles, err := entry.exec(c, opcode)
	if err != nil {
		c.Result.Error = err.Error()
		return c.Result, err
	}

	c.Result.ByteCount = int(c.PC - start)
	c.Result.Cycles = cycles
	c.Result.Final = true
	c.cycle += uint32(cycles)

	return c.Result, nil
}
