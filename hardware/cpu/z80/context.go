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

package z80

import (
	"github.com/blastcore-emu/genesiscore/errors"
	"github.com/blastcore-emu/genesiscore/hardware/cpu/execution"
	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
)

// Watchpoint is a guest address range that interrupts emulation on write.
type Watchpoint struct {
	Start, End uint16
}

// Context is one Z80 CPU instance. Unlike m68k.Context the bus is accessed
// one byte at a time throughout - the Z80 has no native word-sized bus
// transfer, and memorymap.ReadWord/WriteWord assume 68000 big-endian
// packing that doesn't apply here.
type Context struct {
	Registers

	Bus      *memorymap.MemoryMap
	Pointers memorymap.PointerTable

	cycle uint32

	Breakpoints []uint16
	Watchpoints []Watchpoint

	shouldReturn bool

	Result execution.Result
}

// NewContext creates a Z80 context wired to bus.
func NewContext(bus *memorymap.MemoryMap, pointers memorymap.PointerTable) *Context {
	return &Context{Bus: bus, Pointers: pointers}
}

// Reset sets PC to 0 and I/R to 0, matching the Z80 power-on/reset state.
// Unlike the 68000 there is no vector to read - execution simply begins at
// address 0.
func (c *Context) Reset() error {
	c.PC = 0
	c.I = 0
	c.R = 0
	c.IFF1 = false
	c.IFF2 = false
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

// RunUntil implements scheduler.Device.
func (c *Context) RunUntil(target uint32) {
	c.shouldReturn = false
	for c.cycle < target && !c.shouldReturn {
		if _, err := c.Step(); err != nil {
			c.shouldReturn = true
		}
	}
}

func (c *Context) readByte(addr uint16) (uint8, error) {
	return c.Bus.ReadByte(uint32(addr), c.Pointers)
}

func (c *Context) writeByte(addr uint16, v uint8) error {
	return c.Bus.WriteByte(uint32(addr), v, c.Pointers)
}

// readWordLE reads two consecutive bytes as a little-endian word, the
// Z80's native multi-byte packing (opposite of the 68000's big-endian bus).
func (c *Context) readWordLE(addr uint16) (uint16, error) {
	lo, err := c.readByte(addr)
	if err != nil {
		return 0, err
	}
	hi, err := c.readByte(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (c *Context) writeWordLE(addr uint16, v uint16) error {
	if err := c.writeByte(addr, uint8(v)); err != nil {
		return err
	}
	return c.writeByte(addr+1, uint8(v>>8))
}

// fetchByte reads the byte at PC and advances PC past it.
func (c *Context) fetchByte() (uint8, error) {
	b, err := c.readByte(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC++
	return b, nil
}

func (c *Context) fetchWordLE() (uint16, error) {
	lo, err := c.fetchByte()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetchByte()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (c *Context) push16(v uint16) error {
	c.SP -= 2
	return c.writeWordLE(c.SP, v)
}

func (c *Context) pop16() (uint16, error) {
	v, err := c.readWordLE(c.SP)
	if err != nil {
		return 0, err
	}
	c.SP += 2
	return v, nil
}

// IsWatched reports whether addr falls within any registered watchpoint.
func (c *Context) IsWatched(addr uint16) bool {
	for _, w := range c.Watchpoints {
		if addr >= w.Start && addr < w.End {
			return true
		}
	}
	return false
}

// Step decodes and executes exactly one instruction at PC.
func (c *Context) Step() (execution.Result, error) {
	c.Result.Reset()
	start := c.PC
	c.Result.Address = uint32(start)

	for _, bp := range c.Breakpoints {
		if bp == start {
			err := errors.Errorf(errors.WatchpointHit, start)
			c.Result.Error = err.Error()
			return c.Result, err
		}
	}

	opcode, err := c.fetchByte()
	if err != nil {
		c.Result.Error = err.Error()
		return c.Result, err
	}
	c.Result.ByteCount = 1

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
