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

// State is an exported snapshot of a Context's architectural registers
// and cycle position. The main 68000 isn't named in spec.md §6.4's tag
// list, but "core tags include" reads as representative rather than
// exhaustive, and a save state that can't restore the main CPU's own
// registers isn't one worth having - so this core registers its own tag
// in the savestate package (see savestate.TagM68K) alongside the
// distilled list.
type State struct {
	Registers
	Cycle uint32
}

// Snapshot captures the context's registers and cycle counter. The bus,
// pointer table, breakpoints and in-flight Result are left for the host
// to re-wire - they aren't part of guest-visible architectural state.
func (c *Context) Snapshot() State {
	return State{Registers: c.Registers, Cycle: c.cycle}
}

// Restore replaces the context's registers and cycle counter with s.
func (c *Context) Restore(s State) {
	c.Registers = s.Registers
	c.cycle = s.Cycle
}
