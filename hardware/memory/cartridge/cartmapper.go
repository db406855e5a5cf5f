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
//
// *** NOTE: all historical versions of this file, as found in any
// git repository, are also covered by the licence, even when this
// notice is not present ***

package cartridge

import "github.com/blastcore-emu/genesiscore/hardware/memorymap"

// cartMapper implementations hold the loaded ROM data and contribute the
// memorymap.MemChunk entries that expose it (and any bank-switching
// registers) to a CPU's address space. The interface generalizes the
// teacher's mapper contract - read/write/bank bookkeeping, save state,
// poke/patch - from a flat 4K cartridge port to an address space where a
// mapper may publish several chunks (ROM window, register window, SRAM
// window) and back some of them with PtrIdx-indirected banks.
type cartMapper interface {
	// initialise resets mapper state (bank registers, SRAM enable) to
	// power-on defaults.
	initialise()

	// chunks returns the memorymap.MemChunk entries this mapper
	// contributes to the CPU address space it is mapped into.
	chunks() []*memorymap.MemChunk

	// Pointer resolves a PtrIdx slot used by this mapper's chunks,
	// implementing memorymap.PointerTable.
	Pointer(idx int) []byte

	numBanks() int
	getBank(addr uint32) (bank int)

	saveState() interface{}
	restoreState(interface{}) error

	// poke writes a new value anywhere into the currently selected bank
	// of cartridge memory (including ROM), bypassing normal write
	// semantics - a debugger operation.
	poke(addr uint32, data uint8) error

	// patch alters the data as though it was being read from disk, i.e.
	// it modifies the backing ROM image itself rather than a live bank
	// view of it.
	patch(offset uint32, data uint8) error

	getRAMinfo() []RAMinfo
}

// RAMinfo details the read/write addresses for any cartridge RAM.
type RAMinfo struct {
	Label       string
	Active      bool
	ReadOrigin  uint32
	ReadMemtop  uint32
	WriteOrigin uint32
	WriteMemtop uint32
}
