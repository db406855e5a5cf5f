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
	"io"
	"path/filepath"
	"strings"

	"github.com/blastcore-emu/genesiscore/cartridgeloader"
	"github.com/blastcore-emu/genesiscore/environment"
	"github.com/blastcore-emu/genesiscore/errors"
	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
	"github.com/blastcore-emu/genesiscore/logger"
)

// console identifies which machine a cartridge's mapper was built for, as
// inferred from the loader's extension or an explicit Mapping override.
type console int

const (
	consoleGenesis console = iota
	consoleSMS
	consoleColeco
)

// Cartridge owns the attached mapper and exposes it to the rest of the
// system as a single memorymap.MemoryMap plus the debugger/patch operations
// every mapper supports. Generalises the teacher's Cartridge type, which
// wraps one of ~30 Atari bank-switch schemes, down to a dispatch across the
// three console families this core targets.
type Cartridge struct {
	env *environment.Environment

	Filename  string
	ShortName string
	Hash      string

	mapper cartMapper
	bus    *memorymap.MemoryMap
}

// NewCartridge is the preferred method of initialisation for the Cartridge
// type.
func NewCartridge(env *environment.Environment) *Cartridge {
	cart := &Cartridge{env: env}
	cart.Eject()
	return cart
}

func (cart *Cartridge) String() string {
	return cart.ShortName
}

// Eject removes the attached mapper and replaces it with a stub that maps
// no memory.
func (cart *Cartridge) Eject() {
	cart.Filename = "ejected"
	cart.ShortName = "ejected"
	cart.Hash = ""
	cart.mapper = newEjected()
	cart.bus = memorymap.NewMemoryMap(cart.mapper.chunks()...)
}

// IsEjected returns true if no cartridge is attached.
func (cart *Cartridge) IsEjected() bool {
	_, ok := cart.mapper.(*ejected)
	return ok
}

// Attach loads cartload's data and selects a mapper for it, inferring the
// target console from the file extension unless cartload.Mapping overrides
// it explicitly.
func (cart *Cartridge) Attach(cartload cartridgeloader.Loader) error {
	cart.Filename = cartload.Filename
	cart.ShortName = cartload.Name
	cart.Hash = cartload.HashSHA1
	cart.mapper = newEjected()

	if err := cartload.Open(); err != nil {
		return errors.Errorf(errors.MediaOpenFailure, cartload.Filename)
	}
	defer cartload.Close()

	data, err := io.ReadAll(cartload)
	if err != nil {
		return errors.Errorf(errors.MediaOpenFailure, cartload.Filename)
	}

	which := identifyConsole(cartload)

	switch which {
	case consoleGenesis:
		sramSize, saveType := segaSaveLayout(cartload.Mapping)
		cart.mapper = newSegaMapper(data, sramSize, saveType)
	case consoleSMS:
		cart.mapper = newSMSMapper(data)
	case consoleColeco:
		bios := make([]byte, 0x2000)
		cart.mapper = newColecoMapper(bios, data)
	default:
		return errors.Errorf(errors.UnsupportedMapper, cartload.Mapping)
	}

	cart.bus = memorymap.NewMemoryMap(cart.mapper.chunks()...)
	logger.Logf("cartridge", "inserted %s (%s)", cart.ShortName, cart.mapper)

	return nil
}

// identifyConsole infers the target machine from the loader's Mapping value
// when it names one ("SMS" or "COLECO"), and from the filename extension
// otherwise.
func identifyConsole(cartload cartridgeloader.Loader) console {
	mapping := strings.ToUpper(strings.TrimSpace(cartload.Mapping))
	switch mapping {
	case "SMS", "SG":
		return consoleSMS
	case "COLECO", "CV":
		return consoleColeco
	case "MD", "GEN", "GENESIS":
		return consoleGenesis
	}

	switch strings.ToUpper(filepath.Ext(cartload.Filename)) {
	case ".SMS", ".SG":
		return consoleSMS
	case ".COL":
		return consoleColeco
	default:
		return consoleGenesis
	}
}

// segaSaveLayout maps an explicit SRAM hint ("SRAM", "SRAMEVEN", "SRAMODD")
// in the Mapping field to a save-RAM size and bus layout. Absent a hint, no
// SRAM window is created.
func segaSaveLayout(mapping string) (uint32, segaSaveType) {
	switch strings.ToUpper(mapping) {
	case "SRAM":
		return 0x10000, saveRAMBoth
	case "SRAMEVEN":
		return 0x10000, saveRAMEven
	case "SRAMODD":
		return 0x10000, saveRAMOdd
	default:
		return 0, saveRAMBoth
	}
}

// Read implements the CPU-facing read side of the cartridge's memory map.
func (cart *Cartridge) Read(addr uint32) (uint8, error) {
	return cart.bus.ReadByte(addr, cart.mapper)
}

// ReadWord reads a 16-bit value, matching the 68000/Z80 word bus.
func (cart *Cartridge) ReadWord(addr uint32) (uint16, error) {
	return cart.bus.ReadWord(addr, cart.mapper)
}

// Write implements the CPU-facing write side of the cartridge's memory map.
func (cart *Cartridge) Write(addr uint32, data uint8) error {
	return cart.bus.WriteByte(addr, data, cart.mapper)
}

// WriteWord writes a 16-bit value, matching the 68000/Z80 word bus.
func (cart *Cartridge) WriteWord(addr uint32, data uint16) error {
	return cart.bus.WriteWord(addr, data, cart.mapper)
}

// Peek is a non-intrusive read, used by the debugger. Cartridge mappers
// have no side effects on read so this is equivalent to Read.
func (cart *Cartridge) Peek(addr uint32) (uint8, error) {
	return cart.bus.ReadByte(addr, cart.mapper)
}

// Poke writes a new value directly into the currently selected bank,
// bypassing bank-register semantics, for use by the debugger.
func (cart *Cartridge) Poke(addr uint32, data uint8) error {
	return cart.mapper.poke(addr, data)
}

// Patch modifies the underlying ROM image as though re-read from disk.
func (cart *Cartridge) Patch(offset uint32, data uint8) error {
	return cart.mapper.patch(offset, data)
}

// NumBanks returns the number of banks in the cartridge.
func (cart *Cartridge) NumBanks() int {
	return cart.mapper.numBanks()
}

// GetBank returns the bank currently mapped at addr.
func (cart *Cartridge) GetBank(addr uint32) int {
	return cart.mapper.getBank(addr)
}

// GetRAMinfo returns the read/write windows of any cartridge RAM.
func (cart *Cartridge) GetRAMinfo() []RAMinfo {
	return cart.mapper.getRAMinfo()
}

// Chunks returns the attached mapper's memory chunks, already expressed in
// final CPU address space, for the console to fold into the main CPU's
// unified MemoryMap alongside work RAM and hardware registers.
func (cart *Cartridge) Chunks() []*memorymap.MemChunk {
	return cart.mapper.chunks()
}

// Pointer resolves a PtrIdx chunk's indirect slot, so the console can pass
// the cartridge itself as the CPU's memorymap.PointerTable.
func (cart *Cartridge) Pointer(idx int) []byte {
	return cart.mapper.Pointer(idx)
}

// SaveState returns an opaque snapshot of mapper state for the savestate
// package to serialise.
func (cart *Cartridge) SaveState() interface{} {
	return cart.mapper.saveState()
}

// RestoreState restores mapper state from a snapshot produced by SaveState.
func (cart *Cartridge) RestoreState(state interface{}) error {
	return cart.mapper.restoreState(state)
}
