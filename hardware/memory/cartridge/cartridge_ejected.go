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

import (
	"github.com/blastcore-emu/genesiscore/errors"
	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
)

const ejectedName = "ejected"

// ejected implements the cartMapper interface for when no cartridge is
// attached. It publishes no chunks, so every read and write through the
// cartridge bus returns a memory bus error.
type ejected struct {
	description string
}

func newEjected() *ejected {
	cart := &ejected{description: ejectedName}
	cart.initialise()
	return cart
}

func (cart ejected) String() string {
	return cart.description
}

func (cart *ejected) initialise() {
}

func (cart *ejected) chunks() []*memorymap.MemChunk {
	return nil
}

func (cart *ejected) Pointer(idx int) []byte {
	return nil
}

func (cart ejected) numBanks() int {
	return 0
}

func (cart ejected) getBank(addr uint32) int {
	return 0
}

func (cart *ejected) saveState() interface{} {
	return nil
}

func (cart *ejected) restoreState(state interface{}) error {
	return nil
}

func (cart *ejected) poke(addr uint32, data uint8) error {
	return errors.Errorf(errors.CartridgeEjected, addr)
}

func (cart *ejected) patch(offset uint32, data uint8) error {
	return errors.Errorf(errors.CartridgeEjected, offset)
}

func (cart ejected) getRAMinfo() []RAMinfo {
	return nil
}
