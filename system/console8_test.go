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

package system_test

import (
	"testing"

	"github.com/blastcore-emu/genesiscore/cartridgeloader"
	"github.com/blastcore-emu/genesiscore/system"
	"github.com/blastcore-emu/genesiscore/test"
)

func TestNewConsole8WiresCPUAndCartridge(t *testing.T) {
	c := system.NewConsole8(newTestEnv())
	test.ExpectInequality(t, c.CPU, nil)
	test.ExpectInequality(t, c.Cart, nil)
	test.ExpectEquality(t, c.CPU.PC, uint16(0))
}

func TestConsole8BootResetsRegistersAndBus(t *testing.T) {
	c := system.NewConsole8(newTestEnv())

	rom := make([]byte, 0x4000)
	rom[0] = 0xc3 // JP nn, a harmless first instruction
	ld, err := cartridgeloader.NewLoaderFromData("game.sms", rom, "AUTO")
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, c.Boot(ld))
	test.ExpectEquality(t, c.CPU.PC, uint16(0))
	test.ExpectEquality(t, c.CPU.IFF1, false)

	v, err := c.Cart.Read(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xc3))
}

func TestConsole8RunFrameAdvancesCycles(t *testing.T) {
	c := system.NewConsole8(newTestEnv())

	rom := make([]byte, 0x4000)
	ld, err := cartridgeloader.NewLoaderFromData("game.sms", rom, "AUTO")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, c.Boot(ld))

	before := c.CPU.Cycle()
	c.RunFrame()
	test.Equate(t, c.CPU.Cycle() > before, true)
}

func TestConsole8SaveStateRoundTrip(t *testing.T) {
	c := system.NewConsole8(newTestEnv())

	rom := make([]byte, 0x4000)
	ld, err := cartridgeloader.NewLoaderFromData("game.sms", rom, "AUTO")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, c.Boot(ld))
	c.RunFrame()

	saved := c.SaveState()

	other := system.NewConsole8(newTestEnv())
	test.ExpectSuccess(t, other.Boot(ld))
	test.ExpectSuccess(t, other.LoadState(saved))

	test.ExpectEquality(t, other.CPU.PC, c.CPU.PC)
	test.ExpectEquality(t, other.CPU.Cycle(), c.CPU.Cycle())
}
