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
	"github.com/blastcore-emu/genesiscore/environment"
	"github.com/blastcore-emu/genesiscore/system"
	"github.com/blastcore-emu/genesiscore/test"
)

// fakePrefs satisfies environment.Preferences without touching disk,
// mirroring how hardware/scheduler's fakeDevice stands in for a real
// scheduler.Device in that package's own tests.
type fakePrefs struct {
	region       string
	randomiseRAM bool
}

func (p fakePrefs) Region() string     { return p.region }
func (p fakePrefs) RandomiseRAM() bool { return p.randomiseRAM }

func newTestEnv() *environment.Environment {
	return environment.NewEnvironment(environment.MainEmulation, fakePrefs{region: "NTSC"}, 1)
}

// genesisROM builds a minimal ROM image with a reset vector (SSP, PC)
// at the start, big-endian as the 68000 requires.
func genesisROM(size int) []byte {
	rom := make([]byte, size)
	rom[0], rom[1], rom[2], rom[3] = 0x00, 0x10, 0x00, 0x00 // SSP = 0x00100000
	rom[4], rom[5], rom[6], rom[7] = 0x00, 0x00, 0x04, 0x00 // PC = 0x00000400
	return rom
}

func TestNewConsoleWiresEveryDevice(t *testing.T) {
	c := system.NewConsole(newTestEnv())
	test.ExpectInequality(t, c.Cart, nil)
	test.ExpectInequality(t, c.CPU, nil)
	test.ExpectInequality(t, c.SoundCPU, nil)
	test.ExpectInequality(t, c.FM, nil)
	test.ExpectInequality(t, c.PSG, nil)
	test.ExpectInequality(t, c.CDC, nil)
	test.ExpectInequality(t, c.CDD, nil)
	test.ExpectInequality(t, c.Graphics, nil)
	test.ExpectInequality(t, c.PCM, nil)
	test.ExpectInequality(t, c.ADPCM, nil)
	test.ExpectInequality(t, c.VDP, nil)
	test.ExpectInequality(t, c.IO, nil)
}

func TestBootCartridgeResetsCPUToROMVector(t *testing.T) {
	c := system.NewConsole(newTestEnv())

	ld, err := cartridgeloader.NewLoaderFromData("game.bin", genesisROM(0x1000), "AUTO")
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, c.Boot(ld))
	test.ExpectEquality(t, c.CPU.PC, uint32(0x00000400))
	test.ExpectEquality(t, c.CPU.SSP, uint32(0x00100000))
}

func TestBootDiscImagePropagatesOpenFailure(t *testing.T) {
	c := system.NewConsole(newTestEnv())

	ld, err := cartridgeloader.NewLoaderFromFilename("nonexistent-disc.iso", "AUTO")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ld.IsDiscImage, true)

	// OpenDisc reads from ld.Filename on disk; a missing file should
	// surface as a Boot error rather than a panic, and a real disc image
	// would carry the same shape - this tree has no Sega CD BIOS to run
	// even once a disc opens, so the CPU is left unreset in both cases.
	test.ExpectFailure(t, c.Boot(ld))
}

func TestRunFrameAdvancesCPUCycles(t *testing.T) {
	c := system.NewConsole(newTestEnv())

	ld, err := cartridgeloader.NewLoaderFromData("game.bin", genesisROM(0x1000), "AUTO")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, c.Boot(ld))

	before := c.CPU.Cycle()
	c.RunFrame()
	test.Equate(t, c.CPU.Cycle() > before, true)
}

func TestSaveStateRoundTripRestoresCPURegisters(t *testing.T) {
	c := system.NewConsole(newTestEnv())

	ld, err := cartridgeloader.NewLoaderFromData("game.bin", genesisROM(0x1000), "AUTO")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, c.Boot(ld))

	c.RunFrame()
	saved := c.SaveState()

	other := system.NewConsole(newTestEnv())
	test.ExpectSuccess(t, other.Boot(ld))
	test.ExpectSuccess(t, other.LoadState(saved))

	test.ExpectEquality(t, other.CPU.PC, c.CPU.PC)
	test.ExpectEquality(t, other.CPU.SSP, c.CPU.SSP)
	test.ExpectEquality(t, other.CPU.Cycle(), c.CPU.Cycle())
}
