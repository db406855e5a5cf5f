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

package system

import (
	"github.com/blastcore-emu/genesiscore/cartridgeloader"
	"github.com/blastcore-emu/genesiscore/environment"
	"github.com/blastcore-emu/genesiscore/hardware/clocks"
	"github.com/blastcore-emu/genesiscore/hardware/cpu/z80"
	"github.com/blastcore-emu/genesiscore/hardware/memory/cartridge"
	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
	"github.com/blastcore-emu/genesiscore/hardware/scheduler"
	"github.com/blastcore-emu/genesiscore/savestate"
)

// Console8 is the Z80-driven machine family: Master System and
// ColecoVision. Unlike Console (Genesis/Sega CD/Pico, all 68000-driven
// with a Z80 audio coprocessor), these machines have no second CPU and
// no companion sound chips beyond whatever the cartridge mapper itself
// exposes, so the wiring is a single CPU against a single MemoryMap - far
// closer to the teacher's own VCS (one CPU, one bus) than Console is.
type Console8 struct {
	env *environment.Environment

	Cart *cartridge.Cartridge
	CPU  *z80.Context

	scheduler *scheduler.Scheduler
}

// frameSliceZ80 is the number of driver-clock ticks advanced per
// RunFrame call, sized for a 60Hz frame at the Z80's NTSC rate.
const frameSliceZ80 = clocks.NTSC_Z80 / 60

// NewConsole8 creates an ejected Console8 ready to Boot a cartridge.
func NewConsole8(env *environment.Environment) *Console8 {
	cart := cartridge.NewCartridge(env)
	bus := memorymap.NewMemoryMap(cart.Chunks()...)
	cpu := z80.NewContext(bus, cart)

	return &Console8{
		env:       env,
		Cart:      cart,
		CPU:       cpu,
		scheduler: scheduler.NewScheduler(cpu, frameSliceZ80),
	}
}

// Boot attaches ld's cartridge data, rebuilds the CPU's bus over the
// newly selected mapper's chunks, and resets.
func (c *Console8) Boot(ld cartridgeloader.Loader) error {
	if err := c.Cart.Attach(ld); err != nil {
		return err
	}
	c.CPU.Bus = memorymap.NewMemoryMap(c.Cart.Chunks()...)
	c.CPU.Pointers = c.Cart
	return c.CPU.Reset()
}

// RunFrame advances the machine by one frame slice.
func (c *Console8) RunFrame() {
	c.scheduler.Tick()
}

// RequestExit asks the running frame to stop at its next instruction
// boundary rather than completing the full slice.
func (c *Console8) RequestExit() {
	c.scheduler.RequestExit()
}

// SaveState serialises the CPU and cartridge mapper state.
func (c *Console8) SaveState() []byte {
	reg := savestate.NewRegistry()
	reg.Register(cpuZ80Handler{c.CPU})
	reg.Register(cartHandler{c.Cart})
	return reg.Save()
}

// LoadState restores a save state produced by SaveState.
func (c *Console8) LoadState(data []byte) error {
	reg := savestate.NewRegistry()
	reg.Register(cpuZ80Handler{c.CPU})
	reg.Register(cartHandler{c.Cart})
	return reg.Load(data)
}
