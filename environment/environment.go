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

// Package environment carries the context shared by every subsystem of a
// single emulated console instance - its preferences, its source of
// randomisation, and the media currently loaded - without those
// subsystems needing to import one another directly.
package environment

import (
	"github.com/blastcore-emu/genesiscore/cartridgeloader"
	"github.com/blastcore-emu/genesiscore/random"
)

// Label names an emulation instance. Useful when more than one emulation
// runs in the same process (e.g. a thumbnailer alongside the main run).
type Label string

// MainEmulation is the label used for the primary emulation.
const MainEmulation = Label("main")

// Preferences is the subset of the preference store every subsystem may
// need to consult. Defined here (rather than importing a concrete
// preferences package) so environment has no dependency on any one
// subsystem's preference cells.
type Preferences interface {
	Region() string
	RandomiseRAM() bool
}

// Environment is passed to every subsystem of a console instance.
type Environment struct {
	Label Label

	Prefs Preferences

	// Random is the source for any randomisation a subsystem needs (RAM
	// contents at reset, jitter in a model that calls for it).
	Random *random.Random

	// Loader is the currently attached media.
	Loader cartridgeloader.Loader
}

// cycleSource adapts a fixed seed to random.CycleSource, since environment
// construction happens before any device has accumulated cycles.
type cycleSource struct{ n uint32 }

func (c cycleSource) Cycle() uint32 { return c.n }

// NewEnvironment is the preferred method of initialisation for Environment.
func NewEnvironment(label Label, prefs Preferences, seed uint32) *Environment {
	return &Environment{
		Label:  label,
		Prefs:  prefs,
		Random: random.NewRandom(cycleSource{n: seed}),
	}
}

// IsEmulation reports whether this environment's label matches label.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging reports whether this environment is permitted to create
// new log entries - secondary emulations (e.g. a thumbnailer running
// alongside the main one) should stay quiet.
func (env *Environment) AllowLogging() bool {
	return env.IsEmulation(MainEmulation)
}
