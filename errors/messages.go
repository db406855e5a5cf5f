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

package errors

// additional error messages used outside of the core categories in
// categories.go. These are not individually classified by Kind; callers
// that need propagation rules for these should wrap them with one of the
// category heads instead.
const (
	// panics
	PanicError = "panic: %v: %v"

	// memory
	UnpokeableAddress = "memory error: cannot poke address (%v)"
	UnpeekableAddress = "memory error: cannot peek address (%v)"
	MemoryBusError    = "memory error: inaccessible address (%v)"

	// cartridges
	CartridgeError       = "cartridge error: %v"
	CartridgeNotMappable = "cartridge error: bank %d can not be mapped to that address (%#04x)"
	CartridgePatchOOB    = "cartridge error: patch offset too high (%#04x)"

	// prefs
	Prefs         = "prefs: %v"
	PrefsNoFile   = "prefs: no file (%s)"
	PrefsNotValid = "prefs: not a valid prefs file (%s)"

	// save state
	SaveStateError = "savestate: %v"

	// media
	MediaFormatError = "media: %v"
)
