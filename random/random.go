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

// Package random provides the randomisation used for RAM-at-reset and
// other non-deterministic-by-design parts of the emulation (real
// hardware powers on with indeterminate RAM contents; an emulator has to
// manufacture that indeterminism deliberately so that software bugs that
// depend on zeroed RAM are caught rather than hidden).
package random

import "math/rand"

// CycleSource supplies the current master-clock cycle count, used to seed
// randomisation that should vary run to run but stay reproducible for a
// single run's rewind/state-save history.
type CycleSource interface {
	Cycle() uint32
}

// Random is a seeded randomisation source. ZeroSeed forces a deterministic
// seed, for tests that need reproducible "random" RAM content.
type Random struct {
	ZeroSeed bool

	src *rand.Rand
}

// NewRandom creates a Random seeded from cs's current cycle count.
func NewRandom(cs CycleSource) *Random {
	r := &Random{}
	r.src = rand.New(rand.NewSource(int64(cs.Cycle())))
	return r
}

func (r *Random) seed() int64 {
	if r.ZeroSeed {
		return 0
	}
	return r.src.Int63()
}

// Rewindable returns a value for the i'th call in a sequence. With ZeroSeed
// set the value depends on i alone, so calling Rewindable(i) twice (on the
// same or on different Random instances) returns the same value. Without
// ZeroSeed each call draws a fresh base seed from the Random's source, so
// two calls with the same i return different values.
func (r *Random) Rewindable(i int) uint64 {
	src := rand.New(rand.NewSource(r.seed() + int64(i)))
	return src.Uint64()
}

// NoRewind returns a value in [0, n) that is not required to be
// reproducible across rewinds - used for randomisation that only needs to
// vary once, at power-on.
func (r *Random) NoRewind(n int) int {
	if n <= 0 {
		return 0
	}
	return r.src.Intn(n)
}
