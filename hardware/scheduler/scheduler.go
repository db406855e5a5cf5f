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

// Package scheduler implements the single-threaded cooperative catch-up
// discipline that interleaves the main CPU, a secondary CPU, the video
// display processor, the audio chips, and the CD-ROM MCU.
//
// Unlike a delta-queue event scheduler (one sorted list of "next event in N
// cycles", as emu/event implements for a single CPU), every device here
// tracks its own absolute master-clock cycle counter and is driven forward
// by calling RunUntil with the driving device's current cycle. This is what
// lets a later device observe an earlier device's side effects (VDP
// register writes, interrupt assertions) without the scheduler needing a
// global merged event list - the ordering guarantee falls out of always
// catching up the callee before applying its side effect.
package scheduler

// RebaseThreshold is the cycle value at which every device's counter is
// rebased, since counters are 32-bit master-clock ticks and would
// otherwise overflow in well under two minutes of NTSC Genesis time.
const RebaseThreshold = 1 << 30

// RebaseMargin is subtracted from RebaseThreshold (rather than rebasing at
// the exact threshold) so that a device whose counter has already run
// slightly ahead of the driver doesn't rebase into negative territory.
const RebaseMargin = 1 << 20

// Device is any component with its own monotonic master-clock cycle
// counter, driven forward in its own unit (instruction, sample, nibble) by
// RunUntil. RunUntil must be safe to call with a target at or behind the
// device's current cycle (a no-op in that case).
type Device interface {
	// Cycle returns the device's current master-clock position.
	Cycle() uint32

	// RunUntil advances the device until Cycle() >= target, or until the
	// device requests an early return (set via RequestExit on whichever
	// device supports suspension - only the CPUs do).
	RunUntil(target uint32)

	// AdjustCycle subtracts delta from every internal cycle counter the
	// device tracks (saturating at 0), keeping any "next event" cycle
	// consistent with the new base.
	AdjustCycle(delta uint32)
}

// Suspendable is implemented by devices whose RunUntil loop can be asked to
// return to the scheduler before reaching its target - in practice only a
// recompiled/interpreted CPU, whose translated code polls a cycle-limit
// check at instruction boundaries.
type Suspendable interface {
	Device
	// RequestExit causes the next cycle-limit check inside RunUntil to
	// return control to the scheduler, even though Cycle() < target.
	RequestExit()
}

// Scheduler drives one primary device (the main CPU) forward by a frame
// slice, then catches up every other registered device to it in turn.
type Scheduler struct {
	driver    Device
	followers []Device

	frameSlice uint32
	lastSync   uint32
}

// NewScheduler creates a Scheduler whose driver is the highest-latency
// device (the main CPU) and whose followers catch up to it every tick.
// frameSlice is the number of master-clock cycles advanced per Tick call.
func NewScheduler(driver Device, frameSlice uint32, followers ...Device) *Scheduler {
	return &Scheduler{
		driver:     driver,
		followers:  followers,
		frameSlice: frameSlice,
	}
}

// Tick advances the driver by one frame slice, then catches up every
// follower to the driver's new cycle in registration order - the order
// matters when a follower's catch-up step can itself raise interrupts or
// side effects meant to be visible to a later follower in the same tick
// (e.g. VDP before audio chips, matching the component order in §4.4).
// It rebases every device's counters when the driver crosses
// RebaseThreshold.
func (s *Scheduler) Tick() {
	target := s.lastSync + s.frameSlice
	s.driver.RunUntil(target)
	s.lastSync = s.driver.Cycle()

	for _, f := range s.followers {
		f.RunUntil(s.lastSync)
	}

	if s.lastSync >= RebaseThreshold {
		s.Rebase(s.lastSync - RebaseMargin)
	}
}

// Rebase subtracts delta from every device's counters, including the
// driver, and from the scheduler's own lastSync - the deduction every live
// counter receives is identical, which is what keeps devices' relative
// cycle positions (and therefore interrupt ordering) unchanged across a
// rebase.
func (s *Scheduler) Rebase(delta uint32) {
	s.driver.AdjustCycle(delta)
	for _, f := range s.followers {
		f.AdjustCycle(delta)
	}
	if delta > s.lastSync {
		s.lastSync = 0
	} else {
		s.lastSync -= delta
	}
}

// RequestExit asks the driver to return to the scheduler at its next
// cycle-limit check, if the driver supports suspension. Used to cleanly
// stop emulation (e.g. the host wants to pause or save state) without
// waiting for the current frame slice to finish.
func (s *Scheduler) RequestExit() {
	if sus, ok := s.driver.(Suspendable); ok {
		sus.RequestExit()
	}
}

// AdjustForSideEffect catches up dev to cycle before a memory-mapped write
// from another device is applied to it, matching the ordering guarantee
// that a write is only seen by dev after dev has reached the writer's
// current cycle.
func AdjustForSideEffect(dev Device, cycle uint32) {
	if dev.Cycle() < cycle {
		dev.RunUntil(cycle)
	}
}
