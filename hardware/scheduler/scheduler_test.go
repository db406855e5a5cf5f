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

package scheduler_test

import (
	"testing"

	"github.com/blastcore-emu/genesiscore/hardware/scheduler"
	"github.com/blastcore-emu/genesiscore/test"
)

type fakeDevice struct {
	cycle    uint32
	shouldRt bool
}

func (d *fakeDevice) Cycle() uint32 { return d.cycle }

func (d *fakeDevice) RunUntil(target uint32) {
	for d.cycle < target {
		if d.shouldRt {
			d.shouldRt = false
			return
		}
		d.cycle++
	}
}

func (d *fakeDevice) AdjustCycle(delta uint32) {
	if delta > d.cycle {
		d.cycle = 0
	} else {
		d.cycle -= delta
	}
}

func (d *fakeDevice) RequestExit() { d.shouldRt = true }

func TestTickAdvancesDriverThenFollowers(t *testing.T) {
	driver := &fakeDevice{}
	follower := &fakeDevice{}
	s := scheduler.NewScheduler(driver, 100, follower)

	s.Tick()

	test.ExpectEquality(t, driver.Cycle(), uint32(100))
	test.ExpectEquality(t, follower.Cycle(), uint32(100))
}

func TestRebaseAppliesSameDeltaToEveryDevice(t *testing.T) {
	driver := &fakeDevice{cycle: scheduler.RebaseThreshold}
	follower := &fakeDevice{cycle: scheduler.RebaseThreshold - 5}
	s := scheduler.NewScheduler(driver, 0, follower)

	s.Rebase(scheduler.RebaseThreshold - scheduler.RebaseMargin)

	test.ExpectEquality(t, driver.Cycle(), uint32(scheduler.RebaseMargin))
	test.ExpectEquality(t, follower.Cycle(), uint32(scheduler.RebaseMargin-5))
}

func TestRequestExitStopsDriverEarly(t *testing.T) {
	driver := &fakeDevice{}
	s := scheduler.NewScheduler(driver, 1000)

	s.RequestExit()
	s.Tick()

	test.Equate(t, driver.Cycle() < 1000, true)
}

func TestAdjustForSideEffectCatchesUpOnlyIfBehind(t *testing.T) {
	dev := &fakeDevice{cycle: 10}
	scheduler.AdjustForSideEffect(dev, 5)
	test.ExpectEquality(t, dev.Cycle(), uint32(10))

	scheduler.AdjustForSideEffect(dev, 20)
	test.ExpectEquality(t, dev.Cycle(), uint32(20))
}
