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

package cdd_test

import (
	"testing"

	"github.com/blastcore-emu/genesiscore/hardware/chips/cdd"
	"github.com/blastcore-emu/genesiscore/hardware/clocks"
)

type stubDisc struct{}

func (stubDisc) TrackCount() int         { return 10 }
func (stubDisc) TrackLBA(track int) uint32 { return uint32(track) * 1000 }
func (stubDisc) LeadOutLBA() uint32      { return 250000 }

func TestStatusChecksumInvariant(t *testing.T) {
	m := cdd.NewMCU(stubDisc{})
	m.RunUntil(clocks.SectorClocks + clocks.ProcessingDelay + clocks.NibbleClocks)

	pkt := m.StatusBuffer()
	if !cdd.VerifyChecksum(pkt) {
		t.Fatalf("status packet %v fails checksum invariant", pkt)
	}
}

func TestIdleStatusNibbleProgression(t *testing.T) {
	m := cdd.NewMCU(stubDisc{})

	if m.CurrentStatusNibble() != -1 {
		t.Fatalf("expected idle nibble position at start, got %d", m.CurrentStatusNibble())
	}

	m.RunUntil(clocks.SectorClocks + clocks.ProcessingDelay + 1)
	if m.CurrentStatusNibble() != 0 {
		t.Fatalf("expected nibble output to have started, got %d", m.CurrentStatusNibble())
	}
}

func TestPlayCommandAdvancesHead(t *testing.T) {
	m := cdd.NewMCU(stubDisc{})

	pkt := [10]uint8{uint8(cdd.CmdPlay) << 4}
	// compute checksum manually matching the package's own algorithm
	var sum uint8
	for i := 0; i < 9; i++ {
		sum += pkt[i]
	}
	pkt[9] = (^sum) & 0x0f

	before := m.HeadPBA()
	m.ReceiveCommand(pkt)
	m.RunUntil(clocks.SectorClocks * 3)

	if m.HeadPBA() <= before {
		t.Fatalf("expected head to advance under Play, got %d (was %d)", m.HeadPBA(), before)
	}
}

func TestBadChecksumSetsErrorStatus(t *testing.T) {
	m := cdd.NewMCU(stubDisc{})
	pkt := [10]uint8{uint8(cdd.CmdPlay) << 4, 0, 0, 0, 0, 0, 0, 0, 0, 0x00}
	m.ReceiveCommand(pkt)
	m.RunUntil(clocks.SectorClocks + clocks.ProcessingDelay + clocks.NibbleClocks)

	status := m.StatusBuffer()[0] >> 4
	if cdd.DriveStatus(status) != cdd.StatusSumError {
		t.Fatalf("expected SumError status after bad checksum, got %d", status)
	}
}

func TestAdjustCycleSaturatesAtZero(t *testing.T) {
	m := cdd.NewMCU(stubDisc{})
	m.RunUntil(100)
	m.AdjustCycle(1_000_000)
	if m.Cycle() != 0 {
		t.Fatalf("Cycle() = %d, want 0 after an over-large AdjustCycle", m.Cycle())
	}
}
