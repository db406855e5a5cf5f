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

package adpcm_test

import (
	"testing"

	"github.com/blastcore-emu/genesiscore/hardware/chips/adpcm"
)

func TestResetClearsFIFO(t *testing.T) {
	c := adpcm.New(4)
	c.DataWrite(0x1234)
	c.CtrlWrite(adpcm.CtrlReset)

	if got := c.DataRead(); got != 0x3F {
		t.Fatalf("DataRead after reset = %#x, want 0x3F (empty)", got)
	}
}

func TestSilenceCommandParksCounter(t *testing.T) {
	c := adpcm.New(1)
	c.CtrlWrite(adpcm.CtrlEnabled)
	c.DataWrite(0x0200) // cmd 0x02 (silence, n=2) in the high byte, pad byte low

	c.RunUntil(1)

	if len(c.OutputSamples) != 1 {
		t.Fatalf("expected 1 output sample, got %d", len(c.OutputSamples))
	}
}

func TestPlay256Command(t *testing.T) {
	c := adpcm.New(1)
	c.CtrlWrite(adpcm.CtrlEnabled)
	// cmd 0x40 | rate=1 selects the 256-sample play mode.
	c.DataWrite(0x4100)

	c.RunUntil(1)

	// The command byte is consumed on its own tick; the chip should now
	// be primed to decode 256 nibbles from the FIFO.
	if c.DataRead() == 0 {
		t.Fatal("expected FIFO to report empty-or-not via DataRead without panicking")
	}
}

func TestNextInterruptDisabledReturnsNever(t *testing.T) {
	c := adpcm.New(1)
	if got := c.NextInterrupt(); got != adpcm.CycleNever {
		t.Fatalf("NextInterrupt with CtrlIntEn clear = %#x, want CycleNever", got)
	}
}

func TestNextInterruptBelowThresholdIsImmediate(t *testing.T) {
	c := adpcm.New(1)
	c.CtrlWrite(adpcm.CtrlIntEn)
	if got := c.NextInterrupt(); got != c.Cycle() {
		t.Fatalf("NextInterrupt with empty FIFO = %d, want current cycle %d", got, c.Cycle())
	}
}
