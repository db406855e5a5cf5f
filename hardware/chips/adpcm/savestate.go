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

package adpcm

// State is an exported snapshot of a Chip's FIFO and playback state, for
// the save state writer's PCM-adjacent section (the ADPCM chip shares
// spec.md §6.4's PCM tag - there's no separate tag for it since both are
// CD-side sample playback devices).
type State struct {
	Ctrl        uint16
	Counter     uint16
	Rate        uint16
	Samples     uint16
	Output      int16
	FIFO        [0x40]uint8
	FIFORead    uint8
	FIFOWrite   uint8
	ADPCMState  uint8
	NibbleStore uint8
}

// Snapshot captures the chip's full state, excluding OutputSamples (a
// host-side accumulation buffer, not architectural state).
func (c *Chip) Snapshot() State {
	return State{
		Ctrl:        c.ctrl,
		Counter:     c.counter,
		Rate:        c.rate,
		Samples:     c.samples,
		Output:      c.output,
		FIFO:        c.fifo,
		FIFORead:    c.fifoRead,
		FIFOWrite:   c.fifoWrite,
		ADPCMState:  c.adpcmState,
		NibbleStore: c.nibbleStore,
	}
}

// Restore replaces the chip's state with s.
func (c *Chip) Restore(s State) {
	c.ctrl = s.Ctrl
	c.counter = s.Counter
	c.rate = s.Rate
	c.samples = s.Samples
	c.output = s.Output
	c.fifo = s.FIFO
	c.fifoRead = s.FIFORead
	c.fifoWrite = s.FIFOWrite
	c.adpcmState = s.ADPCMState
	c.nibbleStore = s.NibbleStore
}
