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

package fm

// PSGState is an exported snapshot of a PSG's state, for the save
// state writer's TagPSG section.
type PSGState struct {
	Channels       [4]PSGChannel
	LatchedChannel uint8
	LatchedIsVol   bool
}

// Snapshot captures the PSG's full state.
func (p *PSG) Snapshot() PSGState {
	return PSGState{
		Channels:       p.Channels,
		LatchedChannel: p.latchedChannel,
		LatchedIsVol:   p.latchedIsVol,
	}
}

// Restore replaces the PSG's state with s.
func (p *PSG) Restore(s PSGState) {
	p.Channels = s.Channels
	p.latchedChannel = s.LatchedChannel
	p.latchedIsVol = s.LatchedIsVol
}
