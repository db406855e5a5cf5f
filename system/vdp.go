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

// vdpStub is a deliberately minimal stand-in for the Genesis VDP: no
// video display processor module appears anywhere in this tree's module
// list or invariant set, so there is nothing to port a real scanline
// renderer against. What's here exists only so guest code polling the
// control port's VBLANK/HBLANK status bits while waiting for a frame
// boundary can observe the bit flip and fall out of its wait loop,
// rather than spinning forever against a register that never changes.
//
// control holds the last word written to the control port (mode-register
// programming is accepted and discarded); status is toggled by
// console.go once per RunFrame to simulate the VBLANK flag's rhythm.
type vdpStub struct {
	control uint16
	status  uint16
}

const vdpStatusVBlank = 0x0008

func newVDPStub() *vdpStub {
	return &vdpStub{status: vdpStatusVBlank}
}

// toggleVBlank flips the VBLANK status bit, called once per emulated
// frame by Console.RunFrame.
func (v *vdpStub) toggleVBlank() {
	v.status ^= vdpStatusVBlank
}

// readData always returns zero: no framebuffer exists to read pixel or
// CRAM data back from.
func (v *vdpStub) readData() uint16 { return 0 }

func (v *vdpStub) writeData(uint16) {}

func (v *vdpStub) readControl() uint16 { return v.status }

func (v *vdpStub) writeControl(value uint16) { v.control = value }
