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

package cdc

// State is an exported snapshot of an LC8951's state, for the save
// state writer's TagCDC section. ByteHandler is intentionally excluded -
// it's a host-side wiring callback, not guest-visible state, and is
// re-attached by whatever re-creates the LC8951 around the restored
// State.
type State struct {
	DecodeEnd   uint32
	TransferEnd uint32
	PTLInternal uint16

	Buffer [BufferSize]uint8
	Regs   [16]uint8
	Comin  [8]uint8

	DAC        uint16
	CominWrite uint8
	CominCount uint8
	IFCTRL     uint8
	CTRL0      uint8
	CTRL1      uint8
	AR         uint8
	ARMask     uint8
}

// Snapshot captures the chip's full state.
func (c *LC8951) Snapshot() State {
	return State{
		DecodeEnd:   c.decodeEnd,
		TransferEnd: c.transferEnd,
		PTLInternal: c.ptlInternal,
		Buffer:      c.Buffer,
		Regs:        c.Regs,
		Comin:       c.Comin,
		DAC:         c.dac,
		CominWrite:  c.cominWrite,
		CominCount:  c.cominCount,
		IFCTRL:      c.ifctrl,
		CTRL0:       c.ctrl0,
		CTRL1:       c.ctrl1,
		AR:          c.ar,
		ARMask:      c.arMask,
	}
}

// Restore replaces the chip's state with s, preserving the live
// ByteHandler.
func (c *LC8951) Restore(s State) {
	c.decodeEnd = s.DecodeEnd
	c.transferEnd = s.TransferEnd
	c.ptlInternal = s.PTLInternal
	c.Buffer = s.Buffer
	c.Regs = s.Regs
	c.Comin = s.Comin
	c.dac = s.DAC
	c.cominWrite = s.CominWrite
	c.cominCount = s.CominCount
	c.ifctrl = s.IFCTRL
	c.ctrl0 = s.CTRL0
	c.ctrl1 = s.CTRL1
	c.ar = s.AR
	c.arMask = s.ARMask
}
