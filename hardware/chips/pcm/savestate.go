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

package pcm

// State is an exported snapshot of a Chip's state, for the savestate
// package's TagPCM section. Grounded on the same field set rf5c164.c's
// serialize path would need: sample RAM, the eight channels' pointers and
// registers, and the chip-global bank/selection scalars - this is the
// "struct copy" half of Gopher2600's own Snapshot pattern
// (hardware/cpu/cpu.go's CPU.Snapshot), just exported for cross-package
// use by the save state writer.
type State struct {
	RAM      [0x10000]uint8
	Channels [8]Channel

	RAMBank         uint16
	PendingAddress  uint16
	PendingByte     uint8
	Left, Right     int32
	ChannelEnable   uint8
	SelectedChannel uint8
	CurChannel      uint8
	Step            uint8
	Flags           uint8
}

// Snapshot captures the chip's full state.
func (c *Chip) Snapshot() State {
	return State{
		RAM:             c.RAM,
		Channels:        c.Channels,
		RAMBank:         c.ramBank,
		PendingAddress:  c.pendingAddress,
		PendingByte:     c.pendingByte,
		Left:            c.left,
		Right:           c.right,
		ChannelEnable:   c.channelEnable,
		SelectedChannel: c.selectedChannel,
		CurChannel:      c.curChannel,
		Step:            c.step,
		Flags:           c.flags,
	}
}

// Restore replaces the chip's state with s.
func (c *Chip) Restore(s State) {
	c.RAM = s.RAM
	c.Channels = s.Channels
	c.ramBank = s.RAMBank
	c.pendingAddress = s.PendingAddress
	c.pendingByte = s.PendingByte
	c.left = s.Left
	c.right = s.Right
	c.channelEnable = s.ChannelEnable
	c.selectedChannel = s.SelectedChannel
	c.curChannel = s.CurChannel
	c.step = s.Step
	c.flags = s.Flags
}
