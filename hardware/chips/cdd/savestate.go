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

package cdd

// State is an exported snapshot of an MCU's state, for the save state
// writer's TagCDMCU section. Disc is excluded - it's re-attached from the
// loaded media image, not serialized into the save itself.
type State struct {
	Cycle           uint32
	LastSectorCycle uint32
	StatusStart     uint32
	NextNibbleCycle uint32

	CurrentStatusNibble int32
	CurrentCmdNibble    int32

	HeadPBA    uint32
	SeekPBA    uint32
	PausePBA   uint32
	CoarseSeek uint32
	Seeking    int32

	RequestedFormat StatusFormat
	RequestedTrack  uint8

	Status      DriveStatus
	ErrorStatus DriveStatus
	HasError    bool

	StatusBuffer [10]uint8
	CmdBuffer    [10]uint8
	CmdPending   bool

	IntPending        bool
	SubcodeIntPending bool

	Fader FaderState
}

// FaderState is the attenuation-ramp half of State, matching Fader's own
// unexported fields.
type FaderState struct {
	CurAttenuation  uint16
	DstAttenuation  uint16
	AttenuationStep uint16
	Flags           uint8
	Bytes           [4]uint8
	ByteCounter     uint8
}

// Snapshot captures the fader's state.
func (f *Fader) Snapshot() FaderState {
	return FaderState{
		CurAttenuation:  f.curAttenuation,
		DstAttenuation:  f.dstAttenuation,
		AttenuationStep: f.attenuationStep,
		Flags:           f.flags,
		Bytes:           f.bytes,
		ByteCounter:     f.byteCounter,
	}
}

// Restore replaces the fader's state with s.
func (f *Fader) Restore(s FaderState) {
	f.curAttenuation = s.CurAttenuation
	f.dstAttenuation = s.DstAttenuation
	f.attenuationStep = s.AttenuationStep
	f.flags = s.Flags
	f.bytes = s.Bytes
	f.byteCounter = s.ByteCounter
}

// Snapshot captures the MCU's full state, save for the live Disc pointer.
func (m *MCU) Snapshot() State {
	return State{
		Cycle:               m.cycle,
		LastSectorCycle:     m.lastSectorCycle,
		StatusStart:         m.statusStart,
		NextNibbleCycle:     m.nextNibbleCycle,
		CurrentStatusNibble: int32(m.currentStatusNibble),
		CurrentCmdNibble:    int32(m.currentCmdNibble),
		HeadPBA:             m.headPBA,
		SeekPBA:             m.seekPBA,
		PausePBA:            m.pausePBA,
		CoarseSeek:          m.coarseSeek,
		Seeking:             int32(m.seeking),
		RequestedFormat:     m.requestedFormat,
		RequestedTrack:      m.requestedTrack,
		Status:              m.status,
		ErrorStatus:         m.errorStatus,
		HasError:            m.hasError,
		StatusBuffer:        m.statusBuffer,
		CmdBuffer:           m.cmdBuffer,
		CmdPending:          m.cmdPending,
		IntPending:          m.IntPending,
		SubcodeIntPending:   m.SubcodeIntPending,
	}
}

// Restore replaces the MCU's state with s.
func (m *MCU) Restore(s State) {
	m.cycle = s.Cycle
	m.lastSectorCycle = s.LastSectorCycle
	m.statusStart = s.StatusStart
	m.nextNibbleCycle = s.NextNibbleCycle
	m.currentStatusNibble = int(s.CurrentStatusNibble)
	m.currentCmdNibble = int(s.CurrentCmdNibble)
	m.headPBA = s.HeadPBA
	m.seekPBA = s.SeekPBA
	m.pausePBA = s.PausePBA
	m.coarseSeek = s.CoarseSeek
	m.seeking = int(s.Seeking)
	m.requestedFormat = s.RequestedFormat
	m.requestedTrack = s.RequestedTrack
	m.status = s.Status
	m.errorStatus = s.ErrorStatus
	m.hasError = s.HasError
	m.statusBuffer = s.StatusBuffer
	m.cmdBuffer = s.CmdBuffer
	m.cmdPending = s.CmdPending
	m.IntPending = s.IntPending
	m.SubcodeIntPending = s.SubcodeIntPending
}
