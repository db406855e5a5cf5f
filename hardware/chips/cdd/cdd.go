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

// Package cdd emulates the CD drive controller MCU (the "CDD"): the
// state machine that exchanges nibble-serial command/status packets with
// the main CPU over the gate array, streams sector data to the CDC, and
// models seek timing including the coarse-seek "not ready" wobble.
//
// Grounded on original_source/cdd_mcu.c/.h. The cycle/nibble/sector state
// machine is reduced to what's needed to exercise the status packet
// checksum invariant, the play/seek head-position model, and the
// coarse-seek wobble counting - not the full MAME state machine (seek
// distance curves, door/tray animation, every drive_status value's exact
// transition graph).
package cdd

import "github.com/blastcore-emu/genesiscore/hardware/clocks"

// StatusFormat selects which payload shape the next status packet carries.
type StatusFormat uint8

const (
	FormatAbsolute StatusFormat = iota
	FormatRelative
	FormatTrack
	FormatTOCO
	FormatTOCT
	FormatTOCN
	FormatE
	FormatNotReady StatusFormat = 0xF
)

// Command is the cmd_type nibble of a received command packet.
type Command uint8

const (
	CmdNop Command = iota
	CmdStop
	CmdReportRequest
	CmdRead
	CmdSeek
	CmdInvalid
	CmdPause
	CmdPlay
	CmdFfwd
	CmdRwd
	CmdTrackSkip
	CmdTrackCue
	CmdDoorClose
	CmdDoorOpen
)

// DriveStatus is the status nibble reported in every status packet.
type DriveStatus uint8

const (
	StatusStop DriveStatus = iota
	StatusPlay
	StatusSeek
	StatusScan
	StatusPause
	StatusDoorOpen
	StatusSumError
	StatusCmdError
	StatusFuncError
	StatusTocRead
	StatusTracking
	StatusNoDisc
	StatusDiscLeadout
	StatusDiscLeadin
	StatusTrayMoving
)

// LeadInSectors is the fixed lead-in region preceding LBA 0 on a Red Book
// disc; head_pba/seek_pba are expressed inclusive of it.
const LeadInSectors = 11780

// CoarseSeekTracks is the distance, in sectors, past which a seek takes
// coarse (binary-exponential) hops rather than single-sector steps.
const CoarseSeekTracks = 60

// Disc is the minimal read-only interface the MCU needs from a loaded
// disc image: track count and each track's starting LBA. media/cue and
// media/toc implement it; the MCU itself has no media-format knowledge.
type Disc interface {
	TrackCount() int
	TrackLBA(track int) uint32
	LeadOutLBA() uint32
}

// checksum computes the CDD packet checksum: the low nibble of the
// one's-complement sum of the first 9 bytes.
func checksum(packet [10]uint8) uint8 {
	var sum uint8
	for i := 0; i < 9; i++ {
		sum += packet[i]
	}
	return (^sum) & 0x0f
}

// VerifyChecksum reports whether packet's checksum byte matches its
// payload, per spec invariant: (sum(first9)+checksum)&0xF == 0xF.
func VerifyChecksum(packet [10]uint8) bool {
	return (packet[9]+sumLow(packet))&0xf == 0xf
}

func sumLow(packet [10]uint8) uint8 {
	var sum uint8
	for i := 0; i < 9; i++ {
		sum += packet[i]
	}
	return sum & 0xf
}

// MCU is one CD drive controller instance.
type MCU struct {
	Disc Disc

	cycle           uint32 // CD block clock ticks
	lastSectorCycle uint32
	statusStart     uint32
	nextNibbleCycle uint32

	currentStatusNibble int // -1 = idle
	currentCmdNibble     int

	headPBA    uint32
	seekPBA    uint32
	pausePBA   uint32
	coarseSeek uint32
	seeking    int // 0 idle, 1 coarse, 2 short

	requestedFormat StatusFormat
	requestedTrack  uint8

	status      DriveStatus
	errorStatus DriveStatus
	hasError    bool

	statusBuffer [10]uint8
	cmdBuffer    [10]uint8
	cmdPending   bool

	IntPending         bool
	SubcodeIntPending  bool
}

// NewMCU creates an MCU in the idle/no-disc state; Disc may be nil until
// media is loaded.
func NewMCU(disc Disc) *MCU {
	m := &MCU{Disc: disc}
	m.Reset()
	return m
}

// Reset returns the MCU to its power-on state: head parked at LBA 0
// (inclusive of lead-in), idle nibble exchange, Absolute status format.
func (m *MCU) Reset() {
	m.cycle = 0
	m.lastSectorCycle = 0
	m.statusStart = 0
	m.currentStatusNibble = -1
	m.currentCmdNibble = -1
	m.headPBA = LeadInSectors
	m.seekPBA = LeadInSectors
	m.coarseSeek = 0
	m.seeking = 0
	m.requestedFormat = FormatAbsolute
	m.status = StatusNoDisc
	if m.Disc != nil {
		m.status = StatusStop
	}
	m.hasError = false
}

// Cycle implements scheduler.Device.
func (m *MCU) Cycle() uint32 { return m.cycle }

// AdjustCycle implements scheduler.Device: subtracts delta from every
// internal cycle tracker, saturating at 0.
func (m *MCU) AdjustCycle(delta uint32) {
	m.cycle = satSub(m.cycle, delta)
	m.lastSectorCycle = satSub(m.lastSectorCycle, delta)
	m.statusStart = satSub(m.statusStart, delta)
	m.nextNibbleCycle = satSub(m.nextNibbleCycle, delta)
}

func satSub(v, delta uint32) uint32 {
	if delta > v {
		return 0
	}
	return v - delta
}

// RunUntil advances the MCU one CD-block tick at a time until its cycle
// reaches target, implementing scheduler.Device. The MCU never suspends.
func (m *MCU) RunUntil(target uint32) {
	for m.cycle < target {
		m.step()
	}
}

func (m *MCU) step() {
	m.cycle++

	if m.cycle-m.lastSectorCycle >= clocks.SectorClocks {
		m.lastSectorCycle = m.cycle
		m.onSectorBoundary()
	}

	switch {
	case m.currentStatusNibble == -1 && m.cycle >= m.statusStart:
		m.currentStatusNibble = 0
		m.nextNibbleCycle = m.cycle + clocks.NibbleClocks
	case m.currentStatusNibble >= 0 && m.cycle >= m.nextNibbleCycle:
		if m.currentStatusNibble == 7 && m.coarseSeek%3 == 0 {
			m.IntPending = true
		}
		m.currentStatusNibble++
		if m.currentStatusNibble >= 10 {
			m.currentStatusNibble = -1
		} else {
			m.nextNibbleCycle = m.cycle + clocks.NibbleClocks
		}
	}
}

// onSectorBoundary runs the once-per-sector work: advance the head,
// snapshot the status buffer, and schedule when its nibble-serial output
// begins.
func (m *MCU) onSectorBoundary() {
	switch m.status {
	case StatusPlay, StatusSeek, StatusScan:
		m.headPBA++
	}

	if m.seeking != 0 {
		m.advanceSeek()
	}

	m.snapshotStatus()

	wobble := uint32(0)
	if m.seeking != 0 && m.coarseSeek%3 != 0 {
		wobble = 3 - m.coarseSeek%3
	}
	m.statusStart = m.cycle + clocks.ProcessingDelay + wobble*clocks.SectorClocks
	m.currentStatusNibble = -1
}

// advanceSeek steps the head toward seek_pba, taking coarse
// (binary-exponential) hops while the remaining distance exceeds
// CoarseSeekTracks sectors' worth, and incrementing coarse_seek once per
// non-unit hop - each such hop is what inserts a NotReady status.
func (m *MCU) advanceSeek() {
	if m.headPBA == m.seekPBA {
		m.seeking = 0
		m.status = StatusPause
		return
	}

	dist := int64(m.seekPBA) - int64(m.headPBA)
	step := int64(1)
	if dist > CoarseSeekTracks || dist < -CoarseSeekTracks {
		step = dist / 2
		m.coarseSeek++
	}
	if step == 0 {
		step = 1
	}
	m.headPBA = uint32(int64(m.headPBA) + step)
}

// Seek begins a seek to target, a physical block address already
// including lead-in.
func (m *MCU) Seek(target uint32) {
	m.seekPBA = target
	m.seeking = 1
	m.coarseSeek = 0
	m.status = StatusSeek
}

// ReceiveCommand validates and applies a 10-byte command packet, setting
// error_status on a checksum mismatch or a nonzero must-be-zero field
// rather than rejecting the packet outright - the drive state is
// preserved and the error surfaces in the next status packet only.
func (m *MCU) ReceiveCommand(packet [10]uint8) {
	m.cmdBuffer = packet
	if !VerifyChecksum(packet) {
		m.errorStatus = StatusSumError
		m.hasError = true
		return
	}
	if packet[1] != 0 {
		m.errorStatus = StatusCmdError
		m.hasError = true
		return
	}

	switch Command(packet[0] >> 4) {
	case CmdPlay:
		m.status = StatusPlay
	case CmdPause:
		m.status = StatusPause
	case CmdStop:
		m.status = StatusStop
		m.seeking = 0
	case CmdSeek, CmdRead:
		lba := bcdTripleToLBA(packet[2], packet[3], packet[4], packet[5], packet[6], packet[7])
		if lba < 3 {
			lba = 0
		} else {
			lba -= 3
		}
		m.requestedFormat = FormatAbsolute
		m.Seek(lba + LeadInSectors)
	case CmdDoorOpen:
		m.status = StatusDoorOpen
	case CmdDoorClose:
		m.status = StatusStop
	}
}

// bcdTripleToLBA converts BCD-packed minute/second/frame nibble pairs
// (as carried in a command packet) to a zero-based LBA: (min*60+sec)*75+frame.
func bcdTripleToLBA(minHi, minLo, secHi, secLo, frameHi, frameLo uint8) uint32 {
	min := uint32(minHi)*10 + uint32(minLo)
	sec := uint32(secHi)*10 + uint32(secLo)
	frame := uint32(frameHi)*10 + uint32(frameLo)
	return (min*60+sec)*75 + frame
}

// snapshotStatus rebuilds status_buffer from the current drive state and
// requested_format, per the 10-byte layout in spec §6.3.
func (m *MCU) snapshotStatus() {
	var pkt [10]uint8

	status := m.status
	if m.hasError {
		status = m.errorStatus
	}

	pkt[0] = uint8(status)<<4 | uint8(m.requestedFormat)

	switch m.requestedFormat {
	case FormatAbsolute, FormatRelative:
		lba := m.headPBA - LeadInSectors
		min, sec, frame := lbaToBCD(lba)
		pkt[1], pkt[2] = min>>4, min&0xf
		pkt[3], pkt[4] = sec>>4, sec&0xf
		pkt[5], pkt[6] = frame>>4, frame&0xf
	case FormatTrack:
		pkt[1] = m.requestedTrack >> 4
		pkt[2] = m.requestedTrack & 0xf
	case FormatTOCT:
		if m.Disc != nil {
			last := uint8(m.Disc.TrackCount())
			pkt[1], pkt[2] = 0, 1
			pkt[3], pkt[4] = last/10, last%10
		}
	}

	pkt[9] = checksum(pkt)
	m.statusBuffer = pkt
	m.hasError = false
}

// lbaToBCD splits a zero-based LBA into BCD-packed minute/second/frame
// bytes (each byte holding two BCD digits).
func lbaToBCD(lba uint32) (min, sec, frame uint8) {
	f := lba % 75
	s := (lba / 75) % 60
	mi := lba / 75 / 60
	return bcd(uint8(mi)), bcd(uint8(s)), bcd(uint8(f))
}

func bcd(v uint8) uint8 {
	return (v/10)<<4 | (v % 10)
}

// StatusBuffer returns the most recently built status packet.
func (m *MCU) StatusBuffer() [10]uint8 { return m.statusBuffer }

// CurrentStatusNibble reports the nibble-serial output position, -1 when
// idle between packets.
func (m *MCU) CurrentStatusNibble() int { return m.currentStatusNibble }

// HeadPBA returns the physical block address currently under the laser.
func (m *MCU) HeadPBA() uint32 { return m.headPBA }

// CoarseSeekCount returns the number of coarse hops taken by the
// in-progress (or most recent) seek.
func (m *MCU) CoarseSeekCount() uint32 { return m.coarseSeek }
