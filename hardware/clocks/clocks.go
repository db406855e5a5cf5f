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

// Package clocks defines the constant values that define the speed of the
// master clock in an emulated console, and the divided rates derived from
// it for each device that shares the bus.
//
// Values taken from the Genesis/Mega Drive and Mega-CD hardware reference:
// the master clock is the oscillator actually fitted to the board; every
// other clock (68000, Z80, PSG, FM, VDP, CD block) is a fixed division of
// it, which is why rebasing (see hardware/scheduler) can apply a single
// cycle delta across every device's counter without drift between them.
package clocks

const (
	// NTSC and PAL are the master oscillator frequencies, in Hz, of the
	// main board.
	NTSC = 53693175
	PAL  = 53203424
)

const (
	// NTSC_68K and PAL_68K are the main 68000 clock, master/7.
	NTSC_68K = NTSC / 7
	PAL_68K  = PAL / 7

	// NTSC_Z80 and PAL_Z80 are the sound Z80 clock, master/15.
	NTSC_Z80 = NTSC / 15
	PAL_Z80  = PAL / 15

	// NTSC_PSG and PAL_PSG are the PSG clock, master/15 (shared divider
	// with the Z80, fed from the same /15 tap).
	NTSC_PSG = NTSC / 15
	PAL_PSG  = PAL / 15

	// NTSC_VDP_DOT and PAL_VDP_DOT are the VDP pixel dot clock in 320-wide
	// (h40) mode, master/7 shared with the 68000 bus cycle.
	NTSC_VDP_DOT = NTSC / 7
	PAL_VDP_DOT  = PAL / 7
)

// CDBlock is the Mega-CD sub-board's own oscillator, independent of the
// cartridge-side master clock above: 16.9344 MHz. The CDD timing constants
// below (SectorClocks, NibbleClocks, ByteClocks, ProcessingDelay) count
// cycles of this clock.
const CDBlock = 16934400

// CDBlockDivider is the fixed divider from CDBlock down to the CD block's
// internal cycle counter.
const CDBlockDivider = 8

// CDBlockTick is CDBlock/CDBlockDivider, the CD block's divided tick rate.
const CDBlockTick = CDBlock / CDBlockDivider

// SectorRate is the number of sectors read per second (75 sectors/sec is
// the fixed CD-DA rate, independent of region).
const SectorRate = 75

// SectorClocks is the number of CDBlock cycles per sector boundary
// (225792, which is also 2352 sector bytes at ByteClocks each).
const SectorClocks = CDBlock / SectorRate

// NibbleClocks is the number of CD block ticks to clock one nibble of a
// CDD command/status packet across the gate array.
const NibbleClocks = 77

// ByteClocks is the number of CD block ticks to stream one byte of sector
// data from the CDD to the CDC.
const ByteClocks = 96

// ProcessingDelay is the CD block tick delay, after a sector boundary,
// before the CDD begins nibble-serial status output.
const ProcessingDelay = 121600
