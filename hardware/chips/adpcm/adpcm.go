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

// Package adpcm emulates the Pico's uPD7755-compatible ADPCM speech chip:
// a 64-byte command/sample FIFO feeding a 4-bit ADPCM decoder with a
// 256-entry delta table indexed by decoder state.
//
// Grounded on original_source/pico_pcm.c/.h.
package adpcm

// Control register bits (RI??E???FF???VVV).
const (
	CtrlReset   = 0x8000
	CtrlIntEn   = 0x4000
	CtrlEnabled = 0x0800
	CtrlFilter  = 0x00C0
	CtrlVolume  = 0x0007
)

// CycleNever marks "no pending interrupt" the way the scheduler's other
// chips do.
const CycleNever = ^uint32(0)

const fifoThreshold = 48

// sampleDelta and stateDelta are the uPD7755 ADPCM tables, ported
// verbatim (MAME-sourced, per the original's comment).
var sampleDelta = [256]int16{
	0, 0, 1, 2, 3, 5, 7, 10, 0, 0, -1, -2, -3, -5, -7, -10,
	0, 1, 2, 3, 4, 6, 8, 13, 0, -1, -2, -3, -4, -6, -8, -13,
	0, 1, 2, 4, 5, 7, 10, 15, 0, -1, -2, -4, -5, -7, -10, -15,
	0, 1, 3, 4, 6, 9, 13, 19, 0, -1, -3, -4, -6, -9, -13, -19,
	0, 2, 3, 5, 8, 11, 15, 23, 0, -2, -3, -5, -8, -11, -15, -23,
	0, 2, 4, 7, 10, 14, 19, 29, 0, -2, -4, -7, -10, -14, -19, -29,
	0, 3, 5, 8, 12, 16, 22, 33, 0, -3, -5, -8, -12, -16, -22, -33,
	1, 4, 7, 10, 15, 20, 29, 43, -1, -4, -7, -10, -15, -20, -29, -43,
	1, 4, 8, 13, 18, 25, 35, 53, -1, -4, -8, -13, -18, -25, -35, -53,
	1, 6, 10, 16, 22, 31, 43, 64, -1, -6, -10, -16, -22, -31, -43, -64,
	2, 7, 12, 19, 27, 37, 51, 76, -2, -7, -12, -19, -27, -37, -51, -76,
	2, 9, 16, 24, 34, 46, 64, 96, -2, -9, -16, -24, -34, -46, -64, -96,
	3, 11, 19, 29, 41, 57, 79, 117, -3, -11, -19, -29, -41, -57, -79, -117,
	4, 13, 24, 36, 50, 69, 96, 143, -4, -13, -24, -36, -50, -69, -96, -143,
	4, 16, 29, 44, 62, 85, 118, 175, -4, -16, -29, -44, -62, -85, -118, -175,
	6, 20, 36, 54, 76, 104, 144, 214, -6, -20, -36, -54, -76, -104, -144, -214,
}

var stateDelta = [16]int8{-1, -1, 0, 0, 1, 2, 2, 3, -1, -1, 0, 0, 1, 2, 2, 3}

func calcSample(sample uint8, state *uint8) int16 {
	ret := sampleDelta[uint16(*state)<<4+uint16(sample)]
	diff := stateDelta[*state]
	if diff >= 0 || *state > 0 {
		s := int8(*state) + diff
		if s > 15 {
			s = 15
		}
		*state = uint8(s)
	}
	return ret
}

// Chip is one Pico ADPCM speech decoder instance.
type Chip struct {
	ClockInc uint32
	cycle    uint32

	ctrl uint16

	counter uint16
	rate    uint16
	samples uint16
	output  int16

	fifo        [0x40]uint8
	fifoRead    uint8
	fifoWrite   uint8
	adpcmState  uint8
	nibbleStore uint8

	// OutputSamples accumulates every mono sample produced by Run, the
	// way render_put_mono_sample streams to the host mixer.
	OutputSamples []int16
}

// New creates a chip ticking clockInc master-clock cycles per output
// sample, mirroring pico_pcm_init's divider*4 cadence.
func New(clockInc uint32) *Chip {
	c := &Chip{ClockInc: clockInc}
	c.Reset()
	return c
}

// Reset matches pico_pcm_reset: FIFO emptied, decoder state cleared, the
// top ctrl bit (busy/reset-request) cleared.
func (c *Chip) Reset() {
	c.fifoRead = uint8(len(c.fifo))
	c.fifoWrite = 0
	c.adpcmState = 0
	c.output = 0
	c.nibbleStore = 0
	c.counter = 0
	c.samples = 0
	c.rate = 0
	c.ctrl &= 0x7FFF
}

func (c *Chip) fifoPop() uint8 {
	if int(c.fifoRead) == len(c.fifo) {
		return 0
	}
	ret := c.fifo[c.fifoRead]
	c.fifoRead = (c.fifoRead + 1) & uint8(len(c.fifo)-1)
	if c.fifoRead == c.fifoWrite {
		c.fifoRead = uint8(len(c.fifo))
	}
	return ret
}

// Cycle implements scheduler.Device.
func (c *Chip) Cycle() uint32 { return c.cycle }

// AdjustCycle implements scheduler.Device.
func (c *Chip) AdjustCycle(delta uint32) {
	if delta > c.cycle {
		c.cycle = 0
	} else {
		c.cycle -= delta
	}
}

// RunUntil implements scheduler.Device, advancing the FIFO/decoder state
// machine one output sample at a time.
func (c *Chip) RunUntil(target uint32) {
	for c.cycle < target {
		c.cycle += c.ClockInc

		shift := uint(c.ctrl & CtrlVolume)
		c.OutputSamples = append(c.OutputSamples, (c.output>>shift)*128)

		if c.ctrl&CtrlEnabled == 0 {
			continue
		}

		switch {
		case c.counter > 0:
			c.counter--
		case c.samples > 0:
			c.samples--
			var sample uint8
			if c.nibbleStore != 0 {
				sample = c.nibbleStore & 0xF
				c.nibbleStore = 0
			} else {
				b := c.fifoPop()
				sample = b >> 4
				c.nibbleStore = 0x80 | (b & 0xF)
			}
			c.output += calcSample(sample, &c.adpcmState)
			if c.output > 255 {
				c.output = 255
			} else if c.output < -256 {
				c.output = -256
			}
			c.counter = c.rate
		default:
			cmd := c.fifoPop()
			if cmd != 0 {
				c.ctrl |= 0x8000
			} else {
				c.ctrl &= 0x7FFF
			}
			switch cmd & 0xC0 {
			case 0x00:
				c.output = 0
				c.adpcmState = 0
				c.counter = uint16(cmd&0x3F) * 160
			case 0x40:
				c.rate = uint16(cmd & 0x3F)
				c.samples = 256
			case 0x80:
				c.rate = uint16(cmd & 0x3F)
				c.samples = uint16(c.fifoPop()) + 1
			case 0xC0:
				c.counter = uint16(c.fifoPop()) & 0x3F
				c.rate = c.counter
				c.samples = (uint16(c.fifoPop()) + 1) * (uint16(cmd&7) + 1)
			}
		}
	}
}

// CtrlWrite handles a control-register write, including the soft reset
// bit.
func (c *Chip) CtrlWrite(value uint16) {
	if value&CtrlReset != 0 {
		c.Reset()
	}
	c.ctrl &= 0x8000
	c.ctrl |= value &^ CtrlReset
}

// CtrlRead returns the current control register.
func (c *Chip) CtrlRead() uint16 { return c.ctrl }

// DataWrite pushes a 16-bit value as two FIFO bytes (high byte first),
// overwriting the oldest unread byte once the FIFO is full exactly as
// pico_pcm_data_write does.
func (c *Chip) DataWrite(value uint16) {
	if int(c.fifoRead) == len(c.fifo) {
		c.fifoRead = c.fifoWrite
	}
	c.fifo[c.fifoWrite] = uint8(value >> 8)
	c.fifoWrite = (c.fifoWrite + 1) & uint8(len(c.fifo)-1)
	c.fifo[c.fifoWrite] = uint8(value)
	c.fifoWrite = (c.fifoWrite + 1) & uint8(len(c.fifo)-1)
}

// DataRead reports the free space in the FIFO: 0x3F (FIFO size minus one)
// when empty, otherwise (read - write) mod FIFO size, matching
// pico_pcm_data_read's status readout.
func (c *Chip) DataRead() uint16 {
	if int(c.fifoRead) == len(c.fifo) {
		return uint16(len(c.fifo) - 1)
	}
	return uint16((c.fifoRead - c.fifoWrite) & uint8(len(c.fifo)-1))
}

// NextInterrupt estimates the next cycle at which the FIFO drops below
// its refill threshold, a simplified port of pico_pcm_next_int: it walks
// pending commands the same way but stops at the first one still
// in-flight rather than fully predicting multi-command chains, which is
// enough to drive a host poll loop without the original's exact
// cycle-for-cycle lookahead.
func (c *Chip) NextInterrupt() uint32 {
	if c.ctrl&CtrlIntEn == 0 {
		return CycleNever
	}

	var fifoBytes uint32
	switch {
	case int(c.fifoRead) == len(c.fifo):
		fifoBytes = 0
	case c.fifoRead == uint8(c.fifoWrite):
		fifoBytes = uint32(len(c.fifo))
	default:
		fifoBytes = uint32((uint8(c.fifoWrite) - c.fifoRead) & uint8(len(c.fifo)-1))
	}

	if fifoBytes < fifoThreshold {
		return c.cycle
	}

	cyclesToThreshold := uint32(c.counter) + 1
	if c.samples > 0 {
		samples := c.samples
		if c.nibbleStore != 0 {
			cyclesToThreshold += uint32(c.rate) + 1
			samples--
		}
		bytes := uint32(samples>>1) + uint32(samples&1)
		if bytes > fifoBytes-fifoThreshold {
			cyclesToThreshold += (fifoBytes - fifoThreshold + 1) * (uint32(c.rate) + 1) * 2
		} else {
			cyclesToThreshold += bytes * (uint32(c.rate) + 1) * 2
		}
	}

	return c.cycle + cyclesToThreshold*c.ClockInc
}
