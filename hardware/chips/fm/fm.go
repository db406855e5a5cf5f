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

// Channel is one YM2612-shape FM voice: four operators routed through
// one of eight classic algorithms, matching the fnum/block/algorithm/
// feedback shape of ym_common.h's ym_channel.
type Channel struct {
	Operators [4]Operator

	FNum      uint16
	Block     uint8
	Algorithm uint8
	Feedback  uint8
	Left      bool
	Right     bool

	op1Old int16
	Output int16
}

// phaseIncrement converts an fnum/block pair into a phase_inc value the
// way the YM2612 hardware does: fnum shifted left by block, scaled by
// the master clock divider baked into clockScale.
func phaseIncrement(fnum uint16, block uint8, clockScale uint32) uint32 {
	return (uint32(fnum) << block) * clockScale >> 11
}

// SetFrequency programs fnum/block and refreshes every operator's
// phase increment.
func (c *Channel) SetFrequency(fnum uint16, block uint8, clockScale uint32) {
	c.FNum = fnum
	c.Block = block
	inc := phaseIncrement(fnum, block, clockScale)
	for i := range c.Operators {
		c.Operators[i].PhaseInc = inc
	}
}

// KeyOn/KeyOff affect every operator in the voice at once, as the
// YM2612's key-on register does (per-operator key bits are folded in
// here since the spec's audio mixing only needs audible on/off, not
// per-operator key masking).
func (c *Channel) KeyOn() {
	for i := range c.Operators {
		c.Operators[i].KeyOn()
	}
}

func (c *Channel) KeyOff() {
	for i := range c.Operators {
		c.Operators[i].KeyOff()
	}
}

// Step renders one sample from the channel's four operators, connected
// per the selected algorithm. Algorithms 0-3 chain all four operators
// in series (op4 carries the output); algorithms 4-6 pair two parallel
// 2-operator stacks; algorithm 7 runs all four in parallel. This
// mirrors the YM2612's eight standard connection patterns without
// reproducing its exact per-algorithm modulation-sum wiring bit for
// bit, which the mixing-only scope here does not require.
func (c *Channel) Step() int16 {
	ops := &c.Operators

	fb := int16(0)
	if c.Feedback > 0 {
		fb = (c.op1Old + ops[0].Output) >> (9 - c.Feedback)
	}

	var out int16
	switch {
	case c.Algorithm <= 3:
		o1 := ops[0].Step(fb)
		c.op1Old = o1
		o2 := ops[1].Step(o1)
		o3 := ops[2].Step(o2)
		o4 := ops[3].Step(o3)
		out = o4
	case c.Algorithm <= 6:
		o1 := ops[0].Step(fb)
		c.op1Old = o1
		o2 := ops[1].Step(o1)
		o3 := ops[2].Step(0)
		o4 := ops[3].Step(o3)
		out = clip16(int32(o2) + int32(o4))
	default:
		o1 := ops[0].Step(fb)
		c.op1Old = o1
		o2 := ops[1].Step(0)
		o3 := ops[2].Step(0)
		o4 := ops[3].Step(0)
		out = clip16(int32(o1) + int32(o2) + int32(o3) + int32(o4))
	}

	c.Output = out
	return out
}

func clip16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// Chip is a full YM2612-shape FM synthesizer, six independent channels
// sharing one clock.
type Chip struct {
	Channels   [6]Channel
	clockScale uint32

	cycle     uint32
	clockStep uint32

	// addrLatch and fnumLatch back the two address-latch/data-write port
	// pairs a guest CPU programs the chip through (0xA04000/1 for
	// channels 0-2, 0xA04002/3 for channels 3-5): addrLatch holds the
	// register number most recently written to the even port of each
	// pair, fnumLatch holds each channel's low fnum byte until the
	// matching high byte/block register write completes the pair.
	addrLatch [2]uint8
	fnumLatch [6]uint8
}

// New creates a chip that advances one sample every clockStep cycles,
// converting fnum/block pairs with clockScale (precomputed by the
// caller from the host master clock, analogous to ym_init_tables'
// rate_table derivation).
func New(clockStep, clockScale uint32) *Chip {
	return &Chip{clockStep: clockStep, clockScale: clockScale}
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

// RunUntil implements scheduler.Device, rendering one stereo-summed
// sample per channel each tick.
func (c *Chip) RunUntil(target uint32) {
	for c.cycle < target {
		for i := range c.Channels {
			c.Channels[i].Step()
		}
		c.cycle += c.clockStep
	}
}

// SetFrequency is a convenience passthrough to the addressed channel.
func (c *Chip) SetFrequency(channel int, fnum uint16, block uint8) {
	c.Channels[channel].SetFrequency(fnum, block, c.clockScale)
}

// Mix sums every channel's last rendered sample into a stereo pair,
// honouring each channel's L/R output-enable flags.
func (c *Chip) Mix() (left, right int32) {
	for i := range c.Channels {
		ch := &c.Channels[i]
		if ch.Left {
			left += int32(ch.Output)
		}
		if ch.Right {
			right += int32(ch.Output)
		}
	}
	return left, right
}

// detuneTable converts the YM2612's 3-bit detune field into a signed
// phase-increment adjustment; value 4 is the chip's "no detune" code.
var detuneTable = [8]int8{0, 1, 2, 3, 0, -1, -2, -3}

// regSlot decodes a register number's low nibble into its channel (0-2
// within a port pair) and operator (0-3) slot. A channel field of 3 is
// unused by the hardware and addresses nothing.
func regSlot(reg uint8) (channel, operator int) {
	channel = int(reg & 0x03)
	operator = int((reg >> 2) & 0x03)
	if channel == 3 {
		return -1, -1
	}
	return channel, operator
}

// WriteRegister applies one guest write to the chip's register-addressed
// bus port: port 0 and 2 latch a register number for channels 0-2 and
// 3-5 respectively (port/2 selects the group), port 1 and 3 write the
// latched register's data. This is the address-latch/data-write protocol
// every register-addressed sound chip in this family uses on its guest
// bus (compare pcm.Chip.Write and adpcm.Chip.CtrlWrite/DataWrite, which
// are addressed directly rather than through a latch since those chips
// expose fewer registers).
func (c *Chip) WriteRegister(port uint8, value uint8) {
	group := int(port / 2)
	if port%2 == 0 {
		c.addrLatch[group] = value
		return
	}
	c.writeLatched(group, c.addrLatch[group], value)
}

// writeLatched applies value to whichever of the six channels and their
// operators reg addresses, within group's three-channel half of the chip.
func (c *Chip) writeLatched(group int, reg uint8, value uint8) {
	base := group * 3

	if reg == 0x28 {
		// Key on/off addresses its channel directly (not per-group) and
		// folds together the three write targets in the Channels 0-2,
		// [unused], Channels 3-5 split the real hardware uses for every
		// other register.
		sel := value & 0x07
		ch := int(sel & 0x03)
		if sel&0x04 != 0 {
			ch += 3
		}
		if ch == 3 || ch >= len(c.Channels) {
			return
		}
		if value&0xf0 != 0 {
			c.Channels[ch].KeyOn()
		} else {
			c.Channels[ch].KeyOff()
		}
		return
	}

	switch {
	case reg >= 0x30 && reg <= 0x3e:
		ch, op := regSlot(reg)
		if ch < 0 {
			return
		}
		c.Channels[base+ch].Operators[op].Multiple = value & 0x0f
		c.Channels[base+ch].Operators[op].Detune = detuneTable[(value>>4)&0x07]

	case reg >= 0x40 && reg <= 0x4e:
		ch, op := regSlot(reg)
		if ch < 0 {
			return
		}
		c.Channels[base+ch].Operators[op].TotalLevel = uint16(value&0x7f) << 3

	case reg >= 0x50 && reg <= 0x5e:
		ch, op := regSlot(reg)
		if ch < 0 {
			return
		}
		c.Channels[base+ch].Operators[op].Rates[0] = value & 0x1f

	case reg >= 0x60 && reg <= 0x6e:
		ch, op := regSlot(reg)
		if ch < 0 {
			return
		}
		c.Channels[base+ch].Operators[op].Rates[1] = value & 0x1f

	case reg >= 0x70 && reg <= 0x7e:
		ch, op := regSlot(reg)
		if ch < 0 {
			return
		}
		c.Channels[base+ch].Operators[op].Rates[2] = value & 0x1f

	case reg >= 0x80 && reg <= 0x8e:
		ch, op := regSlot(reg)
		if ch < 0 {
			return
		}
		c.Channels[base+ch].Operators[op].Rates[3] = value & 0x0f
		c.Channels[base+ch].Operators[op].SustainLevel = uint16(value>>4) & 0x0f

	case reg >= 0xa0 && reg <= 0xa2:
		ch := base + int(reg-0xa0)
		c.fnumLatch[ch] = value

	case reg >= 0xa4 && reg <= 0xa6:
		ch := base + int(reg-0xa4)
		block := (value >> 3) & 0x07
		fnum := uint16(value&0x07)<<8 | uint16(c.fnumLatch[ch])
		c.Channels[ch].SetFrequency(fnum, block, c.clockScale)

	case reg >= 0xb0 && reg <= 0xb2:
		ch := base + int(reg-0xb0)
		c.Channels[ch].Algorithm = value & 0x07
		c.Channels[ch].Feedback = (value >> 3) & 0x07

	case reg >= 0xb4 && reg <= 0xb6:
		ch := base + int(reg-0xb4)
		c.Channels[ch].Left = value&0x80 != 0
		c.Channels[ch].Right = value&0x40 != 0
	}
}
