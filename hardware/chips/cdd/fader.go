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

// Fader is the CDD MCU's audio attenuation path: the CDDA stream's
// 16-bit stereo samples pass through it on the way to the mixer, with
// a ramped attenuation level the firmware controls via
// AttenuationWrite (used for audio fade-in/fade-out during track
// transitions and pause). Grounded on original_source/cdd_fader.c/.h.
type Fader struct {
	curAttenuation uint16
	dstAttenuation uint16
	attenuationStep uint16
	flags           uint8

	bytes       [4]uint8
	byteCounter uint8

	Left, Right int32
}

// NewFader returns a fader at unity gain (0x4000, matching
// cdd_fader_init's reset value).
func NewFader() *Fader {
	return &Fader{curAttenuation: 0x4000, dstAttenuation: 0x4000}
}

// AttenuationWrite sets a new target attenuation and derives the
// per-sample ramp step toward it, grounded on
// cdd_fader_attenuation_write.
func (f *Fader) AttenuationWrite(attenuation uint16) {
	f.dstAttenuation = attenuation & 0xFFF0
	f.flags = uint8(attenuation & 0xE)
	switch {
	case f.dstAttenuation > f.curAttenuation:
		f.attenuationStep = (f.dstAttenuation - f.curAttenuation) >> 4
	case f.dstAttenuation < f.curAttenuation:
		f.attenuationStep = (f.curAttenuation - f.dstAttenuation) >> 4
	default:
		f.attenuationStep = 0
	}
}

// Data feeds one byte of the little-endian 16-bit stereo CDDA stream
// through the fader. Every fourth byte completes a stereo sample pair,
// applies the current attenuation, updates Left/Right, and steps the
// attenuation ramp one notch toward its target. Grounded on
// cdd_fader_data.
func (f *Fader) Data(b uint8) {
	f.bytes[f.byteCounter] = b
	f.byteCounter++
	if f.byteCounter != uint8(len(f.bytes)) {
		return
	}
	f.byteCounter = 0

	left := int32(f.bytes[1])<<8 | int32(f.bytes[0])
	right := int32(f.bytes[3])<<8 | int32(f.bytes[2])
	if left&0x8000 != 0 {
		left |= ^int32(0xFFFF)
	}
	if right&0x8000 != 0 {
		right |= ^int32(0xFFFF)
	}

	switch {
	case f.curAttenuation == 0:
		left, right = 0, 0
	case f.curAttenuation >= 4:
		left = (left * int32(f.curAttenuation&0x7FF0)) >> 14
		right = (right * int32(f.curAttenuation&0x7FF0)) >> 14
	default:
		// Matches cdd_fader_data's own "//TODO: FIXME" fallback: the
		// attenuation is too close to zero for the >>14 scaling to be
		// meaningful, so the original mutes rather than guess.
		left, right = 0, 0
	}

	f.Left, f.Right = left, right

	if f.attenuationStep == 0 {
		return
	}
	if f.dstAttenuation > f.curAttenuation {
		f.curAttenuation += f.attenuationStep
		if f.curAttenuation >= f.dstAttenuation {
			f.curAttenuation = f.dstAttenuation
			f.attenuationStep = 0
		}
	} else {
		f.curAttenuation -= f.attenuationStep
		if f.curAttenuation <= f.dstAttenuation {
			f.curAttenuation = f.dstAttenuation
			f.attenuationStep = 0
		}
	}
}
