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

// Package fm emulates the Genesis's FM and PSG sound chips plus the
// stereo sample mixer that combines their output with the PCM and
// ADPCM chips, via a shared operator/envelope core in the shape of
// original_source/ym_common.c's ym_operator - one sine-table phase
// accumulator with a four-stage (attack/decay/sustain/release)
// envelope generator per operator.
package fm

import "math"

// Envelope phases, matching ym_operator's env_phase field.
type envPhase uint8

const (
	envAttack envPhase = iota
	envDecay
	envSustain
	envRelease
	envOff
)

// maxEnvelope mirrors ym_common.h's MAX_ENVELOPE, the attenuation floor
// at which an operator is considered silent.
const maxEnvelope = 0xFFC

var sineTable [1024]int16

func init() {
	for i := range sineTable {
		angle := float64(i) / 1024 * 2 * math.Pi
		sineTable[i] = int16(math.Sin(angle) * 2047)
	}
}

// Operator is one FM operator: a phase accumulator driving a sine
// lookup, shaped by a simple linear envelope generator.
type Operator struct {
	PhaseCounter uint32
	PhaseInc     uint32

	TotalLevel   uint16
	SustainLevel uint16
	Rates        [4]uint8 // attack, decay, sustain, release
	Multiple     uint8
	Detune       int8

	envelope uint16 // current attenuation, 0 = loudest
	envPhase envPhase
	keyOn    bool

	Output int16
}

// KeyOn starts the envelope at the attack phase, the way a YM2612 key-on
// write restarts env_phase in the original.
func (o *Operator) KeyOn() {
	o.keyOn = true
	o.envPhase = envAttack
	if o.Rates[0] == 0 {
		o.envelope = 0
		o.envPhase = envDecay
	} else {
		o.envelope = maxEnvelope
	}
}

// KeyOff transitions straight to the release phase.
func (o *Operator) KeyOff() {
	o.keyOn = false
	o.envPhase = envRelease
}

func (o *Operator) stepEnvelope() {
	switch o.envPhase {
	case envAttack:
		rate := uint16(o.Rates[0])
		if rate == 0 {
			return
		}
		step := (maxEnvelope * uint16(rate)) >> 6
		if o.envelope <= step {
			o.envelope = 0
			o.envPhase = envDecay
		} else {
			o.envelope -= step
		}
	case envDecay:
		rate := uint16(o.Rates[1])
		if o.envelope >= o.SustainLevel || rate == 0 {
			o.envPhase = envSustain
			return
		}
		step := (maxEnvelope * rate) >> 10
		if step == 0 {
			step = 1
		}
		o.envelope += step
		if o.envelope >= o.SustainLevel {
			o.envelope = o.SustainLevel
			o.envPhase = envSustain
		}
	case envSustain:
		rate := uint16(o.Rates[2])
		if rate == 0 {
			return
		}
		step := (maxEnvelope * rate) >> 12
		if step == 0 {
			step = 1
		}
		o.envelope += step
		if o.envelope >= maxEnvelope {
			o.envelope = maxEnvelope
			o.envPhase = envOff
		}
	case envRelease:
		rate := uint16(o.Rates[3])
		if rate == 0 {
			rate = 1
		}
		step := (maxEnvelope * rate) >> 10
		if step == 0 {
			step = 1
		}
		o.envelope += step
		if o.envelope >= maxEnvelope {
			o.envelope = maxEnvelope
			o.envPhase = envOff
		}
	case envOff:
	}
}

// Step advances the phase accumulator by one sample, applies
// modulation from mod (an already-scaled neighbouring operator's
// output, or 0), and returns this operator's new sample - the Go
// equivalent of ym_sine(phase, mod, env).
func (o *Operator) Step(mod int16) int16 {
	o.stepEnvelope()

	mult := uint32(o.Multiple)
	if mult == 0 {
		mult = 1
	}
	o.PhaseCounter += (o.PhaseInc * mult) & 0xFFFFFFF

	phase := uint16(o.PhaseCounter>>18) + uint16(mod)
	sample := int32(sineTable[phase&1023])

	atten := int32(o.TotalLevel) + int32(o.envelope)
	if atten > maxEnvelope {
		atten = maxEnvelope
	}
	scale := maxEnvelope - atten
	sample = sample * scale / maxEnvelope

	o.Output = int16(sample)
	return o.Output
}
