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

// Mixer combines the FM chip, the PSG, and any number of mono PCM-style
// sources (the RF5C164 and Pico ADPCM chips) into one final stereo
// stream, the role the spec assigns the "sample mixer" component
// alongside the FM/PSG pair.
type Mixer struct {
	FM  *Chip
	PSG *PSG

	// PCMSources supplies additional mono or stereo contributions
	// (RF5C164, ADPCM) each output tick; registered rather than
	// hard-wired so the mixer doesn't need to import those packages.
	PCMSources []func() (left, right int32)
}

// Mix advances nothing by itself (the FM/PSG/PCM sources are driven by
// the scheduler independently) and instead samples their current
// output, summing and clamping to 16-bit stereo.
func (m *Mixer) Mix() (left, right int16) {
	var l, r int32
	if m.FM != nil {
		fl, fr := m.FM.Mix()
		l += fl
		r += fr
	}
	if m.PSG != nil {
		mono := m.PSG.Mix()
		l += mono
		r += mono
	}
	for _, src := range m.PCMSources {
		sl, sr := src()
		l += sl
		r += sr
	}
	return clip16(l), clip16(r)
}
