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

import "testing"

func feedSample(f *Fader, left, right int16) {
	f.Data(uint8(left))
	f.Data(uint8(left >> 8))
	f.Data(uint8(right))
	f.Data(uint8(right >> 8))
}

func TestFaderUnityGainPassesSampleThrough(t *testing.T) {
	f := NewFader()
	feedSample(f, 1000, -2000)
	if f.Left != 1000 {
		t.Fatalf("Left = %d, want 1000", f.Left)
	}
	if f.Right != -2000 {
		t.Fatalf("Right = %d, want -2000", f.Right)
	}
}

func TestFaderZeroAttenuationMutes(t *testing.T) {
	f := NewFader()
	f.AttenuationWrite(0)
	// AttenuationWrite only sets the ramp target; cur_attenuation
	// starts at 0x4000 and must step down to 0 before muting, exactly
	// like the original's ramp-driven fade-out.
	for i := 0; i < 0x4000; i++ {
		feedSample(f, 1000, 1000)
	}
	if f.Left != 0 || f.Right != 0 {
		t.Fatalf("Left/Right = %d/%d after full fade-out, want 0/0", f.Left, f.Right)
	}
}

func TestFaderAttenuationRampsTowardTarget(t *testing.T) {
	f := NewFader()
	f.AttenuationWrite(0x2000)
	if f.attenuationStep == 0 {
		t.Fatalf("attenuationStep = 0, want nonzero ramp toward 0x2000")
	}
	before := f.curAttenuation
	feedSample(f, 100, 100)
	if f.curAttenuation == before {
		t.Fatalf("curAttenuation did not step after a completed sample")
	}
}
