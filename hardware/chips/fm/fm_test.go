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

package fm_test

import (
	"testing"

	"github.com/blastcore-emu/genesiscore/hardware/chips/fm"
)

func TestChannelKeyOnProducesNonZeroOutput(t *testing.T) {
	c := fm.New(1, 1<<18)
	c.SetFrequency(0, 0x300, 4)
	c.Channels[0].Operators[3].TotalLevel = 0
	c.Channels[0].Left = true
	c.Channels[0].Right = true
	c.Channels[0].KeyOn()

	c.RunUntil(4)

	l, r := c.Mix()
	if l == 0 && r == 0 {
		t.Fatal("expected non-silent output once key is on with TotalLevel 0")
	}
}

func TestPSGToneGeneratesPeriodicOutput(t *testing.T) {
	p := fm.NewPSG(1)
	p.Write(0x80 | 0x0F) // latch channel 0 tone, low nibble 0xF
	p.Write(0x01)        // high 6 bits
	p.Write(0x90)        // latch channel 0 volume = 0 (loudest)

	sawSound := false
	for i := uint32(0); i < 64; i++ {
		p.RunUntil(p.Cycle() + 1)
		if p.Mix() != 0 {
			sawSound = true
		}
	}
	if !sawSound {
		t.Fatal("expected PSG channel 0 to produce audible output at full volume")
	}
}

func TestPSGMutedChannelIsSilent(t *testing.T) {
	p := fm.NewPSG(1)
	p.Write(0x80 | 0x0F)
	p.Write(0x01)
	p.Write(0x9F) // attenuation 15 = silent

	for i := uint32(0); i < 64; i++ {
		p.RunUntil(p.Cycle() + 1)
	}
	if got := p.Mix(); got != 0 {
		t.Fatalf("Mix() = %d, want 0 for fully attenuated channel", got)
	}
}

func TestMixerCombinesSources(t *testing.T) {
	m := &fm.Mixer{
		PCMSources: []func() (int32, int32){
			func() (int32, int32) { return 1000, -1000 },
			func() (int32, int32) { return 500, 500 },
		},
	}
	l, r := m.Mix()
	if l != 1500 || r != -500 {
		t.Fatalf("Mix() = (%d, %d), want (1500, -500)", l, r)
	}
}
