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

package cartridge

import (
	"encoding/binary"

	"github.com/blastcore-emu/genesiscore/errors"
)

// stateKind tags which mapper's state shape follows in MarshalState's
// output, so UnmarshalState knows which struct to decode into without
// needing the originating console identified separately.
type stateKind uint8

const (
	stateKindSega stateKind = iota
	stateKindSMS
	stateKindColeco
)

// MarshalState flattens the attached mapper's saveState() snapshot into
// bytes, for the savestate package's TagCartMapper section. Bridges the
// mapper interface's Go-value snapshot (segaState/smsState/[]byte) to the
// byte-oriented save state format without a general-purpose encoder - the
// three mapper state shapes are small and fixed, so hand-written framing
// is simpler than wiring a reflection-based codec for three struct types.
func (cart *Cartridge) MarshalState() []byte {
	switch s := cart.SaveState().(type) {
	case segaState:
		buf := make([]byte, 0, 1+16+1+1+4+len(s.SRAM))
		buf = append(buf, uint8(stateKindSega))
		for _, v := range s.BankRegs {
			buf = binary.LittleEndian.AppendUint16(buf, v)
		}
		buf = append(buf, boolByte(s.SRAMEnabled), boolByte(s.SRAMProtect))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.SRAM)))
		buf = append(buf, s.SRAM...)
		return buf

	case smsState:
		return []byte{uint8(stateKindSMS), s.Pages[0], s.Pages[1], s.Pages[2]}

	case []byte:
		buf := make([]byte, 0, 1+4+len(s))
		buf = append(buf, uint8(stateKindColeco))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
		buf = append(buf, s...)
		return buf
	}
	return nil
}

// UnmarshalState restores mapper state from a MarshalState buffer,
// dispatching on its leading stateKind byte.
func (cart *Cartridge) UnmarshalState(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	switch stateKind(data[0]) {
	case stateKindSega:
		data = data[1:]
		var s segaState
		for i := range s.BankRegs {
			s.BankRegs[i] = binary.LittleEndian.Uint16(data[i*2 : i*2+2])
		}
		data = data[len(s.BankRegs)*2:]
		s.SRAMEnabled = data[0] != 0
		s.SRAMProtect = data[1] != 0
		data = data[2:]
		n := binary.LittleEndian.Uint32(data[:4])
		data = data[4:]
		if n > 0 {
			s.SRAM = append([]byte(nil), data[:n]...)
		}
		return cart.RestoreState(s)

	case stateKindSMS:
		if len(data) < 4 {
			return errors.Errorf("cartridge: truncated SMS mapper state")
		}
		return cart.RestoreState(smsState{Pages: [3]uint8{data[1], data[2], data[3]}})

	case stateKindColeco:
		if len(data) < 5 {
			return errors.Errorf("cartridge: truncated Coleco mapper state")
		}
		n := binary.LittleEndian.Uint32(data[1:5])
		return cart.RestoreState(append([]byte(nil), data[5:5+n]...))
	}
	return errors.Errorf("cartridge: unrecognised mapper state kind %d", data[0])
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
