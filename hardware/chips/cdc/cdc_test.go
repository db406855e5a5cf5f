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

package cdc_test

import (
	"testing"

	"github.com/blastcore-emu/genesiscore/hardware/chips/cdc"
)

func TestCominFIFORoundTrip(t *testing.T) {
	c := cdc.New(nil)
	c.PushCommand(0x11)
	c.PushCommand(0x22)

	c.ARWrite(cdc.RegCOMIN)
	if v := c.RegRead(); v != 0x11 {
		t.Fatalf("first COMIN read = %#x, want 0x11", v)
	}
	if v := c.RegRead(); v != 0x22 {
		t.Fatalf("second COMIN read = %#x, want 0x22", v)
	}
	if v := c.RegRead(); v != 0xFF {
		t.Fatalf("COMIN read past empty = %#x, want 0xFF", v)
	}
}

func TestTransferFlowControl(t *testing.T) {
	var delivered []uint8
	paused := false
	c := cdc.New(func(b uint8) bool {
		if paused {
			return false
		}
		delivered = append(delivered, b)
		return true
	})

	c.Buffer[0] = 0xAA
	c.Buffer[1] = 0xBB

	c.ARWrite(cdc.RegDBCL)
	c.RegWrite(1) // DBC holds the byte count minus one: 1 moves 2 bytes
	c.ARWrite(cdc.RegDBCH)
	c.RegWrite(0)
	c.ARWrite(cdc.RegIFSTAT) // IFCTRL alias
	c.RegWrite(0x02)         // DOUTEN
	c.ARWrite(cdc.RegHEAD2)  // DTTRG alias
	c.RegWrite(0)

	c.Run(1000)

	if len(delivered) != 2 || delivered[0] != 0xAA || delivered[1] != 0xBB {
		t.Fatalf("delivered = %v, want [0xAA 0xBB]", delivered)
	}
}

func TestARAutoIncrementWraps(t *testing.T) {
	c := cdc.New(nil)
	c.ARWrite(0x1F) // top of the default 0x1F ar_mask range
	c.RegRead()
	if c.RegRead() != 0xFF {
		t.Fatal("expected AR to wrap to 0 and read COMIN (empty -> 0xFF)")
	}
}
