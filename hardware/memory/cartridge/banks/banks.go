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

package banks

import "fmt"

// Content contains data and ID of a cartridge bank. Helps the disassembly
// process.
type Content struct {
	Number int

	// copy of the bank data
	Data []uint8

	// the guest-address origins this bank is allowed to be mapped to. most
	// mappers will have one entry; a mapper with more than one CPU-visible
	// window onto the same bank (e.g. a mirrored ROM) lists every one.
	Origins []uint32
}

// Details is used to identify a cartridge bank. In some contexts bank is
// represented by an integer only. The Bank type is used when more information
// about a bank is required.
type Details struct {
	Number  int
	IsRAM   bool
	NonCart bool
	Segment int
}

func (b Details) String() string {
	if b.NonCart {
		return "-"
	}
	if b.IsRAM {
		return fmt.Sprintf("%dR", b.Number)
	}
	return fmt.Sprintf("%d", b.Number)
}
