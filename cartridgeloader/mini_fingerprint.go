// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the gnu general public license as published by
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

package cartridgeloader

import (
	"bytes"
	"os"
)

// mini-fingerprints exist only to help the cartridge loader make a correct
// decision about how to handle the cartridge data. we don't need to know much
// about the data for most cartridge types
//
// full cartridge fingerprinting is in the cartridge package

// genesisHeaderOffset is the Genesis console identification string
// location, per original_source/romdb.c (rom+0x100 for "SEGA..."). The SMS
// "TMR SEGA" offset varies by ROM size, so only the Genesis check is
// attempted here for a .BIN/.ROM file.
const genesisHeaderOffset = 0x100

var genesisMagic = []byte("SEGA")

// miniFingerprintGenesis reports whether filename's data carries the
// Genesis/Mega Drive header magic at $100, for .BIN/.ROM files that can't
// be identified by extension alone.
func miniFingerprintGenesis(filename string) (bool, error) {
	f, err := os.Open(filename)
	if err != nil {
		return false, err
	}
	defer f.Close()

	b := make([]byte, len(genesisMagic))
	if _, err := f.ReadAt(b, genesisHeaderOffset); err != nil {
		return false, nil
	}
	return bytes.Equal(b, genesisMagic), nil
}
