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

package media

import (
	"os"

	"github.com/blastcore-emu/genesiscore/errors"
)

// isoFakePregapSectors is the "2-second fake pregap" spec.md §6.1
// specifies for heuristically-typed ISO images (2 seconds * 75
// sectors/second).
const isoFakePregapSectors = 150

// OpenISO treats path as a single MODE1 data track with a synthesized
// 2-second pregap, per spec.md §6.1's ISO heuristic.
func OpenISO(path string) (*Disc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("media: failed to open ISO %s: %v", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Errorf("media: failed to stat ISO %s: %v", path, err)
	}

	const sectorBytes = 2048
	sectors := uint32(info.Size() / sectorBytes)

	t := Track{
		Number:      1,
		Type:        TrackData,
		Format:      FormatBinary,
		FakePregap:  isoFakePregapSectors,
		StartLBA:    isoFakePregapSectors,
		EndLBA:      isoFakePregapSectors + sectors,
		SectorBytes: sectorBytes,
		Source:      f,
	}
	return &Disc{Tracks: []Track{t}}, nil
}
