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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blastcore-emu/genesiscore/errors"
)

// trackModeSectorBytes maps a TOC TRACK mode keyword to its sector
// payload size, per spec.md §6.1's TOC keyword list.
var trackModeSectorBytes = map[string]int{
	"AUDIO":        2352,
	"MODE1":        2048,
	"MODE1_RAW":    2352,
	"MODE2":        2336,
	"MODE2_RAW":    2352,
	"MODE2_FORM1":  2048,
	"MODE2_FORM2":  2324,
}

// ParseToc parses a CDRDAO-style TOC sheet: TRACK/DATAFILE/FILE/
// SILENCE/START, with an optional RW/RW_RAW subcode tag trailing a
// TRACK line.
func ParseToc(dir string, text string) (*Disc, error) {
	var tracks []Track
	var curSource sectorSource
	var curFormat FileFormat
	var curOffset int64
	track := -1

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "TRACK":
			track++
			if len(fields) < 2 {
				continue
			}
			sectorBytes, ok := trackModeSectorBytes[fields[1]]
			if !ok {
				sectorBytes = 2352
			}
			t := Track{
				Number:      track + 1,
				SectorBytes: sectorBytes,
				Format:      curFormat,
				Source:      curSource,
				FileOffset:  curOffset,
			}
			if fields[1] == "AUDIO" {
				t.Type = TrackAudio
			} else {
				t.Type = TrackData
			}
			tracks = append(tracks, t)

		case "DATAFILE", "FILE":
			name, _, ok := extractQuoted(line)
			if !ok {
				continue
			}
			path := name
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, name)
			}
			f, err := os.Open(path)
			if err != nil {
				return nil, errors.Errorf("media: failed to open TOC data file %s: %v", path, err)
			}
			curSource = f
			curFormat = FormatBinary
			curOffset = 0
			if track >= 0 {
				tracks[track].Source = curSource
				tracks[track].Format = curFormat
			}

		case "SILENCE":
			if track >= 0 && len(fields) >= 2 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					tracks[track].FakePregap = uint32(n)
				}
			}

		case "START":
			if track >= 0 && len(fields) >= 2 {
				tracks[track].PregapLBA = timecodeToLBA(fields[1])
			}
		}
	}

	if len(tracks) == 0 {
		return nil, errors.Errorf("media: TOC sheet %s contains no tracks", dir)
	}

	var lba uint32
	for i := range tracks {
		tracks[i].StartLBA = lba + tracks[i].FakePregap
		// Without an explicit file size per track, assume contiguous
		// layout; a concrete host wires EndLBA from file stat once the
		// data file length is known.
		lba = tracks[i].StartLBA
	}
	return &Disc{Tracks: tracks}, nil
}

func extractQuoted(line string) (string, string, bool) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", "", false
	}
	rest := line[start+1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", "", false
	}
	return rest[:end], rest[end+1:], true
}
