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
	"github.com/blastcore-emu/genesiscore/logger"
)

// timecodeToLBA converts an "mm:ss:ff" string into a linear block
// address, grounded on original_source/cue.c's timecode_to_lba.
func timecodeToLBA(timecode string) uint32 {
	parts := strings.SplitN(timecode, ":", 3)
	var minutes, seconds, frames int
	if len(parts) > 0 {
		minutes, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		seconds, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		frames, _ = strconv.Atoi(parts[2])
	}
	seconds += minutes * 60
	return uint32(seconds*75 + frames)
}

type cueFile struct {
	source sectorSource
	format FileFormat
	size   int64
}

// ParseCue parses a CUE sheet rooted at dir (used to resolve relative
// FILE paths), recognising FILE/TRACK/PREGAP/INDEX exactly as spec.md
// §6.1 lists, and supporting one backing file per TRACK command (a
// generalisation of cue.c's single-FILE-command restriction, since real
// CUE sheets commonly split multi-track audio into one file per track).
func ParseCue(dir string, text string) (*Disc, error) {
	var tracks []Track
	var curFile *cueFile
	track := -1

	lines := strings.Split(text, "\n")
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "FILE "):
			f, err := parseCueFileLine(dir, line)
			if err != nil {
				return nil, err
			}
			curFile = f

		case strings.HasPrefix(line, "TRACK "):
			track++
			rest := strings.TrimSpace(line[len("TRACK "):])
			fields := strings.Fields(rest)
			if len(fields) < 2 {
				logger.Logf("media", "malformed TRACK line: %q", line)
				continue
			}
			num, _ := strconv.Atoi(fields[0])
			t := Track{Number: num, SectorBytes: 2352}
			if strings.HasPrefix(fields[1], "AUDIO") {
				t.Type = TrackAudio
			} else {
				t.Type = TrackData
				if slash := strings.IndexByte(fields[1], '/'); slash >= 0 {
					if n, err := strconv.Atoi(fields[1][slash+1:]); err == nil {
						t.SectorBytes = n
					}
				}
			}
			if curFile != nil {
				t.Format = curFile.format
				t.Source = curFile.source
			}
			tracks = append(tracks, t)

		case strings.HasPrefix(line, "PREGAP ") && track >= 0:
			tracks[track].FakePregap = timecodeToLBA(strings.TrimSpace(line[len("PREGAP "):]))

		case strings.HasPrefix(line, "INDEX ") && track >= 0:
			rest := strings.TrimSpace(line[len("INDEX "):])
			fields := strings.Fields(rest)
			if len(fields) != 2 {
				continue
			}
			index, _ := strconv.Atoi(fields[0])
			lba := timecodeToLBA(fields[1])
			switch index {
			case 0:
				tracks[track].PregapLBA = lba
			case 1:
				tracks[track].StartLBA = lba
			}
		}
	}

	if len(tracks) == 0 {
		return nil, errors.Errorf("media: CUE sheet %s contains no tracks", dir)
	}

	for i := 0; i+1 < len(tracks); i++ {
		if tracks[i+1].PregapLBA != 0 {
			tracks[i].EndLBA = tracks[i+1].PregapLBA
		} else {
			tracks[i].EndLBA = tracks[i+1].StartLBA
		}
	}
	last := &tracks[len(tracks)-1]
	if curFile != nil {
		last.EndLBA = last.StartLBA + uint32(curFile.size/int64(last.SectorBytes))
	}

	return &Disc{Tracks: tracks}, nil
}

func parseCueFileLine(dir, line string) (*cueFile, error) {
	rest := strings.TrimSpace(line[len("FILE "):])
	start := strings.IndexByte(rest, '"')
	if start < 0 {
		return nil, errors.Errorf("media: malformed FILE line %q", line)
	}
	rest = rest[start+1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return nil, errors.Errorf("media: malformed FILE line %q", line)
	}
	name := rest[:end]
	kind := strings.TrimSpace(rest[end+1:])

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, name)
	}

	switch {
	case strings.HasPrefix(kind, "WAVE"):
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Errorf("media: failed to open WAVE file %s: %v", path, err)
		}
		defer f.Close()
		src, err := DecodeWave(f)
		if err != nil {
			return nil, err
		}
		return &cueFile{source: src, format: FormatWave, size: int64(len(src.bytes))}, nil

	default:
		format := FormatBinary
		if strings.HasPrefix(kind, "MOTOROLA") {
			format = FormatMotorola
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Errorf("media: failed to open BINARY file %s: %v", path, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, errors.Errorf("media: failed to stat %s: %v", path, err)
		}
		return &cueFile{source: f, format: format, size: info.Size()}, nil
	}
}
