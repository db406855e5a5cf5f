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

// Package media implements the disc-image containers a Sega CD boot
// needs: CUE+BIN/WAVE, CDRDAO-style TOC, and raw ISO, plus the shared
// sector read/scramble logic and a hand-rolled FLAC decoder for audio
// tracks.
//
// Grounded on original_source/cdimage.c (the shared bin_seek/bin_read
// sector machinery every format feeds into) and cue.c/flac.c/wave.c for
// the per-format parsers.
package media

import "io"

// TrackType distinguishes a CD audio track from a data track - the
// latter gets sync/BCD synthesis and scrambling, the former doesn't.
type TrackType uint8

const (
	TrackAudio TrackType = iota
	TrackData
)

// FileFormat names how a track's backing bytes are stored.
type FileFormat uint8

const (
	FormatBinary FileFormat = iota
	FormatMotorola // big-endian audio, needs byte-swap
	FormatWave
)

// sectorSource abstracts a track's backing byte stream: a BIN/ISO byte
// offset reader, or a WAVE/FLAC decoder's PCM sample reader.
type sectorSource interface {
	io.ReaderAt
}

// Track describes one entry in a disc's table of contents.
type Track struct {
	Number      int
	Type        TrackType
	Format      FileFormat
	PregapLBA   uint32 // INDEX 00, silence before the track's playable start
	StartLBA    uint32 // INDEX 01
	EndLBA      uint32 // exclusive, derived from the next track or file size
	FakePregap  uint32 // synthesized pregap sectors (no backing bytes)
	FileOffset  int64  // byte offset into Source where this track's data begins
	SectorBytes int    // bytes of payload per sector (2352 raw, 2048 cooked, ...)

	Source sectorSource
}

// Disc is a parsed disc image: an ordered track list plus the live
// scrambler/seek state bin_read needs.
type Disc struct {
	Tracks []Track

	curSector    uint32
	curTrack     int
	inFakePregap uint8 // 0 = not faking, 1 = data, 2 = audio
	scrambleLFSR uint16
}

const (
	fakeData uint8 = iota + 1
	fakeAudio
)

// TrackCount implements cdd.Disc.
func (d *Disc) TrackCount() int { return len(d.Tracks) }

// TrackLBA implements cdd.Disc: the playable (post-pregap) start of the
// given 1-indexed track.
func (d *Disc) TrackLBA(track int) uint32 {
	if track < 1 || track > len(d.Tracks) {
		return 0
	}
	return d.Tracks[track-1].StartLBA
}

// LeadOutLBA implements cdd.Disc: the end of the last track.
func (d *Disc) LeadOutLBA() uint32 {
	if len(d.Tracks) == 0 {
		return 0
	}
	return d.Tracks[len(d.Tracks)-1].EndLBA
}

// Seek positions the disc at sector, mirroring bin_seek: find the
// owning track, detect fake-pregap residency, and arm the scrambler
// for data tracks.
func (d *Disc) Seek(sector uint32) {
	d.curSector = sector
	d.inFakePregap = 0
	for i := range d.Tracks {
		t := &d.Tracks[i]
		rel := sector - t.PregapLBA
		if rel < t.FakePregap {
			if t.Type == TrackData {
				d.inFakePregap = fakeData
			} else {
				d.inFakePregap = fakeAudio
			}
			d.curTrack = i
			break
		}
		if sector < t.EndLBA {
			d.curTrack = i
			break
		}
	}
	if d.Tracks[d.curTrack].Type == TrackData {
		d.scrambleLFSR = 1
	}
}

// ReadByte returns one byte at the given offset within the sector
// currently seeked to, applying sync/BCD synthesis and CD-ROM
// scrambling exactly as spec.md §6.2 describes.
func (d *Disc) ReadByte(offset int) uint8 {
	t := &d.Tracks[d.curTrack]

	var b uint8
	switch {
	case d.inFakePregap == fakeData:
		b = fakeSectorByte(d.curSector, offset)
	case d.inFakePregap == fakeAudio:
		b = 0
	case t.SectorBytes < 2352 && offset < 16:
		b = fakeSectorByte(d.curSector, offset)
	case offset > t.SectorBytes+16:
		b = fakeSectorByte(d.curSector, offset)
	default:
		// Raw (2352-byte) sectors store their sync/header bytes in the
		// file itself, so the emulated offset maps straight onto the
		// file position. Cooked sectors (sector_bytes < 2352) only
		// store the payload, so byte 0 of the file is logical offset
		// 16 - the header before it was already synthesized above.
		fileRel := offset
		if t.SectorBytes < 2352 {
			fileRel = offset - 16
		}
		rel := d.curSector - t.PregapLBA - t.FakePregap
		pos := t.FileOffset + int64(rel)*int64(t.SectorBytes) + int64(fileRel)
		var buf [1]byte
		if t.Source != nil {
			t.Source.ReadAt(buf[:], pos)
		}
		b = buf[0]
		if t.Format == FormatMotorola && fileRel%2 == 0 {
			var hi [1]byte
			if t.Source != nil {
				t.Source.ReadAt(hi[:], pos+1)
			}
			b = hi[0]
		}
	}

	if offset >= 12 && t.Type == TrackData {
		b = scramble(&d.scrambleLFSR, b)
	}
	return b
}
