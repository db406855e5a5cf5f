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

package media_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blastcore-emu/genesiscore/media"
)

func writeTempFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestParseCueSingleDataTrack(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "game.bin", make([]byte, 2352*10))

	cue := `FILE "game.bin" BINARY
  TRACK 01 MODE1/2352
    INDEX 01 00:00:00
`
	disc, err := media.ParseCue(dir, cue)
	if err != nil {
		t.Fatalf("ParseCue: %v", err)
	}
	if disc.TrackCount() != 1 {
		t.Fatalf("TrackCount() = %d, want 1", disc.TrackCount())
	}
	if disc.LeadOutLBA() != 10 {
		t.Fatalf("LeadOutLBA() = %d, want 10", disc.LeadOutLBA())
	}
}

func TestParseCueMultiTrackPregap(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "game.bin", make([]byte, 2352*20))

	cue := `FILE "game.bin" BINARY
  TRACK 01 MODE1/2352
    INDEX 01 00:00:00
  TRACK 02 AUDIO
    INDEX 00 00:02:00
    INDEX 01 00:03:00
`
	disc, err := media.ParseCue(dir, cue)
	if err != nil {
		t.Fatalf("ParseCue: %v", err)
	}
	if disc.TrackCount() != 2 {
		t.Fatalf("TrackCount() = %d, want 2", disc.TrackCount())
	}
	if disc.TrackLBA(2) != 225 { // 00:03:00 -> 3*75
		t.Fatalf("TrackLBA(2) = %d, want 225", disc.TrackLBA(2))
	}
}

func TestSectorSyncAndBCD(t *testing.T) {
	// A cooked (non-raw) track has no header bytes in its backing
	// file at all, so offsets 0-15 are always synthesized.
	dir := t.TempDir()
	writeTempFile(t, dir, "game.bin", make([]byte, 2048*4))
	cue := `FILE "game.bin" BINARY
  TRACK 01 MODE1/2048
    INDEX 01 00:00:00
`
	disc, err := media.ParseCue(dir, cue)
	if err != nil {
		t.Fatalf("ParseCue: %v", err)
	}
	disc.Seek(1)
	for i := 1; i < 11; i++ {
		if got := disc.ReadByte(i); got != 0xFF {
			t.Fatalf("ReadByte(%d) = %#x, want 0xFF (sync)", i, got)
		}
	}
	if got := disc.ReadByte(15); got != 0x01 {
		t.Fatalf("ReadByte(15) = %#x, want 0x01 (MODE1 marker)", got)
	}
}

func TestRawSectorPassesThroughFileBytes(t *testing.T) {
	// A raw (2352-byte) track's sync/header bytes already live in the
	// file, so ReadByte must not synthesize them - it should return
	// whatever byte is actually stored there.
	dir := t.TempDir()
	sector := make([]byte, 2352)
	sector[1] = 0xAB
	writeTempFile(t, dir, "game.bin", sector)
	cue := `FILE "game.bin" BINARY
  TRACK 01 MODE1/2352
    INDEX 01 00:00:00
`
	disc, err := media.ParseCue(dir, cue)
	if err != nil {
		t.Fatalf("ParseCue: %v", err)
	}
	disc.Seek(0)
	if got := disc.ReadByte(1); got != 0xAB {
		t.Fatalf("ReadByte(1) = %#x, want 0xab (raw passthrough)", got)
	}
}

func TestOpenISOFakePregap(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "game.iso", make([]byte, 2048*100))

	disc, err := media.OpenISO(path)
	if err != nil {
		t.Fatalf("OpenISO: %v", err)
	}
	if disc.TrackCount() != 1 {
		t.Fatalf("TrackCount() = %d, want 1", disc.TrackCount())
	}
	if disc.Tracks[0].StartLBA != 150 {
		t.Fatalf("StartLBA = %d, want 150 (2-second fake pregap)", disc.Tracks[0].StartLBA)
	}
}

func TestParseTocBasicTrack(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "track1.bin", make([]byte, 2352*5))

	toc := `DATAFILE "track1.bin"
TRACK MODE1
`
	disc, err := media.ParseToc(dir, toc)
	if err != nil {
		t.Fatalf("ParseToc: %v", err)
	}
	if disc.TrackCount() != 1 {
		t.Fatalf("TrackCount() = %d, want 1", disc.TrackCount())
	}
}
