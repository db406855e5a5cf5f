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
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/blastcore-emu/genesiscore/errors"
)

// WaveSource decodes a WAVE file's PCM samples into a flat little-endian
// byte stream a Track can read the way it reads raw BIN bytes, matching
// spec.md §6.1's "16-bit stereo PCM @ 44100; otherwise rejected".
type WaveSource struct {
	bytes []byte
}

// DecodeWave reads a complete WAVE stream via go-audio/wav, validating
// the 16-bit/44100/stereo constraint this spec's CD audio path requires.
func DecodeWave(r io.Reader) (*WaveSource, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, errors.Errorf("media: not a valid WAVE file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, errors.Errorf("media: WAVE decode failed: %v", err)
	}
	if buf.Format.SampleRate != 44100 || buf.Format.NumChannels != 2 || buf.SourceBitDepth != 16 {
		return nil, errors.Errorf(
			"media: unsupported WAVE format (rate=%v channels=%v depth=%v), want 16-bit stereo 44100",
			buf.Format.SampleRate, buf.Format.NumChannels, buf.SourceBitDepth,
		)
	}

	out := make([]byte, len(buf.Data)*2)
	for i, sample := range buf.Data {
		out[i*2] = byte(sample)
		out[i*2+1] = byte(sample >> 8)
	}
	return &WaveSource{bytes: out}, nil
}

// ReadAt implements io.ReaderAt over the decoded PCM byte stream.
func (w *WaveSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(w.bytes)) {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	n := copy(p, w.bytes[off:])
	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

// EncodeWave writes a 16-bit stereo 44100Hz PCM buffer out as a WAVE
// file via go-audio/wav's Encoder - used by the CDD fader's debug dump
// path, the Go equivalent of the original's render_audio_source("CDDA",
// ...) output sink.
func EncodeWave(w io.WriteSeeker, samples []int) error {
	enc := wav.NewEncoder(w, 44100, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return errors.Errorf("media: WAVE encode failed: %v", err)
	}
	return enc.Close()
}
