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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blastcore-emu/genesiscore/media"
)

// OpenDisc dispatches ld.Filename's extension to the matching media
// parser and returns the resulting disc image. Only valid when
// ld.IsDiscImage is true (set by NewLoaderFromFilename when the filename
// extension matches discImageExtensions).
func OpenDisc(ld Loader) (*media.Disc, error) {
	if !ld.IsDiscImage {
		return nil, fmt.Errorf("loader: %s is not a disc image", ld.Filename)
	}

	dir := filepath.Dir(ld.Filename)
	extension := strings.ToUpper(filepath.Ext(ld.Filename))

	switch extension {
	case ".ISO":
		disc, err := media.OpenISO(ld.Filename)
		if err != nil {
			return nil, fmt.Errorf("loader: %w", err)
		}
		return disc, nil

	case ".CUE":
		text, err := os.ReadFile(ld.Filename)
		if err != nil {
			return nil, fmt.Errorf("loader: %w", err)
		}
		disc, err := media.ParseCue(dir, string(text))
		if err != nil {
			return nil, fmt.Errorf("loader: %w", err)
		}
		return disc, nil

	case ".TOC":
		text, err := os.ReadFile(ld.Filename)
		if err != nil {
			return nil, fmt.Errorf("loader: %w", err)
		}
		disc, err := media.ParseToc(dir, string(text))
		if err != nil {
			return nil, fmt.Errorf("loader: %w", err)
		}
		return disc, nil
	}

	return nil, fmt.Errorf("loader: unrecognised disc image extension %q", extension)
}
