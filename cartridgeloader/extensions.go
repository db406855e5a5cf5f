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

import "slices"

// genericFileExtensions can't identify a console by themselves; the loader
// falls through to fingerprinting the cartridge data to decide on a mapper.
var genericFileExtensions = []string{".BIN", ".ROM"}

// explicitFileExtensions map directly to a mapping value recognised by
// cartridge.Attach's console dispatch.
var explicitFileExtensions = []string{
	".MD", ".GEN", ".SMD",
	".SMS", ".SG",
	".COL",
}

// discImageExtensions are disc container formats rather than flat ROM
// dumps; data from these is streamed instead of read in whole. Only the
// sheet/image formats media.ParseCue/ParseToc/OpenISO actually support -
// spec.md §6.1 names CUE, TOC, and ISO, nothing else.
var discImageExtensions = []string{".CUE", ".TOC", ".ISO"}

// FileExtensions is the full list of file extensions recognised by the
// cartridgeloader package.
var FileExtensions = slices.Concat(genericFileExtensions, explicitFileExtensions, discImageExtensions)
