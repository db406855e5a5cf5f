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

// Package cartridgeloader is used to load cartridge data so that it can be used
// with the cartridge pacakage
//
// # File Extensions
//
// The file extension of a file identifies which console the data targets
// and, for disc-based media, which container format wraps it:
//
//	Genesis/Mega Drive	"MD", "GEN", "SMD"
//	Master System		"SMS", "SG"
//	ColecoVision		"COL"
//	CD track sheet		"CUE", "TOC"
//	raw CD image		"ISO"
//
// File extensions are case insensitive.
//
// A file extension of "BIN" or "ROM" indicates that the data should be
// fingerprinted as normal, defaulting to a Genesis/Mega Drive mapper.
//
// # Hashes
//
// Creating a cartridge loader with NewLoaderFromData() will also create a SHA1
// and MD5 hash of the data. A loader created with NewLoaderFromFilename()
// creates the hashes when Open() reads the data. The hash is taken over all
// of the data.
package cartridgeloader
