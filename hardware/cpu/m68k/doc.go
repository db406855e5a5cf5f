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

// Package m68k interprets the Genesis/Mega Drive main CPU.
//
// The register file, execution.Result bookkeeping, and
// per-memory-access cycle accounting are all carried over from the
// teacher's 6507 interpreter; register width and addressing modes are
// rewritten for the 68000's D0-D7/A0-A7/SR/PC set. Only enough of the
// instruction set is decoded to drive a guest program through the
// memory map, scheduler, and self-modifying-code contracts end to end -
// this is explicitly not a full M68000 disassembler/interpreter. The
// instruction table (see instructions.go) is built so that adding a new
// opcode entry never requires touching Step itself.
package m68k
