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

// Package z80 interprets the Genesis secondary sound CPU (also the sole
// CPU of the Master System and a satellite of the Sega CD's CDC/PCM
// subsystem).
//
// As with hardware/cpu/m68k, the register file, execution.Result
// bookkeeping, and per-access cycle accounting are carried over from the
// teacher's 6507 interpreter with the register set and addressing
// rewritten - here to AF/BC/DE/HL/IX/IY/SP/PC plus the shadow AF'/BC'/DE'/HL'
// register set. Only enough of the instruction set is decoded to drive a
// guest program through the memory map, scheduler, and self-modifying-code
// contracts end to end; this is not a full Z80 disassembler/interpreter.
package z80
