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

// Package recompiler specifies everything around per-instruction JIT code
// emission without doing the emission itself: the Backend contract an
// architecture-specific host-code generator must satisfy, the code-arena
// growth check, the gen_mem_fun branch-chain-widening rule, the
// self-modifying-code bitmap, and the move_pc retranslation-stub protocol.
//
// A Backend decides how one guest instruction's *effects* - memory access,
// cycle accounting, branch resolution - compile to host code; it is not
// given the instruction decoder itself (hardware/cpu/m68k and
// hardware/cpu/z80 own that), only the address/cycle-count/branch-target
// triples that decoding produces.
package recompiler
