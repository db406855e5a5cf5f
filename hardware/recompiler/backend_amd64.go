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

package recompiler

import (
	"github.com/blastcore-emu/genesiscore/errors"
	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
)

// amd64Backend is the only Backend implementation this module ships. It
// performs every bookkeeping step a real x86-64 backend would (arena
// reservation, branch-chain widening, retranslation-stub placement) but
// emits placeholder bytes rather than real amd64 opcodes, since emitting an
// actual per-instruction JIT is the one primitive spec.md excludes.
//
// movPCLen is the byte length reserved for the mov-immediate-then-jump
// retranslation stub; a real backend's value would depend on its encoding
// of mov_ir/jmp. PatchForRetranslate overwrites movPCLen bytes at the
// native address with placeholder bytes; the original sequence is not
// relocated.
const movPCLen = 10

type amd64Backend struct{}

// NewAMD64Backend returns the stub amd64 Backend.
func NewAMD64Backend() Backend {
	return amd64Backend{}
}

func (amd64Backend) Name() string { return "amd64" }

func (amd64Backend) CheckCodePrologue(arena *CodeArena) {
	arena.Reserve(codePrologueLen)
}

func (amd64Backend) CheckCycles(arena *CodeArena) {
	arena.Reserve(maxInstLen * 2)
	// placeholder for cmp/jcc/call sequence; a real backend emits the
	// encoding described in check_cycles.
	arena.Emit(0x90)
}

func (b amd64Backend) GenMemFun(mm *memorymap.MemoryMap, kind AccessKind, start, end uint32) MemFunPlan {
	var result memorymap.SpecializeResult
	switch kind {
	case Read8, Read16:
		result = memorymap.SpecializeInterpRead(mm, start, end)
	default:
		result = memorymap.SpecializeInterpWrite(mm, start, end)
	}

	plan := MemFunPlan{Kind: kind, Result: result}
	if result.Kind == memorymap.Map {
		// a Map result means the window straddles more than one chunk;
		// every Map result is planned with wide branches, without
		// counting the chunks the walk would compare.
		plan.NeedsWideBranch = NeedsWideBranch(0, branchChainLimit+1)
	}
	return plan
}

func (amd64Backend) MovePC(arena *CodeArena, guestPC uint32) (int, int) {
	arena.Reserve(movPCLen)
	offset := arena.Len()
	arena.Emit(make([]byte, movPCLen)...)
	return offset, movPCLen
}

func (amd64Backend) PatchForRetranslate(arena *CodeArena, nativeAddr int, handler uintptr) error {
	if nativeAddr < 0 || nativeAddr+movPCLen > arena.Len() {
		return errors.Errorf(errors.CodeWriteToROM, nativeAddr)
	}
	for i := 0; i < movPCLen; i++ {
		arena.buf[nativeAddr+i] = 0xe9 // placeholder jmp opcode byte
	}
	return nil
}
