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

package recompiler_test

import (
	"testing"

	"github.com/blastcore-emu/genesiscore/hardware/memorymap"
	"github.com/blastcore-emu/genesiscore/hardware/recompiler"
	"github.com/blastcore-emu/genesiscore/test"
)

func TestCodeArenaGrows(t *testing.T) {
	arena := recompiler.NewCodeArena(4)
	arena.Reserve(16)
	test.ExpectEquality(t, arena.Remaining() >= 16, true)
}

func TestCheckCodePrologueReserves(t *testing.T) {
	arena := recompiler.NewCodeArena(8)
	b := recompiler.NewAMD64Backend()
	b.CheckCodePrologue(arena)
	test.ExpectEquality(t, arena.Remaining() >= 0, true)
}

func TestGenMemFunDirectChunk(t *testing.T) {
	buf := make([]byte, 0x10000)
	mm := memorymap.NewMemoryMap(&memorymap.MemChunk{
		Start: 0, End: 0x10000, Mask: 0xffff, Flags: memorymap.Read | memorymap.Write, Buffer: buf,
	})
	b := recompiler.NewAMD64Backend()
	plan := b.GenMemFun(mm, recompiler.Read8, 0x100, 0x200)
	test.ExpectEquality(t, plan.Result.Kind, memorymap.Direct)
}

func TestCodeBitmapTracksWrites(t *testing.T) {
	bm := recompiler.NewCodeBitmap(0, 256)
	bm.MarkCode(0x20, memorymap.CodeUnitSize)
	test.ExpectEquality(t, bm.IsCode(0x20), true)

	hit := bm.OnWrite(0x20, 1)
	test.ExpectEquality(t, hit, true)
	test.ExpectEquality(t, bm.IsCode(0x20), false)

	hit = bm.OnWrite(0x40, 1)
	test.ExpectEquality(t, hit, false)
}

func TestNeedsWideBranch(t *testing.T) {
	test.ExpectEquality(t, recompiler.NeedsWideBranch(0, 3), false)
	test.ExpectEquality(t, recompiler.NeedsWideBranch(0, 10), true)
}
