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

import "github.com/blastcore-emu/genesiscore/hardware/memorymap"

// CodeBitmap tracks, one bit per memorymap.CodeUnitSize-byte unit of an
// IsCode chunk, whether that unit currently backs a live translation. A
// write to a set bit means self-modifying code: the corresponding
// nativecode entries must be invalidated before the write is allowed to
// take effect, matching the ram_code_flags bitmap the original backend
// keeps alongside each translated RAM region.
type CodeBitmap struct {
	base  uint32
	bits  []uint64
}

// NewCodeBitmap creates a bitmap covering sizeBytes guest bytes starting at
// base, rounded up to a whole number of CodeUnitSize units.
func NewCodeBitmap(base, sizeBytes uint32) *CodeBitmap {
	units := (sizeBytes + memorymap.CodeUnitSize - 1) / memorymap.CodeUnitSize
	words := (units + 63) / 64
	if words == 0 {
		words = 1
	}
	return &CodeBitmap{base: base, bits: make([]uint64, words)}
}

func (b *CodeBitmap) unitOf(addr uint32) (word, bit uint32) {
	unit := (addr - b.base) / memorymap.CodeUnitSize
	return unit / 64, unit % 64
}

// MarkCode sets the bit for every unit covering [addr, addr+length), called
// by nativecode.Register's caller once a translation for that range exists.
func (b *CodeBitmap) MarkCode(addr, length uint32) {
	end := addr + length
	for a := addr; a < end; a += memorymap.CodeUnitSize {
		w, bit := b.unitOf(a)
		if int(w) < len(b.bits) {
			b.bits[w] |= 1 << bit
		}
	}
}

// IsCode reports whether addr falls within a unit currently marked as
// backing live translated code.
func (b *CodeBitmap) IsCode(addr uint32) bool {
	w, bit := b.unitOf(addr)
	if int(w) >= len(b.bits) {
		return false
	}
	return b.bits[w]&(1<<bit) != 0
}

// ClearCode clears the bit for every unit covering [addr, addr+length),
// called after nativecode.NativeCodeMap.Invalidate for the same range.
func (b *CodeBitmap) ClearCode(addr, length uint32) {
	end := addr + length
	for a := addr; a < end; a += memorymap.CodeUnitSize {
		w, bit := b.unitOf(a)
		if int(w) < len(b.bits) {
			b.bits[w] &^= 1 << bit
		}
	}
}

// OnWrite is called on every write landing inside a code-bitmap-covered
// chunk. It reports whether codeMap needs invalidating for [addr,
// addr+length) - true only when at least one touched unit was marked as
// live code - and clears those units' bits as a side effect, since a write
// that invalidates a translation also invalidates its "this is code" mark
// until it's retranslated.
func (b *CodeBitmap) OnWrite(addr, length uint32) bool {
	hit := false
	end := addr + length
	for a := addr; a < end; a += memorymap.CodeUnitSize {
		if b.IsCode(a) {
			hit = true
		}
	}
	if hit {
		b.ClearCode(addr, length)
	}
	return hit
}
