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

// Package memorymap resolves a guest CPU address to either a direct host
// buffer location or a pair of dispatch callbacks. It is consulted by the
// interpreter fallback on every access and by the recompiler once, at
// translation time, to decide which access strategy to inline.
//
// The chunk list plays the same role here as bus.CPUBus does for the
// original 6507 address decode: one contiguous address range per backing
// store, walked in order to find the chunk owning a given address. Unlike
// that flat 16-bit map, a 68000/Z80 guest needs sub-byte bus aliasing
// (odd/even-only chips, byte-swapped windows) and bank-switched pointer
// indirection, which is why MemChunk carries mask/shift/flags rather than
// just bounds.
package memorymap

import "github.com/blastcore-emu/genesiscore/errors"

// Flags is a bitmask of chunk access properties.
type Flags uint16

const (
	Read Flags = 1 << iota
	Write
	ReadAsCode
	IsCode
	PtrIdx
	AuxBuffer
	OnlyOdd
	OnlyEven
	ByteSwap
	FuncNull
)

// Has reports whether f contains every bit in mask.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Any reports whether f contains any bit in mask.
func (f Flags) Any(mask Flags) bool {
	return f&mask != 0
}

// codeGranularityShift is ram_flags_shift: IsCode chunks round their size up
// to a multiple of 1<<(codeGranularityShift+3) bytes so that the
// self-modifying-code bitmap (one bit per unit) aligns on chunk boundaries.
const codeGranularityShift = 5

// CodeUnitSize is the number of guest bytes covered by one bit of a code
// region's write-invalidation bitmap.
const CodeUnitSize = 1 << codeGranularityShift

// roundCodeSize rounds n up to a multiple of 1<<(codeGranularityShift+3),
// eight CodeUnitSize units, so the bitmap covers a whole number of bytes.
func roundCodeSize(n uint32) uint32 {
	const grain = 1 << (codeGranularityShift + 3)
	rem := n % grain
	if rem == 0 {
		return n
	}
	return n + (grain - rem)
}

// Read8Func and friends are the dispatch callbacks a chunk without a direct
// buffer uses to service an access.
type (
	Read8Func   func(addr uint32) uint8
	Read16Func  func(addr uint32) uint16
	Write8Func  func(addr uint32, v uint8)
	Write16Func func(addr uint32, v uint16)
)

// PointerTable resolves a PtrIdx chunk's indirect slot to a backing buffer,
// standing in for a CPU context's mem_pointers[] array. A nil return means
// the slot is unset; combined with FuncNull this falls through to the
// chunk's dispatch callbacks (used for bank-switched RAM overlays where the
// bank may or may not currently back a real buffer).
type PointerTable interface {
	Pointer(idx int) []byte
}

// MemChunk describes one contiguous guest-address range and how accesses to
// it are realised: a direct buffer, an indirect pointer-table slot, or a
// pair of dispatch callbacks.
type MemChunk struct {
	Start, End uint32 // half-open: [Start, End)
	Mask       uint32
	Shift      int // positive left-shifts the intra-chunk offset, negative right-shifts
	Flags      Flags

	// Buffer is set for a direct-buffer chunk.
	Buffer []byte

	// PtrIndex is the pointer-table slot for a PtrIdx chunk.
	PtrIndex int

	Read8   Read8Func
	Read16  Read16Func
	Write8  Write8Func
	Write16 Write16Func
}

// size returns End-Start.
func (c *MemChunk) size() uint32 {
	return c.End - c.Start
}

// contains reports whether addr falls within [Start, End).
func (c *MemChunk) contains(addr uint32) bool {
	return addr >= c.Start && addr < c.End
}

// offset computes the intra-chunk byte offset for addr, applying mask and
// shift. A positive shift widens the offset (left-shift); negative narrows
// it (right-shift), used when several guest bytes alias one host byte.
func (c *MemChunk) offset(addr uint32) uint32 {
	o := (addr - c.Start) & c.Mask
	if c.Shift > 0 {
		return o << uint(c.Shift)
	} else if c.Shift < 0 {
		return o >> uint(-c.Shift)
	}
	return o
}

// MemoryMap is an ordered, non-overlapping list of chunks covering one
// CPU's guest address space.
type MemoryMap struct {
	chunks []*MemChunk
}

// NewMemoryMap creates a MemoryMap from chunks, in address order. Callers
// are responsible for ordering; find_chunk is a linear scan and relies on
// the first matching chunk being the intended one when ranges are adjacent.
func NewMemoryMap(chunks ...*MemChunk) *MemoryMap {
	return &MemoryMap{chunks: chunks}
}

// FindChunk returns the first chunk containing addr whose flags match every
// bit of flagsMask (pass 0 to match any chunk). If sizeSum is non-nil, it
// accumulates the rounded size of every chunk (not just the first match)
// whose flags match flagsMask - used to lay out the ram_code_flags bitmap
// before any code has been translated.
func (m *MemoryMap) FindChunk(addr uint32, flagsMask Flags, sizeSum *uint32) *MemChunk {
	var found *MemChunk
	for _, c := range m.chunks {
		if flagsMask != 0 && !c.Flags.Has(flagsMask) {
			continue
		}
		if sizeSum != nil {
			*sizeSum += roundCodeSize(c.size())
		}
		if found == nil && c.contains(addr) {
			found = c
		}
	}
	return found
}

// GetNativePointer returns a direct slice into the chunk's backing buffer
// for addr, if the chunk is readable and has one. PtrIdx chunks resolve
// through pointers; a nil table or unset slot (without FuncNull) also
// yields no pointer, forcing the caller onto the dispatch-callback path.
func (m *MemoryMap) GetNativePointer(addr uint32, pointers PointerTable) ([]byte, uint32, bool) {
	c := m.FindChunk(addr, Read, nil)
	if c == nil {
		return nil, 0, false
	}

	off := c.offset(addr)

	if c.Flags.Has(PtrIdx) {
		if pointers == nil {
			return nil, 0, false
		}
		buf := pointers.Pointer(c.PtrIndex)
		if buf == nil {
			return nil, 0, false
		}
		return buf, off, true
	}

	if c.Buffer == nil {
		return nil, 0, false
	}
	return c.Buffer, off, true
}

// subByteByte applies OnlyOdd/OnlyEven/ByteSwap bus aliasing to a byte
// access, returning the resolved intra-chunk offset and whether the access
// is actually visible on this half of the bus.
func subByteByte(c *MemChunk, addr uint32, off uint32) (uint32, bool) {
	odd := addr&1 != 0
	if c.Flags.Has(OnlyOdd) && !odd {
		return off, false
	}
	if c.Flags.Has(OnlyEven) && odd {
		return off, false
	}
	if c.Flags.Has(ByteSwap) {
		off ^= 1
	}
	return off, true
}

// ReadByte performs a slow interpreter-path byte read.
func (m *MemoryMap) ReadByte(addr uint32, pointers PointerTable) (uint8, error) {
	c := m.FindChunk(addr, Read, nil)
	if c == nil {
		return 0, errors.Errorf(errors.MemoryBusError, addr)
	}

	off := c.offset(addr)

	if c.Flags.Any(OnlyOdd | OnlyEven | ByteSwap) {
		resolved, visible := subByteByte(c, addr, off)
		if !visible {
			return 0xff, nil
		}
		off = resolved
	}

	if buf, ok := c.bufferFor(pointers); ok {
		if int(off) >= len(buf) {
			return 0, errors.Errorf(errors.MemoryBusError, addr)
		}
		return buf[off], nil
	}

	if c.Flags.Has(FuncNull) && c.Read8 == nil {
		return 0xff, nil
	}
	if c.Read8 == nil {
		return 0, errors.Errorf(errors.MemoryBusError, addr)
	}
	return c.Read8(addr), nil
}

// ReadWord performs a slow interpreter-path big-endian word read, matching
// the 68000's native byte order. OnlyOdd/OnlyEven chunks return the
// populated half with the other half forced to all-ones.
func (m *MemoryMap) ReadWord(addr uint32, pointers PointerTable) (uint16, error) {
	c := m.FindChunk(addr, Read, nil)
	if c == nil {
		return 0, errors.Errorf(errors.MemoryBusError, addr)
	}

	if c.Flags.Has(OnlyOdd) {
		lo, err := m.ReadByte(addr|1, pointers)
		if err != nil {
			return 0, err
		}
		return 0xff00 | uint16(lo), nil
	}
	if c.Flags.Has(OnlyEven) {
		hi, err := m.ReadByte(addr&^uint32(1), pointers)
		if err != nil {
			return 0, err
		}
		return uint16(hi)<<8 | 0xff, nil
	}

	off := c.offset(addr)
	if buf, ok := c.bufferFor(pointers); ok {
		if int(off)+1 >= len(buf) {
			return 0, errors.Errorf(errors.MemoryBusError, addr)
		}
		return uint16(buf[off])<<8 | uint16(buf[off+1]), nil
	}

	if c.Flags.Has(FuncNull) && c.Read16 == nil {
		return 0xffff, nil
	}
	if c.Read16 == nil {
		return 0, errors.Errorf(errors.MemoryBusError, addr)
	}
	return c.Read16(addr), nil
}

// WriteByte performs a slow interpreter-path byte write.
func (m *MemoryMap) WriteByte(addr uint32, data uint8, pointers PointerTable) error {
	c := m.FindChunk(addr, Write, nil)
	if c == nil {
		return errors.Errorf(errors.MemoryBusError, addr)
	}

	off := c.offset(addr)
	if c.Flags.Any(OnlyOdd | OnlyEven | ByteSwap) {
		resolved, visible := subByteByte(c, addr, off)
		if !visible {
			return nil
		}
		off = resolved
	}

	if buf, ok := c.bufferFor(pointers); ok {
		if int(off) >= len(buf) {
			return errors.Errorf(errors.MemoryBusError, addr)
		}
		buf[off] = data
		return nil
	}

	if c.Flags.Has(FuncNull) && c.Write8 == nil {
		return nil
	}
	if c.Write8 == nil {
		return errors.Errorf(errors.MemoryBusError, addr)
	}
	c.Write8(addr, data)
	return nil
}

// WriteWord performs a slow interpreter-path big-endian word write.
func (m *MemoryMap) WriteWord(addr uint32, data uint16, pointers PointerTable) error {
	c := m.FindChunk(addr, Write, nil)
	if c == nil {
		return errors.Errorf(errors.MemoryBusError, addr)
	}

	if c.Flags.Has(OnlyOdd) {
		return m.WriteByte(addr|1, uint8(data), pointers)
	}
	if c.Flags.Has(OnlyEven) {
		return m.WriteByte(addr&^uint32(1), uint8(data>>8), pointers)
	}

	off := c.offset(addr)
	if buf, ok := c.bufferFor(pointers); ok {
		if int(off)+1 >= len(buf) {
			return errors.Errorf(errors.MemoryBusError, addr)
		}
		buf[off] = uint8(data >> 8)
		buf[off+1] = uint8(data)
		return nil
	}

	if c.Flags.Has(FuncNull) && c.Write16 == nil {
		return nil
	}
	if c.Write16 == nil {
		return errors.Errorf(errors.MemoryBusError, addr)
	}
	c.Write16(addr, data)
	return nil
}

// bufferFor resolves a chunk's backing buffer, whether direct or indirect
// through a pointer table.
func (c *MemChunk) bufferFor(pointers PointerTable) ([]byte, bool) {
	if c.Flags.Has(PtrIdx) {
		if pointers == nil {
			return nil, false
		}
		buf := pointers.Pointer(c.PtrIndex)
		return buf, buf != nil
	}
	return c.Buffer, c.Buffer != nil
}

// InterpKind names the access strategy specialize_interp_read/write selects
// for a known address window.
type InterpKind int

const (
	// Ignored means the chunk covering the window is unsuitable for
	// specialization (shift, sub-byte aliasing, FuncNull);
	// the caller must fall back to the general ReadByte/Word path.
	Ignored InterpKind = iota
	// Direct means the window hits a chunk with a direct buffer.
	Direct
	// Indexed means the window hits a PtrIdx chunk.
	Indexed
	// Fixed means the window hits a dispatch-callback chunk with no
	// buffer at all (e.g. a hardware register).
	Fixed
	// Map means the window straddles more than one chunk and must be
	// re-resolved per access.
	Map
)

// SpecializeResult is what specialize_interp_read/write returns: the
// strategy plus enough information to fast-path every access in
// [start, end) without repeating FindChunk.
type SpecializeResult struct {
	Kind     InterpKind
	Chunk    *MemChunk
	PtrIndex int
}

// SpecializeInterpRead precomputes the fastest access strategy for the
// guest window [start, end), for use by an interpreter that knows ahead of
// time it will only ever touch that window (e.g. the 68000 interpreter's
// PC-relative fetch). Specialization requires a single chunk to fully
// contain the window with no shift, no odd/even/byteswap aliasing, and no
// FuncNull fallback.
func SpecializeInterpRead(m *MemoryMap, start, end uint32) SpecializeResult {
	c := m.FindChunk(start, Read, nil)
	if c == nil || !c.contains(end-1) {
		return SpecializeResult{Kind: Map}
	}
	if c.Shift != 0 || c.Flags.Any(OnlyOdd|OnlyEven|ByteSwap|FuncNull) {
		return SpecializeResult{Kind: Ignored}
	}
	if c.Flags.Has(PtrIdx) {
		return SpecializeResult{Kind: Indexed, Chunk: c, PtrIndex: c.PtrIndex}
	}
	if c.Buffer != nil {
		return SpecializeResult{Kind: Direct, Chunk: c}
	}
	return SpecializeResult{Kind: Fixed, Chunk: c}
}

// SpecializeInterpWrite is SpecializeInterpRead's write-side counterpart.
func SpecializeInterpWrite(m *MemoryMap, start, end uint32) SpecializeResult {
	c := m.FindChunk(start, Write, nil)
	if c == nil || !c.contains(end-1) {
		return SpecializeResult{Kind: Map}
	}
	if c.Shift != 0 || c.Flags.Any(OnlyOdd|OnlyEven|ByteSwap|FuncNull) {
		return SpecializeResult{Kind: Ignored}
	}
	if c.Flags.Has(PtrIdx) {
		return SpecializeResult{Kind: Indexed, Chunk: c, PtrIndex: c.PtrIndex}
	}
	if c.Buffer != nil {
		return SpecializeResult{Kind: Direct, Chunk: c}
	}
	return SpecializeResult{Kind: Fixed, Chunk: c}
}
