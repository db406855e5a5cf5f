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

// Package nativecode tracks the mapping from guest program counter to
// translated host code, and the bookkeeping needed to patch a branch whose
// target wasn't yet translated at the time the branch itself was.
//
// The map is chunked (NativeCodeMap.chunkBytes guest bytes per chunk) rather
// than one giant array, since most of a 68000's 16MB address space never
// gets translated - allocating a chunk lazily keeps memory proportional to
// code actually reached, mirroring how backend.c's deferred_addr list and
// memmap_chunk walk only ever touch what's live.
package nativecode

// InvalidOffset marks a guest byte that has not been translated.
const InvalidOffset int32 = -1

// ExtensionWord marks a guest byte that is the second (or later) word of a
// multi-word instruction whose translation entry lives at the previous
// guest address - looking it up directly would otherwise return "not
// translated" for bytes that are merely the tail of an instruction.
const ExtensionWord int32 = -2

// defaultChunkBytes is the guest-address granularity of one native-code
// chunk.
const defaultChunkBytes = 256

// chunk holds one chunkBytes-wide slice of the guest address space: a host
// base address plus one signed offset per guest byte.
type chunk struct {
	base    uintptr
	offsets []int32
}

// NativeCodeMap maps guest program-counter values to host code addresses.
type NativeCodeMap struct {
	chunkBytes uint32
	chunks     map[uint32]*chunk
}

// NewNativeCodeMap creates an empty map. chunkBytes, if zero, defaults to
// 256, matching the granularity a 68000 block of straight-line code
// typically spans between branch targets.
func NewNativeCodeMap(chunkBytes uint32) *NativeCodeMap {
	if chunkBytes == 0 {
		chunkBytes = defaultChunkBytes
	}
	return &NativeCodeMap{
		chunkBytes: chunkBytes,
		chunks:     make(map[uint32]*chunk),
	}
}

func (m *NativeCodeMap) chunkIndex(guestAddr uint32) (uint32, uint32) {
	idx := guestAddr / m.chunkBytes
	off := guestAddr % m.chunkBytes
	return idx, off
}

func (m *NativeCodeMap) chunkFor(idx uint32, create bool) *chunk {
	c, ok := m.chunks[idx]
	if !ok {
		if !create {
			return nil
		}
		c = &chunk{offsets: make([]int32, m.chunkBytes)}
		for i := range c.offsets {
			c.offsets[i] = InvalidOffset
		}
		m.chunks[idx] = c
	}
	return c
}

// Register records that guestAddr translates to hostAddr, which is itself
// the base of a contiguous translation region covering instrLen guest
// bytes, base (once, at first use of a chunk) set to hostAddr.
//
// Every subsequent byte of a multi-byte instruction within this call is
// marked ExtensionWord so Lookup on those bytes correctly reports "this
// byte belongs to the instruction starting earlier", not "untranslated".
func (m *NativeCodeMap) Register(guestAddr uint32, hostAddr uintptr, instrLen uint32) {
	idx, off := m.chunkIndex(guestAddr)
	c := m.chunkFor(idx, true)
	if c.base == 0 {
		c.base = hostAddr
	}

	c.offsets[off] = int32(int64(hostAddr) - int64(c.base))
	for i := uint32(1); i < instrLen; i++ {
		o := off + i
		if o >= m.chunkBytes {
			idx, o = m.chunkIndex(guestAddr + i)
			c = m.chunkFor(idx, true)
			if c.base == 0 {
				c.base = hostAddr
			}
		}
		c.offsets[o] = ExtensionWord
	}
}

// Lookup returns the host address translated for guestAddr, and whether
// one exists. A guestAddr landing on an ExtensionWord byte - the middle of
// an instruction - is also reported as absent, since a branch can only
// target an instruction boundary.
func (m *NativeCodeMap) Lookup(guestAddr uint32) (uintptr, bool) {
	idx, off := m.chunkIndex(guestAddr)
	c := m.chunkFor(idx, false)
	if c == nil {
		return 0, false
	}
	o := c.offsets[off]
	if o == InvalidOffset || o == ExtensionWord {
		return 0, false
	}
	return uintptr(int64(c.base) + int64(o)), true
}

// Invalidate marks every guest byte in [guestAddr, guestAddr+length) as
// untranslated. Called when a write lands on an IsCode memorymap chunk, to
// force retranslation the next time that guest PC is reached.
func (m *NativeCodeMap) Invalidate(guestAddr uint32, length uint32) {
	for i := uint32(0); i < length; i++ {
		idx, off := m.chunkIndex(guestAddr + i)
		c := m.chunkFor(idx, false)
		if c == nil {
			continue
		}
		c.offsets[off] = InvalidOffset
	}
}

// InvalidateAll marks every translated chunk as untranslated. Called after
// loading a save state, since the restored guest RAM/ROM contents may not
// match whatever native code is still sitting in the host translation
// buffer.
func (m *NativeCodeMap) InvalidateAll() {
	for _, c := range m.chunks {
		for i := range c.offsets {
			c.offsets[i] = InvalidOffset
		}
	}
}

// DeferredAddr is a pending forward-branch fixup: a translated branch at
// PatchSite targeting GuestAddr, which had no host translation at the time
// the branch was emitted.
type DeferredAddr struct {
	GuestAddr uint32
	PatchAddr uintptr // host address of the first of the 4 patch-site bytes
	PatchSite []byte  // the 4 bytes (LE i32 displacement) to be filled in
	next      *DeferredAddr
}

// DeferredPatcher holds the singly-linked list of pending branch fixups,
// matching backend.c's deferred_addr list and process_deferred walk.
type DeferredPatcher struct {
	head *DeferredAddr
}

// Defer records a new pending fixup, prepending it to the list (mirrors
// defer_address's old_head/new_head chaining - order among pending patches
// doesn't matter, only that every one is eventually visited). patchAddr is
// the host address patchSite's first byte will occupy once emitted into
// the code buffer; the recompiler backend supplies both since it alone
// knows the buffer's placement.
func (p *DeferredPatcher) Defer(guestAddr uint32, patchAddr uintptr, patchSite []byte) {
	p.head = &DeferredAddr{GuestAddr: guestAddr, PatchAddr: patchAddr, PatchSite: patchSite, next: p.head}
}

// ProcessDeferred walks the pending list once; for every node whose target
// now resolves in codeMap, it writes the little-endian signed displacement
// native - (patch_site + 4) into the 4-byte patch site and removes the node
// from the list. Nodes whose target still isn't translated are left
// in place for a future call.
func (p *DeferredPatcher) ProcessDeferred(codeMap *NativeCodeMap) {
	var prevNext **DeferredAddr = &p.head
	cur := p.head
	for cur != nil {
		native, ok := codeMap.Lookup(cur.GuestAddr)
		if !ok {
			prevNext = &cur.next
			cur = cur.next
			continue
		}

		disp := int32(int64(native) - (int64(cur.PatchAddr) + 4))
		writeDisplacement(cur.PatchSite, disp)

		*prevNext = cur.next
		cur = *prevNext
	}
}

// writeDisplacement stores disp into site as 4 little-endian bytes.
func writeDisplacement(site []byte, disp int32) {
	site[0] = byte(disp)
	site[1] = byte(disp >> 8)
	site[2] = byte(disp >> 16)
	site[3] = byte(disp >> 24)
}
