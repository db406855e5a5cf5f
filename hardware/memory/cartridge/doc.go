// Package cartridge implements loading and memory-mapping of cartridge/disc
// media for the three console families this core targets.
//
// The cartMapper interface generalises bank-switching across all three:
//
//	- Genesis/Mega Drive: an 8-register bank file mapping 512KB windows of
//	  ROM into the low 4MB of the 68000 address space, with an optional
//	  battery-backed SRAM window.
//
//	- Master System: the classic "Sega mapper", three page registers
//	  selecting 16KB ROM windows. Cartridges no larger than 0xC000 bytes
//	  need no paging and are mapped directly.
//
//	- ColecoVision: a fixed map with no bank switching at all.
//
// A Cartridge with no media attached behaves as an ejected cartridge: it maps
// no memory, so every read and write returns a memory bus error.
package cartridge
