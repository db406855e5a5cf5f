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

// Package cdc emulates the LC8951 CD error-correction/buffer-manager
// chip: a 16KB sector ring buffer, a 16-register host interface, an
// 8-byte COMIN command FIFO, and the decode/transfer cycle timers that
// drive the header-valid and DMA-transfer-complete interrupts.
//
// Grounded on original_source/lc8951.c/.h.
package cdc

// Register indices as addressed through the autoincrementing AR pointer.
// A handful of addresses mean something different on read vs write; the
// write-side aliases are named separately for clarity at call sites.
const (
	RegCOMIN = iota
	RegIFSTAT
	RegDBCL
	RegDBCH
	RegHEAD0
	RegHEAD1
	RegHEAD2
	RegHEAD3
	RegPTL
	RegPTH
	RegWAL
	RegWAH
	RegSTAT0
	RegSTAT1
	RegSTAT2
	RegSTAT3
)

const (
	writeSBOUT     = RegCOMIN
	writeIFCTRL    = RegIFSTAT
	writeDACL      = RegHEAD0
	writeDACH      = RegHEAD1
	writeDTTRG     = RegHEAD2
	writeDTACK     = RegHEAD3
	writeWALWrite  = RegPTL
	writeWAHWrite  = RegPTH
	writeCTRL0     = RegWAL
	writeCTRL1     = RegWAH
	writePTLWrite  = RegSTAT0
	writePTHWrite  = RegSTAT1
	writeRESET     = RegSTAT3
)

// IFCTRL/IFSTAT bits.
const (
	bitCMDIEN = 0x80
	bitDTEIEN = 0x40
	bitDECIEN = 0x20
	bitDTWAI  = 0x08
	bitSTWAI  = 0x04
	bitDOUTEN = 0x02
	bitSOUTEN = 0x01

	bitCMDI  = 0x80
	bitDTEI  = 0x40
	bitDECI  = 0x20
	bitDTBSY = 0x08
	bitSTBSY = 0x04
)

// CTRL0 bits.
const (
	bitDECEN = 0x80
	bitWRRQ  = 0x04
)

// STAT3 bits.
const bitVALST = 0x80

// BufferSize is the sector ring buffer's capacity.
const BufferSize = 0x4000

// CycleNever marks a timer as inactive - no decode or transfer in flight.
const CycleNever = ^uint32(0)

// ByteHandler streams one decoded byte to the host (PCM/CDD path);
// returning false pauses the transfer, mirroring LC8951's flow-controlled
// DMA-out path resumed later via ResumeTransfer.
type ByteHandler func(b uint8) bool

// LC8951 is one CDC instance.
type LC8951 struct {
	ByteHandler ByteHandler

	cycle          uint32
	clockStep      uint32
	decodeEnd      uint32
	transferEnd    uint32
	ptlInternal    uint16

	Buffer [BufferSize]uint8
	Regs   [16]uint8
	Comin  [8]uint8

	dac         uint16
	cominWrite  uint8
	cominCount  uint8
	ifctrl      uint8
	ctrl0       uint8
	ctrl1       uint8
	ar          uint8
	arMask      uint8
}

// New creates an LC8951 wired to handler for decoded-byte delivery.
func New(handler ByteHandler) *LC8951 {
	c := &LC8951{ByteHandler: handler}
	c.Regs[RegIFSTAT] = 0xFF
	c.arMask = 0x1F
	c.clockStep = (2 + 2) * 6
	c.decodeEnd = CycleNever
	c.transferEnd = CycleNever
	return c
}

// ARWrite sets the address-register pointer used by RegRead/RegWrite.
func (c *LC8951) ARWrite(value uint8) {
	c.ar = value & c.arMask
}

// PushCommand appends a byte to the COMIN FIFO, as the gate array does
// when the main CPU sends a command byte to the CDC.
func (c *LC8951) PushCommand(b uint8) {
	c.Comin[c.cominWrite&7] = b
	c.cominWrite++
	if c.cominCount < 8 {
		c.cominCount++
	}
	c.Regs[RegIFSTAT] &^= bitCMDI
}

// RegWrite writes value to the register currently selected by ar, then
// autoincrements ar (except when writing COMIN/SBOUT, which never
// advances the pointer).
func (c *LC8951) RegWrite(value uint8) {
	switch c.ar {
	case writeSBOUT:
		c.Regs[c.ar] = value
		if c.ifctrl&bitSOUTEN != 0 {
			c.Regs[RegIFSTAT] &^= bitSTBSY
		}
	case writeIFCTRL:
		c.ifctrl = value
		if value&bitSOUTEN == 0 {
			c.Regs[RegIFSTAT] |= bitSTBSY
		}
		if value&bitDOUTEN == 0 {
			c.Regs[RegIFSTAT] |= bitDTBSY
			c.transferEnd = CycleNever
		}
	case RegDBCL:
		c.Regs[c.ar] = value
	case RegDBCH:
		c.Regs[c.ar] = value & 0xF
	case writeDACL:
		c.dac = c.dac&0xFF00 | uint16(value)
	case writeDACH:
		c.dac = c.dac&0xFF | uint16(value)<<8
	case writeDTTRG:
		if c.ifctrl&bitDOUTEN != 0 {
			c.Regs[RegIFSTAT] &^= bitDTBSY
			size := uint16(c.Regs[RegDBCL]) | uint16(c.Regs[RegDBCH])<<8
			c.transferEnd = c.cycle + uint32(size)*c.clockStep
		}
	case writeDTACK:
		c.Regs[RegIFSTAT] |= bitDTEI
	case writeWALWrite:
		c.Regs[RegPTL] = value
	case writeWAHWrite:
		c.Regs[RegPTH] = value
	case writeCTRL0:
		c.ctrl0 = value
	case writeCTRL1:
		c.ctrl1 = value
	case writePTLWrite:
		c.Regs[RegSTAT0] = value
	case writePTHWrite:
		c.Regs[RegSTAT1] = value
		c.ptlInternal = (uint16(c.Regs[RegPTL]) | uint16(c.Regs[RegPTH])<<8) & (BufferSize - 1)
		c.decodeEnd = c.cycle + 2352*c.clockStep*4
	case writeRESET:
		c.cominCount = 0
		c.Regs[RegIFSTAT] = 0xFF
	}

	if c.ar != writeSBOUT {
		c.ar = (c.ar + 1) & c.arMask
	}
}

// RegRead reads the register currently selected by ar and autoincrements
// it, except for the COMIN FIFO pop path.
func (c *LC8951) RegRead() uint8 {
	if c.ar == RegCOMIN {
		if c.cominCount == 0 {
			return 0xFF
		}
		idx := (c.cominWrite - c.cominCount) & 7
		value := c.Comin[idx]
		c.cominCount--
		if c.cominCount == 0 {
			c.Regs[RegIFSTAT] |= bitCMDI
		}
		return value
	}

	if c.ar == RegSTAT3 {
		c.Regs[RegIFSTAT] |= bitDECI
	}

	var value uint8
	if int(c.ar) >= len(c.Regs) {
		value = 0xFF
	} else {
		value = c.Regs[c.ar]
	}
	c.ar = (c.ar + 1) & c.arMask
	return value
}

// Run steps the decode and transfer timers forward to cycle, delivering
// decoded bytes to ByteHandler and pausing (per the flow-control
// contract) when it returns false.
func (c *LC8951) Run(cycle uint32) {
	for ; c.cycle < cycle; c.cycle += c.clockStep {
		if c.cycle >= c.decodeEnd {
			c.decodeEnd = CycleNever
			c.Regs[RegIFSTAT] &^= bitDECI
			c.Regs[RegSTAT3] &^= bitVALST
			blockStart := (uint16(c.Regs[RegPTL]) | uint16(c.Regs[RegPTH])<<8) & (BufferSize - 1)
			for reg := RegHEAD0; reg < RegPTL; reg++ {
				c.Regs[reg] = c.Buffer[blockStart]
				blockStart = (blockStart + 1) & (BufferSize - 1)
			}
		}

		if c.transferEnd != CycleNever {
			b := c.Buffer[c.dac&(BufferSize-1)]
			if c.ByteHandler != nil && c.ByteHandler(b) {
				c.dac++
				c.Regs[RegDBCL]--
				if c.Regs[RegDBCL] == 0xFF {
					c.Regs[RegDBCH]--
					if c.Regs[RegDBCH] == 0xFF {
						c.Regs[RegIFSTAT] &^= bitDTEI
						c.Regs[RegIFSTAT] |= bitDTBSY
						c.transferEnd = CycleNever
					}
				}
			} else {
				c.transferEnd = CycleNever
			}
		}
	}
}

// ResumeTransfer restarts a paused DMA-out transfer if DOUTEN is set and
// a nonzero byte count remains.
func (c *LC8951) ResumeTransfer() {
	if c.transferEnd == CycleNever && c.ifctrl&bitDOUTEN != 0 {
		size := uint16(c.Regs[RegDBCL]) | uint16(c.Regs[RegDBCH])<<8
		if size != 0 {
			c.transferEnd = c.cycle + uint32(size)*c.clockStep
		}
	}
}

// WriteByte feeds one sector byte (as streamed by the CDD) into the CDC
// at sectorOffset within the 2352-byte sector, updating the write
// pointer and, at offset 12 (the sync-pattern boundary), latching a new
// decode block start when decode+write mode is enabled.
func (c *LC8951) WriteByte(cycle uint32, sectorOffset int, b uint8) {
	c.Run(cycle)
	currentWriteAddr := uint16(c.Regs[RegWAL]) | uint16(c.Regs[RegWAH])<<8

	if sectorOffset == 12 {
		c.Regs[RegSTAT3] |= bitVALST
		if c.ctrl0&(bitDECEN|bitWRRQ) == bitDECEN|bitWRRQ {
			blockStart := currentWriteAddr - 2352
			c.Regs[RegPTL] = uint8(blockStart)
			c.Regs[RegPTH] = uint8(blockStart >> 8)
			c.ptlInternal = blockStart & (BufferSize - 1)
			c.decodeEnd = c.cycle + 2352*c.clockStep*4
		}
	}

	if sectorOffset >= 12 && sectorOffset < 16 {
		if c.ctrl0&(bitDECEN|bitWRRQ) == bitDECEN {
			c.Regs[RegHEAD0+sectorOffset-12] = b
		}
	}

	if c.ctrl0&(bitDECEN|bitWRRQ) == bitDECEN|bitWRRQ {
		c.Buffer[currentWriteAddr&(BufferSize-1)] = b
		c.Regs[RegWAL]++
		if c.Regs[RegWAL] == 0 {
			c.Regs[RegWAH]++
		}
	}
}

// NextInterrupt returns the cycle at which the next enabled interrupt
// (CMDI/DTEI/DECI) fires, or CycleNever if none is pending or enabled.
func (c *LC8951) NextInterrupt() uint32 {
	if (^c.Regs[RegIFSTAT])&c.ifctrl&(bitCMDI|bitDTEI|bitDECI) != 0 {
		return c.cycle
	}
	deciCycle := CycleNever
	if c.ifctrl&bitDECIEN != 0 {
		deciCycle = c.decodeEnd
	}
	dteiCycle := CycleNever
	if c.ifctrl&bitDTEIEN != 0 {
		dteiCycle = c.transferEnd
	}
	if deciCycle < dteiCycle {
		return deciCycle
	}
	return dteiCycle
}

// AdjustCycles subtracts deduction from every internal cycle tracker,
// saturating at 0, for the scheduler's periodic counter rebase.
func (c *LC8951) AdjustCycles(deduction uint32) {
	c.cycle = satSub(c.cycle, deduction)
	if c.decodeEnd != CycleNever {
		c.decodeEnd = satSub(c.decodeEnd, deduction)
	}
	if c.transferEnd != CycleNever {
		c.transferEnd = satSub(c.transferEnd, deduction)
	}
}

func satSub(v, delta uint32) uint32 {
	if delta > v {
		return 0
	}
	return v - delta
}
