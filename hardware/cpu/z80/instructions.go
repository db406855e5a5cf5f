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

package z80

// opEntry is one instruction table row, following the same
// match-in-order convention as hardware/cpu/m68k's table.
type opEntry struct {
	mask, value uint8
	name        string
	exec        func(c *Context, opcode uint8) (int, error)
}

var table = []opEntry{
	{0xff, 0x00, "NOP", execNOP},
	{0xff, 0xc3, "JP", execJPnn},
	{0xff, 0xcd, "CALL", execCALLnn},
	{0xff, 0xc9, "RET", execRET},
	{0xff, 0x18, "JR", execJRuncond},
	{0xff, 0x20, "JR", execJRcond},
	{0xff, 0x28, "JR", execJRcond},
	{0xff, 0x30, "JR", execJRcond},
	{0xff, 0x38, "JR", execJRcond},
	{0xc7, 0x06, "LD", execLDrImm},
	{0xf8, 0x80, "ADD", execADDAr},
	{0xc7, 0x04, "INC", execINCr},
	{0xc7, 0x05, "DEC", execDECr},
	{0xc0, 0x40, "LD", execLDrr}, // 0x76 (HALT) is inside this range, handled first
	{0xff, 0x76, "HALT", execHALT},
}

// decode returns the first matching table entry, or nil if opcode isn't
// recognised. HALT's fixed-form entry is listed after the wider LD r,r'
// range in the slice but matched first here since 0x76 is handled as a
// special case before the general sweep.
func decode(opcode uint8) *opEntry {
	if opcode == 0x76 {
		return &table[len(table)-1]
	}
	for i := range table {
		if opcode&table[i].mask == table[i].value {
			return &table[i]
		}
	}
	return nil
}

func execNOP(c *Context, opcode uint8) (int, error) {
	return 4, nil
}

func execHALT(c *Context, opcode uint8) (int, error) {
	c.shouldReturn = true
	return 4, nil
}

func execJPnn(c *Context, opcode uint8) (int, error) {
	addr, err := c.fetchWordLE()
	if err != nil {
		return 0, err
	}
	c.PC = addr
	return 10, nil
}

func execCALLnn(c *Context, opcode uint8) (int, error) {
	addr, err := c.fetchWordLE()
	if err != nil {
		return 0, err
	}
	if err := c.push16(c.PC); err != nil {
		return 0, err
	}
	c.PC = addr
	return 17, nil
}

func execRET(c *Context, opcode uint8) (int, error) {
	addr, err := c.pop16()
	if err != nil {
		return 0, err
	}
	c.PC = addr
	return 10, nil
}

func execJRuncond(c *Context, opcode uint8) (int, error) {
	disp, err := c.fetchByte()
	if err != nil {
		return 0, err
	}
	c.PC = uint16(int32(c.PC) + int32(int8(disp)))
	c.Result.BranchSuccess = true
	return 12, nil
}

// jrCondition evaluates one of the four JR NZ/Z/NC/C conditions, selected
// by bits 4-3 of the JR cc opcode (001c c000).
func jrCondition(f uint8, cc uint8) bool {
	switch cc {
	case 0:
		return f&flagZ == 0
	case 1:
		return f&flagZ != 0
	case 2:
		return f&flagC == 0
	case 3:
		return f&flagC != 0
	}
	return false
}

func execJRcond(c *Context, opcode uint8) (int, error) {
	cc := (opcode >> 3) & 3
	disp, err := c.fetchByte()
	if err != nil {
		return 0, err
	}
	taken := jrCondition(c.F, cc)
	c.Result.BranchSuccess = taken
	if taken {
		c.PC = uint16(int32(c.PC) + int32(int8(disp)))
		return 12, nil
	}
	return 7, nil
}

// reg8 indices, matching the Z80's 3-bit register field encoding.
const (
	regB = iota
	regC
	regD
	regE
	regH
	regL
	regHLind
	regA
)

func getReg8(c *Context, idx uint8) (uint8, error) {
	switch idx {
	case regB:
		return c.B, nil
	case regC:
		return c.C, nil
	case regD:
		return c.D, nil
	case regE:
		return c.E, nil
	case regH:
		return c.H, nil
	case regL:
		return c.L, nil
	case regHLind:
		return c.readByte(c.HL())
	case regA:
		return c.A, nil
	}
	return 0, nil
}

func setReg8(c *Context, idx uint8, v uint8) error {
	switch idx {
	case regB:
		c.B = v
	case regC:
		c.C = v
	case regD:
		c.D = v
	case regE:
		c.E = v
	case regH:
		c.H = v
	case regL:
		c.L = v
	case regHLind:
		return c.writeByte(c.HL(), v)
	case regA:
		c.A = v
	}
	return nil
}

// execLDrImm implements LD r,n (00rrr110 nnnnnnnn).
func execLDrImm(c *Context, opcode uint8) (int, error) {
	dst := (opcode >> 3) & 7
	n, err := c.fetchByte()
	if err != nil {
		return 0, err
	}
	if err := setReg8(c, dst, n); err != nil {
		return 0, err
	}
	if dst == regHLind {
		return 10, nil
	}
	return 7, nil
}

// execLDrr implements LD r,r' (01dddsss), excluding the 0x76 HALT
// collision which decode routes away before this handler is reached.
func execLDrr(c *Context, opcode uint8) (int, error) {
	dst := (opcode >> 3) & 7
	src := opcode & 7
	v, err := getReg8(c, src)
	if err != nil {
		return 0, err
	}
	if err := setReg8(c, dst, v); err != nil {
		return 0, err
	}
	if dst == regHLind || src == regHLind {
		return 7, nil
	}
	return 4, nil
}

// execADDAr implements ADD A,r (10000rrr).
func execADDAr(c *Context, opcode uint8) (int, error) {
	src := opcode & 7
	v, err := getReg8(c, src)
	if err != nil {
		return 0, err
	}
	sum := uint16(c.A) + uint16(v)
	result := uint8(sum)

	c.setFlag(flagC, sum > 0xff)
	c.setFlag(flagH, (c.A&0xf)+(v&0xf) > 0xf)
	c.setFlag(flagN, false)
	c.setFlag(flagPV, (c.A^v)&0x80 == 0 && (c.A^result)&0x80 != 0)
	c.A = result
	c.setSZ(result)

	if src == regHLind {
		return 7, nil
	}
	return 4, nil
}

// execINCr implements INC r (00rrr100). C flag is preserved, as on real
// hardware.
func execINCr(c *Context, opcode uint8) (int, error) {
	dst := (opcode >> 3) & 7
	v, err := getReg8(c, dst)
	if err != nil {
		return 0, err
	}
	result := v + 1
	c.setFlag(flagH, v&0xf == 0xf)
	c.setFlag(flagPV, v == 0x7f)
	c.setFlag(flagN, false)
	c.setSZ(result)
	if err := setReg8(c, dst, result); err != nil {
		return 0, err
	}
	if dst == regHLind {
		return 11, nil
	}
	return 4, nil
}

// execDECr implements DEC r (00rrr101).
func execDECr(c *Context, opcode uint8) (int, error) {
	dst := (opcode >> 3) & 7
	v, err := getReg8(c, dst)
	if err != nil {
		return 0, err
	}
	result := v - 1
	c.setFlag(flagH, v&0xf == 0)
	c.setFlag(flagPV, v == 0x80)
	c.setFlag(flagN, true)
	c.setSZ(result)
	if err := setReg8(c, dst, result); err != nil {
		return 0, err
	}
	if dst == regHLind {
		return 11, nil
	}
	return 4, nil
}
