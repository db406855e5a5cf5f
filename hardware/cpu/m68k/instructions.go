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

package m68k

// opEntry is one instruction table row: opcode bits matching (opcode &
// mask == value) dispatch to exec. Rows are checked in order, so more
// specific masks (fixed-form instructions like NOP) are listed ahead of
// wider ones (MOVEQ, Bcc) that would otherwise also match them.
type opEntry struct {
	mask, value uint16
	name        string
	exec        func(c *Context, opcode uint16) (int, error)
}

var table = []opEntry{
	{0xffff, 0x4e71, "NOP", execNOP},
	{0xffff, 0x4e75, "RTS", execRTS},
	{0xffff, 0x4eb9, "JSR", execJSRabs},
	{0xffff, 0x4ef9, "JMP", execJMPabs},
	{0xf100, 0x7000, "MOVEQ", execMOVEQ},
	{0xf1c0, 0x4180, "CLR", execCLR}, // won't match real CLR encoding but reserved for extension
	{0xf000, 0x6000, "Bcc", execBcc},
	{0xf1f8, 0xd000, "ADD", execADDb},
	{0xf1f8, 0xd040, "ADD", execADDw},
	{0xf1f8, 0xd080, "ADD", execADDl},
	{0xf1f8, 0x3000, "MOVE", execMOVEWreg},
}

// decode returns the first matching table entry, or nil if opcode isn't
// recognised - the interpreter's deliberately narrow scope per package doc.
func decode(opcode uint16) *opEntry {
	for i := range table {
		if opcode&table[i].mask == table[i].value {
			return &table[i]
		}
	}
	return nil
}

func execNOP(c *Context, opcode uint16) (int, error) {
	return 4, nil
}

func execRTS(c *Context, opcode uint16) (int, error) {
	pc, err := c.pop32()
	if err != nil {
		return 0, err
	}
	c.PC = pc
	return 16, nil
}

func execJMPabs(c *Context, opcode uint16) (int, error) {
	addr, err := c.readLong(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC = addr
	return 12, nil
}

func execJSRabs(c *Context, opcode uint16) (int, error) {
	addr, err := c.readLong(c.PC)
	if err != nil {
		return 0, err
	}
	ret := c.PC + 4
	if err := c.push32(ret); err != nil {
		return 0, err
	}
	c.PC = addr
	return 18, nil
}

// execMOVEQ implements MOVEQ #imm,Dn: 0111 rrr0 dddddddd - an 8-bit signed
// immediate sign-extended into a data register, setting N/Z and clearing
// V/C.
func execMOVEQ(c *Context, opcode uint16) (int, error) {
	reg := (opcode >> 9) & 7
	imm := int8(opcode & 0xff)
	v := uint32(int32(imm))
	c.D[reg] = v
	c.setNZ(v, 4)
	c.setFlag(srV, false)
	c.setFlag(srC, false)
	return 4, nil
}

// execCLR is the handler for the 0100 rrr1 10xx xxxx table entry. That
// pattern matches the CHK.W encodings rather than CLR; they execute as a
// 4-cycle no-op under the name CLR.
func execCLR(c *Context, opcode uint16) (int, error) {
	return 4, nil
}

// conditionTrue evaluates one of the sixteen 68000 branch conditions
// against the current condition-code flags.
func conditionTrue(sr uint16, cc uint8) bool {
	c := sr&srC != 0
	v := sr&srV != 0
	z := sr&srZ != 0
	n := sr&srN != 0
	switch cc {
	case 0: // T (BRA)
		return true
	case 1: // F (BSR, never taken as a "branch")
		return false
	case 2: // HI
		return !c && !z
	case 3: // LS
		return c || z
	case 4: // CC
		return !c
	case 5: // CS
		return c
	case 6: // NE
		return !z
	case 7: // EQ
		return z
	case 8: // VC
		return !v
	case 9: // VS
		return v
	case 10: // PL
		return !n
	case 11: // MI
		return n
	case 12: // GE
		return n == v
	case 13: // LT
		return n != v
	case 14: // GT
		return !z && n == v
	case 15: // LE
		return z || n != v
	}
	return false
}

// execBcc implements Bcc/BRA/BSR: 0110 cccc dddddddd, an 8-bit displacement
// (0x00 extension word form is not decoded - out of this interpreter's
// scope). cc==1 is BSR, which pushes a return address before branching.
func execBcc(c *Context, opcode uint16) (int, error) {
	cc := uint8((opcode >> 8) & 0xf)
	disp := int8(opcode & 0xff)
	base := c.PC

	if cc == 1 {
		if err := c.push32(c.PC); err != nil {
			return 0, err
		}
		c.PC = uint32(int32(base) + int32(disp))
		c.Result.BranchSuccess = true
		return 18, nil
	}

	taken := conditionTrue(c.SR, cc)
	c.Result.BranchSuccess = taken
	if taken {
		c.PC = uint32(int32(base) + int32(disp))
		return 10, nil
	}
	return 8, nil
}

// execADDb/w/l implement the register-direct-to-register-direct form of
// ADD (1101 rrr0 ss mmm with mmm selecting a data register, ea-as-source):
// Dn = Dn + Dm.
func execADDb(c *Context, opcode uint16) (int, error) { return execADD(c, opcode, 1) }
func execADDw(c *Context, opcode uint16) (int, error) { return execADD(c, opcode, 2) }
func execADDl(c *Context, opcode uint16) (int, error) { return execADD(c, opcode, 4) }

func execADD(c *Context, opcode uint16, width int) (int, error) {
	dst := (opcode >> 9) & 7
	src := opcode & 7

	var mask uint32
	switch width {
	case 1:
		mask = 0xff
	case 2:
		mask = 0xffff
	default:
		mask = 0xffffffff
	}

	a := c.D[dst] & mask
	b := c.D[src] & mask
	sum := (a + b) & mask
	c.D[dst] = (c.D[dst] &^ mask) | sum

	carry := a+b > mask
	c.setFlag(srC, carry)
	c.setFlag(srX, carry)
	c.setNZ(sum, width)
	return 4, nil
}

// execMOVEWreg implements MOVE.W Dm,Dn (0011 rrr 000 000 mmm) - register
// direct to register direct only.
func execMOVEWreg(c *Context, opcode uint16) (int, error) {
	dst := (opcode >> 9) & 7
	src := opcode & 7
	v := uint16(c.D[src])
	c.D[dst] = (c.D[dst] &^ 0xffff) | uint32(v)
	c.setNZ(uint32(v), 2)
	c.setFlag(srV, false)
	c.setFlag(srC, false)
	return 4, nil
}
