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

package execution

// Result records the outcome of one instruction's decode and execution. As
// with the 6507 original, the struct is updated across the instruction's
// execution and Final distinguishes a completed record from one still being
// built up cycle by cycle - callers that only care about finished
// instructions (the disassembler, trace logging) should check Final first.
type Result struct {
	// Mnemonic names the decoded instruction ("MOVEQ", "NOP", "LD"). Left
	// empty if decode hasn't happened yet.
	Mnemonic string

	// Address is the guest address the instruction began at.
	Address uint32

	// ByteCount is the number of instruction-stream bytes consumed by
	// decode so far; equal to the instruction's full length once Final.
	ByteCount int

	// Cycles is the number of device-clock cycles the instruction took.
	Cycles int

	// BranchSuccess records whether a conditional branch/jump actually
	// took its branch.
	BranchSuccess bool

	// CPUBug names a known hardware quirk this instruction triggered, or
	// the empty string.
	CPUBug string

	// Error is set to a memory-access error message, if one occurred.
	Error string

	// Final is true once every field above is meaningful.
	Final bool
}

// Reset clears every field, for reuse across instructions without a new
// allocation.
func (r *Result) Reset() {
	r.Mnemonic = ""
	r.Address = 0
	r.ByteCount = 0
	r.Cycles = 0
	r.BranchSuccess = false
	r.CPUBug = ""
	r.Error = ""
	r.Final = false
}
