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

package test

import "fmt"

// CappedWriter accumulates written bytes up to a fixed capacity. Bytes
// written beyond that capacity are silently discarded.
type CappedWriter struct {
	cap int
	buf []byte
}

// NewCappedWriter creates a CappedWriter with the given capacity.
func NewCappedWriter(capacity int) (*CappedWriter, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("test: capped writer capacity must be greater than zero")
	}
	return &CappedWriter{cap: capacity}, nil
}

// Write implements io.Writer. It never returns an error; bytes that would
// overflow the cap are simply not appended.
func (c *CappedWriter) Write(p []byte) (int, error) {
	room := c.cap - len(c.buf)
	if room <= 0 {
		return len(p), nil
	}
	if room > len(p) {
		room = len(p)
	}
	c.buf = append(c.buf, p[:room]...)
	return len(p), nil
}

// String returns everything written so far, up to the cap.
func (c *CappedWriter) String() string {
	return string(c.buf)
}

// Reset empties the writer.
func (c *CappedWriter) Reset() {
	c.buf = c.buf[:0]
}
