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

// Package prefs implements a small file-backed preference store. Each
// preference cell (Bool, String, Float, Int, or a user-supplied Generic) is
// registered against a named key on a Disk; Disk.Save/Load persist every
// registered cell to a single flat file.
package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/blastcore-emu/genesiscore/errors"
)

// WarningBoilerPlate is written as the first line of every preferences
// file, to discourage hand-editing.
const WarningBoilerPlate = "; this file is automatically generated by genesiscore - edit with care"

// Value is the type passed to and returned from a Pref's Set/String pair.
// It's an alias for interface{} rather than a defined type because the
// concrete values are strings, bools, floats, and ints depending on the
// Pref implementation.
type Value = interface{}

// Pref is implemented by every preference cell type in this package.
type Pref interface {
	Set(Value) error
	String() string
}

// Disk is a collection of named preference cells backed by a single file.
type Disk struct {
	path string
	keys []string
	cell map[string]Pref
	raw  map[string]string
}

// NewDisk creates a Disk backed by path. If the file already exists it is
// read into memory; Add applies a value read from the file to the cell it
// registers under the same name.
func NewDisk(path string) (*Disk, error) {
	dsk := &Disk{
		path: path,
		cell: make(map[string]Pref),
		raw:  make(map[string]string),
	}

	if _, err := os.Stat(path); err == nil {
		if err := dsk.readFile(); err != nil {
			return nil, err
		}
	}

	return dsk, nil
}

// Add registers a preference cell under name.
func (dsk *Disk) Add(name string, p Pref) error {
	if _, ok := dsk.cell[name]; ok {
		return errors.Errorf(errors.Prefs, fmt.Sprintf("duplicate preference key %q", name))
	}
	dsk.keys = append(dsk.keys, name)
	dsk.cell[name] = p

	if v, ok := dsk.raw[name]; ok {
		return p.Set(v)
	}

	return nil
}

func (dsk *Disk) readFile() error {
	f, err := os.Open(dsk.path)
	if err != nil {
		return errors.Errorf(errors.PrefsNoFile, dsk.path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ";") || strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, " :: ", 2)
		if len(parts) != 2 {
			return errors.Errorf(errors.PrefsNotValid, dsk.path)
		}
		dsk.raw[parts[0]] = parts[1]
	}

	return scanner.Err()
}

// Load re-reads the backing file and applies every value found to its
// registered cell.
func (dsk *Disk) Load() error {
	dsk.raw = make(map[string]string)
	if err := dsk.readFile(); err != nil {
		return err
	}

	for name, v := range dsk.raw {
		if p, ok := dsk.cell[name]; ok {
			if err := p.Set(v); err != nil {
				return err
			}
		}
	}

	return nil
}

// Save writes every registered cell's current value to the backing file.
// Keys previously persisted but not registered with this Disk instance are
// preserved, so that two Disk instances opened against the same file at
// different times don't clobber each other's preferences.
func (dsk *Disk) Save() error {
	for name, p := range dsk.cell {
		dsk.raw[name] = p.String()
	}

	names := make([]string, 0, len(dsk.raw))
	for name := range dsk.raw {
		names = append(names, name)
	}
	sort.Strings(names)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, name := range names {
		s.WriteString(fmt.Sprintf("%s :: %s\n", name, dsk.raw[name]))
	}

	return os.WriteFile(dsk.path, []byte(s.String()), 0o644)
}

// Bool is a boolean preference cell.
type Bool struct {
	v bool
}

// Set accepts a bool, or a string parseable by strconv.ParseBool; any
// other string sets the cell to false.
func (b *Bool) Set(v Value) error {
	switch t := v.(type) {
	case bool:
		b.v = t
	case string:
		p, err := strconv.ParseBool(t)
		if err != nil {
			p = false
		}
		b.v = p
	default:
		return errors.Errorf(errors.Prefs, fmt.Sprintf("unsupported value for bool preference: %v", v))
	}
	return nil
}

// Get returns the current value.
func (b *Bool) Get() bool {
	return b.v
}

func (b *Bool) String() string {
	return strconv.FormatBool(b.v)
}

// String is a string preference cell, with an optional maximum length.
type String struct {
	v      string
	maxLen int
}

// Set accepts any value and stores its string representation, cropped to
// the configured maximum length (if any).
func (s *String) Set(v Value) error {
	str, ok := v.(string)
	if !ok {
		str = fmt.Sprintf("%v", v)
	}
	s.v = s.crop(str)
	return nil
}

// SetMaxLen sets the maximum length for the string, cropping the current
// value if necessary. A length of zero removes the limit (existing
// cropping is not undone).
func (s *String) SetMaxLen(n int) {
	s.maxLen = n
	s.v = s.crop(s.v)
}

func (s *String) crop(v string) string {
	if s.maxLen > 0 && len(v) > s.maxLen {
		return v[:s.maxLen]
	}
	return v
}

// Get returns the current value.
func (s *String) Get() string {
	return s.v
}

func (s *String) String() string {
	return s.v
}

// Float is a floating-point preference cell.
type Float struct {
	v float64
}

// Set accepts a float64, or a string parseable by strconv.ParseFloat.
func (f *Float) Set(v Value) error {
	switch t := v.(type) {
	case float64:
		f.v = t
	case string:
		p, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return errors.Errorf(errors.Prefs, err)
		}
		f.v = p
	default:
		return errors.Errorf(errors.Prefs, fmt.Sprintf("unsupported value for float preference: %v", v))
	}
	return nil
}

// Get returns the current value.
func (f *Float) Get() float64 {
	return f.v
}

func (f *Float) String() string {
	return strconv.FormatFloat(f.v, 'g', -1, 64)
}

// Int is an integer preference cell.
type Int struct {
	v int
}

// Set accepts an int, or a string parseable by strconv.Atoi.
func (n *Int) Set(v Value) error {
	switch t := v.(type) {
	case int:
		n.v = t
	case string:
		p, err := strconv.Atoi(t)
		if err != nil {
			return errors.Errorf(errors.Prefs, err)
		}
		n.v = p
	default:
		return errors.Errorf(errors.Prefs, fmt.Sprintf("unsupported value for int preference: %v", v))
	}
	return nil
}

// Get returns the current value.
func (n *Int) Get() int {
	return n.v
}

func (n *Int) String() string {
	return strconv.Itoa(n.v)
}

// Generic wraps an arbitrary pair of set/get closures as a Pref, for
// preferences backed by fields that aren't simple scalars (e.g. values
// derived from other state, or composite values like width/height pairs).
type Generic struct {
	set func(Value) error
	get func() Value
}

// NewGeneric creates a Generic preference cell from a set/get pair.
func NewGeneric(set func(Value) error, get func() Value) *Generic {
	return &Generic{set: set, get: get}
}

// Set delegates to the wrapped setter.
func (g *Generic) Set(v Value) error {
	return g.set(v)
}

func (g *Generic) String() string {
	return fmt.Sprintf("%v", g.get())
}
