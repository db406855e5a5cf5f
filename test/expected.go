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

// Package test provides small assertion helpers used throughout the
// package-level tests in this module, in place of a third-party assertion
// library.
package test

import (
	"math"
	"reflect"
	"testing"
)

// isSuccess decides whether v - typically the result of an operation that
// returns a bool or an error - should be considered a success.
func isSuccess(v interface{}) bool {
	switch r := v.(type) {
	case bool:
		return r
	case error:
		return r == nil
	case nil:
		return true
	}
	return false
}

// ExpectSuccess fails the test if v represents failure (false, or a
// non-nil error).
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	if !isSuccess(v) {
		t.Errorf("expected success, got %v", v)
	}
}

// ExpectFailure fails the test if v represents success (true, or a nil
// error).
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	if isSuccess(v) {
		t.Errorf("expected failure, got %v", v)
	}
}

// Equate fails the test if a and b are not equal, per reflect.DeepEqual.
func Equate(t *testing.T, a interface{}, b interface{}) bool {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected equality: %v != %v", a, b)
		return false
	}
	return true
}

// ExpectEquality fails the test if a and b are not equal.
func ExpectEquality(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	Equate(t, a, b)
}

// ExpectInequality fails the test if a and b are equal.
func ExpectInequality(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		t.Errorf("expected inequality: %v == %v", a, b)
	}
}

// ExpectApproximate fails the test if a and b differ by more than delta
// times a (delta is a relative tolerance).
func ExpectApproximate(t *testing.T, a float64, b float64, delta float64) {
	t.Helper()
	if math.Abs(a-b) > math.Abs(a)*delta {
		t.Errorf("expected %v to be within %v of %v", a, delta, b)
	}
}
