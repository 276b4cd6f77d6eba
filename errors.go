/*
Copyright © 2026 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package measure

import (
	"fmt"
	"strings"
)

// ParseError indicates a malformed unit term, such as one with no
// leading unit symbol or with an unrecognized exponent suffix.
type ParseError struct {
	Term   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("measure: malformed unit term %q: %s", e.Term, e.Reason)
}

// UnknownUnitError indicates a unit symbol that is not in the unit table.
type UnknownUnitError struct {
	Symbol string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("measure: unknown unit %q", e.Symbol)
}

// DimensionMismatchError indicates an operation between quantities
// whose dimensions are required to match but do not.
type DimensionMismatchError struct {
	// Op names the operation, e.g. "addition" or "conversion".
	Op          string
	Left, Right Dimension
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("measure: mismatched dimensions in %s: [%s] vs [%s]",
		e.Op, e.Left, e.Right)
}

// CycleError indicates that the derived entries of a unit table refer to
// each other in a loop.
type CycleError struct {
	Symbols []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("measure: unit table has a reference cycle among %s",
		strings.Join(e.Symbols, ", "))
}

// InvalidEntryError indicates a unit table entry that is malformed on its
// own, independent of the rest of the table.
type InvalidEntryError struct {
	Symbol string
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("measure: invalid unit table entry %q: %s", e.Symbol, e.Reason)
}
