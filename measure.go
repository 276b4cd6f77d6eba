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
	"math"
	"strconv"

	"github.com/gonum/floats"
)

// Measure is a value with physical dimensions. The value is always held
// in SI base units, whatever units it was created from.
//
// The package-level arithmetic functions return a new Measure and leave
// their arguments alone. The methods of the same names modify the
// receiver instead, so a Measure that is modified in place should not be
// shared.
type Measure struct {
	value float64
	dim   Dimension
}

// New creates a Measure of value in the units given by unit, resolved
// against the SI table.
//
// Example: an acceleration of 3 m/s²
//	a, err := measure.New(3, "m/s^2")
func New(value float64, unit string) (*Measure, error) {
	return std.New(value, unit)
}

// MustNew is like New but panics if unit cannot be resolved. It is
// intended for units known to be valid, such as package constants.
func MustNew(value float64, unit string) *Measure {
	m, err := New(value, unit)
	if err != nil {
		panic(err)
	}
	return m
}

// New creates a Measure of value in the units given by unit.
func (p *Parser) New(value float64, unit string) (*Measure, error) {
	mult, d, err := p.Resolve(unit)
	if err != nil {
		return nil, err
	}
	return &Measure{value: mult * value, dim: d}, nil
}

// FromBase creates a Measure from a value that is already in base units.
func FromBase(value float64, d Dimension) *Measure {
	return &Measure{value: value, dim: d}
}

// Value returns the value of m in SI base units.
func (m *Measure) Value() float64 { return m.value }

// Dimension returns the dimension of m.
func (m *Measure) Dimension() Dimension { return m.dim }

// Clone returns a copy of m.
func (m *Measure) Clone() *Measure {
	o := *m
	return &o
}

// In returns the value of m expressed in unit, which is resolved against
// the SI table. It returns a *DimensionMismatchError if unit does not
// have the dimension of m.
func (m *Measure) In(unit string) (float64, error) {
	return std.In(m, unit)
}

// In returns the value of m expressed in unit.
func (p *Parser) In(m *Measure, unit string) (float64, error) {
	mult, d, err := p.Resolve(unit)
	if err != nil {
		return 0, err
	}
	if d != m.dim {
		return 0, &DimensionMismatchError{Op: "conversion", Left: m.dim, Right: d}
	}
	return m.value / mult, nil
}

// Convert converts value from one unit to another using the SI table.
func Convert(value float64, from, to string) (float64, error) {
	return std.Convert(value, from, to)
}

// Convert converts value from one unit to another.
func (p *Parser) Convert(value float64, from, to string) (float64, error) {
	m, err := p.New(value, from)
	if err != nil {
		return 0, err
	}
	return p.In(m, to)
}

// String formats m as its base-unit value followed by its dimension in
// brackets, e.g. "9.81 [m/s^2]".
func (m *Measure) String() string {
	return strconv.FormatFloat(m.value, 'g', -1, 64) + " [" + m.dim.String() + "]"
}

// Int returns the base-unit value of m truncated to an integer. Values
// outside the range of int64 are clamped to it, and NaN gives 0.
func (m *Measure) Int() int64 {
	switch {
	case math.IsNaN(m.value):
		return 0
	case m.value >= math.MaxInt64:
		return math.MaxInt64
	case m.value <= math.MinInt64:
		return math.MinInt64
	}
	return int64(m.value)
}

// Add returns a + b. The dimensions of a and b must match.
func Add(a, b *Measure) (*Measure, error) {
	d, err := a.dim.Add(b.dim)
	if err != nil {
		return nil, err
	}
	return &Measure{value: a.value + b.value, dim: d}, nil
}

// Add adds o to m, modifying m instead of creating a copy.
func (m *Measure) Add(o *Measure) error {
	if _, err := m.dim.Add(o.dim); err != nil {
		return err
	}
	m.value += o.value
	return nil
}

// Sub returns a - b. The dimensions of a and b must match.
func Sub(a, b *Measure) (*Measure, error) {
	d, err := a.dim.Sub(b.dim)
	if err != nil {
		return nil, err
	}
	return &Measure{value: a.value - b.value, dim: d}, nil
}

// Sub subtracts o from m, modifying m instead of creating a copy.
func (m *Measure) Sub(o *Measure) error {
	if _, err := m.dim.Sub(o.dim); err != nil {
		return err
	}
	m.value -= o.value
	return nil
}

// Mul returns a * b.
func Mul(a, b *Measure) *Measure {
	return &Measure{value: a.value * b.value, dim: a.dim.Mul(b.dim)}
}

// Mul multiplies m by o, modifying m instead of creating a copy.
func (m *Measure) Mul(o *Measure) {
	m.value *= o.value
	m.dim = m.dim.Mul(o.dim)
}

// Div returns a / b.
func Div(a, b *Measure) *Measure {
	return &Measure{value: a.value / b.value, dim: a.dim.Div(b.dim)}
}

// Div divides m by o, modifying m instead of creating a copy.
func (m *Measure) Div(o *Measure) {
	m.value /= o.value
	m.dim = m.dim.Div(o.dim)
}

// Scale returns m * s for a dimensionless scalar s.
func Scale(m *Measure, s float64) *Measure {
	return &Measure{value: m.value * s, dim: m.dim}
}

// Scale multiplies m by the scalar s in place.
func (m *Measure) Scale(s float64) {
	m.value *= s
}

// DivScalar returns m / s for a dimensionless scalar s.
func DivScalar(m *Measure, s float64) *Measure {
	return &Measure{value: m.value / s, dim: m.dim}
}

// DivScalar divides m by the scalar s in place.
func (m *Measure) DivScalar(s float64) {
	m.value /= s
}

// ScalarDiv returns s / m, whose dimension is the inverse of m's.
func ScalarDiv(s float64, m *Measure) *Measure {
	return &Measure{value: s / m.value, dim: m.dim.Inv()}
}

// Pow returns m raised to the power p.
func Pow(m *Measure, p float64) *Measure {
	return &Measure{value: math.Pow(m.value, p), dim: m.dim.Pow(p)}
}

// Pow raises m to the power p in place.
func (m *Measure) Pow(p float64) {
	m.value = math.Pow(m.value, p)
	m.dim = m.dim.Pow(p)
}

// Neg returns -m.
func Neg(m *Measure) *Measure {
	return &Measure{value: -m.value, dim: m.dim}
}

// Negate multiplies m by -1 in place.
func (m *Measure) Negate() {
	m.value = -m.value
}

// apply returns a copy of m with f applied to its base-unit value.
func apply(m *Measure, f func(float64) float64) *Measure {
	return &Measure{value: f(m.value), dim: m.dim}
}

// Abs returns the absolute value of m.
func Abs(m *Measure) *Measure { return apply(m, math.Abs) }

// Round returns m rounded to the nearest integer number of base units,
// rounding half away from zero.
func Round(m *Measure) *Measure { return apply(m, math.Round) }

// Trunc returns m truncated to an integer number of base units.
func Trunc(m *Measure) *Measure { return apply(m, math.Trunc) }

// Ceil returns the least integer number of base units not less than m.
func Ceil(m *Measure) *Measure { return apply(m, math.Ceil) }

// Floor returns the greatest integer number of base units not greater
// than m.
func Floor(m *Measure) *Measure { return apply(m, math.Floor) }

// fold combines ms pairwise with f, starting from a copy of the first
// element. It returns nil for an empty list.
func fold(op string, ms []*Measure, f func(o, m *Measure)) (*Measure, error) {
	if len(ms) == 0 {
		return nil, nil
	}
	o := ms[0].Clone()
	for i, m := range ms[1:] {
		if m.dim != o.dim {
			return nil, &DimensionMismatchError{Op: fmt.Sprintf("%s (argument %d)", op, i+1), Left: o.dim, Right: m.dim}
		}
		f(o, m)
	}
	return o, nil
}

// Sum returns the sum of ms, which must all have the same dimension.
func Sum(ms ...*Measure) (*Measure, error) {
	return fold("sum", ms, func(o, m *Measure) { o.value += m.value })
}

// Max returns the greatest of ms, which must all have the same dimension.
func Max(ms ...*Measure) (*Measure, error) {
	return fold("max", ms, func(o, m *Measure) {
		if m.value > o.value {
			o.value = m.value
		}
	})
}

// Min returns the least of ms, which must all have the same dimension.
func Min(ms ...*Measure) (*Measure, error) {
	return fold("min", ms, func(o, m *Measure) {
		if m.value < o.value {
			o.value = m.value
		}
	})
}

// Compare returns -1, 0 or +1 depending on whether a is less than, equal
// to, or greater than b. The dimensions of a and b must match.
func Compare(a, b *Measure) (int, error) {
	if a.dim != b.dim {
		return 0, &DimensionMismatchError{Op: "comparison", Left: a.dim, Right: b.dim}
	}
	switch {
	case a.value < b.value:
		return -1, nil
	case a.value > b.value:
		return 1, nil
	}
	return 0, nil
}

func compare(a, b *Measure, f func(x, y float64) bool) (bool, error) {
	if a.dim != b.dim {
		return false, &DimensionMismatchError{Op: "comparison", Left: a.dim, Right: b.dim}
	}
	return f(a.value, b.value), nil
}

// Less reports whether a < b.
func Less(a, b *Measure) (bool, error) {
	return compare(a, b, func(x, y float64) bool { return x < y })
}

// LessEqual reports whether a <= b.
func LessEqual(a, b *Measure) (bool, error) {
	return compare(a, b, func(x, y float64) bool { return x <= y })
}

// Greater reports whether a > b.
func Greater(a, b *Measure) (bool, error) {
	return compare(a, b, func(x, y float64) bool { return x > y })
}

// GreaterEqual reports whether a >= b.
func GreaterEqual(a, b *Measure) (bool, error) {
	return compare(a, b, func(x, y float64) bool { return x >= y })
}

// Equal reports whether a and b have exactly the same value and
// dimension. Measures with different dimensions are simply not equal.
func Equal(a, b *Measure) bool {
	return a.value == b.value && a.dim == b.dim
}

// EqualWithin reports whether a and b have the same dimension and values
// within tol of each other, either absolutely or relative to their
// magnitude.
func EqualWithin(a, b *Measure, tol float64) bool {
	return a.dim == b.dim && floats.EqualWithinAbsOrRel(a.value, b.value, tol, tol)
}
