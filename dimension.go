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
	"sort"
	"strconv"
	"strings"
)

// Axis is one of the orthogonal base dimensions tracked by a Dimension.
type Axis int

// The SI base dimensions, plus angle. Angle is physically dimensionless
// but is tracked so that angular quantities can be told apart from
// plain ratios.
const (
	Length Axis = iota
	Mass
	Time
	Current
	Temperature
	AmountOfSubstance
	LuminousIntensity
	Angle

	numAxes = iota
)

var axisNames = [numAxes]string{
	Length:            "length",
	Mass:              "mass",
	Time:              "time",
	Current:           "current",
	Temperature:       "temperature",
	AmountOfSubstance: "amountOfSubstance",
	LuminousIntensity: "luminousIntensity",
	Angle:             "angle",
}

var axisSymbols = [numAxes]string{
	Length:            "m",
	Mass:              "kg",
	Time:              "s",
	Current:           "A",
	Temperature:       "K",
	AmountOfSubstance: "mol",
	LuminousIntensity: "cd",
	Angle:             "rad",
}

func (a Axis) String() string {
	if a < 0 || a >= numAxes {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// Symbol returns the symbol of the base unit of a, e.g. "kg" for Mass.
func (a Axis) Symbol() string {
	if a < 0 || a >= numAxes {
		panic(fmt.Errorf("measure: illegal axis %d", int(a)))
	}
	return axisSymbols[a]
}

// Axes returns all of the axes in index order.
func Axes() []Axis {
	o := make([]Axis, numAxes)
	for i := range o {
		o[i] = Axis(i)
	}
	return o
}

// ParseAxis returns the axis whose name (as returned by String) is name.
func ParseAxis(name string) (Axis, error) {
	for i, n := range axisNames {
		if n == name {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("measure: unknown axis %q", name)
}

// Dimension holds the power of each base dimension. It is a value type:
// all operations return a new Dimension and equality is exact.
//
// Example: acceleration is Dimension{Length: 1, Time: -2}.
type Dimension [numAxes]float64

// Dimensionless is the dimension of pure numbers.
var Dimensionless = Dimension{}

// Mul returns the dimension of a product, d*o.
func (d Dimension) Mul(o Dimension) Dimension {
	for i := range d {
		d[i] += o[i]
	}
	return d
}

// Div returns the dimension of a quotient, d/o.
func (d Dimension) Div(o Dimension) Dimension {
	for i := range d {
		d[i] -= o[i]
	}
	return d
}

// Pow returns the dimension of d raised to the power p.
func (d Dimension) Pow(p float64) Dimension {
	for i := range d {
		d[i] *= p
	}
	return d
}

// Inv returns the dimension of the reciprocal of d.
func (d Dimension) Inv() Dimension {
	return d.Pow(-1)
}

// Add returns the dimension of a sum. Only quantities with the same
// dimension can be summed; otherwise a *DimensionMismatchError is returned.
func (d Dimension) Add(o Dimension) (Dimension, error) {
	if d != o {
		return Dimension{}, &DimensionMismatchError{Op: "addition", Left: d, Right: o}
	}
	return d, nil
}

// Sub is the subtraction twin of Add.
func (d Dimension) Sub(o Dimension) (Dimension, error) {
	if d != o {
		return Dimension{}, &DimensionMismatchError{Op: "subtraction", Left: d, Right: o}
	}
	return d, nil
}

// Matches reports whether d and o are identical on every axis.
func (d Dimension) Matches(o Dimension) bool {
	return d == o
}

// IsDimensionless reports whether every power of d is zero.
func (d Dimension) IsDimensionless() bool {
	return d == Dimensionless
}

// String returns the canonical unit-expression form of d, e.g.
// "m*kg/s^2". Positive powers come first, joined by "*" and sorted by
// (power, axis name); negative powers follow a "/". A dimension with
// only negative powers is written "1/...", and a dimensionless one as the
// empty string. A NaN power is written in the numerator as "^NaN" and an
// infinite one as "^+Inf". When every power is finite the result is itself
// a valid unit expression.
func (d Dimension) String() string {
	var top, bottom []atom
	for i, p := range d {
		switch {
		case p > 0 || math.IsNaN(p):
			top = append(top, atom{Axis(i), p})
		case p < 0:
			bottom = append(bottom, atom{Axis(i), p})
		}
	}
	if len(top) == 0 && len(bottom) == 0 {
		return ""
	}
	sort.Sort(atoms(top))
	sort.Sort(atoms(bottom))

	var b strings.Builder
	if len(top) == 0 {
		b.WriteByte('1')
	}
	writeAtoms(&b, top)
	if len(bottom) > 0 {
		b.WriteByte('/')
		writeAtoms(&b, bottom)
	}
	return b.String()
}

func writeAtoms(b *strings.Builder, as []atom) {
	for i, a := range as {
		if i > 0 {
			b.WriteByte('*')
		}
		b.WriteString(a.Symbol())
		p := a.pow
		if p < 0 {
			p = -p
		}
		if p != 1 {
			b.WriteByte('^')
			b.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
		}
	}
}

type atom struct {
	Axis
	pow float64
}

type atoms []atom

func (a atoms) Len() int      { return len(a) }
func (a atoms) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a atoms) Less(i, j int) bool {
	if ni, nj := math.IsNaN(a[i].pow), math.IsNaN(a[j].pow); ni != nj {
		return nj
	}
	if a[i].pow != a[j].pow && !math.IsNaN(a[i].pow) {
		return a[i].pow < a[j].pow
	}
	return a[i].String() < a[j].String()
}
