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

	"github.com/ctessum/unit"
)

// unitDims maps axes to the equivalent github.com/ctessum/unit
// dimensions. That package has no amount-of-substance dimension.
var unitDims = map[Axis]unit.Dimension{
	Length:            unit.LengthDim,
	Mass:              unit.MassDim,
	Time:              unit.TimeDim,
	Current:           unit.CurrentDim,
	Temperature:       unit.TemperatureDim,
	LuminousIntensity: unit.LuminousIntensityDim,
	Angle:             unit.AngleDim,
}

// UnitDimensions converts d to the equivalent unit.Dimensions. It fails
// if d has a non-integer power or an amount-of-substance component,
// neither of which unit.Dimensions can hold.
func UnitDimensions(d Dimension) (unit.Dimensions, error) {
	o := make(unit.Dimensions)
	for i, p := range d {
		if p == 0 {
			continue
		}
		a := Axis(i)
		ud, ok := unitDims[a]
		if !ok {
			return nil, fmt.Errorf("measure: dimension [%s]: %s cannot be represented as a unit.Dimension", d, a)
		}
		if p != math.Trunc(p) {
			return nil, fmt.Errorf("measure: dimension [%s]: %s has non-integer power %g", d, a, p)
		}
		o[ud] = int(p)
	}
	return o, nil
}

// ToUnit converts m to a *unit.Unit with the same base-unit value.
func (m *Measure) ToUnit() (*unit.Unit, error) {
	d, err := UnitDimensions(m.dim)
	if err != nil {
		return nil, err
	}
	return unit.New(m.value, d), nil
}

// FromUnit converts a *unit.Unit into a Measure. Units with dimensions
// created by unit.NewDimension have no equivalent and cause an error.
func FromUnit(u *unit.Unit) (*Measure, error) {
	var d Dimension
	for ud, p := range u.Dimensions() {
		a, ok := axisOf(ud)
		if !ok {
			return nil, fmt.Errorf("measure: unit dimension %s has no equivalent axis", ud)
		}
		d[a] = float64(p)
	}
	return &Measure{value: u.Value(), dim: d}, nil
}

func axisOf(ud unit.Dimension) (Axis, bool) {
	for a, v := range unitDims {
		if v == ud {
			return a, true
		}
	}
	return 0, false
}
