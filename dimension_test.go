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
	"math"
	"reflect"
	"testing"
)

var (
	lengthDim = Dimension{Length: 1}
	massDim   = Dimension{Mass: 1}
	timeDim   = Dimension{Time: 1}
)

func TestDimensionAlgebra(t *testing.T) {
	force := massDim.Mul(lengthDim.Div(timeDim.Pow(2)))
	if want := (Dimension{Length: 1, Mass: 1, Time: -2}); force != want {
		t.Errorf("force: have %v, want %v", force, want)
	}
	if have := force.Mul(force.Inv()); !have.IsDimensionless() {
		t.Errorf("d * 1/d = %v, want dimensionless", have)
	}
	if have, want := force.Div(force), Dimensionless; have != want {
		t.Errorf("d / d = %v, want %v", have, want)
	}
	if have, want := force.Pow(0.5).Pow(2), force; have != want {
		t.Errorf("(d^0.5)^2 = %v, want %v", have, want)
	}
	if have, want := force.Pow(3), force.Mul(force).Mul(force); have != want {
		t.Errorf("d^3 = %v, want %v", have, want)
	}
	if have, want := lengthDim.Mul(massDim).Mul(timeDim), lengthDim.Mul(massDim.Mul(timeDim)); have != want {
		t.Errorf("associativity: %v != %v", have, want)
	}
	if have, want := lengthDim.Mul(massDim), massDim.Mul(lengthDim); have != want {
		t.Errorf("commutativity: %v != %v", have, want)
	}
	if have := force.Pow(0); !have.IsDimensionless() {
		t.Errorf("d^0 = %v, want dimensionless", have)
	}
	if !Dimensionless.Inv().IsDimensionless() {
		t.Error("1/dimensionless should be dimensionless")
	}
}

func TestDimensionAdd(t *testing.T) {
	d, err := lengthDim.Add(lengthDim)
	if err != nil {
		t.Fatal(err)
	}
	if d != lengthDim {
		t.Errorf("have %v, want %v", d, lengthDim)
	}
	_, err = lengthDim.Add(massDim)
	e, ok := err.(*DimensionMismatchError)
	if !ok {
		t.Fatalf("want *DimensionMismatchError, have %#v", err)
	}
	want := &DimensionMismatchError{Op: "addition", Left: lengthDim, Right: massDim}
	if !reflect.DeepEqual(e, want) {
		t.Errorf("have %#v, want %#v", e, want)
	}
	if _, err := timeDim.Sub(lengthDim); err == nil {
		t.Error("expected an error subtracting length from time")
	}
	if !timeDim.Matches(Dimension{Time: 1}) {
		t.Error("time should match itself")
	}
}

func TestDimensionString(t *testing.T) {
	tests := []struct {
		d    Dimension
		want string
	}{
		{d: Dimensionless, want: ""},
		{d: lengthDim, want: "m"},
		{d: Dimension{Length: 1, Mass: 1, Time: -2}, want: "m*kg/s^2"},
		{d: Dimension{Length: 1, Time: -1}, want: "m/s"},
		{d: Dimension{Time: -1}, want: "1/s"},
		{d: Dimension{Length: 2}, want: "m^2"},
		{d: Dimension{Length: -1, Mass: 1, Time: -2}, want: "kg/s^2*m"},
		{d: Dimension{Length: 2, Mass: 1, Time: -3, Current: -1}, want: "kg*m^2/s^3*A"},
		{d: Dimension{Length: 0.5}, want: "m^0.5"},
		{d: Dimension{Angle: 2}, want: "rad^2"},
		{d: Dimension{AmountOfSubstance: 1, Time: -1}, want: "mol/s"},
		{d: Dimension{Temperature: -1, LuminousIntensity: -1}, want: "1/cd*K"},
	}
	for _, test := range tests {
		t.Run(test.want, func(t *testing.T) {
			if have := test.d.String(); have != test.want {
				t.Errorf("have %q, want %q", have, test.want)
			}
		})
	}
}

func TestDimensionString_nonFinite(t *testing.T) {
	tests := []struct {
		d    Dimension
		want string
	}{
		{d: lengthDim.Pow(math.NaN()), want: "m^NaN"},
		{d: Dimension{Length: math.NaN(), Time: -1}, want: "m^NaN/s"},
		{d: Dimension{Mass: 1, Length: math.NaN()}, want: "kg*m^NaN"},
		{d: Dimension{Length: math.Inf(1)}, want: "m^+Inf"},
		{d: Dimension{Time: math.Inf(-1)}, want: "1/s^+Inf"},
	}
	for _, test := range tests {
		t.Run(test.want, func(t *testing.T) {
			if have := test.d.String(); have != test.want {
				t.Errorf("have %q, want %q", have, test.want)
			}
		})
	}
	// A non-finite dimension never prints as one that resolves cleanly.
	if _, _, err := Resolve(lengthDim.Pow(math.NaN()).String()); err == nil {
		t.Error("expected an error resolving a NaN power")
	}
}

func TestAxis(t *testing.T) {
	if len(Axes()) != 8 {
		t.Fatalf("have %d axes, want 8", len(Axes()))
	}
	for _, a := range Axes() {
		b, err := ParseAxis(a.String())
		if err != nil {
			t.Fatal(err)
		}
		if a != b {
			t.Errorf("%v round-tripped to %v", a, b)
		}
	}
	if _, err := ParseAxis("charm"); err == nil {
		t.Error("expected an error for an unknown axis")
	}
	if have, want := Mass.Symbol(), "kg"; have != want {
		t.Errorf("have %s, want %s", have, want)
	}
	if have, want := Axis(12).String(), "Axis(12)"; have != want {
		t.Errorf("have %s, want %s", have, want)
	}
}
