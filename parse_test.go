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
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/gonum/floats"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestParseTerm(t *testing.T) {
	tests := []struct {
		term     string
		symbol   string
		exponent float64
	}{
		{term: "kg", symbol: "kg", exponent: 1},
		{term: "m^2", symbol: "m", exponent: 2},
		{term: "s^-2", symbol: "s", exponent: -2},
		{term: "m^0.5", symbol: "m", exponent: 0.5},
		{term: "s³", symbol: "s", exponent: 3},
		{term: "m²", symbol: "m", exponent: 2},
		{term: "m¹⁰", symbol: "m", exponent: 10},
		{term: "μm", symbol: "μm", exponent: 1},
		{term: "Ω", symbol: "Ω", exponent: 1},
		{term: "°R", symbol: "°R", exponent: 1},
		{term: "Å^3", symbol: "Å", exponent: 3},
		{term: "Å", symbol: "Å", exponent: 1},
	}
	for _, test := range tests {
		t.Run(test.term, func(t *testing.T) {
			symbol, exponent, err := ParseTerm(test.term)
			if err != nil {
				t.Fatal(err)
			}
			if symbol != test.symbol {
				t.Errorf("symbol: have %q, want %q", symbol, test.symbol)
			}
			if exponent != test.exponent {
				t.Errorf("exponent: have %g, want %g", exponent, test.exponent)
			}
		})
	}
}

func TestParseTerm_errors(t *testing.T) {
	for _, term := range []string{"", "2m", "^2", "m^", "m^x", "m2", "m^Inf", "m^NaN", "m²x", "m-1"} {
		t.Run(term, func(t *testing.T) {
			_, _, err := ParseTerm(term)
			var e *ParseError
			if !errors.As(err, &e) {
				t.Fatalf("want *ParseError, have %v", err)
			}
			if e.Term != term {
				t.Errorf("term: have %q, want %q", e.Term, term)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		expr string
		mult float64
		dim  Dimension
	}{
		{expr: "", mult: 1, dim: Dimensionless},
		{expr: "1", mult: 1, dim: Dimensionless},
		{expr: "m", mult: 1, dim: Dimension{Length: 1}},
		{expr: "N", mult: 1, dim: Dimension{Length: 1, Mass: 1, Time: -2}},
		{expr: "kN", mult: 1000, dim: Dimension{Length: 1, Mass: 1, Time: -2}},
		{expr: "kg*m/s^2", mult: 1, dim: Dimension{Length: 1, Mass: 1, Time: -2}},
		{expr: "kg * m / s^2", mult: 1, dim: Dimension{Length: 1, Mass: 1, Time: -2}},
		{expr: "km/hr", mult: 1000.0 / 3600, dim: Dimension{Length: 1, Time: -1}},
		{expr: "1/s", mult: 1, dim: Dimension{Time: -1}},
		{expr: "Hz", mult: 1, dim: Dimension{Time: -1}},
		{expr: "cm²", mult: 1e-4, dim: Dimension{Length: 2}},
		{expr: "g", mult: 1e-3, dim: Dimension{Mass: 1}},
		{expr: "mg", mult: 1e-6, dim: Dimension{Mass: 1}},
		{expr: "J", mult: 1, dim: Dimension{Length: 2, Mass: 1, Time: -2}},
		{expr: "kWh", mult: 3.6e6, dim: Dimension{Length: 2, Mass: 1, Time: -2}},
		{expr: "L", mult: 1e-3, dim: Dimension{Length: 3}},
		{expr: "mi", mult: 1609.344, dim: Dimension{Length: 1}},
		{expr: "oz", mult: 0.028349523125, dim: Dimension{Mass: 1}},
		{expr: "Å", mult: 1e-10, dim: Dimension{Length: 1}},
		{expr: "Å", mult: 1e-10, dim: Dimension{Length: 1}},
		{expr: "deg", mult: 0.017453292519943295, dim: Dimension{Angle: 1}},
		{expr: "sr", mult: 1, dim: Dimension{Angle: 2}},
		{expr: "percent", mult: 0.01, dim: Dimensionless},
		{expr: "mol/L", mult: 1000, dim: Dimension{AmountOfSubstance: 1, Length: -3}},
		{expr: "m^0.5", mult: 1, dim: Dimension{Length: 0.5}},
		{expr: "1/km/hr", mult: 3.6, dim: Dimension{Length: -1, Time: 1}},
		{expr: "m/s/s", mult: 1, dim: Dimension{Length: 1}},
	}
	for _, test := range tests {
		t.Run(test.expr, func(t *testing.T) {
			mult, dim, err := Resolve(test.expr)
			if err != nil {
				t.Fatal(err)
			}
			if !floats.EqualWithinAbsOrRel(mult, test.mult, 1e-12, 1e-12) {
				t.Errorf("multiplier: have %g, want %g", mult, test.mult)
			}
			if dim != test.dim {
				t.Errorf("dimension: have [%v], want [%v]", dim, test.dim)
			}
		})
	}
}

func TestResolve_errors(t *testing.T) {
	t.Run("unknown", func(t *testing.T) {
		_, _, err := Resolve("kg*furlong/s")
		var e *UnknownUnitError
		if !errors.As(err, &e) {
			t.Fatalf("want *UnknownUnitError, have %v", err)
		}
		if e.Symbol != "furlong" {
			t.Errorf("have %q, want furlong", e.Symbol)
		}
	})
	for _, expr := range []string{"m*", "*m", "m**s", "m/s*", "3m", "m s", "kg/", "/s", " / ", "1/", "m//s"} {
		t.Run(expr, func(t *testing.T) {
			_, _, err := Resolve(expr)
			var e *ParseError
			if !errors.As(err, &e) {
				t.Fatalf("want *ParseError, have %v", err)
			}
		})
	}
}

// The canonical string of every unit's dimension resolves back to the
// same dimension with a multiplier of 1.
func TestResolve_roundTrip(t *testing.T) {
	p := Default()
	for _, s := range p.Symbols() {
		_, d, err := p.ResolveSymbol(s)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		m2, d2, err := p.Resolve(d.String())
		if err != nil {
			t.Fatalf("%s: resolving %q: %v", s, d.String(), err)
		}
		if d2 != d {
			t.Errorf("%s: [%v] round-tripped to [%v]", s, d, d2)
		}
		if m2 != 1 {
			t.Errorf("%s: base-unit multiplier of %q is %g", s, d.String(), m2)
		}
	}
}

func TestResolve_reciprocal(t *testing.T) {
	for _, u := range []string{"km/hr", "N", "kg*m/s^2", "mi", "1/s", "Pa*m^2/kN"} {
		t.Run(u, func(t *testing.T) {
			m, d, err := Resolve(u)
			if err != nil {
				t.Fatal(err)
			}
			mi, di, err := Resolve("1/" + u)
			if err != nil {
				t.Fatal(err)
			}
			if !floats.EqualWithinAbsOrRel(m*mi, 1, 1e-12, 1e-12) {
				t.Errorf("multipliers %g and %g are not reciprocal", m, mi)
			}
			if !d.Mul(di).IsDimensionless() {
				t.Errorf("dimensions [%v] and [%v] are not reciprocal", d, di)
			}
		})
	}
}

func TestParser_custom(t *testing.T) {
	tbl := SI.Merge(Table{
		"furlong":   DerivedEntry(201.168, "m"),
		"fortnight": DerivedEntry(14, "day"),
		"fff":       DerivedEntry(1, "furlong/fortnight"),
	})
	p, err := NewParser(tbl)
	if err != nil {
		t.Fatal(err)
	}
	// Changes to the table after NewParser are not seen by the parser.
	tbl["furlong"] = DerivedEntry(1, "m")

	v, err := p.Convert(1, "fff", "m/s")
	if err != nil {
		t.Fatal(err)
	}
	if want := 201.168 / (14 * 86400); !floats.EqualWithinAbsOrRel(v, want, 1e-12, 1e-12) {
		t.Errorf("have %g, want %g", v, want)
	}
	if _, _, err := Resolve("furlong"); err == nil {
		t.Error("the default parser should not know about furlongs")
	}
	if _, ok := p.Table()["fff"]; !ok {
		t.Error("Table is missing fff")
	}
}

func TestParser_compatible(t *testing.T) {
	p := Default()
	_, d, err := p.Resolve("m/s")
	if err != nil {
		t.Fatal(err)
	}
	have, err := p.Compatible(d)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"kn", "knot", "knots", "kph", "mph"}
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
			}
		}
		if !found {
			t.Errorf("%s missing from %v", w, have)
		}
	}
	for _, h := range have {
		if h == "m" || h == "Hz" {
			t.Errorf("%s should not be compatible with m/s", h)
		}
	}
}

func TestParser_log(t *testing.T) {
	p, err := NewParser(SI)
	if err != nil {
		t.Fatal(err)
	}
	log, hook := test.NewNullLogger()
	log.Level = logrus.DebugLevel
	p.Log = log

	if _, _, err := p.Resolve("kN"); err != nil {
		t.Fatal(err)
	}
	entries := hook.Entries
	if len(entries) == 0 {
		t.Fatal("no log entries")
	}
	if have := entries[0].Data["expr"]; have != "kN" {
		t.Errorf("first logged expression: have %v, want kN", have)
	}
	n := len(entries)

	// A cached expression is not resolved again.
	if _, _, err := p.Resolve("kN"); err != nil {
		t.Fatal(err)
	}
	if len(hook.Entries) != n {
		t.Errorf("cached expression was resolved again: %d entries, want %d", len(hook.Entries), n)
	}
}

func TestParser_concurrent(t *testing.T) {
	p, err := NewParser(SI)
	if err != nil {
		t.Fatal(err)
	}
	exprs := []string{"km/hr", "N", "kWh", "mi/hr", "kg*m^2/s^3", "1/s"}
	var wg sync.WaitGroup
	errs := make(chan error, 8*len(exprs))
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, e := range exprs {
				want, wantDim, err := Resolve(e)
				if err != nil {
					errs <- err
					return
				}
				have, haveDim, err := p.Resolve(e)
				if err != nil {
					errs <- err
					return
				}
				if have != want || haveDim != wantDim {
					errs <- fmt.Errorf("%s: have %g [%v], want %g [%v]", e, have, haveDim, want, wantDim)
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
