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
)

// prefix is an SI prefix and the power of ten it stands for.
type prefix struct {
	symbol string
	factor float64
}

// prefixes are the SI prefixes. "u" is accepted as an ASCII spelling
// of micro.
var prefixes = []prefix{
	{"Y", 1e24}, {"Z", 1e21}, {"E", 1e18}, {"P", 1e15}, {"T", 1e12},
	{"G", 1e9}, {"M", 1e6}, {"k", 1e3}, {"h", 1e2}, {"da", 1e1},
	{"d", 1e-1}, {"c", 1e-2}, {"m", 1e-3}, {"μ", 1e-6}, {"u", 1e-6},
	{"n", 1e-9}, {"p", 1e-12}, {"f", 1e-15}, {"a", 1e-18}, {"z", 1e-21},
	{"y", 1e-24},
}

// SI is the default unit table: the SI base units, SI prefixes for the
// common SI units, and a selection of derived and customary units. It
// must not be modified; use Merge to extend it.
var SI = siTable()

type tableBuilder Table

func (t tableBuilder) add(symbol string, e Entry) {
	if _, ok := t[symbol]; ok {
		panic(fmt.Errorf("measure: unit %q defined twice", symbol))
	}
	t[symbol] = e
}

func (t tableBuilder) derived(symbol string, multiplier float64, ref string) {
	t.add(symbol, DerivedEntry(multiplier, ref))
}

// prefixed adds every prefixed form of unit, except those that are
// already defined.
func (t tableBuilder) prefixed(unit string) {
	for _, p := range prefixes {
		if _, ok := t[p.symbol+unit]; ok {
			continue
		}
		t.derived(p.symbol+unit, p.factor, unit)
	}
}

func siTable() Table {
	t := make(tableBuilder)

	// Base units.
	for _, a := range Axes() {
		t.add(a.Symbol(), BaseEntry(a))
	}

	// Length.
	t.prefixed("m")
	t.derived("Å", 1e-10, "m")
	t.derived("Å", 1, "Å") // ANGSTROM SIGN
	t.derived("in", 0.0254, "m")
	t.derived("ft", 12, "in")
	t.derived("yd", 3, "ft")
	t.derived("mi", 1760, "yd")
	t.derived("nmi", 1852, "m")
	t.derived("ly", 9.461e15, "m")
	t.derived("AU", 149597870700, "m")
	t.derived("pc", 30856775814671900, "m")
	t.derived("ftm", 72, "in")

	// Mass. The kilogram is the base unit, so the gram is derived from it.
	t.derived("g", 1e-3, "kg")
	t.prefixed("g")
	t.derived("t", 1000, "kg")
	t.derived("tonne", 1, "t")
	t.derived("lb", 0.45359237, "kg")
	t.derived("lbm", 1, "lb")
	t.derived("oz", 1.0/16, "lb")
	t.derived("st", 14, "lb")
	t.derived("ton", 2000, "lb")
	t.derived("slug", 1, "lbf*s^2/ft")

	// Time.
	t.prefixed("s")
	t.derived("min", 60, "s")
	t.derived("hr", 60, "min")
	t.derived("h", 1, "hr")
	t.derived("day", 24, "hr")
	t.derived("days", 1, "day")
	t.derived("week", 7, "day")
	t.derived("weeks", 1, "week")
	t.derived("yr", 365.25, "day")
	t.derived("year", 1, "yr")
	t.derived("years", 1, "yr")

	// Temperature. Only absolute scales can be expressed as a multiplier.
	t.prefixed("K")
	t.derived("degR", 5.0/9, "K")
	t.derived("°R", 1, "degR")

	// Current, amount of substance, luminous intensity.
	t.prefixed("A")
	t.prefixed("mol")
	t.prefixed("cd")

	// Angle.
	t.derived("deg", math.Pi/180, "rad")
	t.derived("°", 1, "deg")
	t.derived("arcmin", 1.0/60, "deg")
	t.derived("arcsec", 1.0/60, "arcmin")
	t.derived("rev", 2*math.Pi, "rad")
	t.derived("sr", 1, "rad^2")

	// Ratios.
	t.derived("percent", 0.01, "1")
	t.derived("ppm", 1e-6, "1")
	t.derived("ppb", 1e-9, "1")

	// Area.
	t.derived("are", 100, "m^2")
	t.derived("ares", 1, "are")
	t.derived("hectare", 100, "are")
	t.derived("hectares", 1, "hectare")
	t.derived("ha", 1, "hectare")
	t.derived("acre", 4840, "yd^2")
	t.derived("acres", 1, "acre")

	// Volume.
	t.derived("L", 1e-3, "m^3")
	t.prefixed("L")
	t.derived("cc", 1, "cm^3")
	t.derived("barrel", 0.158987294928, "m^3")
	t.derived("barrels", 1, "barrel")
	t.derived("gal", 3.78541, "L")
	t.derived("qt", 0.25, "gal")
	t.derived("pt", 0.5, "qt")

	// Frequency and speed.
	t.derived("Hz", 1, "1/s")
	t.prefixed("Hz")
	t.derived("rpm", 1, "rev/min")
	t.derived("mph", 1, "mi/hr")
	t.derived("kph", 1, "km/hr")
	t.derived("kn", 1, "nmi/hr")
	t.derived("knot", 1, "kn")
	t.derived("knots", 1, "kn")

	// Force.
	t.derived("N", 1, "kg*m/s^2")
	t.prefixed("N")
	t.derived("lbf", 4.4482216152605, "N")

	// Pressure.
	t.derived("Pa", 1, "N/m^2")
	t.prefixed("Pa")
	t.derived("bar", 1e5, "Pa")
	t.derived("mbar", 1e-3, "bar")
	t.derived("atm", 101325, "Pa")
	t.derived("Torr", 1.0/760, "atm")
	t.derived("mmHg", 133.322387415, "Pa")
	t.derived("psi", 1, "lbf/in^2")

	// Energy.
	t.derived("J", 1, "N*m")
	t.prefixed("J")
	t.derived("eV", 1.602176634e-19, "J")
	t.prefixed("eV")
	t.derived("cal", 4.184, "J")
	t.prefixed("cal")
	t.derived("Btu", 1055.06, "J")
	t.derived("BTU", 1, "Btu")

	// Power.
	t.derived("W", 1, "J/s")
	t.prefixed("W")
	t.derived("Wh", 1, "W*hr")
	t.prefixed("Wh")
	t.derived("hp", 745.699872, "W")

	// Electromagnetism.
	t.derived("C", 1, "A*s")
	t.prefixed("C")
	t.derived("V", 1, "W/A")
	t.prefixed("V")
	t.derived("Ω", 1, "V/A")
	t.prefixed("Ω")
	t.derived("ohm", 1, "Ω")
	t.derived("S", 1, "A/V")
	t.derived("F", 1, "C/V")
	t.prefixed("F")
	t.derived("Wb", 1, "V*s")
	t.derived("T", 1, "Wb/m^2")
	t.derived("H", 1, "Wb/A")

	// Photometry, radiation and catalysis.
	t.derived("lm", 1, "cd*sr")
	t.derived("lx", 1, "lm/m^2")
	t.derived("Bq", 1, "1/s")
	t.derived("Gy", 1, "J/kg")
	t.derived("Sv", 1, "J/kg")
	t.derived("kat", 1, "mol/s")

	return Table(t)
}
