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
	"io"
	"math"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Entry defines one unit symbol. A base entry has an empty Ref and
// carries its Dimension directly; a derived entry is Multiplier times
// the unit expression in Ref.
type Entry struct {
	Multiplier float64
	Dimension  Dimension
	Ref        string
}

// BaseEntry returns the entry for the base unit of axis a.
func BaseEntry(a Axis) Entry {
	var d Dimension
	d[a] = 1
	return Entry{Multiplier: 1, Dimension: d}
}

// DerivedEntry returns an entry equal to multiplier times the unit
// expression ref.
func DerivedEntry(multiplier float64, ref string) Entry {
	return Entry{Multiplier: multiplier, Ref: ref}
}

// IsBase reports whether e is a base entry.
func (e Entry) IsBase() bool { return e.Ref == "" }

// Table maps unit symbols to their definitions. Derived entries must not
// refer to each other in a loop; Validate checks this.
type Table map[string]Entry

// Clone returns a copy of t.
func (t Table) Clone() Table {
	o := make(Table, len(t))
	for k, v := range t {
		o[k] = v
	}
	return o
}

// Merge returns a copy of t with the entries of o added to it. Entries in
// o replace entries in t with the same symbol.
func (t Table) Merge(o Table) Table {
	m := t.Clone()
	for k, v := range o {
		m[k] = v
	}
	return m
}

// Validate checks that every entry is well formed, that every symbol
// referenced by a derived entry is defined, and that the references do
// not form a cycle.
func (t Table) Validate() error {
	symbols := make([]string, 0, len(t))
	for s := range t {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	ids := make(map[string]int64, len(symbols))
	for i, s := range symbols {
		ids[s] = int64(i)
	}

	g := simple.NewDirectedGraph()
	for _, s := range symbols {
		g.AddNode(simple.Node(ids[s]))
	}
	for _, s := range symbols {
		e := t[s]
		if e.IsBase() {
			if err := checkBase(s, e); err != nil {
				return err
			}
			continue
		}
		if !(e.Multiplier > 0) || math.IsInf(e.Multiplier, 0) {
			return &InvalidEntryError{Symbol: s, Reason: fmt.Sprintf("multiplier %g is not a finite positive number", e.Multiplier)}
		}
		deps, err := references(e.Ref)
		if err != nil {
			return fmt.Errorf("measure: unit %q: %w", s, err)
		}
		for _, dep := range deps {
			if _, ok := t[dep]; !ok {
				return fmt.Errorf("measure: unit %q refers to %q: %w", s, e.Ref, &UnknownUnitError{Symbol: dep})
			}
			if dep == s {
				return &CycleError{Symbols: []string{s}}
			}
			g.SetEdge(simple.Edge{F: simple.Node(ids[s]), T: simple.Node(ids[dep])})
		}
	}

	if _, err := topo.Sort(g); err != nil {
		if u, ok := err.(topo.Unorderable); ok {
			return &CycleError{Symbols: cycleSymbols(u, symbols)}
		}
		return err
	}
	return nil
}

func checkBase(s string, e Entry) error {
	if e.Multiplier != 1 {
		return &InvalidEntryError{Symbol: s, Reason: fmt.Sprintf("base unit multiplier is %g, not 1", e.Multiplier)}
	}
	n := 0
	for _, p := range e.Dimension {
		switch p {
		case 0:
		case 1:
			n++
		default:
			return &InvalidEntryError{Symbol: s, Reason: fmt.Sprintf("base unit dimension [%s] has a power other than 0 or 1", e.Dimension)}
		}
	}
	if n != 1 {
		return &InvalidEntryError{Symbol: s, Reason: fmt.Sprintf("base unit dimension [%s] must have exactly one axis", e.Dimension)}
	}
	return nil
}

// references returns the unit symbols used in expr.
func references(expr string) ([]string, error) {
	e, err := splitExpression(expr)
	if err != nil {
		return nil, err
	}
	var o []string
	for _, t := range e.terms {
		o = append(o, t.symbol)
	}
	if e.nested != "" {
		n, err := references(e.nested)
		if err != nil {
			return nil, err
		}
		o = append(o, n...)
	}
	return o, nil
}

// cycleSymbols returns the sorted symbols of the first strongly
// connected component of u that contains more than one node.
func cycleSymbols(u topo.Unorderable, symbols []string) []string {
	var comp []graph.Node
	for _, c := range u {
		if len(c) > 1 {
			comp = c
			break
		}
	}
	o := make([]string, len(comp))
	for i, n := range comp {
		o[i] = symbols[n.ID()]
	}
	sort.Strings(o)
	return o
}

// tableFile is the TOML representation of a unit table.
type tableFile struct {
	Units map[string]entryFile `toml:"units"`
}

type entryFile struct {
	Multiplier interface{} `toml:"multiplier"`
	Ref        string      `toml:"ref"`
	Base       string      `toml:"base"`
}

// LoadTable reads a unit table from TOML data of the form
//	[units.furlong]
//	multiplier = 201.168
//	ref = "m"
//
//	[units.len]
//	base = "length"
// Each unit needs exactly one of ref or base. The multiplier defaults to
// 1 and may be written as an integer, a float or a numeric string. The
// returned table is not validated; it is usually merged into SI before
// being passed to NewParser.
func LoadTable(r io.Reader) (Table, error) {
	var f tableFile
	md, err := toml.DecodeReader(r, &f)
	if err != nil {
		return nil, fmt.Errorf("measure: decoding unit table: %w", err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, fmt.Errorf("measure: unit table has unknown keys %v", u)
	}
	t := make(Table, len(f.Units))
	for s, ef := range f.Units {
		switch {
		case ef.Base != "" && ef.Ref != "":
			return nil, &InvalidEntryError{Symbol: s, Reason: "both base and ref are set"}
		case ef.Base != "":
			a, err := ParseAxis(ef.Base)
			if err != nil {
				return nil, &InvalidEntryError{Symbol: s, Reason: err.Error()}
			}
			if ef.Multiplier != nil {
				return nil, &InvalidEntryError{Symbol: s, Reason: "a base unit cannot have a multiplier"}
			}
			t[s] = BaseEntry(a)
		case ef.Ref != "":
			m := 1.0
			if ef.Multiplier != nil {
				if m, err = cast.ToFloat64E(ef.Multiplier); err != nil {
					return nil, &InvalidEntryError{Symbol: s, Reason: fmt.Sprintf("multiplier: %v", err)}
				}
			}
			t[s] = DerivedEntry(m, ef.Ref)
		default:
			return nil, &InvalidEntryError{Symbol: s, Reason: "one of base or ref must be set"}
		}
	}
	return t, nil
}
