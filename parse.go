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
	"io/ioutil"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/golang/groupcache/lru"
	"github.com/sirupsen/logrus"
)

// CacheSize is the number of resolved expressions a Parser remembers.
const CacheSize = 512

// superscripts maps superscript digit glyphs to their ASCII digits.
var superscripts = map[rune]byte{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
}

// isSymbolRune reports whether r can be part of a unit symbol.
func isSymbolRune(r rune) bool {
	return unicode.IsLetter(r) || r == '°' || r == '\u212B'
}

// ParseTerm splits a single unit term such as "kg", "m^2" or "s³" into its
// unit symbol and exponent. The symbol is the longest leading run of
// letters (Greek included), '°' and the angstrom sign. What follows it
// must be empty (exponent 1), '^' and a number, or a run of superscript
// digits.
func ParseTerm(term string) (symbol string, exponent float64, err error) {
	i := 0
	for i < len(term) {
		r, size := utf8.DecodeRuneInString(term[i:])
		if !isSymbolRune(r) {
			break
		}
		i += size
	}
	if i == 0 {
		return "", 0, &ParseError{Term: term, Reason: "missing unit symbol"}
	}
	symbol, rest := term[:i], term[i:]

	switch {
	case rest == "":
		return symbol, 1, nil
	case rest[0] == '^':
		exponent, err = strconv.ParseFloat(rest[1:], 64)
		if err != nil {
			return "", 0, &ParseError{Term: term, Reason: fmt.Sprintf("invalid exponent %q", rest[1:])}
		}
		if math.IsInf(exponent, 0) || math.IsNaN(exponent) {
			return "", 0, &ParseError{Term: term, Reason: fmt.Sprintf("non-finite exponent %q", rest[1:])}
		}
		return symbol, exponent, nil
	default:
		digits := make([]byte, 0, len(rest))
		for _, r := range rest {
			d, ok := superscripts[r]
			if !ok {
				return "", 0, &ParseError{Term: term, Reason: fmt.Sprintf("unexpected %q after unit symbol", rest)}
			}
			digits = append(digits, d)
		}
		exponent, err = strconv.ParseFloat(string(digits), 64)
		if err != nil {
			return "", 0, &ParseError{Term: term, Reason: err.Error()}
		}
		return symbol, exponent, nil
	}
}

// term is one parsed factor of a unit expression.
type term struct {
	symbol   string
	exponent float64
}

// expression is a unit expression split into its factors. nested holds
// a denominator that itself contained a '/', which is resolved as a
// whole and inverted.
type expression struct {
	terms  []term
	nested string
}

// splitExpression breaks expr into numerator[/denominator] factors.
// Denominator exponents are negated.
func splitExpression(expr string) (expression, error) {
	var e expression
	num, den := expr, ""
	hasDen := false
	if i := strings.IndexByte(expr, '/'); i >= 0 {
		num, den, hasDen = expr[:i], expr[i+1:], true
	}

	if hasDen && strings.TrimSpace(num) == "" {
		return e, &ParseError{Term: expr, Reason: "empty numerator"}
	}
	if hasDen && strings.TrimSpace(den) == "" {
		return e, &ParseError{Term: expr, Reason: "empty denominator"}
	}
	if strings.TrimSpace(num) != "1" {
		ts, err := splitSide(num)
		if err != nil {
			return e, err
		}
		e.terms = ts
	}
	if !hasDen {
		return e, nil
	}
	if strings.IndexByte(den, '/') >= 0 {
		e.nested = den
		return e, nil
	}
	ts, err := splitSide(den)
	if err != nil {
		return e, err
	}
	for _, t := range ts {
		t.exponent = -t.exponent
		e.terms = append(e.terms, t)
	}
	return e, nil
}

func splitSide(s string) ([]term, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, "*")
	o := make([]term, len(parts))
	for i, p := range parts {
		sym, exp, err := ParseTerm(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		o[i] = term{symbol: sym, exponent: exp}
	}
	return o, nil
}

// resolved is a cached Resolve result.
type resolved struct {
	mult float64
	dim  Dimension
}

// Parser resolves unit expressions against a unit table. It is safe for
// concurrent use.
type Parser struct {
	table Table

	mu    sync.Mutex
	cache *lru.Cache

	// Log receives debug information. It discards everything by default.
	Log logrus.FieldLogger
}

// NewParser returns a parser for the units in t. t is copied and
// validated, so later changes to t do not affect the parser.
func NewParser(t Table) (*Parser, error) {
	t = t.Clone()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	log := logrus.New()
	log.Out = ioutil.Discard
	return &Parser{
		table: t,
		cache: lru.New(CacheSize),
		Log:   log,
	}, nil
}

var std *Parser

func init() {
	var err error
	std, err = NewParser(SI)
	if err != nil {
		panic(err)
	}
}

// Default returns the parser for the SI table that backs the
// package-level functions.
func Default() *Parser { return std }

// Resolve resolves expr using the SI table.
func Resolve(expr string) (multiplier float64, dim Dimension, err error) {
	return std.Resolve(expr)
}

// ResolveSymbol resolves a single unit symbol using the SI table.
func ResolveSymbol(symbol string) (multiplier float64, dim Dimension, err error) {
	return std.ResolveSymbol(symbol)
}

// Resolve returns the multiplier that converts a value in the units of
// expr to base units, and the dimension of expr. An expression has the
// form numerator[/denominator], where each side is one or more terms
// joined by '*' (see ParseTerm), and a numerator of "1" has no terms.
// Neither side may be empty when a '/' is present, though "" on its own
// is dimensionless.
//
// Only the first '/' splits the expression. Everything after it is the
// denominator, so "a/b/c" is read as a/(b/c) and "m/s/s" has the
// dimension of length, not acceleration. Write "m/s^2" or "m/s*s" for the
// latter.
func (p *Parser) Resolve(expr string) (multiplier float64, dim Dimension, err error) {
	if r, ok := p.cached(expr); ok {
		return r.mult, r.dim, nil
	}
	p.Log.WithFields(logrus.Fields{"expr": expr}).Debug("measure: resolving unit expression")

	e, err := splitExpression(expr)
	if err != nil {
		return 0, Dimension{}, err
	}
	multiplier = 1
	for _, t := range e.terms {
		m, d, err := p.ResolveSymbol(t.symbol)
		if err != nil {
			return 0, Dimension{}, err
		}
		multiplier *= math.Pow(m, t.exponent)
		dim = dim.Mul(d.Pow(t.exponent))
	}
	if e.nested != "" {
		m, d, err := p.Resolve(e.nested)
		if err != nil {
			return 0, Dimension{}, err
		}
		multiplier /= m
		dim = dim.Div(d)
	}

	p.store(expr, resolved{mult: multiplier, dim: dim})
	return multiplier, dim, nil
}

// ResolveSymbol returns the multiplier and dimension of a single unit
// symbol, following derived units down to base units.
func (p *Parser) ResolveSymbol(symbol string) (multiplier float64, dim Dimension, err error) {
	e, ok := p.table[symbol]
	if !ok {
		return 0, Dimension{}, &UnknownUnitError{Symbol: symbol}
	}
	if e.Ref == "" {
		return e.Multiplier, e.Dimension, nil
	}
	m, d, err := p.Resolve(e.Ref)
	if err != nil {
		return 0, Dimension{}, fmt.Errorf("measure: resolving %q: %w", symbol, err)
	}
	return e.Multiplier * m, d, nil
}

func (p *Parser) cached(expr string) (resolved, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.cache.Get(expr)
	if !ok {
		return resolved{}, false
	}
	return v.(resolved), true
}

func (p *Parser) store(expr string, r resolved) {
	p.mu.Lock()
	p.cache.Add(expr, r)
	p.mu.Unlock()
}

// Table returns a copy of the units known to p.
func (p *Parser) Table() Table {
	return p.table.Clone()
}

// Symbols returns the unit symbols known to p in sorted order.
func (p *Parser) Symbols() []string {
	o := make([]string, 0, len(p.table))
	for s := range p.table {
		o = append(o, s)
	}
	sort.Strings(o)
	return o
}

// Compatible returns the sorted symbols whose dimension is dim.
func (p *Parser) Compatible(dim Dimension) ([]string, error) {
	var o []string
	for _, s := range p.Symbols() {
		_, d, err := p.ResolveSymbol(s)
		if err != nil {
			return nil, err
		}
		if d == dim {
			o = append(o, s)
		}
	}
	return o, nil
}
