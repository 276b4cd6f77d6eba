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

// Package measure parses physical unit expressions such as "kg*m/s^2"
// into a multiplier and a dimension, and does arithmetic on values that
// carry dimensions.
//
// Unit symbols are looked up in a Table. SI holds the SI base units,
// prefixed SI units and a selection of customary units; other tables can
// be loaded from TOML with LoadTable and merged into it.
package measure

// Version gives the version number.
const Version = "1.0.0"
