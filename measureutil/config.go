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

package measureutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/measure"
	"github.com/spf13/cast"
)

// Parser returns a unit parser for the SI units, extended by the unit
// table file and the inline unit definitions in the configuration.
func (cfg *Cfg) Parser() (*measure.Parser, error) {
	t := measure.SI
	var fromFile int
	if path := cfg.GetString("table"); path != "" {
		ft, err := loadTableFile(os.ExpandEnv(path))
		if err != nil {
			return nil, err
		}
		fromFile = len(ft)
		t = t.Merge(ft)
	}

	defs, err := GetStringMapString("units", cfg.Viper)
	if err != nil {
		return nil, err
	}
	inline, err := parseUnitDefs(defs)
	if err != nil {
		return nil, err
	}
	t = t.Merge(inline)

	p, err := measure.NewParser(t)
	if err != nil {
		return nil, err
	}
	p.Log = cfg.Log
	cfg.Log.WithFields(logrus.Fields{
		"units":  len(t),
		"table":  fromFile,
		"inline": len(inline),
	}).Debug("measure: loaded unit table")
	return p, nil
}

func loadTableFile(path string) (measure.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("measure: opening unit table: %v", err)
	}
	defer f.Close()
	t, err := measure.LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("measure: unit table %s: %w", path, err)
	}
	return t, nil
}

// parseUnitDefs converts definitions of the form "<multiplier> <unit
// expression>" or "<unit expression>" into table entries.
func parseUnitDefs(defs map[string]string) (measure.Table, error) {
	t := make(measure.Table, len(defs))
	for s, def := range defs {
		def = strings.TrimSpace(os.ExpandEnv(def))
		if def == "" {
			return nil, &measure.InvalidEntryError{Symbol: s, Reason: "empty definition"}
		}
		mult, ref := 1.0, def
		if f := strings.Fields(def); len(f) > 1 {
			if m, err := cast.ToFloat64E(f[0]); err == nil {
				mult, ref = m, strings.Join(f[1:], " ")
			}
		} else if m, err := cast.ToFloat64E(def); err == nil {
			// A bare number defines a dimensionless unit.
			mult, ref = m, "1"
		}
		t[s] = measure.DerivedEntry(mult, ref)
	}
	return t, nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		o := make(map[string]string)
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("measure: invalid value for %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("measure: invalid type for variable %s: %#v", varName, i)
	}
}
