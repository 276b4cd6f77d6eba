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
	"strconv"
	"text/tabwriter"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/measure"
	"github.com/spatialmodel/measure/internal/hash"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information and the command tree that uses it.
type Cfg struct {
	*viper.Viper

	Root, versionCmd, convertCmd, dimCmd, listCmd, checkCmd *cobra.Command

	// Log is the logger used by the commands and by the unit parser.
	Log *logrus.Logger
}

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

// InitializeConfig creates the command tree and binds its flags to a new
// configuration.
func InitializeConfig() *Cfg {
	cfg := &Cfg{
		Viper: viper.New(),
		Log:   logrus.New(),
	}

	cfg.Root = &cobra.Command{
		Use:   "measure",
		Short: "Convert and check physical units.",
		Long: `measure converts values between physical units and reports the
dimensions of unit expressions such as "kg*m/s^2" or "km/hr".

Unit expressions have the form numerator[/denominator], where each side is one
or more unit terms joined by '*'. A term is a unit symbol optionally followed by
an exponent written as "^2" or "²". A numerator of "1" stands for no units, as in
"1/s".

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'MEASURE_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return cfg.setConfig() },
	}

	cfg.versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "version prints the version number of this version of measure.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "measure v%s\n", measure.Version)
		},
		DisableAutoGenTag: true,
	}

	cfg.convertCmd = &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Convert a value between units",
		Long: `convert converts VALUE from the units FROM to the units TO, for example
'measure convert 60 mi/hr km/hr'. FROM and TO must have the same dimensions.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := cast.ToFloat64E(args[0])
			if err != nil {
				return fmt.Errorf("measure: invalid value %q: %v", args[0], err)
			}
			p, err := cfg.Parser()
			if err != nil {
				return err
			}
			o, err := p.Convert(v, args[1], args[2])
			if err != nil {
				return err
			}
			cfg.Log.WithFields(logrus.Fields{
				"value": v,
				"from":  args[1],
				"to":    args[2],
			}).Debug("measure: converted")
			fmt.Fprintln(cmd.OutOrStdout(), cfg.format(o))
			return nil
		},
		DisableAutoGenTag: true,
	}

	cfg.dimCmd = &cobra.Command{
		Use:   "dim UNIT",
		Short: "Print the SI multiplier and dimensions of a unit",
		Long: `dim prints the multiplier that converts UNIT to SI base units, followed by
the dimensions of UNIT written in base units.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := cfg.Parser()
			if err != nil {
				return err
			}
			mult, d, err := p.Resolve(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n", cfg.format(mult), d)
			return nil
		},
		DisableAutoGenTag: true,
	}

	cfg.listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the known units",
		Long: `list prints every known unit symbol together with its SI multiplier and
dimensions. If --dim is given, only units with the same dimensions as that unit
expression are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := cfg.Parser()
			if err != nil {
				return err
			}
			symbols := p.Symbols()
			if u := cfg.GetString("dim"); u != "" {
				_, d, err := p.Resolve(u)
				if err != nil {
					return err
				}
				if symbols, err = p.Compatible(d); err != nil {
					return err
				}
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			for _, s := range symbols {
				mult, d, err := p.ResolveSymbol(s)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t[%s]\n", s, cfg.format(mult), d)
			}
			return w.Flush()
		},
		DisableAutoGenTag: true,
	}

	cfg.checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Check the unit table",
		Long: `check loads the unit table, including any units added with the table and
units configuration variables, and reports whether it is valid: every unit must
be defined in terms of known units, and no unit may be defined in terms of itself.
It also prints a fingerprint of the table, which is the same for any two
configurations that define the same units.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := cfg.Parser()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unit table ok: %d units, fingerprint %s\n",
				len(p.Symbols()), hash.Hash(p.Table()))
			return nil
		},
		DisableAutoGenTag: true,
	}

	cfg.Root.AddCommand(cfg.versionCmd, cfg.convertCmd, cfg.dimCmd, cfg.listCmd, cfg.checkCmd)

	options := []option{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "table",
			usage: `
              table is the path to a TOML file of additional unit definitions,
              which are added to (and can replace) the built-in SI units. Each
              unit is a [units.<symbol>] table with either a "ref" unit expression
              and an optional "multiplier", or a "base" axis name.
              The path can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "units",
			usage: `
              units gives additional unit definitions as a map from symbol to
              "<multiplier> <unit expression>", for example {"furlong": "201.168 m"}.
              The multiplier can be left out, in which case it is 1. These
              definitions are applied after the ones in the table file.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "precision",
			usage: `
              precision is the number of significant digits in printed values.
              -1 prints the fewest digits needed to represent the value exactly.`,
			shorthand:  "p",
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel is the minimum level of log messages to print: one of
              debug, info, warning, error, fatal or panic.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "dim",
			usage: `
              dim is a unit expression; if it is set, only units with the same
              dimensions are listed.`,
			shorthand:  "d",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{cfg.listCmd.Flags()},
		},
	}

	// Set the prefix for configuration environment variables.
	cfg.SetEnvPrefix("MEASURE")
	cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	return cfg
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func (cfg *Cfg) setConfig() error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("measure: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(cfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("measure: loglevel: %v", err)
	}
	cfg.Log.Level = level
	return nil
}

// format prints v with the configured precision.
func (cfg *Cfg) format(v float64) string {
	return strconv.FormatFloat(v, 'g', cfg.GetInt("precision"), 64)
}
