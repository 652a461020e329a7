// Copyright 2025 Ahmet Alp Balkan
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/clock"
	"k8s.io/utils/ptr"

	"github.com/ahmetb/reldate/internal/output"
	"github.com/ahmetb/reldate/internal/timeutil"
)

// enumValue is a pflag.Value restricted to a fixed set of strings.
type enumValue struct {
	value   string
	allowed []string
}

func newEnumValue(def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	if !slices.Contains(e.allowed, s) {
		return fmt.Errorf("must be one of %s", strings.Join(e.allowed, "|"))
	}
	e.value = s
	return nil
}

func (e *enumValue) Type() string { return "string" }

var _ pflag.Value = (*enumValue)(nil)

type cliFlags struct {
	now        string
	pattern    string
	width      *enumValue
	endOfDay   bool
	position   *enumValue
	keys       []string
	color      *enumValue
	explain    bool
	strict     bool
	configPath string
}

func newFlags() *cliFlags {
	return &cliFlags{
		width:    newEnumValue("auto", "auto", "narrow", "wide"),
		position: newEnumValue("inline", "inline", "above"),
		color:    newEnumValue("auto", "auto", "always", "never"),
	}
}

func (f *cliFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.now, "now", "", "reference time (RFC 3339 or epoch), defaults to the current time")
	fs.StringVarP(&f.pattern, "pattern", "p", "", `fallback date pattern, e.g. "dd MMMM yyyy" (default depends on --width)`)
	fs.Var(f.width, "width", "display width used to pick the default pattern (auto|narrow|wide)")
	fs.BoolVar(&f.endOfDay, "end-of-day", false, "compare against the end (23:59:59) of the timestamp's day")
	fs.Var(f.position, "position", "comment position on the yaml (inline|above)")
	fs.StringSliceVarP(&f.keys, "key", "k", nil, "only annotate these keys, which may also hold epoch values (repeatable)")
	fs.Var(f.color, "color", "colorize labels (auto|always|never)")
	fs.BoolVar(&f.explain, "explain", false, "print the input and the exact delta next to each label")
	fs.BoolVar(&f.strict, "strict", false, "exit with an error if any argument is not a valid timestamp")
	fs.StringVar(&f.configPath, "config", os.Getenv(configEnv), "path to a YAML config file (env "+configEnv+")")
}

// applyConfig copies config file values into flags the user did not set.
func (f *cliFlags) applyConfig(fs *pflag.FlagSet, cfg *Config) error {
	var errs []error
	set := func(name, value string) {
		if value == "" || fs.Changed(name) {
			return
		}
		if err := fs.Set(name, value); err != nil {
			errs = append(errs, fmt.Errorf("config key for --%s: %w", name, err))
		}
	}
	set("pattern", ptr.Deref(cfg.Pattern, ""))
	set("width", ptr.Deref(cfg.Width, ""))
	set("position", ptr.Deref(cfg.Position, ""))
	set("color", ptr.Deref(cfg.Color, ""))
	if cfg.EndOfDay != nil {
		set("end-of-day", strconv.FormatBool(*cfg.EndOfDay))
	}
	if len(cfg.Keys) > 0 && !fs.Changed("key") {
		f.keys = cfg.Keys
	}
	return utilerrors.NewAggregate(errs)
}

// options resolves flags into run options.
func (f *cliFlags) options(clk clock.PassiveClock, cfg *Config) (options, error) {
	if f.now != "" {
		t, err := timeutil.Parse(f.now, time.Local)
		if err != nil {
			return options{}, fmt.Errorf("invalid --now: %w", err)
		}
		clk = fixedClock{t: t}
	}

	width, err := resolveWidth(f.width.String(), terminalColumns)
	if err != nil {
		return options{}, err
	}

	position := Inline
	if f.position.String() == "above" {
		position = Above
	}

	return options{
		clock: clk,
		format: timeutil.Options{
			FallbackPattern: f.pattern,
			Width:           width,
			SnapToEndOfDay:  f.endOfDay,
		},
		formatter: timeutil.New(timeutil.WithDefaultPatterns(cfg.NarrowPattern, cfg.WidePattern)),
		position:  position,
		keys:      sets.New(f.keys...),
		color:     resolveColor(f.color.String()),
		explain:   f.explain,
		strict:    f.strict,
	}, nil
}

// resolveWidth maps the --width flag to a hint, measuring the terminal for
// "auto".
func resolveWidth(flag string, columns func() int) (timeutil.Width, error) {
	if flag == "auto" {
		return timeutil.WidthForColumns(columns()), nil
	}
	return timeutil.ParseWidth(flag)
}

// terminalColumns returns the width of the terminal on stdout, or 0 when
// stdout is not a terminal.
func terminalColumns() int {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return cols
}

func resolveColor(flag string) bool {
	fd := os.Stdout.Fd()
	return output.ResolveColor(flag, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// fixedClock is a clock.PassiveClock stopped at t. It stands in for
// FakePassiveClock so the binary does not link k8s.io/utils/clock/testing.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
func (c fixedClock) Since(ts time.Time) time.Duration { return c.t.Sub(ts) }
