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
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hako/durafmt"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/ahmetb/reldate/internal/annotate"
	"github.com/ahmetb/reldate/internal/output"
	"github.com/ahmetb/reldate/internal/parser"
	"github.com/ahmetb/reldate/internal/timeutil"
)

type annotationPosition int

const (
	Inline annotationPosition = iota
	Above
)

func (p annotationPosition) String() string {
	if p == Above {
		return "above"
	}
	return "inline"
}

type options struct {
	clock     clock.PassiveClock
	format    timeutil.Options
	formatter *timeutil.Formatter
	position  annotationPosition
	keys      sets.Set[string]
	color     bool
	explain   bool
	strict    bool
}

func (o options) timeFormatter() *timeutil.Formatter {
	if o.formatter == nil {
		return timeutil.New()
	}
	return o.formatter
}

// run annotates every timestamp in the YAML documents of in and writes the
// result to w.
func run(in []byte, w io.Writer, opts options) error {
	docs, err := parser.ParseDocuments(bytes.NewReader(in))
	if err != nil {
		return fmt.Errorf("error parsing input: %w", err)
	}
	klog.V(1).InfoS("decoded input", "documents", len(docs))

	now := opts.clock.Now()
	cm := output.NewColorManager()
	for i, doc := range docs {
		for _, obj := range parser.UnwrapListKind(doc) {
			targets := annotate.Annotate(obj, annotate.Options{
				Above:     opts.position == Above,
				Now:       now,
				Format:    opts.format,
				Keys:      opts.keys,
				Formatter: opts.timeFormatter(),
			})
			for _, t := range targets {
				klog.V(2).InfoS("annotated timestamp", "doc", i, "path", t.Path,
					"time", t.Time, "delta", t.Label.Delta, "rule", timeutil.RuleFor(t.Label.Delta), "label", t.Label.Text)
				cm.Register(t.Label)
			}
		}
	}

	var buf bytes.Buffer
	if err := parser.EncodeDocuments(&buf, docs); err != nil {
		return fmt.Errorf("error marshaling the annotated documents back to yaml: %w", err)
	}
	_, err = io.WriteString(w, output.FormatOutput(buf.String(), opts.color, cm))
	return err
}

// formatArgs prints one label per argument. Arguments that are not valid
// timestamps print as timeutil.Invalid; with opts.strict they also fail the
// command.
func formatArgs(args []string, w io.Writer, opts options) error {
	now := opts.clock.Now()
	f := opts.timeFormatter()
	cm := output.NewColorManager()

	var errs []error
	var b strings.Builder
	for _, arg := range args {
		label := timeutil.Label{Text: timeutil.Invalid, Kind: timeutil.KindInvalid}
		t, err := timeutil.Parse(arg, now.Location())
		if err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", arg, err))
		} else {
			label = f.Describe(t, now, opts.format)
		}
		klog.V(2).InfoS("formatted argument", "arg", arg, "delta", label.Delta, "kind", label.Kind, "label", label.Text)

		cm.Register(label)
		text := label.Text
		if opts.color {
			text = cm.Wrap(text, label.Text)
		}
		if opts.explain {
			fmt.Fprintf(&b, "%s\t%s\t%s\n", arg, text, explainDelta(label))
		} else {
			fmt.Fprintln(&b, text)
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	agg := utilerrors.NewAggregate(errs)
	if agg == nil {
		return nil
	}
	if opts.strict {
		return agg
	}
	klog.Warningf("some arguments are not valid timestamps: %v", agg)
	return nil
}

// maxDurationSeconds is the largest delta that fits in a time.Duration.
const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

// explainDelta renders the exact offset behind a label in short units,
// e.g. "+2d16h" or "-1h1m".
func explainDelta(label timeutil.Label) string {
	if label.Kind == timeutil.KindInvalid {
		return "-"
	}
	delta := label.Delta
	sign := "+"
	if delta < 0 {
		sign, delta = "-", -delta
	}
	if delta == 0 {
		return "0s"
	}
	if delta > maxDurationSeconds {
		return sign + longDelta(delta)
	}
	d := durafmt.Parse(time.Duration(delta) * time.Second)
	units, _ := durafmt.DefaultUnitsCoder.Decode("yr:yr,wk:wk,d:d,h:h,m:m,s:s,ms:ms,µs:µs")
	return sign + strings.ReplaceAll(d.LimitFirstN(2).Format(units), " ", "")
}

// longDelta renders seconds too large for durafmt as years and weeks, using
// durafmt's 365-day year.
func longDelta(secs int64) string {
	const (
		week = 7 * 24 * 60 * 60
		year = 365 * 24 * 60 * 60
	)
	out := strconv.FormatInt(secs/year, 10) + "yr"
	if w := secs % year / week; w > 0 {
		out += strconv.FormatInt(w, 10) + "wk"
	}
	return out
}
