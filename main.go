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
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"
)

func main() {
	err := newRootCmd(os.Stdin, os.Stdout, clock.RealClock{}).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the reldate command reading from stdin and writing to
// stdout. clk is the reference clock unless --now is given.
func newRootCmd(stdin io.Reader, stdout io.Writer, clk clock.PassiveClock) *cobra.Command {
	fl := newFlags()

	cmd := &cobra.Command{
		Use:   "reldate [TIMESTAMP...]",
		Short: "Describe timestamps relative to now",
		Long: `reldate prints human-relative labels such as "3 hours ago", "tomorrow" or
"a week" for timestamps. Past the relative window it falls back to a
calendar date rendered with a pattern such as "dd MMMM yyyy".

Usage:
  reldate 2024-01-13T20:00:00Z 1704873600
  kubectl get pods -o yaml | reldate

With arguments, one label is printed per argument. Without arguments, YAML
documents are read from stdin and every timestamp in them is annotated with
its label as a comment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(fl.configPath)
			if err != nil {
				return err
			}
			if err := fl.applyConfig(cmd.Flags(), cfg); err != nil {
				return err
			}

			opts, err := fl.options(clk, cfg)
			if err != nil {
				return err
			}
			klog.V(1).InfoS("resolved options",
				"now", opts.clock.Now(), "width", opts.format.Width,
				"pattern", opts.format.FallbackPattern, "endOfDay", opts.format.SnapToEndOfDay,
				"position", opts.position, "color", opts.color)

			if len(args) > 0 {
				return formatArgs(args, stdout, opts)
			}

			in, err := io.ReadAll(stdin)
			if err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			return run(in, stdout, opts)
		},
	}

	fl.register(cmd.Flags())

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	return cmd
}
