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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/clock"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/ahmetb/reldate/internal/timeutil"
)

func execute(t *testing.T, clk clock.PassiveClock, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, clk)
	cmd.SetArgs(append([]string{"--color=never"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	clk := testingclock.NewFakePassiveClock(e2eNow)

	cases := []struct {
		name     string
		args     []string
		errFunc  require.ErrorAssertionFunc
		expected string
	}{
		{
			name:     "single argument",
			args:     []string{"--width=wide", "2024-01-13T20:00:00Z"},
			errFunc:  require.NoError,
			expected: "2 days\n",
		},
		{
			name:     "narrow fallback",
			args:     []string{"--width=narrow", "2023-12-01T10:00:00Z"},
			errFunc:  require.NoError,
			expected: "01 Dec. 2023\n",
		},
		{
			name:     "pattern flag",
			args:     []string{"-p", "MM/dd/yyyy", "2023-12-01T10:00:00Z"},
			errFunc:  require.NoError,
			expected: "12/01/2023\n",
		},
		{
			name:     "end of day",
			args:     []string{"--end-of-day", "2024-01-10T01:00:00Z"},
			errFunc:  require.NoError,
			expected: "15 hours\n",
		},
		{
			name:     "invalid argument is not fatal",
			args:     []string{"garbage"},
			errFunc:  require.NoError,
			expected: "Invalid date\n",
		},
		{
			name:     "strict",
			args:     []string{"--strict", "garbage"},
			errFunc:  require.Error,
			expected: "Invalid date\n",
		},
		{
			name:    "bad width",
			args:    []string{"--width=huge", "2024-01-10T08:00:00Z"},
			errFunc: require.Error,
		},
		{
			name:    "bad position",
			args:    []string{"--position=below"},
			errFunc: require.Error,
		},
		{
			name:    "bad now",
			args:    []string{"--now=yesterday", "2024-01-10T08:00:00Z"},
			errFunc: require.Error,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, clk, "", tc.args...)
			tc.errFunc(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestRootCmd_NowFlag(t *testing.T) {
	out, err := execute(t, clock.RealClock{}, "", "--now=2024-01-10T08:00:00Z", "2024-01-10T05:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "3 hours ago\n", out)

	out, err = execute(t, clock.RealClock{}, "", "--now=1704873600", "2024-01-10T05:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "3 hours ago\n", out)
}

func TestRootCmd_Stdin(t *testing.T) {
	in, err := os.ReadFile(filepath.Join("testdata", "e2e", "job.yaml"))
	require.NoError(t, err)
	expected, err := os.ReadFile(filepath.Join("testdata", "e2e", "job_inline.out"))
	require.NoError(t, err)

	out, err := execute(t, testingclock.NewFakePassiveClock(e2eNow), string(in), "--width=wide")
	require.NoError(t, err)
	assert.Equal(t, string(expected), out)
}

func TestRootCmd_StdinInvalid(t *testing.T) {
	_, err := execute(t, testingclock.NewFakePassiveClock(e2eNow), ":\n  - :\n    -\n")
	require.ErrorContains(t, err, "error parsing input")
}

func TestRootCmd_Config(t *testing.T) {
	clk := testingclock.NewFakePassiveClock(e2eNow)
	path := writeConfig(t, `width: narrow
narrowPattern: dd/MM/yy
keys: [created]
`)

	out, err := execute(t, clk, "", "--config", path, "2023-12-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "01/12/23\n", out)

	out, err = execute(t, clk, "", "--config", path, "--width=wide", "2023-12-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "01 December 2023\n", out, "flags win over the config file")

	out, err = execute(t, clk, "created: 1704862800\nupdated: \"2024-01-10T07:00:00Z\"\n", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "created: 1704862800  # 3 hours ago\nupdated: \"2024-01-10T07:00:00Z\"\n", out)
}

func TestRootCmd_ConfigEnv(t *testing.T) {
	t.Setenv(configEnv, writeConfig(t, "pattern: yyyy\n"))

	out, err := execute(t, testingclock.NewFakePassiveClock(e2eNow), "", "2020-05-05T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2020\n", out)
}

func TestRootCmd_ConfigInvalidValue(t *testing.T) {
	path := writeConfig(t, "position: sideways\n")
	_, err := execute(t, testingclock.NewFakePassiveClock(e2eNow), "", "--config", path, "2024-01-10T08:00:00Z")
	require.ErrorContains(t, err, "--position")
}

func TestResolveWidth(t *testing.T) {
	cols := func(n int) func() int { return func() int { return n } }

	w, err := resolveWidth("auto", cols(80))
	require.NoError(t, err)
	assert.Equal(t, timeutil.WidthNarrow, w)

	w, err = resolveWidth("auto", cols(200))
	require.NoError(t, err)
	assert.Equal(t, timeutil.WidthWide, w)

	w, err = resolveWidth("auto", cols(0))
	require.NoError(t, err)
	assert.Equal(t, timeutil.WidthWide, w, "not a terminal")

	w, err = resolveWidth("narrow", cols(200))
	require.NoError(t, err)
	assert.Equal(t, timeutil.WidthNarrow, w)
}

func TestEnumValue(t *testing.T) {
	v := newEnumValue("auto", "auto", "always", "never")
	assert.Equal(t, "auto", v.String())
	require.NoError(t, v.Set("never"))
	assert.Equal(t, "never", v.String())
	require.ErrorContains(t, v.Set("sometimes"), "auto|always|never")
	assert.Equal(t, "never", v.String())
}

func TestFixedClock(t *testing.T) {
	c := fixedClock{t: e2eNow}
	assert.Equal(t, e2eNow, c.Now())
	assert.Equal(t, time.Hour, c.Since(e2eNow.Add(-time.Hour)))
}
