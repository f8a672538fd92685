/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"wordbook/internal/config"
	"wordbook/internal/console"
	"wordbook/internal/controller"
	applog "wordbook/internal/log"
)

type fixture struct {
	db    string
	state string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	applog.Discard()
	color.NoColor = true
	dir := t.TempDir()
	return fixture{db: filepath.Join(dir, "word_master.db"), state: filepath.Join(dir, "state")}
}

// run executes one CLI invocation with a fresh process-like setup.
func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c := newCLI(config.Defaults(), "", &console.Terminal{Out: &buf, In: strings.NewReader("")})
	root := newRootCmd(c)
	root.SetArgs(append([]string{"--db", f.db, "--state-dir", f.state}, args...))
	root.SetOut(&buf)
	root.SetErr(&buf)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func (f fixture) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := f.run(t, args...)
	if err != nil {
		t.Fatalf("wordbook %v: %v\n%s", args, err, out)
	}
	return out
}

func (f fixture) seed(t *testing.T) {
	t.Helper()
	f.mustRun(t, "init", f.db)
	f.mustRun(t, "add", "--name", "原子", "--yomi", "げんし", "--explain", "物質の単位", "--category", "物理", "--maker", "松下")
	f.mustRun(t, "add", "--name", "化学", "--yomi", "かがく", "--explain", "物質の学問", "--category", "化学")
	f.mustRun(t, "add", "--name", "藍", "--yomi", "あい", "--explain", "染料")
}

func TestMissingDatabaseIsReportedOnce(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "list")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if strings.Count(out, controller.MsgNoDatabase) != 1 {
		t.Fatalf("output = %q", out)
	}
	if _, err := os.Stat(f.db); !os.IsNotExist(err) {
		t.Fatalf("list must not create the database: %v", err)
	}
}

func TestAddValidationFailure(t *testing.T) {
	f := newFixture(t)
	f.mustRun(t, "init")
	out, err := f.run(t, "add", "--name", "原子")
	if !errors.Is(err, errReported) || !strings.Contains(out, "解説は必須項目です。") {
		t.Fatalf("err = %v, output = %q", err, out)
	}
}

func TestListFilters(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	out := f.mustRun(t, "list", "--all")
	for _, name := range []string{"原子", "化学", "藍"} {
		if !strings.Contains(out, name) {
			t.Fatalf("list --all misses %s: %q", name, out)
		}
	}

	out = f.mustRun(t, "list", "--row", "か")
	if !strings.Contains(out, "化学") || strings.Contains(out, "原子") || strings.Contains(out, "藍") {
		t.Fatalf("row か = %q", out)
	}
	// the filter is remembered by the next list
	if again := f.mustRun(t, "list"); again != out {
		t.Fatalf("saved filter not reused: %q vs %q", again, out)
	}

	out = f.mustRun(t, "list", "--tag", "松下")
	if !strings.Contains(out, "原子") || strings.Contains(out, "化学") || strings.Contains(out, "藍") {
		t.Fatalf("tag filter = %q", out)
	}

	out = f.mustRun(t, "list", "--row", "や")
	if !strings.Contains(out, controller.MsgEmptyRow("や")) {
		t.Fatalf("empty row = %q", out)
	}

	if _, err := f.run(t, "list", "--mode", "bogus"); err == nil {
		t.Fatalf("unknown mode accepted")
	}
}

func TestFlashcardCursorSurvivesInvocations(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	if out := f.mustRun(t, "card"); !strings.Contains(out, "原子") {
		t.Fatalf("first card = %q", out)
	}
	if out := f.mustRun(t, "next"); !strings.Contains(out, "化学") {
		t.Fatalf("second card = %q", out)
	}
	if out := f.mustRun(t, "next", "--hide-name"); !strings.Contains(out, "???") || strings.Contains(out, "藍") {
		t.Fatalf("masked third card = %q", out)
	}
	if out := f.mustRun(t, "next"); !strings.Contains(out, controller.MsgAtLast) {
		t.Fatalf("boundary = %q", out)
	}
	if out := f.mustRun(t, "prev"); !strings.Contains(out, "化学") {
		t.Fatalf("prev = %q", out)
	}
	if out := f.mustRun(t, "card", "藍"); !strings.Contains(out, "染料") {
		t.Fatalf("jump = %q", out)
	}
	if _, err := f.run(t, "card", "missing"); !errors.Is(err, errReported) {
		t.Fatalf("unknown card err = %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	f.mustRun(t, "update", "原子", "--explain", "元素の最小単位")
	out := f.mustRun(t, "show", "原子")
	if !strings.Contains(out, "元素の最小単位") || !strings.Contains(out, "げんし") {
		t.Fatalf("show after update = %q", out)
	}
	if _, err := f.run(t, "update", "原子"); err == nil {
		t.Fatalf("update without fields accepted")
	}

	// no input and no --yes: declined
	f.mustRun(t, "delete", "原子")
	if out := f.mustRun(t, "show", "原子"); strings.Contains(out, controller.MsgTermNotFound) {
		t.Fatalf("declined delete removed the term")
	}
	if out := f.mustRun(t, "delete", "原子", "--yes"); !strings.Contains(out, controller.MsgDeleted) {
		t.Fatalf("delete = %q", out)
	}
	if out := f.mustRun(t, "show", "原子"); !strings.Contains(out, controller.MsgTermNotFound) {
		t.Fatalf("show after delete = %q", out)
	}
}

func TestExportImportBundle(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	bundlePath := filepath.Join(t.TempDir(), "terms.json")
	f.mustRun(t, "export", "json", bundlePath)

	g := newFixture(t)
	g.mustRun(t, "init")
	out := g.mustRun(t, "import", bundlePath)
	if !strings.Contains(out, "追加 3") {
		t.Fatalf("import = %q", out)
	}
	out = g.mustRun(t, "import", bundlePath)
	if !strings.Contains(out, "スキップ 3") {
		t.Fatalf("second import = %q", out)
	}
	if out := g.mustRun(t, "stats"); !strings.Contains(out, "3") {
		t.Fatalf("stats = %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	f := newFixture(t)
	out := f.mustRun(t, "version", "-o", "json")
	if !strings.Contains(out, "dev") {
		t.Fatalf("version = %q", out)
	}
}

func TestConfigShowMarksEnvironmentOverrides(t *testing.T) {
	f := newFixture(t)
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv(config.EnvFontPath, "/fonts/ipaexg.ttf")
	t.Setenv(config.EnvLogFile, "")
	out := f.mustRun(t, "config", "show")
	if !strings.Contains(out, "# export.font_path is set by "+config.EnvFontPath) {
		t.Fatalf("override not marked: %q", out)
	}
	if strings.Contains(out, "logging.file is set by") {
		t.Fatalf("empty variable marked as override: %q", out)
	}
	if !strings.Contains(out, "driver: sqlite") {
		t.Fatalf("config body missing: %q", out)
	}
}

func TestNumericNamesResolveByName(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	f.mustRun(t, "add", "--name", "1984", "--explain", "小説")

	f.mustRun(t, "update", "1984", "--explain", "オーウェルの小説")
	if out := f.mustRun(t, "show", "1984"); !strings.Contains(out, "オーウェルの小説") {
		t.Fatalf("show after update = %q", out)
	}
	f.mustRun(t, "update", "2", "--explain", "idで更新")
	if out := f.mustRun(t, "show", "化学"); !strings.Contains(out, "idで更新") {
		t.Fatalf("id lookup should win for existing ids: %q", out)
	}
	if out := f.mustRun(t, "delete", "1984", "--yes"); !strings.Contains(out, controller.MsgDeleted) {
		t.Fatalf("delete = %q", out)
	}
	if out := f.mustRun(t, "show", "1984"); !strings.Contains(out, controller.MsgTermNotFound) {
		t.Fatalf("show after delete = %q", out)
	}
}
