/*
Package suite is govox's fixture-based test runner, reachable from the
CLI as `govox test <pattern>`: it globs `.lox` scripts, runs each one,
and diffs captured stdout against an embedded `// expect: ...` comment
block.

Grounded on WojciechMazur-gazelle_cc/language/cc/resolve.go's
expandGlob (doublestar.Glob over os.DirFS with WithFilesOnly/
WithNoFollow) — a net-new feature not present in go-mix, the way a
real interpreter repo accumulates a testdata/-driven runner.
*/
package suite

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/govox-lang/govox/internal/eval"
	"github.com/govox-lang/govox/internal/parser"
	"github.com/govox-lang/govox/internal/session"
)

// Failure describes one fixture whose captured stdout did not match its
// embedded expectation (or that failed to parse/run at all).
type Failure struct {
	Path string
	Want string
	Got  string
	Err  error
}

// Report tallies the outcome of running a whole fixture suite.
type Report struct {
	Passed   int
	Failed   int
	Errored  int
	Failures []Failure
}

// OK reports whether every fixture in the suite passed.
func (r Report) OK() bool {
	return r.Failed == 0 && r.Errored == 0
}

// Run globs the current directory for pattern (e.g. "testdata/**/*.lox"),
// executes every matching fixture, and writes a one-line PASS/FAIL
// summary per fixture to w.
func Run(pattern string, w io.Writer) (Report, error) {
	fsys := os.DirFS(".")
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly(), doublestar.WithNoFollow())
	if err != nil {
		return Report{}, fmt.Errorf("suite: glob %q: %w", pattern, err)
	}

	var report Report
	for _, rel := range matches {
		want, got, runErr := runFixture(fsys, rel)
		switch {
		case runErr != nil:
			report.Errored++
			report.Failures = append(report.Failures, Failure{Path: rel, Want: want, Got: got, Err: runErr})
			fmt.Fprintf(w, "ERROR  %s: %v\n", rel, runErr)
		case want != got:
			report.Failed++
			report.Failures = append(report.Failures, Failure{Path: rel, Want: want, Got: got})
			fmt.Fprintf(w, "FAIL   %s\n", rel)
		default:
			report.Passed++
			fmt.Fprintf(w, "ok     %s\n", rel)
		}
	}
	return report, nil
}

// runFixture parses and interprets one fixture, returning its expected
// and actual stdout (and a non-nil error only on read or parse failure).
func runFixture(fsys fs.FS, path string) (want, got string, err error) {
	src, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", "", err
	}

	want = expectedOutput(string(src))

	p := parser.New(string(src))
	stmts := p.Parse()
	if p.HasErrors() {
		var msgs []string
		for _, e := range p.Errors() {
			msgs = append(msgs, e.Error())
		}
		return want, strings.Join(msgs, "\n"), fmt.Errorf("parse error in %s", path)
	}

	var stdout strings.Builder
	sess := session.New(io.Discard)
	ev := eval.New(sess, &stdout, io.Discard, nil)
	_ = ev.Interpret(stmts)

	got = strings.TrimRight(stdout.String(), "\n")
	return want, got, nil
}

// expectedOutput collects every `// expect: <text>` trailing comment in
// src, in source order, joined by newlines — the expected stdout for the
// fixture.
func expectedOutput(src string) string {
	const marker = "// expect: "
	var lines []string
	for _, line := range strings.Split(src, "\n") {
		idx := strings.Index(line, marker)
		if idx == -1 {
			continue
		}
		lines = append(lines, line[idx+len(marker):])
	}
	return strings.Join(lines, "\n")
}
