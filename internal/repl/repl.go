/*
Package repl implements govox's interactive prompt loop: no
command-line arguments means print "> ", read a line, run it, clear the
error flags, and repeat until EOF.

Grounded on go-mix/repl/repl.go's Repl.Start/executeWithRecovery
structure: readline for line editing/history, fatih/color for red/yellow
error/result coloring, and a panic/recover safety net around each line's
evaluation so one bad line never kills the session. Narrowed to drop
go-mix's banner/`.exit`/server wiring, which have no counterpart in
govox's three CLI invocation shapes.
*/
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/govox-lang/govox/internal/eval"
	"github.com/govox-lang/govox/internal/parser"
	"github.com/govox-lang/govox/internal/session"
)

var redColor = color.New(color.FgRed)

// REPL is one interactive session: a single Evaluator (and therefore a
// single global environment and Session) persists across lines, so a
// variable defined on one line is visible on the next.
type REPL struct {
	Prompt string
	Color  bool
}

// New creates a REPL that prints prompt before each line.
func New(prompt string, useColor bool) *REPL {
	return &REPL{Prompt: prompt, Color: useColor}
}

// Run drives the loop until EOF (e.g. Ctrl+D), returning once the
// session ends. Each line gets a fresh parse; the Evaluator and its
// global environment persist across the whole Run call. stdin feeds the
// evaluator's `read` literal; readline itself always drives the
// terminal directly, exactly as go-mix/repl/repl.go's Start does.
func (r *REPL) Run(stdin io.Reader, stdout, stderr io.Writer) error {
	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	sess := session.New(stderr)
	ev := eval.New(sess, stdout, stderr, stdin)

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)

		r.runLine(ev, sess, line, stderr)
	}
}

// runLine parses and evaluates one line, recovering from any panic so a
// single malformed line can't take down the interactive session.
func (r *REPL) runLine(ev *eval.Evaluator, sess *session.Session, line string, stderr io.Writer) {
	defer func() {
		if rec := recover(); rec != nil {
			r.colorFprintf(redColor, stderr, "[error] %v\n", rec)
		}
		sess.Reset()
	}()

	p := parser.New(line)
	stmts := p.Parse()
	if p.HasErrors() {
		sess.HadParseError = true
		for _, e := range p.Errors() {
			r.colorFprintf(redColor, stderr, "%s\n", e)
		}
		return
	}

	if err := ev.Interpret(stmts); err != nil {
		// The evaluator already wrote the diagnostic to stderr; nothing
		// further to report here.
		return
	}
}

func (r *REPL) colorFprintf(c *color.Color, w io.Writer, format string, args ...interface{}) {
	if r.Color {
		c.Fprintf(w, format, args...)
		return
	}
	fmt.Fprintf(w, format, args...)
}
