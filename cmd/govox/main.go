/*
Command govox is the entry point for the govox interpreter. It provides
three invocation shapes:

	govox                 interactive REPL
	govox PATH             run a file in the default "parse" phase
	govox PHASE PATH       PHASE is "scan" or "parse"

plus two additions beyond that closed surface:

	govox serve PORT       TCP multi-session REPL server
	govox test PATTERN     run the .lox fixture suite

Grounded on go-mix/main/main.go's arg-dispatch structure (flag args,
file mode, server mode), trimmed to an exact exit-code and phase
contract and extended with the serve/test subcommands.
*/
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/govox-lang/govox/internal/config"
	"github.com/govox-lang/govox/internal/eval"
	"github.com/govox-lang/govox/internal/lexer"
	"github.com/govox-lang/govox/internal/parser"
	"github.com/govox-lang/govox/internal/printer"
	"github.com/govox-lang/govox/internal/repl"
	"github.com/govox-lang/govox/internal/server"
	"github.com/govox-lang/govox/internal/session"
	"github.com/govox-lang/govox/internal/suite"
)

var redColor = color.New(color.FgRed)

const configPath = "govoxrc.json"

// Exit codes: 0 success, 64 bad usage, 65 parse/data error, 70 runtime
// error — the conventional sysexits.h values.
const (
	exitOK        = 0
	exitUsage     = 64
	exitDataError = 65
	exitRuntime   = 70
)

func main() {
	args := os.Args[1:]
	debug := false
	args = stripDebugFlag(args, &debug)

	cfg, err := config.Load(configPath)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[config error] %v\n", err)
		os.Exit(exitUsage)
	}
	cfg.Debug = cfg.Debug || debug

	switch len(args) {
	case 0:
		os.Exit(runREPL(cfg))
	case 1:
		if args[0] == "serve" || args[0] == "test" {
			redColor.Fprintln(os.Stderr, "[usage error] missing argument")
			os.Exit(exitUsage)
		}
		os.Exit(runFile("parse", args[0], cfg))
	case 2:
		switch args[0] {
		case "serve":
			os.Exit(runServe(args[1], cfg))
		case "test":
			os.Exit(runTest(args[1]))
		case "scan", "parse":
			os.Exit(runFile(args[0], args[1], cfg))
		default:
			redColor.Fprintf(os.Stderr, "[usage error] unknown phase %q\n", args[0])
			os.Exit(exitUsage)
		}
	default:
		redColor.Fprintln(os.Stderr, "[usage error] too many arguments")
		os.Exit(exitUsage)
	}
}

// stripDebugFlag removes a "-debug" flag from args wherever it appears
// and reports whether it was present.
func stripDebugFlag(args []string, debug *bool) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "-debug" {
			*debug = true
			continue
		}
		out = append(out, a)
	}
	return out
}

func newLogger(cfg config.Config) *log.Logger {
	if !cfg.Debug {
		return log.New(os.Stderr, "", 0)
	}
	return log.New(os.Stderr, "[govox] ", log.Ltime|log.Lmicroseconds)
}

func runREPL(cfg config.Config) int {
	r := repl.New(cfg.Prompt, cfg.Color)
	if err := r.Run(os.Stdin, os.Stdout, os.Stderr); err != nil {
		redColor.Fprintf(os.Stderr, "[repl error] %v\n", err)
		return exitDataError
	}
	return exitOK
}

func runFile(phase, path string, cfg config.Config) int {
	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[file error] could not read %q: %v\n", path, err)
		return exitUsage
	}

	if phase == "scan" {
		return runScan(string(src))
	}
	return runParse(string(src), cfg)
}

// runScan prints one token per line. Lex errors are reported to stderr
// but never change the exit code: scanning is diagnostic-only, so a
// malformed token still lets the rest of the file scan.
func runScan(src string) int {
	lx := lexer.New(src)
	tokens, errs := lx.Scan()
	for _, tok := range tokens {
		fmt.Println(tok.String())
	}
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	return exitOK
}

func runParse(src string, cfg config.Config) int {
	p := parser.New(src)
	stmts := p.Parse()
	if p.HasErrors() {
		for _, e := range p.Errors() {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return exitDataError
	}

	sess := session.New(os.Stderr)
	sess.Debug = cfg.Debug
	sess.Logger = newLogger(cfg)
	if len(cfg.RandSequence) > 0 {
		sess.RandSequence = cfg.RandSequence
	}
	if sess.Debug {
		sess.Logger.Print(printer.Program(stmts))
	}
	ev := eval.New(sess, os.Stdout, os.Stderr, os.Stdin)

	if err := ev.Interpret(stmts); err != nil {
		return exitRuntime
	}
	return exitOK
}

func runServe(port string, cfg config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	addr := ":" + port
	fmt.Fprintf(os.Stdout, "govox server listening on %s\n", addr)
	if err := server.Serve(ctx, addr, cfg); err != nil {
		redColor.Fprintf(os.Stderr, "[server error] %v\n", err)
		return exitUsage
	}
	return exitOK
}

func runTest(pattern string) int {
	report, err := suite.Run(pattern, os.Stdout)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[suite error] %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "%d passed, %d failed, %d errored\n", report.Passed, report.Failed, report.Errored)
	if !report.OK() {
		return 1
	}
	return 0
}
