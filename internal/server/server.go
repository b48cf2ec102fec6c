/*
Package server implements govox's optional TCP multi-session REPL,
reachable from the CLI as `govox serve <port>`.

Grounded on go-mix/main/main.go's startServer/handleClient (net.Listen,
one REPL session per accepted connection), with its unmanaged
`go handleClient(conn)` replaced by an errgroup.Group so ctx cancellation
(e.g. the caller's SIGINT handling) drains in-flight sessions instead of
abandoning them mid-line — grounded on
jhump-protoreflect/protoresolve/converter.go's errgroup.WithContext
usage.
*/
package server

import (
	"context"
	"fmt"
	"io"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/govox-lang/govox/internal/config"
	"github.com/govox-lang/govox/internal/eval"
	"github.com/govox-lang/govox/internal/parser"
	"github.com/govox-lang/govox/internal/session"
)

// Serve listens on addr and runs one interpreter session per accepted
// TCP connection, each with its own Session/Evaluator/environment so
// concurrent clients never share state. It returns when ctx is canceled
// and every in-flight session has finished, or when a fatal listener
// error occurs.
func Serve(ctx context.Context, addr string, cfg config.Config) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", addr, err)
	}
	return ServeListener(ctx, ln, cfg)
}

// ServeListener runs the accept loop over an already-bound listener,
// split out from Serve so tests can bind an ephemeral port (":0") and
// learn its address before serving.
func ServeListener(ctx context.Context, ln net.Listener, cfg config.Config) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		return ln.Close()
	})

	for {
		conn, err := ln.Accept()
		if err != nil {
			if gctx.Err() != nil {
				break
			}
			return fmt.Errorf("server: accept: %w", err)
		}
		g.Go(func() error {
			handleConn(conn, cfg)
			return nil
		})
	}

	return g.Wait()
}

// handleConn runs one line-oriented REPL session over conn: each line
// received is parsed on its own and run by the connection's single
// Evaluator (so globals persist across lines), with output and
// diagnostics written back over the same connection.
func handleConn(conn net.Conn, cfg config.Config) {
	defer conn.Close()

	sess := session.New(conn)
	if len(cfg.RandSequence) > 0 {
		sess.RandSequence = cfg.RandSequence
	}
	ev := eval.New(sess, conn, conn, conn)

	buf := make([]byte, 0, 4096)
	scratch := make([]byte, 4096)
	fmt.Fprint(conn, cfg.Prompt)
	for {
		for {
			line, rest, ok := cutLine(buf)
			if !ok {
				break
			}
			buf = rest
			runLine(ev, sess, string(line), conn)
			fmt.Fprint(conn, cfg.Prompt)
		}

		n, err := conn.Read(scratch)
		if n > 0 {
			buf = append(buf, scratch[:n]...)
		}
		if err != nil {
			return
		}
	}
}

func runLine(ev *eval.Evaluator, sess *session.Session, line string, stderr io.Writer) {
	p := parser.New(line)
	stmts := p.Parse()
	if p.HasErrors() {
		sess.HadParseError = true
		for _, e := range p.Errors() {
			fmt.Fprintln(stderr, e.Error())
		}
		sess.Reset()
		return
	}
	_ = ev.Interpret(stmts)
	sess.Reset()
}

// cutLine splits buf on the first '\n', returning the line (without the
// newline, CR trimmed) and the remainder. ok is false when buf holds no
// complete line yet.
func cutLine(buf []byte) (line []byte, rest []byte, ok bool) {
	for i, b := range buf {
		if b == '\n' {
			end := i
			if end > 0 && buf[end-1] == '\r' {
				end--
			}
			return buf[:end], buf[i+1:], true
		}
	}
	return nil, buf, false
}
