/*
Package session holds the per-run state that must NOT be a
package-level global: the had-parse-error/had-runtime-error flags, the
`rand` cursor and backing sequence, and a debug switch, so that two
govox interpreters can run in the same process (one per test, one per
REPL connection) without racing on shared state.

Grounded on go-mix/eval/evaluator.go, which already threads a Writer and
Reader through its Evaluator instead of reaching for os.Stdout/os.Stdin
directly — this package extends the same discipline to the flags and
the rand cursor. Logger usage is grounded on
WojciechMazur-gazelle_cc/language/cc/config.go's log.Printf diagnostics.
*/
package session

import (
	"io"
	"log"
)

// Session is the explicit, non-global host object one govox run (one
// CLI invocation, one REPL connection, one fixture test) owns for its
// whole lifetime.
type Session struct {
	// HadParseError/HadRuntimeError record whether the current evaluation
	// hit a parse or runtime error. The CLI's exit codes (65, 70) come from
	// the parser's error list and Interpret's returned error instead.
	HadParseError   bool
	HadRuntimeError bool

	// RandSequence backs the deterministic `rand`/`!!` literal: a
	// configured, repeatable sequence rather than real entropy, so
	// fixture tests stay deterministic. RandCursor is the index of the
	// next value to hand out, wrapping around once the sequence is
	// exhausted.
	RandSequence []float64
	RandCursor   int

	// Debug enables the CLI's -debug flag: echo the AST pretty-print
	// before evaluating.
	Debug bool

	Logger *log.Logger
}

// DefaultRandSequence is the fixed sequence `rand` replays
// deterministically: its first twelve draws equal this slice exactly,
// with the thirteenth wrapping back to 57.
var DefaultRandSequence = []float64{57, 97, 28, 7, 71, 1, 79, 83, 64, 82, 89, 24}

// New creates a Session seeded with DefaultRandSequence and a logger
// writing to w (io.Discard silences it entirely).
func New(w io.Writer) *Session {
	if w == nil {
		w = io.Discard
	}
	seq := make([]float64, len(DefaultRandSequence))
	copy(seq, DefaultRandSequence)
	return &Session{
		RandSequence: seq,
		Logger:       log.New(w, "", 0),
	}
}

// NextRand returns the next value in RandSequence, advancing and
// wrapping the cursor. Called once per `rand`/`!!` literal evaluated.
func (s *Session) NextRand() float64 {
	if len(s.RandSequence) == 0 {
		return 0
	}
	v := s.RandSequence[s.RandCursor%len(s.RandSequence)]
	s.RandCursor++
	return v
}

// Reset clears the per-evaluation error flags, called once per REPL or
// server line so earlier failures don't leak into the next one.
func (s *Session) Reset() {
	s.HadParseError = false
	s.HadRuntimeError = false
}
