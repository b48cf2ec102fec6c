package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/govox-lang/govox/internal/parser"
	"github.com/govox-lang/govox/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run parses and interprets src, returning captured stdout/stderr, the
// *Evaluator (for Session inspection), and any error Interpret returned.
func run(t *testing.T, src, stdin string) (string, string, *Evaluator, error) {
	t.Helper()
	p := parser.New(src)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %v", p.Errors())

	var stdout, stderr bytes.Buffer
	sess := session.New(nil)
	ev := New(sess, &stdout, &stderr, strings.NewReader(stdin))
	err := ev.Interpret(stmts)
	return stdout.String(), stderr.String(), ev, err
}

func TestInterpret_ArithmeticPrecedence(t *testing.T) {
	out, _, _, err := run(t, `print 1 + 2 * 3;`, "")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestInterpret_StringConcatenation(t *testing.T) {
	out, _, _, err := run(t, `var x = 10; var y = 5; print "Sum: " + (x + y);`, "")
	require.NoError(t, err)
	assert.Equal(t, "Sum: 15\n", out)
}

func TestInterpret_FunctionCall(t *testing.T) {
	out, _, _, err := run(t, `fun mul(a,b){ return a*b; } print mul(4,5);`, "")
	require.NoError(t, err)
	assert.Equal(t, "20\n", out)
}

func TestInterpret_WhileLoop(t *testing.T) {
	out, _, _, err := run(t, `var c = 3; while (c > 0) { print c; c = c - 1; }`, "")
	require.NoError(t, err)
	assert.Equal(t, "3\n2\n1\n", out)
}

func TestInterpret_StringLoopAndPrintOnly(t *testing.T) {
	out, _, _, err := run(t, `loop (var ch in "abc") { printonly ch; } print "";`, "")
	require.NoError(t, err)
	assert.Equal(t, "abc\n", out)
}

func TestInterpret_AddingNumberAndStringIsRuntimeError(t *testing.T) {
	_, errOut, ev, err := run(t, `print 1 + "a";`, "")
	require.Error(t, err)
	assert.True(t, ev.Session.HadRuntimeError)
	assert.Contains(t, errOut, "Operands must be two numbers or two strings.")
	assert.Contains(t, errOut, "[line 1]")
}

func TestInterpret_ClosureCounterIncrementsAcrossCalls(t *testing.T) {
	out, _, _, err := run(t, `
		fun makeCounter() {
			var i = 0;
			fun c() {
				i = i + 1;
				return i;
			}
			return c;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestInterpret_TwoIndependentCountersDoNotShareState(t *testing.T) {
	out, _, _, err := run(t, `
		fun makeCounter() {
			var i = 0;
			fun c() { i = i + 1; return i; }
			return c;
		}
		var a = makeCounter();
		var b = makeCounter();
		print a();
		print a();
		print b();
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n1\n", out)
}

func TestInterpret_BlockVarShadowingDoesNotMutateOuter(t *testing.T) {
	out, _, _, err := run(t, `var x = 1; { var x = x + 1; } print x;`, "")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestInterpret_BlockAssignmentMutatesOuter(t *testing.T) {
	out, _, _, err := run(t, `var x = 1; { x = x + 1; } print x;`, "")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestInterpret_DoubleNegationMatchesTruthiness(t *testing.T) {
	out, _, _, err := run(t, `
		print !(!true);
		print !(!false);
		print !(!nil);
		print !(!0);
		print !(!"");
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "true\nfalse\nfalse\ntrue\ntrue\n", out)
}

func TestInterpret_LogicalOperatorsReturnOperandValueNotCoercedBool(t *testing.T) {
	out, _, _, err := run(t, `
		print nil or "fallback";
		print "first" or "second";
		print "left" and "right";
		print nil and "unreached";
	`, "")
	require.NoError(t, err)
	assert.Equal(t, "fallback\nfirst\nright\nnil\n", out)
}

func TestInterpret_UndefinedVariableIsRuntimeError(t *testing.T) {
	_, errOut, ev, err := run(t, `print missing;`, "")
	require.Error(t, err)
	assert.True(t, ev.Session.HadRuntimeError)
	assert.Contains(t, errOut, "Undefined variable 'missing'.")
}

func TestInterpret_StringLoopOverNonStringIsRuntimeError(t *testing.T) {
	_, errOut, _, err := run(t, `loop (var ch in 5) { print ch; }`, "")
	require.Error(t, err)
	assert.Contains(t, errOut, "String loop can only iterate over strings.")
}

func TestInterpret_CallArityMismatchReportsExpectedAndGot(t *testing.T) {
	_, errOut, _, err := run(t, `fun f(a,b){ return a+b; } print f(1);`, "")
	require.Error(t, err)
	assert.Contains(t, errOut, "Expected 2 arguments but got 1.")
}

func TestInterpret_CallingNonCallableIsRuntimeError(t *testing.T) {
	_, errOut, _, err := run(t, `var x = 1; print x();`, "")
	require.Error(t, err)
	assert.Contains(t, errOut, "Can only call functions and classes.")
}

func TestInterpret_SymbolEvaluatesToColonPrefixedString(t *testing.T) {
	out, _, _, err := run(t, `print :foo;`, "")
	require.NoError(t, err)
	assert.Equal(t, ":foo\n", out)
}

func TestInterpret_SymbolEqualityIsStringEquality(t *testing.T) {
	out, _, _, err := run(t, `print :foo == :foo;`, "")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestInterpret_ReadPromptsAndTrimsInput(t *testing.T) {
	out, _, _, err := run(t, `var name = read; print name;`, "  Ada  \n")
	require.NoError(t, err)
	assert.Contains(t, out, "input required > ")
	assert.Contains(t, out, "Ada\n")
}

func TestInterpret_ReadAtEOFYieldsEmptyString(t *testing.T) {
	out, _, _, err := run(t, `var name = read; print name;`, "")
	require.NoError(t, err)
	assert.Contains(t, out, "\n")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestInterpret_RandSequenceIsDeterministicAndWraps(t *testing.T) {
	_, _, ev, err := run(t, `var a = 1;`, "")
	require.NoError(t, err)

	want := append([]float64{}, ev.Session.RandSequence...)
	require.Len(t, want, 12)
	for i, w := range want {
		got := ev.Session.NextRand()
		assert.Equal(t, w, got, "draw %d", i)
	}
	// thirteenth draw wraps back to the first value.
	assert.Equal(t, want[0], ev.Session.NextRand())
}

func TestInterpret_ForLoopDesugarsToCountingLoop(t *testing.T) {
	out, _, _, err := run(t, `for (var i = 0; i < 3; i = i + 1) { print i; }`, "")
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}
