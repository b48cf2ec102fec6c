package suite

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the process into dir for the duration of the test and
// restores the original working directory on cleanup. Run globs relative
// to os.DirFS("."), so fixtures under a temp dir need a real chdir.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}

func writeFixture(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func TestRun_PassingFixturePassesAndMatchesExpectedOutput(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "add.lox", `
print 1 + 2; // expect: 3
print "a" + "b"; // expect: ab
`)
	chdir(t, dir)

	var out bytes.Buffer
	report, err := Run("*.lox", &out)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Passed)
	assert.True(t, report.OK())
	assert.Contains(t, out.String(), "ok     add.lox")
}

func TestRun_FailingFixtureReportsFail(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "wrong.lox", `
print 1 + 2; // expect: 4
`)
	chdir(t, dir)

	var out bytes.Buffer
	report, err := Run("*.lox", &out)
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)
	require.False(t, report.OK())
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "4", report.Failures[0].Want)
	assert.Equal(t, "3", report.Failures[0].Got)
	assert.Contains(t, out.String(), "FAIL   wrong.lox")
}

func TestRun_ParseErrorFixtureCountsAsErrored(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "broken.lox", `
var = ; // expect: anything
`)
	chdir(t, dir)

	var out bytes.Buffer
	report, err := Run("*.lox", &out)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Errored)
	assert.False(t, report.OK())
	require.Len(t, report.Failures, 1)
	assert.Error(t, report.Failures[0].Err)
}

func TestRun_GlobMatchesAcrossSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeFixture(t, filepath.Join(dir, "nested"), "loop.lox", `
loop (var c in "hi") {
    printonly c;
}
// expect: hi
`)
	chdir(t, dir)

	var out bytes.Buffer
	report, err := Run("**/*.lox", &out)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Passed)
	assert.True(t, report.OK())
}

func TestRun_NoMatchesIsAnEmptyCleanReport(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	var out bytes.Buffer
	report, err := Run("*.lox", &out)
	require.NoError(t, err)
	assert.Equal(t, Report{}, report)
}
