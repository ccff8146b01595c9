package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/safestr/pkg/core/config"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const passingScript = `name: passing
initial: "Hello World!"
steps:
  - op: insert_char
    index: 5
    char: ","
  - op: expect
    text: "Hello, World!"
`

const failingScript = `name: failing
steps:
  - op: pop_back
`

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "safestr v")
	assert.Contains(t, stdout, "Go Version:")
}

func TestVersion_IgnoresBrokenConfig(t *testing.T) {
	stdout, _, err := execute(t, "--config", "/nonexistent/config.toml", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Library:")
}

func TestDemo(t *testing.T) {
	stdout, _, err := execute(t, "demo", "basic")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"Hello, Safe World!"`)
	assert.NotContains(t, stdout, "Formatting")
}

func TestDemo_List(t *testing.T) {
	stdout, _, err := execute(t, "demo", "--list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "manipulation")
	assert.Contains(t, stdout, "Safe Copying")
}

func TestDemo_UnknownSection(t *testing.T) {
	_, _, err := execute(t, "demo", "bogus")
	assert.ErrorContains(t, err, "unknown section")
}

func TestOps(t *testing.T) {
	stdout, _, err := execute(t, "ops")
	require.NoError(t, err)
	assert.Contains(t, stdout, "insert_cstr")
	assert.Contains(t, stdout, "index,text")
	assert.Contains(t, stdout, "expect")
}

func TestRun_Passing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.yaml", passingScript)

	stdout, _, err := execute(t, "run", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "PASS")
	assert.Contains(t, stdout, "1 scripts, 0 failed")
}

func TestRun_Failing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", failingScript)

	stdout, _, err := execute(t, "run", path)
	assert.ErrorIs(t, err, errFailures)
	assert.Contains(t, stdout, "FAIL")
	assert.Contains(t, stdout, "want Success")
	assert.Contains(t, stdout, "1 scripts, 1 failed")
}

func TestRun_ScriptsDirFromConfig(t *testing.T) {
	dir := t.TempDir()
	scripts := filepath.Join(dir, "scripts")
	require.NoError(t, os.Mkdir(scripts, 0755))
	writeFile(t, scripts, "a.yaml", passingScript)
	writeFile(t, scripts, "b.yml", passingScript)
	cfg := writeFile(t, dir, "safestr.toml", "[scripts]\ndir = \""+filepath.ToSlash(scripts)+"\"\n")

	stdout, _, err := execute(t, "--config", cfg, "run", "-v")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 scripts, 0 failed")
	assert.Contains(t, stdout, "insert_char")
}

func TestRun_EmptyDir(t *testing.T) {
	empty := t.TempDir()
	cfg := writeFile(t, t.TempDir(), "safestr.yaml", "scripts:\n  dir: "+filepath.ToSlash(empty)+"\n")

	_, _, err := execute(t, "--config", cfg, "run")
	assert.ErrorContains(t, err, "no scripts found")
}

func TestRun_LimitFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "safestr.toml", "[limits]\nmax_capacity = 64\n")
	path := writeFile(t, dir, "limit.yaml", `steps:
  - op: reserve
    size: 65
    want: OutOfMemory
`)

	_, _, err := execute(t, "--config", cfg, "run", path)
	require.NoError(t, err)
}

func TestRun_Logging(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.yaml", passingScript)

	_, stderr, err := execute(t, "--log-level", "debug", "run", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"step passed"`)
	assert.Contains(t, stderr, `"service":"safestr"`)
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := execute(t, "--log-level", "loud", "demo")
	assert.ErrorContains(t, err, "logging.level")

	_, _, err = execute(t, "--log-format", "xml", "demo")
	assert.ErrorContains(t, err, "logging.format")

	_, _, err = execute(t, "--config", "/nonexistent/config.toml", "demo")
	assert.Error(t, err)
}
