package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kilianc/hlx/internal/hlx/config"
)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI against a throwaway config.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "hlx.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("color = false\n"), 0o644))
	t.Setenv(config.EnvVar, cfgPath)

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const page = "package page\n\nvar X = <p class=\"x\">hi @name</p>\n"

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.hlx"), page)
	writeFile(t, filepath.Join(dir, "sub", "other.hlx"), "package sub\n\nvar Y = <br/>\n")

	_, stderr, err := execute(t, "generate", "--root", dir, dir+"/...")
	require.NoError(t, err, stderr)

	out, err := os.ReadFile(filepath.Join(dir, "page.hlx.go"))
	require.NoError(t, err)
	assert.Contains(t, string(out), `var X = h.P(h.Class("x"), g.Raw("hi "), hlx.Insert(name))`)

	out, err = os.ReadFile(filepath.Join(dir, "sub", "other.hlx.go"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "var Y = h.Br()")
	assert.Contains(t, stderr, "written=2")

	_, stderr, err = execute(t, "generate", "--root", dir, dir+"/...")
	require.NoError(t, err)
	assert.Contains(t, stderr, "written=0", "second run leaves files alone")
}

func TestGenerate_DefaultCommandAndDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.hlx"), page)
	writeFile(t, filepath.Join(dir, "sub", "skipped.hlx"), page)

	_, stderr, err := execute(t, "--root", dir, "--dir", dir)
	require.NoError(t, err, stderr)

	assert.FileExists(t, filepath.Join(dir, "page.hlx.go"))
	assert.NoFileExists(t, filepath.Join(dir, "sub", "skipped.hlx.go"))

	_, _, err = execute(t, "generate", "--root", dir, "--dir", dir, "x.hlx")
	assert.ErrorContains(t, err, "cannot use --dir with positional paths")
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.hlx"), "package bad\n\nvar X = <div>\n")
	writeFile(t, filepath.Join(dir, "good.hlx"), page)

	_, stderr, err := execute(t, "generate", "--root", dir, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, err.Error(), "1 of 2 files")
	assert.Contains(t, stderr, "bad.hlx:3:9: element missing close tag")
	assert.Contains(t, stderr, "var X = <div>")

	assert.FileExists(t, filepath.Join(dir, "good.hlx.go"), "other files are still generated")
	assert.NoFileExists(t, filepath.Join(dir, "bad.hlx.go"))
}

func TestParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.hlx")
	writeFile(t, path, page)

	stdout, _, err := execute(t, "parse", "--json", path)
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &tree))
	assert.Equal(t, "TopLevel", tree["kind"])
	segs := tree["segments"].([]any)
	require.Len(t, segs, 3)
	assert.Equal(t, "Literal", segs[1].(map[string]any)["kind"])

	stdout, _, err = execute(t, "parse", path)
	require.NoError(t, err)
	var ytree map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &ytree))
	assert.Equal(t, "TopLevel", ytree["kind"])
	assert.True(t, strings.HasPrefix(stdout, "kind: TopLevel\n"), "keys are sorted")
}

func TestParse_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hlx")
	writeFile(t, path, "<p>@f(</p>")

	_, stderr, err := execute(t, "parse", path)
	require.Error(t, err)
	assert.Contains(t, stderr, "unterminated parentheses")
}

func TestTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.hlx")
	writeFile(t, path, "x := <b/>\n")

	stdout, _, err := execute(t, "tokens", path)
	require.NoError(t, err)
	assert.Equal(t, "\"x\"\n\" \"\n\":\"\n\"=\"\n\" \"\n\"<\"\n\"b\"\n\"/>\"\n\"\\n\"\n", stdout)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "hlx v"+Version)
}

func TestSetup_InvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "version", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}
