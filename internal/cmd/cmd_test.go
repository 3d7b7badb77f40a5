package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs a fresh root command with args and returns captured output
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandContext(context.Background(), t, args...)
}

func executeCommandContext(ctx context.Context, t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"--log-level", "error", "--config", emptyConfig(t)}, args...))
	err := root.ExecuteContext(ctx)
	return buf.String(), err
}

func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))
	return path
}

func writeTable(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	assert.Equal(t, "tableparser", root.Use)

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"detect", "split", "convert", "watch", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestDetectCommandJSON(t *testing.T) {
	t.Parallel()

	path := writeTable(t, "prices.csv", "item,price\napple,1.25\npear,0.75\n")
	out, err := executeCommand(t, "detect", "--format", "json", path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, ",", got["delimiter"])
	assert.Equal(t, float64(2), got["columns"])
	assert.Equal(t, path, got["source"])
}

func TestDetectCommandText(t *testing.T) {
	t.Parallel()

	a := writeTable(t, "a.tsv", "x\ty\n1\t2\n")
	b := writeTable(t, "b.txt", "alpha\nbeta\n")
	out, err := executeCommand(t, "detect", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, a)
	assert.Contains(t, out, "tab")
	assert.Contains(t, out, b)
	assert.Contains(t, out, "no_delimiter (0)")
}

func TestDetectCommandErrors(t *testing.T) {
	t.Parallel()

	good := writeTable(t, "ok.csv", "a,b\n")
	_, err := executeCommand(t, "detect", filepath.Join(t.TempDir(), "missing.csv"), good)
	assert.Error(t, err)

	_, err = executeCommand(t, "detect", "--format", "xml", good)
	assert.Error(t, err)

	_, err = executeCommand(t, "detect")
	assert.Error(t, err)
}

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	path := writeTable(t, "people.txt", "name;age\nada;36\ngrace;85\n")
	out, err := executeCommand(t, "split", "--out-delimiter", "|", path)
	require.NoError(t, err)
	assert.Equal(t, "name|age\nada|36\ngrace|85\n", out)
}

func TestSplitCommandManualDelimiter(t *testing.T) {
	t.Parallel()

	path := writeTable(t, "log.txt", "a::b::c\nd::e::f::g\n")
	out, err := executeCommand(t, "split", "-d", "::", path)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\tc\nd\te\tf::g\n", out)

	short := writeTable(t, "short.txt", "a::b\nc\n")
	_, err = executeCommand(t, "split", "-d", "::", short)
	assert.Error(t, err)
}

func TestConvertCommand(t *testing.T) {
	t.Parallel()

	path := writeTable(t, "in.txt", "city;note\nparis;big, old\nrome;eternal\n")

	out, err := executeCommand(t, "convert", "--out-delimiter", ",", path)
	require.NoError(t, err)
	assert.Equal(t, "city,note\nparis,\"big, old\"\nrome,eternal\n", out)

	out, err = executeCommand(t, "convert", "-d", ";", "--out-delimiter", ",", "--crlf", path)
	require.NoError(t, err)
	assert.Equal(t, "city,note\r\nparis,\"big, old\"\r\nrome,eternal\r\n", out)
}

func TestConvertCommandStreamError(t *testing.T) {
	t.Parallel()

	path := writeTable(t, "bad.txt", "a;b\nc\n")
	_, err := executeCommand(t, "convert", "-d", ";", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestMetricsTextfile(t *testing.T) {
	t.Parallel()

	path := writeTable(t, "m.csv", "a,b\nc,d\n")
	prom := filepath.Join(t.TempDir(), "tableparser.prom")
	_, err := executeCommand(t, "--metrics-textfile", prom, "detect", path)
	require.NoError(t, err)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tableparser_detections_total{status="single_delimiter"} 1`)
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	cfg := writeTable(t, "config.yaml", "output:\n  format: yaml\n")
	path := writeTable(t, "t.csv", "a|b\nc|d\n")

	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"--log-level", "error", "--config", cfg, "detect", path})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "delimiter_name: '|'")
}

func TestWatchCommandStopsOnCancel(t *testing.T) {
	t.Parallel()

	path := writeTable(t, "w.csv", "a,b\nc,d\n")
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, err := executeCommandContext(ctx, t, "watch", "--format", "json", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
	assert.Contains(t, out, `"delimiter": ","`)
}

func TestMixedCaseLogLevel(t *testing.T) {
	t.Parallel()

	path := writeTable(t, "lvl.csv", "a,b\nc,d\n")
	_, err := executeCommand(t, "--log-level", "Warn", "detect", path)
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tableparser "+Version)
}
