package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tabchart/internal/config"
	"tabchart/internal/errors"
	"tabchart/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSurvey(t *testing.T, dir string) string {
	t.Helper()
	gen := testkit.NewSurveyGenerator(testkit.DefaultSurveyConfig())
	path, err := testkit.WriteWorkbook(dir, "survey.xlsx", "Responses", gen.Headers(), testkit.Rows(gen.Generate()))
	require.NoError(t, err)
	return path
}

func execute(t *testing.T, args ...string) (string, int, error) {
	t.Helper()
	code := 0
	cmd := newRootCmd(config.Load(), &code)
	cmd.AddCommand(newColumnsCmd(config.Load()))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), code, err
}

func TestRootRequiresColumnOrAuto(t *testing.T) {
	_, _, err := execute(t, "--input", "whatever.xlsx")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestRootRejectsUnknownGraph(t *testing.T) {
	_, _, err := execute(t, "--auto", "--graph", "donut")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestRootAutoWritesCharts(t *testing.T) {
	dir := t.TempDir()
	input := writeSurvey(t, dir)
	outDir := filepath.Join(dir, "charts")

	out, code, err := execute(t, "--input", input, "--auto", "--graph", "pie", "--out-dir", outDir, "--dpi", "20")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	for _, name := range []string{"Region", "Plan", "Satisfaction"} {
		file := filepath.Join(outDir, name+".png")
		assert.Contains(t, out, "wrote: "+file)
		assert.FileExists(t, file)
	}

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "the date column gets no chart")
}

func TestRootMissingColumn(t *testing.T) {
	dir := t.TempDir()
	input := writeSurvey(t, dir)

	_, _, err := execute(t, "--input", input, "--column", "Nope", "--out-dir", dir)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeMissingColumn))
}

func TestColumnsCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeSurvey(t, dir)

	out, _, err := execute(t, "columns", "--input", input)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "COLUMN"))
	assert.Contains(t, lines[1], "temporal")
	assert.Contains(t, lines[2], "categorical")
}
