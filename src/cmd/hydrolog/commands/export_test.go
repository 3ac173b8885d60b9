// FILE: hydrolog/src/cmd/hydrolog/commands/export_test.go
package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hydrolog/src/internal/config"
	"hydrolog/src/internal/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand_Chronological(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", sensorFile("2024-01-15", "Acme", "02:00:00\tA1", "02:00:02\tA2"))
	writeFile(t, dir, "b.txt", sensorFile("2024-01-15", "Acme", "02:00:01\tB1"))
	out := filepath.Join(dir, "out", "merged.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))

	router, stdout, _ := newTestRouter(testBoot(nil))
	handled, err := router.Route([]string{"hydrolog", "export", "-o", out,
		"--set", "client=Acme Marine", filepath.Join(dir, "*.txt")})
	require.NoError(t, err)
	assert.True(t, handled)

	text := readFile(t, out)
	assert.Contains(t, text, "Client\tAcme Marine\n")
	assert.True(t, strings.HasSuffix(text, "02:00:00\tA1\n02:00:01\tB1\n02:00:02\tA2\n"))
	assert.Contains(t, stdout.String(), "export succeeded")
	assert.Contains(t, stdout.String(), out)

	// Sources are untouched
	assert.Contains(t, readFile(t, a), "Client\tAcme\n")
}

func TestExportCommand_IndividualFromConfig(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", sensorFile("2024-01-15", "Acme", "02:00:00\tA1"))
	b := writeFile(t, dir, "b.txt", sensorFile("2024-01-16", "Acme", "03:00:00\tB1"))
	outDir := filepath.Join(dir, "exported")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	boot := testBoot(func(cfg *config.Config) {
		cfg.Export.Mode = "individual"
		cfg.Export.OutputDir = outDir
		cfg.Export.Inputs = []string{a, b}
		cfg.Overrides.Job = "J-42"
	})
	router, _, _ := newTestRouter(boot)

	_, err := router.Route([]string{"hydrolog", "export", "--file-set", b + ":site=North Pier"})
	require.NoError(t, err)

	outA := readFile(t, filepath.Join(outDir, "a_edited.txt"))
	outB := readFile(t, filepath.Join(outDir, "b_edited.txt"))
	assert.Contains(t, outA, "Job\tJ-42\n")
	assert.NotContains(t, outA, "North Pier")
	assert.Contains(t, outB, "Site\tNorth Pier\n")
}

func TestExportCommand_ProtectedOverrideReported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", sensorFile("2024-01-15", "Acme", "02:00:00\tA1"))
	out := filepath.Join(dir, "merged.txt")

	router, stdout, _ := newTestRouter(testBoot(nil))
	_, err := router.Route([]string{"hydrolog", "export", "-o", out, "--set", "S/N=999", filepath.Join(dir, "a.txt")})
	require.NoError(t, err)

	assert.Contains(t, readFile(t, out), "S/N\t1234\n")
	assert.Contains(t, stdout.String(), string(export.KindOverrideRejected))
}

func TestExportCommand_DryRunJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", sensorFile("2024-01-15", "Acme", "02:00:00\tA1", "02:00:01\tA2"))
	out := filepath.Join(dir, "merged.txt")

	router, stdout, _ := newTestRouter(testBoot(nil))
	_, err := router.Route([]string{"hydrolog", "export", "--dry-run", "--json", "-o", out, filepath.Join(dir, "a.txt")})
	require.NoError(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "dry run must not write")

	var rep jsonReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rep))
	assert.Equal(t, "done", rep.State)
	assert.Equal(t, 2, rep.RecordsWritten)
	assert.Equal(t, 1, rep.FilesRead)
	require.Len(t, rep.Outputs, 1)
	assert.Equal(t, out, rep.Outputs[0].Path)
	assert.NotEmpty(t, rep.RunID)
}

func TestExportCommand_Failures(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", sensorFile("2024-01-15", "Acme", "02:00:00\tA1"))

	testCases := []struct {
		name        string
		args        []string
		expectUsage bool
	}{
		{name: "NoInputs", args: []string{"-o", filepath.Join(dir, "m.txt")}, expectUsage: true},
		{name: "BadAssignment", args: []string{"-o", filepath.Join(dir, "m.txt"), "--set", "client", a}, expectUsage: true},
		{name: "UnreadableOnly", args: []string{"-o", filepath.Join(dir, "m.txt"), filepath.Join(dir, "missing.txt")}},
		{name: "OverwriteSource", args: []string{"-o", a, a}},
		{name: "InvalidMode", args: []string{"-m", "sideways", "-o", filepath.Join(dir, "m.txt"), a}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, _, _ := newTestRouter(testBoot(nil))
			_, err := router.Route(append([]string{"hydrolog", "export"}, tc.args...))
			require.Error(t, err)
			if tc.expectUsage {
				assert.ErrorIs(t, err, ErrUsage)
			}
		})
	}

	assert.Contains(t, readFile(t, a), "02:00:00\tA1\n", "failed export leaves the source intact")
}

func TestExportCommand_Quiet(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", sensorFile("2024-01-15", "Acme", "02:00:00\tA1"))

	router, stdout, _ := newTestRouter(testBoot(nil))
	_, err := router.Route([]string{"hydrolog", "export", "-q", "-o", filepath.Join(dir, "m.txt"), a})
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

func TestPlannedOutputs(t *testing.T) {
	opts := export.DefaultOptions()
	opts.OutputPath = "/tmp/merged.txt"
	assert.Equal(t, []string{"/tmp/merged.txt"}, plannedOutputs([]string{"a.txt"}, opts))

	opts.Mode = export.ModeIndividual
	opts.OutputDir = "/out"
	assert.Equal(t, []string{"/out/a_edited.txt", "/out/b_edited.txt"},
		plannedOutputs([]string{"in/a.txt", "in/b.txt"}, opts))
}

func TestExportCommand_InputFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", sensorFile("2024-01-15", "Acme", "02:00:00\tA1"))
	writeFile(t, dir, "a_edited.txt", sensorFile("2024-01-15", "Acme", "02:00:00\tOLD"))
	writeFile(t, dir, "b.txt", sensorFile("2024-01-15", "Acme", "02:00:01\tB1"))
	out := filepath.Join(dir, "merged.out")

	router, _, _ := newTestRouter(testBoot(nil))
	_, err := router.Route([]string{"hydrolog", "export", "-o", out,
		"--exclude", `_edited\.txt$`, filepath.Join(dir, "*.txt")})
	require.NoError(t, err)

	text := readFile(t, out)
	assert.NotContains(t, text, "OLD")
	assert.True(t, strings.HasSuffix(text, "02:00:00\tA1\n02:00:01\tB1\n"))

	_, err = router.Route([]string{"hydrolog", "export", "-o", out, "--include", "[", filepath.Join(dir, "*.txt")})
	assert.ErrorIs(t, err, ErrUsage)

	_, err = router.Route([]string{"hydrolog", "export", "-o", out, "--include", "nomatch", filepath.Join(dir, "*.txt")})
	assert.Error(t, err)
}
