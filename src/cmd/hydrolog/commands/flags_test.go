// FILE: hydrolog/src/cmd/hydrolog/commands/flags_test.go
package commands

import (
	"flag"
	"io"
	"path/filepath"
	"testing"

	"hydrolog/src/internal/config"
	"hydrolog/src/internal/export"
	"hydrolog/src/internal/header"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignment(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		key         string
		value       string
		expectError bool
	}{
		{name: "Simple", input: "client=Acme", key: "client", value: "Acme"},
		{name: "LabelKey", input: "Job Number= J-7 ", key: "job", value: "J-7"},
		{name: "ValueWithEquals", input: "site=a=b", key: "site", value: "a=b"},
		{name: "StartDateCleaned", input: "start_date=15/01/2024", key: "start_date", value: "2024-01-15"},
		{name: "BadStartDate", input: "start_date=someday", expectError: true},
		{name: "NoEquals", input: "client", expectError: true},
		{name: "EmptyKey", input: "=x", expectError: true},
		{name: "ProtectedKeyPassedThrough", input: "S/N=999", key: "serial_number", value: "999"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, value, err := parseAssignment(tc.input)
			if tc.expectError {
				assert.ErrorIs(t, err, ErrUsage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.key, key)
			assert.Equal(t, tc.value, value)
		})
	}
}

func TestSplitFileAssignment(t *testing.T) {
	path, rest, err := splitFileAssignment("data/a.txt:client=Acme: North")
	require.NoError(t, err)
	assert.Equal(t, "data/a.txt", path)
	assert.Equal(t, "client=Acme: North", rest)

	path, rest, err = splitFileAssignment(`C:\logs\a.txt:job=J1`)
	require.NoError(t, err)
	assert.Equal(t, `C:\logs\a.txt`, path)
	assert.Equal(t, "job=J1", rest)

	_, _, err = splitFileAssignment("client=Acme")
	assert.ErrorIs(t, err, ErrUsage)

	_, _, err = splitFileAssignment("a.txt")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestBuildOverrides(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")

	base := config.OverrideConfig{Client: "From Config", Job: "J-1"}
	overrides, err := buildOverrides(base,
		[]string{"client=From Flag"},
		[]string{a + ":site=North Pier"},
		[]string{a, b})
	require.NoError(t, err)

	assert.Equal(t, header.Override{"client": "From Flag", "job": "J-1"}, overrides.Global)
	assert.Equal(t, "North Pier", overrides.For(a)["site"])
	assert.Equal(t, "From Flag", overrides.For(a)["client"])
	assert.NotContains(t, overrides.For(b), "site")

	_, err = buildOverrides(base, nil, []string{filepath.Join(dir, "c.txt") + ":site=x"}, []string{a, b})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestParseArgs_Interleaved(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var ef exportFlags
	ef.bind(fs)

	positional, err := parseArgs(fs, []string{"a.txt", "-m", "individual", "b.txt", "--set", "client=X", "--set", "job=Y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, positional)
	assert.Equal(t, "individual", ef.mode)
	assert.Equal(t, []string{"client=X", "job=Y"}, []string(ef.set))

	_, err = parseArgs(fs, []string{"--no-such-flag"})
	assert.ErrorIs(t, err, ErrUsage)

	positional, err = parseArgs(fs, []string{"-m", "individual", "--", "-odd.txt", "c.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-odd.txt", "c.txt"}, positional)
}

func TestExportFlags_Apply(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var ef exportFlags
	ef.bind(fs)

	_, err := parseArgs(fs, []string{"--mode", "single-ordered", "--no-headers", "--numbered", "--tz", "AEST", "--format", "colon"})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Export.OutputDir = "kept"
	ef.apply(fs, cfg)

	assert.Equal(t, "single-ordered", cfg.Export.Mode)
	assert.False(t, cfg.Export.IncludeHeaders)
	assert.False(t, cfg.Export.PreserveFilenames)
	assert.True(t, cfg.Export.AddSuffix, "unset flags leave config values")
	assert.Equal(t, "AEST", cfg.Export.TimezoneTarget)
	assert.Equal(t, "kept", cfg.Export.OutputDir)

	opts := exportOptions(cfg.Export, true)
	assert.Equal(t, export.ModeOrdered, opts.Mode)
	assert.Equal(t, "colon", opts.OutputFormat)
	assert.True(t, opts.DryRun)
}
