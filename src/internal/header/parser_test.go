// FILE: hydrolog/src/internal/header/parser_test.go
package header

import (
	"strings"
	"testing"

	"hydrolog/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oceanSample = "File Details:\n" +
	"File Type\tSpectrum\n" +
	"File Version\t5\n" +
	"Start Date\t2024-01-15\n" +
	"Start Time\t02:12:34\n" +
	"Time Zone\tUTC\n" +
	"Client\tAcme Marine\n" +
	"Job\tJOB-001\n" +
	"Personnel\tNick Trevean\n" +
	"\n" +
	"Device Details:\n" +
	"Device\ticListen HF\n" +
	"S/N\t1234\n" +
	"Firmware\tv2.6\n" +
	"\n" +
	"Setup:\n" +
	"Sample Rate [S/s]\t64000\n" +
	"FFT Size\t1024\n" +
	"\n" +
	"Data:\n" +
	"\n" +
	"Time\tComment\tTemperature\tHumidity\tSequence #\tData Points\t0.0\t62.5\n" +
	"02:12:34\t\t22.8\t31.1\t1\t410\t60\t69\n" +
	"02:12:35\t\t22.8\t31.1\t2\t410\t61\t70"

func lines(s string) []string {
	return strings.Split(s, "\n")
}

func TestParse_RoundTripSample(t *testing.T) {
	h := Parse(lines("Client\tAcme Marine\nJob\tJOB-001\nPersonnel\tNick Trevean\nSample Rate [S/s]\t64000"))

	require.Equal(t, []string{"client", "job", "personnel", "sample_rate"}, h.Keys())

	testCases := []struct {
		key   string
		value string
		class core.Class
	}{
		{"client", "Acme Marine", core.Editable},
		{"job", "JOB-001", core.Editable},
		{"personnel", "Nick Trevean", core.Editable},
		{"sample_rate", "64000", core.Protected},
	}
	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			f, ok := h.Get(tc.key)
			require.True(t, ok)
			assert.Equal(t, tc.value, f.Value)
			assert.Equal(t, tc.class, f.Class)
		})
	}
}

func TestParse_DelimiterPriority(t *testing.T) {
	testCases := []struct {
		name  string
		line  string
		key   string
		value string
	}{
		{"Tab", "Client\tAcme: Marine", "client", "Acme: Marine"},
		{"TabBeatsSpaces", "Job  Number\tJ-7", "job", "J-7"},
		{"DoubleSpace", "Client    Acme Marine", "client", "Acme Marine"},
		{"DoubleSpaceBeatsColon", "Start Time  10:00:00", "start_time", "10:00:00"},
		{"Colon", "Start Time: 10:00:00", "start_time", "10:00:00"},
		{"CommentColon", "# Client: Acme Marine", "client", "Acme Marine"},
		{"CommentDoubleSpace", "#   Personnel:  Nick", "personnel", "Nick"},
		{"ColonBeforeSpaceRun", "# Client: Acme  Marine", "client", "Acme  Marine"},
		{"ColonBeforeSpaceRunNoComment", "Job: J  7", "job", "J  7"},
		{"ValueTrimmed", "Site\t  Pier 4  ", "site", "Pier 4"},
		{"SynonymTZ", "TZ: EST", "timezone", "EST"},
		{"SynonymSerial", "S/N\t00412", "serial_number", "00412"},
		{"UnitStripped", "Bin Width [Hz]\t62.5", "bin_width", "62.5"},
		{"UnknownSlug", "Gain [dB]: 12", "gain_db", "12"},
		{"EmptyKnownField", "Start Date:", "start_date", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := Parse([]string{tc.line})
			require.Equal(t, 1, h.Len())
			assert.Equal(t, tc.key, h.Fields[0].Key)
			assert.Equal(t, tc.value, h.Fields[0].Value)
		})
	}
}

func TestParse_SectionsAndAnomalies(t *testing.T) {
	h := Parse([]string{
		"File Details:",
		"Client\tAcme",
		"free text without delimiter",
		"#",
		"",
		"Device Details:",
		"Device\ticListen",
	})

	assert.Equal(t, []string{"File Details", "Device Details"}, h.Sections)
	assert.Equal(t, 1, h.Anomalies)
	require.Equal(t, 2, h.Len())
	assert.Equal(t, "File Details", h.Fields[0].Section)
	assert.Equal(t, "Device Details", h.Fields[1].Section)
}

func TestParse_EmptyInput(t *testing.T) {
	h := Parse(nil)
	assert.Equal(t, 0, h.Len())

	h = Parse([]string{"nothing here", "still nothing"})
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 2, h.Anomalies)
}

func TestParse_DuplicateKeepsFirstPosition(t *testing.T) {
	h := Parse([]string{"Client\tOld", "Job\tJ1", "Client\tNew"})
	assert.Equal(t, []string{"client", "job"}, h.Keys())
	assert.Equal(t, "New", h.Value("client"))
}

func TestParseFile_OceanConvention(t *testing.T) {
	h, region := ParseFile(lines(oceanSample))

	assert.Equal(t, []string{"File Details", "Device Details", "Setup", "Data"}, h.Sections)
	assert.Equal(t, "Time\tComment\tTemperature\tHumidity\tSequence #\tData Points\t0.0\t62.5", h.ColumnLine)
	assert.Equal(t, "Acme Marine", h.Value("client"))
	assert.Equal(t, "1234", h.Value("serial_number"))
	assert.Equal(t, "64000", h.Value("sample_rate"))
	assert.Zero(t, h.Anomalies)

	require.Len(t, region.Data, 2)
	assert.True(t, strings.HasPrefix(region.Data[0], "02:12:34"))
	assert.Equal(t, 22, region.DataStart)
}

func TestParseFile_CommentConvention(t *testing.T) {
	src := []string{
		"# File Details:",
		"# Client: Acme Marine",
		"# Job: JOB-002",
		"# Time Zone: America/New_York",
		"# Recorded with the deck unit",
		"2024-01-15 10:00:00,1.5,2.3",
		"2024-01-15 10:00:01,1.6,2.4",
	}
	h, region := ParseFile(src)

	assert.Equal(t, "JOB-002", h.Value("job"))
	assert.Equal(t, "America/New_York", h.Value("timezone"))
	assert.Equal(t, 5, region.DataStart)
	assert.Len(t, region.Data, 2)
	assert.Empty(t, h.ColumnLine)
}

func TestSplit_CommentedColumnLine(t *testing.T) {
	src := []string{
		"# Client: Acme",
		"# Time\tComment\tData Points\t0.0",
		"01:00:00\t\t3\t1",
	}
	h, region := ParseFile(src)
	assert.Equal(t, "Time\tComment\tData Points\t0.0", h.ColumnLine)
	assert.Equal(t, 1, h.Len())
	assert.Len(t, region.Data, 1)
}

func TestSplit_NoDataRegion(t *testing.T) {
	region := Split([]string{"Client\tAcme", "Job\tJ"})
	assert.Len(t, region.Header, 2)
	assert.Empty(t, region.Data)
}

func TestSplit_FreeTextEndsHeader(t *testing.T) {
	region := Split([]string{"Client\tAcme", "BEGIN", "x,y"})
	assert.Equal(t, []string{"Client\tAcme"}, region.Header)
	assert.Equal(t, []string{"BEGIN", "x,y"}, region.Data)
}

func TestCanonicalKey(t *testing.T) {
	testCases := []struct {
		raw   string
		key   string
		known bool
	}{
		{"Time Zone", "timezone", true},
		{"timezone", "timezone", true},
		{"tz", "timezone", true},
		{"  #  Sample   Rate [S/s]: ", "sample_rate", true},
		{"S/N", "serial_number", true},
		{"dB Ref re 1uPa", "db_ref_1upa", true},
		{"Hydrophone Depth (m)", "hydrophone_depth_m", false},
		{"", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			key, known := CanonicalKey(tc.raw)
			assert.Equal(t, tc.key, key)
			assert.Equal(t, tc.known, known)
		})
	}
}
