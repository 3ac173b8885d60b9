// FILE: hydrolog/src/internal/header/schema.go
package header

import (
	"strings"
	"unicode"
)

// Canonical section titles, in output order
const (
	SectionFile   = "File Details"
	SectionDevice = "Device Details"
	SectionSetup  = "Setup"
	SectionData   = "Data"
)

// Sections returns the metadata sections in the order they are written
func Sections() []string {
	return []string{SectionFile, SectionDevice, SectionSetup}
}

// Definition describes a recognized field
type Definition struct {
	Key     string
	Label   string
	Section string
}

var definitions = []Definition{
	{"file_type", "File Type", SectionFile},
	{"file_version", "File Version", SectionFile},
	{"start_date", "Start Date", SectionFile},
	{"start_time", "Start Time", SectionFile},
	{"timezone", "Time Zone", SectionFile},
	{"author", "Author", SectionFile},
	{"computer", "Computer", SectionFile},
	{"user", "User", SectionFile},
	{"client", "Client", SectionFile},
	{"job", "Job", SectionFile},
	{"personnel", "Personnel", SectionFile},
	{"project", "Project", SectionFile},
	{"site", "Site", SectionFile},
	{"location", "Location", SectionFile},
	{"starting_sample", "Starting Sample", SectionFile},
	{"device", "Device", SectionDevice},
	{"serial_number", "S/N", SectionDevice},
	{"firmware", "Firmware", SectionDevice},
	{"db_ref_1v", "dB Ref re 1V", SectionSetup},
	{"db_ref_1upa", "dB Ref re 1uPa", SectionSetup},
	{"sample_rate", "Sample Rate [S/s]", SectionSetup},
	{"fft_size", "FFT Size", SectionSetup},
	{"bin_width", "Bin Width [Hz]", SectionSetup},
	{"window_function", "Window Function", SectionSetup},
	{"overlap", "Overlap [%]", SectionSetup},
	{"power_calculation", "Power Calculation", SectionSetup},
	{"accumulations", "Accumulations", SectionSetup},
}

// Normalized key text → canonical key
var synonyms = map[string]string{
	"file type":            "file_type",
	"filetype":             "file_type",
	"file version":         "file_version",
	"version":              "file_version",
	"start date":           "start_date",
	"start_date":           "start_date",
	"date":                 "start_date",
	"recording date":       "start_date",
	"recording start date": "start_date",
	"start time":           "start_time",
	"start_time":           "start_time",
	"recording start time": "start_time",
	"time zone":            "timezone",
	"timezone":             "timezone",
	"tz":                   "timezone",
	"zone":                 "timezone",
	"author":               "author",
	"computer":             "computer",
	"host":                 "computer",
	"user":                 "user",
	"client":               "client",
	"customer":             "client",
	"client name":          "client",
	"job":                  "job",
	"job number":           "job",
	"job no":               "job",
	"job no.":              "job",
	"job #":                "job",
	"job id":               "job",
	"project":              "project",
	"project name":         "project",
	"personnel":            "personnel",
	"operator":             "personnel",
	"operators":            "personnel",
	"staff":                "personnel",
	"site":                 "site",
	"site name":            "site",
	"station":              "site",
	"location":             "location",
	"position":             "location",
	"deployment location":  "location",
	"starting sample":      "starting_sample",
	"start sample":         "starting_sample",
	"device":               "device",
	"instrument":           "device",
	"model":                "device",
	"s/n":                  "serial_number",
	"sn":                   "serial_number",
	"serial":               "serial_number",
	"serial number":        "serial_number",
	"serial no":            "serial_number",
	"serial no.":           "serial_number",
	"device s/n":           "serial_number",
	"firmware":             "firmware",
	"firmware version":     "firmware",
	"fw":                   "firmware",
	"db ref re 1v":         "db_ref_1v",
	"db ref re 1upa":       "db_ref_1upa",
	"db ref re 1µpa":       "db_ref_1upa",
	"sample rate":          "sample_rate",
	"sampling rate":        "sample_rate",
	"sample_rate":          "sample_rate",
	"fft size":             "fft_size",
	"fft":                  "fft_size",
	"bin width":            "bin_width",
	"window function":      "window_function",
	"window":               "window_function",
	"overlap":              "overlap",
	"power calculation":    "power_calculation",
	"accumulations":        "accumulations",
}

var byKey = func() map[string]Definition {
	m := make(map[string]Definition, len(definitions))
	for _, d := range definitions {
		m[d.Key] = d
	}
	return m
}()

// Definitions returns the recognized fields in canonical order
func Definitions() []Definition {
	return append([]Definition(nil), definitions...)
}

// Lookup returns the definition of a canonical key
func Lookup(key string) (Definition, bool) {
	d, ok := byKey[key]
	return d, ok
}

// NormalizeKey trims, strips comment markers and a trailing colon,
// lower-cases and collapses internal whitespace.
func NormalizeKey(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "#")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ":")
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// CanonicalKey maps raw key text to its field key. Unrecognized keys are
// returned as a slug with known=false.
func CanonicalKey(raw string) (key string, known bool) {
	norm := NormalizeKey(raw)
	if norm == "" {
		return "", false
	}
	if k, ok := synonyms[norm]; ok {
		return k, true
	}
	if _, ok := byKey[norm]; ok {
		return norm, true
	}
	// Retry without a trailing unit, "sample rate [s/s]" → "sample rate"
	if i := strings.LastIndexAny(norm, "[("); i > 0 {
		if k, ok := synonyms[strings.TrimSpace(norm[:i])]; ok {
			return k, true
		}
	}
	return slug(norm), false
}

func slug(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			pending = false
			continue
		}
		pending = true
	}
	return b.String()
}

// LabelFor returns the canonical label for key, or fallback when the key
// is not recognized.
func LabelFor(key, fallback string) string {
	if d, ok := byKey[key]; ok {
		return d.Label
	}
	if fallback != "" {
		return fallback
	}
	return key
}

// SectionFor returns the canonical section of key. Unrecognized keys keep
// the section they were read from when it is a canonical one.
func SectionFor(key, readFrom string) string {
	if d, ok := byKey[key]; ok {
		return d.Section
	}
	for _, s := range Sections() {
		if strings.EqualFold(s, readFrom) {
			return s
		}
	}
	return SectionSetup
}
