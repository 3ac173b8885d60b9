// FILE: hydrolog/src/internal/tz/tz.go
package tz

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/lixenwraith/log"
)

// Converter converts wall-clock times between zones and reports whether
// daylight saving is in effect at the result.
type Converter interface {
	Convert(t time.Time, from, to string) (time.Time, bool, error)
}

var aliases = map[string]string{
	"":                           "UTC",
	"UTC":                        "UTC",
	"Z":                          "UTC",
	"ZULU":                       "UTC",
	"GMT":                        "UTC",
	"COORDINATED UNIVERSAL TIME": "UTC",
	"UNIVERSAL TIME":             "UTC",
	"GREENWICH MEAN TIME":        "UTC",
	"EASTERN":                    "America/New_York",
	"EASTERN STANDARD TIME":      "America/New_York",
	"EASTERN DAYLIGHT TIME":      "America/New_York",
	"EST":                        "America/New_York",
	"EDT":                        "America/New_York",
	"CENTRAL":                    "America/Chicago",
	"CENTRAL STANDARD TIME":      "America/Chicago",
	"CENTRAL DAYLIGHT TIME":      "America/Chicago",
	"CST":                        "America/Chicago",
	"CDT":                        "America/Chicago",
	"MOUNTAIN":                   "America/Denver",
	"MOUNTAIN STANDARD TIME":     "America/Denver",
	"MOUNTAIN DAYLIGHT TIME":     "America/Denver",
	"MST":                        "America/Denver",
	"MDT":                        "America/Denver",
	"PACIFIC":                    "America/Los_Angeles",
	"PACIFIC STANDARD TIME":      "America/Los_Angeles",
	"PACIFIC DAYLIGHT TIME":      "America/Los_Angeles",
	"PST":                        "America/Los_Angeles",
	"PDT":                        "America/Los_Angeles",
	"AKST":                       "America/Anchorage",
	"AKDT":                       "America/Anchorage",
	"HST":                        "Pacific/Honolulu",
	"AST":                        "America/Halifax",
	"ADT":                        "America/Halifax",
	"NST":                        "America/St_Johns",
	"NDT":                        "America/St_Johns",
	"BST":                        "Europe/London",
	"CET":                        "Europe/Paris",
	"CEST":                       "Europe/Paris",
	"EET":                        "Europe/Athens",
	"AEST":                       "Australia/Sydney",
	"AEDT":                       "Australia/Sydney",
	"ACST":                       "Australia/Adelaide",
	"AWST":                       "Australia/Perth",
	"NZST":                       "Pacific/Auckland",
	"NZDT":                       "Pacific/Auckland",
	"JST":                        "Asia/Tokyo",
}

var offsetPattern = regexp.MustCompile(`^(?:UTC|GMT)?\s*([+-])(\d{1,2})(?::?(\d{2}))?$`)

// Canonical maps a free-form zone string to a loadable zone name.
// Offsets such as "UTC+5" or "-03:30" are returned in "+05:00" form.
func Canonical(name string) string {
	trimmed := strings.TrimSpace(name)
	if z, ok := aliases[strings.ToUpper(trimmed)]; ok {
		return z
	}
	if m := offsetPattern.FindStringSubmatch(strings.ToUpper(trimmed)); m != nil {
		h, _ := strconv.Atoi(m[2])
		mins := 0
		if m[3] != "" {
			mins, _ = strconv.Atoi(m[3])
		}
		return fmt.Sprintf("%s%02d:%02d", m[1], h, mins)
	}
	return trimmed
}

// FormatOffset renders the UTC offset of t as "+05:00"
func FormatOffset(t time.Time) string {
	_, off := t.Zone()
	sign := '+'
	if off < 0 {
		sign = '-'
		off = -off
	}
	return fmt.Sprintf("%c%02d:%02d", sign, off/3600, (off%3600)/60)
}

// LocationConverter resolves zones through the Go time zone database
type LocationConverter struct {
	logger *log.Logger
	mu     sync.RWMutex
	cache  map[string]*time.Location
}

// NewLocationConverter creates a converter backed by time.LoadLocation
func NewLocationConverter(logger *log.Logger) *LocationConverter {
	return &LocationConverter{
		logger: logger,
		cache:  make(map[string]*time.Location),
	}
}

// Location resolves a free-form zone string
func (c *LocationConverter) Location(name string) (*time.Location, error) {
	canon := Canonical(name)

	c.mu.RLock()
	loc, ok := c.cache[canon]
	c.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := load(canon)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}

	c.mu.Lock()
	c.cache[canon] = loc
	c.mu.Unlock()

	c.logger.Debug("msg", "Timezone resolved",
		"component", "tz",
		"name", name,
		"zone", canon)
	return loc, nil
}

// Convert reads the wall clock of t in zone from and returns the same
// instant in zone to. Callers holding an absolute instant pass t.UTC()
// with from "UTC".
func (c *LocationConverter) Convert(t time.Time, from, to string) (time.Time, bool, error) {
	src, err := c.Location(from)
	if err != nil {
		return time.Time{}, false, err
	}
	dst, err := c.Location(to)
	if err != nil {
		return time.Time{}, false, err
	}

	instant := time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), src)

	out := instant.In(dst)
	return out, out.IsDST(), nil
}

// Valid reports whether name resolves to a zone
func (c *LocationConverter) Valid(name string) bool {
	_, err := c.Location(name)
	return err == nil
}

// Load resolves a free-form zone string without caching
func Load(name string) (*time.Location, error) {
	loc, err := load(Canonical(name))
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

func load(canon string) (*time.Location, error) {
	if canon == "UTC" {
		return time.UTC, nil
	}
	if len(canon) == 6 && (canon[0] == '+' || canon[0] == '-') && canon[3] == ':' {
		h, err1 := strconv.Atoi(canon[1:3])
		m, err2 := strconv.Atoi(canon[4:6])
		if err1 != nil || err2 != nil || h > 14 || m > 59 {
			return nil, fmt.Errorf("invalid offset %s", canon)
		}
		secs := h*3600 + m*60
		if canon[0] == '-' {
			secs = -secs
		}
		return time.FixedZone("UTC"+canon, secs), nil
	}
	return time.LoadLocation(canon)
}
