// FILE: hydrolog/src/internal/header/validate.go
package header

import (
	"fmt"
	"strings"
	"time"

	"hydrolog/src/internal/core"
)

// Required fields for an exportable header
var requiredKeys = []core.EditableKey{core.KeyClient, core.KeyJob}

// Validate checks a header before export. Problems are advisory.
func Validate(h core.ParsedHeader) []error {
	var errs []error

	for _, k := range requiredKeys {
		if strings.TrimSpace(h.Value(k.String())) == "" {
			errs = append(errs, fmt.Errorf("missing required field: %s", k))
		}
	}

	if v := h.Value(core.KeyStartDate.String()); v != "" {
		if _, err := time.Parse(DateLayout, v); err != nil {
			errs = append(errs, fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", v))
		}
	}

	return errs
}
