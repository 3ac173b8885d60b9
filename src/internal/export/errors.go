// FILE: hydrolog/src/internal/export/errors.go
package export

import "errors"

var (
	// ErrNoReadableFiles is returned when every input was skipped
	ErrNoReadableFiles = errors.New("no readable input files")

	// ErrOverwriteSource is returned when an output would replace an input
	ErrOverwriteSource = errors.New("output would overwrite an input file")

	// ErrInvalidTransition is returned on an illegal state change
	ErrInvalidTransition = errors.New("invalid export state transition")
)
