// FILE: hydrolog/src/internal/header/classify.go
package header

import "hydrolog/src/internal/core"

// ClassOf returns the classification of a normalized key. Only the closed
// editable set is editable; everything else, known or not, is protected.
func ClassOf(key string) core.Class {
	if _, ok := core.LookupEditable(key); ok {
		return core.Editable
	}
	return core.Protected
}

// Classify returns a copy of h with every field tagged. Fields are never
// dropped.
func Classify(h core.ParsedHeader) core.ParsedHeader {
	out := h.Clone()
	for i := range out.Fields {
		out.Fields[i].Class = ClassOf(out.Fields[i].Key)
	}
	return out
}

// Partition splits a classified header into its editable and protected fields
func Partition(h core.ParsedHeader) (editable, protected []core.Field) {
	for _, f := range h.Fields {
		if f.Class == core.Editable {
			editable = append(editable, f)
		} else {
			protected = append(protected, f)
		}
	}
	return editable, protected
}
