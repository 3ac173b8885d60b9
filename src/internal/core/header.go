// FILE: hydrolog/src/internal/core/header.go
package core

// Class tags a header field as operator-editable or protected
type Class int

const (
	Protected Class = iota
	Editable
)

func (c Class) String() string {
	if c == Editable {
		return "editable"
	}
	return "protected"
}

// EditableKey enumerates the closed set of fields an operator may change.
type EditableKey uint8

const (
	KeyNone EditableKey = iota
	KeyClient
	KeyJob
	KeyProject
	KeyPersonnel
	KeySite
	KeyLocation
	KeyStartDate
	KeyTimezone
)

var editableNames = [...]string{
	KeyNone:      "",
	KeyClient:    "client",
	KeyJob:       "job",
	KeyProject:   "project",
	KeyPersonnel: "personnel",
	KeySite:      "site",
	KeyLocation:  "location",
	KeyStartDate: "start_date",
	KeyTimezone:  "timezone",
}

// String returns the normalized field key
func (k EditableKey) String() string {
	if int(k) < len(editableNames) {
		return editableNames[k]
	}
	return ""
}

// EditableKeys returns the editable set in canonical order
func EditableKeys() []EditableKey {
	return []EditableKey{
		KeyClient, KeyJob, KeyProject, KeyPersonnel,
		KeySite, KeyLocation, KeyStartDate, KeyTimezone,
	}
}

// LookupEditable maps a normalized key to its editable variant.
func LookupEditable(key string) (EditableKey, bool) {
	for _, k := range EditableKeys() {
		if editableNames[k] == key {
			return k, true
		}
	}
	return KeyNone, false
}

// Field is one metadata entry read from a header
type Field struct {
	Key     string // normalized key, e.g. "sample_rate"
	Label   string // key text as it appeared in the file
	Value   string
	Section string // section title in effect when the field was read
	Class   Class
}

// ParsedHeader is an ordered set of fields with the section structure
// and data column line that surrounded them.
type ParsedHeader struct {
	Fields     []Field
	Sections   []string
	ColumnLine string
	Anomalies  int
}

// Get returns the field stored under key
func (h ParsedHeader) Get(key string) (Field, bool) {
	for _, f := range h.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Value returns the value stored under key, or "" when absent
func (h ParsedHeader) Value(key string) string {
	f, _ := h.Get(key)
	return f.Value
}

// Has reports whether key is present
func (h ParsedHeader) Has(key string) bool {
	_, ok := h.Get(key)
	return ok
}

// Keys returns field keys in header order
func (h ParsedHeader) Keys() []string {
	keys := make([]string, len(h.Fields))
	for i, f := range h.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Len returns the number of fields
func (h ParsedHeader) Len() int {
	return len(h.Fields)
}

// Clone returns a deep copy safe to modify
func (h ParsedHeader) Clone() ParsedHeader {
	out := h
	out.Fields = append([]Field(nil), h.Fields...)
	out.Sections = append([]string(nil), h.Sections...)
	return out
}

// With returns a copy of h with f stored. An existing field keeps its
// position and label; a new field is appended.
func (h ParsedHeader) With(f Field) ParsedHeader {
	out := h.Clone()
	for i := range out.Fields {
		if out.Fields[i].Key == f.Key {
			out.Fields[i].Value = f.Value
			out.Fields[i].Class = f.Class
			return out
		}
	}
	out.Fields = append(out.Fields, f)
	return out
}

// Protected returns the protected subset as key → value
func (h ParsedHeader) Protected() map[string]string {
	out := make(map[string]string)
	for _, f := range h.Fields {
		if f.Class == Protected {
			out[f.Key] = f.Value
		}
	}
	return out
}

// Editable returns the editable subset as key → value
func (h ParsedHeader) Editable() map[string]string {
	out := make(map[string]string)
	for _, f := range h.Fields {
		if f.Class == Editable {
			out[f.Key] = f.Value
		}
	}
	return out
}
