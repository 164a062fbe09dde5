package wdl

import "fmt"

// SchemaError reports a structural problem in a WDL document: a missing
// required field, an out-of-range value or an unresolvable enum tag.
// It is returned from strict decoding and from checked constructors,
// never from validation rules (those aggregate into a report instead).
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "wdl schema: " + e.Reason
	}
	return fmt.Sprintf("wdl schema: %s: %s", e.Field, e.Reason)
}

func schemaErrorf(field, format string, args ...any) *SchemaError {
	return &SchemaError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// prefixed rewrites the field path of a nested SchemaError so errors always
// carry the full path from the document root.
func prefixed(prefix string, err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*SchemaError); ok {
		field := prefix
		if se.Field != "" {
			field = prefix + "." + se.Field
		}
		return &SchemaError{Field: field, Reason: se.Reason}
	}
	return &SchemaError{Field: prefix, Reason: err.Error()}
}
