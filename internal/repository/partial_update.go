package repository

import (
	"fmt"
	"strings"
)

// UpdateFields is an ordered collection of field name/value pairs for a
// partial update. Insertion order is preserved so that the generated SET
// clause and its argument list are deterministic; a plain map would not
// give that guarantee.
type UpdateFields struct {
	names  []string
	values []any
}

// Set appends a field. It returns the receiver so calls can be chained.
func (f *UpdateFields) Set(name string, value any) *UpdateFields {
	f.names = append(f.names, name)
	f.values = append(f.values, value)
	return f
}

// Len reports the number of fields set so far.
func (f *UpdateFields) Len() int { return len(f.names) }

// Value returns the value stored under name and whether it is present.
func (f *UpdateFields) Value(name string) (any, bool) {
	for i, n := range f.names {
		if n == name {
			return f.values[i], true
		}
	}
	return nil, false
}

// Replace swaps the value stored under name, reporting whether the field
// existed. It is used to substitute a password with its hash before the
// update statement is built.
func (f *UpdateFields) Replace(name string, value any) bool {
	for i, n := range f.names {
		if n == name {
			f.values[i] = value
			return true
		}
	}
	return false
}

// BuildPartialUpdate turns an ordered field set into a parameterized SET
// fragment plus the matching positional argument list. Field names are
// translated to column names through colNames; names absent from the map
// pass through unchanged. Placeholders are 1-based and contiguous, so the
// fragment can be prefixed directly to a WHERE clause whose own
// placeholders start at len(args)+1.
//
//	{firstName: "Aliya", age: 32} => `"first_name"=$1, "age"=$2`, ["Aliya", 32]
//
// An empty field set returns ErrNoUpdateFields: a partial update must never
// silently turn into a no-op statement.
func BuildPartialUpdate(fields *UpdateFields, colNames map[string]string) (string, []any, error) {
	if fields == nil || fields.Len() == 0 {
		return "", nil, ErrNoUpdateFields
	}
	cols := make([]string, len(fields.names))
	for i, name := range fields.names {
		col := name
		if mapped, ok := colNames[name]; ok {
			col = mapped
		}
		cols[i] = fmt.Sprintf("%q=$%d", col, i+1)
	}
	args := make([]any, len(fields.values))
	copy(args, fields.values)
	return strings.Join(cols, ", "), args, nil
}
