// Package dataset holds the columnar snapshot returned by the search backend.
package dataset

import (
	"fmt"
)

// NameField is the default haystack column.
const NameField = "name"

// Field is a named column of values.
type Field struct {
	name   string
	values []any
}

// NewField creates a column. The values slice is copied.
func NewField(name string, values ...any) Field {
	return Field{name: name, values: append([]any(nil), values...)}
}

// Name returns the column name.
func (f Field) Name() string { return f.name }

// Len returns the number of values in the column.
func (f Field) Len() int { return len(f.values) }

// At returns the value at row i.
func (f Field) At(i int) any { return f.values[i] }

// Values returns a copy of the column values.
func (f Field) Values() []any { return append([]any(nil), f.values...) }

// Frame is an immutable set of equal-length columns with one designated name column.
type Frame struct {
	name      string
	fields    []Field
	nameIndex int
	length    int
}

// New validates and creates a Frame.
// All fields must share one length; nameField must be present unless the frame has no fields.
func New(name, nameField string, fields ...Field) (*Frame, error) {
	f := &Frame{name: name, nameIndex: -1}
	if len(fields) == 0 {
		return f, nil
	}

	f.length = fields[0].Len()
	seen := make(map[string]bool, len(fields))
	f.fields = make([]Field, len(fields))
	for i, fld := range fields {
		if fld.name == "" {
			return nil, fmt.Errorf("field %d has no name", i)
		}
		if seen[fld.name] {
			return nil, fmt.Errorf("duplicate field %q", fld.name)
		}
		seen[fld.name] = true
		if fld.Len() != f.length {
			return nil, fmt.Errorf("field %q has %d values, expected %d", fld.name, fld.Len(), f.length)
		}
		if fld.name == nameField {
			f.nameIndex = i
		}
		f.fields[i] = NewField(fld.name, fld.values...)
	}
	if f.nameIndex < 0 {
		return nil, fmt.Errorf("name field %q not found", nameField)
	}
	return f, nil
}

// MustNew calls New and panics on error.
func MustNew(name, nameField string, fields ...Field) *Frame {
	f, err := New(name, nameField, fields...)
	if err != nil {
		panic(err)
	}
	return f
}

// Empty returns a frame with no columns and no rows.
func Empty(name string) *Frame {
	return &Frame{name: name, nameIndex: -1}
}

// Name returns the frame name.
func (f *Frame) Name() string { return f.name }

// Len returns the row count.
func (f *Frame) Len() int { return f.length }

// NumFields returns the column count.
func (f *Frame) NumFields() int { return len(f.fields) }

// Field returns the i-th column.
func (f *Frame) Field(i int) Field { return f.fields[i] }

// FieldByName looks up a column by name.
func (f *Frame) FieldByName(name string) (Field, bool) {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld, true
		}
	}
	return Field{}, false
}

// FieldNames returns the column names in order.
func (f *Frame) FieldNames() []string {
	names := make([]string, len(f.fields))
	for i, fld := range f.fields {
		names[i] = fld.name
	}
	return names
}

// NameFieldName returns the designated haystack column name, or "" for a frame without columns.
func (f *Frame) NameFieldName() string {
	if f.nameIndex < 0 {
		return ""
	}
	return f.fields[f.nameIndex].name
}

// Row returns a copy of every column value at row i, in column order.
func (f *Frame) Row(i int) []any {
	row := make([]any, len(f.fields))
	for c, fld := range f.fields {
		row[c] = fld.values[i]
	}
	return row
}

// Names renders the name column as strings, 1:1 with rows.
func (f *Frame) Names() []string {
	if f.nameIndex < 0 {
		return nil
	}
	col := f.fields[f.nameIndex].values
	out := make([]string, len(col))
	for i, v := range col {
		switch s := v.(type) {
		case string:
			out[i] = s
		case nil:
			out[i] = ""
		default:
			out[i] = fmt.Sprint(s)
		}
	}
	return out
}

// EmptyLike returns a frame with the same name and columns but zero rows.
func (f *Frame) EmptyLike() *Frame {
	out := &Frame{name: f.name, nameIndex: f.nameIndex}
	if len(f.fields) > 0 {
		out.fields = make([]Field, len(f.fields))
		for i, fld := range f.fields {
			out.fields[i] = Field{name: fld.name, values: []any{}}
		}
	}
	return out
}

// SameSchema reports whether both frames carry the same column names in the same order.
func (f *Frame) SameSchema(other *Frame) bool {
	if len(f.fields) != len(other.fields) {
		return false
	}
	for i := range f.fields {
		if f.fields[i].name != other.fields[i].name {
			return false
		}
	}
	return true
}
