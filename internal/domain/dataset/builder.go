package dataset

// Builder collects rows of a source frame into a new frame.
// The source is only read; the built frame owns fresh column slices.
type Builder struct {
	src     *Frame
	columns [][]any
}

// NewBuilder starts a frame with the same schema as src. capacity is a row hint.
func NewBuilder(src *Frame, capacity int) *Builder {
	cols := make([][]any, len(src.fields))
	for i := range cols {
		cols[i] = make([]any, 0, capacity)
	}
	return &Builder{src: src, columns: cols}
}

// Append copies every column value of source row into the output.
func (b *Builder) Append(row int) {
	for c, fld := range b.src.fields {
		b.columns[c] = append(b.columns[c], fld.values[row])
	}
}

// AppendValues adds a row given in column order. Missing trailing values are stored as nil.
func (b *Builder) AppendValues(values ...any) {
	for c := range b.columns {
		var v any
		if c < len(values) {
			v = values[c]
		}
		b.columns[c] = append(b.columns[c], v)
	}
}

// Len returns the number of rows appended so far.
func (b *Builder) Len() int {
	if len(b.columns) == 0 {
		return 0
	}
	return len(b.columns[0])
}

// Frame returns the collected rows. The builder must not be used afterwards.
func (b *Builder) Frame() *Frame {
	out := &Frame{name: b.src.name, nameIndex: b.src.nameIndex, length: b.Len()}
	if len(b.columns) > 0 {
		out.fields = make([]Field, len(b.columns))
		for i, col := range b.columns {
			out.fields[i] = Field{name: b.src.fields[i].name, values: col}
		}
	}
	b.columns = nil
	return out
}
