package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_ItemSchema(t *testing.T) {
	idx := NewIndex("frontsearch:items").
		Prefix("frontsearch:item:").
		SortableText("name").
		Tag("kind").
		TagWithOpts("tags", ",", true).
		MustBuild()

	if idx.StorageType != StorageHash {
		t.Errorf("storage = %q, want HASH", idx.StorageType)
	}
	if len(idx.Fields) != 3 {
		t.Fatalf("fields count = %d, want 3", len(idx.Fields))
	}
	name := idx.Fields[0]
	if name.Type != IndexFieldText || !name.Sortable || !name.NoStem {
		t.Errorf("name field = %+v, want sortable unstemmed TEXT", name)
	}
	if idx.Fields[1].Type != IndexFieldTag || idx.Fields[1].Sortable {
		t.Errorf("kind field = %+v, want plain TAG", idx.Fields[1])
	}
	if !idx.HasField("tags") || idx.HasField("missing") {
		t.Error("HasField mismatch")
	}
}

func TestIndexBuilder_PlainText(t *testing.T) {
	idx := NewIndex("txt").Text("body").MustBuild()
	f := idx.Fields[0]
	if f.Type != IndexFieldText || f.Sortable || f.NoStem {
		t.Errorf("field = %+v, want plain TEXT", f)
	}
}

func TestIndexBuilder_TagOptions(t *testing.T) {
	idx := NewIndex("tag-idx").
		Prefix("t:").
		TagWithOpts("tags", "|", true).
		MustBuild()

	f := idx.Fields[0]
	if f.TagSeparator != "|" {
		t.Errorf("separator = %q, want |", f.TagSeparator)
	}
	if !f.TagCaseSensitive {
		t.Error("expected TagCaseSensitive=true")
	}
}

func TestIndexBuilder_MultiplePrefixes(t *testing.T) {
	idx := NewIndex("multi-idx").
		Prefix("a:", "b:", "c:").
		Tag("x").
		MustBuild()

	if len(idx.Prefixes) != 3 {
		t.Errorf("prefix count = %d, want 3", len(idx.Prefixes))
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Tag("x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Tag("x").Build()
			},
			wantErr: "invalid characters",
		},
		{
			name: "duplicate field",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Tag("x").Text("x").Build()
			},
			wantErr: "duplicate field name: x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewIndex("").MustBuild()
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("my-idx").
		Prefix("doc:").
		Tag("cat").
		SortableText("name").
		MustBuild()

	want := "FT.CREATE my-idx ON HASH PREFIX doc: SCHEMA cat TAG name TEXT SORTABLE"
	if got := idx.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestListQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       ListQuery
		wantErr string
	}{
		{"ok", ListQuery{IndexName: "idx", Limit: 10}, ""},
		{"no index", ListQuery{}, "index name is required"},
		{"negative offset", ListQuery{IndexName: "idx", Offset: -1}, "offset"},
		{"negative limit", ListQuery{IndexName: "idx", Limit: -1}, "limit"},
		{"text without field", ListQuery{IndexName: "idx", Text: "cpu"}, "text field"},
		{"tag without field", ListQuery{IndexName: "idx", Tags: []TagFilter{{Values: []string{"a"}}}}, "tag filter field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Op: OpSearch, Err: ErrIndexNotFound}
	if err.Error() != "FT.SEARCH: db: index not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Unwrap() != ErrIndexNotFound {
		t.Error("Unwrap mismatch")
	}
}
