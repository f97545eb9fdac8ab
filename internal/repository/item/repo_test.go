package item

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/frontsearch/internal/db"
	"github.com/kailas-cloud/frontsearch/internal/domain"
	domitem "github.com/kailas-cloud/frontsearch/internal/domain/item"
)

func TestEnsureIndex_Creates(t *testing.T) {
	var created *db.IndexDefinition
	s := &mockStore{
		indexExistsFn: func(_ context.Context, name string) (bool, error) {
			if name != "fs:items" {
				t.Errorf("probed %q", name)
			}
			return false, nil
		},
		createIndexFn: func(_ context.Context, def *db.IndexDefinition) error {
			created = def
			return nil
		},
	}

	if err := New(s, testPrefix).EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected CreateIndex call")
	}
	if created.Prefixes[0] != "fs:item:" {
		t.Errorf("prefix = %q", created.Prefixes[0])
	}
	for _, f := range []string{FieldName, FieldKind, FieldTags, FieldDSUID, FieldStarred} {
		if !created.HasField(f) {
			t.Errorf("schema lacks %q", f)
		}
	}
}

func TestEnsureIndex_AlreadyPresent(t *testing.T) {
	s := &mockStore{
		indexExistsFn: func(context.Context, string) (bool, error) { return true, nil },
		createIndexFn: func(context.Context, *db.IndexDefinition) error {
			t.Error("CreateIndex must not be called")
			return nil
		},
	}
	if err := New(s, testPrefix).EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureIndex_RaceTolerated(t *testing.T) {
	s := &mockStore{
		createIndexFn: func(context.Context, *db.IndexDefinition) error { return db.ErrIndexExists },
	}
	if err := New(s, testPrefix).EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureIndex_Error(t *testing.T) {
	sentinel := errors.New("down")
	s := &mockStore{
		indexExistsFn: func(context.Context, string) (bool, error) { return false, sentinel },
	}
	if err := New(s, testPrefix).EnsureIndex(context.Background()); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
}

func TestUpsert_Created(t *testing.T) {
	var gotKey string
	var gotFields map[string]string
	s := &mockStore{
		hsetFn: func(_ context.Context, key string, fields map[string]string) error {
			gotKey, gotFields = key, fields
			return nil
		},
	}

	it := makeItem(t, "abc")
	created, err := New(s, testPrefix).Upsert(context.Background(), &it)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true")
	}
	if gotKey != "fs:item:abc" {
		t.Errorf("key = %q", gotKey)
	}
	want := map[string]string{
		"uid": "abc", "kind": "dashboard", "name": "Server CPU", "url": "/d/abc",
		"location": "folder-1", "tags": "infra,prod", "ds_uid": "ds-1", "starred": "true",
	}
	for k, v := range want {
		if gotFields[k] != v {
			t.Errorf("field %s = %q, want %q", k, gotFields[k], v)
		}
	}
}

func TestUpsert_Replaced(t *testing.T) {
	s := &mockStore{
		existsFn: func(context.Context, string) (bool, error) { return true, nil },
	}
	it := makeItem(t, "abc")
	created, err := New(s, testPrefix).Upsert(context.Background(), &it)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false")
	}
}

func TestUpsert_HSetError(t *testing.T) {
	sentinel := errors.New("boom")
	s := &mockStore{
		hsetFn: func(context.Context, string, map[string]string) error { return sentinel },
	}
	it := makeItem(t, "abc")
	if _, err := New(s, testPrefix).Upsert(context.Background(), &it); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
}

func TestUpsertMany(t *testing.T) {
	var got []db.HashSetItem
	s := &mockStore{
		hsetMultiFn: func(_ context.Context, items []db.HashSetItem) error {
			got = items
			return nil
		},
	}
	items := []domitem.Item{makeItem(t, "a"), makeItem(t, "b")}
	if err := New(s, testPrefix).UpsertMany(context.Background(), items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Key != "fs:item:a" || got[1].Fields["uid"] != "b" {
		t.Errorf("batch = %+v", got)
	}
}

func TestGet_Success(t *testing.T) {
	s := &mockStore{
		hgetAllFn: func(_ context.Context, key string) (map[string]string, error) {
			if key != "fs:item:abc" {
				t.Errorf("key = %q", key)
			}
			return map[string]string{
				"uid": "abc", "kind": "folder", "name": "Ops", "tags": "a,b", "ds_uid": "", "starred": "false",
			}, nil
		},
	}
	it, err := New(s, testPrefix).Get(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.UID() != "abc" || it.Kind() != domitem.KindFolder || it.Name() != "Ops" {
		t.Errorf("item = %+v", it)
	}
	if !slices.Equal(it.Tags(), []string{"a", "b"}) || it.DatasourceUIDs() != nil || it.Starred() {
		t.Errorf("lists/starred mismatch: %v %v %v", it.Tags(), it.DatasourceUIDs(), it.Starred())
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := New(&mockStore{}, testPrefix).Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	var deleted string
	s := &mockStore{
		existsFn: func(context.Context, string) (bool, error) { return true, nil },
		delFn: func(_ context.Context, key string) error {
			deleted = key
			return nil
		},
	}
	if err := New(s, testPrefix).Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "fs:item:abc" {
		t.Errorf("deleted %q", deleted)
	}
}

func TestDelete_NotFound(t *testing.T) {
	err := New(&mockStore{}, testPrefix).Delete(context.Background(), "abc")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFromHash_FallbackUID(t *testing.T) {
	it := FromHash("from-key", map[string]string{"kind": "panel", "name": "P"})
	if it.UID() != "from-key" {
		t.Errorf("uid = %q", it.UID())
	}
	if UIDFromKey(testPrefix, "fs:item:x") != "x" {
		t.Error("UIDFromKey mismatch")
	}
}

func TestIndexReady(t *testing.T) {
	exists := false
	s := &mockStore{indexExistsFn: func(context.Context, string) (bool, error) { return exists, nil }}
	r := New(s, testPrefix)

	if err := r.IndexReady(context.Background()); !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
	exists = true
	if err := r.IndexReady(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCount(t *testing.T) {
	var gotIndex string
	s := &mockStore{countFn: func(_ context.Context, q *db.ListQuery) (int, error) {
		gotIndex = q.IndexName
		return 42, nil
	}}
	r := New(s, testPrefix)

	n, err := r.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("count: got %d, want 42", n)
	}
	if gotIndex != "fs:items" {
		t.Errorf("index: got %q, want fs:items", gotIndex)
	}
}

func TestCount_Error(t *testing.T) {
	s := &mockStore{countFn: func(context.Context, *db.ListQuery) (int, error) {
		return 0, db.ErrIndexNotFound
	}}
	if _, err := New(s, testPrefix).Count(context.Background()); !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}
