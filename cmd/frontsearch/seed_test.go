package main

import (
	"slices"
	"testing"
)

func TestParseSeed(t *testing.T) {
	data := []byte(`
items:
  - uid: cpu
    kind: dashboard
    name: Server CPU
    url: /d/cpu
    location: infra
    tags: [prod, infra]
    ds_uid: [prom]
    starred: true
  - kind: folder
    name: Infra
`)
	uids, inputs, err := parseSeed(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(uids, []string{"cpu", ""}) {
		t.Errorf("uids: got %q", uids)
	}
	if len(inputs) != 2 {
		t.Fatalf("inputs: got %d, want 2", len(inputs))
	}

	first := inputs[0]
	if first.Kind != "dashboard" || first.Name != "Server CPU" || first.URL != "/d/cpu" || first.Location != "infra" {
		t.Errorf("first item: got %+v", first)
	}
	if !slices.Equal(first.Tags, []string{"prod", "infra"}) || !slices.Equal(first.DatasourceUIDs, []string{"prom"}) {
		t.Errorf("first item lists: got %v %v", first.Tags, first.DatasourceUIDs)
	}
	if !first.Starred || inputs[1].Starred {
		t.Error("starred flags not carried")
	}
}

func TestParseSeed_Empty(t *testing.T) {
	uids, inputs, err := parseSeed([]byte("items: []\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(uids) != 0 || len(inputs) != 0 {
		t.Errorf("expected no items, got %d/%d", len(uids), len(inputs))
	}
}

func TestParseSeed_Malformed(t *testing.T) {
	if _, _, err := parseSeed([]byte("items: {not: [a list")); err == nil {
		t.Fatal("expected parse error")
	}
}
