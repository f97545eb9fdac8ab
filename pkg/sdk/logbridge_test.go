package frontsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
	"github.com/kailas-cloud/frontsearch/internal/usecase/fuzzy"
	"github.com/kailas-cloud/frontsearch/internal/usecase/searchcache"
)

type failingFetcher struct{ err error }

func (f failingFetcher) Search(context.Context, *query.Search) (response.Response, error) {
	return response.Response{}, f.err
}

func jsonLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestZapLogger_Nil(t *testing.T) {
	if newZapLogger(nil).Core().Enabled(zap.ErrorLevel) {
		t.Error("expected no-op logger without slog logger")
	}
}

func TestZapLogger_ForwardsFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	zl := newZapLogger(l).With(zap.String("component", "cache"))

	zl.Debug("dropped")
	zl.Warn("slow fetch", zap.Int("rows", 12))

	lines := jsonLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %s", len(lines), buf.String())
	}
	got := lines[0]
	if got["level"] != "WARN" || got["msg"] != "slow fetch" {
		t.Errorf("entry = %v", got)
	}
	if got["component"] != "cache" || got["rows"] != float64(12) {
		t.Errorf("fields = %v", got)
	}
}

func TestZapLogger_CacheFetchFailureReachesSlog(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	c := searchcache.New(failingFetcher{err: errors.New("connection refused")},
		fuzzy.DefaultOptions(), newZapLogger(l))

	idx, err := c.Resolve(context.Background(), []string{KindDashboard})
	if err != nil {
		t.Fatalf("fetch failure must not be returned: %v", err)
	}
	if idx.Dataset().Len() != 0 {
		t.Errorf("expected empty dataset, got %d rows", idx.Dataset().Len())
	}

	var found bool
	for _, line := range jsonLines(t, &buf) {
		msg, _ := line["error"].(string)
		if line["level"] == "ERROR" && strings.Contains(msg, "connection refused") {
			found = true
		}
	}
	if !found {
		t.Errorf("fetch failure not logged: %s", buf.String())
	}
}
