package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='llm_request_events'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "llm_request_events" {
		t.Errorf("table name = %q, want 'llm_request_events'", name)
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Model: "m", Purpose: "p", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func appendEvents(t *testing.T, repo EventRepo, events ...LLMRequestEventData) {
	t.Helper()
	for i, e := range events {
		if err := repo.AppendLLMRequest(context.Background(), e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
}

func TestAppendAndGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	appendEvents(t, repo, LLMRequestEventData{
		RequestID:    "req-1",
		Provider:     "gemini",
		Model:        "gemini-2.5-flash",
		Purpose:      "generate:reading",
		InputTokens:  120,
		OutputTokens: 900,
		LatencyMs:    2300,
		Success:      true,
		RequestBody:  "[user]\nwrite a passage",
		ResponseBody: `{"title":"t"}`,
	})

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.RequestID != "req-1" || e.Provider != "gemini" || e.Purpose != "generate:reading" {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.InputTokens != 120 || e.OutputTokens != 900 || e.LatencyMs != 2300 {
		t.Errorf("unexpected usage: %+v", e)
	}
	if !e.Success {
		t.Error("expected success")
	}
	if e.ResponseBody != `{"title":"t"}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
	if e.Timestamp.Before(before) {
		t.Errorf("timestamp %v is before %v", e.Timestamp, before)
	}
}

func TestGetLLMEventMissing(t *testing.T) {
	s := openTestStore(t)
	e, err := s.EventRepo().GetLLMEvent(context.Background(), 999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e != nil {
		t.Fatalf("expected nil, got %+v", e)
	}
}

func TestQueryLLMEventsOrderAndFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendEvents(t, repo,
		LLMRequestEventData{Model: "a", Purpose: "generate:reading", Success: true},
		LLMRequestEventData{Model: "b", Purpose: "generate:listening", Success: true},
		LLMRequestEventData{Model: "c", Purpose: "generate:reading", Success: false, ErrorMessage: "boom"},
	)

	tests := []struct {
		name   string
		opts   QueryOpts
		models []string
	}{
		{"all newest first", QueryOpts{}, []string{"c", "b", "a"}},
		{"limit", QueryOpts{Limit: 2}, []string{"c", "b"}},
		{"purpose", QueryOpts{Purpose: "generate:reading"}, []string{"c", "a"}},
		{"after", QueryOpts{After: 1}, []string{"c", "b"}},
		{"before", QueryOpts{Before: 3}, []string{"b", "a"}},
		{"future from", QueryOpts{From: time.Now().Add(time.Hour)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.QueryLLMEvents(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			var got []string
			for _, e := range events {
				got = append(got, e.Model)
			}
			if len(got) != len(tt.models) {
				t.Fatalf("models = %v, want %v", got, tt.models)
			}
			for i := range got {
				if got[i] != tt.models[i] {
					t.Fatalf("models = %v, want %v", got, tt.models)
				}
			}
		})
	}
}

func TestUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendEvents(t, repo,
		LLMRequestEventData{Model: "gemini-2.5-flash", Purpose: "generate:reading", InputTokens: 100, OutputTokens: 1000, LatencyMs: 1000, Success: true},
		LLMRequestEventData{Model: "gemini-2.5-flash", Purpose: "generate:reading", InputTokens: 50, OutputTokens: 500, LatencyMs: 2001, Success: true},
		LLMRequestEventData{Model: "gemini-2.5-pro", Purpose: "generate:grammar-vocabulary", InputTokens: 10, OutputTokens: 20, LatencyMs: 300, Success: true},
	)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %d, want 2", len(byPurpose))
	}
	reading := byPurpose[1]
	if reading.Purpose != "generate:reading" || reading.Model != "" {
		t.Fatalf("unexpected row: %+v", reading)
	}
	if reading.Calls != 2 || reading.InputTokens != 150 || reading.OutputTokens != 1500 {
		t.Errorf("unexpected totals: %+v", reading)
	}
	if reading.AvgLatencyMs != 1501 {
		t.Errorf("avg latency = %d, want 1501", reading.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("models = %d, want 2", len(byModel))
	}
	if byModel[0].Model != "gemini-2.5-flash" || byModel[0].Calls != 2 {
		t.Errorf("unexpected row: %+v", byModel[0])
	}
	if byModel[1].Model != "gemini-2.5-pro" || byModel[1].InputTokens != 10 {
		t.Errorf("unexpected row: %+v", byModel[1])
	}
}

func TestUsageEmpty(t *testing.T) {
	s := openTestStore(t)
	stats, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("expected no rows, got %d", len(stats))
	}
}

func TestEnsureDirCreatesParent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "dir", "aptiz.db")
	if err := EnsureDir(p); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(p)
	if err != nil {
		t.Fatalf("open in created dir: %v", err)
	}
	s.Close()
}

func TestDefaultDBPathHonorsEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "x", "events.db")
	t.Setenv("APTIZ_DB", want)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APTIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != filepath.Join(dir, "aptiz", "aptiz.db") {
		t.Fatalf("path = %q", got)
	}
}
