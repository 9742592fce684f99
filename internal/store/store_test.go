package store

import (
	"context"
	"fmt"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
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

func TestKV_GetMissing(t *testing.T) {
	kv := openTestStore(t).KV()

	v, ok, err := kv.Get(context.Background(), KeyHistory)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("expected missing key, got %q (ok=%v)", v, ok)
	}
}

func TestKV_SetReplacesValue(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	if err := kv.Set(ctx, KeyTheme, "light"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, KeyTheme, "dark"); err != nil {
		t.Fatalf("set again: %v", err)
	}

	v, ok, err := kv.Get(ctx, KeyTheme)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || v != "dark" {
		t.Fatalf("got %q (ok=%v), want dark", v, ok)
	}

	keys, err := kv.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected one key after replace, got %v", keys)
	}
}

func TestKV_DeleteAndClear(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	for _, k := range []string{KeyTheme, KeyHistory, "other"} {
		if err := kv.Set(ctx, k, "x"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	if err := kv.Delete(ctx, "other"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "never-set"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}

	keys, err := kv.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != KeyTheme || keys[1] != KeyHistory {
		t.Fatalf("keys = %v, want [%s %s]", keys, KeyTheme, KeyHistory)
	}

	if err := kv.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	keys, err = kv.Keys(ctx)
	if err != nil {
		t.Fatalf("keys after clear: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected no keys after clear, got %v", keys)
	}
}

func TestRequestRepo_AppendQueryGet(t *testing.T) {
	repo := openTestStore(t).RequestRepo()
	ctx := context.Background()

	for i, purpose := range []string{"explain", "follow-up", "explain"} {
		err := repo.Append(ctx, AIRequestData{
			Provider:     "gemini",
			Model:        "gemini-2.0-flash",
			Purpose:      purpose,
			InputTokens:  10 * (i + 1),
			OutputTokens: 5,
			LatencyMs:    100,
			Success:      true,
			Prompt:       fmt.Sprintf("prompt %d", i),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.Query(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}

	explains, err := repo.Query(ctx, QueryOpts{Purpose: "explain", Limit: 1})
	if err != nil {
		t.Fatalf("query explain: %v", err)
	}
	if len(explains) != 1 || explains[0].Purpose != "explain" {
		t.Fatalf("unexpected filtered result: %+v", explains)
	}

	rec, err := repo.Get(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec == nil || rec.Prompt == "" {
		t.Fatalf("expected stored prompt, got %+v", rec)
	}

	missing, err := repo.Get(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing id, got %+v", missing)
	}
}

func TestRequestRepo_Usage(t *testing.T) {
	repo := openTestStore(t).RequestRepo()
	ctx := context.Background()

	data := []AIRequestData{
		{Model: "gemini-2.0-flash", Purpose: "explain", InputTokens: 100, OutputTokens: 20, LatencyMs: 200, Success: true},
		{Model: "gemini-2.0-flash", Purpose: "explain", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: true},
		{Model: "gpt-4o-mini", Purpose: "cli", InputTokens: 30, OutputTokens: 30, LatencyMs: 60, Success: false},
	}
	for _, d := range data {
		if err := repo.Append(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.UsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %+v", byPurpose)
	}
	// Sorted by key: cli, explain.
	if byPurpose[1].Key != "explain" || byPurpose[1].Calls != 2 || byPurpose[1].InputTokens != 150 {
		t.Errorf("unexpected explain usage: %+v", byPurpose[1])
	}
	if byPurpose[1].AvgLatencyMs != 150 {
		t.Errorf("avg latency = %d, want 150", byPurpose[1].AvgLatencyMs)
	}

	byModel, err := repo.UsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Key != "gemini-2.0-flash" {
		t.Fatalf("unexpected model usage: %+v", byModel)
	}
}
