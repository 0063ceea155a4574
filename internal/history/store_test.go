package history_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"personmatch/internal/history"
	"personmatch/internal/testsupport"
)

func TestRecordAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	if store.Path() != cfg.HistoryPath() {
		t.Fatalf("expected store at %q, got %q", cfg.HistoryPath(), store.Path())
	}

	ctx := context.Background()
	started := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	run := history.Run{
		ID:         "run-1",
		InputPath:  "/data/contacts.csv",
		OutputPath: "/data/output/output_contacts.csv",
		Mode:       "same_email_or_phone",
		Records:    5,
		Clusters:   3,
		Merges:     1,
		Status:     history.StatusSucceeded,
		StartedAt:  started,
		Duration:   1500 * time.Millisecond,
	}
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected run to be found")
	}
	if diff := cmp.Diff(run, *got); diff != "" {
		t.Fatalf("run mismatch (-want +got):\n%s", diff)
	}
	if !got.Succeeded() {
		t.Fatal("expected succeeded run")
	}

	missing, err := store.Get(ctx, "absent")
	if err != nil {
		t.Fatalf("Get missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing run, got %#v", missing)
	}
}

func TestRecordFailedRunKeepsMessage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	ctx := context.Background()
	err := store.Record(ctx, history.Run{
		ID:           "run-failed",
		InputPath:    "broken.csv",
		Mode:         "same_email",
		Status:       history.StatusFailed,
		ErrorMessage: "malformed input: load: parse: broken.csv",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	got, err := store.Get(ctx, "run-failed")
	if err != nil || got == nil {
		t.Fatalf("Get failed: %v (%v)", err, got)
	}
	if got.Succeeded() || got.OutputPath != "" || got.ErrorMessage == "" {
		t.Fatalf("unexpected failed run: %#v", got)
	}
	if got.StartedAt.IsZero() {
		t.Fatal("expected started_at to default to now")
	}
}

func TestRecordRequiresID(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	if err := store.Record(context.Background(), history.Run{InputPath: "x.csv"}); err == nil {
		t.Fatal("expected error for missing run id")
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	offsets := []time.Duration{0, 500 * time.Millisecond, time.Second, 90 * time.Minute}
	for i, offset := range offsets {
		run := history.Run{
			ID:        fmt.Sprintf("run-%d", i),
			InputPath: "contacts.csv",
			Mode:      "same_phone",
			Status:    history.StatusSucceeded,
			StartedAt: base.Add(offset),
		}
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var ids []string
	for _, run := range all {
		ids = append(ids, run.ID)
	}
	if diff := cmp.Diff([]string{"run-3", "run-2", "run-1", "run-0"}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List limited failed: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "run-3" {
		t.Fatalf("unexpected limited list: %#v", limited)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Record(context.Background(), history.Run{ID: "persisted", InputPath: "a.csv", Mode: "same_email"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenHistory(t, cfg)
	runs, err := reopened.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "persisted" {
		t.Fatalf("expected persisted run, got %#v", runs)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := history.OpenPath(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}
