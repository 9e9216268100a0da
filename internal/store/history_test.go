package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/fnc/foundation/core/error"
	mdwlog "github.com/msto63/fnc/foundation/core/log"
	"github.com/msto63/fnc/foundation/lang"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{
		Path:   filepath.Join(t.TempDir(), "nested", "history.db"),
		Logger: mdwlog.Discard(),
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	engine := lang.New(lang.Options{Logger: mdwlog.Discard()})

	tests := []struct {
		name       string
		source     string
		wantOK     bool
		wantFaults int
	}{
		{"clean program", "fn f(x) x * 2; f(3)", true, 0},
		{"faulty program", "1 + ; 2", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Parse(tt.name+".fn", tt.source)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			job, err := s.Record(ctx, result, tt.source)
			if err != nil {
				t.Fatalf("Record failed: %v", err)
			}
			if job.ID != result.JobID {
				t.Errorf("Expected job ID %s, got %s", result.JobID, job.ID)
			}

			got, err := s.Get(ctx, job.ID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.Name != tt.name+".fn" || got.Source != tt.source {
				t.Errorf("Expected name/source round trip, got %q / %q", got.Name, got.Source)
			}
			if got.OK != tt.wantOK {
				t.Errorf("Expected OK=%v, got %v", tt.wantOK, got.OK)
			}
			if len(got.Faults) != tt.wantFaults {
				t.Errorf("Expected %d faults, got %d", tt.wantFaults, len(got.Faults))
			}
			if got.Stats != result.Stats {
				t.Errorf("Expected stats %+v, got %+v", result.Stats, got.Stats)
			}
			if got.CreatedAt.IsZero() {
				t.Error("Expected CreatedAt to be set")
			}
		})
	}
}

func TestStore_FaultDetails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := &Job{
		Name:   "broken.fn",
		Source: "(1",
		Faults: []lang.FaultInfo{{Code: "PARSE_FAULT", Message: "parse error at line 1, column 3: expected ')'", Line: 1, Column: 3}},
	}
	if err := s.Save(ctx, job); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if job.ID == uuid.Nil {
		t.Fatal("Expected Save to assign an ID")
	}

	got, err := s.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Faults) != 1 || got.Faults[0] != job.Faults[0] {
		t.Errorf("Expected fault round trip, got %+v", got.Faults)
	}
}

func TestStore_GetUnknown(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), uuid.New())
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.fn", "b.fn", "c.fn"} {
		job := &Job{Name: name, Source: "1", OK: true, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.Save(ctx, job); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	jobs, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Name != "c.fn" || jobs[1].Name != "b.fn" {
		t.Errorf("Expected newest first, got %s, %s", jobs[0].Name, jobs[1].Name)
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected default limit to return all 3 jobs, got %d", len(all))
	}
}

func TestStore_DeleteAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := &Job{Name: "gone.fn", Source: "x", OK: true}
	if err := s.Save(ctx, job); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Errorf("Expected 1 job, got %d", n)
	}

	if err := s.Delete(ctx, job.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, job.ID); err != nil {
		t.Errorf("Expected deleting twice to succeed, got %v", err)
	}
	if n, _ := s.Count(ctx); n != 0 {
		t.Errorf("Expected 0 jobs, got %d", n)
	}
}

func TestStore_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := &Job{ID: uuid.New(), Name: "dup.fn", Source: "1", OK: true}
	if err := s.Save(ctx, job); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	dup := *job
	err := s.Save(ctx, &dup)
	if !mdwerror.HasCode(err, mdwerror.CodeDatabaseError) {
		t.Errorf("Expected DATABASE_ERROR for a duplicate ID, got %v", err)
	}
}

func TestStore_ReopenKeepsJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(Config{Path: path, Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	job := &Job{Name: "kept.fn", Source: "1", OK: true}
	if err := s.Save(ctx, job); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	s.Close()

	s, err = Open(Config{Path: path, Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s.Close()

	if _, err := s.Get(ctx, job.ID); err != nil {
		t.Errorf("Expected job to survive reopen, got %v", err)
	}
}

func TestStore_Ping(t *testing.T) {
	s, err := Open(Config{Path: filepath.Join(t.TempDir(), "history.db"), Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Expected ping on empty store to succeed, got %v", err)
	}

	s.Close()
	err = s.Ping(context.Background())
	if !mdwerror.HasCode(err, mdwerror.CodeDatabaseError) {
		t.Errorf("Expected DATABASE_ERROR after close, got %v", err)
	}
}
