package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/karim/itqan/internal/strength"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStrengthRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.StrengthRepo()
	ctx := context.Background()

	practiced := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	rec := strength.Record{
		ItemID:        "bayt",
		Score:         70,
		LastPracticed: practiced,
		ProvenMastery: true,
	}
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.Get(ctx, "bayt")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for stored record")
	}
	if got.Score != 70 || !got.ProvenMastery {
		t.Errorf("record = %+v, want score 70 proven", got)
	}
	if !got.LastPracticed.Equal(practiced) {
		t.Errorf("last practiced = %v, want %v", got.LastPracticed, practiced)
	}
}

func TestStrengthRepo_UpsertReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.StrengthRepo()
	ctx := context.Background()

	if err := repo.Upsert(ctx, strength.Record{ItemID: "qalam", Score: 40}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Upsert(ctx, strength.Record{ItemID: "qalam", Score: 50}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(ctx, "qalam")
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != 50 {
		t.Errorf("score = %d, want 50 after replace", got.Score)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("rows = %d, want 1 (upsert must not duplicate)", len(all))
	}
}

func TestStrengthRepo_GetMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.StrengthRepo().Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for unpracticed item", got)
	}
}

func TestStrengthRepo_NeverPracticed(t *testing.T) {
	s := openTestStore(t)
	repo := s.StrengthRepo()
	ctx := context.Background()

	// Zero LastPracticed round-trips as zero, not as some epoch date.
	if err := repo.Upsert(ctx, strength.Record{ItemID: "idafa", Score: 0}); err != nil {
		t.Fatal(err)
	}
	got, err := repo.Get(ctx, "idafa")
	if err != nil {
		t.Fatal(err)
	}
	if !got.LastPracticed.IsZero() {
		t.Errorf("last practiced = %v, want zero time", got.LastPracticed)
	}
}

func TestStrengthRepo_UpsertAllAndOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.StrengthRepo()
	ctx := context.Background()

	recs := []strength.Record{
		{ItemID: "qalam", Score: 30},
		{ItemID: "bayt", Score: 60},
	}
	if err := repo.UpsertAll(ctx, recs); err != nil {
		t.Fatalf("UpsertAll: %v", err)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ItemID != "bayt" || all[1].ItemID != "qalam" {
		t.Errorf("all = %+v, want ordered by item id", all)
	}
}

func TestStrengthRepo_Reset(t *testing.T) {
	s := openTestStore(t)
	repo := s.StrengthRepo()
	ctx := context.Background()

	if err := repo.Upsert(ctx, strength.Record{ItemID: "bayt", Score: 60}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	all, err := repo.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("rows = %d after reset, want 0", len(all))
	}
}

func TestResultRepo_AppendAndAccuracy(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	events := []AnswerEvent{
		{SessionID: "s1", ExerciseID: "ex-1", ItemIDs: []string{"bayt"}, Correct: true},
		{SessionID: "s1", ExerciseID: "ex-2", ItemIDs: []string{"bayt", "qalam"}, Correct: false, WasRetry: true},
		{SessionID: "s2", ExerciseID: "ex-1", ItemIDs: []string{"bayt"}, Correct: true},
	}
	for _, ev := range events {
		if err := repo.Append(ctx, ev); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	acc, attempts, err := repo.ItemAccuracy(ctx, "bayt")
	if err != nil {
		t.Fatalf("ItemAccuracy: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if acc < 0.66 || acc > 0.67 {
		t.Errorf("accuracy = %v, want 2/3", acc)
	}

	acc, attempts, err = repo.ItemAccuracy(ctx, "qalam")
	if err != nil {
		t.Fatal(err)
	}
	if attempts != 1 || acc != 0 {
		t.Errorf("qalam accuracy = %v over %d, want 0 over 1", acc, attempts)
	}

	// Unseen item reports zero attempts rather than an error.
	_, attempts, err = repo.ItemAccuracy(ctx, "nope")
	if err != nil || attempts != 0 {
		t.Errorf("unseen item = %d attempts, err %v", attempts, err)
	}
}

func TestResultRepo_SessionCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	for _, correct := range []bool{true, false, true} {
		if err := repo.Append(ctx, AnswerEvent{
			SessionID: "s1", ExerciseID: "ex", ItemIDs: []string{"i"}, Correct: correct,
		}); err != nil {
			t.Fatal(err)
		}
	}

	total, correct, err := repo.SessionCounts(ctx, "s1")
	if err != nil {
		t.Fatalf("SessionCounts: %v", err)
	}
	if total != 3 || correct != 2 {
		t.Errorf("counts = %d/%d, want 3 total 2 correct", total, correct)
	}

	total, correct, err = repo.SessionCounts(ctx, "missing")
	if err != nil || total != 0 || correct != 0 {
		t.Errorf("missing session = %d/%d err %v, want zeros", total, correct, err)
	}
}

func TestResultRepo_LatestAnswerTime(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	earlier := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	later := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{later, earlier} {
		if err := repo.Append(ctx, AnswerEvent{
			SessionID: "s1", ExerciseID: "ex", ItemIDs: []string{"bayt"},
			Correct: true, CreatedAt: ts,
		}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.LatestAnswerTime(ctx, "bayt")
	if err != nil {
		t.Fatalf("LatestAnswerTime: %v", err)
	}
	if !got.Equal(later) {
		t.Errorf("latest = %v, want %v", got, later)
	}

	got, err = repo.LatestAnswerTime(ctx, "never")
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Errorf("latest for unseen item = %v, want zero time", got)
	}
}

func TestGraphRepo_SaveLatestPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.GraphRepo()
	ctx := context.Background()

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest != nil {
		t.Errorf("latest = %q, want nil before any save", latest)
	}

	for _, v := range []string{`{"v":1}`, `{"v":2}`, `{"v":3}`} {
		if err := repo.Save(ctx, []byte(v)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	latest, err = repo.Latest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(latest) != `{"v":3}` {
		t.Errorf("latest = %s, want the most recent snapshot", latest)
	}

	if err := repo.Prune(ctx, 1); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	var n int
	if err := s.DB().Get(&n, `SELECT COUNT(*) FROM graph_snapshots`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("snapshots after prune = %d, want 1", n)
	}
	latest, err = repo.Latest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(latest) != `{"v":3}` {
		t.Errorf("latest after prune = %s, want the newest kept", latest)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom", "itqan.db")
	t.Setenv("ITQAN_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("ITQAN_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	want := filepath.Join(dataHome, "itqan", "itqan.db")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
