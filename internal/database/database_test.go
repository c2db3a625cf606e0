package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/franckalain/healthanalyzer/internal/models"
	"github.com/google/go-cmp/cmp"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndGetAnalysis(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	want := &models.AnalysisRecord{
		ID:        "a1",
		Category:  models.CategoryFood,
		Provider:  "gemini",
		Status:    true,
		Message:   "Successfully analyzed food items",
		ItemCount: 2,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := db.SaveAnalysis(ctx, want); err != nil {
		t.Fatalf("SaveAnalysis() error = %v", err)
	}

	got, err := db.GetAnalysis(ctx, "a1")
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetAnalysis() mismatch (-want +got):\n%s", diff)
	}

	missing, err := db.GetAnalysis(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("GetAnalysis(missing) = %v, %v", missing, err)
	}
}

func TestGetRecentAnalyses(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		err := db.SaveAnalysis(ctx, &models.AnalysisRecord{
			ID:        id,
			Category:  models.CategoryMedical,
			Provider:  "local",
			Message:   models.ParseErrorMessage,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveAnalysis(%s) error = %v", id, err)
		}
	}

	got, err := db.GetRecentAnalyses(ctx, 2)
	if err != nil {
		t.Fatalf("GetRecentAnalyses() error = %v", err)
	}
	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{"third", "second"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestGetRecentAnalysesEmpty(t *testing.T) {
	got, err := newTestDB(t).GetRecentAnalyses(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetRecentAnalyses() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("GetRecentAnalyses() = %#v, want empty slice", got)
	}
}

func TestSaveAnalysisSetsCreatedAt(t *testing.T) {
	db := newTestDB(t)
	record := &models.AnalysisRecord{ID: "x", Category: models.CategoryFood, Provider: "local"}
	if err := db.SaveAnalysis(context.Background(), record); err != nil {
		t.Fatalf("SaveAnalysis() error = %v", err)
	}
	if record.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}
