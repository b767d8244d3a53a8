package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcus/aba-directory/internal/models"
	"go.uber.org/zap"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(t.TempDir(), zap.NewNop())
}

func TestFileStoreProviderRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := newTestFileStore(t)

	rank := 1
	in := []models.Provider{
		{ID: "1", Name: "A", County: "Salt Lake", Rank: &rank},
		{ID: "2", Name: "B", Extra: map[string]string{"Waitlist": "6 weeks"}},
	}
	if err := fs.ReplaceAll(ctx, in); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	// A fresh store over the same directory reads the persisted file.
	reopened := NewFileStore(fs.dir, zap.NewNop())
	got, err := reopened.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].Extra["Waitlist"] != "6 weeks" {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got[0].Rank == nil || *got[0].Rank != 1 {
		t.Fatalf("rank lost: %+v", got[0])
	}
}

func TestFileStoreReadOnlyFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	fs := NewFileStore("/proc/readonly-nonexistent", zap.NewNop())

	if err := fs.ReplaceAll(ctx, []models.Provider{{ID: "1", Name: "A"}}); err != nil {
		t.Fatalf("ReplaceAll should degrade, not fail: %v", err)
	}

	got, err := fs.LoadAll(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("in-memory fallback lost the snapshot: %v %v", got, err)
	}
}

func TestFileStoreBlogCRUD(t *testing.T) {
	ctx := context.Background()
	fs := newTestFileStore(t)

	post := models.BlogPost{
		ID:    "p1",
		Title: "Understanding ABA Coverage",
		Slug:  "understanding-aba-coverage",
		Date:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	if err := fs.Create(ctx, post); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := fs.Create(ctx, post); err == nil {
		t.Fatal("duplicate slug accepted")
	}

	got, err := fs.GetBySlug(ctx, post.Slug)
	if err != nil || got.ID != "p1" {
		t.Fatalf("GetBySlug: %+v %v", got, err)
	}

	got.Title = "Updated"
	if err := fs.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, _ := fs.GetByID(ctx, "p1")
	if again.Title != "Updated" {
		t.Fatalf("update not applied: %+v", again)
	}

	if err := fs.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := fs.GetBySlug(ctx, post.Slug); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := fs.Delete(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestFileStoreListSortsByDateDesc(t *testing.T) {
	ctx := context.Background()
	fs := newTestFileStore(t)

	older := models.BlogPost{ID: "old", Slug: "old", Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	newer := models.BlogPost{ID: "new", Slug: "new", Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	_ = fs.Create(ctx, older)
	_ = fs.Create(ctx, newer)

	posts, err := fs.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != "new" {
		t.Fatalf("expected newest first, got %+v", posts)
	}
}
