package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSourceRepository_CRUD(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_sources.json")
	repo, err := NewFileSourceRepository(path)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	ctx := context.Background()

	if _, err := repo.Get(ctx, 1); !os.IsNotExist(err) {
		t.Fatalf("expected not exist error, got %v", err)
	}

	if err := repo.Save(ctx, 1, []string{"rbc_news", "meduzalive"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[0] != "rbc_news" || got[1] != "meduzalive" {
		t.Fatalf("unexpected channels %v", got)
	}

	// the returned slice is a copy
	got[0] = "mutated"
	again, _ := repo.Get(ctx, 1)
	if again[0] != "rbc_news" {
		t.Fatalf("stored data mutated through returned slice: %v", again)
	}
}

func TestFileSourceRepository_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_sources.json")
	ctx := context.Background()

	repo, err := NewFileSourceRepository(path)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	repo.Save(ctx, 7, []string{"foo"})

	reopened, err := NewFileSourceRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get after reload: %v", err)
	}
	if len(got) != 1 || got[0] != "foo" {
		t.Fatalf("unexpected channels after reload %v", got)
	}
}
