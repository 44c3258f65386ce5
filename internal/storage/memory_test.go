package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// exerciseStore runs the same CRUD sequence against any KVStore.
func exerciseStore(t *testing.T, store domain.KVStore) {
	t.Helper()

	// Missing key.
	if _, ok, err := store.Get("theme"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	// Set + Get.
	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := store.Get("theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}

	// Overwrite.
	if err := store.Set("theme", "light"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := store.Get("theme"); v != "light" {
		t.Fatalf("expected light after overwrite, got %q", v)
	}

	// Delete, twice.
	if err := store.Delete("theme"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete("theme"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if _, ok, _ := store.Get("theme"); ok {
		t.Fatal("key still present after delete")
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	exerciseStore(t, NewMemoryStore(log))
}

func TestFileStoreCRUD(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store, err := OpenFileStore(filepath.Join(t.TempDir(), "prefs.json"), log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseStore(t, store)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	store, err := OpenFileStore(path, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Set("savedRecipes", "[1,2,3]"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := OpenFileStore(path, log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, err := reopened.Get("savedRecipes")
	if err != nil || !ok || v != "[1,2,3]" {
		t.Fatalf("after reopen: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store, err := OpenFileStore(path, log)
	if err != nil {
		t.Fatalf("open corrupt: %v", err)
	}
	if _, ok, _ := store.Get("theme"); ok {
		t.Fatal("expected empty store")
	}

	// The next write replaces the corrupt file.
	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	reopened, err := OpenFileStore(path, log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, _, _ := reopened.Get("theme"); v != "dark" {
		t.Fatalf("expected dark, got %q", v)
	}
}

func TestFileStoreEmptyPath(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	if _, err := OpenFileStore("", log); err == nil {
		t.Fatal("expected error for empty path")
	}
}
