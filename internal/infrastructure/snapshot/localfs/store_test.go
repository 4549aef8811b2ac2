package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	in := map[string][]string{"0x1": {"great halal food"}}
	if err := store.WriteJSON(context.Background(), "raw_reviews_map.json", in); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var out map[string][]string
	if err := store.ReadJSON(context.Background(), "raw_reviews_map.json", &out); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(out["0x1"]) != 1 || out["0x1"][0] != "great halal food" {
		t.Errorf("round trip = %v", out)
	}
}

func TestWriteJSONIsPrettyPrinted(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := store.WriteJSON(context.Background(), "raw_restaurants.json", []string{"a", "b"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "raw_restaurants.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "\n  ") {
		t.Errorf("expected indented JSON, got %q", raw)
	}
}

func TestReadJSONMissingFile(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var out any
	if err := store.ReadJSON(context.Background(), "missing.json", &out); err == nil {
		t.Error("expected error for missing snapshot")
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := New(base); err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := os.Stat(base); err != nil {
		t.Errorf("snapshot dir not created: %v", err)
	}
}
