package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sample = `
- name: Anteater Game Club
  genre: Recreation
  instagram: uci.gameclub
  categories: [games, social]
- name: Duplicate Listing
  instagram: "@uci.gameclub"
- name: Hackers at UCI
  genre: Technology
  instagram: " hackuci "
- name: No Instagram
  genre: Academic
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "club_manifest.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Clubs) != 4 {
		t.Fatalf("got %d clubs", len(m.Clubs))
	}
	if got := m.Clubs[0].Categories; !reflect.DeepEqual(got, []string{"games", "social"}) {
		t.Fatalf("categories = %v", got)
	}
	if got, want := m.Handles(), []string{"uci.gameclub", "hackuci"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Handles() = %v, want %v", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist, got %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("name: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a decode error")
	}
}
