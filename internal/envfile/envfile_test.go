package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	if err := Set(path, KeyAccessToken, "tok123"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got := read(t, path)
	want := "KITE_ACCESS_TOKEN=\"tok123\"\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSetReplacesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	seed := "# kite credentials\nKITE_API_KEY=\"abc\"\nKITE_ACCESS_TOKEN=\"old\"\nKITE_API_SECRET=\"xyz\"\n"
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Set(path, KeyAccessToken, "new"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got := read(t, path)
	want := "# kite credentials\nKITE_API_KEY=\"abc\"\nKITE_ACCESS_TOKEN=\"new\"\nKITE_API_SECRET=\"xyz\"\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSetAppendsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	seed := "KITE_API_KEY=\"abc\""
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Set(path, KeyAccessToken, "tok"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got := read(t, path)
	want := "KITE_API_KEY=\"abc\"\nKITE_ACCESS_TOKEN=\"tok\"\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSetIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("OTHER=\"keep\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Set(path, KeyAccessToken, "T1"); err != nil {
		t.Fatal(err)
	}
	if err := Set(path, KeyAccessToken, "T2"); err != nil {
		t.Fatal(err)
	}

	got := read(t, path)
	if n := strings.Count(got, KeyAccessToken+"="); n != 1 {
		t.Fatalf("expected exactly one token line, got %d in %q", n, got)
	}
	if !strings.Contains(got, "KITE_ACCESS_TOKEN=\"T2\"") {
		t.Fatalf("expected latest value, got %q", got)
	}
	if !strings.Contains(got, "OTHER=\"keep\"") {
		t.Fatalf("unrelated line lost: %q", got)
	}
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
