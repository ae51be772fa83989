package testutil_test

import (
	"path/filepath"
	"testing"

	"github.com/example/go-procrustes/internal/testutil"
)

func TestWriteFiles_ReadFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"a.txt":     "alpha",
		"sub/b.txt": "beta",
	})

	if got := testutil.ReadFile(t, filepath.Join(dir, "a.txt")); got != "alpha" {
		t.Errorf("a.txt = %q; want %q", got, "alpha")
	}

	if got := testutil.ReadFile(t, filepath.Join(dir, "sub", "b.txt")); got != "beta" {
		t.Errorf("sub/b.txt = %q; want %q", got, "beta")
	}

	testutil.AssertFiles(t, dir, "sub", "a.txt")
}

func TestAssertNoFile_FailsWhenPresent(t *testing.T) {
	path := testutil.WriteFile(t, filepath.Join(t.TempDir(), "out.txt"), "x")

	failed := false
	fakeT := &fatalTracker{TB: t, onFatal: func() { failed = true }}
	testutil.AssertNoFile(fakeT, path)
	if !failed {
		t.Error("expected AssertNoFile to fail when the file exists")
	}
}

func TestAssertNoFile_PassesWhenAbsent(t *testing.T) {
	failed := false
	fakeT := &fatalTracker{TB: t, onFatal: func() { failed = true }}
	testutil.AssertNoFile(fakeT, filepath.Join(t.TempDir(), "missing.txt"))
	if failed {
		t.Error("expected AssertNoFile to pass for a missing file")
	}
}

func TestAssertFiles_FailsOnLeftover(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"a.txt": "", ".a.txt.123.tmp": ""})

	failed := false
	fakeT := &fatalTracker{TB: t, onFatal: func() { failed = true }}
	testutil.AssertFiles(fakeT, dir, "a.txt")
	if !failed {
		t.Error("expected AssertFiles to fail on a leftover temporary file")
	}
}

// fatalTracker is a minimal testing.TB implementation that intercepts Fatal calls.
type fatalTracker struct {
	testing.TB
	onFatal func()
}

func (f *fatalTracker) Helper() {}

func (f *fatalTracker) Fatalf(_ string, _ ...any) {
	f.onFatal()
	// Do NOT call f.TB.Fatalf, that would fail the outer test.
}
