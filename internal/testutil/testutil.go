// Package testutil provides shared file fixture helpers for tests.
//
// Each helper fails the calling test with a clear message instead of
// returning an error, so fixtures stay one line at the call site.
//
// Typical usage:
//
//	func TestMyPipeline(t *testing.T) {
//	    dir := t.TempDir()
//	    testutil.WriteFiles(t, dir, map[string]string{
//	        "src/a.txt": "a b\tAB\t0-0 1-1",
//	        "tgt/a.txt": "ab",
//	    })
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories, and
// returns path.
func WriteFile(tb testing.TB, path, content string) string {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("create directory for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteFiles writes every name/content pair below dir. Names use forward
// slashes.
func WriteFiles(tb testing.TB, dir string, files map[string]string) {
	tb.Helper()

	for name, content := range files {
		WriteFile(tb, filepath.Join(dir, filepath.FromSlash(name)), content)
	}
}

// ReadFile returns the contents of path.
func ReadFile(tb testing.TB, path string) string {
	tb.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// AssertNoFile fails the test if path exists.
func AssertNoFile(tb testing.TB, path string) {
	tb.Helper()

	if _, err := os.Stat(path); err == nil {
		tb.Fatalf("%s exists; want no file", path)
	}
}

// AssertFiles fails the test unless dir holds exactly the named entries.
// Leftover temporary files count as entries.
func AssertFiles(tb testing.TB, dir string, want ...string) {
	tb.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		tb.Fatalf("read %s: %v", dir, err)
	}

	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Name())
	}
	slices.Sort(got)
	want = slices.Clone(want)
	slices.Sort(want)

	if !slices.Equal(got, want) {
		tb.Fatalf("%s holds [%s]; want [%s]", dir, strings.Join(got, " "), strings.Join(want, " "))
	}
}
