package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-procrustes/internal/config"
	"github.com/example/go-procrustes/internal/testutil"
)

func TestProjectCmd_Files(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"src.txt": "ab cd\tXY\t0-0 1-0\ncolour\tcouleur\t0-0\n",
		"tgt.txt": "a b cd\ncolor\n",
	})

	stdout, _, err := execute(t, "", "project", filepath.Join(dir, "src.txt"), filepath.Join(dir, "tgt.txt"))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	want := "a b cd\tXY\t0-0 1-0 2-0\ncolor\tcouleur\t0-0\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestProjectCmd_Stdin(t *testing.T) {
	tgt := testutil.WriteFile(t, filepath.Join(t.TempDir(), "tgt.txt"), "a b cd\n")

	stdout, _, err := execute(t, "<s>ab <w>cd</w></s>\n", "project", "--mode=xml", "-", tgt)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if want := "<s>a b <w>cd</w></s>\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestProjectCmd_OutputFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"src.txt": "<s>ab cd</s>\n",
		"tgt.txt": "a b cd\n",
	})
	out := filepath.Join(dir, "nested", "out.txt")

	stdout, _, err := execute(t, "", "project", "-m", "xml", "-o", out, filepath.Join(dir, "src.txt"), filepath.Join(dir, "tgt.txt"))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if stdout != "" {
		t.Errorf("stdout = %q, want nothing", stdout)
	}
	if got := testutil.ReadFile(t, out); got != "<s>a b cd</s>\n" {
		t.Errorf("output = %q", got)
	}
}

func TestProjectCmd_Directories(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"src/a.txt": "ab\tX\t0-0\n",
		"tgt/a.txt": "a b\n",
		"src/b.txt": "cd ef\tY Z\t0-0 1-1\n",
		"tgt/b.txt": "cdef\n",
	})
	out := filepath.Join(dir, "out")

	_, _, err := execute(t, "", "project", "-p", "2", "-o", out, filepath.Join(dir, "src"), filepath.Join(dir, "tgt"))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	testutil.AssertFiles(t, out, "a.txt", "b.txt")
	if got := testutil.ReadFile(t, filepath.Join(out, "a.txt")); got != "a b\tX\t0-0 1-0\n" {
		t.Errorf("a.txt = %q", got)
	}
	if got := testutil.ReadFile(t, filepath.Join(out, "b.txt")); got != "cdef\tY Z\t0-0 0-1\n" {
		t.Errorf("b.txt = %q", got)
	}
}

func TestProjectCmd_Segmented(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"src.txt": "<s>ab<w>c</w></s>\n",
		"tgt.txt": "ab c\n",
	})

	stdout, _, err := execute(t, "", "project", "-m", "xml", "--segmenter=identity",
		filepath.Join(dir, "src.txt"), filepath.Join(dir, "tgt.txt"))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if !strings.Contains(stdout, "\n\t<w>\n") {
		t.Errorf("stdout = %q, want segmented layout", stdout)
	}
}

func TestProjectCmd_Verbose(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"src.txt": "ab\tX\t0-0\n",
		"tgt.txt": "a b\n",
	})

	_, stderr, err := execute(t, "", "project", "-v", filepath.Join(dir, "src.txt"), filepath.Join(dir, "tgt.txt"))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	for _, want := range []string{"ab\tX\t0-0\n", "[a]-[a]\n", "[b]-[b]\n", "a{+ +}b"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("trace missing %q:\n%s", want, stderr)
		}
	}
}

func TestProjectCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"src.txt":        "<s>ab cd</s>\n",
		"tgt.txt":        "a b cd\n",
		"procrustes.yml": "projection:\n  mode: xml\n",
	})

	stdout, _, err := execute(t, "", "project", "--config", filepath.Join(dir, "procrustes.yml"),
		filepath.Join(dir, "src.txt"), filepath.Join(dir, "tgt.txt"))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if stdout != "<s>a b cd</s>\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestProjectCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{
		"src.txt":    "(S (NP a) (VP b))\n",
		"tgt.txt":    "a b\n",
		"tgtdir/x":   "",
		"broken.txt": "ab cd\n",
	})
	path := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"tree projection", []string{"-m", "tree", path("src.txt"), path("tgt.txt")}, errors.ErrUnsupported},
		{"unknown mode", []string{"-m", "json", path("src.txt"), path("tgt.txt")}, errors.ErrUnsupported},
		{"unknown cost function", []string{"-c", "hamming", path("src.txt"), path("tgt.txt")}, errors.ErrUnsupported},
		{"zero processes", []string{"-p", "0", path("src.txt"), path("tgt.txt")}, config.ErrInvalid},
		{"file and directory", []string{path("src.txt"), path("tgtdir")}, config.ErrInvalid},
		{"missing source", []string{path("missing.txt"), path("tgt.txt")}, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", append([]string{"project"}, tt.args...)...)
			if !errors.Is(err, tt.want) {
				t.Errorf("project error = %v, want %v", err, tt.want)
			}
		})
	}

	// A malformed record is reported and fails the command.
	_, _, err := execute(t, "", "project", path("broken.txt"), path("tgt.txt"))
	if err == nil || !strings.Contains(err.Error(), "record 1") {
		t.Errorf("project error = %v, want record 1 failure", err)
	}
}

func TestProjectCmd_RequiresTwoArgs(t *testing.T) {
	if _, _, err := execute(t, "", "project", "only-one"); err == nil {
		t.Error("expected error for a single argument")
	}
}
