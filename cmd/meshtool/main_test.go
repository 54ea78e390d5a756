package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const triangle = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func writeMesh(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollectMeshes(t *testing.T) {
	dir := t.TempDir()
	writeMesh(t, dir, "b.obj", triangle)
	writeMesh(t, dir, "sub/a.OBJ", triangle)
	writeMesh(t, dir, "notes.txt", "x")
	single := writeMesh(t, t.TempDir(), "single.mesh", triangle)

	paths, err := collectMeshes([]string{dir, single})
	if err != nil {
		t.Fatalf("collectMeshes: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths %v, want 3", len(paths), paths)
	}

	if _, err := collectMeshes([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestValidateAll(t *testing.T) {
	dir := t.TempDir()
	good := writeMesh(t, dir, "good.obj", triangle)
	bad := writeMesh(t, dir, "bad.obj", "v 0 0 0\nf 1 2 3\n")

	calls := 0
	results := validateAll([]string{good, bad}, 2, func() { calls++ })

	if calls != 2 {
		t.Errorf("progress called %d times, want 2", calls)
	}
	if results[0].err != nil || results[0].triangles != 1 {
		t.Errorf("good result = %+v", results[0])
	}
	if results[1].err == nil {
		t.Error("bad mesh should fail")
	}
}

func TestCmdValidate(t *testing.T) {
	dir := t.TempDir()
	writeMesh(t, dir, "car.obj", triangle)

	var out bytes.Buffer
	if err := cmdValidate(&out, []string{"-q", dir}); err != nil {
		t.Fatalf("cmdValidate: %v", err)
	}
	if !strings.Contains(out.String(), "1 files, 0 failed") {
		t.Errorf("unexpected output %q", out.String())
	}

	writeMesh(t, dir, "broken.obj", "f 1 2\n")
	out.Reset()
	if err := cmdValidate(&out, []string{"-q", dir}); err == nil {
		t.Error("expected failure with a broken mesh")
	}
	if !strings.Contains(out.String(), "FAIL") {
		t.Errorf("expected FAIL line in %q", out.String())
	}
}

func TestCmdInfo(t *testing.T) {
	path := writeMesh(t, t.TempDir(), "wheel.obj", triangle)

	var out bytes.Buffer
	if err := cmdInfo(&out, []string{path}); err != nil {
		t.Fatalf("cmdInfo: %v", err)
	}
	for _, want := range []string{"Vertices:  3", "Triangles: 1", "Size:      1.000 x 1.000 x 0.000"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCmdDump(t *testing.T) {
	path := writeMesh(t, t.TempDir(), "wheel.obj", triangle)

	var out bytes.Buffer
	if err := cmdDump(&out, []string{"-n", "2", path}); err != nil {
		t.Fatalf("cmdDump: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// header + 2 vertices + "more" line
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[3], "... 1 more") {
		t.Errorf("last line = %q", lines[3])
	}
}
