package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"stylic/internal/project"
	"stylic/internal/source"
)

const sample = `import { styled } from '@stylic/core';

const Box = styled.div({ color: 'red' });

const App = () => {
  return <Box />;
};
`

const plain = `const App = () => {
  return <main>plain</main>;
};
`

func testOptions() Options {
	return Options{
		Config:         project.DefaultConfig(),
		MaxDiagnostics: 64,
	}
}

func TestExtractFile(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("sample.jsx", []byte(sample)))

	res := ExtractFile(file, testOptions())
	if !res.Changed || res.Rewritten != 1 || res.Dropped != 1 {
		t.Fatalf("unexpected result: changed=%v rewritten=%d dropped=%d", res.Changed, res.Rewritten, res.Dropped)
	}
	if len(res.Rules) != 1 {
		t.Fatalf("want one rule, got %d", len(res.Rules))
	}
	if !strings.Contains(res.Rules[0].CSS, "color: red;") {
		t.Fatalf("rule missing declaration:\n%s", res.Rules[0].CSS)
	}
}

func TestExtractFileUntouched(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("plain.jsx", []byte(plain)))

	res := ExtractFile(file, testOptions())
	if res.Changed || res.Output != plain {
		t.Fatalf("plain file must round-trip:\n%s", res.Output)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestExtractDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jsx"), sample)
	writeFile(t, filepath.Join(dir, "b.jsx"), plain)
	writeFile(t, filepath.Join(dir, "skip.txt"), "not a source file")
	if err := os.MkdirAll(filepath.Join(dir, "node_modules", "dep"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "index.js"), sample)

	sink := &recordingSink{}
	_, results, err := ExtractDir(context.Background(), dir, testOptions(), sink)
	if err != nil {
		t.Fatalf("ExtractDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d", len(results))
	}
	// Deterministic ordering: sorted paths.
	if filepath.Base(results[0].Path) != "a.jsx" || filepath.Base(results[1].Path) != "b.jsx" {
		t.Fatalf("results out of order: %s, %s", results[0].Path, results[1].Path)
	}
	if !results[0].Changed || results[1].Changed {
		t.Fatalf("wrong change flags: %v %v", results[0].Changed, results[1].Changed)
	}
	if len(sink.events) == 0 {
		t.Fatal("no progress events delivered")
	}
}

func TestExtractDirCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jsx"), sample)

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("stylic-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	opts := testOptions()
	opts.Cache = cache

	_, first, err := ExtractDir(context.Background(), dir, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].FromCache {
		t.Fatal("first run must miss the cache")
	}

	_, second, err := ExtractDir(context.Background(), dir, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].FromCache {
		t.Fatal("second run must hit the cache")
	}
	if second[0].Output != first[0].Output || len(second[0].Rules) != len(first[0].Rules) {
		t.Fatal("cached result differs from the computed one")
	}

	// Config change invalidates.
	opts.Config.Extract.ClassPrefix = "x"
	_, third, err := ExtractDir(context.Background(), dir, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if third[0].FromCache {
		t.Fatal("config change must invalidate the cache")
	}
}

func TestMergeRulesDedup(t *testing.T) {
	fs := source.NewFileSet()
	a := ExtractFile(fs.Get(fs.AddVirtual("a.jsx", []byte(sample))), testOptions())
	b := ExtractFile(fs.Get(fs.AddVirtual("b.jsx", []byte(sample))), testOptions())

	sheet := MergeRules([]ExtractResult{a, b})
	if strings.Count(sheet, "color: red;") != 1 {
		t.Fatalf("identical rules must merge:\n%s", sheet)
	}
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jsx")
	writeFile(t, src, sample)

	fs := source.NewFileSet()
	id, err := fs.Load(src)
	if err != nil {
		t.Fatal(err)
	}
	res := ExtractFile(fs.Get(id), testOptions())
	res.Path = src

	sheetPath := filepath.Join(dir, "out", "stylic.css")
	if err := WriteOutputs([]ExtractResult{res}, sheetPath); err != nil {
		t.Fatalf("WriteOutputs: %v", err)
	}
	rewritten, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(rewritten), "<Box") {
		t.Fatalf("source not rewritten on disk:\n%s", rewritten)
	}
	sheet, err := os.ReadFile(sheetPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(sheet), "color: red;") {
		t.Fatalf("sheet not written:\n%s", sheet)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
