package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Primitive.Source != "@stylic/core" || cfg.Primitive.Name != "styled" {
		t.Fatalf("unexpected primitive defaults: %+v", cfg.Primitive)
	}
	if cfg.Attrs.CSS != "css" || cfg.Attrs.Class != "className" {
		t.Fatalf("unexpected attribute defaults: %+v", cfg.Attrs)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stylic.toml")
	manifest := `
[primitive]
source = "my-styling-lib"

[extract]
static = true
stylesheet = "dist/app.css"
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Primitive.Source != "my-styling-lib" {
		t.Fatalf("override lost: %q", cfg.Primitive.Source)
	}
	if cfg.Primitive.Name != "styled" {
		t.Fatalf("unset field must keep its default: %q", cfg.Primitive.Name)
	}
	if !cfg.Extract.Static || cfg.Extract.Stylesheet != "dist/app.css" {
		t.Fatalf("extract section wrong: %+v", cfg.Extract)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stylic.toml")
	if err := os.WriteFile(path, []byte("[primitive]\nsorce = \"oops\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("misspelled key must be rejected")
	}
}

func TestLoadConfigAttrCollision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stylic.toml")
	if err := os.WriteFile(path, []byte("[attributes]\ncss = \"x\"\nclass = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("colliding attribute names must be rejected")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "stylic.toml"), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	got, ok, err := FindProjectRoot(nested)
	if err != nil || !ok {
		t.Fatalf("FindProjectRoot: ok=%v err=%v", ok, err)
	}
	resolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != resolved {
		t.Fatalf("root = %q, want %q", got, root)
	}
}

func TestFindProjectRootAbsent(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindProjectRoot(dir)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("no manifest should be found in an empty tree")
	}
}

func TestCombineDeterministic(t *testing.T) {
	a := HashContent([]byte("a"))
	b := HashContent([]byte("b"))
	if Combine(a, b) != Combine(a, b) {
		t.Fatal("Combine must be deterministic")
	}
	if Combine(a, b) == Combine(b, a) {
		t.Fatal("Combine must be order sensitive")
	}
}
