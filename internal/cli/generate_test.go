package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/spritetower/pkg/config"
	"github.com/matzehuels/spritetower/pkg/pipeline"
)

const testProject = `
output_dir = "dist"
dts_output_dir = "types"
public_path = "/static/"

[cache]
backend = "none"

[configurations.client]
folder = "icons"
css_class_prefix = "client-"

[configurations.client.dts]
module = true

[[configurations.client.css]]
selector = ".icon"
`

func setupProject(t *testing.T) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "icons"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"add", "remove"} {
		svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0"/></svg>`
		if err := os.WriteFile(filepath.Join(dir, "icons", name+".svg"), []byte(svg), 0644); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, config.DefaultFileName)
	if err := os.WriteFile(path, []byte(testProject), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	c.ConfigPath = path
	c.Out = io.Discard
	return c, dir
}

func TestRunGenerate(t *testing.T) {
	c, dir := setupProject(t)
	if err := c.runGenerate(context.Background(), nil, false, false); err != nil {
		t.Fatalf("runGenerate: %v", err)
	}

	for _, name := range []string{"dist/client.css", "dist/client.js", "dist/client.bundle.js", "types/client.d.ts"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	assets, _ := filepath.Glob(filepath.Join(dir, "dist", "sprite-*.svg"))
	if len(assets) != 1 {
		t.Fatalf("composites = %v", assets)
	}

	css, _ := os.ReadFile(filepath.Join(dir, "dist", "client.css"))
	if !strings.Contains(string(css), `url("/static/`+filepath.Base(assets[0])+`")`) {
		t.Errorf("stylesheet does not reference the composite:\n%s", css)
	}
	dts, _ := os.ReadFile(filepath.Join(dir, "types", "client.d.ts"))
	if !strings.Contains(string(dts), `declare module "svg-sprites/client" {`) {
		t.Errorf("declaration:\n%s", dts)
	}
}

func TestRunGenerateUnknownConfiguration(t *testing.T) {
	c, _ := setupProject(t)
	if err := c.runGenerate(context.Background(), []string{"web"}, true, false); err == nil {
		t.Error("unknown configuration should fail")
	}
}

func TestRunGenerateMissingProject(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.ConfigPath = filepath.Join(t.TempDir(), "missing.toml")
	if err := c.runGenerate(context.Background(), nil, true, false); err == nil {
		t.Error("missing project file should fail")
	}
}

func TestOutputFiles(t *testing.T) {
	cfg := &config.Config{OutputDir: "/out", DTSOutputDir: "/types"}
	files := outputFiles(cfg, "client", pipeline.Artifacts{AssetName: "sprite-abc.svg"})

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	want := []string{"/out/sprite-abc.svg", "/out/client.css", "/out/client.js", "/out/client.bundle.js", "/types/client.d.ts"}
	if strings.Join(paths, " ") != strings.Join(want, " ") {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestWriteOutputsSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	files := []outputFile{
		{Path: filepath.Join(dir, "a", "x.css"), Data: []byte("x")},
		{Path: filepath.Join(dir, "y.js"), Data: []byte("y")},
	}
	n, err := writeOutputs(files)
	if err != nil || n != 2 {
		t.Fatalf("first write = %d, %v", n, err)
	}

	files[1].Data = []byte("changed")
	for i := range files {
		files[i].written = false
	}
	n, err = writeOutputs(files)
	if err != nil || n != 1 {
		t.Fatalf("second write = %d, %v", n, err)
	}
	if files[0].written || !files[1].written {
		t.Errorf("written flags = %v %v", files[0].written, files[1].written)
	}
	data, _ := os.ReadFile(files[1].Path)
	if !bytes.Equal(data, []byte("changed")) {
		t.Errorf("content = %q", data)
	}
}
