package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/spritetower/pkg/cache"
	"github.com/matzehuels/spritetower/pkg/errors"
	"github.com/matzehuels/spritetower/pkg/render/stylesheet"
)

const sample = `
output_dir = "dist/sprites"
public_path = "/static/"
packer = "potpack"

[cache]
backend = "bolt"
ttl = "2h"

[configurations.client]
folder = "icons/client"
css_class_prefix = "client-"

[configurations.client.dts]
module = true
enum_name = "ClientIcon"
class_union_name = "ClientIconClass"

[[configurations.client.css]]
selector = ".icon"
scale = 1
unit = "px"

[[configurations.client.css]]
selector = ".icon-em"
unit = "em"

[configurations.admin]
folder = "/abs/icons/admin"
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample), "/project")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := c.Names(); len(got) != 2 || got[0] != "admin" || got[1] != "client" {
		t.Errorf("Names() = %v", got)
	}
	if c.OutputDir != filepath.Join("/project", "dist/sprites") {
		t.Errorf("OutputDir = %q", c.OutputDir)
	}
	if c.DTSOutputDir != c.OutputDir {
		t.Errorf("DTSOutputDir should default to OutputDir, got %q", c.DTSOutputDir)
	}
	if c.ModulePrefix != "svg-sprites/" {
		t.Errorf("ModulePrefix = %q", c.ModulePrefix)
	}

	client, err := c.PipelineConfiguration("client")
	if err != nil {
		t.Fatal(err)
	}
	if client.Folder != filepath.Join("/project", "icons/client") {
		t.Errorf("Folder = %q", client.Folder)
	}
	if !client.Declaration.Module || client.Declaration.EnumName != "ClientIcon" {
		t.Errorf("Declaration = %+v", client.Declaration)
	}
	if len(client.Stylesheets) != 2 {
		t.Fatalf("Stylesheets = %+v", client.Stylesheets)
	}
	if r := client.Stylesheets[1]; r.Scale != 1 || r.Unit != stylesheet.UnitEm {
		t.Errorf("second rule = %+v, want scale default 1", r)
	}

	admin, _ := c.PipelineConfiguration("admin")
	if admin.Folder != "/abs/icons/admin" {
		t.Errorf("absolute folder rewritten: %q", admin.Folder)
	}

	opts := c.PipelineOptions()
	if opts.PublicPath != "/static/" || opts.Packer != "potpack" || opts.TTL != 2*time.Hour {
		t.Errorf("PipelineOptions() = %+v", opts)
	}
	if co := c.CacheOptions(); co.Backend != cache.BackendBolt || co.TTL != 2*time.Hour {
		t.Errorf("CacheOptions() = %+v", co)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no configurations", `output_dir = "x"`},
		{"unknown key", "[configurations.a]\nfolder = \"a\"\nfoldr = \"b\"\n"},
		{"bad toml", "[configurations.a\n"},
		{"no folder", "[configurations.a]\ncss_class_prefix = \"a-\"\n"},
		{"bad packer", "packer = \"maxrects\"\n[configurations.a]\nfolder = \"a\"\n"},
		{"bad unit", "[configurations.a]\nfolder = \"a\"\n[[configurations.a.css]]\nselector = \".i\"\nunit = \"pt\"\n"},
		{"bad ttl", "[cache]\nttl = \"soon\"\n[configurations.a]\nfolder = \"a\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data), "/p"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SPRITETOWER_PUBLIC_PATH", "https://cdn.example.com/")
	t.Setenv("SPRITETOWER_CACHE_BACKEND", "redis")
	t.Setenv("SPRITETOWER_CACHE_REDIS_ADDR", "localhost:6379")

	c, err := Parse([]byte(sample), "/project")
	if err != nil {
		t.Fatal(err)
	}
	if c.PublicPath != "https://cdn.example.com/" {
		t.Errorf("PublicPath = %q", c.PublicPath)
	}
	co := c.CacheOptions()
	if co.Backend != cache.BackendRedis || co.RedisAddr != "localhost:6379" {
		t.Errorf("CacheOptions() = %+v", co)
	}
	if c.Packer != "potpack" {
		t.Errorf("unset variables should keep file values, Packer = %q", c.Packer)
	}
}

func TestPipelineConfigurationMissing(t *testing.T) {
	c, err := Parse([]byte(sample), "/project")
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.PipelineConfiguration("web")
	if !errors.Is(err, errors.ErrCodeConfigurationUnset) {
		t.Errorf("err = %v, want CONFIGURATION_NOT_FOUND", err)
	}
}

func TestSetDefaultsIdempotent(t *testing.T) {
	c, err := Parse([]byte(sample), "/project")
	if err != nil {
		t.Fatal(err)
	}
	out := c.OutputDir
	folder := c.Configurations["client"].Folder
	c.SetDefaults()
	if c.OutputDir != out || c.Configurations["client"].Folder != folder {
		t.Errorf("second SetDefaults changed paths: %q %q", c.OutputDir, c.Configurations["client"].Folder)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Dir != dir {
		t.Errorf("Dir = %q, want %q", c.Dir, dir)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
}
