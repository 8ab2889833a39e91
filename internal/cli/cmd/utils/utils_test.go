package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matjam/crossfade"
)

func TestCanonicalPath(t *testing.T) {
	t.Setenv("HOME", "/home/test")

	cases := map[string]string{
		"":                       "",
		"~":                      "/home/test",
		"~/assets":               "/home/test/assets",
		"/srv/assets":            "/srv/assets",
		"/srv//assets/":          "/srv/assets",
		"https://cdn.example/a/": "https://cdn.example/a/",
	}
	for in, want := range cases {
		if got := CanonicalPath(in); got != want {
			t.Fatalf("CanonicalPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInstallDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	written, err := InstallDefaultConfig()
	if err != nil || !written {
		t.Fatalf("InstallDefaultConfig = %v, %v", written, err)
	}

	path := filepath.Join(dir, "crossfade", "crossfade.toml")
	if ConfigPath() != path {
		t.Fatalf("ConfigPath = %q", ConfigPath())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if string(data) != crossfade.DefaultConfig {
		t.Fatal("installed config differs from the embedded default")
	}

	if err := os.WriteFile(path, []byte("edited"), 0644); err != nil {
		t.Fatal(err)
	}
	if written, err := InstallDefaultConfig(); err != nil || written {
		t.Fatalf("second install = %v, %v", written, err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "edited" {
		t.Fatal("existing config was overwritten")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, map[string]int{"repeat_count": 3}, false); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	if buf.String() != "{\n  \"repeat_count\": 3\n}" {
		t.Fatalf("json = %q", buf.String())
	}

	if err := writeJSON(&buf, make(chan int), false); err == nil {
		t.Fatal("expected marshal error")
	}
}
