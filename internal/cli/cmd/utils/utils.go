package utils

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tidwall/pretty"

	"github.com/matjam/crossfade"
)

// CanonicalPath expands a leading ~ to $HOME and cleans local paths. URLs
// pass through unchanged.
func CanonicalPath(path string) string {
	switch {
	case path == "":
		return ""
	case strings.Contains(path, "://"):
		return path
	case path == "~":
		return os.Getenv("HOME")
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(os.Getenv("HOME"), path[2:])
	}
	return filepath.Clean(path)
}

// PrintJSONColored logs data as indented, syntax-highlighted JSON.
func PrintJSONColored(data any) {
	if err := writeJSON(logWriter{}, data, true); err != nil {
		log.Errorf("Error marshalling JSON: %v", err)
	}
}

func writeJSON(w io.Writer, data any, color bool) error {
	j, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if color {
		j = pretty.Color(j, nil)
	}
	_, err = w.Write(j)
	return err
}

type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	log.Info(string(p))
	return len(p), nil
}

// ConfigPath is where InstallDefaultConfig writes: crossfade/crossfade.toml
// under $XDG_CONFIG_HOME, falling back to ~/.config.
func ConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "crossfade", "crossfade.toml")
}

// InstallDefaultConfig writes the embedded default config unless a file
// already exists. It reports whether a file was written.
func InstallDefaultConfig() (bool, error) {
	configPath := ConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		log.Warnf("Config file already exists at %v", configPath)
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return false, err
	}
	if err := os.WriteFile(configPath, []byte(crossfade.DefaultConfig), 0644); err != nil {
		return false, err
	}

	log.Infof("Installed default config file at %v", configPath)
	return true, nil
}
