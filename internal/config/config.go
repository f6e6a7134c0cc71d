// Package config loads the launcher's construction-time settings.
//
// Settings live in <UserConfigDir>/lanserve/settings.json and are read once
// at startup. The file is JSONC: // and /* */ comments and trailing commas
// are accepted. A missing file is not an error.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

const (
	DefaultPort     = 8000
	DefaultQRFile   = "lan_qr.png"
	DefaultQRSize   = 256
	DefaultLogLevel = "info"

	// minQRSize is the pixel width of a version 1 symbol with no border.
	minQRSize = 21
)

// Settings holds the launcher configuration.
type Settings struct {
	Port        int    `json:"port"`
	ContentRoot string `json:"content_root,omitempty"`
	QRFile      string `json:"qr_file"`
	QRSize      int    `json:"qr_size"`
	IconPath    string `json:"icon_path,omitempty"`
	LogLevel    string `json:"log_level"`
	LogFile     *bool  `json:"log_file,omitempty"`
}

// Dir returns the platform config directory for lanserve.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, _ = os.UserHomeDir()
	}
	return filepath.Join(dir, "lanserve")
}

// Path returns the full path to settings.json.
func Path() string {
	return filepath.Join(Dir(), "settings.json")
}

// LogDir returns the directory rotated log files are written to.
func LogDir() string {
	return filepath.Join(Dir(), "logs")
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Port:     DefaultPort,
		QRFile:   DefaultQRFile,
		QRSize:   DefaultQRSize,
		LogLevel: DefaultLogLevel,
	}
}

// FileLogging reports whether a rotated log file should be written.
func (s *Settings) FileLogging() bool {
	return s.LogFile == nil || *s.LogFile
}

// Load reads settings from path. A missing file yields the defaults and a nil
// error. Any other failure also yields usable settings (the defaults, or the
// file with invalid fields reset) together with an error describing what was
// ignored, so the caller can log it and carry on.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes JSONC settings on top of the defaults.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := json.Unmarshal(jsonc.ToJSON(data), s); err != nil {
		return Default(), fmt.Errorf("parsing settings: %w", err)
	}
	return s, s.normalize()
}

// normalize resets out-of-range fields to their defaults and reports them.
func (s *Settings) normalize() error {
	var errs []error
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range, using %d", s.Port, DefaultPort))
		s.Port = DefaultPort
	}
	if s.QRFile == "" {
		s.QRFile = DefaultQRFile
	}
	if s.QRSize < minQRSize {
		errs = append(errs, fmt.Errorf("qr_size %d too small, using %d", s.QRSize, DefaultQRSize))
		s.QRSize = DefaultQRSize
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	return errors.Join(errs...)
}
