// Package config holds the CLI's persistent settings file and the
// credential/format-config resolution used to set up a spreadsheet session.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"google.golang.org/api/sheets/v4"
)

// Settings is the TOML-backed configuration store.
type Settings struct {
	SpreadsheetID   string
	SpreadsheetName string
	CredentialsFile string
	MaxRetries      int
	BaseDelaySecs   float64
	PreviewDir      string
	ListenAddress   string
}

type Store struct {
	Filename string
	Settings Settings
}

// Write the current settings out to a toml file.
func (s *Store) Save() error {
	b, err := toml.Marshal(s.Settings)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Filename, b, 0644)
}

// Load the current settings from a toml file.
func (s *Store) Load() error {
	b, err := os.ReadFile(s.Filename)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, &s.Settings)
}

// Open loads the settings file, creating it with defaults when missing.
func Open(filename string) (*Store, error) {
	s := &Store{Filename: filename}
	if err := s.Load(); err != nil {
		if os.IsNotExist(err) {
			if err := s.Save(); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	// Set some defaults
	if s.Settings.MaxRetries == 0 {
		s.Settings.MaxRetries = 5
	}
	if s.Settings.BaseDelaySecs == 0 {
		s.Settings.BaseDelaySecs = 2
	}
	if s.Settings.PreviewDir == "" {
		s.Settings.PreviewDir = "sheet_previews"
	}
	if s.Settings.ListenAddress == "" {
		s.Settings.ListenAddress = ":8080"
	}
	return s, nil
}

// Credentials resolves service-account credentials from the environment.
// GOOGLE_CREDENTIALS_PATH may hold either inline JSON or a path to a key
// file; GOOGLE_APPLICATION_CREDENTIALS is the path-only fallback. Returns
// nil with no error when neither is set.
func Credentials() ([]byte, error) {
	if v := os.Getenv("GOOGLE_CREDENTIALS_PATH"); v != "" {
		if strings.HasPrefix(strings.TrimSpace(v), "{") {
			return []byte(v), nil
		}
		b, err := os.ReadFile(v)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return b, nil
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		b, err := os.ReadFile(v)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return b, nil
	}
	return nil, nil
}

// LoadFormats reads a JSON format-config file mapping range names to cell
// formats. Keys starting with "_comment" are stripped at any depth before
// decoding, so configs can carry inline annotations.
func LoadFormats(path string) (map[string]*sheets.CellFormat, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse format config %s: %w", path, err)
	}

	clean, err := json.Marshal(stripComments(raw))
	if err != nil {
		return nil, err
	}

	formats := make(map[string]*sheets.CellFormat)
	if err := json.Unmarshal(clean, &formats); err != nil {
		return nil, fmt.Errorf("decode format config %s: %w", path, err)
	}
	return formats, nil
}

// stripComments removes "_comment"-prefixed keys from nested maps.
func stripComments(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if strings.HasPrefix(k, "_comment") {
				continue
			}
			out[k] = stripComments(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = stripComments(val)
		}
		return out
	default:
		return v
	}
}
