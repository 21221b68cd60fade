package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/molnav/internal/input/binding"
)

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Loader reads settings and binding profiles.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a loader on the OS file system.
func NewLoader() *Loader {
	return &Loader{fs: OSFS{}}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fsys FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// Load reads the TOML file at path over Default and validates the result.
// A missing file yields ErrFileNotFound; unknown keys are parse errors.
func (l *Loader) Load(path string) (Config, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := Parse(path, data)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating %s: %w", path, err)
	}
	if cfg.Bindings.Profile != "" && !filepath.IsAbs(cfg.Bindings.Profile) {
		cfg.Bindings.Profile = filepath.Join(filepath.Dir(path), cfg.Bindings.Profile)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func (l *Loader) LoadOrDefault(path string) (Config, error) {
	cfg, err := l.Load(path)
	if errors.Is(err, ErrFileNotFound) {
		logger.Debugf("no config at %s, using defaults", path)
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes TOML data over Default without validating it. source
// names the data in errors.
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, newParseError(source, err)
	}
	return cfg, nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	var decErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decErr):
		pe.Line, pe.Column = decErr.Position()
	case errors.As(err, &strictErr):
		keys := make([]string, 0, len(strictErr.Errors))
		for i := range strictErr.Errors {
			e := &strictErr.Errors[i]
			keys = append(keys, strings.Join(e.Key(), "."))
			if pe.Line == 0 {
				pe.Line, pe.Column = e.Position()
			}
		}
		pe.Message = "unknown keys: " + strings.Join(keys, ", ")
	}
	return pe
}

// LoadProfile reads a YAML binding profile.
func (l *Loader) LoadProfile(path string) (*binding.Table, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	t, err := binding.DecodeProfile(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return t, nil
}

// Marshal encodes cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
