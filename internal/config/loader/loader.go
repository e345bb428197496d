// Package loader reads option files and environment variables into
// generic maps that the config package decodes.
//
// TOML and YAML files are supported. A missing file is not an error:
// loaders return a nil map and let the caller fall back to defaults.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader produces one layer of options.
// Load returns a nil map when the source does not exist.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem reads option files. Tests substitute an in-memory one.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// DefaultFS returns the operating system's file system.
func DefaultFS() FileSystem {
	return osFS{}
}

// Format is an option file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var decoders = map[Format]func(name string, data []byte) (map[string]any, error){
	FormatTOML: decodeTOML,
	FormatYAML: decodeYAML,
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, bool) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Decode parses an options document read from r. name is used in errors.
func Decode(format Format, name string, r io.Reader) (map[string]any, error) {
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Path: name, Err: err}
	}
	return decode(name, data)
}

// FileLoader loads an options file in one of the supported formats.
type FileLoader struct {
	fsys   FileSystem
	path   string
	format Format
}

// ForFile returns the loader for path, chosen by its extension.
func ForFile(fsys FileSystem, path string) (*FileLoader, bool) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, false
	}
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &FileLoader{fsys: fsys, path: path, format: format}, true
}

// Path returns the file the loader reads.
func (l *FileLoader) Path() string { return l.path }

// Format returns the format the file is decoded with.
func (l *FileLoader) Format() Format { return l.format }

// Load reads and decodes the file. A missing file gives a nil map.
func (l *FileLoader) Load() (map[string]any, error) {
	data, err := l.fsys.ReadFile(l.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, &ReadError{Path: l.path, Err: err}
	}
	return decoders[l.format](l.path, data)
}
