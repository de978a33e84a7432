// Package workspace reads and writes stylesheet files on disk.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/snygg/internal/logger"
	"github.com/alexisbeaulieu97/snygg/internal/snygg/stylesheet"
	snyggerrors "github.com/alexisbeaulieu97/snygg/pkg/errors"
)

// Format is a stylesheet file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", snyggerrors.NewValidationError("path", fmt.Sprintf("unsupported stylesheet extension %q (want .json, .yaml or .yml)", filepath.Ext(path)), nil)
}

// Workspace loads and saves stylesheet files.
type Workspace struct {
	log  *logger.Logger
	opts []stylesheet.Option
}

// New returns a Workspace. A nil logger is allowed.
func New(log *logger.Logger, opts ...stylesheet.Option) *Workspace {
	return &Workspace{log: log, opts: opts}
}

// Load reads and decodes the stylesheet at path. Parse errors carry the path.
func (w *Workspace) Load(path string) (*stylesheet.Stylesheet, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stylesheet: %w", err)
	}

	doc, err := Decode(data, format, w.opts...)
	if err != nil {
		var parseErr *snyggerrors.ParseError
		if errors.As(err, &parseErr) {
			err = parseErr.WithPath(path)
		}
		w.log.WithFields(map[string]any{"path": path}).Error(err, "stylesheet rejected")
		return nil, err
	}

	w.log.WithFields(map[string]any{"path": path, "rules": doc.Len(), "format": string(format)}).Debug("stylesheet loaded")
	return doc, nil
}

// Save encodes doc in the format implied by path and writes it atomically.
func (w *Workspace) Save(path string, doc *stylesheet.Stylesheet) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	data, err := Encode(doc, format)
	if err != nil {
		return err
	}

	if err := WriteAtomic(path, data); err != nil {
		return err
	}

	w.log.WithFields(map[string]any{"path": path, "rules": doc.Len(), "version": doc.Version()}).Debug("stylesheet saved")
	return nil
}

// Decode reads data in the given format.
func Decode(data []byte, format Format, opts ...stylesheet.Option) (*stylesheet.Stylesheet, error) {
	if format == FormatYAML {
		return stylesheet.UnmarshalYAML(data, opts...)
	}
	return stylesheet.Unmarshal(data, opts...)
}

// Encode renders doc in the given format.
func Encode(doc *stylesheet.Stylesheet, format Format) ([]byte, error) {
	if format == FormatYAML {
		return stylesheet.MarshalYAML(doc)
	}
	return stylesheet.Marshal(doc)
}

// WriteAtomic writes data to a temporary file beside path and renames it
// into place. The original file mode is kept when path already exists.
func WriteAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, mode); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
