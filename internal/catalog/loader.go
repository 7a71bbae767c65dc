package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Decode reads a JSON array of models, validates each one and indexes them.
func Decode(r io.Reader) (*Catalog, error) {
	var models []Model
	if err := json.NewDecoder(r).Decode(&models); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(models))
	for i := range models {
		if _, dup := seen[models[i].ID]; dup {
			return nil, fmt.Errorf("%w: duplicate model id %s", ErrInvalidCatalog, models[i].ID)
		}
		seen[models[i].ID] = struct{}{}
		if err := Validate(&models[i]); err != nil {
			return nil, err
		}
	}
	return New(models), nil
}

// LoadFile reads a catalog from path. Relative paths are tried against the
// working directory first and then against the executable's directory.
func LoadFile(path string) (*Catalog, error) {
	candidates := candidatePaths(path)
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read catalog %s: %w", candidate, err)
		}
		cat, err := Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", candidate, err)
		}
		return cat, nil
	}
	return nil, fmt.Errorf("catalog not found: %s (tried %s)", path, strings.Join(candidates, ", "))
}

func candidatePaths(path string) []string {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if filepath.IsAbs(path) {
		return []string{path}
	}
	out := []string{path}
	if exe, err := os.Executable(); err == nil {
		alt := filepath.Join(filepath.Dir(exe), path)
		if alt != path {
			out = append(out, alt)
		}
	}
	return out
}
