// Package exchange reads and writes recipe collections in the formats the
// CLI offers for export and import.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/recipes/internal/model"
	"github.com/idilsaglam/recipes/internal/recipes"
)

// Format names an encoding.
type Format string

const (
	JSON Format = "json" // same layout as the persisted slot
	YAML Format = "yaml"
	TOML Format = "toml"
)

// ErrUnknownFormat is returned for unsupported format names or extensions.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat accepts a format name as typed on the command line.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

type yamlDoc struct {
	Recipes []model.Recipe `yaml:"recipes"`
}

type tomlDoc struct {
	Recipes []model.Recipe `toml:"recipe"`
}

// Encode writes rs to w.
func Encode(w io.Writer, f Format, rs []model.Recipe) error {
	if rs == nil {
		rs = []model.Recipe{}
	}
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlDoc{Recipes: rs}); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		return toml.NewEncoder(w).Encode(tomlDoc{Recipes: rs})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Decode reads a collection from r.
func Decode(r io.Reader, f Format) ([]model.Recipe, error) {
	switch f {
	case JSON:
		var rs []model.Recipe
		if err := json.NewDecoder(r).Decode(&rs); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return rs, nil
	case YAML:
		var doc yamlDoc
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return doc.Recipes, nil
	case TOML:
		var doc tomlDoc
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		return doc.Recipes, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Result summarizes an import.
type Result struct {
	Added   []model.Recipe
	Skipped []Skip
}

// Skip is an imported entry that failed validation.
type Skip struct {
	Index int
	Title string
	Err   error
}

// Import appends every valid entry of rs to s as a new recipe. Ids in the
// input are not kept; each entry gets a fresh one. Persist failures stop the
// import.
func Import(ctx context.Context, s *recipes.Store, rs []model.Recipe) (Result, error) {
	var res Result
	for i, r := range rs {
		saved, err := s.Save(ctx, model.NewDraft{Fields: r.Fields()})
		if errors.Is(err, model.ErrMissingField) {
			res.Skipped = append(res.Skipped, Skip{Index: i, Title: r.Title, Err: err})
			continue
		}
		if err != nil {
			return res, err
		}
		res.Added = append(res.Added, saved)
	}
	return res, nil
}
