// Package contextscale turns token budgets into everyday comparisons.
//
// It holds the static dataset of models and comparison items, the logarithmic
// slider mapping, the number formatters, the comparison selector and a set of
// pure renderers producing display trees. Binding those trees to a screen is
// left to the caller.
package contextscale

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data.json
var defaultDataset []byte

// ErrEmptyDataset is returned when a dataset has no usable records at all.
var ErrEmptyDataset = errors.New("dataset has no usable models or comparisons")

// Model is a language model and the size of its context window.
type Model struct {
	Name     string `json:"name" yaml:"name"`
	Provider string `json:"provider" yaml:"provider"`
	Tokens   int    `json:"tokens" yaml:"tokens"`
	Color    string `json:"color" yaml:"color"`
}

// Comparison is an everyday quantity with a known size in tokens.
type Comparison struct {
	Name     string `json:"name" yaml:"name"`
	Icon     string `json:"icon" yaml:"icon"`
	Tokens   int    `json:"tokens" yaml:"tokens"`
	Category string `json:"category" yaml:"category"`
}

// Dataset is the read-only collection everything else renders from.
// Models are ordered by descending tokens, comparisons by ascending tokens.
type Dataset struct {
	Models      []Model
	Comparisons []Comparison

	// Skipped lists the records dropped during loading.
	Skipped []*InvalidRecordError
}

// Format names a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension. Unknown extensions are read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DatasetLoadError reports a dataset that could not be read or decoded.
// It is fatal: nothing can be rendered without a dataset.
type DatasetLoadError struct {
	Path string
	Err  error
}

func (e *DatasetLoadError) Error() string {
	path := e.Path
	if path == "" {
		path = "<embedded>"
	}
	return fmt.Sprintf("load dataset %s: %v", path, e.Err)
}

func (e *DatasetLoadError) Unwrap() error { return e.Err }

// InvalidRecordError describes a record with a non-positive token count.
// Such records are skipped, the rest of the dataset still loads.
type InvalidRecordError struct {
	Kind   string // "model" or "comparison"
	Index  int
	Name   string
	Tokens int
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("%s #%d %q: tokens must be > 0, got %d", e.Kind, e.Index, e.Name, e.Tokens)
}

type rawDataset struct {
	Models      []Model      `json:"models" yaml:"models"`
	Comparisons []Comparison `json:"comparisons" yaml:"comparisons"`
}

// DefaultDataset returns the dataset compiled into the binary.
func DefaultDataset() (*Dataset, error) {
	ds, err := ParseDataset(defaultDataset, FormatJSON)
	if err != nil {
		return nil, &DatasetLoadError{Err: err}
	}
	return ds, nil
}

// LoadDataset reads the dataset at path. An empty path loads the embedded default.
func LoadDataset(path string) (*Dataset, error) {
	if path == "" {
		return DefaultDataset()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DatasetLoadError{Path: path, Err: err}
	}
	ds, err := ParseDataset(data, FormatForPath(path))
	if err != nil {
		return nil, &DatasetLoadError{Path: path, Err: err}
	}
	return ds, nil
}

// ParseDataset decodes, validates and sorts a dataset document.
func ParseDataset(data []byte, format Format) (*Dataset, error) {
	var raw rawDataset
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
	return NewDataset(raw.Models, raw.Comparisons)
}

// NewDataset validates and sorts the given records into a Dataset.
// The input slices are not modified.
func NewDataset(models []Model, comparisons []Comparison) (*Dataset, error) {
	ds := &Dataset{
		Models:      make([]Model, 0, len(models)),
		Comparisons: make([]Comparison, 0, len(comparisons)),
	}
	for i, m := range models {
		if m.Tokens <= 0 {
			ds.Skipped = append(ds.Skipped, &InvalidRecordError{Kind: "model", Index: i, Name: m.Name, Tokens: m.Tokens})
			continue
		}
		ds.Models = append(ds.Models, m)
	}
	for i, c := range comparisons {
		if c.Tokens <= 0 {
			ds.Skipped = append(ds.Skipped, &InvalidRecordError{Kind: "comparison", Index: i, Name: c.Name, Tokens: c.Tokens})
			continue
		}
		ds.Comparisons = append(ds.Comparisons, c)
	}
	if len(ds.Models) == 0 && len(ds.Comparisons) == 0 {
		return nil, ErrEmptyDataset
	}

	sort.SliceStable(ds.Models, func(i, j int) bool {
		return ds.Models[i].Tokens > ds.Models[j].Tokens
	})
	sort.SliceStable(ds.Comparisons, func(i, j int) bool {
		return ds.Comparisons[i].Tokens < ds.Comparisons[j].Tokens
	})
	return ds, nil
}

// MaxModelTokens returns the largest context window in the dataset, or 0 without models.
func (d *Dataset) MaxModelTokens() int {
	if len(d.Models) == 0 {
		return 0
	}
	// Models are sorted descending.
	return d.Models[0].Tokens
}
