// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cursorstream

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk YAML form of a stream definition. An
// operator can save a working query to a file and replay the stream
// later without rebuilding flags.
type QueryFile struct {
	BaseURL string   `yaml:"base_url"`
	Handler string   `yaml:"handler,omitempty"`
	Query   string   `yaml:"query,omitempty"`
	Filters []string `yaml:"filters,omitempty"`
	Sort    string   `yaml:"sort,omitempty"`
	Rows    int      `yaml:"rows,omitempty"`
	Fields  []string `yaml:"fields,omitempty"`
}

// ReadQueryFile loads a stream definition from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	if qf.BaseURL == "" {
		return nil, fmt.Errorf("query file %s: base_url is required", path)
	}
	return &qf, nil
}

// WriteQueryFile saves a stream definition to disk.
func WriteQueryFile(path string, qf QueryFile) error {
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Options converts the non-empty fields into stream options. Absent
// fields keep the New defaults.
func (qf *QueryFile) Options() []Option {
	var opts []Option
	if qf.Handler != "" {
		opts = append(opts, WithHandler(qf.Handler))
	}
	if qf.Query != "" {
		opts = append(opts, WithQuery(qf.Query))
	}
	if len(qf.Filters) > 0 {
		opts = append(opts, WithFilters(qf.Filters...))
	}
	if qf.Sort != "" {
		opts = append(opts, WithSort(qf.Sort))
	}
	if qf.Rows > 0 {
		opts = append(opts, WithRows(qf.Rows))
	}
	if len(qf.Fields) > 0 {
		opts = append(opts, WithFields(qf.Fields...))
	}
	return opts
}

// Stream constructs a stream from the saved definition.
func (qf *QueryFile) Stream(opts ...Option) *Stream {
	return New(qf.BaseURL, append(qf.Options(), opts...)...)
}
