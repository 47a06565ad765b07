// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cursorstream

import (
	"os"
	"path/filepath"
	"testing"
)

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.yaml")

	qf := QueryFile{
		BaseURL: "http://solr.example.org:8983/solr/catalog",
		Handler: "export",
		Query:   "title:whale",
		Filters: []string{"format:book"},
		Sort:    "record_id asc",
		Rows:    250,
		Fields:  []string{"id", "title"},
	}
	if err := WriteQueryFile(path, qf); err != nil {
		t.Fatalf("WriteQueryFile: %v", err)
	}

	got, err := ReadQueryFile(path)
	if err != nil {
		t.Fatalf("ReadQueryFile: %v", err)
	}
	if got.BaseURL != qf.BaseURL || got.Handler != qf.Handler || got.Query != qf.Query ||
		got.Sort != qf.Sort || got.Rows != qf.Rows {
		t.Errorf("round trip = %+v, want %+v", got, qf)
	}
	if len(got.Filters) != 1 || got.Filters[0] != "format:book" {
		t.Errorf("Filters = %v, want [format:book]", got.Filters)
	}
	if len(got.Fields) != 2 {
		t.Errorf("Fields = %v, want [id title]", got.Fields)
	}
}

func TestQueryFileStreamAppliesOptions(t *testing.T) {
	qf := QueryFile{
		BaseURL: "http://solr.example.org/",
		Query:   "author:melville",
		Rows:    50,
	}
	s := qf.Stream()

	if s.BaseURL != "http://solr.example.org" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", s.BaseURL)
	}
	if s.Query.Text != "author:melville" {
		t.Errorf("Text = %q, want %q", s.Query.Text, "author:melville")
	}
	if s.Query.Rows != 50 {
		t.Errorf("Rows = %d, want 50", s.Query.Rows)
	}
	// Unset fields keep the defaults.
	if s.Query.Handler != "select" || s.Query.Sort != "id asc" {
		t.Errorf("defaults not preserved: %+v", s.Query)
	}
}

func TestReadQueryFileRequiresBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.yaml")
	if err := os.WriteFile(path, []byte("query: '*:*'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadQueryFile(path); err == nil {
		t.Error("expected error for missing base_url")
	}
}

func TestReadQueryFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.yaml")
	if err := os.WriteFile(path, []byte("{{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadQueryFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestReadQueryFileMissing(t *testing.T) {
	if _, err := ReadQueryFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
