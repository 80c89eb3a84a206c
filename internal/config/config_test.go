package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/tabeval/dataset"
)

func TestLoadDefaults(t *testing.T) {
	run, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if run.Model != "linear" {
		t.Errorf("Model = %q, want linear", run.Model)
	}
	if run.SplitRatio != 0.8 {
		t.Errorf("SplitRatio = %v, want 0.8", run.SplitRatio)
	}
	if run.Seed != 42 {
		t.Errorf("Seed = %d, want 42", run.Seed)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `data_path: data/screentime.csv
target: avg_hours
columns:
  - age:numeric
  - gender:categorical
  - avg_hours:numeric
  - sample_size:count
drop:
  - sample_size
model: tree
split_ratio: 0.75
seed: 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	run, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if run.Target != "avg_hours" {
		t.Errorf("Target = %q, want avg_hours", run.Target)
	}
	if run.Model != "tree" {
		t.Errorf("Model = %q, want tree", run.Model)
	}
	if run.SplitRatio != 0.75 {
		t.Errorf("SplitRatio = %v, want 0.75", run.SplitRatio)
	}
	if len(run.Drop) != 1 || run.Drop[0] != "sample_size" {
		t.Errorf("Drop = %v, want [sample_size]", run.Drop)
	}

	schema, err := run.Schema()
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}
	if len(schema.Columns) != 4 {
		t.Fatalf("got %d schema columns, want 4", len(schema.Columns))
	}
	if col, _ := schema.Column("sample_size"); col.Type != dataset.Count {
		t.Errorf("sample_size type = %v, want count", col.Type)
	}
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("TABEVAL_DATA_PATH", "data/screentime.csv")
	t.Setenv("TABEVAL_TARGET", "avg_hours")
	t.Setenv("TABEVAL_COLUMNS", "age:numeric,avg_hours:numeric")
	t.Setenv("TABEVAL_DROP", "sample_size")
	t.Setenv("TABEVAL_MODEL", "tree")
	t.Setenv("TABEVAL_SPLIT_RATIO", "0.7")

	run, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if run.DataPath != "data/screentime.csv" {
		t.Errorf("DataPath = %q, want data/screentime.csv", run.DataPath)
	}
	if run.Target != "avg_hours" {
		t.Errorf("Target = %q, want avg_hours", run.Target)
	}
	if len(run.Columns) != 2 || run.Columns[0] != "age:numeric" {
		t.Errorf("Columns = %v, want [age:numeric avg_hours:numeric]", run.Columns)
	}
	if len(run.Drop) != 1 || run.Drop[0] != "sample_size" {
		t.Errorf("Drop = %v, want [sample_size]", run.Drop)
	}
	if run.Model != "tree" {
		t.Errorf("Model = %q, want tree", run.Model)
	}
	if run.SplitRatio != 0.7 {
		t.Errorf("SplitRatio = %v, want 0.7", run.SplitRatio)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `target: avg_hours
model: linear
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TABEVAL_MODEL", "tree")

	run, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if run.Model != "tree" {
		t.Errorf("Model = %q, env must override the file value", run.Model)
	}
	if run.Target != "avg_hours" {
		t.Errorf("Target = %q, want the file value avg_hours", run.Target)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		run  Run
	}{
		{name: "ratio too high", run: Run{Model: "linear", SplitRatio: 1.0, LogLevel: "info"}},
		{name: "ratio zero", run: Run{Model: "linear", SplitRatio: 0, LogLevel: "info"}},
		{name: "unknown model", run: Run{Model: "forest", SplitRatio: 0.8, LogLevel: "info"}},
		{name: "unknown log level", run: Run{Model: "linear", SplitRatio: 0.8, LogLevel: "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestSchemaRejectsBadDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
	}{
		{name: "no columns", columns: nil},
		{name: "missing type", columns: []string{"age"}},
		{name: "unknown type", columns: []string{"age:integer"}},
		{name: "empty name", columns: []string{":numeric"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := Run{Columns: tt.columns}
			if _, err := run.Schema(); err == nil {
				t.Error("Schema() should fail")
			}
		})
	}
}
