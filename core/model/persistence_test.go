package model

import (
	"bytes"
	"path/filepath"
	"testing"
)

type fakeParams struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

func TestExportImportRoundTrip(t *testing.T) {
	orig := fakeParams{Weights: []float64{1.5, -2.25}, Intercept: 0.5}

	var buf bytes.Buffer
	if err := Export(&buf, "linear.Regression", orig); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var restored fakeParams
	if err := Import(&buf, "linear.Regression", &restored); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if restored.Intercept != orig.Intercept {
		t.Errorf("intercept = %v, want %v", restored.Intercept, orig.Intercept)
	}
	if len(restored.Weights) != 2 || restored.Weights[0] != 1.5 || restored.Weights[1] != -2.25 {
		t.Errorf("weights = %v, want %v", restored.Weights, orig.Weights)
	}
}

func TestImportRejectsWrongModelName(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, "tree.Regressor", fakeParams{}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var params fakeParams
	if err := Import(&buf, "linear.Regression", &params); err == nil {
		t.Error("Import() with a mismatched model name should fail")
	}
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	orig := fakeParams{Weights: []float64{3}, Intercept: 1}

	if err := ExportFile(path, "linear.Regression", orig); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}

	var restored fakeParams
	if err := ImportFile(path, "linear.Regression", &restored); err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if restored.Weights[0] != 3 || restored.Intercept != 1 {
		t.Errorf("restored = %+v, want %+v", restored, orig)
	}
}

func TestBaseEstimatorState(t *testing.T) {
	var e BaseEstimator
	if e.IsFitted() {
		t.Error("new estimator must not report fitted")
	}
	e.SetFitted()
	if !e.IsFitted() {
		t.Error("SetFitted() must mark the estimator fitted")
	}
	e.Reset()
	if e.IsFitted() {
		t.Error("Reset() must clear the fitted state")
	}
}
