package errors

import (
	"strings"
	"testing"
)

func TestSchemaError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantSub []string
	}{
		{
			name:    "missing column",
			err:     NewSchemaError("age", -1, "", "required column not found"),
			wantSub: []string{"schema", `"age"`, "required column not found"},
		},
		{
			name:    "unparsable value",
			err:     NewSchemaError("avg_hours", 12, "n/a", "not a valid number"),
			wantSub: []string{`"avg_hours"`, "row 12", `"n/a"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, sub := range tt.wantSub {
				if !strings.Contains(msg, sub) {
					t.Errorf("SchemaError message %q missing %q", msg, sub)
				}
			}

			var schemaErr *SchemaError
			if !As(tt.err, &schemaErr) {
				t.Error("errors.As failed to unwrap *SchemaError")
			}
		})
	}
}

func TestInsufficientDataError(t *testing.T) {
	err := NewInsufficientDataError(1, 2)

	var insErr *InsufficientDataError
	if !As(err, &insErr) {
		t.Fatal("errors.As failed to unwrap *InsufficientDataError")
	}
	if insErr.Rows != 1 || insErr.Required != 2 {
		t.Errorf("got Rows=%d Required=%d, want 1 and 2", insErr.Rows, insErr.Required)
	}
}

func TestDegenerateTargetError(t *testing.T) {
	err := NewDegenerateTargetError("Evaluate", 20, 3.5)

	var degErr *DegenerateTargetError
	if !As(err, &degErr) {
		t.Fatal("errors.As failed to unwrap *DegenerateTargetError")
	}
	if degErr.Rows != 20 || degErr.Value != 3.5 {
		t.Errorf("got Rows=%d Value=%g, want 20 and 3.5", degErr.Rows, degErr.Value)
	}
	if !strings.Contains(err.Error(), "constant") {
		t.Errorf("message %q should mention the constant target", err.Error())
	}
}

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("OneHotEncoder", "Transform")

	var nfErr *NotFittedError
	if !As(err, &nfErr) {
		t.Fatal("errors.As failed to unwrap *NotFittedError")
	}
	if !strings.Contains(err.Error(), "Fit()") {
		t.Errorf("message %q should point at Fit()", err.Error())
	}
}

func TestWarningHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(func(w error) {})

	w := NewUnknownCategoryWarning("gender", "other")
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not invoked")
	}
	if !strings.Contains(captured.Error(), "unknown bucket") {
		t.Errorf("warning %q should mention the unknown bucket", captured.Error())
	}
}

func TestWrapPreservesType(t *testing.T) {
	base := NewSchemaError("day_type", -1, "", "required column not found")
	wrapped := Wrap(base, "loading dataset")

	var schemaErr *SchemaError
	if !As(wrapped, &schemaErr) {
		t.Error("wrapping should preserve the underlying *SchemaError")
	}
}
