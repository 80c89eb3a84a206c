package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/YuminosukeSato/tabeval/pkg/errors"
)

func TestSetupLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter("debug", &buf)

	logger := GetLogger()
	logger.Info("split complete", TrainRowsKey, 80, EvalRowsKey, 20)

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if record["msg"] != "split complete" {
		t.Errorf("msg = %v, want %q", record["msg"], "split complete")
	}
	if record[TrainRowsKey] != float64(80) {
		t.Errorf("%s = %v, want 80", TrainRowsKey, record[TrainRowsKey])
	}
}

func TestErrorLoggingIncludesStacktrace(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter("debug", &buf)

	err := errors.NewSchemaError("age", -1, "", "required column not found")
	GetLogger().Error("load failed", err, OperationKey, "load")

	out := buf.String()
	if !strings.Contains(out, StacktraceAttrKey) {
		t.Errorf("error log should carry a %q attribute, got: %s", StacktraceAttrKey, out)
	}
	if !strings.Contains(out, "load failed") {
		t.Errorf("error log missing message, got: %s", out)
	}
}

func TestToSlogLevelPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ToSlogLevel should panic on an unknown level")
		}
	}()
	ToSlogLevel("verbose")
}

func TestTestLoggerCapturesFields(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	contextual := logger.With(ComponentKey, "evaluation")
	contextual.Info("metrics computed", RMSEKey, 0.285)

	out := buffer.String()
	for _, want := range []string{"INFO", "metrics computed", "ml.component=evaluation", "metrics.rmse=0.285"} {
		if !strings.Contains(out, want) {
			t.Errorf("captured output %q missing %q", out, want)
		}
	}
}

func TestTestLoggerLevelFiltering(t *testing.T) {
	logger, buffer := NewTestLogger(LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	out := buffer.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below the minimum level leaked: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestWarningBridgeEmitsStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	InstallWarningBridgeWithWriter(&buf)
	defer errors.SetZerologWarnFunc(nil)

	errors.Warn(errors.NewUnknownCategoryWarning("gender", "other"))

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("warning output is not valid JSON: %v", err)
	}
	if record["column"] != "gender" {
		t.Errorf("column = %v, want %q", record["column"], "gender")
	}
	if record["type"] != "UnknownCategoryWarning" {
		t.Errorf("type = %v, want UnknownCategoryWarning", record["type"])
	}
}
