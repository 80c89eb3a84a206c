// Package errors provides the structured error and warning types used across
// tabeval. Every constructor attaches a cockroachdb/errors stack trace, and
// every type knows how to marshal itself into a zerolog event.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("tabeval-warning: %v\n", w)
	}
	// zerolog sink, set lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the process-wide warning handler. Use it to
// silence or redirect warnings such as UnknownCategoryWarning:
//
//	errors.SetWarningHandler(func(w error) {})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. When set it
// takes precedence over the plain handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the configured sink.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Pipeline error taxonomy
//
// ===========================================================================

// SchemaError reports a malformed input table: a declared column is missing
// or a value failed to parse as the column's declared type.
type SchemaError struct {
	Column string
	Row    int    // -1 when the failure is not tied to a row (missing column)
	Value  string // offending raw value, empty for missing columns
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("tabeval: schema: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("tabeval: schema: column %q row %d: %s (value: %q)", e.Column, e.Row, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured schema failure to a zerolog event.
func (e *SchemaError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Int("row", e.Row).
		Str("value", e.Value).
		Str("reason", e.Reason).
		Str("type", "SchemaError")
}

// NewSchemaError creates a SchemaError with a stack trace attached.
func NewSchemaError(column string, row int, value, reason string) error {
	err := &SchemaError{Column: column, Row: row, Value: value, Reason: reason}
	return errors.WithStack(err)
}

// InsufficientDataError reports that a dataset is too small to partition
// into non-empty training and evaluation subsets.
type InsufficientDataError struct {
	Rows     int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("tabeval: insufficient data: %d rows, need at least %d to split", e.Rows, e.Required)
}

// MarshalZerologObject adds the structured failure to a zerolog event.
func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("rows", e.Rows).
		Int("required", e.Required).
		Str("type", "InsufficientDataError")
}

// NewInsufficientDataError creates an InsufficientDataError with a stack
// trace attached.
func NewInsufficientDataError(rows, required int) error {
	err := &InsufficientDataError{Rows: rows, Required: required}
	return errors.WithStack(err)
}

// DegenerateTargetError reports that the evaluation target has zero
// variance, leaving R² undefined. The run cannot be retried without
// changing the input.
type DegenerateTargetError struct {
	Op    string
	Rows  int
	Value float64 // the constant target value
}

func (e *DegenerateTargetError) Error() string {
	return fmt.Sprintf("tabeval: %s: evaluation target is constant (%g over %d rows), R² undefined", e.Op, e.Value, e.Rows)
}

// MarshalZerologObject adds the structured failure to a zerolog event.
func (e *DegenerateTargetError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("rows", e.Rows).
		Float64("value", e.Value).
		Str("type", "DegenerateTargetError")
}

// NewDegenerateTargetError creates a DegenerateTargetError with a stack
// trace attached.
func NewDegenerateTargetError(op string, rows int, value float64) error {
	err := &DegenerateTargetError{Op: op, Rows: rows, Value: value}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Estimator errors
//
// ===========================================================================

// NotFittedError is returned when Predict or Transform is called on an
// estimator before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("tabeval: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured failure to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports a shape mismatch between two inputs.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("tabeval: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured failure to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError is returned for arguments whose value is out of range or
// otherwise unusable, e.g. a split ratio outside (0, 1).
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("tabeval: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError wraps a lower-level failure from a model operation.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tabeval: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("tabeval: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a ModelError with a stack trace attached.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	Warnings
//
// ===========================================================================

// UnknownCategoryWarning is emitted when Transform encounters a category
// that was not present during Fit. The value is routed to the encoder's
// reserved unknown bucket; the transform itself never fails.
type UnknownCategoryWarning struct {
	Column   string
	Category string
}

func (w *UnknownCategoryWarning) Error() string {
	return fmt.Sprintf("category %q in column %q was not seen during fit; mapped to the unknown bucket", w.Category, w.Column)
}

// MarshalZerologObject adds the structured warning to a zerolog event.
func (w *UnknownCategoryWarning) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", w.Column).
		Str("category", w.Category).
		Str("type", "UnknownCategoryWarning")
}

// NewUnknownCategoryWarning creates a new UnknownCategoryWarning.
func NewUnknownCategoryWarning(column, category string) *UnknownCategoryWarning {
	return &UnknownCategoryWarning{Column: column, Category: category}
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an operation receives no rows.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when the normal equations cannot be
	// solved because the design matrix is rank deficient.
	ErrSingularMatrix = New("singular matrix")
)
