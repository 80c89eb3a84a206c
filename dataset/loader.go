package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/tabeval/pkg/errors"
	"github.com/YuminosukeSato/tabeval/pkg/log"
)

// Loader reads tabular records, validates them against a schema, and drops
// designated non-predictive columns. It has no side effects beyond reading
// the source.
type Loader struct {
	schema Schema
	drop   map[string]bool
	logger log.Logger
}

// NewLoader creates a Loader for the given schema. Columns named in
// dropColumns are validated on input but excluded from the resulting
// Dataset (e.g. a sample-size column that must not enter the model).
func NewLoader(schema Schema, dropColumns ...string) *Loader {
	drop := make(map[string]bool, len(dropColumns))
	for _, name := range dropColumns {
		drop[name] = true
	}
	return &Loader{
		schema: schema,
		drop:   drop,
		logger: log.GetLoggerWithName("dataset"),
	}
}

// ReadCSV loads a header-prefixed CSV stream.
func (l *Loader) ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(errors.ErrEmptyData, "read csv header")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv record")
		}
		row := make([]string, len(record))
		copy(row, record)
		rows = append(rows, row)
	}

	return l.FromRecords(header, rows)
}

// ReadCSVFile loads a header-prefixed CSV file from disk.
func (l *Loader) ReadCSVFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open csv file")
	}
	defer file.Close()
	return l.ReadCSV(file)
}

// FromRecords builds a Dataset from an in-memory header and row set.
// Every schema column must appear in the header, and every value must
// parse as its declared type; otherwise a SchemaError is returned.
func (l *Loader) FromRecords(header []string, rows [][]string) (*Dataset, error) {
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	for _, col := range l.schema.Columns {
		if _, ok := colIndex[col.Name]; !ok {
			return nil, errors.NewSchemaError(col.Name, -1, "", "required column not found")
		}
	}

	retained := make([]Column, 0, len(l.schema.Columns))
	for _, col := range l.schema.Columns {
		if !l.drop[col.Name] {
			retained = append(retained, col)
		}
	}

	ds := &Dataset{
		columns: retained,
		numeric: make(map[string][]float64),
		labels:  make(map[string][]string),
		nRows:   len(rows),
	}
	for _, col := range retained {
		if col.Type == Categorical {
			ds.labels[col.Name] = make([]string, 0, len(rows))
		} else {
			ds.numeric[col.Name] = make([]float64, 0, len(rows))
		}
	}

	for rowIdx, row := range rows {
		// Validate all declared columns, including dropped ones, so that a
		// malformed source never passes silently.
		for _, col := range l.schema.Columns {
			idx := colIndex[col.Name]
			if idx >= len(row) {
				return nil, errors.NewSchemaError(col.Name, rowIdx, "", "row has too few fields")
			}
			raw := strings.TrimSpace(row[idx])

			value, err := parseValue(col, rowIdx, raw)
			if err != nil {
				return nil, err
			}

			if l.drop[col.Name] {
				continue
			}
			if col.Type == Categorical {
				ds.labels[col.Name] = append(ds.labels[col.Name], raw)
			} else {
				ds.numeric[col.Name] = append(ds.numeric[col.Name], value)
			}
		}
	}

	dropped := make([]string, 0, len(l.drop))
	for name := range l.drop {
		dropped = append(dropped, name)
	}
	l.logger.Info("dataset loaded",
		log.OperationKey, "load",
		log.RowsKey, ds.nRows,
		log.ColumnsKey, len(retained),
		log.DroppedKey, strings.Join(dropped, ","),
	)

	return ds, nil
}

func parseValue(col Column, row int, raw string) (float64, error) {
	switch col.Type {
	case Categorical:
		if raw == "" {
			return 0, errors.NewSchemaError(col.Name, row, raw, "empty categorical value")
		}
		return 0, nil
	case Count:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, errors.NewSchemaError(col.Name, row, raw, "not a valid count")
		}
		if n < 0 {
			return 0, errors.NewSchemaError(col.Name, row, raw, "count must be non-negative")
		}
		return float64(n), nil
	default:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, errors.NewSchemaError(col.Name, row, raw, "not a valid number")
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errors.NewSchemaError(col.Name, row, raw, "value is not finite")
		}
		return v, nil
	}
}
