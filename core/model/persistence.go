package model

import (
	"encoding/json"
	"io"
	"os"

	"github.com/YuminosukeSato/tabeval/pkg/errors"
)

// FormatVersion is the on-disk format version for exported models.
const FormatVersion = "1.0"

// Exported is the JSON envelope for fitted model parameters.
type Exported struct {
	Name          string          `json:"name"`
	FormatVersion string          `json:"format_version"`
	Params        json.RawMessage `json:"params"`
}

// Export writes a fitted model's parameters to w as indented JSON.
func Export(w io.Writer, name string, params interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "marshal model params")
	}

	env := Exported{
		Name:          name,
		FormatVersion: FormatVersion,
		Params:        raw,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&env); err != nil {
		return errors.Wrap(err, "encode model envelope")
	}
	return nil
}

// ExportFile writes a fitted model's parameters to the named file.
func ExportFile(path, name string, params interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create model file")
	}
	defer file.Close()
	return Export(file, name, params)
}

// Import reads an exported envelope from r and unmarshals its parameters
// into params. It fails when the envelope names a different model.
func Import(r io.Reader, name string, params interface{}) error {
	var env Exported
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return errors.Wrap(err, "decode model envelope")
	}
	if env.Name != name {
		return errors.Newf("model envelope holds %q, expected %q", env.Name, name)
	}
	if err := json.Unmarshal(env.Params, params); err != nil {
		return errors.Wrap(err, "unmarshal model params")
	}
	return nil
}

// ImportFile reads an exported envelope from the named file.
func ImportFile(path, name string, params interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open model file")
	}
	defer file.Close()
	return Import(file, name, params)
}
