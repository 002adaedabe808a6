package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/srlproj/dataset"
)

// JSONRenderer writes sentence pair records as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the records as a JSON array.
func (r *JSONRenderer) Render(records []dataset.Record) error {
	if records == nil {
		records = []dataset.Record{}
	}
	return json.NewEncoder(r.W).Encode(records)
}
