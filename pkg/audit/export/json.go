package export

import (
	"context"
	"encoding/json"
	"io"

	"mercator-hq/minerva/pkg/audit"
)

// JSONExporter exports audit entries to JSON format.
type JSONExporter struct {
	// Pretty enables pretty-printing with indentation.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{
		Pretty: pretty,
	}
}

// Export writes audit entries to the provided writer in JSON format.
// If Pretty is true, the JSON will be indented for readability.
//
// Entries are always exported as a JSON array, even when there is only
// one, so downstream consumers can parse the output uniformly.
func (e *JSONExporter) Export(ctx context.Context, entries []*audit.Entry, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(entries) == 0 {
		_, err := w.Write([]byte("[]"))
		return err
	}

	var data []byte
	var err error
	if e.Pretty {
		data, err = json.MarshalIndent(entries, "", "  ")
	} else {
		data, err = json.Marshal(entries)
	}
	if err != nil {
		return audit.NewExportError("json", len(entries), err)
	}

	if _, err := w.Write(data); err != nil {
		return audit.NewExportError("json", len(entries), err)
	}

	return nil
}
