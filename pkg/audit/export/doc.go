// Package export provides audit entry exporters for various formats.
//
// # Export Formats
//
// The export package provides exporters for:
//
//   - JSON: Single entry or array, with optional pretty-printing
//   - CSV: Flattened schema with header row and proper escaping
//
// # JSON Export
//
// The JSON exporter outputs audit entries in JSON format:
//
//	// Create JSON exporter with pretty-printing
//	exporter := export.NewJSONExporter(true)
//
//	// Export entries to stdout
//	err := exporter.Export(ctx, log.Snapshot(), os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # CSV Export
//
// The CSV exporter flattens each entry to one row: the sequential entry id,
// the append timestamp, and the verdict's headline fields. Per-constraint
// results are summarized as counts; use JSON export when the full result
// list is needed.
//
//	// Create CSV exporter with header row
//	exporter := export.NewCSVExporter(true)
//
//	f, _ := os.Create("audit.csv")
//	defer f.Close()
//
//	err := exporter.Export(ctx, log.Snapshot(), f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Exporters return audit.ExportError if the export fails:
//
//   - JSON encoding errors
//   - CSV escaping errors
//   - Writer errors
package export
