package storage

import (
	"encoding/json"
	"os"
)

// RunExport is the JSON shape written by export-json.
type RunExport struct {
	Meta      RunMetadata `json:"meta"`
	Times     []float64   `json:"times"`
	Snapshots [][]float64 `json:"snapshots"`
}

// ExportJSONStdout writes a full run (metadata plus history) to stdout.
func ExportJSONStdout(meta RunMetadata, times []float64, snapshots [][]float64) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(RunExport{Meta: meta, Times: times, Snapshots: snapshots})
}
