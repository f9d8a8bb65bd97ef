// Package batch transforms many FIT files concurrently. Files are
// independent: each worker owns one file end to end, and the only shared
// state is the read-only profile and quirk policy.
package batch

import (
	"time"

	fitfaker "fit-faker"
)

// Options configures a batch run.
type Options struct {
	// Inputs are the FIT files to transform.
	Inputs []string

	// OutDir receives the transformed files. Empty writes each output
	// next to its input.
	OutDir string

	// Suffix is appended to the input stem for the output name.
	// Empty defaults to "_modified".
	Suffix string

	Profile fitfaker.DeviceProfile
	Quirks  fitfaker.Quirks

	// Workers caps the transform pool. Zero means one per CPU.
	Workers int

	// ReportPath, when set, receives a JSON report of the run.
	ReportPath string
}

// FileOutcome is the per-file result of a batch run. A failed file is
// reported by name and reason; it never stops the rest of the batch.
type FileOutcome struct {
	Input       string   `json:"input"`
	Output      string   `json:"output,omitempty"`
	OK          bool     `json:"ok"`
	Error       string   `json:"error,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	InputBytes  int64    `json:"input_bytes"`
	OutputBytes int64    `json:"output_bytes,omitempty"`
}

// Result summarizes a batch run.
type Result struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Workers    int           `json:"workers"`
	Transformed int          `json:"transformed"`
	Failed      int          `json:"failed"`
	Files       []FileOutcome `json:"files"`
}
