package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	fitfaker "fit-faker"
)

const defaultSuffix = "_modified"

// Run transforms opts.Inputs with a fixed-size worker pool. Each output is
// written atomically (temp file in the target directory, then rename) only
// after its whole transform pipeline succeeded; a failed file leaves
// nothing behind and the batch continues.
func Run(opts Options) (*Result, error) {
	if len(opts.Inputs) == 0 {
		return nil, fmt.Errorf("no input files")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(opts.Inputs) {
		workers = len(opts.Inputs)
	}
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	res := &Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Workers:   workers,
		Files:     make([]FileOutcome, len(opts.Inputs)),
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res.Files[i] = transformOne(opts.Inputs[i], opts)
			}
		}()
	}
	for i := range opts.Inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, f := range res.Files {
		if f.OK {
			res.Transformed++
		} else {
			res.Failed++
		}
	}
	res.FinishedAt = time.Now().UTC()

	if opts.ReportPath != "" {
		if err := writeReport(opts.ReportPath, res); err != nil {
			return res, fmt.Errorf("write report: %w", err)
		}
	}
	return res, nil
}

func transformOne(input string, opts Options) FileOutcome {
	outcome := FileOutcome{Input: input}

	data, err := os.ReadFile(input)
	if err != nil {
		outcome.Error = fmt.Sprintf("read: %v", err)
		return outcome
	}
	outcome.InputBytes = int64(len(data))

	result, err := fitfaker.Transform(data, opts.Profile, opts.Quirks)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	for _, w := range result.Warnings {
		outcome.Warnings = append(outcome.Warnings, w.String())
	}

	output := outputPath(input, opts)
	if err := writeAtomic(output, result.Bytes); err != nil {
		outcome.Error = fmt.Sprintf("write: %v", err)
		return outcome
	}
	outcome.Output = output
	outcome.OutputBytes = int64(len(result.Bytes))
	outcome.OK = true
	return outcome
}

func outputPath(input string, opts Options) string {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = defaultSuffix
	}
	dir := filepath.Dir(input)
	if opts.OutDir != "" {
		dir = opts.OutDir
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+suffix+ext)
}

// writeAtomic stages the bytes next to the destination and renames into
// place, so a watcher or uploader never observes a half-written file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fit-faker-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func writeReport(path string, res *Result) error {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0o644)
}
