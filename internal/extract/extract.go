// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract sends report text to a generative AI model and collects
// the categorized climate actions it returns.
package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/action-engine/pkg/types"
)

const extractedDir = "extracted"

// AIBackend abstracts the generative AI API so tests can supply a mock.
// Extract handles a single chunk of report text and returns the model's
// raw reply.
type AIBackend interface {
	Extract(ctx context.Context, chunk string) (string, error)
}

// DocumentLoader turns a document file into one or more text chunks, each
// within the model's context budget.
type DocumentLoader interface {
	Load(path string) ([]string, error)
}

// RunSummary holds counts from one extraction run.
type RunSummary struct {
	Processed int
	Failed    int
	Actions   int
}

// Total returns the number of files handled.
func (s RunSummary) Total() int {
	return s.Processed + s.Failed
}

// HasFailures reports whether any files failed.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0
}

// RunResult is the outcome of one extraction run: the aggregated records in
// file-then-chunk order, plus the summary counts.
type RunResult struct {
	Records []types.ActionRecord
	Summary RunSummary
}

// Run processes every PDF in dir sequentially: load and chunk the text, send
// each chunk to the backend, parse the reply, and aggregate the records with
// their source filename. A file that cannot be read is reported and skipped;
// a chunk whose request or parse fails is reported and skipped, so the run
// may undercount but never aborts on a single bad file or chunk. When
// cfg.OutputDir is set, a per-file YAML result is written under
// cfg.OutputDir/extracted/.
func Run(ctx context.Context, loader DocumentLoader, backend AIBackend, parser ResponseParser, dir string, cfg types.ExtractionConfig, w io.Writer) (*RunResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		fmt.Fprintf(w, "no PDF files found in %s\n", dir)
	}

	result := &RunResult{}

	for _, name := range names {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		path := filepath.Join(dir, name)

		chunks, err := loader.Load(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			result.Summary.Failed++
			continue
		}

		fmt.Fprintf(w, "extracting %s (%d chunks)\n", name, len(chunks))

		records := extractFile(ctx, backend, parser, name, chunks, w)

		if cfg.OutputDir != "" {
			if err := writeResult(cfg.OutputDir, name, records); err != nil {
				fmt.Fprintf(w, "warning: result write for %s failed: %v\n", name, err)
			}
		}

		fmt.Fprintf(w, "extracted %s (%d actions)\n", name, len(records))
		result.Records = append(result.Records, records...)
		result.Summary.Processed++
	}

	result.Summary.Actions = len(result.Records)
	return result, nil
}

// extractFile runs every chunk of one file through the backend and parser.
// Chunk failures are reported to w and skipped.
func extractFile(ctx context.Context, backend AIBackend, parser ResponseParser, name string, chunks []string, w io.Writer) []types.ActionRecord {
	var records []types.ActionRecord

	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		raw, err := backend.Extract(ctx, chunk)
		if err != nil {
			fmt.Fprintf(w, "failed  %s chunk %d/%d: %v\n", name, i+1, len(chunks), err)
			continue
		}

		items, err := parser.Parse(raw)
		if err != nil {
			fmt.Fprintf(w, "failed  %s chunk %d/%d: %v\n", name, i+1, len(chunks), err)
			continue
		}

		records = append(records, convertItems(items, name)...)
	}

	return records
}

// convertItems turns parsed model items into ActionRecords stamped with the
// source filename. Items with empty action text are dropped; category labels
// outside the three named buckets map to Other.
func convertItems(items []ActionItem, sourceFile string) []types.ActionRecord {
	var records []types.ActionRecord
	for _, item := range items {
		text := strings.TrimSpace(item.Action)
		if text == "" {
			continue
		}
		records = append(records, types.ActionRecord{
			Text:        text,
			Category:    types.ParseCategory(item.Category),
			SourceFile:  sourceFile,
			VillageName: strings.TrimSpace(item.VillageName),
			ReportDate:  strings.TrimSpace(item.ReportDate),
		})
	}
	return records
}

// writeResult marshals a per-file result to outDir/extracted/[stem]-actions.yaml.
func writeResult(outDir, name string, records []types.ActionRecord) error {
	dir := filepath.Join(outDir, extractedDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating result directory: %w", err)
	}

	result := types.FileResult{
		SourceFile: name,
		Actions:    records,
	}
	for _, r := range records {
		if result.VillageName == "" {
			result.VillageName = r.VillageName
		}
		if result.ReportDate == "" {
			result.ReportDate = r.ReportDate
		}
	}

	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return os.WriteFile(filepath.Join(dir, stem+"-actions.yaml"), data, 0o644)
}
