// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2/google"

	"github.com/pdiddy/action-engine/internal/extract"
	"github.com/pdiddy/action-engine/internal/load"
	"github.com/pdiddy/action-engine/internal/report"
	"github.com/pdiddy/action-engine/internal/secrets"
	"github.com/pdiddy/action-engine/pkg/types"
)

const (
	defaultModel  = "gemini-2.5-pro"
	defaultOutput = "action_analysis.xlsx"
	defaultOutDir = "output"
	cloudScope    = "https://www.googleapis.com/auth/cloud-platform"
)

var extractCmd = &cobra.Command{
	Use:   "extract [dir]",
	Short: "Extract categorized climate actions from a directory of PDF reports",
	Long: `Extract enumerates the PDF files in a directory, sends each one's text to
the Gemini API chunk by chunk, and aggregates the extracted actions into
a two-sheet workbook (Actions, Statistics). With no directory argument it
prompts for one.

Authentication: put a Generative Language API key in .secrets/gemini-api-key
or GEMINI_API_KEY, or set GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION, and
GOOGLE_APPLICATION_CREDENTIALS to use the Vertex AI endpoint.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	dir, err := inputDir(args)
	if err != nil {
		return err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("input directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %s is not a directory", dir)
	}

	cfg := pipelineConfig(cmd)

	backend, err := buildBackend(cmd, cfg.Extraction)
	if err != nil {
		return err
	}

	loader := load.NewLoader(load.NewPDFExtractor(), cfg.Extraction.ChunkSize)

	result, err := extract.Run(cmd.Context(), loader, backend, &extract.JSONListParser{}, dir, cfg.Extraction, os.Stdout)
	if err != nil {
		return err
	}

	if err := report.Write(cfg.Report.OutputFile, result.Records); err != nil {
		return err
	}

	s := result.Summary
	fmt.Printf("\nprocessed: %d, failed: %d, actions: %d\n", s.Processed, s.Failed, s.Actions)
	fmt.Printf("Report written to %s\n", cfg.Report.OutputFile)
	return nil
}

// inputDir returns the directory argument, or prompts for one on stdin.
func inputDir(args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}

	fmt.Fprint(os.Stderr, "Directory with PDF reports: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading directory path: %w", err)
		}
		return "", fmt.Errorf("no directory path given")
	}

	dir := strings.TrimSpace(scanner.Text())
	if dir == "" {
		return "", fmt.Errorf("no directory path given")
	}
	return dir, nil
}

// pipelineConfig merges flags, the viper config file, and defaults.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("extraction.model")
	}
	if model == "" {
		model = defaultModel
	}

	chunkSize, _ := cmd.Flags().GetInt("chunk-size")
	if chunkSize <= 0 {
		chunkSize = viper.GetInt("extraction.chunk_size")
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = viper.GetString("extraction.output_dir")
	}
	if outDir == "" {
		outDir = defaultOutDir
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = viper.GetString("report.output_file")
	}
	if output == "" {
		output = defaultOutput
	}

	return types.PipelineConfig{
		Extraction: types.ExtractionConfig{
			AIConfig: types.AIConfig{
				Model:    model,
				APIKey:   secretDefault(secrets.GeminiAPIKey, os.Getenv("GEMINI_API_KEY")),
				Project:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
				Location: os.Getenv("GOOGLE_CLOUD_LOCATION"),
			},
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("extraction.timeout"),
				UserAgent: "action-engine/" + version,
			},
			ChunkSize: chunkSize,
			OutputDir: outDir,
		},
		Report: types.ReportConfig{OutputFile: output},
	}
}

// buildBackend wires the Gemini backend for the configured auth mode.
func buildBackend(cmd *cobra.Command, cfg types.ExtractionConfig) (*extract.GeminiBackend, error) {
	backend := &extract.GeminiBackend{
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		Project:   cfg.Project,
		Location:  cfg.Location,
		UserAgent: cfg.UserAgent,
	}

	if cfg.Timeout > 0 {
		backend.Client = &http.Client{Timeout: cfg.Timeout}
	}

	if cfg.APIKey == "" {
		if cfg.Project == "" || cfg.Location == "" {
			return nil, fmt.Errorf("no Gemini credentials: set .secrets/%s or GEMINI_API_KEY, or GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION", secrets.GeminiAPIKey)
		}
		ts, err := google.DefaultTokenSource(cmd.Context(), cloudScope)
		if err != nil {
			return nil, fmt.Errorf("loading cloud credentials: %w", err)
		}
		backend.TokenSource = ts
	}

	return backend, nil
}

func init() {
	extractCmd.Flags().String("model", "", "AI model identifier (default \""+defaultModel+"\")")
	extractCmd.Flags().Int("chunk-size", 0, fmt.Sprintf("character budget per model request (default %d)", load.DefaultChunkSize))
	extractCmd.Flags().String("output", "", "workbook path for the two-sheet summary (default \""+defaultOutput+"\")")
	extractCmd.Flags().String("out-dir", "", "base directory for per-file YAML results (default \""+defaultOutDir+"\")")

	rootCmd.AddCommand(extractCmd)
}
