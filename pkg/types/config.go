// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means the client default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "action-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for calls to the generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-2.5-pro").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the Generative Language API. When set it
	// takes precedence over the Vertex AI project settings below.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Project is the cloud project ID for the Vertex AI endpoint.
	Project string `json:"project,omitempty" yaml:"project,omitempty"`

	// Location is the cloud region for the Vertex AI endpoint (e.g. "us-central1").
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// ExtractionConfig holds settings for the extraction pipeline.
type ExtractionConfig struct {
	AIConfig `yaml:",inline"`

	HTTPConfig `yaml:",inline"`

	// ChunkSize is the character budget per model request (default 12000).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`

	// OutputDir is the base directory for per-file results (contains extracted/).
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ReportConfig holds settings for the spreadsheet report.
type ReportConfig struct {
	// OutputFile is the workbook path (default "action_analysis.xlsx").
	OutputFile string `json:"output_file" yaml:"output_file"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Report     ReportConfig     `json:"report" yaml:"report"`
}
