// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Category buckets an extracted action into one of the four fixed labels.
type Category string

const (
	CategoryStationaryEnergy Category = "Stationary Energy"
	CategoryWaste            Category = "Waste"
	CategoryTransport        Category = "Transport"
	CategoryOther            Category = "Other"
)

// Categories lists the four categories in report order.
var Categories = []Category{
	CategoryStationaryEnergy,
	CategoryWaste,
	CategoryTransport,
	CategoryOther,
}

// ParseCategory normalizes a model-produced category label. Comparison is
// case-insensitive and ignores surrounding whitespace; any label that is not
// one of the three named categories maps to CategoryOther.
func ParseCategory(label string) Category {
	normalized := strings.ToLower(strings.Join(strings.Fields(label), " "))
	switch normalized {
	case "stationary energy":
		return CategoryStationaryEnergy
	case "waste":
		return CategoryWaste
	case "transport":
		return CategoryTransport
	default:
		return CategoryOther
	}
}

// ActionRecord is a single climate-action statement extracted from a report.
// Records are immutable once parsed and live only for the duration of a run.
type ActionRecord struct {
	// Text is the action statement as stated in the source document.
	Text string `json:"text" yaml:"text"`

	// Category is the bucket the model assigned, normalized via ParseCategory.
	Category Category `json:"category" yaml:"category"`

	// SourceFile is the base name of the PDF the action came from.
	SourceFile string `json:"source_file" yaml:"source_file"`

	// VillageName is the municipality named in the document, when explicitly
	// stated. Empty otherwise.
	VillageName string `json:"village_name,omitempty" yaml:"village_name,omitempty"`

	// ReportDate is the report date as stated in the document. Empty when the
	// document does not state one.
	ReportDate string `json:"report_date,omitempty" yaml:"report_date,omitempty"`
}

// FileResult holds the outcome of extracting actions from a single PDF.
type FileResult struct {
	// SourceFile is the base name of the PDF.
	SourceFile string `json:"source_file" yaml:"source_file"`

	// VillageName is the first municipality name any record in the file carried.
	VillageName string `json:"village_name,omitempty" yaml:"village_name,omitempty"`

	// ReportDate is the first report date any record in the file carried.
	ReportDate string `json:"report_date,omitempty" yaml:"report_date,omitempty"`

	// Actions contains the extracted records for this file.
	Actions []ActionRecord `json:"actions" yaml:"actions"`
}
