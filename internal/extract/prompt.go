// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"

	"golang.org/x/oauth2"
)

// extractionPromptTmpl is the prompt sent to the Gemini API for each chunk of
// report text. It instructs the model to extract and categorize climate
// actions and to return a JSON array only.
var extractionPromptTmpl = template.Must(template.New("extraction").Parse(`You are provided with an excerpt of a city sustainability report (a Climate Action Plan or similar document).
Your task is to:
1. Extract specific actions related to Stationary Energy, Waste, and Transport stated in the excerpt.
2. Categorize each action as one of the following:
   - Stationary Energy
   - Waste
   - Transport
3. Extract the Village Name (city, town, or village) and the Report Date when the document states them explicitly.

Return your output as a valid JSON array only, a list of objects like this:
[
  {
    "action": "Retrofitting municipal buildings for energy efficiency",
    "category": "Stationary Energy",
    "village_name": "City of Aurora",
    "report_date": "2023"
  }
]

Do not include markdown, explanations, or inferred data. Only extract what is explicitly stated in the excerpt. If the Village Name or Report Date is not found, leave it as an empty string. If the excerpt contains no relevant actions, return an empty array.

Report excerpt:
{{.Chunk}}
`))

// generativeLanguageBase is the Generative Language API host. Package-level
// var for test substitution.
var generativeLanguageBase = "https://generativelanguage.googleapis.com"

// vertexBaseFmt is the Vertex AI host pattern, parameterized by region.
var vertexBaseFmt = "https://%s-aiplatform.googleapis.com"

// GeminiBackend calls the Gemini generateContent API for one chunk of report
// text. With an API key it targets the Generative Language endpoint; with a
// project and location it targets the Vertex AI endpoint, authenticating via
// the injected token source.
type GeminiBackend struct {
	APIKey      string
	Model       string
	Project     string
	Location    string
	TokenSource oauth2.TokenSource
	Client      *http.Client
	UserAgent   string
}

// geminiRequest is the request body for the generateContent API.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// geminiContent is one turn of model input or output.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiPart is a single text part within a content turn.
type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the response body from the generateContent API.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// endpoint returns the generateContent URL for the configured auth mode.
func (g *GeminiBackend) endpoint() (string, error) {
	if g.APIKey != "" {
		return fmt.Sprintf("%s/v1beta/models/%s:generateContent", generativeLanguageBase, g.Model), nil
	}
	if g.Project != "" && g.Location != "" {
		base := fmt.Sprintf(vertexBaseFmt, g.Location)
		return fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
			base, g.Project, g.Location, g.Model), nil
	}
	return "", fmt.Errorf("gemini backend needs an API key or a project and location")
}

// Extract sends the extraction prompt with one chunk and returns the model's
// raw reply text.
func (g *GeminiBackend) Extract(ctx context.Context, chunk string) (string, error) {
	prompt, err := renderPrompt(chunk)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	url, err := g.endpoint()
	if err != nil {
		return "", err
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.UserAgent != "" {
		req.Header.Set("User-Agent", g.UserAgent)
	}

	if g.APIKey != "" {
		req.Header.Set("x-goog-api-key", g.APIKey)
	} else {
		if g.TokenSource == nil {
			return "", fmt.Errorf("gemini backend has no token source for Vertex AI auth")
		}
		token, err := g.TokenSource.Token()
		if err != nil {
			return "", fmt.Errorf("obtaining access token: %w", err)
		}
		token.SetAuthHeader(req)
	}

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, string(body))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding Gemini response: %w", err)
	}

	if len(gResp.Candidates) == 0 {
		return "", fmt.Errorf("Gemini API returned no candidates")
	}

	var b strings.Builder
	for _, part := range gResp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text content in Gemini API response")
	}

	return b.String(), nil
}

// renderPrompt executes the extraction prompt template with the given chunk.
func renderPrompt(chunk string) (string, error) {
	var buf bytes.Buffer
	if err := extractionPromptTmpl.Execute(&buf, struct{ Chunk string }{Chunk: chunk}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
