// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func geminiReply(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"role": "model", "parts": []map[string]string{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestGeminiBackendAPIKey(t *testing.T) {
	var gotPath, gotKey, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Contents) == 1 && len(req.Contents[0].Parts) == 1 {
			gotBody = req.Contents[0].Parts[0].Text
		}
		w.Write([]byte(geminiReply(`[{"action": "x", "category": "Waste"}]`)))
	}))
	defer srv.Close()

	orig := generativeLanguageBase
	generativeLanguageBase = srv.URL
	defer func() { generativeLanguageBase = orig }()

	backend := &GeminiBackend{APIKey: "test-key", Model: "gemini-2.5-pro"}
	raw, err := backend.Extract(context.Background(), "Reduce landfill volume.")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if gotPath != "/v1beta/models/gemini-2.5-pro:generateContent" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("x-goog-api-key = %q, want test-key", gotKey)
	}
	if !strings.Contains(gotBody, "Reduce landfill volume.") {
		t.Errorf("prompt does not contain the chunk: %q", gotBody)
	}
	if !strings.Contains(gotBody, "Stationary Energy") {
		t.Errorf("prompt does not describe the categories: %q", gotBody)
	}
	if !strings.Contains(raw, `"category": "Waste"`) {
		t.Errorf("raw reply = %q", raw)
	}
}

func TestGeminiBackendVertexAuth(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(geminiReply("[]")))
	}))
	defer srv.Close()

	// Point the region pattern at the test server; the location lands in the
	// path, which the handler ignores.
	orig := vertexBaseFmt
	vertexBaseFmt = srv.URL + "/%s"
	defer func() { vertexBaseFmt = orig }()

	backend := &GeminiBackend{
		Model:       "gemini-2.5-pro",
		Project:     "muni-reports",
		Location:    "us-central1",
		TokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "vertex-token"}),
	}
	if _, err := backend.Extract(context.Background(), "chunk"); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if gotAuth != "Bearer vertex-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestGeminiBackendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"status": "RESOURCE_EXHAUSTED"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	orig := generativeLanguageBase
	generativeLanguageBase = srv.URL
	defer func() { generativeLanguageBase = orig }()

	backend := &GeminiBackend{APIKey: "k", Model: "gemini-2.5-pro"}
	_, err := backend.Extract(context.Background(), "chunk")
	if err == nil {
		t.Fatal("expected an error for a 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error %q does not carry the status code", err)
	}
}

func TestGeminiBackendMissingAuth(t *testing.T) {
	backend := &GeminiBackend{Model: "gemini-2.5-pro"}
	if _, err := backend.Extract(context.Background(), "chunk"); err == nil {
		t.Fatal("expected an error when neither API key nor project is set")
	}
}
