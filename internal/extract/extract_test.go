package extract

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "cohere"})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestPayloadSchemaValid(t *testing.T) {
	schema := payloadSchema()

	if schema["type"] != "object" {
		t.Errorf("schema root type mismatch: %v", schema["type"])
	}

	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatal("schema properties missing")
	}

	for _, field := range []string{"schema_version", "sleepHours", "mood", "habits", "work", "health"} {
		if _, ok := props[field]; !ok {
			t.Errorf("schema missing property %s", field)
		}
	}

	// strict structured output requires every property listed as required
	required, ok := schema["required"].([]any)
	if !ok {
		t.Fatal("schema required list missing")
	}
	if len(required) != len(props) {
		t.Errorf("required covers %d of %d properties", len(required), len(props))
	}

	if schema["additionalProperties"] != false {
		t.Error("schema must forbid additional properties")
	}
}

func TestOpenAIExtract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}

		body, _ := io.ReadAll(r.Body)

		var req map[string]any
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("request not JSON: %v", err)
		}

		rf, _ := req["response_format"].(map[string]any)
		if rf == nil || rf["type"] != "json_schema" {
			t.Errorf("expected json_schema response format, got %v", req["response_format"])
		}

		w.Write([]byte(`{"choices": [{"message": {"content": "{\"mood\": \"calm\", \"sleepHours\": 7}"}}]}`))
	}))
	defer server.Close()

	e, err := New(Config{Provider: "openai", APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}

	payload, err := e.Extract(context.Background(), "slept seven hours, feeling calm")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if payload.SchemaVersion != 1 {
		t.Errorf("expected schema version defaulted to 1, got %d", payload.SchemaVersion)
	}
	if payload.Mood == nil || *payload.Mood != "calm" {
		t.Errorf("mood mismatch: %v", payload.Mood)
	}
	if payload.SleepHours == nil || *payload.SleepHours != 7 {
		t.Errorf("sleep hours mismatch: %v", payload.SleepHours)
	}
}

func TestOpenAIExtractUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit exceeded"}}`))
	}))
	defer server.Close()

	e, _ := New(Config{Provider: "openai", APIKey: "test-key", BaseURL: server.URL})

	_, err := e.Extract(context.Background(), "anything")

	var eerr *ExtractionError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if eerr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status code mismatch: %d", eerr.StatusCode)
	}
	if eerr.Body != `{"error": {"message": "rate limit exceeded"}}` {
		t.Errorf("body should carry upstream response verbatim, got %q", eerr.Body)
	}
}

func TestOpenAIExtractMalformedModelOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [{"message": {"content": "not json at all"}}]}`))
	}))
	defer server.Close()

	e, _ := New(Config{Provider: "openai", APIKey: "test-key", BaseURL: server.URL})

	_, err := e.Extract(context.Background(), "anything")
	if err == nil {
		t.Error("expected hard failure for non-JSON model output")
	}
}

func TestGeminiExtractPartsShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.0-flash:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("unexpected api key header: %s", got)
		}

		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{\"energy\": 8}"}]}}]}`))
	}))
	defer server.Close()

	e, err := New(Config{Provider: "gemini", APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}

	payload, err := e.Extract(context.Background(), "full of energy today")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if payload.Energy == nil || *payload.Energy != 8 {
		t.Errorf("energy mismatch: %v", payload.Energy)
	}
}

func TestGeminiExtractOutputShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": [{"output": "{\"focus\": 6}"}]}`))
	}))
	defer server.Close()

	e, _ := New(Config{Provider: "gemini", APIKey: "test-key", BaseURL: server.URL})

	payload, err := e.Extract(context.Background(), "somewhat focused")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if payload.Focus == nil || *payload.Focus != 6 {
		t.Errorf("focus mismatch: %v", payload.Focus)
	}
}

func TestGeminiExtractUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"message": "API key not valid"}}`))
	}))
	defer server.Close()

	e, _ := New(Config{Provider: "gemini", APIKey: "bad-key", BaseURL: server.URL})

	_, err := e.Extract(context.Background(), "anything")

	var eerr *ExtractionError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if eerr.StatusCode != http.StatusForbidden {
		t.Errorf("status code mismatch: %d", eerr.StatusCode)
	}
}

func TestGeminiExtractNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	e, _ := New(Config{Provider: "gemini", APIKey: "test-key", BaseURL: server.URL})

	_, err := e.Extract(context.Background(), "anything")
	if err == nil {
		t.Error("expected error for empty candidates")
	}
}
