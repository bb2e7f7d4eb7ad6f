package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Archit-bit/voice-diary-app/internal/journal"
)

type geminiExtractor struct {
	apiKey  string
	baseURL string
	model   string
}

type geminiRequest struct {
	SystemInstruction geminiContent          `json:"system_instruction"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMimeType   string          `json:"responseMimeType"`
	ResponseJSONSchema json.RawMessage `json:"responseJsonSchema"`
}

// geminiResponse covers both known shapes of the generated text: newer API
// versions nest it under content.parts, older ones expose a flat output
// field. The union is resolved once, in generatedText.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		Output string `json:"output"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (r *geminiResponse) generatedText() (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}

	cand := r.Candidates[0]
	if len(cand.Content.Parts) > 0 {
		return cand.Content.Parts[0].Text, true
	}

	if cand.Output != "" {
		return cand.Output, true
	}

	return "", false
}

func newGemini(apiKey, baseURL, model string) Extractor {
	return &geminiExtractor{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
	}
}

func (g *geminiExtractor) Extract(ctx context.Context, transcript string) (*journal.ExtractedPayload, error) {
	reqBody := geminiRequest{
		SystemInstruction: geminiContent{
			Parts: []geminiPart{{Text: extractionInstructions}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: transcript}}},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType:   "application/json",
			ResponseJSONSchema: json.RawMessage(payloadSchemaJSON),
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		return nil, &ExtractionError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var gemResp geminiResponse

	if err := json.Unmarshal(body, &gemResp); err != nil {
		return nil, err
	}

	if gemResp.Error != nil {
		return nil, &ExtractionError{StatusCode: resp.StatusCode, Body: gemResp.Error.Message}
	}

	text, ok := gemResp.generatedText()
	if !ok {
		return nil, fmt.Errorf("no candidates in response")
	}

	return journal.ParsePayload([]byte(text))
}
