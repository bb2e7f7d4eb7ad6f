package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type deepgram struct {
	apiKey  string
	baseURL string
	model   string
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// NewDeepgram creates a Deepgram speech-to-text client.
func NewDeepgram(cfg Config) Transcriber {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.deepgram.com"
	}

	model := cfg.Model
	if model == "" {
		model = "nova-2"
	}

	return &deepgram{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
	}
}

func (d *deepgram) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	params := url.Values{}
	params.Set("model", d.model)
	params.Set("smart_format", "true")

	req, err := http.NewRequestWithContext(ctx, "POST", d.baseURL+"/v1/listen?"+params.Encode(), bytes.NewReader(audio))
	if err != nil {
		return "", err
	}

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Authorization", "Token "+d.apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != 200 {
		return "", &TranscriptionError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var dgResp deepgramResponse

	if err := json.Unmarshal(body, &dgResp); err != nil {
		return "", err
	}

	// first alternative of the first channel; anything missing along the
	// path means no speech was recognized
	channels := dgResp.Results.Channels
	if len(channels) == 0 || len(channels[0].Alternatives) == 0 {
		return "", nil
	}

	return strings.TrimSpace(channels[0].Alternatives[0].Transcript), nil
}
