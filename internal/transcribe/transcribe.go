package transcribe

import "context"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Transcriber turns raw audio bytes into transcript text. An empty
// transcript is a valid outcome: silence and no-speech are not errors.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// TranscriptionError is returned for any non-success upstream response,
// carrying the response body verbatim.
type TranscriptionError struct {
	StatusCode int
	Body       string
}

func (e *TranscriptionError) Error() string {
	return "transcription failed: " + e.Body
}
