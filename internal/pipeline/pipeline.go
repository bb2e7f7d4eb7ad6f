package pipeline

import (
	"context"

	"github.com/Archit-bit/voice-diary-app/internal/extract"
	"github.com/Archit-bit/voice-diary-app/internal/journal"
	"github.com/Archit-bit/voice-diary-app/internal/logger"
	"github.com/Archit-bit/voice-diary-app/internal/transcribe"
)

// RecordStore is the one persistence operation the pipeline needs.
type RecordStore interface {
	Upsert(owner, logDate string, transcript *string, extracted *journal.ExtractedPayload) (*journal.DailyRecord, error)
}

// Archiver stores the raw audio after a successful extraction. Optional.
type Archiver interface {
	Put(ctx context.Context, owner, logDate string, audio []byte, contentType string) error
}

// Pipeline runs one submission as a single sequential chain:
// transcribe, extract, persist. No retries, no partial writes: a failure at
// any step leaves the store untouched and discards the upstream results.
type Pipeline struct {
	transcriber transcribe.Transcriber
	extractor   extract.Extractor
	store       RecordStore
	archive     Archiver
}

func New(transcriber transcribe.Transcriber, extractor extract.Extractor, store RecordStore, archive Archiver) *Pipeline {
	return &Pipeline{
		transcriber: transcriber,
		extractor:   extractor,
		store:       store,
		archive:     archive,
	}
}

// Process transcribes the audio, extracts the structured payload, and
// upserts the record for (owner, logDate). An empty transcript is valid and
// still flows through extraction.
func (p *Pipeline) Process(ctx context.Context, owner, logDate string, audio []byte, mimeType string) (*journal.DailyRecord, error) {
	transcript, err := p.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, err
	}

	logger.Debug("transcribed", "owner", owner, "date", logDate, "chars", len(transcript))

	extracted, err := p.extractor.Extract(ctx, transcript)
	if err != nil {
		return nil, err
	}

	// best effort: a failed archive never aborts the submission
	if p.archive != nil {
		if err := p.archive.Put(ctx, owner, logDate, audio, mimeType); err != nil {
			logger.Error("audio archive failed", "owner", owner, "date", logDate, "error", err)
		}
	}

	rec, err := p.store.Upsert(owner, logDate, &transcript, extracted)
	if err != nil {
		return nil, err
	}

	logger.Info("record upserted", "owner", owner, "date", logDate, "id", rec.ID)

	return rec, nil
}
