package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Archit-bit/voice-diary-app/internal/extract"
	"github.com/Archit-bit/voice-diary-app/internal/journal"
	"github.com/Archit-bit/voice-diary-app/internal/logger"
	"github.com/Archit-bit/voice-diary-app/internal/store"
	"github.com/Archit-bit/voice-diary-app/internal/transcribe"
)

const maxAudioSize = 25 * 1024 * 1024 // 25MB per submission

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	logDate := r.URL.Query().Get("date")
	if logDate == "" {
		logDate = time.Now().Format(journal.DateFormat)
	} else if _, err := time.Parse(journal.DateFormat, logDate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	audio, err := io.ReadAll(io.LimitReader(r.Body, maxAudioSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read audio: "+err.Error())
		return
	}

	if len(audio) == 0 {
		writeError(w, http.StatusBadRequest, "empty audio body")
		return
	}

	mimeType := r.Header.Get("Content-Type")

	rec, err := s.processor.Process(r.Context(), user.ID, logDate, audio, mimeType)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// writePipelineError maps pipeline failures onto the API: upstream service
// failures surface their body verbatim as a gateway error, everything else
// is a store error passed through.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	var te *transcribe.TranscriptionError
	var ee *extract.ExtractionError

	switch {
	case errors.As(err, &te):
		writeError(w, http.StatusBadGateway, te.Error())
	case errors.As(err, &ee):
		writeError(w, http.StatusBadGateway, ee.Error())
	default:
		logger.Error("pipeline failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	for _, bound := range []string{from, to} {
		if _, err := time.Parse(journal.DateFormat, bound); err != nil {
			writeError(w, http.StatusBadRequest, "invalid date bound, want YYYY-MM-DD")
			return
		}
	}

	order := store.OrderDesc
	if r.URL.Query().Get("order") == "asc" {
		order = store.OrderAsc
	}

	records, err := s.records.ListByDateRange(user.ID, from, to, order)
	if err != nil {
		logger.Error("list records failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if records == nil {
		records = []*journal.DailyRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	id := r.PathValue("id")

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	// rejected locally before any store call
	payload, err := journal.ParsePayload(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed payload: "+err.Error())
		return
	}

	rec, err := s.records.UpdateExtracted(user.ID, id, payload)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}

		logger.Error("update record failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
