package journal

import (
	"encoding/json"
	"time"
)

// DateFormat is the canonical date-only form used for log dates everywhere:
// storage keys, query bounds, and API payloads.
const DateFormat = "2006-01-02"

// DailyRecord is one journal entry per (owner, log date). The id and
// createdAt are server-assigned on first insert and survive later upserts
// for the same date.
type DailyRecord struct {
	ID         string            `json:"id"`
	Owner      string            `json:"owner"`
	LogDate    string            `json:"logDate"`
	Transcript *string           `json:"transcript"`
	Extracted  *ExtractedPayload `json:"extracted"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// ExtractedPayload is the structured result of the extraction step. Every
// field is optional: scalars are pointers so a missing value is
// distinguishable from a zero, and renders as a placeholder downstream.
type ExtractedPayload struct {
	SchemaVersion int      `json:"schema_version"`
	SleepHours    *float64 `json:"sleepHours,omitempty"`
	Mood          *string  `json:"mood,omitempty"`
	Energy        *float64 `json:"energy,omitempty"`
	Focus         *float64 `json:"focus,omitempty"`
	Highlights    []string `json:"highlights,omitempty"`
	Challenges    []string `json:"challenges,omitempty"`
	Gratitude     []string `json:"gratitude,omitempty"`
	TodosTomorrow []string `json:"todosTomorrow,omitempty"`
	Habits        *Habits  `json:"habits,omitempty"`
	Work          *Work    `json:"work,omitempty"`
	Health        *Health  `json:"health,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

type Habits struct {
	Yoga           *bool    `json:"yoga,omitempty"`
	Workout        *bool    `json:"workout,omitempty"`
	ReadingMinutes *float64 `json:"readingMinutes,omitempty"`
	NoSmoking      *bool    `json:"noSmoking,omitempty"`
}

type Work struct {
	TopTaskDone *string     `json:"topTaskDone,omitempty"`
	TimeBlocks  []TimeBlock `json:"timeBlocks,omitempty"`
}

type TimeBlock struct {
	Label   string  `json:"label"`
	Minutes float64 `json:"minutes"`
}

type Health struct {
	Steps        *float64 `json:"steps,omitempty"`
	WaterGlasses *float64 `json:"waterGlasses,omitempty"`
	Calories     *float64 `json:"calories,omitempty"`
}

// ParsePayload decodes an extracted payload, defaulting schema_version to 1
// when the producer omitted it. Malformed JSON is a hard failure.
func ParsePayload(data []byte) (*ExtractedPayload, error) {
	var p ExtractedPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	if p.SchemaVersion == 0 {
		p.SchemaVersion = 1
	}

	return &p, nil
}

// Encode serializes the payload for storage.
func (p *ExtractedPayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}
