package journal

import (
	"encoding/json"
	"testing"
)

func TestParsePayloadDefaultsSchemaVersion(t *testing.T) {
	p, err := ParsePayload([]byte(`{"mood": "calm"}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if p.SchemaVersion != 1 {
		t.Errorf("expected schema version 1, got %d", p.SchemaVersion)
	}
	if p.Mood == nil || *p.Mood != "calm" {
		t.Errorf("mood mismatch: %v", p.Mood)
	}
}

func TestParsePayloadKeepsExplicitSchemaVersion(t *testing.T) {
	p, err := ParsePayload([]byte(`{"schema_version": 3}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if p.SchemaVersion != 3 {
		t.Errorf("expected schema version 3, got %d", p.SchemaVersion)
	}
}

func TestParsePayloadMalformed(t *testing.T) {
	_, err := ParsePayload([]byte(`{"mood": `))
	if err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParsePayloadEmptyObject(t *testing.T) {
	p, err := ParsePayload([]byte(`{}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if p.SchemaVersion != 1 {
		t.Errorf("expected schema version 1, got %d", p.SchemaVersion)
	}
	if p.SleepHours != nil || p.Mood != nil || p.Habits != nil {
		t.Errorf("expected all fields absent, got %+v", p)
	}
}

func TestParsePayloadNullFields(t *testing.T) {
	p, err := ParsePayload([]byte(`{"sleepHours": null, "mood": null, "highlights": []}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if p.SleepHours != nil {
		t.Errorf("null sleepHours should stay nil, got %v", *p.SleepHours)
	}
	if p.Mood != nil {
		t.Errorf("null mood should stay nil, got %v", *p.Mood)
	}
	if len(p.Highlights) != 0 {
		t.Errorf("expected empty highlights, got %v", p.Highlights)
	}
}

func TestEncodeOmitsAbsentFields(t *testing.T) {
	sleep := 6.5
	p := &ExtractedPayload{SchemaVersion: 1, SleepHours: &sleep}

	data, err := p.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(raw) != 2 {
		t.Errorf("expected only schema_version and sleepHours, got %v", raw)
	}
	if _, ok := raw["schema_version"]; !ok {
		t.Error("schema_version missing from encoded payload")
	}
}

func TestEncodeParseRoundTripNested(t *testing.T) {
	yoga := true
	top := "shipped the report"
	steps := 8200.0

	p := &ExtractedPayload{
		SchemaVersion: 1,
		Highlights:    []string{"demo went well", "long walk"},
		Habits:        &Habits{Yoga: &yoga},
		Work: &Work{
			TopTaskDone: &top,
			TimeBlocks:  []TimeBlock{{Label: "deep work", Minutes: 90}},
		},
		Health: &Health{Steps: &steps},
	}

	data, err := p.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	back, err := ParsePayload(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(back.Highlights) != 2 || back.Highlights[0] != "demo went well" {
		t.Errorf("highlights order lost: %v", back.Highlights)
	}
	if back.Habits == nil || back.Habits.Yoga == nil || !*back.Habits.Yoga {
		t.Errorf("habits lost: %+v", back.Habits)
	}
	if back.Work == nil || len(back.Work.TimeBlocks) != 1 || back.Work.TimeBlocks[0].Minutes != 90 {
		t.Errorf("work lost: %+v", back.Work)
	}
	if back.Health == nil || *back.Health.Steps != 8200 {
		t.Errorf("health lost: %+v", back.Health)
	}
}
