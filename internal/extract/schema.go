package extract

import "encoding/json"

// extractionInstructions steers the model: approximate numbers from spoken
// quantities, null for anything unmentioned, single lowercase token for
// mood, short notes.
const extractionInstructions = `You extract structured daily journal data from a spoken transcript.
Infer approximate numeric values from spoken quantities ("about eight hours" -> 8).
Leave any field that is not mentioned null, and lists empty.
When a mood is derivable, express it as a single lowercase word.
Keep notes to 1-3 sentences.`

// payloadSchemaJSON is the fixed JSON Schema handed verbatim to the
// extraction upstream. Field names, nesting, and the required lists are a
// format contract; optionality is expressed through nullable unions.
const payloadSchemaJSON = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["schema_version", "sleepHours", "mood", "energy", "focus", "highlights", "challenges", "gratitude", "todosTomorrow", "habits", "work", "health", "notes"],
  "properties": {
    "schema_version": {"type": "integer"},
    "sleepHours": {"type": ["number", "null"]},
    "mood": {"type": ["string", "null"]},
    "energy": {"type": ["number", "null"]},
    "focus": {"type": ["number", "null"]},
    "highlights": {"type": "array", "items": {"type": "string"}},
    "challenges": {"type": "array", "items": {"type": "string"}},
    "gratitude": {"type": "array", "items": {"type": "string"}},
    "todosTomorrow": {"type": "array", "items": {"type": "string"}},
    "habits": {
      "type": "object",
      "additionalProperties": false,
      "required": ["yoga", "workout", "readingMinutes", "noSmoking"],
      "properties": {
        "yoga": {"type": ["boolean", "null"]},
        "workout": {"type": ["boolean", "null"]},
        "readingMinutes": {"type": ["number", "null"]},
        "noSmoking": {"type": ["boolean", "null"]}
      }
    },
    "work": {
      "type": "object",
      "additionalProperties": false,
      "required": ["topTaskDone", "timeBlocks"],
      "properties": {
        "topTaskDone": {"type": ["string", "null"]},
        "timeBlocks": {
          "type": "array",
          "items": {
            "type": "object",
            "additionalProperties": false,
            "required": ["label", "minutes"],
            "properties": {
              "label": {"type": "string"},
              "minutes": {"type": "number"}
            }
          }
        }
      }
    },
    "health": {
      "type": "object",
      "additionalProperties": false,
      "required": ["steps", "waterGlasses", "calories"],
      "properties": {
        "steps": {"type": ["number", "null"]},
        "waterGlasses": {"type": ["number", "null"]},
        "calories": {"type": ["number", "null"]}
      }
    },
    "notes": {"type": ["string", "null"]}
  }
}`

// payloadSchema returns the schema decoded into a map, for clients whose
// request types take structured schemas rather than raw JSON.
func payloadSchema() map[string]any {
	var schema map[string]any
	if err := json.Unmarshal([]byte(payloadSchemaJSON), &schema); err != nil {
		panic("extract: invalid payload schema: " + err.Error())
	}
	return schema
}
