package journal

import (
	"fmt"
	"math"
	"strings"
)

// Placeholder is rendered wherever a payload value is absent. Absence is
// never an error anywhere in the display path.
const Placeholder = "—"

// Summary renders a record as short plain text, one line per field group.
// Used for bot replies after a voice note is processed.
func Summary(rec *DailyRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Journal for %s\n", rec.LogDate)

	p := rec.Extracted
	if p == nil {
		p = &ExtractedPayload{}
	}

	fmt.Fprintf(&b, "Sleep: %s h | Mood: %s | Energy: %s | Focus: %s\n",
		Number(p.SleepHours), Text(p.Mood), Number(p.Energy), Number(p.Focus))

	fmt.Fprintf(&b, "Highlights: %s\n", List(p.Highlights))
	fmt.Fprintf(&b, "Challenges: %s\n", List(p.Challenges))
	fmt.Fprintf(&b, "Gratitude: %s\n", List(p.Gratitude))
	fmt.Fprintf(&b, "Tomorrow: %s\n", List(p.TodosTomorrow))

	if h := p.Health; h != nil {
		fmt.Fprintf(&b, "Steps: %s | Water: %s | Calories: %s\n",
			Number(h.Steps), Number(h.WaterGlasses), Number(h.Calories))
	}

	fmt.Fprintf(&b, "Notes: %s", Text(p.Notes))

	return b.String()
}

// Number formats an optional number, falling back to the placeholder for
// nil and non-finite values.
func Number(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Placeholder
	}

	if *v == math.Trunc(*v) {
		return fmt.Sprintf("%.0f", *v)
	}

	return fmt.Sprintf("%.1f", *v)
}

// Text formats an optional string, treating nil and empty as absent.
func Text(v *string) string {
	if v == nil || *v == "" {
		return Placeholder
	}

	return *v
}

// List joins an ordered list, preserving narrative order.
func List(items []string) string {
	if len(items) == 0 {
		return Placeholder
	}

	return strings.Join(items, "; ")
}
