package models

// healthFields maps each canonical camelCase health metric to the
// legacy snake_case key older clients still send and expect back.
var healthFields = map[string]string{
	"caloriesBurned":   "calories_burned",
	"exerciseMinutes":  "exercise_minutes",
	"standHours":       "stand_hours",
	"restingHeartRate": "resting_heart_rate",
	"respiratoryRate":  "respiratory_rate",
	"sleepDuration":    "sleep_duration",
	"sleepQuality":     "sleep_quality",
	"sleepStages":      "sleep_stages",
}

// NormalizeHealthRecord folds snake_case input keys into their
// camelCase form. A camelCase value wins when both spellings are
// present; the snake_case key is dropped from the stored record.
func NormalizeHealthRecord(in Record) Record {
	out := make(Record, len(in))
	for k, v := range in {
		out[k] = v
	}
	for camel, snake := range healthFields {
		if v, ok := out[snake]; ok {
			if _, exists := out[camel]; !exists {
				out[camel] = v
			}
			delete(out, snake)
		}
	}
	return out
}

// WithLegacyAliases returns a copy of a stored health record with the
// snake_case spellings re-added beside the canonical keys, so reads
// expose both with matching values.
func WithLegacyAliases(r Record) Record {
	out := make(Record, len(r)+len(healthFields))
	for k, v := range r {
		out[k] = v
	}
	for camel, snake := range healthFields {
		if v, ok := out[camel]; ok {
			out[snake] = v
		}
	}
	return out
}
