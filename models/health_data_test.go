package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHealthRecordFoldsSnakeCase(t *testing.T) {
	in := Record{
		"calories_burned":  float64(120),
		"exercise_minutes": float64(30),
		"sleepQuality":     "good",
		"note":             "kept as-is",
	}

	out := NormalizeHealthRecord(in)
	assert.Equal(t, float64(120), out["caloriesBurned"])
	assert.Equal(t, float64(30), out["exerciseMinutes"])
	assert.Equal(t, "good", out["sleepQuality"])
	assert.Equal(t, "kept as-is", out["note"])
	assert.NotContains(t, out, "calories_burned")
	assert.NotContains(t, out, "exercise_minutes")
}

func TestNormalizeHealthRecordCamelCaseWins(t *testing.T) {
	out := NormalizeHealthRecord(Record{
		"caloriesBurned":  float64(200),
		"calories_burned": float64(999),
	})
	assert.Equal(t, float64(200), out["caloriesBurned"])
	assert.NotContains(t, out, "calories_burned")
}

func TestWithLegacyAliasesRoundTrip(t *testing.T) {
	// write snake_case, read back both spellings with matching values
	stored := NormalizeHealthRecord(Record{"calories_burned": float64(120)})
	read := WithLegacyAliases(stored)
	assert.Equal(t, float64(120), read["caloriesBurned"])
	assert.Equal(t, float64(120), read["calories_burned"])
}
