package services

import (
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyGoogleFitReplacesOnlyOwnSourcedRecords(t *testing.T) {
	st := newTestStore(t)
	doc, err := st.Load()
	require.NoError(t, err)
	doc.Steps = []models.Record{
		{"id": "1", "uid": "userA", "count": float64(1000), "source": "google_fit"},
		{"id": "2", "uid": "userA", "count": float64(5000)}, // manual
		{"id": "3", "uid": "userB", "count": float64(2000), "source": "google_fit"},
	}
	require.NoError(t, st.Save(doc))

	svc := NewSyncService(st)
	fresh := []models.Record{
		{"date": "2024-05-01", "count": int64(7500), "source": "google_fit"},
	}
	stepsSynced, workoutsSynced, err := svc.ApplyGoogleFit("userA", fresh, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stepsSynced)
	assert.Equal(t, 0, workoutsSynced)

	after, err := st.Load()
	require.NoError(t, err)
	require.Len(t, after.Steps, 3)

	var sawManual, sawOtherUser, sawFresh bool
	for _, r := range after.Steps {
		switch {
		case r.ID() == "2":
			sawManual = true
		case r.ID() == "3":
			sawOtherUser = true
		case r.UID() == "userA" && r.Source() == "google_fit":
			sawFresh = true
			assert.NotEqual(t, "1", r.ID()) // old sync record was replaced
		}
	}
	assert.True(t, sawManual, "manual record must survive sync")
	assert.True(t, sawOtherUser, "other users' records must survive sync")
	assert.True(t, sawFresh)
}

func TestApplyGoogleFitTwiceLeavesOnlyLatest(t *testing.T) {
	st := newTestStore(t)
	svc := NewSyncService(st)

	first := []models.Record{
		{"date": "2024-05-01", "count": int64(1000), "source": "google_fit"},
		{"date": "2024-05-02", "count": int64(2000), "source": "google_fit"},
	}
	_, _, err := svc.ApplyGoogleFit("userA", first, nil)
	require.NoError(t, err)

	second := []models.Record{
		{"date": "2024-05-02", "count": int64(2500), "source": "google_fit"},
	}
	_, _, err = svc.ApplyGoogleFit("userA", second, nil)
	require.NoError(t, err)

	after, err := st.Load()
	require.NoError(t, err)
	require.Len(t, after.Steps, 1)
	assert.Equal(t, int64(2500), toInt64(after.Steps[0]["count"]))
}

func TestApplyZeppSkipsStepRecordOnZeroSteps(t *testing.T) {
	st := newTestStore(t)
	svc := NewSyncService(st)

	stepsSynced, healthSynced, err := svc.ApplyZepp("userA", &ZeppData{
		Date: "2024-05-01", Steps: 0, Calories: 120,
	}, models.Record{})
	require.NoError(t, err)
	assert.Equal(t, 0, stepsSynced)
	assert.Equal(t, 1, healthSynced)

	after, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, after.Steps)
	require.Len(t, after.HealthData, 1)
	assert.Equal(t, int64(120), toInt64(after.HealthData[0]["caloriesBurned"]))
	assert.Equal(t, "zepp", after.HealthData[0].Source())
}

func TestApplyZeppMergesExtraFieldsAndReplacesSameDay(t *testing.T) {
	st := newTestStore(t)
	svc := NewSyncService(st)

	_, _, err := svc.ApplyZepp("userA", &ZeppData{
		Date: "2024-05-01", Steps: 4000, Calories: 100,
	}, models.Record{"exercise_minutes": float64(25)})
	require.NoError(t, err)

	// second sync the same day replaces, not duplicates
	_, _, err = svc.ApplyZepp("userA", &ZeppData{
		Date: "2024-05-01", Steps: 6000, Calories: 210,
	}, models.Record{"sleepQuality": "good"})
	require.NoError(t, err)

	after, err := st.Load()
	require.NoError(t, err)
	require.Len(t, after.Steps, 1)
	assert.Equal(t, int64(6000), toInt64(after.Steps[0]["count"]))

	require.Len(t, after.HealthData, 1)
	h := after.HealthData[0]
	assert.Equal(t, int64(210), toInt64(h["caloriesBurned"]))
	assert.Equal(t, "good", h["sleepQuality"])
	assert.Equal(t, "2024-05-01", h.Date())
	_, err = time.Parse(time.RFC3339, h["created"].(string))
	assert.NoError(t, err)
}

// toInt64 bridges JSON round trips that turn int64 into float64.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	case int:
		return int64(n)
	}
	return 0
}
