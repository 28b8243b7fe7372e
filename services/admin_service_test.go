package services

import (
	"testing"
	"time"

	"backend/models"
	"backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, st store.Store, users []models.User, logins map[string]int) {
	doc, err := st.Load()
	require.NoError(t, err)
	doc.Users = users
	if logins != nil {
		doc.Analytics.LoginsByDate = logins
	}
	require.NoError(t, st.Save(doc))
}

func TestStatsActivityWindows(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	ts := func(d time.Time) string { return d.Format(time.RFC3339) }

	st := newTestStore(t)
	seedUsers(t, st, []models.User{
		{ID: "1", Provider: "github", LastSeenAt: ts(now), LoginCount: 5},
		{ID: "2", Provider: "github", LastSeenAt: ts(now.AddDate(0, 0, -2)), LoginCount: 2},
		{ID: "3", Provider: "google", LastSeenAt: ts(now.AddDate(0, 0, -40)), LoginCount: 1},
	}, nil)

	stats, err := NewAdminService(st).Stats(now)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Users.Total)
	assert.Equal(t, 2, stats.Users.Active7d)
	assert.Equal(t, 2, stats.Users.Active30d)
	assert.Equal(t, 8, stats.Users.TotalLogins)
	assert.Equal(t, 2, stats.Users.ByProvider["github"])
	assert.Equal(t, 1, stats.Users.ByProvider["google"])
}

func TestStatsThirtyDayBoundaryIsInclusive(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	st := newTestStore(t)
	seedUsers(t, st, []models.User{
		{ID: "1", Provider: "github", LastSeenAt: now.AddDate(0, 0, -30).Format(time.RFC3339)},
	}, nil)

	stats, err := NewAdminService(st).Stats(now)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Users.Active30d, "a user seen exactly 30 days ago is still active30d")
	assert.Equal(t, 0, stats.Users.Active7d)
}

func TestStatsLastActivityUsesMostRecentTimestamp(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	st := newTestStore(t)
	seedUsers(t, st, []models.User{
		{
			ID:          "1",
			Provider:    "github",
			FirstSeenAt: now.AddDate(0, 0, -60).Format(time.RFC3339),
			LastSeenAt:  now.AddDate(0, 0, -45).Format(time.RFC3339),
			LastLoginAt: now.AddDate(0, 0, -3).Format(time.RFC3339),
		},
	}, nil)

	stats, err := NewAdminService(st).Stats(now)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Users.Active7d)
	assert.Equal(t, 0, stats.Users.New7d)
}

func TestStatsDailySeriesIsZeroFilled(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	st := newTestStore(t)
	seedUsers(t, st, nil, map[string]int{
		"2024-06-15": 3,
		"2024-06-10": 1,
		"2024-05-01": 9, // outside the trailing 14 days
	})

	stats, err := NewAdminService(st).Stats(now)
	require.NoError(t, err)
	require.Len(t, stats.Logins.Daily, 14)
	assert.Equal(t, "2024-06-02", stats.Logins.Daily[0].Date)
	assert.Equal(t, "2024-06-15", stats.Logins.Daily[13].Date)
	assert.Equal(t, 3, stats.Logins.Daily[13].Count)

	total := 0
	for _, d := range stats.Logins.Daily {
		total += d.Count
	}
	assert.Equal(t, 4, total)
}

func TestEntriesRespectsLimit(t *testing.T) {
	st := newTestStore(t)
	doc, err := st.Load()
	require.NoError(t, err)
	for i := 0; i < 15; i++ {
		doc.Journal = append(doc.Journal, models.Record{"id": "j", "uid": "u"})
	}
	require.NoError(t, st.Save(doc))

	entries, err := NewAdminService(st).Entries(10)
	require.NoError(t, err)
	assert.Len(t, entries["journal"], 10)
	assert.Len(t, entries["webhooks"], 0)
}
