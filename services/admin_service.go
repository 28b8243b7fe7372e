package services

import (
	"fmt"
	"time"

	"backend/models"
	"backend/store"
)

// AdminService computes the token-gated aggregates over the user table
// and the login time series.
type AdminService struct {
	store store.Store
}

func NewAdminService(st store.Store) *AdminService {
	return &AdminService{store: st}
}

type UserStats struct {
	Total       int            `json:"total"`
	Active24h   int            `json:"active24h"`
	Active7d    int            `json:"active7d"`
	Active30d   int            `json:"active30d"`
	New7d       int            `json:"new7d"`
	TotalLogins int            `json:"totalLogins"`
	ByProvider  map[string]int `json:"byProvider"`
}

type DailyLogins struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type LoginStats struct {
	Daily []DailyLogins `json:"daily"`
}

type AdminStats struct {
	Users  UserStats  `json:"users"`
	Logins LoginStats `json:"logins"`
}

// Stats aggregates at the given reference time. Activity windows are
// inclusive at the boundary: a user last seen exactly 30 days ago still
// counts as active30d.
func (s *AdminService) Stats(now time.Time) (*AdminStats, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	out := &AdminStats{}
	out.Users.ByProvider = map[string]int{}
	out.Users.Total = len(doc.Users)

	cut24h := now.Add(-24 * time.Hour)
	cut7d := now.AddDate(0, 0, -7)
	cut30d := now.AddDate(0, 0, -30)

	for _, u := range doc.Users {
		last := lastActivity(u)
		if !last.Before(cut24h) {
			out.Users.Active24h++
		}
		if !last.Before(cut7d) {
			out.Users.Active7d++
		}
		if !last.Before(cut30d) {
			out.Users.Active30d++
		}
		if first, ok := parseTimestamp(u.FirstSeenAt); ok && !first.Before(cut7d) {
			out.Users.New7d++
		}
		out.Users.TotalLogins += u.LoginCount
		if u.Provider != "" {
			out.Users.ByProvider[u.Provider]++
		}
	}

	// trailing 14 days, oldest first, zero-filled
	out.Logins.Daily = make([]DailyLogins, 0, 14)
	for i := 13; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		out.Logins.Daily = append(out.Logins.Daily, DailyLogins{
			Date:  day,
			Count: doc.Analytics.LoginsByDate[day],
		})
	}
	return out, nil
}

// Entries returns every collection trimmed to the given limit, for the
// admin console's raw entry browser.
func (s *AdminService) Entries(limit int) (map[string]any, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	out := map[string]any{
		"journal":     trimRecords(doc.Journal, limit),
		"steps":       trimRecords(doc.Steps, limit),
		"meals":       trimRecords(doc.Meals, limit),
		"workouts":    trimRecords(doc.Workouts, limit),
		"healthData":  trimRecords(doc.HealthData, limit),
		"users":       doc.Users,
		"connections": doc.Connections,
		"webhooks":    doc.Webhooks,
	}
	if len(doc.Users) > limit {
		out["users"] = doc.Users[:limit]
	}
	if len(doc.Connections) > limit {
		out["connections"] = doc.Connections[:limit]
	}
	if len(doc.Webhooks) > limit {
		out["webhooks"] = doc.Webhooks[:limit]
	}
	return out, nil
}

func trimRecords(records []models.Record, limit int) []models.Record {
	if len(records) > limit {
		return records[:limit]
	}
	return records
}

// lastActivity is the most recent of last-seen, last-login and
// first-seen; a user with no parsable timestamp sorts as never active.
func lastActivity(u models.User) time.Time {
	var latest time.Time
	for _, raw := range []string{u.LastSeenAt, u.LastLoginAt, u.FirstSeenAt} {
		if t, ok := parseTimestamp(raw); ok && t.After(latest) {
			latest = t
		}
	}
	return latest
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
