package services

import (
	"fmt"
	"sort"
	"time"

	"backend/models"
	"backend/store"
	"backend/utils"
)

// HealthDataService manages the normalized health metric records.
type HealthDataService struct {
	store store.Store
}

func NewHealthDataService(st store.Store) *HealthDataService {
	return &HealthDataService{store: st}
}

// Create normalizes either camelCase or snake_case input, stamps the
// envelope plus source/date/created defaults, and prepends the record.
func (s *HealthDataService) Create(uid string, body models.Record) (models.Record, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	record := models.NormalizeHealthRecord(body)
	if record.Source() == "" {
		record["source"] = "manual"
	}
	if record.Date() == "" {
		record["date"] = time.Now().Format("2006-01-02")
	}
	if _, ok := record["created"]; !ok {
		record["created"] = time.Now().UTC().Format(time.RFC3339)
	}
	record = record.WithEnvelope(utils.NewID(), uid)

	doc.HealthData = append([]models.Record{record}, doc.HealthData...)
	if err := s.store.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return models.WithLegacyAliases(record), nil
}

// List returns the caller's records with legacy snake_case aliases
// re-added beside the canonical keys.
func (s *HealthDataService) List(uid string) ([]models.Record, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	items := []models.Record{}
	for _, r := range doc.HealthData {
		if r.UID() == uid {
			items = append(items, models.WithLegacyAliases(r))
		}
	}
	return items, nil
}

// Summary rolls the caller's records up to the most recent record per
// day: today's record (or null) plus up to 14 trailing days.
func (s *HealthDataService) Summary(uid string) (models.Record, error) {
	items, err := s.List(uid)
	if err != nil {
		return nil, err
	}

	// records are stored newest-first, so the first hit per day wins
	latestByDay := map[string]models.Record{}
	for _, r := range items {
		day := r.Date()
		if day == "" {
			continue
		}
		if _, seen := latestByDay[day]; !seen {
			latestByDay[day] = r
		}
	}

	days := make([]string, 0, len(latestByDay))
	for day := range latestByDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	if len(days) > 14 {
		days = days[:14]
	}

	recent := make([]models.Record, 0, len(days))
	for _, day := range days {
		recent = append(recent, latestByDay[day])
	}

	today := time.Now().Format("2006-01-02")
	summary := models.Record{
		"totalRecords": len(items),
		"recent":       recent,
	}
	if r, ok := latestByDay[today]; ok {
		summary["today"] = r
	} else {
		summary["today"] = nil
	}
	return summary, nil
}
