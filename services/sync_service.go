package services

import (
	"fmt"
	"time"

	"backend/models"
	"backend/store"
	"backend/utils"
)

// SyncService applies connector results to the document with
// replace-on-sync semantics: a sync wholesale replaces the caller's
// prior records carrying the same source tag and touches nothing else.
type SyncService struct {
	store store.Store
}

func NewSyncService(st store.Store) *SyncService {
	return &SyncService{store: st}
}

// ApplyGoogleFit replaces the user's google_fit-sourced steps and
// workouts with the given pull results. Manually entered records and
// other users' records survive untouched.
func (s *SyncService) ApplyGoogleFit(uid string, steps, workouts []models.Record) (int, int, error) {
	doc, err := s.store.Load()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load document: %w", err)
	}

	doc.Steps = replaceSourced(doc.Steps, uid, googleFitSource, steps)
	doc.Workouts = replaceSourced(doc.Workouts, uid, googleFitSource, workouts)

	if err := s.store.Save(doc); err != nil {
		return 0, 0, fmt.Errorf("failed to save document: %w", err)
	}
	return len(steps), len(workouts), nil
}

// ApplyZepp writes today's Zepp pull: a step record only when the count
// is positive, and a health-data record always, merging the
// Zepp-derived calories over any client-supplied extra fields. Prior
// same-day zepp-sourced records are replaced.
func (s *SyncService) ApplyZepp(uid string, data *ZeppData, extra models.Record) (int, int, error) {
	doc, err := s.store.Load()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load document: %w", err)
	}

	stepsSynced := 0
	newSteps := []models.Record{}
	if data.Steps > 0 {
		newSteps = append(newSteps, models.Record{
			"date":   data.Date,
			"count":  data.Steps,
			"source": zeppSource,
		})
		stepsSynced = 1
	}
	doc.Steps = replaceSameDaySourced(doc.Steps, uid, zeppSource, data.Date, newSteps)

	health := models.NormalizeHealthRecord(extra)
	health["caloriesBurned"] = data.Calories
	health["source"] = zeppSource
	health["date"] = data.Date
	health["created"] = time.Now().UTC().Format(time.RFC3339)
	doc.HealthData = replaceSameDaySourced(doc.HealthData, uid, zeppSource, data.Date, []models.Record{health})

	if err := s.store.Save(doc); err != nil {
		return 0, 0, fmt.Errorf("failed to save document: %w", err)
	}
	return stepsSynced, 1, nil
}

// replaceSourced drops the user's records with the given source tag and
// prepends the stamped replacements.
func replaceSourced(existing []models.Record, uid, source string, fresh []models.Record) []models.Record {
	kept := make([]models.Record, 0, len(existing))
	for _, r := range existing {
		if r.UID() == uid && r.Source() == source {
			continue
		}
		kept = append(kept, r)
	}
	return append(stampAll(fresh, uid), kept...)
}

// replaceSameDaySourced is the narrower variant for the single-day Zepp
// pull: only same-day same-source records of the user are replaced.
func replaceSameDaySourced(existing []models.Record, uid, source, date string, fresh []models.Record) []models.Record {
	kept := make([]models.Record, 0, len(existing))
	for _, r := range existing {
		if r.UID() == uid && r.Source() == source && r.Date() == date {
			continue
		}
		kept = append(kept, r)
	}
	return append(stampAll(fresh, uid), kept...)
}

func stampAll(records []models.Record, uid string) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.WithEnvelope(utils.NewID(), uid))
	}
	return out
}
