package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"backend/models"
)

// ErrTokenInvalid marks an upstream 401/403: the stored access token
// was rejected and the user has to log in with Google again.
var ErrTokenInvalid = errors.New("google fit token rejected")

const googleFitSource = "google_fit"

// GoogleFitService pulls step buckets and workout sessions for a
// trailing day window using the user's stored access token.
type GoogleFitService struct {
	apiBase string
	client  *http.Client
}

func NewGoogleFitService() *GoogleFitService {
	return &GoogleFitService{
		apiBase: "https://www.googleapis.com/fitness/v1",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// windowStart is local midnight days-1 days ago, so a 1-day window
// covers today only.
func windowStart(now time.Time, days int) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -(days - 1))
}

type aggregateRequest struct {
	AggregateBy []struct {
		DataTypeName string `json:"dataTypeName"`
	} `json:"aggregateBy"`
	BucketByTime struct {
		DurationMillis int64 `json:"durationMillis"`
	} `json:"bucketByTime"`
	StartTimeMillis int64 `json:"startTimeMillis"`
	EndTimeMillis   int64 `json:"endTimeMillis"`
}

type aggregateResponse struct {
	Bucket []struct {
		StartTimeMillis string `json:"startTimeMillis"`
		Dataset         []struct {
			Point []struct {
				Value []struct {
					IntVal int64 `json:"intVal"`
				} `json:"value"`
			} `json:"point"`
		} `json:"dataset"`
	} `json:"bucket"`
}

// FetchSteps aggregates step-count deltas into daily buckets and drops
// buckets with zero net steps.
func (s *GoogleFitService) FetchSteps(ctx context.Context, accessToken string, days int) ([]models.Record, error) {
	now := time.Now()
	start := windowStart(now, days)

	var reqBody aggregateRequest
	reqBody.AggregateBy = append(reqBody.AggregateBy, struct {
		DataTypeName string `json:"dataTypeName"`
	}{DataTypeName: "com.google.step_count.delta"})
	reqBody.BucketByTime.DurationMillis = 86400000
	reqBody.StartTimeMillis = start.UnixMilli()
	reqBody.EndTimeMillis = now.UnixMilli()

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal aggregate payload: %w", err)
	}

	body, err := s.call(ctx, http.MethodPost, s.apiBase+"/users/me/dataset:aggregate", accessToken, payload)
	if err != nil {
		return nil, err
	}

	var ar aggregateResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("failed to parse aggregate JSON: %w", err)
	}

	records := []models.Record{}
	for _, bucket := range ar.Bucket {
		startMillis, err := strconv.ParseInt(bucket.StartTimeMillis, 10, 64)
		if err != nil {
			continue
		}
		var total int64
		for _, ds := range bucket.Dataset {
			for _, p := range ds.Point {
				for _, v := range p.Value {
					total += v.IntVal
				}
			}
		}
		if total <= 0 {
			continue
		}
		records = append(records, models.Record{
			"date":   time.UnixMilli(startMillis).Format("2006-01-02"),
			"count":  total,
			"source": googleFitSource,
		})
	}
	return records, nil
}

type sessionsResponse struct {
	Session []struct {
		Name            string `json:"name"`
		ActivityType    int    `json:"activityType"`
		StartTimeMillis string `json:"startTimeMillis"`
		EndTimeMillis   string `json:"endTimeMillis"`
	} `json:"session"`
}

// FetchWorkouts lists sessions over the same trailing window. Sessions
// with unparsable timestamps or end <= start are dropped; duration is
// whole minutes, minimum 1.
func (s *GoogleFitService) FetchWorkouts(ctx context.Context, accessToken string, days int) ([]models.Record, error) {
	now := time.Now()
	start := windowStart(now, days)

	q := url.Values{}
	q.Set("startTime", start.UTC().Format(time.RFC3339))
	q.Set("endTime", now.UTC().Format(time.RFC3339))

	body, err := s.call(ctx, http.MethodGet, s.apiBase+"/users/me/sessions?"+q.Encode(), accessToken, nil)
	if err != nil {
		return nil, err
	}

	var sr sessionsResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse sessions JSON: %w", err)
	}

	records := []models.Record{}
	for _, sess := range sr.Session {
		rec, ok := sessionToWorkout(sess.Name, sess.StartTimeMillis, sess.EndTimeMillis)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// sessionToWorkout validates one session and converts it to a workout
// record. Returns false for rejected sessions.
func sessionToWorkout(name, startMillis, endMillis string) (models.Record, bool) {
	start, err := strconv.ParseInt(startMillis, 10, 64)
	if err != nil {
		return nil, false
	}
	end, err := strconv.ParseInt(endMillis, 10, 64)
	if err != nil {
		return nil, false
	}
	if end <= start {
		return nil, false
	}

	minutes := int64(math.Round(float64(end-start) / 60000.0))
	if minutes < 1 {
		minutes = 1
	}
	if name == "" {
		name = "Workout"
	}
	return models.Record{
		"date":     time.UnixMilli(start).Format("2006-01-02"),
		"type":     name,
		"duration": minutes,
		"source":   googleFitSource,
	}, true
}

func (s *GoogleFitService) call(ctx context.Context, method, u, accessToken string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create google fit request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call google fit API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read google fit response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrTokenInvalid
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google fit API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
