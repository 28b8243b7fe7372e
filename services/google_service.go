package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"backend/config"
	"backend/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleService implements the Google authorization-code flow. Besides
// the canonical profile it captures access/refresh tokens so Google Fit
// can be called later on the user's behalf.
type GoogleService struct {
	oauth      *oauth2.Config
	configured bool
	apiBase    string
	client     *http.Client
}

func NewGoogleService(cfg *config.Config) *GoogleService {
	return &GoogleService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/fitness.activity.read",
			},
			Endpoint: google.Endpoint,
		},
		configured: cfg.GoogleConfigured(),
		apiBase:    "https://www.googleapis.com",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *GoogleService) Name() string     { return "google" }
func (s *GoogleService) Configured() bool { return s.configured }

func (s *GoogleService) AuthCodeURL(state string) string {
	// offline access so a refresh token is issued on first consent
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

type googleUserResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *GoogleService) Authenticate(ctx context.Context, code string) (*models.CanonicalProfile, *oauth2.Token, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to exchange google code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBase+"/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create google userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to call google userinfo API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read google userinfo response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("google userinfo API error %d: %s", resp.StatusCode, string(body))
	}

	var gu googleUserResponse
	if err := json.Unmarshal(body, &gu); err != nil {
		return nil, nil, fmt.Errorf("failed to parse google userinfo JSON: %w", err)
	}

	username := gu.Name
	if username == "" && gu.Email != "" {
		username = strings.SplitN(gu.Email, "@", 2)[0]
	}

	profile := &models.CanonicalProfile{
		ID:       "google:" + gu.ID,
		Username: username,
		Email:    gu.Email,
		Avatar:   gu.Picture,
		Provider: "google",
	}
	return profile, token, nil
}

var _ Strategy = (*GoogleService)(nil)
