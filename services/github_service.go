package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"backend/config"
	"backend/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GitHubService implements the GitHub authorization-code flow and
// normalizes the GitHub profile into the canonical shape.
type GitHubService struct {
	oauth      *oauth2.Config
	configured bool
	apiBase    string
	client     *http.Client
}

func NewGitHubService(cfg *config.Config) *GitHubService {
	return &GitHubService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.GitHubCallbackURL,
			Scopes:       []string{"read:user"},
			Endpoint:     github.Endpoint,
		},
		configured: cfg.GitHubConfigured(),
		apiBase:    "https://api.github.com",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *GitHubService) Name() string     { return "github" }
func (s *GitHubService) Configured() bool { return s.configured }

func (s *GitHubService) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

type githubUserResponse struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	Email     string `json:"email"`
}

func (s *GitHubService) Authenticate(ctx context.Context, code string) (*models.CanonicalProfile, *oauth2.Token, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to exchange github code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBase+"/user", nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create github user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to call github user API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read github user response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("github user API error %d: %s", resp.StatusCode, string(body))
	}

	var gu githubUserResponse
	if err := json.Unmarshal(body, &gu); err != nil {
		return nil, nil, fmt.Errorf("failed to parse github user JSON: %w", err)
	}

	profile := &models.CanonicalProfile{
		ID:       strconv.FormatInt(gu.ID, 10),
		Username: gu.Login,
		Email:    gu.Email,
		Avatar:   gu.AvatarURL,
		Provider: "github",
	}
	return profile, token, nil
}

var _ Strategy = (*GitHubService)(nil)
