package services

import (
	"fmt"
	"time"

	"backend/models"
	"backend/store"
	"backend/utils"

	"golang.org/x/oauth2"
)

// IdentityService records completed logins and keeps the stored
// connection rows for external fitness providers up to date.
type IdentityService struct {
	store store.Store
}

func NewIdentityService(st store.Store) *IdentityService {
	return &IdentityService{store: st}
}

// RecordLogin upserts the user row and bumps the login counters. Called
// exactly once per completed OAuth callback; reads never go through it.
func (s *IdentityService) RecordLogin(profile *models.CanonicalProfile) error {
	doc, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	now := time.Now().UTC()
	ts := now.Format(time.RFC3339)
	day := now.Format("2006-01-02")

	found := false
	for i := range doc.Users {
		if doc.Users[i].ID == profile.ID {
			doc.Users[i].Username = profile.Username
			doc.Users[i].Avatar = profile.Avatar
			if profile.Email != "" {
				doc.Users[i].Email = profile.Email
			}
			doc.Users[i].LastSeenAt = ts
			doc.Users[i].LastLoginAt = ts
			doc.Users[i].LoginCount++
			found = true
			break
		}
	}
	if !found {
		doc.Users = append(doc.Users, models.User{
			ID:          profile.ID,
			Provider:    profile.Provider,
			Username:    profile.Username,
			Email:       profile.Email,
			Avatar:      profile.Avatar,
			FirstSeenAt: ts,
			LastSeenAt:  ts,
			LastLoginAt: ts,
			LoginCount:  1,
		})
	}

	doc.Analytics.LoginsByDate[day]++

	if err := s.store.Save(doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// UpsertConnection stores OAuth tokens for an external fitness provider,
// one row per (uid, provider). A repeat login without a refresh token
// keeps the previously stored one.
func (s *IdentityService) UpsertConnection(uid, provider string, token *oauth2.Token, email, username string) error {
	doc, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	ts := time.Now().UTC().Format(time.RFC3339)
	found := false
	for i := range doc.Connections {
		c := &doc.Connections[i]
		if c.UID == uid && c.Provider == provider {
			c.AccessToken = token.AccessToken
			if token.RefreshToken != "" {
				c.RefreshToken = token.RefreshToken
			}
			c.Email = email
			c.Username = username
			c.UpdatedAt = ts
			found = true
			break
		}
	}
	if !found {
		doc.Connections = append(doc.Connections, models.Connection{
			ID:           utils.NewID(),
			UID:          uid,
			Provider:     provider,
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			Email:        email,
			Username:     username,
			UpdatedAt:    ts,
		})
	}

	if err := s.store.Save(doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// ConnectionFor returns the stored connection for a (uid, provider)
// pair, or nil when the user never linked that provider.
func (s *IdentityService) ConnectionFor(uid, provider string) (*models.Connection, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	for i := range doc.Connections {
		if doc.Connections[i].UID == uid && doc.Connections[i].Provider == provider {
			c := doc.Connections[i]
			return &c, nil
		}
	}
	return nil, nil
}
