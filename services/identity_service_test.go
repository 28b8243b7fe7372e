package services

import (
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestRecordLoginCreatesUserAndBucketsToday(t *testing.T) {
	st := newTestStore(t)
	svc := NewIdentityService(st)

	require.NoError(t, svc.RecordLogin(&models.CanonicalProfile{
		ID: "1001", Provider: "github", Username: "alice", Email: "alice@example.com",
	}))

	doc, err := st.Load()
	require.NoError(t, err)
	require.Len(t, doc.Users, 1)

	u := doc.Users[0]
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, 1, u.LoginCount)
	assert.NotEmpty(t, u.FirstSeenAt)
	assert.Equal(t, u.FirstSeenAt, u.LastLoginAt)

	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, 1, doc.Analytics.LoginsByDate[today])
}

func TestRecordLoginRepeatBumpsCountersButNotFirstSeen(t *testing.T) {
	st := newTestStore(t)
	firstSeen := time.Now().UTC().AddDate(0, 0, -10).Format(time.RFC3339)

	doc, err := st.Load()
	require.NoError(t, err)
	doc.Users = []models.User{{
		ID: "1001", Provider: "github", Username: "alice",
		FirstSeenAt: firstSeen, LastSeenAt: firstSeen, LastLoginAt: firstSeen,
		LoginCount: 4,
	}}
	require.NoError(t, st.Save(doc))

	svc := NewIdentityService(st)
	require.NoError(t, svc.RecordLogin(&models.CanonicalProfile{
		ID: "1001", Provider: "github", Username: "alice-renamed",
	}))

	after, err := st.Load()
	require.NoError(t, err)
	require.Len(t, after.Users, 1)

	u := after.Users[0]
	assert.Equal(t, 5, u.LoginCount)
	assert.Equal(t, "alice-renamed", u.Username)
	assert.Equal(t, firstSeen, u.FirstSeenAt, "first seen must be stamped once")
	assert.NotEqual(t, firstSeen, u.LastSeenAt)
	assert.NotEqual(t, firstSeen, u.LastLoginAt)
}

func TestRecordLoginKeepsStoredEmailWhenProfileOmitsIt(t *testing.T) {
	st := newTestStore(t)
	svc := NewIdentityService(st)

	require.NoError(t, svc.RecordLogin(&models.CanonicalProfile{
		ID: "1001", Provider: "github", Username: "alice", Email: "alice@example.com",
	}))
	require.NoError(t, svc.RecordLogin(&models.CanonicalProfile{
		ID: "1001", Provider: "github", Username: "alice",
	}))

	doc, err := st.Load()
	require.NoError(t, err)
	require.Len(t, doc.Users, 1)
	assert.Equal(t, "alice@example.com", doc.Users[0].Email)
}

func TestUpsertConnectionPreservesRefreshTokenOnRepeatLogin(t *testing.T) {
	st := newTestStore(t)
	svc := NewIdentityService(st)

	require.NoError(t, svc.UpsertConnection("1001", "google_fit", &oauth2.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}, "alice@example.com", "alice"))

	// a repeat consent grant often returns no refresh token at all
	require.NoError(t, svc.UpsertConnection("1001", "google_fit", &oauth2.Token{
		AccessToken: "access-2",
	}, "alice@example.com", "alice"))

	conn, err := svc.ConnectionFor("1001", "google_fit")
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, "access-2", conn.AccessToken)
	assert.Equal(t, "refresh-1", conn.RefreshToken, "stored refresh token must survive a grant without one")

	doc, err := st.Load()
	require.NoError(t, err)
	assert.Len(t, doc.Connections, 1, "upsert must not duplicate the row")
}

func TestConnectionForUnlinkedProviderIsNil(t *testing.T) {
	st := newTestStore(t)
	svc := NewIdentityService(st)

	conn, err := svc.ConnectionFor("1001", "google_fit")
	require.NoError(t, err)
	assert.Nil(t, conn)
}
