package models

// Connection links a user to an external fitness provider. One row per
// (uid, provider) pair, upserted on each login.
type Connection struct {
	ID           string `json:"id"`
	UID          string `json:"uid"`
	Provider     string `json:"provider"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Email        string `json:"email,omitempty"`
	Username     string `json:"username,omitempty"`
	UpdatedAt    string `json:"updatedAt"`
}
