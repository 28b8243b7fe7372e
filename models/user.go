package models

// User is one row of the stored user table. IDs are provider-qualified:
// GitHub users keep the provider's numeric id as a string, Google users
// get "google:<providerId>".
type User struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	FirstSeenAt string `json:"firstSeenAt"`
	LastSeenAt  string `json:"lastSeenAt"`
	LastLoginAt string `json:"lastLoginAt"`
	LoginCount  int    `json:"loginCount"`
}

// CanonicalProfile is the provider-independent user shape kept in the
// session and returned by GET /api/user.
type CanonicalProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar"`
	Provider string `json:"provider"`
}
