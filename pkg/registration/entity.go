package registration

import "time"

// Request is the registration payload as submitted by the client.
type Request struct {
	DisplayName     string `json:"displayName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// NewUser carries everything the identity provider needs to create an account.
type NewUser struct {
	UID           string
	Email         string
	EmailVerified bool
	Password      string
	DisplayName   string
	Disabled      bool
}

// UserRecord is the provider's view of an account. It never holds credentials.
type UserRecord struct {
	UID           string       `json:"uid"`
	Email         string       `json:"email"`
	EmailVerified bool         `json:"emailVerified"`
	DisplayName   string       `json:"displayName"`
	Disabled      bool         `json:"disabled"`
	Metadata      UserMetadata `json:"metadata"`
}

// UserMetadata mirrors the provider's account timestamps, formatted as
// RFC 1123 GMT strings. Empty values are omitted.
type UserMetadata struct {
	CreationTime    string `json:"creationTime,omitempty"`
	LastSignInTime  string `json:"lastSignInTime,omitempty"`
	LastRefreshTime string `json:"lastRefreshTime,omitempty"`
}

// NewUserMetadata builds metadata from provider timestamps; zero times are left blank.
func NewUserMetadata(created, lastSignIn, lastRefresh time.Time) UserMetadata {
	return UserMetadata{
		CreationTime:    formatTime(created),
		LastSignInTime:  formatTime(lastSignIn),
		LastRefreshTime: formatTime(lastRefresh),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC1123)
}
