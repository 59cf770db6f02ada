package types

import "encoding/json"

// UserProfile is the signed-in user as returned by the backend
type UserProfile struct {
	ID        string    `json:"id" yaml:"id"`
	Username  string    `json:"username" yaml:"username"`
	Email     string    `json:"email" yaml:"email"`
	CreatedAt Timestamp `json:"created_at" yaml:"created_at"`
}

// UnmarshalJSON accepts both "_id" and "id" keys
func (u *UserProfile) UnmarshalJSON(data []byte) error {
	type plain UserProfile
	var aux struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = UserProfile(aux.plain)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// ProfileUpdate is the payload for a profile info update
type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PasswordChangeRequest holds the password sub-flow fields. It is never
// persisted and is cleared as soon as the flow ends.
type PasswordChangeRequest struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// Clear zeroes every field
func (p *PasswordChangeRequest) Clear() {
	p.CurrentPassword = ""
	p.NewPassword = ""
	p.ConfirmPassword = ""
}

// PasswordChange is the wire payload sent to the password endpoint.
// The confirmation never leaves the client.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Credentials is the login payload
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthGrant is what the backend returns on login or registration
type AuthGrant struct {
	User         UserProfile `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}
