package types

// Token is the login response
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserLogin is the login request
type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest changes the current user's password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Validate enforces the server's length bounds before the round trip
func (r ChangePasswordRequest) Validate() error {
	if err := ValidatePassword(r.OldPassword); err != nil {
		return err
	}
	return ValidatePassword(r.NewPassword)
}

// Notifications is the home screen payload
type Notifications struct {
	Notifications []string `json:"notifications"`
}
