package models

import "locotranz/internal/domain"

// User is the session record the backend returns on login. The access token
// doubles as the bearer credential for every subsequent call.
type User struct {
	ID          domain.ID `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	AccessToken string    `json:"access_token"`
}

func (u User) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}
