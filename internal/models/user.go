package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User matches the users table created in database/migrations.go.
type User struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Password         string    `json:"-"`
	PasswordHash     string    `json:"-"`
	PhoneCountryCode string    `json:"-"`
	PhoneNumber      string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Phone is the public shape of a user's phone number.
type Phone struct {
	CountryCode string `json:"countryCode"`
	Number      string `json:"number"`
}

// Profile is what /auth/me returns.
type Profile struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Phone    Phone     `json:"phone"`
}

func (u *User) Prepare() {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.PhoneCountryCode = strings.TrimSpace(u.PhoneCountryCode)
}

func (u *User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone: Phone{
			CountryCode: u.PhoneCountryCode,
			Number:      u.PhoneNumber,
		},
	}
}
