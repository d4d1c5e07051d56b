package models

import "time"

// Tier names are the access classes bounding searchable date spans.
const (
	TierRegular = "Regular"
	TierPremium = "Premium"
	TierAdmin   = "Admin"
)

type User struct {
	ID        int       `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	TierID    int       `json:"tier_id"`
	TierName  string    `json:"tier_name,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type UserTier struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Account struct {
	ID            int       `json:"id"`
	AccountNumber string    `json:"account_number"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// UserAccount is the share relation granting a user read access to an
// account owned by someone else.
type UserAccount struct {
	UserID    int `json:"user_id"`
	AccountID int `json:"account_id"`
}
