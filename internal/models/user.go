package models

import "time"

// User represents a registered account. The mobile number is the login
// identifier and is unique across all users, including the seeded admin.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Mobile        string    `json:"mobile"`
	AccountNumber string    `json:"accountNumber"`
	IFSCCode      string    `json:"ifscCode"`
	BankName      string    `json:"bankName"`
	PasswordHash  string    `json:"-"` // Never expose this to the client
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
}
