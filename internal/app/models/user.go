// Package models defines the data shapes persisted by the local account
// store and rendered by the feed screens.
package models

import "strings"

// UserRecord is a registered account as persisted in the account store.
//
// Normalisation invariants, enforced at registration time:
//   - FullName is stored upper-cased.
//   - Username, when present, is stored lower-cased and is unique.
//   - NationalID is exactly 11 digits and unique across all records.
//
// Password holds the argon2id hash of the user's password, never the
// clear text. The JSON field is still called "password" to keep the
// store layout stable.
type UserRecord struct {
	FullName    string `json:"fullName"`
	Username    string `json:"username,omitempty"`
	NationalID  string `json:"nationalId"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CreatedAt   string `json:"createdAt"`
}

// Normalize applies the storage normalisation rules in place.
func (u *UserRecord) Normalize() {
	u.FullName = strings.ToUpper(u.FullName)
	u.Username = strings.ToLower(u.Username)
}

// DisplayName returns the name shown on the profile screen.
func (u *UserRecord) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return "Usuário"
}
