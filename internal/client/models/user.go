// Package models holds the client-side data types exchanged with the
// marketplace API and persisted in the local store.
package models

import (
	"fmt"
	"strings"
)

// AccountType is the immutable role chosen at registration.
type AccountType string

const (
	AccountJobSeeker AccountType = "jobseeker"
	AccountEmployer  AccountType = "employer"
)

// AccountTypes lists every role in display order.
func AccountTypes() []AccountType {
	return []AccountType{AccountJobSeeker, AccountEmployer}
}

// Valid reports whether t is one of the known roles.
func (t AccountType) Valid() bool {
	switch t {
	case AccountJobSeeker, AccountEmployer:
		return true
	default:
		return false
	}
}

// Label is the human-readable role name.
func (t AccountType) Label() string {
	switch t {
	case AccountJobSeeker:
		return "Job Seeker"
	case AccountEmployer:
		return "Employer"
	default:
		return string(t)
	}
}

// ParseAccountType accepts the wire values case-insensitively.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown account type %q", s)
	}
	return t, nil
}

// User mirrors the API's user representation.
type User struct {
	ID                 int64          `json:"id"`
	Email              string         `json:"email"`
	FirstName          string         `json:"first_name"`
	LastName           string         `json:"last_name"`
	Phone              string         `json:"phone"`
	AccountType        AccountType    `json:"account_type"`
	ProfilePicture     *string        `json:"profile_picture"`
	Bio                string         `json:"bio"`
	Location           string         `json:"location"`
	Skills             []string       `json:"skills"`
	HourlyRate         *string        `json:"hourly_rate"`
	Availability       map[string]any `json:"availability"`
	Rating             string         `json:"rating"`
	TotalReviews       int            `json:"total_reviews"`
	CompanyName        string         `json:"company_name"`
	CompanyDescription string         `json:"company_description"`
	IsVerified         bool           `json:"is_verified"`
	DateJoined         string         `json:"date_joined"`
}

// FullName joins first and last name, skipping empty parts.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsEmployer() bool {
	return u.AccountType == AccountEmployer
}
