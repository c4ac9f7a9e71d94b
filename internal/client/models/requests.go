package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type RegisterRequest struct {
	Email           string      `json:"email" validate:"required,email,max=255"`
	Password        string      `json:"password" validate:"required,min=8"`
	ConfirmPassword string      `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string      `json:"first_name" validate:"required,max=30"`
	LastName        string      `json:"last_name" validate:"required,max=30"`
	Phone           string      `json:"phone" validate:"omitempty,max=20,phone"`
	AccountType     AccountType `json:"account_type" validate:"required,account_type"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,nefield=OldPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// ProfileUpdate is a partial PATCH body. Only keys present are sent.
type ProfileUpdate map[string]any

// editableFields lists the keys the API accepts in a profile update.
var editableFields = map[string]func(string) (any, error){
	"first_name":          asString,
	"last_name":           asString,
	"phone":               asString,
	"bio":                 asString,
	"location":            asString,
	"company_name":        asString,
	"company_description": asString,
	"skills":              asList,
	"hourly_rate":         asDecimal,
}

// EditableFields returns the sorted list of keys ParseProfileUpdate accepts.
func EditableFields() []string {
	keys := make([]string, 0, len(editableFields))
	for k := range editableFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseProfileUpdate turns "key=value" pairs into a ProfileUpdate.
// skills takes a comma-separated list; hourly_rate must be a number.
func ParseProfileUpdate(pairs []string) (ProfileUpdate, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("nothing to update")
	}
	upd := make(ProfileUpdate, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("expected key=value, got %q", p)
		}
		key = strings.TrimSpace(key)
		conv, known := editableFields[key]
		if !known {
			return nil, fmt.Errorf("field %q cannot be edited", key)
		}
		v, err := conv(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		upd[key] = v
	}
	return upd, nil
}

func asString(s string) (any, error) { return s, nil }

func asList(s string) (any, error) {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}

func asDecimal(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return nil, fmt.Errorf("must be a non-negative number")
	}
	return strconv.FormatFloat(f, 'f', 2, 64), nil
}
