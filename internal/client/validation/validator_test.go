package validation

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/employera/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() models.RegisterRequest {
	return models.RegisterRequest{
		Email:           "a@b.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FirstName:       "Ann",
		LastName:        "Bee",
		Phone:           "+1 (555) 010-2000",
		AccountType:     models.AccountEmployer,
	}
}

func TestStruct_RegisterRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		mutate    func(r *models.RegisterRequest)
		wantField string
	}{
		{name: "valid", mutate: func(r *models.RegisterRequest) {}},
		{name: "phone optional", mutate: func(r *models.RegisterRequest) { r.Phone = "" }},
		{name: "bad email", mutate: func(r *models.RegisterRequest) { r.Email = "nope" }, wantField: "email"},
		{name: "short password", mutate: func(r *models.RegisterRequest) { r.Password, r.ConfirmPassword = "x", "x" }, wantField: "password"},
		{name: "mismatch", mutate: func(r *models.RegisterRequest) { r.ConfirmPassword = "other123" }, wantField: "confirm_password"},
		{name: "bad phone", mutate: func(r *models.RegisterRequest) { r.Phone = "call me" }, wantField: "phone"},
		{name: "admin role", mutate: func(r *models.RegisterRequest) { r.AccountType = "admin" }, wantField: "account_type"},
		{name: "missing first name", mutate: func(r *models.RegisterRequest) { r.FirstName = "" }, wantField: "first_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)

			err := v.Struct(req)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var verr *Error
			require.True(t, errors.As(err, &verr), "want *Error, got %T", err)
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestStruct_LoginRequest(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(models.LoginRequest{Email: "a@b.com", Password: "secret123"}))

	err := v.Struct(models.LoginRequest{})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, "email is required; password is required", verr.Error())
}

func TestStruct_ChangePassword(t *testing.T) {
	v := New()

	err := v.Struct(models.ChangePasswordRequest{OldPassword: "secret123", NewPassword: "secret123", ConfirmPassword: "secret123"})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "new_password")
}
