package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/employera/internal/client/guard"
	"github.com/dmitrijs2005/employera/internal/client/models"
	"github.com/dmitrijs2005/employera/internal/mockapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPrompts answers text prompts and password prompts from two queues
// keyed by prompt text.
func stubPrompts(t *testing.T, text, passwords map[string]string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		v, ok := text[prompt]
		if !ok {
			return "", io.EOF
		}
		return v, nil
	}
	getPassword = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		v, ok := passwords[prompt]
		if !ok {
			return "", io.EOF
		}
		return v, nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func registrationPrompts(email, kind string) map[string]string {
	return map[string]string{
		"Email":              email,
		"First name":         "Ann",
		"Last name":          "Lee",
		"Phone (optional)":   "",
		accountTypePrompt(): kind,
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		kind      string
		password  string
		confirm   string
		wantErr   string
		wantPath  string
		wantEmail string
	}{
		{
			name: "employer", email: "ann@example.com", kind: "employer",
			password: "secret123", confirm: "secret123",
			wantPath: guard.PathEmployerDashboard, wantEmail: "ann@example.com",
		},
		{
			name: "job seeker, case-insensitive type", email: "bob@example.com", kind: "JobSeeker",
			password: "secret123", confirm: "secret123",
			wantPath: guard.PathJobSeekerDashboard, wantEmail: "bob@example.com",
		},
		{
			name: "email taken", email: "employer@example.com", kind: "employer",
			password: "secret123", confirm: "secret123",
			wantErr: "user with this email already exists.",
		},
		{
			name: "unknown account type", email: "cat@example.com", kind: "admin",
			password: "secret123", confirm: "secret123",
			wantErr: `unknown account type "admin"`,
		},
		{
			name: "passwords differ", email: "dan@example.com", kind: "employer",
			password: "secret123", confirm: "secret124",
			wantErr: "Password fields didn't match.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			a := e.start(t, "")
			ctx := context.Background()
			a.boot(ctx)

			stubPrompts(t, registrationPrompts(tt.email, tt.kind), map[string]string{
				"Password":         tt.password,
				"Confirm password": tt.confirm,
			})

			err := a.Register(ctx)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.False(t, a.isLoggedIn())
				assert.False(t, a.store.IsAuthenticated(ctx))
				return
			}

			require.NoError(t, err)
			assert.True(t, a.isLoggedIn())
			assert.Equal(t, tt.wantEmail, a.gate.Snapshot().User.Email)
			assert.Equal(t, tt.wantPath, a.nav.Current())
			assert.Contains(t, a.out.String(), "Welcome to EmployEra, Ann Lee!")
		})
	}
}

func TestRegister_PromptError(t *testing.T) {
	e := newEnv(t)
	a := e.start(t, "")
	ctx := context.Background()
	a.boot(ctx)

	stubPrompts(t, map[string]string{"Email": "x@example.com"}, nil)
	assert.ErrorIs(t, a.Register(ctx), io.EOF)
	assert.False(t, a.isLoggedIn())
}

func TestLoginAndRegister_WhenSignedIn(t *testing.T) {
	e := newEnv(t)
	a := e.start(t, "")
	ctx := context.Background()
	a.boot(ctx)

	stubPrompts(t, map[string]string{"Email": "employer@example.com"}, map[string]string{"Password": mockapi.DemoPassword})
	require.NoError(t, a.Login(ctx))

	assert.ErrorIs(t, a.Login(ctx), errSignedIn)
	assert.ErrorIs(t, a.Register(ctx), errSignedIn)
}

func TestPasswd(t *testing.T) {
	e := newEnv(t)
	a := e.start(t, "")
	ctx := context.Background()
	a.boot(ctx)

	assert.ErrorIs(t, a.Passwd(ctx), errSignedOut)

	stubPrompts(t, map[string]string{"Email": "jobseeker@example.com"}, map[string]string{
		"Password":             mockapi.DemoPassword,
		"Current password":     "not-the-password",
		"New password":         "brand-new-1",
		"Confirm new password": "brand-new-1",
	})
	require.NoError(t, a.Login(ctx))

	err := a.Passwd(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Old password is not correct")
	assert.True(t, a.isLoggedIn())

	stubPrompts(t, map[string]string{"Email": "jobseeker@example.com"}, map[string]string{
		"Password":             "brand-new-1",
		"Current password":     mockapi.DemoPassword,
		"New password":         "brand-new-1",
		"Confirm new password": "brand-new-1",
	})
	require.NoError(t, a.Passwd(ctx))
	assert.Contains(t, a.out.String(), "Password changed")

	require.NoError(t, a.Logout(ctx))
	require.NoError(t, a.Login(ctx))
	assert.Equal(t, models.AccountJobSeeker, a.gate.Snapshot().User.AccountType)
}
