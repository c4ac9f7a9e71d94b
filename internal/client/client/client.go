package client

import (
	"context"

	"github.com/dmitrijs2005/employera/internal/client/models"
)

// Client is the identity API collaborator. Calls that act on behalf of a
// signed-in user take the access token explicitly.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	VerifyToken(ctx context.Context, accessToken string) (*models.User, error)
	UpdateProfile(ctx context.Context, accessToken string, upd models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, accessToken string, req models.ChangePasswordRequest) error
	CheckEmail(ctx context.Context, email string) (bool, error)
}
