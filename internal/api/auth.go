package api

import (
	"context"
	"net/url"

	"github.com/structura-app/structura-cli/internal/forms"
	"github.com/structura-app/structura-cli/internal/models"
)

// AuthService wraps the authentication endpoints. Forms are validated before
// any request is issued; a validation failure never reaches the network.
type AuthService struct {
	c *Client
}

// NewAuthService creates an AuthService over the given client.
func NewAuthService(c *Client) *AuthService {
	return &AuthService{c: c}
}

// SignIn exchanges credentials for an authenticated user (with token).
func (s *AuthService) SignIn(ctx context.Context, form forms.SignInForm) (*models.User, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	var u models.User
	if err := s.c.postJSON(ctx, "/api/auth/signin", form, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SignUp registers a new account and returns the signed-in user.
func (s *AuthService) SignUp(ctx context.Context, form forms.SignUpForm) (*models.User, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	var u models.User
	if err := s.c.postJSON(ctx, "/api/auth/signup", form, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Me fetches the authenticated identity from the server, so a rehydrated
// session can be checked against the backend's current view of the account.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := s.c.get(ctx, "/api/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SignOut tells the server to invalidate the session. Callers clear local
// state regardless of the outcome.
func (s *AuthService) SignOut(ctx context.Context) error {
	return s.c.postJSON(ctx, "/api/auth/signout", struct{}{}, nil)
}

// UpdateProfile submits a full profile replacement, optionally with a new
// profile picture, and returns the merged user.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, form forms.ProfileForm, picture *File) (*models.User, error) {
	if err := forms.Check(form); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"username": form.Username,
		"email":    form.Email,
	}
	var files []File
	if picture != nil {
		files = append(files, *picture)
	}
	var u models.User
	if err := s.c.putMultipart(ctx, "/api/users/"+userID, fields, files, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ChangePassword updates the account password. Identity and token are
// unchanged on success.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, form forms.PasswordForm) error {
	if err := forms.Check(form); err != nil {
		return err
	}
	body := url.Values{}
	body.Set("oldPassword", form.OldPassword)
	body.Set("newPassword", form.NewPassword)
	return s.c.putForm(ctx, "/api/users/"+userID+"/password", body, nil)
}

// DeleteAccount removes the account on the server.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	return s.c.delete(ctx, "/api/users/"+userID, nil)
}
