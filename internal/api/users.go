package api

import (
	"context"

	"github.com/structura-app/structura-cli/internal/models"
)

// UserService wraps the admin user-management endpoints.
type UserService struct {
	c *Client
}

// NewUserService creates a UserService over the given client.
func NewUserService(c *Client) *UserService {
	return &UserService{c: c}
}

// List fetches every platform member. Admin only.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get fetches one user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.c.get(ctx, "/api/users/"+id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SetAdmin toggles the admin flag of a user. Admin only.
func (s *UserService) SetAdmin(ctx context.Context, id string, isAdmin bool) (*models.User, error) {
	body := struct {
		IsAdmin bool `json:"isAdmin"`
	}{IsAdmin: isAdmin}
	var u models.User
	if err := s.c.putJSON(ctx, "/api/users/"+id+"/role", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes a user account. Admin only.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/api/users/"+id, nil)
}
