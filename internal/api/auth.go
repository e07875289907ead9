package api

import (
	"context"
	"net/http"

	"github.com/ledgerline/ledgerline-client/internal/domain"
)

// AuthAPI implements domain.AuthAPI over HTTP.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates an AuthAPI using the shared transport.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Login exchanges credentials for a session.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var resp loginResponse
	err := a.client.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		Token: resp.Token,
		User:  &domain.User{ID: resp.UserID, Email: email},
	}, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type registerResponse struct {
	ID string `json:"id"`
}

// Register creates an account and returns the new user id. It does not log
// the user in; the caller follows up with Login.
func (a *AuthAPI) Register(ctx context.Context, email, password, name string) (string, error) {
	var resp registerResponse
	err := a.client.do(ctx, http.MethodPost, "/api/auth/register", "", registerRequest{Email: email, Password: password, Name: name}, &resp)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Me fetches the profile of the token's user.
func (a *AuthAPI) Me(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := a.client.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
