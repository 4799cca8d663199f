package backend

import (
	"context"
	"net/http"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Tenant   string `json:"tenant"`
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Tenant    string `json:"tenant"`
	Role      string `json:"role"`
}

type authResponse struct {
	AccessToken string           `json:"accessToken"`
	User        domain.Principal `json:"user"`
}

// AuthGateway implements ports.AuthGateway against /auth.
type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

// Login posts the credentials to /auth/login.
func (g *AuthGateway) Login(ctx context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	var resp authResponse
	err := g.client.do(ctx, call{
		op:     "auth.login",
		method: http.MethodPost,
		path:   "/auth/login",
		in:     loginRequest{Email: creds.Email, Password: creds.Password, Tenant: creds.Tenant},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{AccessToken: resp.AccessToken, User: resp.User}, nil
}

// Register posts the new account to /auth/register.
func (g *AuthGateway) Register(ctx context.Context, reg ports.Registration) (*ports.AuthResult, error) {
	var resp authResponse
	err := g.client.do(ctx, call{
		op:     "auth.register",
		method: http.MethodPost,
		path:   "/auth/register",
		in: registerRequest{
			FirstName: reg.FirstName,
			LastName:  reg.LastName,
			Email:     reg.Email,
			Password:  reg.Password,
			Tenant:    reg.Tenant,
			Role:      reg.Role,
		},
		out: &resp,
	})
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{AccessToken: resp.AccessToken, User: resp.User}, nil
}
