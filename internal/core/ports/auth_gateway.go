package ports

import (
	"context"

	"github.com/schoolsapp/schools-web/internal/core/domain"
)

// Credentials is the login request sent to the auth API.
type Credentials struct {
	Email    string
	Password string
	Tenant   string
}

// Registration is the sign-up request sent to the auth API.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Tenant    string
	Role      string
}

// AuthResult is what the auth API returns on success.
type AuthResult struct {
	AccessToken string
	User        domain.Principal
}

// AuthGateway talks to the external authentication API.
type AuthGateway interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
}
