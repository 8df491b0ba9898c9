package auth

import "context"

// AuthService is the identity-check boundary. Every other component trusts
// only the claims the middleware verified against tokens issued here.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Register(ctx context.Context, req RegisterRequest) error
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
