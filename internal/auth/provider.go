package auth

import (
	"context"
	"errors"

	"github.com/dreamguard-id/DreamGuard/internal"
)

// ErrTokenExpired distinguishes an expired token from a generally invalid
// one, so the middleware can phrase the 403 accordingly.
var ErrTokenExpired = errors.New("auth: token expired")

// Provider is the external identity service. Verification yields the
// claims the profile is built from; email updates and account deletion
// must reach the identity store too.
type Provider interface {
	VerifyToken(ctx context.Context, token string) (*internal.User, error)
	UpdateEmail(ctx context.Context, uid, email string) error
	DeleteUser(ctx context.Context, uid string) error
}
