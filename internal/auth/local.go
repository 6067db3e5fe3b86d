package auth

import (
	"context"
	"errors"

	"github.com/dreamguard-id/DreamGuard/internal"
)

// LocalProvider accepts a single static token. Development only.
type LocalProvider struct {
	Token  string
	logger internal.Logger
}

func NewLocalProvider(token string, logger internal.Logger) *LocalProvider {
	return &LocalProvider{Token: token, logger: logger}
}

func (p *LocalProvider) VerifyToken(ctx context.Context, token string) (*internal.User, error) {
	if token == p.Token {
		return &internal.User{
			UID:   "local-dev-uid",
			Email: "dev@dreamguard.local",
			Name:  "Dev User",
		}, nil
	}
	p.logger.Warnf("invalid token")
	return nil, errors.New("auth: invalid token")
}

func (p *LocalProvider) UpdateEmail(ctx context.Context, uid, email string) error {
	p.logger.Debugf("local auth: email update for %s is a no-op", uid)
	return nil
}

func (p *LocalProvider) DeleteUser(ctx context.Context, uid string) error {
	p.logger.Debugf("local auth: user deletion for %s is a no-op", uid)
	return nil
}

var _ Provider = (*LocalProvider)(nil)
