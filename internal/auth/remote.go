package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dreamguard-id/DreamGuard/internal"
)

// RemoteProvider talks to the identity service over HTTP JSON.
type RemoteProvider struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     internal.Logger
}

func NewRemoteProvider(baseURL string, logger internal.Logger) *RemoteProvider {
	return &RemoteProvider{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Expired bool   `json:"expired,omitempty"`
}

func (p *RemoteProvider) VerifyToken(ctx context.Context, token string) (*internal.User, error) {
	body, err := json.Marshal(verifyRequest{Token: token})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/verify", bytes.NewReader(body))
	if err != nil {
		p.logger.Errorf("failed to create verify request: %v", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		p.logger.Errorf("failed to call auth service: %v", err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var out verifyResponse
		_ = json.NewDecoder(resp.Body).Decode(&out)
		if out.Expired {
			return nil, ErrTokenExpired
		}
		p.logger.Warnf("auth service rejected token with %d", resp.StatusCode)
		return nil, errors.New("auth: token rejected")
	}
	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		p.logger.Errorf("failed to decode auth response: %v", err)
		return nil, err
	}
	return &internal.User{UID: out.UID, Email: out.Email, Name: out.Name}, nil
}

func (p *RemoteProvider) UpdateEmail(ctx context.Context, uid, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/users/%s/email", p.BaseURL, uid)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		p.logger.Errorf("failed to update email at auth service: %v", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		p.logger.Errorf("auth service email update returned %d", resp.StatusCode)
		return fmt.Errorf("auth: email update returned %d", resp.StatusCode)
	}
	return nil
}

func (p *RemoteProvider) DeleteUser(ctx context.Context, uid string) error {
	url := fmt.Sprintf("%s/users/%s", p.BaseURL, uid)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		p.logger.Errorf("failed to delete user at auth service: %v", err)
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		p.logger.Errorf("auth service user deletion returned %d", resp.StatusCode)
		return fmt.Errorf("auth: user deletion returned %d", resp.StatusCode)
	}
	return nil
}

var _ Provider = (*RemoteProvider)(nil)
