package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Scope is the only scope the proxy ever requests.
const Scope = sheetsv4.SpreadsheetsReadonlyScope

type Client struct {
	srv     *sheetsv4.Service
	account string
	tokens  oauth2.TokenSource
}

// New loads a service account key from serviceAccountJSONPath and builds a read-only client.
func New(ctx context.Context, serviceAccountJSONPath string) (*Client, error) {
	b, err := os.ReadFile(serviceAccountJSONPath)
	if err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	jwt, err := google.JWTConfigFromJSON(b, Scope)
	if err != nil {
		return nil, fmt.Errorf("parse service account json: %w", err)
	}
	srv, err := sheetsv4.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{srv: srv, account: jwt.Email, tokens: jwt.TokenSource(ctx)}, nil
}

// NewWithService wraps an already constructed service.
func NewWithService(srv *sheetsv4.Service, account string) *Client {
	return &Client{srv: srv, account: account}
}

// Account is the service account e-mail the client authenticates as.
func (c *Client) Account() string { return c.account }

// Verify fetches one access token so a key rejected by Google is caught before the first request.
func (c *Client) Verify() error {
	if c.tokens == nil {
		return nil
	}
	if _, err := c.tokens.Token(); err != nil {
		return fmt.Errorf("verify credentials: %w", err)
	}
	return nil
}
