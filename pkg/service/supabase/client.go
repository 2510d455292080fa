package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/interfaces"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/utils/safe"
)

const (
	userPath = "/auth/v1/user"
	jwksPath = "/auth/v1/.well-known/jwks.json"

	acceptableSkew = 10 * time.Second
)

var (
	ErrInvalidSession = goerr.New("invalid supabase session")
)

// Client verifies Supabase access tokens and resolves the session user
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	verifyJWKS bool
}

var _ interfaces.SessionVerifier = &Client{}

// Option is a functional option for Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for Supabase requests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithJWKSVerification verifies the access token signature against the project JWKS
// before asking Supabase for the user
func WithJWKSVerification() Option {
	return func(c *Client) {
		c.verifyJWKS = true
	}
}

// New creates a new Supabase client for the project at baseURL
func New(baseURL, anonKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("Supabase URL is required")
	}
	if anonKey == "" {
		return nil, goerr.New("Supabase anon key is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetUser returns the user owning accessToken. An empty token yields no user and no error.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, nil
	}

	if c.verifyJWKS {
		if err := c.verifyToken(ctx, accessToken); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+userPath, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call Supabase auth API")
	}
	defer safe.Close(ctx, resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, goerr.Wrap(ErrInvalidSession, "Supabase rejected access token", goerr.V("status", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, goerr.New("Supabase auth API returned error", goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response")
	}

	var user model.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, goerr.Wrap(err, "failed to parse Supabase user")
	}
	if user.ID == "" {
		return nil, goerr.Wrap(ErrInvalidSession, "Supabase user has no id")
	}

	return &user, nil
}

// verifyToken checks signature and expiry of accessToken with the project's public keys
func (c *Client) verifyToken(ctx context.Context, accessToken string) error {
	jwksURL := c.baseURL + jwksPath
	keySet, err := jwk.Fetch(ctx, jwksURL, jwk.WithHTTPClient(c.httpClient))
	if err != nil {
		return goerr.Wrap(err, "failed to fetch Supabase public keys", goerr.V("jwks_url", jwksURL))
	}

	if _, err := jwt.Parse([]byte(accessToken),
		jwt.WithKeySet(keySet),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(acceptableSkew),
	); err != nil {
		return goerr.Wrap(ErrInvalidSession, "failed to verify access token", goerr.V("error", err.Error()))
	}

	return nil
}
