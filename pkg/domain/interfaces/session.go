package interfaces

import (
	"context"

	"github.com/secmon-lab/scribe/pkg/domain/model"
)

// SessionVerifier resolves the user that owns an access token
type SessionVerifier interface {
	// GetUser returns the authenticated user, or nil if the token does not identify one
	GetUser(ctx context.Context, accessToken string) (*model.User, error)
}
