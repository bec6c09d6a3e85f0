package tokenstore

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"
)

var ErrNotFound = errors.New("token not found or expired")

// Store keeps short-lived string values keyed by token hash.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

const (
	PrefixRefresh = "refresh:"
	PrefixReset   = "reset:"
	PrefixRevoked = "revoked:"
)

// HashToken hashes the input string using SHA256 and encodes the result in base64.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// Key builds a store key from a prefix and a raw token.
func Key(prefix, token string) string {
	return prefix + HashToken(token)
}
