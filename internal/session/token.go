package session

import (
	"context"

	"github.com/planbookai/planbook/internal/kvstore"
)

// tokenKey is the storage key holding the bearer token.
const tokenKey = "token"

// TokenStore persists the bearer token in the local key-value storage.
// It implements api.TokenSource.
type TokenStore struct {
	kv kvstore.KV
}

// NewTokenStore binds token persistence to the given storage.
func NewTokenStore(kv kvstore.KV) *TokenStore {
	return &TokenStore{kv: kv}
}

// Token returns the stored bearer token, ok=false when absent.
func (t *TokenStore) Token(ctx context.Context) (string, bool) {
	raw, ok, err := t.kv.Get(ctx, kvstore.Key(tokenKey))
	if err != nil || !ok || len(raw) == 0 {
		return "", false
	}
	return string(raw), true
}

// Set stores the bearer token.
func (t *TokenStore) Set(ctx context.Context, token string) error {
	return t.kv.Set(ctx, kvstore.Key(tokenKey), []byte(token))
}

// Clear removes the bearer token.
func (t *TokenStore) Clear(ctx context.Context) error {
	return t.kv.Delete(ctx, kvstore.Key(tokenKey))
}
