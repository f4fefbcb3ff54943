package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"

	"kambaz_api/internal/domain/model"
)

const tokenSize = 16

// Registry maps session tokens to the user snapshot taken at sign-in.
// Entries live until Delete or process exit; there is no TTL.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]model.SessionUser
	newToken func() (string, error)
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]model.SessionUser),
		newToken: randomToken,
	}
}

// NewRegistryWithTokens lets tests control token generation.
func NewRegistryWithTokens(newToken func() (string, error)) *Registry {
	r := NewRegistry()
	r.newToken = newToken
	return r
}

// Create stores snapshot under a fresh token. userID is recorded as the
// snapshot identifier when the snapshot lacks one.
func (r *Registry) Create(userID string, snapshot model.SessionUser) (string, error) {
	if snapshot.ID == "" {
		snapshot.ID = userID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	token, err := r.newToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	if _, taken := r.sessions[token]; taken {
		return "", fmt.Errorf("generate session token: collision on %q", token)
	}
	r.sessions[token] = snapshot
	return token, nil
}

func (r *Registry) Get(token string) (model.SessionUser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.sessions[token]
	return user, ok
}

// Delete removes token. Unknown tokens are ignored.
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// randomToken returns 128 bits from crypto/rand, base64url without padding.
func randomToken() (string, error) {
	var b [tokenSize]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}
