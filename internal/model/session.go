package model

import (
	"bytes"
	"context"
	"encoding/json"
)

// Session is an opaque auth session payload. Only the auth provider that
// produced it knows its layout; everyone else stores and forwards it.
type Session struct {
	raw json.RawMessage
}

// NewSession wraps a provider-encoded payload.
func NewSession(raw []byte) *Session {
	return &Session{raw: bytes.Clone(raw)}
}

// Bytes returns a copy of the payload.
func (s *Session) Bytes() []byte {
	if s == nil {
		return nil
	}
	return bytes.Clone(s.raw)
}

// Equal reports whether both sessions carry the same payload.
func (s *Session) Equal(other *Session) bool {
	if s == nil || other == nil {
		return s == other
	}
	return bytes.Equal(s.raw, other.raw)
}

func (s Session) MarshalJSON() ([]byte, error) {
	if len(s.raw) == 0 {
		return []byte("null"), nil
	}
	return s.raw, nil
}

func (s *Session) UnmarshalJSON(data []byte) error {
	s.raw = bytes.Clone(data)
	return nil
}

// AuthEvent names a session change reported by the auth provider.
type AuthEvent string

const (
	AuthEventInitialSession AuthEvent = "INITIAL_SESSION"
	AuthEventSignedIn       AuthEvent = "SIGNED_IN"
	AuthEventSignedOut      AuthEvent = "SIGNED_OUT"
	AuthEventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// AuthListener receives session changes. A nil session means signed out.
type AuthListener func(event AuthEvent, session *Session, user *User)

// SessionProvider is the auth backend as seen by the client state.
type SessionProvider interface {
	GetSession(ctx context.Context) (*Session, *User, error)
	OnAuthStateChange(listener AuthListener) (unsubscribe func())
}
