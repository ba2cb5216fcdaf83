package service

import (
	"context"
	"fmt"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

// SessionState receives session changes.
type SessionState interface {
	SetSession(session *model.Session)
	SetUser(user *model.User)
}

// SessionSync mirrors the auth provider's session into the client state.
type SessionSync struct {
	provider model.SessionProvider
	state    SessionState
	logger   *logger.Logger
}

func NewSessionSync(provider model.SessionProvider, state SessionState, logger *logger.Logger) *SessionSync {
	return &SessionSync{
		provider: provider,
		state:    state,
		logger:   logger,
	}
}

// Start applies the provider's current session once and then follows its
// changes until the returned stop func is called.
func (s *SessionSync) Start(ctx context.Context) (stop func(), err error) {
	session, user, err := s.provider.GetSession(ctx)
	if err != nil {
		s.logger.Error("Session sync: failed to get initial session",
			"error", err.Error())
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	s.apply(model.AuthEventInitialSession, session, user)

	return s.provider.OnAuthStateChange(s.apply), nil
}

func (s *SessionSync) apply(event model.AuthEvent, session *model.Session, user *model.User) {
	if session == nil {
		user = nil
	}
	s.logger.Debug("Session sync: auth state changed",
		"event", event,
		"signed_in", session != nil)

	s.state.SetSession(session)
	s.state.SetUser(user)
}
