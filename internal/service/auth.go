package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

var _ model.SessionProvider = (*Auth)(nil)

// SignUpParams is the registration form.
type SignUpParams struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Phone     string `json:"phone" validate:"max=32"`
}

// SessionPayload is the layout of the session this provider hands out.
// ExpiresAt is unix seconds of the access token expiry.
type SessionPayload struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	ExpiresAt    int64      `json:"expires_at"`
	User         model.User `json:"user"`
}

// DecodeSession unpacks a session produced by Auth.
func DecodeSession(s *model.Session) (SessionPayload, error) {
	var p SessionPayload
	if s == nil {
		return p, model.ErrAuthRequired
	}
	if err := json.Unmarshal(s.Bytes(), &p); err != nil {
		return p, fmt.Errorf("failed to decode session: %w", err)
	}
	if p.AccessToken == "" || p.User.ID == uuid.Nil {
		return p, fmt.Errorf("%w: incomplete session", model.ErrAuthRequired)
	}
	return p, nil
}

func encodeSession(p SessionPayload) (*model.Session, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return model.NewSession(data), nil
}

// Auth is the session provider for one storefront client. It authenticates
// against the users table, keeps the current session and reports changes to
// registered listeners.
type Auth struct {
	users        model.UserStore
	tokenService *TokenService
	validate     *validator.Validate
	logger       *logger.Logger
	now          func() time.Time

	mu      sync.Mutex
	current *SessionPayload

	listenersMu sync.Mutex
	listeners   map[uint64]model.AuthListener
	nextID      uint64
}

func NewAuth(users model.UserStore, tokenService *TokenService, validate *validator.Validate, logger *logger.Logger) *Auth {
	return &Auth{
		users:        users,
		tokenService: tokenService,
		validate:     validate,
		logger:       logger,
		now:          time.Now,
		listeners:    make(map[uint64]model.AuthListener),
	}
}

func (a *Auth) SignUp(ctx context.Context, params SignUpParams) (*model.User, error) {
	params.Email = normalizeEmail(params.Email)
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	if err := a.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidInput, err.Error())
	}

	_, err := a.users.GetByEmail(ctx, params.Email)
	switch {
	case err == nil:
		a.logger.Info("Auth service: user already exists",
			"email", params.Email)
		return nil, model.ErrEmailTaken
	case !errors.Is(err, model.ErrNotFound):
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now()
	account, err := a.users.Create(ctx, model.Account{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		Phone:        strings.TrimSpace(params.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"user_id", account.ID)

	return a.startSession(ctx, account)
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	account, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: unknown email on login",
				"email", email)
			return nil, model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		a.logger.Info("Auth service: password mismatch",
			"user_id", account.ID)
		return nil, model.ErrInvalidCredentials
	}

	return a.startSession(ctx, account)
}

// SignOut revokes the current refresh token and drops the session. Signing
// out without a session is a no-op.
func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	current := a.current
	a.current = nil
	a.mu.Unlock()

	if current == nil {
		return nil
	}

	if err := a.tokenService.RevokeByToken(ctx, current.RefreshToken); err != nil {
		a.logger.Error("Auth service: failed to revoke refresh token",
			"user_id", current.User.ID,
			"error", err.Error())
	}

	a.logger.Info("Auth service: user signed out",
		"user_id", current.User.ID)
	a.emit(model.AuthEventSignedOut, nil, nil)
	return nil
}

// Refresh rotates the current session's tokens. If the session is signed
// out or replaced while rotating, the new pair is revoked and
// ErrAuthRequired is returned.
func (a *Auth) Refresh(ctx context.Context) error {
	a.mu.Lock()
	current := a.current
	a.mu.Unlock()

	if current == nil {
		return model.ErrAuthRequired
	}

	_, pair, err := a.tokenService.Refresh(ctx, current.RefreshToken)
	if err != nil {
		a.logger.Error("Auth service: failed to refresh session",
			"user_id", current.User.ID,
			"error", err.Error())
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	next := sessionFromPair(pair, current.User)
	session, err := encodeSession(next)
	if err != nil {
		return err
	}

	a.mu.Lock()
	if a.current == nil || a.current.RefreshToken != current.RefreshToken {
		a.mu.Unlock()
		a.logger.Info("Auth service: session changed during refresh, discarding new tokens",
			"user_id", current.User.ID)
		if err := a.tokenService.RevokeByToken(ctx, pair.RefreshToken); err != nil {
			a.logger.Error("Auth service: failed to revoke discarded refresh token",
				"user_id", current.User.ID,
				"error", err.Error())
		}
		return model.ErrAuthRequired
	}
	a.current = &next
	a.mu.Unlock()

	user := next.User
	a.emit(model.AuthEventTokenRefreshed, session, &user)
	return nil
}

// Restore adopts a previously persisted session. An access token that no
// longer parses is refreshed once; if that fails the session is dropped.
func (a *Auth) Restore(ctx context.Context, s *model.Session) bool {
	if s == nil {
		return false
	}

	p, err := DecodeSession(s)
	if err != nil {
		a.logger.Info("Auth service: ignoring unreadable session",
			"error", err.Error())
		return false
	}

	if _, err := a.tokenService.GetUserID(ctx, p.AccessToken); err == nil {
		a.mu.Lock()
		a.current = &p
		a.mu.Unlock()
		return true
	}

	_, pair, err := a.tokenService.Refresh(ctx, p.RefreshToken)
	if err != nil {
		a.logger.Info("Auth service: persisted session expired",
			"user_id", p.User.ID,
			"error", err.Error())
		return false
	}

	next := sessionFromPair(pair, p.User)
	a.mu.Lock()
	a.current = &next
	a.mu.Unlock()
	return true
}

func (a *Auth) GetSession(_ context.Context) (*model.Session, *model.User, error) {
	a.mu.Lock()
	current := a.current
	a.mu.Unlock()

	if current == nil {
		return nil, nil, nil
	}

	session, err := encodeSession(*current)
	if err != nil {
		return nil, nil, err
	}
	user := current.User
	return session, &user, nil
}

// OnAuthStateChange registers listener for session changes.
func (a *Auth) OnAuthStateChange(listener model.AuthListener) func() {
	a.listenersMu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = listener
	a.listenersMu.Unlock()

	return func() {
		a.listenersMu.Lock()
		delete(a.listeners, id)
		a.listenersMu.Unlock()
	}
}

// UserFromToken resolves the user an access token was issued to.
func (a *Auth) UserFromToken(ctx context.Context, accessToken string) (*model.User, error) {
	userID, err := a.tokenService.GetUserID(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrAuthRequired, err.Error())
	}

	account, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrAuthRequired
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	user := model.UserFromAccount(account)
	return &user, nil
}

func (a *Auth) startSession(ctx context.Context, account model.Account) (*model.User, error) {
	pair, err := a.tokenService.Issue(ctx, account.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"user_id", account.ID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	next := sessionFromPair(pair, model.UserFromAccount(account))
	session, err := encodeSession(next)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.current = &next
	a.mu.Unlock()

	a.logger.Info("Auth service: user signed in",
		"user_id", account.ID)

	user := next.User
	a.emit(model.AuthEventSignedIn, session, &user)
	return &user, nil
}

func (a *Auth) emit(event model.AuthEvent, session *model.Session, user *model.User) {
	a.listenersMu.Lock()
	listeners := make([]model.AuthListener, 0, len(a.listeners))
	for _, l := range a.listeners {
		listeners = append(listeners, l)
	}
	a.listenersMu.Unlock()

	for _, l := range listeners {
		l(event, session, user)
	}
}

func sessionFromPair(pair model.TokenPair, user model.User) SessionPayload {
	return SessionPayload{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresAt:    pair.ExpiresAt.Unix(),
		User:         user,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
