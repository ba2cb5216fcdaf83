package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/storefront/internal/mocks"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/testutil"
	"github.com/dtroode/storefront/internal/token"
)

type authEvent struct {
	event   model.AuthEvent
	session *model.Session
	user    *model.User
}

type authRecorder struct {
	mu     sync.Mutex
	events []authEvent
}

func (r *authRecorder) listen(event model.AuthEvent, session *model.Session, user *model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, authEvent{event: event, session: session, user: user})
}

func (r *authRecorder) all() []authEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]authEvent(nil), r.events...)
}

func newTestAuth(t *testing.T) (*Auth, *mocks.UserStore, *mocks.RefreshTokenStore) {
	t.Helper()
	users := &mocks.UserStore{}
	refresh := &mocks.RefreshTokenStore{}
	tokens := NewTokenService(token.NewJWT("test-secret"), refresh, token.DefaultRefreshTTL, testutil.MakeNoopLogger())
	return NewAuth(users, tokens, validator.New(), testutil.MakeNoopLogger()), users, refresh
}

func testAccount(t *testing.T, password string) model.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return model.Account{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: hash,
		FirstName:    "Ada",
		LastName:     "Lovelace",
	}
}

func TestAuth_SignUp(t *testing.T) {
	ctx := context.Background()
	a, users, refresh := newTestAuth(t)
	rec := &authRecorder{}
	a.OnAuthStateChange(rec.listen)

	users.On("GetByEmail", ctx, "ada@example.com").Return(model.Account{}, model.ErrNotFound).Once()
	users.On("Create", ctx, mock.MatchedBy(func(acc model.Account) bool {
		return acc.Email == "ada@example.com" &&
			bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte("s3cret!")) == nil
	})).Return(func(_ context.Context, acc model.Account) model.Account { return acc }, nil).Once()
	refresh.On("Create", ctx, mock.Anything).Return(nil).Once()

	user, err := a.SignUp(ctx, SignUpParams{Email: " Ada@Example.com ", Password: "s3cret!", FirstName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.FirstName)

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, model.AuthEventSignedIn, events[0].event)
	require.NotNil(t, events[0].session)

	payload, err := DecodeSession(events[0].session)
	require.NoError(t, err)
	assert.Equal(t, user.ID, payload.User.ID)
	assert.Equal(t, "bearer", payload.TokenType)
	assert.NotEmpty(t, payload.RefreshToken)
	users.AssertExpectations(t)
}

func TestAuth_SignUp_Rejected(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid input", func(t *testing.T) {
		a, users, _ := newTestAuth(t)
		_, err := a.SignUp(ctx, SignUpParams{Email: "not-an-email", Password: "123"})
		require.ErrorIs(t, err, model.ErrInvalidInput)
		users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		a, users, _ := newTestAuth(t)
		users.On("GetByEmail", ctx, "ada@example.com").Return(model.Account{ID: uuid.New()}, nil).Once()

		_, err := a.SignUp(ctx, SignUpParams{Email: "ada@example.com", Password: "s3cret!"})
		require.ErrorIs(t, err, model.ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure", func(t *testing.T) {
		a, users, _ := newTestAuth(t)
		users.On("GetByEmail", ctx, "ada@example.com").Return(model.Account{}, assert.AnError).Once()

		_, err := a.SignUp(ctx, SignUpParams{Email: "ada@example.com", Password: "s3cret!"})
		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestAuth_SignIn(t *testing.T) {
	ctx := context.Background()
	account := testAccount(t, "s3cret!")

	t.Run("success", func(t *testing.T) {
		a, users, refresh := newTestAuth(t)
		users.On("GetByEmail", ctx, "ada@example.com").Return(account, nil).Once()
		refresh.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, err := a.SignIn(ctx, "ada@example.com", "s3cret!")
		require.NoError(t, err)
		assert.Equal(t, account.ID, user.ID)

		session, current, err := a.GetSession(ctx)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, account.ID, current.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		a, users, _ := newTestAuth(t)
		users.On("GetByEmail", ctx, "ada@example.com").Return(account, nil).Once()

		_, err := a.SignIn(ctx, "ada@example.com", "nope")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)

		session, user, err := a.GetSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Nil(t, user)
	})

	t.Run("unknown email", func(t *testing.T) {
		a, users, _ := newTestAuth(t)
		users.On("GetByEmail", ctx, "who@example.com").Return(model.Account{}, model.ErrNotFound).Once()

		_, err := a.SignIn(ctx, "who@example.com", "s3cret!")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}

func TestAuth_SignOut(t *testing.T) {
	ctx := context.Background()
	account := testAccount(t, "s3cret!")
	a, users, refresh := newTestAuth(t)
	rec := &authRecorder{}

	users.On("GetByEmail", ctx, account.Email).Return(account, nil).Once()
	refresh.On("Create", ctx, mock.Anything).Return(nil).Once()
	refresh.On("RevokeByJTI", ctx, mock.AnythingOfType("string")).Return(nil).Once()

	_, err := a.SignIn(ctx, account.Email, "s3cret!")
	require.NoError(t, err)

	unsubscribe := a.OnAuthStateChange(rec.listen)
	require.NoError(t, a.SignOut(ctx))

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, model.AuthEventSignedOut, events[0].event)
	assert.Nil(t, events[0].session)
	assert.Nil(t, events[0].user)

	unsubscribe()
	unsubscribe()
	require.NoError(t, a.SignOut(ctx))
	assert.Len(t, rec.all(), 1)
	refresh.AssertExpectations(t)
}

func TestAuth_Refresh(t *testing.T) {
	ctx := context.Background()
	account := testAccount(t, "s3cret!")
	a, users, refresh := newTestAuth(t)
	rec := &authRecorder{}

	require.ErrorIs(t, a.Refresh(ctx), model.ErrAuthRequired)

	var stored model.RefreshToken
	users.On("GetByEmail", ctx, account.Email).Return(account, nil).Once()
	refresh.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(model.RefreshToken)
	}).Return(nil).Twice()
	refresh.On("GetByJTI", ctx, mock.AnythingOfType("string")).Return(func(context.Context, string) model.RefreshToken {
		return stored
	}, nil).Once()
	refresh.On("RevokeByJTI", ctx, mock.AnythingOfType("string")).Return(nil).Once()

	_, err := a.SignIn(ctx, account.Email, "s3cret!")
	require.NoError(t, err)
	before, _, err := a.GetSession(ctx)
	require.NoError(t, err)

	a.OnAuthStateChange(rec.listen)
	require.NoError(t, a.Refresh(ctx))

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, model.AuthEventTokenRefreshed, events[0].event)
	assert.False(t, before.Equal(events[0].session))
	assert.Equal(t, account.ID, events[0].user.ID)
	refresh.AssertExpectations(t)
}

func TestAuth_RefreshLosesToConcurrentSignOut(t *testing.T) {
	ctx := context.Background()
	account := testAccount(t, "s3cret!")
	a, users, refresh := newTestAuth(t)
	rec := &authRecorder{}

	var (
		stored  model.RefreshToken
		creates int
	)
	users.On("GetByEmail", ctx, account.Email).Return(account, nil).Once()
	refresh.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		creates++
		if creates == 1 {
			stored = args.Get(1).(model.RefreshToken)
			return
		}
		require.NoError(t, a.SignOut(ctx))
	}).Return(nil).Twice()
	refresh.On("GetByJTI", ctx, mock.AnythingOfType("string")).Return(func(context.Context, string) model.RefreshToken {
		return stored
	}, nil).Once()
	// rotation, sign-out, and the discarded pair
	refresh.On("RevokeByJTI", ctx, mock.AnythingOfType("string")).Return(nil).Times(3)

	_, err := a.SignIn(ctx, account.Email, "s3cret!")
	require.NoError(t, err)

	a.OnAuthStateChange(rec.listen)
	require.ErrorIs(t, a.Refresh(ctx), model.ErrAuthRequired)

	session, user, err := a.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Nil(t, user)

	events := rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, model.AuthEventSignedOut, events[0].event)
	refresh.AssertExpectations(t)
}

func TestAuth_Restore(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "ada@example.com"}

	t.Run("valid access token", func(t *testing.T) {
		a, _, _ := newTestAuth(t)
		access, expiresAt, err := token.NewJWT("test-secret").GenerateAccessToken(user.ID)
		require.NoError(t, err)
		session, err := encodeSession(SessionPayload{AccessToken: access, RefreshToken: "r", ExpiresAt: expiresAt.Unix(), User: user})
		require.NoError(t, err)

		require.True(t, a.Restore(ctx, session))
		got, gotUser, err := a.GetSession(ctx)
		require.NoError(t, err)
		assert.True(t, session.Equal(got))
		assert.Equal(t, user.ID, gotUser.ID)
	})

	t.Run("unreadable", func(t *testing.T) {
		a, _, _ := newTestAuth(t)
		assert.False(t, a.Restore(ctx, nil))
		assert.False(t, a.Restore(ctx, model.NewSession([]byte(`{"access_token":""}`))))
	})

	t.Run("expired and refresh rejected", func(t *testing.T) {
		a, _, _ := newTestAuth(t)
		session, err := encodeSession(SessionPayload{AccessToken: "garbage", RefreshToken: "garbage", User: user})
		require.NoError(t, err)

		assert.False(t, a.Restore(ctx, session))
		got, _, err := a.GetSession(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestAuth_UserFromToken(t *testing.T) {
	ctx := context.Background()
	account := testAccount(t, "pw-123456")
	a, users, _ := newTestAuth(t)

	access, _, err := token.NewJWT("test-secret").GenerateAccessToken(account.ID)
	require.NoError(t, err)
	users.On("GetByID", ctx, account.ID).Return(account, nil).Once()

	user, err := a.UserFromToken(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, account.Email, user.Email)

	_, err = a.UserFromToken(ctx, "bogus")
	require.ErrorIs(t, err, model.ErrAuthRequired)

	expired := token.NewJWT("test-secret", token.WithAccessTTL(time.Nanosecond))
	stale, _, err := expired.GenerateAccessToken(account.ID)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = a.UserFromToken(ctx, stale)
	require.ErrorIs(t, err, model.ErrAuthRequired)
}
