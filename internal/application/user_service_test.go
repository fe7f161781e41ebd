package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/majesty-shop/internal/domain/entity"
	"github.com/oksasatya/majesty-shop/internal/infrastructure/kvstore"
	"github.com/oksasatya/majesty-shop/internal/infrastructure/memory"
)

const client = "client-1"

func newUserService() (*UserService, *memory.Storage) {
	storage := memory.NewStorage()
	svc := NewUserService(storage, nil, nil, "./index.html", 1500*time.Millisecond)
	svc.Now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600)) }
	return svc, storage
}

func validRegistration() RegistrationInput {
	return RegistrationInput{
		Name:           " Ana ",
		LastName:       "Lopez",
		Email:          " ana@mail.com ",
		Password:       "validpass1",
		RepeatPassword: "validpass1",
		TermsAccepted:  true,
	}
}

func TestRegister_Success(t *testing.T) {
	svc, storage := newUserService()
	ctx := context.Background()

	res, err := svc.Register(ctx, client, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "Registration successful! You can now log in.", res.Message)

	users, err := kvstore.NewUserRepository(storage.Scope(client), nil).List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	u := users[0]
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@mail.com", u.Email)
	assert.Equal(t, "validpass1", u.Password)
	assert.Equal(t, svc.Now().UnixMilli(), u.ID)
	assert.Equal(t, time.UTC, u.RegisteredAt.Location())
}

func TestRegister_CollectsAllViolations(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.Register(context.Background(), client, RegistrationInput{
		Name:           "   ",
		Email:          "bad-email",
		Password:       "short1",
		RepeatPassword: "other",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please fix the errors marked in the form.", verr.Message)
	assert.Equal(t, map[string]string{
		"name":           "is required",
		"lastName":       "is required",
		"email":          "must be a valid email",
		"password":       "must be between 8 and 20 characters long",
		"repeatPassword": "passwords do not match",
		"termsAccepted":  "must accept the terms and conditions",
	}, verr.Fields)
}

func TestRegister_DuplicateEmailFailsRegardlessOfPassword(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	_, err := svc.Register(ctx, client, validRegistration())
	require.NoError(t, err)

	for _, pwd := range []string{"validpass1", "x"} {
		in := validRegistration()
		in.Password, in.RepeatPassword = pwd, pwd

		_, err := svc.Register(ctx, client, in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "is already registered", verr.Fields["email"])
	}
}

func TestRegister_SameEmailOtherClientIsFree(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a", validRegistration())
	require.NoError(t, err)
	_, err = svc.Register(ctx, "b", validRegistration())
	assert.NoError(t, err)
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	_, err := svc.Register(ctx, client, validRegistration())
	require.NoError(t, err)

	res, err := svc.Login(ctx, client, LoginInput{Email: " ana@mail.com", Password: "validpass1"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome, Ana! Redirecting...", res.Message)
	assert.Equal(t, Redirect{URL: "./index.html", AfterMS: 1500}, res.Redirect)

	sess, err := svc.CurrentSession(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, entity.Session{ID: svc.Now().UnixMilli(), Name: "Ana", Email: "ana@mail.com"}, *sess)
}

func TestLogin_WrongPasswordFlagsBothFields(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	_, err := svc.Register(ctx, client, validRegistration())
	require.NoError(t, err)

	_, err = svc.Login(ctx, client, LoginInput{Email: "ana@mail.com", Password: "wrongpass"})

	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, map[string]string{"email": "Incorrect credentials.", "password": "Incorrect credentials."}, aerr.Fields)

	_, err = svc.CurrentSession(ctx, client)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.Login(context.Background(), client, LoginInput{Email: "  "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please enter your email and password.", verr.Message)
	assert.Equal(t, map[string]string{"email": "is required", "password": "is required"}, verr.Fields)
}

func TestLogin_CorruptUserListMeansNoMatch(t *testing.T) {
	svc, storage := newUserService()
	ctx := context.Background()
	require.NoError(t, storage.Scope(client).Set(ctx, kvstore.KeyUsers, "[{broken"))

	_, err := svc.Login(ctx, client, LoginInput{Email: "ana@mail.com", Password: "validpass1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
