package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electronics-store/internal/dto"
	"electronics-store/internal/model"
)

func validRegistration() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:           "Иван",
		Surname:        "Петров",
		Patronymic:     "Сергеевич",
		Login:          "john-doe",
		Email:          "john@example.com",
		Password:       "secret1",
		PasswordRepeat: "secret1",
		Rules:          true,
	}
}

func TestRegister_CreatesUserWithProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.account.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	require.NotNil(t, user.Profile.Patronymic)
	assert.Equal(t, "Сергеевич", *user.Profile.Patronymic)

	// Profile row is persisted alongside the account.
	assert.EqualValues(t, 1, env.countRows(t, &model.User{}))
	assert.EqualValues(t, 1, env.countRows(t, &model.UserProfile{}))
}

func TestRegister_LoginCharset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := validRegistration()
	req.Login = "john_doe!"
	_, err := env.account.Register(ctx, req)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "login")

	req = validRegistration()
	req.Login = "john-doe"
	_, err = env.account.Register(ctx, req)
	assert.NoError(t, err)
}

func TestRegister_AggregatesAllErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.account.Register(ctx, &dto.RegisterRequest{
		Name:           "John", // Latin letters in a Cyrillic field
		Surname:        "",
		Login:          "bad login",
		Email:          "not-an-email",
		Password:       "short",
		PasswordRepeat: "different",
		Rules:          false,
	})

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	for _, field := range []string{"name", "surname", "login", "email", "password", "password_repeat", "rules"} {
		assert.Contains(t, errs, field)
	}
}

func TestRegister_RejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.account.Register(ctx, validRegistration())
	require.NoError(t, err)

	req := validRegistration()
	req.Email = "another@example.com"
	_, err = env.account.Register(ctx, req)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "login")

	req = validRegistration()
	req.Login = "another-login"
	_, err = env.account.Register(ctx, req)
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "email")
}

func TestAuthenticate_GenericFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "buyer", "secret1")

	// Unknown login and wrong password are indistinguishable.
	_, err := env.account.Authenticate(ctx, "nobody", "secret1", "10.0.0.1", "ua")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.account.Authenticate(ctx, "buyer", "wrong", "10.0.0.1", "ua")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_WritesAuditRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "buyer", "secret1")

	result, err := env.account.Authenticate(ctx, "buyer", "secret1", "203.0.113.7", "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.SessionKey)

	var session model.UserSession
	require.NoError(t, env.db.Where("user_id = ?", user.ID).First(&session).Error)
	assert.Equal(t, result.SessionKey, session.SessionKey)
	assert.Equal(t, "203.0.113.7", session.IPAddress)
	assert.Equal(t, "test-agent", session.UserAgent)
	assert.True(t, session.IsActive)
}

func TestLogout_DeactivatesSessionAndDropsCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "buyer", "secret1")
	p := env.createProduct(t, "hp-laser", "100.00", 5)

	result, err := env.account.Authenticate(ctx, "buyer", "secret1", "10.0.0.1", "ua")
	require.NoError(t, err)

	_, err = env.cart.Add(ctx, result.SessionKey, user.ID, p.ID, 2)
	require.NoError(t, err)

	require.NoError(t, env.account.Logout(ctx, user.ID, result.SessionKey))

	var session model.UserSession
	require.NoError(t, env.db.Where("user_id = ?", user.ID).First(&session).Error)
	assert.False(t, session.IsActive)

	// The audit row survives; the cart does not.
	assert.EqualValues(t, 1, env.countRows(t, &model.UserSession{}))
	assert.EqualValues(t, 0, env.countRows(t, &model.Cart{}))
	assert.EqualValues(t, 0, env.countRows(t, &model.CartItem{}))
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "buyer", "secret1")

	err := env.account.UpdateProfile(ctx, user.ID, &dto.ProfileUpdateRequest{
		FirstName:  "Пётр",
		LastName:   "Иванов",
		Patronymic: "Олегович",
		Phone:      "+7 900 000-00-00",
		Address:    "Москва",
	})
	require.NoError(t, err)

	updated, err := env.account.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Пётр", updated.FirstName)
	require.NotNil(t, updated.Profile.Phone)
	assert.Equal(t, "+7 900 000-00-00", *updated.Profile.Phone)

	err = env.account.UpdateProfile(ctx, user.ID, &dto.ProfileUpdateRequest{})
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "last_name")
}

func TestActiveSessions_CapsAtFive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "buyer", "secret1")
	for i := 0; i < 7; i++ {
		_, err := env.account.Authenticate(ctx, "buyer", "secret1", "10.0.0.1", "ua")
		require.NoError(t, err)
	}

	sessions, err := env.account.ActiveSessions(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 5)
}
