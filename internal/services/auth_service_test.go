package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(RegistrationInput{
		Email:    " New@Example.com ",
		Password: "StrongPass1",
		Name:     "New Teacher",
	})
	require.NoError(t, err)
	require.Equal(t, "new@example.com", user.Email)
	require.Equal(t, "America/Sao_Paulo", user.Timezone)
	require.Equal(t, "BRL", user.DefaultCurrency)
	require.NotEqual(t, "StrongPass1", user.PasswordHash)

	_, err = env.auth.Register(RegistrationInput{Email: "new@example.com", Password: "StrongPass1", Name: "Again"})
	require.ErrorIs(t, err, ErrEmailTaken)
	require.ErrorIs(t, err, ErrInUse)

	_, err = env.auth.Register(RegistrationInput{Email: "weak@example.com", Password: "weak", Name: "Weak"})
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = env.auth.Register(RegistrationInput{Email: "tz@example.com", Password: "StrongPass1", Name: "Tz", Timezone: "Mars/Olympus"})
	require.ErrorIs(t, err, ErrValidation)

	authenticated, err := env.auth.Authenticate("NEW@example.com", "StrongPass1")
	require.NoError(t, err)
	require.Equal(t, user.ID, authenticated.ID)

	_, err = env.auth.Authenticate("new@example.com", "WrongPass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = env.auth.Authenticate("nobody@example.com", "StrongPass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	resolved, err := env.auth.ResolveUser(user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, resolved.Email)

	_, err = env.auth.ResolveUser("missing")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestProfileUpdate(t *testing.T) {
	env := newTestEnv(t)

	updated, err := env.profile.Update(env.owner, ProfileInput{
		Name:            "Renamed",
		PhoneNumber:     " +55 11 99999-0000 ",
		Timezone:        "Europe/Lisbon",
		DefaultCurrency: "eur",
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, "+55 11 99999-0000", updated.PhoneNumber)
	require.Equal(t, "Europe/Lisbon", updated.Timezone)
	require.Equal(t, "EUR", updated.DefaultCurrency)

	_, err = env.profile.Update(env.owner, ProfileInput{Name: "Renamed", Timezone: "Nowhere/City"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.profile.Update(Caller{}, ProfileInput{Name: "Anonymous"})
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestPublicMessageHidesPersistenceDetails(t *testing.T) {
	err := persistence("create class", errSQL)
	require.ErrorIs(t, err, ErrPersistence)
	require.Equal(t, "internal server error", PublicMessage(err))
	require.Equal(t, "class not found", PublicMessage(notFound("class not found")))
	require.Equal(t, "unauthorized", PublicMessage(ErrUnauthenticated))
}

var errSQL = sqlError("UNIQUE constraint failed: users.email")

type sqlError string

func (err sqlError) Error() string {
	return string(err)
}
