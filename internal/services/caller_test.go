package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/teachflow/internal/models"
)

func TestCallerFromUserResolvesLocationAndCurrency(t *testing.T) {
	caller := CallerFromUser(models.User{ID: "u1", Timezone: "America/Sao_Paulo", DefaultCurrency: "USD"})
	require.Equal(t, "America/Sao_Paulo", caller.Location().String())
	require.Equal(t, "USD", caller.DefaultCurrency())

	fallback := CallerFromUser(models.User{ID: "u2", Timezone: "Mars/Olympus"})
	require.Equal(t, time.UTC, fallback.Location())
	require.Equal(t, models.DefaultCurrency, fallback.DefaultCurrency())

	require.Equal(t, time.UTC, Caller{}.Location())
	require.ErrorIs(t, requireCaller(Caller{}), ErrUnauthenticated)
}
