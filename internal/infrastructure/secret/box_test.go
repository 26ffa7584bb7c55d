package secret_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisZev/wildberries-bot/internal/infrastructure/secret"
)

func TestBox_SealOpen(t *testing.T) {
	box, err := secret.NewBox("frase-de-prueba")
	require.NoError(t, err)

	sealed, err := box.Seal("wb-token-123")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "wb-token-123")

	plain, err := box.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "wb-token-123", plain)
}

func TestBox_NonceDiffersPerSeal(t *testing.T) {
	box, err := secret.NewBox("k")
	require.NoError(t, err)
	a, _ := box.Seal("x")
	b, _ := box.Seal("x")
	assert.NotEqual(t, a, b)
}

func TestBox_WrongKey(t *testing.T) {
	a, _ := secret.NewBox("uno")
	b, _ := secret.NewBox("dos")
	sealed, err := a.Seal("token")
	require.NoError(t, err)

	_, err = b.Open(sealed)
	assert.ErrorIs(t, err, secret.ErrInvalidCiphertext)

	_, err = a.Open("no-es-base64!")
	assert.ErrorIs(t, err, secret.ErrInvalidCiphertext)
}

func TestNewBox_EmptyPassphrase(t *testing.T) {
	_, err := secret.NewBox("")
	assert.Error(t, err)
}
