package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.True(t, IsBcryptHash(hash))
	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.Error(t, h.Compare(hash, "wrong"))
}

func TestHashRejectsEmpty(t *testing.T) {
	_, err := NewBcryptHasher(0).Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestIsBcryptHash(t *testing.T) {
	assert.False(t, IsBcryptHash("plain-password"))
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold("Admin@RomasDentalCare.com ", "admin@romasdentalcare.com"))
	assert.False(t, EqualFold("admin@example.com", "other@example.com"))
}
