package exchange

import (
	"testing"

	"github.com/stretchr/testify/require"

	"market/conf"
)

func TestInitializeOnce(t *testing.T) {
	openTestDB(t)
	_, err := GetRoyality()
	require.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, Initialize(owner, conf.Signer, 2))
	require.ErrorIs(t, Initialize(owner, conf.Signer, 2), ErrAlreadyInitialized)

	royality, err := GetRoyality()
	require.NoError(t, err)
	require.Equal(t, uint8(2), royality)

	relayer, err := Relayer()
	require.NoError(t, err)
	require.Equal(t, conf.Signer, relayer)
}

func TestInitializeRejectsBadRoyality(t *testing.T) {
	openTestDB(t)
	require.Error(t, Initialize(owner, conf.Signer, 101))
}

func TestSetRoyality(t *testing.T) {
	setup(t)
	require.ErrorIs(t, SetRoyality(seller, 5), ErrNotOwner)
	require.Error(t, SetRoyality(owner, 101))

	require.NoError(t, SetRoyality(owner, 5))
	royality, err := GetRoyality()
	require.NoError(t, err)
	require.Equal(t, uint8(5), royality)
}

func TestSetRelayer(t *testing.T) {
	setup(t)
	require.ErrorIs(t, SetRelayer(buyer, buyer), ErrNotOwner)

	require.NoError(t, SetRelayer(owner, buyer))
	relayer, err := Relayer()
	require.NoError(t, err)
	require.Equal(t, buyer, relayer)
}

func TestPayableTokenAllowlist(t *testing.T) {
	setup(t)
	ok, err := IsPayableToken(usd)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = IsPayableToken(testAddr(0x21))
	require.NoError(t, err)
	require.False(t, ok)

	require.ErrorIs(t, AddPayableToken(seller, testAddr(0x21)), ErrNotOwner)
	// listing the same token again is a no-op
	require.NoError(t, AddPayableToken(owner, usd))
}
