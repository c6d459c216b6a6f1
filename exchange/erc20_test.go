package exchange

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"market/common/types"
)

// the payment token substrate works below the marketplace and needs no
// Initialize

func TestErc20AllowanceDecrement(t *testing.T) {
	openTestDB(t)
	require.NoError(t, Erc20Mint(usd, buyer, big.NewInt(100)))
	require.NoError(t, Erc20Approve(buyer, usd, seller, big.NewInt(60)))

	err := DB.Transaction(func(tx *gorm.DB) error {
		return erc20TransferFrom(tx, usd, buyer, seller, seller, big.NewInt(40))
	})
	require.NoError(t, err)

	// 20 allowance left, another 40 does not fit
	err = DB.Transaction(func(tx *gorm.DB) error {
		return erc20TransferFrom(tx, usd, buyer, seller, seller, big.NewInt(40))
	})
	require.ErrorIs(t, err, ErrInsufficientAllowance)

	bal, err := Erc20BalanceOf(usd, seller)
	require.NoError(t, err)
	require.Equal(t, types.BigInt("40"), bal)
	bal, err = Erc20BalanceOf(usd, buyer)
	require.NoError(t, err)
	require.Equal(t, types.BigInt("60"), bal)
}

func TestErc20UnlimitedAllowance(t *testing.T) {
	openTestDB(t)
	require.NoError(t, Erc20Mint(usd, buyer, big.NewInt(100)))
	require.NoError(t, Erc20Approve(buyer, usd, seller, maxUint256))

	// an unlimited approval survives any number of transfers
	for i := 0; i < 3; i++ {
		err := DB.Transaction(func(tx *gorm.DB) error {
			return erc20TransferFrom(tx, usd, buyer, seller, seller, big.NewInt(30))
		})
		require.NoError(t, err)
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		return erc20TransferFrom(tx, usd, buyer, seller, seller, big.NewInt(30))
	})
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestErc20UnapprovedSpender(t *testing.T) {
	openTestDB(t)
	require.NoError(t, Erc20Mint(usd, buyer, big.NewInt(100)))
	err := DB.Transaction(func(tx *gorm.DB) error {
		return erc20TransferFrom(tx, usd, buyer, seller, seller, big.NewInt(10))
	})
	require.ErrorIs(t, err, ErrInsufficientAllowance)
}

func TestErc20MissingBalance(t *testing.T) {
	openTestDB(t)
	bal, err := Erc20BalanceOf(usd, buyer)
	require.NoError(t, err)
	require.Equal(t, types.BigInt("0"), bal)

	err = DB.Transaction(func(tx *gorm.DB) error {
		return erc20Transfer(tx, usd, buyer, seller, big.NewInt(1))
	})
	require.ErrorIs(t, err, ErrInsufficientBalance)
}
