package exchange

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"market/conf"
	"market/common/types"
	"market/common/utils"
)

func TestTokenizeProject(t *testing.T) {
	setup(t)
	url := "https://github.com/example/repo"
	id := tokenize(t, url, seller, 5)
	require.Equal(t, types.BigInt(utils.ProjectId(url).String()), id)

	p, err := GetProject(id)
	require.NoError(t, err)
	require.Equal(t, seller, p.Creator)
	require.Equal(t, usd, p.PaymentToken)
	require.Equal(t, uint8(5), p.Royality)
	require.Equal(t, uint64(1), p.TokenCount)
	require.Equal(t, types.BigInt("0"), p.LastMintPrice)
	require.Equal(t, types.BigInt("0"), p.TreasuryTotalAmount)

	held, err := BalanceOf(seller, id)
	require.NoError(t, err)
	require.Equal(t, uint64(1), held)
}

func TestTokenizeTwiceFails(t *testing.T) {
	setup(t)
	tokenize(t, "https://github.com/example/repo", seller, 5)

	// a fresh voucher for the same project still fails, even with the URL
	// cased differently, both derive the same token id
	v := &utils.TokenizeVoucher{
		ProjectUrl:            "https://github.com/Example/REPO",
		BasePrice:             "1",
		PopularityFactorPrice: "1",
		PaymentToken:          usd,
		Royality:              1,
		Deadline:              Now() + 3600,
		To:                    buyer,
	}
	sig, err := SignVoucher(v)
	require.NoError(t, err)
	v.Signature = sig
	_, err = TokenizeProject(v)
	require.ErrorIs(t, err, ErrProjectExist)
}

func TestTokenizeVoucherExpired(t *testing.T) {
	setup(t)
	v := &utils.TokenizeVoucher{
		ProjectUrl:            "https://github.com/example/repo",
		BasePrice:             "100",
		PopularityFactorPrice: "10",
		PaymentToken:          usd,
		Royality:              5,
		Deadline:              Now() - 1,
		To:                    seller,
	}
	sig, err := SignVoucher(v)
	require.NoError(t, err)
	v.Signature = sig
	_, err = TokenizeProject(v)
	require.ErrorIs(t, err, ErrVoucherExpired)
}

func TestTokenizeVoucherWrongSigner(t *testing.T) {
	setup(t)
	v := &utils.TokenizeVoucher{
		ProjectUrl:            "https://github.com/example/repo",
		BasePrice:             "100",
		PopularityFactorPrice: "10",
		PaymentToken:          usd,
		Royality:              5,
		Deadline:              Now() + 3600,
		To:                    seller,
	}
	key, err := utils.HexToECDSA("59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d")
	require.NoError(t, err)
	digest, err := utils.TokenizeDigest(conf.ChainId, conf.Market, v)
	require.NoError(t, err)
	sig, err := utils.SignDigest(digest, key)
	require.NoError(t, err)
	v.Signature = utils.BytesToHex(sig)
	_, err = TokenizeProject(v)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestGetProjectUnknown(t *testing.T) {
	setup(t)
	p, err := GetProject("123")
	require.NoError(t, err)
	require.Equal(t, types.ZeroAddress, p.PaymentToken)
	require.Equal(t, types.Address(""), p.Creator)
}

func TestMintAdditional(t *testing.T) {
	setup(t)
	id := tokenize(t, "https://github.com/example/repo", seller, 5)
	fund(t, buyer, 1000)

	// one unit out, the curve price 100 + 10*1 goes to the creator
	require.NoError(t, MintAdditional(id, buyer))
	p, err := GetProject(id)
	require.NoError(t, err)
	require.Equal(t, uint64(2), p.TokenCount)
	require.Equal(t, types.BigInt("110"), p.LastMintPrice)
	require.Equal(t, types.BigInt("110"), p.TreasuryTotalAmount)

	held, err := BalanceOf(buyer, id)
	require.NoError(t, err)
	require.Equal(t, uint64(1), held)

	w, err := WithdrawableOf(seller, usd)
	require.NoError(t, err)
	require.Equal(t, types.BigInt("110"), w)

	bal, err := Erc20BalanceOf(usd, buyer)
	require.NoError(t, err)
	require.Equal(t, types.BigInt("890"), bal)

	// the next mint walks the curve up
	require.NoError(t, MintAdditional(id, buyer))
	p, err = GetProject(id)
	require.NoError(t, err)
	require.Equal(t, uint64(3), p.TokenCount)
	require.Equal(t, types.BigInt("120"), p.LastMintPrice)
	require.Equal(t, types.BigInt("230"), p.TreasuryTotalAmount)
}

func TestMintAdditionalUnknownProject(t *testing.T) {
	setup(t)
	require.ErrorIs(t, MintAdditional("123", buyer), ErrProjectNotFound)
}

func TestMintAdditionalRequiresFunds(t *testing.T) {
	setup(t)
	id := tokenize(t, "https://github.com/example/repo", seller, 5)

	// tokens but no approval
	require.NoError(t, Erc20Mint(usd, buyer, big.NewInt(1000)))
	require.ErrorIs(t, MintAdditional(id, buyer), ErrInsufficientAllowance)

	// approval but not enough of it
	require.NoError(t, Erc20Approve(buyer, usd, conf.Market, big.NewInt(50)))
	require.ErrorIs(t, MintAdditional(id, buyer), ErrInsufficientAllowance)

	// approval but no balance
	require.NoError(t, Erc20Approve(bidder, usd, conf.Market, maxUint256))
	require.ErrorIs(t, MintAdditional(id, bidder), ErrInsufficientBalance)
}

func TestMintAfterDepletion(t *testing.T) {
	setup(t)
	id := tokenize(t, "https://github.com/example/repo", seller, 5)
	require.NoError(t, SetApprovalForAll(seller, conf.Market, true))
	sellId, err := CreateSale(seller, id, big.NewInt(100), usd, 1)
	require.NoError(t, err)
	fund(t, buyer, 100)
	require.NoError(t, BuyNFT(buyer, sellId, big.NewInt(100)))
	held, err := BalanceOf(seller, id)
	require.NoError(t, err)
	require.Equal(t, uint64(0), held)

	// a holder that sold out can buy back in, the emptied row is reused
	fund(t, seller, 1000)
	require.NoError(t, MintAdditional(id, seller))
	held, err = BalanceOf(seller, id)
	require.NoError(t, err)
	require.Equal(t, uint64(1), held)
}
