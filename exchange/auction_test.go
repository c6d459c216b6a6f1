package exchange

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"market/conf"
	"market/common/types"
)

func TestAuctionBidding(t *testing.T) {
	setup(t)
	id := tokenize(t, "https://github.com/example/repo", seller, 5)
	require.NoError(t, SetApprovalForAll(seller, conf.Market, true))
	end := Now() + 100
	sellId, err := CreateAuction(seller, id, big.NewInt(10), end, usd, 1)
	require.NoError(t, err)
	fund(t, bidder, 100)
	fund(t, rival, 100)

	require.ErrorIs(t, PlaceBid(bidder, sellId, big.NewInt(5)), ErrBidTooLow)
	require.NoError(t, PlaceBid(bidder, sellId, big.NewInt(15)))
	bid, ok, err := HighestBid(sellId)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, bidder, bid.Bidder)
	require.Equal(t, types.BigInt("15"), bid.Amount)

	// matching the highest is not enough, the next bid must exceed it
	require.ErrorIs(t, PlaceBid(rival, sellId, big.NewInt(15)), ErrBidTooLow)
	require.NoError(t, PlaceBid(rival, sellId, big.NewInt(20)))

	// the displaced bidder is made whole without acting
	w, err := WithdrawableOf(bidder, usd)
	require.NoError(t, err)
	require.Equal(t, types.BigInt("15"), w)

	// a bid locks the listing for the seller
	require.ErrorIs(t, UpdateSale(seller, sellId, big.NewInt(50)), ErrAuctionHasBid)
	require.ErrorIs(t, RemoveSale(seller, sellId), ErrAuctionHasBid)

	require.ErrorIs(t, FinalizeAuction(buyer, sellId), ErrAuctionRunning)

	setNow(end)
	require.ErrorIs(t, PlaceBid(bidder, sellId, big.NewInt(30)), ErrAuctionEnded)

	// anyone can clear an ended auction
	require.NoError(t, FinalizeAuction(buyer, sellId))
	held, err := BalanceOf(rival, id)
	require.NoError(t, err)
	require.Equal(t, uint64(1), held)
	// 20 splits fee 0, royalty 1, 19 to the creator-seller
	w, err = WithdrawableOf(seller, usd)
	require.NoError(t, err)
	require.Equal(t, types.BigInt("20"), w)

	require.ErrorIs(t, FinalizeAuction(buyer, sellId), ErrAuctionAlreadySettled)

	// the refund is real tokens once withdrawn
	paid, err := Withdraw(bidder, usd)
	require.NoError(t, err)
	require.Equal(t, types.BigInt("15"), paid)
	bal, err := Erc20BalanceOf(usd, bidder)
	require.NoError(t, err)
	require.Equal(t, types.BigInt("100"), bal)
}

func TestAuctionNoBid(t *testing.T) {
	setup(t)
	id := tokenize(t, "https://github.com/example/repo", seller, 5)
	require.NoError(t, SetApprovalForAll(seller, conf.Market, true))
	end := Now() + 50
	sellId, err := CreateAuction(seller, id, big.NewInt(10), end, usd, 1)
	require.NoError(t, err)

	setNow(end + 1)
	require.NoError(t, FinalizeAuction(seller, sellId))
	sale, err := GetSale(sellId)
	require.NoError(t, err)
	require.Equal(t, types.SaleRemoved, sale.Status)
	require.True(t, sale.Settled)

	// the lot never left the seller
	held, err := BalanceOf(seller, id)
	require.NoError(t, err)
	require.Equal(t, uint64(1), held)

	require.ErrorIs(t, FinalizeAuction(seller, sellId), ErrAuctionAlreadySettled)
}

func TestRelistAfterFinalize(t *testing.T) {
	setup(t)
	id := tokenize(t, "https://github.com/example/repo", seller, 5)
	fund(t, seller, 1000)
	// a second unit so the seller can list again after losing the first
	require.NoError(t, MintAdditional(id, seller))
	require.NoError(t, SetApprovalForAll(seller, conf.Market, true))
	end := Now() + 100
	sellId, err := CreateAuction(seller, id, big.NewInt(10), end, usd, 1)
	require.NoError(t, err)
	fund(t, bidder, 100)
	require.NoError(t, PlaceBid(bidder, sellId, big.NewInt(15)))
	setNow(end)
	require.NoError(t, FinalizeAuction(seller, sellId))

	// the settled escrow is gone
	_, ok, err := HighestBid(sellId)
	require.NoError(t, err)
	require.False(t, ok)

	// relisting recycles the sell id and starts clean
	again, err := CreateAuction(seller, id, big.NewInt(10), end+100, usd, 1)
	require.NoError(t, err)
	require.Equal(t, sellId, again)

	// no phantom bid locks the fresh auction
	require.NoError(t, UpdateSale(seller, sellId, big.NewInt(12)))

	// the first bid is measured against the start price, not the old winner
	fund(t, rival, 100)
	require.ErrorIs(t, PlaceBid(rival, sellId, big.NewInt(11)), ErrBidTooLow)
	require.NoError(t, PlaceBid(rival, sellId, big.NewInt(20)))

	// the old winner is not refunded money it never escrowed here
	w, err := WithdrawableOf(bidder, usd)
	require.NoError(t, err)
	require.Equal(t, types.BigInt("0"), w)
}

func TestAuctionEndTimeMustBeFuture(t *testing.T) {
	setup(t)
	id := tokenize(t, "https://github.com/example/repo", seller, 5)
	require.NoError(t, SetApprovalForAll(seller, conf.Market, true))
	_, err := CreateAuction(seller, id, big.NewInt(10), Now(), usd, 1)
	require.Error(t, err)
}

func TestKindMismatch(t *testing.T) {
	setup(t)
	id := tokenize(t, "https://github.com/example/repo", seller, 5)
	require.NoError(t, SetApprovalForAll(seller, conf.Market, true))
	sellId, err := CreateSale(seller, id, big.NewInt(10), usd, 1)
	require.NoError(t, err)
	fund(t, bidder, 100)

	require.Error(t, PlaceBid(bidder, sellId, big.NewInt(15)))
	require.Error(t, FinalizeAuction(bidder, sellId))
}
