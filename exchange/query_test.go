package exchange

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"market/conf"
	"market/common/types"
	"market/model"
)

func TestFetchProjectsAndHoldings(t *testing.T) {
	setup(t)
	tokenize(t, "https://github.com/example/one", seller, 5)
	tokenize(t, "https://github.com/example/two", buyer, 5)

	res, err := FetchProjects("", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Total)
	require.Len(t, res.Projects, 2)

	res, err = FetchProjects(string(seller), 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	require.Equal(t, seller, res.Projects[0].Creator)

	holdings, err := FetchHoldings(string(seller), 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), holdings.Total)
	require.Equal(t, uint64(1), holdings.Holdings[0].Amount)
}

func TestFetchSales(t *testing.T) {
	setup(t)
	id := tokenize(t, "https://github.com/example/repo", seller, 5)
	require.NoError(t, SetApprovalForAll(seller, conf.Market, true))
	sellId, err := CreateSale(seller, id, big.NewInt(10), usd, 1)
	require.NoError(t, err)

	res, err := FetchSales(string(seller), "", 0, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	require.Equal(t, sellId, res.Sales[0].SellId)

	res, err = FetchSales("", "", int(types.SaleRemoved), 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(0), res.Total)

	_, err = GetSale("0xmissing")
	require.ErrorIs(t, err, ErrSaleNotFound)
}

func TestFetchEvents(t *testing.T) {
	setup(t)
	id := tokenize(t, "https://github.com/example/repo", seller, 5)
	fund(t, buyer, 1000)
	require.NoError(t, MintAdditional(id, buyer))

	// insertion order lets an indexer replay state
	res, err := FetchEvents("", "", "", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(3), res.Total)
	require.Equal(t, model.EventPayableTokenAdded, res.Events[0].Type)
	require.Equal(t, model.EventProjectTokenize, res.Events[1].Type)
	require.Equal(t, model.EventTokenMint, res.Events[2].Type)

	res, err = FetchEvents(model.EventTokenMint, "", "", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	require.Equal(t, buyer, res.Events[0].To)

	res, err = FetchEvents("", string(id), "", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Total)

	res, err = FetchEvents("", "", string(buyer), 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
}
