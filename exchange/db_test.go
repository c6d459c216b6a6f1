package exchange

import (
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"market/conf"
	"market/common/types"
	"market/common/utils"
)

// test accounts
var (
	owner  = testAddr(0x01)
	seller = testAddr(0x02)
	buyer  = testAddr(0x03)
	bidder = testAddr(0x04)
	rival  = testAddr(0x05)
	usd    = testAddr(0x20) //allowlisted payment token
)

func testAddr(n byte) types.Address {
	return types.Address(fmt.Sprintf("0x%040x", n))
}

// openTestDB fresh in-memory store per test, the shared cache keeps every
// pooled connection on the same database
func openTestDB(t *testing.T) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	require.NoError(t, Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared")))
}

// setup opens a store, freezes the clock and initializes the marketplace with
// the configured signer as relayer and a 2 percent fee
func setup(t *testing.T) {
	t.Helper()
	openTestDB(t)
	setNow(1700000000)
	require.NoError(t, Initialize(owner, conf.Signer, 2))
	require.NoError(t, AddPayableToken(owner, usd))
}

func setNow(ts uint64) {
	Now = func() uint64 { return ts }
}

// fund issues payment tokens to a user and approves the marketplace without
// limit
func fund(t *testing.T, user types.Address, amount int64) {
	t.Helper()
	require.NoError(t, Erc20Mint(usd, user, big.NewInt(amount)))
	require.NoError(t, Erc20Approve(user, usd, conf.Market, maxUint256))
}

// tokenize registers a project under a voucher signed with the configured
// relayer key, base price 100 and popularity factor 10
func tokenize(t *testing.T, url string, creator types.Address, royality uint8) types.BigInt {
	t.Helper()
	v := &utils.TokenizeVoucher{
		ProjectUrl:            url,
		BasePrice:             "100",
		PopularityFactorPrice: "10",
		PaymentToken:          usd,
		Royality:              royality,
		Deadline:              Now() + 3600,
		To:                    creator,
	}
	sig, err := SignVoucher(v)
	require.NoError(t, err)
	v.Signature = sig
	id, err := TokenizeProject(v)
	require.NoError(t, err)
	return id
}
