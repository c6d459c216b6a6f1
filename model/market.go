package model

import (
	"market/common/types"
)

// Project tokenized project state, created once per distinct project URL and
// never deleted
type Project struct {
	TokenId               types.BigInt  `json:"token_id" gorm:"type:VARCHAR(80);primaryKey"` //token id derived from the project URL
	ProjectUrl            string        `json:"project_url" gorm:"type:VARCHAR(512)"`        //source URL of the tokenized asset
	Creator               types.Address `json:"creator" gorm:"type:CHAR(42);index"`          //creator address, immutable
	PaymentToken          types.Address `json:"payment_token" gorm:"type:CHAR(42)"`          //ERC20 used to pay mints and sales
	BasePrice             types.BigInt  `json:"base_price" gorm:"type:VARCHAR(80)"`          //base unit of the mint pricing curve
	PopularityFactorPrice types.BigInt  `json:"popularity_factor_price" gorm:"type:VARCHAR(80)"`
	Royality              uint8         `json:"royality"`                                          //creator royalty percentage, 0-100
	TokenCount            uint64        `json:"token_count"`                                       //units minted so far, monotonic
	TreasuryTotalAmount   types.BigInt  `json:"treasury_total_amount" gorm:"type:VARCHAR(80)"`     //cumulative mint revenue, only increases
	LastMintPrice         types.BigInt  `json:"last_mint_price" gorm:"type:VARCHAR(80)"`           //price paid by the most recent mint
	Timestamp             uint64        `json:"timestamp"`                                         //tokenize time
}

// Sale fixed price or auction listing, one active record per (token, seller)
type Sale struct {
	SellId       types.Hash       `json:"sell_id" gorm:"type:CHAR(66);primaryKey"`      //derived from token id and seller
	TokenId      types.BigInt     `json:"token_id" gorm:"type:VARCHAR(80);index"`       //listed token
	Seller       types.Address    `json:"seller" gorm:"type:CHAR(42);index"`            //listing owner
	PaymentToken types.Address    `json:"payment_token" gorm:"type:CHAR(42)"`           //ERC20 the listing is priced in
	Price        types.BigInt     `json:"price" gorm:"type:VARCHAR(80)"`                //unit price, start price for auctions
	Quantity     uint64           `json:"quantity"`                                     //units remaining in the listing
	Kind         types.SaleKind   `json:"kind"`                                         //1 fixed price, 2 auction
	Status       types.SaleStatus `json:"status" gorm:"index"`                          //1 active, 2 removed, 3 sold
	EndTime      uint64           `json:"end_time"`                                     //auction close time, 0 for fixed price
	Settled      bool             `json:"settled"`                                      //auction already finalized
	Timestamp    uint64           `json:"timestamp"`                                    //listing time
}

// Bid current highest bid of an auction, displaced bids are refunded and not
// kept
type Bid struct {
	SellId    types.Hash    `json:"sell_id" gorm:"type:CHAR(66);primaryKey"`
	Bidder    types.Address `json:"bidder" gorm:"type:CHAR(42);index"`
	Amount    types.BigInt  `json:"amount" gorm:"type:VARCHAR(80)"` //escrowed bid amount
	Timestamp uint64        `json:"timestamp"`
}

// Balance withdrawable amount owed to a user per payment token, paid out only
// by an explicit withdrawal
type Balance struct {
	User   types.Address `json:"user" gorm:"type:CHAR(42);primaryKey"`
	Token  types.Address `json:"token" gorm:"type:CHAR(42);primaryKey"`
	Amount types.BigInt  `json:"amount" gorm:"type:VARCHAR(80)"`
}

// Treasury marketplace fee accrual per payment token
type Treasury struct {
	Token  types.Address `json:"token" gorm:"type:CHAR(42);primaryKey"`
	Amount types.BigInt  `json:"amount" gorm:"type:VARCHAR(80)"`
}

// Holding project token units held per owner
type Holding struct {
	TokenId types.BigInt  `json:"token_id" gorm:"type:VARCHAR(80);primaryKey"`
	Owner   types.Address `json:"owner" gorm:"type:CHAR(42);primaryKey;index"`
	Amount  uint64        `json:"amount"`
}

// Approval operator approval over all project token units of an owner
type Approval struct {
	Owner    types.Address `json:"owner" gorm:"type:CHAR(42);primaryKey"`
	Operator types.Address `json:"operator" gorm:"type:CHAR(42);primaryKey"`
	Approved bool          `json:"approved"`
}

// Erc20Balance payment token balance ledger
type Erc20Balance struct {
	Token  types.Address `json:"token" gorm:"type:CHAR(42);primaryKey"`
	Owner  types.Address `json:"owner" gorm:"type:CHAR(42);primaryKey"`
	Amount types.BigInt  `json:"amount" gorm:"type:VARCHAR(80)"`
}

// Erc20Allowance payment token spending approvals
type Erc20Allowance struct {
	Token   types.Address `json:"token" gorm:"type:CHAR(42);primaryKey"`
	Owner   types.Address `json:"owner" gorm:"type:CHAR(42);primaryKey"`
	Spender types.Address `json:"spender" gorm:"type:CHAR(42);primaryKey"`
	Amount  types.BigInt  `json:"amount" gorm:"type:VARCHAR(80)"`
}

// PayableToken ERC20 allowed as sale pricing currency
type PayableToken struct {
	Address   types.Address `json:"address" gorm:"type:CHAR(42);primaryKey"`
	AddedBy   types.Address `json:"added_by" gorm:"type:CHAR(42)"`
	Timestamp uint64        `json:"timestamp"`
}

// Config one-shot marketplace configuration, a single row with id 1
type Config struct {
	Id          uint8         `json:"-" gorm:"primaryKey"`
	Owner       types.Address `json:"owner" gorm:"type:CHAR(42)"`   //admin address
	Relayer     types.Address `json:"relayer" gorm:"type:CHAR(42)"` //trusted voucher signer
	Royality    uint8         `json:"royality"`                     //marketplace royalty percentage
	Initialized bool          `json:"initialized"`
}
