package model

import (
	"market/common/types"
)

// event types appended by state changing operations
const (
	EventProjectTokenize   = "ProjectTokenize"
	EventTokenMint         = "TokenMint"
	EventSaleCreated       = "SaleCreated"
	EventSaleUpdated       = "SaleUpdated"
	EventSaleRemoved       = "SaleRemoved"
	EventNFTBought         = "NFTBought"
	EventBidPlaced         = "BidPlaced"
	EventAuctionSettled    = "AuctionSettled"
	EventWithdrawal        = "Withdrawal"
	EventRoyaltyUpdated    = "RoyaltyUpdated"
	EventRelayerChanged    = "RelayerChanged"
	EventPayableTokenAdded = "PayableTokenAdded"
)

// Event structured record of one state change, written in the same
// transaction as the change itself so an indexer can rebuild state from the
// event stream alone
type Event struct {
	Id         uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Type       string        `json:"type" gorm:"type:VARCHAR(32);index"`
	TokenId    types.BigInt  `json:"token_id" gorm:"type:VARCHAR(80);index"`
	SellId     types.Hash    `json:"sell_id" gorm:"type:CHAR(66);index"`
	From       types.Address `json:"from" gorm:"type:CHAR(42);index"` //seller, bidder or withdrawer depending on type
	To         types.Address `json:"to" gorm:"type:CHAR(42);index"`   //buyer, creator or new relayer depending on type
	Token      types.Address `json:"token" gorm:"type:CHAR(42)"`      //payment token involved
	Amount     types.BigInt  `json:"amount" gorm:"type:VARCHAR(80)"`  //value moved or new price
	Quantity   uint64        `json:"quantity"`
	Royality   uint8         `json:"royality"`
	ProjectUrl string        `json:"project_url" gorm:"type:VARCHAR(512)"`
	Timestamp  uint64        `json:"timestamp" gorm:"index"`
}
