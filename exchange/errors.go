// Package exchange implements the marketplace engine: project tokenization
// under relayer-signed vouchers, fixed price and auction sales, bid escrow
// with refund on outbid, royalty settlement and pull-based withdrawal. Every
// operation runs inside one database transaction, all preconditions are
// checked before any state is mutated.
package exchange

import "errors"

// Named failure signals, one per precondition violation. The identifiers are
// a wire contract with callers and tests.
var (
	ErrVoucherExpired        = errors.New("VoucherExpired")
	ErrInvalidSignature      = errors.New("InvalidSignature")
	ErrProjectExist          = errors.New("ProjectExist")
	ErrProjectNotFound       = errors.New("ProjectNotFound")
	ErrSaleAlreadyExists     = errors.New("SaleAlreadyExists")
	ErrSaleNotFound          = errors.New("SaleNotFound")
	ErrNotSeller             = errors.New("NotSeller")
	ErrAuctionHasBid         = errors.New("AuctionHasBid")
	ErrAuctionEnded          = errors.New("AuctionEnded")
	ErrAuctionRunning        = errors.New("AuctionRunning")
	ErrBidTooLow             = errors.New("BidTooLow")
	ErrAuctionAlreadySettled = errors.New("AuctionAlreadySettled")
	ErrNothingToWithdraw     = errors.New("NothingToWithdraw")
	ErrNotOwner              = errors.New("NotOwner")
	ErrAlreadyInitialized    = errors.New("AlreadyInitialized")
	ErrNotInitialized        = errors.New("NotInitialized")
	ErrPriceNotMatched       = errors.New("PriceNotMatched")
	ErrTokenNotPayable       = errors.New("TokenNotPayable")
	ErrInsufficientBalance   = errors.New("InsufficientBalance")
	ErrInsufficientAllowance = errors.New("InsufficientAllowance")
	ErrRequireTokenOwner     = errors.New("RequireTokenOwner")
	ErrRequireApproval       = errors.New("RequireApproval")
)
