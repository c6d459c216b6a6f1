package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market/common/types"
	"market/common/utils"
	"market/exchange"
	"market/middleware"
)

func Auction(e *gin.Engine) {
	e.POST("/auction/create", middleware.Auth(), createAuction)
	e.POST("/auction/bid", middleware.Auth(), placeBid)
	e.POST("/auction/finalize", middleware.Auth(), finalizeAuction)
	e.GET("/auction/bid", getHighestBid)
}

// auctionReq auction creation parameters
type auctionReq struct {
	TokenId      types.BigInt `json:"token_id"`
	StartPrice   string       `json:"start_price"` //minimum first bid, decimal
	EndTime      uint64       `json:"end_time"`    //unix seconds, must be in the future
	PaymentToken string       `json:"payment_token"`
	Quantity     uint64       `json:"quantity"`
}

// @Tags        auction
// @Summary     create an auction
// @Description Lists units of a token as one timed lot sold to the highest bidder
// @Accept      json
// @Produce     json
// @Param       body body auctionReq true "auction parameters"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /auction/create [post]
func createAuction(c *gin.Context) {
	var req auctionReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	startPrice, err := utils.ParseBig(req.StartPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	token, err := utils.ParseAddress(req.PaymentToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	sellId, err := exchange.CreateAuction(middleware.Caller(c), req.TokenId, startPrice, req.EndTime, token, req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sell_id": sellId})
}

// @Tags        auction
// @Summary     place a bid
// @Description Escrows a bid that must strictly exceed the current highest, the displaced bidder is refunded into its withdrawable balance
// @Accept      json
// @Produce     json
// @Param       body body object true "sell id and bid amount"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /auction/bid [post]
func placeBid(c *gin.Context) {
	req := struct {
		SellId types.Hash `json:"sell_id"`
		Amount string     `json:"amount"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	amount, err := utils.ParseBig(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err = exchange.PlaceBid(middleware.Caller(c), req.SellId, amount); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sell_id": req.SellId})
}

// @Tags        auction
// @Summary     finalize an auction
// @Description Clears an ended auction, callable by anyone, the lot moves to the highest bidder and the escrow settles
// @Accept      json
// @Produce     json
// @Param       body body object true "sell id"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /auction/finalize [post]
func finalizeAuction(c *gin.Context) {
	req := struct {
		SellId types.Hash `json:"sell_id"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err := exchange.FinalizeAuction(middleware.Caller(c), req.SellId); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sell_id": req.SellId})
}

// @Tags        auction
// @Summary     query the highest bid
// @Accept      json
// @Produce     json
// @Param       sell_id query string true "sell id"
// @Success     200 {object} model.Bid
// @Failure     400 {object} exchange.ErrRes
// @Router      /auction/bid [get]
func getHighestBid(c *gin.Context) {
	bid, ok, err := exchange.HighestBid(types.Hash(c.Query("sell_id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"sell_id": c.Query("sell_id"), "amount": "0"})
		return
	}
	c.JSON(http.StatusOK, bid)
}
