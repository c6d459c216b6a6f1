package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market/common/utils"
	"market/exchange"
	"market/middleware"
)

func Admin(e *gin.Engine) {
	e.POST("/admin/royality", middleware.Auth(), setRoyality)
	e.GET("/admin/royality", getRoyality)
	e.POST("/admin/relayer", middleware.Auth(), setRelayer)
	e.GET("/admin/relayer", getRelayer)
	e.POST("/admin/payable_token", middleware.Auth(), addPayableToken)
	e.GET("/admin/payable_token", isPayableToken)
	e.POST("/admin/treasury/withdraw", middleware.Auth(), withdrawTreasury)
	e.GET("/admin/treasury", getTreasury)
}

// @Tags        admin
// @Summary     set marketplace royalty
// @Description Owner-only update of the marketplace royalty percentage taken off every settlement
// @Accept      json
// @Produce     json
// @Param       body body object true "royalty percentage, 0-100"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /admin/royality [post]
func setRoyality(c *gin.Context) {
	req := struct {
		Royality uint8 `json:"royality"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err := exchange.SetRoyality(middleware.Caller(c), req.Royality); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"royality": req.Royality})
}

// @Tags        admin
// @Summary     query marketplace royalty
// @Accept      json
// @Produce     json
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /admin/royality [get]
func getRoyality(c *gin.Context) {
	royality, err := exchange.GetRoyality()
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"royality": royality})
}

// @Tags        admin
// @Summary     rotate the trusted voucher signer
// @Description Owner-only replacement of the relayer address vouchers must be signed by
// @Accept      json
// @Produce     json
// @Param       body body object true "new relayer address"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /admin/relayer [post]
func setRelayer(c *gin.Context) {
	req := struct {
		Relayer string `json:"relayer"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	relayer, err := utils.ParseAddress(req.Relayer)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err = exchange.SetRelayer(middleware.Caller(c), relayer); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"relayer": relayer})
}

// @Tags        admin
// @Summary     query the trusted voucher signer
// @Accept      json
// @Produce     json
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /admin/relayer [get]
func getRelayer(c *gin.Context) {
	relayer, err := exchange.Relayer()
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"relayer": relayer})
}

// @Tags        admin
// @Summary     allow an ERC20 as sale currency
// @Description Owner-only allowlisting, sales can only be priced in listed tokens
// @Accept      json
// @Produce     json
// @Param       body body object true "payment token address"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /admin/payable_token [post]
func addPayableToken(c *gin.Context) {
	req := struct {
		Token string `json:"token"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	token, err := utils.ParseAddress(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err = exchange.AddPayableToken(middleware.Caller(c), token); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Tags        admin
// @Summary     query whether an ERC20 is a payable token
// @Accept      json
// @Produce     json
// @Param       token query string true "payment token address"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /admin/payable_token [get]
func isPayableToken(c *gin.Context) {
	token, err := utils.ParseAddress(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	ok, err := exchange.IsPayableToken(token)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payable": ok})
}

// @Tags        admin
// @Summary     withdraw marketplace fees
// @Description Owner-only payout of the accumulated treasury of one payment token
// @Accept      json
// @Produce     json
// @Param       body body object true "payment token address"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /admin/treasury/withdraw [post]
func withdrawTreasury(c *gin.Context) {
	req := struct {
		Token string `json:"token"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	token, err := utils.ParseAddress(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	paid, err := exchange.WithdrawTreasury(middleware.Caller(c), token)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": paid})
}

// @Tags        admin
// @Summary     query marketplace treasury
// @Accept      json
// @Produce     json
// @Param       token query string true "payment token address"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /admin/treasury [get]
func getTreasury(c *gin.Context) {
	token, err := utils.ParseAddress(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	amount, err := exchange.TreasuryOf(token)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}
