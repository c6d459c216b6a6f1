package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market/common/types"
	"market/common/utils"
	"market/exchange"
	"market/middleware"
)

func Payment(e *gin.Engine) {
	e.POST("/payment/withdraw", middleware.Auth(), withdraw)
	e.GET("/payment/balance", getWithdrawable)
	e.POST("/token/approve", middleware.Auth(), approveToken)
	e.POST("/token/mint", middleware.Auth(), mintToken)
	e.GET("/token/balance", getTokenBalance)
	e.POST("/nft/approval", middleware.Auth(), setApprovalForAll)
	e.GET("/nft/balance", getNFTBalance)
	e.GET("/nft/holdings", pageHoldings)
}

// @Tags        payment
// @Summary     withdraw earned funds
// @Description Pays out the caller's entire withdrawable balance of one payment token
// @Accept      json
// @Produce     json
// @Param       body body object true "payment token address"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /payment/withdraw [post]
func withdraw(c *gin.Context) {
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
	paid, err := exchange.Withdraw(middleware.Caller(c), token)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": paid})
}

// @Tags        payment
// @Summary     query withdrawable balance
// @Accept      json
// @Produce     json
// @Param       user  query string true "user address"
// @Param       token query string true "payment token address"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /payment/balance [get]
func getWithdrawable(c *gin.Context) {
	user, err := utils.ParseAddress(c.Query("user"))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	token, err := utils.ParseAddress(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	amount, err := exchange.WithdrawableOf(user, token)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}

// @Tags        payment
// @Summary     approve the marketplace to spend payment tokens
// @Description ERC20 style approval on the in-process payment token substrate
// @Accept      json
// @Produce     json
// @Param       body body object true "token, spender and amount"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /token/approve [post]
func approveToken(c *gin.Context) {
	req := struct {
		Token   string `json:"token"`
		Spender string `json:"spender"`
		Amount  string `json:"amount"`
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
	spender, err := utils.ParseAddress(req.Spender)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	amount, err := utils.ParseBig(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err = exchange.Erc20Approve(middleware.Caller(c), token, spender, amount); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"spender": spender})
}

// @Tags        payment
// @Summary     mint payment tokens
// @Description Faucet of the in-process payment token substrate, for development and testing deployments
// @Accept      json
// @Produce     json
// @Param       body body object true "token, recipient and amount"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /token/mint [post]
func mintToken(c *gin.Context) {
	req := struct {
		Token  string `json:"token"`
		To     string `json:"to"`
		Amount string `json:"amount"`
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
	to, err := utils.ParseAddress(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	amount, err := utils.ParseBig(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err = exchange.Erc20Mint(token, to, amount); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"to": to, "amount": req.Amount})
}

// @Tags        payment
// @Summary     query payment token balance
// @Accept      json
// @Produce     json
// @Param       owner query string true "owner address"
// @Param       token query string true "payment token address"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /token/balance [get]
func getTokenBalance(c *gin.Context) {
	owner, err := utils.ParseAddress(c.Query("owner"))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	token, err := utils.ParseAddress(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	amount, err := exchange.Erc20BalanceOf(token, owner)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}

// @Tags        nft
// @Summary     set an operator approval
// @Description Grants or revokes an operator over all of the caller's project token units, listing requires approving the marketplace
// @Accept      json
// @Produce     json
// @Param       body body object true "operator and approved flag"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /nft/approval [post]
func setApprovalForAll(c *gin.Context) {
	req := struct {
		Operator string `json:"operator"`
		Approved bool   `json:"approved"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	operator, err := utils.ParseAddress(req.Operator)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err = exchange.SetApprovalForAll(middleware.Caller(c), operator, req.Approved); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"operator": operator, "approved": req.Approved})
}

// @Tags        nft
// @Summary     query project token units
// @Accept      json
// @Produce     json
// @Param       owner    query string true "owner address"
// @Param       token_id query string true "token id, decimal"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /nft/balance [get]
func getNFTBalance(c *gin.Context) {
	owner, err := utils.ParseAddress(c.Query("owner"))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	tokenId, err := utils.ParseBig(c.Query("token_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	amount, err := exchange.BalanceOf(owner, types.BigInt(tokenId.String()))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}

// @Tags        nft
// @Summary     query holdings of an owner
// @Accept      json
// @Produce     json
// @Param       owner     query string true  "owner address"
// @Param       page      query string false "Page, default 1"
// @Param       page_size query string false "Page size, default 10"
// @Success     200 {object} exchange.HoldingsRes
// @Failure     400 {object} exchange.ErrRes
// @Router      /nft/holdings [get]
func pageHoldings(c *gin.Context) {
	req := struct {
		Page     *int   `form:"page"`
		PageSize *int   `form:"page_size"`
		Owner    string `form:"owner"`
	}{}
	if err := c.BindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	page, size, err := utils.ParsePage(req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	res, err := exchange.FetchHoldings(req.Owner, page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
