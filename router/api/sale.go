package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market/common/types"
	"market/common/utils"
	"market/exchange"
	"market/middleware"
)

func Sale(e *gin.Engine) {
	e.POST("/sale/create", middleware.Auth(), createSale)
	e.POST("/sale/update", middleware.Auth(), updateSale)
	e.POST("/sale/remove", middleware.Auth(), removeSale)
	e.POST("/sale/buy", middleware.Auth(), buyNFT)
	e.GET("/sale/page", pageSales)
	e.GET("/sale/:id", getSale)
}

// saleReq sale creation parameters
type saleReq struct {
	TokenId      types.BigInt `json:"token_id"`
	Price        string       `json:"price"` //unit price, decimal
	PaymentToken string       `json:"payment_token"`
	Quantity     uint64       `json:"quantity"`
}

// @Tags        sale
// @Summary     create a fixed price sale
// @Description Lists units of a token at a fixed unit price, one active sale per token and seller
// @Accept      json
// @Produce     json
// @Param       body body saleReq true "sale parameters"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /sale/create [post]
func createSale(c *gin.Context) {
	var req saleReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	price, err := utils.ParseBig(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	token, err := utils.ParseAddress(req.PaymentToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	sellId, err := exchange.CreateSale(middleware.Caller(c), req.TokenId, price, token, req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sell_id": sellId})
}

// @Tags        sale
// @Summary     update a sale price
// @Description Seller-only repricing, refused once an auction holds a bid
// @Accept      json
// @Produce     json
// @Param       body body object true "sell id and new price"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /sale/update [post]
func updateSale(c *gin.Context) {
	req := struct {
		SellId types.Hash `json:"sell_id"`
		Price  string     `json:"price"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	price, err := utils.ParseBig(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err = exchange.UpdateSale(middleware.Caller(c), req.SellId, price); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sell_id": req.SellId})
}

// @Tags        sale
// @Summary     remove a sale
// @Description Seller-only delisting, refused once an auction holds a bid
// @Accept      json
// @Produce     json
// @Param       body body object true "sell id"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /sale/remove [post]
func removeSale(c *gin.Context) {
	req := struct {
		SellId types.Hash `json:"sell_id"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err := exchange.RemoveSale(middleware.Caller(c), req.SellId); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sell_id": req.SellId})
}

// @Tags        sale
// @Summary     buy off a fixed price sale
// @Description Buys one unit at the listed price, the stated price protects the buyer against repricing
// @Accept      json
// @Produce     json
// @Param       body body object true "sell id and agreed price"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /sale/buy [post]
func buyNFT(c *gin.Context) {
	req := struct {
		SellId types.Hash `json:"sell_id"`
		Price  string     `json:"price"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	price, err := utils.ParseBig(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err = exchange.BuyNFT(middleware.Caller(c), req.SellId, price); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sell_id": req.SellId})
}

// @Tags        sale
// @Summary     query sale list
// @Description Pages sale records in reverse listing order
// @Accept      json
// @Produce     json
// @Param       seller    query string false "seller address, if empty, query all"
// @Param       token_id  query string false "token id, if empty, query all"
// @Param       status    query int    false "1 active, 2 removed, 3 sold, 0 all"
// @Param       page      query string false "Page, default 1"
// @Param       page_size query string false "Page size, default 10"
// @Success     200 {object} exchange.SalesRes
// @Failure     400 {object} exchange.ErrRes
// @Router      /sale/page [get]
func pageSales(c *gin.Context) {
	req := struct {
		Page     *int   `form:"page"`
		PageSize *int   `form:"page_size"`
		Seller   string `form:"seller"`
		TokenId  string `form:"token_id"`
		Status   int    `form:"status"`
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
	res, err := exchange.FetchSales(req.Seller, req.TokenId, req.Status, page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Tags        sale
// @Summary     query a sale
// @Accept      json
// @Produce     json
// @Param       id path string true "sell id"
// @Success     200 {object} model.Sale
// @Failure     400 {object} exchange.ErrRes
// @Router      /sale/{id} [get]
func getSale(c *gin.Context) {
	sale, err := exchange.GetSale(types.Hash(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, sale)
}
