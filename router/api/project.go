package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market/common/types"
	"market/common/utils"
	"market/exchange"
	"market/middleware"
)

func Project(e *gin.Engine) {
	e.POST("/project/tokenize", middleware.Auth(), tokenizeProject)
	e.POST("/project/mint", middleware.Auth(), mintAdditional)
	e.POST("/voucher/sign", middleware.Auth(), signVoucher)
	e.GET("/project/page", pageProjects)
	e.GET("/project/id", deriveProjectId)
	e.GET("/project/:id", getProject)
}

// @Tags        project
// @Summary     tokenize a project
// @Description Registers a project under a relayer-signed voucher and mints the first ownership unit to the beneficiary
// @Accept      json
// @Produce     json
// @Param       body body utils.TokenizeVoucher true "signed tokenization voucher"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /project/tokenize [post]
func tokenizeProject(c *gin.Context) {
	var voucher utils.TokenizeVoucher
	if err := c.BindJSON(&voucher); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if voucher.To == "" {
		voucher.To = middleware.Caller(c)
	}
	tokenId, err := exchange.TokenizeProject(&voucher)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token_id": tokenId})
}

// @Tags        project
// @Summary     mint an additional unit
// @Description Mints one more unit of a registered project to the caller at the current curve price, paid in the project's payment token
// @Accept      json
// @Produce     json
// @Param       body body object true "token id"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /project/mint [post]
func mintAdditional(c *gin.Context) {
	req := struct {
		TokenId types.BigInt `json:"token_id"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	if err := exchange.MintAdditional(req.TokenId, middleware.Caller(c)); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token_id": req.TokenId})
}

// @Tags        project
// @Summary     issue a voucher signature
// @Description Signs tokenization terms with the configured relayer key, only the beneficiary itself may request a voucher
// @Accept      json
// @Produce     json
// @Param       body body utils.TokenizeVoucher true "voucher terms, signature field ignored"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /voucher/sign [post]
func signVoucher(c *gin.Context) {
	var voucher utils.TokenizeVoucher
	if err := c.BindJSON(&voucher); err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	caller := middleware.Caller(c)
	if voucher.To == "" {
		voucher.To = caller
	}
	if voucher.To != caller {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: "voucher beneficiary must be the caller"})
		return
	}
	sig, err := exchange.SignVoucher(&voucher)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"signature": sig})
}

// @Tags        project
// @Summary     query project list
// @Description Pages registered projects in reverse tokenize order
// @Accept      json
// @Produce     json
// @Param       creator   query string false "creator address, if empty, query all"
// @Param       page      query string false "Page, default 1"
// @Param       page_size query string false "Page size, default 10"
// @Success     200 {object} exchange.ProjectsRes
// @Failure     400 {object} exchange.ErrRes
// @Router      /project/page [get]
func pageProjects(c *gin.Context) {
	req := struct {
		Page     *int   `form:"page"`
		PageSize *int   `form:"page_size"`
		Creator  string `form:"creator"`
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
	res, err := exchange.FetchProjects(req.Creator, page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Tags        project
// @Summary     derive a project token id
// @Description Pure derivation from the project URL, no state is read
// @Accept      json
// @Produce     json
// @Param       url query string true "project URL"
// @Success     200 {object} object
// @Failure     400 {object} exchange.ErrRes
// @Router      /project/id [get]
func deriveProjectId(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: "url is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token_id": utils.ProjectId(url).String()})
}

// @Tags        project
// @Summary     query a project
// @Description Project state by token id, unregistered projects return a zero payment token as a sentinel
// @Accept      json
// @Produce     json
// @Param       id path string true "token id, decimal"
// @Success     200 {object} model.Project
// @Failure     400 {object} exchange.ErrRes
// @Router      /project/{id} [get]
func getProject(c *gin.Context) {
	tokenId, err := utils.ParseBig(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	project, err := exchange.GetProject(types.BigInt(tokenId.String()))
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, project)
}
