package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"market/common/utils"
	"market/exchange"
)

func Event(e *gin.Engine) {
	e.GET("/event/page", pageEvents)
}

// @Tags        event
// @Summary     query the event stream
// @Description Pages state change events in insertion order, an external indexer can reconstruct marketplace state from this stream alone
// @Accept      json
// @Produce     json
// @Param       type      query string false "event type, if empty, query all"
// @Param       token_id  query string false "token id, if empty, query all"
// @Param       account   query string false "address appearing as from or to"
// @Param       page      query string false "Page, default 1"
// @Param       page_size query string false "Page size, default 10"
// @Success     200 {object} exchange.EventsRes
// @Failure     400 {object} exchange.ErrRes
// @Router      /event/page [get]
func pageEvents(c *gin.Context) {
	req := struct {
		Page     *int   `form:"page"`
		PageSize *int   `form:"page_size"`
		Type     string `form:"type"`
		TokenId  string `form:"token_id"`
		Account  string `form:"account"`
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
	res, err := exchange.FetchEvents(req.Type, req.TokenId, req.Account, page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, exchange.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
