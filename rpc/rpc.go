// Package rpc exposes the read surface of the marketplace over JSON-RPC so
// chain-style tooling can query it with the same request shape it uses
// against a node.
package rpc

import (
	"encoding/json"
	"net/http"

	"github.com/INFURA/go-ethlibs/jsonrpc"
	"github.com/gin-gonic/gin"

	"market/common/types"
	"market/exchange"
)

func Routers(e *gin.Engine) {
	e.POST("/rpc", handle)
}

// response JSON-RPC 2.0 response envelope
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      jsonrpc.ID      `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpc.Error  `json:"error,omitempty"`
}

func handle(c *gin.Context) {
	var req jsonrpc.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, response{
			JSONRPC: "2.0",
			Error:   &jsonrpc.Error{Code: -32700, Message: "parse error: " + err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, dispatch(&req))
}

func dispatch(req *jsonrpc.Request) response {
	v, rpcErr := call(req)
	if rpcErr != nil {
		return response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return response{JSONRPC: "2.0", ID: req.ID, Error: &jsonrpc.Error{Code: -32603, Message: err.Error()}}
	}
	return response{JSONRPC: "2.0", ID: req.ID, Result: raw}
}

func call(req *jsonrpc.Request) (interface{}, *jsonrpc.Error) {
	switch req.Method {
	case "market_getProject":
		var tokenId types.BigInt
		if err := req.Params.UnmarshalInto(&tokenId); err != nil {
			return nil, invalidParams(err)
		}
		return wrap(exchange.GetProject(tokenId))
	case "market_getSale":
		var sellId types.Hash
		if err := req.Params.UnmarshalInto(&sellId); err != nil {
			return nil, invalidParams(err)
		}
		return wrap(exchange.GetSale(sellId))
	case "market_highestBid":
		var sellId types.Hash
		if err := req.Params.UnmarshalInto(&sellId); err != nil {
			return nil, invalidParams(err)
		}
		bid, _, err := exchange.HighestBid(sellId)
		return wrap(bid, err)
	case "market_getRoyality":
		return wrap(exchange.GetRoyality())
	case "market_relayer":
		return wrap(exchange.Relayer())
	case "market_withdrawableOf":
		var user, token types.Address
		if err := req.Params.UnmarshalInto(&user, &token); err != nil {
			return nil, invalidParams(err)
		}
		return wrap(exchange.WithdrawableOf(user, token))
	case "market_treasuryOf":
		var token types.Address
		if err := req.Params.UnmarshalInto(&token); err != nil {
			return nil, invalidParams(err)
		}
		return wrap(exchange.TreasuryOf(token))
	case "market_balanceOf":
		var owner types.Address
		var tokenId types.BigInt
		if err := req.Params.UnmarshalInto(&owner, &tokenId); err != nil {
			return nil, invalidParams(err)
		}
		return wrap(exchange.BalanceOf(owner, tokenId))
	default:
		return nil, &jsonrpc.Error{Code: -32601, Message: "method not found: " + req.Method}
	}
}

func wrap(v interface{}, err error) (interface{}, *jsonrpc.Error) {
	if err != nil {
		return nil, &jsonrpc.Error{Code: -32000, Message: err.Error()}
	}
	return v, nil
}

func invalidParams(err error) *jsonrpc.Error {
	return &jsonrpc.Error{Code: -32602, Message: "invalid params: " + err.Error()}
}
