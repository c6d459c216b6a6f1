package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"market/common/types"
)

// ProjectId derives the canonical token id of a project from its URL, the id
// is the keccak256 of the normalized (lowercased, trimmed) URL read as a
// 256 bit unsigned integer. Any party can compute it without a lookup.
func ProjectId(projectUrl string) *big.Int {
	url := strings.ToLower(strings.TrimSpace(projectUrl))
	return new(big.Int).SetBytes(Keccak256([]byte(url)))
}

// SellId derives the sale id of a (tokenId, seller) pair, keccak256 over the
// packed 32 byte token id and the 20 byte seller address. One seller can hold
// at most one sale record per token.
func SellId(tokenId *big.Int, seller types.Address) types.Hash {
	data := append(
		common.BigToHash(tokenId).Bytes(),
		common.HexToAddress(string(seller)).Bytes()...,
	)
	return types.Hash(BytesToHex(Keccak256(data)))
}

// TokenizeVoucher fields covered by the relayer signature
type TokenizeVoucher struct {
	ProjectUrl            string        `json:"project_url"`
	BasePrice             types.BigInt  `json:"base_price"`
	PopularityFactorPrice types.BigInt  `json:"popularity_factor_price"`
	PaymentToken          types.Address `json:"payment_token"`
	Royality              uint8         `json:"royality"`
	Deadline              uint64        `json:"deadline"`
	Signature             string        `json:"signature"`
	To                    types.Address `json:"to"`
}

// typed data schema of the tokenize voucher, field order is a fixed wire
// contract shared with off-chain signers
var tokenizeTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"ProjectTokenizeData": {
		{Name: "projectUrl", Type: "string"},
		{Name: "basePrice", Type: "uint256"},
		{Name: "popularityFactorPrice", Type: "uint256"},
		{Name: "paymentToken", Type: "address"},
		{Name: "royality", Type: "uint8"},
		{Name: "deadline", Type: "uint256"},
	},
}

const (
	tokenizeDomainName    = "OSNFT_RELAYER"
	tokenizeDomainVersion = "1"
)

// TokenizeDigest computes the EIP-712 digest the voucher signature must be
// made over, bound to the chain id and the marketplace address
func TokenizeDigest(chainId int64, verifyingContract types.Address, v *TokenizeVoucher) ([]byte, error) {
	data := apitypes.TypedData{
		Types:       tokenizeTypes,
		PrimaryType: "ProjectTokenizeData",
		Domain: apitypes.TypedDataDomain{
			Name:              tokenizeDomainName,
			Version:           tokenizeDomainVersion,
			ChainId:           math.NewHexOrDecimal256(chainId),
			VerifyingContract: string(verifyingContract),
		},
		Message: apitypes.TypedDataMessage{
			"projectUrl":            v.ProjectUrl,
			"basePrice":             v.BasePrice.T().String(),
			"popularityFactorPrice": v.PopularityFactorPrice.T().String(),
			"paymentToken":          string(v.PaymentToken),
			"royality":              fmt.Sprintf("%d", v.Royality),
			"deadline":              new(big.Int).SetUint64(v.Deadline).String(),
		},
	}
	domainSeparator, err := data.HashStruct("EIP712Domain", data.Domain.Map())
	if err != nil {
		return nil, err
	}
	structHash, err := data.HashStruct(data.PrimaryType, data.Message)
	if err != nil {
		return nil, err
	}
	return Keccak256([]byte("\x19\x01"), domainSeparator, structHash), nil
}
