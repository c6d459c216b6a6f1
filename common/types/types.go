package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Address hexadecimal string with 0x prefix, always stored lowercase
type Address string

// ZeroAddress sentinel for "no address", e.g. the payment token of an
// unregistered project
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Address) UnmarshalText(input []byte) error {
	*a = Address(strings.ToLower(string(input)))
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Address) UnmarshalJSON(input []byte) error {
	if len(input) < 2 || input[0] != '"' {
		return fmt.Errorf("address must be a JSON string: %s", input)
	}
	return a.UnmarshalText(input[1 : len(input)-1])
}

func (a Address) IsZero() bool {
	return a == "" || a == ZeroAddress
}

type Hash string

// UnmarshalText implements encoding.TextUnmarshaler
func (h *Hash) UnmarshalText(input []byte) error {
	*h = Hash(strings.ToLower(string(input)))
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Hash) UnmarshalJSON(input []byte) error {
	if len(input) < 2 || input[0] != '"' {
		return fmt.Errorf("hash must be a JSON string: %s", input)
	}
	return h.UnmarshalText(input[1 : len(input)-1])
}

// BigInt big number represented by decimal string
type BigInt string

// UnmarshalJSON implements json.Unmarshaler.
func (b *BigInt) UnmarshalJSON(input []byte) error {
	if len(input) > 2 && input[0] == '"' {
		input = input[1 : len(input)-1]
	}
	return b.UnmarshalText(input)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *BigInt) UnmarshalText(input []byte) error {
	t := new(big.Int)
	err := t.UnmarshalText(input)
	if err != nil {
		return err
	}
	*b = BigInt(t.String())
	return nil
}

// T parses the decimal string, empty counts as zero
func (b BigInt) T() *big.Int {
	t := new(big.Int)
	if b != "" {
		t.SetString(string(b), 10)
	}
	return t
}

// SaleKind listing type of a sale record
type SaleKind int32

const (
	KindFixedPrice SaleKind = iota + 1
	KindAuction
)

// SaleStatus lifecycle state of a sale record
type SaleStatus int32

const (
	SaleActive SaleStatus = iota + 1
	SaleRemoved
	SaleSold
)
