package utils

import (
	"fmt"
	"math/big"
	"strings"

	"market/common/types"
)

// ParsePage checks paging parameters, page starts from 1, default page size 10
func ParsePage(page, size *int) (int, int, error) {
	p, s := 1, 10
	if page != nil {
		if *page <= 0 {
			return 0, 0, fmt.Errorf("illegal page: %d", *page)
		}
		p = *page
	}
	if size != nil {
		if *size <= 0 || *size > 100 {
			return 0, 0, fmt.Errorf("illegal page_size: %d", *size)
		}
		s = *size
	}
	return p, s, nil
}

// ParseAddress checks and normalizes a 0x prefixed 20 byte address
func ParseAddress(s string) (types.Address, error) {
	if len(s) != 42 || !strings.HasPrefix(s, "0x") {
		return "", fmt.Errorf("address is not 42 characters: %s", s)
	}
	if _, err := HexToBytes(s); err != nil {
		return "", fmt.Errorf("address is not hexadecimal: %s", s)
	}
	return types.Address(strings.ToLower(s)), nil
}

// ParseBig parses a non-negative decimal amount
func ParseBig(s string) (*big.Int, error) {
	t, ok := new(big.Int).SetString(s, 10)
	if !ok || t.Sign() < 0 {
		return nil, fmt.Errorf("illegal amount: %s", s)
	}
	return t, nil
}

// BigToDec big number to decimal string, nil counts as zero
func BigToDec(b *big.Int) types.BigInt {
	if b == nil {
		return "0"
	}
	return types.BigInt(b.String())
}
