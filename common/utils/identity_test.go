package utils

import (
	"testing"

	"market/common/types"
)

func TestProjectId(t *testing.T) {
	a := ProjectId("https://github.com/example/repo")
	b := ProjectId("  HTTPS://GitHub.com/Example/REPO ")
	if a.Cmp(b) != 0 {
		t.Fatalf("normalization broken: %s != %s", a, b)
	}
	c := ProjectId("https://github.com/example/other")
	if a.Cmp(c) == 0 {
		t.Fatal("distinct projects collide")
	}
}

func TestSellId(t *testing.T) {
	tokenId := ProjectId("https://github.com/example/repo")
	seller := types.Address("0x00000000000000000000000000000000000000aa")
	id := SellId(tokenId, seller)
	if len(id) != 66 {
		t.Fatalf("sell id length: %d", len(id))
	}
	if id != SellId(tokenId, seller) {
		t.Fatal("sell id is not deterministic")
	}
	other := types.Address("0x00000000000000000000000000000000000000ab")
	if id == SellId(tokenId, other) {
		t.Fatal("different sellers share a sell id")
	}
}

func TestTokenizeDigest(t *testing.T) {
	key, err := HexToECDSA(testKey)
	if err != nil {
		t.Fatal(err)
	}
	market := types.Address("0x00000000000000000000000000000000004d6b74")
	v := &TokenizeVoucher{
		ProjectUrl:            "https://github.com/example/repo",
		BasePrice:             "100",
		PopularityFactorPrice: "10",
		PaymentToken:          "0x0000000000000000000000000000000000000020",
		Royality:              5,
		Deadline:              1700003600,
		To:                    "0x00000000000000000000000000000000000000aa",
	}
	digest, err := TokenizeDigest(51888, market, v)
	if err != nil {
		t.Fatal(err)
	}
	if len(digest) != 32 {
		t.Fatalf("digest length: %d", len(digest))
	}

	// the signature binds every covered field
	sig, err := SignDigest(digest, key)
	if err != nil {
		t.Fatal(err)
	}
	got, err := RecoverDigest(digest, sig)
	if err != nil {
		t.Fatal(err)
	}
	if want := PubkeyToAddress(key.PubKey()); got != want {
		t.Fatalf("recovered %s, want %s", got, want)
	}

	v.Royality = 6
	changed, err := TokenizeDigest(51888, market, v)
	if err != nil {
		t.Fatal(err)
	}
	if BytesToHex(changed) == BytesToHex(digest) {
		t.Fatal("digest ignores the royalty field")
	}
	v.Royality = 5
	changed, err = TokenizeDigest(1, market, v)
	if err != nil {
		t.Fatal(err)
	}
	if BytesToHex(changed) == BytesToHex(digest) {
		t.Fatal("digest ignores the chain id")
	}
}
