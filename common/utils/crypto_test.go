package utils

import (
	"fmt"
	"testing"
)

const testKey = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"

func TestKeccak256(t *testing.T) {
	h := BytesToHex(Keccak256(nil))
	if h != "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470" {
		t.Fatalf("keccak256 of empty input: %s", h)
	}
	// chunked input hashes like the concatenation
	a := Keccak256([]byte("mar"), []byte("ket"))
	b := Keccak256([]byte("market"))
	if BytesToHex(a) != BytesToHex(b) {
		t.Fatalf("chunked hash mismatch: %x %x", a, b)
	}
}

func TestSignRecoverDigest(t *testing.T) {
	key, err := HexToECDSA(testKey)
	if err != nil {
		t.Fatal(err)
	}
	digest := Keccak256([]byte("market"))
	sig, err := SignDigest(digest, key)
	if err != nil {
		t.Fatal(err)
	}
	if len(sig) != 65 {
		t.Fatalf("signature length: %d", len(sig))
	}
	if sig[64] != 27 && sig[64] != 28 {
		t.Fatalf("recovery byte not offset: %d", sig[64])
	}
	want := PubkeyToAddress(key.PubKey())
	got, err := RecoverDigest(digest, sig)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("recovered %s, want %s", got, want)
	}
	// v without the 27 offset recovers too
	sig[64] -= 27
	got, err = RecoverDigest(digest, sig)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("recovered %s with raw v, want %s", got, want)
	}
}

func TestSignDigestRejectsBadLength(t *testing.T) {
	key, _ := HexToECDSA(testKey)
	if _, err := SignDigest([]byte("short"), key); err == nil {
		t.Fatal("short digest accepted")
	}
}

func TestRecoverPersonal(t *testing.T) {
	key, err := HexToECDSA(testKey)
	if err != nil {
		t.Fatal(err)
	}
	msg := `{"token_id":"1"}1700000000`
	wrapped := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(msg), msg)
	sig, err := SignDigest(Keccak256([]byte(wrapped)), key)
	if err != nil {
		t.Fatal(err)
	}
	got, err := RecoverPersonal(msg, BytesToHex(sig))
	if err != nil {
		t.Fatal(err)
	}
	if want := PubkeyToAddress(key.PubKey()); got != want {
		t.Fatalf("recovered %s, want %s", got, want)
	}
}

func TestHexToECDSA(t *testing.T) {
	if _, err := HexToECDSA("0x" + testKey); err != nil {
		t.Fatal("0x prefix rejected:", err)
	}
	if _, err := HexToECDSA("zz"); err == nil {
		t.Fatal("invalid hex accepted")
	}
}
