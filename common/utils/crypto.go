package utils

import (
	"crypto/elliptic"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"

	"market/common/types"
)

// PubkeyToAddress public key to address
func PubkeyToAddress(p *secp256k1.PublicKey) types.Address {
	data := elliptic.Marshal(secp256k1.S256(), p.X(), p.Y())
	return types.Address("0x" + hex.EncodeToString(Keccak256(data[1:])[12:]))
}

// SignDigest signs a 32 byte digest with the private key, the last byte of the
// result is v with the Ethereum offset (27 or 28)
func SignDigest(digest []byte, prv *secp256k1.PrivateKey) ([]byte, error) {
	if len(digest) != 32 {
		return nil, fmt.Errorf("digest requires 32 bytes: %d", len(digest))
	}
	sig := ecdsa.SignCompact(prv, digest, false)
	// v first in compact form, move it to the end
	return append(sig[1:65], sig[0]), nil
}

// SigToPub signature recovery public key, v at the end may be 0/1 or 27/28
func SigToPub(digest, sig []byte) (*secp256k1.PublicKey, error) {
	if len(sig) != 65 {
		return nil, fmt.Errorf("signature must be 65 bytes long: %d", len(sig))
	}
	v := sig[64]
	if v < 27 {
		v += 27
	}
	p, _, err := ecdsa.RecoverCompact(append([]byte{v}, sig[:64]...), digest)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RecoverDigest recovers the signing address of a 32 byte digest
func RecoverDigest(digest, sig []byte) (types.Address, error) {
	p, err := SigToPub(digest, sig)
	if err != nil {
		return "", err
	}
	return PubkeyToAddress(p), nil
}

// RecoverPersonal recovers the signing address of a message wrapped with the
// "\x19Ethereum Signed Message" prefix, signature is a 0x hex string
func RecoverPersonal(msg string, hexSig string) (types.Address, error) {
	sig, err := HexToBytes(hexSig)
	if err != nil {
		return "", err
	}
	wrapped := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(msg), msg)
	return RecoverDigest(Keccak256([]byte(wrapped)), sig)
}

// Keccak256 Calculate Keccak256 return byte array (32 bytes)
func Keccak256(data ...[]byte) (h []byte) {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}

	return d.Sum(nil)
}

// HexToECDSA hexadecimal string restore private key object
func HexToECDSA(key string) (*secp256k1.PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(key, "0x"))
	if byteErr, ok := err.(hex.InvalidByteError); ok {
		return nil, fmt.Errorf("invalid hex character %q in private key", byte(byteErr))
	} else if err != nil {
		return nil, fmt.Errorf("invalid hex data for private key")
	}
	return secp256k1.PrivKeyFromBytes(b), nil
}

// HexToBytes decodes a 0x prefixed hex string
func HexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

// BytesToHex encodes bytes as a 0x prefixed hex string
func BytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
