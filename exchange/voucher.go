package exchange

import (
	"fmt"

	"gorm.io/gorm"

	"market/conf"
	"market/common/utils"
)

// verifyVoucher validates a tokenization voucher against the trusted signer.
// Pure check, no state is touched. The voucher carries no nonce: replaying it
// for a still unregistered project within the deadline is idempotent, the
// project uniqueness check stops everything else.
func verifyVoucher(t *gorm.DB, v *utils.TokenizeVoucher) error {
	if v.Royality > 100 {
		return fmt.Errorf("voucher royality out of [0,100]: %d", v.Royality)
	}
	if v.Deadline < Now() {
		return fmt.Errorf("%w: deadline %d", ErrVoucherExpired, v.Deadline)
	}
	cfg, err := getConfig(t)
	if err != nil {
		return err
	}
	digest, err := utils.TokenizeDigest(conf.ChainId, conf.Market, v)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}
	sig, err := utils.HexToBytes(v.Signature)
	if err != nil || len(sig) != 65 {
		return fmt.Errorf("%w: malformed signature", ErrInvalidSignature)
	}
	signer, err := utils.RecoverDigest(digest, sig)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}
	if signer == cfg.Relayer {
		return nil
	}
	// policy switch: a project owner may self-sign its own tokenization
	if conf.AllowSelfSign && signer == v.To {
		return nil
	}
	return fmt.Errorf("%w: recovered %s", ErrInvalidSignature, signer)
}

// SignVoucher issues a voucher signature with the configured relayer key,
// used by the voucher issuing endpoint and by tests
func SignVoucher(v *utils.TokenizeVoucher) (string, error) {
	digest, err := utils.TokenizeDigest(conf.ChainId, conf.Market, v)
	if err != nil {
		return "", err
	}
	sig, err := utils.SignDigest(digest, conf.PrivateKey)
	if err != nil {
		return "", err
	}
	return utils.BytesToHex(sig), nil
}
