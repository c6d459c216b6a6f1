package exchange

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"market/common/types"
	"market/model"
)

// getConfig loads the marketplace configuration row inside the transaction,
// every state changing operation goes through it so nothing works before
// Initialize
func getConfig(t *gorm.DB) (model.Config, error) {
	var cfg model.Config
	err := t.Where("id=1").First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !cfg.Initialized) {
		return cfg, ErrNotInitialized
	}
	return cfg, err
}

// requireOwner admin gate of owner-only operations
func requireOwner(t *gorm.DB, caller types.Address) (model.Config, error) {
	cfg, err := getConfig(t)
	if err != nil {
		return cfg, err
	}
	if cfg.Owner != caller {
		return cfg, fmt.Errorf("%w: caller %s is not %s", ErrNotOwner, caller, cfg.Owner)
	}
	return cfg, nil
}

// Initialize one-shot marketplace setup with the admin, the trusted voucher
// signer and the marketplace royalty percentage. A second call fails, the
// engine supports redeployment only with a fresh store.
func Initialize(owner, relayer types.Address, royality uint8) error {
	if royality > 100 {
		return fmt.Errorf("royality out of [0,100]: %d", royality)
	}
	return DB.Transaction(func(t *gorm.DB) error {
		var cfg model.Config
		err := t.Where("id=1").First(&cfg).Error
		if err == nil && cfg.Initialized {
			return ErrAlreadyInitialized
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return t.Create(&model.Config{Id: 1, Owner: owner, Relayer: relayer, Royality: royality, Initialized: true}).Error
	})
}

// SetRoyality owner-only update of the marketplace royalty percentage
func SetRoyality(caller types.Address, royality uint8) error {
	if royality > 100 {
		return fmt.Errorf("royality out of [0,100]: %d", royality)
	}
	return DB.Transaction(func(t *gorm.DB) error {
		if _, err := requireOwner(t, caller); err != nil {
			return err
		}
		err := t.Model(&model.Config{}).Where("id=1").Update("royality", royality).Error
		if err != nil {
			return err
		}
		return appendEvent(t, &model.Event{Type: model.EventRoyaltyUpdated, From: caller, Royality: royality})
	})
}

// GetRoyality current marketplace royalty percentage
func GetRoyality() (uint8, error) {
	var royality uint8
	err := DB.Transaction(func(t *gorm.DB) error {
		cfg, err := getConfig(t)
		royality = cfg.Royality
		return err
	})
	return royality, err
}

// SetRelayer owner-only rotation of the trusted voucher signer
func SetRelayer(caller, relayer types.Address) error {
	return DB.Transaction(func(t *gorm.DB) error {
		if _, err := requireOwner(t, caller); err != nil {
			return err
		}
		err := t.Model(&model.Config{}).Where("id=1").Update("relayer", relayer).Error
		if err != nil {
			return err
		}
		return appendEvent(t, &model.Event{Type: model.EventRelayerChanged, From: caller, To: relayer})
	})
}

// Relayer current trusted voucher signer
func Relayer() (types.Address, error) {
	var relayer types.Address
	err := DB.Transaction(func(t *gorm.DB) error {
		cfg, err := getConfig(t)
		relayer = cfg.Relayer
		return err
	})
	return relayer, err
}

// AddPayableToken owner-only allowlisting of an ERC20 sales may be priced in
func AddPayableToken(caller, token types.Address) error {
	return DB.Transaction(func(t *gorm.DB) error {
		if _, err := requireOwner(t, caller); err != nil {
			return err
		}
		var p model.PayableToken
		err := t.Where("address=?", token).First(&p).Error
		if err == nil {
			return nil // already listed
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		err = t.Create(&model.PayableToken{Address: token, AddedBy: caller, Timestamp: Now()}).Error
		if err != nil {
			return err
		}
		return appendEvent(t, &model.Event{Type: model.EventPayableTokenAdded, From: caller, Token: token})
	})
}

// IsPayableToken whether the ERC20 is allowed as a sale currency
func IsPayableToken(token types.Address) (bool, error) {
	var p model.PayableToken
	err := DB.Where("address=?", token).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// isPayable allowlist check inside a transaction
func isPayable(t *gorm.DB, token types.Address) (bool, error) {
	var p model.PayableToken
	err := t.Where("address=?", token).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}
