package exchange

import (
	"errors"
	"fmt"
	"math/big"

	"gorm.io/gorm"

	"market/conf"
	"market/common/types"
	"market/common/utils"
	"market/model"
)

// creditBalance adds amount to the user's withdrawable balance of token
func creditBalance(t *gorm.DB, user, token types.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	var b model.Balance
	err := t.Where("user=? AND token=?", user, token).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return t.Create(&model.Balance{User: user, Token: token, Amount: utils.BigToDec(amount)}).Error
	}
	if err != nil {
		return err
	}
	return t.Model(&model.Balance{}).Where("user=? AND token=?", user, token).
		Update("amount", addDec(b.Amount, amount)).Error
}

// creditTreasury adds amount to the marketplace fee accrual of token
func creditTreasury(t *gorm.DB, token types.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	var tr model.Treasury
	err := t.Where("token=?", token).First(&tr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return t.Create(&model.Treasury{Token: token, Amount: utils.BigToDec(amount)}).Error
	}
	if err != nil {
		return err
	}
	return t.Model(&model.Treasury{}).Where("token=?", token).
		Update("amount", addDec(tr.Amount, amount)).Error
}

// percentOf floor(value * percentage / 100), integer division rounds down in
// favor of the paying side
func percentOf(value *big.Int, percentage uint8) *big.Int {
	r := new(big.Int).Mul(value, big.NewInt(int64(percentage)))
	return r.Div(r, big.NewInt(100))
}

// settle splits an escrowed gross payment: marketplace fee first, then the
// project creator royalty from the remainder, the seller takes the rest.
// The three parts always sum to gross, the seller absorbs rounding dust.
// Gross must already sit in marketplace custody when this runs.
func settle(t *gorm.DB, cfg model.Config, tokenId types.BigInt, seller types.Address, gross *big.Int, token types.Address) error {
	var project model.Project
	err := t.Where("token_id=?", tokenId).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: token %s", ErrProjectNotFound, tokenId)
	}
	if err != nil {
		return err
	}
	marketFee := percentOf(gross, cfg.Royality)
	rest := new(big.Int).Sub(gross, marketFee)
	royalty := percentOf(rest, project.Royality)
	sellerAmount := new(big.Int).Sub(rest, royalty)

	if err = creditTreasury(t, token, marketFee); err != nil {
		return err
	}
	if err = creditBalance(t, project.Creator, token, royalty); err != nil {
		return err
	}
	return creditBalance(t, seller, token, sellerAmount)
}

// Withdraw pays out the caller's entire withdrawable balance of token. The
// balance is zeroed before any value moves, a reentrant call sees nothing
// left to withdraw.
func Withdraw(caller, token types.Address) (types.BigInt, error) {
	var paid types.BigInt
	err := DB.Transaction(func(t *gorm.DB) error {
		var b model.Balance
		err := t.Where("user=? AND token=?", caller, token).First(&b).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && b.Amount.T().Sign() == 0) {
			return fmt.Errorf("%w: %s has nothing in %s", ErrNothingToWithdraw, caller, token)
		}
		if err != nil {
			return err
		}
		amount := b.Amount.T()
		err = t.Model(&model.Balance{}).Where("user=? AND token=?", caller, token).
			Update("amount", "0").Error
		if err != nil {
			return err
		}
		if err = erc20Transfer(t, token, conf.Market, caller, amount); err != nil {
			return err
		}
		paid = b.Amount
		return appendEvent(t, &model.Event{
			Type:   model.EventWithdrawal,
			From:   caller,
			Token:  token,
			Amount: b.Amount,
		})
	})
	return paid, err
}

// WithdrawTreasury owner-only payout of the accumulated marketplace fees of
// token, zeroed before the transfer like user withdrawals
func WithdrawTreasury(caller, token types.Address) (types.BigInt, error) {
	var paid types.BigInt
	err := DB.Transaction(func(t *gorm.DB) error {
		if _, err := requireOwner(t, caller); err != nil {
			return err
		}
		var tr model.Treasury
		err := t.Where("token=?", token).First(&tr).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && tr.Amount.T().Sign() == 0) {
			return fmt.Errorf("%w: treasury empty for %s", ErrNothingToWithdraw, token)
		}
		if err != nil {
			return err
		}
		amount := tr.Amount.T()
		err = t.Model(&model.Treasury{}).Where("token=?", token).Update("amount", "0").Error
		if err != nil {
			return err
		}
		if err = erc20Transfer(t, token, conf.Market, caller, amount); err != nil {
			return err
		}
		paid = tr.Amount
		return appendEvent(t, &model.Event{
			Type:   model.EventWithdrawal,
			From:   caller,
			Token:  token,
			Amount: tr.Amount,
		})
	})
	return paid, err
}

// WithdrawableOf current withdrawable balance, missing rows count as zero
func WithdrawableOf(user, token types.Address) (types.BigInt, error) {
	var b model.Balance
	err := DB.Where("user=? AND token=?", user, token).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return b.Amount, nil
}

// TreasuryOf current marketplace fee accrual of token
func TreasuryOf(token types.Address) (types.BigInt, error) {
	var tr model.Treasury
	err := DB.Where("token=?", token).First(&tr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return tr.Amount, nil
}
